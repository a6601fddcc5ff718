package dependencies_test

import (
	"context"
	"testing"
	"time"

	"github.com/stretchr/testify/require"
	"go.uber.org/zap"

	"github.com/temirov/loki/internal/dependencies"
	"github.com/temirov/loki/internal/execshell"
	"github.com/temirov/loki/internal/gitrepo"
	"github.com/temirov/loki/internal/shared"
)

type stubGitExecutor struct{}

func (stubGitExecutor) ExecuteGit(context.Context, execshell.CommandDetails) (execshell.ExecutionResult, error) {
	return execshell.ExecutionResult{}, nil
}

type fixedClock struct{}

func (fixedClock) Now() time.Time {
	return time.Date(2024, time.March, 1, 0, 0, 0, 0, time.UTC)
}

func TestResolveGitExecutorPrefersInjectedExecutor(testInstance *testing.T) {
	injected := stubGitExecutor{}

	resolved, resolveError := dependencies.ResolveGitExecutor(injected, zap.NewNop(), dependencies.ExecutorSettings{})
	require.NoError(testInstance, resolveError)
	require.Equal(testInstance, injected, resolved)
}

func TestResolveGitExecutorBuildsShellExecutor(testInstance *testing.T) {
	testCases := []struct {
		name     string
		settings dependencies.ExecutorSettings
	}{
		{name: "structured", settings: dependencies.ExecutorSettings{}},
		{name: "human_readable", settings: dependencies.ExecutorSettings{HumanReadableLogging: true, CommandTimeout: time.Minute}},
	}

	for _, testCase := range testCases {
		testInstance.Run(testCase.name, func(testInstance *testing.T) {
			resolved, resolveError := dependencies.ResolveGitExecutor(nil, zap.NewNop(), testCase.settings)
			require.NoError(testInstance, resolveError)
			require.IsType(testInstance, &execshell.ShellExecutor{}, resolved)
		})
	}
}

func TestResolveGitExecutorRequiresLogger(testInstance *testing.T) {
	_, resolveError := dependencies.ResolveGitExecutor(nil, nil, dependencies.ExecutorSettings{})
	require.ErrorIs(testInstance, resolveError, execshell.ErrLoggerNotConfigured)
}

func TestResolveGitRepositoryManager(testInstance *testing.T) {
	resolved, resolveError := dependencies.ResolveGitRepositoryManager(nil, stubGitExecutor{})
	require.NoError(testInstance, resolveError)
	require.IsType(testInstance, &gitrepo.RepositoryManager{}, resolved)

	_, missingExecutorError := dependencies.ResolveGitRepositoryManager(nil, nil)
	require.ErrorIs(testInstance, missingExecutorError, gitrepo.ErrGitExecutorNotConfigured)
}

func TestResolveClock(testInstance *testing.T) {
	require.Equal(testInstance, shared.SystemClock{}, dependencies.ResolveClock(nil))
	require.Equal(testInstance, fixedClock{}, dependencies.ResolveClock(fixedClock{}))
}
