package push_test

import (
	"context"
	"errors"
	"testing"

	"github.com/stretchr/testify/require"

	"github.com/temirov/loki/internal/branches/push"
	"github.com/temirov/loki/internal/execshell"
)

const (
	testRepositoryPathConstant = "/tmp/loki-repository"
)

type recordingGitExecutor struct {
	recorded []execshell.CommandDetails
	failure  error
}

func (executor *recordingGitExecutor) ExecuteGit(_ context.Context, details execshell.CommandDetails) (execshell.ExecutionResult, error) {
	executor.recorded = append(executor.recorded, details)
	return execshell.ExecutionResult{}, executor.failure
}

type stubRepositoryManager struct {
	currentBranch      string
	currentBranchError error
}

func (manager *stubRepositoryManager) GetCurrentBranch(context.Context, string) (string, error) {
	return manager.currentBranch, manager.currentBranchError
}

func (manager *stubRepositoryManager) ListLocalBranches(context.Context, string) ([]string, error) {
	return nil, nil
}

func TestNewServiceValidatesDependencies(testInstance *testing.T) {
	_, executorError := push.NewService(push.ServiceDependencies{RepositoryManager: &stubRepositoryManager{}})
	require.ErrorIs(testInstance, executorError, push.ErrGitExecutorNotConfigured)

	_, managerError := push.NewService(push.ServiceDependencies{GitExecutor: &recordingGitExecutor{}})
	require.ErrorIs(testInstance, managerError, push.ErrRepositoryManagerNotConfigured)
}

func TestBuildPushArguments(testInstance *testing.T) {
	require.Equal(testInstance, []string{"push", "--set-upstream", "origin", "feature/foo"}, push.BuildPushArguments("feature/foo", false))
	require.Equal(testInstance, []string{"push", "--set-upstream", "--force-with-lease", "origin", "feature/foo"}, push.BuildPushArguments("feature/foo", true))
}

func TestServicePush(testInstance *testing.T) {
	lookupFailure := errors.New("not a git repository")
	pushFailure := errors.New("rejected")

	testCases := []struct {
		name               string
		currentBranch      string
		currentBranchError error
		pushFailure        error
		force              bool
		expectedArguments  []string
		expectedErrorIs    error
		expectedError      string
	}{
		{
			name:              "pushes_current_branch",
			currentBranch:     "feature/foo",
			expectedArguments: []string{"push", "--set-upstream", "origin", "feature/foo"},
		},
		{
			name:              "force_with_lease",
			currentBranch:     "feature/foo",
			force:             true,
			expectedArguments: []string{"push", "--set-upstream", "--force-with-lease", "origin", "feature/foo"},
		},
		{
			name:            "detached_head",
			currentBranch:   "HEAD",
			expectedErrorIs: push.ErrDetachedHead,
			expectedError:   "HEAD is currently detached, no branch to push!",
		},
		{
			name:            "detached_head_lowercase",
			currentBranch:   "head",
			expectedErrorIs: push.ErrDetachedHead,
		},
		{
			name:               "branch_lookup_failure",
			currentBranchError: lookupFailure,
			expectedErrorIs:    lookupFailure,
		},
		{
			name:              "push_failure",
			currentBranch:     "main",
			pushFailure:       pushFailure,
			expectedArguments: []string{"push", "--set-upstream", "origin", "main"},
			expectedErrorIs:   pushFailure,
			expectedError:     `failed to push branch "main" to origin: rejected`,
		},
	}

	for _, testCase := range testCases {
		testInstance.Run(testCase.name, func(testInstance *testing.T) {
			executor := &recordingGitExecutor{failure: testCase.pushFailure}
			manager := &stubRepositoryManager{currentBranch: testCase.currentBranch, currentBranchError: testCase.currentBranchError}
			service, serviceError := push.NewService(push.ServiceDependencies{GitExecutor: executor, RepositoryManager: manager})
			require.NoError(testInstance, serviceError)

			result, pushError := service.Push(context.Background(), push.Options{RepositoryPath: testRepositoryPathConstant, Force: testCase.force})

			if testCase.expectedArguments == nil {
				require.Empty(testInstance, executor.recorded)
			} else {
				require.Len(testInstance, executor.recorded, 1)
				require.Equal(testInstance, testCase.expectedArguments, executor.recorded[0].Arguments)
				require.Equal(testInstance, testRepositoryPathConstant, executor.recorded[0].WorkingDirectory)
			}

			if testCase.expectedErrorIs != nil {
				require.ErrorIs(testInstance, pushError, testCase.expectedErrorIs)
				if len(testCase.expectedError) > 0 {
					require.EqualError(testInstance, pushError, testCase.expectedError)
				}
				return
			}
			require.NoError(testInstance, pushError)
			require.Equal(testInstance, push.Result{BranchName: testCase.currentBranch, Forced: testCase.force}, result)
		})
	}
}
