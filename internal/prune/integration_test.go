package prune_test

import (
	"bytes"
	"context"
	"os"
	"os/exec"
	"path/filepath"
	"strings"
	"testing"

	"github.com/stretchr/testify/require"
	"go.uber.org/zap"

	"github.com/temirov/loki/internal/execshell"
	"github.com/temirov/loki/internal/gitrepo"
	"github.com/temirov/loki/internal/prune"
	"github.com/temirov/loki/internal/shared"
)

const (
	integrationOriginDirectoryConstant = "origin.git"
	integrationWorkDirectoryConstant   = "work"
	integrationPeerDirectoryConstant   = "peer"
)

// prepareRepositories creates a bare origin, a working clone with the given branches pushed, and a peer clone.
func prepareRepositories(testInstance *testing.T, branchNames ...string) (string, string) {
	testInstance.Helper()
	if _, lookupError := exec.LookPath("git"); lookupError != nil {
		testInstance.Skip("git executable not available")
	}

	testInstance.Setenv("HOME", testInstance.TempDir())
	testInstance.Setenv("GIT_CONFIG_NOSYSTEM", "1")
	testInstance.Setenv("GIT_AUTHOR_NAME", "Integration User")
	testInstance.Setenv("GIT_AUTHOR_EMAIL", "integration@example.com")
	testInstance.Setenv("GIT_COMMITTER_NAME", "Integration User")
	testInstance.Setenv("GIT_COMMITTER_EMAIL", "integration@example.com")

	rootDirectory := testInstance.TempDir()
	originDirectory := filepath.Join(rootDirectory, integrationOriginDirectoryConstant)
	workDirectory := filepath.Join(rootDirectory, integrationWorkDirectoryConstant)
	peerDirectory := filepath.Join(rootDirectory, integrationPeerDirectoryConstant)

	runGitCommand(testInstance, rootDirectory, "init", "--bare", originDirectory)
	require.NoError(testInstance, os.MkdirAll(workDirectory, 0o755))
	runGitCommand(testInstance, workDirectory, "init")
	runGitCommand(testInstance, workDirectory, "checkout", "-b", "main")
	require.NoError(testInstance, os.WriteFile(filepath.Join(workDirectory, "README.md"), []byte("hello\n"), 0o644))
	runGitCommand(testInstance, workDirectory, "add", "README.md")
	runGitCommand(testInstance, workDirectory, "commit", "-m", "initial commit")
	runGitCommand(testInstance, workDirectory, "remote", "add", "origin", originDirectory)
	runGitCommand(testInstance, workDirectory, "push", "--set-upstream", "origin", "main")

	for _, branchName := range branchNames {
		runGitCommand(testInstance, workDirectory, "branch", branchName)
		runGitCommand(testInstance, workDirectory, "push", "--set-upstream", "origin", branchName)
	}

	runGitCommand(testInstance, rootDirectory, "clone", originDirectory, peerDirectory)
	return workDirectory, peerDirectory
}

func runGitCommand(testInstance *testing.T, repositoryPath string, arguments ...string) string {
	testInstance.Helper()
	command := exec.Command("git", arguments...)
	command.Dir = repositoryPath
	outputBytes, commandError := command.CombinedOutput()
	require.NoError(testInstance, commandError, string(outputBytes))
	return string(bytes.TrimSpace(outputBytes))
}

func newIntegrationService(testInstance *testing.T, reporter shared.Reporter) *prune.Service {
	testInstance.Helper()

	executor, executorError := execshell.NewShellExecutor(zap.NewNop(), execshell.NewOSCommandRunner())
	require.NoError(testInstance, executorError)
	repositoryManager, managerError := gitrepo.NewRepositoryManager(executor)
	require.NoError(testInstance, managerError)

	service, serviceError := prune.NewService(prune.ServiceDependencies{
		GitExecutor:       executor,
		RepositoryManager: repositoryManager,
		Reporter:          reporter,
	})
	require.NoError(testInstance, serviceError)
	return service
}

func TestSynchronizeIntegrationDeletesPrunedBranches(testInstance *testing.T) {
	workDirectory, peerDirectory := prepareRepositories(testInstance, "feature/foo", "feature/bar", "feature/keep")
	runGitCommand(testInstance, workDirectory, "checkout", "feature/bar")
	runGitCommand(testInstance, peerDirectory, "push", "origin", "--delete", "feature/foo", "feature/bar")

	reporter := &recordingReporter{}
	service := newIntegrationService(testInstance, reporter)

	result, synchronizeError := service.Synchronize(context.Background(), prune.Options{RepositoryPath: workDirectory, Operation: prune.OperationFetch})
	require.NoError(testInstance, synchronizeError)

	require.Equal(testInstance, []string{"feature/foo"}, result.Outcome.Deleted)
	require.Equal(testInstance, []string{"feature/bar"}, result.Outcome.Protected)
	require.Empty(testInstance, result.Outcome.Failed)
	require.Equal(testInstance, []string{"Cannot delete pruned branch feature/bar because HEAD is pointing to it."}, reporter.warnings)
	require.True(testInstance, containsLine(reporter.lines, "-> origin/feature/foo"))

	localBranches := strings.Split(runGitCommand(testInstance, workDirectory, "for-each-ref", "--format=%(refname:short)", "refs/heads/"), "\n")
	require.ElementsMatch(testInstance, []string{"main", "feature/bar", "feature/keep"}, localBranches)

	secondResult, secondError := service.Synchronize(context.Background(), prune.Options{RepositoryPath: workDirectory, Operation: prune.OperationFetch})
	require.NoError(testInstance, secondError)
	require.Empty(testInstance, secondResult.Outcome.Deleted)
}

func TestSynchronizeIntegrationDryRunKeepsBranches(testInstance *testing.T) {
	workDirectory, peerDirectory := prepareRepositories(testInstance, "feature/foo")
	runGitCommand(testInstance, peerDirectory, "push", "origin", "--delete", "feature/foo")

	reporter := &recordingReporter{}
	service := newIntegrationService(testInstance, reporter)

	result, synchronizeError := service.Synchronize(context.Background(), prune.Options{RepositoryPath: workDirectory, Operation: prune.OperationPull, DryRun: true})
	require.NoError(testInstance, synchronizeError)

	require.Equal(testInstance, []string{"feature/foo"}, result.Outcome.Planned)
	require.Empty(testInstance, result.Outcome.Deleted)
	require.Contains(testInstance, runGitCommand(testInstance, workDirectory, "branch", "--list", "feature/foo"), "feature/foo")
}

func containsLine(lines []string, fragment string) bool {
	for _, line := range lines {
		if strings.Contains(line, fragment) {
			return true
		}
	}
	return false
}
