package gitrepo

import (
	"context"
	"errors"
	"fmt"
	"strings"

	"github.com/temirov/loki/internal/execshell"
	"github.com/temirov/loki/internal/shared"
)

const (
	gitExecutorMissingMessageConstant       = "git executor not configured"
	currentBranchErrorTemplateConstant      = "failed to determine current branch: %w"
	listBranchesErrorTemplateConstant       = "failed to list local branches: %w"
	emptyCurrentBranchMessageConstant       = "git reported an empty current branch"
	gitRevParseSubcommandConstant           = "rev-parse"
	gitAbbrevRefFlagConstant                = "--abbrev-ref"
	gitForEachRefSubcommandConstant         = "for-each-ref"
	gitShortRefnameFormatArgumentConstant   = "--format=%(refname:short)"
	gitLocalBranchesReferencePrefixConstant = "refs/heads/"

	// DetachedHeadReferenceConstant is what git reports as the current branch when HEAD is detached.
	DetachedHeadReferenceConstant = "HEAD"
)

// ErrGitExecutorNotConfigured indicates the repository manager was constructed without an executor.
var ErrGitExecutorNotConfigured = errors.New(gitExecutorMissingMessageConstant)

var errEmptyCurrentBranch = errors.New(emptyCurrentBranchMessageConstant)

// RepositoryManager answers branch queries by running git.
type RepositoryManager struct {
	executor shared.GitExecutor
}

// NewRepositoryManager constructs a RepositoryManager.
func NewRepositoryManager(executor shared.GitExecutor) (*RepositoryManager, error) {
	if executor == nil {
		return nil, ErrGitExecutorNotConfigured
	}
	return &RepositoryManager{executor: executor}, nil
}

// GetCurrentBranch returns the checked out branch name, or "HEAD" when the checkout is detached.
func (manager *RepositoryManager) GetCurrentBranch(executionContext context.Context, repositoryPath string) (string, error) {
	executionResult, executionError := manager.executor.ExecuteGit(executionContext, execshell.CommandDetails{
		Arguments:        []string{gitRevParseSubcommandConstant, gitAbbrevRefFlagConstant, DetachedHeadReferenceConstant},
		WorkingDirectory: repositoryPath,
	})
	if executionError != nil {
		return "", fmt.Errorf(currentBranchErrorTemplateConstant, executionError)
	}

	branchName := strings.TrimSpace(executionResult.StandardOutput)
	if len(branchName) == 0 {
		return "", fmt.Errorf(currentBranchErrorTemplateConstant, errEmptyCurrentBranch)
	}
	return branchName, nil
}

// ListLocalBranches returns the short names of every branch under refs/heads.
func (manager *RepositoryManager) ListLocalBranches(executionContext context.Context, repositoryPath string) ([]string, error) {
	executionResult, executionError := manager.executor.ExecuteGit(executionContext, execshell.CommandDetails{
		Arguments:        []string{gitForEachRefSubcommandConstant, gitShortRefnameFormatArgumentConstant, gitLocalBranchesReferencePrefixConstant},
		WorkingDirectory: repositoryPath,
	})
	if executionError != nil {
		return nil, fmt.Errorf(listBranchesErrorTemplateConstant, executionError)
	}

	branchNames := make([]string, 0)
	for _, outputLine := range executionResult.OutputLines() {
		trimmedLine := strings.TrimSpace(outputLine)
		if len(trimmedLine) == 0 {
			continue
		}
		branchNames = append(branchNames, trimmedLine)
	}
	return branchNames, nil
}

// IsDetachedHead reports whether a current branch value denotes a detached checkout.
func IsDetachedHead(branchName string) bool {
	return strings.EqualFold(strings.TrimSpace(branchName), DetachedHeadReferenceConstant)
}
