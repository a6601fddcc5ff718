package prune

import (
	"context"
	"errors"
	"fmt"

	"go.uber.org/zap"

	"github.com/temirov/loki/internal/execshell"
	"github.com/temirov/loki/internal/shared"
)

const (
	protectedBranchWarningTemplateConstant = "Cannot delete pruned branch %s because HEAD is pointing to it."
	deletionFailureTemplateConstant        = "Failed to delete pruned branch %s: %v"
	plannedDeletionTemplateConstant        = "Would delete pruned branch %s"
	gitBranchSubcommandConstant            = "branch"
	gitForceDeleteFlagConstant             = "-D"
	reporterMissingMessageConstant         = "reporter not configured"
	branchDeletedLogMessageConstant        = "pruned branch deleted"
	branchDeletionFailedLogMessageConstant = "pruned branch deletion failed"
	branchProtectedLogMessageConstant      = "pruned branch is checked out"
	logFieldBranchConstant                 = "branch"
	logFieldRepositoryConstant             = "repository"
)

// ErrReporterNotConfigured indicates the policy was constructed without a reporter.
var ErrReporterNotConfigured = errors.New(reporterMissingMessageConstant)

// Snapshot captures repository state read once before the pull or fetch runs.
type Snapshot struct {
	CurrentBranch string
	LocalBranches map[string]struct{}
}

// NewSnapshot builds a Snapshot from the current branch and the local branch names.
func NewSnapshot(currentBranch string, localBranches []string) Snapshot {
	branchSet := make(map[string]struct{}, len(localBranches))
	for _, branchName := range localBranches {
		branchSet[branchName] = struct{}{}
	}
	return Snapshot{CurrentBranch: currentBranch, LocalBranches: branchSet}
}

// HasLocalBranch reports whether the branch existed locally when the snapshot was taken.
func (snapshot Snapshot) HasLocalBranch(branchName string) bool {
	_, exists := snapshot.LocalBranches[branchName]
	return exists
}

// DeletionFailure records a pruned branch that git refused to delete.
type DeletionFailure struct {
	BranchName string
	Err        error
}

// Outcome lists the actions taken for pruned branches in output order.
type Outcome struct {
	Deleted   []string
	Protected []string
	Planned   []string
	Failed    []DeletionFailure
}

// PolicyDependencies enumerates collaborators required by the policy.
type PolicyDependencies struct {
	GitExecutor shared.GitExecutor
	Reporter    shared.Reporter
	Logger      *zap.Logger
}

// PolicySettings scopes a policy to one repository.
type PolicySettings struct {
	RepositoryPath string
	DryRun         bool
}

// Policy decides what to do with each pruned branch reported by git.
type Policy struct {
	executor shared.GitExecutor
	reporter shared.Reporter
	logger   *zap.Logger
	settings PolicySettings
}

// NewPolicy constructs a Policy.
func NewPolicy(dependencies PolicyDependencies, settings PolicySettings) (*Policy, error) {
	if dependencies.GitExecutor == nil {
		return nil, ErrGitExecutorNotConfigured
	}
	if dependencies.Reporter == nil {
		return nil, ErrReporterNotConfigured
	}

	logger := dependencies.Logger
	if logger == nil {
		logger = zap.NewNop()
	}

	return &Policy{
		executor: dependencies.GitExecutor,
		reporter: dependencies.Reporter,
		logger:   logger,
		settings: settings,
	}, nil
}

// Apply echoes each line and handles the pruned branch it names, strictly in order.
// The checked out branch is never deleted. A failed deletion is reported and the
// remaining lines are still processed.
func (policy *Policy) Apply(executionContext context.Context, lines []string, snapshot Snapshot) Outcome {
	outcome := Outcome{}

	for _, line := range lines {
		policy.reporter.Line(line)

		branchName, isPruned := ParsePrunedBranch(line)
		if !isPruned {
			continue
		}

		switch {
		case branchName == snapshot.CurrentBranch:
			policy.reporter.Warningf(protectedBranchWarningTemplateConstant, branchName)
			policy.logger.Debug(branchProtectedLogMessageConstant, zap.String(logFieldBranchConstant, branchName), zap.String(logFieldRepositoryConstant, policy.settings.RepositoryPath))
			outcome.Protected = append(outcome.Protected, branchName)
		case snapshot.HasLocalBranch(branchName):
			if policy.settings.DryRun {
				policy.reporter.Line(fmt.Sprintf(plannedDeletionTemplateConstant, branchName))
				outcome.Planned = append(outcome.Planned, branchName)
				continue
			}

			if deletionError := policy.deleteBranch(executionContext, branchName); deletionError != nil {
				policy.reporter.Failuref(deletionFailureTemplateConstant, branchName, deletionError)
				policy.logger.Debug(branchDeletionFailedLogMessageConstant, zap.String(logFieldBranchConstant, branchName), zap.Error(deletionError))
				outcome.Failed = append(outcome.Failed, DeletionFailure{BranchName: branchName, Err: deletionError})
				continue
			}

			policy.logger.Debug(branchDeletedLogMessageConstant, zap.String(logFieldBranchConstant, branchName), zap.String(logFieldRepositoryConstant, policy.settings.RepositoryPath))
			outcome.Deleted = append(outcome.Deleted, branchName)
		}
	}

	return outcome
}

func (policy *Policy) deleteBranch(executionContext context.Context, branchName string) error {
	executionResult, executionError := policy.executor.ExecuteGit(executionContext, execshell.CommandDetails{
		Arguments:        []string{gitBranchSubcommandConstant, gitForceDeleteFlagConstant, branchName},
		WorkingDirectory: policy.settings.RepositoryPath,
	})
	if executionError != nil {
		return executionError
	}

	for _, outputLine := range executionResult.OutputLines() {
		policy.reporter.Line(outputLine)
	}
	return nil
}
