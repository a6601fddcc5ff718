package prune

import (
	"context"
	"errors"
	"fmt"
	"strings"

	"go.uber.org/zap"

	"github.com/temirov/loki/internal/execshell"
	"github.com/temirov/loki/internal/shared"
)

const (
	gitExecutorMissingMessageConstant       = "git executor not configured"
	repositoryManagerMissingMessageConstant = "repository manager not configured"
	unsupportedOperationTemplateConstant    = "unsupported prune operation %q"
	synchronizeFailureTemplateConstant      = "failed to %s with pruning: %w"
	gitPruneFlagConstant                    = "--prune"
	synchronizeCompletedLogMessageConstant  = "prune synchronization completed"
	logFieldOperationConstant               = "operation"
	logFieldDeletedCountConstant            = "deleted"
	logFieldProtectedCountConstant          = "protected"
	logFieldFailedCountConstant             = "failed"
	logFieldPlannedCountConstant            = "planned"
)

// Operation names the git command run with pruning.
type Operation string

// Supported operations.
const (
	OperationPull  Operation = Operation("pull")
	OperationFetch Operation = Operation("fetch")
)

// ErrGitExecutorNotConfigured indicates the git executor dependency was missing.
var ErrGitExecutorNotConfigured = errors.New(gitExecutorMissingMessageConstant)

// ErrRepositoryManagerNotConfigured indicates the repository manager dependency was missing.
var ErrRepositoryManagerNotConfigured = errors.New(repositoryManagerMissingMessageConstant)

// ServiceDependencies enumerates collaborators required by the service.
type ServiceDependencies struct {
	GitExecutor       shared.GitExecutor
	RepositoryManager shared.GitRepositoryManager
	Reporter          shared.Reporter
	Logger            *zap.Logger
}

// Options configure a synchronization run.
type Options struct {
	RepositoryPath string
	Operation      Operation
	DryRun         bool
}

// Result captures the outcome of a synchronization run.
type Result struct {
	Operation Operation
	Outcome   Outcome
}

// Service runs pull or fetch with pruning and removes local branches git reports as pruned.
type Service struct {
	executor          shared.GitExecutor
	repositoryManager shared.GitRepositoryManager
	reporter          shared.Reporter
	logger            *zap.Logger
}

// NewService constructs a Service from the provided dependencies.
func NewService(dependencies ServiceDependencies) (*Service, error) {
	if dependencies.GitExecutor == nil {
		return nil, ErrGitExecutorNotConfigured
	}
	if dependencies.RepositoryManager == nil {
		return nil, ErrRepositoryManagerNotConfigured
	}
	if dependencies.Reporter == nil {
		return nil, ErrReporterNotConfigured
	}

	logger := dependencies.Logger
	if logger == nil {
		logger = zap.NewNop()
	}

	return &Service{
		executor:          dependencies.GitExecutor,
		repositoryManager: dependencies.RepositoryManager,
		reporter:          dependencies.Reporter,
		logger:            logger,
	}, nil
}

// Synchronize snapshots the current branch and local branches, runs the operation
// with --prune, and applies the prune policy to its combined output.
func (service *Service) Synchronize(executionContext context.Context, options Options) (Result, error) {
	operation := Operation(strings.TrimSpace(string(options.Operation)))
	if operation != OperationPull && operation != OperationFetch {
		return Result{}, fmt.Errorf(unsupportedOperationTemplateConstant, options.Operation)
	}

	currentBranch, currentBranchError := service.repositoryManager.GetCurrentBranch(executionContext, options.RepositoryPath)
	if currentBranchError != nil {
		return Result{}, currentBranchError
	}

	localBranches, localBranchesError := service.repositoryManager.ListLocalBranches(executionContext, options.RepositoryPath)
	if localBranchesError != nil {
		return Result{}, localBranchesError
	}

	executionResult, executionError := service.executor.ExecuteGit(executionContext, execshell.CommandDetails{
		Arguments:          []string{string(operation), gitPruneFlagConstant},
		WorkingDirectory:   options.RepositoryPath,
		MergeStandardError: true,
	})
	if executionError != nil {
		return Result{}, fmt.Errorf(synchronizeFailureTemplateConstant, operation, executionError)
	}

	policy, policyError := NewPolicy(
		PolicyDependencies{GitExecutor: service.executor, Reporter: service.reporter, Logger: service.logger},
		PolicySettings{RepositoryPath: options.RepositoryPath, DryRun: options.DryRun},
	)
	if policyError != nil {
		return Result{}, policyError
	}

	outcome := policy.Apply(executionContext, executionResult.OutputLines(), NewSnapshot(currentBranch, localBranches))

	service.logger.Info(
		synchronizeCompletedLogMessageConstant,
		zap.String(logFieldOperationConstant, string(operation)),
		zap.String(logFieldRepositoryConstant, options.RepositoryPath),
		zap.Int(logFieldDeletedCountConstant, len(outcome.Deleted)),
		zap.Int(logFieldProtectedCountConstant, len(outcome.Protected)),
		zap.Int(logFieldFailedCountConstant, len(outcome.Failed)),
		zap.Int(logFieldPlannedCountConstant, len(outcome.Planned)),
	)

	return Result{Operation: operation, Outcome: outcome}, nil
}
