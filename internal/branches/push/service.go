package push

import (
	"context"
	"errors"
	"fmt"
	"io"

	"go.uber.org/zap"

	"github.com/temirov/loki/internal/execshell"
	"github.com/temirov/loki/internal/gitrepo"
	"github.com/temirov/loki/internal/shared"
)

const (
	detachedHeadMessageConstant             = "HEAD is currently detached, no branch to push!"
	gitExecutorMissingMessageConstant       = "git executor not configured"
	repositoryManagerMissingMessageConstant = "repository manager not configured"
	gitPushFailureTemplateConstant          = "failed to push branch %q to %s: %w"
	gitPushSubcommandConstant               = "push"
	gitSetUpstreamFlagConstant              = "--set-upstream"
	gitForceWithLeaseFlagConstant           = "--force-with-lease"
	branchPushedLogMessageConstant          = "branch pushed"
	logFieldBranchConstant                  = "branch"
	logFieldForceConstant                   = "force"
)

// ErrDetachedHead indicates there is no checked-out branch to push.
var ErrDetachedHead = errors.New(detachedHeadMessageConstant)

// ErrGitExecutorNotConfigured indicates the git executor dependency was missing.
var ErrGitExecutorNotConfigured = errors.New(gitExecutorMissingMessageConstant)

// ErrRepositoryManagerNotConfigured indicates the repository manager dependency was missing.
var ErrRepositoryManagerNotConfigured = errors.New(repositoryManagerMissingMessageConstant)

// ServiceDependencies enumerates collaborators required by the service.
type ServiceDependencies struct {
	GitExecutor       shared.GitExecutor
	RepositoryManager shared.GitRepositoryManager
	Logger            *zap.Logger
	OutputWriter      io.Writer
	ErrorWriter       io.Writer
}

// Options configure a push.
type Options struct {
	RepositoryPath string
	// Force maps to --force-with-lease.
	Force bool
}

// Result captures the pushed branch.
type Result struct {
	BranchName string
	Forced     bool
}

// Service pushes the current branch to origin with upstream tracking.
type Service struct {
	executor          shared.GitExecutor
	repositoryManager shared.GitRepositoryManager
	logger            *zap.Logger
	outputWriter      io.Writer
	errorWriter       io.Writer
}

// NewService constructs a Service from the provided dependencies.
func NewService(dependencies ServiceDependencies) (*Service, error) {
	if dependencies.GitExecutor == nil {
		return nil, ErrGitExecutorNotConfigured
	}
	if dependencies.RepositoryManager == nil {
		return nil, ErrRepositoryManagerNotConfigured
	}

	logger := dependencies.Logger
	if logger == nil {
		logger = zap.NewNop()
	}

	return &Service{
		executor:          dependencies.GitExecutor,
		repositoryManager: dependencies.RepositoryManager,
		logger:            logger,
		outputWriter:      dependencies.OutputWriter,
		errorWriter:       dependencies.ErrorWriter,
	}, nil
}

// Push resolves the current branch and pushes it, refusing a detached HEAD.
func (service *Service) Push(executionContext context.Context, options Options) (Result, error) {
	branchName, branchError := service.repositoryManager.GetCurrentBranch(executionContext, options.RepositoryPath)
	if branchError != nil {
		return Result{}, branchError
	}
	if gitrepo.IsDetachedHead(branchName) {
		return Result{}, ErrDetachedHead
	}

	_, pushError := service.executor.ExecuteGit(executionContext, execshell.CommandDetails{
		Arguments:        BuildPushArguments(branchName, options.Force),
		WorkingDirectory: options.RepositoryPath,
		OutputWriter:     service.outputWriter,
		ErrorWriter:      service.errorWriter,
	})
	if pushError != nil {
		return Result{}, fmt.Errorf(gitPushFailureTemplateConstant, branchName, shared.OriginRemoteNameConstant, pushError)
	}

	service.logger.Info(branchPushedLogMessageConstant, zap.String(logFieldBranchConstant, branchName), zap.Bool(logFieldForceConstant, options.Force))

	return Result{BranchName: branchName, Forced: options.Force}, nil
}

// BuildPushArguments returns the git arguments pushing branchName to origin with upstream tracking.
func BuildPushArguments(branchName string, force bool) []string {
	arguments := []string{gitPushSubcommandConstant, gitSetUpstreamFlagConstant}
	if force {
		arguments = append(arguments, gitForceWithLeaseFlagConstant)
	}
	return append(arguments, shared.OriginRemoteNameConstant, branchName)
}
