package create

import (
	"context"
	"errors"
	"fmt"
	"io"
	"strings"

	"go.uber.org/zap"

	"github.com/temirov/loki/internal/execshell"
	"github.com/temirov/loki/internal/shared"
)

const (
	branchNameRequiredMessageConstant      = "branch name cannot be empty"
	gitExecutorMissingMessageConstant      = "git executor not configured"
	gitCreateBranchFailureTemplateConstant = "failed to create branch %q: %w"
	gitPushBranchFailureTemplateConstant   = "failed to push branch %q to %s: %w"
	branchNamePartSeparatorConstant        = "-"
	gitSwitchSubcommandConstant            = "switch"
	gitCreateFlagConstant                  = "--create"
	gitPushSubcommandConstant              = "push"
	gitSetUpstreamFlagConstant             = "--set-upstream"
	branchCreatedLogMessageConstant        = "branch created and pushed"
	logFieldBranchConstant                 = "branch"
	logFieldPrefixConstant                 = "prefix"
)

// ErrBranchNameRequired indicates no usable name parts were supplied.
var ErrBranchNameRequired = errors.New(branchNameRequiredMessageConstant)

// ErrGitExecutorNotConfigured indicates the git executor dependency was missing.
var ErrGitExecutorNotConfigured = errors.New(gitExecutorMissingMessageConstant)

// ServiceDependencies enumerates collaborators required by the service.
type ServiceDependencies struct {
	GitExecutor  shared.GitExecutor
	Logger       *zap.Logger
	OutputWriter io.Writer
	ErrorWriter  io.Writer
}

// Options configure a branch creation.
type Options struct {
	RepositoryPath string
	NameParts      []string
	// Prefix is prepended verbatim to the joined name.
	Prefix string
}

// Result captures the created branch.
type Result struct {
	BranchName string
}

// Service creates a branch from HEAD and publishes it to origin.
type Service struct {
	executor     shared.GitExecutor
	logger       *zap.Logger
	outputWriter io.Writer
	errorWriter  io.Writer
}

// NewService constructs a Service from the provided dependencies.
func NewService(dependencies ServiceDependencies) (*Service, error) {
	if dependencies.GitExecutor == nil {
		return nil, ErrGitExecutorNotConfigured
	}

	logger := dependencies.Logger
	if logger == nil {
		logger = zap.NewNop()
	}

	return &Service{
		executor:     dependencies.GitExecutor,
		logger:       logger,
		outputWriter: dependencies.OutputWriter,
		errorWriter:  dependencies.ErrorWriter,
	}, nil
}

// BuildBranchName trims the parts, drops blank ones, joins the rest with dashes, and prepends the prefix.
func BuildBranchName(prefix string, nameParts []string) (string, error) {
	retainedParts := make([]string, 0, len(nameParts))
	for _, namePart := range nameParts {
		trimmedPart := strings.TrimSpace(namePart)
		if len(trimmedPart) == 0 {
			continue
		}
		retainedParts = append(retainedParts, trimmedPart)
	}
	if len(retainedParts) == 0 {
		return "", ErrBranchNameRequired
	}
	return prefix + strings.Join(retainedParts, branchNamePartSeparatorConstant), nil
}

// Create switches to a new branch and pushes it to origin with upstream tracking, stopping at the first failure.
func (service *Service) Create(executionContext context.Context, options Options) (Result, error) {
	branchName, nameError := BuildBranchName(options.Prefix, options.NameParts)
	if nameError != nil {
		return Result{}, nameError
	}

	if _, switchError := service.executor.ExecuteGit(executionContext, service.passthroughDetails(options.RepositoryPath, gitSwitchSubcommandConstant, gitCreateFlagConstant, branchName)); switchError != nil {
		return Result{}, fmt.Errorf(gitCreateBranchFailureTemplateConstant, branchName, switchError)
	}

	if _, pushError := service.executor.ExecuteGit(executionContext, service.passthroughDetails(options.RepositoryPath, gitPushSubcommandConstant, gitSetUpstreamFlagConstant, shared.OriginRemoteNameConstant, branchName)); pushError != nil {
		return Result{}, fmt.Errorf(gitPushBranchFailureTemplateConstant, branchName, shared.OriginRemoteNameConstant, pushError)
	}

	service.logger.Info(branchCreatedLogMessageConstant, zap.String(logFieldBranchConstant, branchName), zap.String(logFieldPrefixConstant, options.Prefix))

	return Result{BranchName: branchName}, nil
}

func (service *Service) passthroughDetails(repositoryPath string, arguments ...string) execshell.CommandDetails {
	return execshell.CommandDetails{
		Arguments:        arguments,
		WorkingDirectory: repositoryPath,
		OutputWriter:     service.outputWriter,
		ErrorWriter:      service.errorWriter,
	}
}
