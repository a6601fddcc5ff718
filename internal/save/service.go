package save

import (
	"context"
	"errors"
	"fmt"
	"io"
	"strings"
	"time"

	"go.uber.org/zap"

	"github.com/temirov/loki/internal/execshell"
	"github.com/temirov/loki/internal/shared"
)

const (
	// CommitTimestampLayoutConstant renders millisecond local time with the UTC offset.
	CommitTimestampLayoutConstant = "2006-01-02 15:04:05.000 -07:00"

	commitMessageTemplateConstant     = "lk save [%s] | %s"
	messagePartSeparatorConstant      = " "
	gitExecutorMissingMessageConstant = "git executor not configured"
	clockMissingMessageConstant       = "clock not configured"
	gitAddSubcommandConstant          = "add"
	gitAddAllFlagConstant             = "--all"
	gitAddUpdateFlagConstant          = "--update"
	gitCommitSubcommandConstant       = "commit"
	gitMessageFlagConstant            = "--message"
	gitPushSubcommandConstant         = "push"
	stageFailureTemplateConstant      = "failed to stage changes: %w"
	commitFailureTemplateConstant     = "failed to commit changes: %w"
	pushFailureTemplateConstant       = "failed to push changes: %w"
	changesSavedLogMessageConstant    = "changes saved"
	logFieldMessageConstant           = "message"
	logFieldIncludeUntrackedConstant  = "include_untracked"
)

// ErrGitExecutorNotConfigured indicates the git executor dependency was missing.
var ErrGitExecutorNotConfigured = errors.New(gitExecutorMissingMessageConstant)

// ErrClockNotConfigured indicates the clock dependency was missing.
var ErrClockNotConfigured = errors.New(clockMissingMessageConstant)

// ServiceDependencies enumerates collaborators required by the service.
type ServiceDependencies struct {
	GitExecutor  shared.GitExecutor
	Clock        shared.Clock
	Logger       *zap.Logger
	OutputWriter io.Writer
	ErrorWriter  io.Writer
}

// Options configure a save.
type Options struct {
	RepositoryPath string
	// IncludeUntracked stages new files too; otherwise only tracked files are staged.
	IncludeUntracked bool
	MessageParts     []string
}

// Result captures the commit message that was recorded.
type Result struct {
	CommitMessage string
}

// Service stages, commits and pushes working tree changes.
type Service struct {
	executor     shared.GitExecutor
	clock        shared.Clock
	logger       *zap.Logger
	outputWriter io.Writer
	errorWriter  io.Writer
}

// NewService constructs a Service from the provided dependencies.
func NewService(dependencies ServiceDependencies) (*Service, error) {
	if dependencies.GitExecutor == nil {
		return nil, ErrGitExecutorNotConfigured
	}
	if dependencies.Clock == nil {
		return nil, ErrClockNotConfigured
	}

	logger := dependencies.Logger
	if logger == nil {
		logger = zap.NewNop()
	}

	return &Service{
		executor:     dependencies.GitExecutor,
		clock:        dependencies.Clock,
		logger:       logger,
		outputWriter: dependencies.OutputWriter,
		errorWriter:  dependencies.ErrorWriter,
	}, nil
}

// BuildCommitMessage formats the timestamped save message.
func BuildCommitMessage(timestamp time.Time, messageParts []string) string {
	return fmt.Sprintf(commitMessageTemplateConstant, timestamp.Format(CommitTimestampLayoutConstant), strings.Join(messageParts, messagePartSeparatorConstant))
}

// Save runs add, commit and push in order, stopping at the first failure.
func (service *Service) Save(executionContext context.Context, options Options) (Result, error) {
	commitMessage := BuildCommitMessage(service.clock.Now(), options.MessageParts)

	stageFlag := gitAddUpdateFlagConstant
	if options.IncludeUntracked {
		stageFlag = gitAddAllFlagConstant
	}

	steps := []struct {
		arguments       []string
		failureTemplate string
	}{
		{arguments: []string{gitAddSubcommandConstant, stageFlag}, failureTemplate: stageFailureTemplateConstant},
		{arguments: []string{gitCommitSubcommandConstant, gitMessageFlagConstant, commitMessage}, failureTemplate: commitFailureTemplateConstant},
		{arguments: []string{gitPushSubcommandConstant}, failureTemplate: pushFailureTemplateConstant},
	}

	for _, step := range steps {
		_, stepError := service.executor.ExecuteGit(executionContext, execshell.CommandDetails{
			Arguments:        step.arguments,
			WorkingDirectory: options.RepositoryPath,
			OutputWriter:     service.outputWriter,
			ErrorWriter:      service.errorWriter,
		})
		if stepError != nil {
			return Result{}, fmt.Errorf(step.failureTemplate, stepError)
		}
	}

	service.logger.Info(changesSavedLogMessageConstant, zap.String(logFieldMessageConstant, commitMessage), zap.Bool(logFieldIncludeUntrackedConstant, options.IncludeUntracked))

	return Result{CommitMessage: commitMessage}, nil
}
