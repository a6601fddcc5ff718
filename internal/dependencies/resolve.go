// Package dependencies resolves default collaborators for lk commands when tests or callers do not inject them.
package dependencies

import (
	"time"

	"go.uber.org/zap"

	"github.com/temirov/loki/internal/execshell"
	"github.com/temirov/loki/internal/gitrepo"
	"github.com/temirov/loki/internal/shared"
	"github.com/temirov/loki/internal/ui"
)

// ExecutorSettings configures the default shell-backed git executor.
type ExecutorSettings struct {
	// HumanReadableLogging routes command lifecycle events to the console logger instead of structured fields.
	HumanReadableLogging bool
	ConsoleLogger        *zap.Logger
	CommandTimeout       time.Duration
}

// ResolveGitExecutor returns the provided executor or constructs a shell-backed default.
func ResolveGitExecutor(existing shared.GitExecutor, logger *zap.Logger, settings ExecutorSettings) (shared.GitExecutor, error) {
	if existing != nil {
		return existing, nil
	}

	executorOptions := []execshell.ShellExecutorOption{execshell.WithCommandTimeout(settings.CommandTimeout)}
	if settings.HumanReadableLogging {
		consoleLogger := settings.ConsoleLogger
		if consoleLogger == nil {
			consoleLogger = logger
		}
		executorOptions = append(executorOptions, execshell.WithCommandEventObserver(ui.NewConsoleCommandEventLogger(consoleLogger)))
	}

	commandRunner := execshell.NewOSCommandRunner()
	shellExecutor, creationError := execshell.NewShellExecutor(logger, commandRunner, executorOptions...)
	if creationError != nil {
		return nil, creationError
	}
	return shellExecutor, nil
}

// ResolveGitRepositoryManager returns the provided repository manager or constructs one from the executor.
func ResolveGitRepositoryManager(existing shared.GitRepositoryManager, executor shared.GitExecutor) (shared.GitRepositoryManager, error) {
	if existing != nil {
		return existing, nil
	}
	return gitrepo.NewRepositoryManager(executor)
}

// ResolveClock returns the provided clock or the system clock.
func ResolveClock(existing shared.Clock) shared.Clock {
	if existing != nil {
		return existing
	}
	return shared.SystemClock{}
}
