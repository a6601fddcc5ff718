package save

import (
	"github.com/spf13/cobra"
	"go.uber.org/zap"

	"github.com/temirov/loki/internal/dependencies"
	"github.com/temirov/loki/internal/shared"
	"github.com/temirov/loki/internal/utils"
	flagutils "github.com/temirov/loki/internal/utils/flags"
)

const (
	commandUseConstant              = "save [message...]"
	commandShortDescriptionConstant = "Stage, commit with a timestamped message, and push"
	commandLongDescriptionConstant  = "save stages tracked changes (or everything with --all), commits them with a message of the form \"lk save [<timestamp>] | <message>\", and pushes."
	commandExampleConstant          = "lk save --all wip on parser"
)

// LoggerProvider supplies a zap logger instance.
type LoggerProvider func() *zap.Logger

// CommandBuilder assembles the save command.
type CommandBuilder struct {
	LoggerProvider           LoggerProvider
	GitExecutor              shared.GitExecutor
	Clock                    shared.Clock
	ExecutorSettingsProvider func() dependencies.ExecutorSettings
	WorkingDirectory         string
}

// Build constructs the save command.
func (builder *CommandBuilder) Build() (*cobra.Command, error) {
	command := &cobra.Command{
		Use:     commandUseConstant,
		Short:   commandShortDescriptionConstant,
		Long:    commandLongDescriptionConstant,
		Example: commandExampleConstant,
		Args:    cobra.ArbitraryArgs,
		RunE:    builder.run,
	}

	flagutils.BindExecutionFlags(command, flagutils.AllFlagDefinition())

	return command, nil
}

func (builder *CommandBuilder) run(command *cobra.Command, arguments []string) error {
	includeUntracked, flagError := flagutils.BoolFlagValue(command, flagutils.AllFlagName)
	if flagError != nil {
		return flagError
	}

	logger := builder.resolveLogger()
	gitExecutor, executorError := dependencies.ResolveGitExecutor(builder.GitExecutor, logger, builder.resolveExecutorSettings())
	if executorError != nil {
		return executorError
	}

	service, serviceError := NewService(ServiceDependencies{
		GitExecutor:  gitExecutor,
		Clock:        dependencies.ResolveClock(builder.Clock),
		Logger:       logger,
		OutputWriter: utils.NewFlushingWriter(command.OutOrStdout()),
		ErrorWriter:  utils.NewFlushingWriter(command.ErrOrStderr()),
	})
	if serviceError != nil {
		return serviceError
	}

	_, saveError := service.Save(command.Context(), Options{
		RepositoryPath:   builder.WorkingDirectory,
		IncludeUntracked: includeUntracked,
		MessageParts:     arguments,
	})
	return saveError
}

func (builder *CommandBuilder) resolveLogger() *zap.Logger {
	if builder.LoggerProvider == nil {
		return zap.NewNop()
	}
	logger := builder.LoggerProvider()
	if logger == nil {
		return zap.NewNop()
	}
	return logger
}

func (builder *CommandBuilder) resolveExecutorSettings() dependencies.ExecutorSettings {
	if builder.ExecutorSettingsProvider == nil {
		return dependencies.ExecutorSettings{}
	}
	return builder.ExecutorSettingsProvider()
}
