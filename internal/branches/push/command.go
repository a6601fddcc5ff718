package push

import (
	"github.com/spf13/cobra"
	"go.uber.org/zap"

	"github.com/temirov/loki/internal/dependencies"
	"github.com/temirov/loki/internal/shared"
	"github.com/temirov/loki/internal/utils"
	flagutils "github.com/temirov/loki/internal/utils/flags"
)

const (
	commandUseConstant              = "push"
	commandAliasConstant            = "p"
	commandShortDescriptionConstant = "Push the current branch to origin with upstream tracking"
	commandLongDescriptionConstant  = "push publishes the checked-out branch to origin and sets it as upstream. --force uses --force-with-lease so a diverged remote is never overwritten. A detached HEAD is rejected."
)

// LoggerProvider supplies a zap logger instance.
type LoggerProvider func() *zap.Logger

// CommandBuilder assembles the push command.
type CommandBuilder struct {
	LoggerProvider           LoggerProvider
	GitExecutor              shared.GitExecutor
	RepositoryManager        shared.GitRepositoryManager
	ExecutorSettingsProvider func() dependencies.ExecutorSettings
	WorkingDirectory         string
}

// Build constructs the push command.
func (builder *CommandBuilder) Build() (*cobra.Command, error) {
	command := &cobra.Command{
		Use:     commandUseConstant,
		Aliases: []string{commandAliasConstant},
		Short:   commandShortDescriptionConstant,
		Long:    commandLongDescriptionConstant,
		Args:    cobra.NoArgs,
		RunE:    builder.run,
	}

	flagutils.BindExecutionFlags(command, flagutils.ForceFlagDefinition())

	return command, nil
}

func (builder *CommandBuilder) run(command *cobra.Command, _ []string) error {
	forceEnabled, flagError := flagutils.BoolFlagValue(command, flagutils.ForceFlagName)
	if flagError != nil {
		return flagError
	}

	logger := builder.resolveLogger()
	gitExecutor, executorError := dependencies.ResolveGitExecutor(builder.GitExecutor, logger, builder.resolveExecutorSettings())
	if executorError != nil {
		return executorError
	}

	repositoryManager, managerError := dependencies.ResolveGitRepositoryManager(builder.RepositoryManager, gitExecutor)
	if managerError != nil {
		return managerError
	}

	service, serviceError := NewService(ServiceDependencies{
		GitExecutor:       gitExecutor,
		RepositoryManager: repositoryManager,
		Logger:            logger,
		OutputWriter:      utils.NewFlushingWriter(command.OutOrStdout()),
		ErrorWriter:       utils.NewFlushingWriter(command.ErrOrStderr()),
	})
	if serviceError != nil {
		return serviceError
	}

	_, pushError := service.Push(command.Context(), Options{RepositoryPath: builder.WorkingDirectory, Force: forceEnabled})
	return pushError
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
