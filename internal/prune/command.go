package prune

import (
	"errors"

	"github.com/spf13/cobra"
	"go.uber.org/zap"

	"github.com/temirov/loki/internal/dependencies"
	"github.com/temirov/loki/internal/shared"
	flagutils "github.com/temirov/loki/internal/utils/flags"
)

const (
	pullCommandShortDescriptionConstant  = "Pull with --prune, deleting local branches pruned from the remote"
	pullCommandLongDescriptionConstant   = "pull runs git pull --prune and force-deletes every local branch whose remote-tracking branch git reports as pruned. The checked out branch is never deleted."
	fetchCommandShortDescriptionConstant = "Fetch with --prune, deleting local branches pruned from the remote"
	fetchCommandLongDescriptionConstant  = "fetch runs git fetch --prune and force-deletes every local branch whose remote-tracking branch git reports as pruned. The checked out branch is never deleted."
)

var errUnsupportedCommandOperation = errors.New("prune command operation must be pull or fetch")

// LoggerProvider supplies a zap logger instance.
type LoggerProvider func() *zap.Logger

// CommandBuilder assembles the pull or fetch command.
type CommandBuilder struct {
	Operation                Operation
	LoggerProvider           LoggerProvider
	GitExecutor              shared.GitExecutor
	RepositoryManager        shared.GitRepositoryManager
	ExecutorSettingsProvider func() dependencies.ExecutorSettings
	WorkingDirectory         string
}

// Build constructs the command for the configured operation.
func (builder *CommandBuilder) Build() (*cobra.Command, error) {
	command := &cobra.Command{
		Use:  string(builder.Operation),
		Args: cobra.NoArgs,
		RunE: builder.run,
	}

	switch builder.Operation {
	case OperationPull:
		command.Short = pullCommandShortDescriptionConstant
		command.Long = pullCommandLongDescriptionConstant
	case OperationFetch:
		command.Short = fetchCommandShortDescriptionConstant
		command.Long = fetchCommandLongDescriptionConstant
	default:
		return nil, errUnsupportedCommandOperation
	}

	flagutils.BindExecutionFlags(command, flagutils.DryRunFlagDefinition())

	return command, nil
}

func (builder *CommandBuilder) run(command *cobra.Command, _ []string) error {
	dryRun, dryRunError := flagutils.BoolFlagValue(command, flagutils.DryRunFlagName)
	if dryRunError != nil {
		return dryRunError
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
		Reporter:          shared.NewConsoleReporter(command.OutOrStdout(), command.ErrOrStderr(), shared.ColorEnabled()),
		Logger:            logger,
	})
	if serviceError != nil {
		return serviceError
	}

	_, synchronizeError := service.Synchronize(command.Context(), Options{
		RepositoryPath: builder.WorkingDirectory,
		Operation:      builder.Operation,
		DryRun:         dryRun,
	})
	return synchronizeError
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
