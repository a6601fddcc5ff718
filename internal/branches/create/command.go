package create

import (
	"fmt"

	"github.com/spf13/cobra"
	"go.uber.org/zap"

	"github.com/temirov/loki/internal/dependencies"
	"github.com/temirov/loki/internal/shared"
	"github.com/temirov/loki/internal/utils"
)

const (
	commandUseConstant              = "new <name...>"
	commandAliasConstant            = "n"
	commandShortDescriptionConstant = "Create a new branch from HEAD and push it to origin"
	commandLongDescriptionConstant  = "new joins the name parts with dashes, prepends the configured prefix (tools.new.prefix or LOKI_NEW_PREFIX), switches to the new branch, and pushes it to origin with upstream tracking."
	commandExampleConstant          = "lk new fix login redirect"
	prefixNoticeTemplateConstant    = "Using branch prefix %q\n"
)

// LoggerProvider supplies a zap logger instance.
type LoggerProvider func() *zap.Logger

// CommandBuilder assembles the new command.
type CommandBuilder struct {
	LoggerProvider           LoggerProvider
	GitExecutor              shared.GitExecutor
	ExecutorSettingsProvider func() dependencies.ExecutorSettings
	ConfigurationProvider    func() CommandConfiguration
	WorkingDirectory         string
}

// Build constructs the new command.
func (builder *CommandBuilder) Build() (*cobra.Command, error) {
	command := &cobra.Command{
		Use:     commandUseConstant,
		Aliases: []string{commandAliasConstant},
		Short:   commandShortDescriptionConstant,
		Long:    commandLongDescriptionConstant,
		Example: commandExampleConstant,
		Args:    cobra.ArbitraryArgs,
		RunE:    builder.run,
	}
	return command, nil
}

func (builder *CommandBuilder) run(command *cobra.Command, arguments []string) error {
	configuration := builder.resolveConfiguration()

	branchName, nameError := BuildBranchName(configuration.Prefix, arguments)
	if nameError != nil {
		return nameError
	}

	if len(configuration.Prefix) > 0 {
		fmt.Fprintf(command.ErrOrStderr(), prefixNoticeTemplateConstant, configuration.Prefix)
	}

	logger := builder.resolveLogger()
	gitExecutor, executorError := dependencies.ResolveGitExecutor(builder.GitExecutor, logger, builder.resolveExecutorSettings())
	if executorError != nil {
		return executorError
	}

	service, serviceError := NewService(ServiceDependencies{
		GitExecutor:  gitExecutor,
		Logger:       logger,
		OutputWriter: utils.NewFlushingWriter(command.OutOrStdout()),
		ErrorWriter:  utils.NewFlushingWriter(command.ErrOrStderr()),
	})
	if serviceError != nil {
		return serviceError
	}

	logger.Debug("creating branch", zap.String(logFieldBranchConstant, branchName))

	_, createError := service.Create(command.Context(), Options{
		RepositoryPath: builder.WorkingDirectory,
		NameParts:      arguments,
		Prefix:         configuration.Prefix,
	})
	return createError
}

func (builder *CommandBuilder) resolveConfiguration() CommandConfiguration {
	if builder.ConfigurationProvider == nil {
		return DefaultCommandConfiguration()
	}
	return builder.ConfigurationProvider().Sanitize()
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
