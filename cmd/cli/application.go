package cli

import (
	"context"
	"errors"
	"fmt"
	"io"
	"os"
	"path/filepath"
	"runtime/debug"
	"strings"
	"syscall"
	"time"

	"github.com/spf13/cobra"
	"github.com/spf13/pflag"
	"go.uber.org/zap"

	"github.com/temirov/loki/internal/branches/create"
	"github.com/temirov/loki/internal/branches/push"
	"github.com/temirov/loki/internal/dependencies"
	"github.com/temirov/loki/internal/prune"
	"github.com/temirov/loki/internal/save"
	"github.com/temirov/loki/internal/utils"
	pathutils "github.com/temirov/loki/internal/utils/path"
)

const (
	applicationNameConstant                 = "lk"
	applicationShortDescriptionConstant     = "Shorthand git commands with prune-aware pull and fetch"
	applicationLongDescriptionConstant      = "lk wraps everyday git workflows: create and publish branches, push with upstream tracking, pull or fetch while deleting local branches whose remote counterparts were pruned, and save work with timestamped commits."
	configFileFlagNameConstant              = "config"
	configFileFlagUsageConstant             = "Optional path to a configuration file (YAML or JSON)."
	logLevelFlagNameConstant                = "log-level"
	logLevelFlagUsageConstant               = "Override the configured log level."
	logFormatFlagNameConstant               = "log-format"
	logFormatFlagUsageConstant              = "Override the configured log format (structured or console)."
	versionFlagNameConstant                 = "version"
	versionFlagUsageConstant                = "Print the lk version and exit."
	versionOutputTemplateConstant           = "%s version: %s\n"
	developmentVersionConstant              = "dev"
	commonConfigurationKeyConstant          = "common"
	commonLogLevelConfigKeyConstant         = commonConfigurationKeyConstant + ".log_level"
	commonLogFormatConfigKeyConstant        = commonConfigurationKeyConstant + ".log_format"
	commonCommandTimeoutConfigKeyConstant   = commonConfigurationKeyConstant + ".command_timeout"
	toolsConfigurationKeyConstant           = "tools"
	newBranchPrefixConfigKeyConstant        = toolsConfigurationKeyConstant + ".new.prefix"
	newBranchPrefixEnvironmentConstant      = "LOKI_NEW_PREFIX"
	environmentPrefixConstant               = "LOKI"
	configurationNameConstant               = "config"
	configurationTypeConstant               = "yaml"
	configurationInitializedMessageConstant = "configuration initialized"
	configurationLogLevelFieldConstant      = "log_level"
	configurationLogFormatFieldConstant     = "log_format"
	configurationFileFieldConstant          = "config_file"
	configurationLoadErrorTemplateConstant  = "unable to load configuration: %w"
	loggerCreationErrorTemplateConstant     = "unable to create logger: %w"
	loggerSyncErrorTemplateConstant         = "unable to flush logger: %w"
	rootCommandDebugMessageConstant         = "lk invoked without subcommand"
	logFieldArgumentsConstant               = "arguments"
	defaultConfigurationSearchPathConstant  = "."
	userConfigurationDirectoryNameConstant  = "loki"
)

// ApplicationConfiguration describes the persisted configuration for the CLI entrypoint.
type ApplicationConfiguration struct {
	Common ApplicationCommonConfiguration `mapstructure:"common"`
	Tools  ApplicationToolsConfiguration  `mapstructure:"tools"`
}

// ApplicationCommonConfiguration stores settings shared across commands.
type ApplicationCommonConfiguration struct {
	LogLevel       string        `mapstructure:"log_level"`
	LogFormat      string        `mapstructure:"log_format"`
	CommandTimeout time.Duration `mapstructure:"command_timeout"`
}

// ApplicationToolsConfiguration holds configuration for individual subcommands.
type ApplicationToolsConfiguration struct {
	New create.CommandConfiguration `mapstructure:"new"`
}

// Application wires the Cobra root command, configuration loader, and structured logger.
type Application struct {
	rootCommand           *cobra.Command
	configurationLoader   *utils.ConfigurationLoader
	loggerFactory         *utils.LoggerFactory
	logger                *zap.Logger
	consoleLogger         *zap.Logger
	configuration         ApplicationConfiguration
	configurationMetadata utils.LoadedConfiguration
	configurationFilePath string
	logLevelFlagValue     string
	logFormatFlagValue    string
	versionFlagValue      bool
	homeExpander          *pathutils.HomeExpander
	versionResolver       func(context.Context) string
	exitFunction          func(int)
}

// NewApplication assembles a fully wired CLI application instance.
func NewApplication() *Application {
	configurationLoader := utils.NewConfigurationLoader(
		configurationNameConstant,
		configurationTypeConstant,
		environmentPrefixConstant,
		configurationSearchPaths(),
	)
	embeddedConfiguration, embeddedConfigurationType := EmbeddedDefaultConfiguration()
	configurationLoader.SetEmbeddedConfiguration(embeddedConfiguration, embeddedConfigurationType)
	configurationLoader.SetEnvironmentBindings(map[string]string{
		newBranchPrefixConfigKeyConstant: newBranchPrefixEnvironmentConstant,
	})

	application := &Application{
		configurationLoader: configurationLoader,
		loggerFactory:       utils.NewLoggerFactory(),
		logger:              zap.NewNop(),
		consoleLogger:       zap.NewNop(),
		homeExpander:        pathutils.NewHomeExpander(),
		versionResolver:     resolveBuildVersion,
		exitFunction:        os.Exit,
	}

	cobraCommand := &cobra.Command{
		Use:           applicationNameConstant,
		Short:         applicationShortDescriptionConstant,
		Long:          applicationLongDescriptionConstant,
		SilenceUsage:  true,
		SilenceErrors: true,
		PersistentPreRunE: func(command *cobra.Command, arguments []string) error {
			return application.initializeConfiguration(command)
		},
		RunE: func(command *cobra.Command, arguments []string) error {
			return application.runRootCommand(command, arguments)
		},
	}

	cobraCommand.SetContext(context.Background())
	cobraCommand.PersistentFlags().StringVar(&application.configurationFilePath, configFileFlagNameConstant, "", configFileFlagUsageConstant)
	cobraCommand.PersistentFlags().StringVar(&application.logLevelFlagValue, logLevelFlagNameConstant, "", logLevelFlagUsageConstant)
	cobraCommand.PersistentFlags().StringVar(&application.logFormatFlagValue, logFormatFlagNameConstant, "", logFormatFlagUsageConstant)
	cobraCommand.Flags().BoolVar(&application.versionFlagValue, versionFlagNameConstant, false, versionFlagUsageConstant)

	workingDirectory := ""
	if resolvedDirectory, workingDirectoryError := os.Getwd(); workingDirectoryError == nil {
		workingDirectory = resolvedDirectory
	}

	newBranchBuilder := create.CommandBuilder{
		LoggerProvider:           application.loggerProvider,
		ExecutorSettingsProvider: application.executorSettings,
		ConfigurationProvider: func() create.CommandConfiguration {
			return application.configuration.Tools.New
		},
		WorkingDirectory: workingDirectory,
	}
	application.addCommand(cobraCommand, newBranchBuilder.Build)

	pushBuilder := push.CommandBuilder{
		LoggerProvider:           application.loggerProvider,
		ExecutorSettingsProvider: application.executorSettings,
		WorkingDirectory:         workingDirectory,
	}
	application.addCommand(cobraCommand, pushBuilder.Build)

	for _, operation := range []prune.Operation{prune.OperationPull, prune.OperationFetch} {
		pruneBuilder := prune.CommandBuilder{
			Operation:                operation,
			LoggerProvider:           application.loggerProvider,
			ExecutorSettingsProvider: application.executorSettings,
			WorkingDirectory:         workingDirectory,
		}
		application.addCommand(cobraCommand, pruneBuilder.Build)
	}

	saveBuilder := save.CommandBuilder{
		LoggerProvider:           application.loggerProvider,
		ExecutorSettingsProvider: application.executorSettings,
		WorkingDirectory:         workingDirectory,
	}
	application.addCommand(cobraCommand, saveBuilder.Build)

	application.rootCommand = cobraCommand

	return application
}

// Execute runs the configured Cobra command hierarchy and ensures logger flushing.
func (application *Application) Execute() error {
	executionError := application.rootCommand.Execute()
	if syncError := application.flushLogger(); syncError != nil {
		return fmt.Errorf(loggerSyncErrorTemplateConstant, syncError)
	}
	return executionError
}

// Execute builds a fresh application instance and executes the root command hierarchy.
func Execute() error {
	return NewApplication().Execute()
}

func (application *Application) addCommand(rootCommand *cobra.Command, build func() (*cobra.Command, error)) {
	subcommand, buildError := build()
	if buildError != nil {
		return
	}
	rootCommand.AddCommand(subcommand)
}

func (application *Application) loggerProvider() *zap.Logger {
	return application.logger
}

func (application *Application) executorSettings() dependencies.ExecutorSettings {
	return dependencies.ExecutorSettings{
		HumanReadableLogging: application.humanReadableLoggingEnabled(),
		ConsoleLogger:        application.consoleLogger,
		CommandTimeout:       application.configuration.Common.CommandTimeout,
	}
}

func (application *Application) initializeConfiguration(command *cobra.Command) error {
	defaultValues := map[string]any{
		commonLogLevelConfigKeyConstant:       string(utils.LogLevelWarn),
		commonLogFormatConfigKeyConstant:      string(utils.LogFormatConsole),
		commonCommandTimeoutConfigKeyConstant: "0s",
		newBranchPrefixConfigKeyConstant:      create.DefaultCommandConfiguration().Prefix,
	}

	configurationFilePath := strings.TrimSpace(application.configurationFilePath)
	if len(configurationFilePath) > 0 && application.homeExpander != nil {
		configurationFilePath = application.homeExpander.Expand(configurationFilePath)
	}

	loadedConfiguration, loadError := application.configurationLoader.LoadConfiguration(configurationFilePath, defaultValues, &application.configuration)
	if loadError != nil {
		return fmt.Errorf(configurationLoadErrorTemplateConstant, loadError)
	}

	application.configurationMetadata = loadedConfiguration

	if application.persistentFlagChanged(command, logLevelFlagNameConstant) {
		application.configuration.Common.LogLevel = application.logLevelFlagValue
	}

	if application.persistentFlagChanged(command, logFormatFlagNameConstant) {
		application.configuration.Common.LogFormat = application.logFormatFlagValue
	}

	loggerOutputs, loggerCreationError := application.loggerFactory.CreateLoggerOutputs(
		utils.LogLevel(strings.TrimSpace(application.configuration.Common.LogLevel)),
		utils.LogFormat(strings.TrimSpace(application.configuration.Common.LogFormat)),
	)
	if loggerCreationError != nil {
		return fmt.Errorf(loggerCreationErrorTemplateConstant, loggerCreationError)
	}

	application.logger = loggerOutputs.DiagnosticLogger
	application.consoleLogger = loggerOutputs.ConsoleLogger

	application.logger.Info(
		configurationInitializedMessageConstant,
		zap.String(configurationLogLevelFieldConstant, application.configuration.Common.LogLevel),
		zap.String(configurationLogFormatFieldConstant, application.configuration.Common.LogFormat),
		zap.String(configurationFileFieldConstant, application.configurationMetadata.ConfigFileUsed),
	)

	return nil
}

func (application *Application) humanReadableLoggingEnabled() bool {
	logFormatValue := strings.TrimSpace(application.configuration.Common.LogFormat)
	return strings.EqualFold(logFormatValue, string(utils.LogFormatConsole))
}

func (application *Application) runRootCommand(command *cobra.Command, arguments []string) error {
	if application.versionFlagValue {
		application.printVersion(command.Context(), command.OutOrStdout())
		application.exitFunction(0)
		return nil
	}

	application.logger.Debug(rootCommandDebugMessageConstant, zap.Strings(logFieldArgumentsConstant, arguments))

	return command.Help()
}

func (application *Application) printVersion(executionContext context.Context, writer io.Writer) {
	version := developmentVersionConstant
	if application.versionResolver != nil {
		if resolvedVersion := strings.TrimSpace(application.versionResolver(executionContext)); len(resolvedVersion) > 0 {
			version = resolvedVersion
		}
	}
	fmt.Fprintf(writer, versionOutputTemplateConstant, applicationNameConstant, version)
}

func (application *Application) flushLogger() error {
	if syncError := application.syncLoggerInstance(application.logger); syncError != nil {
		return syncError
	}
	return application.syncLoggerInstance(application.consoleLogger)
}

func (application *Application) syncLoggerInstance(logger *zap.Logger) error {
	if logger == nil {
		return nil
	}

	syncError := logger.Sync()
	switch {
	case syncError == nil:
		return nil
	case errors.Is(syncError, syscall.ENOTSUP):
		return nil
	case errors.Is(syncError, syscall.EINVAL):
		return nil
	case errors.Is(syncError, syscall.ENOTTY):
		return nil
	default:
		return syncError
	}
}

func (application *Application) persistentFlagChanged(command *cobra.Command, flagName string) bool {
	if command == nil {
		return false
	}

	flagSetsToInspect := []*pflag.FlagSet{
		command.PersistentFlags(),
		command.InheritedFlags(),
	}

	rootCommand := command.Root()
	if rootCommand != nil {
		flagSetsToInspect = append(flagSetsToInspect, rootCommand.PersistentFlags())
	}

	for _, flagSet := range flagSetsToInspect {
		if flagSet == nil {
			continue
		}

		if flagSet.Changed(flagName) {
			return true
		}
	}

	return false
}

func configurationSearchPaths() []string {
	searchPaths := []string{defaultConfigurationSearchPathConstant}
	if userConfigurationDirectory, directoryError := os.UserConfigDir(); directoryError == nil {
		searchPaths = append(searchPaths, filepath.Join(userConfigurationDirectory, userConfigurationDirectoryNameConstant))
	}
	return searchPaths
}

func resolveBuildVersion(context.Context) string {
	buildInfo, available := debug.ReadBuildInfo()
	if !available {
		return developmentVersionConstant
	}
	moduleVersion := strings.TrimSpace(buildInfo.Main.Version)
	if len(moduleVersion) == 0 || moduleVersion == "(devel)" {
		return developmentVersionConstant
	}
	return moduleVersion
}
