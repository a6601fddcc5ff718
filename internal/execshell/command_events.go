package execshell

import "go.uber.org/zap"

const (
	commandStartedLogMessageConstant         = "command started"
	commandCompletedLogMessageConstant       = "command completed"
	commandFailedLogMessageConstant          = "command failed"
	commandExecutionFailedLogMessageConstant = "command execution failed"
	logFieldCommandNameConstant              = "command"
	logFieldArgumentsConstant                = "arguments"
	logFieldWorkingDirectoryConstant         = "working_directory"
	logFieldExitCodeConstant                 = "exit_code"
	logFieldStandardErrorConstant            = "stderr"
)

// CommandEventObserver receives lifecycle notifications for shell command execution.
type CommandEventObserver interface {
	// CommandStarted notifies observers that command execution is beginning.
	CommandStarted(command ShellCommand)
	// CommandCompleted notifies observers that command execution finished and supplies the result.
	CommandCompleted(command ShellCommand, result ExecutionResult)
	// CommandExecutionFailed reports unexpected failures prior to receiving an execution result.
	CommandExecutionFailed(command ShellCommand, failure error)
}

// structuredCommandEventLogger records command events as structured zap entries.
type structuredCommandEventLogger struct {
	logger *zap.Logger
}

func newStructuredCommandEventLogger(logger *zap.Logger) structuredCommandEventLogger {
	if logger == nil {
		logger = zap.NewNop()
	}
	return structuredCommandEventLogger{logger: logger}
}

func (eventLogger structuredCommandEventLogger) CommandStarted(command ShellCommand) {
	eventLogger.logger.Debug(commandStartedLogMessageConstant, commandFields(command)...)
}

func (eventLogger structuredCommandEventLogger) CommandCompleted(command ShellCommand, result ExecutionResult) {
	fields := append(commandFields(command), zap.Int(logFieldExitCodeConstant, result.ExitCode))
	if result.ExitCode == 0 {
		eventLogger.logger.Debug(commandCompletedLogMessageConstant, fields...)
		return
	}
	fields = append(fields, zap.String(logFieldStandardErrorConstant, result.StandardError))
	eventLogger.logger.Warn(commandFailedLogMessageConstant, fields...)
}

func (eventLogger structuredCommandEventLogger) CommandExecutionFailed(command ShellCommand, failure error) {
	eventLogger.logger.Error(commandExecutionFailedLogMessageConstant, append(commandFields(command), zap.Error(failure))...)
}

func commandFields(command ShellCommand) []zap.Field {
	return []zap.Field{
		zap.String(logFieldCommandNameConstant, string(command.Name)),
		zap.Strings(logFieldArgumentsConstant, command.Details.Arguments),
		zap.String(logFieldWorkingDirectoryConstant, command.Details.WorkingDirectory),
	}
}
