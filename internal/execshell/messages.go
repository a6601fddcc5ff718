package execshell

import (
	"fmt"
	"strings"
)

type messageStage int

const (
	messageStageStart messageStage = iota
	messageStageSuccess
	messageStageFailure
	messageStageExecutionFailure
)

const (
	genericStartTemplateConstant            = "Running %s"
	genericSuccessTemplateConstant          = "Completed %s"
	genericFailureTemplateConstant          = "%s failed with exit code %d%s"
	genericExecutionFailureTemplateConstant = "%s failed: %s"
	commandLabelTemplateConstant            = "%s%s"
	workingDirectorySuffixTemplateConstant  = " (in %s)"
	commandArgumentsJoinSeparatorConstant   = " "
	standardErrorSuffixTemplateConstant     = ": %s"
	unknownFailureMessageConstant           = "unknown error"
	emptyStringConstant                     = ""
	defaultWorkingDirectoryLabelConstant    = "current directory"
	fallbackUnknownValueLabelConstant       = "unknown"
	flagPrefixConstant                      = "-"
)

const (
	gitRevParseSubcommandNameConstant   = "rev-parse"
	gitForEachRefSubcommandNameConstant = "for-each-ref"
	gitSwitchSubcommandNameConstant     = "switch"
	gitBranchSubcommandNameConstant     = "branch"
	gitFetchSubcommandNameConstant      = "fetch"
	gitPullSubcommandNameConstant       = "pull"
	gitPushSubcommandNameConstant       = "push"
	gitAddSubcommandNameConstant        = "add"
	gitCommitSubcommandNameConstant     = "commit"
	gitPruneFlagConstant                = "--prune"
	gitForceWithLeaseFlagConstant       = "--force-with-lease"
	gitAllFlagConstant                  = "--all"
	gitMessageFlagConstant              = "--message"
	gitStagingAllLabelConstant          = "all changes"
	gitStagingTrackedLabelConstant      = "tracked changes"
	gitDefaultPushTargetLabelConstant   = "current branch"
	gitDefaultRemoteLabelConstant       = "its upstream"
)

const (
	gitCurrentBranchStartTemplateConstant             = "Identifying current branch in %s"
	gitCurrentBranchSuccessTemplateConstant           = "Current branch in %s is %s"
	gitCurrentBranchFailureTemplateConstant           = "Failed to identify current branch in %s (exit code %d%s)"
	gitCurrentBranchExecutionFailureTemplateConstant  = "Unable to identify current branch in %s: %s"
	gitListBranchesStartTemplateConstant              = "Listing local branches in %s"
	gitListBranchesSuccessTemplateConstant            = "Listed local branches in %s"
	gitListBranchesFailureTemplateConstant            = "Failed to list local branches in %s (exit code %d%s)"
	gitListBranchesExecutionFailureTemplateConstant   = "Unable to list local branches in %s: %s"
	gitSwitchCreateStartTemplateConstant              = "Creating branch %s in %s"
	gitSwitchCreateSuccessTemplateConstant            = "Created branch %s in %s"
	gitSwitchCreateFailureTemplateConstant            = "Failed to create branch %s in %s (exit code %d%s)"
	gitSwitchCreateExecutionFailureTemplateConstant   = "Unable to create branch %s in %s: %s"
	gitBranchDeletionStartTemplateConstant            = "Force removing local branch %s in %s"
	gitBranchDeletionSuccessTemplateConstant          = "Removed local branch %s in %s"
	gitBranchDeletionFailureTemplateConstant          = "Failed to remove local branch %s in %s (exit code %d%s)"
	gitBranchDeletionExecutionFailureTemplateConstant = "Unable to remove local branch %s in %s: %s"
	gitSynchronizeStartTemplateConstant               = "Running %s with pruning in %s"
	gitSynchronizeSuccessTemplateConstant             = "Completed %s with pruning in %s"
	gitSynchronizeFailureTemplateConstant             = "Failed to %s with pruning in %s (exit code %d%s)"
	gitSynchronizeExecutionFailureTemplateConstant    = "Unable to %s with pruning in %s: %s"
	gitPushStartTemplateConstant                      = "Pushing %s to %s from %s"
	gitForcePushStartTemplateConstant                 = "Force pushing %s to %s from %s"
	gitPushSuccessTemplateConstant                    = "Pushed %s to %s from %s"
	gitPushFailureTemplateConstant                    = "Failed to push %s to %s from %s (exit code %d%s)"
	gitPushExecutionFailureTemplateConstant           = "Unable to push %s to %s from %s: %s"
	gitAddStartTemplateConstant                       = "Staging %s in %s"
	gitAddSuccessTemplateConstant                     = "Staged %s in %s"
	gitAddFailureTemplateConstant                     = "Failed to stage %s in %s (exit code %d%s)"
	gitAddExecutionFailureTemplateConstant            = "Unable to stage %s in %s: %s"
	gitCommitStartTemplateConstant                    = "Creating commit in %s with message %q"
	gitCommitSuccessTemplateConstant                  = "Created commit in %s with message %q"
	gitCommitFailureTemplateConstant                  = "Failed to create commit in %s with message %q (exit code %d%s)"
	gitCommitExecutionFailureTemplateConstant         = "Unable to create commit in %s with message %q: %s"
)

// stageTemplates holds one message template per lifecycle stage.
type stageTemplates struct {
	start            string
	success          string
	failure          string
	executionFailure string
}

// CommandMessageFormatter builds human-readable messages for command lifecycle events.
type CommandMessageFormatter struct{}

// BuildStartedMessage formats the message describing a command about to run.
func (formatter CommandMessageFormatter) BuildStartedMessage(command ShellCommand) string {
	return formatter.buildMessage(command, ExecutionResult{}, nil, messageStageStart)
}

// BuildSuccessMessage formats the message describing a completed command with a zero exit code.
func (formatter CommandMessageFormatter) BuildSuccessMessage(command ShellCommand, result ExecutionResult) string {
	return formatter.buildMessage(command, result, nil, messageStageSuccess)
}

// BuildFailureMessage formats the message describing a command that returned a non-zero exit code.
func (formatter CommandMessageFormatter) BuildFailureMessage(command ShellCommand, result ExecutionResult) string {
	return formatter.buildMessage(command, result, nil, messageStageFailure)
}

// BuildExecutionFailureMessage formats the message describing an unexpected execution failure.
func (formatter CommandMessageFormatter) BuildExecutionFailureMessage(command ShellCommand, failure error) string {
	return formatter.buildMessage(command, ExecutionResult{}, failure, messageStageExecutionFailure)
}

func (formatter CommandMessageFormatter) buildMessage(command ShellCommand, result ExecutionResult, failure error, stage messageStage) string {
	if command.Name != CommandGit || len(command.Details.Arguments) == 0 {
		return formatter.buildGenericMessage(command, result, failure, stage)
	}

	arguments := command.Details.Arguments
	workingDirectory := formatter.describeWorkingDirectory(command)

	switch strings.TrimSpace(arguments[0]) {
	case gitRevParseSubcommandNameConstant:
		if stage == messageStageSuccess {
			return fmt.Sprintf(gitCurrentBranchSuccessTemplateConstant, workingDirectory, formatter.ensureValue(firstLine(result.StandardOutput)))
		}
		return formatter.render(stageTemplates{
			start:            gitCurrentBranchStartTemplateConstant,
			failure:          gitCurrentBranchFailureTemplateConstant,
			executionFailure: gitCurrentBranchExecutionFailureTemplateConstant,
		}, stage, result, failure, workingDirectory)
	case gitForEachRefSubcommandNameConstant:
		return formatter.render(stageTemplates{
			start:            gitListBranchesStartTemplateConstant,
			success:          gitListBranchesSuccessTemplateConstant,
			failure:          gitListBranchesFailureTemplateConstant,
			executionFailure: gitListBranchesExecutionFailureTemplateConstant,
		}, stage, result, failure, workingDirectory)
	case gitSwitchSubcommandNameConstant:
		return formatter.render(stageTemplates{
			start:            gitSwitchCreateStartTemplateConstant,
			success:          gitSwitchCreateSuccessTemplateConstant,
			failure:          gitSwitchCreateFailureTemplateConstant,
			executionFailure: gitSwitchCreateExecutionFailureTemplateConstant,
		}, stage, result, failure, formatter.lastPositional(arguments), workingDirectory)
	case gitBranchSubcommandNameConstant:
		return formatter.render(stageTemplates{
			start:            gitBranchDeletionStartTemplateConstant,
			success:          gitBranchDeletionSuccessTemplateConstant,
			failure:          gitBranchDeletionFailureTemplateConstant,
			executionFailure: gitBranchDeletionExecutionFailureTemplateConstant,
		}, stage, result, failure, formatter.lastPositional(arguments), workingDirectory)
	case gitFetchSubcommandNameConstant, gitPullSubcommandNameConstant:
		if !containsArgument(arguments, gitPruneFlagConstant) {
			return formatter.buildGenericMessage(command, result, failure, stage)
		}
		return formatter.render(stageTemplates{
			start:            gitSynchronizeStartTemplateConstant,
			success:          gitSynchronizeSuccessTemplateConstant,
			failure:          gitSynchronizeFailureTemplateConstant,
			executionFailure: gitSynchronizeExecutionFailureTemplateConstant,
		}, stage, result, failure, strings.TrimSpace(arguments[0]), workingDirectory)
	case gitPushSubcommandNameConstant:
		return formatter.describeGitPushMessage(command, result, failure, stage)
	case gitAddSubcommandNameConstant:
		stagingLabel := gitStagingTrackedLabelConstant
		if containsArgument(arguments, gitAllFlagConstant) {
			stagingLabel = gitStagingAllLabelConstant
		}
		return formatter.render(stageTemplates{
			start:            gitAddStartTemplateConstant,
			success:          gitAddSuccessTemplateConstant,
			failure:          gitAddFailureTemplateConstant,
			executionFailure: gitAddExecutionFailureTemplateConstant,
		}, stage, result, failure, stagingLabel, workingDirectory)
	case gitCommitSubcommandNameConstant:
		return formatter.render(stageTemplates{
			start:            gitCommitStartTemplateConstant,
			success:          gitCommitSuccessTemplateConstant,
			failure:          gitCommitFailureTemplateConstant,
			executionFailure: gitCommitExecutionFailureTemplateConstant,
		}, stage, result, failure, workingDirectory, formatter.flagValue(arguments, gitMessageFlagConstant))
	default:
		return formatter.buildGenericMessage(command, result, failure, stage)
	}
}

func (formatter CommandMessageFormatter) describeGitPushMessage(command ShellCommand, result ExecutionResult, failure error, stage messageStage) string {
	arguments := command.Details.Arguments
	workingDirectory := formatter.describeWorkingDirectory(command)
	positionalArguments := formatter.positionalArguments(arguments[1:])

	remoteName := gitDefaultRemoteLabelConstant
	branchName := gitDefaultPushTargetLabelConstant
	if len(positionalArguments) > 0 {
		remoteName = positionalArguments[0]
	}
	if len(positionalArguments) > 1 {
		branchName = positionalArguments[1]
	}

	startTemplate := gitPushStartTemplateConstant
	if containsArgument(arguments, gitForceWithLeaseFlagConstant) {
		startTemplate = gitForcePushStartTemplateConstant
	}

	return formatter.render(stageTemplates{
		start:            startTemplate,
		success:          gitPushSuccessTemplateConstant,
		failure:          gitPushFailureTemplateConstant,
		executionFailure: gitPushExecutionFailureTemplateConstant,
	}, stage, result, failure, branchName, remoteName, workingDirectory)
}

// render applies the stage template; failure templates receive the exit code and
// standard error suffix, execution failure templates receive the failure description.
func (formatter CommandMessageFormatter) render(templates stageTemplates, stage messageStage, result ExecutionResult, failure error, values ...any) string {
	switch stage {
	case messageStageStart:
		return fmt.Sprintf(templates.start, values...)
	case messageStageSuccess:
		return fmt.Sprintf(templates.success, values...)
	case messageStageFailure:
		failureValues := append(append([]any{}, values...), result.ExitCode, formatter.formatStandardErrorSuffix(result.StandardError))
		return fmt.Sprintf(templates.failure, failureValues...)
	case messageStageExecutionFailure:
		failureValues := append(append([]any{}, values...), formatter.describeFailure(failure))
		return fmt.Sprintf(templates.executionFailure, failureValues...)
	default:
		return emptyStringConstant
	}
}

func (formatter CommandMessageFormatter) buildGenericMessage(command ShellCommand, result ExecutionResult, failure error, stage messageStage) string {
	commandLabel := formatter.formatCommandLabel(command)
	switch stage {
	case messageStageStart:
		return fmt.Sprintf(genericStartTemplateConstant, commandLabel)
	case messageStageSuccess:
		return fmt.Sprintf(genericSuccessTemplateConstant, commandLabel)
	case messageStageFailure:
		return fmt.Sprintf(genericFailureTemplateConstant, commandLabel, result.ExitCode, formatter.formatStandardErrorSuffix(result.StandardError))
	case messageStageExecutionFailure:
		return fmt.Sprintf(genericExecutionFailureTemplateConstant, commandLabel, formatter.describeFailure(failure))
	default:
		return emptyStringConstant
	}
}

func (formatter CommandMessageFormatter) formatCommandLabel(command ShellCommand) string {
	commandLabel := string(command.Name)
	if len(command.Details.Arguments) > 0 {
		commandLabel = fmt.Sprintf("%s %s", commandLabel, strings.Join(command.Details.Arguments, commandArgumentsJoinSeparatorConstant))
	}
	workingDirectorySuffix := formatter.formatWorkingDirectorySuffix(command)
	return fmt.Sprintf(commandLabelTemplateConstant, commandLabel, workingDirectorySuffix)
}

func (formatter CommandMessageFormatter) formatWorkingDirectorySuffix(command ShellCommand) string {
	trimmedWorkingDirectory := strings.TrimSpace(command.Details.WorkingDirectory)
	if len(trimmedWorkingDirectory) == 0 {
		return emptyStringConstant
	}
	return fmt.Sprintf(workingDirectorySuffixTemplateConstant, trimmedWorkingDirectory)
}

func (formatter CommandMessageFormatter) formatStandardErrorSuffix(standardError string) string {
	trimmedStandardError := strings.TrimSpace(standardError)
	if len(trimmedStandardError) == 0 {
		return emptyStringConstant
	}
	return fmt.Sprintf(standardErrorSuffixTemplateConstant, trimmedStandardError)
}

func (formatter CommandMessageFormatter) describeWorkingDirectory(command ShellCommand) string {
	trimmedWorkingDirectory := strings.TrimSpace(command.Details.WorkingDirectory)
	if len(trimmedWorkingDirectory) == 0 {
		return defaultWorkingDirectoryLabelConstant
	}
	return trimmedWorkingDirectory
}

func (formatter CommandMessageFormatter) describeFailure(failure error) string {
	if failure == nil {
		return unknownFailureMessageConstant
	}
	return failure.Error()
}

func (formatter CommandMessageFormatter) ensureValue(value string) string {
	trimmedValue := strings.TrimSpace(value)
	if len(trimmedValue) == 0 {
		return fallbackUnknownValueLabelConstant
	}
	return trimmedValue
}

func (formatter CommandMessageFormatter) positionalArguments(arguments []string) []string {
	positional := make([]string, 0, len(arguments))
	for _, argument := range arguments {
		trimmedArgument := strings.TrimSpace(argument)
		if len(trimmedArgument) == 0 || strings.HasPrefix(trimmedArgument, flagPrefixConstant) {
			continue
		}
		positional = append(positional, trimmedArgument)
	}
	return positional
}

func (formatter CommandMessageFormatter) lastPositional(arguments []string) string {
	positional := formatter.positionalArguments(arguments[1:])
	if len(positional) == 0 {
		return fallbackUnknownValueLabelConstant
	}
	return positional[len(positional)-1]
}

func (formatter CommandMessageFormatter) flagValue(arguments []string, flagName string) string {
	for argumentIndex, argument := range arguments {
		if strings.TrimSpace(argument) == flagName && argumentIndex+1 < len(arguments) {
			return arguments[argumentIndex+1]
		}
	}
	return emptyStringConstant
}

func containsArgument(arguments []string, value string) bool {
	for _, argument := range arguments {
		if strings.TrimSpace(argument) == value {
			return true
		}
	}
	return false
}

func firstLine(output string) string {
	lines := strings.SplitN(strings.TrimSpace(output), "\n", 2)
	return lines[0]
}
