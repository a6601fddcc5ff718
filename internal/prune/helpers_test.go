package prune_test

import (
	"context"
	"fmt"
	"strings"

	"github.com/temirov/loki/internal/execshell"
)

const (
	testRepositoryPathConstant = "/tmp/loki-repository"
	testCurrentBranchConstant  = "main"
)

type scriptedResponse struct {
	result execshell.ExecutionResult
	err    error
}

// scriptedGitExecutor answers git invocations by their joined argument list.
type scriptedGitExecutor struct {
	responses map[string]scriptedResponse
	recorded  []execshell.CommandDetails
}

func newScriptedGitExecutor() *scriptedGitExecutor {
	return &scriptedGitExecutor{responses: map[string]scriptedResponse{}}
}

func (executor *scriptedGitExecutor) respond(arguments []string, result execshell.ExecutionResult, err error) {
	executor.responses[strings.Join(arguments, " ")] = scriptedResponse{result: result, err: err}
}

func (executor *scriptedGitExecutor) ExecuteGit(_ context.Context, details execshell.CommandDetails) (execshell.ExecutionResult, error) {
	executor.recorded = append(executor.recorded, details)
	response, exists := executor.responses[strings.Join(details.Arguments, " ")]
	if !exists {
		return execshell.ExecutionResult{}, nil
	}
	if response.err != nil {
		return execshell.ExecutionResult{}, response.err
	}
	return response.result, nil
}

func (executor *scriptedGitExecutor) deletedBranches() []string {
	var branchNames []string
	for _, details := range executor.recorded {
		if len(details.Arguments) == 3 && details.Arguments[0] == "branch" && details.Arguments[1] == "-D" {
			branchNames = append(branchNames, details.Arguments[2])
		}
	}
	return branchNames
}

type recordingReporter struct {
	lines    []string
	warnings []string
	failures []string
}

func (reporter *recordingReporter) Line(text string) {
	reporter.lines = append(reporter.lines, text)
}

func (reporter *recordingReporter) Warningf(format string, args ...any) {
	reporter.warnings = append(reporter.warnings, fmt.Sprintf(format, args...))
}

func (reporter *recordingReporter) Failuref(format string, args ...any) {
	reporter.failures = append(reporter.failures, fmt.Sprintf(format, args...))
}

type stubRepositoryManager struct {
	currentBranch      string
	currentBranchError error
	localBranches      []string
	localBranchesError error
}

func (manager *stubRepositoryManager) GetCurrentBranch(context.Context, string) (string, error) {
	return manager.currentBranch, manager.currentBranchError
}

func (manager *stubRepositoryManager) ListLocalBranches(context.Context, string) ([]string, error) {
	return manager.localBranches, manager.localBranchesError
}

func prunedLine(branchName string) string {
	return fmt.Sprintf(" - [deleted]         (none)     -> origin/%s", branchName)
}
