package create_test

import (
	"bytes"
	"context"
	"testing"

	"github.com/stretchr/testify/require"

	"github.com/temirov/loki/internal/branches/create"
)

func TestCommandBuilderBuild(testInstance *testing.T) {
	builder := create.CommandBuilder{}
	command, buildError := builder.Build()
	require.NoError(testInstance, buildError)
	require.Equal(testInstance, "new", command.Name())
	require.Contains(testInstance, command.Aliases, "n")
}

func TestCommandCreatesBranch(testInstance *testing.T) {
	testCases := []struct {
		name              string
		configuration     create.CommandConfiguration
		arguments         []string
		expectedArguments [][]string
		expectedNotice    string
	}{
		{
			name:      "without_prefix",
			arguments: []string{"add", "metrics"},
			expectedArguments: [][]string{
				{"switch", "--create", "add-metrics"},
				{"push", "--set-upstream", "origin", "add-metrics"},
			},
		},
		{
			name:          "with_prefix",
			configuration: create.CommandConfiguration{Prefix: " team/ "},
			arguments:     []string{"add", "metrics"},
			expectedArguments: [][]string{
				{"switch", "--create", "team/add-metrics"},
				{"push", "--set-upstream", "origin", "team/add-metrics"},
			},
			expectedNotice: "Using branch prefix \"team/\"\n",
		},
	}

	for _, testCase := range testCases {
		testInstance.Run(testCase.name, func(testInstance *testing.T) {
			executor := &recordingGitExecutor{}
			configuration := testCase.configuration
			builder := create.CommandBuilder{
				GitExecutor:           executor,
				ConfigurationProvider: func() create.CommandConfiguration { return configuration },
				WorkingDirectory:      testRepositoryPathConstant,
			}
			command, buildError := builder.Build()
			require.NoError(testInstance, buildError)

			errorBuffer := &bytes.Buffer{}
			command.SetOut(&bytes.Buffer{})
			command.SetErr(errorBuffer)
			command.SetContext(context.Background())
			command.SetArgs(testCase.arguments)

			require.NoError(testInstance, command.Execute())
			require.Equal(testInstance, testCase.expectedArguments, executor.argumentLists())
			require.Equal(testInstance, testCase.expectedNotice, errorBuffer.String())
		})
	}
}

func TestCommandRequiresName(testInstance *testing.T) {
	executor := &recordingGitExecutor{}
	builder := create.CommandBuilder{GitExecutor: executor}
	command, buildError := builder.Build()
	require.NoError(testInstance, buildError)

	command.SetOut(&bytes.Buffer{})
	command.SetErr(&bytes.Buffer{})
	command.SetArgs([]string{})

	require.ErrorIs(testInstance, command.Execute(), create.ErrBranchNameRequired)
	require.Empty(testInstance, executor.recorded)
}
