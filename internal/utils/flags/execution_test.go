package flags

import (
	"testing"

	"github.com/spf13/cobra"
	"github.com/stretchr/testify/require"
)

func TestBindExecutionFlagsParsesValues(t *testing.T) {
	testCases := []struct {
		name          string
		definition    ExecutionFlagDefinition
		arguments     []string
		expectedValue bool
	}{
		{
			name:          "DryRunDefaultsToFalse",
			definition:    DryRunFlagDefinition(),
			arguments:     nil,
			expectedValue: false,
		},
		{
			name:          "DryRunLongForm",
			definition:    DryRunFlagDefinition(),
			arguments:     []string{"--dry-run"},
			expectedValue: true,
		},
		{
			name:          "ForceShorthand",
			definition:    ForceFlagDefinition(),
			arguments:     []string{"-f"},
			expectedValue: true,
		},
		{
			name:          "AllShorthand",
			definition:    AllFlagDefinition(),
			arguments:     []string{"-a"},
			expectedValue: true,
		},
	}

	for _, testCase := range testCases {
		t.Run(testCase.name, func(t *testing.T) {
			command := &cobra.Command{}
			BindExecutionFlags(command, testCase.definition)

			require.NoError(t, command.ParseFlags(testCase.arguments))

			flagValue, flagError := BoolFlagValue(command, testCase.definition.Name)
			require.NoError(t, flagError)
			require.Equal(t, testCase.expectedValue, flagValue)
		})
	}
}

func TestBindExecutionFlagsSkipsDisabledAndDuplicateDefinitions(t *testing.T) {
	command := &cobra.Command{}
	disabled := DryRunFlagDefinition()
	disabled.Enabled = false

	BindExecutionFlags(command, disabled)
	require.Nil(t, command.Flags().Lookup(DryRunFlagName))

	BindExecutionFlags(command, ForceFlagDefinition(), ForceFlagDefinition())
	require.NotNil(t, command.Flags().Lookup(ForceFlagName))
}

func TestBoolFlagValueTreatsUnknownFlagAsFalse(t *testing.T) {
	flagValue, flagError := BoolFlagValue(&cobra.Command{}, AllFlagName)
	require.NoError(t, flagError)
	require.False(t, flagValue)

	nilValue, nilError := BoolFlagValue(nil, AllFlagName)
	require.NoError(t, nilError)
	require.False(t, nilValue)
}
