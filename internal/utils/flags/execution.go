// Package flags provides helpers for binding standardized execution flags to Cobra commands.
package flags

import (
	"fmt"

	"github.com/spf13/cobra"
	"github.com/spf13/pflag"
)

const (
	// DryRunFlagName exposes the shared dry-run flag name.
	DryRunFlagName = "dry-run"
	// DryRunFlagUsage describes the shared dry-run flag purpose.
	DryRunFlagUsage = "Report pruned branches that would be deleted without deleting them"
	// ForceFlagName exposes the shared force flag name.
	ForceFlagName = "force"
	// ForceFlagShorthand provides the shorthand for the force flag.
	ForceFlagShorthand = "f"
	// ForceFlagUsage describes the shared force flag purpose.
	ForceFlagUsage = "Force push with lease"
	// AllFlagName exposes the shared all flag name.
	AllFlagName = "all"
	// AllFlagShorthand provides the shorthand for the all flag.
	AllFlagShorthand = "a"
	// AllFlagUsage describes the shared all flag purpose.
	AllFlagUsage = "Stage untracked files as well as tracked changes"

	flagLookupErrorTemplateConstant = "unable to read flag %s: %w"
)

// ExecutionFlagDefinition captures a single flag's configuration.
type ExecutionFlagDefinition struct {
	Name      string
	Usage     string
	Shorthand string
	Enabled   bool
}

// DryRunFlagDefinition returns the standard dry-run flag definition.
func DryRunFlagDefinition() ExecutionFlagDefinition {
	return ExecutionFlagDefinition{Name: DryRunFlagName, Usage: DryRunFlagUsage, Enabled: true}
}

// ForceFlagDefinition returns the standard force flag definition.
func ForceFlagDefinition() ExecutionFlagDefinition {
	return ExecutionFlagDefinition{Name: ForceFlagName, Usage: ForceFlagUsage, Shorthand: ForceFlagShorthand, Enabled: true}
}

// AllFlagDefinition returns the standard all flag definition.
func AllFlagDefinition() ExecutionFlagDefinition {
	return ExecutionFlagDefinition{Name: AllFlagName, Usage: AllFlagUsage, Shorthand: AllFlagShorthand, Enabled: true}
}

// BindExecutionFlags attaches the provided boolean flags to the command using local scope.
func BindExecutionFlags(command *cobra.Command, definitions ...ExecutionFlagDefinition) {
	if command == nil {
		return
	}

	for _, definition := range definitions {
		bindBoolFlag(command.Flags(), definition, false)
	}
}

// BoolFlagValue reads a boolean flag, treating an unregistered flag as false.
func BoolFlagValue(command *cobra.Command, flagName string) (bool, error) {
	if command == nil {
		return false, nil
	}
	if command.Flags().Lookup(flagName) == nil {
		return false, nil
	}

	flagValue, flagError := command.Flags().GetBool(flagName)
	if flagError != nil {
		return false, fmt.Errorf(flagLookupErrorTemplateConstant, flagName, flagError)
	}
	return flagValue, nil
}

func bindBoolFlag(flagSet *pflag.FlagSet, definition ExecutionFlagDefinition, defaultValue bool) {
	if flagSet == nil {
		return
	}
	if !definition.Enabled {
		return
	}
	if len(definition.Name) == 0 {
		return
	}
	if flagSet.Lookup(definition.Name) != nil {
		return
	}

	if len(definition.Shorthand) > 0 {
		flagSet.BoolP(definition.Name, definition.Shorthand, defaultValue, definition.Usage)
		return
	}

	flagSet.Bool(definition.Name, defaultValue, definition.Usage)
}
