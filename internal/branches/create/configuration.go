package create

import "strings"

// CommandConfiguration captures configuration values for the new command.
type CommandConfiguration struct {
	Prefix string `mapstructure:"prefix"`
}

// DefaultCommandConfiguration provides baseline configuration values for the new command.
func DefaultCommandConfiguration() CommandConfiguration {
	return CommandConfiguration{Prefix: ""}
}

// Sanitize removes surrounding whitespace from configured values.
func (configuration CommandConfiguration) Sanitize() CommandConfiguration {
	sanitized := configuration
	sanitized.Prefix = strings.TrimSpace(configuration.Prefix)
	return sanitized
}
