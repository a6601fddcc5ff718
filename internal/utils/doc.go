// Package utils exposes reusable helpers consumed by multiple commands.
//
// It houses the ConfigurationLoader, LoggerFactory, and FlushingWriter
// abstractions that integrate Viper, environment variables, and zap logging
// for the lk CLI.
package utils
