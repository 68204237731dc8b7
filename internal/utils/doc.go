// Package utils exposes reusable helpers consumed by the partscan command.
//
// It houses ConfigurationLoader and LoggerFactory abstractions that integrate
// Viper, environment variables, and zap logging for the CLI, plus the
// FlushingWriter used for progress output.
package utils
