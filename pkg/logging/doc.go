// Package logging configures the process-wide slog logger for CLI use.
package logging
