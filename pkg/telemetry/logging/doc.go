// Package logging builds the process-wide slog logger from
// configuration and hands out per-component child loggers.
package logging
