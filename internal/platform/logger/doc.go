// Package logger sets up the process-wide slog JSON logger from
// configuration and passes request- or command-scoped loggers through a
// context. Test helpers capture entries for assertions.
package logger
