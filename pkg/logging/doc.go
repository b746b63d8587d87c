// Package logging configures the process-wide structured logger.
//
// All packages log through log/slog; this package owns handler
// construction (level, format, destination) so commands can set up
// logging once at startup and everything downstream inherits it via
// slog's default logger.
package logging
