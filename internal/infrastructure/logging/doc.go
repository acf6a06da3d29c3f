// Package logging provides the shell host's structured logger, a thin
// wrapper over zap with console encoding in development and JSON in
// production.
package logging
