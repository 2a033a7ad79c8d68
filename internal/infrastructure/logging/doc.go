// Package logging provides structured logging for Hearth Core.
//
// It wraps the standard library's log/slog with configuration-driven
// format and level selection, plus default service fields attached to
// every record.
package logging
