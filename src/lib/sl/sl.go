// Package sl holds slog helpers.
package sl

import "log/slog"

// Err returns an "error" attribute for structured log lines.
func Err(err error) slog.Attr {
	return slog.Attr{
		Key:   "error",
		Value: slog.StringValue(err.Error()),
	}
}
