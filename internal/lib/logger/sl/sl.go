package sl

import "log/slog"

// Err wraps an error as a slog attribute so every error log line carries
// the same key.
func Err(err error) slog.Attr {
	return slog.Attr{
		Key:   "error",
		Value: slog.StringValue(err.Error()),
	}
}
