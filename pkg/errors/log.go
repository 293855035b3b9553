package errors

import "go.uber.org/zap"

// LogHandler is an ErrorHandler that writes recovered errors to a zap logger.
type LogHandler struct {
	// Log receives the errors. A nil logger discards them.
	Log *zap.Logger
	// Verbose raises the level from Debug to Warn.
	Verbose bool
}

// HandleError logs an Error.
func (h *LogHandler) HandleError(err *Error) {
	if err == nil || h.Log == nil {
		return
	}
	fields := []zap.Field{
		zap.String("op", err.Op),
		zap.Stringer("kind", err.Kind),
		zap.Error(err.Err),
	}
	if err.Resource != "" {
		fields = append(fields, zap.String("resource", err.Resource))
	}
	if h.Verbose {
		h.Log.Warn("Recovered elevation error", fields...)
		return
	}
	h.Log.Debug("Recovered elevation error", fields...)
}
