package errors

import (
	"sync/atomic"
	"time"
)

// ErrorHandler receives errors recovered by the elevation packages.
type ErrorHandler interface {
	// HandleError is called when a best-effort operation swallowed an error.
	HandleError(err *Error)
}

// HandlerFunc adapts a function to ErrorHandler.
type HandlerFunc func(err *Error)

// HandleError calls f(err).
func (f HandlerFunc) HandleError(err *Error) { f(err) }

// the interface is boxed so atomic.Pointer can hold any implementation
type handlerBox struct{ h ErrorHandler }

var current atomic.Pointer[handlerBox]

func init() {
	current.Store(&handlerBox{h: &LogHandler{}})
}

// Handler returns the global error handler. It starts as a LogHandler
// without a logger, which discards everything.
func Handler() ErrorHandler {
	return current.Load().h
}

// SetHandler installs h as the global error handler and returns the one it
// replaced, so tests can restore it with a deferred call. A nil h restores
// the discarding LogHandler.
func SetHandler(h ErrorHandler) (previous ErrorHandler) {
	if h == nil {
		h = &LogHandler{}
	}
	return current.Swap(&handlerBox{h: h}).h
}

// Report sends err to the global handler, stamping it with the current time
// if it has none.
func Report(err *Error) {
	if err == nil {
		return
	}
	if err.Timestamp.IsZero() {
		err.Timestamp = time.Now()
	}
	Handler().HandleError(err)
}
