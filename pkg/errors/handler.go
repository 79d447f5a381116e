package errors

import (
	"fmt"
	"os"
	"sync"
)

// Handler receives errors reported by the Tide engine.
//
// Asynchronous paths (component loading, the engine frame loop) cannot
// return errors to a caller, so they report through the active handler
// instead of swallowing failures.
type Handler interface {
	// HandleError is called when an error occurs.
	HandleError(err *TideError)
}

var (
	handlerMu sync.RWMutex
	handler   Handler = &LogHandler{}
)

// SetHandler replaces the active error handler. Returns the previous
// handler so callers can restore it during cleanup.
func SetHandler(h Handler) Handler {
	handlerMu.Lock()
	defer handlerMu.Unlock()
	prev := handler
	handler = h
	return prev
}

// Report sends an error to the active handler. Nil errors are ignored.
func Report(err *TideError) {
	if err == nil {
		return
	}
	handlerMu.RLock()
	h := handler
	handlerMu.RUnlock()
	if h != nil {
		h.HandleError(err)
	}
}

// LogHandler is a Handler that logs errors to stderr.
type LogHandler struct {
	// Verbose enables detailed output including timestamps.
	Verbose bool
}

// HandleError logs a TideError to stderr.
func (h *LogHandler) HandleError(err *TideError) {
	if err == nil {
		return
	}
	if h.Verbose {
		fmt.Fprintf(os.Stderr, "[tide error] %s [%s] at %s: %v\n",
			err.Op, err.Kind, err.Timestamp.Format("15:04:05.000"), err.Err)
	} else {
		fmt.Fprintf(os.Stderr, "[tide error] %s: %v\n", err.Op, err.Err)
	}
}
