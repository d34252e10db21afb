package tui

import "errors"

var (
	// ErrAborted signals the user aborted input (Ctrl+C or end of input).
	ErrAborted = errors.New("tui: aborted")
	// ErrUnbound is returned when a prompt is asked before a binding applied
	// its props.
	ErrUnbound = errors.New("tui: prompt has no props")
	// ErrRejected is reported to the driver when the binding would drop an
	// answer, so the driver asks again.
	ErrRejected = errors.New("tui: value not accepted")
)
