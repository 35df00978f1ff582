package pipe

import "errors"

// Connection and indexing errors, raised at the call site per the
// AddSource/RemoveSource contract, as typed sentinels rather than bare
// strings so callers can branch on kind with errors.Is.
var (
	// ErrNullArg is returned when a required Pipe argument was nil.
	ErrNullArg = errors.New("pipe: nil argument")
	// ErrDuplicate is returned when a Pipe is already connected as a
	// source or sink of the other side of the connection.
	ErrDuplicate = errors.New("pipe: already connected")
	// ErrSinkFull is returned when a Pipe's sink capacity is exhausted.
	ErrSinkFull = errors.New("pipe: sink capacity exceeded")
	// ErrSourceFull is returned when a Pipe's source capacity is
	// exhausted.
	ErrSourceFull = errors.New("pipe: source capacity exceeded")
	// ErrIndexOutOfRange is returned by indexed source/sink access
	// outside of [0, count).
	ErrIndexOutOfRange = errors.New("pipe: index out of range")
)
