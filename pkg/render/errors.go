package render

import "errors"

// The core is infallible by contract: every condition below is a programmer
// error, not a runtime failure of a well-formed scene. Each one aborts the
// render with a panic carrying the matching sentinel, so callers and tests
// can identify the kind with errors.Is.
var (
	// ErrArenaOverflow reports a push past the end of the frame arena.
	ErrArenaOverflow = errors.New("render: arena overflow")

	// ErrArenaUnderflow reports a pop larger than the live region or a pop
	// that does not match the most recent push (LIFO violation).
	ErrArenaUnderflow = errors.New("render: arena underflow")

	// ErrInvalidDepth reports an encoded fragment depth outside [0,1],
	// which indicates a matrix or depth-encoding bug.
	ErrInvalidDepth = errors.New("render: depth outside [0,1]")

	// ErrUnreachable reports an exhausted switch, e.g. a light variant the
	// fragment shader does not know.
	ErrUnreachable = errors.New("render: unreachable")
)
