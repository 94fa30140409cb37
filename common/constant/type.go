package constant

import (
	"bytes"
	"io"
	"sync"
)

// BufferReadWriteCloser is an io.ReadWriteCloser over an in-memory buffer,
// used as a test fixture for rendered output. It is safe for concurrent use.
type BufferReadWriteCloser struct {
	mu  sync.Mutex
	buf *bytes.Buffer
}

// BidirectionalPipe wraps io.Pipe to implement the ReadWriteCloser interface.
// Tests use pairs of them as in-memory streams.
type BidirectionalPipe struct {
	Reader *io.PipeReader
	Writer *io.PipeWriter
}

// ColorMode selects whether rendered tables carry escape sequences.
type ColorMode string

const (
	ColorAuto   ColorMode = "auto"
	ColorAlways ColorMode = "always"
	ColorNever  ColorMode = "never"
)
