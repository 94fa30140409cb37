package constant

import (
	"bytes"
	"io"
)

func NewBufferReadWriteCloser() *BufferReadWriteCloser {
	return &BufferReadWriteCloser{buf: &bytes.Buffer{}}
}

func (b *BufferReadWriteCloser) Read(p []byte) (int, error) {
	b.mu.Lock()
	defer b.mu.Unlock()
	return b.buf.Read(p)
}

func (b *BufferReadWriteCloser) Write(p []byte) (int, error) {
	b.mu.Lock()
	defer b.mu.Unlock()
	return b.buf.Write(p)
}

func (b *BufferReadWriteCloser) Close() error {
	return nil
}

func (b *BufferReadWriteCloser) String() string {
	b.mu.Lock()
	defer b.mu.Unlock()
	return b.buf.String()
}

func NewBidirectionalPipePair() (*BidirectionalPipe, *BidirectionalPipe) {
	reader1, writer1 := io.Pipe()
	reader2, writer2 := io.Pipe()
	return &BidirectionalPipe{
			Reader: reader1,
			Writer: writer2,
		}, &BidirectionalPipe{
			Reader: reader2,
			Writer: writer1,
		}
}

func (pw *BidirectionalPipe) Read(b []byte) (n int, err error) {
	return pw.Reader.Read(b)
}

func (pw *BidirectionalPipe) Write(b []byte) (n int, err error) {
	return pw.Writer.Write(b)
}

func (pw *BidirectionalPipe) Close() error {
	err1 := pw.Reader.Close()
	err2 := pw.Writer.Close()
	if err1 != nil {
		return err1
	}
	return err2
}

// Valid reports whether m is one of the known color modes.
func (m ColorMode) Valid() bool {
	switch m {
	case ColorAuto, ColorAlways, ColorNever:
		return true
	}
	return false
}
