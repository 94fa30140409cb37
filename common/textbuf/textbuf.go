package textbuf

import (
	"errors"
	"fmt"
	"strings"
)

var (
	// ErrAllocation is returned when the allocator refuses to grow the buffer.
	ErrAllocation = errors.New("text buffer allocation failed")
	// ErrNulByte is returned for fragments that carry a NUL byte.
	ErrNulByte = errors.New("fragment contains NUL byte")
)

// Allocator hands out the storage a Buffer grows into.
// Grow must return a slice of exactly len(old)+n bytes whose first len(old)
// bytes equal old, or an error. It must not modify old.
type Allocator interface {
	Grow(old []byte, n int) ([]byte, error)
}

// Exact grows by precisely the requested amount, never more.
type Exact struct{}

func (Exact) Grow(old []byte, n int) ([]byte, error) {
	grown := make([]byte, len(old)+n)
	copy(grown, old)
	return grown, nil
}

// Limit behaves like Exact but refuses to hold more than Max bytes in total.
type Limit struct {
	Max int
}

func (l Limit) Grow(old []byte, n int) ([]byte, error) {
	if len(old)+n > l.Max {
		return nil, fmt.Errorf("%w: need %d bytes, limit is %d", ErrAllocation, len(old)+n, l.Max)
	}
	return Exact{}.Grow(old, n)
}

// Buffer is an append-only text accumulator with exact-growth semantics.
type Buffer struct {
	data  []byte
	alloc Allocator
}

// New creates an empty buffer. A nil allocator selects Exact.
func New(alloc Allocator) *Buffer {
	if alloc == nil {
		alloc = Exact{}
	}
	return &Buffer{alloc: alloc}
}

// Append copies fragment after the current content. On failure the buffer is
// left exactly as it was.
func (b *Buffer) Append(fragment string) error {
	if len(fragment) == 0 {
		return nil
	}
	if strings.IndexByte(fragment, 0) >= 0 {
		return ErrNulByte
	}
	grown, err := b.alloc.Grow(b.data, len(fragment))
	if err != nil {
		if !errors.Is(err, ErrAllocation) {
			err = fmt.Errorf("%w: %v", ErrAllocation, err)
		}
		return err
	}
	if len(grown) != len(b.data)+len(fragment) {
		return fmt.Errorf("%w: allocator returned %d bytes, want %d", ErrAllocation, len(grown), len(b.data)+len(fragment))
	}
	copy(grown[len(b.data):], fragment)
	b.data = grown
	return nil
}

// Appendf formats first, so the exact fragment length is known before growing.
func (b *Buffer) Appendf(format string, args ...any) error {
	return b.Append(fmt.Sprintf(format, args...))
}

// AppendRepeat appends s count times as a single fragment.
func (b *Buffer) AppendRepeat(s string, count int) error {
	if count <= 0 {
		return nil
	}
	return b.Append(strings.Repeat(s, count))
}

func (b *Buffer) Len() int {
	return len(b.data)
}

// Finish hands the content over and leaves the buffer empty.
func (b *Buffer) Finish() string {
	s := string(b.data)
	b.data = nil
	return s
}
