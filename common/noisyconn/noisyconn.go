package noisyconn

import (
	"fmt"
	"io"
	"net"
	"sync"
	"sync/atomic"

	"hextable/common/annotation"
	"hextable/common/hexdump"

	"github.com/charmbracelet/log"
)

// Stream is what NoisyConn wraps: a byte stream with a peer address.
type Stream interface {
	io.ReadWriteCloser
	RemoteAddr() net.Addr
}

// Options controls how traffic is rendered.
type Options struct {
	Renderer *hexdump.Renderer
	Table    *annotation.Table
	Out      io.Writer
	Colored  bool
	Title    string // prefix for every table title, defaults to the peer address
	Tail     string
}

// NoisyConn is a wrapper around a Stream that renders every read and write
// as hex tables.
type NoisyConn struct {
	Stream
	opts   Options
	outMu  sync.Mutex
	reads  atomic.Int64
	writes atomic.Int64
}

func NewNoisyConn(s Stream, opts Options) *NoisyConn {
	if opts.Renderer == nil {
		opts.Renderer = hexdump.NewRenderer()
	}
	if opts.Out == nil {
		opts.Out = io.Discard
	}
	if opts.Title == "" && s.RemoteAddr() != nil {
		opts.Title = s.RemoteAddr().String()
	}
	return &NoisyConn{Stream: s, opts: opts}
}

func (nc *NoisyConn) Read(b []byte) (n int, err error) {
	n, err = nc.Stream.Read(b)
	if n > 0 {
		log.Debug("NoisyConn: Read data from connection", "bytes", n)
		seq := nc.reads.Add(1)
		nc.dump(fmt.Sprintf("%s read #%d", nc.opts.Title, seq), b[:n])
	}
	if err != nil && err != io.EOF {
		log.Error("Error reading from connection", "error", err)
	}
	return n, err
}

func (nc *NoisyConn) Write(b []byte) (n int, err error) {
	n, err = nc.Stream.Write(b)
	if n > 0 {
		log.Debug("NoisyConn: Wrote data to connection", "bytes", n)
		seq := nc.writes.Add(1)
		nc.dump(fmt.Sprintf("%s write #%d", nc.opts.Title, seq), b[:n])
	}
	if err != nil {
		log.Error("NoisyConn: Error writing to connection", "error", err)
	}
	return n, err
}

// Counts returns how many reads and writes carried data.
func (nc *NoisyConn) Counts() (reads, writes int64) {
	return nc.reads.Load(), nc.writes.Load()
}

func (nc *NoisyConn) dump(title string, data []byte) {
	out, err := nc.opts.Renderer.RenderPages(data, nc.opts.Table, title, nc.opts.Tail, nc.opts.Colored)
	if err != nil {
		log.Error("NoisyConn: Failed to render table", "title", title, "error", err)
		return
	}
	nc.outMu.Lock()
	defer nc.outMu.Unlock()
	if _, err := io.WriteString(nc.opts.Out, out); err != nil {
		log.Error("NoisyConn: Failed to write table", "error", err)
	}
}
