package transport

import (
	"context"
	"crypto/tls"
	"errors"
	"fmt"
	"io"
	"net"
	"time"

	"github.com/charmbracelet/log"
	"github.com/quic-go/quic-go"
)

var (
	ErrUnsupportedProtocol = errors.New("unsupported protocol")
	ErrListenerClosed      = errors.New("listener closed")
)

// Stream is a single bidirectional byte stream: a TCP/TLS connection or the
// first stream of a QUIC connection.
type Stream interface {
	io.ReadWriteCloser
	RemoteAddr() net.Addr
}

// Listener accepts Streams regardless of the underlying protocol.
type Listener interface {
	Accept(ctx context.Context) (Stream, error)
	Addr() net.Addr
	Close() error
}

func quicConfig() *quic.Config {
	return &quic.Config{
		MaxIncomingStreams: 16,
		MaxIdleTimeout:     2 * time.Minute,
	}
}

// Listen starts accepting on address. protocol must be "tcp", "tls" or "quic".
// tlsConfig is required for "tls" and "quic". The listener is closed when ctx
// is done.
func Listen(ctx context.Context, protocol, address string, tlsConfig *tls.Config) (Listener, error) {
	var l Listener
	switch protocol {
	case "tcp":
		nl, err := net.Listen("tcp", address)
		if err != nil {
			return nil, err
		}
		l = &netListener{Listener: nl}
	case "tls":
		nl, err := tls.Listen("tcp", address, tlsConfig)
		if err != nil {
			return nil, err
		}
		l = &netListener{Listener: nl}
	case "quic":
		ql, err := quic.ListenAddr(address, tlsConfig, quicConfig())
		if err != nil {
			return nil, err
		}
		l = &quicListener{Listener: ql}
	default:
		return nil, fmt.Errorf("%w: %s", ErrUnsupportedProtocol, protocol)
	}
	go func() {
		<-ctx.Done()
		l.Close()
	}()
	return l, nil
}

// Dial connects to address and returns a ready stream.
func Dial(ctx context.Context, protocol, address string, tlsConfig *tls.Config) (Stream, error) {
	switch protocol {
	case "tcp":
		var d net.Dialer
		conn, err := d.DialContext(ctx, "tcp", address)
		if err != nil {
			return nil, err
		}
		return conn, nil
	case "tls":
		d := tls.Dialer{Config: tlsConfig}
		conn, err := d.DialContext(ctx, "tcp", address)
		if err != nil {
			return nil, err
		}
		return conn, nil
	case "quic":
		conn, err := quic.DialAddr(ctx, address, tlsConfig, quicConfig())
		if err != nil {
			return nil, err
		}
		stream, err := conn.OpenStreamSync(ctx)
		if err != nil {
			conn.CloseWithError(0x100, err.Error())
			return nil, err
		}
		return &quicStream{Stream: stream, conn: conn}, nil
	default:
		return nil, fmt.Errorf("%w: %s", ErrUnsupportedProtocol, protocol)
	}
}

// --- TCP / TLS ---

type netListener struct {
	net.Listener
}

func (l *netListener) Accept(ctx context.Context) (Stream, error) {
	conn, err := l.Listener.Accept()
	if err != nil {
		if errors.Is(err, net.ErrClosed) || ctx.Err() != nil {
			return nil, ErrListenerClosed
		}
		return nil, err
	}
	return conn, nil
}

// --- QUIC ---

type quicListener struct {
	*quic.Listener
}

func (l *quicListener) Accept(ctx context.Context) (Stream, error) {
	conn, err := l.Listener.Accept(ctx)
	if err != nil {
		if errors.Is(err, quic.ErrServerClosed) || ctx.Err() != nil {
			return nil, ErrListenerClosed
		}
		return nil, err
	}
	stream, err := conn.AcceptStream(ctx)
	if err != nil {
		log.Warn("QUIC connection opened no stream", "remote", conn.RemoteAddr(), "error", err)
		conn.CloseWithError(0x100, err.Error())
		return nil, err
	}
	return &quicStream{Stream: stream, conn: conn}, nil
}

// quicStream ties a QUIC stream to its connection so closing the stream tears
// down the whole connection.
type quicStream struct {
	*quic.Stream
	conn *quic.Conn
}

func (s *quicStream) RemoteAddr() net.Addr {
	return s.conn.RemoteAddr()
}

func (s *quicStream) Close() error {
	err := s.Stream.Close()
	s.conn.CloseWithError(0, "stream closed")
	return err
}
