package server

import (
	"context"
	"crypto/tls"
	"errors"
	"io"
	"os"
	"os/signal"
	"sync"
	"syscall"

	"hextable/common/config"
	C "hextable/common/constant"
	"hextable/common/noisyconn"
	"hextable/common/parser"
	"hextable/common/safemap"
	"hextable/common/transport"

	"github.com/charmbracelet/log"
)

// Options controls where the tap writes its tables.
type Options struct {
	Out     io.Writer
	Colored bool
}

// Run starts the tap with the provided configuration and blocks until
// SIGINT or SIGTERM.
func Run(config *config.TapConfig, opts Options) error {
	log.Debugf("Run using config: %+v", config)
	tlsConfig, err := GetTLSConfig(&config.TransportConfig)
	if err != nil {
		return err
	}

	ctx, cancel := context.WithCancel(context.Background())
	defer cancel()

	listener, err := transport.Listen(ctx, config.TransportConfig.Protocol, config.TransportConfig.Listen, tlsConfig)
	if err != nil {
		return err
	}
	log.Infof("Tap listening on %s (%s)", listener.Addr(), config.TransportConfig.Protocol)

	done := make(chan error, 1)
	go func() {
		done <- Serve(ctx, listener, config, opts)
	}()

	// Set up signal handling for graceful shutdown
	sigChan := make(chan os.Signal, 1)
	signal.Notify(sigChan, os.Interrupt, syscall.SIGTERM)
	defer signal.Stop(sigChan)

	select {
	case <-sigChan:
		log.Infof("Received shutdown signal, stopping tap...")
		cancel()
		err = <-done
	case err = <-done:
	}
	log.Infof("Tap stopped")
	return err
}

// GetTLSConfig returns nil for plain tcp and a server TLS config otherwise.
func GetTLSConfig(c *config.TapTransportConfig) (*tls.Config, error) {
	if c.Protocol == "tcp" {
		return nil, nil
	}
	return transport.ServerTLSConfig(c.CertFile, c.KeyFile)
}

// Serve accepts streams from listener until ctx is done. Every stream is
// wrapped in a NoisyConn so each read and write is rendered to opts.Out.
// Open streams are closed on shutdown and Serve returns once all of them
// have finished.
func Serve(ctx context.Context, listener transport.Listener, config *config.TapConfig, opts Options) error {
	renderer, table, err := parser.RenderSetup(&config.RenderConfig)
	if err != nil {
		return err
	}
	out := &lockedWriter{w: opts.Out}
	if opts.Out == nil {
		out.w = io.Discard
	}

	streams := safemap.NewSafeMap[string, transport.Stream]()
	var wg sync.WaitGroup

	go func() {
		<-ctx.Done()
		listener.Close()
		streams.Drain(func(remote string, s transport.Stream) {
			log.Debugf("Closing stream %s", remote)
			s.Close()
		})
	}()

	for {
		stream, err := listener.Accept(ctx)
		if err != nil {
			if errors.Is(err, transport.ErrListenerClosed) || ctx.Err() != nil {
				break
			}
			log.Errorf("Failed to accept stream: %v", err)
			continue
		}
		remote := stream.RemoteAddr().String()
		log.Infof("Accepted stream from %s", remote)
		streams.Set(remote, stream)
		// Shutdown may have drained the map before the Set above.
		if ctx.Err() != nil {
			stream.Close()
		}

		nc := noisyconn.NewNoisyConn(stream, noisyconn.Options{
			Renderer: renderer,
			Table:    table,
			Out:      out,
			Colored:  opts.Colored,
			Title:    streamTitle(config.RenderConfig.Title, remote),
			Tail:     config.RenderConfig.Tail,
		})
		wg.Add(1)
		go handleStream(ctx, &wg, streams, remote, nc, config.Echo)
	}

	wg.Wait()
	return nil
}

func handleStream(ctx context.Context, wg *sync.WaitGroup, streams *safemap.SafeMap[string, transport.Stream], remote string, nc *noisyconn.NoisyConn, echo bool) {
	defer wg.Done()
	defer func() {
		streams.Delete(remote)
		nc.Close()
		reads, writes := nc.Counts()
		log.Infof("Stream %s closed after %d reads, %d writes", remote, reads, writes)
	}()

	buf := make([]byte, C.TableSize)
	for {
		n, err := nc.Read(buf)
		if n > 0 && echo {
			if _, werr := nc.Write(buf[:n]); werr != nil {
				return
			}
		}
		if err != nil {
			if err != io.EOF && ctx.Err() == nil {
				log.Warnf("Stream %s ended: %v", remote, err)
			}
			return
		}
	}
}

func streamTitle(title, remote string) string {
	if title == "" {
		return remote
	}
	return title + " " + remote
}

// lockedWriter keeps tables from different streams from interleaving.
type lockedWriter struct {
	mu sync.Mutex
	w  io.Writer
}

func (lw *lockedWriter) Write(p []byte) (int, error) {
	lw.mu.Lock()
	defer lw.mu.Unlock()
	return lw.w.Write(p)
}
