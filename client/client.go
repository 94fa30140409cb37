package client

import (
	"context"
	"crypto/tls"
	"fmt"
	"io"

	"hextable/common/config"
	"hextable/common/transport"

	"github.com/charmbracelet/log"
)

// Send delivers payload to the tap at config.TransportConfig.Listen. When the
// tap echoes, the echoed bytes are read back and returned.
func Send(ctx context.Context, config *config.TapConfig, payload []byte) ([]byte, error) {
	address := config.TransportConfig.Listen
	stream, err := transport.Dial(ctx, config.TransportConfig.Protocol, address, GetTLSConfig(config.TransportConfig.Protocol))
	if err != nil {
		return nil, fmt.Errorf("failed to connect to %s: %w", address, err)
	}
	defer stream.Close()
	stop := context.AfterFunc(ctx, func() {
		stream.Close()
	})
	defer stop()
	log.Infof("Connected to tap at %s", stream.RemoteAddr())

	if _, err := stream.Write(payload); err != nil {
		return nil, fmt.Errorf("failed to send payload: %w", err)
	}
	log.Debugf("Sent %d bytes", len(payload))
	if !config.Echo {
		return nil, nil
	}

	reply := make([]byte, len(payload))
	if _, err := io.ReadFull(stream, reply); err != nil {
		return nil, fmt.Errorf("failed to read echo: %w", err)
	}
	return reply, nil
}

func GetTLSConfig(protocol string) *tls.Config {
	if protocol == "tcp" {
		return nil
	}
	return transport.ClientTLSConfig()
}
