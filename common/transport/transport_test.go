package transport_test

import (
	"context"
	"crypto/tls"
	"io"
	"time"

	. "github.com/onsi/ginkgo/v2"
	. "github.com/onsi/gomega"

	"hextable/common/transport"
)

func roundTrip(protocol string, serverTLS, clientTLS *tls.Config) {
	ctx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
	defer cancel()

	l, err := transport.Listen(ctx, protocol, "127.0.0.1:0", serverTLS)
	Expect(err).NotTo(HaveOccurred())
	defer l.Close()

	received := make(chan []byte, 1)
	go func() {
		defer GinkgoRecover()
		s, err := l.Accept(ctx)
		Expect(err).NotTo(HaveOccurred())
		defer s.Close()
		buf := make([]byte, 5)
		_, err = io.ReadFull(s, buf)
		Expect(err).NotTo(HaveOccurred())
		Expect(s.RemoteAddr()).NotTo(BeNil())
		_, err = s.Write(buf)
		Expect(err).NotTo(HaveOccurred())
		received <- buf
	}()

	c, err := transport.Dial(ctx, protocol, l.Addr().String(), clientTLS)
	Expect(err).NotTo(HaveOccurred())
	defer c.Close()
	_, err = c.Write([]byte("hello"))
	Expect(err).NotTo(HaveOccurred())

	echo := make([]byte, 5)
	_, err = io.ReadFull(c, echo)
	Expect(err).NotTo(HaveOccurred())
	Expect(string(echo)).To(Equal("hello"))
	Eventually(received).Should(Receive(Equal([]byte("hello"))))
}

var _ = Describe("Transport", func() {
	It("round-trips over tcp", func() {
		roundTrip("tcp", nil, nil)
	})

	It("round-trips over tls with a generated certificate", func() {
		serverTLS, err := transport.ServerTLSConfig("", "")
		Expect(err).NotTo(HaveOccurred())
		roundTrip("tls", serverTLS, transport.ClientTLSConfig())
	})

	It("round-trips over quic", func() {
		serverTLS, err := transport.ServerTLSConfig("", "")
		Expect(err).NotTo(HaveOccurred())
		roundTrip("quic", serverTLS, transport.ClientTLSConfig())
	})

	It("rejects unknown protocols", func() {
		_, err := transport.Listen(context.Background(), "sctp", "127.0.0.1:0", nil)
		Expect(err).To(MatchError(transport.ErrUnsupportedProtocol))
		_, err = transport.Dial(context.Background(), "sctp", "127.0.0.1:1", nil)
		Expect(err).To(MatchError(transport.ErrUnsupportedProtocol))
	})

	It("stops accepting once the context is done", func() {
		ctx, cancel := context.WithCancel(context.Background())
		l, err := transport.Listen(ctx, "tcp", "127.0.0.1:0", nil)
		Expect(err).NotTo(HaveOccurred())
		cancel()
		_, err = l.Accept(ctx)
		Expect(err).To(MatchError(transport.ErrListenerClosed))
	})

	It("fails on missing key pairs", func() {
		_, err := transport.ServerTLSConfig("missing.pem", "missing.key")
		Expect(err).To(HaveOccurred())
	})
})
