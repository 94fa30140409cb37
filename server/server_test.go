package server_test

import (
	"context"
	"strings"
	"time"

	. "github.com/onsi/ginkgo/v2"
	. "github.com/onsi/gomega"

	"hextable/client"
	"hextable/common/config"
	C "hextable/common/constant"
	"hextable/common/transport"
	"hextable/server"
)

var _ = Describe("Serve", func() {
	var (
		ctx    context.Context
		cancel context.CancelFunc
		cfg    *config.TapConfig
		out    *C.BufferReadWriteCloser
		done   chan error
	)

	start := func() {
		l, err := transport.Listen(ctx, "tcp", "127.0.0.1:0", nil)
		Expect(err).NotTo(HaveOccurred())
		cfg.TransportConfig.Listen = l.Addr().String()
		go func() {
			done <- server.Serve(ctx, l, cfg, server.Options{Out: out})
		}()
	}

	BeforeEach(func() {
		ctx, cancel = context.WithCancel(context.Background())
		out = C.NewBufferReadWriteCloser()
		done = make(chan error, 1)
		cfg = &config.TapConfig{
			TransportConfig: config.TapTransportConfig{Protocol: "tcp"},
			RenderConfig: config.RenderConfig{
				Title: "tap",
				Color: C.ColorNever,
			},
			Echo: true,
		}
	})

	AfterEach(func() {
		cancel()
		Eventually(done, 5*time.Second).Should(Receive(BeNil()))
	})

	It("echoes payloads and renders both directions", func() {
		start()
		sendCtx, sendCancel := context.WithTimeout(ctx, 5*time.Second)
		defer sendCancel()

		reply, err := client.Send(sendCtx, cfg, []byte("ping\x00\n"))
		Expect(err).NotTo(HaveOccurred())
		Expect(reply).To(Equal([]byte("ping\x00\n")))

		Eventually(out.String).Should(ContainSubstring(" write #1 "))
		dump := out.String()
		Expect(dump).To(ContainSubstring(" read #1 "))
		Expect(dump).To(ContainSubstring(" tap 127.0.0.1:"))
		Expect(dump).To(ContainSubstring("| ping ." + strings.Repeat(" ", 11) + "|+"))
		Expect(dump).NotTo(ContainSubstring("\x1b["))
	})

	It("colors annotated bytes when asked to", func() {
		cfg.RenderConfig.Annotations = []config.AnnotationConfig{{Indexes: []int{0}, Severity: "error"}}
		l, err := transport.Listen(ctx, "tcp", "127.0.0.1:0", nil)
		Expect(err).NotTo(HaveOccurred())
		cfg.TransportConfig.Listen = l.Addr().String()
		go func() {
			done <- server.Serve(ctx, l, cfg, server.Options{Out: out, Colored: true})
		}()

		_, err = client.Send(ctx, cfg, []byte{0xAB})
		Expect(err).NotTo(HaveOccurred())
		Eventually(out.String).Should(ContainSubstring(C.LevelColorBG[3] + " AB " + C.Reset))
	})

	It("only listens when echo is off", func() {
		cfg.Echo = false
		start()
		reply, err := client.Send(ctx, cfg, []byte("quiet"))
		Expect(err).NotTo(HaveOccurred())
		Expect(reply).To(BeNil())
		Eventually(out.String).Should(ContainSubstring(" read #1 "))
		Consistently(func() bool {
			return strings.Contains(out.String(), " write #1 ")
		}, 200*time.Millisecond).Should(BeFalse())
	})

	It("rejects invalid annotations before accepting", func() {
		cfg.RenderConfig.Annotations = []config.AnnotationConfig{{Indexes: []int{300}}}
		l, err := transport.Listen(ctx, "tcp", "127.0.0.1:0", nil)
		Expect(err).NotTo(HaveOccurred())
		err = server.Serve(ctx, l, cfg, server.Options{Out: out})
		Expect(err).To(MatchError(ContainSubstring("outside [0, 255]")))
		done <- nil
	})
})
