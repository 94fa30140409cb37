package logging_test

import (
	. "github.com/onsi/ginkgo/v2"
	. "github.com/onsi/gomega"

	"hextable/common/config"
	"hextable/common/logging"

	"github.com/charmbracelet/log"
)

var _ = Describe("Setup", func() {
	AfterEach(func() {
		Expect(logging.Setup(config.LogConfig{LogLevel: "info"})).To(Succeed())
	})

	It("sets the level", func() {
		Expect(logging.Setup(config.LogConfig{LogLevel: "debug"})).To(Succeed())
		Expect(log.GetLevel()).To(Equal(log.DebugLevel))
	})

	It("accepts every known format", func() {
		for _, format := range []string{"text", "json", "logfmt", ""} {
			Expect(logging.Setup(config.LogConfig{LogFormat: format})).To(Succeed())
		}
	})

	It("rejects unknown levels and formats", func() {
		Expect(logging.Setup(config.LogConfig{LogLevel: "loud"})).To(HaveOccurred())
		Expect(logging.Setup(config.LogConfig{LogFormat: "xml"})).To(HaveOccurred())
	})
})
