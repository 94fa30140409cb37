package hexdump_test

import (
	"fmt"
	"strings"

	"github.com/charmbracelet/x/ansi"
	. "github.com/onsi/ginkgo/v2"
	. "github.com/onsi/gomega"

	"hextable/common/annotation"
	C "hextable/common/constant"
	"hextable/common/hexdump"
	"hextable/common/textbuf"
)

func lines(out string) []string {
	return strings.Split(strings.TrimSuffix(out, "\n"), "\n")
}

func sequence(n int) []byte {
	data := make([]byte, n)
	for i := range data {
		data[i] = byte(i)
	}
	return data
}

const (
	headerRows = 3
	green      = "\x1b[1;32m"
)

var _ = Describe("RenderPlain", func() {
	It("renders the demo payload", func() {
		out, err := hexdump.RenderPlain(sequence(16), "DEMO", "OK")
		Expect(err).NotTo(HaveOccurred())
		ls := lines(out)
		Expect(ls).To(HaveLen(headerRows + 16 + 1))

		Expect(ls[0]).To(Equal("+" + strings.Repeat("-", 31) + " DEMO " + strings.Repeat("-", 31) + "----- ASCII -------+"))
		Expect(ls[1]).To(Equal("+    00  01  02  03  04  05  06  07  08  09  0A  0B  0C  0D  0E  0F | 0123456789ABCDEF |+"))
		Expect(ls[2]).To(Equal("+" + strings.Repeat("-", 87) + "+"))
		Expect(ls[3]).To(Equal("+ 0| 00  01  02  03  04  05  06  07  08  09  0A  0B  0C  0D  0E  0F | " + " " + strings.Repeat(".", 15) + " |+"))
		for row := 1; row < 16; row++ {
			Expect(ls[headerRows+row]).To(Equal(fmt.Sprintf("+ %X|", row) + strings.Repeat(" XX ", 16) + "| " + strings.Repeat(" ", 16) + " |+"))
		}
		Expect(ls[19]).To(Equal("+-" + strings.Repeat("-", 41) + " OK " + strings.Repeat("-", 41) + "+"))
		Expect(out).NotTo(ContainSubstring("\x1b["))
	})

	It("always renders 16 body rows with placeholders past the input", func() {
		for n := 0; n <= 256; n++ {
			out, err := hexdump.RenderPlain(sequence(n), "", "")
			Expect(err).NotTo(HaveOccurred())
			ls := lines(out)
			Expect(ls).To(HaveLen(headerRows + 16 + 1))
			Expect(strings.Count(out, "XX")).To(Equal(256 - n))
			for _, l := range ls {
				Expect(len(l)).To(Equal(C.LineWidth))
			}
		}
	})

	It("shows printable bytes and dots in the ASCII column", func() {
		out, err := hexdump.RenderPlain([]byte("Hi\x00\x01~"), "", "")
		Expect(err).NotTo(HaveOccurred())
		Expect(lines(out)[3]).To(HaveSuffix("| Hi .~" + strings.Repeat(" ", 11) + " |+"))
	})

	It("displays only the first 256 bytes", func() {
		long := append(sequence(256), 0xAA, 0xBB)
		clipped, err := hexdump.RenderPlain(long, "T", "")
		Expect(err).NotTo(HaveOccurred())
		exact, err := hexdump.RenderPlain(sequence(256), "T", "")
		Expect(err).NotTo(HaveOccurred())
		Expect(clipped).To(Equal(exact))
	})
})

var _ = Describe("RenderAnnotated", func() {
	It("colors the row label with the highest severity in the row", func() {
		table := annotation.NewTable()
		table.MarkSeverity(10, 10, annotation.Error)
		table.MarkSeverity(5, 5, annotation.Warning)

		out, err := hexdump.RenderAnnotated(sequence(32), table, "", "")
		Expect(err).NotTo(HaveOccurred())
		row0 := lines(out)[3]
		Expect(row0).To(HavePrefix(C.LevelColor[annotation.Error] + "+ 0|" + C.Reset))
		Expect(row0).To(HaveSuffix(C.LevelColor[annotation.Error] + " |+" + C.Reset))
		Expect(lines(out)[4]).To(HavePrefix("+ 1|"))
	})

	It("colors column headers by column severity", func() {
		table := annotation.NewTable()
		table.MarkSeverity(0x25, 0x25, annotation.Warning)
		table.MarkSeverity(0xFA, 0xFA, annotation.Error)

		out, err := hexdump.RenderAnnotated(nil, table, "", "")
		Expect(err).NotTo(HaveOccurred())
		header := lines(out)[1]
		Expect(header).To(ContainSubstring(" " + C.LevelColor[annotation.Warning] + "05" + C.Reset + " "))
		Expect(header).To(ContainSubstring(" " + C.LevelColor[annotation.Error] + "0A" + C.Reset + " "))
		Expect(header).To(ContainSubstring(C.LevelColor[annotation.Warning] + "5" + C.Reset))
		Expect(header).To(ContainSubstring(" 00 "))
	})

	It("resolves cell color by precedence", func() {
		table := annotation.NewTable()
		// color only
		table.Colorize(0, 0, green, 0, 0)
		// color and severity
		table.Colorize(1, 1, green, 0, 0)
		table.MarkSeverity(1, 1, annotation.Debug)
		// marks
		table.Colorize(3, 3, green, '[', ']')
		// out of range with everything set
		table.Colorize(40, 40, green, '<', '>')
		table.MarkSeverity(40, 40, annotation.Error)

		out, err := hexdump.RenderAnnotated(sequence(32), table, "", "")
		Expect(err).NotTo(HaveOccurred())
		ls := lines(out)
		Expect(ls[3]).To(HavePrefix(C.LevelColor[annotation.Debug] + "+ 0|" + C.Reset +
			green + " 00 " + C.Reset +
			C.LevelColorBG[annotation.Debug] + " 01 " + C.Reset +
			" 02 " +
			green + "[03]" + C.Reset +
			" 04 "))
		Expect(ls[3+2]).To(HavePrefix(C.LevelColor[annotation.Error] + "+ 2|" + C.Reset + C.Alert + " XX " + C.Reset))
		Expect(ls[3+2]).To(ContainSubstring(C.Alert + "<XX>" + C.Reset))
	})

	It("colors the ASCII column", func() {
		data := []byte{'A', 0x00, '\n', '\r', '\t', 0x1B, 0x7F, 'b', 0x01}
		table := annotation.NewTable()
		table.MarkSeverity(0, 0, annotation.Warning)
		table.Colorize(7, 7, green, 0, 0)
		table.Colorize(8, 8, green, 0, 0)
		table.MarkSeverity(8, 8, annotation.Error)

		out, err := hexdump.RenderAnnotated(data, table, "", "")
		Expect(err).NotTo(HaveOccurred())
		row0 := lines(out)[3]
		rowColor := C.LevelColor[annotation.Error]
		ascii := row0[strings.Index(row0, rowColor+"| "+C.Reset)+len(rowColor+"| "+C.Reset):]
		Expect(ascii).To(HavePrefix(
			C.LevelColorBG[annotation.Warning] + "A" + C.Reset +
				C.DotNUL + "." + C.Reset +
				C.DotLF + "." + C.Reset +
				C.DotCR + "." + C.Reset +
				C.DotTab + "." + C.Reset +
				C.DotEsc + "." + C.Reset +
				C.DotOther + "." + C.Reset +
				green + "b" + C.Reset +
				C.LevelColorBG[annotation.Error] + "." + C.Reset +
				C.Alert + "." + C.Reset))
	})

	It("renders a nil table with default styling", func() {
		out, err := hexdump.RenderAnnotated(sequence(4), nil, "nil", "tail")
		Expect(err).NotTo(HaveOccurred())
		ls := lines(out)
		Expect(ls[3]).To(HavePrefix("+ 0| 00  01  02  03 " + C.Alert + " XX " + C.Reset))
		Expect(ls[19]).To(ContainSubstring("\x1b[38;5;196mt"))
	})

	It("renders titles and tails with control characters", func() {
		out, err := hexdump.RenderPlain([]byte{1}, "T\x00", "")
		Expect(err).NotTo(HaveOccurred())
		Expect(out).To(ContainSubstring(" T. "))

		for _, colored := range []bool{false, true} {
			var out string
			var err error
			if colored {
				out, err = hexdump.RenderAnnotated([]byte{1}, nil, "a\nb\tc", "x\ry\x00")
			} else {
				out, err = hexdump.RenderPlain([]byte{1}, "a\nb\tc", "x\ry\x00")
			}
			Expect(err).NotTo(HaveOccurred())
			ls := lines(out)
			Expect(ls).To(HaveLen(20))
			for _, l := range ls {
				Expect(ansi.StringWidth(l)).To(Equal(C.LineWidth))
			}
			Expect(ls[0]).To(ContainSubstring(" a.b.c "))
		}
	})

	It("keeps every line 89 columns wide", func() {
		table := annotation.NewTable()
		table.MarkSeverity(0, 99, annotation.Debug)
		table.Colorize(120, 140, green, '{', '}')
		out, err := hexdump.RenderAnnotated(sequence(200), table, "a title that is definitely longer than forty", "tail")
		Expect(err).NotTo(HaveOccurred())
		for _, l := range lines(out) {
			Expect(ansi.StringWidth(l)).To(Equal(C.LineWidth))
		}
	})

	It("is deterministic", func() {
		table := annotation.NewTable()
		table.MarkSeverity(3, 77, annotation.Warning)
		first, err := hexdump.RenderAnnotated(sequence(100), table, "same", "same")
		Expect(err).NotTo(HaveOccurred())
		second, err := hexdump.RenderAnnotated(sequence(100), table, "same", "same")
		Expect(err).NotTo(HaveOccurred())
		Expect(first).To(Equal(second))
	})

	It("does not mutate the annotation table", func() {
		table := annotation.NewTable()
		table.MarkSeverity(1, 2, annotation.Debug)
		before := table.Clone()
		_, err := hexdump.RenderAnnotated(sequence(8), table, "", "")
		Expect(err).NotTo(HaveOccurred())
		Expect(*table).To(Equal(*before))
	})
})

var _ = Describe("allocation failure", func() {
	It("returns no partial output", func() {
		r := hexdump.NewRenderer(hexdump.WithAllocator(textbuf.Limit{Max: 500}))
		out, err := r.RenderAnnotated(sequence(16), nil, "DEMO", "OK")
		Expect(err).To(MatchError(textbuf.ErrAllocation))
		Expect(out).To(BeEmpty())

		out, err = r.RenderPlain(sequence(16), "DEMO", "OK")
		Expect(err).To(MatchError(textbuf.ErrAllocation))
		Expect(out).To(BeEmpty())
	})

	It("succeeds when the budget fits the table", func() {
		plain, err := hexdump.RenderPlain(sequence(16), "DEMO", "OK")
		Expect(err).NotTo(HaveOccurred())
		r := hexdump.NewRenderer(hexdump.WithAllocator(textbuf.Limit{Max: len(plain)}))
		out, err := r.RenderPlain(sequence(16), "DEMO", "OK")
		Expect(err).NotTo(HaveOccurred())
		Expect(out).To(Equal(plain))
	})
})
