package hexdump

import (
	"fmt"

	"hextable/common/annotation"
	"hextable/common/banner"
	C "hextable/common/constant"
	"hextable/common/textbuf"
)

const (
	asciiLegend = "----- ASCII -------+\n"
	placeholder = "XX"
)

// Renderer produces 16x16 hex+ASCII tables. It holds no per-call state and is
// safe for concurrent use.
type Renderer struct {
	alloc textbuf.Allocator
}

type Option func(*Renderer)

// WithAllocator makes every output buffer grow through alloc.
func WithAllocator(alloc textbuf.Allocator) Option {
	return func(r *Renderer) {
		r.alloc = alloc
	}
}

func NewRenderer(opts ...Option) *Renderer {
	r := &Renderer{alloc: textbuf.Exact{}}
	for _, opt := range opts {
		opt(r)
	}
	return r
}

var defaultRenderer = NewRenderer()

// RenderPlain renders data without any escape sequences.
func RenderPlain(data []byte, title, tail string) (string, error) {
	return defaultRenderer.RenderPlain(data, title, tail)
}

// RenderAnnotated renders data with severity and annotation colors.
// table may be nil.
func RenderAnnotated(data []byte, table *annotation.Table, title, tail string) (string, error) {
	return defaultRenderer.RenderAnnotated(data, table, title, tail)
}

// RenderPlain renders a monochrome table. Empty title or tail mean absent.
// Only the first 256 bytes of data are displayed.
func (r *Renderer) RenderPlain(data []byte, title, tail string) (string, error) {
	w := &tableWriter{buf: textbuf.New(r.alloc), data: clip(data)}
	return w.render(title, tail)
}

// RenderAnnotated renders a colored table following the cell precedence
// out-of-range > severity > annotation color > none.
func (r *Renderer) RenderAnnotated(data []byte, table *annotation.Table, title, tail string) (string, error) {
	w := &tableWriter{buf: textbuf.New(r.alloc), data: clip(data), table: table, colored: true}
	return w.render(title, tail)
}

func clip(data []byte) []byte {
	if len(data) > C.TableSize {
		return data[:C.TableSize]
	}
	return data
}

type tableWriter struct {
	buf     *textbuf.Buffer
	data    []byte
	table   *annotation.Table
	colored bool
}

func (w *tableWriter) render(title, tail string) (string, error) {
	if err := w.header(title); err != nil {
		return "", err
	}
	for row := 0; row < C.Rows; row++ {
		if err := w.row(uint8(row)); err != nil {
			return "", err
		}
	}
	if err := banner.AppendTail(w.buf, tail, w.colored); err != nil {
		return "", err
	}
	return w.buf.Finish(), nil
}

func (w *tableWriter) header(title string) error {
	if err := banner.AppendTitle(w.buf, title); err != nil {
		return err
	}
	if err := w.buf.Append(asciiLegend); err != nil {
		return err
	}
	if err := w.buf.Append("+   "); err != nil {
		return err
	}
	for col := 0; col < C.Columns; col++ {
		color := C.LevelColor[w.table.ColumnSeverity(uint8(col))]
		if err := w.buf.Append(" " + paint(color, fmt.Sprintf("%02X", col)) + " "); err != nil {
			return err
		}
	}
	if err := w.buf.Append("| "); err != nil {
		return err
	}
	for col := 0; col < C.Columns; col++ {
		color := C.LevelColor[w.table.ColumnSeverity(uint8(col))]
		if err := w.buf.Append(paint(color, fmt.Sprintf("%X", col))); err != nil {
			return err
		}
	}
	if err := w.buf.Append(" |+\n"); err != nil {
		return err
	}
	return w.buf.Append(banner.Border())
}

func (w *tableWriter) row(row uint8) error {
	rowColor := C.LevelColor[w.table.RowSeverity(row)]
	if err := w.buf.Append(paint(rowColor, fmt.Sprintf("+ %X|", row))); err != nil {
		return err
	}
	base := int(row) * C.Columns
	for col := 0; col < C.Columns; col++ {
		if err := w.buf.Append(w.cell(base + col)); err != nil {
			return err
		}
	}
	if err := w.buf.Append(paint(rowColor, "| ")); err != nil {
		return err
	}
	for col := 0; col < C.Columns; col++ {
		if err := w.buf.Append(w.ascii(base + col)); err != nil {
			return err
		}
	}
	return w.buf.Append(paint(rowColor, " |+") + "\n")
}

// cell renders the four columns of one hex cell: left mark, two digits,
// right mark.
func (w *tableWriter) cell(i int) string {
	left, right := w.table.MarksAt(uint8(i))
	if left == 0 {
		left = ' '
	}
	if right == 0 {
		right = ' '
	}
	if i >= len(w.data) {
		if !w.colored {
			return string(left) + placeholder + string(right)
		}
		return paint(C.Alert, string(left)+placeholder+string(right))
	}
	return paint(w.cellColor(i), fmt.Sprintf("%c%02X%c", left, w.data[i], right))
}

// cellColor resolves severity over explicit color. Empty means default.
func (w *tableWriter) cellColor(i int) string {
	if !w.colored {
		return ""
	}
	if s := w.table.SeverityAt(uint8(i)); s > annotation.Normal {
		return C.LevelColorBG[s]
	}
	color, _ := w.table.ColorAt(uint8(i))
	return color
}

func (w *tableWriter) ascii(i int) string {
	if i >= len(w.data) {
		if !w.colored {
			return " "
		}
		return paint(C.Alert, ".")
	}
	b := w.data[i]
	color := w.cellColor(i)
	if isPrintable(b) {
		return paint(color, string(rune(b)))
	}
	if !w.colored {
		if b == 0x00 {
			return " "
		}
		return "."
	}
	if color == "" {
		color = dotColor(b)
	}
	return paint(color, ".")
}

func dotColor(b byte) string {
	switch b {
	case 0x00:
		return C.DotNUL
	case '\n':
		return C.DotLF
	case '\r':
		return C.DotCR
	case '\t':
		return C.DotTab
	case 0x1B:
		return C.DotEsc
	default:
		return C.DotOther
	}
}

func isPrintable(b byte) bool {
	return b >= 0x20 && b <= 0x7E
}

func paint(color, s string) string {
	if color == "" {
		return s
	}
	return color + s + C.Reset
}
