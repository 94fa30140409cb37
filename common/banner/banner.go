package banner

import (
	"fmt"
	"strings"
	"unicode"
	"unicode/utf8"

	"hextable/common/colorconv"
	C "hextable/common/constant"
	"hextable/common/textbuf"

	"github.com/mattn/go-runewidth"
)

// Sanitize replaces control characters with '.' so banner text always
// occupies one line and its measured width.
func Sanitize(text string) string {
	return strings.Map(func(r rune) rune {
		if unicode.IsControl(r) {
			return '.'
		}
		return r
	}, text)
}

// Truncate sanitizes text and shortens it to threshold columns, ending in
// "..." when cut.
func Truncate(text string, threshold int) string {
	return runewidth.Truncate(Sanitize(text), threshold, C.Ellipsis)
}

// CenterBanner returns "-"*left + " " + text + " " + "-"*right, filling
// fieldWidth columns around the (possibly truncated) text. An odd remainder
// puts the extra dash on the right.
func CenterBanner(text string, fieldWidth, threshold int) string {
	buf := textbuf.New(nil)
	display := Truncate(text, threshold)
	// Sanitized text on an Exact buffer cannot fail.
	_ = appendCentered(buf, display, runewidth.StringWidth(display), fieldWidth)
	return buf.Finish()
}

func appendCentered(buf *textbuf.Buffer, text string, width, fieldWidth int) error {
	pad := fieldWidth - width
	if pad < 0 {
		pad = 0
	}
	left := pad / 2
	right := pad - left
	if err := buf.AppendRepeat("-", left); err != nil {
		return err
	}
	if err := buf.Append(" " + text + " "); err != nil {
		return err
	}
	return buf.AppendRepeat("-", right)
}

// RainbowText colors each rune of text with a hue swept linearly across the
// string. Text wider than the tail threshold is returned truncated and
// uncolored.
func RainbowText(text string) string {
	buf := textbuf.New(nil)
	_ = AppendRainbow(buf, text)
	return buf.Finish()
}

// AppendRainbow is RainbowText writing into buf.
func AppendRainbow(buf *textbuf.Buffer, text string) error {
	if text == "" {
		return nil
	}
	text = Sanitize(text)
	if runewidth.StringWidth(text) > C.TailThreshold {
		return buf.Append(Truncate(text, C.TailThreshold))
	}
	n := utf8.RuneCountInString(text)
	i := 0
	for _, r := range text {
		hue := float64(i) / float64(n) * 360.0
		code := colorconv.ANSI256(colorconv.HueToRGB(hue))
		if err := buf.Append(fmt.Sprintf("\033[38;5;%dm%c", code, r)); err != nil {
			return err
		}
		i++
	}
	return buf.Append(C.Reset)
}

// AppendTitle writes the leading "+" and the 68-column title field.
// An empty title renders as dashes only.
func AppendTitle(buf *textbuf.Buffer, title string) error {
	if err := buf.Append("+"); err != nil {
		return err
	}
	if title == "" {
		return buf.AppendRepeat("-", C.TitleFieldWidth+2)
	}
	display := Truncate(title, C.TitleThreshold)
	return appendCentered(buf, display, runewidth.StringWidth(display), C.TitleFieldWidth)
}

// AppendTail writes the closing banner line including its newline.
// With rainbow set, tails that fit the threshold are colored per rune while
// the padding still follows their plain width.
func AppendTail(buf *textbuf.Buffer, tail string, rainbow bool) error {
	if tail == "" {
		return buf.Append(Border())
	}
	if err := buf.Append("+-"); err != nil {
		return err
	}
	tail = Sanitize(tail)
	display := Truncate(tail, C.TailThreshold)
	width := runewidth.StringWidth(display)
	if rainbow && display == tail {
		colored := textbuf.New(nil)
		if err := AppendRainbow(colored, tail); err != nil {
			return err
		}
		display = colored.Finish()
	}
	if err := appendCentered(buf, display, width, C.TailFieldWidth); err != nil {
		return err
	}
	return buf.Append("+\n")
}

// Border is the full-width separator line, newline included.
func Border() string {
	return "+" + strings.Repeat("-", C.LineWidth-2) + "+\n"
}
