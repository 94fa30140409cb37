package parser

import (
	"fmt"
	"strings"
	"unicode"
	"unicode/utf8"

	"hextable/common/annotation"
	"hextable/common/config"
	"hextable/common/hexdump"
	"hextable/common/textbuf"

	"github.com/mattn/go-runewidth"
)

// BuildTable turns annotation entries into a table. Entries are applied in
// order: severities keep their maximum, colors and marks are last-wins.
func BuildTable(entries []config.AnnotationConfig) (*annotation.Table, error) {
	table := annotation.NewTable()
	for i, a := range entries {
		if err := validateAnnotation(&a); err != nil {
			return nil, fmt.Errorf("annotation %d: %w", i, err)
		}
		severity, _ := annotation.ParseSeverity(a.Severity)
		left, _ := markRune(a.Left)
		right, _ := markRune(a.Right)
		color := SGR(a.Color)

		for _, span := range spans(&a) {
			from, to := uint8(span[0]), uint8(span[1])
			table.MarkSeverity(from, to, severity)
			if color != "" || left != 0 || right != 0 {
				table.Colorize(from, to, color, left, right)
			}
		}
	}
	return table, nil
}

// SGR wraps select-graphic-rendition parameters ("1;33") into an escape
// sequence. Input that already is an escape sequence is returned unchanged.
func SGR(params string) string {
	params = strings.TrimSpace(params)
	if params == "" || strings.HasPrefix(params, "\033[") {
		return params
	}
	return "\033[" + params + "m"
}

// spans lists the inclusive ranges an entry covers. Indexes become
// single-index spans so marks land on each listed byte.
func spans(a *config.AnnotationConfig) [][2]int {
	var out [][2]int
	if a.From != nil && a.To != nil {
		out = append(out, [2]int{*a.From, *a.To})
	}
	for _, idx := range a.Indexes {
		out = append(out, [2]int{idx, idx})
	}
	return out
}

func validateAnnotation(a *config.AnnotationConfig) error {
	if (a.From == nil) != (a.To == nil) {
		return fmt.Errorf("from and to must be provided together")
	}
	if a.From == nil && len(a.Indexes) == 0 {
		return fmt.Errorf("either from/to or indexes is required")
	}
	if a.From != nil {
		if *a.From < 0 || *a.From > 255 || *a.To < 0 || *a.To > 255 {
			return fmt.Errorf("range [%d, %d] outside [0, 255]", *a.From, *a.To)
		}
	}
	for _, idx := range a.Indexes {
		if idx < 0 || idx > 255 {
			return fmt.Errorf("index %d outside [0, 255]", idx)
		}
	}
	if _, err := annotation.ParseSeverity(a.Severity); err != nil {
		return err
	}
	if _, err := markRune(a.Left); err != nil {
		return fmt.Errorf("left: %w", err)
	}
	if _, err := markRune(a.Right); err != nil {
		return fmt.Errorf("right: %w", err)
	}
	if p := strings.TrimSpace(a.Color); p != "" && !strings.HasPrefix(p, "\033[") {
		for _, r := range p {
			if r != ';' && (r < '0' || r > '9') {
				return fmt.Errorf("invalid color: %q. Expected SGR parameters like \"1;33\"", a.Color)
			}
		}
	}
	return nil
}

func markRune(s string) (rune, error) {
	if s == "" {
		return 0, nil
	}
	if utf8.RuneCountInString(s) != 1 {
		return 0, fmt.Errorf("mark must be a single character: %q", s)
	}
	r, _ := utf8.DecodeRuneInString(s)
	if !unicode.IsPrint(r) {
		return 0, fmt.Errorf("mark must be printable: %q", s)
	}
	if runewidth.RuneWidth(r) != 1 {
		return 0, fmt.Errorf("mark must be one column wide: %q", s)
	}
	return r, nil
}

// RenderSetup builds the renderer and annotation table a RenderConfig asks for.
func RenderSetup(c *config.RenderConfig) (*hexdump.Renderer, *annotation.Table, error) {
	table, err := BuildTable(c.Annotations)
	if err != nil {
		return nil, nil, err
	}
	var opts []hexdump.Option
	if c.MaxOutputBytes > 0 {
		opts = append(opts, hexdump.WithAllocator(textbuf.Limit{Max: c.MaxOutputBytes}))
	}
	return hexdump.NewRenderer(opts...), table, nil
}
