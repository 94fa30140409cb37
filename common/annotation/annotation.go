package annotation

import (
	"fmt"
	"strings"
)

// Severity tags a byte index. Higher values win when aggregating.
type Severity uint8

const (
	Normal  Severity = 0b00
	Debug   Severity = 0b01
	Warning Severity = 0b10
	Error   Severity = 0b11
)

func (s Severity) String() string {
	switch s {
	case Normal:
		return "NML"
	case Debug:
		return "DBG"
	case Warning:
		return "WAN"
	case Error:
		return "ERR"
	default:
		return fmt.Sprintf("Severity(%d)", uint8(s))
	}
}

// ParseSeverity accepts both the long and the three-letter names.
func ParseSeverity(s string) (Severity, error) {
	switch strings.ToLower(strings.TrimSpace(s)) {
	case "", "normal", "nml":
		return Normal, nil
	case "debug", "dbg":
		return Debug, nil
	case "warning", "warn", "wan":
		return Warning, nil
	case "error", "err":
		return Error, nil
	default:
		return Normal, fmt.Errorf("invalid severity: %s. Options are: normal, debug, warning, error", s)
	}
}

func Max(a, b Severity) Severity {
	if a > b {
		return a
	}
	return b
}

// Annotation decorates a single byte index. Zero runes and an empty color
// mean the decoration is absent.
type Annotation struct {
	Color    string
	Left     rune
	Right    rune
	Severity Severity
}

// Table holds one annotation per index 0..255.
// A nil *Table answers every query with the defaults.
type Table struct {
	slots [256]Annotation
}

func NewTable() *Table {
	return &Table{}
}

func (t *Table) At(i uint8) Annotation {
	if t == nil {
		return Annotation{}
	}
	return t.slots[i]
}

func (t *Table) SeverityAt(i uint8) Severity {
	return t.At(i).Severity
}

func (t *Table) ColorAt(i uint8) (string, bool) {
	c := t.At(i).Color
	return c, c != ""
}

func (t *Table) MarksAt(i uint8) (left, right rune) {
	a := t.At(i)
	return a.Left, a.Right
}

// RowSeverity is the maximum severity over indices [16*row, 16*row+15].
func (t *Table) RowSeverity(row uint8) Severity {
	level := Normal
	if t == nil {
		return level
	}
	base := int(row&0x0F) * 16
	for i := base; i < base+16; i++ {
		level = Max(level, t.slots[i].Severity)
	}
	return level
}

// ColumnSeverity is the maximum severity over all 16 rows of one column.
func (t *Table) ColumnSeverity(col uint8) Severity {
	level := Normal
	if t == nil {
		return level
	}
	for row := 0; row < 16; row++ {
		level = Max(level, t.slots[row*16+int(col&0x0F)].Severity)
	}
	return level
}

// MarkSeverity raises every index in the inclusive range to at least s.
// It never lowers a severity that is already recorded.
func (t *Table) MarkSeverity(from, to uint8, s Severity) {
	if from > to {
		from, to = to, from
	}
	for i := int(from); i <= int(to); i++ {
		t.slots[i].Severity = Max(t.slots[i].Severity, s)
	}
}

// Colorize sets color on the inclusive range, the left mark on from and the
// right mark on to. An empty color and zero marks leave existing values alone.
func (t *Table) Colorize(from, to uint8, color string, left, right rune) {
	if from > to {
		from, to = to, from
	}
	if color != "" {
		for i := int(from); i <= int(to); i++ {
			t.slots[i].Color = color
		}
	}
	if left != 0 {
		t.slots[from].Left = left
	}
	if right != 0 {
		t.slots[to].Right = right
	}
}

func (t *Table) Clone() *Table {
	if t == nil {
		return NewTable()
	}
	c := *t
	return &c
}
