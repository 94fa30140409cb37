package termcolor

import (
	"os"

	C "hextable/common/constant"

	"github.com/mattn/go-isatty"
	"github.com/muesli/termenv"
)

// Enabled resolves a color mode for output going to f. "auto" colors only
// terminals and honours NO_COLOR / CLICOLOR=0.
func Enabled(mode C.ColorMode, f *os.File) bool {
	switch mode {
	case C.ColorAlways:
		return true
	case C.ColorNever:
		return false
	}
	if termenv.EnvNoColor() {
		return false
	}
	if f == nil {
		return false
	}
	return isatty.IsTerminal(f.Fd()) || isatty.IsCygwinTerminal(f.Fd())
}
