package constant

// Table geometry. The layout is fixed: every line is LineWidth columns wide.
const (
	Version = "v1.0"

	Rows      = 16
	Columns   = 16
	TableSize = Rows * Columns
	LineWidth = 89

	TitleFieldWidth = 66
	TitleThreshold  = 40
	TailFieldWidth  = 84
	TailThreshold   = 60
	Ellipsis        = "..."
)

// Escape sequences.
const (
	Reset = "\033[0m"

	// Out-of-range cells and their ASCII dots.
	Alert = "\033[1;31m"

	// ASCII column palette for non-printable bytes.
	DotNUL   = "\033[1;30m"
	DotLF    = "\033[1;34m"
	DotCR    = "\033[1;35m"
	DotTab   = "\033[1;33m"
	DotEsc   = "\033[1;36m"
	DotOther = "\033[1;37m"
)

// LevelColor is the foreground color per severity, used for labels and
// borders. LevelColorBG is the background variant used for cells.
// Normal maps to the empty string and emits no escape.
var (
	LevelColor = [4]string{
		"",
		"\033[38;5;33m",
		"\033[38;5;226m",
		"\033[38;5;196m",
	}
	LevelColorBG = [4]string{
		"",
		"\033[48;5;33m",
		"\033[48;5;226m\033[38;5;16m",
		"\033[48;5;196m",
	}
)

// Defaults shared by the config loaders.
const (
	DefaultLogLevel  = "info"
	DefaultLogFormat = "text"
	DefaultColorMode = "auto"
	DefaultProtocol  = "tcp"
	DefaultListen    = "127.0.0.1:9000"

	ALPN = "hextap"
)
