package logging

import (
	"fmt"

	"hextable/common/config"

	"github.com/charmbracelet/lipgloss"
	"github.com/charmbracelet/log"
)

// Setup configures the package-level logger from a LogConfig.
func Setup(c config.LogConfig) error {
	if c.LogLevel != "" {
		level, err := log.ParseLevel(c.LogLevel)
		if err != nil {
			return fmt.Errorf("invalid log level %q: %w", c.LogLevel, err)
		}
		log.SetLevel(level)
	}

	switch c.LogFormat {
	case "", "text":
		log.SetFormatter(log.TextFormatter)
		log.SetStyles(styles())
	case "json":
		log.SetFormatter(log.JSONFormatter)
	case "logfmt":
		log.SetFormatter(log.LogfmtFormatter)
	default:
		return fmt.Errorf("invalid log format: %s", c.LogFormat)
	}

	log.SetReportTimestamp(c.Timestamp)
	return nil
}

// styles colors level labels with the same palette the tables use for
// severities, so a WARN line and a WAN cell read alike.
func styles() *log.Styles {
	s := log.DefaultStyles()
	s.Levels[log.DebugLevel] = lipgloss.NewStyle().
		SetString("DEBU").
		Bold(true).
		Foreground(lipgloss.Color("33"))
	s.Levels[log.WarnLevel] = lipgloss.NewStyle().
		SetString("WARN").
		Bold(true).
		Foreground(lipgloss.Color("226"))
	s.Levels[log.ErrorLevel] = lipgloss.NewStyle().
		SetString("ERRO").
		Bold(true).
		Foreground(lipgloss.Color("196"))
	return s
}
