package main

import (
	"flag"
	"fmt"
	"io"
	"os"

	"hextable/common/logging"
	"hextable/common/parser"
	"hextable/common/termcolor"

	"github.com/charmbracelet/log"
)

func main() {
	var (
		configFile  string
		payloadFile string
		title       string
		tail        string
		offset      int
		plain       bool
	)
	flag.StringVar(&configFile, "c", "", "Render configuration file")
	flag.StringVar(&payloadFile, "f", "-", "Payload file, - for stdin")
	flag.StringVar(&title, "title", "", "Title banner, overrides the config")
	flag.StringVar(&tail, "tail", "", "Tail banner, overrides the config")
	flag.IntVar(&offset, "offset", 0, "Skip this many payload bytes")
	flag.BoolVar(&plain, "plain", false, "Render without colors or annotations")
	flag.Parse()

	config := parser.DefaultRenderConfig()
	if configFile != "" {
		var err error
		config, err = parser.ParseRenderConfig(configFile)
		if err != nil {
			log.Errorf("Failed to parse config file: %v", err)
			os.Exit(1)
		}
	}
	if title != "" {
		config.Title = title
	}
	if tail != "" {
		config.Tail = tail
	}

	if err := parser.ValidateRenderConfig(config); err != nil {
		log.Errorf("Invalid render config: %v", err)
		os.Exit(1)
	}
	if err := logging.Setup(config.LogConfig); err != nil {
		log.Errorf("Failed to set up logging: %v", err)
		os.Exit(1)
	}

	data, err := readPayload(payloadFile)
	if err != nil {
		log.Errorf("Failed to read payload: %v", err)
		os.Exit(1)
	}
	if offset < 0 || offset > len(data) {
		log.Errorf("Offset %d outside payload of %d bytes", offset, len(data))
		os.Exit(1)
	}
	data = data[offset:]
	log.Debugf("Rendering %d bytes", len(data))

	renderer, table, err := parser.RenderSetup(config)
	if err != nil {
		log.Errorf("Failed to build annotations: %v", err)
		os.Exit(1)
	}
	colored := !plain && termcolor.Enabled(config.Color, os.Stdout)
	out, err := renderer.RenderPages(data, table, config.Title, config.Tail, colored)
	if err != nil {
		log.Errorf("Failed to render: %v", err)
		os.Exit(1)
	}
	fmt.Print(out)
}

func readPayload(path string) ([]byte, error) {
	if path == "" || path == "-" {
		return io.ReadAll(os.Stdin)
	}
	return os.ReadFile(path)
}
