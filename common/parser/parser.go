package parser

import (
	"encoding/json"
	"fmt"
	"io"
	"os"

	"hextable/common/config"
	C "hextable/common/constant"

	"github.com/charmbracelet/log"
)

// ParseRenderConfig reads and parses a render configuration file.
func ParseRenderConfig(filePath string) (*config.RenderConfig, error) {
	content, err := readConfigFile(filePath)
	if err != nil {
		return nil, err
	}

	renderConfig := &config.RenderConfig{}
	// Set default values before decoding
	setRenderDefaults(renderConfig)

	if err := json.Unmarshal(content, renderConfig); err != nil {
		return nil, err
	}

	return renderConfig, nil
}

// ParseTapConfig reads and parses the tap configuration file.
func ParseTapConfig(filePath string) (*config.TapConfig, error) {
	content, err := readConfigFile(filePath)
	if err != nil {
		return nil, err
	}

	tapConfig := &config.TapConfig{}
	// Set default values before decoding
	tapConfig.LogConfig.LogLevel = C.DefaultLogLevel
	tapConfig.LogConfig.LogFormat = C.DefaultLogFormat
	tapConfig.TransportConfig.Protocol = C.DefaultProtocol
	tapConfig.TransportConfig.Listen = C.DefaultListen
	setRenderDefaults(&tapConfig.RenderConfig)

	if err := json.Unmarshal(content, tapConfig); err != nil {
		return nil, err
	}

	return tapConfig, nil
}

// DefaultRenderConfig is used when no configuration file is given.
func DefaultRenderConfig() *config.RenderConfig {
	renderConfig := &config.RenderConfig{}
	setRenderDefaults(renderConfig)
	return renderConfig
}

func setRenderDefaults(c *config.RenderConfig) {
	c.LogConfig.LogLevel = C.DefaultLogLevel
	c.LogConfig.LogFormat = C.DefaultLogFormat
	c.Color = C.DefaultColorMode
}

func readConfigFile(filePath string) ([]byte, error) {
	file, err := os.Open(filePath)
	if err != nil {
		return nil, err
	}
	defer file.Close()

	// Read the file content
	content, err := io.ReadAll(file)
	if err != nil {
		return nil, err
	}

	// Apply template processing
	return ApplyTemplate(content)
}

func ValidateRenderConfig(config *config.RenderConfig) error {
	if err := validateLogConfig(&config.LogConfig); err != nil {
		return err
	}
	if !config.Color.Valid() {
		return fmt.Errorf("invalid color mode: %s. Options are: auto, always, never", config.Color)
	}
	if config.MaxOutputBytes < 0 {
		return fmt.Errorf("max_output_bytes must not be negative")
	}
	for i, a := range config.Annotations {
		if err := validateAnnotation(&a); err != nil {
			return fmt.Errorf("annotation %d: %w", i, err)
		}
	}
	return nil
}

func ValidateTapConfig(config *config.TapConfig) error {
	if err := validateLogConfig(&config.LogConfig); err != nil {
		return err
	}
	transport := &config.TransportConfig
	if transport.Protocol != "tcp" && transport.Protocol != "tls" && transport.Protocol != "quic" {
		return fmt.Errorf("invalid transport protocol: %s. Options are: tcp, tls, quic", transport.Protocol)
	}
	if transport.Listen == "" {
		return fmt.Errorf("listen address is required in field 'transport'")
	}
	if (transport.CertFile != "" && transport.KeyFile == "") || (transport.CertFile == "" && transport.KeyFile != "") {
		return fmt.Errorf("cert_file and key_file must be provided together")
	}
	if transport.CertFile != "" {
		if _, err := os.Stat(transport.CertFile); os.IsNotExist(err) {
			return fmt.Errorf("cert_file not found: %s", transport.CertFile)
		}
	}
	if transport.KeyFile != "" {
		if _, err := os.Stat(transport.KeyFile); os.IsNotExist(err) {
			return fmt.Errorf("key_file not found: %s", transport.KeyFile)
		}
	}
	if err := ValidateRenderConfig(&config.RenderConfig); err != nil {
		return fmt.Errorf("render: %w", err)
	}
	return nil
}

func validateLogConfig(config *config.LogConfig) error {
	if config.LogLevel != "" {
		if _, err := log.ParseLevel(config.LogLevel); err != nil {
			return fmt.Errorf("invalid log level: %s", config.LogLevel)
		}
	}
	switch config.LogFormat {
	case "", "text", "json", "logfmt":
	default:
		return fmt.Errorf("invalid log format: %s. Options are: text, json, logfmt", config.LogFormat)
	}
	return nil
}
