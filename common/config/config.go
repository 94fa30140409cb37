package config

import (
	C "hextable/common/constant"
)

// RenderConfig drives a single table render: banners, color and the
// annotations applied to every page.
type RenderConfig struct {
	LogConfig      LogConfig          `json:"log,omitempty"`
	Title          string             `json:"title,omitempty"`
	Tail           string             `json:"tail,omitempty"`
	Color          C.ColorMode        `json:"color,omitempty"`            // "auto", "always" or "never"
	MaxOutputBytes int                `json:"max_output_bytes,omitempty"` // 0 means unlimited
	Annotations    []AnnotationConfig `json:"annotations,omitempty"`
}

type TapConfig struct {
	LogConfig       LogConfig          `json:"log,omitempty"`
	TransportConfig TapTransportConfig `json:"transport,omitempty"`
	RenderConfig    RenderConfig       `json:"render,omitempty"`
	Echo            bool               `json:"echo,omitempty"` // write received frames back to the peer
}

// Utility Definitions
type LogConfig struct {
	LogLevel  string `json:"log_level,omitempty"`  // default: "info"
	LogFormat string `json:"log_format,omitempty"` // "text", "json" or "logfmt"
	Timestamp bool   `json:"timestamp,omitempty"`
}

type TapTransportConfig struct {
	Protocol string `json:"protocol,omitempty"`  // "tcp", "tls" or "quic"
	Listen   string `json:"listen,omitempty"`    // host:port
	CertFile string `json:"cert_file,omitempty"` // Path to certificate file
	KeyFile  string `json:"key_file,omitempty"`  // Path to key file
}

// AnnotationConfig marks either the inclusive range [From, To] or the listed
// Indexes. Color holds SGR parameters such as "1;33".
type AnnotationConfig struct {
	From     *int   `json:"from,omitempty"`
	To       *int   `json:"to,omitempty"`
	Indexes  []int  `json:"indexes,omitempty"`
	Severity string `json:"severity,omitempty"`
	Color    string `json:"color,omitempty"`
	Left     string `json:"left,omitempty"`
	Right    string `json:"right,omitempty"`
}
