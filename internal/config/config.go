// Package config provides centralized configuration management for the application.
// It loads configuration from environment variables with sensible defaults and
// validates all settings on startup to fail fast on misconfiguration.
package config

import (
	"strconv"
	"time"
)

// Config holds all application configuration.
// All settings can be configured via environment variables; report decoration
// can additionally come from a YAML file (see ReportConfig.DecorationFile).
type Config struct {
	Server   ServerConfig
	Data     DataConfig
	API      APIConfig
	Export   ExportConfig
	Report   ReportConfig
	Rate     RateLimitConfig
	Security SecurityConfig
	Logging  LoggingConfig
}

// ServerConfig holds HTTP server settings.
type ServerConfig struct {
	// Host is the interface to bind to (default: 0.0.0.0)
	Host string `env:"SERVER_HOST" default:"0.0.0.0"`

	// Port is the port to listen on (default: 5000)
	// Supports both SERVER_PORT and PORT for platform compatibility
	Port int `env:"SERVER_PORT" envAlt:"PORT" default:"5000"`

	// ReadTimeout is the maximum duration for reading the request (default: 15s)
	ReadTimeout time.Duration `env:"SERVER_READ_TIMEOUT" default:"15s"`

	// WriteTimeout is the maximum duration for writing a response (default: 0, exports stream)
	WriteTimeout time.Duration `env:"SERVER_WRITE_TIMEOUT" default:"0s"`

	// IdleTimeout is the keep-alive timeout (default: 60s)
	IdleTimeout time.Duration `env:"SERVER_IDLE_TIMEOUT" default:"60s"`

	// ShutdownTimeout is the maximum duration to wait for graceful shutdown (default: 30s)
	ShutdownTimeout time.Duration `env:"SERVER_SHUTDOWN_TIMEOUT" default:"30s"`

	// RequestTimeout is the middleware timeout for JSON requests (default: 30s)
	RequestTimeout time.Duration `env:"SERVER_REQUEST_TIMEOUT" default:"30s"`
}

// DataConfig locates the dataset loaded at startup.
type DataConfig struct {
	// File is the .xlsx, .xlsm or .csv file to load (default: JCCS_FINAL.xlsx)
	File string `env:"DATA_FILE" default:"JCCS_FINAL.xlsx"`

	// Sheet is the workbook sheet to read; empty means the first sheet
	Sheet string `env:"DATA_SHEET"`
}

// APIConfig holds query endpoint settings.
type APIConfig struct {
	// DefaultLimit is the page size when a request omits limit (default: 10)
	DefaultLimit int `env:"API_DEFAULT_LIMIT" default:"10"`
}

// ExportConfig holds PDF export settings.
type ExportConfig struct {
	// MaxConcurrent is the maximum number of parallel exports (default: 4)
	MaxConcurrent int `env:"EXPORT_MAX_CONCURRENT" default:"4"`

	// MaxWaitTime is how long to wait for an export slot (default: 10s)
	MaxWaitTime time.Duration `env:"EXPORT_MAX_WAIT_TIME" default:"10s"`

	// Timeout bounds a single export from slot grant to last byte (default: 10m)
	Timeout time.Duration `env:"EXPORT_TIMEOUT" default:"10m"`

	// Filename is the attachment name sent to the client (default: filtered-data.pdf)
	Filename string `env:"EXPORT_FILENAME" default:"filtered-data.pdf"`
}

// ReportConfig controls PDF decoration. Fields tagged yaml may be overridden by
// the file named in DecorationFile.
type ReportConfig struct {
	// DecorationFile is an optional YAML file whose values win over the environment
	DecorationFile string `env:"REPORT_DECORATION_FILE" yaml:"-"`

	Title            string  `env:"REPORT_TITLE" default:"WCRMS KOTA — Filtered Data List" yaml:"title"`
	Watermark        string  `env:"REPORT_WATERMARK" default:"WCRMS KOTA" yaml:"watermark"`
	WatermarkOpacity float64 `env:"REPORT_WATERMARK_OPACITY" default:"0.22" yaml:"watermark_opacity"`
	WatermarkAngle   float64 `env:"REPORT_WATERMARK_ANGLE" default:"45" yaml:"watermark_angle"`
	WatermarkSize    float64 `env:"REPORT_WATERMARK_SIZE" default:"60" yaml:"watermark_size"`
	Attribution      string  `env:"REPORT_ATTRIBUTION" default:"Created By: M. A. Khan" yaml:"attribution"`

	// Font is the standard font family: helvetica or courier (default: helvetica)
	Font string `env:"REPORT_FONT" default:"helvetica" yaml:"font"`

	// Shading is the zebra stripe policy: absolute or page (default: absolute)
	Shading string `env:"REPORT_SHADING" default:"absolute" yaml:"shading"`

	HeaderFill string `env:"REPORT_HEADER_FILL" default:"#0f172a" yaml:"header_fill"`
	StripeFill string `env:"REPORT_STRIPE_FILL" default:"#f5f5f5" yaml:"stripe_fill"`
	GridColor  string `env:"REPORT_GRID_COLOR" default:"#bfbfbf" yaml:"grid_color"`
}

// RateLimitConfig holds per-IP rate limiting settings.
type RateLimitConfig struct {
	// Enabled controls whether rate limiting is active (default: true)
	Enabled bool `env:"RATE_LIMIT_ENABLED" default:"true"`

	// RequestsPerMinute is the default rate limit per IP (default: 120)
	RequestsPerMinute int `env:"RATE_LIMIT_REQUESTS_PER_MINUTE" default:"120"`

	// ExportLimit is requests per minute for the export endpoint (default: 10)
	ExportLimit int `env:"RATE_LIMIT_EXPORT" default:"10"`
}

// SecurityConfig holds security-related settings.
type SecurityConfig struct {
	// TrustedProxies is a comma-separated list of trusted proxy CIDRs
	TrustedProxies []string `env:"TRUSTED_PROXIES"`

	// AllowedOrigins is a comma-separated CORS origin list (default: *)
	AllowedOrigins []string `env:"CORS_ALLOWED_ORIGINS" default:"*"`
}

// LoggingConfig holds logging settings.
type LoggingConfig struct {
	// Level is the minimum log level: debug, info, warn, error (default: info)
	Level string `env:"LOG_LEVEL" default:"info"`

	// Format is the log format: text or json (default: text)
	Format string `env:"LOG_FORMAT" default:"text"`
}

// Addr returns the server listen address in host:port format.
func (c *ServerConfig) Addr() string {
	return c.Host + ":" + strconv.Itoa(c.Port)
}
