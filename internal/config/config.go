package config

import (
	"fmt"
	"os"
	"path/filepath"
	"time"

	"github.com/go-playground/validator/v10"
	"github.com/kelseyhightower/envconfig"
	"gopkg.in/yaml.v2"
)

// Config represents the complete application configuration
type Config struct {
	Server    ServerConfig    `yaml:"server" envconfig:"SERVER"`
	Security  SecurityConfig  `yaml:"security" envconfig:"SECURITY"`
	Logging   LoggingConfig   `yaml:"logging" envconfig:"LOGGING"`
	Dataset   DatasetConfig   `yaml:"dataset" envconfig:"DATASET"`
	Telemetry TelemetryConfig `yaml:"telemetry" envconfig:"TELEMETRY"`
	Explorer  ExplorerConfig  `yaml:"explorer" envconfig:"EXPLORER"`

	// source is the config file the values were read from, empty when none was found
	source string
}

// ServerConfig contains HTTP server configuration
type ServerConfig struct {
	Port            int           `yaml:"port" envconfig:"PORT" validate:"min=1,max=65535"`
	ReadTimeout     time.Duration `yaml:"read_timeout" envconfig:"READ_TIMEOUT" validate:"gt=0"`
	WriteTimeout    time.Duration `yaml:"write_timeout" envconfig:"WRITE_TIMEOUT" validate:"gt=0"`
	IdleTimeout     time.Duration `yaml:"idle_timeout" envconfig:"IDLE_TIMEOUT" validate:"gte=0"`
	MaxHeaderBytes  int           `yaml:"max_header_bytes" envconfig:"MAX_HEADER_BYTES" validate:"gt=0"`
	ShutdownTimeout time.Duration `yaml:"shutdown_timeout" envconfig:"SHUTDOWN_TIMEOUT" validate:"gt=0"`
	RequestTimeout  time.Duration `yaml:"request_timeout" envconfig:"REQUEST_TIMEOUT" validate:"gt=0"`
}

// SecurityConfig contains security-related configuration
type SecurityConfig struct {
	AllowedOrigins []string        `yaml:"allowed_origins" envconfig:"ALLOWED_ORIGINS" validate:"min=1,dive,required"`
	RateLimit      RateLimitConfig `yaml:"rate_limit" envconfig:"RATE_LIMIT"`
}

// RateLimitConfig contains rate limiting configuration
type RateLimitConfig struct {
	Enabled bool    `yaml:"enabled" envconfig:"ENABLED"`
	RPS     float64 `yaml:"rps" envconfig:"RPS" validate:"required_if=Enabled true,gte=0"`
	Burst   int     `yaml:"burst" envconfig:"BURST" validate:"required_if=Enabled true,gte=0"`
}

// LoggingConfig contains logging configuration
type LoggingConfig struct {
	Level       string `yaml:"level" envconfig:"LEVEL" validate:"oneof=debug info warn warning error"`
	Format      string `yaml:"format" envconfig:"FORMAT" validate:"oneof=json"`
	Output      string `yaml:"output" envconfig:"OUTPUT" validate:"oneof=console stdout stderr file both"`
	FilePath    string `yaml:"file_path" envconfig:"FILE_PATH" validate:"required_if=Output file,required_if=Output both"`
	Development bool   `yaml:"development" envconfig:"DEVELOPMENT"`
}

// DatasetConfig describes the precomputed log-return series served by the API
type DatasetConfig struct {
	ReturnsFile string `yaml:"returns_file" envconfig:"RETURNS_FILE" validate:"required"`
	ChangePoint int    `yaml:"change_point" envconfig:"CHANGE_POINT" validate:"gte=0"`
}

// TelemetryConfig selects the OpenTelemetry exporters
type TelemetryConfig struct {
	TraceExporter  string `yaml:"trace_exporter" envconfig:"TRACE_EXPORTER" validate:"oneof=none stdout"`
	MetricExporter string `yaml:"metric_exporter" envconfig:"METRIC_EXPORTER" validate:"oneof=none prometheus"`
}

// ExplorerConfig contains the inputs and outputs of the exploration run
type ExplorerConfig struct {
	PricesFile    string  `yaml:"prices_file" envconfig:"PRICES_FILE" validate:"required"`
	EventsFile    string  `yaml:"events_file" envconfig:"EVENTS_FILE" validate:"required"`
	PlotFile      string  `yaml:"plot_file" envconfig:"PLOT_FILE" validate:"required"`
	ReportFile    string  `yaml:"report_file" envconfig:"REPORT_FILE"`
	PlotWidth     float64 `yaml:"plot_width" envconfig:"PLOT_WIDTH" validate:"gt=0"`
	PlotHeight    float64 `yaml:"plot_height" envconfig:"PLOT_HEIGHT" validate:"gt=0"`
	PlotDPI       int     `yaml:"plot_dpi" envconfig:"PLOT_DPI" validate:"min=36,max=1200"`
	HistogramBins int     `yaml:"histogram_bins" envconfig:"HISTOGRAM_BINS" validate:"min=1"`
}

var validate = validator.New()

// Load loads configuration from the default locations and the environment.
// The config file is taken from BRENT_CONFIG when set.
func Load() (*Config, error) {
	return LoadFrom(os.Getenv(EnvConfigFile))
}

// LoadFrom loads configuration starting from defaults, then the YAML file at
// path (or the first well-known location when path is empty), then BRENT_*
// environment variables.
func LoadFrom(path string) (*Config, error) {
	cfg := Default()

	if path == "" {
		path = getConfigFilePath()
	}
	if path != "" {
		if err := cfg.loadFile(path); err != nil {
			return nil, fmt.Errorf("failed to load config from file: %w", err)
		}
	}

	if err := envconfig.Process(EnvPrefix, cfg); err != nil {
		return nil, fmt.Errorf("failed to load config from env: %w", err)
	}

	if err := cfg.Validate(); err != nil {
		return nil, fmt.Errorf("config validation failed: %w", err)
	}

	return cfg, nil
}

// loadFile overlays the YAML file on top of the current values
func (c *Config) loadFile(path string) error {
	data, err := os.ReadFile(path)
	if err != nil {
		return err
	}

	if err := yaml.Unmarshal(data, c); err != nil {
		return err
	}

	c.source = path
	c.resolvePaths(filepath.Dir(path))
	return nil
}

// Validate checks the configuration against its struct constraints
func (c *Config) Validate() error {
	return validate.Struct(c)
}

// Source returns the config file in effect, or "" when only defaults and env were used
func (c *Config) Source() string {
	return c.source
}

// getConfigFilePath returns the path to the config file
func getConfigFilePath() string {
	locations := []string{
		"config.yaml",
		"configs/config.yaml",
		"../configs/config.yaml",
	}

	for _, location := range locations {
		if _, err := os.Stat(location); err == nil {
			return location
		}
	}

	return ""
}

// Default returns default configuration
func Default() *Config {
	return &Config{
		Server: ServerConfig{
			Port:            DefaultPort,
			ReadTimeout:     15 * time.Second,
			WriteTimeout:    15 * time.Second,
			IdleTimeout:     60 * time.Second,
			MaxHeaderBytes:  1 << 20, // 1MB
			ShutdownTimeout: 30 * time.Second,
			RequestTimeout:  DefaultRequestTimeout,
		},
		Security: SecurityConfig{
			AllowedOrigins: []string{"*"},
			RateLimit: RateLimitConfig{
				Enabled: true,
				RPS:     DefaultRateLimit,
				Burst:   DefaultBurstSize,
			},
		},
		Logging: LoggingConfig{
			Level:    "info",
			Format:   "json",
			Output:   "console",
			FilePath: "logs/app.log",
		},
		Dataset: DatasetConfig{
			ReturnsFile: DefaultReturnsFile,
			ChangePoint: DefaultChangePoint,
		},
		Telemetry: TelemetryConfig{
			TraceExporter:  "none",
			MetricExporter: "prometheus",
		},
		Explorer: ExplorerConfig{
			PricesFile:    DefaultPricesFile,
			EventsFile:    DefaultEventsFile,
			PlotFile:      DefaultPlotFile,
			PlotWidth:     DefaultPlotWidth,
			PlotHeight:    DefaultPlotHeight,
			PlotDPI:       DefaultPlotDPI,
			HistogramBins: DefaultHistogramBins,
		},
	}
}
