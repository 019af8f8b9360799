package config

import (
	"fmt"
	"os"
	"strings"
	"time"

	"github.com/spf13/viper"
)

const VERSION = "1.0"

type Config struct {
	Server      ServerConfig
	Database    DatabaseConfig
	Tracing     TracingConfig
	Editor      EditorConfig
	Render      RenderConfig
	Environment string
	LogLevel    string
	Version     string
}

type ServerConfig struct {
	Port int
	Host string
	SSL  SSLConfig
	// CORSAllowOrigin is echoed in Access-Control-Allow-Origin
	CORSAllowOrigin string
	ShutdownTimeout time.Duration
}

type DatabaseConfig struct {
	Host     string
	Port     int
	User     string
	Password string
	DBName   string
	SSLMode  string
}

type SSLConfig struct {
	Enabled  bool
	CertFile string
	KeyFile  string
}

type TracingConfig struct {
	Enabled             bool
	ServiceName         string
	SamplingProbability float64

	// Trace exporter configuration
	TraceExporter string // "jaeger", "zipkin", "none"

	// Jaeger settings
	JaegerEndpoint string

	// Zipkin settings
	ZipkinEndpoint string

	// Metrics exporter configuration
	MetricsExporter string // "prometheus", "none"
	PrometheusPort  int
}

// EditorConfig bounds the resources an editing session may use
type EditorConfig struct {
	MaxConcurrentDecodes int
	MaxImageBytes        int64
	MaxImagePixels       int
	MaxImageWidth        int
	SessionTTL           time.Duration
}

// RenderConfig drives email serialization
type RenderConfig struct {
	ContentWidth  int
	LiquidTimeout time.Duration
}

// LoadOptions contains options for loading configuration
type LoadOptions struct {
	EnvFile string // Optional environment file to load (e.g., ".env", ".env.test")
}

// Load loads the configuration with default options
func Load() (*Config, error) {
	// Try to load .env file but don't require it
	return LoadWithOptions(LoadOptions{EnvFile: ".env"})
}

// LoadWithOptions loads the configuration with the specified options
func LoadWithOptions(opts LoadOptions) (*Config, error) {
	v := viper.New()

	// Set default values
	v.SetDefault("SERVER_PORT", 8080)
	v.SetDefault("SERVER_HOST", "0.0.0.0")
	v.SetDefault("SERVER_CORS_ALLOW_ORIGIN", "*")
	v.SetDefault("SERVER_SHUTDOWN_TIMEOUT", "30s")
	v.SetDefault("DB_HOST", "localhost")
	v.SetDefault("DB_PORT", 5432)
	v.SetDefault("DB_USER", "postgres")
	v.SetDefault("DB_PASSWORD", "postgres")
	v.SetDefault("DB_NAME", "mailcanvas")
	v.SetDefault("DB_SSLMODE", "require")
	v.SetDefault("ENVIRONMENT", "production")
	v.SetDefault("LOG_LEVEL", "info")
	v.SetDefault("VERSION", VERSION)

	// Editor defaults
	v.SetDefault("EDITOR_MAX_CONCURRENT_DECODES", 4)
	v.SetDefault("EDITOR_MAX_IMAGE_BYTES", 10*1024*1024)
	v.SetDefault("EDITOR_MAX_IMAGE_PIXELS", 40_000_000)
	v.SetDefault("EDITOR_MAX_IMAGE_WIDTH", 1200)
	v.SetDefault("EDITOR_SESSION_TTL", "2h")

	// Render defaults
	v.SetDefault("RENDER_CONTENT_WIDTH", 600)
	v.SetDefault("LIQUID_RENDER_TIMEOUT", "5s")

	// Default tracing config
	v.SetDefault("TRACING_ENABLED", false)
	v.SetDefault("TRACING_SERVICE_NAME", "mailcanvas-api")
	v.SetDefault("TRACING_SAMPLING_PROBABILITY", 0.1)
	v.SetDefault("TRACING_TRACE_EXPORTER", "none")
	v.SetDefault("TRACING_JAEGER_ENDPOINT", "http://localhost:14268/api/traces")
	v.SetDefault("TRACING_ZIPKIN_ENDPOINT", "http://localhost:9411/api/v2/spans")
	v.SetDefault("TRACING_METRICS_EXPORTER", "none")
	v.SetDefault("TRACING_PROMETHEUS_PORT", 9464)

	// Load environment file if specified
	if opts.EnvFile != "" {
		v.SetConfigName(opts.EnvFile)
		v.SetConfigType("env")

		currentPath, err := os.Getwd()
		if err != nil {
			return nil, fmt.Errorf("error getting current directory: %w", err)
		}

		v.AddConfigPath(currentPath)

		if err := v.ReadInConfig(); err != nil {
			// It's okay if config file doesn't exist
			if _, ok := err.(viper.ConfigFileNotFoundError); !ok {
				return nil, fmt.Errorf("error reading config file: %w", err)
			}
		}
	}

	// Read environment variables
	v.AutomaticEnv()
	v.SetEnvKeyReplacer(strings.NewReplacer(".", "_"))

	config := &Config{
		Server: ServerConfig{
			Port: v.GetInt("SERVER_PORT"),
			Host: v.GetString("SERVER_HOST"),
			SSL: SSLConfig{
				Enabled:  v.GetBool("SSL_ENABLED"),
				CertFile: v.GetString("SSL_CERT_FILE"),
				KeyFile:  v.GetString("SSL_KEY_FILE"),
			},
			CORSAllowOrigin: v.GetString("SERVER_CORS_ALLOW_ORIGIN"),
			ShutdownTimeout: v.GetDuration("SERVER_SHUTDOWN_TIMEOUT"),
		},
		Database: DatabaseConfig{
			Host:     v.GetString("DB_HOST"),
			Port:     v.GetInt("DB_PORT"),
			User:     v.GetString("DB_USER"),
			Password: v.GetString("DB_PASSWORD"),
			DBName:   v.GetString("DB_NAME"),
			SSLMode:  v.GetString("DB_SSLMODE"),
		},
		Tracing: TracingConfig{
			Enabled:             v.GetBool("TRACING_ENABLED"),
			ServiceName:         v.GetString("TRACING_SERVICE_NAME"),
			SamplingProbability: v.GetFloat64("TRACING_SAMPLING_PROBABILITY"),
			TraceExporter:       v.GetString("TRACING_TRACE_EXPORTER"),
			JaegerEndpoint:      v.GetString("TRACING_JAEGER_ENDPOINT"),
			ZipkinEndpoint:      v.GetString("TRACING_ZIPKIN_ENDPOINT"),
			MetricsExporter:     v.GetString("TRACING_METRICS_EXPORTER"),
			PrometheusPort:      v.GetInt("TRACING_PROMETHEUS_PORT"),
		},
		Editor: EditorConfig{
			MaxConcurrentDecodes: v.GetInt("EDITOR_MAX_CONCURRENT_DECODES"),
			MaxImageBytes:        v.GetInt64("EDITOR_MAX_IMAGE_BYTES"),
			MaxImagePixels:       v.GetInt("EDITOR_MAX_IMAGE_PIXELS"),
			MaxImageWidth:        v.GetInt("EDITOR_MAX_IMAGE_WIDTH"),
			SessionTTL:           v.GetDuration("EDITOR_SESSION_TTL"),
		},
		Render: RenderConfig{
			ContentWidth:  v.GetInt("RENDER_CONTENT_WIDTH"),
			LiquidTimeout: v.GetDuration("LIQUID_RENDER_TIMEOUT"),
		},
		Environment: v.GetString("ENVIRONMENT"),
		LogLevel:    v.GetString("LOG_LEVEL"),
		Version:     v.GetString("VERSION"),
	}

	if err := config.Validate(); err != nil {
		return nil, err
	}

	return config, nil
}

// Validate rejects limits the editor cannot run with
func (c *Config) Validate() error {
	if c.Editor.MaxConcurrentDecodes <= 0 {
		return fmt.Errorf("EDITOR_MAX_CONCURRENT_DECODES must be positive, got %d", c.Editor.MaxConcurrentDecodes)
	}
	if c.Editor.MaxImageBytes <= 0 {
		return fmt.Errorf("EDITOR_MAX_IMAGE_BYTES must be positive, got %d", c.Editor.MaxImageBytes)
	}
	if c.Editor.SessionTTL <= 0 {
		return fmt.Errorf("EDITOR_SESSION_TTL must be positive, got %s", c.Editor.SessionTTL)
	}
	if c.Render.ContentWidth < 320 || c.Render.ContentWidth > 1200 {
		return fmt.Errorf("RENDER_CONTENT_WIDTH must be between 320 and 1200, got %d", c.Render.ContentWidth)
	}
	if c.Render.LiquidTimeout <= 0 {
		return fmt.Errorf("LIQUID_RENDER_TIMEOUT must be positive, got %s", c.Render.LiquidTimeout)
	}
	return nil
}

// IsDevelopment returns true if the environment is set to development
func (c *Config) IsDevelopment() bool {
	return c.Environment == "development"
}

func (c *Config) IsProduction() bool {
	return c.Environment == "production"
}
