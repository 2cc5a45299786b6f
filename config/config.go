package config

import (
	"fmt"
	"os"
	"strings"
	"time"

	"github.com/spf13/viper"
)

const VERSION = "1.4"

type Config struct {
	Server          ServerConfig
	Database        DatabaseConfig
	Mailer          MailerConfig
	AI              AIConfig
	Builder         BuilderConfig
	Auth            AuthConfig
	Webhook         WebhookConfig
	Tracing         TracingConfig
	CORSAllowOrigin string
	Environment     string
	LogLevel        string
	Version         string
}

type ServerConfig struct {
	Port            int
	Host            string
	ShutdownTimeout time.Duration
	SSL             SSLConfig
}

type SSLConfig struct {
	Enabled  bool
	CertFile string
	KeyFile  string
}

type DatabaseConfig struct {
	Host     string
	Port     int
	User     string
	Password string
	DBName   string
	SSLMode  string
}

// MailerConfig selects the transport used for test emails
type MailerConfig struct {
	Provider     string // "smtp", "ses" or "console"
	SMTPHost     string
	SMTPPort     int
	SMTPUsername string
	SMTPPassword string
	SESRegion    string
	SESAccessKey string
	SESSecretKey string
	FromEmail    string
	FromName     string
}

type AIConfig struct {
	Endpoint string
	APIKey   string
	Timeout  time.Duration
}

type BuilderConfig struct {
	SessionTTL     time.Duration
	HistoryLimit   int
	GenerateLimit  int
	GenerateWindow time.Duration
	SendTestLimit  int
	SendTestWindow time.Duration
}

type AuthConfig struct {
	Mode            string // "none", "paseto" or "jwt"
	PasetoPublicKey string // base64 encoded
	JWTSecret       string
}

type WebhookConfig struct {
	URL    string
	Secret string
}

type TracingConfig struct {
	Enabled             bool
	ServiceName         string
	SamplingProbability float64

	// Trace exporter configuration
	TraceExporter string // "jaeger", "stackdriver", "zipkin", "datadog", "xray", "none"

	JaegerEndpoint       string
	ZipkinEndpoint       string
	StackdriverProjectID string
	DatadogAgentAddress  string
	XRayRegion           string

	// Metrics exporter configuration
	MetricsExporter string // "prometheus", "stackdriver", "datadog", "none" or comma-separated list
	PrometheusPort  int
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
	v.SetDefault("SERVER_SHUTDOWN_TIMEOUT", "30s")
	v.SetDefault("DB_HOST", "localhost")
	v.SetDefault("DB_PORT", 5432)
	v.SetDefault("DB_USER", "postgres")
	v.SetDefault("DB_PASSWORD", "postgres")
	v.SetDefault("DB_NAME", "emailbuilder")
	v.SetDefault("DB_SSLMODE", "require")
	v.SetDefault("ENVIRONMENT", "production")
	v.SetDefault("LOG_LEVEL", "info")
	v.SetDefault("VERSION", VERSION)
	v.SetDefault("CORS_ALLOW_ORIGIN", "*")

	// Test email defaults
	v.SetDefault("TEST_EMAIL_PROVIDER", "console")
	v.SetDefault("SMTP_PORT", 587)
	v.SetDefault("SES_REGION", "us-east-1")
	v.SetDefault("TEST_EMAIL_FROM_NAME", "Email Builder")

	v.SetDefault("AI_TIMEOUT", "60s")

	// Builder sessions
	v.SetDefault("BUILDER_SESSION_TTL", "2h")
	v.SetDefault("BUILDER_HISTORY_LIMIT", 100)
	v.SetDefault("BUILDER_GENERATE_LIMIT", 10)
	v.SetDefault("BUILDER_GENERATE_WINDOW", "1m")
	v.SetDefault("BUILDER_SEND_TEST_LIMIT", 5)
	v.SetDefault("BUILDER_SEND_TEST_WINDOW", "1m")

	v.SetDefault("AUTH_MODE", "none")

	// Default tracing config
	v.SetDefault("TRACING_ENABLED", false)
	v.SetDefault("TRACING_SERVICE_NAME", "emailbuilder-api")
	v.SetDefault("TRACING_SAMPLING_PROBABILITY", 0.1)
	v.SetDefault("TRACING_TRACE_EXPORTER", "none")
	v.SetDefault("TRACING_JAEGER_ENDPOINT", "http://localhost:14268/api/traces")
	v.SetDefault("TRACING_ZIPKIN_ENDPOINT", "http://localhost:9411/api/v2/spans")
	v.SetDefault("TRACING_STACKDRIVER_PROJECT_ID", "")
	v.SetDefault("TRACING_DATADOG_AGENT_ADDRESS", "localhost:8126")
	v.SetDefault("TRACING_XRAY_REGION", "us-west-2")
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
			Port:            v.GetInt("SERVER_PORT"),
			Host:            v.GetString("SERVER_HOST"),
			ShutdownTimeout: v.GetDuration("SERVER_SHUTDOWN_TIMEOUT"),
			SSL: SSLConfig{
				Enabled:  v.GetBool("SSL_ENABLED"),
				CertFile: v.GetString("SSL_CERT_FILE"),
				KeyFile:  v.GetString("SSL_KEY_FILE"),
			},
		},
		Database: DatabaseConfig{
			Host:     v.GetString("DB_HOST"),
			Port:     v.GetInt("DB_PORT"),
			User:     v.GetString("DB_USER"),
			Password: v.GetString("DB_PASSWORD"),
			DBName:   v.GetString("DB_NAME"),
			SSLMode:  v.GetString("DB_SSLMODE"),
		},
		Mailer: MailerConfig{
			Provider:     strings.ToLower(v.GetString("TEST_EMAIL_PROVIDER")),
			SMTPHost:     v.GetString("SMTP_HOST"),
			SMTPPort:     v.GetInt("SMTP_PORT"),
			SMTPUsername: v.GetString("SMTP_USERNAME"),
			SMTPPassword: v.GetString("SMTP_PASSWORD"),
			SESRegion:    v.GetString("SES_REGION"),
			SESAccessKey: v.GetString("SES_ACCESS_KEY"),
			SESSecretKey: v.GetString("SES_SECRET_KEY"),
			FromEmail:    v.GetString("TEST_EMAIL_FROM_EMAIL"),
			FromName:     v.GetString("TEST_EMAIL_FROM_NAME"),
		},
		AI: AIConfig{
			Endpoint: v.GetString("AI_ENDPOINT"),
			APIKey:   v.GetString("AI_API_KEY"),
			Timeout:  v.GetDuration("AI_TIMEOUT"),
		},
		Builder: BuilderConfig{
			SessionTTL:     v.GetDuration("BUILDER_SESSION_TTL"),
			HistoryLimit:   v.GetInt("BUILDER_HISTORY_LIMIT"),
			GenerateLimit:  v.GetInt("BUILDER_GENERATE_LIMIT"),
			GenerateWindow: v.GetDuration("BUILDER_GENERATE_WINDOW"),
			SendTestLimit:  v.GetInt("BUILDER_SEND_TEST_LIMIT"),
			SendTestWindow: v.GetDuration("BUILDER_SEND_TEST_WINDOW"),
		},
		Auth: AuthConfig{
			Mode:            strings.ToLower(v.GetString("AUTH_MODE")),
			PasetoPublicKey: v.GetString("PASETO_PUBLIC_KEY"),
			JWTSecret:       v.GetString("JWT_SECRET"),
		},
		Webhook: WebhookConfig{
			URL:    v.GetString("WEBHOOK_URL"),
			Secret: v.GetString("WEBHOOK_SECRET"),
		},
		Tracing: TracingConfig{
			Enabled:              v.GetBool("TRACING_ENABLED"),
			ServiceName:          v.GetString("TRACING_SERVICE_NAME"),
			SamplingProbability:  v.GetFloat64("TRACING_SAMPLING_PROBABILITY"),
			TraceExporter:        v.GetString("TRACING_TRACE_EXPORTER"),
			JaegerEndpoint:       v.GetString("TRACING_JAEGER_ENDPOINT"),
			ZipkinEndpoint:       v.GetString("TRACING_ZIPKIN_ENDPOINT"),
			StackdriverProjectID: v.GetString("TRACING_STACKDRIVER_PROJECT_ID"),
			DatadogAgentAddress:  v.GetString("TRACING_DATADOG_AGENT_ADDRESS"),
			XRayRegion:           v.GetString("TRACING_XRAY_REGION"),
			MetricsExporter:      v.GetString("TRACING_METRICS_EXPORTER"),
			PrometheusPort:       v.GetInt("TRACING_PROMETHEUS_PORT"),
		},
		CORSAllowOrigin: v.GetString("CORS_ALLOW_ORIGIN"),
		Environment:     v.GetString("ENVIRONMENT"),
		LogLevel:        v.GetString("LOG_LEVEL"),
		Version:         v.GetString("VERSION"),
	}

	if err := config.validate(); err != nil {
		return nil, err
	}

	return config, nil
}

func (c *Config) validate() error {
	switch c.Auth.Mode {
	case "none":
	case "paseto":
		if c.Auth.PasetoPublicKey == "" {
			return fmt.Errorf("PASETO_PUBLIC_KEY is required when AUTH_MODE is paseto")
		}
	case "jwt":
		if c.Auth.JWTSecret == "" {
			return fmt.Errorf("JWT_SECRET is required when AUTH_MODE is jwt")
		}
	default:
		return fmt.Errorf("unknown AUTH_MODE: %s", c.Auth.Mode)
	}

	if c.Webhook.URL != "" && c.Webhook.Secret == "" {
		return fmt.Errorf("WEBHOOK_SECRET is required when WEBHOOK_URL is set")
	}

	if c.Builder.SessionTTL <= 0 {
		return fmt.Errorf("BUILDER_SESSION_TTL must be positive")
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
