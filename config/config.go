package config

import (
	"errors"
	"fmt"
	"log"
	"os"
	"strconv"
	"strings"

	"github.com/joho/godotenv"
	"gopkg.in/yaml.v3"
)

// InsecureSecretKey is the development fallback; production must override it.
const InsecureSecretKey = "callsoso-insecure-local-dev-only-change-in-production"

// Config holds the settings of the whole application.
type Config struct {
	Debug              bool     `yaml:"debug"`
	Port               string   `yaml:"port"`
	SecretKey          string   `yaml:"secret_key"`
	AllowedHosts       []string `yaml:"allowed_hosts"`
	CSRFTrustedOrigins []string `yaml:"csrf_trusted_origins"`
	LogLevel           string   `yaml:"log_level"`
	NATSURL            string   `yaml:"nats_url"`

	Database DatabaseConfig `yaml:"database"`
	Email    EmailConfig    `yaml:"email"`
	Security SecurityConfig `yaml:"security"`
}

// DatabaseConfig selects the database engine. SQLite uses Name as the file
// path, PostgreSQL and MySQL use URL as the DSN.
type DatabaseConfig struct {
	Engine string `yaml:"engine"`
	URL    string `yaml:"url"`
	Name   string `yaml:"name"`
}

// EmailConfig configures outgoing mail.
type EmailConfig struct {
	Backend  string `yaml:"backend"` // "console" or "smtp"
	Host     string `yaml:"host"`
	Port     int    `yaml:"port"`
	UseTLS   bool   `yaml:"use_tls"`
	User     string `yaml:"user"`
	Password string `yaml:"password"`
	From     string `yaml:"from"`
	Contact  string `yaml:"contact"`
}

// SecurityConfig holds the TLS enforcement toggles. They only take effect
// when Debug is off.
type SecurityConfig struct {
	SSLRedirect           bool   `yaml:"ssl_redirect"`
	SessionCookieSecure   bool   `yaml:"session_cookie_secure"`
	HSTSSeconds           int64  `yaml:"hsts_seconds"`
	HSTSIncludeSubdomains bool   `yaml:"hsts_include_subdomains"`
	ContentTypeNosniff    bool   `yaml:"content_type_nosniff"`
	BrowserXSSFilter      bool   `yaml:"browser_xss_filter"`
	FrameOptions          string `yaml:"frame_options"`
}

const (
	EngineSQLite   = "sqlite"
	EnginePostgres = "postgres"
	EngineMySQL    = "mysql"

	EmailConsole = "console"
	EmailSMTP    = "smtp"
)

// Default returns the configuration used when nothing is set.
func Default() *Config {
	return &Config{
		Debug:        true,
		Port:         "8080",
		SecretKey:    InsecureSecretKey,
		AllowedHosts: []string{"localhost", "127.0.0.1"},
		LogLevel:     "info",
		Database: DatabaseConfig{
			Engine: EngineSQLite,
			Name:   "db.sqlite3",
		},
		Email: EmailConfig{
			Backend: EmailConsole,
			Port:    587,
			UseTLS:  true,
			From:    "Call Soso <noreply@callsoso.org>",
			Contact: "info@callsoso.org",
		},
		Security: SecurityConfig{
			SSLRedirect:           true,
			SessionCookieSecure:   true,
			HSTSSeconds:           3600,
			HSTSIncludeSubdomains: true,
			ContentTypeNosniff:    true,
			BrowserXSSFilter:      true,
			FrameOptions:          "DENY",
		},
	}
}

// LoadEnv loads environment variables from .env file
func LoadEnv() {
	err := godotenv.Load()
	if err != nil {
		log.Println("Warning: .env file not found, using system environment variables")
	}
}

// GetEnv gets an environment variable or returns a default value if not present
func GetEnv(key, fallback string) string {
	if value, exists := os.LookupEnv(key); exists {
		return value
	}
	return fallback
}

// Load builds the configuration: defaults, then the YAML file named by
// CALLSOSO_CONFIG (if any), then environment variables.
func Load() (*Config, error) {
	LoadEnv()

	cfg := Default()
	if path := os.Getenv("CALLSOSO_CONFIG"); path != "" {
		if err := cfg.LoadFile(path); err != nil {
			return nil, err
		}
	}
	if err := cfg.ApplyEnv(); err != nil {
		return nil, err
	}
	cfg.Finalize()

	if err := cfg.Validate(); err != nil {
		return nil, err
	}
	return cfg, nil
}

// LoadFile overlays the keys present in a YAML file onto c.
func (c *Config) LoadFile(path string) error {
	data, err := os.ReadFile(path)
	if err != nil {
		return fmt.Errorf("read config %s: %w", path, err)
	}
	if err := yaml.Unmarshal(data, c); err != nil {
		return fmt.Errorf("parse config %s: %w", path, err)
	}
	return nil
}

// ApplyEnv overrides c with the environment variables that are set.
func (c *Config) ApplyEnv() error {
	var errs []error

	envBool(&c.Debug, "DEBUG", &errs)
	envString(&c.Port, "PORT")
	envString(&c.SecretKey, "SECRET_KEY")
	envList(&c.AllowedHosts, "ALLOWED_HOSTS")
	envList(&c.CSRFTrustedOrigins, "CSRF_TRUSTED_ORIGINS")
	envString(&c.LogLevel, "LOG_LEVEL")
	envString(&c.NATSURL, "NATS_URL")

	envString(&c.Database.Engine, "DB_ENGINE")
	envString(&c.Database.URL, "DATABASE_URL")
	envString(&c.Database.Name, "DB_NAME")

	envString(&c.Email.Backend, "EMAIL_BACKEND")
	envString(&c.Email.Host, "EMAIL_HOST")
	envInt(&c.Email.Port, "EMAIL_PORT", &errs)
	envBool(&c.Email.UseTLS, "EMAIL_USE_TLS", &errs)
	envString(&c.Email.User, "EMAIL_USER")
	envString(&c.Email.Password, "EMAIL_PASSWORD")
	envString(&c.Email.From, "DEFAULT_FROM_EMAIL")
	envString(&c.Email.Contact, "CONTACT_EMAIL")

	envBool(&c.Security.SSLRedirect, "SECURE_SSL_REDIRECT", &errs)
	envBool(&c.Security.SessionCookieSecure, "SESSION_COOKIE_SECURE", &errs)
	if v, ok := os.LookupEnv("SECURE_HSTS_SECONDS"); ok {
		n, err := strconv.ParseInt(strings.TrimSpace(v), 10, 64)
		if err != nil {
			errs = append(errs, fmt.Errorf("SECURE_HSTS_SECONDS: %w", err))
		} else {
			c.Security.HSTSSeconds = n
		}
	}
	envBool(&c.Security.HSTSIncludeSubdomains, "SECURE_HSTS_INCLUDE_SUBDOMAINS", &errs)
	envBool(&c.Security.ContentTypeNosniff, "SECURE_CONTENT_TYPE_NOSNIFF", &errs)
	envBool(&c.Security.BrowserXSSFilter, "SECURE_BROWSER_XSS_FILTER", &errs)
	envString(&c.Security.FrameOptions, "X_FRAME_OPTIONS")

	return errors.Join(errs...)
}

// Finalize switches every TLS enforcement toggle off in debug mode.
func (c *Config) Finalize() {
	c.Database.Engine = strings.ToLower(c.Database.Engine)
	c.Email.Backend = strings.ToLower(c.Email.Backend)
	if c.Debug {
		c.Security = SecurityConfig{}
	}
}

// Validate checks that the configuration can be used.
func (c *Config) Validate() error {
	switch c.Database.Engine {
	case EngineSQLite:
		if c.Database.Name == "" {
			return errors.New("DB_NAME is required for the sqlite engine")
		}
	case EnginePostgres, EngineMySQL:
		if c.Database.URL == "" {
			return fmt.Errorf("DATABASE_URL is required for the %s engine", c.Database.Engine)
		}
	default:
		return fmt.Errorf("unsupported DB_ENGINE %q", c.Database.Engine)
	}

	switch c.Email.Backend {
	case EmailConsole:
	case EmailSMTP:
		if c.Email.Host == "" {
			return errors.New("EMAIL_HOST is required for the smtp email backend")
		}
	default:
		return fmt.Errorf("unsupported EMAIL_BACKEND %q", c.Email.Backend)
	}

	if !c.Debug && (c.SecretKey == "" || c.SecretKey == InsecureSecretKey) {
		return errors.New("SECRET_KEY must be set when DEBUG is off")
	}
	return nil
}

// IsDevelopment reports whether debug mode is on.
func (c *Config) IsDevelopment() bool {
	return c.Debug
}

func envString(dst *string, key string) {
	if v, ok := os.LookupEnv(key); ok {
		*dst = strings.TrimSpace(v)
	}
}

func envList(dst *[]string, key string) {
	v, ok := os.LookupEnv(key)
	if !ok {
		return
	}
	var out []string
	for _, part := range strings.Split(v, ",") {
		if part = strings.TrimSpace(part); part != "" {
			out = append(out, part)
		}
	}
	*dst = out
}

func envBool(dst *bool, key string, errs *[]error) {
	v, ok := os.LookupEnv(key)
	if !ok {
		return
	}
	b, err := strconv.ParseBool(strings.TrimSpace(v))
	if err != nil {
		*errs = append(*errs, fmt.Errorf("%s: %w", key, err))
		return
	}
	*dst = b
}

func envInt(dst *int, key string, errs *[]error) {
	v, ok := os.LookupEnv(key)
	if !ok {
		return
	}
	n, err := strconv.Atoi(strings.TrimSpace(v))
	if err != nil {
		*errs = append(*errs, fmt.Errorf("%s: %w", key, err))
		return
	}
	*dst = n
}
