// Package config loads the server configuration: built-in defaults, then an
// optional YAML file named by CONFIG_PATH, then environment variables.
package config

import (
	"errors"
	"fmt"
	"log/slog"
	"os"
	"strings"
	"time"

	"gopkg.in/yaml.v3"

	"github.com/vs-portfolio/portfolio/internal/repository/mongo"
)

// Store drivers.
const (
	DriverMongo  = "mongo"
	DriverSQLite = "sqlite"
	DriverMemory = "memory"
)

// Résumé storage strategies.
const (
	ResumeInDatabase   = "database"
	ResumeOnFilesystem = "filesystem"
)

// Admin credential sources.
const (
	AuthFromDatabase = "database"
	AuthStatic       = "static"
)

type Config struct {
	Server ServerConfig `yaml:"server"`
	Store  StoreConfig  `yaml:"store"`
	Mongo  MongoConfig  `yaml:"mongo"`
	SQLite SQLiteConfig `yaml:"sqlite"`
	Resume ResumeConfig `yaml:"resume"`
	Auth   AuthConfig   `yaml:"auth"`
	SMTP   SMTPConfig   `yaml:"smtp"`
	GitHub GitHubConfig `yaml:"github"`
	CORS   CORSConfig   `yaml:"cors"`
	Site   SiteConfig   `yaml:"site"`
	Log    LogConfig    `yaml:"log"`
}

type ServerConfig struct {
	Port            int           `yaml:"port"`
	ReadTimeout     time.Duration `yaml:"read_timeout"`
	WriteTimeout    time.Duration `yaml:"write_timeout"`
	IdleTimeout     time.Duration `yaml:"idle_timeout"`
	ShutdownTimeout time.Duration `yaml:"shutdown_timeout"`
}

type StoreConfig struct {
	Driver string `yaml:"driver"`
}

type MongoConfig struct {
	URI            string            `yaml:"uri"`
	Database       string            `yaml:"database"`
	Collections    mongo.Collections `yaml:"collections"`
	ConnectTimeout time.Duration     `yaml:"connect_timeout"`
}

type SQLiteConfig struct {
	Path string `yaml:"path"`
}

type ResumeConfig struct {
	Storage        string `yaml:"storage"`
	Dir            string `yaml:"dir"`
	MaxUploadBytes int64  `yaml:"max_upload_bytes"`
}

type AuthConfig struct {
	Source        string        `yaml:"source"`
	AdminUsername string        `yaml:"admin_username"`
	AdminPassword string        `yaml:"admin_password"`
	SessionSecret string        `yaml:"session_secret"`
	SessionTTL    time.Duration `yaml:"session_ttl"`
	CookieName    string        `yaml:"cookie_name"`
	SecureCookies bool          `yaml:"secure_cookies"`
}

// SMTPConfig enables contact notifications when Host and To are set.
type SMTPConfig struct {
	Host     string `yaml:"host"`
	Port     int    `yaml:"port"`
	Username string `yaml:"username"`
	Password string `yaml:"password"`
	From     string `yaml:"from"`
	To       string `yaml:"to"`
}

func (c SMTPConfig) Enabled() bool { return c.Host != "" && c.To != "" }

// GitHubConfig enables the contribution calendar when Username and Token are set.
type GitHubConfig struct {
	Username string        `yaml:"username"`
	Token    string        `yaml:"token"`
	Endpoint string        `yaml:"endpoint"`
	Timeout  time.Duration `yaml:"timeout"`
}

func (c GitHubConfig) Enabled() bool { return c.Username != "" && c.Token != "" }

type CORSConfig struct {
	AllowedOrigins []string `yaml:"allowed_origins"`
}

type SiteConfig struct {
	BaseURL string `yaml:"base_url"`
	Name    string `yaml:"name"`
}

type LogConfig struct {
	Level string `yaml:"level"`
}

// SlogLevel maps Level to a slog level. Unknown values mean info.
func (c LogConfig) SlogLevel() slog.Level {
	switch strings.ToLower(c.Level) {
	case "debug":
		return slog.LevelDebug
	case "warn":
		return slog.LevelWarn
	case "error":
		return slog.LevelError
	default:
		return slog.LevelInfo
	}
}

// Default returns the built-in configuration.
func Default() *Config {
	return &Config{
		Server: ServerConfig{
			Port:            8080,
			ReadTimeout:     15 * time.Second,
			WriteTimeout:    30 * time.Second,
			IdleTimeout:     60 * time.Second,
			ShutdownTimeout: 30 * time.Second,
		},
		Store: StoreConfig{Driver: DriverMongo},
		Mongo: MongoConfig{
			URI:            "mongodb://localhost:27017",
			Database:       "portfolio",
			Collections:    mongo.DefaultCollections(),
			ConnectTimeout: 10 * time.Second,
		},
		SQLite: SQLiteConfig{Path: "data/portfolio.db"},
		Resume: ResumeConfig{
			Storage:        ResumeInDatabase,
			Dir:            "Resume",
			MaxUploadBytes: 10 << 20,
		},
		Auth: AuthConfig{
			Source:     AuthFromDatabase,
			SessionTTL: 30 * time.Minute,
			CookieName: "portfolio_session",
		},
		SMTP: SMTPConfig{Port: 587},
		GitHub: GitHubConfig{
			Endpoint: "https://api.github.com/graphql",
			Timeout:  10 * time.Second,
		},
		Site: SiteConfig{
			BaseURL: "http://localhost:8080",
			Name:    "Portfolio",
		},
		Log: LogConfig{Level: "info"},
	}
}

// Load builds and validates the configuration. A missing CONFIG_PATH is
// fine; a CONFIG_PATH that cannot be read or parsed is an error.
func Load() (*Config, error) {
	cfg, err := Read()
	if err != nil {
		return nil, err
	}
	if err := cfg.Validate(); err != nil {
		return nil, err
	}
	return cfg, nil
}

// Read layers the file and environment over the defaults without
// validating. Tools that only touch the store use it so they do not need
// server-only settings such as the session secret.
func Read() (*Config, error) {
	cfg := Default()

	if path := os.Getenv("CONFIG_PATH"); path != "" {
		if err := cfg.loadFile(path); err != nil {
			return nil, err
		}
	}

	if err := cfg.loadEnv(); err != nil {
		return nil, fmt.Errorf("config: %w", err)
	}
	return cfg, nil
}

func (c *Config) loadFile(path string) error {
	data, err := os.ReadFile(path)
	if err != nil {
		return fmt.Errorf("config: reading %s: %w", path, err)
	}
	if err := yaml.Unmarshal(data, c); err != nil {
		return fmt.Errorf("config: parsing %s: %w", path, err)
	}
	return nil
}

// Validate reports settings the server cannot start with.
func (c *Config) Validate() error {
	var errs []error

	if c.Server.Port <= 0 || c.Server.Port > 65535 {
		errs = append(errs, fmt.Errorf("server.port %d out of range", c.Server.Port))
	}

	switch c.Store.Driver {
	case DriverMongo:
		if c.Mongo.URI == "" || c.Mongo.Database == "" {
			errs = append(errs, errors.New("mongo.uri and mongo.database are required for the mongo driver"))
		}
	case DriverSQLite:
		if c.SQLite.Path == "" {
			errs = append(errs, errors.New("sqlite.path is required for the sqlite driver"))
		}
	case DriverMemory:
	default:
		errs = append(errs, fmt.Errorf("unknown store.driver %q", c.Store.Driver))
	}

	switch c.Resume.Storage {
	case ResumeInDatabase:
	case ResumeOnFilesystem:
		if c.Resume.Dir == "" {
			errs = append(errs, errors.New("resume.dir is required for filesystem storage"))
		}
	default:
		errs = append(errs, fmt.Errorf("unknown resume.storage %q", c.Resume.Storage))
	}
	if c.Resume.MaxUploadBytes <= 0 {
		errs = append(errs, errors.New("resume.max_upload_bytes must be positive"))
	}

	switch c.Auth.Source {
	case AuthFromDatabase:
	case AuthStatic:
		if c.Auth.AdminUsername == "" || c.Auth.AdminPassword == "" {
			errs = append(errs, errors.New("auth.admin_username and auth.admin_password are required for static auth"))
		}
	default:
		errs = append(errs, fmt.Errorf("unknown auth.source %q", c.Auth.Source))
	}
	if len(c.Auth.SessionSecret) < 32 {
		errs = append(errs, errors.New("auth.session_secret must be at least 32 bytes"))
	}
	if c.Auth.SessionTTL <= 0 {
		errs = append(errs, errors.New("auth.session_ttl must be positive"))
	}
	if c.Auth.CookieName == "" {
		errs = append(errs, errors.New("auth.cookie_name is required"))
	}

	switch strings.ToLower(c.Log.Level) {
	case "debug", "info", "warn", "error":
	default:
		errs = append(errs, fmt.Errorf("unknown log.level %q", c.Log.Level))
	}

	if len(errs) > 0 {
		return fmt.Errorf("config: %w", errors.Join(errs...))
	}
	return nil
}

// Addr is the listen address for the HTTP server.
func (c *Config) Addr() string {
	return fmt.Sprintf(":%d", c.Server.Port)
}
