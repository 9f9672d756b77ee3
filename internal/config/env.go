package config

import (
	"fmt"
	"os"
	"strconv"
	"strings"
	"time"
)

// loadEnv overrides file and default values with any environment variable
// that is set to a non-empty value.
func (c *Config) loadEnv() error {
	var err error

	if c.Server.Port, err = parseIntEnv("PORT", c.Server.Port); err != nil {
		return err
	}
	if c.Server.ShutdownTimeout, err = parseDurationEnv("SHUTDOWN_TIMEOUT", c.Server.ShutdownTimeout); err != nil {
		return err
	}

	c.Store.Driver = stringEnv("STORE_DRIVER", c.Store.Driver)

	c.Mongo.URI = stringEnv("MONGODB_URI", c.Mongo.URI)
	c.Mongo.Database = stringEnv("MONGODB_DATABASE", c.Mongo.Database)
	if c.Mongo.ConnectTimeout, err = parseDurationEnv("MONGODB_CONNECT_TIMEOUT", c.Mongo.ConnectTimeout); err != nil {
		return err
	}

	c.SQLite.Path = stringEnv("SQLITE_PATH", c.SQLite.Path)

	c.Resume.Storage = stringEnv("RESUME_STORAGE", c.Resume.Storage)
	c.Resume.Dir = stringEnv("RESUME_DIR", c.Resume.Dir)
	if c.Resume.MaxUploadBytes, err = parseInt64Env("RESUME_MAX_UPLOAD_BYTES", c.Resume.MaxUploadBytes); err != nil {
		return err
	}

	c.Auth.Source = stringEnv("AUTH_SOURCE", c.Auth.Source)
	c.Auth.AdminUsername = stringEnv("ADMIN_USERNAME", c.Auth.AdminUsername)
	c.Auth.AdminPassword = stringEnv("ADMIN_PASSWORD", c.Auth.AdminPassword)
	c.Auth.SessionSecret = stringEnv("SESSION_SECRET", c.Auth.SessionSecret)
	c.Auth.CookieName = stringEnv("SESSION_COOKIE_NAME", c.Auth.CookieName)
	if c.Auth.SessionTTL, err = parseDurationEnv("SESSION_TTL", c.Auth.SessionTTL); err != nil {
		return err
	}
	if c.Auth.SecureCookies, err = parseBoolEnv("SECURE_COOKIES", c.Auth.SecureCookies); err != nil {
		return err
	}

	c.SMTP.Host = stringEnv("SMTP_HOST", c.SMTP.Host)
	if c.SMTP.Port, err = parseIntEnv("SMTP_PORT", c.SMTP.Port); err != nil {
		return err
	}
	c.SMTP.Username = stringEnv("SMTP_USERNAME", c.SMTP.Username)
	c.SMTP.Password = stringEnv("SMTP_PASSWORD", c.SMTP.Password)
	c.SMTP.From = stringEnv("SMTP_FROM", c.SMTP.From)
	c.SMTP.To = stringEnv("SMTP_TO", c.SMTP.To)

	c.GitHub.Username = stringEnv("GITHUB_USERNAME", c.GitHub.Username)
	c.GitHub.Token = stringEnv("GITHUB_TOKEN", c.GitHub.Token)
	c.GitHub.Endpoint = stringEnv("GITHUB_GRAPHQL_ENDPOINT", c.GitHub.Endpoint)

	if v := os.Getenv("CORS_ALLOWED_ORIGINS"); v != "" {
		c.CORS.AllowedOrigins = splitList(v)
	}

	c.Site.BaseURL = strings.TrimRight(stringEnv("SITE_BASE_URL", c.Site.BaseURL), "/")
	c.Site.Name = stringEnv("SITE_NAME", c.Site.Name)

	c.Log.Level = stringEnv("LOG_LEVEL", c.Log.Level)

	return nil
}

func stringEnv(key, fallback string) string {
	if v := os.Getenv(key); v != "" {
		return v
	}
	return fallback
}

func parseIntEnv(key string, fallback int) (int, error) {
	v := os.Getenv(key)
	if v == "" {
		return fallback, nil
	}
	n, err := strconv.Atoi(v)
	if err != nil {
		return 0, fmt.Errorf("invalid %s %q: %w", key, v, err)
	}
	return n, nil
}

func parseInt64Env(key string, fallback int64) (int64, error) {
	v := os.Getenv(key)
	if v == "" {
		return fallback, nil
	}
	n, err := strconv.ParseInt(v, 10, 64)
	if err != nil {
		return 0, fmt.Errorf("invalid %s %q: %w", key, v, err)
	}
	return n, nil
}

func parseDurationEnv(key string, fallback time.Duration) (time.Duration, error) {
	v := os.Getenv(key)
	if v == "" {
		return fallback, nil
	}
	d, err := time.ParseDuration(v)
	if err != nil {
		return 0, fmt.Errorf("invalid %s %q: %w", key, v, err)
	}
	return d, nil
}

func parseBoolEnv(key string, fallback bool) (bool, error) {
	v := os.Getenv(key)
	if v == "" {
		return fallback, nil
	}
	b, err := strconv.ParseBool(v)
	if err != nil {
		return false, fmt.Errorf("invalid %s %q: %w", key, v, err)
	}
	return b, nil
}

// splitList parses a comma-separated list, dropping blanks.
func splitList(v string) []string {
	var out []string
	for _, part := range strings.Split(v, ",") {
		if part = strings.TrimSpace(part); part != "" {
			out = append(out, part)
		}
	}
	return out
}
