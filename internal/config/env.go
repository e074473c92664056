package config

import (
	"errors"
	"fmt"
	"io/fs"
	"os"

	"github.com/joho/godotenv"
)

// Environment variables that override config file values.
const (
	EnvUserAgent = "YCSCRAPE_USER_AGENT"
	EnvProxy     = "YCSCRAPE_PROXY"
	EnvBaseURL   = "YCSCRAPE_BASE_URL"
	EnvDBDir     = "YCSCRAPE_DB_DIR"
	EnvCookie    = "YCSCRAPE_COOKIE"
)

// DefaultEnvFile is the dotenv file read from the working directory.
const DefaultEnvFile = ".env"

// LoadDotEnv loads variables from a dotenv file into the process
// environment. Variables already set are left untouched. A missing file is
// not an error.
func LoadDotEnv(path string) error {
	if path == "" {
		path = DefaultEnvFile
	}
	if _, err := os.Stat(path); errors.Is(err, fs.ErrNotExist) {
		return nil
	}
	if err := godotenv.Load(path); err != nil {
		return fmt.Errorf("failed to load %s: %w", path, err)
	}
	return nil
}

// ApplyEnv overrides c with the YCSCRAPE_* variables found by lookup.
// Pass os.LookupEnv in production.
func (c *Config) ApplyEnv(lookup func(string) (string, bool)) {
	if v, ok := lookup(EnvUserAgent); ok && v != "" {
		c.UserAgent = v
	}
	if v, ok := lookup(EnvProxy); ok && v != "" {
		c.ProxyURL = v
	}
	if v, ok := lookup(EnvBaseURL); ok && v != "" {
		c.BaseURL = v
	}
	if v, ok := lookup(EnvDBDir); ok && v != "" {
		c.DBDir = v
	}
	if v, ok := lookup(EnvCookie); ok && v != "" {
		if c.Site == nil {
			c.Site = &File{Selectors: DefaultSelectors(), Headers: map[string]string{}}
		}
		c.Site.Cookie = v
	}
}
