package config

import (
	"net/url"
	"path/filepath"
	"strings"
	"time"

	"github.com/adrg/xdg"
)

// Default configuration values.
const (
	// AppName is the application name used for XDG directory paths.
	AppName = "ycscrape"

	// DefaultBaseURL is the site origin prepended to the relative href of
	// every company anchor in the listing.
	DefaultBaseURL = "https://www.ycombinator.com"

	// DefaultTimeout bounds a single detail page request.
	DefaultTimeout = 30 * time.Second

	// DefaultUserAgent is sent with every detail page request.
	DefaultUserAgent = "Mozilla/5.0 (X11; Linux x86_64) AppleWebKit/537.36 (KHTML, like Gecko) Chrome/124.0 Safari/537.36"

	// DefaultMaxBodySize limits the response body read per detail page.
	DefaultMaxBodySize = 5 * 1024 * 1024 // 5MB

	// DefaultOutputDir is where the exported file is written.
	DefaultOutputDir = "."

	// DefaultFormat is the export format used when --format is not given.
	DefaultFormat = FormatCSV
)

// Supported export formats.
const (
	FormatCSV      = "csv"
	FormatJSON     = "json"
	FormatMarkdown = "markdown"
)

// Formats lists every supported export format in help-text order.
func Formats() []string {
	return []string{FormatCSV, FormatJSON, FormatMarkdown}
}

// Config holds all configuration options for one scrape run.
// It is populated from defaults, the config file, the environment and
// CLI flags, in that order, and passed down explicitly.
type Config struct {
	// SourceURL is the URL of the listing page the snapshot was saved from.
	// It only labels the run; it is never parsed or fetched.
	SourceURL string

	// Industry labels the run and names the output file.
	Industry string

	// SnapshotPath is the locally saved markup of the listing page.
	SnapshotPath string

	// OutputDir is the directory the export file is written to.
	OutputDir string

	// Format selects the export writer (csv, json or markdown).
	Format string

	// BaseURL is the origin concatenated with each anchor href.
	BaseURL string

	// Timeout is the per-request timeout for detail page fetches.
	Timeout time.Duration

	// ProxyURL routes detail fetches through a SOCKS5 proxy when set,
	// e.g. "socks5://127.0.0.1:1080".
	ProxyURL string

	// UserAgent is the User-Agent header sent with detail page requests.
	UserAgent string

	// MaxBodySize is the maximum response body size in bytes to read.
	// Set to 0 to use the default (5MB).
	MaxBodySize int64

	// Lenient writes a row with blank cells when a detail page carries
	// none of the founded, team size and location labels. When false
	// such a page fails the run.
	Lenient bool

	// Verbose enables debug logging.
	Verbose bool

	// ConfigFilePath is the path to the configuration file.
	// If empty, .ycscrape is searched in the current directory and then
	// in the user's home directory.
	ConfigFilePath string

	// Site holds the markup description loaded from the config file.
	// Nil means the built-in selectors are used.
	Site *File

	// DBDir is the directory holding the run archive database.
	// Defaults to the XDG data directory (~/.local/share/ycscrape on Linux).
	DBDir string

	// SaveToDB archives the run after a successful export.
	SaveToDB bool
}

// NewConfig creates a new Config with default values.
func NewConfig() *Config {
	return &Config{
		OutputDir:   DefaultOutputDir,
		Format:      DefaultFormat,
		BaseURL:     DefaultBaseURL,
		Timeout:     DefaultTimeout,
		UserAgent:   DefaultUserAgent,
		MaxBodySize: DefaultMaxBodySize,
		DBDir:       XDGDataDir(),
		SaveToDB:    true,
	}
}

// XDGDataDir returns the XDG data directory for ycscrape.
// On Linux: ~/.local/share/ycscrape
// On macOS: ~/Library/Application Support/ycscrape
// On Windows: %LOCALAPPDATA%\ycscrape
func XDGDataDir() string {
	return filepath.Join(xdg.DataHome, AppName)
}

// XDGConfigDir returns the XDG config directory for ycscrape.
func XDGConfigDir() string {
	return filepath.Join(xdg.ConfigHome, AppName)
}

// Selectors returns the markup description for this run.
// Fields left empty in the config file fall back to the built-in values.
func (c *Config) Selectors() Selectors {
	if c.Site == nil {
		return DefaultSelectors()
	}
	return c.Site.Selectors.WithDefaults()
}

// ApplyFile copies the non-empty settings of a config file into c.
// Cookie, headers and selectors stay on the File and are read through
// c.Site.
func (c *Config) ApplyFile(f *File) {
	if f == nil {
		return
	}
	c.Site = f
	if f.BaseURL != "" {
		c.BaseURL = f.BaseURL
	}
	if f.UserAgent != "" {
		c.UserAgent = f.UserAgent
	}
	if f.Proxy != "" {
		c.ProxyURL = f.Proxy
	}
	if f.Timeout > 0 {
		c.Timeout = f.Timeout
	}
}

// Validate checks if the configuration is valid.
// It returns the first problem found as one of the sentinel errors.
func (c *Config) Validate() error {
	// The listing URL is recorded with the run and never fetched, so any
	// non-blank value is accepted.
	if strings.TrimSpace(c.SourceURL) == "" {
		return ErrNoURL
	}

	if strings.TrimSpace(c.Industry) == "" {
		return ErrNoIndustry
	}

	if strings.TrimSpace(c.SnapshotPath) == "" {
		return ErrNoSnapshot
	}

	if !isValidFormat(c.Format) {
		return ErrInvalidFormat
	}

	if c.Timeout <= 0 {
		return ErrInvalidTimeout
	}

	if c.MaxBodySize < 0 {
		return ErrInvalidMaxBodySize
	}

	if !isHTTPURL(c.BaseURL) {
		return ErrInvalidBaseURL
	}

	return nil
}

func isValidFormat(format string) bool {
	for _, f := range Formats() {
		if f == format {
			return true
		}
	}
	return false
}

func isHTTPURL(raw string) bool {
	u, err := url.Parse(raw)
	if err != nil {
		return false
	}
	return (u.Scheme == "http" || u.Scheme == "https") && u.Host != ""
}
