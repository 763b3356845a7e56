package config

import (
	"fmt"
	"os"
	"path/filepath"
	"sort"
	"strconv"
	"time"

	"gopkg.in/yaml.v3"
)

// DefaultBaseURL is the mock backend the collections are served from.
const DefaultBaseURL = "https://www.mockachino.com/314662d5-06d7-4b"

// Config holds all mockachino configuration.
type Config struct {
	// API backend
	API APIConfig `yaml:"api"`

	// Terminal UI
	UI UIConfig `yaml:"ui"`

	// Logging
	Logging LoggingConfig `yaml:"logging"`
}

// APIConfig configures the REST backend.
type APIConfig struct {
	BaseURL string `yaml:"base_url"`
	// Timeout is a Go duration string. "0" or empty means no client timeout.
	Timeout string `yaml:"timeout"`
}

// UIConfig configures the interactive pages.
type UIConfig struct {
	PageSize        int   `yaml:"page_size"`
	PageSizeOptions []int `yaml:"page_size_options"`

	// DiscardStaleLoads drops load completions that were overtaken by a newer
	// load on the same page. Off by default: completions apply in arrival order.
	DiscardStaleLoads bool `yaml:"discard_stale_loads"`

	Theme        string `yaml:"theme"`         // light, dark, auto
	InitialRoute string `yaml:"initial_route"` // users, users-table, persons, contacts
}

// LoggingConfig configures the file logger.
type LoggingConfig struct {
	DebugMode  bool            `yaml:"debug_mode"`
	Level      string          `yaml:"level"` // debug, info, warn, error
	JSONFormat bool            `yaml:"json_format"`
	File       string          `yaml:"file"`
	Categories map[string]bool `yaml:"categories,omitempty"`
}

// ValidThemes lists the supported UI themes.
var ValidThemes = []string{"light", "dark", "auto"}

// ValidRoutes lists the routes the UI can start on.
var ValidRoutes = []string{"users", "users-table", "persons", "contacts"}

// DefaultConfig returns the default configuration.
func DefaultConfig() *Config {
	return &Config{
		API: APIConfig{
			BaseURL: DefaultBaseURL,
			Timeout: "0s",
		},
		UI: UIConfig{
			PageSize:        10,
			PageSizeOptions: []int{5, 10, 20, 50},
			Theme:           "light",
			InitialRoute:    "users",
		},
		Logging: LoggingConfig{
			DebugMode: false,
			Level:     "info",
			File:      filepath.Join(DefaultDir(), "logs", "mockachino.log"),
		},
	}
}

// DefaultDir returns the per-user mockachino directory.
func DefaultDir() string {
	home, err := os.UserHomeDir()
	if err != nil {
		return ".mockachino"
	}
	return filepath.Join(home, ".mockachino")
}

// DefaultPath returns the default config file location.
func DefaultPath() string {
	return filepath.Join(DefaultDir(), "config.yaml")
}

// Load loads configuration from a YAML file.
// A missing file yields the defaults; environment overrides apply either way.
func Load(path string) (*Config, error) {
	cfg := DefaultConfig()

	data, err := os.ReadFile(path)
	if err != nil {
		if !os.IsNotExist(err) {
			return nil, fmt.Errorf("failed to read config: %w", err)
		}
	} else if err := yaml.Unmarshal(data, cfg); err != nil {
		return nil, fmt.Errorf("failed to parse config: %w", err)
	}

	cfg.applyEnvOverrides()

	return cfg, nil
}

// Save saves configuration to a YAML file.
func (c *Config) Save(path string) error {
	dir := filepath.Dir(path)
	if err := os.MkdirAll(dir, 0755); err != nil {
		return fmt.Errorf("failed to create config directory: %w", err)
	}

	data, err := yaml.Marshal(c)
	if err != nil {
		return fmt.Errorf("failed to marshal config: %w", err)
	}

	if err := os.WriteFile(path, data, 0644); err != nil {
		return fmt.Errorf("failed to write config: %w", err)
	}

	return nil
}

// applyEnvOverrides applies environment variable overrides.
func (c *Config) applyEnvOverrides() {
	if url := os.Getenv("MOCKACHINO_BASE_URL"); url != "" {
		c.API.BaseURL = url
	}
	if timeout := os.Getenv("MOCKACHINO_TIMEOUT"); timeout != "" {
		c.API.Timeout = timeout
	}
	if size := os.Getenv("MOCKACHINO_PAGE_SIZE"); size != "" {
		if n, err := strconv.Atoi(size); err == nil && n > 0 {
			c.UI.PageSize = n
		}
	}
	if os.Getenv("MOCKACHINO_DARK_MODE") == "1" {
		c.UI.Theme = "dark"
	}
	if os.Getenv("MOCKACHINO_DEBUG") == "1" {
		c.Logging.DebugMode = true
		c.Logging.Level = "debug"
	}
}

// GetTimeout returns the API client timeout. Zero means no timeout.
func (c *Config) GetTimeout() time.Duration {
	if c.API.Timeout == "" || c.API.Timeout == "0" {
		return 0
	}
	d, err := time.ParseDuration(c.API.Timeout)
	if err != nil || d < 0 {
		return 0
	}
	return d
}

// Validate validates the configuration.
func (c *Config) Validate() error {
	if c.API.BaseURL == "" {
		return fmt.Errorf("api base_url not configured (set MOCKACHINO_BASE_URL or api.base_url)")
	}
	if c.API.Timeout != "" && c.API.Timeout != "0" {
		if _, err := time.ParseDuration(c.API.Timeout); err != nil {
			return fmt.Errorf("invalid api timeout %q: %w", c.API.Timeout, err)
		}
	}
	if c.UI.PageSize < 1 {
		return fmt.Errorf("invalid page_size: %d (must be positive)", c.UI.PageSize)
	}
	for _, n := range c.UI.PageSizeOptions {
		if n < 1 {
			return fmt.Errorf("invalid page_size_options entry: %d (must be positive)", n)
		}
	}
	if !contains(ValidThemes, c.UI.Theme) {
		return fmt.Errorf("invalid theme: %s (valid: %v)", c.UI.Theme, ValidThemes)
	}
	if !contains(ValidRoutes, c.UI.InitialRoute) {
		return fmt.Errorf("invalid initial_route: %s (valid: %v)", c.UI.InitialRoute, ValidRoutes)
	}
	return nil
}

// PageSizes returns the configured page sizes in ascending order, always
// including PageSize.
func (c *Config) PageSizes() []int {
	opts := make([]int, 0, len(c.UI.PageSizeOptions)+1)
	seen := false
	for _, n := range c.UI.PageSizeOptions {
		if n < 1 {
			continue
		}
		if n == c.UI.PageSize {
			seen = true
		}
		opts = append(opts, n)
	}
	if !seen && c.UI.PageSize > 0 {
		opts = append(opts, c.UI.PageSize)
	}
	sort.Ints(opts)
	return opts
}

func contains(list []string, s string) bool {
	for _, v := range list {
		if v == s {
			return true
		}
	}
	return false
}
