// Package config resolves skulk's runtime settings by layering
// built-in defaults, an optional skulk.toml in the data dir, and
// SKULK_* environment variables, strongest last.
package config

import (
	"fmt"
	"os"
	"path/filepath"
	"strconv"

	"github.com/BurntSushi/toml"
)

// Defaults for a single-host deployment. The data dir holds the account
// registry, per-account profiles, and logs.
const (
	DefaultDataDir        = "/data"
	DefaultDisplay        = ":1"
	DefaultBrowserCmd     = "firefox-esr"
	DefaultHTTPAddr       = ":8089"
	DefaultWebsockifyPort = 5901

	// FileName is the optional TOML config file, looked up inside the
	// data dir. Env vars override anything it sets.
	FileName = "skulk.toml"
)

// Config holds the resolved runtime configuration. Values are layered:
// built-in defaults, then skulk.toml from the data dir, then SKULK_*
// environment variables.
type Config struct {
	DataDir        string
	Display        string
	BrowserCmd     string
	HTTPAddr       string
	LogLevel       string
	LogPretty      bool
	WebsockifyPort int
}

// fileConfig mirrors skulk.toml. Pointer fields distinguish keys the
// file actually sets from keys it omits.
type fileConfig struct {
	Display        *string `toml:"display"`
	BrowserCmd     *string `toml:"browser_cmd"`
	HTTPAddr       *string `toml:"http_addr"`
	LogLevel       *string `toml:"log_level"`
	LogPretty      *bool   `toml:"log_pretty"`
	WebsockifyPort *int    `toml:"websockify_port"`
}

// Load resolves the configuration. The data dir itself comes only from
// SKULK_DATA_DIR since the config file lives beneath it.
func Load() (*Config, error) {
	cfg := &Config{
		DataDir:        getenv("SKULK_DATA_DIR", DefaultDataDir),
		Display:        DefaultDisplay,
		BrowserCmd:     DefaultBrowserCmd,
		HTTPAddr:       DefaultHTTPAddr,
		LogLevel:       "info",
		LogPretty:      true,
		WebsockifyPort: DefaultWebsockifyPort,
	}

	if err := cfg.applyFile(filepath.Join(cfg.DataDir, FileName)); err != nil {
		return nil, err
	}
	cfg.applyEnv()
	return cfg, nil
}

// applyFile overlays values from the TOML file at path. A missing file
// is not an error.
func (c *Config) applyFile(path string) error {
	data, err := os.ReadFile(path)
	if err != nil {
		if os.IsNotExist(err) {
			return nil
		}
		return fmt.Errorf("reading %s: %w", FileName, err)
	}

	var fc fileConfig
	if _, err := toml.Decode(string(data), &fc); err != nil {
		return fmt.Errorf("parsing %s: %w", FileName, err)
	}

	if fc.Display != nil {
		c.Display = *fc.Display
	}
	if fc.BrowserCmd != nil {
		c.BrowserCmd = *fc.BrowserCmd
	}
	if fc.HTTPAddr != nil {
		c.HTTPAddr = *fc.HTTPAddr
	}
	if fc.LogLevel != nil {
		c.LogLevel = *fc.LogLevel
	}
	if fc.LogPretty != nil {
		c.LogPretty = *fc.LogPretty
	}
	if fc.WebsockifyPort != nil {
		c.WebsockifyPort = *fc.WebsockifyPort
	}
	return nil
}

func (c *Config) applyEnv() {
	c.Display = getenv("SKULK_DISPLAY", c.Display)
	c.BrowserCmd = getenv("SKULK_BROWSER_CMD", c.BrowserCmd)
	c.HTTPAddr = getenv("SKULK_HTTP_ADDR", c.HTTPAddr)
	c.LogLevel = getenv("SKULK_LOG_LEVEL", c.LogLevel)
	c.LogPretty = getenvBool("SKULK_LOG_PRETTY", c.LogPretty)
	c.WebsockifyPort = getenvInt("SKULK_WEBSOCKIFY_PORT", c.WebsockifyPort)
}

func getenv(key, def string) string {
	if v := os.Getenv(key); v != "" {
		return v
	}
	return def
}

func getenvInt(key string, def int) int {
	if v := os.Getenv(key); v != "" {
		if i, err := strconv.Atoi(v); err == nil {
			return i
		}
	}
	return def
}

func getenvBool(key string, def bool) bool {
	if v := os.Getenv(key); v != "" {
		if b, err := strconv.ParseBool(v); err == nil {
			return b
		}
	}
	return def
}
