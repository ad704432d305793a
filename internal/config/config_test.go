package config

import (
	"os"
	"path/filepath"
	"strings"
	"testing"
)

// clearEnv blanks every SKULK_* variable so the host environment cannot
// leak into assertions. Empty values fall through to defaults.
func clearEnv(t *testing.T) {
	t.Helper()
	for _, key := range []string{
		"SKULK_DATA_DIR",
		"SKULK_DISPLAY",
		"SKULK_BROWSER_CMD",
		"SKULK_HTTP_ADDR",
		"SKULK_LOG_LEVEL",
		"SKULK_LOG_PRETTY",
		"SKULK_WEBSOCKIFY_PORT",
	} {
		t.Setenv(key, "")
	}
}

func TestLoad_Defaults(t *testing.T) {
	clearEnv(t)
	t.Setenv("SKULK_DATA_DIR", t.TempDir())

	cfg, err := Load()
	if err != nil {
		t.Fatalf("Load: %v", err)
	}
	if cfg.Display != ":1" {
		t.Errorf("Display = %q, want %q", cfg.Display, ":1")
	}
	if cfg.BrowserCmd != "firefox-esr" {
		t.Errorf("BrowserCmd = %q, want %q", cfg.BrowserCmd, "firefox-esr")
	}
	if cfg.HTTPAddr != ":8089" {
		t.Errorf("HTTPAddr = %q, want %q", cfg.HTTPAddr, ":8089")
	}
	if cfg.LogLevel != "info" {
		t.Errorf("LogLevel = %q, want %q", cfg.LogLevel, "info")
	}
	if !cfg.LogPretty {
		t.Error("LogPretty = false, want true")
	}
	if cfg.WebsockifyPort != 5901 {
		t.Errorf("WebsockifyPort = %d, want 5901", cfg.WebsockifyPort)
	}
}

func TestLoad_FileOverrides(t *testing.T) {
	clearEnv(t)
	dir := t.TempDir()
	t.Setenv("SKULK_DATA_DIR", dir)

	file := `
display = ":7"
browser_cmd = "firefox"
http_addr = ":9000"
log_level = "debug"
log_pretty = false
websockify_port = 6080
`
	if err := os.WriteFile(filepath.Join(dir, FileName), []byte(file), 0o644); err != nil {
		t.Fatal(err)
	}

	cfg, err := Load()
	if err != nil {
		t.Fatalf("Load: %v", err)
	}
	if cfg.Display != ":7" {
		t.Errorf("Display = %q, want %q", cfg.Display, ":7")
	}
	if cfg.BrowserCmd != "firefox" {
		t.Errorf("BrowserCmd = %q, want %q", cfg.BrowserCmd, "firefox")
	}
	if cfg.HTTPAddr != ":9000" {
		t.Errorf("HTTPAddr = %q, want %q", cfg.HTTPAddr, ":9000")
	}
	if cfg.LogLevel != "debug" {
		t.Errorf("LogLevel = %q, want %q", cfg.LogLevel, "debug")
	}
	if cfg.LogPretty {
		t.Error("LogPretty = true, want false")
	}
	if cfg.WebsockifyPort != 6080 {
		t.Errorf("WebsockifyPort = %d, want 6080", cfg.WebsockifyPort)
	}
}

func TestLoad_PartialFileKeepsDefaults(t *testing.T) {
	clearEnv(t)
	dir := t.TempDir()
	t.Setenv("SKULK_DATA_DIR", dir)

	if err := os.WriteFile(filepath.Join(dir, FileName), []byte(`display = ":9"`), 0o644); err != nil {
		t.Fatal(err)
	}

	cfg, err := Load()
	if err != nil {
		t.Fatalf("Load: %v", err)
	}
	if cfg.Display != ":9" {
		t.Errorf("Display = %q, want %q", cfg.Display, ":9")
	}
	if cfg.BrowserCmd != "firefox-esr" {
		t.Errorf("BrowserCmd = %q, want default %q", cfg.BrowserCmd, "firefox-esr")
	}
	if cfg.WebsockifyPort != 5901 {
		t.Errorf("WebsockifyPort = %d, want default 5901", cfg.WebsockifyPort)
	}
}

func TestLoad_EnvBeatsFile(t *testing.T) {
	clearEnv(t)
	dir := t.TempDir()
	t.Setenv("SKULK_DATA_DIR", dir)
	t.Setenv("SKULK_DISPLAY", ":42")
	t.Setenv("SKULK_LOG_PRETTY", "false")
	t.Setenv("SKULK_WEBSOCKIFY_PORT", "7000")

	file := `
display = ":7"
log_pretty = true
websockify_port = 6080
`
	if err := os.WriteFile(filepath.Join(dir, FileName), []byte(file), 0o644); err != nil {
		t.Fatal(err)
	}

	cfg, err := Load()
	if err != nil {
		t.Fatalf("Load: %v", err)
	}
	if cfg.Display != ":42" {
		t.Errorf("Display = %q, want env value %q", cfg.Display, ":42")
	}
	if cfg.LogPretty {
		t.Error("LogPretty = true, want env value false")
	}
	if cfg.WebsockifyPort != 7000 {
		t.Errorf("WebsockifyPort = %d, want env value 7000", cfg.WebsockifyPort)
	}
}

func TestLoad_MalformedFile(t *testing.T) {
	clearEnv(t)
	dir := t.TempDir()
	t.Setenv("SKULK_DATA_DIR", dir)

	if err := os.WriteFile(filepath.Join(dir, FileName), []byte("display = [broken"), 0o644); err != nil {
		t.Fatal(err)
	}

	if _, err := Load(); err == nil {
		t.Fatal("Load succeeded on malformed TOML")
	} else if !strings.Contains(err.Error(), FileName) {
		t.Errorf("error %q does not name %s", err, FileName)
	}
}

func TestLoad_IgnoresUnparsableEnv(t *testing.T) {
	clearEnv(t)
	t.Setenv("SKULK_DATA_DIR", t.TempDir())
	t.Setenv("SKULK_WEBSOCKIFY_PORT", "not-a-number")
	t.Setenv("SKULK_LOG_PRETTY", "not-a-bool")

	cfg, err := Load()
	if err != nil {
		t.Fatalf("Load: %v", err)
	}
	if cfg.WebsockifyPort != 5901 {
		t.Errorf("WebsockifyPort = %d, want default 5901", cfg.WebsockifyPort)
	}
	if !cfg.LogPretty {
		t.Error("LogPretty = false, want default true")
	}
}
