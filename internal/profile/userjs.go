// Package profile materializes browser profile directories and their
// generated preference files.
//
// The only file skulk manages inside a profile is user.js, rendered
// as a pure function of the account's proxy map. Everything else in
// the directory belongs to the browser.
package profile

import (
	"encoding/json"
	"fmt"
	"os"
	"path/filepath"
	"strconv"
	"strings"

	"github.com/skulk-project/skulk/internal/account"
)

// header is the first line of every generated user.js.
const header = "// Generated by launcher, do not edit"

// UserJSPath returns the preference file path inside a profile.
func UserJSPath(profileDir string) string {
	return filepath.Join(profileDir, "user.js")
}

// Ensure creates the account's profile directory and rewrites its
// user.js from the current proxy map. Idempotent; called on create,
// update, and start so the file always reflects the registry.
func Ensure(acc account.Account) error {
	if err := os.MkdirAll(acc.ProfileDir, 0o755); err != nil {
		return fmt.Errorf("creating profile dir %s: %w", acc.ProfileDir, err)
	}
	path := UserJSPath(acc.ProfileDir)
	if err := os.WriteFile(path, []byte(RenderUserJS(acc.Proxy)), 0o644); err != nil {
		return fmt.Errorf("writing %s: %w", path, err)
	}
	return nil
}

// RenderUserJS translates a proxy map into the full user.js text.
//
// An empty map disables proxying (type 0). A non-empty map selects
// manual proxying (type 1) and emits host/port pairs per scheme in
// fixed order: http, https, socks5. When https is absent but http is
// present, the secure proxy falls back to http's endpoint. socks5
// additionally pins protocol version 5 and remote DNS.
func RenderUserJS(proxy map[string]account.Proxy) string {
	var b strings.Builder
	b.WriteString(header)
	b.WriteByte('\n')
	for _, line := range prefLines(proxy) {
		b.WriteString(line)
		b.WriteByte('\n')
	}
	return b.String()
}

func prefLines(proxy map[string]account.Proxy) []string {
	if len(proxy) == 0 {
		return []string{
			userPref("network.proxy.type", 0),
			userPref("network.proxy.no_proxies_on", ""),
		}
	}
	lines := []string{
		userPref("network.proxy.type", 1),
		userPref("network.proxy.no_proxies_on", ""),
	}
	if http, ok := proxy["http"]; ok {
		lines = append(lines,
			userPref("network.proxy.http", http.Host),
			userPref("network.proxy.http_port", http.Port),
		)
	}
	if https, ok := proxy["https"]; ok {
		lines = append(lines,
			userPref("network.proxy.ssl", https.Host),
			userPref("network.proxy.ssl_port", https.Port),
		)
	} else if http, ok := proxy["http"]; ok {
		lines = append(lines,
			userPref("network.proxy.ssl", http.Host),
			userPref("network.proxy.ssl_port", http.Port),
		)
	}
	if socks, ok := proxy["socks5"]; ok {
		lines = append(lines,
			userPref("network.proxy.socks", socks.Host),
			userPref("network.proxy.socks_port", socks.Port),
			userPref("network.proxy.socks_version", 5),
			userPref("network.proxy.socks_remote_dns", true),
		)
	}
	return lines
}

// userPref renders one preference statement. String values are
// JSON-quoted; ints and bools are written bare.
func userPref(key string, value any) string {
	var val string
	switch v := value.(type) {
	case bool:
		val = strconv.FormatBool(v)
	case int:
		val = strconv.Itoa(v)
	default:
		data, _ := json.Marshal(v)
		val = string(data)
	}
	return fmt.Sprintf("user_pref(%q, %s);", key, val)
}
