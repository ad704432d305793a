package profile

import (
	"os"
	"path/filepath"
	"strings"
	"testing"

	"github.com/skulk-project/skulk/internal/account"
)

func TestRenderUserJS_EmptyProxy(t *testing.T) {
	got := RenderUserJS(nil)
	want := `// Generated by launcher, do not edit
user_pref("network.proxy.type", 0);
user_pref("network.proxy.no_proxies_on", "");
`
	if got != want {
		t.Errorf("RenderUserJS(nil) =\n%s\nwant:\n%s", got, want)
	}
}

func TestRenderUserJS_HTTPOnly(t *testing.T) {
	proxy := map[string]account.Proxy{
		"http": {Host: "10.0.0.1", Port: 8080},
	}
	got := RenderUserJS(proxy)
	want := `// Generated by launcher, do not edit
user_pref("network.proxy.type", 1);
user_pref("network.proxy.no_proxies_on", "");
user_pref("network.proxy.http", "10.0.0.1");
user_pref("network.proxy.http_port", 8080);
user_pref("network.proxy.ssl", "10.0.0.1");
user_pref("network.proxy.ssl_port", 8080);
`
	if got != want {
		t.Errorf("RenderUserJS(http) =\n%s\nwant:\n%s", got, want)
	}
}

func TestRenderUserJS_HTTPSFallbackEqualsExplicit(t *testing.T) {
	httpOnly := map[string]account.Proxy{
		"http": {Host: "10.0.0.1", Port: 8080},
	}
	explicit := map[string]account.Proxy{
		"http":  {Host: "10.0.0.1", Port: 8080},
		"https": {Host: "10.0.0.1", Port: 8080},
	}
	if RenderUserJS(httpOnly) != RenderUserJS(explicit) {
		t.Errorf("https fallback should render identically to an explicit matching https entry:\n%s\nvs:\n%s",
			RenderUserJS(httpOnly), RenderUserJS(explicit))
	}
}

func TestRenderUserJS_DistinctHTTPS(t *testing.T) {
	proxy := map[string]account.Proxy{
		"http":  {Host: "10.0.0.1", Port: 8080},
		"https": {Host: "10.0.0.2", Port: 8443},
	}
	got := RenderUserJS(proxy)
	if !strings.Contains(got, `user_pref("network.proxy.ssl", "10.0.0.2");`) {
		t.Errorf("explicit https host not used:\n%s", got)
	}
	if !strings.Contains(got, `user_pref("network.proxy.ssl_port", 8443);`) {
		t.Errorf("explicit https port not used:\n%s", got)
	}
}

func TestRenderUserJS_SOCKS5(t *testing.T) {
	proxy := map[string]account.Proxy{
		"socks5": {Host: "127.0.0.1", Port: 1080},
	}
	got := RenderUserJS(proxy)
	for _, want := range []string{
		`user_pref("network.proxy.type", 1);`,
		`user_pref("network.proxy.socks", "127.0.0.1");`,
		`user_pref("network.proxy.socks_port", 1080);`,
		`user_pref("network.proxy.socks_version", 5);`,
		`user_pref("network.proxy.socks_remote_dns", true);`,
	} {
		if !strings.Contains(got, want) {
			t.Errorf("missing %s in:\n%s", want, got)
		}
	}
	if strings.Contains(got, "network.proxy.http") {
		t.Errorf("socks5-only config should not emit http prefs:\n%s", got)
	}
}

func TestRenderUserJS_QuotesSpecialCharacters(t *testing.T) {
	proxy := map[string]account.Proxy{
		"http": {Host: `host"with\quotes`, Port: 80},
	}
	got := RenderUserJS(proxy)
	if !strings.Contains(got, `user_pref("network.proxy.http", "host\"with\\quotes");`) {
		t.Errorf("host not JSON-escaped:\n%s", got)
	}
}

func TestRenderUserJS_OmitsCredentials(t *testing.T) {
	proxy := map[string]account.Proxy{
		"http": {Host: "h", Port: 80, Username: "alice", Password: "hunter2"},
	}
	got := RenderUserJS(proxy)
	if strings.Contains(got, "alice") || strings.Contains(got, "hunter2") {
		t.Errorf("credentials leaked into user.js:\n%s", got)
	}
}

func TestEnsure(t *testing.T) {
	dir := filepath.Join(t.TempDir(), "profiles", "acc-1-abc")
	acc := account.Account{
		ID:         "acc-1-abc",
		ProfileDir: dir,
		Proxy:      map[string]account.Proxy{"http": {Host: "h", Port: 80}},
	}

	if err := Ensure(acc); err != nil {
		t.Fatalf("Ensure() error: %v", err)
	}

	data, err := os.ReadFile(UserJSPath(dir))
	if err != nil {
		t.Fatalf("user.js not written: %v", err)
	}
	if string(data) != RenderUserJS(acc.Proxy) {
		t.Errorf("user.js content mismatch:\n%s", data)
	}

	// A proxy change must overwrite the file on the next Ensure.
	acc.Proxy = map[string]account.Proxy{}
	if err := Ensure(acc); err != nil {
		t.Fatalf("second Ensure() error: %v", err)
	}
	data, _ = os.ReadFile(UserJSPath(dir))
	if !strings.Contains(string(data), `user_pref("network.proxy.type", 0);`) {
		t.Errorf("user.js not rewritten after proxy cleared:\n%s", data)
	}
}
