package cmd

import (
	"testing"

	"github.com/skulk-project/skulk/internal/account"
)

func TestParseProxyFlag(t *testing.T) {
	tests := []struct {
		name       string
		spec       string
		wantScheme string
		wantEntry  account.Proxy
		wantErr    bool
	}{
		{
			name:       "host and port",
			spec:       "http=10.0.0.2:3128",
			wantScheme: "http",
			wantEntry:  account.Proxy{Host: "10.0.0.2", Port: 3128},
		},
		{
			name:       "with credentials",
			spec:       "socks5=proxy.example.com:1080:alice:s3cret",
			wantScheme: "socks5",
			wantEntry:  account.Proxy{Host: "proxy.example.com", Port: 1080, Username: "alice", Password: "s3cret"},
		},
		{
			name:       "https scheme",
			spec:       "https=10.0.0.2:443",
			wantScheme: "https",
			wantEntry:  account.Proxy{Host: "10.0.0.2", Port: 443},
		},
		{"no equals", "http10.0.0.2:3128", "", account.Proxy{}, true},
		{"empty scheme", "=10.0.0.2:3128", "", account.Proxy{}, true},
		{"unknown scheme", "ftp=10.0.0.2:21", "", account.Proxy{}, true},
		{"missing port", "http=10.0.0.2", "", account.Proxy{}, true},
		{"port not a number", "http=10.0.0.2:abc", "", account.Proxy{}, true},
		{"three fields", "http=host:80:user", "", account.Proxy{}, true},
		{"empty", "", "", account.Proxy{}, true},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			scheme, entry, err := parseProxyFlag(tt.spec)
			if tt.wantErr {
				if err == nil {
					t.Fatalf("parseProxyFlag(%q) = (%q, %+v), want error", tt.spec, scheme, entry)
				}
				return
			}
			if err != nil {
				t.Fatalf("parseProxyFlag(%q): %v", tt.spec, err)
			}
			if scheme != tt.wantScheme || entry != tt.wantEntry {
				t.Errorf("parseProxyFlag(%q) = (%q, %+v), want (%q, %+v)",
					tt.spec, scheme, entry, tt.wantScheme, tt.wantEntry)
			}
		})
	}
}

func TestBuildProxyMap(t *testing.T) {
	proxy, err := buildProxyMap([]string{
		"http=10.0.0.2:3128",
		"socks5=10.0.0.2:1080",
		"http=10.0.0.3:3128",
	})
	if err != nil {
		t.Fatalf("buildProxyMap: %v", err)
	}
	if len(proxy) != 2 {
		t.Fatalf("expected 2 schemes, got %d", len(proxy))
	}
	// Later flags win when a scheme repeats
	if proxy["http"].Host != "10.0.0.3" {
		t.Errorf("http host = %q, want %q", proxy["http"].Host, "10.0.0.3")
	}
	if proxy["socks5"].Port != 1080 {
		t.Errorf("socks5 port = %d, want 1080", proxy["socks5"].Port)
	}
}

func TestBuildProxyMap_BadSpec(t *testing.T) {
	if _, err := buildProxyMap([]string{"http=10.0.0.2:3128", "bogus"}); err == nil {
		t.Fatal("expected error for malformed spec")
	}
}
