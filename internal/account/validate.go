package account

import (
	"strings"
	"unicode/utf8"

	"github.com/skulk-project/skulk/internal/errcode"
)

// Payload carries the mutable account fields of a create or update
// request. Pointer fields distinguish "absent" (nil, leave
// unchanged) from an explicit value; clearing the proxy map is
// expressed as an empty map, not nil.
type Payload struct {
	Name       *string          `json:"name,omitempty"`
	Proxy      map[string]Proxy `json:"proxy,omitempty"`
	Autostart  *bool            `json:"autostart,omitempty"`
	DefaultURL *string          `json:"default_url,omitempty"`
	Notes      *string          `json:"notes,omitempty"`
	Version    *int             `json:"version,omitempty"`
}

// proxySchemes are the recognized proxy map keys, in the order the
// provisioner emits them. Unknown keys are dropped, not rejected.
var proxySchemes = []string{"http", "https", "socks5"}

// Validate checks a payload against the field rules and returns a
// cleaned copy: name and hosts trimmed, unknown proxy schemes
// dropped. With partial unset, name is required. All violations are
// code 1001 errors naming the offending field; nothing is partially
// cleaned.
func Validate(p Payload, partial bool) (Payload, error) {
	var cleaned Payload
	if p.Name != nil || !partial {
		if p.Name == nil || strings.TrimSpace(*p.Name) == "" {
			return Payload{}, errcode.New(errcode.Validation, "name is required")
		}
		if utf8.RuneCountInString(*p.Name) > 128 {
			return Payload{}, errcode.New(errcode.Validation, "name too long")
		}
		name := strings.TrimSpace(*p.Name)
		cleaned.Name = &name
	}
	if p.Proxy != nil {
		proxy, err := validateProxy(p.Proxy)
		if err != nil {
			return Payload{}, err
		}
		cleaned.Proxy = proxy
	}
	if p.Autostart != nil {
		v := *p.Autostart
		cleaned.Autostart = &v
	}
	if p.DefaultURL != nil {
		u := strings.TrimSpace(*p.DefaultURL)
		if u != "" && !hasHTTPScheme(u) {
			return Payload{}, errcode.New(errcode.Validation, "default_url must start with http or https")
		}
		cleaned.DefaultURL = &u
	}
	if p.Notes != nil {
		if utf8.RuneCountInString(*p.Notes) > 1024 {
			return Payload{}, errcode.New(errcode.Validation, "notes too long")
		}
		v := *p.Notes
		cleaned.Notes = &v
	}
	if p.Version != nil {
		v := *p.Version
		cleaned.Version = &v
	}
	return cleaned, nil
}

func validateProxy(proxy map[string]Proxy) (map[string]Proxy, error) {
	result := make(map[string]Proxy, len(proxy))
	for _, scheme := range proxySchemes {
		entry, ok := proxy[scheme]
		if !ok {
			continue
		}
		clean, err := validateProxyEntry(entry, "proxy."+scheme)
		if err != nil {
			return nil, err
		}
		result[scheme] = clean
	}
	return result, nil
}

func validateProxyEntry(e Proxy, prefix string) (Proxy, error) {
	host := strings.TrimSpace(e.Host)
	if host == "" {
		return Proxy{}, errcode.Newf(errcode.Validation, "%s.host is required", prefix)
	}
	if e.Port < 1 || e.Port > 65535 {
		return Proxy{}, errcode.Newf(errcode.Validation, "%s.port must be between 1 and 65535", prefix)
	}
	if utf8.RuneCountInString(e.Username) > 256 {
		return Proxy{}, errcode.Newf(errcode.Validation, "%s.username too long", prefix)
	}
	if utf8.RuneCountInString(e.Password) > 256 {
		return Proxy{}, errcode.Newf(errcode.Validation, "%s.password too long", prefix)
	}
	return Proxy{Host: host, Port: e.Port, Username: e.Username, Password: e.Password}, nil
}

func hasHTTPScheme(u string) bool {
	lower := strings.ToLower(u)
	return strings.HasPrefix(lower, "http://") || strings.HasPrefix(lower, "https://")
}
