package cmd

import (
	"fmt"
	"strconv"
	"strings"

	"github.com/spf13/cobra"

	"github.com/skulk-project/skulk/internal/account"
	"github.com/skulk-project/skulk/internal/profile"
	"github.com/skulk-project/skulk/internal/style"
)

var (
	addName      string
	addAutostart bool
	addURL       string
	addNotes     string
	addProxies   []string
)

var accountAddCmd = &cobra.Command{
	Use:   "add --name <name>",
	Short: "Register a new account",
	Long: `Register a new account and provision its Firefox profile.

The account id and profile directory are generated; the profile is
created immediately with a user.js reflecting the proxy settings.

Proxy endpoints are given as scheme=host:port or
scheme=host:port:user:pass, where scheme is http, https, or socks5.
When only http is set, https falls back to it inside the profile.

Examples:
  skulk account add --name work
  skulk account add --name shop --autostart --url https://example.com
  skulk account add --name eu --proxy http=10.0.0.2:3128 --proxy socks5=10.0.0.2:1080`,
	Args: cobra.NoArgs,
	RunE: runAccountAdd,
}

func init() {
	accountAddCmd.Flags().StringVar(&addName, "name", "", "Display name (required)")
	accountAddCmd.Flags().BoolVar(&addAutostart, "autostart", false, "Start this account's browser on session autostart")
	accountAddCmd.Flags().StringVar(&addURL, "url", "", "URL to open when the browser starts")
	accountAddCmd.Flags().StringVar(&addNotes, "notes", "", "Free-form notes")
	accountAddCmd.Flags().StringArrayVar(&addProxies, "proxy", nil, "Proxy endpoint as scheme=host:port[:user:pass] (repeatable)")
	_ = accountAddCmd.MarkFlagRequired("name")
	accountCmd.AddCommand(accountAddCmd)
}

func runAccountAdd(cmd *cobra.Command, args []string) error {
	env, err := loadEnv()
	if err != nil {
		return err
	}

	p := account.Payload{Name: &addName}
	if cmd.Flags().Changed("autostart") {
		p.Autostart = &addAutostart
	}
	if cmd.Flags().Changed("url") {
		p.DefaultURL = &addURL
	}
	if cmd.Flags().Changed("notes") {
		p.Notes = &addNotes
	}
	if len(addProxies) > 0 {
		proxy, err := buildProxyMap(addProxies)
		if err != nil {
			return err
		}
		p.Proxy = proxy
	}

	acc, err := env.store.Create(p)
	if err != nil {
		return err
	}
	if err := profile.Ensure(*acc); err != nil {
		return fmt.Errorf("provisioning profile for %s: %w", acc.ID, err)
	}

	fmt.Printf("%s added account %s (%s)\n", style.SuccessPrefix, acc.ID, acc.Name)
	fmt.Printf("  profile: %s\n", acc.ProfileDir)
	return nil
}

// buildProxyMap parses repeated --proxy flags into a proxy map.
// Later flags win when a scheme repeats.
func buildProxyMap(specs []string) (map[string]account.Proxy, error) {
	proxy := make(map[string]account.Proxy, len(specs))
	for _, spec := range specs {
		scheme, entry, err := parseProxyFlag(spec)
		if err != nil {
			return nil, err
		}
		proxy[scheme] = entry
	}
	return proxy, nil
}

// parseProxyFlag parses one scheme=host:port[:user:pass] proxy spec.
func parseProxyFlag(spec string) (string, account.Proxy, error) {
	scheme, rest, ok := strings.Cut(spec, "=")
	if !ok || scheme == "" || rest == "" {
		return "", account.Proxy{}, fmt.Errorf("invalid --proxy %q: expected scheme=host:port[:user:pass]", spec)
	}
	switch scheme {
	case "http", "https", "socks5":
	default:
		return "", account.Proxy{}, fmt.Errorf("invalid --proxy scheme %q: expected http, https, or socks5", scheme)
	}
	parts := strings.Split(rest, ":")
	if len(parts) != 2 && len(parts) != 4 {
		return "", account.Proxy{}, fmt.Errorf("invalid --proxy %q: expected scheme=host:port[:user:pass]", spec)
	}
	port, err := strconv.Atoi(parts[1])
	if err != nil {
		return "", account.Proxy{}, fmt.Errorf("invalid --proxy port %q: %w", parts[1], err)
	}
	entry := account.Proxy{Host: parts[0], Port: port}
	if len(parts) == 4 {
		entry.Username = parts[2]
		entry.Password = parts[3]
	}
	return scheme, entry, nil
}
