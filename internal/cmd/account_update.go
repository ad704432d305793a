package cmd

import (
	"fmt"

	"github.com/spf13/cobra"

	"github.com/skulk-project/skulk/internal/account"
	"github.com/skulk-project/skulk/internal/profile"
	"github.com/skulk-project/skulk/internal/style"
)

var (
	updateName      string
	updateAutostart bool
	updateURL       string
	updateNotes     string
	updateProxies   []string
	updateNoProxy   bool
	updateVersion   int
)

var accountUpdateCmd = &cobra.Command{
	Use:   "update <account-id>",
	Short: "Update fields of an account",
	Long: `Update an account. Only the fields given as flags change.

Passing --proxy replaces the whole proxy map; --no-proxy clears it.
The profile's user.js is rewritten to match afterwards.

With --version, the update only applies if the stored version still
matches; a mismatch fails without writing, so concurrent editors
cannot silently overwrite each other.

Examples:
  skulk account update acc-17... --name personal
  skulk account update acc-17... --autostart=false
  skulk account update acc-17... --version 3 --url https://example.com`,
	Args: cobra.ExactArgs(1),
	RunE: runAccountUpdate,
}

func init() {
	accountUpdateCmd.Flags().StringVar(&updateName, "name", "", "Display name")
	accountUpdateCmd.Flags().BoolVar(&updateAutostart, "autostart", false, "Start this account's browser on session autostart")
	accountUpdateCmd.Flags().StringVar(&updateURL, "url", "", "URL to open when the browser starts (empty clears)")
	accountUpdateCmd.Flags().StringVar(&updateNotes, "notes", "", "Free-form notes (empty clears)")
	accountUpdateCmd.Flags().StringArrayVar(&updateProxies, "proxy", nil, "Proxy endpoint as scheme=host:port[:user:pass] (repeatable, replaces all)")
	accountUpdateCmd.Flags().BoolVar(&updateNoProxy, "no-proxy", false, "Remove all proxy endpoints")
	accountUpdateCmd.Flags().IntVar(&updateVersion, "version", 0, "Expected current version (update fails on mismatch)")
	accountUpdateCmd.MarkFlagsMutuallyExclusive("proxy", "no-proxy")
	accountCmd.AddCommand(accountUpdateCmd)
}

func runAccountUpdate(cmd *cobra.Command, args []string) error {
	env, err := loadEnv()
	if err != nil {
		return err
	}

	var p account.Payload
	if cmd.Flags().Changed("name") {
		p.Name = &updateName
	}
	if cmd.Flags().Changed("autostart") {
		p.Autostart = &updateAutostart
	}
	if cmd.Flags().Changed("url") {
		p.DefaultURL = &updateURL
	}
	if cmd.Flags().Changed("notes") {
		p.Notes = &updateNotes
	}
	if updateNoProxy {
		p.Proxy = map[string]account.Proxy{}
	} else if len(updateProxies) > 0 {
		proxy, err := buildProxyMap(updateProxies)
		if err != nil {
			return err
		}
		p.Proxy = proxy
	}
	if cmd.Flags().Changed("version") {
		p.Version = &updateVersion
	}

	acc, err := env.store.Update(args[0], p, p.Version != nil)
	if err != nil {
		return err
	}
	if err := profile.Ensure(*acc); err != nil {
		return fmt.Errorf("rewriting profile for %s: %w", acc.ID, err)
	}

	fmt.Printf("%s updated account %s (version %d)\n", style.SuccessPrefix, acc.ID, acc.Version)
	return nil
}
