package cmd

import (
	"encoding/json"
	"fmt"
	"sort"
	"strings"

	"github.com/spf13/cobra"

	"github.com/skulk-project/skulk/internal/account"
	"github.com/skulk-project/skulk/internal/style"
)

var accountCmd = &cobra.Command{
	Use:     "account",
	GroupID: GroupAccounts,
	Short:   "Manage browser accounts",
	Long: `Manage the browser account registry.

Each account owns a persistent Firefox profile directory under the
data dir. Running state is never stored; it is derived from the
process table every time it is shown.

Use subcommands to list, show, add, update, or remove accounts.`,
	Aliases: []string{"accounts", "acc"},
	RunE:    requireSubcommand,
}

var accountListJSON bool

var accountListCmd = &cobra.Command{
	Use:   "list",
	Short: "List accounts with their running state",
	Args:  cobra.NoArgs,
	RunE:  runAccountList,
}

var accountShowJSON bool

var accountShowCmd = &cobra.Command{
	Use:   "show <account-id>",
	Short: "Show one account in detail",
	Args:  cobra.ExactArgs(1),
	RunE:  runAccountShow,
}

func init() {
	accountListCmd.Flags().BoolVar(&accountListJSON, "json", false, "Output as JSON")
	accountShowCmd.Flags().BoolVar(&accountShowJSON, "json", false, "Output as JSON")
	accountCmd.AddCommand(accountListCmd)
	accountCmd.AddCommand(accountShowCmd)
	rootCmd.AddCommand(accountCmd)
}

// listedAccount is an account with its derived running state, the
// same shape the admin API serves.
type listedAccount struct {
	account.Account
	Running bool `json:"running"`
}

func runAccountList(cmd *cobra.Command, args []string) error {
	env, err := loadEnv()
	if err != nil {
		return err
	}
	accounts, err := env.store.Load()
	if err != nil {
		return err
	}
	l := env.newLauncher()

	listed := make([]listedAccount, 0, len(accounts))
	for _, acc := range accounts {
		listed = append(listed, listedAccount{Account: acc, Running: l.Running(acc)})
	}

	if accountListJSON {
		data, err := json.MarshalIndent(listed, "", "  ")
		if err != nil {
			return err
		}
		fmt.Println(string(data))
		return nil
	}

	if len(listed) == 0 {
		fmt.Println("No accounts registered.")
		return nil
	}
	fmt.Print(renderAccountTable(listed))
	return nil
}

func renderAccountTable(listed []listedAccount) string {
	table := style.NewTable(
		style.Column{Name: "", Width: 1},
		style.Column{Name: "ID", Width: 24},
		style.Column{Name: "NAME", Width: 24},
		style.Column{Name: "AUTOSTART", Width: 9},
		style.Column{Name: "VERSION", Width: 7, Align: style.AlignRight},
	)
	for _, acc := range listed {
		table.AddRow(
			runningIcon(acc.Running),
			acc.ID,
			acc.Name,
			yesNo(acc.Autostart),
			fmt.Sprintf("%d", acc.Version),
		)
	}
	return table.Render()
}

func runAccountShow(cmd *cobra.Command, args []string) error {
	env, err := loadEnv()
	if err != nil {
		return err
	}
	accounts, err := env.store.Load()
	if err != nil {
		return err
	}
	acc := account.Find(accounts, args[0])
	if acc == nil {
		fmt.Fprintf(cmd.ErrOrStderr(), "account %s not found\n", args[0])
		return silentExit(cmd, 1)
	}
	running := env.newLauncher().Running(*acc)

	if accountShowJSON {
		data, err := json.MarshalIndent(listedAccount{Account: *acc, Running: running}, "", "  ")
		if err != nil {
			return err
		}
		fmt.Println(string(data))
		return nil
	}

	fmt.Printf("%s %s\n\n", runningIcon(running), style.Bold.Render(acc.Name))
	fmt.Printf("  %-12s %s\n", "ID", acc.ID)
	fmt.Printf("  %-12s %s\n", "Profile", acc.ProfileDir)
	fmt.Printf("  %-12s %s\n", "Running", yesNo(running))
	fmt.Printf("  %-12s %s\n", "Autostart", yesNo(acc.Autostart))
	if acc.DefaultURL != "" {
		fmt.Printf("  %-12s %s\n", "Default URL", acc.DefaultURL)
	}
	if acc.Notes != "" {
		fmt.Printf("  %-12s %s\n", "Notes", acc.Notes)
	}
	for _, scheme := range proxySchemesSorted(acc.Proxy) {
		entry := acc.Proxy[scheme]
		fmt.Printf("  %-12s %s\n", "Proxy "+scheme, formatProxy(entry))
	}
	fmt.Printf("  %-12s %d\n", "Version", acc.Version)
	return nil
}

func runningIcon(running bool) string {
	if running {
		return style.Success.Render("●")
	}
	return style.Dim.Render("○")
}

func yesNo(v bool) string {
	if v {
		return "yes"
	}
	return "no"
}

func proxySchemesSorted(proxy map[string]account.Proxy) []string {
	schemes := make([]string, 0, len(proxy))
	for scheme := range proxy {
		schemes = append(schemes, scheme)
	}
	sort.Strings(schemes)
	return schemes
}

func formatProxy(p account.Proxy) string {
	var b strings.Builder
	fmt.Fprintf(&b, "%s:%d", p.Host, p.Port)
	if p.Username != "" {
		fmt.Fprintf(&b, " (user %s)", p.Username)
	}
	return b.String()
}
