// Package cmd provides CLI commands for the skulk tool.
package cmd

import (
	"fmt"

	"github.com/spf13/cobra"

	"github.com/skulk-project/skulk/internal/ui"
	"github.com/skulk-project/skulk/internal/version"
)

var rootCmd = &cobra.Command{
	Use:     "skulk",
	Short:   "Skulk - Firefox account supervisor",
	Version: version.Version,
	Long: `Skulk manages named browser accounts on a single session host.

Each account owns a persistent Firefox profile directory. Skulk starts
and stops the browsers as detached processes, derives their running
state from the process table, and serves the same registry over an
admin HTTP API.`,
	PersistentPreRun: func(cmd *cobra.Command, args []string) {
		ui.ConfigureColor()
	},
}

// Execute runs the root command and reports the process exit code for
// main to pass to os.Exit.
func Execute() int {
	err := rootCmd.Execute()
	if err == nil {
		return 0
	}
	// Scripting commands signal status via exit code alone.
	if code, ok := IsSilentExit(err); ok {
		return code
	}
	// cobra already printed the error.
	return 1
}

// Help output groups subcommands under these IDs.
const (
	GroupAccounts = "accounts"
	GroupSession  = "session"
	GroupDiag     = "diag"
)

func init() {
	// Prefix matching lets abbreviated commands resolve,
	// e.g. "skulk acc li" -> "skulk account list".
	cobra.EnablePrefixMatching = true

	rootCmd.AddGroup(
		&cobra.Group{ID: GroupAccounts, Title: "Account Management:"},
		&cobra.Group{ID: GroupSession, Title: "Session:"},
		&cobra.Group{ID: GroupDiag, Title: "Diagnostics:"},
	)

	rootCmd.SetHelpCommandGroupID(GroupDiag)
	rootCmd.SetCompletionCommandGroupID(GroupDiag)
}

// requireSubcommand is the RunE for parent commands that do nothing on
// their own. Cobra would otherwise print help and exit 0, hiding typos
// like "skulk account foobar" from scripts.
func requireSubcommand(cmd *cobra.Command, args []string) error {
	path := cmd.CommandPath()
	if len(args) == 0 {
		return fmt.Errorf("%s needs a subcommand\n\nRun '%s --help' for usage", path, path)
	}
	return fmt.Errorf("unknown command %q for %q\n\nRun '%s --help' for available commands",
		args[0], path, path)
}
