package cmd

import (
	"fmt"
	"io"

	"github.com/spf13/cobra"

	"github.com/skulk-project/skulk/internal/clipboard"
	"github.com/skulk-project/skulk/internal/ui"
)

var clipboardCmd = &cobra.Command{
	Use:     "clipboard",
	GroupID: GroupSession,
	Short:   "Read or write the session clipboard",
	Long: `Read or write the X session clipboard via xclip.

The clipboard belongs to the session display, so every account's
browser sees the same content. Both directions time out after a few
seconds when the display is unreachable.`,
	Aliases: []string{"clip"},
	RunE:    requireSubcommand,
}

var clipboardGetCmd = &cobra.Command{
	Use:   "get",
	Short: "Print the clipboard content",
	Args:  cobra.NoArgs,
	RunE:  runClipboardGet,
}

var clipboardSetCmd = &cobra.Command{
	Use:   "set [text]",
	Short: "Replace the clipboard content",
	Long: `Replace the clipboard content with the given text, or with stdin
when no argument is given.

Examples:
  skulk clipboard set "one-time code 123456"
  secret-tool lookup site example | skulk clipboard set`,
	Args: cobra.MaximumNArgs(1),
	RunE: runClipboardSet,
}

func init() {
	clipboardCmd.AddCommand(clipboardGetCmd)
	clipboardCmd.AddCommand(clipboardSetCmd)
	rootCmd.AddCommand(clipboardCmd)
}

func runClipboardGet(cmd *cobra.Command, args []string) error {
	env, err := loadEnv()
	if err != nil {
		return err
	}
	content, err := clipboard.New(env.cfg.Display).Read()
	if err != nil {
		return err
	}
	// Raw content for pipes; a trailing newline only when a human is
	// looking at it.
	fmt.Print(content)
	if ui.IsTerminal() && content != "" {
		fmt.Println()
	}
	return nil
}

func runClipboardSet(cmd *cobra.Command, args []string) error {
	env, err := loadEnv()
	if err != nil {
		return err
	}
	var content string
	if len(args) == 1 {
		content = args[0]
	} else {
		data, err := io.ReadAll(cmd.InOrStdin())
		if err != nil {
			return fmt.Errorf("reading stdin: %w", err)
		}
		content = string(data)
	}
	return clipboard.New(env.cfg.Display).Write(content)
}
