package cmd

import (
	"fmt"

	"github.com/spf13/cobra"

	"github.com/skulk-project/skulk/internal/version"
)

var versionCmd = &cobra.Command{
	Use:     "version",
	GroupID: GroupDiag,
	Short:   "Print version information",
	Args:    cobra.NoArgs,
	Run:     runVersion,
}

func init() {
	rootCmd.AddCommand(versionCmd)
}

func runVersion(cmd *cobra.Command, args []string) {
	fmt.Printf("skulk %s\n", version.Version)
	fmt.Printf("  commit:  %s\n", version.ShortCommit(version.Commit))
	fmt.Printf("  built:   %s\n", version.BuildDate)
	fmt.Printf("  runtime: %s\n", version.GoVersion)
}
