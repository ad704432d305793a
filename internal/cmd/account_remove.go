package cmd

import (
	"fmt"

	"github.com/spf13/cobra"

	"github.com/skulk-project/skulk/internal/style"
)

var removeDeleteProfile bool

var accountRemoveCmd = &cobra.Command{
	Use:   "remove <account-id>",
	Short: "Remove an account from the registry",
	Long: `Remove an account. The profile directory is kept unless
--delete-profile is given.

Removing an id that is not in the registry is not an error; the
command reports it and exits 0, so retries are safe.`,
	Aliases: []string{"rm", "delete"},
	Args:    cobra.ExactArgs(1),
	RunE:    runAccountRemove,
}

func init() {
	accountRemoveCmd.Flags().BoolVar(&removeDeleteProfile, "delete-profile", false, "Also delete the profile directory")
	accountCmd.AddCommand(accountRemoveCmd)
}

func runAccountRemove(cmd *cobra.Command, args []string) error {
	id := args[0]
	env, err := loadEnv()
	if err != nil {
		return err
	}

	removed, err := env.store.Delete(id)
	if err != nil {
		return err
	}

	// The profile may exist even when the registry entry does not, so
	// honor --delete-profile either way.
	profileDir := env.ws.ProfileDir(id)
	if removed != nil && removed.ProfileDir != "" {
		profileDir = removed.ProfileDir
	}
	profileRemoved := false
	if removeDeleteProfile {
		profileRemoved = env.ws.RemoveProfile(profileDir)
	}

	switch {
	case removed == nil && profileRemoved:
		fmt.Printf("account %s was not in the registry (stray profile deleted)\n", id)
	case removed == nil:
		fmt.Printf("account %s was not in the registry\n", id)
	case removeDeleteProfile:
		fmt.Printf("%s removed account %s (profile deleted)\n", style.SuccessPrefix, id)
	default:
		fmt.Printf("%s removed account %s (profile kept at %s)\n", style.SuccessPrefix, id, profileDir)
	}
	return nil
}
