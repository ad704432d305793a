package cmd

import (
	"fmt"
	"time"

	"github.com/spf13/cobra"

	"github.com/skulk-project/skulk/internal/account"
	"github.com/skulk-project/skulk/internal/launcher"
)

// autostartStagger spaces out browser launches during batch
// autostart so the X session is not hit with every startup at once.
const autostartStagger = 200 * time.Millisecond

var startCmd = &cobra.Command{
	Use:     "start <account-id>",
	GroupID: GroupSession,
	Short:   "Start an account's browser",
	Long: `Start the browser for one account.

Prints the outcome (started or already_running) on stdout. Exits 0
in both cases, so scripts can treat "make sure it runs" as one call.`,
	Args: cobra.ExactArgs(1),
	RunE: runStart,
}

var stopCmd = &cobra.Command{
	Use:     "stop <account-id>",
	GroupID: GroupSession,
	Short:   "Stop an account's browser",
	Long: `Stop the browser for one account.

Prints the outcome (stopped, already_stopped, or stop_failed) on
stdout. Exits 0 for stopped and already_stopped, 1 otherwise.`,
	Args: cobra.ExactArgs(1),
	RunE: runStop,
}

var autostartCmd = &cobra.Command{
	Use:     "autostart",
	GroupID: GroupSession,
	Short:   "Start every account marked autostart",
	Long: `Start the browser for every account whose autostart flag is set.

Launches are staggered 200ms apart. Accounts already running or
failing to start are skipped; a failure never aborts the batch.`,
	Args: cobra.NoArgs,
	RunE: runAutostart,
}

func init() {
	rootCmd.AddCommand(startCmd)
	rootCmd.AddCommand(stopCmd)
	rootCmd.AddCommand(autostartCmd)
}

func runStart(cmd *cobra.Command, args []string) error {
	acc, env, err := findAccount(cmd, args[0])
	if err != nil {
		return err
	}
	outcome, err := env.newLauncher().Start(*acc)
	if err != nil {
		return err
	}
	fmt.Println(outcome)
	return nil
}

func runStop(cmd *cobra.Command, args []string) error {
	acc, env, err := findAccount(cmd, args[0])
	if err != nil {
		return err
	}
	outcome, err := env.newLauncher().Stop(*acc)
	if err != nil {
		return err
	}
	fmt.Println(outcome)
	if outcome == launcher.StopFailed {
		return silentExit(cmd, 1)
	}
	return nil
}

func runAutostart(cmd *cobra.Command, args []string) error {
	env, err := loadEnv()
	if err != nil {
		return err
	}
	accounts, err := env.store.Load()
	if err != nil {
		return err
	}
	l := env.newLauncher()
	l.Stagger = autostartStagger
	started, skipped := l.StartAllAutostart(accounts)
	if len(started) == 0 && len(skipped) == 0 {
		return nil
	}
	fmt.Printf("autostart: started=%v skipped=%v\n", started, skipped)
	return nil
}

// findAccount loads the registry and resolves one id. An unknown id
// prints to stderr and exits 1 without further output, the contract
// session scripts rely on.
func findAccount(cmd *cobra.Command, id string) (*account.Account, *cliEnv, error) {
	env, err := loadEnv()
	if err != nil {
		return nil, nil, err
	}
	accounts, err := env.store.Load()
	if err != nil {
		return nil, nil, err
	}
	acc := account.Find(accounts, id)
	if acc == nil {
		fmt.Fprintf(cmd.ErrOrStderr(), "account %s not found\n", id)
		return nil, nil, silentExit(cmd, 1)
	}
	return acc, env, nil
}
