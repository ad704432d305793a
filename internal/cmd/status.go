package cmd

import (
	"fmt"
	"net"
	"sort"
	"strings"
	"time"

	"github.com/spf13/cobra"
	"golang.org/x/text/cases"
	"golang.org/x/text/language"

	"github.com/skulk-project/skulk/internal/health"
	"github.com/skulk-project/skulk/internal/probe"
	"github.com/skulk-project/skulk/internal/style"
)

var statusCmd = &cobra.Command{
	Use:     "status",
	GroupID: GroupDiag,
	Short:   "Show session and registry overview",
	Long: `Show the session processes, the admin API, and every account
with its running state in one view.`,
	Args: cobra.NoArgs,
	RunE: runStatus,
}

func init() {
	rootCmd.AddCommand(statusCmd)
}

func runStatus(cmd *cobra.Command, args []string) error {
	env, err := loadEnv()
	if err != nil {
		return err
	}
	accounts, err := env.store.Load()
	if err != nil {
		return err
	}

	report := health.NewChecker(probe.New(), env.cfg.Display, env.cfg.WebsockifyPort).Check()
	titler := cases.Title(language.English)

	fmt.Printf("%s\n\n", style.Bold.Render("Session"))
	fmt.Printf("  %-12s %s\n", "Data dir", env.ws.Root())
	fmt.Printf("  %-12s %s\n", "Display", env.cfg.Display)
	names := make([]string, 0, len(report.Processes))
	for name := range report.Processes {
		// The CLI process is not the admin API; it gets its own check.
		if name != "server" {
			names = append(names, name)
		}
	}
	sort.Strings(names)
	for _, name := range names {
		fmt.Printf("  %-12s %s\n", titler.String(name), upDown(report.Processes[name]))
	}
	fmt.Printf("  %-12s %s\n", "Admin API", apiStatus(env.cfg.HTTPAddr))

	fmt.Printf("\n%s\n\n", style.Bold.Render("Registry"))
	if len(accounts) == 0 {
		fmt.Println("  No accounts registered.")
		return nil
	}
	l := env.newLauncher()
	listed := make([]listedAccount, 0, len(accounts))
	running := 0
	for _, acc := range accounts {
		isRunning := l.Running(acc)
		if isRunning {
			running++
		}
		listed = append(listed, listedAccount{Account: acc, Running: isRunning})
	}
	fmt.Printf("  %d accounts, %d running\n\n", len(listed), running)
	fmt.Print(renderAccountTable(listed))
	return nil
}

func upDown(alive bool) string {
	if alive {
		return style.Success.Render("up")
	}
	return style.Error.Render("down")
}

// apiStatus reports whether anything is listening on the admin API
// address. A bare port like ":8089" is checked on localhost.
func apiStatus(addr string) string {
	if strings.HasPrefix(addr, ":") {
		addr = "127.0.0.1" + addr
	}
	conn, err := net.DialTimeout("tcp", addr, time.Second)
	if err != nil {
		return style.Dim.Render("not listening on " + addr)
	}
	conn.Close()
	return style.Success.Render("listening on " + addr)
}
