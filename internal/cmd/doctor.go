package cmd

import (
	"fmt"
	"os"
	"os/exec"
	"path/filepath"

	"github.com/spf13/cobra"

	"github.com/skulk-project/skulk/internal/health"
	"github.com/skulk-project/skulk/internal/probe"
	"github.com/skulk-project/skulk/internal/style"
	"github.com/skulk-project/skulk/internal/ui"
)

var doctorCmd = &cobra.Command{
	Use:     "doctor",
	GroupID: GroupDiag,
	Short:   "Check the session host for problems",
	Long: `Check that this host has everything skulk needs: the browser
binary, process tools, a writable data dir, a readable registry, and
the session processes (Xvnc, websockify).

Missing session processes are warnings; accounts can still be
managed, they just cannot be seen. Anything else failing makes the
command exit 1.`,
	Args: cobra.NoArgs,
	RunE: runDoctor,
}

func init() {
	rootCmd.AddCommand(doctorCmd)
}

type doctorStatus int

const (
	doctorPass doctorStatus = iota
	doctorWarn
	doctorFail
)

type doctorCheck struct {
	name string
	run  func(env *cliEnv) (doctorStatus, string)
}

var doctorChecks = []doctorCheck{
	{"browser binary", checkBrowserBinary},
	{"process tools", checkProcessTools},
	{"xclip", checkXclip},
	{"data dir", checkDataDir},
	{"registry", checkRegistry},
	{"Xvnc", checkXvnc},
	{"websockify", checkWebsockify},
}

func runDoctor(cmd *cobra.Command, args []string) error {
	env, err := loadEnv()
	if err != nil {
		return err
	}

	fmt.Println("Checking session host...")
	fmt.Println()

	warns, fails := 0, 0
	for _, check := range doctorChecks {
		status, detail := check.run(env)
		icon := ui.RenderPassIcon()
		switch status {
		case doctorWarn:
			icon = ui.RenderWarnIcon()
			warns++
		case doctorFail:
			icon = ui.RenderFailIcon()
			fails++
		}
		fmt.Printf("  %s %-16s %s\n", icon, check.name, detail)
	}

	fmt.Println()
	switch {
	case fails > 0:
		style.PrintError("%d failed, %d warnings", fails, warns)
		return silentExit(cmd, 1)
	case warns > 0:
		style.PrintWarning("%d warnings", warns)
	default:
		fmt.Println("All checks passed.")
	}
	return nil
}

func checkBrowserBinary(env *cliEnv) (doctorStatus, string) {
	path, err := exec.LookPath(env.cfg.BrowserCmd)
	if err != nil {
		return doctorFail, fmt.Sprintf("%s not on PATH", env.cfg.BrowserCmd)
	}
	return doctorPass, path
}

func checkProcessTools(env *cliEnv) (doctorStatus, string) {
	for _, tool := range []string{"pgrep", "pkill"} {
		if _, err := exec.LookPath(tool); err != nil {
			return doctorFail, fmt.Sprintf("%s not on PATH", tool)
		}
	}
	return doctorPass, "pgrep and pkill found"
}

func checkXclip(env *cliEnv) (doctorStatus, string) {
	if _, err := exec.LookPath("xclip"); err != nil {
		return doctorWarn, "not on PATH; clipboard commands will fail"
	}
	return doctorPass, "found"
}

func checkDataDir(env *cliEnv) (doctorStatus, string) {
	if err := env.ws.EnsureDirs(); err != nil {
		return doctorFail, err.Error()
	}
	marker := filepath.Join(env.ws.Root(), ".doctor-write-check")
	if err := os.WriteFile(marker, []byte("ok"), 0o644); err != nil {
		return doctorFail, fmt.Sprintf("%s not writable", env.ws.Root())
	}
	_ = os.Remove(marker)
	return doctorPass, fmt.Sprintf("%s writable", env.ws.Root())
}

func checkRegistry(env *cliEnv) (doctorStatus, string) {
	accounts, err := env.store.Load()
	if err != nil {
		return doctorFail, err.Error()
	}
	return doctorPass, fmt.Sprintf("%d accounts", len(accounts))
}

func checkXvnc(env *cliEnv) (doctorStatus, string) {
	running, err := probe.New().IsRunning(health.XvncPattern(env.cfg.Display))
	if err != nil || !running {
		return doctorWarn, fmt.Sprintf("not running on %s", env.cfg.Display)
	}
	return doctorPass, fmt.Sprintf("running on %s", env.cfg.Display)
}

func checkWebsockify(env *cliEnv) (doctorStatus, string) {
	running, err := probe.New().IsRunning(health.WebsockifyPattern(env.cfg.WebsockifyPort))
	if err != nil || !running {
		return doctorWarn, fmt.Sprintf("not serving port %d", env.cfg.WebsockifyPort)
	}
	return doctorPass, fmt.Sprintf("serving port %d", env.cfg.WebsockifyPort)
}
