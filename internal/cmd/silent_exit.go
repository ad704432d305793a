package cmd

import (
	"errors"
	"fmt"

	"github.com/spf13/cobra"
)

// SilentExitError requests a specific process exit code without any
// additional output from Execute. Commands return it after they have
// already written whatever the user should see, so scripts can branch
// on the exit code alone.
type SilentExitError struct {
	Code int
}

func (e *SilentExitError) Error() string {
	return fmt.Sprintf("silent exit with code %d", e.Code)
}

// IsSilentExit reports whether err carries a SilentExitError anywhere
// in its chain, returning the requested exit code when it does.
func IsSilentExit(err error) (int, bool) {
	var silent *SilentExitError
	if errors.As(err, &silent) {
		return silent.Code, true
	}
	return 0, false
}

// silentExit suppresses cobra's error and usage output for the current
// invocation and returns a SilentExitError. Callers print their own
// diagnostics first.
func silentExit(cmd *cobra.Command, code int) error {
	cmd.SilenceUsage = true
	cmd.SilenceErrors = true
	return &SilentExitError{Code: code}
}
