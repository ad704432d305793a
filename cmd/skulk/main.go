// skulk manages Firefox browser accounts on a session host.
package main

import (
	"os"

	"github.com/skulk-project/skulk/internal/cmd"
)

func main() {
	os.Exit(cmd.Execute())
}
