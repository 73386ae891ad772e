package main

import (
	"fmt"
	"os"

	"github.com/roach88/litebind/internal/cli"
)

func main() {
	cmd := cli.NewRootCommand()
	if err := cmd.Execute(); err != nil {
		fmt.Fprintf(os.Stderr, "litebind: %v\n", err)
		os.Exit(cli.GetExitCode(err))
	}
}
