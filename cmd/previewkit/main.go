package main

import (
	"fmt"
	"os"

	"github.com/roach88/previewkit/internal/cli"
)

func main() {
	cmd := cli.NewRootCommand()
	cmd.SilenceUsage = true
	cmd.SilenceErrors = true

	if err := cmd.Execute(); err != nil {
		fmt.Fprintf(os.Stderr, "previewkit: %v\n", err)
		os.Exit(cli.GetExitCode(err))
	}
}
