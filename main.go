package main

import (
	"fmt"
	"os"

	"github.com/thenoetrevino/corkboard/cmd"
	"github.com/thenoetrevino/corkboard/internal/cli"
)

func main() {
	if err := cmd.Execute(); err != nil {
		if !cli.Reported(err) {
			fmt.Fprintf(os.Stderr, "Error: %v\n", err)
		}
		os.Exit(cli.ExitCode(err))
	}
}
