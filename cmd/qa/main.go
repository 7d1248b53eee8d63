package main

import (
	"fmt"
	"os"

	"github.com/questionboard/core/cmd/qa/commands"
)

func main() {
	rootCmd := commands.NewRootCommand()

	if err := rootCmd.Execute(); err != nil {
		fmt.Fprintf(os.Stderr, "Error: %v\n", err)
		os.Exit(commands.GetExitCode(err))
	}
}
