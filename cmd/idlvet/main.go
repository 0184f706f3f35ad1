package main

import (
	"fmt"
	"os"

	"github.com/solweave/idlvet/internal/commands"
)

func main() {
	rootCmd := commands.RootCmd()

	rootCmd.AddCommand(commands.CheckCmd())
	rootCmd.AddCommand(commands.BatchCmd())

	if err := rootCmd.Execute(); err != nil {
		fmt.Fprintln(os.Stderr, "❌ "+err.Error())
		os.Exit(1)
	}
}
