package main

import (
	"log"
	"os"

	"github.com/spf13/cobra"

	"github.com/rl1809/stockpile/cmd/stockpile/commands"
)

func main() {
	rootCmd := &cobra.Command{
		Use:   "stockpile",
		Short: "JSON-backed inventory tracker",
		Long:  `Stockpile tracks item quantities in a JSON file. Each command loads the inventory document, applies its operation, and writes the document back.`,
		// Failures are runtime conditions, not usage mistakes; main prints
		// the single diagnostic line.
		SilenceUsage:  true,
		SilenceErrors: true,
	}

	rootCmd.AddCommand(commands.NewAddCommand())
	rootCmd.AddCommand(commands.NewRemoveCommand())
	rootCmd.AddCommand(commands.NewGetCommand())
	rootCmd.AddCommand(commands.NewLowCommand())
	rootCmd.AddCommand(commands.NewReportCommand())
	rootCmd.AddCommand(commands.NewVersionCommand())

	if err := rootCmd.Execute(); err != nil {
		log.Printf("Command execution failed: %v", err)
		os.Exit(1)
	}
}
