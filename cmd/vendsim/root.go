package main

import (
	"fmt"
	"os"

	"github.com/spf13/cobra"
)

var rootCmd = &cobra.Command{
	Use:   "vendsim",
	Short: "Vendsim simulates a vending machine as three formal automata",
	Long: `Vendsim runs the same vending machine (Eye Drop RM35, Vitamin RM50)
as a single-path DFA, a dual-path DFA and an NFA with epsilon
transitions, interactively or behind an HTTP/MCP server.`,
}

// Execute adds all child commands to the root command and sets flags appropriately.
func Execute() {
	if err := rootCmd.Execute(); err != nil {
		fmt.Println(err)
		os.Exit(1)
	}
}

func init() {
	// Persistent flags (available to all commands)
	rootCmd.PersistentFlags().Bool("debug", false, "Enable debug logging")
}
