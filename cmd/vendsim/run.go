package main

import (
	"fmt"
	"os"

	"github.com/spf13/cobra"

	"github.com/aretw0/vendsim/internal/cli"
)

// runCmd represents the run command
var runCmd = &cobra.Command{
	Use:   "run",
	Short: "Run an interactive vending machine session",
	Long: `Starts one machine on the terminal. Type input symbols (RM5, RM10,
RM20, e, v, ...) to feed the machine; 'help' lists the meta commands.`,
	Run: func(cmd *cobra.Command, args []string) {
		kind, _ := cmd.Flags().GetString("kind")
		if !cmd.Flags().Changed("kind") && len(args) > 0 {
			kind = args[0]
		}
		headless, _ := cmd.Flags().GetBool("headless")
		debug, _ := cmd.Flags().GetBool("debug")

		err := cli.RunSession(cli.RunOptions{
			Kind:     kind,
			Headless: headless,
			Debug:    debug,
		})
		if err != nil {
			fmt.Printf("Error: %v\n", err)
			os.Exit(1)
		}
	},
}

func init() {
	rootCmd.AddCommand(runCmd)

	runCmd.Flags().StringP("kind", "k", "single", "Machine kind: single, dual or nfa")
	runCmd.Flags().Bool("headless", false, "Run in headless mode (no prompts, strict IO)")

	// Make 'run' the default if no command is provided.
	rootCmd.Run = runCmd.Run
}
