package main

import (
	"fmt"
	"strings"

	"github.com/spf13/cobra"

	"github.com/aretw0/vendsim"
)

var versionCmd = &cobra.Command{
	Use:   "version",
	Short: "Print the version number of vendsim",
	Run: func(cmd *cobra.Command, args []string) {
		fmt.Printf("vendsim version %s\n", strings.TrimSpace(vendsim.Version))
	},
}

func init() {
	rootCmd.AddCommand(versionCmd)
}
