package main

import (
	"fmt"
	"os"

	"github.com/spf13/cobra"

	"github.com/aretw0/vendsim/internal/machine"
	"github.com/aretw0/vendsim/internal/presentation/graph"
	"github.com/aretw0/vendsim/pkg/domain"
)

// graphCmd represents the graph command
var graphCmd = &cobra.Command{
	Use:   "graph",
	Short: "Export a machine's transition diagram",
	Long:  `Outputs a Mermaid stateDiagram-v2 for the chosen machine kind.`,
	Run: func(cmd *cobra.Command, args []string) {
		kindStr, _ := cmd.Flags().GetString("kind")
		if !cmd.Flags().Changed("kind") && len(args) > 0 {
			kindStr = args[0]
		}

		kind, err := domain.ParseKind(kindStr)
		if err != nil {
			fmt.Printf("Error: %v\n", err)
			os.Exit(1)
		}
		def, err := machine.DefinitionFor(kind)
		if err != nil {
			fmt.Printf("Error: %v\n", err)
			os.Exit(1)
		}

		fmt.Print(graph.GenerateMermaid(def, nil))
	},
}

func init() {
	rootCmd.AddCommand(graphCmd)

	graphCmd.Flags().StringP("kind", "k", "single", "Machine kind: single, dual or nfa")
}
