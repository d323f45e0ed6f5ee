package main

import (
	"os"

	"github.com/aretw0/tracetm/internal/cli"
	"github.com/spf13/cobra"
)

// graphCmd represents the graph command
var graphCmd = &cobra.Command{
	Use:   "graph <machine>",
	Short: "Export the state graph visualization",
	Long: `Outputs a Mermaid flowchart (graph LR) of the machine's states and rules.
With --input, the accepting path of that string is highlighted.`,
	Args: cobra.ExactArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		cfg, err := loadConfig(cmd)
		if err != nil {
			return err
		}
		opts := cli.GraphOptions{
			MachineRef: args[0],
			Config:     cfg,
			Out:        os.Stdout,
		}
		if cmd.Flags().Changed("input") {
			input, _ := cmd.Flags().GetString("input")
			opts.Input = &input
		}
		opts.MaxDepth, _ = cmd.Flags().GetInt("depth")
		return cli.RunGraph(cmd.Context(), opts)
	},
}

func init() {
	rootCmd.AddCommand(graphCmd)
	graphCmd.Flags().StringP("input", "i", "", "Highlight the accepting path of this string")
	graphCmd.Flags().IntP("depth", "d", 100, "Maximum number of expansions for --input")
}
