package main

import (
	"os"

	"github.com/aretw0/tracetm/internal/cli"
	"github.com/spf13/cobra"
)

var traceCmd = &cobra.Command{
	Use:   "trace <machine>",
	Short: "Trace one string and print its report",
	Args:  cobra.ExactArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		cfg, err := loadConfig(cmd)
		if err != nil {
			return err
		}
		input, _ := cmd.Flags().GetString("input")
		depth, _ := cmd.Flags().GetInt("depth")
		pretty, _ := cmd.Flags().GetBool("pretty")

		sigCtx := cli.NewSignalContext(cmd.Context())
		defer sigCtx.Cancel()

		_, err = cli.RunTrace(sigCtx, cli.TraceOptions{
			MachineRef: args[0],
			Input:      input,
			MaxDepth:   depth,
			Config:     cfg,
			Pretty:     pretty && cli.IsTerminal(os.Stdout),
			Out:        os.Stdout,
		})
		return err
	},
}

func init() {
	rootCmd.AddCommand(traceCmd)

	traceCmd.Flags().StringP("input", "i", "", "Input string (empty traces a single blank)")
	traceCmd.Flags().IntP("depth", "d", 100, "Maximum number of expansions")
	traceCmd.Flags().StringP("format", "f", "text", "Report format: text, markdown or json")
	traceCmd.Flags().Bool("pretty", false, "Render the report as markdown in the terminal")
}
