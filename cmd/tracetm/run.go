package main

import (
	"os"

	"github.com/aretw0/tracetm/internal/cli"
	"github.com/spf13/cobra"
)

// runCmd represents the run command
var runCmd = &cobra.Command{
	Use:   "run [machine]",
	Short: "Trace strings interactively",
	Long: `Loads a machine and asks for strings and depth limits until 'quit'.
Every report is printed and appended to output-<machine>.txt.
Without a machine argument the file name is asked for first.`,
	Args: cobra.MaximumNArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		cfg, err := loadConfig(cmd)
		if err != nil {
			return err
		}
		headless, _ := cmd.Flags().GetBool("headless")
		pretty, _ := cmd.Flags().GetBool("pretty")
		output, _ := cmd.Flags().GetString("output")

		opts := cli.RunOptions{
			Config:     cfg,
			Headless:   headless,
			Pretty:     pretty,
			Banner:     cli.IsTerminal(os.Stdin) && cli.IsTerminal(os.Stdout),
			OutputFile: output,
		}
		if len(args) > 0 {
			opts.MachineRef = args[0]
		}
		return cli.RunInteractive(opts)
	},
}

func init() {
	rootCmd.AddCommand(runCmd)

	runCmd.Flags().Bool("headless", false, "Run in headless mode (no prompts, scripted input)")
	runCmd.Flags().Bool("pretty", false, "Render reports as markdown in the terminal")
	runCmd.Flags().StringP("output", "o", "", "Report file (default output-<machine>.txt)")
	runCmd.Flags().String("format", "text", "Terminal report format: text, markdown or json")

	// 'run' is the default if no command is provided.
	rootCmd.RunE = runCmd.RunE
	rootCmd.Args = runCmd.Args
	rootCmd.Flags().AddFlagSet(runCmd.Flags())
}
