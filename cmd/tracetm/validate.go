package main

import (
	"fmt"
	"os"

	"github.com/aretw0/tracetm/internal/cli"
	"github.com/spf13/cobra"
)

var validateCmd = &cobra.Command{
	Use:   "validate <machine>",
	Short: "Check the machine definition for consistency",
	Long:  `Checks state and alphabet membership of every rule and reports states the start state cannot reach.`,
	Args:  cobra.ExactArgs(1),
	Run: func(cmd *cobra.Command, args []string) {
		cfg, err := loadConfig(cmd)
		if err == nil {
			err = cli.RunValidate(cmd.Context(), args[0], cfg, os.Stdout)
		}
		if err != nil {
			fmt.Printf("Validation failed: %v\n", err)
			os.Exit(1)
		}
	},
}

func init() {
	rootCmd.AddCommand(validateCmd)
}
