package main

import (
	"os"

	"github.com/aretw0/tracetm/internal/cli"
	"github.com/spf13/cobra"
)

var listCmd = &cobra.Command{
	Use:   "list",
	Short: "List the machines of the --library directory",
	Args:  cobra.NoArgs,
	RunE: func(cmd *cobra.Command, args []string) error {
		cfg, err := loadConfig(cmd)
		if err != nil {
			return err
		}
		return cli.ListMachines(cmd.Context(), cfg, os.Stdout)
	},
}

func init() {
	rootCmd.AddCommand(listCmd)
}
