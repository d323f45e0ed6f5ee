package main

import (
	"fmt"

	"github.com/aretw0/tracetm"
	"github.com/spf13/cobra"
)

var versionCmd = &cobra.Command{
	Use:   "version",
	Short: "Print the version number of tracetm",
	Run: func(cmd *cobra.Command, args []string) {
		fmt.Printf("tracetm version %s\n", tracetm.Version)
	},
}

func init() {
	rootCmd.AddCommand(versionCmd)
}
