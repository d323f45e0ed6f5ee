package main

import (
	"fmt"
	"os"

	"github.com/aretw0/tracetm/internal/config"
	"github.com/spf13/cobra"
)

var rootCmd = &cobra.Command{
	Use:   "tracetm",
	Short: "tracetm traces nondeterministic Turing machines",
	Long: `tracetm explores every computation of a nondeterministic Turing machine
breadth-first and reports whether an input is accepted, rejected, or runs
out of depth, together with the accepting path and the degree of
nondeterminism.`,
	SilenceUsage: true,
}

// Execute adds all child commands to the root command and sets flags appropriately.
func Execute() {
	if err := rootCmd.Execute(); err != nil {
		fmt.Fprintln(os.Stderr, err)
		os.Exit(1)
	}
}

func init() {
	// Persistent flags (available to all commands)
	rootCmd.PersistentFlags().String("config", "", "Config file (default ./"+config.DefaultFile+" when present)")
	rootCmd.PersistentFlags().Bool("debug", false, "Log debug output to stderr")
	rootCmd.PersistentFlags().String("log-file", "", "Append JSON logs to this file")
	rootCmd.PersistentFlags().String("library", "", "Directory of machine documents; machines are then addressed by id")
	rootCmd.PersistentFlags().String("store", "", "Keep trace records: memory, file or redis")
	rootCmd.PersistentFlags().String("redis-addr", "", "Redis address for --store redis")
}

// loadConfig resolves the config file and environment, then applies every
// flag the user set explicitly.
func loadConfig(cmd *cobra.Command) (config.Config, error) {
	path, _ := cmd.Flags().GetString("config")
	cfg, err := config.Load(path)
	if err != nil {
		return cfg, err
	}

	flags := cmd.Flags()
	if flags.Changed("debug") {
		cfg.Debug, _ = flags.GetBool("debug")
	}
	if flags.Changed("log-file") {
		cfg.LogFile, _ = flags.GetString("log-file")
	}
	if flags.Changed("library") {
		cfg.Library, _ = flags.GetString("library")
	}
	if flags.Changed("store") {
		cfg.Store.Kind, _ = flags.GetString("store")
	}
	if flags.Changed("redis-addr") {
		cfg.Store.RedisAddr, _ = flags.GetString("redis-addr")
	}
	if flags.Lookup("format") != nil && flags.Changed("format") {
		cfg.Format, _ = flags.GetString("format")
	}
	if flags.Lookup("port") != nil && flags.Changed("port") {
		cfg.Port, _ = flags.GetInt("port")
	}
	return cfg, nil
}
