package main

import (
	"fmt"
	"log/slog"
	"os"

	"github.com/spf13/cobra"

	"github.com/debeat/essentia/internal/logging"
)

var rootCmd = &cobra.Command{
	Use:   "essentia",
	Short: "Essentia runs audio-analysis pipelines",
	Long:  `Essentia assembles networks of analysis algorithms from YAML pipeline definitions, runs them and collects the results in descriptor pools.`,
}

// Execute adds all child commands to the root command and sets flags appropriately.
func Execute() {
	if err := rootCmd.Execute(); err != nil {
		fmt.Println(err)
		os.Exit(1)
	}
}

func init() {
	// Persistent flags (available to all commands)
	rootCmd.PersistentFlags().String("log-level", "info", "Log level (debug, info, warn, error)")
}

// newLogger builds the logger for a command from the persistent flag.
func newLogger(cmd *cobra.Command) (*slog.Logger, error) {
	raw, _ := cmd.Flags().GetString("log-level")
	level, err := logging.ParseLevel(raw)
	if err != nil {
		return nil, err
	}
	return logging.New(level), nil
}
