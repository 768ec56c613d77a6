package main

import (
	"fmt"
	"os"
	"path/filepath"

	"github.com/spf13/cobra"

	"github.com/debeat/essentia/pkg/adapters/poolio"
	"github.com/debeat/essentia/pkg/pool"
)

// exportCmd represents the export command
var exportCmd = &cobra.Command{
	Use:   "export <snapshot>",
	Short: "Re-encode a pool snapshot",
	Long:  `Reads a pool snapshot (YAML or JSON, detected by extension) and writes it in the requested format, validating every descriptor on the way.`,
	Args:  cobra.ExactArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		inputPath := args[0]
		outputPath, _ := cmd.Flags().GetString("output")
		format, _ := cmd.Flags().GetString("format")
		if format != "yaml" && format != "json" {
			return fmt.Errorf("unknown format %q (want yaml or json)", format)
		}

		p, err := loadSnapshot(inputPath)
		if err != nil {
			return err
		}
		if err := p.CheckIntegrity(); err != nil {
			return fmt.Errorf("snapshot integrity: %w", err)
		}
		return writeResults(p, outputPath, format)
	},
}

func loadSnapshot(path string) (*pool.Pool, error) {
	f, err := os.Open(path)
	if err != nil {
		return nil, fmt.Errorf("open snapshot: %w", err)
	}
	defer f.Close()

	if filepath.Ext(path) == ".json" {
		return poolio.LoadJSON(f)
	}
	return poolio.LoadYAML(f)
}

func init() {
	rootCmd.AddCommand(exportCmd)

	exportCmd.Flags().StringP("output", "o", "", "Write to this file instead of stdout")
	exportCmd.Flags().StringP("format", "f", "yaml", "Output format (yaml or json)")
}
