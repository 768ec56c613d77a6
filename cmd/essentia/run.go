package main

import (
	"fmt"
	"os"
	"os/signal"
	"syscall"

	"github.com/spf13/cobra"

	"github.com/debeat/essentia"
	"github.com/debeat/essentia/pkg/adapters/poolio"
	"github.com/debeat/essentia/pkg/pool"
)

// runCmd represents the run command
var runCmd = &cobra.Command{
	Use:   "run",
	Short: "Run a pipeline and write the resulting pool",
	Long:  `Loads a YAML pipeline definition, executes its network to completion and writes the collected descriptor pool to stdout or a file.`,
	RunE: func(cmd *cobra.Command, args []string) error {
		pipelinePath, _ := cmd.Flags().GetString("pipeline")
		if pipelinePath == "" && len(args) > 0 {
			pipelinePath = args[0]
		}
		if pipelinePath == "" {
			return fmt.Errorf("a pipeline file is required (--pipeline or positional argument)")
		}
		outputPath, _ := cmd.Flags().GetString("output")
		format, _ := cmd.Flags().GetString("format")
		if format != "yaml" && format != "json" {
			return fmt.Errorf("unknown format %q (want yaml or json)", format)
		}

		logger, err := newLogger(cmd)
		if err != nil {
			return err
		}

		f, err := os.Open(pipelinePath)
		if err != nil {
			return fmt.Errorf("open pipeline: %w", err)
		}
		defer f.Close()

		pipe, err := essentia.LoadPipeline(f)
		if err != nil {
			return err
		}

		eng, err := essentia.New(essentia.WithLogger(logger))
		if err != nil {
			return err
		}

		ctx, stop := signal.NotifyContext(cmd.Context(), os.Interrupt, syscall.SIGTERM)
		defer stop()

		logger.Info("running pipeline", "name", pipe.Name, "algorithms", len(pipe.Algorithms))
		results, err := eng.Run(ctx, pipe)
		if err != nil {
			return err
		}

		return writeResults(results, outputPath, format)
	},
}

func writeResults(p *pool.Pool, path, format string) error {
	out := os.Stdout
	if path != "" {
		f, err := os.Create(path)
		if err != nil {
			return fmt.Errorf("create output: %w", err)
		}
		defer f.Close()
		out = f
	}
	if format == "json" {
		return poolio.SaveJSON(out, p)
	}
	return poolio.SaveYAML(out, p)
}

func init() {
	rootCmd.AddCommand(runCmd)

	runCmd.Flags().StringP("pipeline", "p", "", "Path to the pipeline YAML file")
	runCmd.Flags().StringP("output", "o", "", "Write results to this file instead of stdout")
	runCmd.Flags().StringP("format", "f", "yaml", "Output format (yaml or json)")
}
