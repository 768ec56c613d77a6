package main

import (
	"fmt"
	"strings"

	"github.com/spf13/cobra"

	"github.com/debeat/essentia"
)

var versionCmd = &cobra.Command{
	Use:   "version",
	Short: "Print the version number of essentia",
	Run: func(cmd *cobra.Command, args []string) {
		fmt.Printf("essentia version %s\n", strings.TrimSpace(essentia.Version))
	},
}

func init() {
	rootCmd.AddCommand(versionCmd)
}
