package main

import (
	"fmt"
	"os"
	"strings"

	"github.com/charmbracelet/glamour"
	"github.com/spf13/cobra"
	"golang.org/x/term"

	"github.com/debeat/essentia"
)

// algosCmd represents the algos command
var algosCmd = &cobra.Command{
	Use:   "algos [name]",
	Short: "List the available algorithms",
	Long:  `Without arguments, lists every registered algorithm with its documentation. With a name, shows just that algorithm.`,
	Args:  cobra.MaximumNArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		eng, err := essentia.New()
		if err != nil {
			return err
		}
		reg := eng.Algorithms()

		names := reg.Names()
		if len(args) == 1 {
			names = []string{args[0]}
		}

		var doc strings.Builder
		doc.WriteString("# Algorithms\n\n")
		for _, name := range names {
			desc, err := reg.Describe(name)
			if err != nil {
				return err
			}
			fmt.Fprintf(&doc, "## %s\n\n%s\n\n", name, desc)
		}

		plain, _ := cmd.Flags().GetBool("plain")
		if plain || !term.IsTerminal(int(os.Stdout.Fd())) {
			fmt.Print(doc.String())
			return nil
		}

		r, err := glamour.NewTermRenderer(
			glamour.WithAutoStyle(), // Automatically detect light/dark background
		)
		if err != nil {
			return err
		}
		rendered, err := r.Render(doc.String())
		if err != nil {
			return err
		}
		fmt.Print(rendered)
		return nil
	},
}

func init() {
	rootCmd.AddCommand(algosCmd)

	algosCmd.Flags().Bool("plain", false, "Print plain markdown without terminal styling")
}
