package main

import (
	"fmt"
	"os"
	"strings"

	"github.com/spf13/cobra"

	"github.com/tsnapkit/tsnap/svgparse"
	"github.com/tsnapkit/tsnap/termline"
)

// newPrintCmd implements spec §6's `print <svg>`: reverse-parse a
// stored snapshot and re-emit its styled text to the terminal as raw
// ANSI, the inverse of `capture`/`exec`.
func newPrintCmd() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "print <svg>",
		Short: "Reverse-parse an SVG snapshot and print its styled text",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			data, err := os.ReadFile(args[0])
			if err != nil {
				return fmt.Errorf("tsnap: reading %s: %w", args[0], err)
			}
			tr, err := svgparse.Parse(data)
			if err != nil {
				return fmt.Errorf("tsnap: parsing %s: %w", args[0], err)
			}

			out := cmd.OutOrStdout()
			sink := termline.NewANSISink(out)
			for _, it := range tr.Interactions {
				if !it.Input.Hidden {
					fmt.Fprintf(out, "%s%s\n", it.Input.Prompt, it.Input.Text)
				}
				if it.Output.IsEmpty() {
					continue
				}
				if err := termline.Emit(sink, it.Output); err != nil {
					return fmt.Errorf("tsnap: printing %s: %w", args[0], err)
				}
				if err := sink.Reset(); err != nil {
					return err
				}
				if !strings.HasSuffix(it.Output.Text(), "\n") {
					fmt.Fprintln(out)
				}
			}
			return nil
		},
	}
	return cmd
}
