package main

import (
	"fmt"
	"io"

	"github.com/spf13/cobra"

	"github.com/tsnapkit/tsnap/svgrender"
	"github.com/tsnapkit/tsnap/transcript"
)

// newExecCmd implements spec §6's `exec [shell flags] <inputs…>`: spawn
// a real shell, run each input line through it, and render the
// resulting transcript.
func newExecCmd() *cobra.Command {
	var rf renderFlags
	var sf shellFlags

	cmd := &cobra.Command{
		Use:   "exec <input…>",
		Short: "Spawn a shell, run each input, and render an SVG",
		Args:  cobra.MinimumNArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			logger := rf.logger()

			driver, err := sf.start(logger)
			if err != nil {
				return fmt.Errorf("tsnap: starting shell: %w", err)
			}
			defer driver.Close()

			inputs := make([]transcript.UserInput, len(args))
			for i, a := range args {
				inputs[i] = transcript.UserInput{Text: a, Prompt: "$ "}
			}

			tr, err := driver.Run(inputs)
			if err != nil {
				return fmt.Errorf("tsnap: replaying inputs: %w", err)
			}

			opts, err := rf.renderOptions()
			if err != nil {
				return err
			}
			out, err := svgrender.Render(tr, opts)
			if err != nil {
				return fmt.Errorf("tsnap: rendering: %w", err)
			}
			_, err = io.WriteString(cmd.OutOrStdout(), out)
			return err
		},
	}
	rf.register(cmd)
	sf.register(cmd)
	return cmd
}
