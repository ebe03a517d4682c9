package main

import (
	"fmt"
	"io"

	"github.com/spf13/cobra"

	"github.com/tsnapkit/tsnap/ansi"
	"github.com/tsnapkit/tsnap/svgrender"
	"github.com/tsnapkit/tsnap/transcript"
)

// newCaptureCmd implements spec §6's `capture <cmd>`: stdin carries the
// raw terminal bytes a shell already produced for cmd (e.g. piped from
// a `script`-style recorder); tsnap only needs to style and render them
// as a single interaction.
func newCaptureCmd() *cobra.Command {
	var rf renderFlags

	cmd := &cobra.Command{
		Use:   "capture <cmd>",
		Short: "Read stdin as raw terminal output and emit one SVG interaction",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			logger := rf.logger()

			raw, err := io.ReadAll(cmd.InOrStdin())
			if err != nil {
				return fmt.Errorf("tsnap: reading stdin: %w", err)
			}
			logger.Debug().Int("bytes", len(raw)).Msg("captured stdin")

			styled, err := ansi.Parse(raw)
			if err != nil {
				return fmt.Errorf("tsnap: parsing captured output: %w", err)
			}

			var tr transcript.Transcript
			tr.Push(transcript.Interaction{
				Input:  transcript.UserInput{Text: args[0], Prompt: "$ "},
				Output: styled,
			})

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
	return cmd
}
