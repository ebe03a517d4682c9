package main

import (
	"fmt"
	"os"

	"github.com/spf13/cobra"

	"github.com/tsnapkit/tsnap/snaptest"
	"github.com/tsnapkit/tsnap/svgparse"
	"github.com/tsnapkit/tsnap/transcript"
)

// newTestCmd implements spec §6's `test [shell flags] <svg paths…>`:
// reverse-parse each stored snapshot for its recorded inputs, replay
// those inputs against a fresh shell, and report a per-interaction
// diff on mismatch. Exits non-zero if any snapshot fails.
func newTestCmd() *cobra.Command {
	var rf renderFlags
	var sf shellFlags

	cmd := &cobra.Command{
		Use:   "test <svg path…>",
		Short: "Replay a snapshot's inputs and compare against the stored SVG",
		Args:  cobra.MinimumNArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			logger := rf.logger()

			match, err := rf.matchKind()
			if err != nil {
				return err
			}
			update, err := rf.updateMode()
			if err != nil {
				return err
			}
			opts, err := rf.renderOptions()
			if err != nil {
				return err
			}
			cfg := snaptest.Config{RenderOptions: opts, Update: update, Match: match}

			failures := 0
			for _, path := range args {
				expected, err := expectedInputs(path)
				if err != nil {
					fmt.Fprintf(cmd.ErrOrStderr(), "%s: %v\n", path, err)
					failures++
					continue
				}

				driver, err := sf.start(logger)
				if err != nil {
					return fmt.Errorf("tsnap: starting shell: %w", err)
				}

				result := snaptest.Test(path, expected, driver, cfg)
				driver.Close()

				for _, line := range result.StatusLines {
					fmt.Fprintln(cmd.OutOrStdout(), line)
				}
				if !result.Passed() {
					fmt.Fprintf(cmd.ErrOrStderr(), "%s: FAIL: %v\n", path, result.Err)
					failures++
				} else {
					fmt.Fprintf(cmd.OutOrStdout(), "%s: PASS\n", path)
				}
			}
			if failures > 0 {
				return fmt.Errorf("%d snapshot(s) failed", failures)
			}
			return nil
		},
	}
	rf.register(cmd)
	sf.register(cmd)
	return cmd
}

// expectedInputs recovers the inputs a snapshot was originally recorded
// with by reverse-parsing its own SVG (spec §4.9's "expected inputs"
// are whatever the snapshot already encodes when the CLI has no
// separate source of truth to compare against).
func expectedInputs(path string) ([]transcript.UserInput, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, err
	}
	tr, err := svgparse.Parse(data)
	if err != nil {
		return nil, err
	}
	inputs := make([]transcript.UserInput, len(tr.Interactions))
	for i, it := range tr.Interactions {
		inputs[i] = it.Input
	}
	return inputs, nil
}
