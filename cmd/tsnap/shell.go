package main

import (
	"time"

	"github.com/rs/zerolog"
	"github.com/spf13/cobra"

	"github.com/tsnapkit/tsnap/internal/shelldriver"
)

// shellFlags are the "[shell flags]" named alongside `exec` and `test`
// in spec §6.
type shellFlags struct {
	shell   string
	env     []string
	init    []string
	timeout time.Duration
	rows    int
	cols    int
}

func (f *shellFlags) register(cmd *cobra.Command) {
	fl := cmd.Flags()
	fl.StringVar(&f.shell, "shell", "", "shell binary to spawn (defaults to $SHELL, then /bin/sh)")
	fl.StringArrayVar(&f.env, "env", nil, "additional KEY=VALUE environment variable, repeatable")
	fl.StringArrayVar(&f.init, "init", nil, "command to run once at startup before any recorded input, repeatable")
	fl.DurationVar(&f.timeout, "timeout", 10*time.Second, "per-input read timeout (0 disables)")
	fl.IntVar(&f.rows, "rows", 24, "pseudo-terminal row count")
	fl.IntVar(&f.cols, "cols", 80, "pseudo-terminal column count")
}

// start spawns the configured shell under shelldriver, ready to replay
// input lines.
func (f *shellFlags) start(logger zerolog.Logger) (*shelldriver.Driver, error) {
	return shelldriver.Start(shelldriver.Config{
		Shell:   f.shell,
		Env:     f.env,
		Init:    f.init,
		Timeout: f.timeout,
		Rows:    uint16(f.rows),
		Cols:    uint16(f.cols),
		Logger:  logger,
	})
}
