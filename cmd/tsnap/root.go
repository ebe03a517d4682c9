// Command tsnap is the CLI surface named in spec §6: capture, exec,
// test, and print, each driving the library packages in this module
// against a real shell (internal/shelldriver) or a stored SVG.
package main

import (
	"fmt"
	"os"
	"strconv"
	"strings"

	"github.com/mattn/go-isatty"
	"github.com/rs/zerolog"
	"github.com/spf13/cobra"

	"github.com/tsnapkit/tsnap/internal/tomlconfig"
	"github.com/tsnapkit/tsnap/snaptest"
	"github.com/tsnapkit/tsnap/svgrender"
)

// renderFlags holds the common flags shared by capture/exec/test (spec
// §6 "Common flags").
type renderFlags struct {
	config      string
	palette     string
	fontFamily  string
	windowFrame string
	lineNumbers bool
	wrap        string
	pureSVG     bool
	match       string
	verbose     bool
	color       string
	update      string
}

func (f *renderFlags) register(cmd *cobra.Command) {
	fl := cmd.Flags()
	fl.StringVar(&f.config, "config", "", "path to a TOML config file (spec §6)")
	fl.StringVar(&f.palette, "palette", "", "named palette: gjm8, xterm, powershell, ubuntu, dracula")
	fl.StringVar(&f.fontFamily, "font-family", "", "font family name passed to the font embedder (not written into the SVG)")
	fl.StringVar(&f.windowFrame, "window-frame", "", "window chrome: none, disabled, colored")
	fl.BoolVar(&f.lineNumbers, "line-numbers", false, "render a left-gutter line-number column")
	fl.StringVar(&f.wrap, "wrap", "", "hard wrap width, e.g. HARD:80")
	fl.BoolVar(&f.pureSVG, "pure-svg", false, "use the pure-SVG template instead of the hybrid SVG+HTML one")
	fl.StringVar(&f.match, "match", "text", "snapshot comparison: text or precise")
	fl.BoolVar(&f.verbose, "verbose", false, "enable debug-level tracing")
	fl.StringVar(&f.color, "color", "auto", "CLI log coloring: always, ansi, auto, never")
	fl.StringVar(&f.update, "update", "never", "snapshot update policy: always, never, on-ci")
}

// renderOptions layers the flags (and an optional TOML config) over
// svgrender.DefaultOptions(), matching tomlconfig.Config.ToRenderOptions's
// "absent key keeps its default" contract.
func (f *renderFlags) renderOptions() (svgrender.Options, error) {
	opts := svgrender.DefaultOptions()
	if f.config != "" {
		cfg, err := tomlconfig.Load(f.config)
		if err != nil {
			return svgrender.Options{}, err
		}
		opts, err = cfg.ToRenderOptions()
		if err != nil {
			return svgrender.Options{}, err
		}
	}

	if f.palette != "" {
		p, ok := svgrender.Palettes[f.palette]
		if !ok {
			return svgrender.Options{}, fmt.Errorf("tsnap: unknown --palette %q", f.palette)
		}
		opts.Palette = p
	}
	if f.fontFamily != "" {
		opts.FontFamily = f.fontFamily
	}
	if f.windowFrame != "" {
		switch f.windowFrame {
		case "none":
			opts.WindowFrame = svgrender.WindowFrameNone
		case "disabled":
			opts.WindowFrame = svgrender.WindowFrameDisabled
		case "colored":
			opts.WindowFrame = svgrender.WindowFrameColored
		default:
			return svgrender.Options{}, fmt.Errorf("tsnap: unknown --window-frame %q", f.windowFrame)
		}
	}
	opts.LineNumbers = opts.LineNumbers || f.lineNumbers
	opts.PureSVG = opts.PureSVG || f.pureSVG

	if f.wrap != "" {
		n, err := parseWrap(f.wrap)
		if err != nil {
			return svgrender.Options{}, err
		}
		opts.WrapWidth = n
	}
	if opts.Embedder == nil {
		opts.Embedder = &svgrender.BasicEmbedder{Family: opts.FontFamily}
	}
	return opts, nil
}

func parseWrap(s string) (int, error) {
	parts := strings.SplitN(s, ":", 2)
	if len(parts) != 2 || !strings.EqualFold(parts[0], "HARD") {
		return 0, fmt.Errorf("tsnap: invalid --wrap %q, want \"HARD:<n>\"", s)
	}
	n, err := strconv.Atoi(parts[1])
	if err != nil || n <= 0 {
		return 0, fmt.Errorf("tsnap: invalid --wrap width %q", parts[1])
	}
	return n, nil
}

func (f *renderFlags) matchKind() (snaptest.MatchKind, error) {
	switch f.match {
	case "text", "":
		return snaptest.MatchTextOnly, nil
	case "precise":
		return snaptest.MatchPrecise, nil
	default:
		return 0, fmt.Errorf("tsnap: unknown --match %q, want text or precise", f.match)
	}
}

func (f *renderFlags) updateMode() (snaptest.UpdateMode, error) {
	switch f.update {
	case "never", "":
		return snaptest.UpdateNever, nil
	case "always":
		return snaptest.UpdateAlways, nil
	case "on-ci":
		return snaptest.UpdateOnCi, nil
	default:
		return 0, fmt.Errorf("tsnap: unknown --update %q, want always, never, or on-ci", f.update)
	}
}

// logger builds the CLI's own tracing logger (spec SPEC_FULL §B: only
// the CLI/driver boundary logs, never the core packages).
func (f *renderFlags) logger() zerolog.Logger {
	noColor := f.color == "never"
	if f.color == "auto" || f.color == "" {
		noColor = !isatty.IsTerminal(os.Stderr.Fd())
	}
	out := zerolog.ConsoleWriter{Out: os.Stderr, NoColor: noColor}
	lvl := zerolog.InfoLevel
	if f.verbose {
		lvl = zerolog.DebugLevel
	}
	return zerolog.New(out).Level(lvl).With().Timestamp().Logger()
}

func newRootCmd() *cobra.Command {
	root := &cobra.Command{
		Use:           "tsnap",
		Short:         "Record, render, and test styled terminal session snapshots",
		SilenceUsage:  true,
		SilenceErrors: true,
	}
	root.AddCommand(newCaptureCmd())
	root.AddCommand(newExecCmd())
	root.AddCommand(newTestCmd())
	root.AddCommand(newPrintCmd())
	return root
}

func main() {
	if err := newRootCmd().Execute(); err != nil {
		fmt.Fprintln(os.Stderr, "tsnap:", err)
		os.Exit(1)
	}
}
