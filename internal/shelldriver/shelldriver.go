// Package shelldriver is the concrete, PTY-backed shell collaborator
// (spec §6): it spawns a real shell, feeds it the recorded input lines
// one at a time, and reads back terminal output until an echoed marker
// line carrying the exit status appears, yielding one
// transcript.Interaction per input line
// plus its exit status.
//
// This package lives outside the core (spec §1): ansi/termline/
// transcript/svgrender/svgparse never import it, and it is the only
// place in the module that spawns a process or touches a terminal
// device.
package shelldriver

import (
	"bufio"
	"fmt"
	"io"
	"os"
	"os/exec"
	"strconv"
	"strings"
	"syscall"
	"time"
	"unicode/utf8"

	"github.com/creack/pty"
	"github.com/rs/zerolog"
	"golang.org/x/term"
	"golang.org/x/text/encoding/charmap"

	"github.com/tsnapkit/tsnap/ansi"
	"github.com/tsnapkit/tsnap/transcript"
)

// sentinel brackets each input's output so Run can tell where one
// interaction's output ends and the shell's own prompt redraw begins,
// without trying to pattern-match an arbitrary PS1.
const sentinelPrefix = "__tsnap_sentinel_"

// Config configures how the shell collaborator spawns and drives the
// shell.
type Config struct {
	Shell   string        // defaults to $SHELL, then "/bin/sh"
	Env     []string      // additional environment variables, "KEY=VALUE"
	Init    []string      // commands run once at startup, before any input
	Timeout time.Duration // read timeout per input line; 0 means no timeout
	Rows    uint16        // defaults to 24
	Cols    uint16        // defaults to 80

	// Codepage decodes raw output bytes that aren't valid UTF-8 before
	// they reach the ANSI parser, for consoles that emit CP437 or
	// Windows-1252 instead (ansi.Parse itself requires valid UTF-8).
	// Nil means no fallback decoding is attempted.
	Codepage *charmap.Charmap

	Logger zerolog.Logger
}

// Driver is a shelldriver.Config bound to a running PTY-backed shell
// process. It satisfies snaptest.Collaborator.
type Driver struct {
	cfg  Config
	ptmx *os.File
	cmd  *exec.Cmd
	rd   *bufio.Reader
}

// Start spawns the configured shell attached to a pseudo-terminal and
// runs any configured Init commands.
func Start(cfg Config) (*Driver, error) {
	if cfg.Shell == "" {
		cfg.Shell = os.Getenv("SHELL")
	}
	if cfg.Shell == "" {
		cfg.Shell = "/bin/sh"
	}
	if cfg.Rows == 0 {
		cfg.Rows = 24
	}
	if cfg.Cols == 0 {
		cfg.Cols = 80
	}

	cmd := exec.Command(cfg.Shell)
	cmd.Env = append(append([]string(nil), os.Environ()...), cfg.Env...)

	cfg.Logger.Debug().Str("shell", cfg.Shell).Msg("starting shell driver")

	ptmx, err := pty.Start(cmd)
	if err != nil {
		return nil, fmt.Errorf("shelldriver: starting %s: %w", cfg.Shell, err)
	}
	if err := pty.Setsize(ptmx, &pty.Winsize{Rows: cfg.Rows, Cols: cfg.Cols}); err != nil {
		ptmx.Close()
		return nil, fmt.Errorf("shelldriver: sizing pty: %w", err)
	}

	d := &Driver{cfg: cfg, ptmx: ptmx, cmd: cmd, rd: bufio.NewReader(ptmx)}

	// Disable the shell's own line-editing echo games by forcing a
	// predictable, minimal prompt before anything else runs.
	if _, _, err := d.runAndCapture("PS1='$ '", 0); err != nil {
		d.Close()
		return nil, err
	}

	for i, initCmd := range cfg.Init {
		if _, _, err := d.runAndCapture(initCmd, i+1); err != nil {
			d.Close()
			return nil, err
		}
	}
	return d, nil
}

// MakeRaw puts the calling process's own stdin into raw mode, returning
// a restore function. No tsnap subcommand calls it. It has no effect on the spawned shell's PTY, only on the
// terminal the CLI itself is attached to.
func MakeRaw() (restore func(), err error) {
	fd := int(os.Stdin.Fd())
	if !term.IsTerminal(fd) {
		return func() {}, nil
	}
	oldState, err := term.MakeRaw(fd)
	if err != nil {
		return nil, fmt.Errorf("shelldriver: entering raw mode: %w", err)
	}
	return func() { _ = term.Restore(fd, oldState) }, nil
}

// Run feeds inputs to the shell one at a time and returns the resulting
// Transcript, satisfying snaptest.Collaborator.
func (d *Driver) Run(inputs []transcript.UserInput) (transcript.Transcript, error) {
	var tr transcript.Transcript
	for i, in := range inputs {
		d.cfg.Logger.Debug().Int("index", i).Str("text", in.Text).Msg("replaying input")

		seq := len(d.cfg.Init) + 1 + i
		raw, status, err := d.runAndCapture(in.Text, seq)
		if err != nil {
			return tr, fmt.Errorf("shelldriver: running input %d: %w", i, err)
		}

		styled, err := ansi.Parse(d.decode(raw))
		if err != nil {
			return tr, fmt.Errorf("shelldriver: parsing output for input %d: %w", i, err)
		}

		tr.Push(transcript.Interaction{Input: in, Output: styled, ExitStatus: &status})
	}
	return tr, nil
}

// Close terminates the shell and releases the pseudo-terminal.
func (d *Driver) Close() error {
	if d.ptmx != nil {
		_ = d.ptmx.Close()
	}
	if d.cmd != nil && d.cmd.Process != nil {
		_ = d.cmd.Process.Signal(syscall.SIGHUP)
		_, _ = d.cmd.Process.Wait()
	}
	return nil
}

// runAndCapture writes cmd to the shell followed immediately by a second
// command that echoes a unique marker plus cmd's exit status, then reads
// raw PTY output until that echoed marker line appears. It returns the
// output preceding the marker (the PTY's verbatim rendering of cmd,
// including the shell's own echo of what was typed) and the exit status
// cmd produced.
//
// Folding the marker echo into the immediately following line (rather
// than waiting for a separate round trip) keeps Run from ever blocking
// on a marker the shell has no reason to print.
func (d *Driver) runAndCapture(cmd string, seq int) (output []byte, status int, err error) {
	marker := fmt.Sprintf("%sdone_%d_", sentinelPrefix, seq)
	if _, werr := io.WriteString(d.ptmx, cmd+"\necho "+marker+"$?\n"); werr != nil {
		return nil, 0, werr
	}

	var out strings.Builder
	for {
		line, rerr := d.readLineWithTimeout()
		if rerr != nil {
			return nil, 0, rerr
		}
		if idx := strings.Index(line, marker); idx >= 0 {
			rest := strings.TrimSpace(line[idx+len(marker):])
			n, perr := strconv.Atoi(rest)
			if perr != nil {
				return nil, 0, fmt.Errorf("shelldriver: unparseable exit status %q", rest)
			}
			return []byte(out.String()), n, nil
		}
		out.WriteString(line)
	}
}

func (d *Driver) readLineWithTimeout() (string, error) {
	if d.cfg.Timeout > 0 {
		_ = d.ptmx.SetReadDeadline(time.Now().Add(d.cfg.Timeout))
	}
	line, err := d.rd.ReadString('\n')
	if err != nil && len(line) == 0 {
		return "", err
	}
	return line, nil
}

// decode applies the configured codepage fallback to any byte sequence
// that isn't already valid UTF-8, byte by byte, the way a real console
// emitting CP437 or Windows-1252 would (spec §6 edge the teacher never
// hits: go-headless-term is always fed UTF-8).
func (d *Driver) decode(raw []byte) []byte {
	if d.cfg.Codepage == nil || utf8.Valid(raw) {
		return raw
	}
	out := make([]rune, 0, len(raw))
	for _, b := range raw {
		out = append(out, d.cfg.Codepage.DecodeByte(b))
	}
	return []byte(string(out))
}
