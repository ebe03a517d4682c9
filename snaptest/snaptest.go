// Package snaptest implements the §4.9 snapshot tester: given a stored
// SVG path and a list of expected inputs, it reverse-parses the
// snapshot, replays the inputs through a shell collaborator, and
// compares the two transcripts.
package snaptest

import (
	"fmt"
	"os"

	"github.com/google/uuid"

	"github.com/tsnapkit/tsnap/style"
	"github.com/tsnapkit/tsnap/svgparse"
	"github.com/tsnapkit/tsnap/svgrender"
	"github.com/tsnapkit/tsnap/transcript"
)

// UpdateMode governs when a `.new.svg` sibling is written on mismatch.
type UpdateMode int

const (
	// UpdateNever never writes a .new.svg.
	UpdateNever UpdateMode = iota
	// UpdateAlways always writes a .new.svg on any mismatch.
	UpdateAlways
	// UpdateOnCi writes a .new.svg only when CI is unset or "0" (i.e.
	// this is judged a local developer run, not a CI run).
	UpdateOnCi
)

// MatchKind controls how much of the replayed output must agree with
// the snapshot to count as a pass.
type MatchKind int

const (
	// MatchTextOnly compares plain text only.
	MatchTextOnly MatchKind = iota
	// MatchPrecise compares text and style.
	MatchPrecise
)

// ShouldWriteNew reports whether mode permits writing a `.new.svg`
// sibling, consulting the CI environment variable for UpdateOnCi (spec
// §6: "the tester observes CI... when update-mode is OnCi").
func (m UpdateMode) ShouldWriteNew() bool {
	switch m {
	case UpdateAlways:
		return true
	case UpdateOnCi:
		ci := os.Getenv("CI")
		return ci == "" || ci == "0"
	default:
		return false
	}
}

// Collaborator is what the tester needs from a shell driver: replay a
// list of inputs and return the Transcript they produced (spec §6,
// "shell collaborator interface").
type Collaborator interface {
	Run(inputs []transcript.UserInput) (transcript.Transcript, error)
}

// MissingSnapshotError reports an absent snapshot file.
type MissingSnapshotError struct {
	Path    string
	NewPath string
}

func (e MissingSnapshotError) Error() string {
	return fmt.Sprintf("snaptest: missing snapshot %s (see %s)", e.Path, e.NewPath)
}

// InputMismatchError reports that the snapshot's recorded inputs don't
// match the expected list.
type InputMismatchError struct {
	Path    string
	NewPath string
	Detail  string
}

func (e InputMismatchError) Error() string {
	return fmt.Sprintf("snaptest: input mismatch in %s: %s (see %s)", e.Path, e.Detail, e.NewPath)
}

// OutputMismatchError reports that one or more interactions failed to
// match the snapshot's recorded output.
type OutputMismatchError struct {
	Path    string
	NewPath string
	Lines   []string // one §4.9 status line per interaction
}

func (e OutputMismatchError) Error() string {
	return fmt.Sprintf("snaptest: output mismatch in %s (see %s):\n%s", e.Path, e.NewPath, joinLines(e.Lines))
}

func joinLines(lines []string) string {
	out := ""
	for i, l := range lines {
		if i > 0 {
			out += "\n"
		}
		out += l
	}
	return out
}

// Config bundles the options the tester needs beyond the Collaborator:
// render options for producing a `.new.svg`, and the match/update
// policy.
type Config struct {
	RenderOptions svgrender.Options
	Update        UpdateMode
	Match         MatchKind
}

// Result is the outcome of testing one snapshot: one status line per
// interaction and the first error encountered, if any.
type Result struct {
	StatusLines []string
	Err         error
}

// Passed reports whether every interaction matched.
func (r Result) Passed() bool {
	return r.Err == nil
}

// Test runs the §4.9 algorithm against the snapshot at path, using
// collaborator to replay expected and cfg to decide update/match
// behavior.
func Test(path string, expected []transcript.UserInput, collaborator Collaborator, cfg Config) Result {
	newPath := newSnapshotPath(path)

	data, err := os.ReadFile(path)
	if os.IsNotExist(err) {
		if cfg.Update.ShouldWriteNew() {
			if writeErr := renderAndWrite(newPath, expected, collaborator, cfg); writeErr != nil {
				return Result{Err: fmt.Errorf("snaptest: writing %s: %w", newPath, writeErr)}
			}
		}
		return Result{Err: MissingSnapshotError{Path: path, NewPath: newPath}}
	}
	if err != nil {
		return Result{Err: fmt.Errorf("snaptest: reading %s: %w", path, err)}
	}

	recorded, err := svgparse.Parse(data)
	if err != nil {
		return Result{Err: fmt.Errorf("snaptest: parsing %s: %w", path, err)}
	}

	if detail, ok := inputsDiffer(recorded, expected); ok {
		if cfg.Update.ShouldWriteNew() {
			_ = renderAndWrite(newPath, expected, collaborator, cfg)
		}
		return Result{Err: InputMismatchError{Path: path, NewPath: newPath, Detail: detail}}
	}

	live, err := collaborator.Run(expected)
	if err != nil {
		return Result{Err: fmt.Errorf("snaptest: replaying inputs: %w", err)}
	}

	lines, failed := compareInteractions(recorded, live, cfg.Match)
	if failed {
		if cfg.Update.ShouldWriteNew() {
			_ = renderAndWrite(newPath, expected, collaborator, cfg)
		}
		return Result{StatusLines: lines, Err: OutputMismatchError{Path: path, NewPath: newPath, Lines: lines}}
	}
	return Result{StatusLines: lines}
}

// newSnapshotPath derives the sibling path the new-snapshot mention in
// every failure message points at, per spec §4.9. A random suffix keeps
// concurrent test runs over the same snapshot from clobbering each
// other's pending write (spec §5: "independent snapshots can be tested
// on separate threads").
func newSnapshotPath(path string) string {
	return fmt.Sprintf("%s.%s.new.svg", trimSVGExt(path), uuid.NewString())
}

func trimSVGExt(path string) string {
	const ext = ".svg"
	if len(path) > len(ext) && path[len(path)-len(ext):] == ext {
		return path[:len(path)-len(ext)]
	}
	return path
}

func renderAndWrite(newPath string, expected []transcript.UserInput, collaborator Collaborator, cfg Config) error {
	live, err := collaborator.Run(expected)
	if err != nil {
		return err
	}
	svg, err := svgrender.Render(live, cfg.RenderOptions)
	if err != nil {
		return err
	}
	return os.WriteFile(newPath, []byte(svg), 0o644)
}

// inputsDiffer compares recorded's inputs against expected by count,
// text, prompt, and hidden flag. Exit statuses are not compared.
func inputsDiffer(recorded transcript.Transcript, expected []transcript.UserInput) (detail string, differ bool) {
	if len(recorded.Interactions) != len(expected) {
		return fmt.Sprintf("expected %d inputs, snapshot has %d", len(expected), len(recorded.Interactions)), true
	}
	for i, want := range expected {
		got := recorded.Interactions[i].Input
		if got.Text != want.Text {
			return fmt.Sprintf("interaction %d: text %q != %q", i, got.Text, want.Text), true
		}
		if got.Prompt != want.Prompt {
			return fmt.Sprintf("interaction %d: prompt %q != %q", i, got.Prompt, want.Prompt), true
		}
		if got.Hidden != want.Hidden {
			return fmt.Sprintf("interaction %d: hidden %v != %v", i, got.Hidden, want.Hidden), true
		}
	}
	return "", false
}

// compareInteractions produces one §4.9 status line per interaction
// ('+' pass, '-' text mismatch, '#' style mismatch) and reports whether
// any interaction failed.
func compareInteractions(recorded, live transcript.Transcript, match MatchKind) (lines []string, failed bool) {
	n := len(recorded.Interactions)
	if len(live.Interactions) < n {
		n = len(live.Interactions)
	}
	for i := 0; i < n; i++ {
		want := recorded.Interactions[i].Output
		got := live.Interactions[i].Output
		switch {
		case want.Text() != got.Text():
			lines = append(lines, fmt.Sprintf("- interaction %d: text mismatch\n%s", i, textDiffReport(want, got)))
			failed = true
		case match == MatchPrecise && !want.Equal(got):
			lines = append(lines, fmt.Sprintf("# interaction %d: style mismatch\n%s", i, styleDiffReport(want, got)))
			failed = true
		default:
			lines = append(lines, fmt.Sprintf("+ interaction %d", i))
		}
	}
	for i := n; i < max(len(recorded.Interactions), len(live.Interactions)); i++ {
		lines = append(lines, fmt.Sprintf("- interaction %d: missing from one transcript", i))
		failed = true
	}
	return lines, failed
}

func textDiffReport(a, b style.StyledString) string {
	return style.FormatTextDiff(style.TextDiff(a, b))
}

func styleDiffReport(a, b style.StyledString) string {
	diffs, err := style.StyleDiff(a, b)
	if err != nil {
		return err.Error()
	}
	var out string
	for _, d := range diffs {
		out += fmt.Sprintf("  [%d:%d) %v -> %v\n", d.Start, d.End, d.StyleA, d.StyleB)
	}
	return out
}
