package snaptest

import (
	"os"
	"path/filepath"
	"strings"
	"testing"

	"github.com/tsnapkit/tsnap/style"
	"github.com/tsnapkit/tsnap/svgrender"
	"github.com/tsnapkit/tsnap/transcript"
)

// stubCollaborator replays a fixed transcript regardless of the inputs
// it's asked to run, standing in for internal/shelldriver in these
// tests (spec §5: tests exercise the tester against a collaborator,
// not a live shell).
type stubCollaborator struct {
	tr  transcript.Transcript
	err error
}

func (s stubCollaborator) Run(inputs []transcript.UserInput) (transcript.Transcript, error) {
	return s.tr, s.err
}

func sampleTranscript(text string) transcript.Transcript {
	var tr transcript.Transcript
	tr.Push(transcript.Interaction{
		Input:  transcript.UserInput{Text: "echo hi", Prompt: "$"},
		Output: style.PlainString(text),
	})
	return tr
}

func writeSnapshot(t *testing.T, dir string, tr transcript.Transcript) string {
	t.Helper()
	out, err := svgrender.Render(tr, svgrender.DefaultOptions())
	if err != nil {
		t.Fatal(err)
	}
	path := filepath.Join(dir, "sample.svg")
	if err := os.WriteFile(path, []byte(out), 0o644); err != nil {
		t.Fatal(err)
	}
	return path
}

func TestTestMissingSnapshotWithoutUpdate(t *testing.T) {
	dir := t.TempDir()
	path := filepath.Join(dir, "missing.svg")
	collab := stubCollaborator{tr: sampleTranscript("hi")}
	cfg := Config{RenderOptions: svgrender.DefaultOptions(), Update: UpdateNever}

	res := Test(path, []transcript.UserInput{{Text: "echo hi", Prompt: "$"}}, collab, cfg)
	if res.Passed() {
		t.Fatal("expected failure for missing snapshot")
	}
	var missing MissingSnapshotError
	if !asError(res.Err, &missing) {
		t.Fatalf("expected MissingSnapshotError, got %T: %v", res.Err, res.Err)
	}
	if _, err := os.Stat(missing.NewPath); !os.IsNotExist(err) {
		t.Error("expected no .new.svg to be written when update mode is Never")
	}
}

func TestTestMissingSnapshotWithUpdateAlways(t *testing.T) {
	dir := t.TempDir()
	path := filepath.Join(dir, "missing.svg")
	collab := stubCollaborator{tr: sampleTranscript("hi")}
	cfg := Config{RenderOptions: svgrender.DefaultOptions(), Update: UpdateAlways}

	res := Test(path, []transcript.UserInput{{Text: "echo hi", Prompt: "$"}}, collab, cfg)
	var missing MissingSnapshotError
	if !asError(res.Err, &missing) {
		t.Fatalf("expected MissingSnapshotError, got %T: %v", res.Err, res.Err)
	}
	if _, err := os.Stat(missing.NewPath); err != nil {
		t.Errorf("expected .new.svg to be written: %v", err)
	}
}

func TestTestInputMismatch(t *testing.T) {
	dir := t.TempDir()
	path := writeSnapshot(t, dir, sampleTranscript("hi"))
	collab := stubCollaborator{tr: sampleTranscript("hi")}
	cfg := Config{RenderOptions: svgrender.DefaultOptions(), Update: UpdateNever}

	res := Test(path, []transcript.UserInput{{Text: "echo bye", Prompt: "$"}}, collab, cfg)
	var mismatch InputMismatchError
	if !asError(res.Err, &mismatch) {
		t.Fatalf("expected InputMismatchError, got %T: %v", res.Err, res.Err)
	}
}

func TestTestPassesOnExactMatch(t *testing.T) {
	dir := t.TempDir()
	tr := sampleTranscript("hi")
	path := writeSnapshot(t, dir, tr)
	collab := stubCollaborator{tr: tr}
	cfg := Config{RenderOptions: svgrender.DefaultOptions(), Update: UpdateNever, Match: MatchPrecise}

	res := Test(path, []transcript.UserInput{{Text: "echo hi", Prompt: "$"}}, collab, cfg)
	if !res.Passed() {
		t.Fatalf("expected pass, got err: %v", res.Err)
	}
	if len(res.StatusLines) != 1 || !strings.HasPrefix(res.StatusLines[0], "+") {
		t.Errorf("expected a single '+' status line, got %v", res.StatusLines)
	}
}

func TestTestOutputTextMismatch(t *testing.T) {
	dir := t.TempDir()
	path := writeSnapshot(t, dir, sampleTranscript("hi"))
	collab := stubCollaborator{tr: sampleTranscript("bye")}
	cfg := Config{RenderOptions: svgrender.DefaultOptions(), Update: UpdateNever}

	res := Test(path, []transcript.UserInput{{Text: "echo hi", Prompt: "$"}}, collab, cfg)
	var mismatch OutputMismatchError
	if !asError(res.Err, &mismatch) {
		t.Fatalf("expected OutputMismatchError, got %T: %v", res.Err, res.Err)
	}
	if len(mismatch.Lines) != 1 || !strings.HasPrefix(mismatch.Lines[0], "-") {
		t.Errorf("expected a single '-' status line, got %v", mismatch.Lines)
	}
}

func TestTestOutputStyleMismatchOnlyUnderPreciseMatch(t *testing.T) {
	dir := t.TempDir()
	plain := sampleTranscript("hi")
	var b style.Builder
	b.PushStyled(style.Style{}.With(style.Bold), "hi")
	styled := transcript.Transcript{}
	styled.Push(transcript.Interaction{Input: transcript.UserInput{Text: "echo hi", Prompt: "$"}, Output: b.Build()})

	path := writeSnapshot(t, dir, plain)
	collab := stubCollaborator{tr: styled}

	textOnly := Config{RenderOptions: svgrender.DefaultOptions(), Update: UpdateNever, Match: MatchTextOnly}
	res := Test(path, []transcript.UserInput{{Text: "echo hi", Prompt: "$"}}, collab, textOnly)
	if !res.Passed() {
		t.Fatalf("expected text-only match to pass despite style difference, got err: %v", res.Err)
	}

	precise := Config{RenderOptions: svgrender.DefaultOptions(), Update: UpdateNever, Match: MatchPrecise}
	res = Test(path, []transcript.UserInput{{Text: "echo hi", Prompt: "$"}}, collab, precise)
	var mismatch OutputMismatchError
	if !asError(res.Err, &mismatch) {
		t.Fatalf("expected OutputMismatchError under precise match, got %T: %v", res.Err, res.Err)
	}
	if len(mismatch.Lines) != 1 || !strings.HasPrefix(mismatch.Lines[0], "#") {
		t.Errorf("expected a single '#' status line, got %v", mismatch.Lines)
	}
}

func TestUpdateModeShouldWriteNew(t *testing.T) {
	t.Setenv("CI", "")
	if !UpdateOnCi.ShouldWriteNew() {
		t.Error("expected OnCi to write when CI is unset")
	}
	t.Setenv("CI", "1")
	if UpdateOnCi.ShouldWriteNew() {
		t.Error("expected OnCi not to write when CI=1")
	}
	if UpdateNever.ShouldWriteNew() {
		t.Error("Never must never write")
	}
	if !UpdateAlways.ShouldWriteNew() {
		t.Error("Always must always write")
	}
}

// asError is a small errors.As stand-in kept local to this test file to
// avoid importing errors for a single call site.
func asError(err error, target interface{}) bool {
	switch t := target.(type) {
	case *MissingSnapshotError:
		if e, ok := err.(MissingSnapshotError); ok {
			*t = e
			return true
		}
	case *InputMismatchError:
		if e, ok := err.(InputMismatchError); ok {
			*t = e
			return true
		}
	case *OutputMismatchError:
		if e, ok := err.(OutputMismatchError); ok {
			*t = e
			return true
		}
	}
	return false
}
