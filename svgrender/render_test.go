package svgrender

import (
	"strings"
	"testing"

	"github.com/tsnapkit/tsnap/style"
	"github.com/tsnapkit/tsnap/transcript"
)

func greenWorldTranscript(t *testing.T) transcript.Transcript {
	t.Helper()
	var b style.Builder
	b.PushStyled(style.Plain, "Hello, ")
	b.PushStyled(style.Style{}.WithFg(style.Indexed(2)), "world")
	b.PushStyled(style.Plain, "!")

	var tr transcript.Transcript
	tr.Push(transcript.Interaction{
		Input:  transcript.UserInput{Text: "echo Hello, world!", Prompt: "$"},
		Output: b.Build(),
	})
	return tr
}

// TestS1HybridRendersExpectedSpan checks scenario S1 from spec §8: the
// rendered hybrid SVG contains the literal span markup for the green
// "world" run.
func TestS1HybridRendersExpectedSpan(t *testing.T) {
	out, err := Render(greenWorldTranscript(t), DefaultOptions())
	if err != nil {
		t.Fatal(err)
	}
	if !strings.Contains(out, `Hello, <span class="fg2">world</span>!`) {
		t.Errorf("missing expected span markup in:\n%s", out)
	}
}

func TestRenderHybridIncludesFailureClass(t *testing.T) {
	var tr transcript.Transcript
	zero := 0
	one := 1
	tr.Push(transcript.Interaction{Input: transcript.UserInput{Text: "echo hi"}, ExitStatus: &zero})
	var b style.Builder
	tr.Push(transcript.Interaction{Input: transcript.UserInput{Text: "false"}, ExitStatus: &one, Output: b.Build()})

	out, err := Render(tr, DefaultOptions())
	if err != nil {
		t.Fatal(err)
	}
	if !strings.Contains(out, `input-failure`) {
		t.Errorf("expected input-failure class in output:\n%s", out)
	}
	if !strings.Contains(out, `data-exit-status="1"`) {
		t.Errorf("expected data-exit-status attribute in output:\n%s", out)
	}
}

func TestRenderPureProducesContainerGroup(t *testing.T) {
	opts := DefaultOptions()
	opts.PureSVG = true
	out, err := Render(greenWorldTranscript(t), opts)
	if err != nil {
		t.Fatal(err)
	}
	if !strings.Contains(out, `<g class="container">`) {
		t.Errorf("expected container group, got:\n%s", out)
	}
	if !strings.Contains(out, `fill="#`) && !strings.Contains(out, `var(--tsnap-`) {
		t.Errorf("expected a fg color fill or palette var, got:\n%s", out)
	}
}

func TestRenderHybridEscapesSpecialChars(t *testing.T) {
	var tr transcript.Transcript
	var b style.Builder
	b.PushStyled(style.Plain, "a < b & c")
	tr.Push(transcript.Interaction{Input: transcript.UserInput{Text: "echo"}, Output: b.Build()})

	out, err := Render(tr, DefaultOptions())
	if err != nil {
		t.Fatal(err)
	}
	if !strings.Contains(out, "&lt;") || !strings.Contains(out, "&amp;") {
		t.Errorf("expected escaped output chars, got:\n%s", out)
	}
}

func TestRenderWindowFrameAddsChrome(t *testing.T) {
	opts := DefaultOptions()
	opts.WindowFrame = WindowFrameColored
	out, err := Render(greenWorldTranscript(t), opts)
	if err != nil {
		t.Fatal(err)
	}
	if !strings.Contains(out, "window-frame") {
		t.Errorf("expected window frame chrome, got:\n%s", out)
	}
}

// TestRenderHiddenInputPreservesText checks that a hidden input keeps
// its text and gets the input-hidden class hook, so the snapshot
// round-trips.
func TestRenderHiddenInputPreservesText(t *testing.T) {
	var tr transcript.Transcript
	tr.Push(transcript.Interaction{
		Input: transcript.UserInput{Text: "s3cr3t-value", Prompt: "password:", Hidden: true},
	})

	for _, pure := range []bool{false, true} {
		opts := DefaultOptions()
		opts.PureSVG = pure
		out, err := Render(tr, opts)
		if err != nil {
			t.Fatalf("pure=%v: %v", pure, err)
		}
		if !strings.Contains(out, "s3cr3t-value") {
			t.Errorf("pure=%v: expected hidden input text to survive rendering, got:\n%s", pure, out)
		}
		if !strings.Contains(out, "input-hidden") {
			t.Errorf("pure=%v: expected input-hidden class, got:\n%s", pure, out)
		}
	}
}

func TestRenderRejectsInvalidOptions(t *testing.T) {
	opts := DefaultOptions()
	opts.DimOpacity = 0
	if _, err := Render(greenWorldTranscript(t), opts); err == nil {
		t.Error("expected validation error to propagate")
	}
}

func TestBasicEmbedderReportsMetrics(t *testing.T) {
	emb := &BasicEmbedder{}
	payload, err := emb.Embed([]rune("abc"))
	if err != nil {
		t.Fatal(err)
	}
	fp, ok := payload.(*FontPayload)
	if !ok {
		t.Fatalf("unexpected payload type %T", payload)
	}
	if fp.AdvanceWidth <= 0 {
		t.Errorf("expected positive advance width, got %v", fp.AdvanceWidth)
	}
	if fp.HasBlock {
		t.Errorf("basicfont should not report U+2588 support")
	}
}

func TestPaletteTableHasSixteenEntries(t *testing.T) {
	for _, p := range Palettes {
		if len(p.Colors) != 16 {
			t.Errorf("palette %s: expected 16 colors, got %d", p.Name, len(p.Colors))
		}
	}
}
