package transcript

import (
	"testing"

	"github.com/tsnapkit/tsnap/style"
)

func validOptions() Options {
	return Options{
		DimOpacity:   0.5,
		LineHeight:   1.4,
		AdvanceWidth: 8,
		Scroll: ScrollOptions{
			MaxHeight:          480,
			PixelsPerScroll:    100,
			Interval:           2,
			ElisionThreshold:   0.1,
			MinScrollbarHeight: 10,
		},
		Blink: BlinkOptions{Interval: 1, Opacity: 0.5},
	}
}

func TestOptionsValidateAccepts(t *testing.T) {
	if err := validOptions().Validate(); err != nil {
		t.Fatalf("unexpected validation error: %v", err)
	}
}

func TestOptionsValidateRejects(t *testing.T) {
	cases := []struct {
		name   string
		mutate func(*Options)
	}{
		{"dim opacity 0", func(o *Options) { o.DimOpacity = 0 }},
		{"dim opacity 1", func(o *Options) { o.DimOpacity = 1 }},
		{"line height 0", func(o *Options) { o.LineHeight = 0 }},
		{"advance width negative", func(o *Options) { o.AdvanceWidth = -1 }},
		{"scroll interval 0", func(o *Options) { o.Scroll.Interval = 0 }},
		{"elision threshold 1", func(o *Options) { o.Scroll.ElisionThreshold = 1 }},
		{"elision threshold negative", func(o *Options) { o.Scroll.ElisionThreshold = -0.1 }},
		{"min >= max scrollbar", func(o *Options) { o.Scroll.MinScrollbarHeight = o.Scroll.MaxHeight }},
		{"blink interval 0", func(o *Options) { o.Blink.Interval = 0 }},
		{"blink opacity negative", func(o *Options) { o.Blink.Opacity = -0.1 }},
		{"blink opacity over 1", func(o *Options) { o.Blink.Opacity = 1.1 }},
	}
	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			opts := validOptions()
			tc.mutate(&opts)
			if err := opts.Validate(); err == nil {
				t.Errorf("expected validation error for %s", tc.name)
			}
		})
	}
}

func exitStatus(n int) *int { return &n }

// plainStyled builds a StyledString under the zero style, routing
// through Builder so any embedded newlines land in their own span as
// style.New requires.
func plainStyled(text string) style.StyledString {
	var b style.Builder
	b.PushStyled(style.Plain, text)
	return b.Build()
}

func TestAssembleBasic(t *testing.T) {
	var tr Transcript
	tr.Push(Interaction{
		Input:      UserInput{Text: "echo hi", Prompt: "$"},
		Output:     plainStyled("hi\n"),
		ExitStatus: exitStatus(0),
	})
	tr.Push(Interaction{
		Input:      UserInput{Text: "false"},
		Output:     style.Empty,
		ExitStatus: exitStatus(1),
	})

	data, err := Assemble(tr, validOptions(), nil)
	if err != nil {
		t.Fatal(err)
	}
	if !data.HasFailures {
		t.Error("expected HasFailures true")
	}
	if len(data.Interactions) != 2 {
		t.Fatalf("expected 2 interactions, got %d", len(data.Interactions))
	}
	if !data.Interactions[1].Input.Failed {
		t.Error("expected second interaction marked failed")
	}
	if data.Interactions[0].Input.Failed {
		t.Error("expected first interaction not failed")
	}
	foundH := false
	for _, r := range data.UsedChars {
		if r == 'h' {
			foundH = true
		}
	}
	if !foundH {
		t.Errorf("expected used chars to include 'h', got %v", data.UsedChars)
	}
}

func TestAssembleRejectsInvalidOptions(t *testing.T) {
	var tr Transcript
	opts := validOptions()
	opts.LineHeight = 0
	if _, err := Assemble(tr, opts, nil); err == nil {
		t.Error("expected error from invalid options")
	}
}

type stubEmbedder struct {
	called []rune
	out    any
	err    error
}

func (s *stubEmbedder) Embed(chars []rune) (any, error) {
	s.called = chars
	return s.out, s.err
}

func TestAssembleInvokesFontEmbedder(t *testing.T) {
	var tr Transcript
	tr.Push(Interaction{Input: UserInput{Text: "hi"}, Output: plainStyled("ok")})

	emb := &stubEmbedder{out: "payload"}
	data, err := Assemble(tr, validOptions(), emb)
	if err != nil {
		t.Fatal(err)
	}
	if data.Font != "payload" {
		t.Errorf("expected font payload threaded through, got %v", data.Font)
	}
	if len(emb.called) == 0 {
		t.Error("expected embedder to be called with used chars")
	}
}

func TestAssembleWrapsOutputLines(t *testing.T) {
	var tr Transcript
	tr.Push(Interaction{Input: UserInput{Text: "x"}, Output: plainStyled("abcdefghij")})

	opts := validOptions()
	opts.WrapWidth = 5
	data, err := Assemble(tr, opts, nil)
	if err != nil {
		t.Fatal(err)
	}
	lines := data.Interactions[0].Lines
	if len(lines) != 2 {
		t.Fatalf("expected 2 wrapped lines, got %d", len(lines))
	}
	if lines[0].Content.Text() != "abcde" {
		t.Errorf("unexpected first line %q", lines[0].Content.Text())
	}
}
