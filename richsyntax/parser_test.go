package richsyntax

import (
	"testing"

	"github.com/tsnapkit/tsnap/style"
)

func TestParseS3BoldRedOnWhite(t *testing.T) {
	got, err := Parse("[[bold red on white]]Hi[[/]]")
	if err != nil {
		t.Fatal(err)
	}
	if got.Text() != "Hi" {
		t.Fatalf("unexpected text %q", got.Text())
	}
	spans := got.Spans()
	if len(spans) != 1 {
		t.Fatalf("expected one span, got %+v", spans)
	}
	st := spans[0].Style
	if !st.Has(style.Bold) {
		t.Error("expected bold")
	}
	if st.Fg == nil || st.Fg.Index != 1 {
		t.Errorf("expected fg red(1), got %+v", st.Fg)
	}
	if st.Bg == nil || st.Bg.Index != 7 {
		t.Errorf("expected bg white(7), got %+v", st.Bg)
	}
}

func TestParsePlainTextOutsideTags(t *testing.T) {
	got, err := Parse("before [[bold]]mid[[/]] after")
	if err != nil {
		t.Fatal(err)
	}
	if got.Text() != "before mid after" {
		t.Fatalf("unexpected text %q", got.Text())
	}
	spans := got.Spans()
	if len(spans) != 3 {
		t.Fatalf("expected 3 spans, got %+v", spans)
	}
	if !spans[0].Style.IsPlain() || !spans[2].Style.IsPlain() {
		t.Errorf("expected plain surrounding spans, got %+v", spans)
	}
	if !spans[1].Style.Has(style.Bold) {
		t.Errorf("expected bold middle span, got %+v", spans[1])
	}
}

func TestParseCommaSeparatedTokens(t *testing.T) {
	got, err := Parse("[[bold, italic]]x[[/]]")
	if err != nil {
		t.Fatal(err)
	}
	st := got.StyleAt(0)
	if !st.Has(style.Bold) || !st.Has(style.Italic) {
		t.Errorf("expected bold+italic, got %+v", st)
	}
}

func TestParseBrightNamedColor(t *testing.T) {
	got, err := Parse("[[red*]]x[[/]]")
	if err != nil {
		t.Fatal(err)
	}
	st := got.StyleAt(0)
	if st.Fg == nil || st.Fg.Index != 9 {
		t.Fatalf("expected bright red (index 9), got %+v", st.Fg)
	}
}

func TestParseHexColor(t *testing.T) {
	got, err := Parse("[[#336699]]x[[/]]")
	if err != nil {
		t.Fatal(err)
	}
	st := got.StyleAt(0)
	if st.Fg == nil || st.Fg.Kind != style.ColorKindRGB || st.Fg.R != 0x33 {
		t.Fatalf("unexpected fg: %+v", st.Fg)
	}
}

func TestParseDecimalIndexColor(t *testing.T) {
	got, err := Parse("[[200]]x[[/]]")
	if err != nil {
		t.Fatal(err)
	}
	st := got.StyleAt(0)
	// 200 is cube cell (5,0,4), which Indexed lowers to rgb(255,0,215).
	if st.Fg == nil || st.Fg.Kind != style.ColorKindRGB || st.Fg.R != 255 || st.Fg.G != 0 || st.Fg.B != 215 {
		t.Fatalf("unexpected fg: %+v", st.Fg)
	}
}

func TestParseUnfinishedStyleMissingCloseBrackets(t *testing.T) {
	_, err := Parse("[[bold text")
	if _, ok := err.(UnfinishedStyleError); !ok {
		t.Fatalf("expected UnfinishedStyleError, got %v (%T)", err, err)
	}
}

func TestParseUnfinishedStyleMissingCloseTag(t *testing.T) {
	_, err := Parse("[[bold]]text")
	if _, ok := err.(UnfinishedStyleError); !ok {
		t.Fatalf("expected UnfinishedStyleError, got %v (%T)", err, err)
	}
}

func TestParseBogusDelimiterNestedOpen(t *testing.T) {
	_, err := Parse("[[bold [[italic]]x[[/]]")
	if _, ok := err.(BogusDelimiterError); !ok {
		t.Fatalf("expected BogusDelimiterError, got %v (%T)", err, err)
	}
}

func TestParseUnfinishedBackground(t *testing.T) {
	_, err := Parse("[[on]]x[[/]]")
	if _, ok := err.(UnfinishedBackgroundError); !ok {
		t.Fatalf("expected UnfinishedBackgroundError, got %v (%T)", err, err)
	}
}

func TestParseRedefinedBackground(t *testing.T) {
	_, err := Parse("[[on white on black]]x[[/]]")
	if _, ok := err.(RedefinedBackgroundError); !ok {
		t.Fatalf("expected RedefinedBackgroundError, got %v (%T)", err, err)
	}
}

func TestParseUnsupportedStyle(t *testing.T) {
	_, err := Parse("[[nonsense]]x[[/]]")
	if _, ok := err.(UnsupportedStyleError); !ok {
		t.Fatalf("expected UnsupportedStyleError, got %v (%T)", err, err)
	}
}

func TestParseInvalidHexColor(t *testing.T) {
	_, err := Parse("[[#zz]]x[[/]]")
	if _, ok := err.(InvalidHexColorError); !ok {
		t.Fatalf("expected InvalidHexColorError, got %v (%T)", err, err)
	}
}

func TestParseInvalidIndexColor(t *testing.T) {
	_, err := Parse("[[999]]x[[/]]")
	if _, ok := err.(InvalidIndexColorError); !ok {
		t.Fatalf("expected InvalidIndexColorError, got %v (%T)", err, err)
	}
}
