package style

import "testing"

func TestStyleDiffSingleSpan(t *testing.T) {
	green := Style{}.WithFg(Indexed(2))
	red := Style{}.WithFg(Indexed(1))
	a := Must("Hello", []StyledSpan{{Style: green, Len: 5}})
	b := Must("Hello", []StyledSpan{{Style: red, Len: 5}})

	diffs, err := StyleDiff(a, b)
	if err != nil {
		t.Fatal(err)
	}
	if len(diffs) != 1 {
		t.Fatalf("expected exactly one diff span, got %d: %+v", len(diffs), diffs)
	}
	if diffs[0].Start != 0 || diffs[0].End != 5 {
		t.Errorf("unexpected range: %+v", diffs[0])
	}
}

func TestStyleDiffEmptyWhenEqual(t *testing.T) {
	a := PlainString("same text")
	b := PlainString("same text")
	diffs, err := StyleDiff(a, b)
	if err != nil {
		t.Fatal(err)
	}
	if len(diffs) != 0 {
		t.Errorf("expected no diffs, got %+v", diffs)
	}
}

func TestStyleDiffSuppressesPlainWhitespace(t *testing.T) {
	bold := Style{}.With(Bold)
	a := Must("a b", []StyledSpan{{Style: Style{}, Len: 1}, {Style: Style{}, Len: 1}, {Style: Style{}, Len: 1}})
	b := Must("a b", []StyledSpan{{Style: Style{}, Len: 1}, {Style: bold, Len: 1}, {Style: Style{}, Len: 1}})
	diffs, err := StyleDiff(a, b)
	if err != nil {
		t.Fatal(err)
	}
	if len(diffs) != 0 {
		t.Errorf("expected whitespace-only bold diff to be suppressed (bold doesn't affect whitespace), got %+v", diffs)
	}
}

func TestStyleDiffKeepsWhitespaceAffectingUnderline(t *testing.T) {
	underline := Style{}.With(Underline)
	a := Must("a b", []StyledSpan{{Style: Style{}, Len: 1}, {Style: Style{}, Len: 1}, {Style: Style{}, Len: 1}})
	b := Must("a b", []StyledSpan{{Style: Style{}, Len: 1}, {Style: underline, Len: 1}, {Style: Style{}, Len: 1}})
	diffs, err := StyleDiff(a, b)
	if err != nil {
		t.Fatal(err)
	}
	if len(diffs) != 1 {
		t.Fatalf("expected underline whitespace diff to survive, got %+v", diffs)
	}
}

func TestStyleDiffRejectsLengthMismatch(t *testing.T) {
	a := PlainString("abc")
	b := PlainString("abcd")
	if _, err := StyleDiff(a, b); err == nil {
		t.Fatal("expected error for mismatched lengths")
	}
}

func TestTextDiffEmptyWhenEqual(t *testing.T) {
	a := PlainString("x\ny")
	b := PlainString("x\ny")
	if d := TextDiff(a, b); d != nil {
		t.Errorf("expected nil diff, got %+v", d)
	}
}

func TestTextDiffReportsChangedLine(t *testing.T) {
	a := PlainString("one\ntwo\nthree")
	b := PlainString("one\nTWO\nthree")
	d := TextDiff(a, b)
	if len(d) != 2 {
		t.Fatalf("expected one removed + one added line, got %+v", d)
	}
	if d[0].FromB || d[0].Text != "two" {
		t.Errorf("expected '< two', got %+v", d[0])
	}
	if !d[1].FromB || d[1].Text != "TWO" {
		t.Errorf("expected '> TWO', got %+v", d[1])
	}
}
