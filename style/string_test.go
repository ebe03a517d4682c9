package style

import "testing"

func TestPlainSplitsOnNewline(t *testing.T) {
	s := PlainString("ab\ncd")
	lines := s.Lines()
	if len(lines) != 2 {
		t.Fatalf("expected 2 lines, got %d", len(lines))
	}
	if lines[0].Text() != "ab" || lines[1].Text() != "cd" {
		t.Errorf("unexpected line text: %q %q", lines[0].Text(), lines[1].Text())
	}
}

func TestNewRejectsMismatchedLength(t *testing.T) {
	_, err := New("abc", []StyledSpan{{Style: Style{}, Len: 2}})
	if err == nil {
		t.Fatal("expected error for mismatched span length")
	}
}

func TestNewRejectsSpanCrossingNewline(t *testing.T) {
	_, err := New("a\nb", []StyledSpan{{Style: Style{}, Len: 3}})
	if err == nil {
		t.Fatal("expected error for span crossing newline")
	}
}

func TestConcatCoalescesEqualStyles(t *testing.T) {
	red := Style{}.WithFg(Indexed(1))
	a := Must("Hel", []StyledSpan{{Style: red, Len: 3}})
	b := Must("lo", []StyledSpan{{Style: red, Len: 2}})
	got := Concat(a, b)
	spans := got.Spans()
	if len(spans) != 1 {
		t.Fatalf("expected coalesced single span, got %d: %+v", len(spans), spans)
	}
	if spans[0].Len != 5 {
		t.Errorf("expected len 5, got %d", spans[0].Len)
	}
}

func TestConcatDoesNotMergeAcrossNewline(t *testing.T) {
	plain := Style{}
	a := Must("x\n", []StyledSpan{{Style: plain, Len: 1}, {Style: plain, Len: 1}})
	b := Must("y", []StyledSpan{{Style: plain, Len: 1}})
	got := Concat(a, b)
	spans := got.Spans()
	if len(spans) != 3 {
		t.Fatalf("expected 3 spans (no merge across newline), got %d: %+v", len(spans), spans)
	}
}

func TestPopShrinksFinalSpan(t *testing.T) {
	s := Must("ab", []StyledSpan{{Style: Style{}, Len: 2}})
	r, ok := s.Pop()
	if !ok || r != 'b' {
		t.Fatalf("expected to pop 'b', got %q ok=%v", r, ok)
	}
	if s.Text() != "a" {
		t.Errorf("expected remaining text 'a', got %q", s.Text())
	}
	if len(s.Spans()) != 1 || s.Spans()[0].Len != 1 {
		t.Errorf("expected shrunk span of len 1, got %+v", s.Spans())
	}
}

func TestPopDropsEmptiedSpan(t *testing.T) {
	bold := Style{}.With(Bold)
	s := Must("ab", []StyledSpan{{Style: Style{}, Len: 1}, {Style: bold, Len: 1}})
	s.Pop()
	if len(s.Spans()) != 1 {
		t.Fatalf("expected final span dropped, got %+v", s.Spans())
	}
}

func TestSliceClipsSpans(t *testing.T) {
	bold := Style{}.With(Bold)
	s := Must("Hello, world!", []StyledSpan{
		{Style: Style{}, Len: 7},
		{Style: bold, Len: 5},
		{Style: Style{}, Len: 1},
	})
	got := s.Slice(7, 12)
	if got.Text() != "world" {
		t.Fatalf("expected 'world', got %q", got.Text())
	}
	spans := got.Spans()
	if len(spans) != 1 || !spans[0].Style.Equal(bold) || spans[0].Len != 5 {
		t.Errorf("unexpected spans: %+v", spans)
	}
}

func TestEqualIgnoresUncoalescedSplits(t *testing.T) {
	a := Must("ab", []StyledSpan{{Style: Style{}, Len: 1}, {Style: Style{}, Len: 1}})
	b := Must("ab", []StyledSpan{{Style: Style{}, Len: 2}})
	if !a.Equal(b) {
		t.Error("expected equal after coalescing")
	}
}
