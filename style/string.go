package style

import (
	"fmt"
	"strings"
	"unicode/utf8"
)

// StyledString pairs UTF-8 text (without the ESC byte 0x1B) with a
// sequence of StyledSpans whose lengths sum to len(text); every span
// boundary falls on a UTF-8 char boundary. The zero value is the empty
// string with no spans, which satisfies the invariants trivially.
type StyledString struct {
	text  string
	spans []StyledSpan
}

// New validates and constructs a StyledString from raw parts. It returns
// an error (rather than panicking) so callers building from untrusted
// input — snapshot fixtures, reverse-parsed SVGs — can react instead of
// crash.
func New(text string, spans []StyledSpan) (StyledString, error) {
	if !utf8.ValidString(text) {
		return StyledString{}, fmt.Errorf("style: text is not valid UTF-8")
	}
	if strings.IndexByte(text, 0x1B) >= 0 {
		return StyledString{}, fmt.Errorf("style: text must not contain ESC (0x1B)")
	}
	sum := 0
	pos := 0
	for i, sp := range spans {
		if sp.Len < 1 {
			return StyledString{}, fmt.Errorf("style: span %d has non-positive length %d", i, sp.Len)
		}
		end := pos + sp.Len
		if end > len(text) {
			return StyledString{}, fmt.Errorf("style: span %d overruns text (end %d > len %d)", i, end, len(text))
		}
		if !utf8.RuneStart(text[pos]) {
			return StyledString{}, fmt.Errorf("style: span %d starts mid-rune at byte %d", i, pos)
		}
		if end < len(text) && !utf8.RuneStart(text[end]) {
			return StyledString{}, fmt.Errorf("style: span %d ends mid-rune at byte %d", i, end)
		}
		if body := text[pos:end]; strings.IndexByte(body, '\n') >= 0 && body != "\n" {
			return StyledString{}, fmt.Errorf("style: span %d crosses a newline", i)
		}
		sum += sp.Len
		pos = end
	}
	if sum != len(text) {
		return StyledString{}, fmt.Errorf("style: span lengths sum to %d, want %d", sum, len(text))
	}
	return StyledString{text: text, spans: append([]StyledSpan(nil), spans...)}, nil
}

// Must is like New but panics on an invariant violation. Use for
// constants and call sites where the shape is already known-good.
func Must(text string, spans []StyledSpan) StyledString {
	s, err := New(text, spans)
	if err != nil {
		panic(err)
	}
	return s
}

// PlainString wraps text in a single run-per-line plain style, splitting
// spans at '\n' boundaries per the no-span-crosses-newline invariant.
func PlainString(text string) StyledString {
	var b Builder
	b.PushStyled(Style{}, text)
	return b.Build()
}

// Empty is the zero-length StyledString.
var Empty = StyledString{}

// Text returns the underlying text.
func (s StyledString) Text() string { return s.text }

// Len returns the byte length of the text.
func (s StyledString) Len() int { return len(s.text) }

// IsEmpty reports whether the string has zero length.
func (s StyledString) IsEmpty() bool { return len(s.text) == 0 }

// Spans returns a copy of the span sequence; callers may not mutate the
// original through it.
func (s StyledString) Spans() []StyledSpan {
	return append([]StyledSpan(nil), s.spans...)
}

// StyleAt returns the style covering byte offset i. Panics if i is out
// of range.
func (s StyledString) StyleAt(i int) Style {
	if i < 0 || i >= len(s.text) {
		panic(fmt.Sprintf("style: offset %d out of range [0,%d)", i, len(s.text)))
	}
	pos := 0
	for _, sp := range s.spans {
		if i < pos+sp.Len {
			return sp.Style
		}
		pos += sp.Len
	}
	panic("style: spans do not cover text")
}

// Equal reports whether two StyledStrings have identical text and,
// after coalescing, identical spans.
func (s StyledString) Equal(other StyledString) bool {
	if s.text != other.text {
		return false
	}
	a, b := coalesce(s.spans), coalesce(other.spans)
	if len(a) != len(b) {
		return false
	}
	for i := range a {
		if a[i].Len != b[i].Len || !a[i].Style.Equal(b[i].Style) {
			return false
		}
	}
	return true
}

func coalesce(spans []StyledSpan) []StyledSpan {
	out := make([]StyledSpan, 0, len(spans))
	for _, sp := range spans {
		if n := len(out); n > 0 && out[n-1].Style.Equal(sp.Style) {
			out[n-1].Len += sp.Len
			continue
		}
		out = append(out, sp)
	}
	return out
}

// Slice returns the sub-StyledString covering byte range [start,end),
// clipping spans at the boundaries; a boundary that falls inside a span
// splits it, a boundary on a span edge reuses it. Panics if the range is
// invalid or either boundary is not on a UTF-8 char boundary.
func (s StyledString) Slice(start, end int) StyledString {
	if start < 0 || end > len(s.text) || start > end {
		panic(fmt.Sprintf("style: slice [%d:%d) out of range [0:%d]", start, end, len(s.text)))
	}
	if start < len(s.text) && !utf8.RuneStart(s.text[start]) {
		panic(fmt.Sprintf("style: slice start %d is not a char boundary", start))
	}
	if end < len(s.text) && !utf8.RuneStart(s.text[end]) {
		panic(fmt.Sprintf("style: slice end %d is not a char boundary", end))
	}
	text := s.text[start:end]
	var spans []StyledSpan
	pos := 0
	for _, sp := range s.spans {
		spanStart, spanEnd := pos, pos+sp.Len
		pos = spanEnd
		lo, hi := max(spanStart, start), min(spanEnd, end)
		if lo < hi {
			spans = append(spans, StyledSpan{Style: sp.Style, Len: hi - lo})
		}
		if pos >= end {
			break
		}
	}
	return StyledString{text: text, spans: spans}
}

// SplitAt splits the string into [0,at) and [at,Len()).
func (s StyledString) SplitAt(at int) (StyledString, StyledString) {
	return s.Slice(0, at), s.Slice(at, len(s.text))
}

// Get returns the rune and style at byte offset i, and its byte width,
// or ok=false if i is out of range.
func (s StyledString) Get(i int) (r rune, width int, st Style, ok bool) {
	if i < 0 || i >= len(s.text) {
		return 0, 0, Style{}, false
	}
	r, width = utf8.DecodeRuneInString(s.text[i:])
	return r, width, s.StyleAt(i), true
}

// Lines iterates the maximal '\n'-free sub-StyledStrings, in order. Each
// retains exactly the spans that fall within it; the separating '\n'
// bytes themselves are dropped.
func (s StyledString) Lines() []StyledString {
	var lines []StyledString
	start := 0
	for i := 0; i < len(s.text); i++ {
		if s.text[i] == '\n' {
			lines = append(lines, s.Slice(start, i))
			start = i + 1
		}
	}
	if start <= len(s.text) {
		lines = append(lines, s.Slice(start, len(s.text)))
	}
	return lines
}

// Concat appends b after a, coalescing the joint boundary into one span
// when both sides share an equal style and no newline sits on either
// side of the boundary (which would otherwise make the merged span
// cross a '\n').
func Concat(a, b StyledString) StyledString {
	text := a.text + b.text
	spans := append([]StyledSpan(nil), a.spans...)
	if len(spans) > 0 && len(b.spans) > 0 {
		last := spans[len(spans)-1]
		lastText := a.text[len(a.text)-last.Len:]
		if last.Style.Equal(b.spans[0].Style) && !strings.HasSuffix(lastText, "\n") && !strings.HasPrefix(b.text, "\n") {
			spans[len(spans)-1].Len += b.spans[0].Len
			spans = append(spans, b.spans[1:]...)
			return StyledString{text: text, spans: spans}
		}
	}
	spans = append(spans, b.spans...)
	return StyledString{text: text, spans: spans}
}

// PushStr appends other to s in place, applying the same coalescing rule
// as Concat.
func (s *StyledString) PushStr(other StyledString) {
	*s = Concat(*s, other)
}

// Pop removes and returns the final rune, shrinking (and, if it reaches
// zero length, dropping) the final span. ok is false on an empty string.
func (s *StyledString) Pop() (r rune, ok bool) {
	if len(s.text) == 0 {
		return 0, false
	}
	r, size := utf8.DecodeLastRuneInString(s.text)
	s.text = s.text[:len(s.text)-size]
	n := len(s.spans)
	s.spans[n-1].Len -= size
	if s.spans[n-1].Len == 0 {
		s.spans = s.spans[:n-1]
	}
	return r, true
}
