package style

import "fmt"

// DiffSpan is one byte range [Start,End) over which two StyledStrings of
// equal length disagree on style.
type DiffSpan struct {
	Start, End     int
	StyleA, StyleB Style
}

// StyleDiff walks a and b in lock-step and reports the ranges where
// style differs. a and b must have equal byte length (spec §4.3); an
// error is returned otherwise rather than padding or truncating.
//
// Whitespace-only ranges are suppressed unless at least one side's style
// would visibly affect whitespace (underline, strikethrough, invert, or
// a background color); leading/trailing newline and carriage-return
// bytes are always trimmed off a reported range.
func StyleDiff(a, b StyledString) ([]DiffSpan, error) {
	if a.Len() != b.Len() {
		return nil, fmt.Errorf("style: StyleDiff requires equal length, got %d and %d", a.Len(), b.Len())
	}
	n := a.Len()
	var raw []DiffSpan
	i := 0
	for i < n {
		sa, sb := a.StyleAt(i), b.StyleAt(i)
		if sa.Equal(sb) {
			i++
			continue
		}
		j := i + 1
		for j < n && a.StyleAt(j).Equal(sa) && b.StyleAt(j).Equal(sb) {
			j++
		}
		raw = append(raw, DiffSpan{Start: i, End: j, StyleA: sa, StyleB: sb})
		i = j
	}

	out := raw[:0]
	for _, d := range raw {
		start, end := trimNewlines(a.text, d.Start, d.End)
		if start >= end {
			continue
		}
		d.Start, d.End = start, end
		if isWhitespaceOnly(a.text[start:end]) && !d.StyleA.AffectsWhitespace() && !d.StyleB.AffectsWhitespace() {
			continue
		}
		out = append(out, d)
	}
	return out, nil
}

func trimNewlines(text string, start, end int) (int, int) {
	for start < end && (text[start] == '\n' || text[start] == '\r') {
		start++
	}
	for end > start && (text[end-1] == '\n' || text[end-1] == '\r') {
		end--
	}
	return start, end
}

func isWhitespaceOnly(s string) bool {
	for i := 0; i < len(s); i++ {
		switch s[i] {
		case ' ', '\t', '\n', '\r':
		default:
			return false
		}
	}
	return true
}
