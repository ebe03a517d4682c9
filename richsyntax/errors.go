package richsyntax

import "fmt"

// Range is a half-open character (rune) range into the original input,
// carried by every error so callers can point at the offending text.
type Range struct{ Start, End int }

// UnfinishedStyleError reports a "[[" open delimiter with no matching
// "]]" (style-spec) or no matching "[[/]]" (closing tag) before input
// end.
type UnfinishedStyleError struct{ Range Range }

func (e UnfinishedStyleError) Error() string {
	return fmt.Sprintf("richsyntax: unfinished style tag at %v", e.Range)
}

// BogusDelimiterError reports malformed delimiter nesting: a "[[" found
// before the previous one's "]]", or a stray "[[/]]" with no open tag.
type BogusDelimiterError struct{ Range Range }

func (e BogusDelimiterError) Error() string {
	return fmt.Sprintf("richsyntax: bogus delimiter at %v", e.Range)
}

// UnfinishedBackgroundError reports a trailing "on" token with no color
// token following it.
type UnfinishedBackgroundError struct{ Range Range }

func (e UnfinishedBackgroundError) Error() string {
	return fmt.Sprintf("richsyntax: \"on\" with no background color at %v", e.Range)
}

// UnsupportedStyleError reports a style-spec token that is neither an
// effect keyword, a named color, a hex color, nor a decimal index.
type UnsupportedStyleError struct {
	Token string
	Range Range
}

func (e UnsupportedStyleError) Error() string {
	return fmt.Sprintf("richsyntax: unsupported style token %q at %v", e.Token, e.Range)
}

// RedefinedBackgroundError reports two "on <color>" clauses in the same
// style-spec.
type RedefinedBackgroundError struct{ Range Range }

func (e RedefinedBackgroundError) Error() string {
	return fmt.Sprintf("richsyntax: background color redefined at %v", e.Range)
}

// InvalidHexColorError reports a "#..." token that isn't valid #rgb or
// #rrggbb hex.
type InvalidHexColorError struct{ Range Range }

func (e InvalidHexColorError) Error() string {
	return fmt.Sprintf("richsyntax: invalid hex color at %v", e.Range)
}

// InvalidIndexColorError reports a decimal color index outside 0-255.
type InvalidIndexColorError struct{ Range Range }

func (e InvalidIndexColorError) Error() string {
	return fmt.Sprintf("richsyntax: invalid color index at %v", e.Range)
}

// TextOverflowError and SpanOverflowError round out the error taxonomy
// shared with a fixed-capacity, stack-resident parser variant. This
// package exposes only the heap-backed runtime form, so
// neither error is ever produced here; they exist so callers pattern-
// matching on the full rich-syntax error set compile against one type
// set regardless of which variant produced it.
type TextOverflowError struct{ Range Range }

func (e TextOverflowError) Error() string {
	return fmt.Sprintf("richsyntax: text capacity exceeded at %v", e.Range)
}

type SpanOverflowError struct{ Range Range }

func (e SpanOverflowError) Error() string {
	return fmt.Sprintf("richsyntax: span capacity exceeded at %v", e.Range)
}
