package style

// Effect is one of the eight independent boolean style flags.
type Effect uint8

const (
	Bold Effect = iota
	Dim
	Italic
	Underline
	Strikethrough
	Invert
	Blink
	Hidden
	effectCount
)

// Style is a set of effect flags plus optional foreground/background
// colors. The zero value is "plain": no effects, no colors.
type Style struct {
	effects uint8
	Fg      *Color
	Bg      *Color
}

// Plain is the style with every effect cleared and no color set.
var Plain = Style{}

// IsPlain reports whether all flags are false and both colors are absent.
func (s Style) IsPlain() bool {
	return s.effects == 0 && s.Fg == nil && s.Bg == nil
}

// Has reports whether the given effect is set.
func (s Style) Has(e Effect) bool {
	return s.effects&(1<<uint(e)) != 0
}

// With returns a copy of s with e set.
func (s Style) With(e Effect) Style {
	s.effects |= 1 << uint(e)
	return s
}

// Without returns a copy of s with e cleared.
func (s Style) Without(e Effect) Style {
	s.effects &^= 1 << uint(e)
	return s
}

// WithFg returns a copy of s with the foreground color set.
func (s Style) WithFg(c Color) Style {
	s.Fg = &c
	return s
}

// WithBg returns a copy of s with the background color set.
func (s Style) WithBg(c Color) Style {
	s.Bg = &c
	return s
}

// WithoutFg returns a copy of s with no foreground color.
func (s Style) WithoutFg() Style {
	s.Fg = nil
	return s
}

// WithoutBg returns a copy of s with no background color.
func (s Style) WithoutBg() Style {
	s.Bg = nil
	return s
}

// Equal reports structural equality: same flags, same colors (including
// both-nil and both-set-to-equal-values).
func (s Style) Equal(other Style) bool {
	if s.effects != other.effects {
		return false
	}
	return colorPtrEqual(s.Fg, other.Fg) && colorPtrEqual(s.Bg, other.Bg)
}

func colorPtrEqual(a, b *Color) bool {
	if a == nil || b == nil {
		return a == b
	}
	return *a == *b
}

// AffectsWhitespace reports whether this style would be visually
// distinguishable on whitespace-only text: an underline, strikethrough,
// or invert effect, or an explicit background color. Used by the diff
// operator (spec §4.3) to suppress whitespace-only style diffs that
// wouldn't actually render differently.
func (s Style) AffectsWhitespace() bool {
	return s.Has(Underline) || s.Has(Strikethrough) || s.Has(Invert) || s.Bg != nil
}
