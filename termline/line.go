// Package termline consumes a stream of (style, text) writes — as
// produced by the ANSI or rich-syntax parsers — and turns it into a
// list of styled lines, optionally hard-wrapping at a configured
// column width the way a real terminal would.
package termline

import (
	"github.com/unilibs/uniwidth"

	"github.com/tsnapkit/tsnap/style"
)

// BreakKind distinguishes why a Line ended.
type BreakKind int

const (
	// BreakNewline means the input contained an actual '\n'.
	BreakNewline BreakKind = iota
	// BreakHard means the wrapper inserted the break because the line
	// would otherwise exceed the configured width. Hard breaks must
	// round-trip through the SVG reverse-parser as invisible markers
	// (spec §4.4, §4.8).
	BreakHard
	// BreakEOF means the line ended because the input stream ended,
	// with no explicit newline.
	BreakEOF
)

// Line is one physical output line: its styled content and how it
// ended.
type Line struct {
	Content style.StyledString
	Break   BreakKind
}

// Wrapper accumulates styled writes into Lines, applying a hard wrap at
// Width display columns (0 disables wrapping). Width is computed
// per-character via Unicode display width; wide characters (CJK,
// emoji) count as two columns, zero-width combining marks count as
// zero. Breaks only ever occur between characters.
type Wrapper struct {
	Width int

	lines []Line
	cur   style.Builder
	col   int
}

// NewWrapper constructs a Wrapper. width <= 0 means unlimited.
func NewWrapper(width int) *Wrapper {
	return &Wrapper{Width: width}
}

// WriteStyled appends text under st, splitting it into Lines as needed.
func (w *Wrapper) WriteStyled(st style.Style, text string) {
	for _, r := range text {
		if r == '\n' {
			w.closeLine(BreakNewline)
			continue
		}
		cw := runeWidth(r)
		if w.Width > 0 && w.col > 0 && w.col+cw > w.Width {
			w.closeLine(BreakHard)
		}
		w.cur.PushStyled(st, string(r))
		w.col += cw
	}
}

func (w *Wrapper) closeLine(bk BreakKind) {
	w.lines = append(w.lines, Line{Content: w.cur.Build(), Break: bk})
	w.cur = style.Builder{}
	w.col = 0
}

// Lines returns the accumulated lines, including any not-yet-newline-
// terminated trailing content as a final BreakEOF line. The Wrapper
// remains usable afterwards.
func (w *Wrapper) Lines() []Line {
	out := append([]Line(nil), w.lines...)
	if w.cur.Len() > 0 {
		out = append(out, Line{Content: w.cur.Build(), Break: BreakEOF})
	}
	return out
}

func runeWidth(r rune) int {
	return uniwidth.RuneWidth(r)
}

// StringWidth returns the total display width of s, honoring wide and
// zero-width runes the same way the wrapper does.
func StringWidth(s string) int {
	return uniwidth.StringWidth(s)
}
