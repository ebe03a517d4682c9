// Package styletest holds fixtures shared across this module's test
// suites, grounded on the original implementation's "rainbow" e2e
// fixture (a transcript exercising every color against every effect).
package styletest

import "github.com/tsnapkit/tsnap/style"

// Rainbow builds one StyledString spanning all 16 named colors, each
// rendered with every one of the eight effects in turn, separated by
// spaces. It gives the SVG round-trip and reverse-parser test suites a
// single, comprehensive fixture instead of many small bespoke strings.
func Rainbow() style.StyledString {
	var b style.Builder
	effects := []style.Effect{
		style.Bold, style.Dim, style.Italic, style.Underline,
		style.Strikethrough, style.Invert, style.Blink, style.Hidden,
	}
	for idx := uint8(0); idx < 16; idx++ {
		for _, e := range effects {
			st := style.Style{}.WithFg(style.Indexed(idx)).With(e)
			b.PushStyled(st, "#")
		}
		b.PushStyled(style.Style{}, " ")
	}
	return b.Build()
}
