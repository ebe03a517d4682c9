// Package svgrender implements the two built-in renderers named in
// spec §4.6-4.7 (hybrid SVG+HTML, and pure SVG), plus the font embedder
// capability from §9.
package svgrender

import "github.com/tsnapkit/tsnap/transcript"

// Options is the full set of render options: transcript.Options (the
// §4.5-validated subset) plus the render-only fields §4.5 never
// validates (palette choice, window frame, line numbers, font family,
// pure-vs-hybrid mode, and the free-form additional_styles passthrough
// from SPEC_FULL §D.4).
type Options struct {
	transcript.Options

	Palette          Palette
	WindowFrame      WindowFrame
	LineNumbers      bool
	PureSVG          bool
	FontFamily       string
	AdditionalStyles string
	Width            int // viewport width in pixels; 0 picks a default
	Embedder         transcript.FontEmbedder
}

// DefaultOptions returns render options that satisfy transcript.Options
// validation and pick sensible render defaults.
func DefaultOptions() Options {
	return Options{
		Options: transcript.Options{
			DimOpacity:   0.6,
			LineHeight:   1.4,
			AdvanceWidth: 8,
			Scroll: transcript.ScrollOptions{
				MaxHeight:          600,
				PixelsPerScroll:    100,
				Interval:           2,
				ElisionThreshold:   0.1,
				MinScrollbarHeight: 20,
			},
			Blink: transcript.BlinkOptions{Interval: 1, Opacity: 0.4},
		},
		Palette: PaletteGjm8,
		Width:   720,
	}
}
