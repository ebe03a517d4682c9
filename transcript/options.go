package transcript

import "fmt"

// ContinuedLineMark controls how wrapped (hard-broken) continuation
// lines are numbered when line numbering is enabled (spec §4.7).
type ContinuedLineMark struct {
	// Inherit, when true, repeats ordinary numbering on continuation
	// lines; Text is ignored in that case. Otherwise the continuation
	// line is stamped with Text (which may be empty, leaving it blank).
	Inherit bool
	Text    string
}

// ScrollOptions validates the §4.5 scroll-animation parameters.
type ScrollOptions struct {
	MaxHeight          float64
	PixelsPerScroll    float64
	Interval           float64
	ElisionThreshold   float64
	MinScrollbarHeight float64
}

// BlinkOptions validates the §4.5 blink-animation parameters.
type BlinkOptions struct {
	Interval float64
	Opacity  float64
}

// Options holds the template options validated by the assembler (spec
// §4.5). Render-only concerns that §4.5 never validates (palette
// choice, window frame, font family, …) live one layer up in
// svgrender.Options, which embeds this type.
type Options struct {
	DimOpacity     float64
	LineHeight     float64
	AdvanceWidth   float64
	Scroll         ScrollOptions
	Blink          BlinkOptions
	WrapWidth      int // 0 disables hard wrapping
	ElisionEnabled bool
	LineNumberMark ContinuedLineMark
}

// ValidationError reports which Options field failed validation and
// why.
type ValidationError struct {
	Field  string
	Reason string
}

func (e ValidationError) Error() string {
	return fmt.Sprintf("transcript: invalid option %s: %s", e.Field, e.Reason)
}

// Validate checks every rule spec §4.5 names, returning the first
// violation found.
func (o Options) Validate() error {
	if o.DimOpacity <= 0 || o.DimOpacity >= 1 {
		return ValidationError{"dim_opacity", "must be in (0,1)"}
	}
	if o.LineHeight <= 0 {
		return ValidationError{"line_height", "must be positive"}
	}
	if o.AdvanceWidth <= 0 {
		return ValidationError{"advance_width", "must be positive"}
	}
	if o.Scroll.Interval <= 0 {
		return ValidationError{"scroll.interval", "must be positive"}
	}
	if o.Scroll.ElisionThreshold < 0 || o.Scroll.ElisionThreshold >= 1 {
		return ValidationError{"scroll.elision_threshold", "must be in [0,1)"}
	}
	if o.Scroll.MinScrollbarHeight >= o.Scroll.MaxHeight {
		return ValidationError{"scroll.min_scrollbar_height", "must be less than scroll.max_height"}
	}
	if o.Blink.Interval <= 0 {
		return ValidationError{"blink.interval", "must be positive"}
	}
	if o.Blink.Opacity < 0 || o.Blink.Opacity > 1 {
		return ValidationError{"blink.opacity", "must be in [0,1]"}
	}
	return nil
}
