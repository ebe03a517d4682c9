package termline

import (
	"fmt"
	"io"
	"strings"

	"github.com/tsnapkit/tsnap/style"
)

// SVGTextSink writes styled text as `<tspan>` runs for the pure-SVG
// template. Effects with a direct SVG presentation attribute (bold,
// italic, underline, strikethrough, fg color) are written as such;
// effects with no attribute equivalent (dim, blink, hidden, invert)
// are written as a `class` attribute instead, the same hook names
// HTMLSink uses, so a caller's AdditionalStyles CSS can target them
// (spec §4.7). Background fills render as separate `█`-lane `<text>`
// elements drawn by the caller, not by this sink.
type SVGTextSink struct {
	w       io.Writer
	palette *[16]style.RGB888
	open    bool
}

// NewSVGTextSink wraps w. palette, if non-nil, resolves indexed (0-15)
// foreground colors to RGB for the fill attribute; if nil, indexed
// colors fall back to a `var(--tsnap-N)` CSS custom-property reference.
// Neither built-in template defines those properties.
func NewSVGTextSink(w io.Writer, palette *[16]style.RGB888) *SVGTextSink {
	return &SVGTextSink{w: w, palette: palette}
}

func (s *SVGTextSink) SetStyle(st style.Style) error {
	if s.open {
		if _, err := io.WriteString(s.w, "</tspan>"); err != nil {
			return err
		}
	}
	var attrs []string
	if classes := svgClasses(st); classes != "" {
		attrs = append(attrs, fmt.Sprintf(`class="%s"`, classes))
	}
	if st.Has(style.Bold) {
		attrs = append(attrs, `font-weight="bold"`)
	}
	if st.Has(style.Italic) {
		attrs = append(attrs, `font-style="italic"`)
	}
	decorations := svgDecorations(st)
	if decorations != "" {
		attrs = append(attrs, fmt.Sprintf(`text-decoration="%s"`, decorations))
	}
	if st.Fg != nil {
		attrs = append(attrs, fmt.Sprintf(`fill="%s"`, s.fillOf(*st.Fg)))
	}
	s.open = true
	_, err := fmt.Fprintf(s.w, "<tspan%s>", prefixedJoin(attrs))
	return err
}

func (s *SVGTextSink) WriteText(text string) error {
	_, err := io.WriteString(s.w, EscapeHTML(text))
	return err
}

// Close emits the closing tag of the last open <tspan>, if any.
func (s *SVGTextSink) Close() error {
	if !s.open {
		return nil
	}
	s.open = false
	_, err := io.WriteString(s.w, "</tspan>")
	return err
}

func (s *SVGTextSink) fillOf(c style.Color) string {
	if c.Kind == style.ColorKindRGB {
		return fmt.Sprintf("#%02x%02x%02x", c.R, c.G, c.B)
	}
	if s.palette != nil {
		r, g, b := c.RGBValues(s.palette)
		return fmt.Sprintf("#%02x%02x%02x", r, g, b)
	}
	return fmt.Sprintf("var(--tsnap-%d)", c.Index)
}

// svgClasses returns the §4.7 class hook names for effects that have
// no direct SVG presentation attribute, mirroring HTMLSink's "dimmed",
// "blink", "hidden", and "inv" names so the two templates share one
// decode vocabulary in svgparse.
func svgClasses(st style.Style) string {
	var parts []string
	if st.Has(style.Dim) {
		parts = append(parts, "dimmed")
	}
	if st.Has(style.Blink) {
		parts = append(parts, "blink")
	}
	if st.Has(style.Hidden) {
		parts = append(parts, "hidden")
	}
	if st.Has(style.Invert) {
		parts = append(parts, "inv")
	}
	return strings.Join(parts, " ")
}

func svgDecorations(st style.Style) string {
	var parts []string
	if st.Has(style.Underline) {
		parts = append(parts, "underline")
	}
	if st.Has(style.Strikethrough) {
		parts = append(parts, "line-through")
	}
	return strings.Join(parts, " ")
}

func prefixedJoin(attrs []string) string {
	if len(attrs) == 0 {
		return ""
	}
	return " " + strings.Join(attrs, " ")
}
