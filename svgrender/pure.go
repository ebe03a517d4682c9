package svgrender

import (
	"fmt"
	"strings"
	"text/template"

	"github.com/tsnapkit/tsnap/style"
	"github.com/tsnapkit/tsnap/termline"
	"github.com/tsnapkit/tsnap/transcript"
)

// pureDoc is the data handed to the pure-SVG document template: like
// hybridDoc, the container markup is pre-composed Go code, and the
// template itself is "effectively a long string-interpolation program"
// (spec §9) over the outer SVG wrapper only.
type pureDoc struct {
	Width, Height    int
	AdditionalStyles string
	Body             string
	WindowFrame      string
}

var pureDocTemplate = template.Must(template.New("pure").Parse(`<svg xmlns="http://www.w3.org/2000/svg" viewBox="0 0 {{.Width}} {{.Height}}">
<!-- generated by tsnap -->
<style>{{.AdditionalStyles}}</style>
{{.WindowFrame}}
<g class="container">
{{.Body}}
</g>
</svg>
`))

// RenderPure implements the §4.7 pure-SVG (no foreignObject) template:
// each output line is a `<text class="line">` element positioned by its
// own x/y attributes and filled with `<tspan>` runs built with
// SVGTextSink, preceded by one background `█`-lane `<text>` run per
// bg-colored span. Lines are not wrapped in per-line
// `<g transform="translate(...)">` groups.
func RenderPure(data transcript.Data, opts Options) (string, error) {
	advance := opts.AdvanceWidth
	if advance <= 0 {
		advance = 8
	}
	lineHeight := opts.LineHeight
	if lineHeight <= 0 {
		lineHeight = 18
	}

	var body strings.Builder
	y := 0.0
	lineNo := 0
	for _, it := range data.Interactions {
		y = renderPureInput(&body, it.Input, y, lineHeight, advance, opts, &lineNo)
		y = renderPureOutput(&body, it.Lines, y, lineHeight, advance, opts, &lineNo)
	}

	width := opts.Width
	if width == 0 {
		width = 720
	}
	height := int(y) + int(lineHeight)
	if opts.WindowFrame != WindowFrameNone {
		height += windowFrameHeight
	}

	doc := pureDoc{
		Width:            width,
		Height:           height,
		AdditionalStyles: opts.AdditionalStyles,
		Body:             body.String(),
	}
	if opts.WindowFrame != WindowFrameNone {
		doc.WindowFrame = renderWindowFrame(opts.WindowFrame, width)
	}

	var out strings.Builder
	if err := pureDocTemplate.Execute(&out, doc); err != nil {
		return "", fmt.Errorf("svgrender: execute pure template: %w", err)
	}
	return out.String(), nil
}

func renderPureInput(b *strings.Builder, in transcript.InputData, y, lineHeight, advance float64, opts Options, lineNo *int) float64 {
	classes := "input"
	if in.Hidden {
		classes += " input-hidden"
	}
	if in.Failed {
		classes += " input-failure"
	}
	fmt.Fprintf(b, `<g class="%s"`, classes)
	if in.ExitStatus != nil {
		fmt.Fprintf(b, ` data-exit-status="%d"`, *in.ExitStatus)
	}
	b.WriteString(">")
	// A hidden input still carries its text and prompt so the snapshot
	// round-trips; input-hidden is purely a CSS hook (spec §3).
	fmt.Fprintf(b, `<text class="line" x="0" y="%.1f">`, y+lineHeight)
	if in.Prompt != "" {
		fmt.Fprintf(b, `<tspan class="prompt">%s</tspan> `, termline.EscapeHTML(in.Prompt))
	}
	b.WriteString(termline.EscapeHTML(in.Text))
	b.WriteString("</text>")
	y += lineHeight
	*lineNo++
	b.WriteString("</g>\n")
	return y
}

func renderPureOutput(b *strings.Builder, lines []termline.Line, y, lineHeight, advance float64, opts Options, lineNo *int) float64 {
	if len(lines) == 0 {
		return y
	}
	b.WriteString(`<g class="output">` + "\n")
	prevBreak := termline.BreakNewline
	for _, line := range lines {
		renderBackgroundLane(b, line.Content, y+lineHeight, advance)

		fmt.Fprintf(b, `<text class="line %s" x="0" y="%.1f" textLength="%.1f">`, breakClass(line.Break), y+lineHeight, advance*float64(termline.StringWidth(line.Content.Text())))
		var palette *[16]style.RGB888
		if opts.Palette.Name != "" {
			palette = &opts.Palette.Colors
		}
		sink := termline.NewSVGTextSink(b, palette)
		_ = termline.Emit(sink, line.Content)
		_ = sink.Close()
		b.WriteString("</text>\n")

		if opts.LineNumbers {
			renderLineNumber(b, y+lineHeight, *lineNo, prevBreak, opts.LineNumberMark)
		}
		prevBreak = line.Break
		y += lineHeight
		*lineNo++
	}
	b.WriteString("</g>\n")
	return y
}

// renderBackgroundLane draws the z-ordered '█' lane under a text run,
// one run per bg-colored span, per spec §4.7.
func renderBackgroundLane(b *strings.Builder, s style.StyledString, y, advance float64) {
	x := 0.0
	text := s.Text()
	offset := 0
	for _, span := range s.Spans() {
		run := text[offset : offset+span.Len]
		offset += span.Len
		width := termline.StringWidth(run)
		if span.Style.Bg != nil {
			fmt.Fprintf(b, `<text class="bg-lane" x="%.1f" y="%.1f" fill="%s">%s</text>`,
				x, y, fillColor(*span.Style.Bg), strings.Repeat("█", width))
		}
		x += advance * float64(width)
	}
}

// renderLineNumber writes the gutter number for a line; brk is how the
// preceding line ended, so a line that follows a hard break is the
// continuation line that takes mark.
func renderLineNumber(b *strings.Builder, y float64, n int, brk termline.BreakKind, mark transcript.ContinuedLineMark) {
	text := fmt.Sprintf("%d", n+1)
	if brk == termline.BreakHard && !mark.Inherit {
		text = mark.Text
	}
	fmt.Fprintf(b, `<text class="line-number" x="-32" y="%.1f">%s</text>`, y, termline.EscapeHTML(text))
}

// breakClass marks how a pure-SVG line ended, so the reverse parser
// knows whether to insert a newline before the next line's text (spec
// §4.8 recognizes equivalent information from the hybrid template's
// literal "\n" vs hard-br marker; the pure template carries no text
// nodes between sibling <text> elements, so it needs an explicit class
// instead).
func breakClass(brk termline.BreakKind) string {
	switch brk {
	case termline.BreakHard:
		return "brk-hard"
	case termline.BreakNewline:
		return "brk-nl"
	default:
		return "brk-eof"
	}
}

func fillColor(c style.Color) string {
	if c.Kind == style.ColorKindRGB {
		return fmt.Sprintf("#%02x%02x%02x", c.R, c.G, c.B)
	}
	return fmt.Sprintf("var(--tsnap-%d)", c.Index)
}
