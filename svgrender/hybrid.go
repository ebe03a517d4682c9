package svgrender

import (
	"fmt"
	"html/template"
	"strings"

	"github.com/tsnapkit/tsnap/termline"
	"github.com/tsnapkit/tsnap/transcript"
)

// hybridDoc is the template.HTML payload handed to the hybrid
// document template: container-level markup, pre-escaped and composed
// by RenderHybrid, so the outer template only needs to splice it
// in verbatim (spec §9: "an opaque substitution engine parameterized
// by the §4.5 data structure").
type hybridDoc struct {
	Width, Height    int
	ForeignY         int
	AdditionalStyles template.CSS
	Body             template.HTML
	WindowFrame      template.HTML
}

var hybridDocTemplate = template.Must(template.New("hybrid").Parse(`<svg xmlns="http://www.w3.org/2000/svg" viewBox="0 0 {{.Width}} {{.Height}}">
<!-- generated by tsnap -->
<style>{{.AdditionalStyles}}</style>
{{.WindowFrame}}
<foreignObject x="0" y="{{.ForeignY}}" width="{{.Width}}" height="{{.Height}}">
<div xmlns="http://www.w3.org/1999/xhtml" class="container">
{{.Body}}
</div>
</foreignObject>
</svg>
`))

// RenderHybrid implements the §4.6 hybrid (SVG + HTML-in-foreignObject)
// template.
func RenderHybrid(data transcript.Data, opts Options) (string, error) {
	var body strings.Builder
	for _, it := range data.Interactions {
		renderHybridInput(&body, it.Input)
		if len(it.Lines) > 0 {
			renderHybridOutput(&body, it.Lines)
		}
	}

	width := opts.Width
	if width == 0 {
		width = 720
	}
	height := len(data.Interactions)*24 + 40
	if opts.WindowFrame != WindowFrameNone {
		height += windowFrameHeight
	}

	doc := hybridDoc{
		Width:            width,
		Height:           height,
		AdditionalStyles: template.CSS(opts.AdditionalStyles),
		Body:             template.HTML(body.String()),
	}
	if opts.WindowFrame != WindowFrameNone {
		doc.WindowFrame = template.HTML(renderWindowFrame(opts.WindowFrame, width))
		doc.ForeignY = windowFrameHeight
	}

	var out strings.Builder
	if err := hybridDocTemplate.Execute(&out, doc); err != nil {
		return "", fmt.Errorf("svgrender: execute hybrid template: %w", err)
	}
	return out.String(), nil
}

func renderHybridInput(b *strings.Builder, in transcript.InputData) {
	classes := "input"
	if in.Hidden {
		classes += " input-hidden"
	}
	if in.Failed {
		classes += " input-failure"
	}
	fmt.Fprintf(b, `<div class="%s"`, classes)
	if in.ExitStatus != nil {
		fmt.Fprintf(b, ` data-exit-status="%d"`, *in.ExitStatus)
	}
	b.WriteString(">")
	// A hidden input still carries its text and prompt so the snapshot
	// round-trips; input-hidden is only a class hook. The template emits
	// no style rule for it, so a hidden input renders like any other
	// unless AdditionalStyles targets the class.
	if in.Prompt != "" {
		fmt.Fprintf(b, `<span class="prompt">%s</span> `, termline.EscapeHTML(in.Prompt))
	}
	b.WriteString(termline.EscapeHTML(in.Text))
	b.WriteString("</div>\n")
}

func renderHybridOutput(b *strings.Builder, lines []termline.Line) {
	b.WriteString(`<div class="output">`)
	for i, line := range lines {
		sink := termline.NewHTMLSink(b)
		if err := termline.Emit(sink, line.Content); err != nil {
			// Emit only fails if the sink itself errors; strings.Builder
			// never does, so this is unreachable in practice.
			continue
		}
		_ = sink.Close()
		if i < len(lines)-1 {
			if line.Break == termline.BreakHard {
				b.WriteString(termline.HardBreakMarker)
			}
			b.WriteString("\n")
		}
	}
	b.WriteString("</div>\n")
}

func renderWindowFrame(wf WindowFrame, width int) string {
	colors := []string{"#ff5f56", "#ffbd2e", "#27c93f"}
	if wf == WindowFrameDisabled {
		colors = []string{"#999", "#999", "#999"}
	}
	var b strings.Builder
	fmt.Fprintf(&b, `<g class="window-frame"><rect width="%d" height="%d" fill="#3a3a3a"/>`, width, windowFrameHeight)
	for i, c := range colors {
		cx := 16 + i*20
		fmt.Fprintf(&b, `<circle cx="%d" cy="%d" r="6" fill="%s"/>`, cx, windowFrameHeight/2, c)
	}
	b.WriteString("</g>")
	return b.String()
}
