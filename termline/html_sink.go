package termline

import (
	"fmt"
	"io"
	"strings"

	"github.com/tsnapkit/tsnap/style"
)

// HTMLSink writes styled text as a sequence of `<span>` elements for
// the hybrid (foreignObject) SVG template, using the exact class
// vocabulary of spec §4.6: fg<N>/bg<N> for indexed colors 0-15, inv
// plus fg-none/bg-none for an invert with no explicit color, inline
// style for RGB colors, and one class per boolean effect. It escapes
// `<`, `>`, and `&` on the fly. Display-width accounting for wrapping
// happens upstream in Wrapper, over the pre-escape runes, so escaping
// here never perturbs layout decisions already made.
type HTMLSink struct {
	w        io.Writer
	openTags int // 0 (plain text), 1 (one span), or 2 (blink's nested span)
}

// NewHTMLSink wraps w.
func NewHTMLSink(w io.Writer) *HTMLSink {
	return &HTMLSink{w: w}
}

func (h *HTMLSink) SetStyle(st style.Style) error {
	if err := h.closeOpen(); err != nil {
		return err
	}
	if st.IsPlain() {
		// Plain text is written bare, outside any <span>.
		return nil
	}
	classes, inline := htmlSpanMarkup(st)
	var b strings.Builder
	b.WriteString("<span")
	if len(classes) > 0 {
		fmt.Fprintf(&b, ` class="%s"`, strings.Join(classes, " "))
	}
	if inline != "" {
		fmt.Fprintf(&b, ` style="%s"`, inline)
	}
	b.WriteString(">")
	h.openTags = 1
	if st.Has(style.Blink) {
		// Blink wraps the payload in a nested <span> so CSS animation can
		// target the inner element without disturbing layout (spec §4.6).
		b.WriteString("<span>")
		h.openTags = 2
	}
	_, err := io.WriteString(h.w, b.String())
	return err
}

func (h *HTMLSink) WriteText(text string) error {
	_, err := io.WriteString(h.w, EscapeHTML(text))
	return err
}

func (h *HTMLSink) closeOpen() error {
	for h.openTags > 0 {
		if _, err := io.WriteString(h.w, "</span>"); err != nil {
			return err
		}
		h.openTags--
	}
	return nil
}

// Close emits the closing tag(s) of the last open span, if any.
func (h *HTMLSink) Close() error {
	return h.closeOpen()
}

// HardBreakMarker is written between wrapped sub-lines of a single
// logical line, immediately followed by a literal '\n'. The SVG
// reverse-parser (svgparse) recognizes this exact tag and gobbles the
// following newline so a hard wrap round-trips as invisible (spec
// §4.4, §4.8).
const HardBreakMarker = `<span class="hard-br"></span>`

// htmlSpanMarkup returns the §4.6 class list and inline style for one
// styled run.
func htmlSpanMarkup(st style.Style) (classes []string, inlineStyle string) {
	if st.Has(style.Bold) {
		classes = append(classes, "bold")
	}
	if st.Has(style.Dim) {
		classes = append(classes, "dimmed")
	}
	if st.Has(style.Italic) {
		classes = append(classes, "italic")
	}
	if st.Has(style.Underline) {
		classes = append(classes, "underline")
	}
	if st.Has(style.Strikethrough) {
		classes = append(classes, "strike")
	}
	if st.Has(style.Blink) {
		classes = append(classes, "blink")
	}
	if st.Has(style.Hidden) {
		classes = append(classes, "hidden")
	}

	var decls []string
	if st.Has(style.Invert) {
		classes = append(classes, "inv")
		if st.Fg == nil {
			classes = append(classes, "fg-none")
		}
		if st.Bg == nil {
			classes = append(classes, "bg-none")
		}
	}
	if st.Fg != nil {
		if st.Fg.Kind == style.ColorKindIndexed {
			classes = append(classes, fmt.Sprintf("fg%d", st.Fg.Index))
		} else {
			decls = append(decls, fmt.Sprintf("color: #%02x%02x%02x;", st.Fg.R, st.Fg.G, st.Fg.B))
		}
	}
	if st.Bg != nil {
		if st.Bg.Kind == style.ColorKindIndexed {
			classes = append(classes, fmt.Sprintf("bg%d", st.Bg.Index))
		} else {
			decls = append(decls, fmt.Sprintf("background: #%02x%02x%02x;", st.Bg.R, st.Bg.G, st.Bg.B))
		}
	}
	return classes, strings.Join(decls, " ")
}

// EscapeHTML escapes the three bytes that are meaningful inside SVG/HTML
// text content. It deliberately does not escape quotes: this is never
// used inside an attribute value.
func EscapeHTML(s string) string {
	var b strings.Builder
	b.Grow(len(s))
	for _, r := range s {
		switch r {
		case '&':
			b.WriteString("&amp;")
		case '<':
			b.WriteString("&lt;")
		case '>':
			b.WriteString("&gt;")
		default:
			b.WriteRune(r)
		}
	}
	return b.String()
}
