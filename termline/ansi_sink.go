package termline

import (
	"fmt"
	"io"
	"strings"

	"github.com/tsnapkit/tsnap/style"
)

// ANSISink re-emits styled text as raw ANSI/SGR escape sequences,
// suitable for printing back to a real terminal (the `print` CLI
// subcommand's use of this package). It only ever emits a full SGR
// reset followed by the codes for the new style, which is simpler and
// just as correct as tracking a minimal diff.
type ANSISink struct {
	w   io.Writer
	cur style.Style
	set bool
}

// NewANSISink wraps w.
func NewANSISink(w io.Writer) *ANSISink {
	return &ANSISink{w: w}
}

func (a *ANSISink) SetStyle(st style.Style) error {
	if a.set && a.cur.Equal(st) {
		return nil
	}
	a.cur = st
	a.set = true
	codes := sgrCodes(st)
	if len(codes) == 0 {
		_, err := io.WriteString(a.w, "\x1b[0m")
		return err
	}
	_, err := fmt.Fprintf(a.w, "\x1b[0;%sm", strings.Join(codes, ";"))
	return err
}

func (a *ANSISink) WriteText(text string) error {
	_, err := io.WriteString(a.w, text)
	return err
}

// Reset emits a final SGR reset, restoring the terminal to plain style.
func (a *ANSISink) Reset() error {
	_, err := io.WriteString(a.w, "\x1b[0m")
	a.set = false
	return err
}

func sgrCodes(st style.Style) []string {
	var codes []string
	if st.Has(style.Bold) {
		codes = append(codes, "1")
	}
	if st.Has(style.Dim) {
		codes = append(codes, "2")
	}
	if st.Has(style.Italic) {
		codes = append(codes, "3")
	}
	if st.Has(style.Underline) {
		codes = append(codes, "4")
	}
	if st.Has(style.Blink) {
		codes = append(codes, "5")
	}
	if st.Has(style.Invert) {
		codes = append(codes, "7")
	}
	if st.Has(style.Hidden) {
		codes = append(codes, "8")
	}
	if st.Has(style.Strikethrough) {
		codes = append(codes, "9")
	}
	if st.Fg != nil {
		codes = append(codes, colorSGR(*st.Fg, false)...)
	}
	if st.Bg != nil {
		codes = append(codes, colorSGR(*st.Bg, true)...)
	}
	return codes
}

func colorSGR(c style.Color, bg bool) []string {
	base := 38
	if bg {
		base = 48
	}
	switch c.Kind {
	case style.ColorKindIndexed:
		return []string{fmt.Sprintf("%d", base), "5", fmt.Sprintf("%d", c.Index)}
	case style.ColorKindRGB:
		return []string{fmt.Sprintf("%d", base), "2", fmt.Sprintf("%d", c.R), fmt.Sprintf("%d", c.G), fmt.Sprintf("%d", c.B)}
	default:
		return nil
	}
}
