package style

import "strings"

// Builder incrementally assembles a StyledString, splitting pushed runs
// at '\n' boundaries and coalescing adjacent equal-style spans as it
// goes. It is the construction-time counterpart to the immutable
// StyledString: the ANSI parser, the rich-syntax parser, and tests all
// build through it instead of hand-assembling span slices.
type Builder struct {
	text           strings.Builder
	spans          []StyledSpan
	lastWasNewline bool
}

// PushStyled appends text under st, splitting at '\n' so no resulting
// span crosses a line break. text must already be valid UTF-8 without
// ESC bytes; callers that can't guarantee that should validate first.
func (b *Builder) PushStyled(st Style, text string) {
	for len(text) > 0 {
		idx := strings.IndexByte(text, '\n')
		if idx < 0 {
			b.appendRun(st, text)
			return
		}
		if idx > 0 {
			b.appendRun(st, text[:idx])
		}
		b.appendRun(st, "\n")
		text = text[idx+1:]
	}
}

func (b *Builder) appendRun(st Style, run string) {
	if run == "" {
		return
	}
	b.text.WriteString(run)
	if n := len(b.spans); n > 0 && run != "\n" && !b.lastWasNewline && b.spans[n-1].Style.Equal(st) {
		b.spans[n-1].Len += len(run)
	} else {
		b.spans = append(b.spans, StyledSpan{Style: st, Len: len(run)})
	}
	b.lastWasNewline = run == "\n"
}

// Len returns the number of bytes written so far.
func (b *Builder) Len() int { return b.text.Len() }

// Build finalizes the builder into a StyledString. The builder remains
// usable afterwards; subsequent pushes continue to extend it.
func (b *Builder) Build() StyledString {
	return StyledString{text: b.text.String(), spans: append([]StyledSpan(nil), b.spans...)}
}
