package termline

import "github.com/tsnapkit/tsnap/style"

// RecorderSink records styled writes back into a style.StyledString,
// the identity adapter used by tests and by code that wants Emit's
// span-walking behavior without actually serializing to a foreign
// format.
type RecorderSink struct {
	b   style.Builder
	cur style.Style
}

func (r *RecorderSink) SetStyle(st style.Style) error {
	r.cur = st
	return nil
}

func (r *RecorderSink) WriteText(text string) error {
	r.b.PushStyled(r.cur, text)
	return nil
}

// Build returns the recorded StyledString.
func (r *RecorderSink) Build() style.StyledString {
	return r.b.Build()
}
