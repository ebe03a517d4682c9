package termline

import "github.com/tsnapkit/tsnap/style"

// Sink is the capability set a line serializer needs: accept a style
// change and accept a run of text under the current style. Concrete
// adapters implement it for each output target (§9 design note: model
// the polymorphic writer as an explicit interface, not an inheritance
// hierarchy).
type Sink interface {
	SetStyle(st style.Style) error
	WriteText(text string) error
}

// Emit walks s span by span, driving sink through the style changes and
// text runs needed to reproduce it.
func Emit(sink Sink, s style.StyledString) error {
	text := s.Text()
	offset := 0
	for _, span := range s.Spans() {
		if err := sink.SetStyle(span.Style); err != nil {
			return err
		}
		if err := sink.WriteText(text[offset : offset+span.Len]); err != nil {
			return err
		}
		offset += span.Len
	}
	return nil
}
