package transcript

import (
	"sort"

	"github.com/tsnapkit/tsnap/termline"
)

// FontEmbedder is "polymorphic over the capability set {embed(used_chars)
// → payload-or-error}" (spec §9): the assembler invokes it once with the
// union of every character that will appear in the rendered document,
// and threads the returned payload through to the renderer untouched.
// The assembler never interprets the payload — only svgrender, which
// supplies the concrete embedder, knows its shape.
type FontEmbedder interface {
	Embed(chars []rune) (any, error)
}

// InputData is the per-interaction input half of the assembled template
// data: the assembler has already resolved Failed from the exit status
// so templates don't need to know the §3 Interaction shape.
type InputData struct {
	Text       string
	Prompt     string
	Hidden     bool
	ExitStatus *int
	Failed     bool
}

// InteractionData is one interaction's fully assembled, wrap-applied
// form.
type InteractionData struct {
	Input InputData
	Lines []termline.Line
}

// Data is what the assembler hands to a renderer: per-interaction data,
// the character set that must be available in the embedded font, and
// whether any interaction failed.
type Data struct {
	Interactions []InteractionData
	UsedChars    []rune
	HasFailures  bool
	Font         any // the FontEmbedder's opaque return value, or nil
}

// Assemble validates opts, wraps each interaction's output at
// opts.WrapWidth (0 = unlimited), and computes the used-character set.
// If embedder is non-nil it is invoked once with the full used-character
// set (spec §9: "invoked once per render with the union of characters in
// inputs, outputs, and any numbering digits/markers").
func Assemble(t Transcript, opts Options, embedder FontEmbedder) (Data, error) {
	if err := opts.Validate(); err != nil {
		return Data{}, err
	}

	chars := make(map[rune]struct{})
	recordChars := func(s string) {
		for _, r := range s {
			chars[r] = struct{}{}
		}
	}
	// Numbering digits and the continuation mark text are used in the
	// font regardless of which interaction they annotate.
	for _, r := range "0123456789" {
		chars[r] = struct{}{}
	}
	recordChars(opts.LineNumberMark.Text)

	data := Data{HasFailures: t.HasFailures()}
	for _, it := range t.Interactions {
		recordChars(it.Input.Text)
		recordChars(it.Input.Prompt)
		recordChars(it.Output.Text())

		w := termline.NewWrapper(opts.WrapWidth)
		text := it.Output.Text()
		offset := 0
		for _, span := range it.Output.Spans() {
			w.WriteStyled(span.Style, text[offset:offset+span.Len])
			offset += span.Len
		}

		var exit *int
		if it.ExitStatus != nil {
			v := *it.ExitStatus
			exit = &v
		}
		data.Interactions = append(data.Interactions, InteractionData{
			Input: InputData{
				Text:       it.Input.Text,
				Prompt:     it.Input.Prompt,
				Hidden:     it.Input.Hidden,
				ExitStatus: exit,
				Failed:     it.Failed(),
			},
			Lines: w.Lines(),
		})
	}

	data.UsedChars = sortedRunes(chars)

	if embedder != nil {
		payload, err := embedder.Embed(data.UsedChars)
		if err != nil {
			return Data{}, err
		}
		data.Font = payload
	}

	return data, nil
}

func sortedRunes(set map[rune]struct{}) []rune {
	out := make([]rune, 0, len(set))
	for r := range set {
		out = append(out, r)
	}
	sort.Slice(out, func(i, j int) bool { return out[i] < out[j] })
	return out
}
