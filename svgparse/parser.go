package svgparse

import (
	"bytes"
	"encoding/xml"
	"io"
	"strconv"
	"strings"

	"github.com/tsnapkit/tsnap/style"
	"github.com/tsnapkit/tsnap/transcript"
)

// Parse streams data as XML and reconstructs the Transcript a snapshot
// renderer produced, recognizing whichever of the two built-in
// container shapes (hybrid or pure) it finds (spec §4.8).
func Parse(data []byte) (transcript.Transcript, error) {
	dec := xml.NewDecoder(bytes.NewReader(data))

	rootTok, err := nextStart(dec)
	if err != nil {
		return transcript.Transcript{}, wrapXMLErr(dec, err)
	}
	if rootTok.Name.Local != "svg" {
		return transcript.Transcript{}, UnexpectedRootError{Range: offsetRange(dec)}
	}

	for {
		tok, err := dec.Token()
		if err == io.EOF {
			return transcript.Transcript{}, InvalidContainerError{Range: offsetRange(dec)}
		}
		if err != nil {
			return transcript.Transcript{}, wrapXMLErr(dec, err)
		}
		se, ok := tok.(xml.StartElement)
		if !ok {
			continue
		}
		class := attrValue(se, "class")
		switch {
		case se.Name.Local == "div" && hasToken(class, "container"):
			return parseHybridContainer(dec)
		case se.Name.Local == "g" && hasToken(class, "container"):
			return parsePureContainer(dec)
		case se.Name.Local == "foreignObject":
			// Descend: the hybrid container <div> is its child.
		default:
			if err := dec.Skip(); err != nil {
				return transcript.Transcript{}, wrapXMLErr(dec, err)
			}
		}
	}
}

func nextStart(dec *xml.Decoder) (xml.StartElement, error) {
	for {
		tok, err := dec.Token()
		if err != nil {
			return xml.StartElement{}, err
		}
		if se, ok := tok.(xml.StartElement); ok {
			return se, nil
		}
	}
}

func attrValue(se xml.StartElement, name string) string {
	for _, a := range se.Attr {
		if a.Name.Local == name {
			return a.Value
		}
	}
	return ""
}

func hasToken(classAttr, token string) bool {
	for _, f := range strings.Fields(classAttr) {
		if f == token {
			return true
		}
	}
	return false
}

func offsetRange(dec *xml.Decoder) Range {
	off := int(dec.InputOffset())
	return Range{Start: off, End: off}
}

func wrapXMLErr(dec *xml.Decoder, err error) error {
	if err == io.EOF {
		return UnexpectedEOFError{Range: offsetRange(dec)}
	}
	return XMLError{Err: err, Range: offsetRange(dec)}
}

func parseExitStatus(dec *xml.Decoder, se xml.StartElement) (*int, error) {
	raw := attrValue(se, "data-exit-status")
	if raw == "" {
		return nil, nil
	}
	n, err := strconv.Atoi(raw)
	if err != nil {
		return nil, InvalidExitStatusError{Value: raw, Range: offsetRange(dec)}
	}
	return &n, nil
}

// ---- hybrid container (SVG + HTML-in-foreignObject) ----

func parseHybridContainer(dec *xml.Decoder) (transcript.Transcript, error) {
	var tr transcript.Transcript
	depth := 1
	for depth > 0 {
		tok, err := dec.Token()
		if err != nil {
			return transcript.Transcript{}, wrapXMLErr(dec, err)
		}
		switch t := tok.(type) {
		case xml.EndElement:
			depth--
		case xml.StartElement:
			if t.Name.Local != "div" {
				depth++
				continue
			}
			class := attrValue(t, "class")
			switch {
			case hasToken(class, "input") || hasToken(class, "user-input"):
				in, err := parseHybridInputDiv(dec, t)
				if err != nil {
					return transcript.Transcript{}, err
				}
				tr.Push(transcript.Interaction{Input: in.input, ExitStatus: in.exitStatus})
			case hasToken(class, "output") || hasToken(class, "term-output"):
				out, err := parseHybridOutputDiv(dec)
				if err != nil {
					return transcript.Transcript{}, err
				}
				if len(tr.Interactions) == 0 {
					tr.Push(transcript.Interaction{})
				}
				tr.Interactions[len(tr.Interactions)-1].Output = out
			default:
				depth++
			}
		}
	}
	return tr, nil
}

type hybridInputResult struct {
	input      transcript.UserInput
	exitStatus *int
}

func parseHybridInputDiv(dec *xml.Decoder, open xml.StartElement) (hybridInputResult, error) {
	hidden := hasToken(attrValue(open, "class"), "input-hidden")
	exit, err := parseExitStatus(dec, open)
	if err != nil {
		return hybridInputResult{}, err
	}

	var prompt string
	var text strings.Builder
	depth := 1
	for depth > 0 {
		tok, err := dec.Token()
		if err != nil {
			return hybridInputResult{}, wrapXMLErr(dec, err)
		}
		switch t := tok.(type) {
		case xml.StartElement:
			if t.Name.Local == "span" && hasToken(attrValue(t, "class"), "prompt") {
				p, err := readElementText(dec)
				if err != nil {
					return hybridInputResult{}, err
				}
				prompt = p
				continue
			}
			depth++
		case xml.EndElement:
			depth--
		case xml.CharData:
			text.Write(t)
		}
	}

	raw := text.String()
	if prompt != "" {
		raw = strings.TrimPrefix(raw, " ")
	}
	return hybridInputResult{
		input: transcript.UserInput{
			Text:   raw,
			Prompt: prompt,
			Hidden: hidden,
		},
		exitStatus: exit,
	}, nil
}

// readElementText reads CharData up to and including the matching
// EndElement for the element whose StartElement was already consumed,
// concatenating any top-level text.
func readElementText(dec *xml.Decoder) (string, error) {
	var b strings.Builder
	depth := 1
	for depth > 0 {
		tok, err := dec.Token()
		if err != nil {
			return "", wrapXMLErr(dec, err)
		}
		switch t := tok.(type) {
		case xml.StartElement:
			depth++
		case xml.EndElement:
			depth--
		case xml.CharData:
			if depth == 1 {
				b.Write(t)
			}
		}
	}
	return b.String(), nil
}

func parseHybridOutputDiv(dec *xml.Decoder) (style.StyledString, error) {
	var b style.Builder
	currentStyle := style.Plain
	var spanStack []bool // true = attribute-bearing span (sets style)
	gobbleNewline := false

	depth := 1
	for depth > 0 {
		tok, err := dec.Token()
		if err != nil {
			return style.StyledString{}, wrapXMLErr(dec, err)
		}
		switch t := tok.(type) {
		case xml.StartElement:
			if t.Name.Local != "span" {
				depth++
				continue
			}
			class := attrValue(t, "class")
			if hasToken(class, "hard-br") {
				content, err := readElementText(dec)
				if err != nil {
					return style.StyledString{}, err
				}
				if content != "" {
					return style.StyledString{}, InvalidHardBreakError{Range: offsetRange(dec)}
				}
				gobbleNewline = true
				continue
			}
			if len(t.Attr) > 0 {
				currentStyle = decodeSpanStyle(t)
				spanStack = append(spanStack, true)
			} else {
				spanStack = append(spanStack, false)
			}
		case xml.EndElement:
			if len(spanStack) > 0 {
				spanStack = spanStack[:len(spanStack)-1]
				if len(spanStack) == 0 {
					currentStyle = style.Plain
				}
			} else {
				depth--
			}
		case xml.CharData:
			text := string(t)
			if gobbleNewline {
				if !strings.HasPrefix(text, "\n") {
					return style.StyledString{}, InvalidHardBreakError{Range: offsetRange(dec)}
				}
				text = strings.TrimPrefix(text, "\n")
				gobbleNewline = false
			}
			b.PushStyled(currentStyle, text)
		}
	}
	return b.Build(), nil
}

func decodeSpanStyle(se xml.StartElement) style.Style {
	st := style.Plain
	class := attrValue(se, "class")
	for _, tok := range strings.Fields(class) {
		switch tok {
		case "bold":
			st = st.With(style.Bold)
		case "dimmed":
			st = st.With(style.Dim)
		case "italic":
			st = st.With(style.Italic)
		case "underline":
			st = st.With(style.Underline)
		case "strike":
			st = st.With(style.Strikethrough)
		case "blink":
			st = st.With(style.Blink)
		case "hidden":
			st = st.With(style.Hidden)
		case "inv":
			st = st.With(style.Invert)
		default:
			if n, ok := parseIndexedClass(tok, "fg"); ok {
				st = st.WithFg(style.Indexed(n))
			} else if n, ok := parseIndexedClass(tok, "bg"); ok {
				st = st.WithBg(style.Indexed(n))
			}
		}
	}
	if inline := attrValue(se, "style"); inline != "" {
		if c, ok := parseInlineColor(inline, "color"); ok {
			st = st.WithFg(c)
		}
		if c, ok := parseInlineColor(inline, "background"); ok {
			st = st.WithBg(c)
		}
	}
	return st
}

func parseIndexedClass(tok, prefix string) (uint8, bool) {
	if !strings.HasPrefix(tok, prefix) {
		return 0, false
	}
	rest := tok[len(prefix):]
	if rest == "" || rest == "-none" {
		return 0, false
	}
	n, err := strconv.Atoi(rest)
	if err != nil || n < 0 || n > 255 {
		return 0, false
	}
	return uint8(n), true
}

func parseInlineColor(decls, prop string) (style.Color, bool) {
	for _, decl := range strings.Split(decls, ";") {
		decl = strings.TrimSpace(decl)
		k, v, ok := strings.Cut(decl, ":")
		if !ok || strings.TrimSpace(k) != prop {
			continue
		}
		c, err := style.ParseHex(strings.TrimSpace(v))
		if err != nil {
			return style.Color{}, false
		}
		return c, true
	}
	return style.Color{}, false
}

// ---- pure container (SVG only) ----

func parsePureContainer(dec *xml.Decoder) (transcript.Transcript, error) {
	var tr transcript.Transcript
	depth := 1
	for depth > 0 {
		tok, err := dec.Token()
		if err != nil {
			return transcript.Transcript{}, wrapXMLErr(dec, err)
		}
		switch t := tok.(type) {
		case xml.EndElement:
			depth--
		case xml.StartElement:
			if t.Name.Local != "g" {
				depth++
				continue
			}
			class := attrValue(t, "class")
			switch {
			case hasToken(class, "input"):
				in, err := parsePureInputGroup(dec, t)
				if err != nil {
					return transcript.Transcript{}, err
				}
				tr.Push(transcript.Interaction{Input: in.input, ExitStatus: in.exitStatus})
			case hasToken(class, "output"):
				out, err := parsePureOutputGroup(dec)
				if err != nil {
					return transcript.Transcript{}, err
				}
				if len(tr.Interactions) == 0 {
					tr.Push(transcript.Interaction{})
				}
				tr.Interactions[len(tr.Interactions)-1].Output = out
			default:
				depth++
			}
		}
	}
	return tr, nil
}

func parsePureInputGroup(dec *xml.Decoder, open xml.StartElement) (hybridInputResult, error) {
	hidden := hasToken(attrValue(open, "class"), "input-hidden")
	exit, err := parseExitStatus(dec, open)
	if err != nil {
		return hybridInputResult{}, err
	}

	var prompt string
	var text strings.Builder
	depth := 1
	for depth > 0 {
		tok, err := dec.Token()
		if err != nil {
			return hybridInputResult{}, wrapXMLErr(dec, err)
		}
		switch t := tok.(type) {
		case xml.StartElement:
			if t.Name.Local == "tspan" && hasToken(attrValue(t, "class"), "prompt") {
				p, err := readElementText(dec)
				if err != nil {
					return hybridInputResult{}, err
				}
				prompt = p
				continue
			}
			depth++
		case xml.EndElement:
			depth--
		case xml.CharData:
			// The prompt tspan is consumed above; all other character
			// data in the group is the input's text.
			text.Write(t)
		}
	}
	raw := text.String()
	if prompt != "" {
		raw = strings.TrimPrefix(raw, " ")
	}
	return hybridInputResult{
		input:      transcript.UserInput{Text: raw, Prompt: prompt, Hidden: hidden},
		exitStatus: exit,
	}, nil
}

func parsePureOutputGroup(dec *xml.Decoder) (style.StyledString, error) {
	var b style.Builder
	lineCount := 0
	depth := 1
	for depth > 0 {
		tok, err := dec.Token()
		if err != nil {
			return style.StyledString{}, wrapXMLErr(dec, err)
		}
		switch t := tok.(type) {
		case xml.EndElement:
			depth--
		case xml.StartElement:
			if t.Name.Local != "text" {
				depth++
				continue
			}
			class := attrValue(t, "class")
			if hasToken(class, "bg-lane") || hasToken(class, "line-number") {
				if _, err := readElementText(dec); err != nil {
					return style.StyledString{}, err
				}
				continue
			}
			if !hasToken(class, "line") {
				if _, err := readElementText(dec); err != nil {
					return style.StyledString{}, err
				}
				continue
			}
			if lineCount > 0 {
				b.PushStyled(style.Plain, "\n")
			}
			if err := parsePureTextLine(dec, &b); err != nil {
				return style.StyledString{}, err
			}
			lineCount++
			if hasToken(class, "brk-hard") {
				// No newline belongs between this line and the next: the
				// wrap that produced them round-trips as nothing (spec §4.4,
				// testable property 6). Achieved by simply not emitting a
				// PushStyled("\n") here; the next iteration's lineCount>0
				// check would otherwise add one, so undo it by treating this
				// line as if it were the first for join purposes.
				lineCount = 0
			}
		}
	}
	return b.Build(), nil
}

func parsePureTextLine(dec *xml.Decoder, b *style.Builder) error {
	currentStyle := style.Plain
	var spanStack []bool
	depth := 1
	for depth > 0 {
		tok, err := dec.Token()
		if err != nil {
			return wrapXMLErr(dec, err)
		}
		switch t := tok.(type) {
		case xml.StartElement:
			if t.Name.Local != "tspan" {
				depth++
				continue
			}
			if len(t.Attr) > 0 {
				currentStyle = decodeTspanStyle(t)
				spanStack = append(spanStack, true)
			} else {
				spanStack = append(spanStack, false)
			}
		case xml.EndElement:
			if len(spanStack) > 0 {
				spanStack = spanStack[:len(spanStack)-1]
				if len(spanStack) == 0 {
					currentStyle = style.Plain
				}
			} else {
				depth--
			}
		case xml.CharData:
			b.PushStyled(currentStyle, string(t))
		}
	}
	return nil
}

func decodeTspanStyle(se xml.StartElement) style.Style {
	st := style.Plain
	for _, tok := range strings.Fields(attrValue(se, "class")) {
		switch tok {
		case "dimmed":
			st = st.With(style.Dim)
		case "blink":
			st = st.With(style.Blink)
		case "hidden":
			st = st.With(style.Hidden)
		case "inv":
			st = st.With(style.Invert)
		}
	}
	if attrValue(se, "font-weight") == "bold" {
		st = st.With(style.Bold)
	}
	if attrValue(se, "font-style") == "italic" {
		st = st.With(style.Italic)
	}
	if deco := attrValue(se, "text-decoration"); deco != "" {
		if strings.Contains(deco, "underline") {
			st = st.With(style.Underline)
		}
		if strings.Contains(deco, "line-through") {
			st = st.With(style.Strikethrough)
		}
	}
	if fill := attrValue(se, "fill"); fill != "" && strings.HasPrefix(fill, "#") {
		if c, err := style.ParseHex(fill); err == nil {
			st = st.WithFg(c)
		}
	} else if n, ok := parseTsnapVar(fill); ok {
		st = st.WithFg(style.Indexed(n))
	}
	return st
}

// parseTsnapVar recognizes the "var(--tsnap-N)" fallback fill SVGTextSink
// emits for an indexed color when no palette was supplied.
func parseTsnapVar(fill string) (uint8, bool) {
	const prefix, suffix = "var(--tsnap-", ")"
	if !strings.HasPrefix(fill, prefix) || !strings.HasSuffix(fill, suffix) {
		return 0, false
	}
	body := strings.TrimSuffix(strings.TrimPrefix(fill, prefix), suffix)
	n, err := strconv.Atoi(body)
	if err != nil || n < 0 || n > 255 {
		return 0, false
	}
	return uint8(n), true
}
