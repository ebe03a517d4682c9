// Package richsyntax parses the human-readable "[[style]]text[[/]]"
// format used in documentation and test fixtures into a style.StyledString
// — the same datatype the ANSI parser produces, so both can feed the
// rest of the pipeline interchangeably.
package richsyntax

import (
	"strconv"
	"strings"
	"unicode/utf8"

	"github.com/tsnapkit/tsnap/style"
)

var namedColors = map[string]uint8{
	"black": 0, "red": 1, "green": 2, "yellow": 3,
	"blue": 4, "magenta": 5, "cyan": 6, "white": 7,
}

// Parse converts s into a StyledString. It is lossless up to
// normalization: style-spec tokens may appear in any order or casing on
// input. This package has no serializer, so it never produces the
// format in a canonical token order.
func Parse(s string) (style.StyledString, error) {
	var b style.Builder
	i := 0
	for i < len(s) {
		open := strings.Index(s[i:], "[[")
		if open < 0 {
			b.PushStyled(style.Style{}, s[i:])
			break
		}
		open += i
		if open > i {
			b.PushStyled(style.Style{}, s[i:open])
		}

		closeRel := strings.Index(s[open+2:], "]]")
		nestedRel := strings.Index(s[open+2:], "[[")
		if closeRel < 0 {
			return style.Empty, UnfinishedStyleError{Range: runeRange(s, open, len(s))}
		}
		if nestedRel >= 0 && nestedRel < closeRel {
			return style.Empty, BogusDelimiterError{Range: runeRange(s, open, open+2+nestedRel)}
		}

		inner := s[open+2 : open+2+closeRel]
		tagEnd := open + 2 + closeRel + 2
		if inner == "/" {
			return style.Empty, BogusDelimiterError{Range: runeRange(s, open, tagEnd)}
		}

		st, err := parseStyleSpec(s, inner, open+2)
		if err != nil {
			return style.Empty, err
		}

		closeTagRel := strings.Index(s[tagEnd:], "[[/]]")
		if closeTagRel < 0 {
			return style.Empty, UnfinishedStyleError{Range: runeRange(s, open, len(s))}
		}
		body := s[tagEnd : tagEnd+closeTagRel]
		b.PushStyled(st, body)
		i = tagEnd + closeTagRel + len("[[/]]")
	}
	return b.Build(), nil
}

// runeRange converts a byte range in s to a rune (character) range.
func runeRange(s string, byteStart, byteEnd int) Range {
	return Range{
		Start: utf8.RuneCountInString(s[:byteStart]),
		End:   utf8.RuneCountInString(s[:byteEnd]),
	}
}

type token struct {
	text      string
	byteStart int
	byteEnd   int
}

// splitTokens splits a style-spec on whitespace, comma, or semicolon —
// the grammar tolerates any mix, so "bold red on white" and
// "bold, red; on white" are both valid.
func splitTokens(spec string) []token {
	isSep := func(b byte) bool {
		return b == ' ' || b == '\t' || b == ',' || b == ';'
	}
	var toks []token
	i := 0
	for i < len(spec) {
		for i < len(spec) && isSep(spec[i]) {
			i++
		}
		start := i
		for i < len(spec) && !isSep(spec[i]) {
			i++
		}
		if i > start {
			toks = append(toks, token{text: spec[start:i], byteStart: start, byteEnd: i})
		}
	}
	return toks
}

// parseStyleSpec parses the token list between "[[" and "]]". specBase
// is the byte offset (in the original input) of the first byte of spec,
// used to compute absolute error ranges.
func parseStyleSpec(input, spec string, specBase int) (style.Style, error) {
	st := style.Style{}
	bgSet := false
	toks := splitTokens(spec)

	for i := 0; i < len(toks); i++ {
		tok := toks[i]
		switch strings.ToLower(tok.text) {
		case "bold", "b":
			st = st.With(style.Bold)
		case "italic", "i":
			st = st.With(style.Italic)
		case "underline", "u", "ul":
			st = st.With(style.Underline)
		case "dim":
			st = st.With(style.Dim)
		case "strike", "s":
			st = st.With(style.Strikethrough)
		case "blink":
			st = st.With(style.Blink)
		case "invert", "inv":
			st = st.With(style.Invert)
		case "hidden", "hide":
			st = st.With(style.Hidden)
		case "on":
			if i+1 >= len(toks) {
				return st, UnfinishedBackgroundError{Range: runeRange(input, specBase+tok.byteStart, specBase+tok.byteEnd)}
			}
			i++
			colorTok := toks[i]
			col, ok, err := parseColorToken(input, colorTok, specBase)
			if err != nil {
				return st, err
			}
			if !ok {
				return st, UnsupportedStyleError{Token: colorTok.text, Range: runeRange(input, specBase+colorTok.byteStart, specBase+colorTok.byteEnd)}
			}
			if bgSet {
				return st, RedefinedBackgroundError{Range: runeRange(input, specBase+colorTok.byteStart, specBase+colorTok.byteEnd)}
			}
			st = st.WithBg(col)
			bgSet = true
		default:
			col, ok, err := parseColorToken(input, tok, specBase)
			if err != nil {
				return st, err
			}
			if !ok {
				return st, UnsupportedStyleError{Token: tok.text, Range: runeRange(input, specBase+tok.byteStart, specBase+tok.byteEnd)}
			}
			st = st.WithFg(col)
		}
	}
	return st, nil
}

// parseColorToken attempts to interpret tok as a color: named (with
// optional '*' for bright), "#rgb"/"#rrggbb" hex, or a 1-3 digit decimal
// index. ok is false if tok isn't any of those (i.e. not a color at
// all, so the caller should report UnsupportedStyle).
func parseColorToken(input string, tok token, specBase int) (style.Color, bool, error) {
	text := tok.text
	rng := func() Range {
		return runeRange(input, specBase+tok.byteStart, specBase+tok.byteEnd)
	}

	if strings.HasPrefix(text, "#") {
		c, err := style.ParseHex(text)
		if err != nil {
			return style.Color{}, true, InvalidHexColorError{Range: rng()}
		}
		return c, true, nil
	}

	if isDecimalIndex(text) {
		n, _ := strconv.Atoi(text)
		if n > 255 {
			return style.Color{}, true, InvalidIndexColorError{Range: rng()}
		}
		return style.Indexed(uint8(n)), true, nil
	}

	name := text
	bright := false
	if strings.HasSuffix(name, "*") {
		bright = true
		name = name[:len(name)-1]
	}
	if idx, ok := namedColors[strings.ToLower(name)]; ok {
		if bright {
			idx += 8
		}
		return style.Indexed(idx), true, nil
	}

	return style.Color{}, false, nil
}

// isDecimalIndex reports whether text is 1-3 ASCII digits not starting
// with '0' (spec grammar for bare decimal color indices).
func isDecimalIndex(text string) bool {
	if len(text) == 0 || len(text) > 3 {
		return false
	}
	if text[0] == '0' {
		return false
	}
	for i := 0; i < len(text); i++ {
		if text[i] < '0' || text[i] > '9' {
			return false
		}
	}
	return true
}
