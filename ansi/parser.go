// Package ansi turns a raw terminal byte stream — ordinary text
// interleaved with CR/LF and CSI/OSC escape sequences — into a
// style.StyledString, the way a real terminal would render it.
package ansi

import (
	"bytes"
	"strconv"
	"strings"
	"unicode/utf8"

	"github.com/tsnapkit/tsnap/style"
)

// Parse converts data into a StyledString. It normalizes line endings,
// collapses CR-based overwrites, and interprets SGR (color/effect)
// sequences; OSC sequences are consumed and discarded. Any other ESC
// sequence, or an unterminated CSI/OSC, is an error.
func Parse(data []byte) (style.StyledString, error) {
	var b style.Builder
	cur := style.Style{}

	offset := 0
	for {
		nl := bytes.IndexByte(data[offset:], '\n')
		var line []byte
		lineStart := offset
		hasMore := nl >= 0
		if hasMore {
			line = data[offset : offset+nl]
		} else {
			line = data[offset:]
		}

		processed, processedStart := applyCROverwrite(line, lineStart)
		if err := parseLineInto(&b, &cur, processed, processedStart); err != nil {
			return style.Empty, err
		}
		if hasMore {
			b.PushStyled(cur, "\n")
			offset += nl + 1
			continue
		}
		break
	}
	return b.Build(), nil
}

// applyCROverwrite finds the rightmost '\r' in line such that the bytes
// following it contain at least one byte outside an escape sequence, and
// returns that suffix (modeling a terminal progress line that overwrites
// itself). If no '\r' qualifies, line is returned unchanged.
func applyCROverwrite(line []byte, lineStart int) ([]byte, int) {
	for idx := len(line) - 1; idx >= 0; idx-- {
		if line[idx] != '\r' {
			continue
		}
		rest := line[idx+1:]
		if hasPlainByte(rest) {
			return rest, lineStart + idx + 1
		}
	}
	return line, lineStart
}

// hasPlainByte reports whether b contains any byte that isn't part of a
// recognized CSI/OSC escape sequence.
func hasPlainByte(b []byte) bool {
	i := 0
	for i < len(b) {
		if b[i] == 0x1B {
			if n, ok := escapeLen(b[i:]); ok {
				i += n
				continue
			}
			i++
			continue
		}
		return true
	}
	return false
}

// escapeLen returns the byte length of the escape sequence starting at
// b[0] (which must be ESC), without validating its semantics. Used only
// by the CR-overwrite heuristic, which must not fail on malformed input.
func escapeLen(b []byte) (int, bool) {
	if len(b) < 2 || b[0] != 0x1B {
		return 0, false
	}
	switch b[1] {
	case '[':
		for i := 2; i < len(b); i++ {
			if c := b[i]; c >= 0x40 && c <= 0x7E {
				return i + 1, true
			}
		}
		return 0, false
	case ']':
		for i := 2; i < len(b); i++ {
			if b[i] == 0x07 {
				return i + 1, true
			}
			if b[i] == 0x1B && i+1 < len(b) && b[i+1] == '\\' {
				return i + 2, true
			}
		}
		return 0, false
	default:
		return 2, true
	}
}

type escSeq struct {
	isCSI  bool
	final  byte
	params string
}

// scanEscape parses one escape sequence starting at b[0] (== ESC),
// returning the sequence and the number of bytes it consumed.
func scanEscape(b []byte, absOffset int) (escSeq, int, error) {
	if len(b) < 2 {
		return escSeq{}, 0, UnfinishedSequenceError{Offset: absOffset}
	}
	switch b[1] {
	case '[':
		i := 2
		for i < len(b) {
			c := b[i]
			switch {
			case c >= 0x30 && c <= 0x3F, c >= 0x20 && c <= 0x2F:
				i++
			case c >= 0x40 && c <= 0x7E:
				return escSeq{isCSI: true, final: c, params: string(b[2:i])}, i + 1, nil
			default:
				return escSeq{}, 0, InvalidSgrFinalByteError{Byte: c, Offset: absOffset + i}
			}
		}
		return escSeq{}, 0, UnfinishedSequenceError{Offset: absOffset}
	case ']':
		for i := 2; i < len(b); i++ {
			if b[i] == 0x07 {
				return escSeq{}, i + 1, nil
			}
			if b[i] == 0x1B && i+1 < len(b) && b[i+1] == '\\' {
				return escSeq{}, i + 2, nil
			}
		}
		return escSeq{}, 0, UnfinishedSequenceError{Offset: absOffset}
	default:
		return escSeq{}, 0, UnrecognizedSequenceError{Byte: b[1], Offset: absOffset}
	}
}

// parseLineInto interprets one already CR-collapsed, newline-free line,
// pushing ordinary text into b under the current style and updating cur
// on SGR sequences.
func parseLineInto(b *style.Builder, cur *style.Style, line []byte, baseOffset int) error {
	i := 0
	for i < len(line) {
		switch line[i] {
		case 0x1B:
			seq, consumed, err := scanEscape(line[i:], baseOffset+i)
			if err != nil {
				return err
			}
			if seq.isCSI && seq.final == 'm' {
				if err := applySGR(cur, seq.params); err != nil {
					return err
				}
			}
			i += consumed
		case '\r':
			// Leftover CR that didn't qualify for overwrite; inert.
			i++
		default:
			start := i
			for i < len(line) && line[i] != 0x1B && line[i] != '\r' {
				i++
			}
			run := line[start:i]
			if !utf8.Valid(run) {
				return InvalidUTF8Error{Offset: baseOffset + start + firstInvalidUTF8(run)}
			}
			b.PushStyled(*cur, string(run))
		}
	}
	return nil
}

func firstInvalidUTF8(b []byte) int {
	i := 0
	for i < len(b) {
		r, size := utf8.DecodeRune(b[i:])
		if r == utf8.RuneError && size <= 1 {
			return i
		}
		i += size
	}
	return len(b)
}

// parseParams splits an SGR parameter string on ';' (accepting ':' as an
// equivalent separator for colon-subparameter sequences), defaulting
// empty fields to 0. A bare "ESC[m" yields a single 0 (reset).
func parseParams(s string) []int {
	if s == "" {
		return []int{0}
	}
	s = strings.ReplaceAll(s, ":", ";")
	parts := strings.Split(s, ";")
	out := make([]int, len(parts))
	for i, p := range parts {
		if p == "" {
			continue
		}
		if v, err := strconv.Atoi(p); err == nil {
			out[i] = v
		}
	}
	return out
}

// applySGR applies one SGR parameter string's effects to cur in place.
func applySGR(cur *style.Style, paramsStr string) error {
	codes := parseParams(paramsStr)
	for i := 0; i < len(codes); i++ {
		code := codes[i]
		switch {
		case code == 0:
			*cur = style.Style{}
		case code == 1:
			*cur = cur.With(style.Bold)
		case code == 2:
			*cur = cur.With(style.Dim)
		case code == 3:
			*cur = cur.With(style.Italic)
		case code == 4:
			*cur = cur.With(style.Underline)
		case code == 5 || code == 6:
			*cur = cur.With(style.Blink)
		case code == 7:
			*cur = cur.With(style.Invert)
		case code == 8:
			*cur = cur.With(style.Hidden)
		case code == 9:
			*cur = cur.With(style.Strikethrough)
		case code == 22:
			*cur = cur.Without(style.Bold).Without(style.Dim)
		case code == 23:
			*cur = cur.Without(style.Italic)
		case code == 24:
			*cur = cur.Without(style.Underline)
		case code == 25:
			*cur = cur.Without(style.Blink)
		case code == 27:
			*cur = cur.Without(style.Invert)
		case code == 28:
			*cur = cur.Without(style.Hidden)
		case code == 29:
			*cur = cur.Without(style.Strikethrough)
		case code >= 30 && code <= 37:
			*cur = cur.WithFg(style.Indexed(uint8(code - 30)))
		case code == 38:
			col, consumed, err := parseExtendedColor(codes[i+1:])
			if err != nil {
				return err
			}
			*cur = cur.WithFg(col)
			i += consumed
		case code == 39:
			*cur = cur.WithoutFg()
		case code >= 40 && code <= 47:
			*cur = cur.WithBg(style.Indexed(uint8(code - 40)))
		case code == 48:
			col, consumed, err := parseExtendedColor(codes[i+1:])
			if err != nil {
				return err
			}
			*cur = cur.WithBg(col)
			i += consumed
		case code == 49:
			*cur = cur.WithoutBg()
		case code >= 90 && code <= 97:
			*cur = cur.WithFg(style.Indexed(uint8(code - 90 + 8)))
		case code >= 100 && code <= 107:
			*cur = cur.WithBg(style.Indexed(uint8(code - 100 + 8)))
		default:
			// Unknown parameters are silently ignored.
		}
	}
	return nil
}

// parseExtendedColor parses the tail of an SGR 38/48 sequence (the
// selector and its arguments), returning the color and how many params
// it consumed, selector included (2 for `5;N`, 4 for `2;R;G;B`).
func parseExtendedColor(rest []int) (style.Color, int, error) {
	if len(rest) == 0 {
		return style.Color{}, 0, UnfinishedColorError{}
	}
	switch rest[0] {
	case 5:
		if len(rest) < 2 {
			return style.Color{}, 0, UnfinishedColorError{}
		}
		idx := rest[1]
		if idx < 0 || idx > 255 {
			return style.Color{}, 0, InvalidColorIndexError{Value: idx}
		}
		return style.Indexed(uint8(idx)), 2, nil
	case 2:
		if len(rest) < 4 {
			return style.Color{}, 0, UnfinishedColorError{}
		}
		for _, v := range rest[1:4] {
			if v < 0 || v > 255 {
				return style.Color{}, 0, InvalidColorIndexError{Value: v}
			}
		}
		return style.RGB(uint8(rest[1]), uint8(rest[2]), uint8(rest[3])), 4, nil
	default:
		return style.Color{}, 0, InvalidColorTypeError{Selector: rest[0]}
	}
}
