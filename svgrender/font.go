package svgrender

import (
	"encoding/base64"
	"fmt"

	"golang.org/x/image/font"
	"golang.org/x/image/font/basicfont"
	"golang.org/x/image/font/opentype"
	"golang.org/x/image/math/fixed"
)

// FontPayload is the opaque value svgrender's embedders return; the
// assembler (transcript.FontEmbedder) threads it through untouched into
// transcript.Data.Font. Neither RenderHybrid nor RenderPure reads it, so
// its family and font data do not appear in the rendered SVG.
type FontPayload struct {
	Family       string
	AdvanceWidth float64 // in font-size-independent pixels, for textLength
	LineHeight   float64
	// Base64 is the embedded font payload when subsetting is enabled;
	// empty when relying on a system/web-safe font by family name only.
	Base64    string
	MIME      string
	HasBlock  bool // whether the font actually contains U+2588 FULL BLOCK
	usedChars []rune
}

// BasicEmbedder backs the default, no-subsetting case: it reports
// metrics from golang.org/x/image/font/basicfont.Face7x13 and never
// embeds a payload; its Family defaults to a web-safe monospace
// font-family list. Grounded on the teacher's
// screenshot.go, which falls back to the same basicfont face when no
// font is configured.
type BasicEmbedder struct {
	Family string
}

// Embed implements transcript.FontEmbedder.
func (b *BasicEmbedder) Embed(chars []rune) (any, error) {
	face := basicfont.Face7x13
	adv, _ := face.GlyphAdvance('M')
	family := b.Family
	if family == "" {
		family = "ui-monospace, Consolas, monospace"
	}
	return &FontPayload{
		Family:       family,
		AdvanceWidth: fixedToFloat(adv),
		LineHeight:   float64(face.Metrics().Height.Ceil()),
		HasBlock:     false,
		usedChars:    chars,
	}, nil
}

// OpenTypeEmbedder subsets-by-measurement (it does not literally strip
// unused glyphs, which golang.org/x/image/font/opentype has no API
// for) and base64-encodes a real font file into the payload, grounded
// on the teacher's LoadFontFromBytes/
// opentype.Parse pipeline in screenshot.go.
type OpenTypeEmbedder struct {
	Family string
	Data   []byte
	Size   float64
	MIME   string // e.g. "font/ttf", "font/woff2"
}

// Embed implements transcript.FontEmbedder.
func (o *OpenTypeEmbedder) Embed(chars []rune) (any, error) {
	ft, err := opentype.Parse(o.Data)
	if err != nil {
		return nil, fmt.Errorf("svgrender: parse font: %w", err)
	}
	size := o.Size
	if size == 0 {
		size = 14
	}
	face, err := opentype.NewFace(ft, &opentype.FaceOptions{
		Size:    size,
		DPI:     72,
		Hinting: font.HintingFull,
	})
	if err != nil {
		return nil, fmt.Errorf("svgrender: build face: %w", err)
	}
	adv, _ := face.GlyphAdvance('M')
	_, hasBlock := face.GlyphAdvance('█')

	mime := o.MIME
	if mime == "" {
		mime = "font/ttf"
	}
	return &FontPayload{
		Family:       o.Family,
		AdvanceWidth: fixedToFloat(adv),
		LineHeight:   float64(face.Metrics().Height.Ceil()),
		Base64:       base64.StdEncoding.EncodeToString(o.Data),
		MIME:         mime,
		HasBlock:     hasBlock,
		usedChars:    chars,
	}, nil
}

func fixedToFloat(v fixed.Int26_6) float64 {
	return float64(v) / 64
}
