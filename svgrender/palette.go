package svgrender

import "github.com/tsnapkit/tsnap/style"

// WindowFrame selects the optional title-bar chrome drawn above the
// terminal body (SPEC_FULL §D.1, from original_source/lib/src/svg/options.rs).
type WindowFrame int

const (
	// WindowFrameNone draws no frame at all; the body starts at y=0.
	WindowFrameNone WindowFrame = iota
	// WindowFrameDisabled draws the frame's traffic-light dots in a
	// disabled (grayed out) style.
	WindowFrameDisabled
	// WindowFrameColored draws the traffic-light dots in their usual
	// red/yellow/green.
	WindowFrameColored
)

const windowFrameHeight = 32

// Palette is a named 16-color table: 8 normal colors followed by 8
// "intense"/bright variants, resolved from index to RGB at render time
// (spec §8 item 8's named-palette fidelity: the ANSI/style layers never
// do this resolution, only the renderer does).
type Palette struct {
	Name   string
	Colors [16]style.RGB888
}

// Built-in palettes (SPEC_FULL §D.2), transcribed from
// original_source/lib/src/svg/options.rs.
var (
	PaletteGjm8 = Palette{
		Name: "gjm8",
		Colors: [16]style.RGB888{
			{R: 0x00, G: 0x00, B: 0x00}, {R: 0xcc, G: 0x00, B: 0x00},
			{R: 0x4e, G: 0x9a, B: 0x06}, {R: 0xc4, G: 0xa0, B: 0x00},
			{R: 0x34, G: 0x65, B: 0xa4}, {R: 0x75, G: 0x50, B: 0x7b},
			{R: 0x06, G: 0x98, B: 0x9a}, {R: 0xd3, G: 0xd7, B: 0xcf},
			{R: 0x55, G: 0x57, B: 0x53}, {R: 0xef, G: 0x29, B: 0x29},
			{R: 0x8a, G: 0xe2, B: 0x34}, {R: 0xfc, G: 0xe9, B: 0x4f},
			{R: 0x72, G: 0x9f, B: 0xcf}, {R: 0xad, G: 0x7f, B: 0xa8},
			{R: 0x34, G: 0xe2, B: 0xe2}, {R: 0xee, G: 0xee, B: 0xec},
		},
	}
	PaletteXterm = Palette{
		Name: "xterm",
		Colors: [16]style.RGB888{
			{R: 0x00, G: 0x00, B: 0x00}, {R: 0xcd, G: 0x00, B: 0x00},
			{R: 0x00, G: 0xcd, B: 0x00}, {R: 0xcd, G: 0xcd, B: 0x00},
			{R: 0x00, G: 0x00, B: 0xee}, {R: 0xcd, G: 0x00, B: 0xcd},
			{R: 0x00, G: 0xcd, B: 0xcd}, {R: 0xe5, G: 0xe5, B: 0xe5},
			{R: 0x7f, G: 0x7f, B: 0x7f}, {R: 0xff, G: 0x00, B: 0x00},
			{R: 0x00, G: 0xff, B: 0x00}, {R: 0xff, G: 0xff, B: 0x00},
			{R: 0x5c, G: 0x5c, B: 0xff}, {R: 0xff, G: 0x00, B: 0xff},
			{R: 0x00, G: 0xff, B: 0xff}, {R: 0xff, G: 0xff, B: 0xff},
		},
	}
	PalettePowerShell = Palette{
		Name: "powershell",
		Colors: [16]style.RGB888{
			{R: 0x01, G: 0x24, B: 0x56}, {R: 0x79, G: 0x1e, B: 0x71},
			{R: 0x13, G: 0xa1, B: 0x0e}, {R: 0xc1, G: 0x9c, B: 0x00},
			{R: 0x00, G: 0x37, B: 0xda}, {R: 0x88, G: 0x17, B: 0xf8},
			{R: 0x3a, G: 0x96, B: 0xdd}, {R: 0xcc, G: 0xcc, B: 0xcc},
			{R: 0x76, G: 0x76, B: 0x76}, {R: 0xf2, G: 0x50, B: 0x22},
			{R: 0x16, G: 0xc6, B: 0x0c}, {R: 0xf9, G: 0xf1, B: 0xa5},
			{R: 0x3b, G: 0x78, B: 0xff}, {R: 0xb4, G: 0x00, B: 0x9e},
			{R: 0x61, G: 0xd6, B: 0xd6}, {R: 0xf2, G: 0xf2, B: 0xf2},
		},
	}
	PaletteUbuntu = Palette{
		Name: "ubuntu",
		Colors: [16]style.RGB888{
			{R: 0x01, G: 0x01, B: 0x01}, {R: 0xde, G: 0x38, B: 0x2b},
			{R: 0x38, G: 0xb5, B: 0x4a}, {R: 0xff, G: 0xc7, B: 0x06},
			{R: 0x00, G: 0x68, B: 0xb9}, {R: 0xb2, G: 0x29, B: 0xb2},
			{R: 0x2b, G: 0xb5, B: 0xb5}, {R: 0xcc, G: 0xcc, B: 0xcc},
			{R: 0x80, G: 0x80, B: 0x80}, {R: 0xff, G: 0x38, B: 0x2b},
			{R: 0x38, G: 0xff, B: 0x4a}, {R: 0xff, G: 0xff, B: 0x06},
			{R: 0x00, G: 0x9c, B: 0xff}, {R: 0xff, G: 0x29, B: 0xff},
			{R: 0x2b, G: 0xff, B: 0xff}, {R: 0xff, G: 0xff, B: 0xff},
		},
	}
	PaletteDracula = Palette{
		Name: "dracula",
		Colors: [16]style.RGB888{
			{R: 0x21, G: 0x22, B: 0x2c}, {R: 0xff, G: 0x55, B: 0x55},
			{R: 0x50, G: 0xfa, B: 0x7b}, {R: 0xf1, G: 0xfa, B: 0x8c},
			{R: 0xbd, G: 0x93, B: 0xf9}, {R: 0xff, G: 0x79, B: 0xc6},
			{R: 0x8b, G: 0xe9, B: 0xfd}, {R: 0xf8, G: 0xf8, B: 0xf2},
			{R: 0x62, G: 0x72, B: 0xa4}, {R: 0xff, G: 0x6e, B: 0x6e},
			{R: 0x69, G: 0xff, B: 0x94}, {R: 0xff, G: 0xff, B: 0xa5},
			{R: 0xd6, G: 0xac, B: 0xff}, {R: 0xff, G: 0x92, B: 0xdf},
			{R: 0xa4, G: 0xff, B: 0xff}, {R: 0xff, G: 0xff, B: 0xff},
		},
	}
)

// Palettes indexes the built-ins by name for CLI/config lookup.
var Palettes = map[string]Palette{
	PaletteGjm8.Name:       PaletteGjm8,
	PaletteXterm.Name:      PaletteXterm,
	PalettePowerShell.Name: PalettePowerShell,
	PaletteUbuntu.Name:     PaletteUbuntu,
	PaletteDracula.Name:    PaletteDracula,
}
