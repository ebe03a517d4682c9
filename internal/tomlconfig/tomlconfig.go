// Package tomlconfig loads the §6 TOML configuration file and turns it
// into svgrender.Options, layering file-supplied values over
// svgrender.DefaultOptions so an absent key keeps its default rather
// than zeroing the field out.
package tomlconfig

import (
	"fmt"
	"os"
	"strconv"
	"strings"

	"github.com/pelletier/go-toml/v2"

	"github.com/tsnapkit/tsnap/style"
	"github.com/tsnapkit/tsnap/svgrender"
	"github.com/tsnapkit/tsnap/transcript"
)

// ScrollConfig mirrors transcript.ScrollOptions' fields for TOML
// decoding; nil (absent) fields are left at their DefaultOptions() value.
type ScrollConfig struct {
	MaxHeight          *float64 `toml:"max_height"`
	PixelsPerScroll    *float64 `toml:"pixels_per_scroll"`
	Interval           *float64 `toml:"interval"`
	ElisionThreshold   *float64 `toml:"elision_threshold"`
	MinScrollbarHeight *float64 `toml:"min_scrollbar_height"`
}

// BlinkConfig mirrors transcript.BlinkOptions' fields for TOML decoding.
type BlinkConfig struct {
	Interval *float64 `toml:"interval"`
	Opacity  *float64 `toml:"opacity"`
}

// PaletteConfig overrides individual palette entries: 8 normal colors
// followed by 8 "intense" variants, each a "#rrggbb" hex string. Any
// entry left empty keeps the selected named palette's color for that
// slot.
type PaletteConfig struct {
	Colors        [8]string `toml:"colors"`
	IntenseColors [8]string `toml:"intense_colors"`
}

// Config is the decoded shape of a tsnap TOML config file (spec §6).
type Config struct {
	Width            *int           `toml:"width"`
	LineHeight       *float64       `toml:"line_height"`
	AdvanceWidth     *float64       `toml:"advance_width"`
	Scroll           *ScrollConfig  `toml:"scroll"`
	Blink            *BlinkConfig   `toml:"blink"`
	Wrap             string         `toml:"wrap"` // "HARD:<n>", or empty to disable
	LineNumbers      *bool          `toml:"line_numbers"`
	DimOpacity       *float64       `toml:"dim_opacity"`
	WindowFrame      string         `toml:"window_frame"` // "none" | "disabled" | "colored"
	Palette          *PaletteConfig `toml:"palette"`
	PaletteName      string         `toml:"palette_name"`
	FontFamily       string         `toml:"font_family"`
	AdditionalStyles string         `toml:"additional_styles"`
}

// Load reads and decodes a TOML config file at path.
func Load(path string) (Config, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return Config{}, fmt.Errorf("tomlconfig: reading %s: %w", path, err)
	}
	var cfg Config
	if err := toml.Unmarshal(data, &cfg); err != nil {
		return Config{}, fmt.Errorf("tomlconfig: parsing %s: %w", path, err)
	}
	return cfg, nil
}

// ToRenderOptions layers cfg over svgrender.DefaultOptions(), returning
// options ready to validate and render with.
func (cfg Config) ToRenderOptions() (svgrender.Options, error) {
	opts := svgrender.DefaultOptions()

	if cfg.Width != nil {
		opts.Width = *cfg.Width
	}
	if cfg.LineHeight != nil {
		opts.LineHeight = *cfg.LineHeight
	}
	if cfg.AdvanceWidth != nil {
		opts.AdvanceWidth = *cfg.AdvanceWidth
	}
	if cfg.DimOpacity != nil {
		opts.DimOpacity = *cfg.DimOpacity
	}
	if cfg.LineNumbers != nil {
		opts.LineNumbers = *cfg.LineNumbers
	}
	opts.FontFamily = orDefault(cfg.FontFamily, opts.FontFamily)
	opts.AdditionalStyles = orDefault(cfg.AdditionalStyles, opts.AdditionalStyles)

	applyScroll(cfg.Scroll, &opts.Scroll)
	applyBlink(cfg.Blink, &opts.Blink)

	if err := applyWrap(cfg.Wrap, &opts.WrapWidth); err != nil {
		return svgrender.Options{}, err
	}
	if err := applyWindowFrame(cfg.WindowFrame, &opts.WindowFrame); err != nil {
		return svgrender.Options{}, err
	}
	if err := applyPalette(cfg, &opts.Palette); err != nil {
		return svgrender.Options{}, err
	}

	if err := opts.Options.Validate(); err != nil {
		return svgrender.Options{}, fmt.Errorf("tomlconfig: %w", err)
	}
	return opts, nil
}

func orDefault(v, def string) string {
	if v == "" {
		return def
	}
	return v
}

func applyScroll(cfg *ScrollConfig, out *transcript.ScrollOptions) {
	if cfg == nil {
		return
	}
	if cfg.MaxHeight != nil {
		out.MaxHeight = *cfg.MaxHeight
	}
	if cfg.PixelsPerScroll != nil {
		out.PixelsPerScroll = *cfg.PixelsPerScroll
	}
	if cfg.Interval != nil {
		out.Interval = *cfg.Interval
	}
	if cfg.ElisionThreshold != nil {
		out.ElisionThreshold = *cfg.ElisionThreshold
	}
	if cfg.MinScrollbarHeight != nil {
		out.MinScrollbarHeight = *cfg.MinScrollbarHeight
	}
}

func applyBlink(cfg *BlinkConfig, out *transcript.BlinkOptions) {
	if cfg == nil {
		return
	}
	if cfg.Interval != nil {
		out.Interval = *cfg.Interval
	}
	if cfg.Opacity != nil {
		out.Opacity = *cfg.Opacity
	}
}

// applyWrap parses "HARD:<n>" into a positive WrapWidth; an empty
// string leaves WrapWidth untouched (no override).
func applyWrap(wrap string, out *int) error {
	if wrap == "" {
		return nil
	}
	parts := strings.SplitN(wrap, ":", 2)
	if len(parts) != 2 || !strings.EqualFold(parts[0], "HARD") {
		return fmt.Errorf("tomlconfig: invalid wrap %q, want \"HARD:<n>\"", wrap)
	}
	n, err := strconv.Atoi(parts[1])
	if err != nil || n <= 0 {
		return fmt.Errorf("tomlconfig: invalid wrap width %q", parts[1])
	}
	*out = n
	return nil
}

func applyWindowFrame(name string, out *svgrender.WindowFrame) error {
	switch name {
	case "":
		return nil
	case "none":
		*out = svgrender.WindowFrameNone
	case "disabled":
		*out = svgrender.WindowFrameDisabled
	case "colored":
		*out = svgrender.WindowFrameColored
	default:
		return fmt.Errorf("tomlconfig: unknown window_frame %q", name)
	}
	return nil
}

func applyPalette(cfg Config, out *svgrender.Palette) error {
	if cfg.PaletteName != "" {
		p, ok := svgrender.Palettes[cfg.PaletteName]
		if !ok {
			return fmt.Errorf("tomlconfig: unknown palette %q", cfg.PaletteName)
		}
		*out = p
	}
	if cfg.Palette == nil {
		return nil
	}
	for i, hex := range cfg.Palette.Colors {
		if hex == "" {
			continue
		}
		c, err := style.ParseHex(hex)
		if err != nil {
			return fmt.Errorf("tomlconfig: palette.colors[%d]: %w", i, err)
		}
		out.Colors[i] = style.RGB888{R: c.R, G: c.G, B: c.B}
	}
	for i, hex := range cfg.Palette.IntenseColors {
		if hex == "" {
			continue
		}
		c, err := style.ParseHex(hex)
		if err != nil {
			return fmt.Errorf("tomlconfig: palette.intense_colors[%d]: %w", i, err)
		}
		out.Colors[8+i] = style.RGB888{R: c.R, G: c.G, B: c.B}
	}
	return nil
}
