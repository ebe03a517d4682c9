package tomlconfig

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/tsnapkit/tsnap/svgrender"
)

func writeConfig(t *testing.T, body string) string {
	t.Helper()
	dir := t.TempDir()
	path := filepath.Join(dir, "tsnap.toml")
	if err := os.WriteFile(path, []byte(body), 0o644); err != nil {
		t.Fatal(err)
	}
	return path
}

func TestLoadAppliesOverridesOnDefaults(t *testing.T) {
	path := writeConfig(t, `
width = 1024
line_height = 1.6
dim_opacity = 0.5
line_numbers = true
wrap = "HARD:72"
window_frame = "colored"
palette_name = "dracula"

[scroll]
max_height = 800
min_scrollbar_height = 40

[blink]
interval = 0.8
`)
	cfg, err := Load(path)
	if err != nil {
		t.Fatal(err)
	}
	opts, err := cfg.ToRenderOptions()
	if err != nil {
		t.Fatal(err)
	}

	if opts.Width != 1024 {
		t.Errorf("Width = %d, want 1024", opts.Width)
	}
	if opts.LineHeight != 1.6 {
		t.Errorf("LineHeight = %v, want 1.6", opts.LineHeight)
	}
	if opts.DimOpacity != 0.5 {
		t.Errorf("DimOpacity = %v, want 0.5", opts.DimOpacity)
	}
	if !opts.LineNumbers {
		t.Error("expected LineNumbers to be true")
	}
	if opts.WrapWidth != 72 {
		t.Errorf("WrapWidth = %d, want 72", opts.WrapWidth)
	}
	if opts.WindowFrame != svgrender.WindowFrameColored {
		t.Errorf("WindowFrame = %v, want Colored", opts.WindowFrame)
	}
	if opts.Palette.Name != "dracula" {
		t.Errorf("Palette = %v, want dracula", opts.Palette.Name)
	}
	if opts.Scroll.MaxHeight != 800 {
		t.Errorf("Scroll.MaxHeight = %v, want 800", opts.Scroll.MaxHeight)
	}
	// Untouched scroll fields keep the default.
	if opts.Scroll.PixelsPerScroll != svgrender.DefaultOptions().Scroll.PixelsPerScroll {
		t.Errorf("Scroll.PixelsPerScroll should keep its default")
	}
	if opts.Scroll.MinScrollbarHeight != 40 {
		t.Errorf("Scroll.MinScrollbarHeight = %v, want 40", opts.Scroll.MinScrollbarHeight)
	}
	if opts.Blink.Interval != 0.8 {
		t.Errorf("Blink.Interval = %v, want 0.8", opts.Blink.Interval)
	}
	// Untouched blink field keeps the default.
	if opts.Blink.Opacity != svgrender.DefaultOptions().Blink.Opacity {
		t.Errorf("Blink.Opacity should keep its default")
	}
}

func TestEmptyConfigYieldsDefaults(t *testing.T) {
	path := writeConfig(t, "")
	cfg, err := Load(path)
	if err != nil {
		t.Fatal(err)
	}
	opts, err := cfg.ToRenderOptions()
	if err != nil {
		t.Fatal(err)
	}
	want := svgrender.DefaultOptions()
	if opts.Width != want.Width || opts.DimOpacity != want.DimOpacity || opts.Palette.Name != want.Palette.Name {
		t.Errorf("empty config should reproduce DefaultOptions, got %+v", opts)
	}
}

func TestPaletteColorOverrideWinsOverPaletteName(t *testing.T) {
	path := writeConfig(t, `
palette_name = "xterm"

[palette]
colors = ["", "#ff0000", "", "", "", "", "", ""]
`)
	cfg, err := Load(path)
	if err != nil {
		t.Fatal(err)
	}
	opts, err := cfg.ToRenderOptions()
	if err != nil {
		t.Fatal(err)
	}
	if opts.Palette.Colors[1].R != 0xff || opts.Palette.Colors[1].G != 0 || opts.Palette.Colors[1].B != 0 {
		t.Errorf("expected overridden color 1 to be red, got %+v", opts.Palette.Colors[1])
	}
	if opts.Palette.Colors[0] != svgrender.PaletteXterm.Colors[0] {
		t.Errorf("expected untouched color 0 to keep the xterm palette's value")
	}
}

func TestInvalidWrapIsRejected(t *testing.T) {
	path := writeConfig(t, `wrap = "SOFT:10"`)
	cfg, err := Load(path)
	if err != nil {
		t.Fatal(err)
	}
	if _, err := cfg.ToRenderOptions(); err == nil {
		t.Error("expected an error for a non-HARD wrap spec")
	}
}

func TestUnknownWindowFrameIsRejected(t *testing.T) {
	path := writeConfig(t, `window_frame = "sparkly"`)
	cfg, err := Load(path)
	if err != nil {
		t.Fatal(err)
	}
	if _, err := cfg.ToRenderOptions(); err == nil {
		t.Error("expected an error for an unknown window_frame")
	}
}

func TestInvalidOptionsPropagateValidationError(t *testing.T) {
	path := writeConfig(t, `dim_opacity = 0`)
	cfg, err := Load(path)
	if err != nil {
		t.Fatal(err)
	}
	if _, err := cfg.ToRenderOptions(); err == nil {
		t.Error("expected a validation error for dim_opacity = 0")
	}
}
