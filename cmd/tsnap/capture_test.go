package main

import (
	"bytes"
	"strings"
	"testing"
)

func TestCaptureCommandRendersOneInteraction(t *testing.T) {
	cmd := newCaptureCmd()
	var out bytes.Buffer
	cmd.SetOut(&out)
	cmd.SetIn(strings.NewReader("Hello, \x1b[32mworld\x1b[0m!\n"))
	cmd.SetArgs([]string{"echo hi"})

	if err := cmd.Execute(); err != nil {
		t.Fatalf("capture: %v", err)
	}
	svg := out.String()
	if !strings.Contains(svg, "<svg") {
		t.Fatalf("expected an SVG document, got %q", svg)
	}
	if !strings.Contains(svg, "echo hi") {
		t.Fatalf("expected the input text in the output, got %q", svg)
	}
}

func TestCaptureCommandRejectsUnknownPalette(t *testing.T) {
	cmd := newCaptureCmd()
	cmd.SetOut(&bytes.Buffer{})
	cmd.SetIn(strings.NewReader("hi\n"))
	cmd.SetArgs([]string{"--palette", "nonexistent", "echo hi"})

	if err := cmd.Execute(); err == nil {
		t.Fatal("expected an error for an unknown palette")
	}
}

func TestParseWrap(t *testing.T) {
	n, err := parseWrap("HARD:40")
	if err != nil || n != 40 {
		t.Fatalf("parseWrap(HARD:40) = %d, %v", n, err)
	}
	if _, err := parseWrap("soft:40"); err == nil {
		t.Fatal("expected an error for a non-HARD wrap spec")
	}
	if _, err := parseWrap("HARD:0"); err == nil {
		t.Fatal("expected an error for a non-positive wrap width")
	}
}
