// Package svgparse implements the §4.8 SVG reverse-parser: it streams
// a previously rendered snapshot and reconstructs the transcript.Transcript
// that produced it, so snapshots can be compared symbolically instead of
// byte-for-byte.
package svgparse

import "fmt"

// Range is a half-open byte range into the parsed document, carried by
// every error per spec §4.8 ("every parse error carries a byte range
// located against the input buffer").
type Range struct{ Start, End int }

// UnexpectedRootError reports a document whose root element isn't <svg>.
type UnexpectedRootError struct{ Range Range }

func (e UnexpectedRootError) Error() string {
	return fmt.Sprintf("svgparse: unexpected root element at %v", e.Range)
}

// InvalidContainerError reports a document with no recognizable
// hybrid or pure container element.
type InvalidContainerError struct{ Range Range }

func (e InvalidContainerError) Error() string {
	return fmt.Sprintf("svgparse: no recognizable container at %v", e.Range)
}

// InvalidExitStatusError reports a data-exit-status attribute that
// isn't a valid signed integer.
type InvalidExitStatusError struct {
	Value string
	Range Range
}

func (e InvalidExitStatusError) Error() string {
	return fmt.Sprintf("svgparse: invalid exit status %q at %v", e.Value, e.Range)
}

// UnexpectedEOFError reports the document ending mid-container.
type UnexpectedEOFError struct{ Range Range }

func (e UnexpectedEOFError) Error() string {
	return fmt.Sprintf("svgparse: unexpected end of document at %v", e.Range)
}

// InvalidHardBreakError reports a hard-br marker not immediately
// followed by the literal '\n' it's supposed to gobble.
type InvalidHardBreakError struct{ Range Range }

func (e InvalidHardBreakError) Error() string {
	return fmt.Sprintf("svgparse: hard break marker missing its newline at %v", e.Range)
}

// XMLError wraps an underlying encoding/xml error with a byte range.
type XMLError struct {
	Err   error
	Range Range
}

func (e XMLError) Error() string {
	return fmt.Sprintf("svgparse: xml error at %v: %v", e.Range, e.Err)
}

func (e XMLError) Unwrap() error {
	return e.Err
}
