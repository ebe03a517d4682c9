// Package transcript holds the recorded-session data model (§3) and the
// template data assembler (§4.5): it turns a Transcript plus validated
// render options into the structure the renderer consumes, without
// knowing anything about SVG or HTML.
package transcript

import "github.com/tsnapkit/tsnap/style"

// UserInput is one line of input sent to the shell collaborator, plus
// the prompt it was issued under.
type UserInput struct {
	Text   string
	Prompt string
	Hidden bool
}

// Interaction pairs one UserInput with the StyledString it produced.
// ExitStatus is nil when no exit status is known (e.g. a capture with
// no shell collaborator involved).
type Interaction struct {
	Input      UserInput
	Output     style.StyledString
	ExitStatus *int
}

// Failed reports whether this interaction's exit status is non-zero.
// An unknown exit status never counts as a failure.
func (it Interaction) Failed() bool {
	return it.ExitStatus != nil && *it.ExitStatus != 0
}

// Transcript is an ordered, append-only sequence of interactions — the
// serializable unit of a session (spec §3, §GLOSSARY).
type Transcript struct {
	Interactions []Interaction
}

// Push appends an interaction.
func (t *Transcript) Push(it Interaction) {
	t.Interactions = append(t.Interactions, it)
}

// HasFailures reports whether any interaction failed.
func (t Transcript) HasFailures() bool {
	for _, it := range t.Interactions {
		if it.Failed() {
			return true
		}
	}
	return false
}
