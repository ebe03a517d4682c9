package svgrender

import "github.com/tsnapkit/tsnap/transcript"

// Render assembles t under opts and renders it with whichever template
// opts.PureSVG selects.
func Render(t transcript.Transcript, opts Options) (string, error) {
	data, err := transcript.Assemble(t, opts.Options, opts.Embedder)
	if err != nil {
		return "", err
	}
	if opts.PureSVG {
		return RenderPure(data, opts)
	}
	return RenderHybrid(data, opts)
}
