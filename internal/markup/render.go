package markup

import "log/slog"

// Renderer renders one document's event buffer to HTML through the standard
// pass chain. A Renderer holds no per-document state, but the conventional
// use is one Renderer value per document; the shared resources it points at
// (highlighter, math backend) must be immutable.
type Renderer struct {
	// Highlighter may be nil; code blocks then render as plaintext.
	Highlighter Highlighter
	// Math may be nil; math events then render as escaped source.
	Math MathRenderer
	// Images maps image destinations to their precomputed variants.
	Images map[string]ImageVariants
	// Logger receives degraded-case warnings. Nil means slog.Default.
	Logger *slog.Logger
}

// Render runs the event buffer through the code, math, image and figure
// passes and the HTML writer. It returns the document split at the summary
// marker; rest is empty when there is no marker.
func (r *Renderer) Render(events []Event) (summary, rest string, err error) {
	stream := Compose(Events(events),
		CodePass(r.Highlighter, r.Logger),
		MathPass(r.Math),
		ImagePass(r.Images, r.Logger),
		FigurePass(),
	)
	return WriteHTML(stream, r.Logger)
}
