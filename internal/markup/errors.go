package markup

import "errors"

// Sentinel errors for markup rendering.
var (
	// ErrUnknownLanguage is reported by a Highlighter when it has no grammar
	// for the requested language. The code pass degrades to escaped
	// plaintext instead of failing the render.
	ErrUnknownLanguage = errors.New("unknown highlight language")

	ErrHighlight           = errors.New("code highlighting failed")
	ErrMathRender          = errors.New("math rendering failed")
	ErrUnknownInternalLink = errors.New("unknown internal link")
)
