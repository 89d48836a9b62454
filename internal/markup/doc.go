// Package markup defines the intermediate representation shared by all entry
// markup grammars and renders it to HTML.
//
// Source adapters (see the commonmark and djot subpackages) translate parser
// events into a single canonical stream of markup.Event values. Zero or more
// rewrite passes transform that stream lazily (code highlighting, math
// typesetting, image expansion, figure promotion), and a stateful writer
// consumes the final stream exactly once to produce HTML text.
//
// The writer is the only place where HTML escaping happens. Adapters and
// passes carry text unescaped; passes that produce ready-made HTML emit it as
// raw HtmlInline/HtmlBlock events which the writer copies verbatim.
//
// A Renderer instance is scoped to a single document render and holds no
// global state, so callers may render many documents concurrently with one
// Renderer each. Shared resources (the highlighter, the math backend) are
// constructed once by the caller and passed in by reference.
package markup
