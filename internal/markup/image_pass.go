package markup

import (
	"log/slog"
	"strconv"
)

// ImagePass rewrites Image events into <img> markup using the precomputed
// variant table. A destination missing from the table degrades to a blank
// placeholder with a warning; one broken image must not fail a whole build.
func ImagePass(images map[string]ImageVariants, logger *slog.Logger) Pass {
	if logger == nil {
		logger = slog.Default()
	}
	return func(src Stream) Stream {
		return &imagePass{src: src, images: images, logger: logger}
	}
}

type imagePass struct {
	src    Stream
	images map[string]ImageVariants
	logger *slog.Logger
	err    error
}

func (p *imagePass) Next() (Event, error) {
	if p.err != nil {
		return Event{}, p.err
	}
	ev, err := p.src.Next()
	if err != nil {
		p.err = err
		return Event{}, err
	}
	if ev.Kind != EventImage {
		return ev, nil
	}

	variants, ok := p.images[ev.Destination]
	if !ok {
		p.logger.Warn("could not find image", "destination", ev.Destination)
		var h htmlBuilder
		h.tag("img", ev.Attrs, Attr{Key: "alt", Value: ev.Text})
		return HtmlBlock(h.String(), Attributes{}), nil
	}

	extras := make([]Attr, 0, 4)
	extras = append(extras, Attr{Key: "src", Value: ev.Destination})
	if variants.OriginalWidth > 0 {
		width := strconv.Itoa(variants.OriginalWidth)
		srcset := "/" + variants.Original + " " + width + "w"
		if variants.Width1536 != "" {
			srcset += ",/" + variants.Width1536 + " 1536w"
		}
		if variants.Width768 != "" {
			srcset += ",/" + variants.Width768 + " 768w"
		}
		extras = append(extras,
			Attr{Key: "srcset", Value: srcset},
			Attr{Key: "style", Value: "max-width: calc(min(100%, " + width + "px))"},
		)
	}
	extras = append(extras, Attr{Key: "alt", Value: ev.Text})

	var h htmlBuilder
	h.tag("img", ev.Attrs, extras...)
	return HtmlBlock(h.String(), Attributes{}), nil
}
