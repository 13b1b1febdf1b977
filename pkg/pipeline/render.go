package pipeline

import (
	"github.com/gitlanes/gitlanes/pkg/errors"
	"github.com/gitlanes/gitlanes/pkg/graph"
	"github.com/gitlanes/gitlanes/pkg/render/dot"
	"github.com/gitlanes/gitlanes/pkg/render/term"
)

// renderFormats renders the layout into every requested format.
func renderFormats(layout graph.Layout, opts Options) (map[string][]byte, error) {
	artifacts := make(map[string][]byte, len(opts.Formats))
	for _, format := range opts.Formats {
		data, err := renderFormat(layout, format, opts)
		if err != nil {
			return nil, errors.Wrap(errors.ErrCodeInternal, err, "render %s", format)
		}
		artifacts[format] = data
	}
	return artifacts, nil
}

func renderFormat(layout graph.Layout, format string, opts Options) ([]byte, error) {
	switch format {
	case FormatJSON:
		return graph.MarshalLayout(layout)
	case FormatDOT:
		return []byte(dot.ToDOT(layout)), nil
	case FormatSVG:
		return dot.RenderSVG(layout)
	case FormatTerm:
		return []byte(term.RenderString(layout, term.Options{
			NoColor:    opts.NoColor,
			ShowAuthor: opts.ShowAuthor,
			ShowTime:   opts.ShowTime,
		})), nil
	default:
		return nil, errors.New(errors.ErrCodeInvalidFormat, "unknown format: %q", format)
	}
}
