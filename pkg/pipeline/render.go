package pipeline

import (
	"context"
	"fmt"

	"github.com/matzehuels/perfectmaze/pkg/core/codec"
	"github.com/matzehuels/perfectmaze/pkg/core/render"
	"github.com/matzehuels/perfectmaze/pkg/core/render/treeview"
	"github.com/matzehuels/perfectmaze/pkg/errors"
	"github.com/matzehuels/perfectmaze/pkg/maze"
)

// Render generates output artifacts in the requested formats.
// Options must already be validated.
func Render(ctx context.Context, gen *Generated, opts Options) (map[string][]byte, error) {
	if gen == nil || gen.Grid == nil {
		return nil, errors.New(errors.ErrCodeInvalidInput, "nothing to render")
	}

	artifacts := make(map[string][]byte, len(opts.Formats))
	var svg []byte // shared by svg, png and pdf

	for _, format := range opts.Formats {
		var data []byte
		var err error

		switch format {
		case FormatText:
			var s string
			s, err = render.Render(gen.Grid, gen.Reserved, render.WithGlyphs(opts.glyphs))
			data = []byte(s)
		case FormatHex:
			data = []byte(codec.Format(gen.Grid))
		case FormatJSON:
			data, err = maze.Marshal(gen.Maze)
		case FormatDOT:
			data = []byte(treeview.ToDOT(gen.Grid, gen.Reserved, opts.treeOptions()))
		case FormatSVG, FormatPNG, FormatPDF:
			if svg == nil {
				svg, err = treeview.RenderSVG(ctx, treeview.ToDOT(gen.Grid, gen.Reserved, opts.treeOptions()))
				if err != nil {
					break
				}
			}
			data, err = convertSVG(ctx, svg, format)
		default:
			err = errors.New(errors.ErrCodeInvalidFormat, "unsupported format: %s", format)
		}

		if err != nil {
			return nil, fmt.Errorf("render %s: %w", format, err)
		}
		artifacts[format] = data
	}

	return artifacts, nil
}

func convertSVG(ctx context.Context, svg []byte, format string) ([]byte, error) {
	switch format {
	case FormatPNG:
		return render.ToPNG(ctx, svg, DefaultPNGScale)
	case FormatPDF:
		return render.ToPDF(ctx, svg)
	default:
		return svg, nil
	}
}

func (o *Options) treeOptions() treeview.Options {
	return treeview.Options{ShowReserved: o.ShowReserved}
}
