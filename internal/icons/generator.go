package icons

import (
	"context"
	"errors"
	"fmt"
	"path/filepath"
	"strconv"
	"strings"

	"github.com/hashicorp/go-hclog"

	"github.com/jmylchreest/favicons/internal/colour"
	"github.com/jmylchreest/favicons/internal/config"
	"github.com/jmylchreest/favicons/internal/image"
)

// Tool is the external converter the generator drives.
type Tool interface {
	// Convert runs the converter on inputs with flags, writing output.
	Convert(ctx context.Context, inputs []string, flags []string, output string) error
	// TouchColour samples the apple touch icon background from src.
	TouchColour(ctx context.Context, src string) (colour.Setting, error)
	// TileColour samples the Windows tile background from src.
	TileColour(ctx context.Context, src string) (colour.Setting, error)
}

// Colours are the background colours resolved for one source.
type Colours struct {
	Touch colour.Setting
	Tile  colour.Setting
}

// Result describes what was generated for one source.
type Result struct {
	Source string
	Dest   string
	// Artifacts are the persisted files, in generation order.
	Artifacts   []Artifact
	Colours     Colours
	Precomposed bool
}

// Has reports whether a file with purpose p was generated.
func (r *Result) Has(p Purpose) bool {
	for _, a := range r.Artifacts {
		if a.Purpose == p {
			return true
		}
	}
	return false
}

// Generator produces the icon set for a source image.
type Generator struct {
	tool   Tool
	opts   config.Options
	logger hclog.Logger
}

// NewGenerator creates a Generator. opts is treated as read-only.
func NewGenerator(tool Tool, opts config.Options, logger hclog.Logger) *Generator {
	if logger == nil {
		logger = hclog.NewNullLogger()
	}
	return &Generator{
		tool:   tool,
		opts:   opts,
		logger: logger,
	}
}

// Generate builds every catalog variant for source into dest. html reports
// whether the result is written to an HTML document, in which case the tile
// colour is left to the meta tag. The first converter failure aborts the run;
// files already written are left in place.
func (g *Generator) Generate(ctx context.Context, source, dest string, html bool) (*Result, error) {
	catalog := Catalog(g.opts)
	p := newPipeline(dest, catalog)
	colours := &colourResolver{tool: g.tool, source: source, logger: g.logger}

	g.logger.Info("generating icons", "source", source, "dest", dest)
	g.checkSourceSize(source, catalog)

	result := &Result{
		Source:      source,
		Dest:        dest,
		Precomposed: g.opts.Precomposed,
	}

	for i, v := range catalog {
		inputs, err := p.ready(i)
		if err != nil {
			return nil, err
		}

		var flags []string
		if len(v.Inputs) == 0 {
			src := source
			if sibling, ok := image.SizedSibling(source, v.Size); ok {
				g.logger.Debug("using hand-authored size", "file", sibling)
				src = sibling
			}
			inputs = []string{src}
			flags = append(flags, "-resize", v.Size)
		}
		flags = append(flags, v.Flags...)

		bg, err := g.background(ctx, v, colours, html)
		if err != nil {
			return nil, err
		}
		flags = append(flags, bg...)

		out := filepath.Join(dest, v.Filename)
		if err := g.tool.Convert(ctx, inputs, flags, out); err != nil {
			return nil, fmt.Errorf("failed to generate %s: %w", v.Filename, err)
		}
		a := p.record(i)
		if err := p.release(i); err != nil {
			return nil, err
		}

		if !v.Transient() {
			result.Artifacts = append(result.Artifacts, a)
			g.logger.Info("generated", "file", v.Filename)
		}
	}

	if err := p.sweep(); err != nil {
		return nil, err
	}

	result.Colours = Colours{
		Touch: colours.value(g.opts.AppleTouchBackgroundColor, colours.touch),
		Tile:  colours.value(g.opts.TileColor, colours.tile),
	}

	return result, nil
}

// background returns the -background/-flatten flags for v, resolving
// "auto" colours on first use.
func (g *Generator) background(ctx context.Context, v Variant, colours *colourResolver, html bool) ([]string, error) {
	var c colour.Setting
	var err error

	switch v.Background {
	case BackgroundTouch:
		c, err = colours.resolve(ctx, g.opts.AppleTouchBackgroundColor, &colours.touch, g.tool.TouchColour)
	case BackgroundTile:
		c, err = colours.resolve(ctx, g.opts.TileColor, &colours.tile, g.tool.TileColour)
		// With HTML output the tile colour goes into a meta tag instead.
		if html {
			return nil, err
		}
	default:
		return nil, nil
	}

	if err != nil || c.IsNone() {
		return nil, err
	}
	return []string{"-background", c.String(), "-flatten"}, nil
}

// checkSourceSize warns when the source is smaller than the largest variant.
func (g *Generator) checkSourceSize(source string, catalog []Variant) {
	w, h, err := image.GetImageDimensions(source)
	if err != nil {
		g.logger.Debug("skipping size check", "source", source, "reason", err)
		return
	}

	largest := 0
	for _, v := range catalog {
		if n := sizeEdge(v.Size); n > largest {
			largest = n
		}
	}

	if w < largest || h < largest {
		g.logger.Warn("source is smaller than the largest icon and will be upscaled",
			"source", source, "size", fmt.Sprintf("%dx%d", w, h), "largest", fmt.Sprintf("%dx%d", largest, largest))
	}
}

// sizeEdge returns the width of a "WxH" geometry, or 0.
func sizeEdge(size string) int {
	w, _, ok := strings.Cut(size, "x")
	if !ok {
		return 0
	}
	n, err := strconv.Atoi(w)
	if err != nil {
		return 0
	}
	return n
}

// colourResolver resolves "auto" settings at most once per source.
type colourResolver struct {
	tool   Tool
	source string
	logger hclog.Logger

	touch *colour.Setting
	tile  *colour.Setting
}

// resolve returns setting unchanged unless it is "auto", in which case the
// colour is derived once and cached in *cached. A derivation failure
// degrades to "none".
func (r *colourResolver) resolve(
	ctx context.Context,
	setting colour.Setting,
	cached **colour.Setting,
	derive func(ctx context.Context, src string) (colour.Setting, error),
) (colour.Setting, error) {
	if !setting.IsAuto() {
		return setting, nil
	}
	if *cached != nil {
		return **cached, nil
	}

	c, err := derive(ctx, r.source)
	if err != nil {
		var derr *colour.DerivationError
		if !errors.As(err, &derr) {
			return "", err
		}
		r.logger.Warn("could not derive background colour, disabling it", "source", r.source, "error", err)
		c = colour.None
	}

	*cached = &c
	return c, nil
}

// value returns the resolved colour if one was derived, else setting.
func (r *colourResolver) value(setting colour.Setting, cached *colour.Setting) colour.Setting {
	if cached != nil {
		return *cached
	}
	return setting
}
