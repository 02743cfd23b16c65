// Package config resolves favicon generation options from defaults, a YAML
// config file and command-line flags.
package config

import (
	"os"

	"github.com/jmylchreest/favicons/internal/colour"
)

// Options is the finalized configuration for a run.
// It is built once per invocation and never mutated afterwards; "auto"
// colours are resolved per source by the generator into local values.
type Options struct {
	// TrueColor keeps favicon.ico in full colour instead of a 256 colour palette.
	TrueColor bool
	// Precomposed generates the "-precomposed" apple touch icon flavour.
	Precomposed bool
	// HTMLPrefix is prepended verbatim to every href/content in the HTML tags.
	HTMLPrefix string
	// AppleTouchBackgroundColor flattens touch icons onto this colour.
	AppleTouchBackgroundColor colour.Setting
	// WindowsTile generates windows-tile-144x144.png.
	WindowsTile bool
	// Coast generates coast-icon-228x228.png.
	Coast bool
	// TileBlackWhite recolours the tile into a black/white silhouette.
	TileBlackWhite bool
	// TileColor is the tile background colour.
	TileColor colour.Setting
	// HTML is the document to patch with icon tags, empty to disable.
	HTML string
}

// Defaults returns the documented default options.
func Defaults() Options {
	return Options{
		TrueColor:                 false,
		Precomposed:               true,
		HTMLPrefix:                "",
		AppleTouchBackgroundColor: colour.Auto,
		WindowsTile:               true,
		Coast:                     false,
		TileBlackWhite:            true,
		TileColor:                 colour.Auto,
		HTML:                      "",
	}
}

// NeedHTML reports whether HTML patching is active: a target is configured
// and the file exists. A missing target silently disables patching.
func (o Options) NeedHTML() bool {
	if o.HTML == "" {
		return false
	}
	info, err := os.Stat(o.HTML)
	return err == nil && !info.IsDir()
}

// Partial is a possibly incomplete set of options. Nil fields are left to
// lower layers.
type Partial struct {
	TrueColor                 *bool   `yaml:"trueColor"`
	Precomposed               *bool   `yaml:"precomposed"`
	HTMLPrefix                *string `yaml:"HTMLPrefix"`
	AppleTouchBackgroundColor *string `yaml:"appleTouchBackgroundColor"`
	WindowsTile               *bool   `yaml:"windowsTile"`
	Coast                     *bool   `yaml:"coast"`
	TileBlackWhite            *bool   `yaml:"tileBlackWhite"`
	TileColor                 *string `yaml:"tileColor"`
	HTML                      *string `yaml:"html"`
}

// Resolve layers partials over the defaults, later partials winning.
func Resolve(partials ...Partial) (Options, error) {
	opts := Defaults()

	for _, p := range partials {
		setBool(&opts.TrueColor, p.TrueColor)
		setBool(&opts.Precomposed, p.Precomposed)
		setBool(&opts.WindowsTile, p.WindowsTile)
		setBool(&opts.Coast, p.Coast)
		setBool(&opts.TileBlackWhite, p.TileBlackWhite)

		if p.HTMLPrefix != nil {
			opts.HTMLPrefix = *p.HTMLPrefix
		}
		if p.HTML != nil {
			opts.HTML = *p.HTML
		}

		if p.AppleTouchBackgroundColor != nil {
			s, err := colour.ParseSetting(*p.AppleTouchBackgroundColor)
			if err != nil {
				return Options{}, fieldError("appleTouchBackgroundColor", err)
			}
			opts.AppleTouchBackgroundColor = s
		}
		if p.TileColor != nil {
			s, err := colour.ParseSetting(*p.TileColor)
			if err != nil {
				return Options{}, fieldError("tileColor", err)
			}
			opts.TileColor = s
		}
	}

	return opts, nil
}

func setBool(dst *bool, src *bool) {
	if src != nil {
		*dst = *src
	}
}
