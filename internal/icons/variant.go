// Package icons builds the favicon variant catalog and generates it from a
// source image through a staged conversion pipeline.
package icons

import (
	"slices"

	"github.com/jmylchreest/favicons/internal/config"
)

// Purpose identifies what a generated file is for.
type Purpose string

const (
	// PurposeIntermediate marks the 16/32/48 inputs to favicon.ico. They are
	// deleted once the icon is built.
	PurposeIntermediate Purpose = "intermediate"
	PurposeFaviconICO   Purpose = "favicon"
	PurposeFaviconPNG   Purpose = "favicon-png"
	PurposeTouch        Purpose = "apple-touch-icon"
	PurposeCoast        Purpose = "coast"
	PurposeTile         Purpose = "windows-tile"
)

// Background selects which resolved colour a variant is flattened onto.
type Background int

const (
	BackgroundNone Background = iota
	BackgroundTouch
	BackgroundTile
)

// Variant is one entry in the catalog.
type Variant struct {
	Purpose Purpose
	// Size is the -resize geometry. Empty for variants built from other artifacts.
	Size string
	// Filename is the output name inside the destination directory.
	Filename string
	// Flags are the variant's own transform flags, applied after -resize and
	// before any background flags.
	Flags []string
	// Inputs names prior artifacts this variant is built from instead of the
	// source image. Each must exist when the variant runs.
	Inputs []string
	// Background picks the colour the variant is flattened onto.
	Background Background
}

// Transient reports whether the variant's file is removed after use.
func (v Variant) Transient() bool {
	return v.Purpose == PurposeIntermediate
}

const (
	precomposedSuffix = "-precomposed"

	FaviconICO  = "favicon.ico"
	FaviconPNG  = "favicon.png"
	TouchIcon   = "apple-touch-icon.png"
	CoastIcon   = "coast-icon-228x228.png"
	WindowsTile = "windows-tile-144x144.png"
)

// intermediateSizes feed favicon.ico.
// 16x16: desktop browsers, address bar, tabs
// 32x32: safari reading list, non-retina iPhone, windows 7+ taskbar
// 48x48: windows desktop
var intermediateSizes = []string{"16x16", "32x32", "48x48"}

// touchSizes are the sized apple touch icons.
// 72x72: iPad non-retina
// 114x114: iPhone retina, iOS 6 and lower
// 120x120: iPhone retina, iOS 7 and higher
// 144x144: iPad retina
var touchSizes = []string{"72x72", "114x114", "120x120", "144x144"}

// TouchSizes returns the sizes of the sized apple touch icons.
func TouchSizes() []string {
	return slices.Clone(touchSizes)
}

// tileBlackWhiteFlags collapse red and blue to black and green to white.
var tileBlackWhiteFlags = []string{
	"-fuzz", "100%", "-fill", "black", "-opaque", "red",
	"-fuzz", "100%", "-fill", "black", "-opaque", "blue",
	"-fuzz", "100%", "-fill", "white", "-opaque", "green",
}

// PrecomposedSuffix returns "-precomposed" when precomposed icons are on.
func PrecomposedSuffix(opts config.Options) string {
	if opts.Precomposed {
		return precomposedSuffix
	}
	return ""
}

// TouchIconName returns the apple touch icon filename for size, or the
// size-less name when size is empty.
func TouchIconName(size, suffix string) string {
	if size == "" {
		return "apple-touch-icon" + suffix + ".png"
	}
	return "apple-touch-icon-" + size + suffix + ".png"
}

// Catalog returns the variants to generate for opts, in generation order.
func Catalog(opts config.Options) []Variant {
	var catalog []Variant

	intermediates := make([]string, 0, len(intermediateSizes))
	for _, size := range intermediateSizes {
		name := size + ".png"
		intermediates = append(intermediates, name)
		catalog = append(catalog, Variant{
			Purpose:  PurposeIntermediate,
			Size:     size,
			Filename: name,
		})
	}

	icoFlags := []string{"-alpha", "on", "-background", "none"}
	if !opts.TrueColor {
		icoFlags = append(icoFlags, "-colors", "256")
	}
	catalog = append(catalog, Variant{
		Purpose:  PurposeFaviconICO,
		Filename: FaviconICO,
		Flags:    icoFlags,
		Inputs:   intermediates,
	})

	// 64x64 favicon.png has higher priority than .ico
	catalog = append(catalog, Variant{
		Purpose:  PurposeFaviconPNG,
		Size:     "64x64",
		Filename: FaviconPNG,
	})

	// 57x57: iPhone non-retina, Android 2.1+
	catalog = append(catalog, Variant{
		Purpose:    PurposeTouch,
		Size:       "57x57",
		Filename:   TouchIcon,
		Background: BackgroundTouch,
	})

	suffix := PrecomposedSuffix(opts)
	if opts.Precomposed {
		catalog = append(catalog, Variant{
			Purpose:    PurposeTouch,
			Size:       "57x57",
			Filename:   TouchIconName("", suffix),
			Background: BackgroundTouch,
		})
	}

	for _, size := range touchSizes {
		catalog = append(catalog, Variant{
			Purpose:    PurposeTouch,
			Size:       size,
			Filename:   TouchIconName(size, suffix),
			Background: BackgroundTouch,
		})
	}

	if opts.Coast {
		catalog = append(catalog, Variant{
			Purpose:    PurposeCoast,
			Size:       "228x228",
			Filename:   CoastIcon,
			Background: BackgroundTouch,
		})
	}

	if opts.WindowsTile {
		var flags []string
		if opts.TileBlackWhite {
			flags = append(flags, tileBlackWhiteFlags...)
		}
		catalog = append(catalog, Variant{
			Purpose:    PurposeTile,
			Size:       "144x144",
			Filename:   WindowsTile,
			Flags:      flags,
			Background: BackgroundTile,
		})
	}

	return catalog
}
