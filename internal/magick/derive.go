package magick

import (
	"context"
	"errors"

	"github.com/jmylchreest/favicons/internal/colour"
)

// touchColourFlags skews the image like a polaroid so edge background is
// cropped away, then reduces it to one opaque colour.
var touchColourFlags = []string{
	"-polaroid", "180",
	"-resize", "1x1",
	"-colors", "1",
	"-alpha", "off",
	"-unique-colors",
}

// tileColourFlags reduces the whole image to one undithered opaque colour.
var tileColourFlags = []string{
	"+dither",
	"-colors", "1",
	"-alpha", "off",
	"-unique-colors",
}

// TouchColour samples the apple touch icon background colour from src.
func (c *Converter) TouchColour(ctx context.Context, src string) (colour.Setting, error) {
	return c.deriveColour(ctx, src, touchColourFlags)
}

// TileColour samples the Windows tile background colour from src.
func (c *Converter) TileColour(ctx context.Context, src string) (colour.Setting, error) {
	return c.deriveColour(ctx, src, tileColourFlags)
}

// deriveColour returns a *ToolNotFoundError when the converter is missing and
// a *colour.DerivationError for every other failure.
func (c *Converter) deriveColour(ctx context.Context, src string, flags []string) (colour.Setting, error) {
	args := make([]string, 0, len(flags)+2)
	args = append(args, src)
	args = append(args, flags...)
	args = append(args, TextOutput)

	out, err := c.run(ctx, args)
	if err != nil {
		var notFound *ToolNotFoundError
		if errors.As(err, &notFound) {
			return "", err
		}
		return "", &colour.DerivationError{Source: src, Cause: err}
	}

	hex, ok := colour.ParseUniqueColours(out, c.Names()...)
	if !ok {
		return "", &colour.DerivationError{Source: src, Output: string(out)}
	}

	c.logger.Debug("derived colour", "source", src, "colour", hex)
	return colour.Setting(hex), nil
}
