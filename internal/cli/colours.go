package cli

import (
	"errors"
	"fmt"

	"github.com/spf13/cobra"

	"github.com/jmylchreest/favicons/internal/colour"
	"github.com/jmylchreest/favicons/internal/config"
	"github.com/jmylchreest/favicons/internal/image"
	"github.com/jmylchreest/favicons/internal/magick"
)

func newColoursCmd() *cobra.Command {
	var convert string

	cmd := &cobra.Command{
		Use:     "colours <image>",
		Aliases: []string{"colors"},
		Short:   "Show the background colours derived from an image",
		Long: `Show the apple touch icon and Windows tile background colours that
"auto" would derive from an image.`,
		Args: cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			logger := newLogger(cmd)
			src := args[0]

			if err := image.ValidateSourcePath(src); err != nil {
				return err
			}

			conv := magick.New(config.ConvertPath(convert, nil), nil, logger.Named("magick"))
			ctx := cmd.Context()

			touch, err := conv.TouchColour(ctx, src)
			if err != nil {
				return colourErr("touch", err)
			}
			tile, err := conv.TileColour(ctx, src)
			if err != nil {
				return colourErr("tile", err)
			}

			out := cmd.OutOrStdout()
			fmt.Fprintf(out, "%s  %s\n", headerStyle.Render("touch"), swatch(touch))
			fmt.Fprintf(out, "%s   %s\n", headerStyle.Render("tile"), swatch(tile))
			return nil
		},
	}

	cmd.Flags().StringVar(&convert, "convert", "", "path to the ImageMagick convert binary (env "+config.EnvConvert+")")

	return cmd
}

func colourErr(which string, err error) error {
	var derr *colour.DerivationError
	if errors.As(err, &derr) {
		return fmt.Errorf("could not derive %s colour: %w", which, err)
	}
	return err
}
