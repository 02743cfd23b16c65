// Package cli provides the command-line interface for favicons.
package cli

import (
	"fmt"
	"os"

	"github.com/hashicorp/go-hclog"
	"github.com/spf13/cobra"
	"golang.org/x/term"

	"github.com/jmylchreest/favicons/internal/version"
)

// NewRootCmd builds the favicons command tree.
func NewRootCmd() *cobra.Command {
	rootCmd := &cobra.Command{
		Use:   "favicons",
		Short: "Generate favicons and touch icons from a source image",
		Long: `favicons renders a source image into the full set of browser, Apple touch,
Coast and Windows tile icons using ImageMagick, and can rewrite the icon
tags of an HTML document to reference them.

Place files named <base>.<W>x<H><ext> next to a source to hand-author a
specific size; they are used instead of resizing the source.`,
		Version:      version.Short(),
		SilenceUsage: true,
	}

	rootCmd.PersistentFlags().BoolP("verbose", "v", false, "enable verbose output")
	rootCmd.PersistentFlags().BoolP("quiet", "q", false, "suppress non-error output")

	rootCmd.SetVersionTemplate(version.String() + "\n")

	rootCmd.AddCommand(newVersionCmd())
	rootCmd.AddCommand(newGenerateCmd())
	rootCmd.AddCommand(newColoursCmd())

	return rootCmd
}

func newVersionCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "version",
		Short: "Print version information",
		Long:  `Print detailed version information including build date, commit hash, and Go version.`,
		Run: func(cmd *cobra.Command, args []string) {
			fmt.Fprintln(cmd.OutOrStdout(), version.String())
		},
	}
}

// newLogger returns the "favicons" logger at the level selected by the
// persistent --verbose and --quiet flags.
func newLogger(cmd *cobra.Command) hclog.Logger {
	verbose, _ := cmd.Flags().GetBool("verbose")
	quiet, _ := cmd.Flags().GetBool("quiet")

	return hclog.New(&hclog.LoggerOptions{
		Name:   "favicons",
		Level:  logLevel(verbose, quiet),
		Output: cmd.ErrOrStderr(),
		Color:  logColour(),
	})
}

func logLevel(verbose, quiet bool) hclog.Level {
	switch {
	case verbose:
		return hclog.Debug
	case quiet:
		return hclog.Warn
	default:
		return hclog.Info
	}
}

func logColour() hclog.ColorOption {
	if term.IsTerminal(int(os.Stderr.Fd())) { // #nosec G115 - file descriptors fit in int
		return hclog.AutoColor
	}
	return hclog.ColorOff
}
