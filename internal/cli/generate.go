package cli

import (
	"context"
	"errors"
	"fmt"
	"io"
	"os"
	"os/signal"
	"syscall"

	"github.com/spf13/cobra"
	"github.com/spf13/pflag"

	"github.com/jmylchreest/favicons/internal/config"
	"github.com/jmylchreest/favicons/internal/icons"
	"github.com/jmylchreest/favicons/internal/magick"
	"github.com/jmylchreest/favicons/internal/task"
	"github.com/jmylchreest/favicons/internal/watch"
)

// generateFlags holds the generate command's flag values.
type generateFlags struct {
	dest        string
	configPath  string
	convert     string
	watch       bool
	trueColor   bool
	precomposed bool
	htmlPrefix  string
	touchBg     string
	windowsTile bool
	coast       bool
	tileBW      bool
	tileColor   string
	html        string
}

func newGenerateCmd() *cobra.Command {
	f := &generateFlags{}

	cmd := &cobra.Command{
		Use:   "generate [sources...]",
		Short: "Generate the icon set for one or more source images",
		Long: `Generate browser, Apple touch, Coast and Windows tile icons from source images.

Positional sources (files or glob patterns) form one group written to --dest.
Groups listed in a --config file are processed after it. A missing
destination or a pattern with no matches is reported and the remaining
groups are still processed.

Colour settings (--apple-touch-background, --tile-color) accept "none",
"auto" (sampled from the source) or any colour ImageMagick understands.

Examples:
  # Icons for logo.png into ./public
  favicons generate logo.png --dest public

  # Also rewrite the icon tags of index.html
  favicons generate logo.png --dest public --html public/index.html --html-prefix /

  # Groups and options from a file, regenerating on change
  favicons generate --config favicons.yaml --watch`,
		RunE: func(cmd *cobra.Command, args []string) error {
			return runGenerate(cmd, f, args)
		},
	}

	f.register(cmd.Flags())

	return cmd
}

// register binds the generate flags to f. Option flags default to the
// documented defaults but only override the config file when set.
func (f *generateFlags) register(flags *pflag.FlagSet) {
	defaults := config.Defaults()

	flags.StringVarP(&f.dest, "dest", "d", "", "destination directory for positional sources")
	flags.StringVarP(&f.configPath, "config", "c", "", "YAML file with options and source groups")
	flags.StringVar(&f.convert, "convert", "", "path to the ImageMagick convert binary (env "+config.EnvConvert+")")
	flags.BoolVarP(&f.watch, "watch", "w", false, "regenerate when a source changes")

	flags.BoolVar(&f.trueColor, "true-color", defaults.TrueColor, "keep full colour depth in favicon.ico")
	flags.BoolVar(&f.precomposed, "precomposed", defaults.Precomposed, "generate precomposed apple touch icons")
	flags.StringVar(&f.htmlPrefix, "html-prefix", defaults.HTMLPrefix, "prefix for icon URLs written to HTML")
	flags.StringVar(&f.touchBg, "apple-touch-background", defaults.AppleTouchBackgroundColor.String(), "apple touch icon background colour")
	flags.BoolVar(&f.windowsTile, "windows-tile", defaults.WindowsTile, "generate the Windows 8 tile")
	flags.BoolVar(&f.coast, "coast", defaults.Coast, "generate the Opera Coast icon")
	flags.BoolVar(&f.tileBW, "tile-black-white", defaults.TileBlackWhite, "render the tile as a white silhouette")
	flags.StringVar(&f.tileColor, "tile-color", defaults.TileColor.String(), "Windows tile background colour")
	flags.StringVar(&f.html, "html", defaults.HTML, "HTML document to update with icon tags")
}

// partial returns the options set explicitly on the command line.
func (f *generateFlags) partial(cmd *cobra.Command) config.Partial {
	changed := cmd.Flags().Changed
	var p config.Partial

	if changed("true-color") {
		p.TrueColor = &f.trueColor
	}
	if changed("precomposed") {
		p.Precomposed = &f.precomposed
	}
	if changed("html-prefix") {
		p.HTMLPrefix = &f.htmlPrefix
	}
	if changed("apple-touch-background") {
		p.AppleTouchBackgroundColor = &f.touchBg
	}
	if changed("windows-tile") {
		p.WindowsTile = &f.windowsTile
	}
	if changed("coast") {
		p.Coast = &f.coast
	}
	if changed("tile-black-white") {
		p.TileBlackWhite = &f.tileBW
	}
	if changed("tile-color") {
		p.TileColor = &f.tileColor
	}
	if changed("html") {
		p.HTML = &f.html
	}

	return p
}

// plan is a resolved generate invocation.
type plan struct {
	opts    config.Options
	groups  []config.Group
	convert string
}

// buildPlan layers defaults, the config file and changed flags, and collects
// the source groups.
func buildPlan(cmd *cobra.Command, f *generateFlags, args []string) (*plan, error) {
	var file *config.File
	if f.configPath != "" {
		var err error
		if file, err = config.Load(f.configPath); err != nil {
			return nil, err
		}
	}

	var layers []config.Partial
	if file != nil {
		layers = append(layers, file.Options)
	}
	layers = append(layers, f.partial(cmd))

	opts, err := config.Resolve(layers...)
	if err != nil {
		return nil, err
	}

	var groups []config.Group
	if len(args) > 0 {
		if f.dest == "" {
			return nil, fmt.Errorf("--dest is required when sources are given")
		}
		groups = append(groups, config.Group{Sources: args, Dest: f.dest})
	}
	if file != nil {
		groups = append(groups, file.Groups...)
	}
	if len(groups) == 0 {
		return nil, fmt.Errorf("no sources given: pass source files or --config")
	}

	return &plan{
		opts:    opts,
		groups:  groups,
		convert: config.ConvertPath(f.convert, file),
	}, nil
}

func runGenerate(cmd *cobra.Command, f *generateFlags, args []string) error {
	logger := newLogger(cmd)

	p, err := buildPlan(cmd, f, args)
	if err != nil {
		return err
	}
	if p.opts.HTML != "" && !p.opts.NeedHTML() {
		logger.Warn("HTML file not found, skipping HTML update", "path", p.opts.HTML)
	}

	conv := magick.New(p.convert, nil, logger.Named("magick"))
	gen := icons.NewGenerator(conv, p.opts, logger.Named("icons"))
	runner := task.NewRunner(gen, p.opts, logger.Named("task"))
	out := cmd.OutOrStdout()

	if !f.watch {
		report, err := runner.Run(cmd.Context(), p.groups)
		printSummary(out, report)
		if err != nil {
			return err
		}
		return report.Err()
	}

	ctx, stop := signal.NotifyContext(cmd.Context(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	// Group faults are already logged by the runner; only fatal errors stop
	// the watch loop.
	once := func(ctx context.Context) error {
		report, err := runner.Run(ctx, p.groups)
		printSummary(out, report)
		if err != nil {
			if errors.Is(err, context.Canceled) {
				return nil
			}
			return err
		}
		return nil
	}

	if err := once(ctx); err != nil {
		return err
	}
	return watch.New(p.groups, p.opts, once, logger.Named("watch")).Run(ctx)
}

// printSummary writes a table of the files generated and the groups that
// failed.
func printSummary(w io.Writer, report *task.Report) {
	if report == nil || (len(report.Results) == 0 && len(report.Errors) == 0) {
		return
	}

	t := NewTable([]string{"", "FILE", "PURPOSE", "SOURCE"})
	t.SetColumnMaxWidth(1, 60)
	t.SetColumnMaxWidth(3, 40)
	for _, res := range report.Results {
		for _, a := range res.Artifacts {
			t.AddRow([]string{okStyle.Render("✓"), a.Path, string(a.Purpose), res.Source})
		}
	}
	for _, e := range report.Errors {
		t.AddRow([]string{errStyle.Render("✗"), e.Dest, "", e.Message})
	}
	fmt.Fprint(w, t.Render())

	for _, res := range report.Results {
		fmt.Fprintf(w, "%s  touch %s  tile %s\n",
			dimStyle.Render(res.Source), swatch(res.Colours.Touch), swatch(res.Colours.Tile))
	}
	if report.HTML != "" {
		fmt.Fprintf(w, "updated %s\n", valueStyle.Render(report.HTML))
	}
}
