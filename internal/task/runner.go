// Package task runs favicon generation over groups of source images,
// sharing one HTML document across every source of an invocation.
package task

import (
	"context"
	"errors"
	"fmt"
	"os"

	"github.com/hashicorp/go-hclog"

	"github.com/jmylchreest/favicons/internal/config"
	"github.com/jmylchreest/favicons/internal/htmlpatch"
	"github.com/jmylchreest/favicons/internal/icons"
	"github.com/jmylchreest/favicons/internal/image"
)

// Generator produces the icon set for one source. html reports whether the
// result will be written to an HTML document.
type Generator interface {
	Generate(ctx context.Context, source, dest string, html bool) (*icons.Result, error)
}

// GroupError is reported for a group that could not be processed. It does
// not stop the remaining groups.
type GroupError struct {
	Group   int
	Dest    string
	Message string
	Cause   error
}

// Error implements the error interface.
func (e *GroupError) Error() string {
	if e.Cause != nil {
		return fmt.Sprintf("group %d: %s: %v", e.Group, e.Message, e.Cause)
	}
	return fmt.Sprintf("group %d: %s", e.Group, e.Message)
}

// Unwrap returns the underlying cause error.
func (e *GroupError) Unwrap() error {
	return e.Cause
}

// Report summarizes a run.
type Report struct {
	Results []*icons.Result
	Errors  []*GroupError
	// HTML is the document that was rewritten, if any.
	HTML string
}

// Err joins the group errors, or returns nil when every group succeeded.
func (r *Report) Err() error {
	errs := make([]error, len(r.Errors))
	for i, e := range r.Errors {
		errs[i] = e
	}
	return errors.Join(errs...)
}

// Runner processes groups sequentially.
type Runner struct {
	gen    Generator
	opts   config.Options
	logger hclog.Logger
}

// NewRunner creates a Runner. opts decides whether an HTML document is patched.
func NewRunner(gen Generator, opts config.Options, logger hclog.Logger) *Runner {
	if logger == nil {
		logger = hclog.NewNullLogger()
	}
	return &Runner{gen: gen, opts: opts, logger: logger}
}

// Run processes every group in order. Group faults are collected in the
// report; any generation error aborts the run and leaves the HTML file
// untouched. The HTML document is written once, after the last group, and
// only when at least one source was generated.
func (r *Runner) Run(ctx context.Context, groups []config.Group) (*Report, error) {
	report := &Report{}

	var doc *htmlpatch.Document
	if r.opts.NeedHTML() {
		var err error
		doc, err = htmlpatch.Load(r.opts.HTML)
		if err != nil {
			return report, err
		}
		r.logger.Debug("loaded HTML document", "path", doc.Path())
	}

	for i, g := range groups {
		if err := ctx.Err(); err != nil {
			return report, err
		}

		sources, gerr := r.prepare(i, g)
		if gerr != nil {
			r.logger.Warn(gerr.Message, "group", i, "dest", g.Dest)
			report.Errors = append(report.Errors, gerr)
			continue
		}

		for _, src := range sources {
			res, err := r.gen.Generate(ctx, src, g.Dest, doc != nil)
			if err != nil {
				return report, fmt.Errorf("failed to process %s: %w", src, err)
			}
			report.Results = append(report.Results, res)

			if doc != nil {
				doc.Append(htmlpatch.Tags(r.opts.HTMLPrefix, res))
			}
		}
	}

	switch {
	case doc == nil:
	case len(report.Results) == 0:
		r.logger.Warn("nothing generated, leaving HTML untouched", "path", doc.Path())
	default:
		if err := doc.Save(); err != nil {
			return report, err
		}
		report.HTML = doc.Path()
		r.logger.Info("updated HTML", "path", doc.Path())
	}

	return report, nil
}

// prepare expands a group's sources and checks its destination.
func (r *Runner) prepare(i int, g config.Group) ([]string, *GroupError) {
	sources, err := image.ExpandSources(g.Sources)
	if err != nil {
		return nil, &GroupError{Group: i, Dest: g.Dest, Message: "invalid source pattern", Cause: err}
	}
	if len(sources) == 0 {
		return nil, &GroupError{Group: i, Dest: g.Dest, Message: "Source file not found."}
	}

	info, err := os.Stat(g.Dest)
	if err != nil || !info.IsDir() {
		return nil, &GroupError{
			Group:   i,
			Dest:    g.Dest,
			Message: fmt.Sprintf("dest %q must be an existing directory", g.Dest),
			Cause:   err,
		}
	}

	return sources, nil
}
