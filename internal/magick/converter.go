// Package magick drives the ImageMagick convert tool with structured
// argument lists and samples heuristic colours from its text output.
package magick

import (
	"context"
	"errors"
	"fmt"
	"io/fs"
	"os/exec"
	"path/filepath"
	"slices"
	"strings"

	"github.com/hashicorp/go-hclog"

	"github.com/jmylchreest/favicons/internal/colour"
)

// TextOutput is the pseudo-target that makes the converter print pixels as text.
const TextOutput = "txt:-"

// exitToolNotFound is the shell's "command not found" status.
const exitToolNotFound = 127

// ToolNotFoundError is returned when the converter binary is missing.
type ToolNotFoundError struct {
	Tool  string
	Cause error
}

// Error implements the error interface.
func (e *ToolNotFoundError) Error() string {
	return fmt.Sprintf("%s not found: You need to have ImageMagick installed in your PATH for this task to work", e.Tool)
}

// Unwrap returns the underlying cause error.
func (e *ToolNotFoundError) Unwrap() error {
	return e.Cause
}

// ConversionError is returned when the converter exits non-zero.
type ConversionError struct {
	Tool     string
	Args     []string
	ExitCode int
	Stderr   string
	Cause    error
}

// Error implements the error interface.
func (e *ConversionError) Error() string {
	msg := fmt.Sprintf("%s %s failed", e.Tool, strings.Join(e.Args, " "))
	if e.ExitCode != 0 {
		msg = fmt.Sprintf("%s (exit code %d)", msg, e.ExitCode)
	}
	if e.Stderr != "" {
		msg = fmt.Sprintf("%s: %s", msg, e.Stderr)
	}
	return msg
}

// Unwrap returns the underlying cause error.
func (e *ConversionError) Unwrap() error {
	return e.Cause
}

// Converter invokes the converter binary.
type Converter struct {
	path   string
	runner ProcessRunner
	logger hclog.Logger
}

// New creates a Converter for the binary at path. A nil runner uses the real
// process runner; a nil logger discards output.
func New(path string, runner ProcessRunner, logger hclog.Logger) *Converter {
	if runner == nil {
		runner = NewRealProcessRunner()
	}
	if logger == nil {
		logger = hclog.NewNullLogger()
	}
	return &Converter{
		path:   path,
		runner: runner,
		logger: logger,
	}
}

// Names returns the strings that identify the converter's own banner lines.
func (c *Converter) Names() []string {
	return []string{colour.ToolBanner, filepath.Base(c.path)}
}

// Convert runs: <inputs...> <flags...> <output>.
func (c *Converter) Convert(ctx context.Context, inputs []string, flags []string, output string) error {
	args := make([]string, 0, len(inputs)+len(flags)+1)
	args = append(args, inputs...)
	args = append(args, flags...)
	args = append(args, output)

	_, err := c.run(ctx, args)
	return err
}

// run executes the converter and maps failures to typed errors.
func (c *Converter) run(ctx context.Context, args []string) ([]byte, error) {
	c.logger.Debug("running converter", "tool", c.path, "args", args)

	stdout, stderr, err := c.runner.Run(ctx, c.path, args)
	if err == nil {
		return stdout, nil
	}

	code := 0
	var coder interface{ ExitCode() int }
	if errors.As(err, &coder) {
		code = coder.ExitCode()
	}

	if code == exitToolNotFound || errors.Is(err, exec.ErrNotFound) || errors.Is(err, fs.ErrNotExist) {
		return nil, &ToolNotFoundError{Tool: c.path, Cause: err}
	}

	return nil, &ConversionError{
		Tool:     c.path,
		Args:     slices.Clone(args),
		ExitCode: code,
		Stderr:   strings.TrimSpace(string(stderr)),
		Cause:    err,
	}
}
