package magick

import (
	"context"
	"fmt"
	"os"
	"path/filepath"
	"slices"
)

// Call is one recorded invocation of a MockProcessRunner.
type Call struct {
	Path string
	Args []string
}

// Output returns the last argument, which is the converter's output target.
func (c Call) Output() string {
	if len(c.Args) == 0 {
		return ""
	}
	return c.Args[len(c.Args)-1]
}

// MockProcessRunner is a mock implementation of ProcessRunner for testing.
type MockProcessRunner struct {
	// RunFunc allows tests to provide custom behavior
	RunFunc func(ctx context.Context, path string, args []string) (stdout, stderr []byte, err error)

	// WriteOutputs creates the output file named by the last argument, unless
	// it is a "txt:" pseudo-target, mimicking a successful conversion.
	WriteOutputs bool

	// ColourOutput is returned as stdout for txt:- invocations.
	ColourOutput []byte

	// Calls records every invocation in order.
	Calls []Call
}

// NewMockProcessRunner creates a mock that writes output files and answers
// colour queries with a single unique colour.
func NewMockProcessRunner() *MockProcessRunner {
	return &MockProcessRunner{
		WriteOutputs: true,
		ColourOutput: []byte("# ImageMagick pixel enumeration: 1,1,255,srgb\n0,0: (51,102,153)  #336699  srgb(51,102,153)\n"),
	}
}

// NewErrorMockProcessRunner creates a mock whose invocations all fail with err.
func NewErrorMockProcessRunner(err error) *MockProcessRunner {
	return &MockProcessRunner{
		RunFunc: func(ctx context.Context, path string, args []string) ([]byte, []byte, error) {
			return nil, []byte(err.Error()), err
		},
	}
}

// Run executes the mock behavior.
func (m *MockProcessRunner) Run(ctx context.Context, path string, args []string) ([]byte, []byte, error) {
	call := Call{Path: path, Args: slices.Clone(args)}
	m.Calls = append(m.Calls, call)

	if m.RunFunc != nil {
		return m.RunFunc(ctx, path, args)
	}

	out := call.Output()
	if out == TextOutput {
		return m.ColourOutput, nil, nil
	}

	if m.WriteOutputs && out != "" {
		if err := os.MkdirAll(filepath.Dir(out), 0o755); err != nil {
			return nil, nil, err
		}
		if err := os.WriteFile(out, []byte(fmt.Sprintf("mock %v", args)), 0o600); err != nil {
			return nil, nil, err
		}
	}

	return nil, nil, nil
}

// CallsTo returns the recorded calls whose output target is out.
func (m *MockProcessRunner) CallsTo(out string) []Call {
	var calls []Call
	for _, c := range m.Calls {
		if c.Output() == out {
			calls = append(calls, c)
		}
	}
	return calls
}

// ExitStatus returns an error carrying a process exit code, as returned by
// os/exec for a non-zero exit.
func ExitStatus(code int) error {
	return &exitStatus{code: code}
}

type exitStatus struct {
	code int
}

func (e *exitStatus) Error() string { return fmt.Sprintf("exit status %d", e.code) }

func (e *exitStatus) ExitCode() int { return e.code }
