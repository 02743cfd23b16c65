package icons

import (
	"fmt"
	"os"
	"path/filepath"
)

// Artifact is a file produced by a pipeline stage.
type Artifact struct {
	Path    string
	Purpose Purpose
}

// MissingInputError is returned when a stage is about to run but an artifact
// it requires was never produced or no longer exists on disk.
type MissingInputError struct {
	Stage string
	Input string
	Cause error
}

// Error implements the error interface.
func (e *MissingInputError) Error() string {
	if e.Cause != nil {
		return fmt.Sprintf("stage %s requires %s: %v", e.Stage, e.Input, e.Cause)
	}
	return fmt.Sprintf("stage %s requires %s, which has not been produced", e.Stage, e.Input)
}

// Unwrap returns the underlying cause error.
func (e *MissingInputError) Unwrap() error {
	return e.Cause
}

// pipeline tracks the artifacts of one source's catalog run. Each stage
// declares its inputs; transient inputs are removed after their last consumer.
type pipeline struct {
	dest     string
	stages   []Variant
	produced map[string]Artifact
	lastUse  map[string]int
}

func newPipeline(dest string, stages []Variant) *pipeline {
	lastUse := make(map[string]int)
	for i, v := range stages {
		for _, in := range v.Inputs {
			lastUse[in] = i
		}
	}
	return &pipeline{
		dest:     dest,
		stages:   stages,
		produced: make(map[string]Artifact),
		lastUse:  lastUse,
	}
}

// ready returns the paths of stage i's declared inputs, verifying each was
// produced earlier in this run and is still on disk.
func (p *pipeline) ready(i int) ([]string, error) {
	v := p.stages[i]
	paths := make([]string, 0, len(v.Inputs))
	for _, in := range v.Inputs {
		a, ok := p.produced[in]
		if !ok {
			return nil, &MissingInputError{Stage: v.Filename, Input: in}
		}
		if _, err := os.Stat(a.Path); err != nil {
			return nil, &MissingInputError{Stage: v.Filename, Input: in, Cause: err}
		}
		paths = append(paths, a.Path)
	}
	return paths, nil
}

// record registers the output of stage i.
func (p *pipeline) record(i int) Artifact {
	v := p.stages[i]
	a := Artifact{Path: filepath.Join(p.dest, v.Filename), Purpose: v.Purpose}
	p.produced[v.Filename] = a
	return a
}

// release deletes transient artifacts whose last consumer is stage i.
func (p *pipeline) release(i int) error {
	for name, last := range p.lastUse {
		if last != i {
			continue
		}
		a, ok := p.produced[name]
		if !ok || a.Purpose != PurposeIntermediate {
			continue
		}
		if err := os.Remove(a.Path); err != nil {
			return fmt.Errorf("failed to remove intermediate %s: %w", a.Path, err)
		}
		delete(p.produced, name)
	}
	return nil
}

// sweep removes transient artifacts nothing consumed.
func (p *pipeline) sweep() error {
	for name, a := range p.produced {
		if a.Purpose != PurposeIntermediate {
			continue
		}
		if err := os.Remove(a.Path); err != nil && !os.IsNotExist(err) {
			return fmt.Errorf("failed to remove intermediate %s: %w", a.Path, err)
		}
		delete(p.produced, name)
	}
	return nil
}
