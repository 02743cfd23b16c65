package config

import (
	"errors"
	"fmt"
	"io/fs"
	"os"

	"gopkg.in/yaml.v3"
)

const (
	// DefaultConvert is the converter binary looked up on PATH.
	DefaultConvert = "convert"

	// EnvConvert overrides the converter binary.
	EnvConvert = "FAVICONS_CONVERT"
)

// File is the on-disk configuration.
//
//	convert: /usr/bin/convert
//	options:
//	  precomposed: false
//	  html: public/index.html
//	groups:
//	  - src: [assets/logo.png]
//	    dest: public
type File struct {
	Convert string  `yaml:"convert"`
	Options Partial `yaml:"options"`
	Groups  []Group `yaml:"groups"`

	path string
}

// Group maps source globs to a destination directory.
type Group struct {
	Sources []string `yaml:"src"`
	Dest    string   `yaml:"dest"`
}

// Load reads and parses the configuration file.
func Load(path string) (*File, error) {
	data, err := os.ReadFile(path) // #nosec G304 - user-specified config path
	if err != nil {
		if errors.Is(err, fs.ErrNotExist) {
			return nil, &ConfigError{Type: ErrNotFound, File: path, Message: "file not found", Cause: err}
		}
		return nil, &ConfigError{Type: ErrInvalid, File: path, Message: "failed to read config file", Cause: err}
	}

	var f File
	if err := yaml.Unmarshal(data, &f); err != nil {
		return nil, &ConfigError{Type: ErrInvalid, File: path, Message: "failed to parse config", Cause: err}
	}
	f.path = path

	if err := f.Validate(); err != nil {
		return nil, err
	}

	return &f, nil
}

// Validate checks that every group names sources and a destination.
func (f *File) Validate() error {
	for i, g := range f.Groups {
		if len(g.Sources) == 0 {
			return &ConfigError{
				Type:    ErrValidationFailed,
				File:    f.path,
				Field:   fmt.Sprintf("groups[%d].src", i),
				Message: "at least one source is required",
			}
		}
		if g.Dest == "" {
			return &ConfigError{
				Type:    ErrValidationFailed,
				File:    f.path,
				Field:   fmt.Sprintf("groups[%d].dest", i),
				Message: "destination is required",
			}
		}
	}
	return nil
}

// ConvertPath picks the converter binary: flag, then environment, then
// config file, then DefaultConvert.
func ConvertPath(flag string, f *File) string {
	if flag != "" {
		return flag
	}
	if env := os.Getenv(EnvConvert); env != "" {
		return env
	}
	if f != nil && f.Convert != "" {
		return f.Convert
	}
	return DefaultConvert
}
