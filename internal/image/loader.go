// Package image provides utilities for locating and inspecting source images.
package image

import (
	"fmt"
	"image"
	_ "image/gif"  // Register GIF format
	_ "image/jpeg" // Register JPEG format
	_ "image/png"  // Register PNG format
	"os"
	"path/filepath"
	"regexp"
	"slices"
	"strings"

	_ "golang.org/x/image/bmp"  // Register BMP format
	_ "golang.org/x/image/tiff" // Register TIFF format
	_ "golang.org/x/image/webp" // Register WebP format
)

// sizedName matches "<base>.<W>x<H><ext>" hand-authored variants.
var sizedName = regexp.MustCompile(`^(.+)\.\d+x\d+(\.[^.]+)$`)

// ValidateSourcePath checks that path exists and is a regular file.
// The converter accepts far more formats than Go can decode, so the content
// is not checked here.
func ValidateSourcePath(path string) error {
	if path == "" {
		return fmt.Errorf("image path cannot be empty")
	}

	info, err := os.Stat(path)
	if err != nil {
		if os.IsNotExist(err) {
			return fmt.Errorf("image file not found: %s", path)
		}
		return fmt.Errorf("failed to stat image file: %w", err)
	}

	if info.IsDir() {
		return fmt.Errorf("path is a directory, not a file: %s", path)
	}

	return nil
}

// GetImageDimensions returns the width and height of an image without fully loading it.
// Supported formats: PNG, JPEG, GIF, WebP, BMP, TIFF.
func GetImageDimensions(path string) (width, height int, err error) {
	file, err := os.Open(path) // #nosec G304 - User-specified image path, intended to be read
	if err != nil {
		return 0, 0, fmt.Errorf("failed to open image: %w", err)
	}
	defer file.Close()

	config, _, err := image.DecodeConfig(file)
	if err != nil {
		return 0, 0, fmt.Errorf("failed to decode image config: %w", err)
	}

	return config.Width, config.Height, nil
}

// SizedSibling returns "<dir>/<base>.<size><ext>" for source, and whether
// that file exists. Users drop these next to the source to hand-author a
// specific size.
func SizedSibling(source, size string) (string, bool) {
	ext := filepath.Ext(source)
	base := strings.TrimSuffix(filepath.Base(source), ext)
	p := filepath.Join(filepath.Dir(source), base+"."+size+ext)

	info, err := os.Stat(p)
	if err != nil || info.IsDir() {
		return p, false
	}
	return p, true
}

// PrimaryOf returns the source a sized sibling belongs to, so
// "icons/logo.32x32.png" yields "icons/logo.png".
func PrimaryOf(path string) (string, bool) {
	sub := sizedName.FindStringSubmatch(filepath.Base(path))
	if sub == nil {
		return "", false
	}
	return filepath.Join(filepath.Dir(path), sub[1]+sub[2]), true
}

// ExpandSources expands glob patterns into regular files, in pattern order,
// without duplicates. A match that is the sized sibling of another match is
// dropped, since it only serves as input for that source.
func ExpandSources(patterns []string) ([]string, error) {
	var files []string
	for _, pattern := range patterns {
		matches, err := filepath.Glob(pattern)
		if err != nil {
			return nil, fmt.Errorf("invalid source pattern %q: %w", pattern, err)
		}
		for _, m := range matches {
			info, err := os.Stat(m)
			if err != nil || info.IsDir() {
				continue
			}
			if !slices.Contains(files, m) {
				files = append(files, m)
			}
		}
	}

	matched := make(map[string]bool, len(files))
	for _, f := range files {
		matched[f] = true
	}

	sources := make([]string, 0, len(files))
	for _, f := range files {
		if primary, ok := PrimaryOf(f); ok && matched[primary] {
			continue
		}
		sources = append(sources, f)
	}

	return sources, nil
}
