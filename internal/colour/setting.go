package colour

import (
	"fmt"
	"strings"
	"unicode"
)

// Setting is a background colour option: "none", "auto" or a literal colour
// understood by the converter (e.g. "#336699", "white", "rgb(0,0,0)").
type Setting string

const (
	// None disables background colouring.
	None Setting = "none"

	// Auto samples the colour from the source image.
	Auto Setting = "auto"
)

// ParseSetting normalises a user supplied colour setting.
// "none" and "auto" are matched case-insensitively, "#RRGGBB" literals are
// upper-cased and everything else is kept verbatim as a literal colour.
func ParseSetting(s string) (Setting, error) {
	trimmed := strings.TrimSpace(s)
	if trimmed == "" {
		return "", fmt.Errorf("colour setting cannot be empty (valid: none, auto, or a colour)")
	}

	switch strings.ToLower(trimmed) {
	case string(None):
		return None, nil
	case string(Auto):
		return Auto, nil
	}

	for _, r := range trimmed {
		if unicode.IsControl(r) {
			return "", fmt.Errorf("colour setting %q contains control characters", s)
		}
	}

	if rgb, err := ParseHex(trimmed); err == nil {
		return Setting(rgb.Hex()), nil
	}

	return Setting(trimmed), nil
}

// IsNone reports whether the setting disables colouring.
func (s Setting) IsNone() bool { return s == None }

// IsAuto reports whether the setting still needs to be sampled from an image.
func (s Setting) IsAuto() bool { return s == Auto }

// String returns the setting as passed to the converter.
func (s Setting) String() string { return string(s) }

// RGB returns the setting as RGB when it is a "#RRGGBB" literal.
func (s Setting) RGB() (RGB, bool) {
	if s.IsNone() || s.IsAuto() {
		return RGB{}, false
	}
	rgb, err := ParseHex(string(s))
	if err != nil {
		return RGB{}, false
	}
	return rgb, true
}
