package colour

import (
	"bufio"
	"bytes"
	"fmt"
	"regexp"
	"strings"
)

// ToolBanner is the product name the converter prints in its txt: header.
const ToolBanner = "ImageMagick"

// hexToken matches a colour in the converter's txt: notation. The digit
// count depends on the quantum depth and on whether alpha is listed.
var hexToken = regexp.MustCompile(`#([0-9A-Fa-f]+)\b`)

// DerivationError is returned when no colour could be read from the
// converter's unique-colour listing.
type DerivationError struct {
	// Source is the image the colour was sampled from.
	Source string
	// Output is the raw text the converter produced.
	Output string
	// Cause is the underlying error, if the converter itself failed.
	Cause error
}

// Error implements the error interface.
func (e *DerivationError) Error() string {
	if e.Cause != nil {
		return fmt.Sprintf("failed to derive colour from %s: %v", e.Source, e.Cause)
	}
	return fmt.Sprintf("failed to derive colour from %s: no colour token in converter output", e.Source)
}

// Unwrap returns the underlying cause error.
func (e *DerivationError) Unwrap() error {
	return e.Cause
}

// ParseUniqueColours extracts the first colour token from a txt:- listing
// and returns it as upper-case "#RRGGBB". 8-bit ("#RRGGBB", "#RRGGBBAA") and
// 16-bit ("#RRRRGGGGBBBB", "#RRRRGGGGBBBBAAAA") tokens are accepted; alpha is
// dropped and 16-bit channels keep their high byte. Lines containing any of
// the given tool names (the banner) are skipped. An empty string and false
// are returned when no token is found.
func ParseUniqueColours(out []byte, toolNames ...string) (string, bool) {
	scanner := bufio.NewScanner(bytes.NewReader(out))
	for scanner.Scan() {
		line := scanner.Text()
		if containsAny(line, toolNames) {
			continue
		}
		for _, m := range hexToken.FindAllStringSubmatch(line, -1) {
			if hex, ok := rrggbb(m[1]); ok {
				return "#" + strings.ToUpper(hex), true
			}
		}
	}
	return "", false
}

// rrggbb reduces the digits of a txt: colour token to six.
func rrggbb(digits string) (string, bool) {
	switch len(digits) {
	case 6, 8:
		return digits[:6], true
	case 12, 16:
		return digits[0:2] + digits[4:6] + digits[8:10], true
	default:
		return "", false
	}
}

func containsAny(line string, names []string) bool {
	for _, name := range names {
		if name != "" && strings.Contains(line, name) {
			return true
		}
	}
	return false
}
