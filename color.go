package form

import (
	"fmt"
	"strings"
)

// Color represents an RGB color with optional formatting.
type Color struct {
	R    uint8 `json:"r" yaml:"r"`
	G    uint8 `json:"g" yaml:"g"`
	B    uint8 `json:"b" yaml:"b"`
	Bold bool  `json:"bold" yaml:"bold"`
}

// Predefined colors for error messages.
var (
	ColorRed    = Color{R: 220, G: 50, B: 47}
	ColorYellow = Color{R: 181, G: 137, B: 0, Bold: true}
	ColorOrange = Color{R: 230, G: 159, B: 0}
	ColorWhite  = Color{R: 255, G: 255, B: 255}
)

// ToANSI converts a Color to an ANSI escape sequence.
func (c Color) ToANSI() string {
	var codes []string

	// Bold formatting comes first
	if c.Bold {
		codes = append(codes, "1")
	}

	// RGB color (true color support)
	codes = append(codes, fmt.Sprintf("38;2;%d;%d;%d", c.R, c.G, c.B))

	return fmt.Sprintf("\x1b[%sm", strings.Join(codes, ";"))
}

// Paint wraps s in the color and a trailing reset.
func (c Color) Paint(s string) string {
	return c.ToANSI() + s + Reset()
}

// Reset returns the ANSI reset sequence.
func Reset() string {
	return "\x1b[0m"
}
