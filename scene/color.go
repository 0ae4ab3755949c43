// Copyright 2026 The gogpu Authors
// SPDX-License-Identifier: MIT

package scene

import (
	"errors"
	"fmt"
	"strconv"
	"strings"

	"github.com/gogpu/gputypes"
	"golang.org/x/image/colornames"
)

// Color is an opaque 8-bit RGB color.
type Color struct {
	R, G, B uint8
}

// Grey is the fallback of ParseHex.
var Grey = Color{128, 128, 128}

// Korple is the house color.
var Korple = Color{255, 255, 255}

// ErrUnknownColor is returned by ParseColor for unrecognized input.
var ErrUnknownColor = errors.New("scene: unknown color")

// RGB returns the color with the given components.
func RGB(r, g, b uint8) Color { return Color{r, g, b} }

// Named looks up a CSS color name, case-insensitively. "korple" is
// accepted in addition to the CSS table.
func Named(name string) (Color, bool) {
	name = strings.ToLower(strings.TrimSpace(name))
	if name == "korple" {
		return Korple, true
	}
	c, ok := colornames.Map[name]
	if !ok {
		return Color{}, false
	}
	return Color{c.R, c.G, c.B}, true
}

// ParseHex parses "#rrggbb" or "rrggbb". A component that is not valid
// hex becomes 128; any other length yields Grey.
func ParseHex(s string) Color {
	switch len(s) {
	case 7:
		s = s[1:]
	case 6:
	default:
		return Grey
	}
	return Color{hexByte(s[0:2]), hexByte(s[2:4]), hexByte(s[4:6])}
}

func hexByte(s string) uint8 {
	v, err := strconv.ParseUint(s, 16, 8)
	if err != nil {
		return 128
	}
	return uint8(v)
}

// ParseColor accepts a color name, a hex color starting with '#', or
// "rgb(r, g, b)" with decimal components.
func ParseColor(s string) (Color, error) {
	s = strings.TrimSpace(s)
	switch {
	case strings.HasPrefix(s, "#"):
		return ParseHex(s), nil
	case strings.HasPrefix(strings.ToLower(s), "rgb(") && strings.HasSuffix(s, ")"):
		return parseRGB(s[4 : len(s)-1])
	}
	if c, ok := Named(s); ok {
		return c, nil
	}
	return Color{}, fmt.Errorf("%w: %q", ErrUnknownColor, s)
}

func parseRGB(args string) (Color, error) {
	parts := strings.Split(args, ",")
	if len(parts) != 3 {
		return Color{}, fmt.Errorf("%w: rgb needs 3 components, got %d", ErrUnknownColor, len(parts))
	}
	var v [3]uint8
	for i, p := range parts {
		n, err := strconv.ParseUint(strings.TrimSpace(p), 10, 8)
		if err != nil {
			return Color{}, fmt.Errorf("%w: rgb component %q", ErrUnknownColor, p)
		}
		v[i] = uint8(n)
	}
	return Color{v[0], v[1], v[2]}, nil
}

// GPU returns c as a GPU clear color with the given opacity.
// Components are scaled to [0, 1] without gamma conversion.
func (c Color) GPU(opacity float64) gputypes.Color {
	return gputypes.Color{
		R: float64(c.R) / 255,
		G: float64(c.G) / 255,
		B: float64(c.B) / 255,
		A: opacity,
	}
}

// Hex returns c as "#rrggbb".
func (c Color) Hex() string {
	return fmt.Sprintf("#%02x%02x%02x", c.R, c.G, c.B)
}

func (c Color) String() string { return c.Hex() }

// UnmarshalText implements encoding.TextUnmarshaler using ParseColor.
func (c *Color) UnmarshalText(text []byte) error {
	v, err := ParseColor(string(text))
	if err != nil {
		return err
	}
	*c = v
	return nil
}

// MarshalText implements encoding.TextMarshaler.
func (c Color) MarshalText() ([]byte, error) {
	return []byte(c.Hex()), nil
}
