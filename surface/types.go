// Copyright 2026 The gogpu Authors
// SPDX-License-Identifier: MIT

package surface

import (
	"fmt"
	"math"
	"slices"
	"strings"

	"github.com/gogpu/gputypes"
)

// Config is the presentation configuration applied to a Target.
//
// Width and Height are physical pixels and are never zero once a Surface
// has stored the config.
type Config struct {
	// Format is the texture format of presentable images.
	Format gputypes.TextureFormat

	// Width of the presentable images in pixels.
	Width uint32

	// Height of the presentable images in pixels.
	Height uint32

	// PresentMode controls when a presented image becomes visible.
	PresentMode gputypes.PresentMode

	// AlphaMode is the compositing mode used by the window system.
	AlphaMode gputypes.CompositeAlphaMode

	// Usage of the presentable images. RenderAttachment is always set.
	Usage gputypes.TextureUsage

	// ViewFormats lists the formats views of presentable images may use.
	ViewFormats []gputypes.TextureFormat
}

// Equal reports whether c and o describe the same configuration.
func (c Config) Equal(o Config) bool {
	return c.Format == o.Format &&
		c.Width == o.Width &&
		c.Height == o.Height &&
		c.PresentMode == o.PresentMode &&
		c.AlphaMode == o.AlphaMode &&
		c.Usage == o.Usage &&
		slices.Equal(c.ViewFormats, o.ViewFormats)
}

// Clone returns a copy of c that does not share ViewFormats.
func (c Config) Clone() Config {
	c.ViewFormats = slices.Clone(c.ViewFormats)
	return c
}

// ViewFormat returns the format views should use: the first view format
// if any, otherwise Format.
func (c Config) ViewFormat() gputypes.TextureFormat {
	if len(c.ViewFormats) > 0 {
		return c.ViewFormats[0]
	}
	return c.Format
}

func (c Config) String() string {
	return fmt.Sprintf("%dx%d %v present=%v alpha=%v", c.Width, c.Height, c.Format, c.PresentMode, c.AlphaMode)
}

// ColorSpace selects how presentable images are interpreted.
type ColorSpace uint8

const (
	// ColorSpaceAuto keeps whatever the platform's default config picked.
	ColorSpaceAuto ColorSpace = iota

	// ColorSpaceSRGB adds the sRGB variant of the surface format as a view
	// format, so shaders write linear values and the hardware encodes.
	ColorSpaceSRGB

	// ColorSpaceLinear forces the surface format itself to its non-sRGB
	// variant and uses it as the view format.
	ColorSpaceLinear
)

// String returns the color space name.
func (cs ColorSpace) String() string {
	switch cs {
	case ColorSpaceAuto:
		return "auto"
	case ColorSpaceSRGB:
		return "srgb"
	case ColorSpaceLinear:
		return "linear"
	default:
		return fmt.Sprintf("ColorSpace(%d)", uint8(cs))
	}
}

// ParseColorSpace parses a color space name as produced by String.
func ParseColorSpace(s string) (ColorSpace, error) {
	switch strings.ToLower(strings.TrimSpace(s)) {
	case "", "auto":
		return ColorSpaceAuto, nil
	case "srgb":
		return ColorSpaceSRGB, nil
	case "linear":
		return ColorSpaceLinear, nil
	}
	return ColorSpaceAuto, fmt.Errorf("surface: unknown color space %q", s)
}

// UnmarshalText implements encoding.TextUnmarshaler.
func (cs *ColorSpace) UnmarshalText(text []byte) error {
	v, err := ParseColorSpace(string(text))
	if err != nil {
		return err
	}
	*cs = v
	return nil
}

// MarshalText implements encoding.TextMarshaler.
func (cs ColorSpace) MarshalText() ([]byte, error) {
	return []byte(cs.String()), nil
}

// srgbPairs maps linear formats to their sRGB variants.
var srgbPairs = map[gputypes.TextureFormat]gputypes.TextureFormat{
	gputypes.TextureFormatRGBA8Unorm:      gputypes.TextureFormatRGBA8UnormSrgb,
	gputypes.TextureFormatBGRA8Unorm:      gputypes.TextureFormatBGRA8UnormSrgb,
	gputypes.TextureFormatBC1RGBAUnorm:    gputypes.TextureFormatBC1RGBAUnormSrgb,
	gputypes.TextureFormatBC2RGBAUnorm:    gputypes.TextureFormatBC2RGBAUnormSrgb,
	gputypes.TextureFormatBC3RGBAUnorm:    gputypes.TextureFormatBC3RGBAUnormSrgb,
	gputypes.TextureFormatBC7RGBAUnorm:    gputypes.TextureFormatBC7RGBAUnormSrgb,
	gputypes.TextureFormatETC2RGB8Unorm:   gputypes.TextureFormatETC2RGB8UnormSrgb,
	gputypes.TextureFormatETC2RGB8A1Unorm: gputypes.TextureFormatETC2RGB8A1UnormSrgb,
	gputypes.TextureFormatETC2RGBA8Unorm:  gputypes.TextureFormatETC2RGBA8UnormSrgb,
}

// linearPairs is the inverse of srgbPairs.
var linearPairs = func() map[gputypes.TextureFormat]gputypes.TextureFormat {
	m := make(map[gputypes.TextureFormat]gputypes.TextureFormat, len(srgbPairs))
	for lin, srgb := range srgbPairs {
		m[srgb] = lin
	}
	return m
}()

// SRGBFormat returns the sRGB variant of f. Formats that already are sRGB,
// or have no sRGB variant, are returned unchanged.
func SRGBFormat(f gputypes.TextureFormat) gputypes.TextureFormat {
	if s, ok := srgbPairs[f]; ok {
		return s
	}
	return f
}

// LinearFormat returns the non-sRGB variant of f. Formats that already are
// linear, or have no pair, are returned unchanged.
func LinearFormat(f gputypes.TextureFormat) gputypes.TextureFormat {
	if l, ok := linearPairs[f]; ok {
		return l
	}
	return f
}

// IsSRGB reports whether f is an sRGB-encoded format.
func IsSRGB(f gputypes.TextureFormat) bool {
	_, ok := linearPairs[f]
	return ok
}

// applyColorSpace adjusts cfg for the requested color space.
func applyColorSpace(cfg *Config, cs ColorSpace) {
	switch cs {
	case ColorSpaceSRGB:
		cfg.ViewFormats = append(cfg.ViewFormats, SRGBFormat(cfg.Format))
	case ColorSpaceLinear:
		cfg.Format = LinearFormat(cfg.Format)
		cfg.ViewFormats = append(cfg.ViewFormats, cfg.Format)
	}
}

// clampDim clamps a requested dimension into [1, math.MaxUint32]. Platforms
// reject zero-sized surfaces, and a plain conversion would wrap large
// values to zero.
func clampDim(v int) uint32 {
	switch {
	case v < 1:
		return 1
	case uint64(v) > math.MaxUint32:
		return math.MaxUint32
	}
	return uint32(v)
}
