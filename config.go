// Copyright 2026 The gogpu Authors
// SPDX-License-Identifier: MIT

package kozy

import (
	"errors"
	"fmt"
	"log/slog"
	"strings"
	"time"

	"github.com/gogpu/kozy/loop"
	"github.com/gogpu/kozy/pacer"
	"github.com/gogpu/kozy/scene"
	"github.com/gogpu/kozy/surface"
)

// Power preferences accepted by Config.PowerPreference.
const (
	PowerHigh = "high"
	PowerLow  = "low"
)

// Config configures Run. Start from DefaultConfig.
type Config struct {
	// Title is the window title and the prefix of the FPS title.
	Title string `yaml:"title"`

	// Width and Height are the initial window size.
	Width  int `yaml:"width"`
	Height int `yaml:"height"`

	// Resizable lets the user resize the window.
	Resizable bool `yaml:"resizable"`

	// TargetFPS caps the redraw rate.
	TargetFPS int `yaml:"target_fps"`

	// ReportInterval is how often the measured rate is reported.
	ReportInterval time.Duration `yaml:"report_interval"`

	// ColorSpace selects between sRGB and linear presentation.
	ColorSpace surface.ColorSpace `yaml:"color_space"`

	// QuitKey names the key that exits, such as "escape" or "q".
	// Empty or "none" disables it.
	QuitKey string `yaml:"quit_key"`

	// ClearColor is the color every frame is cleared to.
	ClearColor scene.Color `yaml:"clear_color"`

	// Backend is the surface platform name. Empty picks the best
	// available; "headless" runs without a window or GPU.
	Backend string `yaml:"backend"`

	// PowerPreference is "high" or "low".
	PowerPreference string `yaml:"power_preference"`

	// ForceFallback requests a software adapter.
	ForceFallback bool `yaml:"force_fallback"`

	// ShowFPSInTitle appends the measured rate to the window title.
	ShowFPSInTitle bool `yaml:"show_fps_in_title"`

	// HeadlessFrames is how many frames a headless run draws before it
	// closes. Zero runs until the context is done.
	HeadlessFrames int `yaml:"headless_frames"`

	// LogLevel is the minimum level cmd/kozy logs at.
	LogLevel slog.Level `yaml:"log_level"`
}

// DefaultConfig returns the defaults: an 800x600 sRGB window at 60 FPS,
// cleared to black, quit with Escape.
func DefaultConfig() Config {
	return Config{
		Title:           "kozy",
		Width:           800,
		Height:          600,
		Resizable:       true,
		TargetFPS:       loop.DefaultTargetFPS,
		ReportInterval:  pacer.DefaultInterval,
		ColorSpace:      surface.ColorSpaceSRGB,
		QuitKey:         "escape",
		ClearColor:      scene.RGB(0, 0, 0),
		PowerPreference: PowerHigh,
		ShowFPSInTitle:  true,
		LogLevel:        slog.LevelInfo,
	}
}

// WithTitle sets the window title.
func (c Config) WithTitle(title string) Config {
	c.Title = title
	return c
}

// WithSize sets the initial window size.
func (c Config) WithSize(width, height int) Config {
	c.Width, c.Height = width, height
	return c
}

// WithTargetFPS sets the frame rate cap.
func (c Config) WithTargetFPS(fps int) Config {
	c.TargetFPS = fps
	return c
}

// WithReportInterval sets the FPS report interval.
func (c Config) WithReportInterval(d time.Duration) Config {
	c.ReportInterval = d
	return c
}

// WithColorSpace sets the presentation color space.
func (c Config) WithColorSpace(cs surface.ColorSpace) Config {
	c.ColorSpace = cs
	return c
}

// WithQuitKey sets the quit key name.
func (c Config) WithQuitKey(key string) Config {
	c.QuitKey = key
	return c
}

// WithClearColor sets the clear color.
func (c Config) WithClearColor(col scene.Color) Config {
	c.ClearColor = col
	return c
}

// WithBackend selects a surface platform by registry name.
func (c Config) WithBackend(name string) Config {
	c.Backend = name
	return c
}

// WithHeadlessFrames sets how many frames a headless run draws.
func (c Config) WithHeadlessFrames(n int) Config {
	c.HeadlessFrames = n
	return c
}

// ErrInvalidConfig is wrapped by every error Validate returns.
var ErrInvalidConfig = errors.New("kozy: invalid config")

// Validate reports the first invalid field.
func (c Config) Validate() error {
	switch {
	case c.Width <= 0 || c.Height <= 0:
		return fmt.Errorf("%w: size %dx%d", ErrInvalidConfig, c.Width, c.Height)
	case c.TargetFPS <= 0:
		return fmt.Errorf("%w: target_fps %d", ErrInvalidConfig, c.TargetFPS)
	case c.ReportInterval <= 0:
		return fmt.Errorf("%w: report_interval %v", ErrInvalidConfig, c.ReportInterval)
	case c.HeadlessFrames < 0:
		return fmt.Errorf("%w: headless_frames %d", ErrInvalidConfig, c.HeadlessFrames)
	}
	switch c.ColorSpace {
	case surface.ColorSpaceAuto, surface.ColorSpaceSRGB, surface.ColorSpaceLinear:
	default:
		return fmt.Errorf("%w: color_space %v", ErrInvalidConfig, c.ColorSpace)
	}
	switch strings.ToLower(c.PowerPreference) {
	case "", PowerHigh, PowerLow:
	default:
		return fmt.Errorf("%w: power_preference %q", ErrInvalidConfig, c.PowerPreference)
	}
	if _, err := loop.ParseKey(c.QuitKey); err != nil {
		return fmt.Errorf("%w: quit_key: %w", ErrInvalidConfig, err)
	}
	if c.Backend != "" {
		if _, ok := surface.Get(c.Backend); !ok {
			return fmt.Errorf("%w: backend %q (have %s)", ErrInvalidConfig,
				c.Backend, strings.Join(surface.List(), ", "))
		}
	}
	return nil
}

func (c Config) lowPower() bool {
	return strings.EqualFold(c.PowerPreference, PowerLow)
}

// String summarizes the config for logs.
func (c Config) String() string {
	backend := c.Backend
	if backend == "" {
		backend = "auto"
	}
	return fmt.Sprintf("%q %dx%d@%dfps backend=%s colorSpace=%v clear=%v",
		c.Title, c.Width, c.Height, c.TargetFPS, backend, c.ColorSpace, c.ClearColor)
}
