// Copyright 2026 The gogpu Authors
// SPDX-License-Identifier: MIT

package kozy

import (
	"context"
	"errors"
	"log/slog"

	"github.com/gogpu/kozy/internal/gfx"
	"github.com/gogpu/kozy/internal/glfwhost"
	"github.com/gogpu/kozy/loop"
	"github.com/gogpu/kozy/pacer"
	"github.com/gogpu/kozy/surface"
)

// Run opens the window described by cfg and drives it until the window
// is closed, the quit key is pressed or ctx is done. All of those are a
// clean exit and return nil.
//
// Errors are fatal: an invalid config, a window or GPU that could not be
// set up, or an out-of-memory failure that survived recovery.
func Run(ctx context.Context, cfg Config) error {
	if err := cfg.Validate(); err != nil {
		return err
	}
	log := Logger()
	quit, _ := loop.ParseKey(cfg.QuitKey)

	win, host, closeHost, err := openHost(cfg, log)
	if err != nil {
		return err
	}
	defer closeHost()

	platform, err := newPlatform(cfg, win, log)
	if err != nil {
		log.Error("kozy: no platform", "backend", cfg.Backend, "err", err)
		return err
	}
	if r, ok := platform.(interface{ Release() }); ok {
		defer r.Release()
	}

	d, err := loop.New(loop.Options{
		Surface:    surface.New(surface.WithLogger(log)),
		Platform:   platform,
		Window:     win,
		ColorSpace: cfg.ColorSpace,
		Pacer:      pacer.New(cfg.ReportInterval, reportSink(cfg, win, log)),
		TargetFPS:  cfg.TargetFPS,
		QuitKey:    quit,
		Ready:      loop.DesktopReady,
		Renderer:   newRenderer(cfg, platform),
		Logger:     log,
	})
	if err != nil {
		return err
	}

	err = d.Run(ctx, host)
	if errors.Is(err, context.Canceled) || errors.Is(err, context.DeadlineExceeded) {
		log.Info("kozy: stopped", "reason", err)
		return nil
	}
	return err
}

// openHost returns the window, its event source and a function that
// tears both down.
func openHost(cfg Config, log *slog.Logger) (loop.Window, loop.Host, func(), error) {
	if cfg.Backend == surface.HeadlessName {
		w := loop.NewHeadlessWindow(cfg.Width, cfg.Height, cfg.HeadlessFrames)
		return w, w, func() {}, nil
	}
	return openWindow(cfg, log)
}

// openWindow opens a desktop window. Replaced in tests.
var openWindow = func(cfg Config, log *slog.Logger) (loop.Window, loop.Host, func(), error) {
	h, err := glfwhost.Open(glfwhost.Options{
		Title:     cfg.Title,
		Width:     cfg.Width,
		Height:    cfg.Height,
		Resizable: cfg.Resizable,
		Logger:    log,
	})
	if err != nil {
		log.Error("kozy: window setup failed", "err", err)
		return nil, nil, nil, err
	}
	return h.Window(), h, h.Close, nil
}

func newPlatform(cfg Config, win loop.Window, log *slog.Logger) (surface.Platform, error) {
	opts := surface.PlatformOptions{
		Window:        win,
		LowPower:      cfg.lowPower(),
		ForceFallback: cfg.ForceFallback,
		Logger:        log,
	}
	if cfg.Backend == "" {
		return surface.NewPlatform(opts)
	}
	return surface.NewPlatformByName(cfg.Backend, opts)
}

// newRenderer clears to cfg.ClearColor on a GPU platform. Other platforms
// get a renderer that presents the acquired frame untouched.
func newRenderer(cfg Config, p surface.Platform) loop.Renderer {
	if c, ok := p.(*gfx.Context); ok {
		return gfx.NewClearRenderer(c, cfg.ClearColor.GPU(1))
	}
	return loop.RendererFunc(func(surface.Frame, surface.Config) error { return nil })
}

func reportSink(cfg Config, win loop.Window, log *slog.Logger) pacer.Sink {
	sink := pacer.LogSink(log)
	if !cfg.ShowFPSInTitle {
		return sink
	}
	t, ok := win.(pacer.Titler)
	if !ok {
		return sink
	}
	return pacer.Multi(sink, pacer.TitleSink(t, cfg.Title))
}
