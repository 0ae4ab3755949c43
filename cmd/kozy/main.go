// Copyright 2026 The gogpu Authors
// SPDX-License-Identifier: MIT

// Command kozy opens a frame-paced window cleared to a solid color.
//
// Usage:
//
//	kozy [-config kozy.yaml] [-title T] [-width W] [-height H] [-fps N]
//	     [-backend wgpu|headless] [-clear COLOR] [-quit-key KEY] ...
//
// Flags override values from the config file. Exit status is 0 when the
// window is closed or the quit key is pressed, 1 on a fatal error and 2
// on bad usage.
package main

import (
	"context"
	"flag"
	"fmt"
	"log/slog"
	"os"
	"os/signal"
	"runtime"
	"strings"
	"time"

	"github.com/gogpu/kozy"
	"github.com/gogpu/kozy/scene"
	"github.com/gogpu/kozy/surface"
)

// GLFW must run on the main OS thread.
func init() {
	runtime.LockOSThread()
}

func main() {
	os.Exit(run(os.Args[1:]))
}

func run(args []string) int {
	fs := flag.NewFlagSet("kozy", flag.ContinueOnError)
	var (
		configPath   = fs.String("config", "kozy.yaml", "config file (missing file means defaults)")
		title        = fs.String("title", "", "window title")
		width        = fs.Int("width", 0, "window width")
		height       = fs.Int("height", 0, "window height")
		fps          = fs.Int("fps", 0, "target frames per second")
		interval     = fs.Duration("report", 0, "FPS report interval")
		backend      = fs.String("backend", "", "surface platform ("+strings.Join(surface.List(), ", ")+")")
		colorSpace   = fs.String("color-space", "", "auto, srgb or linear")
		clearColor   = fs.String("clear", "", "clear color: name, #rrggbb or rgb(r,g,b)")
		quitKey      = fs.String("quit-key", "", "key that exits, or none")
		power        = fs.String("power", "", "power preference: high or low")
		frames       = fs.Int("frames", 0, "frames to draw before closing a headless run")
		fpsInTitle   = fs.Bool("fps-title", true, "show FPS in the window title")
		logLevel     = fs.String("log-level", "", "debug, info, warn or error")
		listBackends = fs.Bool("list-backends", false, "print available backends and exit")
	)
	if err := fs.Parse(args); err != nil {
		return 2
	}

	if *listBackends {
		for _, name := range surface.Available() {
			fmt.Println(name)
		}
		return 0
	}

	cfg, err := kozy.LoadConfig(*configPath)
	if err != nil {
		fmt.Fprintln(os.Stderr, err)
		return 1
	}

	var usageErr error
	fs.Visit(func(f *flag.Flag) {
		switch f.Name {
		case "title":
			cfg.Title = *title
		case "width":
			cfg.Width = *width
		case "height":
			cfg.Height = *height
		case "fps":
			cfg.TargetFPS = *fps
		case "report":
			cfg.ReportInterval = *interval
		case "backend":
			cfg.Backend = *backend
		case "color-space":
			if cs, err := surface.ParseColorSpace(*colorSpace); err != nil {
				usageErr = err
			} else {
				cfg.ColorSpace = cs
			}
		case "clear":
			if c, err := scene.ParseColor(*clearColor); err != nil {
				usageErr = err
			} else {
				cfg.ClearColor = c
			}
		case "quit-key":
			cfg.QuitKey = *quitKey
		case "power":
			cfg.PowerPreference = *power
		case "frames":
			cfg.HeadlessFrames = *frames
		case "fps-title":
			cfg.ShowFPSInTitle = *fpsInTitle
		case "log-level":
			if err := cfg.LogLevel.UnmarshalText([]byte(*logLevel)); err != nil {
				usageErr = err
			}
		}
	})
	if usageErr != nil {
		fmt.Fprintln(os.Stderr, "kozy:", usageErr)
		return 2
	}

	logger := slog.New(slog.NewTextHandler(os.Stderr, &slog.HandlerOptions{Level: cfg.LogLevel}))
	kozy.SetLogger(logger)
	logger.Info("kozy: starting", "config", cfg.String())

	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt)
	defer stop()

	start := time.Now()
	if err := kozy.Run(ctx, cfg); err != nil {
		logger.Error("kozy: fatal", "err", err)
		return 1
	}
	logger.Info("kozy: exit", "uptime", time.Since(start).Round(time.Millisecond))
	return 0
}
