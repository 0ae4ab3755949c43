// Copyright 2026 The gogpu Authors
// SPDX-License-Identifier: MIT

package pacer

import (
	"log/slog"

	"golang.org/x/text/language"
	"golang.org/x/text/message"
)

// Sink receives frame rate reports.
type Sink interface {
	Report(r Report)
}

// SinkFunc adapts a function to Sink.
type SinkFunc func(Report)

// Report calls f(r).
func (f SinkFunc) Report(r Report) { f(r) }

// Discard is a Sink that drops every report.
var Discard Sink = SinkFunc(func(Report) {})

// LogSink returns a Sink that logs each report at Info level.
// A nil logger discards.
func LogSink(l *slog.Logger) Sink {
	if l == nil {
		return Discard
	}
	return SinkFunc(func(r Report) {
		l.Info("fps", "fps", r.FPS, "frames", r.Frames, "interval", r.Interval)
	})
}

// Titler is anything with a settable title, typically a window.
type Titler interface {
	SetTitle(title string)
}

// TitleOption configures a TitleSink.
type TitleOption func(*titleSink)

// WithLanguage sets the language used to format the rate.
// The default is English, which prints "59.50".
func WithLanguage(tag language.Tag) TitleOption {
	return func(s *titleSink) {
		s.printer = message.NewPrinter(tag)
	}
}

// TitleSink returns a Sink that shows the rate in a window title as
// "<base> - FPS: 59.50".
func TitleSink(t Titler, base string, opts ...TitleOption) Sink {
	s := &titleSink{
		titler:  t,
		base:    base,
		printer: message.NewPrinter(language.English),
	}
	for _, opt := range opts {
		opt(s)
	}
	return s
}

type titleSink struct {
	titler  Titler
	base    string
	printer *message.Printer
}

func (s *titleSink) Report(r Report) {
	s.titler.SetTitle(s.title(r.FPS))
}

// title formats the title for a rate.
func (s *titleSink) title(fps float64) string {
	return s.printer.Sprintf("%s - FPS: %.2f", s.base, fps)
}

// Multi returns a Sink that forwards each report to all sinks in order.
// Nil sinks are skipped.
func Multi(sinks ...Sink) Sink {
	out := make([]Sink, 0, len(sinks))
	for _, s := range sinks {
		if s != nil {
			out = append(out, s)
		}
	}
	return multiSink(out)
}

type multiSink []Sink

func (m multiSink) Report(r Report) {
	for _, s := range m {
		s.Report(r)
	}
}
