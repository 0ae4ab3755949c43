// Copyright 2026 The gogpu Authors
// SPDX-License-Identifier: MIT

package loop

import (
	"context"
	"errors"
	"testing"
	"time"

	"github.com/gogpu/gpucontext"

	"github.com/gogpu/kozy/pacer"
	"github.com/gogpu/kozy/surface"
)

type fakeClock struct{ t time.Time }

func (c *fakeClock) Now() time.Time          { return c.t }
func (c *fakeClock) Advance(d time.Duration) { c.t = c.t.Add(d) }

type fakeWindow struct {
	w, h    int
	redraws int
}

func (w *fakeWindow) Size() (int, int) { return w.w, w.h }
func (w *fakeWindow) RequestRedraw()   { w.redraws++ }

// fakeTarget fails Acquire with the queued errors, then succeeds.
type fakeTarget struct {
	acquireErrs []error
	configs     []surface.Config
	presented   int
	discarded   int
	released    bool
}

func (t *fakeTarget) Configure(cfg surface.Config) error {
	t.configs = append(t.configs, cfg)
	return nil
}

func (t *fakeTarget) Acquire() (surface.Frame, error) {
	if len(t.acquireErrs) > 0 {
		err := t.acquireErrs[0]
		t.acquireErrs = t.acquireErrs[1:]
		if err != nil {
			return nil, err
		}
	}
	return &fakeFrame{t: t}, nil
}

func (t *fakeTarget) Release() { t.released = true }

type fakeFrame struct{ t *fakeTarget }

func (f *fakeFrame) Present() error   { f.t.presented++; return nil }
func (f *fakeFrame) Discard()         { f.t.discarded++ }
func (f *fakeFrame) Suboptimal() bool { return false }

type fakePlatform struct {
	target    *fakeTarget
	createErr error
}

func (p *fakePlatform) CreateTarget(surface.Window) (surface.Target, error) {
	if p.createErr != nil {
		return nil, p.createErr
	}
	return p.target, nil
}

func (p *fakePlatform) DefaultConfig(_ surface.Target, w, h uint32) (surface.Config, bool) {
	return surface.Config{Width: w, Height: h}, true
}

type fixture struct {
	clock    *fakeClock
	window   *fakeWindow
	target   *fakeTarget
	platform *fakePlatform
	surface  *surface.Surface
	reports  []pacer.Report
	driver   *Driver
}

func newFixture(t *testing.T, fps int, renderer Renderer) *fixture {
	t.Helper()
	f := &fixture{
		clock:  &fakeClock{t: time.Date(2026, 3, 1, 12, 0, 0, 0, time.UTC)},
		window: &fakeWindow{w: 800, h: 600},
		target: &fakeTarget{},
	}
	f.platform = &fakePlatform{target: f.target}
	f.surface = surface.New()

	sink := pacer.SinkFunc(func(r pacer.Report) { f.reports = append(f.reports, r) })
	d, err := New(Options{
		Surface:   f.surface,
		Platform:  f.platform,
		Window:    f.window,
		Pacer:     pacer.New(time.Second, sink, pacer.WithClock(f.clock.Now)),
		TargetFPS: fps,
		QuitKey:   gpucontext.KeyEscape,
		Ready:     DesktopReady,
		Renderer:  renderer,
		Clock:     f.clock.Now,
	})
	if err != nil {
		t.Fatalf("New failed: %v", err)
	}
	f.driver = d
	return f
}

func (f *fixture) handle(t *testing.T, ev Event) Control {
	t.Helper()
	ctl, err := f.driver.Handle(ev)
	if err != nil {
		t.Fatalf("Handle(%v) failed: %v", ev, err)
	}
	return ctl
}

func TestNewRequiresOptions(t *testing.T) {
	tests := []struct {
		name string
		opts Options
	}{
		{"no surface", Options{Platform: &fakePlatform{}, Window: &fakeWindow{}}},
		{"no platform", Options{Surface: surface.New(), Window: &fakeWindow{}}},
		{"no window", Options{Surface: surface.New(), Platform: &fakePlatform{}}},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if _, err := New(tt.opts); !errors.Is(err, ErrMissingOption) {
				t.Errorf("New error = %v, want ErrMissingOption", err)
			}
		})
	}
}

func TestNewDefaults(t *testing.T) {
	d, err := New(Options{Surface: surface.New(), Platform: &fakePlatform{}, Window: &fakeWindow{}})
	if err != nil {
		t.Fatalf("New failed: %v", err)
	}
	if want := time.Second / DefaultTargetFPS; d.FrameTime() != want {
		t.Errorf("FrameTime() = %v, want %v", d.FrameTime(), want)
	}
	if d.State() != StateUninitialized {
		t.Errorf("State() = %v, want Uninitialized", d.State())
	}
}

func TestReadyInitializesSurface(t *testing.T) {
	f := newFixture(t, 60, nil)

	f.handle(t, Ready{})

	if f.driver.State() != StateReady {
		t.Fatalf("State() = %v, want Ready", f.driver.State())
	}
	cfg, ok := f.surface.Config()
	if !ok {
		t.Fatal("surface not initialized")
	}
	if cfg.Width != 800 || cfg.Height != 600 {
		t.Errorf("config size = %dx%d, want 800x600", cfg.Width, cfg.Height)
	}
	if f.window.redraws != 1 {
		t.Errorf("redraws requested = %d, want 1", f.window.redraws)
	}
}

func TestEventsBeforeReadyIgnored(t *testing.T) {
	f := newFixture(t, 60, nil)

	for _, ev := range []Event{Resize{Width: 10, Height: 10}, RedrawRequest{}, Resumed{}, Other{Name: "focus"}, KeyPress{Key: gpucontext.KeyA}} {
		ctl := f.handle(t, ev)
		if ctl.Exit {
			t.Fatalf("%v caused exit", ev)
		}
	}
	if f.driver.State() != StateUninitialized {
		t.Errorf("State() = %v, want Uninitialized", f.driver.State())
	}
	if f.surface.Ready() {
		t.Error("surface initialized before the ready signal")
	}
	if f.window.redraws != 0 {
		t.Errorf("redraws requested = %d, want 0", f.window.redraws)
	}
}

func TestMobileReadyPredicate(t *testing.T) {
	f := newFixture(t, 60, nil)
	f.driver.ready = MobileReady

	f.handle(t, Ready{})
	if f.driver.State() != StateUninitialized {
		t.Fatalf("desktop ready signal initialized a mobile driver")
	}
	f.handle(t, Resumed{})
	if f.driver.State() != StateReady {
		t.Errorf("State() after Resumed = %v, want Ready", f.driver.State())
	}
}

func TestReadyAgainRebuildsSurface(t *testing.T) {
	f := newFixture(t, 60, nil)

	f.handle(t, Ready{})
	f.handle(t, Ready{})

	if !f.target.released {
		t.Error("old target not released on rebuild")
	}
	if len(f.target.configs) != 2 {
		t.Errorf("configures = %d, want 2", len(f.target.configs))
	}
	if f.driver.State() != StateReady {
		t.Errorf("State() = %v, want Ready", f.driver.State())
	}
}

func TestSetupFailureExits(t *testing.T) {
	f := newFixture(t, 60, nil)
	f.platform.createErr = errors.New("rejected")

	ctl, err := f.driver.Handle(Ready{})

	var setupErr *surface.SetupError
	if !errors.As(err, &setupErr) {
		t.Fatalf("Handle error = %v, want *surface.SetupError", err)
	}
	if !ctl.Exit || f.driver.State() != StateExiting {
		t.Errorf("setup failure did not exit: ctl=%+v state=%v", ctl, f.driver.State())
	}
}

// 800x600 at 30 fps: the first redraw advances the pacer and schedules the
// next wake-up one frame later; a following zero resize stores 1x1.
func TestFirstRedrawAndZeroResize(t *testing.T) {
	f := newFixture(t, 30, nil)
	f.handle(t, Ready{})

	now := f.clock.Now()
	ctl := f.handle(t, RedrawRequest{})

	if got := f.driver.pacer.Frames(); got != 1 {
		t.Errorf("pacer frames = %d, want 1", got)
	}
	if want := now.Add(time.Second / 30); !ctl.WaitUntil.Equal(want) {
		t.Errorf("WaitUntil = %v, want %v", ctl.WaitUntil, want)
	}
	if !f.driver.LastFrame().Equal(now) {
		t.Errorf("LastFrame() = %v, want %v", f.driver.LastFrame(), now)
	}
	if f.window.redraws != 2 {
		t.Errorf("redraws requested = %d, want 2 (init + redraw)", f.window.redraws)
	}

	f.handle(t, Resize{Width: 0, Height: 0})

	cfg, _ := f.surface.Config()
	if cfg.Width != 1 || cfg.Height != 1 {
		t.Errorf("config size after Resize(0,0) = %dx%d, want 1x1", cfg.Width, cfg.Height)
	}
	if f.window.redraws != 3 {
		t.Errorf("resize did not request a repaint")
	}
}

func TestWaitUntilTracksLastFrame(t *testing.T) {
	f := newFixture(t, 50, nil)
	f.handle(t, Ready{})
	f.handle(t, RedrawRequest{})
	first := f.driver.LastFrame()

	f.clock.Advance(5 * time.Millisecond)
	ctl := f.handle(t, Other{Name: "cursor"})

	if want := first.Add(20 * time.Millisecond); !ctl.WaitUntil.Equal(want) {
		t.Errorf("WaitUntil after unrelated event = %v, want %v", ctl.WaitUntil, want)
	}
}

func TestExitEvents(t *testing.T) {
	tests := []struct {
		name     string
		ev       Event
		wantExit bool
	}{
		{"close", CloseRequest{}, true},
		{"quit key", KeyPress{Key: gpucontext.KeyEscape}, true},
		{"other key", KeyPress{Key: gpucontext.KeyQ}, false},
		{"unknown event", Other{Name: "moved"}, false},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			f := newFixture(t, 60, nil)
			f.handle(t, Ready{})
			redraws := f.window.redraws

			ctl := f.handle(t, tt.ev)

			if ctl.Exit != tt.wantExit {
				t.Errorf("Exit = %v, want %v", ctl.Exit, tt.wantExit)
			}
			if tt.wantExit {
				if f.driver.State() != StateExiting {
					t.Errorf("State() = %v, want Exiting", f.driver.State())
				}
				if f.surface.Ready() || !f.target.released {
					t.Error("surface not released on exit")
				}
			}
			if f.window.redraws != redraws {
				t.Errorf("event requested a redraw")
			}
		})
	}
}

func TestNoRedrawAfterClose(t *testing.T) {
	f := newFixture(t, 60, nil)
	f.handle(t, Ready{})
	f.handle(t, CloseRequest{})
	redraws := f.window.redraws

	ctl := f.handle(t, RedrawRequest{})
	f.handle(t, Ready{})
	f.handle(t, Resize{Width: 5, Height: 5})

	if !ctl.Exit {
		t.Error("Exit cleared after close")
	}
	if f.window.redraws != redraws {
		t.Errorf("redraw requested after close")
	}
	if f.driver.pacer.Frames() != 0 {
		t.Errorf("pacer advanced after close")
	}
	if f.surface.Ready() {
		t.Error("surface re-initialized after close")
	}
}

func TestCloseBeforeReadyExits(t *testing.T) {
	f := newFixture(t, 60, nil)

	ctl := f.handle(t, CloseRequest{})

	if !ctl.Exit {
		t.Error("close in Uninitialized did not exit")
	}
}

func TestQuitKeyDisabled(t *testing.T) {
	f := newFixture(t, 60, nil)
	f.driver.quitKey = gpucontext.KeyUnknown
	f.handle(t, Ready{})

	if ctl := f.handle(t, KeyPress{Key: gpucontext.KeyUnknown}); ctl.Exit {
		t.Error("unknown key exited with the quit key disabled")
	}
}

func TestRedrawRendersAndPresents(t *testing.T) {
	var got surface.Config
	r := RendererFunc(func(_ surface.Frame, cfg surface.Config) error {
		got = cfg
		return nil
	})
	f := newFixture(t, 60, r)
	f.handle(t, Ready{})
	f.handle(t, RedrawRequest{})

	if f.target.presented != 1 {
		t.Errorf("presented = %d, want 1", f.target.presented)
	}
	if got.Width != 800 || got.Height != 600 {
		t.Errorf("renderer config = %dx%d, want 800x600", got.Width, got.Height)
	}
}

func TestRedrawErrorPolicy(t *testing.T) {
	renderErr := errors.New("encoder failed")

	tests := []struct {
		name          string
		acquireErrs   []error
		renderErr     error
		wantFatal     bool
		wantPresented int
		wantDiscarded int
	}{
		{name: "recovered timeout", acquireErrs: []error{surface.ErrTimeout}, wantPresented: 1},
		{name: "persistent timeout skips", acquireErrs: []error{surface.ErrTimeout, surface.ErrTimeout}},
		{name: "persistent lost skips", acquireErrs: []error{surface.ErrLost, surface.ErrLost}},
		{name: "unknown error skips", acquireErrs: []error{errors.New("driver hiccup")}},
		{name: "render error discards", renderErr: renderErr, wantDiscarded: 1},
		{name: "recovered oom", acquireErrs: []error{surface.ErrOutOfMemory}, wantPresented: 1},
		{name: "persistent oom is fatal", acquireErrs: []error{surface.ErrOutOfMemory, surface.ErrOutOfMemory}, wantFatal: true},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			r := RendererFunc(func(surface.Frame, surface.Config) error { return tt.renderErr })
			f := newFixture(t, 60, r)
			f.handle(t, Ready{})
			f.target.acquireErrs = tt.acquireErrs
			redraws := f.window.redraws

			ctl, err := f.driver.Handle(RedrawRequest{})

			if tt.wantFatal {
				if !errors.Is(err, surface.ErrOutOfMemory) {
					t.Fatalf("Handle error = %v, want out of memory", err)
				}
				if !ctl.Exit || f.driver.State() != StateExiting {
					t.Errorf("fatal error did not exit")
				}
				return
			}
			if err != nil {
				t.Fatalf("Handle error = %v, want frame skipped", err)
			}
			if ctl.Exit {
				t.Error("skipped frame caused exit")
			}
			if f.window.redraws != redraws+1 {
				t.Error("next redraw not requested after skipped frame")
			}
			if f.target.presented != tt.wantPresented {
				t.Errorf("presented = %d, want %d", f.target.presented, tt.wantPresented)
			}
			if f.target.discarded != tt.wantDiscarded {
				t.Errorf("discarded = %d, want %d", f.target.discarded, tt.wantDiscarded)
			}
		})
	}
}

func TestPacerReportsThroughDriver(t *testing.T) {
	f := newFixture(t, 60, nil)
	f.handle(t, Ready{})

	for i := 0; i < 10; i++ {
		f.clock.Advance(100 * time.Millisecond)
		f.handle(t, RedrawRequest{})
	}

	if len(f.reports) != 1 {
		t.Fatalf("reports = %d, want 1", len(f.reports))
	}
	if f.reports[0].Frames != 10 {
		t.Errorf("Frames = %d, want 10", f.reports[0].Frames)
	}
}

// scriptHost replays events and records the deadlines it was given.
type scriptHost struct {
	events    []Event
	deadlines []time.Time
	err       error
}

func (h *scriptHost) Next(_ context.Context, deadline time.Time) (Event, error) {
	h.deadlines = append(h.deadlines, deadline)
	if len(h.events) == 0 {
		if h.err != nil {
			return nil, h.err
		}
		return CloseRequest{}, nil
	}
	ev := h.events[0]
	h.events = h.events[1:]
	return ev, nil
}

func TestRun(t *testing.T) {
	f := newFixture(t, 30, nil)
	host := &scriptHost{events: []Event{Ready{}, RedrawRequest{}, Resize{Width: 640, Height: 480}, RedrawRequest{}}}

	if err := f.driver.Run(context.Background(), host); err != nil {
		t.Fatalf("Run failed: %v", err)
	}

	if f.driver.State() != StateExiting {
		t.Errorf("State() = %v, want Exiting", f.driver.State())
	}
	if len(host.deadlines) != 5 {
		t.Fatalf("Next calls = %d, want 5", len(host.deadlines))
	}
	if want := f.clock.Now().Add(time.Second / 30); !host.deadlines[2].Equal(want) {
		t.Errorf("deadline after first redraw = %v, want %v", host.deadlines[2], want)
	}
	if len(f.target.configs) != 2 || f.target.configs[1].Width != 640 {
		t.Errorf("configs = %+v, want init then 640x480", f.target.configs)
	}
}

func TestRunHostError(t *testing.T) {
	f := newFixture(t, 30, nil)
	hostErr := errors.New("display lost")
	host := &scriptHost{events: []Event{Ready{}}, err: hostErr}

	err := f.driver.Run(context.Background(), host)

	if !errors.Is(err, hostErr) {
		t.Errorf("Run error = %v, want host error", err)
	}
	if f.surface.Ready() {
		t.Error("surface not released after host error")
	}
}

func TestRunHeadlessWindow(t *testing.T) {
	w := NewHeadlessWindow(64, 32, 3)
	d, err := New(Options{
		Surface:   surface.New(),
		Platform:  surface.NewHeadless(),
		Window:    w,
		TargetFPS: 1000,
		Ready:     DesktopReady,
	})
	if err != nil {
		t.Fatalf("New failed: %v", err)
	}

	ctx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
	defer cancel()

	if err := d.Run(ctx, w); err != nil {
		t.Fatalf("Run failed: %v", err)
	}
	if w.Drawn() != 3 {
		t.Errorf("Drawn() = %d, want 3", w.Drawn())
	}
}

func TestRunContextCanceled(t *testing.T) {
	w := NewHeadlessWindow(64, 32, 0)
	d, err := New(Options{Surface: surface.New(), Platform: surface.NewHeadless(), Window: w, Ready: DesktopReady})
	if err != nil {
		t.Fatalf("New failed: %v", err)
	}

	ctx, cancel := context.WithCancel(context.Background())
	cancel()

	if err := d.Run(ctx, w); !errors.Is(err, context.Canceled) {
		t.Errorf("Run error = %v, want context.Canceled", err)
	}
}

func TestStateString(t *testing.T) {
	tests := []struct {
		s    State
		want string
	}{
		{StateUninitialized, "Uninitialized"},
		{StateReady, "Ready"},
		{StateExiting, "Exiting"},
		{State(7), "State(7)"},
	}
	for _, tt := range tests {
		if got := tt.s.String(); got != tt.want {
			t.Errorf("String() = %q, want %q", got, tt.want)
		}
	}
}
