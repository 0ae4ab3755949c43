// Copyright 2026 The gogpu Authors
// SPDX-License-Identifier: MIT

package surface

import (
	"cmp"
	"errors"
	"fmt"
	"log/slog"
	"slices"
	"sync"
)

// PlatformOptions is passed to platform factories.
type PlatformOptions struct {
	// Window is the window the platform will present to. GPU platforms
	// use it to pick an adapter that can present to it.
	Window Window

	// LowPower prefers an integrated adapter over a discrete one.
	LowPower bool

	// ForceFallback forces a software adapter.
	ForceFallback bool

	// Logger receives platform diagnostics. Nil is silent.
	Logger *slog.Logger
}

// PlatformFactory creates a Platform with the given options.
type PlatformFactory func(opts PlatformOptions) (Platform, error)

// RegistryEntry is a registered platform backend.
type RegistryEntry struct {
	Name string

	// Priority orders automatic selection, highest first. Entries with a
	// priority of zero or less are never selected automatically and must
	// be asked for by name; the headless platform is one of them.
	Priority int

	Factory PlatformFactory

	// Available reports whether the backend can run on this system.
	Available func() bool
}

// Auto reports whether NewPlatform may pick the entry.
func (e *RegistryEntry) Auto() bool { return e.Priority > 0 }

// Registry holds platform backends by name.
//
// GPU backends register from an init function:
//
//	func init() {
//	    surface.Register("wgpu", 100, newPlatform, nil)
//	}
type Registry struct {
	mu      sync.RWMutex
	entries map[string]*RegistryEntry
}

var globalRegistry = NewRegistry()

// NewRegistry creates an empty registry.
func NewRegistry() *Registry {
	return &Registry{entries: make(map[string]*RegistryEntry)}
}

// Register adds a backend to the global registry. A nil available means
// always available. Registering an existing name replaces it.
func Register(name string, priority int, factory PlatformFactory, available func() bool) {
	globalRegistry.Register(name, priority, factory, available)
}

// Unregister removes a backend from the global registry.
func Unregister(name string) { globalRegistry.Unregister(name) }

// List returns every registered backend name, highest priority first.
func List() []string { return globalRegistry.List() }

// Available returns the names of backends that can run here, highest
// priority first.
func Available() []string { return globalRegistry.Available() }

// Get returns a copy of the named entry.
func Get(name string) (*RegistryEntry, bool) { return globalRegistry.Get(name) }

// NewPlatform creates a platform from the best automatically selectable
// backend in the global registry.
func NewPlatform(opts PlatformOptions) (Platform, error) {
	return globalRegistry.NewPlatform(opts)
}

// NewPlatformByName creates a platform from the named backend in the
// global registry.
func NewPlatformByName(name string, opts PlatformOptions) (Platform, error) {
	return globalRegistry.NewPlatformByName(name, opts)
}

// Register adds a backend.
func (r *Registry) Register(name string, priority int, factory PlatformFactory, available func() bool) {
	if available == nil {
		available = func() bool { return true }
	}
	r.mu.Lock()
	defer r.mu.Unlock()
	r.entries[name] = &RegistryEntry{
		Name:      name,
		Priority:  priority,
		Factory:   factory,
		Available: available,
	}
}

// Unregister removes a backend.
func (r *Registry) Unregister(name string) {
	r.mu.Lock()
	defer r.mu.Unlock()
	delete(r.entries, name)
}

// List returns every backend name, highest priority first.
func (r *Registry) List() []string {
	return names(r.sorted(func(*RegistryEntry) bool { return true }))
}

// Available returns the backends that can run here, highest priority
// first. Explicit-only backends are included.
func (r *Registry) Available() []string {
	return names(r.sorted(func(e *RegistryEntry) bool { return e.Available() }))
}

// Get returns a copy of the named entry.
func (r *Registry) Get(name string) (*RegistryEntry, bool) {
	r.mu.RLock()
	defer r.mu.RUnlock()
	e, ok := r.entries[name]
	if !ok {
		return nil, false
	}
	cp := *e
	return &cp, true
}

// NewPlatform tries the available backends with a positive priority,
// highest first, and returns the first platform created. If every
// candidate fails the errors are joined, so a fatal cause such as a
// missing GPU adapter stays visible to errors.Is. Explicit-only backends
// are never tried: a failed GPU setup does not silently become headless.
func (r *Registry) NewPlatform(opts PlatformOptions) (Platform, error) {
	candidates := r.sorted(func(e *RegistryEntry) bool { return e.Auto() && e.Available() })
	if len(candidates) == 0 {
		return nil, ErrNoBackendAvailable
	}

	var errs []error
	for _, e := range candidates {
		p, err := e.Factory(opts)
		if err == nil {
			return p, nil
		}
		errs = append(errs, fmt.Errorf("%s: %w", e.Name, err))
	}
	return nil, errors.Join(errs...)
}

// NewPlatformByName creates a platform from the named backend.
func (r *Registry) NewPlatformByName(name string, opts PlatformOptions) (Platform, error) {
	e, ok := r.Get(name)
	if !ok {
		return nil, &BackendNotFoundError{Name: name}
	}
	if !e.Available() {
		return nil, &BackendUnavailableError{Name: name}
	}
	return e.Factory(opts)
}

// sorted returns the entries accepted by keep, by descending priority and
// then by name.
func (r *Registry) sorted(keep func(*RegistryEntry) bool) []*RegistryEntry {
	r.mu.RLock()
	out := make([]*RegistryEntry, 0, len(r.entries))
	for _, e := range r.entries {
		out = append(out, e)
	}
	r.mu.RUnlock()

	out = slices.DeleteFunc(out, func(e *RegistryEntry) bool { return !keep(e) })
	slices.SortFunc(out, func(a, b *RegistryEntry) int {
		if c := cmp.Compare(b.Priority, a.Priority); c != 0 {
			return c
		}
		return cmp.Compare(a.Name, b.Name)
	})
	return out
}

func names(entries []*RegistryEntry) []string {
	out := make([]string, len(entries))
	for i, e := range entries {
		out[i] = e.Name
	}
	return out
}

// Errors.
var (
	// ErrNoBackendAvailable is returned by NewPlatform when no backend can
	// be selected automatically.
	ErrNoBackendAvailable = errors.New("surface: no backend available")
)

// BackendNotFoundError indicates a named backend is not registered.
type BackendNotFoundError struct {
	Name string
}

func (e *BackendNotFoundError) Error() string {
	return "surface: backend not found: " + e.Name
}

// BackendUnavailableError indicates a backend exists but cannot run here.
type BackendUnavailableError struct {
	Name string
}

func (e *BackendUnavailableError) Error() string {
	return "surface: backend unavailable: " + e.Name
}

func init() {
	Register(HeadlessName, 0, func(PlatformOptions) (Platform, error) {
		return NewHeadless(), nil
	}, nil)
}
