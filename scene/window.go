// Copyright 2026 The gogpu Authors
// SPDX-License-Identifier: MIT

package scene

import "fmt"

// Window is the root of a scene.
type Window struct {
	X, Y          float64
	Width, Height float64
	Active        bool
	Components    []Component
	Containers    []Container
}

// Layout is how a container arranges its children.
type Layout uint8

const (
	LayoutScrollable Layout = iota
	LayoutColumn
	LayoutRow
	LayoutGrid
	LayoutTab
)

var layoutNames = [...]string{
	LayoutScrollable: "scrollable",
	LayoutColumn:     "column",
	LayoutRow:        "row",
	LayoutGrid:       "grid",
	LayoutTab:        "tab",
}

func (l Layout) String() string {
	if int(l) < len(layoutNames) {
		return layoutNames[l]
	}
	return fmt.Sprintf("Layout(%d)", uint8(l))
}

// Container groups components and nested containers under one layout.
type Container struct {
	Layout     Layout
	Components []Component
	Containers []Container
}

// Walk calls fn for every component of c, depth first: c's own components
// in order, then each nested container's. Walk stops when fn returns false
// and reports whether it visited everything.
func (c *Container) Walk(fn func(Component) bool) bool {
	return walk(c.Components, c.Containers, fn)
}

// Walk calls fn for every component of the window, depth first.
func (w *Window) Walk(fn func(Component) bool) bool {
	return walk(w.Components, w.Containers, fn)
}

func walk(components []Component, containers []Container, fn func(Component) bool) bool {
	for _, comp := range components {
		if !fn(comp) {
			return false
		}
	}
	for i := range containers {
		if !containers[i].Walk(fn) {
			return false
		}
	}
	return true
}
