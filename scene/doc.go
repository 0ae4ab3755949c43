// Copyright 2026 The gogpu Authors
// SPDX-License-Identifier: MIT

// Package scene holds the data model of a window's user interface: a
// tree of containers and components. It is inert. Nothing here lays out
// or draws anything; a renderer walks the tree.
package scene
