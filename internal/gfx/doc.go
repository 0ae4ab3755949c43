// Copyright 2026 The gogpu Authors
// SPDX-License-Identifier: MIT

// Package gfx is the Graphics Context: the wgpu instance, adapter, device
// and queue shared by everything that renders.
//
// A Context is also the "wgpu" surface.Platform. Importing this package
// registers it in the surface registry with priority 100 and links every
// HAL backend the current OS supports.
package gfx
