// Copyright 2026 The gogpu Authors
// SPDX-License-Identifier: MIT

package scene

import "fmt"

// Kind is the closed set of component kinds.
type Kind uint8

const (
	KindButton Kind = iota
	KindLabel
	KindTextBox
	KindImage
	KindTooltip
	KindToggle
	KindSlider
	KindDropdown
	KindColorPicker
	KindDatePicker
	KindNumericInput
	KindTable
	KindTree
	KindList
	KindModal
	KindMenu
	KindDragAndDrop
	KindToolbar
	KindMenuBar
	KindProgressBar
	KindSpinner
	KindCanvas
	KindStatusBar
	KindAccordion
	KindSpacer
	KindCommand
	KindOverlay
	KindCustom

	kindCount
)

var kindNames = [kindCount]string{
	KindButton:       "button",
	KindLabel:        "label",
	KindTextBox:      "text box",
	KindImage:        "image",
	KindTooltip:      "tooltip",
	KindToggle:       "toggle",
	KindSlider:       "slider",
	KindDropdown:     "dropdown",
	KindColorPicker:  "color picker",
	KindDatePicker:   "date picker",
	KindNumericInput: "numeric input",
	KindTable:        "table",
	KindTree:         "tree",
	KindList:         "list",
	KindModal:        "modal",
	KindMenu:         "menu",
	KindDragAndDrop:  "drag and drop",
	KindToolbar:      "toolbar",
	KindMenuBar:      "menu bar",
	KindProgressBar:  "progress bar",
	KindSpinner:      "spinner",
	KindCanvas:       "canvas",
	KindStatusBar:    "status bar",
	KindAccordion:    "accordion",
	KindSpacer:       "spacer",
	KindCommand:      "command",
	KindOverlay:      "overlay",
	KindCustom:       "custom",
}

func (k Kind) String() string {
	if k < kindCount {
		return kindNames[k]
	}
	return fmt.Sprintf("Kind(%d)", uint8(k))
}

// Valid reports whether k is one of the defined kinds.
func (k Kind) Valid() bool { return k < kindCount }

// Component is a node of the scene.
type Component interface {
	Kind() Kind
}

// Element is a component without data of its own. Every kind except
// button is an Element today.
type Element struct {
	K Kind
}

// Kind returns e.K.
func (e Element) Kind() Kind { return e.K }

// Button is a labeled, filled rectangle.
type Button struct {
	Label         string
	Color         Color
	X, Y          float64
	Width, Height float64

	// Hover is updated by Contains.
	Hover bool
}

// NewButton returns a button that is not hovered.
func NewButton(label string, c Color, x, y, width, height float64) *Button {
	return &Button{Label: label, Color: c, X: x, Y: y, Width: width, Height: height}
}

// Kind returns KindButton.
func (*Button) Kind() Kind { return KindButton }

// Contains reports whether (x, y) lies inside the button, edges included,
// and sets Hover to the result.
func (b *Button) Contains(x, y float64) bool {
	b.Hover = x >= b.X && x <= b.X+b.Width && y >= b.Y && y <= b.Y+b.Height
	return b.Hover
}
