// Copyright 2026 The gogpu Authors
// SPDX-License-Identifier: MIT

package loop

import (
	"fmt"
	"strings"

	"github.com/gogpu/gpucontext"
)

var keyNames = map[string]gpucontext.Key{
	"escape":    gpucontext.KeyEscape,
	"esc":       gpucontext.KeyEscape,
	"tab":       gpucontext.KeyTab,
	"backspace": gpucontext.KeyBackspace,
	"enter":     gpucontext.KeyEnter,
	"return":    gpucontext.KeyEnter,
	"space":     gpucontext.KeySpace,
	"insert":    gpucontext.KeyInsert,
	"delete":    gpucontext.KeyDelete,
	"home":      gpucontext.KeyHome,
	"end":       gpucontext.KeyEnd,
	"pageup":    gpucontext.KeyPageUp,
	"pagedown":  gpucontext.KeyPageDown,
	"left":      gpucontext.KeyLeft,
	"right":     gpucontext.KeyRight,
	"up":        gpucontext.KeyUp,
	"down":      gpucontext.KeyDown,
	"pause":     gpucontext.KeyPause,
}

func init() {
	for i := range 26 {
		keyNames[string(rune('a'+i))] = gpucontext.KeyA + gpucontext.Key(i)
	}
	for i := range 10 {
		keyNames[string(rune('0'+i))] = gpucontext.Key0 + gpucontext.Key(i)
	}
	for i := range 12 {
		keyNames[fmt.Sprintf("f%d", i+1)] = gpucontext.KeyF1 + gpucontext.Key(i)
	}
}

// ParseKey returns the key named by s, case-insensitively: a letter, a
// digit, "f1" to "f12", or a name such as "escape" or "space". The empty
// string and "none" give KeyUnknown, which disables a quit key.
func ParseKey(s string) (gpucontext.Key, error) {
	s = strings.ToLower(strings.TrimSpace(s))
	if s == "" || s == "none" {
		return gpucontext.KeyUnknown, nil
	}
	if k, ok := keyNames[s]; ok {
		return k, nil
	}
	return gpucontext.KeyUnknown, fmt.Errorf("loop: unknown key %q", s)
}
