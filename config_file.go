// Copyright 2026 The gogpu Authors
// SPDX-License-Identifier: MIT

package kozy

import (
	"bytes"
	"errors"
	"fmt"
	"io"
	"os"

	"gopkg.in/yaml.v3"
)

// LoadConfig reads a YAML file on top of DefaultConfig. A missing file
// yields the defaults. Unknown keys are an error.
//
//	title: demo
//	width: 1024
//	height: 768
//	target_fps: 30
//	clear_color: cornflowerblue
//	quit_key: q
func LoadConfig(path string) (Config, error) {
	cfg := DefaultConfig()
	data, err := os.ReadFile(path)
	if errors.Is(err, os.ErrNotExist) {
		return cfg, nil
	}
	if err != nil {
		return cfg, fmt.Errorf("kozy: read config: %w", err)
	}
	if err := decodeConfig(data, &cfg); err != nil {
		return cfg, fmt.Errorf("kozy: parse %s: %w", path, err)
	}
	return cfg, nil
}

// decodeConfig decodes YAML into out, leaving fields absent from data
// untouched.
func decodeConfig(data []byte, out *Config) error {
	dec := yaml.NewDecoder(bytes.NewReader(data))
	dec.KnownFields(true)
	if err := dec.Decode(out); err != nil {
		if err == io.EOF {
			return nil
		}
		return err
	}
	return nil
}
