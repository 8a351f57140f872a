// Copyright 2026 The monadicast Authors. All Rights Reserved.
//
// Licensed under the Apache License, Version 2.0 (the "License");
// you may not use this file except in compliance with the License.
// You may obtain a copy of the License at
//
//     http://www.apache.org/licenses/LICENSE-2.0
//
// Unless required by applicable law or agreed to in writing, software
// distributed under the License is distributed on an "AS IS" BASIS,
// WITHOUT WARRANTIES OR CONDITIONS OF ANY KIND, either express or implied.
// See the License for the specific language governing permissions and
// limitations under the License.
//
// SPDX-License-Identifier: Apache-2.0

package config

import (
	"fmt"
	"os"

	"gopkg.in/yaml.v3"
)

// Format selects how findings are rendered.
type Format uint8

//go:generate go tool stringer -type Format -linecomment
const (
	// FormatText renders findings one per line in file:line:col form.
	FormatText Format = iota // text

	// FormatJSON renders findings as a JSON array.
	FormatJSON // json
)

// MarshalText implements [encoding.TextMarshaler].
func (i Format) MarshalText() ([]byte, error) {
	return []byte(i.String()), nil
}

// UnmarshalText implements [encoding.TextUnmarshaler].
func (i *Format) UnmarshalText(text []byte) error {
	for f := FormatText; f <= FormatJSON; f++ {
		if f.String() == string(text) {
			*i = f

			return nil
		}
	}

	return fmt.Errorf("config: unknown output format %q", text)
}

// UnmarshalYAML implements [yaml.Unmarshaler]. The yaml package decodes
// through this rather than [encoding.TextUnmarshaler].
func (i *Format) UnmarshalYAML(value *yaml.Node) error {
	var text string
	if err := value.Decode(&text); err != nil {
		return err
	}

	return i.UnmarshalText([]byte(text))
}

// File is the on-disk configuration of the lifting tool.
type File struct {
	// Passes selects the passes to run. Absent entries keep their default.
	Passes Passes `yaml:"passes"`

	// Pointers configures how the dialect's pointer idioms are recognized.
	Pointers Pointers `yaml:"pointers"`

	// Loops configures how counting loops are recognized.
	Loops Loops `yaml:"loops"`

	// FFI configures the foreign type conversion table.
	FFI FFI `yaml:"ffi"`

	// Output selects the findings rendering.
	Output Format `yaml:"output"`

	// Jobs caps the number of files processed concurrently.
	// Zero means one worker per CPU.
	Jobs int `yaml:"jobs"`
}

// Passes is a tri-state pass selection: nil keeps the default.
type Passes struct {
	FFI      *bool `yaml:"ffi"`
	Pointers *bool `yaml:"pointers"`
	Loops    *bool `yaml:"loops"`
	Cleanup  *bool `yaml:"cleanup"`
}

// Mask folds the selection onto the default pass set.
func (p Passes) Mask() BitMask[PassFlags] {
	m := DefaultPasses()

	for _, sel := range []struct {
		value *bool
		flag  PassFlags
	}{
		{p.FFI, FFIPass},
		{p.Pointers, PointerPass},
		{p.Loops, LoopPass},
		{p.Cleanup, CleanupPass},
	} {
		if sel.value != nil {
			m.Set(sel.flag, *sel.value)
		}
	}

	return m
}

// Pointers names the dialect functions and methods the pointer analysis
// recognizes.
type Pointers struct {
	// AdvanceMethods are arithmetic methods that move a pointer forward.
	AdvanceMethods []string `yaml:"advance-methods"`

	// RetreatMethods are arithmetic methods that move a pointer backward.
	RetreatMethods []string `yaml:"retreat-methods"`

	// SignedMethods are arithmetic methods whose direction follows the
	// sign of their literal argument. Non-literal arguments advance.
	SignedMethods []string `yaml:"signed-methods"`

	// AllocFunctions allocate fresh storage, establishing unique ownership.
	AllocFunctions []string `yaml:"alloc-functions"`

	// GrowFunctions resize storage in place. They have no safe rendering
	// and block rewriting of their argument.
	GrowFunctions []string `yaml:"grow-functions"`

	// ReleaseFunctions release storage.
	ReleaseFunctions []string `yaml:"release-functions"`
}

// Loops configures counting loop recognition.
type Loops struct {
	// CastTypes are the numeric conversion names accepted in an
	// induction variable initializer, e.g. the int32 of int32(0).
	CastTypes []string `yaml:"cast-types"`
}

// FFI configures the foreign type conversion table.
type FFI struct {
	// Package is the selector prefix of foreign ABI types.
	Package string `yaml:"package"`

	// Types maps foreign type names to native Go types.
	Types map[string]string `yaml:"types"`
}

// Default returns the built-in dialect configuration.
func Default() File {
	return File{
		Pointers: Pointers{
			AdvanceMethods:   []string{"add"},
			RetreatMethods:   []string{"sub"},
			SignedMethods:    []string{"offset"},
			AllocFunctions:   []string{"malloc", "calloc"},
			GrowFunctions:    []string{"realloc"},
			ReleaseFunctions: []string{"free"},
		},
		Loops: Loops{
			CastTypes: []string{
				"int", "int8", "int16", "int32", "int64",
				"uint", "uint8", "uint16", "uint32", "uint64",
				"uintptr", "byte", "rune",
			},
		},
		FFI: FFI{
			Package: "ffi",
			Types: map[string]string{
				"Char":      "int8",
				"UChar":     "uint8",
				"SChar":     "int8",
				"Short":     "int16",
				"UShort":    "uint16",
				"Int":       "int32",
				"UInt":      "uint32",
				"Long":      "int64",
				"ULong":     "uint64",
				"LongLong":  "int64",
				"ULongLong": "uint64",
				"Float":     "float32",
				"Double":    "float64",
				"SizeT":     "uintptr",
				"SSizeT":    "int64",
			},
		},
		Output: FormatText,
	}
}

// Load reads a YAML configuration file on top of the defaults.
// Absent keys keep their default values.
func Load(path string) (File, error) {
	f := Default()

	data, err := os.ReadFile(path)
	if err != nil {
		return f, fmt.Errorf("config: %w", err)
	}

	if err := yaml.Unmarshal(data, &f); err != nil {
		return f, fmt.Errorf("config: parsing %s: %w", path, err)
	}

	return f, nil
}
