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

package diag

import (
	"errors"
	"fmt"
	"io"

	"github.com/go-json-experiment/json"
)

// MarshalText implements [encoding.TextMarshaler].
func (i Severity) MarshalText() ([]byte, error) {
	return []byte(i.String()), nil
}

// UnmarshalText implements [encoding.TextUnmarshaler].
func (i *Severity) UnmarshalText(text []byte) error {
	for s := Info; s <= Warning; s++ {
		if s.String() == string(text) {
			*i = s

			return nil
		}
	}

	return fmt.Errorf("diag: unknown severity %q", text)
}

// MarshalText implements [encoding.TextMarshaler].
func (i Category) MarshalText() ([]byte, error) {
	return []byte(i.String()), nil
}

// UnmarshalText implements [encoding.TextUnmarshaler].
func (i *Category) UnmarshalText(text []byte) error {
	for c := PointerUnliftable; c <= LoopLowered; c++ {
		if c.String() == string(text) {
			*i = c

			return nil
		}
	}

	return fmt.Errorf("diag: unknown category %q", text)
}

// WriteText renders findings one per line in file:line:col form.
func (b *Bag) WriteText(w io.Writer) error {
	var errs []error
	for d := range b.All() {
		if _, err := fmt.Fprintln(w, d); err != nil {
			errs = append(errs, err)
		}
	}

	return errors.Join(errs...)
}

// WriteJSON renders the sorted findings as a JSON array.
func (b *Bag) WriteJSON(w io.Writer) error {
	diags := b.Sorted()
	if diags == nil {
		diags = []Diagnostic{}
	}

	return json.MarshalWrite(w, diags)
}
