// Copyright 2025-2026 The monadicast Authors. All Rights Reserved.
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

// Package level defines the textual check levels of the monadicast
// analyzer.
package level

import (
	"fmt"
	"strings"
)

// Pointers specifies the pointer check level.
type Pointers uint8

const (
	// PointersFull reports liftable and unliftable bindings both.
	PointersFull Pointers = iota

	// PointersLiftable only reports bindings that can be lifted.
	PointersLiftable

	// PointersOff disables the pointer check.
	PointersOff
)

// String returns the textual form of the level.
func (o Pointers) String() string {
	text, err := o.MarshalText()
	if err != nil {
		return fmt.Sprintf("Pointers(%d)", uint8(o))
	}

	return string(text)
}

// MarshalText implements [encoding.TextMarshaler].
func (o Pointers) MarshalText() ([]byte, error) {
	switch o {
	case PointersFull:
		return []byte("full"), nil

	case PointersLiftable:
		return []byte("liftable"), nil

	case PointersOff:
		return []byte("off"), nil

	default:
		return nil, fmt.Errorf("unknown pointer check level %d", o)
	}
}

// UnmarshalText implements [encoding.TextUnmarshaler].
func (o *Pointers) UnmarshalText(text []byte) error {
	switch strings.ToLower(string(text)) {
	case "", "true", "on", "full":
		*o = PointersFull

	case "liftable":
		*o = PointersLiftable

	case "off", "false":
		*o = PointersOff

	default:
		return fmt.Errorf("unknown pointer check level %q", string(text))
	}

	return nil
}
