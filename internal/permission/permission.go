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

// Package permission models the capabilities observed on raw pointer
// bindings and maps accumulated capability sets to the safe Go types
// they support.
package permission

import (
	"strings"

	"github.com/rusty-catz/monadicast/internal/config"
)

// Access is a single capability observed on a raw pointer binding.
type Access uint8

const (
	// Write is recorded when the program stores through the pointer.
	Write Access = 1 << iota

	// Unique is recorded when the pointer provably holds the only live
	// reference to its pointee, established by allocation provenance.
	Unique

	// Free is recorded when the pointer is passed to a release function.
	Free

	// OffsetAdd is recorded for forward pointer arithmetic.
	OffsetAdd

	// OffsetSub is recorded for backward pointer arithmetic.
	OffsetSub
)

// accessNames lists every capability in canonical rendering order.
var accessNames = [...]struct {
	flag Access
	name string
}{
	{Write, "write"},
	{Unique, "unique"},
	{Free, "free"},
	{OffsetAdd, "offset+"},
	{OffsetSub, "offset-"},
}

// String returns the canonical name of a single capability.
func (a Access) String() string {
	for _, n := range accessNames {
		if n.flag == a {
			return n.name
		}
	}

	return "invalid"
}

// Set is an accumulated capability set. Sets only ever grow: observing
// more of the program can add capabilities but never retract one.
type Set struct {
	mask config.BitMask[Access]
}

// NewSet creates a [Set] holding the given capabilities.
func NewSet(accesses ...Access) Set {
	var s Set
	for _, a := range accesses {
		s.Add(a)
	}

	return s
}

// Add records a capability. Adding a capability twice is a no-op.
func (s *Set) Add(a Access) {
	s.mask.Enable(a)
}

// Has reports whether the capability has been recorded.
func (s Set) Has(a Access) bool {
	return s.mask.Enabled(a)
}

// Empty reports whether no capability has been recorded.
func (s Set) Empty() bool {
	return s == Set{}
}

// HasOffset reports whether any pointer arithmetic has been recorded.
func (s Set) HasOffset() bool {
	return s.mask.Enabled(OffsetAdd | OffsetSub)
}

// String renders the set in canonical order, e.g. "write|offset+".
// The empty set renders as "none".
func (s Set) String() string {
	if s.Empty() {
		return "none"
	}

	var b strings.Builder
	for _, n := range accessNames {
		if !s.Has(n.flag) {
			continue
		}

		if b.Len() > 0 {
			b.WriteByte('|') // ignore error
		}

		b.WriteString(n.name) // ignore error
	}

	return b.String()
}
