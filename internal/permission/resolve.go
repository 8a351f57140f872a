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

package permission

// Resolve maps an accumulated capability set to the strongest safe type
// it supports. The mapping is total: every possible set resolves, and
// sets outside the recognized combinations resolve to [Undefined].
//
// Resolve is a pure function of the set. It never inspects the program
// the set was accumulated from.
func Resolve(s Set) SafeType {
	write, unique, free := s.Has(Write), s.Has(Unique), s.Has(Free)
	offset := s.HasOffset()

	switch {
	case !write && !unique && !free:
		// Read-only. Arithmetic widens the view from one element to many.
		if offset {
			return ImmutableSlice
		}

		return ImmutableReference

	case write && unique && !free:
		if offset {
			return MutableSlice
		}

		return MutableReference

	case write && !unique && !free:
		// Shared mutation pins the pointee in place. Arithmetic on a
		// shared mutable pointer has no safe rendering.
		if offset {
			return Undefined
		}

		return CellReference

	case !write && unique && free:
		if offset {
			return UniqueSlicePointer
		}

		return UniquePointer

	default:
		return Undefined
	}
}
