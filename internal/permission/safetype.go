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

// SafeType classifies the safe Go rendering a pointer binding supports.
type SafeType uint8

//go:generate go tool stringer -type SafeType -linecomment
const (
	// Undefined indicates no safe rendering exists for the accumulated
	// capabilities. Bindings resolving to Undefined are left untouched.
	Undefined SafeType = iota // undefined

	// ImmutableReference is a pointer that is only ever read through.
	ImmutableReference // immutable-ref

	// MutableReference is an exclusively held pointer that is written through.
	MutableReference // mutable-ref

	// CellReference is a potentially shared pointer that is written through.
	CellReference // cell-ref

	// UniquePointer is an exclusively held pointer whose storage the
	// program releases itself.
	UniquePointer // unique-ptr

	// ImmutableSlice is a read-only pointer used with arithmetic.
	ImmutableSlice // immutable-slice

	// MutableSlice is an exclusively held, written-through pointer used
	// with arithmetic.
	MutableSlice // mutable-slice

	// UniqueSlicePointer is an owned, released pointer used with arithmetic.
	UniqueSlicePointer // unique-slice
)

// Safe reports whether the binding has any safe rendering at all.
func (i SafeType) Safe() bool { return i != Undefined }

// Slice reports whether the rendering is a Go slice type.
func (i SafeType) Slice() bool {
	return i == ImmutableSlice || i == MutableSlice || i == UniqueSlicePointer
}

// Owned reports whether the binding owns its storage, making release
// calls redundant under garbage collection.
func (i SafeType) Owned() bool {
	return i == UniquePointer || i == UniqueSlicePointer
}
