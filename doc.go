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

// Package monadicast lifts transpiler-emitted Go into idiomatic Go.
//
// # Overview
//
// Mechanical C-to-Go translation produces Go that still speaks C: raw
// pointers walked with arithmetic methods, malloc and free, counting
// while-loops and foreign ABI types. This package chains lifting passes
// over one translation unit at a time, each pass replacing one of those
// idioms with its native Go form where a purely syntactic analysis can
// prove the replacement faithful.
//
// # Example
//
// Before:
//
//	func fill(n int32, seed ffi.Int) {
//	    var p *int32 = malloc(n)
//	    var i int32 = int32(0)
//	    for i < n {
//	        *p.add(i) = seed
//	        i = i + 1
//	    }
//	}
//
// After the full pipeline:
//
//	func fill(n int32, seed int32) {
//	    var p []int32 = make([]int32, n)
//	    for i := range n {
//	        p[i] = seed
//	    }
//	}
//
// # Passes
//
// The passes run in a fixed order, each one a [Pass] bound onto the
// [MonadicAst] chain:
//
//   - ConvertForeignTypes: ffi.Int and friends become native Go types
//   - ReplaceRawPointers: pointer bindings become references or slices
//     where the accumulated usage supports it
//   - ReplaceWhileLoops: counting while-loops become range iterations
//   - RemoveNoopExprs: discarding assignments of bare identifiers vanish
//
// A binding or loop the analyses cannot prove liftable is left exactly
// as written and surfaced as a finding through [MonadicAst.Diagnostics].
package monadicast
