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

// Package analyzer implements the monadicast static analysis pass.
//
// # Overview
//
// The analyzer reports transpiler-emitted C idioms that the monadicast
// rewriting tool would lift to native Go, without modifying anything.
// It is the read-only face of the tool, suitable for go vet, gopls and
// golangci-lint integration.
//
// # Example
//
// Given transpiler output:
//
//	func fill(n int32) {
//	    var p *int32 = malloc(n)
//	    var i int32 = int32(0)
//	    for i < n {
//	        *p.add(i) = n
//	        i = i + 1
//	    }
//	}
//
// the analyzer reports:
//
//	fill.go:2:6: raw pointer p can be lifted to mutable-slice
//	fill.go:4:2: counting loop over i can be modernized to a range iteration
//
// # Checks
//
//   - pointer: classifies every raw pointer binding by its accumulated
//     usage. Liftable bindings are reported as modernization candidates;
//     at the full level, bindings with no safe replacement are reported
//     too, naming the reason.
//   - loop: reports counting while-loops that can become range
//     iterations.
//
// Single findings can be suppressed with a `//nolint:monadicast`
// comment on the reported line. Generated files are analyzed by
// default, since transpiler output is generated; disable with
// [WithGenerated].
package analyzer
