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

// Package config holds the shared configuration surface of the lifting
// tool: which passes run, how the transpiler dialect is recognized, and
// how results are rendered.
package config

// PassFlags selects the lifting passes to run.
type PassFlags uint8

const (
	// FFIPass enables foreign-ABI type conversion.
	FFIPass PassFlags = 1 << iota

	// PointerPass enables raw pointer lifting.
	PointerPass

	// LoopPass enables counting loop lowering.
	LoopPass

	// CleanupPass enables removal of no-op identifier statements.
	CleanupPass
)

// Behavior holds behavioral options shared between the tool and the analyzer.
type Behavior uint8

const (
	// IncludeGenerated specifies whether generated files are analyzed.
	// Transpiler output is generated, so this defaults to on.
	IncludeGenerated Behavior = 1 << iota

	// ReportApplied specifies whether applied rewrites are reported as
	// informational findings in addition to the warnings.
	ReportApplied
)

// DefaultPasses returns the default pass selection, which is all of them.
func DefaultPasses() BitMask[PassFlags] {
	return NewBitMask(FFIPass | PointerPass | LoopPass | CleanupPass)
}

// DefaultBehavior returns the default behavioral options.
func DefaultBehavior() BitMask[Behavior] {
	return NewBitMask(IncludeGenerated)
}
