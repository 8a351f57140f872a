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

package analyzer

import (
	"github.com/rusty-catz/monadicast/analyzer/level"
	"github.com/rusty-catz/monadicast/internal/config"
)

// runOptions represent the configuration of one monadicast analyzer
// instance.
type runOptions struct {
	// pointers is the pointer check level.
	pointers level.Pointers

	// loops specifies whether lowerable counting loops are reported.
	loops bool

	// behavior holds behavioral options.
	behavior config.BitMask[config.Behavior]

	// dialect names the pointer idioms of the transpiler output.
	dialect config.Pointers

	// casts names the numeric casts recognized in induction variable
	// declarations.
	casts config.Loops
}

// defaultRunOptions returns the default configuration: both checks on,
// generated files included, the built-in dialect.
func defaultRunOptions() *runOptions {
	cfg := config.Default()

	return &runOptions{
		pointers: level.PointersFull,
		loops:    true,
		behavior: config.DefaultBehavior(),
		dialect:  cfg.Pointers,
		casts:    cfg.Loops,
	}
}
