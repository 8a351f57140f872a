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

// Package testsource parses Go source fragments for transform tests.
//
// It handles the boilerplate of wrapping statement-level fragments in a
// package and function so tests can state only the code under scrutiny.
package testsource

import (
	"bytes"
	"testing"

	"github.com/rusty-catz/monadicast/internal/monad"
)

const testpkg = "test"

// Parse parses a statement fragment into a [monad.Program]. The
// fragment is wrapped in a function body `func _() { ... }` within a
// package `test`, so statement-level code needs no scaffolding of its
// own.
func Parse(tb testing.TB, src string) *monad.Program {
	tb.Helper()

	prog, err := monad.Parse("test.go", wrapSource(src), nil)
	if err != nil {
		tb.Fatalf("Failed to parse fragment %q: %v", src, err)
	}

	return prog
}

// ParseFile parses a complete source file into a [monad.Program], for
// tests that need declarations of their own.
func ParseFile(tb testing.TB, src string) *monad.Program {
	tb.Helper()

	prog, err := monad.Parse("test.go", src, nil)
	if err != nil {
		tb.Fatalf("Failed to parse source %q: %v", src, err)
	}

	return prog
}

// Format renders the program's current tree, failing the test when
// printing does.
func Format(tb testing.TB, prog *monad.Program) string {
	tb.Helper()

	out, err := prog.Format()
	if err != nil {
		tb.Fatalf("Failed to format program: %v", err)
	}

	return out
}

func wrapSource(src string) *bytes.Buffer {
	const (
		header     = "package " + testpkg + "\n\nfunc _() {\n"
		suffix     = "\n}"
		wrapperLen = len(header) + len(suffix)
	)

	var srcFile bytes.Buffer
	srcFile.Grow(wrapperLen + len(src))

	srcFile.WriteString(header) // ignore error
	srcFile.WriteString(src)    // ignore error
	srcFile.WriteString(suffix) // ignore error

	return &srcFile
}
