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

package monadicast_test

import (
	"context"
	"errors"
	"strings"
	"testing"

	. "github.com/rusty-catz/monadicast"
	"github.com/rusty-catz/monadicast/internal/diag"
)

const emitted = `package test

import "ffi"

func fill(n int32, seed ffi.Int) {
	var p *int32 = malloc(n)
	var i int32 = int32(0)
	for i < n {
		*p.add(i) = seed
		i = i + 1
	}
	_ = n
}
`

func TestPipeline(t *testing.T) {
	t.Parallel()

	// given
	m, err := Parse("fill.go", emitted)
	if err != nil {
		t.Fatalf("Parse failed: %v", err)
	}

	// when
	ctx := t.Context()
	out, err := m.
		ConvertForeignTypes(ctx).
		ReplaceRawPointers(ctx).
		ReplaceWhileLoops(ctx).
		RemoveNoopExprs(ctx).
		Result()

	// then
	if err != nil {
		t.Fatalf("Pipeline failed: %v", err)
	}

	for _, want := range []string{
		"func fill(n int32, seed int32) {",
		"var p []int32 = make([]int32, n)",
		"for i := range n {",
		"p[i] = seed",
	} {
		if !strings.Contains(out, want) {
			t.Errorf("Got output without %q, expected it present:\n%s", want, out)
		}
	}

	for _, absent := range []string{"ffi", "malloc", "i = i + 1", "_ = n"} {
		if strings.Contains(out, absent) {
			t.Errorf("Got output with %q, expected it gone:\n%s", absent, out)
		}
	}
}

func TestPipelineIdempotent(t *testing.T) {
	t.Parallel()

	// given
	ctx := t.Context()

	m, err := Parse("fill.go", emitted)
	if err != nil {
		t.Fatalf("Parse failed: %v", err)
	}

	once, err := m.Lift(ctx).Result()
	if err != nil {
		t.Fatalf("First lift failed: %v", err)
	}

	// when
	m, err = Parse("fill.go", once)
	if err != nil {
		t.Fatalf("Reparse failed: %v", err)
	}

	twice, err := m.Lift(ctx).Result()
	if err != nil {
		t.Fatalf("Second lift failed: %v", err)
	}

	// then
	if got, want := twice, once; got != want {
		t.Errorf("Got %q, expected the first lift's output unchanged", got)
	}
}

func TestLiftSelection(t *testing.T) {
	t.Parallel()

	// given
	cfg := DefaultConfig()
	off := false
	cfg.Passes.Loops = &off

	m, err := Parse("fill.go", emitted, WithConfig(cfg))
	if err != nil {
		t.Fatalf("Parse failed: %v", err)
	}

	// when
	out, err := m.Lift(t.Context()).Result()
	if err != nil {
		t.Fatalf("Lift failed: %v", err)
	}

	// then
	for _, want := range []string{
		"for i < n {",
		"i = i + 1",
		"var p []int32 = make([]int32, n)",
	} {
		if !strings.Contains(out, want) {
			t.Errorf("Got output without %q, expected it present:\n%s", want, out)
		}
	}
}

func TestStickyError(t *testing.T) {
	t.Parallel()

	// given
	errStub := errors.New("stub failure")
	runs := 0

	m, err := Parse("fill.go", emitted)
	if err != nil {
		t.Fatalf("Parse failed: %v", err)
	}

	// when
	ctx := t.Context()
	_, err = m.
		Bind(ctx, stubPass{name: "boom", err: errStub, runs: &runs}).
		Bind(ctx, stubPass{name: "later", runs: &runs}).
		Result()

	// then
	if !errors.Is(err, errStub) {
		t.Errorf("Got %v, expected the stub failure", err)
	}
	if got, want := runs, 1; got != want {
		t.Errorf("Got %d pass runs, expected %d", got, want)
	}
	if m.Err() == nil {
		t.Error("Got no sticky error, expected the stub failure retained")
	}
}

func TestParseError(t *testing.T) {
	t.Parallel()

	// when
	m, err := Parse("broken.go", "func {")

	// then
	if err == nil {
		t.Error("Got no error, expected a parse failure")
	}
	if m != nil {
		t.Error("Got a pipeline value, expected none")
	}
}

func TestDiagnostics(t *testing.T) {
	t.Parallel()

	// given
	src := `package test

func bad(p *int32, i int32) {
	*p.offset(i) = i
}
`
	m, err := Parse("bad.go", src)
	if err != nil {
		t.Fatalf("Parse failed: %v", err)
	}

	// when
	if _, err := m.ReplaceRawPointers(t.Context()).Result(); err != nil {
		t.Fatalf("Pipeline failed: %v", err)
	}

	// then
	bag := m.Diagnostics()
	if !bag.HasWarnings() {
		t.Fatal("Got no warnings, expected the unliftable binding reported")
	}

	found := bag.Sorted()
	if got, want := found[0].Category, diag.PointerUnliftable; got != want {
		t.Errorf("Got category %v, expected %v", got, want)
	}
	if got, want := found[0].Name, "p"; got != want {
		t.Errorf("Got name %q, expected %q", got, want)
	}
}

func TestReportApplied(t *testing.T) {
	t.Parallel()

	// given
	m, err := Parse("fill.go", emitted, WithReportApplied(true))
	if err != nil {
		t.Fatalf("Parse failed: %v", err)
	}

	// when
	if _, err := m.Lift(t.Context()).Result(); err != nil {
		t.Fatalf("Lift failed: %v", err)
	}

	// then
	var lifted, lowered int
	for d := range m.Diagnostics().All() {
		switch d.Category {
		case diag.PointerLifted:
			lifted++
		case diag.LoopLowered:
			lowered++
		}
	}

	if got, want := lifted, 1; got != want {
		t.Errorf("Got %d lifted findings, expected %d", got, want)
	}
	if got, want := lowered, 1; got != want {
		t.Errorf("Got %d lowered findings, expected %d", got, want)
	}
}

// stubPass counts its runs and fails on demand.
type stubPass struct {
	name string
	err  error
	runs *int
}

func (p stubPass) Name() string { return p.name }

func (p stubPass) Apply(_ context.Context, _ *Program) error {
	*p.runs++

	return p.err
}
