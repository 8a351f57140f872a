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

package rawptr_test

import (
	"errors"
	"slices"
	"testing"

	"github.com/rusty-catz/monadicast/internal/permission"
	. "github.com/rusty-catz/monadicast/internal/rawptr"
	"github.com/rusty-catz/monadicast/internal/testsource"
)

func TestAnalyzeResolution(t *testing.T) {
	t.Parallel()

	tests := []struct {
		name     string
		src      string
		resolved []permission.SafeType
		blocked  []bool
	}{
		{
			name: "read_only_parameter",
			src: `package test

func read(p *int32) int32 {
	q := p.peek()
	return *p + q
}
`,
			resolved: []permission.SafeType{permission.ImmutableReference},
			blocked:  []bool{false},
		},
		{
			name: "write_without_provenance",
			src: `package test

func scribble(q *int32, i int32, v int32) {
	*q.offset(i) = v
}
`,
			resolved: []permission.SafeType{permission.Undefined},
			blocked:  []bool{false},
		},
		{
			name: "allocated_and_written_through_offset",
			src: `package test

func fill(n int32, i int32) {
	var p *int32 = malloc(n)
	*p.add(i) = i
}
`,
			resolved: []permission.SafeType{permission.MutableSlice},
			blocked:  []bool{false},
		},
		{
			name: "offset_reads_only",
			src: `package test

func at(p *int32, i int32) int32 {
	return *p.add(i)
}
`,
			resolved: []permission.SafeType{permission.ImmutableSlice},
			blocked:  []bool{false},
		},
		{
			name: "owned_single_element",
			src: `package test

func box() int32 {
	var p *int32 = malloc(1)
	out := *p
	free(p)
	return out
}
`,
			resolved: []permission.SafeType{permission.UniquePointer},
			blocked:  []bool{false},
		},
		{
			name: "backward_arithmetic_blocked",
			src: `package test

func back(p *int32, i int32) int32 {
	return *p.sub(i)
}
`,
			resolved: []permission.SafeType{permission.ImmutableSlice},
			blocked:  []bool{true},
		},
		{
			name: "signed_offset_goes_backward",
			src: `package test

func prev(p *int32) int32 {
	return *p.offset(-1)
}
`,
			resolved: []permission.SafeType{permission.ImmutableSlice},
			blocked:  []bool{true},
		},
		{
			name: "resized_storage_blocked",
			src: `package test

func grow(n int32, i int32) {
	var p *int32 = malloc(n)
	*p.add(i) = i
	p = realloc(p, n)
}
`,
			resolved: []permission.SafeType{permission.MutableSlice},
			blocked:  []bool{true},
		},
		{
			name: "opaque_pointee_blocked",
			src: `package test

func opaque() {
	var p unsafe.Pointer = malloc(1)
	*p = nil
}
`,
			resolved: []permission.SafeType{permission.MutableReference},
			blocked:  []bool{true},
		},
		{
			name: "qualified_paths_are_not_accesses",
			src: `package test

func qual(p *int32) int32 {
	other.offset(3)
	pkg.free(p)
	return *p
}
`,
			resolved: []permission.SafeType{permission.ImmutableReference},
			blocked:  []bool{false},
		},
		{
			name: "arithmetic_arity_blocked",
			src: `package test

func odd(p *int32, i int32) {
	p.add(i, i)
}
`,
			resolved: []permission.SafeType{permission.ImmutableSlice},
			blocked:  []bool{true},
		},
		{
			name: "shared_declaration_must_agree",
			src: `package test

func mix(p, q *int32, i int32) int32 {
	return *p.add(i) + *q
}
`,
			resolved: []permission.SafeType{permission.ImmutableSlice, permission.ImmutableReference},
			blocked:  []bool{true, false},
		},
		{
			name: "shadowed_rebinding_tracked_separately",
			src: `package test

func shadow(n int32, i int32) {
	var p *int32 = malloc(n)
	*p.add(i) = i
	{
		var p *int32 = malloc(1)
		q := *p
		free(p)
		_ = q
	}
}
`,
			resolved: []permission.SafeType{permission.MutableSlice, permission.UniquePointer},
			blocked:  []bool{false, false},
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			t.Parallel()

			// given
			prog := testsource.ParseFile(t, tt.src)

			// when
			findings, err := Analyze(t.Context(), prog, DefaultOptions())
			if err != nil {
				t.Fatalf("Analyze failed: %v", err)
			}

			// then
			if got, want := len(findings), len(tt.resolved); got != want {
				t.Fatalf("Got %d bindings, expected %d", got, want)
			}

			for i, f := range findings {
				if got, want := f.Resolved, tt.resolved[i]; got != want {
					t.Errorf("Binding %q: got type %v, expected %v", f.Binding.Name, got, want)
				}

				if got, want := f.Blocked != "", tt.blocked[i]; got != want {
					t.Errorf("Binding %q: got blocked %q, expected blocked=%t", f.Binding.Name, f.Blocked, want)
				}
			}
		})
	}
}

func TestAccumulatedPermissions(t *testing.T) {
	t.Parallel()

	src := `package test

func scribble(q *int32, i int32, v int32) {
	*q.offset(i) = v
}
`

	// given
	prog := testsource.ParseFile(t, src)
	e := NewEngine(DefaultOptions(), nil)

	// when
	if err := e.Discover(t.Context(), prog); err != nil {
		t.Fatalf("Discover failed: %v", err)
	}

	if err := e.Accumulate(t.Context()); err != nil {
		t.Fatalf("Accumulate failed: %v", err)
	}

	// then
	bs := e.Bindings()
	if got, want := len(bs), 1; got != want {
		t.Fatalf("Got %d bindings, expected %d", got, want)
	}

	perms := bs[0].Perms()
	for _, tt := range []struct {
		access permission.Access
		want   bool
	}{
		{permission.Write, true},
		{permission.OffsetAdd, true},
		{permission.OffsetSub, false},
		{permission.Unique, false},
		{permission.Free, false},
	} {
		if got := perms.Has(tt.access); got != tt.want {
			t.Errorf("Got %s=%t, expected %t", tt.access, got, tt.want)
		}
	}
}

func TestDiscoverDeterministic(t *testing.T) {
	t.Parallel()

	src := `package test

func a(p *int32, n int32) {
	var q *int32 = malloc(n)
	{
		var q *int32
		_ = q
	}
	free(q)
}
`

	// given
	prog := testsource.ParseFile(t, src)

	names := func(e *Engine) []string {
		var ns []string
		for _, b := range e.Bindings() {
			ns = append(ns, b.Name)
		}

		return ns
	}

	// when: two engines discover over the same tree
	e1, e2 := NewEngine(DefaultOptions(), nil), NewEngine(DefaultOptions(), nil)
	if err := e1.Discover(t.Context(), prog); err != nil {
		t.Fatalf("Discover failed: %v", err)
	}

	if err := e2.Discover(t.Context(), prog); err != nil {
		t.Fatalf("Discover failed: %v", err)
	}

	// then
	if got, want := names(e1), []string{"p", "q", "q"}; !slices.Equal(got, want) {
		t.Errorf("Got bindings %v, expected %v", got, want)
	}

	if got, want := names(e2), names(e1); !slices.Equal(got, want) {
		t.Errorf("Got bindings %v, expected %v", got, want)
	}
}

func TestAccumulateMonotonic(t *testing.T) {
	t.Parallel()

	src := `package test

func fill(n int32, i int32) {
	var p *int32 = malloc(n)
	*p.add(i) = i
	free(p)
}
`

	// given
	prog := testsource.ParseFile(t, src)
	e := NewEngine(DefaultOptions(), nil)

	if err := e.Discover(t.Context(), prog); err != nil {
		t.Fatalf("Discover failed: %v", err)
	}

	if err := e.Accumulate(t.Context()); err != nil {
		t.Fatalf("Accumulate failed: %v", err)
	}

	var before []string
	for _, b := range e.Bindings() {
		before = append(before, b.Perms().String())
	}

	// when: accumulating again over the same tree
	if err := e.Accumulate(t.Context()); err != nil {
		t.Fatalf("Accumulate failed: %v", err)
	}

	// then: no permission was dropped or added
	var after []string
	for _, b := range e.Bindings() {
		after = append(after, b.Perms().String())
	}

	if !slices.Equal(before, after) {
		t.Errorf("Got permissions %v, expected %v", after, before)
	}

	if got := e.Bindings()[0].Perms().Has(permission.Write); !got {
		t.Error("Got Write dropped, expected it recorded")
	}
}

func TestPhaseOrder(t *testing.T) {
	t.Parallel()

	src := `package test

func f(p *int32) {
	*p = 0
}
`

	// given
	prog := testsource.ParseFile(t, src)
	e := NewEngine(DefaultOptions(), nil)

	// then: nothing runs before discovery
	if err := e.Accumulate(t.Context()); !errors.Is(err, ErrPhase) {
		t.Errorf("Accumulate before Discover: got %v, expected ErrPhase", err)
	}

	if err := e.Resolve(t.Context()); !errors.Is(err, ErrPhase) {
		t.Errorf("Resolve before Discover: got %v, expected ErrPhase", err)
	}

	if _, err := e.Findings(); !errors.Is(err, ErrPhase) {
		t.Errorf("Findings before Resolve: got %v, expected ErrPhase", err)
	}

	if err := e.Rewrite(t.Context(), prog); !errors.Is(err, ErrPhase) {
		t.Errorf("Rewrite before Resolve: got %v, expected ErrPhase", err)
	}

	// when: the ordered run succeeds
	if err := e.Discover(t.Context(), prog); err != nil {
		t.Fatalf("Discover failed: %v", err)
	}

	if err := e.Discover(t.Context(), prog); !errors.Is(err, ErrPhase) {
		t.Errorf("Second Discover: got %v, expected ErrPhase", err)
	}

	if err := e.Accumulate(t.Context()); err != nil {
		t.Fatalf("Accumulate failed: %v", err)
	}

	if err := e.Resolve(t.Context()); err != nil {
		t.Fatalf("Resolve failed: %v", err)
	}

	if err := e.Resolve(t.Context()); !errors.Is(err, ErrPhase) {
		t.Errorf("Second Resolve: got %v, expected ErrPhase", err)
	}

	if err := e.Accumulate(t.Context()); !errors.Is(err, ErrPhase) {
		t.Errorf("Accumulate after Resolve: got %v, expected ErrPhase", err)
	}

	// then: the rewrite runs from the final phase
	if err := e.Rewrite(t.Context(), prog); err != nil {
		t.Errorf("Rewrite failed: %v", err)
	}
}

func TestTypeOf(t *testing.T) {
	t.Parallel()

	src := `package test

func f(p *int32) {
	*p = 0
}
`

	// given
	prog := testsource.ParseFile(t, src)
	e := NewEngine(DefaultOptions(), nil)

	if err := e.Discover(t.Context(), prog); err != nil {
		t.Fatalf("Discover failed: %v", err)
	}

	if err := e.Accumulate(t.Context()); err != nil {
		t.Fatalf("Accumulate failed: %v", err)
	}

	b := e.Bindings()[0]

	// then: resolution results are not observable while computing
	if _, err := e.TypeOf(b); !errors.Is(err, ErrPhase) {
		t.Errorf("TypeOf before Resolve: got %v, expected ErrPhase", err)
	}

	// when
	if err := e.Resolve(t.Context()); err != nil {
		t.Fatalf("Resolve failed: %v", err)
	}

	// then
	st, err := e.TypeOf(b)
	if err != nil {
		t.Fatalf("TypeOf failed: %v", err)
	}

	if got, want := st, permission.CellReference; got != want {
		t.Errorf("Got type %v, expected %v", got, want)
	}
}
