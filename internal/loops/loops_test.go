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

package loops_test

import (
	"strings"
	"testing"

	"github.com/rusty-catz/monadicast/internal/diag"
	. "github.com/rusty-catz/monadicast/internal/loops"
	"github.com/rusty-catz/monadicast/internal/testsource"
)

func TestLowerLoops(t *testing.T) {
	t.Parallel()

	tests := []struct {
		name   string
		src    string
		want   []string
		absent []string
	}{
		{
			name: "counting_loop_becomes_range",
			src: `
	var i int32 = int32(0)
	for i < n {
		work(i)
		i = i + 1
	}
`,
			want:   []string{"for i := range n {", "work(i)"},
			absent: []string{"var i int32", "i = i + 1"},
		},
		{
			name: "inclusive_literal_bound_folds",
			src: `
	var i int32 = int32(0)
	for i <= 10 {
		work(i)
		i += 1
	}
`,
			want:   []string{"for i := range 11 {"},
			absent: []string{"i <= 10", "i += 1"},
		},
		{
			name: "exclusive_literal_bound",
			src: `
	var i int32 = int32(0)
	for i < 10 {
		work(i)
		i++
	}
`,
			want:   []string{"for i := range 10 {"},
			absent: []string{"var i int32"},
		},
		{
			name: "inclusive_symbolic_bound_widens",
			src: `
	var i int32 = int32(0)
	for i <= n {
		work(i)
		i = i + 1
	}
`,
			want:   []string{"for i := range n + 1 {"},
			absent: []string{"i <= n"},
		},
		{
			name: "recorded_bound_substitutes_value",
			src: `
	var n int32 = int32(10)
	var i int32 = int32(0)
	for i < n {
		work(i)
		i = i + 1
	}
	use(n)
`,
			want:   []string{"var n int32 = int32(10)", "for i := range 10 {", "use(n)"},
			absent: []string{"var i int32", "for i < n"},
		},
		{
			name: "nonzero_lower_bound_keeps_three_clause_form",
			src: `
	var i int32 = int32(2)
	for i < n {
		work(i)
		i = i + 1
	}
`,
			want:   []string{"for i := 2; i < n; i++ {"},
			absent: []string{"var i int32"},
		},
		{
			name: "equality_comparison_preserved",
			src: `
	var i int32 = int32(0)
	for i == n {
		work(i)
		i = i + 1
	}
`,
			want:   []string{"var i int32 = int32(0)", "for i == n {", "i = i + 1"},
			absent: []string{"range"},
		},
		{
			name: "increment_not_last_preserved",
			src: `
	var i int32 = int32(0)
	for i < n {
		i = i + 1
		work(i)
	}
`,
			want:   []string{"for i < n {"},
			absent: []string{"range"},
		},
		{
			name: "non_unit_increment_preserved",
			src: `
	var i int32 = int32(0)
	for i < n {
		work(i)
		i = i + 2
	}
`,
			want:   []string{"for i < n {", "i = i + 2"},
			absent: []string{"range"},
		},
		{
			name: "extra_write_in_body_preserved",
			src: `
	var i int32 = int32(0)
	for i < n {
		i = reset()
		i = i + 1
	}
`,
			want:   []string{"for i < n {", "i = reset()"},
			absent: []string{"range"},
		},
		{
			name: "use_after_loop_preserved",
			src: `
	var i int32 = int32(0)
	for i < n {
		work(i)
		i = i + 1
	}
	log(i)
`,
			want:   []string{"for i < n {", "log(i)"},
			absent: []string{"range"},
		},
		{
			name: "unrecognized_cast_preserved",
			src: `
	var i int32 = wrap(0)
	for i < n {
		work(i)
		i = i + 1
	}
`,
			want:   []string{"var i int32 = wrap(0)", "for i < n {"},
			absent: []string{"range"},
		},
		{
			name: "intervening_write_forgets_record",
			src: `
	var i int32 = int32(0)
	i = seed()
	for i < n {
		work(i)
		i = i + 1
	}
`,
			want:   []string{"i = seed()", "for i < n {"},
			absent: []string{"range"},
		},
		{
			name: "aliased_counter_preserved",
			src: `
	var i int32 = int32(0)
	watch(&i)
	for i < n {
		work(i)
		i = i + 1
	}
`,
			want:   []string{"watch(&i)", "for i < n {"},
			absent: []string{"range"},
		},
		{
			name: "nested_loops_lowered_independently",
			src: `
	var i int32 = int32(0)
	for i < n {
		var j int32 = int32(0)
		for j < m {
			work(i, j)
			j = j + 1
		}
		i = i + 1
	}
`,
			want:   []string{"for i := range n {", "for j := range m {", "work(i, j)"},
			absent: []string{"var j int32", "j = j + 1", "i = i + 1"},
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			t.Parallel()

			// given
			prog := testsource.Parse(t, tt.src)

			// when
			if err := prog.Run(t.Context(), NewPass(DefaultOptions())); err != nil {
				t.Fatalf("Pass failed: %v", err)
			}

			// then
			got := testsource.Format(t, prog)
			for _, want := range tt.want {
				if !strings.Contains(got, want) {
					t.Errorf("Got output without %q:\n%s", want, got)
				}
			}

			for _, absent := range tt.absent {
				if strings.Contains(got, absent) {
					t.Errorf("Got output still containing %q:\n%s", absent, got)
				}
			}
		})
	}
}

func TestLowerReportsApplied(t *testing.T) {
	t.Parallel()

	src := `
	var i int32 = int32(0)
	for i < n {
		work(i)
		i = i + 1
	}
`

	// given
	prog := testsource.Parse(t, src)

	opts := DefaultOptions()
	opts.ReportApplied = true

	// when
	if err := prog.Run(t.Context(), NewPass(opts)); err != nil {
		t.Fatalf("Pass failed: %v", err)
	}

	// then
	diags := prog.Diagnostics().Sorted()
	if got, want := len(diags), 1; got != want {
		t.Fatalf("Got %d diagnostics, expected %d:\n%v", got, want, diags)
	}

	if got, want := diags[0].Category, diag.LoopLowered; got != want {
		t.Errorf("Got category %v, expected %v", got, want)
	}

	if got, want := diags[0].Name, "i"; got != want {
		t.Errorf("Got binding %q, expected %q", got, want)
	}
}

func TestAnalyzeCandidates(t *testing.T) {
	t.Parallel()

	src := `
	var i int32 = int32(0)
	for i < n {
		work(i)
		i = i + 1
	}
	var j int32 = int32(0)
	for j < n {
		work(j)
		j = j + 2
	}
`

	// given
	prog := testsource.Parse(t, src)

	before := testsource.Format(t, prog)

	// when
	found := Analyze(t.Context(), prog, DefaultOptions())

	// then
	if got, want := len(found), 1; got != want {
		t.Fatalf("Got %d candidates, expected %d", got, want)
	}

	if got, want := found[0].Name, "i"; got != want {
		t.Errorf("Got candidate %q, expected %q", got, want)
	}

	if got, want := testsource.Format(t, prog), before; got != want {
		t.Errorf("Got a modified tree, expected analysis to leave it untouched:\n%s", got)
	}
}
