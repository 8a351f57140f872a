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

// Package diag collects and renders the findings a lifting run produces:
// pointers that cannot be lifted, rewrites that were declined, and the
// rewrites that were applied.
package diag

import (
	"cmp"
	"fmt"
	"go/token"
	"iter"
	"slices"
)

// Severity ranks a finding.
type Severity uint8

//go:generate go tool stringer -type Severity -linecomment
const (
	// Info marks findings about applied rewrites.
	Info Severity = iota // info

	// Warning marks findings about code that was left untouched.
	Warning // warning
)

// Category names the finding.
type Category uint8

//go:generate go tool stringer -type Category -linecomment
const (
	// PointerUnliftable reports a binding whose accumulated capabilities
	// support no safe type.
	PointerUnliftable Category = iota // pointer-unliftable

	// PointerBlocked reports a binding that resolved to a safe type but
	// could not be rewritten.
	PointerBlocked // pointer-blocked

	// PointerLifted reports a binding that was rewritten to a safe type.
	PointerLifted // pointer-lifted

	// LoopLowered reports a counting loop that was rewritten to range form.
	LoopLowered // loop-lowered
)

// Diagnostic is a single finding, located in the source being lifted.
type Diagnostic struct {
	Severity Severity `json:"severity"`
	Category Category `json:"category"`
	File     string   `json:"file,omitzero"`
	Line     int      `json:"line"`
	Column   int      `json:"column"`
	Name     string   `json:"name,omitzero"`
	Detail   string   `json:"detail,omitzero"`
	Message  string   `json:"message"`
}

// New creates a [Diagnostic] located at pos.
func New(severity Severity, category Category, pos token.Position, name, detail, message string) Diagnostic {
	return Diagnostic{
		Severity: severity,
		Category: category,
		File:     pos.Filename,
		Line:     pos.Line,
		Column:   pos.Column,
		Name:     name,
		Detail:   detail,
		Message:  message,
	}
}

// String renders the finding in the conventional file:line:col form.
func (d Diagnostic) String() string {
	return fmt.Sprintf("%s:%d:%d: %s: %s", d.File, d.Line, d.Column, d.Severity, d.Message)
}

// Bag accumulates diagnostics during a run. The zero value is ready to use.
type Bag struct {
	diags []Diagnostic
}

// Add records a finding.
func (b *Bag) Add(d Diagnostic) {
	b.diags = append(b.diags, d)
}

// Len returns the number of recorded findings.
func (b *Bag) Len() int { return len(b.diags) }

// HasWarnings reports whether any finding has [Warning] severity.
func (b *Bag) HasWarnings() bool {
	return slices.ContainsFunc(b.diags, func(d Diagnostic) bool { return d.Severity == Warning })
}

// Sorted returns the findings ordered by position, then category and
// name, with exact duplicates removed.
func (b *Bag) Sorted() []Diagnostic {
	diags := slices.Clone(b.diags)

	slices.SortFunc(diags, func(a, b Diagnostic) int {
		return cmp.Or(
			cmp.Compare(a.File, b.File),
			cmp.Compare(a.Line, b.Line),
			cmp.Compare(a.Column, b.Column),
			cmp.Compare(a.Category, b.Category),
			cmp.Compare(a.Name, b.Name),
			cmp.Compare(a.Message, b.Message),
		)
	})

	return slices.Compact(diags)
}

// All yields the findings in sorted order.
func (b *Bag) All() iter.Seq[Diagnostic] {
	return slices.Values(b.Sorted())
}
