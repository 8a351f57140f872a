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

// Package rawptr lifts raw pointer bindings to safe Go types. It runs a
// two-phase analysis over one translation unit: discovery collects every
// parameter and local whose declared type is a raw pointer, accumulation
// walks all uses and grows each binding's capability set, and resolution
// asks the permission lattice for the replacement type. The rewrite then
// re-renders declarations and recorded access sites.
package rawptr

import (
	"go/ast"
	"go/token"

	"github.com/rusty-catz/monadicast/internal/permission"
)

// Binding is one raw pointer binding discovered in a translation unit.
// A binding is exclusively owned by the engine run that discovered it.
type Binding struct {
	// Name is the identifier the binding declares.
	Name string

	// Ident is the declaring identifier, which locates the binding.
	Ident *ast.Ident

	// Pointee is the declared element type, nil for unsafe.Pointer
	// bindings whose element type is not expressed syntactically.
	Pointee ast.Expr

	// scope is the lexical interval in which uses resolve to this
	// binding. Shadowed names are disambiguated by declaration site:
	// a use belongs to the innermost binding whose scope contains it.
	scope interval

	// group is the declaration node (parameter field or value spec)
	// the binding shares with others declared in the same clause.
	group ast.Node

	perms permission.Set

	// blocked carries the reason no safe rendering exists, found during
	// accumulation. Empty means no accumulated blocker.
	blocked string
}

// Perms returns the capabilities accumulated so far.
func (b *Binding) Perms() permission.Set { return b.perms }

// block marks the binding unliftable for the given reason. The first
// reason wins so diagnostics stay stable across repeated accumulation.
func (b *Binding) block(reason string) {
	if b.blocked == "" {
		b.blocked = reason
	}
}

// interval is a half-inclusive lexical range [start, end].
type interval struct {
	start, end token.Pos
}

func (iv interval) contains(pos token.Pos) bool {
	return pos >= iv.start && pos <= iv.end
}

// siteKind classifies a recorded access site for the rewrite.
type siteKind uint8

//go:generate go tool stringer -type siteKind -linecomment
const (
	// siteDeref is a dereference of the bare binding identifier.
	siteDeref siteKind = iota // deref

	// siteArith is an arithmetic method call on the binding.
	siteArith // arith

	// siteAlloc is an allocation call bound to the binding.
	siteAlloc // alloc

	// siteFree is a release call on the binding.
	siteFree // free

	// siteBlocked is a use that admits no safe rendering.
	siteBlocked // blocked
)

// site is one recorded access site.
type site struct {
	binding *Binding
	kind    siteKind
}

// bindings is the table threaded through the traversals as explicit
// context: the discovered bindings, their grouping by declaration
// clause, and the access sites recorded for the rewrite.
type bindings struct {
	// order lists bindings in declaration order.
	order []*Binding

	// byName groups bindings sharing an identifier for scope resolution.
	byName map[string][]*Binding

	// groups maps a declaration clause to the bindings it declares.
	groups map[ast.Node][]*Binding

	// sites maps syntax nodes to their recorded access.
	sites map[ast.Node]site
}

func newBindings() *bindings {
	return &bindings{
		byName: make(map[string][]*Binding),
		groups: make(map[ast.Node][]*Binding),
		sites:  make(map[ast.Node]site),
	}
}

// add registers a discovered binding.
func (t *bindings) add(b *Binding) {
	t.order = append(t.order, b)
	t.byName[b.Name] = append(t.byName[b.Name], b)
	t.groups[b.group] = append(t.groups[b.group], b)
}

// resolve finds the binding a use of name at pos belongs to: the
// innermost binding of that name whose scope contains the position.
func (t *bindings) resolve(name string, pos token.Pos) (*Binding, bool) {
	var found *Binding
	for _, b := range t.byName[name] {
		if !b.scope.contains(pos) {
			continue
		}

		if found == nil || b.scope.start > found.scope.start {
			found = b
		}
	}

	return found, found != nil
}

// record notes an access site for the rewrite.
func (t *bindings) record(node ast.Node, b *Binding, kind siteKind) {
	t.sites[node] = site{binding: b, kind: kind}
}

// siteOf looks up a recorded access site.
func (t *bindings) siteOf(node ast.Node) (site, bool) {
	s, ok := t.sites[node]

	return s, ok
}
