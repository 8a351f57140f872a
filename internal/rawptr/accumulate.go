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

package rawptr

import (
	"context"
	"go/ast"
	"runtime/trace"

	"golang.org/x/tools/go/ast/inspector"

	"github.com/rusty-catz/monadicast/internal/astutil"
	"github.com/rusty-catz/monadicast/internal/permission"
)

// reasonResized marks storage that realloc may move or grow in place.
const reasonResized = "storage is resized after allocation"

// Accumulate walks every use of the discovered bindings and grows their
// capability sets. It also records the access sites the rewrite will
// re-render. Accumulation is monotonic: permissions are only ever
// added, so running it again over the same tree changes nothing.
//
// Accumulate requires the computing phase and stays in it.
func (e *Engine) Accumulate(ctx context.Context) error {
	defer trace.StartRegion(ctx, "Accumulate").End()

	if _, ok := e.phase.(computing); !ok {
		return phaseError("Accumulate", "computing", e.phase)
	}

	a := accumulator{engine: e}

	types := []ast.Node{
		// keep-sorted start
		(*ast.AssignStmt)(nil),
		(*ast.CallExpr)(nil),
		(*ast.IncDecStmt)(nil),
		(*ast.StarExpr)(nil),
		(*ast.ValueSpec)(nil),
		// keep-sorted end
	}

	e.in.Root().Inspect(types, func(c inspector.Cursor) bool {
		switch n := c.Node().(type) {
		// keep-sorted start newline_separated=yes
		case *ast.AssignStmt:
			a.handleAssign(e.tbl, n)

		case *ast.CallExpr:
			a.handleCall(e.tbl, c, n)

		case *ast.IncDecStmt:
			a.handleIncDec(e.tbl, n)

		case *ast.StarExpr:
			a.handleDeref(e.tbl, n)

		case *ast.ValueSpec:
			a.handleValueSpec(e.tbl, n)

			// keep-sorted end
		}

		return true
	})

	return nil
}

// accumulator grows permission sets from access sites, one method per
// recognized syntactic shape. The binding table is threaded explicitly;
// the engine only supplies the dialect name sets.
type accumulator struct {
	engine *Engine
}

// handleAssign covers stores through a binding and allocations bound by
// assignment. A star-typed left-hand side is a write through the
// pointer, whether the operand is the bare binding or an arithmetic
// call on it. A single assignment whose right-hand side is an
// allocation call grants the target unique provenance; a resize call
// blocks it.
func (a accumulator) handleAssign(tbl *bindings, stmt *ast.AssignStmt) {
	for _, lhs := range stmt.Lhs {
		star, ok := ast.Unparen(lhs).(*ast.StarExpr)
		if !ok {
			continue
		}

		if b, ok := a.receiver(tbl, star.X); ok {
			b.perms.Add(permission.Write)
		}
	}

	if len(stmt.Lhs) != 1 || len(stmt.Rhs) != 1 {
		return
	}

	target, ok := astutil.IdentOf(stmt.Lhs[0])
	if !ok {
		return
	}

	b, ok := tbl.resolve(target.Name, target.NamePos)
	if !ok {
		return
	}

	a.handleInit(tbl, b, stmt.Rhs[0])
}

// handleIncDec covers `*p++` and `*p--`, which store through the
// binding just like an assignment does.
func (a accumulator) handleIncDec(tbl *bindings, stmt *ast.IncDecStmt) {
	star, ok := ast.Unparen(stmt.X).(*ast.StarExpr)
	if !ok {
		return
	}

	if b, ok := a.receiver(tbl, star.X); ok {
		b.perms.Add(permission.Write)
	}
}

// handleCall covers arithmetic methods on a binding and the release and
// resize functions applied to one. Calls whose receiver is not a
// binding in scope, qualified package selectors included, contribute
// nothing.
func (a accumulator) handleCall(tbl *bindings, c inspector.Cursor, call *ast.CallExpr) {
	switch fun := ast.Unparen(call.Fun).(type) {
	case *ast.SelectorExpr:
		recv, ok := astutil.IdentOf(fun.X)
		if !ok {
			return
		}

		b, ok := tbl.resolve(recv.Name, recv.NamePos)
		if !ok {
			return
		}

		acc, ok := a.engine.direction(fun.Sel.Name, call.Args)
		if !ok {
			return
		}

		b.perms.Add(acc)
		tbl.record(call, b, siteArith)

	case *ast.Ident:
		switch {
		case a.engine.release[fun.Name]:
			a.handleRelease(tbl, c, call)

		case a.engine.grow[fun.Name]:
			for _, arg := range call.Args {
				if b, ok := a.receiver(tbl, arg); ok {
					b.block(reasonResized)
				}
			}
		}
	}
}

// handleRelease grants Free to the released binding and records the
// release statement so the rewrite can drop it.
func (a accumulator) handleRelease(tbl *bindings, c inspector.Cursor, call *ast.CallExpr) {
	if len(call.Args) != 1 {
		return
	}

	b, ok := a.receiver(tbl, call.Args[0])
	if !ok {
		return
	}

	b.perms.Add(permission.Free)

	if stmt, ok := c.Parent().Node().(*ast.ExprStmt); ok {
		tbl.record(stmt, b, siteFree)
	}
}

// handleDeref records a dereference of the bare binding for the
// rewrite. Reading through a pointer needs no capability, so the
// permission set is untouched.
func (a accumulator) handleDeref(tbl *bindings, star *ast.StarExpr) {
	ident, ok := astutil.IdentOf(star.X)
	if !ok {
		return
	}

	if b, ok := tbl.resolve(ident.Name, ident.NamePos); ok {
		tbl.record(star, b, siteDeref)
	}
}

// handleValueSpec covers allocations in declaration initializers,
// `var p *T = malloc(n)`. Initializer positions precede the binding's
// scope, so the binding is found through its declaration clause rather
// than by position.
func (a accumulator) handleValueSpec(tbl *bindings, spec *ast.ValueSpec) {
	declared := tbl.groups[spec]
	if len(declared) == 0 || len(spec.Values) != len(spec.Names) {
		return
	}

	for i, name := range spec.Names {
		for _, b := range declared {
			if b.Ident == name {
				a.handleInit(tbl, b, spec.Values[i])

				break
			}
		}
	}
}

// handleInit classifies the expression a binding is initialized or
// assigned from. Allocation calls grant unique provenance; resize
// calls block the binding.
func (a accumulator) handleInit(tbl *bindings, b *Binding, value ast.Expr) {
	call, ok := ast.Unparen(value).(*ast.CallExpr)
	if !ok {
		return
	}

	fun, ok := ast.Unparen(call.Fun).(*ast.Ident)
	if !ok {
		return
	}

	switch {
	case a.engine.alloc[fun.Name]:
		b.perms.Add(permission.Unique)
		tbl.record(call, b, siteAlloc)

	case a.engine.grow[fun.Name]:
		b.block(reasonResized)
	}
}

// receiver resolves an expression that names a binding directly: the
// bare identifier or an arithmetic method call on one. It is how a
// store's target is traced back to the pointer it goes through.
func (a accumulator) receiver(tbl *bindings, x ast.Expr) (*Binding, bool) {
	switch x := ast.Unparen(x).(type) {
	case *ast.Ident:
		return tbl.resolve(x.Name, x.NamePos)

	case *ast.CallExpr:
		sel, ok := ast.Unparen(x.Fun).(*ast.SelectorExpr)
		if !ok {
			return nil, false
		}

		recv, ok := astutil.IdentOf(sel.X)
		if !ok {
			return nil, false
		}

		if _, ok := a.engine.direction(sel.Sel.Name, x.Args); !ok {
			return nil, false
		}

		return tbl.resolve(recv.Name, recv.NamePos)
	}

	return nil, false
}
