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
	"fmt"
	"go/ast"
	"go/token"
	"runtime/trace"

	"golang.org/x/tools/go/ast/astutil"

	internalastutil "github.com/rusty-catz/monadicast/internal/astutil"
	"github.com/rusty-catz/monadicast/internal/diag"
	"github.com/rusty-catz/monadicast/internal/monad"
	"github.com/rusty-catz/monadicast/internal/permission"
)

// Rewrite re-renders the declarations and recorded access sites of
// every lifted binding and files one diagnostic per binding that stays
// raw. Unliftable and blocked bindings keep their exact source form.
//
// Rewrite requires the initialized phase.
func (e *Engine) Rewrite(ctx context.Context, prog *monad.Program) error {
	defer trace.StartRegion(ctx, "Rewrite").End()

	findings, err := e.Findings()
	if err != nil {
		return err
	}

	lifted := make(map[*Binding]permission.SafeType, len(findings))
	for _, f := range findings {
		if f.Lifted() {
			lifted[f.Binding] = f.Resolved
		}
	}

	e.retype(lifted)

	rw := rewriter{tbl: e.tbl, lifted: lifted}
	rw.apply(prog.File())

	for _, f := range findings {
		e.reportFinding(prog, f)
	}

	e.logger.DebugContext(ctx, "rewrote raw pointer bindings",
		"lifted", len(lifted), "raw", len(findings)-len(lifted))

	return nil
}

// retype swaps the declared type of every group whose bindings lift to
// slices. Groups are rewritten once; the group guard has already made
// their members agree.
func (e *Engine) retype(lifted map[*Binding]permission.SafeType) {
	done := make(map[ast.Node]bool)

	for _, b := range e.tbl.order {
		st, ok := lifted[b]
		if !ok || !st.Slice() || done[b.group] {
			continue
		}

		done[b.group] = true

		elt := internalastutil.CloneExpr(b.Pointee)

		switch g := b.group.(type) {
		case *ast.Field:
			g.Type = &ast.ArrayType{Elt: elt}

		case *ast.ValueSpec:
			g.Type = &ast.ArrayType{Elt: elt}
		}
	}
}

// reportFinding files the diagnostic for one binding.
func (e *Engine) reportFinding(prog *monad.Program, f Finding) {
	b := f.Binding
	pos := prog.Position(b.Ident.Pos())

	switch {
	case !f.Resolved.Safe():
		prog.Report(diag.New(diag.Warning, diag.PointerUnliftable, pos, b.Name, b.perms.String(),
			fmt.Sprintf("%s has no safe replacement type", b.Name)))

	case f.Blocked != "":
		prog.Report(diag.New(diag.Warning, diag.PointerBlocked, pos, b.Name, b.perms.String(),
			fmt.Sprintf("%s resolves to %s but stays raw: %s", b.Name, f.Resolved, f.Blocked)))

	case e.report:
		prog.Report(diag.New(diag.Info, diag.PointerLifted, pos, b.Name, b.perms.String(),
			fmt.Sprintf("%s lifted to %s", b.Name, f.Resolved)))
	}
}

// rewriter re-renders the recorded access sites of lifted bindings.
// A replacement detaches the original subtree from the traversal, so
// embedded operands are rewritten recursively before they are reused.
type rewriter struct {
	tbl    *bindings
	lifted map[*Binding]permission.SafeType
}

// apply rewrites a subtree in place and returns its new root.
func (rw *rewriter) apply(node ast.Node) ast.Node {
	return astutil.Apply(node, rw.rewrite, nil)
}

func (rw *rewriter) applyExpr(e ast.Expr) ast.Expr { return rw.apply(e).(ast.Expr) }

func (rw *rewriter) rewrite(c *astutil.Cursor) bool {
	switch n := c.Node().(type) {
	// keep-sorted start newline_separated=yes
	case *ast.CallExpr:
		return rw.rewriteCall(c, n)

	case *ast.ExprStmt:
		return rw.rewriteStmt(c, n)

	case *ast.StarExpr:
		return rw.rewriteDeref(c, n)

		// keep-sorted end
	}

	return true
}

// rewriteDeref renders *p as p[0] and *p.offset(i) as p[i] for slice
// bindings. Dereferences of reference bindings keep their form.
func (rw *rewriter) rewriteDeref(c *astutil.Cursor, star *ast.StarExpr) bool {
	switch inner := ast.Unparen(star.X).(type) {
	case *ast.Ident:
		s, ok := rw.tbl.siteOf(star)
		if !ok || s.kind != siteDeref || !rw.slice(s.binding) {
			return true
		}

		c.Replace(&ast.IndexExpr{
			X:     ast.NewIdent(s.binding.Name),
			Index: &ast.BasicLit{Kind: token.INT, Value: "0"},
		})

		return false

	case *ast.CallExpr:
		s, ok := rw.tbl.siteOf(inner)
		if !ok || s.kind != siteArith || !rw.slice(s.binding) || len(inner.Args) != 1 {
			return true
		}

		c.Replace(&ast.IndexExpr{
			X:     ast.NewIdent(s.binding.Name),
			Index: rw.applyExpr(inner.Args[0]),
		})

		return false
	}

	return true
}

// rewriteCall renders arithmetic rebases and allocations.
func (rw *rewriter) rewriteCall(c *astutil.Cursor, call *ast.CallExpr) bool {
	s, ok := rw.tbl.siteOf(call)
	if !ok {
		return true
	}

	st, lifted := rw.lifted[s.binding]
	if !lifted {
		return true
	}

	switch s.kind {
	case siteArith:
		if !st.Slice() || len(call.Args) != 1 {
			return true
		}

		c.Replace(&ast.SliceExpr{
			X:   ast.NewIdent(s.binding.Name),
			Low: rw.applyExpr(call.Args[0]),
		})

		return false

	case siteAlloc:
		return rw.rewriteAlloc(c, call, s.binding, st)
	}

	return true
}

// rewriteAlloc renders allocation calls. Slice bindings allocate with
// make, keeping the element count; reference bindings allocate with
// new, their count pinned to one by the rewrite guard.
func (rw *rewriter) rewriteAlloc(c *astutil.Cursor, call *ast.CallExpr, b *Binding, st permission.SafeType) bool {
	if st.Slice() {
		if len(call.Args) == 0 {
			return true
		}

		c.Replace(&ast.CallExpr{
			Fun: ast.NewIdent("make"),
			Args: []ast.Expr{
				&ast.ArrayType{Elt: internalastutil.CloneExpr(b.Pointee)},
				rw.applyExpr(call.Args[0]),
			},
		})

		return false
	}

	c.Replace(&ast.CallExpr{
		Fun:  ast.NewIdent("new"),
		Args: []ast.Expr{internalastutil.CloneExpr(b.Pointee)},
	})

	return false
}

// rewriteStmt drops release statements of owned bindings; their
// storage is garbage collected after the rewrite.
func (rw *rewriter) rewriteStmt(c *astutil.Cursor, stmt *ast.ExprStmt) bool {
	s, ok := rw.tbl.siteOf(stmt)
	if !ok || s.kind != siteFree {
		return true
	}

	if st, lifted := rw.lifted[s.binding]; !lifted || !st.Owned() {
		return true
	}

	c.Delete()

	return false
}

// slice reports whether a binding was lifted to a slice type.
func (rw *rewriter) slice(b *Binding) bool {
	st, ok := rw.lifted[b]

	return ok && st.Slice()
}
