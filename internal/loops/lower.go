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

package loops

import (
	"fmt"
	"go/ast"
	"go/token"
	"slices"
	"strconv"

	"github.com/rusty-catz/monadicast/internal/astutil"
	"github.com/rusty-catz/monadicast/internal/diag"
	"github.com/rusty-catz/monadicast/internal/monad"
)

// lowerer rewrites the statement lists of one translation unit.
type lowerer struct {
	prog    *monad.Program
	report  bool
	casts   map[string]bool
	lowered int
}

// candidate is a recorded induction variable: its known initial value
// and where its declaration landed in the rebuilt statement list.
type candidate struct {
	value int64
	idx   int
}

// lowerList rewrites one statement list. Induction variables are
// recorded in statement order and forgotten again when something else
// writes or aliases them; a lowered loop consumes its counter's
// declaration, since the range form re-declares the name.
func (l *lowerer) lowerList(stmts []ast.Stmt) []ast.Stmt {
	recorded := make(map[string]*candidate)

	out := make([]ast.Stmt, 0, len(stmts))

	for si, stmt := range stmts {
		if name, value, ok := inductionDecl(stmt, l.casts); ok {
			recorded[name] = &candidate{value: value, idx: len(out)}
			out = append(out, stmt)

			continue
		}

		if loop, ok := stmt.(*ast.ForStmt); ok {
			if repl, used, ok := l.lower(loop, recorded, stmts[si+1:]); ok {
				out[recorded[used].idx] = nil
				delete(recorded, used)
				invalidate(repl, recorded)
				out = append(out, repl)
				l.lowered++

				continue
			}
		}

		invalidate(stmt, recorded)
		out = append(out, stmt)
	}

	return slices.DeleteFunc(out, func(s ast.Stmt) bool { return s == nil })
}

// inductionDecl matches `var i T = T(lit)`, the transpiler's counter
// shape: a single-name declaration initialized with an integer literal
// through a recognized numeric cast.
func inductionDecl(stmt ast.Stmt, casts map[string]bool) (string, int64, bool) {
	decl, ok := stmt.(*ast.DeclStmt)
	if !ok {
		return "", 0, false
	}

	gen, ok := decl.Decl.(*ast.GenDecl)
	if !ok || gen.Tok != token.VAR || len(gen.Specs) != 1 {
		return "", 0, false
	}

	spec, ok := gen.Specs[0].(*ast.ValueSpec)
	if !ok || len(spec.Names) != 1 || len(spec.Values) != 1 {
		return "", 0, false
	}

	call, ok := ast.Unparen(spec.Values[0]).(*ast.CallExpr)
	if !ok || len(call.Args) != 1 {
		return "", 0, false
	}

	fun, ok := ast.Unparen(call.Fun).(*ast.Ident)
	if !ok || !casts[fun.Name] {
		return "", 0, false
	}

	value, ok := astutil.IntLit(call.Args[0])
	if !ok {
		return "", 0, false
	}

	name := spec.Names[0].Name
	if name == "_" {
		return "", 0, false
	}

	return name, value, true
}

// shape is a matched counting loop, resolved and ready to lower.
type shape struct {
	name      string
	lower     int64
	upper     bound
	inclusive bool
}

// match checks one while-shaped loop against the recorded induction
// variables. It never modifies the loop.
func match(loop *ast.ForStmt, recorded map[string]*candidate, rest []ast.Stmt) (shape, bool) {
	if loop.Init != nil || loop.Post != nil || loop.Cond == nil {
		return shape{}, false
	}

	cond, ok := ast.Unparen(loop.Cond).(*ast.BinaryExpr)
	if !ok || (cond.Op != token.LSS && cond.Op != token.LEQ) {
		return shape{}, false
	}

	ident, ok := astutil.IdentOf(cond.X)
	if !ok {
		return shape{}, false
	}

	cand, ok := recorded[ident.Name]
	if !ok {
		return shape{}, false
	}

	upper, ok := upperBound(cond.Y, recorded, ident.Name)
	if !ok {
		return shape{}, false
	}

	if !incrementLast(loop.Body, ident.Name) ||
		writesOutsideIncrement(loop.Body, ident.Name) ||
		usedAfter(rest, ident.Name) {
		return shape{}, false
	}

	return shape{
		name:      ident.Name,
		lower:     cand.value,
		upper:     upper,
		inclusive: cond.Op == token.LEQ,
	}, true
}

// lower matches one while-shaped loop and builds its range form. Any
// failed check leaves the loop untouched.
func (l *lowerer) lower(loop *ast.ForStmt, recorded map[string]*candidate, rest []ast.Stmt) (ast.Stmt, string, bool) {
	m, ok := match(loop, recorded, rest)
	if !ok {
		return nil, "", false
	}

	loop.Body.List = loop.Body.List[:len(loop.Body.List)-1]

	repl := emit(loop, m.name, m.lower, m.upper, m.inclusive)

	if l.report {
		l.prog.Report(diag.New(diag.Info, diag.LoopLowered, l.prog.Position(loop.For), m.name, "",
			fmt.Sprintf("counting loop over %s lowered to range iteration", m.name)))
	}

	return repl, m.name, true
}

// bound is a loop's resolved upper bound: a known literal or a
// symbolic identifier.
type bound struct {
	value    int64
	symbolic *ast.Ident
}

// upperBound resolves the right side of the comparison: an integer
// literal directly, a recorded identifier through its known value, and
// any other identifier symbolically. The induction variable itself and
// every other shape are non-matches.
func upperBound(y ast.Expr, recorded map[string]*candidate, induction string) (bound, bool) {
	if value, ok := astutil.IntLit(y); ok {
		return bound{value: value}, true
	}

	ident, ok := astutil.IdentOf(y)
	if !ok || ident.Name == induction {
		return bound{}, false
	}

	if cand, ok := recorded[ident.Name]; ok {
		return bound{value: cand.value}, true
	}

	return bound{symbolic: ident}, true
}

// expr renders the bound for a three-clause loop, unfolded.
func (b bound) expr() ast.Expr {
	if b.symbolic != nil {
		return ast.NewIdent(b.symbolic.Name)
	}

	return intLit(b.value)
}

// rangeExpr renders the bound for a range loop, folding inclusive
// literal bounds and widening symbolic ones by one.
func (b bound) rangeExpr(inclusive bool) ast.Expr {
	if b.symbolic == nil {
		if inclusive {
			return intLit(b.value + 1)
		}

		return intLit(b.value)
	}

	upper := ast.Expr(ast.NewIdent(b.symbolic.Name))
	if inclusive {
		upper = &ast.BinaryExpr{X: upper, Op: token.ADD, Y: intLit(1)}
	}

	return upper
}

// intLit renders a decimal integer literal.
func intLit(value int64) ast.Expr {
	return &ast.BasicLit{Kind: token.INT, Value: strconv.FormatInt(value, 10)}
}

// emit builds the replacement loop. A zero lower bound becomes a range
// loop; anything else keeps the three-clause form with the original
// comparison.
func emit(loop *ast.ForStmt, name string, lower int64, upper bound, inclusive bool) ast.Stmt {
	if lower == 0 {
		return &ast.RangeStmt{
			For:  loop.For,
			Key:  ast.NewIdent(name),
			Tok:  token.DEFINE,
			X:    upper.rangeExpr(inclusive),
			Body: loop.Body,
		}
	}

	op := token.LSS
	if inclusive {
		op = token.LEQ
	}

	return &ast.ForStmt{
		For: loop.For,
		Init: &ast.AssignStmt{
			Lhs: []ast.Expr{ast.NewIdent(name)},
			Tok: token.DEFINE,
			Rhs: []ast.Expr{intLit(lower)},
		},
		Cond: &ast.BinaryExpr{X: ast.NewIdent(name), Op: op, Y: upper.expr()},
		Post: &ast.IncDecStmt{X: ast.NewIdent(name), Tok: token.INC},
		Body: loop.Body,
	}
}

// incrementLast reports whether the final body statement advances the
// named variable by exactly one.
func incrementLast(body *ast.BlockStmt, name string) bool {
	if len(body.List) == 0 {
		return false
	}

	return unitIncrement(body.List[len(body.List)-1], name)
}

// unitIncrement matches the three spellings the transpiler emits for a
// counter advance: `i = i + 1`, `i += 1`, and `i++`.
func unitIncrement(stmt ast.Stmt, name string) bool {
	switch s := stmt.(type) {
	case *ast.IncDecStmt:
		ident, ok := astutil.IdentOf(s.X)

		return ok && s.Tok == token.INC && ident.Name == name

	case *ast.AssignStmt:
		if len(s.Lhs) != 1 || len(s.Rhs) != 1 {
			return false
		}

		ident, ok := astutil.IdentOf(s.Lhs[0])
		if !ok || ident.Name != name {
			return false
		}

		switch s.Tok {
		case token.ADD_ASSIGN:
			one, ok := astutil.IntLit(s.Rhs[0])

			return ok && one == 1

		case token.ASSIGN:
			sum, ok := ast.Unparen(s.Rhs[0]).(*ast.BinaryExpr)
			if !ok || sum.Op != token.ADD {
				return false
			}

			left, ok := astutil.IdentOf(sum.X)
			if !ok || left.Name != name {
				return false
			}

			one, ok := astutil.IntLit(sum.Y)

			return ok && one == 1
		}
	}

	return false
}

// writesOutsideIncrement reports whether anything but the final
// increment writes or aliases the induction variable inside the body.
func writesOutsideIncrement(body *ast.BlockStmt, name string) bool {
	for _, stmt := range body.List[:len(body.List)-1] {
		if writes(stmt, name) {
			return true
		}
	}

	return false
}

// writes reports whether the subtree assigns to, re-declares, aliases,
// or advances the named variable.
func writes(node ast.Node, name string) bool {
	found := false

	ast.Inspect(node, func(n ast.Node) bool {
		switch n := n.(type) {
		// keep-sorted start newline_separated=yes
		case *ast.AssignStmt:
			for _, lhs := range n.Lhs {
				if ident, ok := astutil.IdentOf(lhs); ok && ident.Name == name {
					found = true
				}
			}

		case *ast.IncDecStmt:
			if ident, ok := astutil.IdentOf(n.X); ok && ident.Name == name {
				found = true
			}

		case *ast.RangeStmt:
			for _, x := range []ast.Expr{n.Key, n.Value} {
				if x == nil {
					continue
				}

				if ident, ok := astutil.IdentOf(x); ok && ident.Name == name {
					found = true
				}
			}

		case *ast.UnaryExpr:
			if n.Op != token.AND {
				break
			}

			if ident, ok := astutil.IdentOf(n.X); ok && ident.Name == name {
				found = true
			}

		case *ast.ValueSpec:
			for _, id := range n.Names {
				if id.Name == name {
					found = true
				}
			}

			// keep-sorted end
		}

		return !found
	})

	return found
}

// invalidate forgets every recorded induction variable the statement
// writes or aliases. A touched counter's initial value is no longer
// known when a later loop tests it.
func invalidate(stmt ast.Stmt, recorded map[string]*candidate) {
	for name := range recorded {
		if writes(stmt, name) {
			delete(recorded, name)
		}
	}
}

// usedAfter reports whether the name occurs in the statements
// following the loop. Its declaration is consumed by the emission, so
// any later use keeps the loop as is.
func usedAfter(rest []ast.Stmt, name string) bool {
	for _, stmt := range rest {
		found := false

		ast.Inspect(stmt, func(n ast.Node) bool {
			if ident, ok := n.(*ast.Ident); ok && ident.Name == name {
				found = true
			}

			return !found
		})

		if found {
			return true
		}
	}

	return false
}
