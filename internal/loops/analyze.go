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
	"context"
	"go/ast"
	"runtime/trace"

	"golang.org/x/tools/go/ast/inspector"

	"github.com/rusty-catz/monadicast/internal/monad"
)

// Candidate is a counting loop the pass would lower.
type Candidate struct {
	// Loop is the while-shaped loop statement.
	Loop *ast.ForStmt

	// Name is the induction variable.
	Name string
}

// Analyze reports the counting loops the pass would lower and leaves
// the tree untouched. It is the report-only entry shared with the
// go/analysis adapter.
func Analyze(ctx context.Context, prog *monad.Program, opts Options) []Candidate {
	defer trace.StartRegion(ctx, "AnalyzeLoops").End()

	s := &scanner{casts: make(map[string]bool, len(opts.Dialect.CastTypes))}
	for _, name := range opts.Dialect.CastTypes {
		s.casts[name] = true
	}

	types := []ast.Node{
		// keep-sorted start
		(*ast.BlockStmt)(nil),
		(*ast.CaseClause)(nil),
		(*ast.CommClause)(nil),
		// keep-sorted end
	}

	in := inspector.New([]*ast.File{prog.File()})
	in.Root().Inspect(types, func(c inspector.Cursor) bool {
		switch n := c.Node().(type) {
		// keep-sorted start newline_separated=yes
		case *ast.BlockStmt:
			s.scanList(n.List)

		case *ast.CaseClause:
			s.scanList(n.Body)

		case *ast.CommClause:
			s.scanList(n.Body)

			// keep-sorted end
		}

		return true
	})

	return s.found
}

// scanner mirrors the lowerer's bookkeeping without rewriting anything.
type scanner struct {
	casts map[string]bool
	found []Candidate
}

func (s *scanner) scanList(stmts []ast.Stmt) {
	recorded := make(map[string]*candidate)

	for si, stmt := range stmts {
		if name, value, ok := inductionDecl(stmt, s.casts); ok {
			recorded[name] = &candidate{value: value, idx: si}

			continue
		}

		if loop, ok := stmt.(*ast.ForStmt); ok {
			if m, ok := match(loop, recorded, stmts[si+1:]); ok {
				s.found = append(s.found, Candidate{Loop: loop, Name: m.name})
				delete(recorded, m.name)
			}
		}

		invalidate(stmt, recorded)
	}
}
