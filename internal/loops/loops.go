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

// Package loops lowers transpiler-emitted counting loops to range
// iteration. A while-shaped loop over a counter declared as a
// cast-of-literal, advanced by exactly one per iteration, becomes a
// range loop; everything that fails the shape check stays verbatim.
package loops

import (
	"context"
	"go/ast"
	"runtime/trace"

	"golang.org/x/tools/go/ast/inspector"

	"github.com/rusty-catz/monadicast/internal/config"
	"github.com/rusty-catz/monadicast/internal/monad"
)

// Options configure the lowering pass.
type Options struct {
	// Dialect names the numeric cast functions that mark an induction
	// variable declaration.
	Dialect config.Loops

	// ReportApplied reports lowered loops as informational findings.
	ReportApplied bool
}

// DefaultOptions returns options for the built-in dialect.
func DefaultOptions() Options {
	return Options{Dialect: config.Default().Loops}
}

// Pass lowers counting while-loops to range iteration.
type Pass struct {
	opts Options
}

// NewPass returns the loop lowering pass.
func NewPass(opts Options) Pass { return Pass{opts: opts} }

// Name implements [monad.Pass].
func (Pass) Name() string { return "while-loops" }

// Apply implements [monad.Pass]. Every lexical statement list is
// lowered independently with its own induction records, so nested
// loops are handled on their own terms.
func (p Pass) Apply(ctx context.Context, prog *monad.Program) error {
	defer trace.StartRegion(ctx, "LowerLoops").End()

	l := &lowerer{
		prog:   prog,
		report: p.opts.ReportApplied,
		casts:  make(map[string]bool, len(p.opts.Dialect.CastTypes)),
	}
	for _, name := range p.opts.Dialect.CastTypes {
		l.casts[name] = true
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
			n.List = l.lowerList(n.List)

		case *ast.CaseClause:
			n.Body = l.lowerList(n.Body)

		case *ast.CommClause:
			n.Body = l.lowerList(n.Body)

			// keep-sorted end
		}

		return true
	})

	prog.Logger().DebugContext(ctx, "lowered counting loops", "loops", l.lowered)

	return nil
}
