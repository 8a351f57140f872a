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

// Package cleanup removes the no-op identifier statements the
// transpiler emits to silence its source compiler. A discarding
// assignment whose right side is only bare identifiers has no effect;
// anything that could evaluate something stays.
package cleanup

import (
	"context"
	"go/ast"
	"go/token"
	"runtime/trace"

	"golang.org/x/tools/go/ast/astutil"

	internalastutil "github.com/rusty-catz/monadicast/internal/astutil"
	"github.com/rusty-catz/monadicast/internal/monad"
)

// Pass removes no-op identifier statements.
type Pass struct{}

// NewPass returns the cleanup pass.
func NewPass() Pass { return Pass{} }

// Name implements [monad.Pass].
func (Pass) Name() string { return "noop-exprs" }

// Apply implements [monad.Pass].
func (Pass) Apply(ctx context.Context, prog *monad.Program) error {
	defer trace.StartRegion(ctx, "RemoveNoopExprs").End()

	removed := 0

	astutil.Apply(prog.File(), func(c *astutil.Cursor) bool {
		stmt, ok := c.Node().(*ast.AssignStmt)
		if !ok || !noop(stmt) {
			return true
		}

		if c.Index() < 0 {
			return true // not in a statement list, as in a for-loop clause
		}

		c.Delete()
		removed++

		return false
	}, nil)

	prog.Logger().DebugContext(ctx, "removed no-op statements", "removed", removed)

	return nil
}

// noop matches a discarding assignment whose right side consists of
// bare identifiers only.
func noop(stmt *ast.AssignStmt) bool {
	if stmt.Tok != token.ASSIGN || len(stmt.Lhs) == 0 {
		return false
	}

	for _, lhs := range stmt.Lhs {
		ident, ok := lhs.(*ast.Ident)
		if !ok || ident.Name != "_" {
			return false
		}
	}

	for _, rhs := range stmt.Rhs {
		if _, ok := internalastutil.IdentOf(rhs); !ok {
			return false
		}
	}

	return true
}
