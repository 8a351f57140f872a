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
	"github.com/rusty-catz/monadicast/internal/monad"
	"github.com/rusty-catz/monadicast/internal/permission"
)

// Discover collects every function parameter and local declaration
// whose declared type is a raw pointer, creating one binding per
// declared name with an empty capability set.
//
// Discover requires the uninitialized phase and advances the engine to
// computing. Discovery itself is deterministic: two engines running it
// over the same tree produce the same binding set.
func (e *Engine) Discover(ctx context.Context, prog *monad.Program) error {
	defer trace.StartRegion(ctx, "Discover").End()

	if _, ok := e.phase.(uninitialized); !ok {
		return phaseError("Discover", "uninitialized", e.phase)
	}

	e.in = inspector.New([]*ast.File{prog.File()})

	var d discoverer

	types := []ast.Node{
		// keep-sorted start
		(*ast.FuncDecl)(nil),
		(*ast.FuncLit)(nil),
		(*ast.ValueSpec)(nil),
		// keep-sorted end
	}

	e.in.Root().Inspect(types, func(c inspector.Cursor) bool {
		switch n := c.Node().(type) {
		// keep-sorted start newline_separated=yes
		case *ast.FuncDecl:
			if n.Body == nil {
				return false // nothing can use a parameter of a bodyless declaration
			}

			d.handleParams(e.tbl, n.Type, n.Body)

		case *ast.FuncLit:
			d.handleParams(e.tbl, n.Type, n.Body)

		case *ast.ValueSpec:
			if block, ok := enclosingBlock(c); ok {
				d.handleLocal(e.tbl, n, block)
			}

			// keep-sorted end
		}

		return true
	})

	e.logger.DebugContext(ctx, "discovered raw pointer bindings", "bindings", len(e.tbl.order))

	e.phase = computing{resolved: make(map[*Binding]permission.SafeType)}

	return nil
}

// discoverer creates bindings for raw-pointer-typed declarations. The
// binding table is threaded explicitly through each handler.
type discoverer struct{}

// handleParams records raw-pointer-typed parameters. Their scope is the
// whole function body.
func (discoverer) handleParams(tbl *bindings, ft *ast.FuncType, body *ast.BlockStmt) {
	if ft.Params == nil {
		return
	}

	for _, field := range ft.Params.List {
		pointee, ok := rawPointerType(field.Type)
		if !ok {
			continue
		}

		for _, name := range field.Names {
			if name.Name == "_" {
				continue
			}

			tbl.add(&Binding{
				Name:    name.Name,
				Ident:   name,
				Pointee: pointee,
				scope:   interval{start: body.Lbrace, end: body.Rbrace},
				group:   field,
			})
		}
	}
}

// handleLocal records a raw-pointer-typed local declaration. Its scope
// runs from the end of the declaration to the end of the enclosing block.
func (discoverer) handleLocal(tbl *bindings, spec *ast.ValueSpec, block *ast.BlockStmt) {
	pointee, ok := rawPointerType(spec.Type)
	if !ok {
		return
	}

	for _, name := range spec.Names {
		if name.Name == "_" {
			continue
		}

		tbl.add(&Binding{
			Name:    name.Name,
			Ident:   name,
			Pointee: pointee,
			scope:   interval{start: spec.End(), end: block.Rbrace},
			group:   spec,
		})
	}
}

// rawPointerType reports whether ty is a raw pointer type, returning
// its pointee. unsafe.Pointer matches with a nil pointee.
func rawPointerType(ty ast.Expr) (ast.Expr, bool) {
	if ty == nil {
		return nil, false
	}

	if astutil.IsUnsafePointer(ty) {
		return nil, true
	}

	return astutil.PointeeOf(ty)
}

// enclosingBlock climbs to the nearest enclosing block statement.
// Package-level declarations have none and are not lifted.
func enclosingBlock(c inspector.Cursor) (*ast.BlockStmt, bool) {
	for p := c.Parent(); ; p = p.Parent() {
		switch n := p.Node().(type) {
		case *ast.BlockStmt:
			return n, true

		case *ast.File:
			return nil, false
		}
	}
}
