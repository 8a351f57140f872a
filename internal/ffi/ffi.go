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

// Package ffi converts foreign-ABI scalar types to their native Go
// equivalents. The transpiler spells C types as selectors on a shim
// package; this pass replaces every known selector, whether it appears
// as a type or as a conversion, and drops the shim import once nothing
// references it anymore.
package ffi

import (
	"context"
	"go/ast"
	"path"
	"runtime/trace"
	"strings"

	"golang.org/x/tools/go/ast/astutil"

	internalastutil "github.com/rusty-catz/monadicast/internal/astutil"
	"github.com/rusty-catz/monadicast/internal/config"
	"github.com/rusty-catz/monadicast/internal/monad"
)

// Options configure the conversion pass.
type Options struct {
	// Dialect names the shim package and its type mapping.
	Dialect config.FFI
}

// DefaultOptions returns options for the built-in dialect.
func DefaultOptions() Options {
	return Options{Dialect: config.Default().FFI}
}

// Pass converts foreign-ABI types to native ones.
type Pass struct {
	opts Options
}

// NewPass returns the foreign type conversion pass.
func NewPass(opts Options) Pass { return Pass{opts: opts} }

// Name implements [monad.Pass].
func (Pass) Name() string { return "foreign-types" }

// Apply implements [monad.Pass].
func (p Pass) Apply(ctx context.Context, prog *monad.Program) error {
	defer trace.StartRegion(ctx, "ConvertForeignTypes").End()

	conv := &converter{
		pkg:   p.opts.Dialect.Package,
		types: p.opts.Dialect.Types,
	}

	astutil.Apply(prog.File(), conv.rewrite, nil)

	if conv.applied > 0 && conv.remaining == 0 {
		deleteShimImport(prog, conv.pkg)
	}

	prog.Logger().DebugContext(ctx, "converted foreign types",
		"converted", conv.applied, "unknown", conv.remaining)

	return nil
}

// converter swaps known shim selectors for native type names. Unknown
// selectors on the shim package are counted so the import survives
// while anything still needs it.
type converter struct {
	pkg   string
	types map[string]string

	applied   int
	remaining int
}

func (v *converter) rewrite(c *astutil.Cursor) bool {
	sel, ok := c.Node().(*ast.SelectorExpr)
	if !ok {
		return true
	}

	recv, ok := internalastutil.IdentOf(sel.X)
	if !ok || recv.Name != v.pkg {
		return true
	}

	native, ok := v.types[sel.Sel.Name]
	if !ok {
		v.remaining++

		return true
	}

	c.Replace(ast.NewIdent(native))
	v.applied++

	return false
}

// deleteShimImport removes the shim package's import, matching it by
// its effective name: the explicit local name or the last path element.
func deleteShimImport(prog *monad.Program, pkg string) {
	for _, spec := range prog.File().Imports {
		importPath := strings.Trim(spec.Path.Value, `"`)

		switch {
		case spec.Name != nil:
			if spec.Name.Name == pkg {
				astutil.DeleteNamedImport(prog.Fset(), prog.File(), pkg, importPath)

				return
			}

		case path.Base(importPath) == pkg:
			astutil.DeleteImport(prog.Fset(), prog.File(), importPath)

			return
		}
	}
}
