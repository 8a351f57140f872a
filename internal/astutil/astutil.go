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

// Package astutil provides syntax-tree helpers shared by the lifting
// passes. All helpers are purely syntactic; none of them require type
// information.
package astutil

import (
	"go/ast"
	"go/printer"
	"go/token"
	"strconv"
	"strings"
)

// IdentOf returns the bare identifier an expression names.
// Parentheses are unwrapped. Qualified names and any other expression
// shapes yield ok == false.
func IdentOf(expr ast.Expr) (id *ast.Ident, ok bool) {
	id, ok = ast.Unparen(expr).(*ast.Ident)

	return id, ok
}

// PointeeOf returns the element type of a star type.
func PointeeOf(ty ast.Expr) (ast.Expr, bool) {
	star, ok := ast.Unparen(ty).(*ast.StarExpr)
	if !ok {
		return nil, false
	}

	return star.X, true
}

// IsUnsafePointer reports whether ty is the qualified name unsafe.Pointer.
func IsUnsafePointer(ty ast.Expr) bool {
	sel, ok := ast.Unparen(ty).(*ast.SelectorExpr)
	if !ok || sel.Sel.Name != "Pointer" {
		return false
	}

	id, ok := sel.X.(*ast.Ident)

	return ok && id.Name == "unsafe"
}

// IntLit returns the value of an integer literal. All Go literal bases
// and digit separators are accepted.
func IntLit(expr ast.Expr) (int64, bool) {
	lit, ok := ast.Unparen(expr).(*ast.BasicLit)
	if !ok || lit.Kind != token.INT {
		return 0, false
	}

	value, err := strconv.ParseInt(lit.Value, 0, 64)
	if err != nil {
		return 0, false
	}

	return value, true
}

// NegIntLit returns the value of a negated integer literal, e.g. -3.
func NegIntLit(expr ast.Expr) (int64, bool) {
	unary, ok := ast.Unparen(expr).(*ast.UnaryExpr)
	if !ok || unary.Op != token.SUB {
		return 0, false
	}

	value, ok := IntLit(unary.X)

	return -value, ok
}

// FormatNode renders a single node as Go source, for findings and logs.
func FormatNode(fset *token.FileSet, node any) string {
	var sb strings.Builder
	if err := printer.Fprint(&sb, fset, node); err != nil {
		return "<invalid>"
	}

	return sb.String()
}

// CloneExpr deep-copies the expression shapes type syntax is made of:
// identifiers, qualified names, star, paren and array types. Synthesized
// nodes carry no positions. Other shapes are returned shared.
func CloneExpr(expr ast.Expr) ast.Expr {
	switch e := expr.(type) {
	case *ast.Ident:
		return ast.NewIdent(e.Name)

	case *ast.SelectorExpr:
		return &ast.SelectorExpr{X: CloneExpr(e.X), Sel: ast.NewIdent(e.Sel.Name)}

	case *ast.StarExpr:
		return &ast.StarExpr{X: CloneExpr(e.X)}

	case *ast.ArrayType:
		return &ast.ArrayType{Len: e.Len, Elt: CloneExpr(e.Elt)}

	case *ast.ParenExpr:
		return CloneExpr(e.X)

	default:
		return expr
	}
}
