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

package astutil_test

import (
	"go/ast"
	"go/parser"
	"go/token"
	"testing"

	. "github.com/rusty-catz/monadicast/internal/astutil"
)

func parseExpr(t *testing.T, src string) ast.Expr {
	t.Helper()

	expr, err := parser.ParseExpr(src)
	if err != nil {
		t.Fatalf("Failed to parse expression %q: %v", src, err)
	}

	return expr
}

func TestIdentOf(t *testing.T) {
	t.Parallel()

	tests := []struct {
		src  string
		name string
		ok   bool
	}{
		{src: "p", name: "p", ok: true},
		{src: "(p)", name: "p", ok: true},
		{src: "pkg.p", ok: false},
		{src: "p[0]", ok: false},
		{src: "*p", ok: false},
	}

	for _, tt := range tests {
		t.Run(tt.src, func(t *testing.T) {
			t.Parallel()

			id, ok := IdentOf(parseExpr(t, tt.src))
			if ok != tt.ok {
				t.Fatalf("IdentOf(%s) ok = %t, want %t", tt.src, ok, tt.ok)
			}

			if ok && id.Name != tt.name {
				t.Errorf("IdentOf(%s) = %s, want %s", tt.src, id.Name, tt.name)
			}
		})
	}
}

func TestPointeeOf(t *testing.T) {
	t.Parallel()

	if _, ok := PointeeOf(parseExpr(t, "int32")); ok {
		t.Error("PointeeOf(int32) matched")
	}

	elem, ok := PointeeOf(parseExpr(t, "*int32"))
	if !ok {
		t.Fatal("PointeeOf(*int32) did not match")
	}

	if id, _ := IdentOf(elem); id == nil || id.Name != "int32" {
		t.Errorf("PointeeOf(*int32) = %v, want int32", elem)
	}
}

func TestIsUnsafePointer(t *testing.T) {
	t.Parallel()

	if !IsUnsafePointer(parseExpr(t, "unsafe.Pointer")) {
		t.Error("unsafe.Pointer not recognized")
	}

	if IsUnsafePointer(parseExpr(t, "foo.Pointer")) || IsUnsafePointer(parseExpr(t, "unsafe.Sizeof")) {
		t.Error("false positive for qualified name")
	}
}

func TestIntLit(t *testing.T) {
	t.Parallel()

	tests := []struct {
		src   string
		value int64
		ok    bool
	}{
		{src: "10", value: 10, ok: true},
		{src: "0x10", value: 16, ok: true},
		{src: "1_000", value: 1000, ok: true},
		{src: "(7)", value: 7, ok: true},
		{src: "1.5", ok: false},
		{src: "n", ok: false},
	}

	for _, tt := range tests {
		t.Run(tt.src, func(t *testing.T) {
			t.Parallel()

			value, ok := IntLit(parseExpr(t, tt.src))
			if ok != tt.ok || value != tt.value {
				t.Errorf("IntLit(%s) = %d, %t, want %d, %t", tt.src, value, ok, tt.value, tt.ok)
			}
		})
	}
}

func TestNegIntLit(t *testing.T) {
	t.Parallel()

	if value, ok := NegIntLit(parseExpr(t, "-3")); !ok || value != -3 {
		t.Errorf("NegIntLit(-3) = %d, %t, want -3, true", value, ok)
	}

	if _, ok := NegIntLit(parseExpr(t, "3")); ok {
		t.Error("NegIntLit(3) matched")
	}
}

func TestCloneExpr(t *testing.T) {
	t.Parallel()

	orig := parseExpr(t, "(*pkg.T)")

	clone := CloneExpr(orig)

	star, ok := clone.(*ast.StarExpr)
	if !ok {
		t.Fatalf("CloneExpr((*pkg.T)) = %T, want unparenthesized *ast.StarExpr", clone)
	}

	sel, ok := star.X.(*ast.SelectorExpr)
	if !ok || sel.Sel.Name != "T" {
		t.Fatalf("CloneExpr((*pkg.T)) pointee = %v, want pkg.T", star.X)
	}

	sel.Sel.Name = "U"
	if got := FormatNode(token.NewFileSet(), orig); got != "(*pkg.T)" {
		t.Errorf("Mutating the clone changed the original to %s", got)
	}
}
