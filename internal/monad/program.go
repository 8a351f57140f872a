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

// Package monad carries a parsed translation unit through a sequence of
// lifting passes. A [Program] owns the syntax tree, the position
// information and the findings accumulated so far; a [Pass] transforms
// the tree in place.
package monad

import (
	"go/ast"
	"go/parser"
	"go/printer"
	"go/token"
	"log/slog"
	"strings"

	"github.com/rusty-catz/monadicast/internal/diag"
)

// printMode matches the layout go/format produces.
const (
	printMode     = printer.UseSpaces | printer.TabIndent
	printTabwidth = 8
)

// Program is a single translation unit flowing through the pipeline.
type Program struct {
	fset   *token.FileSet
	file   *ast.File
	logger *slog.Logger
	diags  diag.Bag
}

// Parse parses src into a [Program]. The filename is used for positions
// in findings. The src argument takes the forms [parser.ParseFile]
// accepts. A nil logger defaults to [slog.Default].
func Parse(filename string, src any, logger *slog.Logger) (*Program, error) {
	if logger == nil {
		logger = slog.Default()
	}

	fset := token.NewFileSet()

	file, err := parser.ParseFile(fset, filename, src, parser.ParseComments|parser.SkipObjectResolution)
	if err != nil {
		return nil, err
	}

	return &Program{fset: fset, file: file, logger: logger}, nil
}

// NewProgram wraps an already parsed file, for callers that own their
// parsing, such as the go/analysis adapter. A nil logger defaults to
// [slog.Default].
func NewProgram(fset *token.FileSet, file *ast.File, logger *slog.Logger) *Program {
	if logger == nil {
		logger = slog.Default()
	}

	return &Program{fset: fset, file: file, logger: logger}
}

// File returns the syntax tree. Passes mutate it in place.
func (p *Program) File() *ast.File { return p.file }

// Fset returns the position information for the tree.
func (p *Program) Fset() *token.FileSet { return p.fset }

// Logger returns the logger passes should use.
func (p *Program) Logger() *slog.Logger { return p.logger }

// Position resolves a token position for findings and log output.
func (p *Program) Position(pos token.Pos) token.Position {
	return p.fset.Position(pos)
}

// Report records a finding.
func (p *Program) Report(d diag.Diagnostic) {
	p.diags.Add(d)
}

// Diagnostics returns the findings accumulated so far.
func (p *Program) Diagnostics() *diag.Bag {
	return &p.diags
}

// Format renders the current tree as Go source.
func (p *Program) Format() (string, error) {
	cfg := printer.Config{Mode: printMode, Tabwidth: printTabwidth}

	var sb strings.Builder
	if err := cfg.Fprint(&sb, p.fset, p.file); err != nil {
		return "", err
	}

	return sb.String(), nil
}
