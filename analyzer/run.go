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

package analyzer

import (
	"context"
	"errors"
	"fmt"
	"go/ast"
	"go/token"
	"runtime/trace"

	"golang.org/x/tools/go/analysis"
	"golang.org/x/tools/go/analysis/passes/inspect"
	"golang.org/x/tools/go/ast/inspector"

	"github.com/rusty-catz/monadicast/analyzer/level"
	"github.com/rusty-catz/monadicast/internal/astutil"
	"github.com/rusty-catz/monadicast/internal/config"
	"github.com/rusty-catz/monadicast/internal/loops"
	"github.com/rusty-catz/monadicast/internal/monad"
	"github.com/rusty-catz/monadicast/internal/rawptr"
)

// ErrResultMissing is returned when a required analyzer result is missing.
// This typically indicates a configuration error where the analyzer's
// Requires field is not properly set.
var ErrResultMissing = errors.New("analyzer result missing")

// run executes the report-only analyses over every file of the pass.
func (r *runOptions) run(p *analysis.Pass) (any, error) {
	// Retrieves the [inspector.Inspector] from the pass results.
	in, ok := p.ResultOf[inspect.Analyzer].(*inspector.Inspector)
	if !ok {
		return nil, fmt.Errorf("monadicast: %s %w", inspect.Analyzer.Name, ErrResultMissing)
	}

	ctx := context.Background()

	ctx, task := trace.NewTask(ctx, "MonadicAst")
	defer task.End()

	var errs []error

	// Loop over all files of the package; each one is an independent
	// translation unit.
	types := []ast.Node{(*ast.File)(nil)}

	in.Root().Inspect(types, func(c inspector.Cursor) bool {
		file, ok := c.Node().(*ast.File)
		if !ok {
			return false
		}

		currentFile := astutil.NewCurrentFile(p.Fset, file)
		if !currentFile.Valid() {
			return false
		}

		if !r.behavior.Enabled(config.IncludeGenerated) && currentFile.Generated() {
			return false
		}

		if err := r.analyzeFile(ctx, p, currentFile, file); err != nil {
			errs = append(errs, err)
		}

		return false
	})

	return nil, errors.Join(errs...)
}

// analyzeFile runs the enabled checks over one file.
func (r *runOptions) analyzeFile(ctx context.Context, p *analysis.Pass, file astutil.CurrentFile, root *ast.File) error {
	defer trace.StartRegion(ctx, "AnalyzeFile").End()

	prog := monad.NewProgram(p.Fset, root, nil)

	if r.pointers != level.PointersOff {
		findings, err := rawptr.Analyze(ctx, prog, rawptr.Options{Dialect: r.dialect})
		if err != nil {
			return err
		}

		for _, f := range findings {
			r.reportPointer(p, file, f)
		}
	}

	if r.loops {
		for _, cand := range loops.Analyze(ctx, prog, loops.Options{Dialect: r.casts}) {
			report(p, file, cand.Loop.For, "loop",
				fmt.Sprintf("counting loop over %s can be modernized to a range iteration", cand.Name))
		}
	}

	return nil
}

// reportPointer renders one pointer finding. Liftable bindings are
// always actionable; the rest only show at the full level.
func (r *runOptions) reportPointer(p *analysis.Pass, file astutil.CurrentFile, f rawptr.Finding) {
	b := f.Binding

	switch {
	case f.Lifted():
		report(p, file, b.Ident.Pos(), "pointer",
			fmt.Sprintf("raw pointer %s can be lifted to %s", b.Name, f.Resolved))

	case r.pointers != level.PointersFull:
		// liftable-only level, stay quiet

	case f.Blocked != "":
		report(p, file, b.Ident.Pos(), "pointer",
			fmt.Sprintf("raw pointer %s resolves to %s but stays raw: %s", b.Name, f.Resolved, f.Blocked))

	default:
		report(p, file, b.Ident.Pos(), "pointer",
			fmt.Sprintf("raw pointer %s has no safe replacement type", b.Name))
	}
}

// report emits one diagnostic unless a nolint comment on the same line
// suppresses it.
func report(p *analysis.Pass, file astutil.CurrentFile, pos token.Pos, category, message string) {
	if file.NoLintComment(pos) {
		return
	}

	p.Report(analysis.Diagnostic{Pos: pos, Category: category, Message: message})
}
