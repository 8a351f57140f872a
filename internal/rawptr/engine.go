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
	"go/ast"
	"log/slog"

	"golang.org/x/tools/go/ast/inspector"

	"github.com/rusty-catz/monadicast/internal/astutil"
	"github.com/rusty-catz/monadicast/internal/config"
	"github.com/rusty-catz/monadicast/internal/permission"
)

// Options configure an engine run.
type Options struct {
	// Dialect names the functions and methods the analysis recognizes.
	Dialect config.Pointers

	// ReportApplied reports applied rewrites as informational findings.
	ReportApplied bool
}

// DefaultOptions returns options for the built-in dialect.
func DefaultOptions() Options {
	return Options{Dialect: config.Default().Pointers}
}

// Engine runs the pointer permission inference for one translation
// unit. The zero value is not usable; create engines with [NewEngine].
// An engine is single-use: its phase advances strictly forward.
type Engine struct {
	logger *slog.Logger
	report bool

	advance map[string]bool
	retreat map[string]bool
	signed  map[string]bool
	alloc   map[string]bool
	grow    map[string]bool
	release map[string]bool

	phase    analysisPhase
	tbl      *bindings
	in       *inspector.Inspector
	findings []Finding
}

// NewEngine creates an engine in the uninitialized phase.
// A nil logger defaults to [slog.Default].
func NewEngine(opts Options, logger *slog.Logger) *Engine {
	if logger == nil {
		logger = slog.Default()
	}

	return &Engine{
		logger:  logger,
		report:  opts.ReportApplied,
		advance: nameSet(opts.Dialect.AdvanceMethods),
		retreat: nameSet(opts.Dialect.RetreatMethods),
		signed:  nameSet(opts.Dialect.SignedMethods),
		alloc:   nameSet(opts.Dialect.AllocFunctions),
		grow:    nameSet(opts.Dialect.GrowFunctions),
		release: nameSet(opts.Dialect.ReleaseFunctions),
		phase:   uninitialized{},
		tbl:     newBindings(),
	}
}

func nameSet(names []string) map[string]bool {
	set := make(map[string]bool, len(names))
	for _, n := range names {
		set[n] = true
	}

	return set
}

// Bindings returns the discovered bindings in declaration order.
func (e *Engine) Bindings() []*Binding {
	return e.tbl.order
}

// direction classifies an arithmetic method by name, completing the
// advance/retreat routing: advance methods record forward arithmetic,
// retreat methods backward, and sign-following methods go backward
// exactly when their argument is a negated integer literal.
func (e *Engine) direction(name string, args []ast.Expr) (permission.Access, bool) {
	switch {
	case e.advance[name]:
		return permission.OffsetAdd, true

	case e.retreat[name]:
		return permission.OffsetSub, true

	case e.signed[name]:
		if len(args) == 1 {
			if _, ok := astutil.NegIntLit(args[0]); ok {
				return permission.OffsetSub, true
			}
		}

		return permission.OffsetAdd, true

	default:
		return 0, false
	}
}
