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

package monadicast

import (
	"context"
	"log/slog"

	"github.com/rusty-catz/monadicast/internal/cleanup"
	"github.com/rusty-catz/monadicast/internal/config"
	"github.com/rusty-catz/monadicast/internal/diag"
	"github.com/rusty-catz/monadicast/internal/ffi"
	"github.com/rusty-catz/monadicast/internal/loops"
	"github.com/rusty-catz/monadicast/internal/monad"
	"github.com/rusty-catz/monadicast/internal/rawptr"
)

// Program is one parsed translation unit flowing through the pipeline.
type Program = monad.Program

// Pass is one lifting transformation over a [Program].
type Pass = monad.Pass

// Diagnostics is the bag of findings a run accumulates.
type Diagnostics = diag.Bag

// Config is the dialect and pass-selection configuration.
type Config = config.File

// DefaultConfig returns the built-in dialect configuration.
func DefaultConfig() Config { return config.Default() }

// LoadConfig reads a YAML configuration file on top of the defaults.
func LoadConfig(path string) (Config, error) { return config.Load(path) }

// MonadicAst threads a translation unit through lifting passes. The
// first pass error sticks: every later bind is a no-op, and the error
// surfaces from [MonadicAst.Result].
type MonadicAst struct {
	prog   *monad.Program
	cfg    config.File
	report bool
	err    error
}

// Option configures a [Parse] call.
type Option func(*settings)

type settings struct {
	logger *slog.Logger
	cfg    config.File
	report bool
}

// WithLogger sets the logger the passes use. Defaults to [slog.Default].
func WithLogger(logger *slog.Logger) Option {
	return func(s *settings) { s.logger = logger }
}

// WithConfig sets the dialect configuration the convenience passes use.
// Defaults to [DefaultConfig]. The pass selection in cfg only affects
// [MonadicAst.Lift].
func WithConfig(cfg Config) Option {
	return func(s *settings) { s.cfg = cfg }
}

// WithReportApplied makes the rewriting passes record an informational
// finding for every applied rewrite, in addition to the warnings for
// declined ones.
func WithReportApplied(report bool) Option {
	return func(s *settings) { s.report = report }
}

// Parse parses one translation unit of transpiler output. The filename
// is used for positions in findings; src takes the forms
// [go/parser.ParseFile] accepts.
func Parse(filename string, src any, opts ...Option) (*MonadicAst, error) {
	s := settings{cfg: config.Default()}
	for _, opt := range opts {
		opt(&s)
	}

	prog, err := monad.Parse(filename, src, s.logger)
	if err != nil {
		return nil, err
	}

	return &MonadicAst{prog: prog, cfg: s.cfg, report: s.report}, nil
}

// Bind applies one pass to the translation unit. When an earlier pass
// already failed, the pass does not run.
func (m *MonadicAst) Bind(ctx context.Context, pass Pass) *MonadicAst {
	if m.err != nil {
		return m
	}

	m.err = m.prog.Run(ctx, pass)

	return m
}

// ConvertForeignTypes binds the foreign ABI type conversion pass.
func (m *MonadicAst) ConvertForeignTypes(ctx context.Context) *MonadicAst {
	return m.Bind(ctx, ffi.NewPass(ffi.Options{Dialect: m.cfg.FFI}))
}

// ReplaceRawPointers binds the pointer lifting pass.
func (m *MonadicAst) ReplaceRawPointers(ctx context.Context) *MonadicAst {
	return m.Bind(ctx, rawptr.NewPass(rawptr.Options{
		Dialect:       m.cfg.Pointers,
		ReportApplied: m.report,
	}))
}

// ReplaceWhileLoops binds the counting loop lowering pass.
func (m *MonadicAst) ReplaceWhileLoops(ctx context.Context) *MonadicAst {
	return m.Bind(ctx, loops.NewPass(loops.Options{
		Dialect:       m.cfg.Loops,
		ReportApplied: m.report,
	}))
}

// RemoveNoopExprs binds the no-op statement removal pass.
func (m *MonadicAst) RemoveNoopExprs(ctx context.Context) *MonadicAst {
	return m.Bind(ctx, cleanup.NewPass())
}

// Lift binds the passes enabled in the configuration, in canonical
// order.
func (m *MonadicAst) Lift(ctx context.Context) *MonadicAst {
	passes := m.cfg.Passes.Mask()

	if passes.Enabled(config.FFIPass) {
		m.ConvertForeignTypes(ctx)
	}
	if passes.Enabled(config.PointerPass) {
		m.ReplaceRawPointers(ctx)
	}
	if passes.Enabled(config.LoopPass) {
		m.ReplaceWhileLoops(ctx)
	}
	if passes.Enabled(config.CleanupPass) {
		m.RemoveNoopExprs(ctx)
	}

	return m
}

// Result renders the lifted translation unit, or returns the first
// error any bound pass produced.
func (m *MonadicAst) Result() (string, error) {
	if m.err != nil {
		return "", m.err
	}

	return m.prog.Format()
}

// Err returns the sticky pipeline error, if any.
func (m *MonadicAst) Err() error { return m.err }

// Diagnostics returns the findings recorded so far.
func (m *MonadicAst) Diagnostics() *Diagnostics {
	return m.prog.Diagnostics()
}
