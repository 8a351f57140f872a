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

	"github.com/rusty-catz/monadicast/internal/monad"
)

// Pass adapts the engine to the pipeline: one fresh engine per
// translation unit, the four operations run in order.
type Pass struct {
	opts Options
}

// NewPass returns the raw pointer lifting pass.
func NewPass(opts Options) Pass { return Pass{opts: opts} }

// Name implements [monad.Pass].
func (Pass) Name() string { return "raw-pointers" }

// Apply implements [monad.Pass].
func (p Pass) Apply(ctx context.Context, prog *monad.Program) error {
	e := NewEngine(p.opts, prog.Logger())

	if err := e.Discover(ctx, prog); err != nil {
		return err
	}

	if err := e.Accumulate(ctx); err != nil {
		return err
	}

	if err := e.Resolve(ctx); err != nil {
		return err
	}

	return e.Rewrite(ctx, prog)
}

// Analyze runs discovery, accumulation, and resolution over one
// translation unit without rewriting it, and returns the findings in
// declaration order. It is the report-only entry shared with the
// go/analysis adapter.
func Analyze(ctx context.Context, prog *monad.Program, opts Options) ([]Finding, error) {
	e := NewEngine(opts, prog.Logger())

	if err := e.Discover(ctx, prog); err != nil {
		return nil, err
	}

	if err := e.Accumulate(ctx); err != nil {
		return nil, err
	}

	if err := e.Resolve(ctx); err != nil {
		return nil, err
	}

	return e.Findings()
}
