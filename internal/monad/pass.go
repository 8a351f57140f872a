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

package monad

import (
	"context"
	"fmt"
	"runtime/trace"
)

// Pass is one lifting transformation over a [Program].
//
// Apply mutates the program's tree in place. A returned error means the
// pass hit an internal invariant violation; it never signals a
// recoverable property of the input, which is reported through
// [Program.Report] instead. Passes must not retain the program.
type Pass interface {
	Name() string
	Apply(ctx context.Context, p *Program) error
}

// Run applies a single pass to the program.
func (p *Program) Run(ctx context.Context, pass Pass) error {
	defer trace.StartRegion(ctx, pass.Name()).End()

	p.logger.DebugContext(ctx, "applying pass", "pass", pass.Name())

	if err := pass.Apply(ctx, p); err != nil {
		return fmt.Errorf("pass %s: %w", pass.Name(), err)
	}

	return nil
}
