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
	"errors"
	"fmt"

	"github.com/rusty-catz/monadicast/internal/permission"
)

// ErrPhase is returned when an engine operation runs out of order.
// Hitting it is a defect in the calling code, not a property of the
// input being analyzed.
var ErrPhase = errors.New("analysis phase violation")

// analysisPhase is the closed set of engine states. Each state owns the
// data that is valid in it: computing carries the partially resolved
// mapping, initialized the completed one. Transitions are strictly
// forward and each is taken exactly once per run.
type analysisPhase interface {
	phaseName() string
}

// uninitialized is the state before discovery: no bindings exist yet.
type uninitialized struct{}

// computing is the state between discovery and resolution: bindings
// exist, capabilities accumulate, and the type mapping is being built.
type computing struct {
	resolved map[*Binding]permission.SafeType
}

// initialized is the state after resolution: every binding has a safe
// type, possibly Undefined, and the rewrite may proceed.
type initialized struct {
	resolved map[*Binding]permission.SafeType
}

func (uninitialized) phaseName() string { return "uninitialized" }
func (computing) phaseName() string     { return "computing" }
func (initialized) phaseName() string   { return "initialized" }

// phaseError reports an operation attempted in the wrong phase.
func phaseError(op string, want string, got analysisPhase) error {
	return fmt.Errorf("%w: %s requires the %s phase, engine is %s", ErrPhase, op, want, got.phaseName())
}
