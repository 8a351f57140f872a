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
	"go/ast"
	"runtime/trace"

	"github.com/rusty-catz/monadicast/internal/astutil"
	"github.com/rusty-catz/monadicast/internal/permission"
)

// Resolve applies the permission lattice to every discovered binding,
// fixing each one's replacement type. It requires the computing phase
// and advances the engine to initialized; the mapping it builds is only
// observable afterwards, through [Engine.TypeOf] and [Engine.Findings].
func (e *Engine) Resolve(ctx context.Context) error {
	defer trace.StartRegion(ctx, "Resolve").End()

	ph, ok := e.phase.(computing)
	if !ok {
		return phaseError("Resolve", "computing", e.phase)
	}

	for _, b := range e.tbl.order {
		ph.resolved[b] = permission.Resolve(b.perms)
	}

	e.logger.DebugContext(ctx, "resolved raw pointer bindings", "bindings", len(e.tbl.order))

	e.phase = initialized{resolved: ph.resolved}

	return nil
}

// TypeOf returns the safe type resolved for a binding. It fails until
// resolution has run.
func (e *Engine) TypeOf(b *Binding) (permission.SafeType, error) {
	ph, ok := e.phase.(initialized)
	if !ok {
		return permission.Undefined, phaseError("TypeOf", "initialized", e.phase)
	}

	return ph.resolved[b], nil
}

// Finding is the analysis verdict for one binding.
type Finding struct {
	// Binding is the analyzed binding.
	Binding *Binding

	// Resolved is the replacement type the lattice chose.
	Resolved permission.SafeType

	// Blocked names the reason the rewrite must leave the binding raw
	// even though it resolved to a safe type. Empty when nothing
	// prevents the rewrite.
	Blocked string
}

// Lifted reports whether the binding was proven liftable.
func (f Finding) Lifted() bool { return f.Resolved.Safe() && f.Blocked == "" }

// Findings reports the verdict for every binding in declaration order,
// combining the resolved types with the rewrite guards: backward
// arithmetic has no slice rendering, an unspelled pointee type cannot
// be rendered, resized storage keeps its raw form, and bindings
// declared in one clause must agree on the rendered type.
func (e *Engine) Findings() ([]Finding, error) {
	ph, ok := e.phase.(initialized)
	if !ok {
		return nil, phaseError("Findings", "initialized", e.phase)
	}

	if e.findings == nil {
		findings := make([]Finding, 0, len(e.tbl.order))
		for _, b := range e.tbl.order {
			findings = append(findings, Finding{
				Binding:  b,
				Resolved: ph.resolved[b],
				Blocked:  e.guard(b, ph.resolved[b]),
			})
		}

		e.groupGuard(findings)

		e.findings = findings
	}

	return e.findings, nil
}

// guard returns the first rewrite blocker for a binding that resolved
// to a safe type.
func (e *Engine) guard(b *Binding, st permission.SafeType) string {
	if !st.Safe() {
		return ""
	}

	if b.blocked != "" {
		return b.blocked
	}

	if b.perms.Has(permission.OffsetSub) {
		return "backward arithmetic has no slice rendering"
	}

	for _, call := range e.callSites(b, siteArith) {
		if len(call.Args) != 1 {
			return "pointer arithmetic has unexpected arity"
		}
	}

	allocs := e.callSites(b, siteAlloc)

	if b.Pointee == nil && (st.Slice() || len(allocs) > 0) {
		return "the pointee type is not spelled"
	}

	if !st.Slice() {
		for _, call := range allocs {
			if !unitAlloc(call) {
				return "allocation count is not one"
			}
		}
	}

	return ""
}

// groupGuard blocks slice renderings that would disagree with another
// binding declared in the same clause, since those share one spelled
// type.
func (e *Engine) groupGuard(findings []Finding) {
	byBinding := make(map[*Binding]*Finding, len(findings))
	for i := range findings {
		byBinding[findings[i].Binding] = &findings[i]
	}

	for _, group := range e.tbl.groups {
		if len(group) < 2 {
			continue
		}

		var sliced, raw int
		for _, b := range group {
			if f := byBinding[b]; f.Lifted() && f.Resolved.Slice() {
				sliced++
			} else {
				raw++
			}
		}

		if sliced == 0 || raw == 0 {
			continue
		}

		for _, b := range group {
			if f := byBinding[b]; f.Lifted() && f.Resolved.Slice() {
				f.Blocked = "declared in one clause with a binding that stays raw"
			}
		}
	}
}

// callSites collects the recorded call sites of one kind for a
// binding. The order is unspecified; callers only quantify over the
// result.
func (e *Engine) callSites(b *Binding, kind siteKind) []*ast.CallExpr {
	var calls []*ast.CallExpr

	for node, s := range e.tbl.sites {
		if s.binding == b && s.kind == kind {
			calls = append(calls, node.(*ast.CallExpr))
		}
	}

	return calls
}

// unitAlloc reports whether an allocation call requests exactly one
// element.
func unitAlloc(call *ast.CallExpr) bool {
	if len(call.Args) == 0 {
		return false
	}

	n, ok := astutil.IntLit(call.Args[0])

	return ok && n == 1
}
