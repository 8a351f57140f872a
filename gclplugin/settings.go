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

package gclplugin

import (
	monadicast "github.com/rusty-catz/monadicast/analyzer"
	"github.com/rusty-catz/monadicast/analyzer/level"
)

// Settings represents the configuration options for an instance of the [Plugin].
type Settings struct {
	// Pointers sets the pointer check level: "full", "liftable" or "off".
	Pointers *level.Pointers `json:"pointers,omitzero"`
	// Loops enables reporting of lowerable counting loops.
	Loops *bool `json:"loops,omitzero"`
	// Generated enables checks in generated files.
	Generated *bool `json:"generated,omitzero"`
	// AdvanceMethods names the pointer methods that advance.
	AdvanceMethods []string `json:"advance-methods,omitzero"`
	// RetreatMethods names the pointer methods that retreat.
	RetreatMethods []string `json:"retreat-methods,omitzero"`
	// SignedMethods names the pointer methods routed by the sign of
	// their literal argument.
	SignedMethods []string `json:"signed-methods,omitzero"`
}

// Options converts [Settings] into a list of [monadicast.Option] for the
// monadicast analyzer. It processes settings and applies them only when
// explicitly set (non-nil).
func (s Settings) Options() []monadicast.Option {
	var opts []monadicast.Option

	opts = appendOption(opts, s.Pointers, monadicast.WithPointers)
	opts = appendOption(opts, s.Loops, monadicast.WithLoops)
	opts = appendOption(opts, s.Generated, monadicast.WithGenerated)

	if s.AdvanceMethods != nil || s.RetreatMethods != nil || s.SignedMethods != nil {
		opts = append(opts, monadicast.WithOffsetMethods(s.AdvanceMethods, s.RetreatMethods, s.SignedMethods))
	}

	return opts
}

// appendOption appends a non-nil setting to a [monadicast.Option] list.
func appendOption[T any](opts []monadicast.Option, value *T, constructor func(T) monadicast.Option) []monadicast.Option {
	if value == nil {
		return opts
	}

	return append(opts, constructor(*value))
}
