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
	"log/slog"

	"github.com/rusty-catz/monadicast/analyzer/level"
	"github.com/rusty-catz/monadicast/internal/config"
)

// Option configures specific behavior of a [New] monadicast analyzer.
type Option interface {
	apply(r *runOptions)
	LogAttr() slog.Attr
}

// Options is a list of [Option] values that itself satisfies the [Option] interface.
type Options []Option

// LogValue implements [slog.LogValuer].
func (o Options) LogValue() slog.Value {
	as := make([]slog.Attr, 0, len(o))
	as = appendOptions(as, o)

	return slog.GroupValue(as...)
}

func appendOptions(as []slog.Attr, o Options) []slog.Attr {
	for _, opt := range o {
		switch opt := opt.(type) {
		case nil:
			as = append(as, slog.String("nil", "<nil>"))

		case Options:
			as = appendOptions(as, opt)

		default:
			as = append(as, opt.LogAttr())
		}
	}

	return as
}

func (o Options) apply(r *runOptions) {
	for _, opt := range o {
		if opt == nil {
			continue
		}

		opt.apply(r)
	}
}

// LogAttr is for logging with [slog.Logger.LogAttrs].
func (o Options) LogAttr() slog.Attr {
	return slog.Any("options", o)
}

// WithPointers is an [Option] to configure the pointer check level.
func WithPointers(pointers level.Pointers) Option { return pointersOption{pointers: pointers} }

type pointersOption struct{ pointers level.Pointers }

func (o pointersOption) apply(r *runOptions) {
	r.pointers = o.pointers
}

func (o pointersOption) LogAttr() slog.Attr {
	return slog.String("pointers", o.pointers.String())
}

// WithLoops is an [Option] to configure whether lowerable counting
// loops are reported.
func WithLoops(loops bool) Option { return loopsOption{loops: loops} }

type loopsOption struct{ loops bool }

func (o loopsOption) apply(r *runOptions) {
	r.loops = o.loops
}

func (o loopsOption) LogAttr() slog.Attr {
	return slog.Bool("loops", o.loops)
}

// WithGenerated is an [Option] to configure diagnostics in generated
// files. Transpiler output usually carries a generated header, so this
// defaults to true.
func WithGenerated(generated bool) Option { return generatedOption{generated: generated} }

type generatedOption struct{ generated bool }

func (o generatedOption) apply(r *runOptions) {
	r.behavior.Set(config.IncludeGenerated, o.generated)
}

func (o generatedOption) LogAttr() slog.Attr {
	return slog.Bool("generated", o.generated)
}

// WithOffsetMethods is an [Option] to configure the pointer arithmetic
// method names of the dialect. A nil list keeps its default.
func WithOffsetMethods(advance, retreat, signed []string) Option {
	return offsetMethodsOption{advance: advance, retreat: retreat, signed: signed}
}

type offsetMethodsOption struct{ advance, retreat, signed []string }

func (o offsetMethodsOption) apply(r *runOptions) {
	if o.advance != nil {
		r.dialect.AdvanceMethods = o.advance
	}
	if o.retreat != nil {
		r.dialect.RetreatMethods = o.retreat
	}
	if o.signed != nil {
		r.dialect.SignedMethods = o.signed
	}
}

func (o offsetMethodsOption) LogAttr() slog.Attr {
	return slog.Group("offset-methods",
		slog.Any("advance", o.advance),
		slog.Any("retreat", o.retreat),
		slog.Any("signed", o.signed),
	)
}
