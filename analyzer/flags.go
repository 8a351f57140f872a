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
	"flag"
	"strings"

	"github.com/rusty-catz/monadicast/internal/config"
)

// registerFlags binds the run options to command line flag values.
// A nil flag set value defaults to the program's command line.
func registerFlags(flags *flag.FlagSet, r *runOptions) {
	if flags == nil {
		flags = flag.CommandLine
	}

	flags.TextVar(&r.pointers, "pointers", r.pointers, "pointer check level (full, liftable, off)")
	flags.BoolVar(&r.loops, "loops", r.loops, "report lowerable counting loops")
	flags.Var(NewBehaviorValue(&r.behavior, config.IncludeGenerated), "generated", "check generated files")

	flags.Func("advance-methods", "comma-separated methods that advance a pointer",
		listFlag(&r.dialect.AdvanceMethods))
	flags.Func("retreat-methods", "comma-separated methods that retreat a pointer",
		listFlag(&r.dialect.RetreatMethods))
	flags.Func("signed-methods", "comma-separated methods routed by the sign of their literal argument",
		listFlag(&r.dialect.SignedMethods))
}

// listFlag parses a comma-separated name list into the target slice,
// replacing its default.
func listFlag(target *[]string) func(string) error {
	return func(s string) error {
		var names []string
		for name := range strings.SplitSeq(s, ",") {
			if name = strings.TrimSpace(name); name != "" {
				names = append(names, name)
			}
		}

		*target = names

		return nil
	}
}
