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

package gclplugin_test

import (
	"encoding/json"
	"strings"
	"testing"

	monadicast "github.com/rusty-catz/monadicast/analyzer"
	. "github.com/rusty-catz/monadicast/gclplugin"
)

const allSettings = `{
	"pointers": "liftable",
	"loops": true,
	"generated": false,
	"advance-methods": ["add", "advance"],
	"retreat-methods": ["sub"],
	"signed-methods": ["offset"]
}`

// The three method lists fold into a single option.
const allOptions = 4

func TestSettings(t *testing.T) {
	t.Parallel()

	testCases := [...]struct {
		name     string
		settings string
		want     int
	}{
		{"all", allSettings, allOptions},
		{"methods", `{"signed-methods": ["offset"]}`, 1},
		{"none", `{}`, 0},
	}

	for _, tc := range testCases {
		t.Run(tc.name, func(t *testing.T) {
			t.Parallel()

			dec := json.NewDecoder(strings.NewReader(tc.settings))
			dec.DisallowUnknownFields()

			var s Settings
			if err := dec.Decode(&s); err != nil {
				t.Fatalf("Can't decode settings: %v", err)
			}

			if got := s.Options(); len(got) != tc.want {
				t.Errorf("Got %d options: %s, want %d", len(got), monadicast.Options(got).LogValue(), tc.want)
			}
		})
	}
}
