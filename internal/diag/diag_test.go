// Copyright 2026 The monadicast Authors. All Rights Reserved.
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

package diag_test

import (
	"go/token"
	"strings"
	"testing"

	"github.com/go-json-experiment/json"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	. "github.com/rusty-catz/monadicast/internal/diag"
)

func position(file string, line, col int) token.Position {
	return token.Position{Filename: file, Line: line, Column: col}
}

func TestBagSorted(t *testing.T) {
	t.Parallel()

	var b Bag
	b.Add(New(Warning, PointerUnliftable, position("b.go", 3, 1), "q", "write|offset+", "q cannot be lifted"))
	b.Add(New(Info, LoopLowered, position("a.go", 10, 2), "i", "", "loop lowered to range"))
	b.Add(New(Warning, PointerUnliftable, position("a.go", 3, 5), "p", "free", "p cannot be lifted"))
	// exact duplicate collapses
	b.Add(New(Warning, PointerUnliftable, position("a.go", 3, 5), "p", "free", "p cannot be lifted"))

	sorted := b.Sorted()

	require.Len(t, sorted, 3)
	assert.Equal(t, "a.go", sorted[0].File)
	assert.Equal(t, 3, sorted[0].Line)
	assert.Equal(t, "a.go", sorted[1].File)
	assert.Equal(t, 10, sorted[1].Line)
	assert.Equal(t, "b.go", sorted[2].File)

	assert.True(t, b.HasWarnings())
	assert.Equal(t, 4, b.Len())
}

func TestWriteText(t *testing.T) {
	t.Parallel()

	var b Bag
	b.Add(New(Warning, PointerBlocked, position("x.go", 7, 9), "p", "offset-", "p uses backward arithmetic"))

	var sb strings.Builder
	require.NoError(t, b.WriteText(&sb))

	assert.Equal(t, "x.go:7:9: warning: p uses backward arithmetic\n", sb.String())
}

func TestWriteJSONRoundTrip(t *testing.T) {
	t.Parallel()

	var b Bag
	b.Add(New(Info, PointerLifted, position("x.go", 2, 1), "buf", "unique|free|offset+", "buf lifted to unique-slice"))

	var sb strings.Builder
	require.NoError(t, b.WriteJSON(&sb))

	var got []Diagnostic
	require.NoError(t, json.Unmarshal([]byte(sb.String()), &got))

	require.Len(t, got, 1)
	assert.Equal(t, Info, got[0].Severity)
	assert.Equal(t, PointerLifted, got[0].Category)
	assert.Equal(t, "buf", got[0].Name)
}

func TestWriteJSONEmpty(t *testing.T) {
	t.Parallel()

	var b Bag

	var sb strings.Builder
	require.NoError(t, b.WriteJSON(&sb))

	assert.Equal(t, "[]", sb.String())
}
