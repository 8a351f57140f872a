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

package loop

func work(int32) {}

func counting(n int32) {
	var i int32 = int32(0)
	for i < n { // want `counting loop over i can be modernized to a range iteration`
		work(i)
		i = i + 1
	}
}

func inclusive() {
	var i int32 = int32(0)
	for i <= 10 { // want `counting loop over i can be modernized to a range iteration`
		work(i)
		i += 1
	}
}

func nonUnitStep(n int32) {
	var j int32 = int32(0)
	for j < n {
		work(j)
		j = j + 2
	}
	work(j)
}

func usedAfter(n int32) {
	var k int32 = int32(0)
	for k < n {
		work(k)
		k = k + 1
	}
	work(k)
}

func suppressed(n int32) {
	var i int32 = int32(0)
	for i < n { //nolint:monadicast
		work(i)
		i = i + 1
	}
}
