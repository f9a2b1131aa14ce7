// Copyright 2026 The deepdiff Authors
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

package deepdiff_test

import (
	"fmt"

	"github.com/AaronDMarasco/deepdiff"
)

func ExampleDiff() {
	a := map[string]any{"name": "John", "age": 30, "scores": []any{1, 2, 3}}
	b := map[string]any{"name": "John", "age": 31, "scores": []any{1, 2, 4}}

	report, err := deepdiff.Diff(a, b)
	if err != nil {
		panic(err)
	}
	for _, kind := range report.Kinds() {
		fmt.Printf("%s:\n", kind)
		for _, c := range report.Changes(kind) {
			fmt.Printf("  %s: %v -> %v\n", c.Level.Path(), c.Level.A, c.Level.B)
		}
	}
	// Output:
	// values_changed:
	//   root['age']: 30 -> 31
	//   root['scores'][2]: 3 -> 4
}

func ExampleDiff_ignoreOrder() {
	a := []any{3, 1, 2}
	b := []any{1, 2, 3, 4}

	report, err := deepdiff.Diff(a, b, deepdiff.IgnoreOrder())
	if err != nil {
		panic(err)
	}
	for _, c := range report.Changes(deepdiff.IterableItemAdded) {
		fmt.Printf("%s: %v\n", c.Level.Path(), c.Level.B)
	}
	// Output:
	// root[3]: 4
}
