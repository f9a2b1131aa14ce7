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

package deepdiff

import (
	"testing"

	"github.com/google/go-cmp/cmp"
)

func roundTrip(t *testing.T, a, b any, opts ...Option) {
	t.Helper()
	r := mustDiff(t, a, b, opts...)
	got, err := r.Delta().Apply(a)
	if err != nil {
		t.Fatalf("Apply() failed: %v", err)
	}
	if diff := cmp.Diff(b, got); diff != "" {
		t.Errorf("delta round trip mismatch (-want +got):\n%s", diff)
	}
}

func TestDeltaRoundTrip(t *testing.T) {
	t.Run("maps-and-scalars", func(t *testing.T) {
		a := map[string]any{
			"name": "old",
			"tags": []any{"a", "b", "c"},
			"meta": map[string]any{"x": 1},
		}
		b := map[string]any{
			"name": "new",
			"tags": []any{"a", "c"},
			"rank": 5,
		}
		roundTrip(t, a, b)
	})

	t.Run("insertion", func(t *testing.T) {
		roundTrip(t, []any{1, 3}, []any{1, 2, 3})
	})

	t.Run("replacement-and-growth", func(t *testing.T) {
		roundTrip(t, []any{1, 2, 3}, []any{1, 9, 3, 4})
	})

	t.Run("sets", func(t *testing.T) {
		a := map[string]struct{}{"a": {}, "b": {}}
		b := map[string]struct{}{"b": {}, "c": {}}
		roundTrip(t, a, b)
	})

	t.Run("moves", func(t *testing.T) {
		m1 := map[string]any{"id": 1, "v": "a"}
		m2 := map[string]any{"id": 2, "v": "b"}
		a := []any{m1, m2}
		b := []any{m2, m1}
		byID := func(x, y any, path string) (bool, error) {
			return x.(map[string]any)["id"] == y.(map[string]any)["id"], nil
		}
		roundTrip(t, a, b, IterableCompareFunc(byID))
	})
}

func TestDeltaApplyDoesNotMutateTarget(t *testing.T) {
	a := map[string]any{"x": []any{1, 2}, "y": "old"}
	b := map[string]any{"x": []any{1, 2, 3}, "y": "new"}
	r := mustDiff(t, a, b)
	if _, err := r.Delta().Apply(a); err != nil {
		t.Fatalf("Apply() failed: %v", err)
	}
	want := map[string]any{"x": []any{1, 2}, "y": "old"}
	if diff := cmp.Diff(want, a); diff != "" {
		t.Errorf("target was mutated (-want +got):\n%s", diff)
	}
}

func TestDeltaUnappliableRecords(t *testing.T) {
	r := mustDiff(t, []int{1, 1, 2}, []int{1, 2, 2}, IgnoreOrder(), ReportRepetition())
	if r.Empty() {
		t.Fatalf("expected repetition records")
	}
	if _, err := r.Delta().Apply([]any{1, 1, 2}); err == nil {
		t.Errorf("expected an error applying repetition records")
	}
}
