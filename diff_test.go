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
	"math"
	"reflect"
	"sort"
	"strings"
	"testing"

	"github.com/google/go-cmp/cmp"

	"github.com/AaronDMarasco/deepdiff/internal/deephash"
)

// rec is the comparable projection of a change used throughout these tests.
type rec struct {
	Path     string
	Old, New any
}

func records(r *Report, k Kind) []rec {
	var out []rec
	for _, c := range r.Changes(k) {
		out = append(out, rec{Path: c.Level.Path(), Old: c.Level.A, New: c.Level.B})
	}
	sort.Slice(out, func(i, j int) bool { return out[i].Path < out[j].Path })
	return out
}

func mustDiff(t *testing.T, a, b any, opts ...Option) *Report {
	t.Helper()
	r, err := Diff(a, b, opts...)
	if err != nil {
		t.Fatalf("Diff() failed: %v", err)
	}
	return r
}

func TestDiffMaps(t *testing.T) {
	a := map[int]any{1: 1, 2: 2, 3: []any{3}, 4: 4}
	b := map[int]any{1: 1, 2: 4, 3: []any{3, 4}, 5: 5, 6: 6}
	r := mustDiff(t, a, b)

	if got, want := records(r, ValuesChanged), []rec{{Path: "root[2]", Old: 2, New: 4}}; !cmp.Equal(got, want) {
		t.Errorf("values changed: diff (-want +got):\n%s", cmp.Diff(want, got))
	}
	if got, want := records(r, IterableItemAdded), []rec{{Path: "root[3][1]", Old: NotPresent, New: 4}}; !cmp.Equal(got, want) {
		t.Errorf("iterable item added: diff (-want +got):\n%s", cmp.Diff(want, got))
	}
	if got, want := records(r, DictItemAdded), []rec{{Path: "root[5]", Old: NotPresent, New: 5}, {Path: "root[6]", Old: NotPresent, New: 6}}; !cmp.Equal(got, want) {
		t.Errorf("dict item added: diff (-want +got):\n%s", cmp.Diff(want, got))
	}
	if got, want := records(r, DictItemRemoved), []rec{{Path: "root[4]", Old: 4, New: NotPresent}}; !cmp.Equal(got, want) {
		t.Errorf("dict item removed: diff (-want +got):\n%s", cmp.Diff(want, got))
	}
}

func TestDiffScalars(t *testing.T) {
	tests := []struct {
		name string
		a, b any
		opts []Option
		want map[Kind][]rec
	}{
		{
			name: "equal",
			a:    "hello",
			b:    "hello",
			want: map[Kind][]rec{},
		},
		{
			name: "string-changed",
			a:    "hello",
			b:    "world",
			want: map[Kind][]rec{ValuesChanged: {{Path: "root", Old: "hello", New: "world"}}},
		},
		{
			name: "bool-changed",
			a:    true,
			b:    false,
			want: map[Kind][]rec{ValuesChanged: {{Path: "root", Old: true, New: false}}},
		},
		{
			name: "type-changed",
			a:    "3",
			b:    3,
			want: map[Kind][]rec{TypeChanged: {{Path: "root", Old: "3", New: 3}}},
		},
		{
			name: "nil-vs-value",
			a:    nil,
			b:    3,
			want: map[Kind][]rec{TypeChanged: {{Path: "root", Old: nil, New: 3}}},
		},
		{
			name: "numeric-type-changed",
			a:    1,
			b:    1.0,
			want: map[Kind][]rec{TypeChanged: {{Path: "root", Old: 1, New: 1.0}}},
		},
		{
			name: "numeric-type-ignored",
			a:    1,
			b:    1.0,
			opts: []Option{IgnoreNumericTypeChanges()},
			want: map[Kind][]rec{},
		},
		{
			name: "string-case-ignored",
			a:    "Hello",
			b:    "hello",
			opts: []Option{IgnoreStringCase()},
			want: map[Kind][]rec{},
		},
		{
			name: "significant-digits",
			a:    1.0001,
			b:    1.0002,
			opts: []Option{SignificantDigits(3)},
			want: map[Kind][]rec{},
		},
		{
			name: "math-epsilon",
			a:    1.0,
			b:    1.005,
			opts: []Option{MathEpsilon(0.01)},
			want: map[Kind][]rec{},
		},
		{
			name: "nan-unequal-to-itself",
			a:    math.NaN(),
			b:    math.NaN(),
			want: map[Kind][]rec{ValuesChanged: {{Path: "root"}}},
		},
		{
			name: "nan-ignored",
			a:    math.NaN(),
			b:    math.NaN(),
			opts: []Option{IgnoreNaNInequality()},
			want: map[Kind][]rec{},
		},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			r := mustDiff(t, tt.a, tt.b, tt.opts...)
			for k := Kind(0); k < numKinds; k++ {
				got := records(r, k)
				want := tt.want[k]
				if len(got) == 0 && len(want) == 0 {
					continue
				}
				if tt.name == "nan-unequal-to-itself" {
					// NaN values defeat cmp, compare paths only.
					if len(got) != 1 || got[0].Path != "root" {
						t.Errorf("%v: got %v, want one record at root", k, got)
					}
					continue
				}
				if !cmp.Equal(got, want) {
					t.Errorf("%v: diff (-want +got):\n%s", k, cmp.Diff(want, got))
				}
			}
		})
	}
}

func TestDiffMultilineStrings(t *testing.T) {
	a := "line one\nline two\nline three"
	b := "line one\nline 2\nline three"
	r := mustDiff(t, a, b)

	changes := r.Changes(ValuesChanged)
	if len(changes) != 1 {
		t.Fatalf("got %d values_changed records, want 1", len(changes))
	}
	d := changes[0].Diff
	if !strings.Contains(d, "-line two") || !strings.Contains(d, "+line 2") {
		t.Errorf("unified diff missing expected lines:\n%s", d)
	}
}

func TestDiffSets(t *testing.T) {
	a := map[int]struct{}{1: {}, 2: {}, 3: {}}
	b := map[int]struct{}{2: {}, 3: {}, 4: {}}
	r := mustDiff(t, a, b)

	if got, want := records(r, SetItemAdded), []rec{{Path: "root", Old: NotPresent, New: 4}}; !cmp.Equal(got, want) {
		t.Errorf("set item added: diff (-want +got):\n%s", cmp.Diff(want, got))
	}
	if got, want := records(r, SetItemRemoved), []rec{{Path: "root", Old: 1, New: NotPresent}}; !cmp.Equal(got, want) {
		t.Errorf("set item removed: diff (-want +got):\n%s", cmp.Diff(want, got))
	}
}

func TestDiffOrderedSequences(t *testing.T) {
	t.Run("rotation-reports-add-and-remove", func(t *testing.T) {
		r := mustDiff(t, []int{1, 2, 3}, []int{3, 1, 2})
		if got, want := records(r, IterableItemAdded), []rec{{Path: "root[0]", Old: NotPresent, New: 3}}; !cmp.Equal(got, want) {
			t.Errorf("added: diff (-want +got):\n%s", cmp.Diff(want, got))
		}
		if got, want := records(r, IterableItemRemoved), []rec{{Path: "root[2]", Old: 3, New: NotPresent}}; !cmp.Equal(got, want) {
			t.Errorf("removed: diff (-want +got):\n%s", cmp.Diff(want, got))
		}
		if _, ok := r.Opcodes()["root"]; !ok {
			t.Errorf("expected recorded opcodes for root")
		}
	})

	t.Run("single-change-stays-positional", func(t *testing.T) {
		r := mustDiff(t, []int{1, 2, 3}, []int{1, 5, 3})
		if got, want := records(r, ValuesChanged), []rec{{Path: "root[1]", Old: 2, New: 5}}; !cmp.Equal(got, want) {
			t.Errorf("values changed: diff (-want +got):\n%s", cmp.Diff(want, got))
		}
	})

	t.Run("zip-mode", func(t *testing.T) {
		r := mustDiff(t, []int{1, 2, 3}, []int{3, 1, 2}, ZipOrderedIterables())
		if got := len(records(r, ValuesChanged)); got != 3 {
			t.Errorf("got %d values_changed records, want 3", got)
		}
	})
}

func TestDiffIterableCompareFunc(t *testing.T) {
	byValue := func(x, y any, path string) (bool, error) { return x == y, nil }

	t.Run("rotation-reports-moves", func(t *testing.T) {
		r := mustDiff(t, []any{1, 2, 3}, []any{3, 1, 2}, IterableCompareFunc(byValue))
		want := []rec{
			{Path: "root[0]", Old: 1, New: 1},
			{Path: "root[1]", Old: 2, New: 2},
			{Path: "root[2]", Old: 3, New: 3},
		}
		if got := records(r, IterableItemMoved); !cmp.Equal(got, want) {
			t.Errorf("moved: diff (-want +got):\n%s", cmp.Diff(want, got))
		}
		if got := r.Len(); got != 3 {
			t.Errorf("Len() = %d, want 3 (moves only, no adds or removes)", got)
		}
		moves := map[int]int{}
		for _, c := range r.Changes(IterableItemMoved) {
			to, ok := c.Level.MovedTo()
			if !ok {
				t.Fatalf("moved record at %s has no destination", c.Level.Path())
			}
			moves[c.Level.param.(int)] = to
		}
		if want := map[int]int{0: 1, 1: 2, 2: 0}; !cmp.Equal(moves, want) {
			t.Errorf("move destinations: diff (-want +got):\n%s", cmp.Diff(want, moves))
		}
	})

	t.Run("unmatched-elements-add-and-remove", func(t *testing.T) {
		r := mustDiff(t, []any{1, 2}, []any{2, 9}, IterableCompareFunc(byValue))
		if got, want := records(r, IterableItemRemoved), []rec{{Path: "root[0]", Old: 1, New: NotPresent}}; !cmp.Equal(got, want) {
			t.Errorf("removed: diff (-want +got):\n%s", cmp.Diff(want, got))
		}
		if got, want := records(r, IterableItemAdded), []rec{{Path: "root[1]", Old: NotPresent, New: 9}}; !cmp.Equal(got, want) {
			t.Errorf("added: diff (-want +got):\n%s", cmp.Diff(want, got))
		}
	})

	t.Run("cannot-compare-falls-back-to-positional", func(t *testing.T) {
		refuse := func(x, y any, path string) (bool, error) { return false, CannotCompare }
		r := mustDiff(t, []any{1, 2, 3}, []any{3, 1, 2}, IterableCompareFunc(refuse))
		want := []rec{
			{Path: "root[0]", Old: 1, New: 3},
			{Path: "root[1]", Old: 2, New: 1},
			{Path: "root[2]", Old: 3, New: 2},
		}
		if got := records(r, ValuesChanged); !cmp.Equal(got, want) {
			t.Errorf("values changed: diff (-want +got):\n%s", cmp.Diff(want, got))
		}
		if got := len(r.Changes(IterableItemMoved)); got != 0 {
			t.Errorf("positional fallback must not report moves, got %d", got)
		}
	})
}

func TestDiffIgnoreOrder(t *testing.T) {
	t.Run("reordered-is-equal", func(t *testing.T) {
		r := mustDiff(t, []int{3, 1, 2}, []int{1, 2, 3}, IgnoreOrder())
		if !r.Empty() {
			t.Errorf("expected no differences, got %v", r.PathMap())
		}
	})

	t.Run("close-items-pair-up", func(t *testing.T) {
		r := mustDiff(t, []int{1, 2, 3}, []int{1, 2, 4}, IgnoreOrder())
		if got, want := records(r, ValuesChanged), []rec{{Path: "root[2]", Old: 3, New: 4}}; !cmp.Equal(got, want) {
			t.Errorf("values changed: diff (-want +got):\n%s", cmp.Diff(want, got))
		}
	})

	t.Run("distant-items-do-not-pair", func(t *testing.T) {
		r := mustDiff(t, []int{1}, []int{1000}, IgnoreOrder())
		if got := len(records(r, IterableItemAdded)); got != 1 {
			t.Errorf("got %d added records, want 1", got)
		}
		if got := len(records(r, IterableItemRemoved)); got != 1 {
			t.Errorf("got %d removed records, want 1", got)
		}
	})

	t.Run("nested-pairing", func(t *testing.T) {
		a := []any{map[string]any{"id": 1, "value": "old"}, map[string]any{"id": 2, "value": "same"}}
		b := []any{map[string]any{"id": 2, "value": "same"}, map[string]any{"id": 1, "value": "new"}}
		r := mustDiff(t, a, b, IgnoreOrder())
		if got, want := records(r, ValuesChanged), []rec{{Path: "root[0]['value']", Old: "old", New: "new"}}; !cmp.Equal(got, want) {
			t.Errorf("values changed: diff (-want +got):\n%s", cmp.Diff(want, got))
		}
	})
}

func TestDiffReportRepetition(t *testing.T) {
	r := mustDiff(t, []int{1, 3, 1, 4}, []int{4, 4, 1}, IgnoreOrder(), ReportRepetition())

	if got, want := records(r, IterableItemRemoved), []rec{{Path: "root[1]", Old: 3, New: NotPresent}}; !cmp.Equal(got, want) {
		t.Errorf("removed: diff (-want +got):\n%s", cmp.Diff(want, got))
	}
	reps := r.Changes(RepetitionChanged)
	if len(reps) != 2 {
		t.Fatalf("got %d repetition records, want 2", len(reps))
	}
	byOld := map[any]*Change{}
	for _, c := range reps {
		byOld[c.Level.A] = c
	}
	if c := byOld[1]; c == nil || c.OldRepeat != 2 || c.NewRepeat != 1 {
		t.Errorf("repetition of 1: got %+v, want 2 -> 1", c)
	}
	if c := byOld[4]; c == nil || c.OldRepeat != 1 || c.NewRepeat != 2 {
		t.Errorf("repetition of 4: got %+v, want 1 -> 2", c)
	}
}

func TestDiffCycles(t *testing.T) {
	t.Run("same-cyclic-value", func(t *testing.T) {
		a := map[string]any{}
		a["self"] = a
		r := mustDiff(t, a, a)
		if !r.Empty() {
			t.Errorf("expected no differences, got %v", r.PathMap())
		}
	})

	t.Run("equal-cyclic-structures", func(t *testing.T) {
		a := map[string]any{}
		a["self"] = a
		b := map[string]any{}
		b["self"] = b
		r := mustDiff(t, a, b)
		if !r.Empty() {
			t.Errorf("expected no differences, got %v", r.PathMap())
		}
	})

	t.Run("cyclic-with-difference", func(t *testing.T) {
		a := map[string]any{"x": 1}
		a["self"] = a
		b := map[string]any{"x": 2}
		b["self"] = b
		r := mustDiff(t, a, b)
		if got, want := records(r, ValuesChanged), []rec{{Path: "root['x']", Old: 1, New: 2}}; !cmp.Equal(got, want) {
			t.Errorf("values changed: diff (-want +got):\n%s", cmp.Diff(want, got))
		}
	})

	// Self-linked nodes reach the hasher through the unordered matcher; the pointer
	// identity must terminate the hash recursion, not just the comparison.
	t.Run("self-linked-nodes-ignore-order", func(t *testing.T) {
		type node struct {
			V    int
			Next *node
		}
		a := &node{V: 1}
		a.Next = a
		b := &node{V: 1}
		b.Next = b
		r := mustDiff(t, []any{a}, []any{b}, IgnoreOrder())
		if !r.Empty() {
			t.Errorf("expected no differences, got %v", r.PathMap())
		}

		c := &node{V: 2}
		c.Next = c
		r = mustDiff(t, []any{a}, []any{c}, IgnoreOrder())
		if r.Empty() {
			t.Errorf("expected differences between nodes with different values")
		}
	})
}

type account struct {
	Owner   string
	Balance int
}

func TestDiffStructs(t *testing.T) {
	a := account{Owner: "ada", Balance: 100}
	b := account{Owner: "ada", Balance: 250}
	r := mustDiff(t, a, b)
	if got, want := records(r, ValuesChanged), []rec{{Path: "root.Balance", Old: 100, New: 250}}; !cmp.Equal(got, want) {
		t.Errorf("values changed: diff (-want +got):\n%s", cmp.Diff(want, got))
	}
}

type redacted struct {
	Public string
	secret string
}

func (r redacted) DiffFields() map[string]any {
	return map[string]any{"Public": r.Public}
}

func TestDiffFielder(t *testing.T) {
	a := redacted{Public: "same", secret: "one"}
	b := redacted{Public: "same", secret: "two"}
	r := mustDiff(t, a, b)
	if !r.Empty() {
		t.Errorf("expected no differences through DiffFields, got %v", r.PathMap())
	}
}

func TestDiffTypeGroups(t *testing.T) {
	t.Run("grouped-types-compare-by-value", func(t *testing.T) {
		a := map[string]any{"v": int64(7)}
		b := map[string]any{"v": int32(7)}
		group := []reflect.Type{reflect.TypeOf(int64(0)), reflect.TypeOf(int32(0))}
		r := mustDiff(t, a, b, IgnoreTypeInGroups(group), IgnoreNumericTypeChanges())
		if !r.Empty() {
			t.Errorf("expected no differences, got %v", r.PathMap())
		}
	})

	t.Run("nil-in-group-degrades-to-value-change", func(t *testing.T) {
		a := map[string]any{"v": nil}
		b := map[string]any{"v": 5}
		group := []reflect.Type{nil, reflect.TypeOf(0)}
		r := mustDiff(t, a, b, IgnoreTypeInGroups(group))
		if got, want := records(r, ValuesChanged), []rec{{Path: "root['v']", Old: nil, New: 5}}; !cmp.Equal(got, want) {
			t.Errorf("diff (-want +got):\n%s", cmp.Diff(want, got))
		}
		if got := len(records(r, TypeChanged)); got != 0 {
			t.Errorf("got %d type_changes records, want 0", got)
		}
	})
}

func TestDiffExcludeAndInclude(t *testing.T) {
	a := map[string]any{"keep": 1, "skip": 2, "re": 3}
	b := map[string]any{"keep": 9, "skip": 8, "re": 7}

	t.Run("exclude-paths", func(t *testing.T) {
		r := mustDiff(t, a, b, ExcludePaths("root['skip']"))
		if got, want := len(records(r, ValuesChanged)), 2; got != want {
			t.Errorf("got %d records, want %d", got, want)
		}
	})

	t.Run("exclude-regex", func(t *testing.T) {
		r := mustDiff(t, a, b, ExcludeRegexPaths(`\['(skip|re)'\]`))
		if got, want := records(r, ValuesChanged), []rec{{Path: "root['keep']", Old: 1, New: 9}}; !cmp.Equal(got, want) {
			t.Errorf("diff (-want +got):\n%s", cmp.Diff(want, got))
		}
	})

	t.Run("include-paths", func(t *testing.T) {
		r := mustDiff(t, a, b, IncludePaths("root['keep']"))
		if got, want := records(r, ValuesChanged), []rec{{Path: "root['keep']", Old: 1, New: 9}}; !cmp.Equal(got, want) {
			t.Errorf("diff (-want +got):\n%s", cmp.Diff(want, got))
		}
	})

	t.Run("exclude-callback", func(t *testing.T) {
		r := mustDiff(t, a, b, ExcludeObjCallback(func(v any, path string) bool {
			return strings.Contains(path, "skip")
		}))
		if got, want := len(records(r, ValuesChanged)), 2; got != want {
			t.Errorf("got %d records, want %d", got, want)
		}
	})
}

func TestDiffMaxDiffs(t *testing.T) {
	a := make(map[int]any, 100)
	b := make(map[int]any, 100)
	for i := 0; i < 100; i++ {
		a[i] = i
		b[i] = i + 1
	}
	r := mustDiff(t, a, b, MaxDiffs(10))
	if !r.Stats().MaxDiffLimitReached {
		t.Errorf("expected the max diffs budget to be reported as reached")
	}
	if got := r.Len(); got > 11 {
		t.Errorf("got %d records, want at most 11", got)
	}
}

func TestDiffGroupBy(t *testing.T) {
	a := []any{
		map[string]any{"id": "AA", "name": "Joe", "last_name": "Nobody"},
		map[string]any{"id": "BB", "name": "James", "last_name": "Blue"},
	}
	b := []any{
		map[string]any{"id": "BB", "name": "James", "last_name": "Brown"},
		map[string]any{"id": "AA", "name": "Joe", "last_name": "Nobody"},
	}
	r := mustDiff(t, a, b, GroupBy("id"))
	if got, want := records(r, ValuesChanged), []rec{{Path: "root['BB']['last_name']", Old: "Blue", New: "Brown"}}; !cmp.Equal(got, want) {
		t.Errorf("diff (-want +got):\n%s", cmp.Diff(want, got))
	}
}

func TestDiffDeepDistance(t *testing.T) {
	r := mustDiff(t, []int{1, 2, 3}, []int{1, 2, 3}, GetDeepDistance())
	if r.DeepDistance != 0 {
		t.Errorf("distance of equal values = %v, want 0", r.DeepDistance)
	}
	r = mustDiff(t, map[string]any{"a": 1, "b": 2}, map[string]any{"a": 1, "b": 3}, GetDeepDistance())
	if r.DeepDistance <= 0 || r.DeepDistance > 1 {
		t.Errorf("distance = %v, want within (0, 1]", r.DeepDistance)
	}
}

func TestDiffStatsIdempotentWithCache(t *testing.T) {
	a := []any{
		map[string]any{"k": "a", "v": 1},
		map[string]any{"k": "b", "v": 2},
		map[string]any{"k": "c", "v": 3},
	}
	b := []any{
		map[string]any{"k": "c", "v": 4},
		map[string]any{"k": "a", "v": 1},
		map[string]any{"k": "b", "v": 5},
	}
	plain := mustDiff(t, a, b, IgnoreOrder())
	cached := mustDiff(t, a, b, IgnoreOrder(), CacheSize(500))
	if want, got := plain.PathMap(), cached.PathMap(); !cmp.Equal(got, want) {
		t.Errorf("cache changed the result: diff (-want +got):\n%s", cmp.Diff(want, got))
	}
}

// Two pairing problems over the same hashes split differently between the added and removed
// sides must not share a cache entry.
func TestDiffCacheKeyedByBothSides(t *testing.T) {
	a := map[string]any{
		"x": []any{},
		"y": []any{1, 2, 3, 4, 5, 6, 7, 8, 101},
	}
	b := map[string]any{
		"x": []any{100, 101},
		"y": []any{1, 2, 3, 4, 5, 6, 7, 8, 100},
	}
	plain := mustDiff(t, a, b, IgnoreOrder())
	cached := mustDiff(t, a, b, IgnoreOrder(), CacheSize(500))
	if want, got := plain.PathMap(), cached.PathMap(); !cmp.Equal(got, want) {
		t.Errorf("cache changed the result: diff (-want +got):\n%s", cmp.Diff(want, got))
	}
	if got, want := records(cached, ValuesChanged), []rec{{Path: "root['y'][8]", Old: 101, New: 100}}; !cmp.Equal(got, want) {
		t.Errorf("values changed: diff (-want +got):\n%s", cmp.Diff(want, got))
	}
}

func TestPairsCacheKeyFraming(t *testing.T) {
	h1, h2 := deephash.Key(1), deephash.Key(2)
	if pairsCacheKey([]deephash.Key{h1, h2}, nil) == pairsCacheKey([]deephash.Key{h1}, []deephash.Key{h2}) {
		t.Errorf("keys collide when a hash moves across the added/removed boundary")
	}
	if pairsCacheKey([]deephash.Key{h1, h2}, nil) != pairsCacheKey([]deephash.Key{h1, h2}, nil) {
		t.Errorf("key is not stable for identical inputs")
	}
}

func TestMergeMutualAddRemoves(t *testing.T) {
	tree := newResultTree()
	parent := newRootLevel(map[string]any{}, map[string]any{})
	added := parent.branch(NotPresent, 5, RelMapKey, "k")
	removed := parent.branch(3, NotPresent, RelMapKey, "k")
	tree.add(&Change{Kind: DictItemAdded, Level: added})
	tree.add(&Change{Kind: DictItemRemoved, Level: removed})

	tree.mergeMutualAddRemoves()

	if n := tree.len(); n != 1 {
		t.Fatalf("tree size = %d, want 1", n)
	}
	cs := tree.groups[ValuesChanged]
	if len(cs) != 1 {
		t.Fatalf("got %d values_changed records, want 1", len(cs))
	}
	if cs[0].Level.A != 3 || cs[0].Level.B != 5 {
		t.Errorf("merged record = %v -> %v, want 3 -> 5", cs[0].Level.A, cs[0].Level.B)
	}
}

func TestDiffInvalidOptions(t *testing.T) {
	if _, err := Diff(1, 2, CutoffDistanceForPairs(1.5)); err == nil {
		t.Errorf("expected an error for an out-of-range cutoff")
	}
	if _, err := Diff(1, 2, Verbose(7)); err == nil {
		t.Errorf("expected an error for an out-of-range verbose level")
	}
	if _, err := Diff(1, 2, SignificantDigits(-2)); err == nil {
		t.Errorf("expected an error for negative significant digits")
	}
}
