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
	"time"

	"github.com/AaronDMarasco/deepdiff/internal/introspect"
	"github.com/AaronDMarasco/deepdiff/internal/kind"
)

// roughDistance estimates how different x and y are on a 0..1 scale, where 0 is equal. The
// estimate steers pairing only, it never shows up in reports. Numbers get a closed-form
// ratio; everything else runs a probe comparison and relates the change volume to the item
// count of both values.
func (e *engine) roughDistance(x, y any) float64 {
	vx := kind.ValueOf(x)
	vy := kind.ValueOf(y)
	kx := kind.Of(vx)
	ky := kind.Of(vy)
	max := e.rc.cfg.CutoffDistanceForPairs
	if kx == kind.Number && ky == kind.Number {
		return numbersDistance(floatOf(vx), floatOf(vy), max)
	}
	if kx == kind.Time && ky == kind.Time {
		t1 := vx.Interface().(time.Time)
		t2 := vy.Interface().(time.Time)
		return numbersDistance(float64(t1.UnixNano()), float64(t2.UnixNano()), max)
	}

	sub := &engine{rc: e.rc, opcodes: make(map[string][]Opcode)}
	scratch := newResultTree()
	sub.diffLevel(newRootLevel(x, y), nil, scratch)
	return distanceOfTree(scratch, x, y)
}

func distanceOfTree(tree *resultTree, x, y any) float64 {
	w := changeWeight(tree)
	if w == 0 {
		return 0
	}
	total := deepItemCount(x) + deepItemCount(y)
	if total == 0 {
		return 0
	}
	d := float64(w) / float64(total)
	if d > 1 {
		return 1
	}
	return d
}

// rootDistance gives the report's deep distance, reusing the already built tree instead of
// probing again.
func (e *engine) rootDistance(root *Level, tree *resultTree) float64 {
	vx := kind.ValueOf(root.A)
	vy := kind.ValueOf(root.B)
	if kind.Of(vx) == kind.Number && kind.Of(vy) == kind.Number {
		return numbersDistance(floatOf(vx), floatOf(vy), 1)
	}
	return distanceOfTree(tree, root.A, root.B)
}

// numbersDistance is abs(a-b) / (abs(a)+abs(b)), capped at max. Equal inputs are at
// distance 0, inputs that cancel out exactly are the farthest apart.
func numbersDistance(a, b, max float64) float64 {
	if a == b {
		return 0
	}
	divisor := math.Abs(a) + math.Abs(b)
	if divisor == 0 || math.IsNaN(divisor) || math.IsInf(divisor, 0) {
		return max
	}
	return math.Min(max, math.Abs(a-b)/divisor)
}

// changeWeight sizes a result tree for distance purposes: additions and removals weigh the
// deep item count of the value involved, everything else weighs one.
func changeWeight(tree *resultTree) int {
	w := 0
	for k, cs := range tree.groups {
		for _, c := range cs {
			switch k {
			case DictItemAdded, IterableItemAdded, SetItemAdded, AttributeAdded:
				w += deepItemCount(c.Level.B)
			case DictItemRemoved, IterableItemRemoved, SetItemRemoved, AttributeRemoved:
				w += deepItemCount(c.Level.A)
			default:
				w++
			}
		}
	}
	return w
}

// deepItemCount counts the leaves of a value: scalars count one, containers count their
// elements recursively plus one per map key. Cycles are counted once.
func deepItemCount(x any) int {
	return countItems(kind.ValueOf(x), make(map[uintptr]struct{}))
}

func countItems(v reflect.Value, seen map[uintptr]struct{}) int {
	if !v.IsValid() {
		return 1
	}
	if id, ok := kind.Identity(v); ok {
		if _, dup := seen[id]; dup {
			return 0
		}
		seen[id] = struct{}{}
	}
	switch kind.Of(v) {
	case kind.Map:
		n := 0
		iter := v.MapRange()
		for iter.Next() {
			n += 1 + countItems(kind.Unwrap(iter.Value()), seen)
		}
		return n
	case kind.Set:
		n := 0
		iter := v.MapRange()
		for iter.Next() {
			n += countItems(kind.Unwrap(iter.Key()), seen)
		}
		return n
	case kind.Slice:
		n := 0
		for i := 0; i < v.Len(); i++ {
			n += countItems(kind.Unwrap(v.Index(i)), seen)
		}
		return n
	case kind.Struct:
		fields, ok := introspect.Fields(v)
		if !ok {
			return 1
		}
		n := 0
		for _, fv := range fields {
			n += 1 + countItems(kind.ValueOf(fv), seen)
		}
		return n
	default:
		return 1
	}
}
