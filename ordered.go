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
	"errors"
	"reflect"

	"go.uber.org/zap"

	"github.com/AaronDMarasco/deepdiff/internal/deephash"
	"github.com/AaronDMarasco/deepdiff/internal/kind"
	"github.com/AaronDMarasco/deepdiff/internal/opalign"
)

func (e *engine) diffIterable(lv *Level, va, vb reflect.Value, anc ancestorSet, tree *resultTree) {
	if e.orderIgnored(lv) {
		e.diffUnordered(lv, va, vb, anc, tree)
		return
	}
	e.diffOrdered(lv, sliceItems(va), sliceItems(vb), anc, tree)
}

func (e *engine) orderIgnored(lv *Level) bool {
	if f := e.rc.cfg.IgnoreOrderFunc; f != nil {
		return f(lv.Path())
	}
	return e.rc.cfg.IgnoreOrder
}

func sliceItems(v reflect.Value) []any {
	items := make([]any, v.Len())
	for i := range items {
		items[i] = v.Index(i).Interface()
	}
	return items
}

// diffOrdered compares two positional sequences. When every element is hashable, two
// competing strategies run: alignment by content hash, and positional one-by-one pairing.
// The one producing fewer change records wins, ties favor positional pairing.
func (e *engine) diffOrdered(lv *Level, items1, items2 []any, anc ancestorSet, tree *resultTree) {
	cfg := e.rc.cfg
	if cfg.ZipOrderedIterables || cfg.IterableCompareFunc != nil {
		e.diffByPairs(lv, items1, items2, anc, tree)
		return
	}
	keys1, ok1 := e.hashKeys(items1)
	keys2, ok2 := e.hashKeys(items2)
	if !ok1 || !ok2 {
		e.diffByPairs(lv, items1, items2, anc, tree)
		return
	}

	pass1 := newResultTree()
	ops := e.diffByAlignment(lv, items1, items2, keys1, keys2, anc, pass1)
	chosen := pass1
	if pass1.len() > 1 {
		pass2 := newResultTree()
		e.diffByPairs(lv, items1, items2, anc, pass2)
		if pass1.len() >= pass2.len() {
			chosen = pass2
		} else {
			e.opcodes[lv.Path()] = ops
		}
	}
	tree.mergeFrom(chosen)
}

// hashKeys maps scalar elements to their content hashes. Container elements disqualify the
// whole sequence: their hashes are order-insensitive, which would hide nested reorders from
// a positional comparison.
func (e *engine) hashKeys(items []any) ([]deephash.Key, bool) {
	keys := make([]deephash.Key, len(items))
	for i, it := range items {
		if !kind.Of(kind.ValueOf(it)).Scalar() {
			return nil, false
		}
		k, err := e.rc.hasher.Hash(it)
		if err != nil {
			return nil, false
		}
		keys[i] = k
	}
	return keys, true
}

// diffByAlignment aligns the two sequences by content hash and reports each non-equal
// segment: deletions, insertions, and element pairs for replaced ranges. It returns the
// alignment segments with values filled in.
func (e *engine) diffByAlignment(lv *Level, items1, items2 []any, keys1, keys2 []deephash.Key, anc ancestorSet, tree *resultTree) []Opcode {
	ops := opalign.Opcodes(keys1, keys2)
	out := make([]Opcode, 0, len(ops))
	for _, op := range ops {
		oc := Opcode{
			Tag:     op.Tag.String(),
			OldFrom: op.I1, OldTo: op.I2,
			NewFrom: op.J1, NewTo: op.J2,
		}
		switch op.Tag {
		case opalign.Delete:
			for i := op.I1; i < op.I2; i++ {
				child := lv.branch(items1[i], NotPresent, RelIndex, i)
				e.report(&Change{Kind: IterableItemRemoved, Level: child}, tree)
			}
			oc.OldValues = append(oc.OldValues, items1[op.I1:op.I2]...)
		case opalign.Insert:
			for j := op.J1; j < op.J2; j++ {
				child := lv.branch(NotPresent, items2[j], RelIndex, j)
				e.report(&Change{Kind: IterableItemAdded, Level: child}, tree)
			}
			oc.NewValues = append(oc.NewValues, items2[op.J1:op.J2]...)
		case opalign.Replace:
			e.diffPairsRange(lv, items1[op.I1:op.I2], items2[op.J1:op.J2], op.I1, op.J1, anc, tree)
			oc.OldValues = append(oc.OldValues, items1[op.I1:op.I2]...)
			oc.NewValues = append(oc.NewValues, items2[op.J1:op.J2]...)
		}
		out = append(out, oc)
	}
	return out
}

// diffByPairs matches the two sequences element by element, positionally or through the
// configured matcher, and recurses into each pair.
func (e *engine) diffByPairs(lv *Level, items1, items2 []any, anc ancestorSet, tree *resultTree) {
	if f := e.rc.cfg.IterableCompareFunc; f != nil {
		pairs, err := e.matchedPairs(lv, items1, items2, f)
		if err == nil {
			e.walkPairs(lv, pairs, true, anc, tree)
			return
		}
		if !errors.Is(err, CannotCompare) {
			e.rc.log.Error("iterable compare func failed, falling back to positional matching",
				zap.Error(err))
		}
	}
	e.diffPairsRange(lv, items1, items2, 0, 0, anc, tree)
}

// diffPairsRange zips two (sub)sequences positionally. off1 and off2 shift the reported
// indexes so segment pairs keep their position in the full sequence.
func (e *engine) diffPairsRange(lv *Level, items1, items2 []any, off1, off2 int, anc ancestorSet, tree *resultTree) {
	n := len(items1)
	if len(items2) > n {
		n = len(items2)
	}
	pairs := make([]itemPair, 0, n)
	for k := 0; k < n; k++ {
		p := itemPair{i: -1, j: -1, x: NotPresent, y: NotPresent}
		if k < len(items1) {
			p.i = off1 + k
			p.x = items1[k]
		}
		if k < len(items2) {
			p.j = off2 + k
			p.y = items2[k]
		}
		pairs = append(pairs, p)
	}
	e.walkPairs(lv, pairs, false, anc, tree)
}

type itemPair struct {
	i, j int
	x, y any
}

func (e *engine) walkPairs(lv *Level, pairs []itemPair, detectMoves bool, anc ancestorSet, tree *resultTree) {
	for _, p := range pairs {
		if _, absent := p.y.(notPresentType); absent {
			child := lv.branch(p.x, NotPresent, RelIndex, p.i)
			e.report(&Change{Kind: IterableItemRemoved, Level: child}, tree)
			continue
		}
		if _, absent := p.x.(notPresentType); absent {
			child := lv.branch(NotPresent, p.y, RelIndex, p.j)
			e.report(&Change{Kind: IterableItemAdded, Level: child}, tree)
			continue
		}
		if detectMoves && p.i != p.j {
			moved := lv.branch(p.x, p.y, RelIndex, p.i)
			moved.param2 = p.j
			e.report(&Change{Kind: IterableItemMoved, Level: moved}, tree)
		}
		child := lv.branch(p.x, p.y, RelIndex, p.i)
		child.param2 = p.j
		e.descend(child, anc, tree)
	}
}

// matchedPairs pairs elements through the user's matcher: each left element takes the first
// unclaimed right element the matcher accepts. Unclaimed elements on either side become
// removals and additions.
func (e *engine) matchedPairs(lv *Level, items1, items2 []any, f func(x, y any, path string) (bool, error)) ([]itemPair, error) {
	path := lv.Path()
	claimed := make([]bool, len(items2))
	var pairs []itemPair
	for i, x := range items1 {
		found := false
		for j, y := range items2 {
			if claimed[j] {
				continue
			}
			ok, err := f(x, y, path)
			if err != nil {
				return nil, err
			}
			if ok {
				claimed[j] = true
				pairs = append(pairs, itemPair{i: i, j: j, x: x, y: y})
				found = true
				break
			}
		}
		if !found {
			pairs = append(pairs, itemPair{i: i, j: -1, x: x, y: NotPresent})
		}
	}
	for j, y := range items2 {
		if !claimed[j] {
			pairs = append(pairs, itemPair{i: -1, j: j, x: NotPresent, y: y})
		}
	}
	return pairs, nil
}
