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
	"fmt"
	"reflect"
	"sort"
)

// DeltaOp is one replayable change, addressed by structured path segments rather than a
// rendered path string.
type DeltaOp struct {
	Kind     string        `json:"kind"`
	Path     []PathSegment `json:"path"`
	Old      any           `json:"old,omitempty"`
	New      any           `json:"new,omitempty"`
	NewIndex int           `json:"new_index,omitempty"`
}

// Delta is a replayable form of a report: applying it to the left-hand value yields the
// right-hand one, for JSON-like data.
type Delta struct {
	Ops []DeltaOp `json:"ops"`
}

// Delta extracts the replayable changes from the report. Repetition records are carried for
// completeness but cannot be applied; Apply reports them as an error.
func (r *Report) Delta() *Delta {
	d := &Delta{}
	emit := func(k Kind, f func(c *Change) DeltaOp) {
		for _, c := range r.tree.groups[k] {
			d.Ops = append(d.Ops, f(c))
		}
	}
	valueOp := func(c *Change) DeltaOp {
		return DeltaOp{Kind: c.Kind.String(), Path: c.Level.Segments(), Old: c.Level.A, New: c.Level.B}
	}
	emit(ValuesChanged, valueOp)
	emit(TypeChanged, valueOp)
	emit(DictItemAdded, func(c *Change) DeltaOp {
		return DeltaOp{Kind: c.Kind.String(), Path: c.Level.Segments(), New: c.Level.B}
	})
	emit(DictItemRemoved, func(c *Change) DeltaOp {
		return DeltaOp{Kind: c.Kind.String(), Path: c.Level.Segments(), Old: c.Level.A}
	})
	emit(IterableItemAdded, func(c *Change) DeltaOp {
		return DeltaOp{Kind: c.Kind.String(), Path: c.Level.Segments(), New: c.Level.B}
	})
	emit(IterableItemRemoved, func(c *Change) DeltaOp {
		return DeltaOp{Kind: c.Kind.String(), Path: c.Level.Segments(), Old: c.Level.A}
	})
	emit(IterableItemMoved, func(c *Change) DeltaOp {
		to, _ := c.Level.MovedTo()
		return DeltaOp{Kind: c.Kind.String(), Path: c.Level.Segments(), New: c.Level.B, NewIndex: to}
	})
	emit(SetItemAdded, func(c *Change) DeltaOp {
		return DeltaOp{Kind: c.Kind.String(), Path: c.Level.Segments(), New: c.Level.B}
	})
	emit(SetItemRemoved, func(c *Change) DeltaOp {
		return DeltaOp{Kind: c.Kind.String(), Path: c.Level.Segments(), Old: c.Level.A}
	})
	emit(RepetitionChanged, func(c *Change) DeltaOp {
		return DeltaOp{Kind: c.Kind.String(), Path: c.Level.Segments(), Old: c.OldRepeat, New: c.NewRepeat}
	})
	return d
}

// Apply replays the delta onto target and returns the patched value. The target is copied,
// never mutated. Apply understands JSON-like data: maps, slices and scalars, plus set
// collections for set records.
func (d *Delta) Apply(target any) (any, error) {
	root := copyTree(target)

	var scalarOps, mapOps []DeltaOp
	seqOps := make(map[string][]DeltaOp) // keyed by rendered parent path
	seqParents := make(map[string][]PathSegment)
	var setOps []DeltaOp

	for _, op := range d.Ops {
		switch op.Kind {
		case "values_changed", "type_changes":
			scalarOps = append(scalarOps, op)
		case "dictionary_item_added", "dictionary_item_removed":
			mapOps = append(mapOps, op)
		case "iterable_item_added", "iterable_item_removed", "iterable_item_moved":
			parent := op.Path[:len(op.Path)-1]
			key := renderSegments(parent)
			seqOps[key] = append(seqOps[key], op)
			seqParents[key] = parent
		case "set_item_added", "set_item_removed":
			setOps = append(setOps, op)
		default:
			return nil, fmt.Errorf("delta: cannot apply %q records", op.Kind)
		}
	}

	var err error
	for _, op := range scalarOps {
		if root, err = setAt(root, op.Path, op.New); err != nil {
			return nil, err
		}
	}
	for _, op := range mapOps {
		if op.Kind == "dictionary_item_added" {
			root, err = setAt(root, op.Path, op.New)
		} else {
			root, err = deleteAt(root, op.Path)
		}
		if err != nil {
			return nil, err
		}
	}
	parentKeys := make([]string, 0, len(seqOps))
	for k := range seqOps {
		parentKeys = append(parentKeys, k)
	}
	sort.Strings(parentKeys)
	for _, key := range parentKeys {
		if root, err = applySequenceOps(root, seqParents[key], seqOps[key]); err != nil {
			return nil, err
		}
	}
	for _, op := range setOps {
		if root, err = applySetOp(root, op); err != nil {
			return nil, err
		}
	}
	return root, nil
}

func renderSegments(segs []PathSegment) string {
	s := "root"
	for _, seg := range segs {
		s += renderSegment(seg.Rel, seg.Param)
	}
	return s
}

// copyTree deep-copies the JSON-like skeleton of x. Scalars and unknown types are shared,
// which is safe because they are never mutated in place.
func copyTree(x any) any {
	switch v := x.(type) {
	case map[string]any:
		m := make(map[string]any, len(v))
		for k, e := range v {
			m[k] = copyTree(e)
		}
		return m
	case map[any]any:
		m := make(map[any]any, len(v))
		for k, e := range v {
			m[k] = copyTree(e)
		}
		return m
	case []any:
		s := make([]any, len(v))
		for i, e := range v {
			s[i] = copyTree(e)
		}
		return s
	default:
		// Set collections get mutated by set records, so they must be copied too.
		rv := reflect.ValueOf(x)
		if rv.Kind() == reflect.Map && rv.Type().Elem() == reflect.TypeOf(struct{}{}) {
			m := reflect.MakeMapWithSize(rv.Type(), rv.Len())
			iter := rv.MapRange()
			for iter.Next() {
				m.SetMapIndex(iter.Key(), iter.Value())
			}
			return m.Interface()
		}
		return x
	}
}

// containerAt walks root along segs and returns the container there.
func containerAt(root any, segs []PathSegment) (any, error) {
	node := root
	for _, seg := range segs {
		next, err := childOf(node, seg)
		if err != nil {
			return nil, err
		}
		node = next
	}
	return node, nil
}

func childOf(node any, seg PathSegment) (any, error) {
	switch c := node.(type) {
	case map[string]any:
		k, ok := seg.Param.(string)
		if !ok {
			return nil, fmt.Errorf("delta: key %v is not a string key", seg.Param)
		}
		v, ok := c[k]
		if !ok {
			return nil, fmt.Errorf("delta: key %q not found", k)
		}
		return v, nil
	case map[any]any:
		v, ok := c[seg.Param]
		if !ok {
			return nil, fmt.Errorf("delta: key %v not found", seg.Param)
		}
		return v, nil
	case []any:
		i, ok := seg.Param.(int)
		if !ok || i < 0 || i >= len(c) {
			return nil, fmt.Errorf("delta: index %v out of range", seg.Param)
		}
		return c[i], nil
	default:
		return nil, fmt.Errorf("delta: cannot descend into %T", node)
	}
}

// setAt assigns value at the path and returns the (possibly replaced) root.
func setAt(root any, segs []PathSegment, value any) (any, error) {
	if len(segs) == 0 {
		return value, nil
	}
	parent, err := containerAt(root, segs[:len(segs)-1])
	if err != nil {
		return nil, err
	}
	last := segs[len(segs)-1]
	switch c := parent.(type) {
	case map[string]any:
		k, ok := last.Param.(string)
		if !ok {
			return nil, fmt.Errorf("delta: key %v is not a string key", last.Param)
		}
		c[k] = value
	case map[any]any:
		c[last.Param] = value
	case []any:
		i, ok := last.Param.(int)
		if !ok || i < 0 || i >= len(c) {
			return nil, fmt.Errorf("delta: index %v out of range", last.Param)
		}
		c[i] = value
	default:
		return nil, fmt.Errorf("delta: cannot assign into %T", parent)
	}
	return root, nil
}

func deleteAt(root any, segs []PathSegment) (any, error) {
	if len(segs) == 0 {
		return nil, fmt.Errorf("delta: cannot delete the root")
	}
	parent, err := containerAt(root, segs[:len(segs)-1])
	if err != nil {
		return nil, err
	}
	last := segs[len(segs)-1]
	switch c := parent.(type) {
	case map[string]any:
		k, ok := last.Param.(string)
		if !ok {
			return nil, fmt.Errorf("delta: key %v is not a string key", last.Param)
		}
		delete(c, k)
	case map[any]any:
		delete(c, last.Param)
	default:
		return nil, fmt.Errorf("delta: cannot delete from %T", parent)
	}
	return root, nil
}

// applySequenceOps patches one sequence: removals and moves leave first, from the highest
// index down, then insertions enter from the lowest index up, so recorded indexes stay valid
// while the slice shifts.
func applySequenceOps(root any, parent []PathSegment, ops []DeltaOp) (any, error) {
	node, err := containerAt(root, parent)
	if err != nil {
		return nil, err
	}
	seq, ok := node.([]any)
	if !ok {
		return nil, fmt.Errorf("delta: %s is not a sequence", renderSegments(parent))
	}

	type insertion struct {
		index int
		value any
	}
	var removals []int
	var insertions []insertion
	for _, op := range ops {
		idx, ok := op.Path[len(op.Path)-1].Param.(int)
		if !ok {
			return nil, fmt.Errorf("delta: sequence op without an index at %s", renderSegments(op.Path))
		}
		switch op.Kind {
		case "iterable_item_removed":
			removals = append(removals, idx)
		case "iterable_item_added":
			insertions = append(insertions, insertion{index: idx, value: op.New})
		case "iterable_item_moved":
			removals = append(removals, idx)
			insertions = append(insertions, insertion{index: op.NewIndex, value: op.New})
		}
	}

	sort.Sort(sort.Reverse(sort.IntSlice(removals)))
	for _, idx := range removals {
		if idx < 0 || idx >= len(seq) {
			return nil, fmt.Errorf("delta: removal index %d out of range at %s", idx, renderSegments(parent))
		}
		seq = append(seq[:idx], seq[idx+1:]...)
	}
	sort.Slice(insertions, func(i, j int) bool { return insertions[i].index < insertions[j].index })
	for _, ins := range insertions {
		idx := ins.index
		if idx < 0 || idx > len(seq) {
			idx = len(seq)
		}
		seq = append(seq[:idx:idx], append([]any{ins.value}, seq[idx:]...)...)
	}
	return setAt(root, parent, seq)
}

// applySetOp adds or removes a member of a set collection through reflection, since set
// element types vary.
func applySetOp(root any, op DeltaOp) (any, error) {
	// The last segment is the member itself, which has no address inside the set.
	parent, err := containerAt(root, op.Path[:len(op.Path)-1])
	if err != nil {
		return nil, err
	}
	v := reflect.ValueOf(parent)
	if v.Kind() != reflect.Map || v.Type().Elem() != reflect.TypeOf(struct{}{}) {
		return nil, fmt.Errorf("delta: %s is not a set collection", renderSegments(op.Path))
	}
	if op.Kind == "set_item_added" {
		item := reflect.ValueOf(op.New)
		if !item.Type().AssignableTo(v.Type().Key()) {
			if !item.Type().ConvertibleTo(v.Type().Key()) {
				return nil, fmt.Errorf("delta: set item %v does not fit key type %s", op.New, v.Type().Key())
			}
			item = item.Convert(v.Type().Key())
		}
		v.SetMapIndex(item, reflect.ValueOf(struct{}{}))
	} else {
		item := reflect.ValueOf(op.Old)
		if item.IsValid() && item.Type().ConvertibleTo(v.Type().Key()) {
			v.SetMapIndex(item.Convert(v.Type().Key()), reflect.Value{})
		}
	}
	return root, nil
}
