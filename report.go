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

import "slices"

// Kind identifies the type of a reported change.
type Kind int

const (
	TypeChanged Kind = iota
	ValuesChanged
	DictItemAdded
	DictItemRemoved
	IterableItemAdded
	IterableItemRemoved
	IterableItemMoved
	SetItemAdded
	SetItemRemoved
	RepetitionChanged
	AttributeAdded
	AttributeRemoved
	Unprocessed
	numKinds
)

var kindNames = [...]string{
	TypeChanged:         "type_changes",
	ValuesChanged:       "values_changed",
	DictItemAdded:       "dictionary_item_added",
	DictItemRemoved:     "dictionary_item_removed",
	IterableItemAdded:   "iterable_item_added",
	IterableItemRemoved: "iterable_item_removed",
	IterableItemMoved:   "iterable_item_moved",
	SetItemAdded:        "set_item_added",
	SetItemRemoved:      "set_item_removed",
	RepetitionChanged:   "repetition_change",
	AttributeAdded:      "attribute_added",
	AttributeRemoved:    "attribute_removed",
	Unprocessed:         "unprocessed",
}

func (k Kind) String() string {
	if int(k) < len(kindNames) {
		return kindNames[k]
	}
	return "unknown"
}

// Change is one reported difference. A change is immutable once reported.
type Change struct {
	Kind  Kind
	Level *Level

	// Repetition details, set only for RepetitionChanged.
	OldRepeat, NewRepeat   int
	OldIndexes, NewIndexes []int

	// Unified line diff for multiline string changes, when one could be produced.
	Diff string

	// Extra carries information attached by custom operators.
	Extra map[string]any
}

// Opcode is one alignment segment recorded for an ordered sequence: equal, replace, delete or
// insert. Old indexes address the left sequence, new indexes the right one.
type Opcode struct {
	Tag       string `json:"tag"`
	OldFrom   int    `json:"old_from"`
	OldTo     int    `json:"old_to"`
	NewFrom   int    `json:"new_from"`
	NewTo     int    `json:"new_to"`
	OldValues []any  `json:"old_values,omitempty"`
	NewValues []any  `json:"new_values,omitempty"`
}

// resultTree accumulates change records grouped by kind, in insertion order.
type resultTree struct {
	groups map[Kind][]*Change
	n      int
}

func newResultTree() *resultTree {
	return &resultTree{groups: make(map[Kind][]*Change)}
}

func (t *resultTree) add(c *Change) {
	t.groups[c.Kind] = append(t.groups[c.Kind], c)
	t.n++
}

func (t *resultTree) len() int { return t.n }

// mergeFrom moves every record of o into t.
func (t *resultTree) mergeFrom(o *resultTree) {
	for k, cs := range o.groups {
		t.groups[k] = append(t.groups[k], cs...)
		t.n += len(cs)
	}
}

// mergeMutualAddRemoves rewrites an add/remove pair under the same map key or attribute into a
// single values_changed record. Only applied when repetition reporting is off.
func (t *resultTree) mergeMutualAddRemoves() {
	for _, pair := range [...][2]Kind{
		{DictItemAdded, DictItemRemoved},
		{AttributeAdded, AttributeRemoved},
	} {
		addedKind, removedKind := pair[0], pair[1]
		added := t.groups[addedKind]
		removed := t.groups[removedKind]
		if len(added) == 0 || len(removed) == 0 {
			continue
		}
		byPath := make(map[string]*Change, len(added))
		for _, c := range added {
			byPath[c.Level.Path()] = c
		}
		var keptRemoved []*Change
		merged := make(map[string]bool)
		for _, rc := range removed {
			ac, ok := byPath[rc.Level.Path()]
			if !ok {
				keptRemoved = append(keptRemoved, rc)
				continue
			}
			lv := *ac.Level
			lv.A = rc.Level.A
			lv.B = ac.Level.B
			t.add(&Change{Kind: ValuesChanged, Level: &lv})
			merged[rc.Level.Path()] = true
		}
		if len(merged) > 0 {
			kept := added[:0:0]
			for _, c := range added {
				if !merged[c.Level.Path()] {
					kept = append(kept, c)
				}
			}
			t.setGroup(addedKind, kept)
			t.setGroup(removedKind, keptRemoved)
		}
	}
}

func (t *resultTree) setGroup(k Kind, cs []*Change) {
	t.n -= len(t.groups[k]) - len(cs)
	if len(cs) == 0 {
		delete(t.groups, k)
	} else {
		t.groups[k] = cs
	}
}

// Report is the result of a comparison.
type Report struct {
	tree    *resultTree
	stats   Stats
	opcodes map[string][]Opcode

	// DeepDistance is the normalized rough distance of the two roots, filled only when
	// requested with [GetDeepDistance].
	DeepDistance float64

	verbose int
}

// Empty reports whether no difference was found.
func (r *Report) Empty() bool { return r.tree.len() == 0 }

// Len returns the total number of change records.
func (r *Report) Len() int { return r.tree.len() }

// Changes returns the change records of one kind, in the order they were discovered.
func (r *Report) Changes(k Kind) []*Change { return r.tree.groups[k] }

// Kinds returns the kinds that have at least one record, in a fixed order.
func (r *Report) Kinds() []Kind {
	var ks []Kind
	for k := Kind(0); k < numKinds; k++ {
		if len(r.tree.groups[k]) > 0 {
			ks = append(ks, k)
		}
	}
	return ks
}

// Stats returns the run counters, including whether a soft budget truncated the result.
func (r *Report) Stats() Stats { return r.stats }

// Opcodes returns the recorded sequence alignments, keyed by the path of the sequence.
func (r *Report) Opcodes() map[string][]Opcode { return r.opcodes }

// PathMap renders the report as a path-keyed map for human display, mirroring the per-kind
// grouping. Scalar old/new values are included at verbose level >= 1.
func (r *Report) PathMap() map[string]map[string]any {
	out := make(map[string]map[string]any)
	for k, cs := range r.tree.groups {
		group := make(map[string]any, len(cs))
		for _, c := range cs {
			group[c.Level.Path()] = r.renderChange(c)
		}
		out[k.String()] = group
	}
	return out
}

func (r *Report) renderChange(c *Change) any {
	switch c.Kind {
	case ValuesChanged, TypeChanged:
		m := map[string]any{"old_value": c.Level.A, "new_value": c.Level.B}
		if c.Kind == TypeChanged {
			m["old_type"] = typeName(c.Level.A)
			m["new_type"] = typeName(c.Level.B)
		}
		if c.Diff != "" {
			m["diff"] = c.Diff
		}
		return m
	case RepetitionChanged:
		return map[string]any{
			"old_repeat":  c.OldRepeat,
			"new_repeat":  c.NewRepeat,
			"old_indexes": c.OldIndexes,
			"new_indexes": c.NewIndexes,
			"value":       c.Level.A,
		}
	case IterableItemMoved:
		to, _ := c.Level.MovedTo()
		return map[string]any{"new_index": to, "value": c.Level.B}
	case DictItemRemoved, IterableItemRemoved, SetItemRemoved, AttributeRemoved:
		if r.verbose < 1 {
			return nil
		}
		return c.Level.A
	default:
		if r.verbose < 1 {
			return nil
		}
		return c.Level.B
	}
}

// AffectedPaths returns the path of every change record, deduplicated, in report order.
func (r *Report) AffectedPaths() []string {
	var out []string
	seen := make(map[string]bool)
	for k := Kind(0); k < numKinds; k++ {
		for _, c := range r.tree.groups[k] {
			p := c.Level.Path()
			if !seen[p] {
				seen[p] = true
				out = append(out, p)
			}
		}
	}
	return out
}

// AffectedRootKeys returns the root-level access step of every change record, deduplicated.
func (r *Report) AffectedRootKeys() []any {
	var out []any
	for k := Kind(0); k < numKinds; k++ {
		for _, c := range r.tree.groups[k] {
			key := c.Level.RootKey()
			if key == nil {
				continue
			}
			if !slices.ContainsFunc(out, func(x any) bool { return x == key }) {
				out = append(out, key)
			}
		}
	}
	return out
}
