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
	"strconv"

	"go.uber.org/zap"

	"github.com/AaronDMarasco/deepdiff/internal/introspect"
)

// keyEntry is one map key with its canonical matching form. Keys of the two sides are matched
// by canonical form so that the key equivalence follows the configured value equivalence:
// with case folding enabled, "Name" and "name" are the same key.
type keyEntry struct {
	clean string
	key   any
	value any
}

func (e *engine) canonicalKey(k any) string {
	if h, err := e.rc.hasher.Hash(k); err == nil {
		return strconv.FormatUint(uint64(h), 16)
	}
	return fmt.Sprintf("%T:%v", k, k)
}

// keyEntries lists a map's keys with canonical forms, sorted for deterministic traversal.
// Two distinct keys folding to the same canonical form are reported once, the first wins.
func (e *engine) keyEntries(lv *Level, v reflect.Value) []keyEntry {
	entries := make([]keyEntry, 0, v.Len())
	iter := v.MapRange()
	for iter.Next() {
		entries = append(entries, keyEntry{
			key:   iter.Key().Interface(),
			value: iter.Value().Interface(),
		})
	}
	sort.Slice(entries, func(i, j int) bool {
		return orderKey(entries[i].key) < orderKey(entries[j].key)
	})
	seen := make(map[string]any, len(entries))
	out := entries[:0]
	for _, en := range entries {
		en.clean = e.canonicalKey(en.key)
		if prev, ok := seen[en.clean]; ok {
			e.rc.log.Warn("keys collapse into the same key under the current comparison rules, one is dropped",
				zap.String("path", lv.Path()),
				zap.Any("kept", prev),
				zap.Any("dropped", en.key))
			continue
		}
		seen[en.clean] = en.key
		out = append(out, en)
	}
	return out
}

func (e *engine) diffMap(lv *Level, va, vb reflect.Value, anc ancestorSet, tree *resultTree) {
	aEntries := e.keyEntries(lv, va)
	bEntries := e.keyEntries(lv, vb)
	e.diffKeyed(lv, aEntries, bEntries, RelMapKey, DictItemAdded, DictItemRemoved, anc, tree)
}

// diffKeyed is the shared core of map and record comparison: match entries by canonical key,
// report one-sided keys, recurse into shared ones.
func (e *engine) diffKeyed(lv *Level, aEntries, bEntries []keyEntry, rel RelKind, addedKind, removedKind Kind, anc ancestorSet, tree *resultTree) {
	aByClean := make(map[string]keyEntry, len(aEntries))
	for _, en := range aEntries {
		aByClean[en.clean] = en
	}
	bClean := make(map[string]struct{}, len(bEntries))
	for _, en := range bEntries {
		bClean[en.clean] = struct{}{}
	}

	for _, en := range bEntries {
		if _, ok := aByClean[en.clean]; !ok {
			child := lv.branch(NotPresent, en.value, rel, en.key)
			e.report(&Change{Kind: addedKind, Level: child}, tree)
		}
	}
	for _, en := range aEntries {
		if _, ok := bClean[en.clean]; !ok {
			child := lv.branch(en.value, NotPresent, rel, en.key)
			e.report(&Change{Kind: removedKind, Level: child}, tree)
		}
	}
	for _, en := range bEntries {
		other, ok := aByClean[en.clean]
		if !ok {
			continue
		}
		child := lv.branch(other.value, en.value, rel, en.key)
		e.descend(child, anc, tree)
	}
}

func (e *engine) diffStruct(lv *Level, va, vb reflect.Value, anc ancestorSet, tree *resultTree) {
	aFields, ok := e.fieldEntries(va)
	if !ok {
		e.report(&Change{Kind: Unprocessed, Level: lv}, tree)
		return
	}
	bFields, ok := e.fieldEntries(vb)
	if !ok {
		e.report(&Change{Kind: Unprocessed, Level: lv}, tree)
		return
	}
	e.diffKeyed(lv, aFields, bFields, RelAttribute, AttributeAdded, AttributeRemoved, anc, tree)
}

func (e *engine) fieldEntries(v reflect.Value) ([]keyEntry, bool) {
	fields, ok := introspect.Fields(v)
	if !ok {
		return nil, false
	}
	names := make([]string, 0, len(fields))
	for name := range fields {
		names = append(names, name)
	}
	sort.Strings(names)
	entries := make([]keyEntry, len(names))
	for i, name := range names {
		entries[i] = keyEntry{clean: name, key: name, value: fields[name]}
	}
	return entries, true
}

func (e *engine) diffSet(lv *Level, va, vb reflect.Value, tree *resultTree) {
	aItems := e.setHashes(lv, va)
	bItems := e.setHashes(lv, vb)
	for _, it := range bItems.order {
		if _, ok := aItems.byHash[it]; !ok {
			child := lv.branch(NotPresent, bItems.byHash[it], RelSetItem, bItems.byHash[it])
			e.report(&Change{Kind: SetItemAdded, Level: child}, tree)
		}
	}
	for _, it := range aItems.order {
		if _, ok := bItems.byHash[it]; !ok {
			child := lv.branch(aItems.byHash[it], NotPresent, RelSetItem, aItems.byHash[it])
			e.report(&Change{Kind: SetItemRemoved, Level: child}, tree)
		}
	}
}

type setIndex struct {
	order  []string
	byHash map[string]any
}

// setHashes indexes the members of an unordered collection by content hash, in deterministic
// order. Members the hasher cannot process are logged and left out of the comparison.
func (e *engine) setHashes(lv *Level, v reflect.Value) setIndex {
	idx := setIndex{byHash: make(map[string]any, v.Len())}
	iter := v.MapRange()
	for iter.Next() {
		item := iter.Key().Interface()
		h, err := e.rc.hasher.Hash(item)
		if err != nil {
			e.rc.log.Error("cannot hash item, it will not be compared",
				zap.String("path", lv.Path()), zap.Error(err))
			continue
		}
		key := strconv.FormatUint(uint64(h), 16)
		if _, ok := idx.byHash[key]; ok {
			continue
		}
		idx.byHash[key] = item
		idx.order = append(idx.order, key)
	}
	sort.Strings(idx.order)
	return idx
}
