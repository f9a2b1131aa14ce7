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
	"encoding/binary"
	"reflect"
	"sort"

	"github.com/cespare/xxhash/v2"
	"go.uber.org/zap"

	"github.com/AaronDMarasco/deepdiff/internal/deephash"
	"github.com/AaronDMarasco/deepdiff/internal/kind"
)

// indexedItem is one distinct element of an unordered sequence with every position it
// occupies.
type indexedItem struct {
	item    any
	indexes []int
}

// hashIndex buckets a sequence's elements by content hash, keeping first-seen order.
type hashIndex struct {
	order []deephash.Key
	items map[deephash.Key]*indexedItem
}

// iterableHashes indexes items by content hash. Elements the hasher cannot process are
// logged and left out, they do not take part in the unordered comparison.
func (e *engine) iterableHashes(lv *Level, items []any) hashIndex {
	idx := hashIndex{items: make(map[deephash.Key]*indexedItem, len(items))}
	for i, item := range items {
		h, err := e.rc.hasher.Hash(item)
		if err != nil {
			e.rc.log.Error("cannot hash item, it will not be compared",
				zap.String("path", lv.Path()), zap.Int("index", i), zap.Error(err))
			continue
		}
		if it, ok := idx.items[h]; ok {
			it.indexes = append(it.indexes, i)
			continue
		}
		idx.items[h] = &indexedItem{item: item, indexes: []int{i}}
		idx.order = append(idx.order, h)
	}
	return idx
}

func (e *engine) diffUnordered(lv *Level, va, vb reflect.Value, anc ancestorSet, tree *resultTree) {
	items1 := sliceItems(va)
	items2 := sliceItems(vb)

	t1 := e.iterableHashes(lv, items1)
	t2 := e.iterableHashes(lv, items2)

	var hashesAdded, hashesRemoved []deephash.Key
	for _, h := range t2.order {
		if _, ok := t1.items[h]; !ok {
			hashesAdded = append(hashesAdded, h)
		}
	}
	for _, h := range t1.order {
		if _, ok := t2.items[h]; !ok {
			hashesRemoved = append(hashesRemoved, h)
		}
	}

	cfg := e.rc.cfg

	// When the two sequences barely intersect, pairing would waste passes matching items
	// that have nothing in common. Everything is then reported as plain adds and removes.
	changedShare := float64(len(hashesAdded)+len(hashesRemoved)) /
		float64(len(t1.items)+len(t2.items)+1)
	pairs := make(map[deephash.Key]deephash.Key)
	if changedShare <= cfg.CutoffIntersectionForPairs {
		if e.rc.passesUsed.Load() < cfg.MaxPasses {
			pairs = e.mostInCommonPairs(hashesAdded, hashesRemoved, t1, t2, anc)
		} else if !e.rc.maxPassesReached {
			e.rc.maxPassesReached = true
			e.rc.log.Warn("max passes reached, pairing is skipped from here on",
				zap.Int64("max_passes", cfg.MaxPasses))
		}
	}

	consumed := make(map[deephash.Key]bool)

	// otherPair resolves the paired counterpart of h, if pairing matched one. The pair is
	// symmetric, so both directions are spent at once.
	otherPair := func(h deephash.Key, inT1 bool) *indexedItem {
		other, ok := pairs[h]
		if !ok {
			return nil
		}
		delete(pairs, h)
		delete(pairs, other)
		consumed[other] = true
		if inT1 {
			return t1.items[other]
		}
		return t2.items[other]
	}

	if cfg.ReportRepetition {
		e.unorderedWithRepetition(lv, t1, t2, hashesAdded, hashesRemoved, otherPair, consumed, anc, tree)
		return
	}

	for _, h := range hashesAdded {
		if consumed[h] {
			continue
		}
		if !e.rc.countVisit() {
			return
		}
		added := t2.items[h]
		if other := otherPair(h, true); other != nil {
			child := lv.branch(other.item, added.item, RelIndex, other.indexes[0])
			child.param2 = added.indexes[0]
			e.descend(child, anc, tree)
			continue
		}
		child := lv.branch(NotPresent, added.item, RelIndex, added.indexes[0])
		e.report(&Change{Kind: IterableItemAdded, Level: child}, tree)
	}
	for _, h := range hashesRemoved {
		if consumed[h] {
			continue
		}
		if !e.rc.countVisit() {
			return
		}
		removed := t1.items[h]
		if other := otherPair(h, false); other != nil {
			// Pairs are normally spent while walking the added hashes; kept as a guard.
			child := lv.branch(removed.item, other.item, RelIndex, removed.indexes[0])
			e.descend(child, anc, tree)
			continue
		}
		child := lv.branch(removed.item, NotPresent, RelIndex, removed.indexes[0])
		e.report(&Change{Kind: IterableItemRemoved, Level: child}, tree)
	}
}

// unorderedWithRepetition reports every occupied index of added and removed items and emits
// repetition records for items present on both sides with different multiplicity.
func (e *engine) unorderedWithRepetition(lv *Level, t1, t2 hashIndex, hashesAdded, hashesRemoved []deephash.Key, otherPair func(deephash.Key, bool) *indexedItem, consumed map[deephash.Key]bool, anc ancestorSet, tree *resultTree) {
	for _, h := range hashesAdded {
		if consumed[h] {
			continue
		}
		if !e.rc.countVisit() {
			return
		}
		added := t2.items[h]
		if other := otherPair(h, true); other != nil {
			for _, i := range other.indexes {
				child := lv.branch(other.item, added.item, RelIndex, i)
				e.descend(child, anc, tree)
			}
			continue
		}
		for _, i := range added.indexes {
			child := lv.branch(NotPresent, added.item, RelIndex, i)
			e.report(&Change{Kind: IterableItemAdded, Level: child}, tree)
		}
	}
	for _, h := range hashesRemoved {
		if consumed[h] {
			continue
		}
		if !e.rc.countVisit() {
			return
		}
		removed := t1.items[h]
		if other := otherPair(h, false); other != nil {
			for _, i := range removed.indexes {
				child := lv.branch(removed.item, other.item, RelIndex, i)
				e.descend(child, anc, tree)
			}
			continue
		}
		for _, i := range removed.indexes {
			child := lv.branch(removed.item, NotPresent, RelIndex, i)
			e.report(&Change{Kind: IterableItemRemoved, Level: child}, tree)
		}
	}
	for _, h := range t1.order {
		old, inT1 := t1.items[h]
		cur, inT2 := t2.items[h]
		if !inT1 || !inT2 || len(old.indexes) == len(cur.indexes) {
			continue
		}
		child := lv.branch(old.item, cur.item, RelIndex, old.indexes[0])
		e.report(&Change{
			Kind:       RepetitionChanged,
			Level:      child,
			OldRepeat:  len(old.indexes),
			NewRepeat:  len(cur.indexes),
			OldIndexes: old.indexes,
			NewIndexes: cur.indexes,
		}, tree)
	}
}

// mostInCommonPairs matches removed items to added items by rough distance: every candidate
// pair within CutoffDistanceForPairs is bucketed by distance, then pairs are claimed
// greedily from the closest bucket outward, first encountered first. The result is
// symmetric: both directions of every pair are present.
func (e *engine) mostInCommonPairs(hashesAdded, hashesRemoved []deephash.Key, t1, t2 hashIndex, anc ancestorSet) map[deephash.Key]deephash.Key {
	var cacheKey string
	if e.rc.cacheUsable() {
		cacheKey = pairsCacheKey(hashesAdded, hashesRemoved)
		if v, ok := e.rc.cacheGet(cacheKey); ok {
			return clonePairs(v.(map[deephash.Key]deephash.Key))
		}
	}

	type buckets struct {
		dists  []float64
		byDist map[float64][]deephash.Key
	}
	candidates := make(map[deephash.Key]*buckets)
	var candidateOrder []deephash.Key
	var allDists []float64
	distSeen := make(map[float64]bool)

	for _, ah := range hashesAdded {
		addedObj := t2.items[ah]
		for _, rh := range hashesRemoved {
			removedObj := t1.items[rh]
			// An item already on the ancestor path would recurse into itself when paired.
			if id, ok := kind.IdentityOf(removedObj.item); ok && anc.has(id) {
				continue
			}
			d := e.hashedDistance(ah, rh, addedObj.item, removedObj.item)
			if d > e.rc.cfg.CutoffDistanceForPairs {
				continue
			}
			b, ok := candidates[ah]
			if !ok {
				b = &buckets{byDist: make(map[float64][]deephash.Key)}
				candidates[ah] = b
				candidateOrder = append(candidateOrder, ah)
			}
			if _, ok := b.byDist[d]; !ok {
				b.dists = append(b.dists, d)
			}
			b.byDist[d] = append(b.byDist[d], rh)
			if !distSeen[d] {
				distSeen[d] = true
				allDists = append(allDists, d)
			}
		}
	}

	sort.Float64s(allDists)
	used := make(map[deephash.Key]bool)
	pairs := make(map[deephash.Key]deephash.Key)
	for _, d := range allDists {
		for _, ah := range candidateOrder {
			if used[ah] {
				continue
			}
			for _, rh := range candidates[ah].byDist[d] {
				if used[rh] {
					continue
				}
				used[ah] = true
				used[rh] = true
				pairs[ah] = rh
				pairs[rh] = ah
				break
			}
		}
	}

	if cacheKey != "" {
		e.rc.cacheSet(cacheKey, clonePairs(pairs))
	}
	return pairs
}

// hashedDistance returns the rough distance of a removed/added candidate pair, cached by
// the unordered combination of the two content hashes.
func (e *engine) hashedDistance(ah, rh deephash.Key, addedItem, removedItem any) float64 {
	var key string
	if e.rc.cacheUsable() {
		key = "dist:" + deephash.PairKey(ah, rh)
		if v, ok := e.rc.cacheGet(key); ok {
			return v.(float64)
		}
	}
	d := e.roughDistance(removedItem, addedItem)
	e.rc.passesUsed.Add(1)
	if key != "" {
		e.rc.cacheSet(key, d)
	}
	return d
}

func (rc *runContext) cacheUsable() bool {
	return rc.cache != nil && rc.cacheEnabled
}

func pairsCacheKey(hashesAdded, hashesRemoved []deephash.Key) string {
	d := xxhash.New()
	var buf [8]byte
	for _, lst := range [2][]deephash.Key{hashesAdded, hashesRemoved} {
		// Length framing: without it, moving a hash across the list boundary would
		// alias two different pairing problems to the same key.
		binary.LittleEndian.PutUint64(buf[:], uint64(len(lst)))
		d.Write(buf[:])
		for _, h := range lst {
			binary.LittleEndian.PutUint64(buf[:], uint64(h))
			d.Write(buf[:])
		}
	}
	binary.LittleEndian.PutUint64(buf[:], d.Sum64())
	return "pairs:" + string(buf[:])
}

func clonePairs(p map[deephash.Key]deephash.Key) map[deephash.Key]deephash.Key {
	out := make(map[deephash.Key]deephash.Key, len(p))
	for k, v := range p {
		out[k] = v
	}
	return out
}
