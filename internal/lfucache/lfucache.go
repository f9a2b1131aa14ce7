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

// Package lfucache implements a least-frequently-used cache with a fixed capacity.
//
// Eviction is deterministic: among the entries with the lowest access frequency, the one
// inserted first is evicted. Determinism matters here because the cache backs the pairing
// heuristic of the comparison engine, whose tie-breaks must be reproducible.
package lfucache

import "container/list"

type entry struct {
	key    string
	value  any
	freq   int
	bucket *list.Element // the frequency bucket this entry lives in
	elem   *list.Element // position inside the bucket, insertion ordered
}

type bucket struct {
	freq    int
	entries *list.List // of *entry
}

// Cache is a fixed-capacity LFU cache. The zero value is not usable, construct with New.
// Cache is not safe for concurrent use; the engine is single-threaded by design.
type Cache struct {
	capacity int
	items    map[string]*entry
	buckets  *list.List // of *bucket, ascending frequency
}

// New returns a cache holding at most capacity entries. A capacity of zero returns a cache
// that stores nothing, so callers can keep a single code path.
func New(capacity int) *Cache {
	return &Cache{
		capacity: capacity,
		items:    make(map[string]*entry),
		buckets:  list.New(),
	}
}

// Len returns the number of cached entries.
func (c *Cache) Len() int { return len(c.items) }

// Get returns the cached value for key and bumps its frequency.
func (c *Cache) Get(key string) (any, bool) {
	e, ok := c.items[key]
	if !ok {
		return nil, false
	}
	c.touch(e)
	return e.value, true
}

// Set stores a value, evicting the least frequently used entry when full.
func (c *Cache) Set(key string, value any) {
	if c.capacity <= 0 {
		return
	}
	if e, ok := c.items[key]; ok {
		e.value = value
		c.touch(e)
		return
	}
	if len(c.items) >= c.capacity {
		c.evict()
	}
	e := &entry{key: key, value: value, freq: 1}
	b := c.bucketFor(1, c.buckets.Front())
	e.bucket = b
	e.elem = b.Value.(*bucket).entries.PushBack(e)
	c.items[key] = e
}

// touch moves an entry to the next frequency bucket.
func (c *Cache) touch(e *entry) {
	curElem := e.bucket
	cur := curElem.Value.(*bucket)
	next := c.bucketFor(e.freq+1, curElem.Next())
	cur.entries.Remove(e.elem)
	e.freq++
	e.bucket = next
	e.elem = next.Value.(*bucket).entries.PushBack(e)
	if cur.entries.Len() == 0 {
		c.buckets.Remove(curElem)
	}
}

// bucketFor returns the bucket element with exactly freq, inserting one before hint when
// missing. hint must be the first bucket with frequency >= freq-1.
func (c *Cache) bucketFor(freq int, hint *list.Element) *list.Element {
	for hint != nil && hint.Value.(*bucket).freq < freq {
		hint = hint.Next()
	}
	if hint != nil && hint.Value.(*bucket).freq == freq {
		return hint
	}
	b := &bucket{freq: freq, entries: list.New()}
	if hint == nil {
		return c.buckets.PushBack(b)
	}
	return c.buckets.InsertBefore(b, hint)
}

func (c *Cache) evict() {
	front := c.buckets.Front()
	if front == nil {
		return
	}
	b := front.Value.(*bucket)
	victim := b.entries.Front()
	if victim == nil {
		return
	}
	e := victim.Value.(*entry)
	b.entries.Remove(victim)
	delete(c.items, e.key)
	if b.entries.Len() == 0 {
		c.buckets.Remove(front)
	}
}
