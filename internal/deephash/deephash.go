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

// Package deephash reduces arbitrary nested values to stable content keys.
//
// Two values receive the same key exactly when the active hash policy considers them equal:
// significant-digit rounding, type-group unification, case folding and datetime truncation are
// all applied before hashing. Collections hash order-insensitively so that reordered
// collections bucket together for the unordered matcher.
package deephash

import (
	"encoding/binary"
	"errors"
	"fmt"
	"reflect"
	"slices"
	"strconv"
	"strings"
	"time"
	"unicode/utf8"

	"github.com/cespare/xxhash/v2"
	"github.com/google/uuid"

	"github.com/AaronDMarasco/deepdiff/internal/config"
	"github.com/AaronDMarasco/deepdiff/internal/introspect"
	"github.com/AaronDMarasco/deepdiff/internal/kind"
)

// Key is a stable content hash of a value under the active policy.
type Key uint64

// ErrUnhashable marks values without comparable content (funcs, channels). The condition is
// recoverable: callers log it and exclude the item from bucket accounting.
var ErrUnhashable = errors.New("deephash: value is not hashable")

type memoID struct {
	typ reflect.Type
	ptr uintptr
}

// Table memoizes content keys per container identity. A table may be shared across independent
// runs as a warm cache; values must not mutate while a table referencing them is in use.
type Table struct {
	memo map[memoID]Key
}

// NewTable returns an empty memo table.
func NewTable() *Table {
	return &Table{memo: make(map[memoID]Key)}
}

// Hasher computes content keys under a fixed policy.
type Hasher struct {
	policy config.HashPolicy
	table  *Table

	// Identities of containers on the active encoding stack, to terminate on cycles.
	active map[memoID]struct{}
}

// New returns a hasher for the given policy backed by the given memo table.
func New(policy config.HashPolicy, table *Table) *Hasher {
	if table == nil {
		table = NewTable()
	}
	return &Hasher{policy: policy, table: table, active: make(map[memoID]struct{})}
}

// Hash returns the content key of x.
func (h *Hasher) Hash(x any) (Key, error) {
	return h.hashValue(reflect.ValueOf(x))
}

// hashValue unwraps interfaces and pointers itself instead of relying on kind.Unwrap: the
// pointer identity must enter the active set before the pointee is encoded, or a self-linked
// struct recurses without bound.
func (h *Hasher) hashValue(v reflect.Value) (Key, error) {
	for v.IsValid() && v.Kind() == reflect.Interface {
		v = v.Elem()
	}
	if !v.IsValid() {
		return sum("none"), nil
	}

	id, hasID := memoIDOf(v)
	if hasID {
		if k, ok := h.table.memo[id]; ok {
			return k, nil
		}
		if _, ok := h.active[id]; ok {
			// Already being encoded further up the stack: a cycle. The marker makes the
			// key deterministic without recursing.
			return sum("cycle"), nil
		}
		h.active[id] = struct{}{}
		defer delete(h.active, id)
	}

	var k Key
	var err error
	if v.Kind() == reflect.Pointer {
		if v.IsNil() {
			return sum("none"), nil
		}
		k, err = h.hashValue(v.Elem())
	} else {
		k, err = h.encode(v)
	}
	if err != nil {
		return 0, err
	}
	if hasID {
		h.table.memo[id] = k
	}
	return k, nil
}

func memoIDOf(v reflect.Value) (memoID, bool) {
	switch v.Kind() {
	case reflect.Map, reflect.Slice, reflect.Pointer:
		if v.IsNil() {
			return memoID{}, false
		}
		return memoID{v.Type(), v.Pointer()}, true
	}
	return memoID{}, false
}

func (h *Hasher) encode(v reflect.Value) (Key, error) {
	switch kind.Of(v) {
	case kind.Bool:
		return sum("bool:" + strconv.FormatBool(v.Bool())), nil
	case kind.String:
		return sum("str:" + h.foldCase(v.String())), nil
	case kind.Bytes:
		return h.encodeBytes(v)
	case kind.Number:
		return sum(h.NumberToString(v)), nil
	case kind.Time:
		t := v.Interface().(time.Time)
		if h.policy.TruncateDatetime > 0 {
			t = t.Truncate(h.policy.TruncateDatetime)
		}
		return sum("datetime:" + t.UTC().Format(time.RFC3339Nano)), nil
	case kind.UUID:
		return sum("uuid:" + v.Interface().(uuid.UUID).String()), nil
	case kind.Map:
		return h.encodeMap(v)
	case kind.Set:
		return h.encodeSet(v)
	case kind.Slice:
		return h.encodeSlice(v)
	case kind.Struct:
		return h.encodeStruct(v)
	default:
		return 0, fmt.Errorf("%w: %s", ErrUnhashable, v.Type())
	}
}

func (h *Hasher) foldCase(s string) string {
	if h.policy.IgnoreStringCase {
		return strings.ToLower(s)
	}
	return s
}

func (h *Hasher) encodeBytes(v reflect.Value) (Key, error) {
	b := make([]byte, v.Len())
	reflect.Copy(reflect.ValueOf(b), v)
	if h.policy.IgnoreStringTypeChanges && utf8.Valid(b) {
		return sum("str:" + h.foldCase(string(b))), nil
	}
	d := xxhash.New()
	d.WriteString("bytes:")
	d.Write(b)
	return Key(d.Sum64()), nil
}

// NumberToString renders a numeric value under the policy's rounding and type-unification
// rules. The comparison engine uses the same rendering so that hash equality and compare
// equality agree.
func (h *Hasher) NumberToString(v reflect.Value) string {
	typ := "number"
	if !h.policy.IgnoreNumericTypeChanges {
		typ = v.Type().String()
	}
	var s string
	switch v.Kind() {
	case reflect.Float32, reflect.Float64:
		if h.policy.SignificantDigits >= 0 {
			s = strconv.FormatFloat(v.Float(), 'f', h.policy.SignificantDigits, 64)
		} else {
			s = strconv.FormatFloat(v.Float(), 'g', -1, 64)
		}
	case reflect.Uint, reflect.Uint8, reflect.Uint16, reflect.Uint32, reflect.Uint64, reflect.Uintptr:
		if h.policy.SignificantDigits >= 0 {
			s = strconv.FormatFloat(float64(v.Uint()), 'f', h.policy.SignificantDigits, 64)
		} else {
			s = strconv.FormatUint(v.Uint(), 10)
		}
	default:
		if h.policy.SignificantDigits >= 0 {
			s = strconv.FormatFloat(float64(v.Int()), 'f', h.policy.SignificantDigits, 64)
		} else {
			s = strconv.FormatInt(v.Int(), 10)
		}
	}
	return typ + ":" + s
}

func (h *Hasher) encodeMap(v reflect.Value) (Key, error) {
	type entry struct{ k, v Key }
	entries := make([]entry, 0, v.Len())
	iter := v.MapRange()
	for iter.Next() {
		kk, err := h.hashValue(iter.Key())
		if err != nil {
			return 0, err
		}
		vk, err := h.hashValue(iter.Value())
		if err != nil {
			return 0, err
		}
		entries = append(entries, entry{kk, vk})
	}
	slices.SortFunc(entries, func(a, b entry) int {
		if a.k != b.k {
			return compareKeys(a.k, b.k)
		}
		return compareKeys(a.v, b.v)
	})
	d := xxhash.New()
	d.WriteString("dict:")
	for _, e := range entries {
		writeKey(d, e.k)
		writeKey(d, e.v)
	}
	return Key(d.Sum64()), nil
}

func (h *Hasher) encodeSet(v reflect.Value) (Key, error) {
	keys := make([]Key, 0, v.Len())
	iter := v.MapRange()
	for iter.Next() {
		k, err := h.hashValue(iter.Key())
		if err != nil {
			return 0, err
		}
		keys = append(keys, k)
	}
	slices.SortFunc(keys, compareKeys)
	keys = slices.Compact(keys)
	d := xxhash.New()
	d.WriteString("set:")
	for _, k := range keys {
		writeKey(d, k)
	}
	return Key(d.Sum64()), nil
}

func (h *Hasher) encodeSlice(v reflect.Value) (Key, error) {
	keys := make([]Key, 0, v.Len())
	for i := 0; i < v.Len(); i++ {
		k, err := h.hashValue(v.Index(i))
		if err != nil {
			return 0, err
		}
		keys = append(keys, k)
	}
	// Order-insensitive on purpose: reordered sequences must land in the same bucket so
	// the unordered matcher can pair them.
	slices.SortFunc(keys, compareKeys)
	if h.policy.IgnoreRepetition {
		keys = slices.Compact(keys)
	}
	d := xxhash.New()
	d.WriteString("iterable:")
	for _, k := range keys {
		writeKey(d, k)
	}
	return Key(d.Sum64()), nil
}

func (h *Hasher) encodeStruct(v reflect.Value) (Key, error) {
	fields, ok := introspect.Fields(v)
	if !ok {
		return 0, fmt.Errorf("%w: %s has no comparable fields", ErrUnhashable, v.Type())
	}
	names := make([]string, 0, len(fields))
	for name := range fields {
		names = append(names, name)
	}
	slices.Sort(names)
	d := xxhash.New()
	d.WriteString("objtype:" + v.Type().String() + ":")
	for _, name := range names {
		k, err := h.hashValue(reflect.ValueOf(fields[name]))
		if err != nil {
			return 0, err
		}
		d.WriteString(name)
		writeKey(d, k)
	}
	return Key(d.Sum64()), nil
}

func sum(s string) Key {
	return Key(xxhash.Sum64String(s))
}

func writeKey(d *xxhash.Digest, k Key) {
	var buf [8]byte
	binary.LittleEndian.PutUint64(buf[:], uint64(k))
	d.Write(buf[:])
}

func compareKeys(a, b Key) int {
	switch {
	case a < b:
		return -1
	case a > b:
		return 1
	default:
		return 0
	}
}

// PairKey encodes an unordered pair of keys canonically: distance(x, y) and distance(y, x)
// cache to the same entry.
func PairKey(a, b Key) string {
	if a > b {
		a, b = b, a
	}
	var buf [16]byte
	binary.LittleEndian.PutUint64(buf[:8], uint64(a))
	binary.LittleEndian.PutUint64(buf[8:], uint64(b))
	return string(buf[:])
}
