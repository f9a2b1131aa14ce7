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
	"strings"
	"time"

	"github.com/google/uuid"

	"github.com/AaronDMarasco/deepdiff/internal/opalign"
)

func (e *engine) diffBools(lv *Level, va, vb reflect.Value, tree *resultTree) {
	if va.Bool() != vb.Bool() {
		e.report(&Change{Kind: ValuesChanged, Level: lv}, tree)
	}
}

func stringOf(v reflect.Value) string {
	if v.Kind() == reflect.String {
		return v.String()
	}
	// Bytes kind: arrays need an addressable copy before Bytes().
	if v.Kind() == reflect.Array {
		s := reflect.New(v.Type()).Elem()
		s.Set(v)
		v = s.Slice(0, v.Len())
	}
	return string(v.Bytes())
}

func (e *engine) diffStrings(lv *Level, va, vb reflect.Value, tree *resultTree) {
	s1 := stringOf(va)
	s2 := stringOf(vb)
	if e.rc.cfg.IgnoreStringCase {
		s1 = strings.ToLower(s1)
		s2 = strings.ToLower(s2)
	}
	if s1 == s2 {
		return
	}
	c := &Change{Kind: ValuesChanged, Level: lv}
	if strings.Contains(s1, "\n") || strings.Contains(s2, "\n") {
		c.Diff = opalign.Unified(s1, s2)
	}
	e.report(c, tree)
}

func (e *engine) diffNumbers(lv *Level, va, vb reflect.Value, tree *resultTree) {
	cfg := e.rc.cfg
	// NaN is unequal to everything including itself; the ignore option is handled before
	// dispatch.
	if isNaN(va) || isNaN(vb) {
		e.report(&Change{Kind: ValuesChanged, Level: lv}, tree)
		return
	}
	if cfg.SignificantDigits < 0 && cfg.MathEpsilon > 0 {
		if closeEnough(floatOf(va), floatOf(vb), cfg.MathEpsilon) {
			return
		}
		e.report(&Change{Kind: ValuesChanged, Level: lv}, tree)
		return
	}
	// Rendering through the hasher's number format keeps compare equality consistent with
	// hash equality, which the unordered matcher depends on.
	if e.rc.hasher.NumberToString(va) != e.rc.hasher.NumberToString(vb) {
		e.report(&Change{Kind: ValuesChanged, Level: lv}, tree)
	}
}

func floatOf(v reflect.Value) float64 {
	switch v.Kind() {
	case reflect.Int, reflect.Int8, reflect.Int16, reflect.Int32, reflect.Int64:
		return float64(v.Int())
	case reflect.Uint, reflect.Uint8, reflect.Uint16, reflect.Uint32, reflect.Uint64, reflect.Uintptr:
		return float64(v.Uint())
	default:
		return v.Float()
	}
}

// closeEnough is a relative tolerance comparison in the style of math.isclose.
func closeEnough(a, b, relTol float64) bool {
	if a == b {
		return true
	}
	if math.IsInf(a, 0) || math.IsInf(b, 0) {
		return false
	}
	return math.Abs(a-b) <= relTol*math.Max(math.Abs(a), math.Abs(b))
}

func (e *engine) diffTimes(lv *Level, va, vb reflect.Value, tree *resultTree) {
	t1 := va.Interface().(time.Time)
	t2 := vb.Interface().(time.Time)
	if d := e.rc.cfg.TruncateDatetime; d > 0 {
		t1 = t1.Truncate(d)
		t2 = t2.Truncate(d)
	}
	if !t1.Equal(t2) {
		e.report(&Change{Kind: ValuesChanged, Level: lv}, tree)
	}
}

func (e *engine) diffUUIDs(lv *Level, va, vb reflect.Value, tree *resultTree) {
	u1 := va.Interface().(uuid.UUID)
	u2 := vb.Interface().(uuid.UUID)
	if u1 != u2 {
		e.report(&Change{Kind: ValuesChanged, Level: lv}, tree)
	}
}
