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

// Package kind classifies arbitrary Go values into a closed set of comparison kinds.
//
// The engine dispatches on the kind tag instead of chasing reflect.Kind everywhere. The
// classifier is a chain: special types first (time, UUID, bytes, sets), then the generic
// reflect kinds. The first classifier that recognizes a value wins.
package kind

import (
	"reflect"
	"time"

	"github.com/google/uuid"
)

// Kind is the comparison kind of a value.
type Kind int

const (
	Invalid Kind = iota // untyped nil
	Bool
	String
	Bytes
	Number
	Time
	UUID
	Map
	Set // map[T]struct{}, compared as an unordered collection of keys
	Slice
	Struct
	Opaque // funcs, channels and other values without comparable content
)

var names = [...]string{
	Invalid: "invalid",
	Bool:    "bool",
	String:  "string",
	Bytes:   "bytes",
	Number:  "number",
	Time:    "time",
	UUID:    "uuid",
	Map:     "map",
	Set:     "set",
	Slice:   "slice",
	Struct:  "struct",
	Opaque:  "opaque",
}

func (k Kind) String() string {
	if int(k) < len(names) {
		return names[k]
	}
	return "unknown"
}

// Scalar reports whether the kind is a leaf that never recurses into child levels.
func (k Kind) Scalar() bool {
	switch k {
	case Bool, String, Bytes, Number, Time, UUID:
		return true
	}
	return false
}

var (
	timeType  = reflect.TypeOf(time.Time{})
	uuidType  = reflect.TypeOf(uuid.UUID{})
	emptyType = reflect.TypeOf(struct{}{})
)

// Classifier recognizes a value or declines it. Custom classifiers run before the built-in
// chain.
type Classifier func(v reflect.Value) (Kind, bool)

var builtin = []Classifier{
	classifySpecialTypes,
	classifySets,
	classifyGeneric,
}

// Of classifies a value that has already been unwrapped with Unwrap.
func Of(v reflect.Value) Kind {
	if !v.IsValid() {
		return Invalid
	}
	for _, c := range builtin {
		if k, ok := c(v); ok {
			return k
		}
	}
	return Opaque
}

func classifySpecialTypes(v reflect.Value) (Kind, bool) {
	switch v.Type() {
	case timeType:
		return Time, true
	case uuidType:
		return UUID, true
	}
	return 0, false
}

func classifySets(v reflect.Value) (Kind, bool) {
	if v.Kind() != reflect.Map {
		return 0, false
	}
	if v.Type().Elem() == emptyType {
		return Set, true
	}
	return 0, false
}

func classifyGeneric(v reflect.Value) (Kind, bool) {
	switch v.Kind() {
	case reflect.Bool:
		return Bool, true
	case reflect.String:
		return String, true
	case reflect.Int, reflect.Int8, reflect.Int16, reflect.Int32, reflect.Int64,
		reflect.Uint, reflect.Uint8, reflect.Uint16, reflect.Uint32, reflect.Uint64, reflect.Uintptr,
		reflect.Float32, reflect.Float64:
		return Number, true
	case reflect.Map:
		return Map, true
	case reflect.Slice, reflect.Array:
		if v.Type().Elem().Kind() == reflect.Uint8 {
			return Bytes, true
		}
		return Slice, true
	case reflect.Struct:
		return Struct, true
	case reflect.Func, reflect.Chan, reflect.UnsafePointer, reflect.Complex64, reflect.Complex128:
		return Opaque, true
	}
	return 0, false
}

// Unwrap strips interfaces and follows pointers until a concrete value is reached. A nil
// pointer or nil interface unwraps to the invalid value.
func Unwrap(v reflect.Value) reflect.Value {
	for v.IsValid() && (v.Kind() == reflect.Interface || v.Kind() == reflect.Pointer) {
		if v.IsNil() {
			return reflect.Value{}
		}
		v = v.Elem()
	}
	return v
}

// ValueOf unwraps an any into a concrete reflect value.
func ValueOf(x any) reflect.Value {
	return Unwrap(reflect.ValueOf(x))
}

// Identity returns a stable identity token for container values, used by the recursion guard.
// Non-container values have no identity and return false: they cannot participate in cycles.
func Identity(v reflect.Value) (uintptr, bool) {
	switch v.Kind() {
	case reflect.Map, reflect.Slice, reflect.Pointer:
		if v.IsNil() {
			return 0, false
		}
		return v.Pointer(), true
	}
	return 0, false
}

// IdentityOf returns the identity token of a value before pointer unwrapping, so that cyclic
// structures linked through pointers are guarded too.
func IdentityOf(x any) (uintptr, bool) {
	v := reflect.ValueOf(x)
	for v.IsValid() && v.Kind() == reflect.Interface {
		if v.IsNil() {
			return 0, false
		}
		v = v.Elem()
	}
	if !v.IsValid() {
		return 0, false
	}
	return Identity(v)
}
