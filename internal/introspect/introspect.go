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

// Package introspect extracts comparable field mappings from record-like values.
//
// Extraction is capability based: an ordered list of strategies is tried and the first
// applicable one wins. The comparison engine stays agnostic to how the fields were obtained.
package introspect

import "reflect"

// Fielder lets a type provide its own comparable field mapping, overriding reflection.
type Fielder interface {
	DiffFields() map[string]any
}

type strategy func(v reflect.Value) (map[string]any, bool)

var strategies = []strategy{
	fielderFields,
	exportedFields,
}

// Fields returns the comparable field mapping of a record-like value. The second return is
// false when no strategy applies, which callers report as an unprocessed level rather than an
// error.
func Fields(v reflect.Value) (map[string]any, bool) {
	for _, s := range strategies {
		if fields, ok := s(v); ok {
			return fields, true
		}
	}
	return nil, false
}

func fielderFields(v reflect.Value) (map[string]any, bool) {
	if !v.CanInterface() {
		return nil, false
	}
	if f, ok := v.Interface().(Fielder); ok {
		return f.DiffFields(), true
	}
	if v.CanAddr() && v.Addr().CanInterface() {
		if f, ok := v.Addr().Interface().(Fielder); ok {
			return f.DiffFields(), true
		}
	}
	return nil, false
}

func exportedFields(v reflect.Value) (map[string]any, bool) {
	if v.Kind() != reflect.Struct {
		return nil, false
	}
	t := v.Type()
	fields := make(map[string]any)
	for i := 0; i < t.NumField(); i++ {
		f := t.Field(i)
		if !f.IsExported() {
			continue
		}
		fields[f.Name] = v.Field(i).Interface()
	}
	if len(fields) == 0 {
		return nil, false
	}
	return fields, true
}
