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

	"github.com/AaronDMarasco/deepdiff/internal/config"
	"github.com/AaronDMarasco/deepdiff/internal/kind"
)

// groupByRows restructures a sequence of records into a map keyed by the configured group
// key, so two record sets compare by identity instead of position. A second key nests one
// level deeper. The group key itself is removed from each row.
func groupByRows(x any, cfg *config.Config) (any, error) {
	if len(cfg.GroupBy) > 2 {
		return nil, errOption("group by supports at most two keys")
	}
	v := kind.ValueOf(x)
	if kind.Of(v) != kind.Slice {
		return nil, fmt.Errorf("unable to group %T by %q: not a sequence of records", x, cfg.GroupBy[0])
	}

	rows := make([]map[string]any, v.Len())
	for i := 0; i < v.Len(); i++ {
		row, ok := rowOf(v.Index(i).Interface())
		if !ok {
			return nil, fmt.Errorf("unable to group by %q: item at index %d is not a record", cfg.GroupBy[0], i)
		}
		rows[i] = row
	}

	result := make(map[any]any)
	for _, row := range rows {
		key1, rest, err := popKey(row, cfg.GroupBy[0])
		if err != nil {
			return nil, err
		}
		target := result
		if len(cfg.GroupBy) == 2 {
			key2, rest2, err := popKey(rest, cfg.GroupBy[1])
			if err != nil {
				return nil, err
			}
			nested, ok := result[key1].(map[any]any)
			if !ok {
				nested = make(map[any]any)
				result[key1] = nested
			}
			target = nested
			key1 = key2
			rest = rest2
		}
		if cfg.GroupBySortKey != nil {
			lst, _ := target[key1].([]any)
			target[key1] = append(lst, rest)
		} else {
			target[key1] = rest
		}
	}

	if cfg.GroupBySortKey != nil {
		sortGrouped(result, cfg.GroupBySortKey)
	}
	return result, nil
}

func rowOf(item any) (map[string]any, bool) {
	if m, ok := item.(map[string]any); ok {
		return m, true
	}
	v := kind.ValueOf(item)
	if kind.Of(v) != kind.Map || v.Type().Key().Kind() != reflect.String {
		return nil, false
	}
	m := make(map[string]any, v.Len())
	iter := v.MapRange()
	for iter.Next() {
		m[iter.Key().String()] = iter.Value().Interface()
	}
	return m, true
}

func popKey(row map[string]any, key string) (any, map[string]any, error) {
	val, ok := row[key]
	if !ok {
		return nil, nil, fmt.Errorf("unable to group by %q: key missing from record", key)
	}
	rest := make(map[string]any, len(row)-1)
	for k, v := range row {
		if k != key {
			rest[k] = v
		}
	}
	return val, rest, nil
}

func sortGrouped(m map[any]any, sortKey func(row map[string]any) string) {
	for _, v := range m {
		switch vv := v.(type) {
		case map[any]any:
			sortGrouped(vv, sortKey)
		case []any:
			sort.SliceStable(vv, func(i, j int) bool {
				ri, _ := vv[i].(map[string]any)
				rj, _ := vv[j].(map[string]any)
				return sortKey(ri) < sortKey(rj)
			})
		}
	}
}
