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

// Package deepdiff computes a structured difference between two arbitrarily nested values:
// deep equality with an explanation.
//
// The main function is [Diff], which compares two values and reports every addition, removal,
// type change, value change, move and repetition-count change between them as a [Report] of
// typed change records, grouped by [Kind] and addressed by path.
//
// Equivalence is configurable: order significance, numeric rounding and epsilon closeness,
// type-group unification, case folding, path and type based exclusion, custom element matchers
// and per-pair operators are all expressed as options on Diff.
//
// When order is insignificant, elements are matched by content hash and leftover additions and
// removals are paired by a rough distance heuristic, so that "this item changed" surfaces
// instead of an unrelated add/remove pair. The matching is a bounded greedy heuristic, not a
// globally optimal assignment; its tie-breaks are deterministic and part of the observable
// behavior.
//
// Comparison is safe on cyclic inputs: a value already being compared further up the recursion
// is skipped when revisited.
package deepdiff
