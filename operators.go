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
	"errors"
	"reflect"
	"regexp"
)

// CannotCompare is returned (possibly wrapped) by an [IterableCompareFunc] to signal that a
// particular pair is outside the matcher's domain. The comparison then falls back to
// positional matching for that sequence.
var CannotCompare = errors.New("cannot compare")

// A CustomReporter accepts change records from custom operators.
type CustomReporter interface {
	// CustomReportResult records a change of the given kind at level. extra is attached to
	// the record unchanged.
	CustomReportResult(kind Kind, level *Level, extra map[string]any)
}

// An Operator intercepts the comparison of selected pairs.
//
// For every pair of values the operators are consulted in installation order before the
// built-in comparison. The first operator whose Match accepts the pair gets to handle it.
type Operator interface {
	// Match reports whether the operator wants to handle the pair at level.
	Match(level *Level) bool

	// GiveUpDiffing compares the pair and reports any differences through out. Returning
	// true suppresses the built-in comparison of this subtree, returning false resumes it.
	GiveUpDiffing(level *Level, out CustomReporter) bool
}

// BaseOperator is a ready-made [Operator] matcher selecting pairs by path pattern or by type.
// It matches when any pattern matches the pair's path, or when both sides are of one of the
// listed types. Embed it and implement GiveUpDiffing.
type BaseOperator struct {
	RegexPaths []*regexp.Regexp
	Types      []reflect.Type
}

func (op *BaseOperator) Match(level *Level) bool {
	if len(op.RegexPaths) == 0 && len(op.Types) == 0 {
		return true
	}
	path := level.Path()
	for _, re := range op.RegexPaths {
		if re.MatchString(path) {
			return true
		}
	}
	for _, t := range op.Types {
		if reflect.TypeOf(level.A) == t && reflect.TypeOf(level.B) == t {
			return true
		}
	}
	return false
}
