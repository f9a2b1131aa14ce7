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

// Package opalign aligns two ordered sequences and reports the alignment as opcodes.
//
// An opcode covers a contiguous segment of both inputs: Equal segments match, Delete segments
// exist only in x, Insert segments only in y, and Replace segments pair a run of deletions
// with a run of insertions. The alignment is computed with Myers' algorithm (linear space
// variant with a cost-limit heuristic for large inputs with many differences).
package opalign

// Tag classifies an alignment segment.
type Tag int

const (
	Equal Tag = iota
	Replace
	Delete
	Insert
)

func (t Tag) String() string {
	switch t {
	case Equal:
		return "equal"
	case Replace:
		return "replace"
	case Delete:
		return "delete"
	case Insert:
		return "insert"
	default:
		return "unknown"
	}
}

// Opcode is one alignment segment: x[I1:I2] relates to y[J1:J2] as described by Tag.
type Opcode struct {
	Tag            Tag
	I1, I2, J1, J2 int
}

// Opcodes aligns x and y and returns the full opcode list, including Equal runs. Identical
// inputs yield a single Equal opcode; two empty inputs yield nil.
func Opcodes[T comparable](x, y []T) []Opcode {
	rx, ry := diff(x, y)
	return fromRemovalVectors(rx, ry, len(x), len(y))
}

// fromRemovalVectors translates the removal vectors produced by the Myers search into
// opcodes: a run of deletions followed immediately by a run of insertions collapses into a
// Replace segment.
func fromRemovalVectors(rx, ry []bool, n, m int) []Opcode {
	if n == 0 && m == 0 {
		return nil
	}
	var ops []Opcode
	for s, t := 0, 0; s < n || t < m; {
		s0, t0 := s, t
		for s < n && rx[s] {
			s++
		}
		for t < m && ry[t] {
			t++
		}
		switch {
		case s > s0 && t > t0:
			ops = append(ops, Opcode{Replace, s0, s, t0, t})
		case s > s0:
			ops = append(ops, Opcode{Delete, s0, s, t0, t})
		case t > t0:
			ops = append(ops, Opcode{Insert, s0, s, t0, t})
		}
		s0, t0 = s, t
		for s < n && t < m && !rx[s] && !ry[t] {
			s++
			t++
		}
		if s > s0 {
			ops = append(ops, Opcode{Equal, s0, s, t0, t})
		}
	}
	return ops
}
