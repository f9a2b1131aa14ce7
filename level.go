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
	"strings"
)

// notPresentType marks the absent side of an addition or removal.
type notPresentType struct{}

func (notPresentType) String() string { return "not present" }

// NotPresent is the placeholder value on the side of a level where nothing exists: the A side
// of an addition, the B side of a removal.
var NotPresent = notPresentType{}

// RelKind describes how a child level relates to its parent container.
type RelKind int

const (
	RelRoot      RelKind = iota
	RelMapKey            // child is the value under a map key
	RelAttribute         // child is a record field
	RelIndex             // child is an element of an ordered sequence
	RelSetItem           // child is a member of an unordered collection
)

// Level is one node of the comparison tree: a pair of values being compared, linked to the
// parent pair it was reached from. The root level has no parent and renders as "root".
type Level struct {
	// A and B are the two values of this pair. Either may be [NotPresent].
	A, B any

	parent *Level
	rel    RelKind
	param  any // map key, field name or index
	param2 any // target index for moved items

	path   string
	pathOK bool
}

func newRootLevel(a, b any) *Level {
	return &Level{A: a, B: b, rel: RelRoot}
}

// branch descends to a child level.
func (l *Level) branch(a, b any, rel RelKind, param any) *Level {
	return &Level{A: a, B: b, parent: l, rel: rel, param: param}
}

// Parent returns the parent level, or nil for the root.
func (l *Level) Parent() *Level { return l.parent }

// Param returns the relationship parameter that leads from the parent to this level: the map
// key, field name or index.
func (l *Level) Param() any { return l.param }

// MovedTo returns the target index of a moved item and whether this level describes a move.
func (l *Level) MovedTo() (int, bool) {
	if l.param2 == nil {
		return 0, false
	}
	return l.param2.(int), true
}

// Path renders the container-access steps from the root to this level, e.g.
// root['config'][3].Name. The rendering is cached.
func (l *Level) Path() string {
	if l.pathOK {
		return l.path
	}
	var b strings.Builder
	l.render(&b)
	l.path = b.String()
	l.pathOK = true
	return l.path
}

func (l *Level) render(b *strings.Builder) {
	if l.parent == nil {
		b.WriteString("root")
		return
	}
	l.parent.render(b)
	b.WriteString(renderSegment(l.rel, l.param))
}

func renderSegment(rel RelKind, param any) string {
	switch rel {
	case RelMapKey, RelIndex:
		return "[" + renderParam(param) + "]"
	case RelAttribute:
		return fmt.Sprintf(".%v", param)
	default:
		// Set members have no addressable position inside their parent.
		return ""
	}
}

func renderParam(param any) string {
	switch p := param.(type) {
	case string:
		return "'" + p + "'"
	case fmt.Stringer:
		return "'" + p.String() + "'"
	default:
		return fmt.Sprintf("%v", p)
	}
}

// PathSegment is one structured container-access step, used by deltas to address values
// without re-parsing rendered paths.
type PathSegment struct {
	Rel   RelKind `json:"rel"`
	Param any     `json:"param"`
}

// Segments returns the structured path from the root to this level.
func (l *Level) Segments() []PathSegment {
	var n int
	for p := l; p.parent != nil; p = p.parent {
		n++
	}
	segs := make([]PathSegment, n)
	for p := l; p.parent != nil; p = p.parent {
		n--
		segs[n] = PathSegment{Rel: p.rel, Param: p.param}
	}
	return segs
}

// RootKey returns the first access step under the root, or nil for the root itself.
func (l *Level) RootKey() any {
	var key any
	for p := l; p.parent != nil; p = p.parent {
		key = p.param
	}
	return key
}

// orderKey renders a map key for deterministic iteration order. Integers are biased into the
// unsigned range and zero padded so the lexical order matches the numeric one over the full
// int64 range. It is not a display format.
func orderKey(k any) string {
	switch v := k.(type) {
	case string:
		return "s:" + v
	case int:
		return "i:" + intOrderKey(int64(v))
	case int64:
		return "i:" + intOrderKey(v)
	default:
		return fmt.Sprintf("%T:%v", k, k)
	}
}

func intOrderKey(v int64) string {
	return fmt.Sprintf("%020d", uint64(v)^(1<<63))
}
