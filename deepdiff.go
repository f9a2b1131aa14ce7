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

	"github.com/AaronDMarasco/deepdiff/internal/kind"
)

// Diff compares a and b and returns a report of every difference between them. The zero
// option set compares strictly: positional sequences, exact numbers, type changes reported.
func Diff(a, b any, opts ...Option) (*Report, error) {
	s, err := newSettings(opts)
	if err != nil {
		return nil, err
	}
	if len(s.cfg.GroupBy) > 0 {
		if a, err = groupByRows(a, &s.cfg); err != nil {
			return nil, err
		}
		if b, err = groupByRows(b, &s.cfg); err != nil {
			return nil, err
		}
	}
	rc := newRunContext(&s)
	e := &engine{rc: rc, opcodes: make(map[string][]Opcode)}
	tree := newResultTree()
	stop := rc.startProgress()
	defer stop()

	root := newRootLevel(a, b)
	e.diffLevel(root, nil, tree)
	if !s.cfg.ReportRepetition {
		tree.mergeMutualAddRemoves()
	}
	rep := &Report{tree: tree, stats: rc.snapshot(), opcodes: e.opcodes, verbose: s.cfg.VerboseLevel}
	if s.cfg.GetDeepDistance {
		rep.DeepDistance = e.rootDistance(root, tree)
	}
	return rep, nil
}

// ancestorSet tracks the container identities on the path from the root to the current
// level. Extending copies, so sibling branches never see each other's ancestors.
type ancestorSet map[uintptr]struct{}

func (s ancestorSet) has(id uintptr) bool {
	_, ok := s[id]
	return ok
}

func (s ancestorSet) with(id uintptr) ancestorSet {
	n := make(ancestorSet, len(s)+1)
	for k := range s {
		n[k] = struct{}{}
	}
	n[id] = struct{}{}
	return n
}

// engine runs one comparison. Pairing probes spawn nested engines that share the runContext
// but report into scratch trees.
type engine struct {
	rc      *runContext
	opcodes map[string][]Opcode
}

// diffLevel compares the pair at lv and records differences into tree. It is the single
// dispatch point: every recursion, probe and pass funnels back through here.
func (e *engine) diffLevel(lv *Level, anc ancestorSet, tree *resultTree) {
	if !e.rc.countVisit() {
		return
	}
	if len(e.rc.ops) > 0 && e.runCustomOperators(lv, tree) {
		return
	}
	// The same container on both sides is equal by definition, no matter its content.
	// This also breaks comparison of a cyclic structure against itself.
	if ida, ok := kind.IdentityOf(lv.A); ok {
		if idb, ok2 := kind.IdentityOf(lv.B); ok2 && ida == idb {
			return
		}
	}
	if e.skip(lv) {
		return
	}

	va := kind.ValueOf(lv.A)
	vb := kind.ValueOf(lv.B)
	if !va.IsValid() && !vb.IsValid() {
		return
	}
	ka := kind.Of(va)
	kb := kind.Of(vb)

	if !sameType(va, vb) {
		absorbed := false
		for _, group := range e.rc.cfg.TypeGroups {
			if typeInGroup(va, group) && typeInGroup(vb, group) {
				absorbed = true
				break
			}
		}
		if !absorbed && !e.typeChangeTolerated(ka, kb) {
			e.report(&Change{Kind: TypeChanged, Level: lv}, tree)
			return
		}
		// nil grouped with concrete types still has no content to descend into, so the
		// difference degrades to a plain value change.
		if !va.IsValid() || !vb.IsValid() {
			e.report(&Change{Kind: ValuesChanged, Level: lv}, tree)
			return
		}
	}

	if e.rc.cfg.IgnoreNaNInequality && isNaN(va) && isNaN(vb) {
		return
	}

	switch ka {
	case kind.Bool:
		e.diffBools(lv, va, vb, tree)
	case kind.String, kind.Bytes:
		e.diffStrings(lv, va, vb, tree)
	case kind.Number:
		e.diffNumbers(lv, va, vb, tree)
	case kind.Time:
		e.diffTimes(lv, va, vb, tree)
	case kind.UUID:
		e.diffUUIDs(lv, va, vb, tree)
	case kind.Map:
		e.diffMap(lv, va, vb, anc, tree)
	case kind.Set:
		e.diffSet(lv, va, vb, tree)
	case kind.Slice:
		e.diffIterable(lv, va, vb, anc, tree)
	case kind.Struct:
		e.diffStruct(lv, va, vb, anc, tree)
	default:
		e.report(&Change{Kind: Unprocessed, Level: lv}, tree)
	}
}

// typeChangeTolerated reports whether a pair of different concrete types may still be
// compared by content. Containers of the same shape always are: a map[string]any and a
// map[string]int hold comparable content even though their types differ.
func (e *engine) typeChangeTolerated(ka, kb kind.Kind) bool {
	if ka == kb {
		switch ka {
		case kind.Map, kind.Set, kind.Slice, kind.Struct, kind.Bytes, kind.String:
			return true
		case kind.Number:
			return e.rc.cfg.IgnoreNumericTypeChanges
		}
		return false
	}
	stringlike := func(k kind.Kind) bool { return k == kind.String || k == kind.Bytes }
	if stringlike(ka) && stringlike(kb) {
		return e.rc.cfg.IgnoreStringTypeChanges
	}
	return false
}

func sameType(a, b reflect.Value) bool {
	if !a.IsValid() || !b.IsValid() {
		return a.IsValid() == b.IsValid()
	}
	return a.Type() == b.Type()
}

func typeInGroup(v reflect.Value, group []reflect.Type) bool {
	for _, t := range group {
		if t == nil {
			if !v.IsValid() {
				return true
			}
			continue
		}
		if v.IsValid() && v.Type() == t {
			return true
		}
	}
	return false
}

func isNaN(v reflect.Value) bool {
	switch v.Kind() {
	case reflect.Float32, reflect.Float64:
		return math.IsNaN(v.Float())
	}
	return false
}

func typeName(x any) string {
	v := kind.ValueOf(x)
	if !v.IsValid() {
		return "nil"
	}
	return v.Type().String()
}

// skip applies the path, type and callback filters. A skipped level produces no records and
// is not descended into.
func (e *engine) skip(lv *Level) bool {
	cfg := e.rc.cfg
	path := lv.Path()
	if _, ok := cfg.ExcludePaths[path]; ok {
		return true
	}
	if len(cfg.IncludePaths) > 0 && path != "root" {
		within := false
		for p := range cfg.IncludePaths {
			// Keep the level when it sits under an included path, or on the way to one.
			if strings.HasPrefix(path, p) || strings.HasPrefix(p, path) {
				within = true
				break
			}
		}
		if !within {
			return true
		}
	}
	for _, re := range cfg.ExcludeRegexPaths {
		if re.MatchString(path) {
			return true
		}
	}
	if len(cfg.ExcludeTypes) > 0 {
		ta := reflect.TypeOf(lv.A)
		tb := reflect.TypeOf(lv.B)
		for _, t := range cfg.ExcludeTypes {
			if ta == t || tb == t {
				return true
			}
		}
	}
	present := func(x any) bool {
		_, absent := x.(notPresentType)
		return !absent
	}
	if f := cfg.ExcludeObjCallback; f != nil {
		if (present(lv.A) && f(lv.A, path)) || (present(lv.B) && f(lv.B, path)) {
			return true
		}
	}
	if f := cfg.ExcludeObjCallbackStrict; f != nil {
		if present(lv.A) && present(lv.B) && f(lv.A, path) && f(lv.B, path) {
			return true
		}
	}
	if f := cfg.IncludeObjCallback; f != nil && path != "root" {
		if !(present(lv.A) && f(lv.A, path)) && !(present(lv.B) && f(lv.B, path)) {
			return true
		}
	}
	if f := cfg.IncludeObjCallbackStrict; f != nil && path != "root" {
		if !(present(lv.A) && f(lv.A, path)) || !(present(lv.B) && f(lv.B, path)) {
			return true
		}
	}
	return false
}

// report records a change, re-checking the filters because additions and removals branch to
// levels that were never dispatched.
func (e *engine) report(c *Change, tree *resultTree) {
	if e.skip(c.Level) {
		return
	}
	tree.add(c)
}

// runCustomOperators gives installed operators the first shot at a pair. It returns true
// when an operator took over the subtree.
func (e *engine) runCustomOperators(lv *Level, tree *resultTree) bool {
	for _, op := range e.rc.ops {
		if !op.Match(lv) {
			continue
		}
		return op.GiveUpDiffing(lv, customSink{e: e, tree: tree})
	}
	return false
}

// customSink adapts the engine's reporting for custom operators.
type customSink struct {
	e    *engine
	tree *resultTree
}

func (s customSink) CustomReportResult(k Kind, level *Level, extra map[string]any) {
	s.e.report(&Change{Kind: k, Level: level, Extra: extra}, s.tree)
}

// descend recurses into a child pair, guarding against cycles through the child's container
// identity. Children already on the ancestor path are not entered again.
func (e *engine) descend(child *Level, anc ancestorSet, tree *resultTree) {
	if id, ok := kind.IdentityOf(child.A); ok {
		if anc.has(id) {
			return
		}
		anc = anc.with(id)
	}
	if id, ok := kind.IdentityOf(child.B); ok {
		if anc.has(id) {
			return
		}
		anc = anc.with(id)
	}
	e.diffLevel(child, anc, tree)
}
