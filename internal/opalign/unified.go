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

package opalign

import (
	"fmt"
	"strings"
)

const (
	prefixMatch  = " "
	prefixDelete = "-"
	prefixInsert = "+"
)

// unifiedContext is the number of matching lines around each hunk.
const unifiedContext = 3

// Unified compares x and y line by line and renders the changes in unified format. It is used
// to attach a readable sub-diff to multiline string changes; identical inputs return "".
func Unified(x, y string) string {
	xlines := strings.SplitAfter(x, "\n")
	ylines := strings.SplitAfter(y, "\n")
	if xlines[len(xlines)-1] == "" {
		xlines = xlines[:len(xlines)-1]
	} else {
		xlines[len(xlines)-1] += "\n"
	}
	if ylines[len(ylines)-1] == "" {
		ylines = ylines[:len(ylines)-1]
	} else {
		ylines[len(ylines)-1] += "\n"
	}

	rx, ry := diff(xlines, ylines)

	var b strings.Builder
	for _, h := range hunks(rx, ry, len(xlines), len(ylines)) {
		fmt.Fprintf(&b, "@@ -%d,%d +%d,%d @@\n", h.s0+1, h.s1-h.s0, h.t0+1, h.t1-h.t0)
		for s, t := h.s0, h.t0; s < h.s1 || t < h.t1; {
			for s < h.s1 && rx[s] {
				b.WriteString(prefixDelete)
				b.WriteString(xlines[s])
				s++
			}
			for t < h.t1 && ry[t] {
				b.WriteString(prefixInsert)
				b.WriteString(ylines[t])
				t++
			}
			for s < h.s1 && t < h.t1 && !rx[s] && !ry[t] {
				b.WriteString(prefixMatch)
				b.WriteString(xlines[s])
				s++
				t++
			}
		}
	}
	return b.String()
}

type hunk struct {
	s0, s1, t0, t1 int
}

// hunks groups consecutive edits with up to unifiedContext matching lines of surrounding
// context; hunks whose context windows overlap are merged.
func hunks(rx, ry []bool, n, m int) []hunk {
	var out []hunk
	s, t := 0, 0
	s0, t0 := -1, -1
	run := 0
	for s < n || t < m {
		del := s < n && rx[s]
		ins := t < m && ry[t]
		if del || ins {
			run = 0
			if s0 < 0 {
				s0, t0 = max(0, s-unifiedContext), max(0, t-unifiedContext)
				if len(out) > 0 && out[len(out)-1].s1 >= s0 {
					last := out[len(out)-1]
					s0, t0 = last.s0, last.t0
					out = out[:len(out)-1]
				}
			}
			if del {
				s++
			}
			if ins {
				t++
			}
		} else {
			s++
			t++
			run++
		}
		if s0 >= 0 && (run >= unifiedContext || (s >= n && t >= m)) {
			out = append(out, hunk{s0, s, t0, t})
			s0, t0 = -1, -1
		}
	}
	return out
}
