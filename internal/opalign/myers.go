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

import "math"

// The search for an optimal d-path is abandoned beyond this cost and the furthest reaching
// path is used to pick a split instead. Suboptimal alignments are acceptable here: the engine
// compares the opcode result against a positional pass anyway and keeps the cheaper one.
const costLimit = 4096

// diff compares x and y and returns removal vectors: rx[s] set means x[s] is deleted, ry[t]
// set means y[t] is inserted. Elements covered by neither form the common subsequence.
//
// This is Myers' linear space variant: find the middle sequence of diagonals of an optimal
// path by searching forwards and backwards simultaneously, then recurse into the two halves.
func diff[T comparable](x, y []T) (rx, ry []bool) {
	rx = make([]bool, len(x)+1)
	ry = make([]bool, len(y)+1)

	smin, tmin := 0, 0
	smax, tmax := len(x), len(y)

	// Strip common prefix.
	for smin < smax && tmin < tmax && x[smin] == y[tmin] {
		smin++
		tmin++
	}

	// Strip common suffix.
	for smax > smin && tmax > tmin && x[smax-1] == y[tmax-1] {
		smax--
		tmax--
	}

	switch {
	case smin == smax && tmin == tmax:
		return rx, ry
	case smin == smax:
		for t := tmin; t < tmax; t++ {
			ry[t] = true
		}
		return rx, ry
	case tmin == tmax:
		for s := smin; s < smax; s++ {
			rx[s] = true
		}
		return rx, ry
	}

	diagonals := (smax - smin) + (tmax - tmin)
	vlen := 2*diagonals + 3
	buf := make([]int, 2*vlen)
	m := &myers[T]{
		x:  x,
		y:  y,
		vf: buf[:vlen],
		vb: buf[vlen:],
		v0: diagonals + 1,
		rx: rx,
		ry: ry,
	}
	m.compare(smin, smax, tmin, tmax)
	return rx, ry
}

type myers[T comparable] struct {
	x, y []T

	// v-arrays for the forwards and backwards searches. v[v0+k] stores the s-coordinate of
	// the endpoint of the furthest reaching d-path on diagonal k (t follows from t = s - k).
	vf, vb []int
	v0     int

	rx, ry []bool
}

// compare marks all deletions and insertions on an optimal path from (smin, tmin) to
// (smax, tmax). The rectangle must not have a common prefix or suffix.
func (m *myers[T]) compare(smin, smax, tmin, tmax int) {
	switch {
	case smin == smax:
		for t := tmin; t < tmax; t++ {
			m.ry[t] = true
		}
	case tmin == tmax:
		for s := smin; s < smax; s++ {
			m.rx[s] = true
		}
	default:
		s0, s1, t0, t1 := m.split(smin, smax, tmin, tmax)
		m.compare(smin, s0, tmin, t0)
		m.compare(s1, smax, t1, tmax)
	}
}

// split finds the endpoints of a, possibly empty, middle run of diagonals on an optimal path
// through the rectangle.
func (m *myers[T]) split(smin, smax, tmin, tmax int) (s0, s1, t0, t1 int) {
	x, y := m.x, m.y
	vf, vb := m.vf, m.vb
	v0 := m.v0

	kmin, kmax := smin-tmax, smax-tmin
	fmid, bmid := smin-tmin, smax-tmax
	fmin, fmax := fmid, fmid
	bmin, bmax := bmid, bmid
	odd := (smax-smin-(tmax-tmin))%2 != 0

	vf[v0+fmid] = smin
	vb[v0+bmid] = smax

	for d := 1; ; d++ {
		// Forwards search.
		if fmin > kmin {
			fmin--
			vf[v0+fmin-1] = math.MinInt
		} else {
			fmin++
		}
		if fmax < kmax {
			fmax++
			vf[v0+fmax+1] = math.MinInt
		} else {
			fmax--
		}
		for k := fmin; k <= fmax; k += 2 {
			k0 := k + v0
			var s int
			if vf[k0-1] < vf[k0+1] {
				s = vf[k0+1]
			} else {
				// Ties prefer the deletion branch, which keeps results deterministic.
				s = vf[k0-1] + 1
			}
			t := s - k
			sd, td := s, t
			for s < smax && t < tmax && x[s] == y[t] {
				s++
				t++
			}
			vf[k0] = s
			if odd && bmin <= k && k <= bmax && s >= vb[k0] {
				return sd, s, td, t
			}
		}

		// Backwards search.
		if bmin > kmin {
			bmin--
			vb[v0+bmin-1] = math.MaxInt
		} else {
			bmin++
		}
		if bmax < kmax {
			bmax++
			vb[v0+bmax+1] = math.MaxInt
		} else {
			bmax--
		}
		for k := bmin; k <= bmax; k += 2 {
			k0 := k + v0
			var s int
			if vb[k0-1] < vb[k0+1] {
				s = vb[k0-1]
			} else {
				s = vb[k0+1] - 1
			}
			t := s - k
			sd, td := s, t
			for s > smin && t > tmin && x[s-1] == y[t-1] {
				s--
				t--
			}
			vb[k0] = s
			if !odd && fmin <= k && k <= fmax && s <= vf[k0] {
				return s, sd, t, td
			}
		}

		if d < costLimit {
			continue
		}

		// Over the cost limit: take the best furthest reaching path seen so far and split
		// there. The result is a valid alignment, just not necessarily a minimal one.
		fbest, fbestk := math.MinInt, math.MinInt
		for k := fmin; k <= fmax; k += 2 {
			s := vf[k+v0]
			t := s - k
			if smin <= s && s < smax && tmin <= t && t < tmax && fbest < s+t {
				fbest = s + t
				fbestk = k
			}
		}
		bbest, bbestk := math.MaxInt, math.MaxInt
		for k := bmin; k <= bmax; k += 2 {
			s := vb[k+v0]
			t := s - k
			if smin <= s && s < smax && tmin <= t && t < tmax && s+t < bbest {
				bbest = s + t
				bbestk = k
			}
		}

		if (smax+tmax)-bbest < fbest-(smin+tmin) {
			k := fbestk
			k0 := k + v0
			s := vf[k0]
			t := s - k
			var pk int
			if vf[k0-1] < vf[k0+1] {
				pk = k + 1
			} else {
				pk = k - 1
			}
			ps := vf[pk+v0]
			pt := ps - pk
			diag := min(s-ps, t-pt)
			return s - diag, s, t - diag, t
		}
		k := bbestk
		k0 := k + v0
		s := vb[k0]
		t := s - k
		var pk int
		if vb[k0-1] < vb[k0+1] {
			pk = k - 1
		} else {
			pk = k + 1
		}
		ps := vb[pk+v0]
		pt := ps - pk
		diag := min(ps-s, pt-t)
		return s, s + diag, t, t + diag
	}
}
