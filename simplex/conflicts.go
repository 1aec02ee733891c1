// Copyright 2024-2026 The gomip Authors
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

package simplex

import (
	"math"
	"sort"

	"github.com/opensolver/gomip/mip"
)

// conflictIndex records pairwise incompatibilities between binary
// assignments as canonically ordered literal-code pairs. A literal code is
// 2*idx for variable idx at zero and 2*idx+1 for the variable at one.
type conflictIndex struct {
	pairs map[[2]int]struct{}
}

func litCode(idx int, value bool) int {
	c := 2 * idx
	if value {
		c++
	}
	return c
}

func (ci *conflictIndex) add(a, b int) {
	if a > b {
		a, b = b, a
	}
	ci.pairs[[2]int{a, b}] = struct{}{}
}

func (ci *conflictIndex) has(a, b int) bool {
	if a > b {
		a, b = b, a
	}
	_, ok := ci.pairs[[2]int{a, b}]
	return ok
}

// Conflicting implements mip.Solver. Opposite assignments to the same
// variable always conflict; everything else is answered from the probed
// index.
func (s *Solver) Conflicting(a, b mip.Literal) bool {
	if a.Var.Index() == b.Var.Index() {
		return a.Value != b.Value
	}
	return s.conflictIndex().has(litCode(a.Var.Index(), a.Value), litCode(b.Var.Index(), b.Value))
}

// ConflictingNodes implements mip.Solver, partitioning all variables with
// a recorded conflict against the literal by the conflicting assignment.
func (s *Solver) ConflictingNodes(l mip.Literal) (atOne, atZero []int) {
	code := litCode(l.Var.Index(), l.Value)
	oneSet := map[int]struct{}{}
	zeroSet := map[int]struct{}{}
	for p := range s.conflictIndex().pairs {
		var other int
		switch code {
		case p[0]:
			other = p[1]
		case p[1]:
			other = p[0]
		default:
			continue
		}
		if other%2 == 1 {
			oneSet[other/2] = struct{}{}
		} else {
			zeroSet[other/2] = struct{}{}
		}
	}
	return sortedSet(oneSet), sortedSet(zeroSet)
}

func sortedSet(set map[int]struct{}) []int {
	out := make([]int, 0, len(set))
	for idx := range set {
		out = append(out, idx)
	}
	sort.Ints(out)
	return out
}

// conflictIndex rebuilds the probed index lazily after mutations.
func (s *Solver) conflictIndex() *conflictIndex {
	if s.conflicts == nil {
		s.conflicts = s.buildConflicts()
	}
	return s.conflicts
}

// buildConflicts probes every row for binary pairs that cannot both take
// a given assignment. A "<=" row yields a conflict for a pair of
// assignments when the row's minimal activity over all other variables
// plus the pair's contribution already exceeds the right-hand side. ">="
// rows are probed as their negation and "=" rows as both.
func (s *Solver) buildConflicts() *conflictIndex {
	ci := &conflictIndex{pairs: make(map[[2]int]struct{})}
	for _, r := range s.rows {
		switch r.sense {
		case mip.LessOrEqual:
			s.probeRow(ci, r.coeffs, r.rhs, 1)
		case mip.GreaterOrEqual:
			s.probeRow(ci, r.coeffs, r.rhs, -1)
		case mip.Equal:
			s.probeRow(ci, r.coeffs, r.rhs, 1)
			s.probeRow(ci, r.coeffs, r.rhs, -1)
		}
	}
	return ci
}

// probeRow treats dir*coeffs'x <= dir*rhs.
func (s *Solver) probeRow(ci *conflictIndex, coeffs map[int]float64, rhs, dir float64) {
	rhs *= dir
	var bins []int
	minAct := 0.0
	for j, a := range coeffs {
		a *= dir
		if s.cols[j].vt == mip.Binary {
			bins = append(bins, j)
			minAct += math.Min(0, a)
			continue
		}
		lo := math.Min(a*s.cols[j].lb, a*s.cols[j].ub)
		if math.IsInf(lo, -1) {
			return // the row can always be repaired through this variable
		}
		minAct += lo
	}
	if len(bins) < 2 {
		return
	}
	sort.Ints(bins)
	for bi, j := range bins {
		aj := dir * coeffs[j]
		for _, k := range bins[bi+1:] {
			ak := dir * coeffs[k]
			base := minAct - math.Min(0, aj) - math.Min(0, ak)
			for _, vj := range [2]float64{0, 1} {
				for _, vk := range [2]float64{0, 1} {
					if base+aj*vj+ak*vk > rhs+feasTol {
						ci.add(litCode(j, vj == 1), litCode(k, vk == 1))
					}
				}
			}
		}
	}
}
