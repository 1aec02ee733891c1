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

	log "github.com/golang/glog"

	"github.com/opensolver/gomip/mip"
)

// attachDuals fills in the LP-only solution attributes: row slacks from
// the primal point, and dual prices and reduced costs from an explicit
// solve of the dual program. c and x are in minimization space; sign maps
// minimization quantities back to the model's direction.
func (s *Solver) attachDuals(sol *solution, c []float64, sign float64, x, lb, ub []float64) {
	sol.slack = make([]float64, len(s.rows))
	for i, r := range s.rows {
		act := 0.0
		for j, a := range r.coeffs {
			act += a * x[j]
		}
		if r.sense == mip.GreaterOrEqual {
			sol.slack[i] = act - r.rhs
		} else {
			sol.slack[i] = r.rhs - act
		}
	}

	pi, rc, ok := s.solveDual(c, lb, ub)
	if !ok {
		log.Warning("dual solve failed; dual prices and reduced costs unavailable")
		return
	}
	for i := range pi {
		pi[i] *= sign
	}
	for j := range rc {
		rc[j] *= sign
	}
	sol.pi, sol.rc = pi, rc
	sol.hasDuals = true
}

// solveDual builds and solves the dual of min c'x over the structural
// rows and the finite variable bounds. One dual variable is created per
// structural row and per finite bound, sign-restricted by the row sense:
// nonpositive for "<=" rows, nonnegative for ">=" rows, free for "=".
// The dual constraints are one equality per primal variable, and the
// reduced costs are c minus the structural rows' contribution.
func (s *Solver) solveDual(c, lb, ub []float64) (pi, rc []float64, ok bool) {
	n := len(s.cols)
	m := len(s.rows)

	var dlb, dub, db []float64
	addDual := func(b float64, sense mip.Sense) {
		switch sense {
		case mip.LessOrEqual:
			dlb = append(dlb, math.Inf(-1))
			dub = append(dub, 0)
		case mip.GreaterOrEqual:
			dlb = append(dlb, 0)
			dub = append(dub, math.Inf(1))
		default:
			dlb = append(dlb, math.Inf(-1))
			dub = append(dub, math.Inf(1))
		}
		db = append(db, b)
	}
	for _, r := range s.rows {
		addDual(r.rhs, r.sense)
	}

	// One equality per primal variable: sum_i a_ij y_i = c_j.
	drows := make([]denseRow, n)
	for j := 0; j < n; j++ {
		drows[j] = denseRow{sense: mip.Equal, rhs: c[j]}
	}
	for i, r := range s.rows {
		for j, a := range r.coeffs {
			ensureLen(&drows[j].coeffs, i)
			drows[j].coeffs[i] = a
		}
	}
	for j := 0; j < n; j++ {
		if !math.IsInf(ub[j], 1) {
			addDual(ub[j], mip.LessOrEqual)
			ensureLen(&drows[j].coeffs, len(db)-1)
			drows[j].coeffs[len(db)-1] = 1
		}
		if !math.IsInf(lb[j], -1) {
			addDual(lb[j], mip.GreaterOrEqual)
			ensureLen(&drows[j].coeffs, len(db)-1)
			drows[j].coeffs[len(db)-1] = 1
		}
	}
	nd := len(db)
	for j := 0; j < n; j++ {
		ensureLen(&drows[j].coeffs, nd-1)
	}

	// Maximize b'y as min (-b)'y.
	negB := make([]float64, nd)
	for k, b := range db {
		negB[k] = -b
	}
	y, _, st := solveGeneralLP(negB, drows, dlb, dub)
	if st != mip.StatusOptimal {
		return nil, nil, false
	}

	pi = make([]float64, m)
	copy(pi, y[:m])
	rc = make([]float64, n)
	copy(rc, c)
	for i, r := range s.rows {
		for j, a := range r.coeffs {
			rc[j] -= a * pi[i]
		}
	}
	return pi, rc, true
}

// ensureLen grows the slice so index i is addressable.
func ensureLen(v *[]float64, i int) {
	for len(*v) <= i {
		*v = append(*v, 0)
	}
}
