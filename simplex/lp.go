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
	"errors"
	"math"

	log "github.com/golang/glog"
	"gonum.org/v1/gonum/mat"
	"gonum.org/v1/gonum/optimize/convex/lp"

	"github.com/opensolver/gomip/mip"
)

const feasTol = 1e-9

// denseRow is one constraint over the model's variables.
type denseRow struct {
	coeffs []float64
	sense  mip.Sense
	rhs    float64
}

// solveGeneralLP minimizes c'x subject to the rows and the box bounds
// lb <= x <= ub. Variables may be free or negative; the problem is
// rewritten into the nonnegative standard form gonum's simplex expects:
// finite lower bounds are shifted out, free variables are split into a
// positive and a negative part, and inequalities are slack-augmented
// into equalities.
func solveGeneralLP(c []float64, rows []denseRow, lb, ub []float64) (x []float64, obj float64, status mip.OptimizationStatus) {
	n := len(c)
	for j := 0; j < n; j++ {
		if lb[j] > ub[j]+feasTol {
			return nil, 0, mip.StatusInfeasible
		}
	}

	// Map model variables to nonnegative LP columns.
	type lpCol struct {
		base  int
		split bool
		shift float64
	}
	cols := make(map[int]lpCol, n)
	nLP := 0
	for j := 0; j < n; j++ {
		if math.IsInf(lb[j], -1) {
			cols[j] = lpCol{base: nLP, split: true}
			nLP += 2
		} else {
			cols[j] = lpCol{base: nLP, shift: lb[j]}
			nLP++
		}
	}

	// Gather the general rows in shifted space: the structural rows plus
	// one upper-bound row per variable with a finite upper bound.
	type genRow struct {
		coeffs map[int]float64 // keyed by LP column
		b      float64
		sense  mip.Sense
	}
	var gen []genRow
	addRow := func(coeffs map[int]float64, b float64, sense mip.Sense) bool {
		if len(coeffs) == 0 {
			// Structurally empty row: feasible or not, nothing to solve.
			switch sense {
			case mip.LessOrEqual:
				return b >= -feasTol
			case mip.GreaterOrEqual:
				return b <= feasTol
			default:
				return math.Abs(b) <= feasTol
			}
		}
		gen = append(gen, genRow{coeffs: coeffs, b: b, sense: sense})
		return true
	}
	for _, r := range rows {
		coeffs := make(map[int]float64)
		b := r.rhs
		for j, a := range r.coeffs {
			if math.Abs(a) <= mip.EPS {
				continue
			}
			lc := cols[j]
			coeffs[lc.base] += a
			if lc.split {
				coeffs[lc.base+1] -= a
			}
			b -= a * lc.shift
		}
		if !addRow(coeffs, b, r.sense) {
			return nil, 0, mip.StatusInfeasible
		}
	}
	for j := 0; j < n; j++ {
		if math.IsInf(ub[j], 1) {
			continue
		}
		lc := cols[j]
		coeffs := map[int]float64{lc.base: 1}
		if lc.split {
			coeffs[lc.base+1] = -1
		}
		gen = append(gen, genRow{coeffs: coeffs, b: ub[j] - lc.shift, sense: mip.LessOrEqual})
	}

	// Objective over LP columns plus the constant the shift contributes.
	cLP := make([]float64, nLP)
	constShift := 0.0
	for j := 0; j < n; j++ {
		lc := cols[j]
		cLP[lc.base] = c[j]
		if lc.split {
			cLP[lc.base+1] = -c[j]
		}
		constShift += c[j] * lc.shift
	}

	toModelSpace := func(xLP []float64) []float64 {
		out := make([]float64, n)
		for j := 0; j < n; j++ {
			lc := cols[j]
			if lc.split {
				out[j] = xLP[lc.base] - xLP[lc.base+1]
			} else {
				out[j] = lc.shift + xLP[lc.base]
			}
		}
		return out
	}

	if len(gen) == 0 {
		// No rows survive: each nonnegative column minimizes on its own.
		xLP := make([]float64, nLP)
		for k := 0; k < nLP; k++ {
			if cLP[k] < -feasTol {
				return nil, 0, mip.StatusUnbounded
			}
		}
		return toModelSpace(xLP), constShift, mip.StatusOptimal
	}

	// Slack-augment to equality standard form.
	nSlack := 0
	for _, g := range gen {
		if g.sense != mip.Equal {
			nSlack++
		}
	}
	total := nLP + nSlack
	aData := make([]float64, len(gen)*total)
	bStd := make([]float64, len(gen))
	cStd := make([]float64, total)
	copy(cStd, cLP)
	slackAt := nLP
	for i, g := range gen {
		base := i * total
		for k, a := range g.coeffs {
			aData[base+k] = a
		}
		switch g.sense {
		case mip.LessOrEqual:
			aData[base+slackAt] = 1
			slackAt++
		case mip.GreaterOrEqual:
			aData[base+slackAt] = -1
			slackAt++
		}
		bStd[i] = g.b
	}

	// Columns that appear in no row would trip the simplex input checks;
	// fix them at zero (or detect unboundedness) and strip them.
	used := make([]bool, total)
	for i := range gen {
		base := i * total
		for k := 0; k < total; k++ {
			if aData[base+k] != 0 {
				used[k] = true
			}
		}
	}
	keep := make([]int, 0, total)
	for k := 0; k < total; k++ {
		if used[k] {
			keep = append(keep, k)
			continue
		}
		if cStd[k] < -feasTol {
			return nil, 0, mip.StatusUnbounded
		}
	}
	cSolve := make([]float64, len(keep))
	aSolve := mat.NewDense(len(gen), len(keep), nil)
	for kk, k := range keep {
		cSolve[kk] = cStd[k]
		for i := range gen {
			aSolve.Set(i, kk, aData[i*total+k])
		}
	}

	z, xSolve, err := lp.Simplex(cSolve, aSolve, bStd, 0, nil)
	switch {
	case err == nil:
	case errors.Is(err, lp.ErrInfeasible):
		return nil, 0, mip.StatusInfeasible
	case errors.Is(err, lp.ErrUnbounded):
		return nil, 0, mip.StatusUnbounded
	default:
		log.Errorf("simplex failed: %v", err)
		return nil, 0, mip.StatusError
	}

	xLP := make([]float64, total)
	for kk, k := range keep {
		xLP[k] = xSolve[kk]
	}
	return toModelSpace(xLP), z + constShift, mip.StatusOptimal
}
