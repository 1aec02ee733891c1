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

// Optimize implements mip.Solver. Pure linear programs are solved in one
// simplex call and get duals attached; problems with integer or binary
// variables go through depth-first branch-and-bound on variable bounds.
func (s *Solver) Optimize() mip.OptimizationStatus {
	s.sol = nil
	lb, ub := s.baseBounds()
	if s.hasIntegers() {
		return s.branchAndBound(lb, ub)
	}
	return s.solveRoot(lb, ub)
}

// baseBounds copies the column bounds, rounding integer variable bounds
// inward.
func (s *Solver) baseBounds() (lb, ub []float64) {
	lb = make([]float64, len(s.cols))
	ub = make([]float64, len(s.cols))
	for j := range s.cols {
		lb[j], ub[j] = s.cols[j].lb, s.cols[j].ub
		if s.cols[j].vt != mip.Continuous {
			if !math.IsInf(lb[j], -1) {
				lb[j] = math.Ceil(lb[j] - feasTol)
			}
			if !math.IsInf(ub[j], 1) {
				ub[j] = math.Floor(ub[j] + feasTol)
			}
		}
	}
	return lb, ub
}

func (s *Solver) hasIntegers() bool {
	for j := range s.cols {
		if s.cols[j].vt != mip.Continuous {
			return true
		}
	}
	return false
}

// denseRows converts the sparse row store into the dense form the LP
// helper consumes.
func (s *Solver) denseRows() []denseRow {
	rows := make([]denseRow, len(s.rows))
	for i, r := range s.rows {
		coeffs := make([]float64, len(s.cols))
		for j, a := range r.coeffs {
			coeffs[j] = a
		}
		rows[i] = denseRow{coeffs: coeffs, sense: r.sense, rhs: r.rhs}
	}
	return rows
}

// objVector returns the objective in minimization space together with the
// sign that maps a minimization value back to the model's direction.
func (s *Solver) objVector() (c []float64, sign float64) {
	sign = 1
	if s.model.Sense() == mip.Maximize {
		sign = -1
	}
	c = make([]float64, len(s.cols))
	for j := range s.cols {
		c[j] = sign * s.cols[j].obj
	}
	return c, sign
}

func (s *Solver) solveRoot(lb, ub []float64) mip.OptimizationStatus {
	c, sign := s.objVector()
	x, objMin, st := solveGeneralLP(c, s.denseRows(), lb, ub)
	if st != mip.StatusOptimal {
		s.sol = &solution{status: st}
		return st
	}
	sol := &solution{
		status: mip.StatusOptimal,
		pool:   [][]float64{x},
		objs:   []float64{sign*objMin + s.objConst},
	}
	s.attachDuals(sol, c, sign, x, lb, ub)
	s.sol = sol
	return sol.status
}

type node struct {
	lb, ub []float64
}

func (s *Solver) branchAndBound(lb, ub []float64) mip.OptimizationStatus {
	c, sign := s.objVector()
	rows := s.denseRows()

	stack := []node{{lb: lb, ub: ub}}
	var pool [][]float64
	var poolObjs []float64
	bestMin := math.Inf(1)
	nodes := 0
	limitHit := false

	for len(stack) > 0 {
		if nodes >= s.maxNodes {
			limitHit = true
			break
		}
		nodes++
		nd := stack[len(stack)-1]
		stack = stack[:len(stack)-1]

		x, objMin, st := solveGeneralLP(c, rows, nd.lb, nd.ub)
		switch st {
		case mip.StatusInfeasible:
			continue
		case mip.StatusUnbounded:
			// The relaxation admits an unbounded ray; the integer
			// problem inherits it.
			s.sol = &solution{status: mip.StatusUnbounded}
			return mip.StatusUnbounded
		case mip.StatusError:
			s.sol = &solution{status: mip.StatusError}
			return mip.StatusError
		}
		if len(pool) > 0 && objMin >= bestMin-feasTol {
			continue
		}

		j := s.fractionalVar(x)
		if j < 0 {
			s.snap(x)
			pool = append(pool, x)
			poolObjs = append(poolObjs, sign*objMin+s.objConst)
			bestMin = objMin
			log.V(2).Infof("node %d: incumbent with objective %g", nodes, sign*objMin+s.objConst)
			continue
		}

		down := node{lb: nd.lb, ub: clone(nd.ub)}
		down.ub[j] = math.Floor(x[j])
		up := node{lb: clone(nd.lb), ub: nd.ub}
		up.lb[j] = math.Floor(x[j]) + 1
		stack = append(stack, up, down)
	}

	if len(pool) == 0 {
		st := mip.StatusInfeasible
		if limitHit {
			st = mip.StatusNoSolutionFound
		}
		s.sol = &solution{status: st}
		return st
	}

	// Incumbents were appended in improving order; the pool is best first.
	reversePool(pool, poolObjs)
	st := mip.StatusOptimal
	if limitHit {
		st = mip.StatusFeasible
	}
	s.sol = &solution{status: st, pool: pool, objs: poolObjs}
	return st
}

// fractionalVar picks the integer variable farthest from an integer value,
// or -1 when the point is integer feasible.
func (s *Solver) fractionalVar(x []float64) int {
	best, bestDist := -1, s.intTol
	for j := range s.cols {
		if s.cols[j].vt == mip.Continuous {
			continue
		}
		if d := math.Abs(x[j] - math.Round(x[j])); d > bestDist {
			best, bestDist = j, d
		}
	}
	return best
}

// snap rounds integer variables of an accepted point to exact integers.
func (s *Solver) snap(x []float64) {
	for j := range s.cols {
		if s.cols[j].vt != mip.Continuous {
			x[j] = math.Round(x[j])
		}
	}
}

func clone(v []float64) []float64 {
	out := make([]float64, len(v))
	copy(out, v)
	return out
}

func reversePool(pool [][]float64, objs []float64) {
	for i, j := 0, len(pool)-1; i < j; i, j = i+1, j-1 {
		pool[i], pool[j] = pool[j], pool[i]
		objs[i], objs[j] = objs[j], objs[i]
	}
}
