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

// Package simplex is an in-process mip.Solver backend. It stores the
// problem in memory, solves linear relaxations with gonum's simplex
// method, and handles integrality with plain depth-first branch-and-bound.
// Dual prices and reduced costs are recovered for pure linear programs by
// solving the explicit dual.
//
// The backend exists to make models solvable without external bindings;
// it is suitable for problems of modest size, not a replacement for a
// production engine.
package simplex

import (
	"math"
	"sort"

	"github.com/opensolver/gomip/mip"
)

// Solver is an in-memory mip.Solver implementation.
type Solver struct {
	model *mip.Model

	cols     []col
	rows     []row
	objConst float64

	sol       *solution
	conflicts *conflictIndex

	maxNodes int
	intTol   float64
}

type col struct {
	name   string
	lb, ub float64
	obj    float64
	vt     mip.VarType
}

type row struct {
	name   string
	coeffs map[int]float64
	rhs    float64
	sense  mip.Sense
}

// solution is the outcome of the last Optimize call. The pool is ordered
// best first; slack, pi and rc are populated only for pure LP solves.
type solution struct {
	status   mip.OptimizationStatus
	pool     [][]float64
	objs     []float64
	slack    []float64
	pi       []float64
	rc       []float64
	hasDuals bool
}

// New returns a backend with default settings.
func New() *Solver {
	return &Solver{maxNodes: 1 << 20, intTol: 1e-6}
}

// SetMaxNodes limits the number of branch-and-bound nodes explored per
// Optimize call. When the limit stops the search with an incumbent the
// reported status is feasible rather than optimal.
func (s *Solver) SetMaxNodes(n int) {
	s.maxNodes = n
}

// SetIntFeasTol sets the integrality tolerance used to accept a
// relaxation point as integer feasible.
func (s *Solver) SetIntFeasTol(tol float64) {
	s.intTol = tol
}

// Attach implements mip.Solver.
func (s *Solver) Attach(m *mip.Model) {
	s.model = m
}

// AddVar implements mip.Solver.
func (s *Solver) AddVar(name string, lb, ub, obj float64, vt mip.VarType) int {
	s.cols = append(s.cols, col{name: name, lb: lb, ub: ub, obj: obj, vt: vt})
	return len(s.cols) - 1
}

// AddConstr implements mip.Solver.
func (s *Solver) AddConstr(expr *mip.LinExpr, name string) int {
	s.rows = append(s.rows, rowFromExpr(expr, name))
	return len(s.rows) - 1
}

func rowFromExpr(expr *mip.LinExpr, name string) row {
	coeffs := make(map[int]float64, expr.NumTerms())
	for v, c := range expr.Terms() {
		coeffs[v.Index()] = c
	}
	return row{name: name, coeffs: coeffs, rhs: -expr.Const(), sense: expr.Sense()}
}

func (s *Solver) VarName(idx int) string { return s.cols[idx].name }
func (s *Solver) SetVarName(idx int, n string) { s.cols[idx].name = n }
func (s *Solver) VarLB(idx int) float64 { return s.cols[idx].lb }
func (s *Solver) SetVarLB(idx int, lb float64) { s.cols[idx].lb = lb }
func (s *Solver) VarUB(idx int) float64 { return s.cols[idx].ub }
func (s *Solver) SetVarUB(idx int, ub float64) { s.cols[idx].ub = ub }
func (s *Solver) VarObj(idx int) float64 { return s.cols[idx].obj }
func (s *Solver) SetVarObj(idx int, o float64) { s.cols[idx].obj = o }
func (s *Solver) VarType(idx int) mip.VarType { return s.cols[idx].vt }

// SetVarType implements mip.Solver. Turning a variable binary clamps its
// bounds to [0, 1].
func (s *Solver) SetVarType(idx int, vt mip.VarType) {
	s.cols[idx].vt = vt
	if vt == mip.Binary {
		s.cols[idx].lb, s.cols[idx].ub = 0, 1
	}
}

// VarColumn implements mip.Solver: the transposed view of the variable's
// participation across all rows, in row order.
func (s *Solver) VarColumn(idx int) mip.Column {
	var constrs []mip.Constr
	var coeffs []float64
	for i := range s.rows {
		if a, ok := s.rows[i].coeffs[idx]; ok {
			constrs = append(constrs, s.model.Constr(i))
			coeffs = append(coeffs, a)
		}
	}
	column, _ := mip.NewColumn(constrs, coeffs)
	return column
}

// SetVarColumn implements mip.Solver: it rewrites the variable's
// coefficient in every row of the matrix.
func (s *Solver) SetVarColumn(idx int, column mip.Column) {
	for i := range s.rows {
		delete(s.rows[i].coeffs, idx)
	}
	constrs, coeffs := column.Constrs(), column.Coeffs()
	for k := range constrs {
		if math.Abs(coeffs[k]) <= mip.EPS {
			continue
		}
		s.rows[constrs[k].Index()].coeffs[idx] = coeffs[k]
	}
}

func (s *Solver) VarRC(idx int) (float64, bool) {
	if s.sol == nil || !s.sol.hasDuals {
		return 0, false
	}
	return s.sol.rc[idx], true
}

func (s *Solver) VarX(idx int) (float64, bool) {
	if s.sol == nil || len(s.sol.pool) == 0 {
		return 0, false
	}
	return s.sol.pool[0][idx], true
}

func (s *Solver) VarXi(idx, sol int) (float64, bool) {
	if s.sol == nil || sol < 0 || sol >= len(s.sol.pool) {
		return 0, false
	}
	return s.sol.pool[sol][idx], true
}

func (s *Solver) ConstrName(idx int) string { return s.rows[idx].name }
func (s *Solver) ConstrRHS(idx int) float64 { return s.rows[idx].rhs }
func (s *Solver) SetConstrRHS(idx int, r float64) { s.rows[idx].rhs = r }

// ConstrExpr implements mip.Solver, rebuilding the sense-tagged
// expression from the stored row.
func (s *Solver) ConstrExpr(idx int) *mip.LinExpr {
	r := s.rows[idx]
	idxs := sortedKeys(r.coeffs)
	vars := make([]mip.Var, len(idxs))
	coeffs := make([]float64, len(idxs))
	for k, j := range idxs {
		vars[k] = s.model.Var(j)
		coeffs[k] = r.coeffs[j]
	}
	e, _ := mip.NewLinExpr(vars, coeffs, -r.rhs, r.sense)
	return e
}

// SetConstrExpr implements mip.Solver, replacing the row while keeping
// its name.
func (s *Solver) SetConstrExpr(idx int, expr *mip.LinExpr) {
	s.rows[idx] = rowFromExpr(expr, s.rows[idx].name)
}

func (s *Solver) ConstrSlack(idx int) (float64, bool) {
	if s.sol == nil || s.sol.slack == nil {
		return 0, false
	}
	return s.sol.slack[idx], true
}

func (s *Solver) ConstrPi(idx int) (float64, bool) {
	if s.sol == nil || !s.sol.hasDuals {
		return 0, false
	}
	return s.sol.pi[idx], true
}

// SetObjective implements mip.Solver, replacing every objective
// coefficient and the objective constant.
func (s *Solver) SetObjective(expr *mip.LinExpr) {
	for j := range s.cols {
		s.cols[j].obj = 0
	}
	s.objConst = expr.Const()
	for v, c := range expr.Terms() {
		s.cols[v.Index()].obj = c
	}
}

// Objective implements mip.Solver.
func (s *Solver) Objective() *mip.LinExpr {
	var vars []mip.Var
	var coeffs []float64
	for j := range s.cols {
		if s.cols[j].obj == 0 {
			continue
		}
		vars = append(vars, s.model.Var(j))
		coeffs = append(coeffs, s.cols[j].obj)
	}
	e, _ := mip.NewLinExpr(vars, coeffs, s.objConst, mip.SenseNone)
	return e
}

func (s *Solver) ObjectiveValue() (float64, bool) {
	if s.sol == nil || len(s.sol.objs) == 0 {
		return 0, false
	}
	return s.sol.objs[0], true
}

func (s *Solver) PoolObjValue(sol int) (float64, bool) {
	if s.sol == nil || sol < 0 || sol >= len(s.sol.objs) {
		return 0, false
	}
	return s.sol.objs[sol], true
}

func (s *Solver) NumSolutions() int {
	if s.sol == nil {
		return 0
	}
	return len(s.sol.pool)
}

// Invalidate implements mip.Solver, discarding the stored solution and
// the conflict index after a model mutation.
func (s *Solver) Invalidate() {
	s.sol = nil
	s.conflicts = nil
}

func sortedKeys(m map[int]float64) []int {
	keys := make([]int, 0, len(m))
	for k := range m {
		keys = append(keys, k)
	}
	sort.Ints(keys)
	return keys
}
