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

package mip

// fakeSolver is an in-test backend that stores attributes verbatim and
// serves whatever canned solution, duals and conflicts the test sets.
type fakeSolver struct {
	model *Model
	vars  []fakeVar
	rows  []fakeRow
	obj   *LinExpr

	status OptimizationStatus
	pool   [][]float64
	objs   []float64
	rc     map[int]float64
	pi     map[int]float64
	slack  map[int]float64

	conflictPairs [][2]Literal
	invalidations int
}

type fakeVar struct {
	name   string
	lb, ub float64
	obj    float64
	vt     VarType
}

type fakeRow struct {
	name string
	expr *LinExpr
}

func newFake() *fakeSolver {
	return &fakeSolver{
		rc:    map[int]float64{},
		pi:    map[int]float64{},
		slack: map[int]float64{},
	}
}

func (s *fakeSolver) Attach(m *Model) { s.model = m }

func (s *fakeSolver) AddVar(name string, lb, ub, obj float64, vt VarType) int {
	s.vars = append(s.vars, fakeVar{name: name, lb: lb, ub: ub, obj: obj, vt: vt})
	return len(s.vars) - 1
}

func (s *fakeSolver) AddConstr(expr *LinExpr, name string) int {
	s.rows = append(s.rows, fakeRow{name: name, expr: expr})
	return len(s.rows) - 1
}

func (s *fakeSolver) VarName(idx int) string { return s.vars[idx].name }
func (s *fakeSolver) SetVarName(idx int, n string) { s.vars[idx].name = n }
func (s *fakeSolver) VarLB(idx int) float64 { return s.vars[idx].lb }
func (s *fakeSolver) SetVarLB(idx int, lb float64) { s.vars[idx].lb = lb }
func (s *fakeSolver) VarUB(idx int) float64 { return s.vars[idx].ub }
func (s *fakeSolver) SetVarUB(idx int, ub float64) { s.vars[idx].ub = ub }
func (s *fakeSolver) VarObj(idx int) float64 { return s.vars[idx].obj }
func (s *fakeSolver) SetVarObj(idx int, obj float64) { s.vars[idx].obj = obj }
func (s *fakeSolver) VarType(idx int) VarType { return s.vars[idx].vt }
func (s *fakeSolver) SetVarType(idx int, vt VarType) { s.vars[idx].vt = vt }

func (s *fakeSolver) VarColumn(idx int) Column {
	var constrs []Constr
	var coeffs []float64
	for i, r := range s.rows {
		if t, ok := r.expr.terms[idx]; ok {
			constrs = append(constrs, Constr{model: s.model, idx: i})
			coeffs = append(coeffs, t.coeff)
		}
	}
	col, _ := NewColumn(constrs, coeffs)
	return col
}

func (s *fakeSolver) SetVarColumn(idx int, col Column) {
	for i := range s.rows {
		delete(s.rows[i].expr.terms, idx)
	}
	coeffs := col.Coeffs()
	for k, c := range col.Constrs() {
		s.rows[c.idx].expr.terms[idx] = term{v: Var{model: s.model, idx: idx}, coeff: coeffs[k]}
	}
}

func (s *fakeSolver) VarRC(idx int) (float64, bool) {
	v, ok := s.rc[idx]
	return v, ok
}

// Variables beyond the canned vector's length report unknown, letting
// tests exercise partial-unknown propagation.
func (s *fakeSolver) VarX(idx int) (float64, bool) {
	if len(s.pool) == 0 || idx >= len(s.pool[0]) {
		return 0, false
	}
	return s.pool[0][idx], true
}

func (s *fakeSolver) VarXi(idx, sol int) (float64, bool) {
	if sol < 0 || sol >= len(s.pool) || idx >= len(s.pool[sol]) {
		return 0, false
	}
	return s.pool[sol][idx], true
}

func (s *fakeSolver) ConstrName(idx int) string { return s.rows[idx].name }

func (s *fakeSolver) ConstrRHS(idx int) float64 { return -s.rows[idx].expr.constant }

func (s *fakeSolver) SetConstrRHS(idx int, rhs float64) {
	s.rows[idx].expr.constant = -rhs
}

func (s *fakeSolver) ConstrExpr(idx int) *LinExpr { return s.rows[idx].expr.Copy() }

func (s *fakeSolver) SetConstrExpr(idx int, expr *LinExpr) { s.rows[idx].expr = expr }

func (s *fakeSolver) ConstrSlack(idx int) (float64, bool) {
	v, ok := s.slack[idx]
	return v, ok
}

func (s *fakeSolver) ConstrPi(idx int) (float64, bool) {
	v, ok := s.pi[idx]
	return v, ok
}

func (s *fakeSolver) SetObjective(expr *LinExpr) { s.obj = expr }

func (s *fakeSolver) Objective() *LinExpr {
	if s.obj == nil {
		return &LinExpr{}
	}
	return s.obj.Copy()
}

func (s *fakeSolver) ObjectiveValue() (float64, bool) {
	if len(s.objs) == 0 {
		return 0, false
	}
	return s.objs[0], true
}

func (s *fakeSolver) PoolObjValue(sol int) (float64, bool) {
	if sol < 0 || sol >= len(s.objs) {
		return 0, false
	}
	return s.objs[sol], true
}

func (s *fakeSolver) NumSolutions() int { return len(s.pool) }

func (s *fakeSolver) Optimize() OptimizationStatus { return s.status }

func (s *fakeSolver) Invalidate() { s.invalidations++ }

func (s *fakeSolver) Conflicting(a, b Literal) bool {
	for _, p := range s.conflictPairs {
		if (p[0] == a && p[1] == b) || (p[0] == b && p[1] == a) {
			return true
		}
	}
	return false
}

func (s *fakeSolver) ConflictingNodes(l Literal) (atOne, atZero []int) {
	for _, p := range s.conflictPairs {
		var other Literal
		switch l {
		case p[0]:
			other = p[1]
		case p[1]:
			other = p[0]
		default:
			continue
		}
		if other.Value {
			atOne = append(atOne, other.Var.idx)
		} else {
			atZero = append(atZero, other.Var.idx)
		}
	}
	return atOne, atZero
}
