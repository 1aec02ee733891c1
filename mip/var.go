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

import "fmt"

// Var is a reference to a decision variable in a model. It carries no
// state of its own: every attribute is delegated to the owning model's
// solver, keyed by the variable's stable index. Handles are cheap values;
// two handles with the same model and index are equal and interchangeable
// as map keys.
type Var struct {
	model *Model
	idx   int
}

// Index returns the index of the variable in the owning model's table.
func (v Var) Index() int {
	return v.idx
}

// Model returns the model this variable belongs to.
func (v Var) Model() *Model {
	return v.model
}

// Name returns the variable name.
func (v Var) Name() string {
	return v.model.solver.VarName(v.idx)
}

// SetName renames the variable.
func (v Var) SetName(name string) {
	v.model.solver.SetVarName(v.idx, name)
}

// LB returns the variable lower bound.
func (v Var) LB() float64 {
	return v.model.solver.VarLB(v.idx)
}

// SetLB sets the variable lower bound.
func (v Var) SetLB(lb float64) {
	v.model.solver.SetVarLB(v.idx, lb)
	v.model.invalidate()
}

// UB returns the variable upper bound.
func (v Var) UB() float64 {
	return v.model.solver.VarUB(v.idx)
}

// SetUB sets the variable upper bound.
func (v Var) SetUB(ub float64) {
	v.model.solver.SetVarUB(v.idx, ub)
	v.model.invalidate()
}

// Obj returns the coefficient of the variable in the objective function.
func (v Var) Obj() float64 {
	return v.model.solver.VarObj(v.idx)
}

// SetObj sets the coefficient of the variable in the objective function.
func (v Var) SetObj(obj float64) {
	v.model.solver.SetVarObj(v.idx, obj)
	v.model.invalidate()
}

// Type returns the variable type.
func (v Var) Type() VarType {
	return v.model.solver.VarType(v.idx)
}

// SetType changes the variable type. A type outside {binary, integer,
// continuous} is rejected with ErrInvalidVarType before any solver
// delegation.
func (v Var) SetType(t VarType) error {
	if !t.valid() {
		return fmt.Errorf("%q: %w", string(t), ErrInvalidVarType)
	}
	v.model.solver.SetVarType(v.idx, t)
	v.model.invalidate()
	return nil
}

// Column returns the variable's non-zero entries across all constraints,
// the transposed view of the constraint matrix.
func (v Var) Column() Column {
	return v.model.solver.VarColumn(v.idx)
}

// SetColumn replaces the variable's participation across the whole
// constraint matrix.
func (v Var) SetColumn(col Column) {
	v.model.solver.SetVarColumn(v.idx, col)
	v.model.invalidate()
}

// RC returns the reduced cost of the variable, available only after a
// pure linear programming model was optimized.
func (v Var) RC() (float64, bool) {
	return v.model.solver.VarRC(v.idx)
}

// X returns the value of the variable in the best known solution, false
// when no solution is available.
func (v Var) X() (float64, bool) {
	return v.model.solver.VarX(v.idx)
}

// Xi returns the value of the variable in the i-th solution of the
// solution pool. It returns false without consulting the solver unless
// the model status is optimal or feasible.
func (v Var) Xi(i int) (float64, bool) {
	switch v.model.status {
	case StatusOptimal, StatusFeasible:
		return v.model.solver.VarXi(v.idx, i)
	}
	return 0, false
}

func (v Var) String() string {
	return v.Name()
}

// expr returns the expression 1*v.
func (v Var) expr() *LinExpr {
	return &LinExpr{terms: map[int]term{v.idx: {v: v, coeff: 1}}}
}

func (v Var) addToExpr(e *LinExpr, coeff float64) {
	e.AddVar(v, coeff)
}

// Plus returns the expression v + x.
func (v Var) Plus(x any) (*LinExpr, error) {
	return v.expr().Plus(x)
}

// Minus returns the expression v - x.
func (v Var) Minus(x any) (*LinExpr, error) {
	return v.expr().Minus(x)
}

// RevMinus returns the expression x - v.
func (v Var) RevMinus(x any) (*LinExpr, error) {
	return v.expr().RevMinus(x)
}

// Times returns the expression c*v.
func (v Var) Times(c float64) *LinExpr {
	return v.expr().Times(c)
}

// Div returns the expression v/c.
func (v Var) Div(c float64) *LinExpr {
	return v.expr().Div(c)
}

// Neg returns the expression -v.
func (v Var) Neg() *LinExpr {
	return v.Times(-1)
}

// Eq returns the constraint-shaped expression v - x tagged with equality.
func (v Var) Eq(x any) (*LinExpr, error) {
	return v.expr().relational(x, Equal)
}

// Leq returns the constraint-shaped expression v - x tagged with
// less-or-equal.
func (v Var) Leq(x any) (*LinExpr, error) {
	return v.expr().relational(x, LessOrEqual)
}

// Geq returns the constraint-shaped expression v - x tagged with
// greater-or-equal.
func (v Var) Geq(x any) (*LinExpr, error) {
	return v.expr().relational(x, GreaterOrEqual)
}
