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

import (
	"fmt"

	log "github.com/golang/glog"
)

// Model is the container for a mixed-integer program: it owns the
// variable and constraint tables and delegates all state to its Solver.
// A model assumes single-writer access; it is not safe for concurrent
// mutation.
type Model struct {
	name     string
	sense    ObjSense
	solver   Solver
	nVars    int
	nConstrs int
	status   OptimizationStatus
}

// New creates a model with the given name, optimization direction and
// solver backend.
func New(name string, sense ObjSense, s Solver) *Model {
	m := &Model{name: name, sense: sense, solver: s, status: StatusLoaded}
	s.Attach(m)
	return m
}

// Name returns the model name.
func (m *Model) Name() string {
	return m.name
}

// Sense returns the optimization direction.
func (m *Model) Sense() ObjSense {
	return m.sense
}

// Solver returns the backend this model delegates to.
func (m *Model) Solver() Solver {
	return m.solver
}

// AddVar registers a decision variable and returns its handle. A binary
// variable gets bounds [0, 1] regardless of the arguments; an empty name
// is replaced by "v<idx>". A type outside {binary, integer, continuous}
// is rejected with ErrInvalidVarType.
func (m *Model) AddVar(name string, vt VarType, lb, ub, obj float64) (Var, error) {
	if !vt.valid() {
		return Var{}, fmt.Errorf("%q: %w", string(vt), ErrInvalidVarType)
	}
	if vt == Binary {
		lb, ub = 0, 1
	}
	if name == "" {
		name = fmt.Sprintf("v%d", m.nVars)
	}
	idx := m.solver.AddVar(name, lb, ub, obj, vt)
	m.nVars++
	m.invalidate()
	return Var{model: m, idx: idx}, nil
}

// AddBinaryVar registers a binary variable.
func (m *Model) AddBinaryVar(name string) (Var, error) {
	return m.AddVar(name, Binary, 0, 1, 0)
}

// AddIntegerVar registers an integer variable with the given bounds.
func (m *Model) AddIntegerVar(name string, lb, ub float64) (Var, error) {
	return m.AddVar(name, Integer, lb, ub, 0)
}

// AddContinuousVar registers a continuous variable with the given bounds.
func (m *Model) AddContinuousVar(name string, lb, ub float64) (Var, error) {
	return m.AddVar(name, Continuous, lb, ub, 0)
}

// AddConstr registers a constraint built from a sense-tagged expression
// and returns its handle. An empty name is replaced by "constr(<idx>)".
func (m *Model) AddConstr(e *LinExpr, name string) (Constr, error) {
	if e == nil {
		return Constr{}, fmt.Errorf("nil expression: %w", ErrTypeMismatch)
	}
	if err := e.Err(); err != nil {
		return Constr{}, err
	}
	switch e.sense {
	case Equal, LessOrEqual, GreaterOrEqual:
	default:
		return Constr{}, fmt.Errorf("constraint requires a relational sense, got %q: %w", string(e.sense), ErrInvalidSense)
	}
	if err := m.checkOwnership(e); err != nil {
		return Constr{}, err
	}
	if name == "" {
		name = fmt.Sprintf("constr(%d)", m.nConstrs)
	}
	idx := m.solver.AddConstr(e.Copy(), name)
	m.nConstrs++
	m.invalidate()
	return Constr{model: m, idx: idx}, nil
}

// SetObjective replaces the objective function. The expression must be a
// plain affine expression without a relational sense.
func (m *Model) SetObjective(e *LinExpr) error {
	if e == nil {
		return fmt.Errorf("nil expression: %w", ErrTypeMismatch)
	}
	if err := e.Err(); err != nil {
		return err
	}
	if e.sense != SenseNone {
		return fmt.Errorf("objective cannot carry a sense, got %q: %w", string(e.sense), ErrInvalidSense)
	}
	if err := m.checkOwnership(e); err != nil {
		return err
	}
	m.solver.SetObjective(e.Copy())
	m.invalidate()
	return nil
}

// Objective returns the current objective function.
func (m *Model) Objective() *LinExpr {
	return m.solver.Objective()
}

// Optimize hands the assembled problem to the solver and records the
// outcome, which subsequent solution readers are gated on.
func (m *Model) Optimize() OptimizationStatus {
	m.status = m.solver.Optimize()
	return m.status
}

// Status reports the outcome of the last Optimize call, StatusLoaded when
// the model was mutated since.
func (m *Model) Status() OptimizationStatus {
	return m.status
}

// ObjectiveValue returns the objective value of the best known solution.
func (m *Model) ObjectiveValue() (float64, bool) {
	return m.solver.ObjectiveValue()
}

// PoolObjValue returns the objective value of the i-th pool solution.
func (m *Model) PoolObjValue(i int) (float64, bool) {
	return m.solver.PoolObjValue(i)
}

// NumSolutions returns the number of solutions in the pool.
func (m *Model) NumSolutions() int {
	return m.solver.NumSolutions()
}

// NumVars returns the number of registered variables.
func (m *Model) NumVars() int {
	return m.nVars
}

// NumConstrs returns the number of registered constraints.
func (m *Model) NumConstrs() int {
	return m.nConstrs
}

// Var returns the handle of the i-th variable. The index must name a
// registered variable.
func (m *Model) Var(i int) Var {
	if i < 0 || i >= m.nVars {
		log.Fatalf("variable index %d out of range [0, %d)", i, m.nVars)
	}
	return Var{model: m, idx: i}
}

// Constr returns the handle of the i-th constraint. The index must name a
// registered constraint.
func (m *Model) Constr(i int) Constr {
	if i < 0 || i >= m.nConstrs {
		log.Fatalf("constraint index %d out of range [0, %d)", i, m.nConstrs)
	}
	return Constr{model: m, idx: i}
}

// Vars returns handles for all registered variables.
func (m *Model) Vars() []Var {
	vars := make([]Var, m.nVars)
	for i := range vars {
		vars[i] = Var{model: m, idx: i}
	}
	return vars
}

// Constrs returns handles for all registered constraints.
func (m *Model) Constrs() []Constr {
	constrs := make([]Constr, m.nConstrs)
	for i := range constrs {
		constrs[i] = Constr{model: m, idx: i}
	}
	return constrs
}

// ConflictGraph returns the query facade over the solver's conflict
// index.
func (m *Model) ConflictGraph() *ConflictGraph {
	return &ConflictGraph{model: m}
}

// checkOwnership verifies that every variable of the expression belongs
// to this model.
func (m *Model) checkOwnership(e *LinExpr) error {
	if om := e.Model(); om != nil && om != m {
		err := fmt.Errorf("expression over model %q used with model %q: %w", om.name, m.name, ErrMixedModels)
		log.Errorf("%v", err)
		return err
	}
	return nil
}

// invalidate resets the optimization status after any mutation and tells
// the solver to drop its stored solution.
func (m *Model) invalidate() {
	m.status = StatusLoaded
	m.solver.Invalidate()
}
