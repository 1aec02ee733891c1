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

// Package mip provides the modeling layer of a mixed-integer programming
// toolkit: sparse linear expressions over decision variables, constraints,
// an objective function, and a Model that hands the assembled problem to a
// Solver backend.
//
// The `Model` struct owns the variable and constraint tables and delegates
// all mutable and solved state to its Solver. `Var` and `Constr` are cheap
// index handles into those tables. `LinExpr` provides the algebra for
// composing constraints and the objective from variables and coefficients.
package mip

// EPS is the numerical tolerance used throughout the package: coefficients
// with magnitude at most EPS are treated as zero and pruned from
// expressions, and expression equality compares coefficients and constants
// within EPS.
const EPS = 1e-12

// Sense is the relational sense of a linear expression: equality,
// less-or-equal, greater-or-equal, or none for a plain affine expression
// such as the objective function.
type Sense string

const (
	SenseNone      Sense = ""
	Equal          Sense = "="
	LessOrEqual    Sense = "<"
	GreaterOrEqual Sense = ">"
)

func (s Sense) valid() bool {
	switch s {
	case SenseNone, Equal, LessOrEqual, GreaterOrEqual:
		return true
	}
	return false
}

// symbol returns the rendering of the sense in a constraint, e.g. "<=".
func (s Sense) symbol() string {
	switch s {
	case Equal:
		return "="
	case LessOrEqual:
		return "<="
	case GreaterOrEqual:
		return ">="
	}
	return string(s)
}

// VarType is the type of a decision variable.
type VarType byte

const (
	Binary     VarType = 'B'
	Continuous VarType = 'C'
	Integer    VarType = 'I'
)

func (t VarType) valid() bool {
	switch t {
	case Binary, Continuous, Integer:
		return true
	}
	return false
}

func (t VarType) String() string {
	switch t {
	case Binary:
		return "binary"
	case Continuous:
		return "continuous"
	case Integer:
		return "integer"
	}
	return "invalid"
}

// ObjSense is the optimization direction of a model.
type ObjSense int

const (
	Minimize ObjSense = iota + 1
	Maximize
)

func (s ObjSense) String() string {
	switch s {
	case Minimize:
		return "minimize"
	case Maximize:
		return "maximize"
	}
	return "invalid"
}

// OptimizationStatus reports the outcome of the last call to
// Model.Optimize. A freshly built or mutated model is Loaded.
type OptimizationStatus int

const (
	// StatusLoaded means the model has not been solved since its last
	// mutation.
	StatusLoaded OptimizationStatus = iota
	// StatusOptimal means an optimal solution is available.
	StatusOptimal
	// StatusFeasible means a feasible, possibly sub-optimal solution is
	// available; the search stopped before proving optimality.
	StatusFeasible
	// StatusInfeasible means the problem has no feasible solution.
	StatusInfeasible
	// StatusUnbounded means the objective can be improved without limit.
	StatusUnbounded
	// StatusNoSolutionFound means the search stopped without finding a
	// feasible solution, but infeasibility was not proven.
	StatusNoSolutionFound
	// StatusError means the backend failed.
	StatusError
)

func (s OptimizationStatus) String() string {
	switch s {
	case StatusLoaded:
		return "loaded"
	case StatusOptimal:
		return "optimal"
	case StatusFeasible:
		return "feasible"
	case StatusInfeasible:
		return "infeasible"
	case StatusUnbounded:
		return "unbounded"
	case StatusNoSolutionFound:
		return "no solution found"
	case StatusError:
		return "error"
	}
	return "invalid"
}
