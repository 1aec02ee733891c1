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
	"math"
	"sort"
	"strings"

	log "github.com/golang/glog"
)

// LinearArgument is implemented by Var and *LinExpr, the two kinds of
// symbolic operands that can contribute terms to a linear expression.
type LinearArgument interface {
	addToExpr(e *LinExpr, coeff float64)
}

type term struct {
	v     Var
	coeff float64
}

// LinExpr is a sparse linear expression: a sum of variable-coefficient
// pairs plus a constant, optionally tagged with a relational sense. An
// expression with a sense represents a constraint body `terms + const
// (sense) 0`, i.e. a right-hand side of -const.
//
// Expressions are composed freely and are not tied to a model until they
// are registered as a constraint or objective. Combining operators return
// fresh expressions; the Add* methods mutate their receiver and must not
// be used concurrently with any other access to the same expression.
//
// No stored coefficient ever has magnitude at most EPS: insertions and
// combinations that land within the tolerance remove the entry instead.
type LinExpr struct {
	terms    map[int]term // keyed by variable index
	constant float64
	sense    Sense

	// The first misuse detected by a void mutator (a variable from a
	// foreign model) is recorded here and surfaced by Err and at
	// registration time.
	err error
}

// NewLinExpr builds an expression from parallel variable and coefficient
// slices, a constant term, and a sense. Coefficients within EPS of zero
// are not stored. Returns ErrLengthMismatch when the slices differ in
// length and ErrInvalidSense for a sense outside the valid set.
func NewLinExpr(vars []Var, coeffs []float64, constant float64, sense Sense) (*LinExpr, error) {
	if len(vars) != len(coeffs) {
		return nil, fmt.Errorf("%d variables, %d coefficients: %w", len(vars), len(coeffs), ErrLengthMismatch)
	}
	if !sense.valid() {
		return nil, fmt.Errorf("%q: %w", string(sense), ErrInvalidSense)
	}
	e := &LinExpr{constant: constant, sense: sense}
	for i, v := range vars {
		e.AddVar(v, coeffs[i])
	}
	if e.err != nil {
		return nil, e.err
	}
	return e, nil
}

// Sum returns the sum of the given variables and expressions, the usual
// way to aggregate many terms at once.
func Sum(args ...LinearArgument) *LinExpr {
	e := &LinExpr{}
	for _, a := range args {
		a.addToExpr(e, 1)
	}
	return e
}

// Dot returns the weighted sum of the given variables.
func Dot(vars []Var, coeffs []float64) (*LinExpr, error) {
	return NewLinExpr(vars, coeffs, 0, SenseNone)
}

// combine is the single dispatch point used by all arithmetic operators:
// it merges `x` scaled by `coeff` into the receiver. Anything outside
// {Var, *LinExpr, real number} is ErrTypeMismatch.
func (e *LinExpr) combine(x any, coeff float64) error {
	switch t := x.(type) {
	case Var:
		e.AddVar(t, coeff)
	case *LinExpr:
		e.AddExpr(t, coeff)
	case float64:
		e.AddConst(t * coeff)
	case float32:
		e.AddConst(float64(t) * coeff)
	case int:
		e.AddConst(float64(t) * coeff)
	case int64:
		e.AddConst(float64(t) * coeff)
	default:
		return fmt.Errorf("type %T not supported: %w", x, ErrTypeMismatch)
	}
	return nil
}

// AddVar merges a single variable contribution into the expression. An
// existing coefficient is summed with the new one; when the result lands
// within EPS of zero the entry is removed. A fresh contribution within the
// tolerance is not stored either.
func (e *LinExpr) AddVar(v Var, coeff float64) {
	if m := e.Model(); m != nil && v.model != m {
		e.recordErrf("variable %q belongs to a different model: %w", v.Name(), ErrMixedModels)
		return
	}
	if e.terms == nil {
		e.terms = make(map[int]term)
	}
	if t, ok := e.terms[v.idx]; ok {
		coeff += t.coeff
	}
	if math.Abs(coeff) <= EPS {
		delete(e.terms, v.idx)
		return
	}
	e.terms[v.idx] = term{v: v, coeff: coeff}
}

// AddConst adds a constant value to the expression. For a constraint this
// shifts the right-hand side, which is -const.
func (e *LinExpr) AddConst(c float64) {
	e.constant += c
}

// AddExpr merges the contents of another expression, scaled by coeff, into
// the receiver.
func (e *LinExpr) AddExpr(o *LinExpr, coeff float64) {
	e.constant += o.constant * coeff
	for _, t := range o.terms {
		e.AddVar(t.v, t.coeff*coeff)
	}
	if o.err != nil && e.err == nil {
		e.err = o.err
	}
}

// AddTerm adds a term scaled by coeff to the expression. The term may be a
// Var, a *LinExpr or a real number; anything else is ErrTypeMismatch.
func (e *LinExpr) AddTerm(x any, coeff float64) error {
	return e.combine(x, coeff)
}

// Plus returns a new expression equal to e + x.
func (e *LinExpr) Plus(x any) (*LinExpr, error) {
	r := e.Copy()
	if err := r.combine(x, 1); err != nil {
		return nil, err
	}
	return r, nil
}

// Minus returns a new expression equal to e - x.
func (e *LinExpr) Minus(x any) (*LinExpr, error) {
	r := e.Copy()
	if err := r.combine(x, -1); err != nil {
		return nil, err
	}
	return r, nil
}

// RevMinus returns a new expression equal to x - e.
func (e *LinExpr) RevMinus(x any) (*LinExpr, error) {
	r := e.Neg()
	if err := r.combine(x, 1); err != nil {
		return nil, err
	}
	return r, nil
}

// Times returns a new expression with every coefficient and the constant
// scaled by c. Coefficients that fall within EPS of zero are pruned.
func (e *LinExpr) Times(c float64) *LinExpr {
	r := &LinExpr{constant: e.constant * c, sense: e.sense, err: e.err}
	r.terms = make(map[int]term, len(e.terms))
	for i, t := range e.terms {
		scaled := t.coeff * c
		if math.Abs(scaled) <= EPS {
			continue
		}
		r.terms[i] = term{v: t.v, coeff: scaled}
	}
	return r
}

// Div returns a new expression with every coefficient and the constant
// divided by c.
func (e *LinExpr) Div(c float64) *LinExpr {
	return e.Times(1 / c)
}

// Neg returns a new expression equal to -e.
func (e *LinExpr) Neg() *LinExpr {
	return e.Times(-1)
}

// Eq returns the constraint-shaped expression e - x tagged with equality.
func (e *LinExpr) Eq(x any) (*LinExpr, error) {
	return e.relational(x, Equal)
}

// Leq returns the constraint-shaped expression e - x tagged with
// less-or-equal.
func (e *LinExpr) Leq(x any) (*LinExpr, error) {
	return e.relational(x, LessOrEqual)
}

// Geq returns the constraint-shaped expression e - x tagged with
// greater-or-equal.
func (e *LinExpr) Geq(x any) (*LinExpr, error) {
	return e.relational(x, GreaterOrEqual)
}

func (e *LinExpr) relational(x any, s Sense) (*LinExpr, error) {
	r, err := e.Minus(x)
	if err != nil {
		return nil, err
	}
	r.sense = s
	return r, nil
}

// Copy returns a deep copy of the expression with respect to its term map;
// constant and sense are copied by value.
func (e *LinExpr) Copy() *LinExpr {
	r := &LinExpr{constant: e.constant, sense: e.sense, err: e.err}
	r.terms = make(map[int]term, len(e.terms))
	for i, t := range e.terms {
		r.terms[i] = t
	}
	return r
}

// Equals reports structural equality: identical sense, the same non-zero
// coefficient set matched by variable index with tolerance EPS, and
// constants within EPS. Insertion order is irrelevant.
func (e *LinExpr) Equals(o *LinExpr) bool {
	if e.sense != o.sense {
		return false
	}
	if len(e.terms) != len(o.terms) {
		return false
	}
	if math.Abs(e.constant-o.constant) > EPS {
		return false
	}
	for i, t := range e.terms {
		ot, ok := o.terms[i]
		if !ok {
			return false
		}
		if math.Abs(t.coeff-ot.coeff) > EPS {
			return false
		}
	}
	return true
}

// Const returns the constant part of the expression.
func (e *LinExpr) Const() float64 {
	return e.constant
}

// Sense returns the relational sense of the expression, SenseNone for a
// plain affine expression.
func (e *LinExpr) Sense() Sense {
	return e.sense
}

// SetSense tags the expression with the given sense.
func (e *LinExpr) SetSense(s Sense) error {
	if !s.valid() {
		return fmt.Errorf("%q: %w", string(s), ErrInvalidSense)
	}
	e.sense = s
	return nil
}

// Err returns the first misuse recorded by a void mutator, if any. Model
// registration surfaces the same error.
func (e *LinExpr) Err() error {
	return e.err
}

// NumTerms returns the number of stored variable terms.
func (e *LinExpr) NumTerms() int {
	return len(e.terms)
}

// Coeff returns the stored coefficient of v, zero when absent.
func (e *LinExpr) Coeff(v Var) float64 {
	if t, ok := e.terms[v.idx]; ok && t.v == v {
		return t.coeff
	}
	return 0
}

// Terms returns the non-constant part of the expression as a fresh map
// from variable handle to coefficient.
func (e *LinExpr) Terms() map[Var]float64 {
	r := make(map[Var]float64, len(e.terms))
	for _, t := range e.terms {
		r[t.v] = t.coeff
	}
	return r
}

// Vars returns the participating variables ordered by index.
func (e *LinExpr) Vars() []Var {
	vars := make([]Var, 0, len(e.terms))
	for _, i := range e.sortedIndices() {
		vars = append(vars, e.terms[i].v)
	}
	return vars
}

// Model returns the model this expression refers to, inferred from its
// variables, or nil when the expression has none. All variables of an
// expression share one model; AddVar rejects foreign ones.
func (e *LinExpr) Model() *Model {
	for _, t := range e.terms {
		return t.v.model
	}
	return nil
}

// Value evaluates the expression against the current solution. The second
// return is false when any participating variable has no known value.
func (e *LinExpr) Value() (float64, bool) {
	x := e.constant
	for _, t := range e.terms {
		vx, ok := t.v.X()
		if !ok {
			return 0, false
		}
		x += vx * t.coeff
	}
	return x, true
}

// Violation reports how much the current solution breaches this
// constraint-shaped expression: |lhs-rhs| for equality, max(lhs-rhs, 0)
// for less-or-equal and max(rhs-lhs, 0) for greater-or-equal, with
// rhs = -const. The boolean is false when any participating variable has
// no known value. An expression without a valid relational sense yields
// ErrInvalidSense.
func (e *LinExpr) Violation() (float64, bool, error) {
	switch e.sense {
	case Equal, LessOrEqual, GreaterOrEqual:
	default:
		return 0, false, fmt.Errorf("%q: %w", string(e.sense), ErrInvalidSense)
	}
	lhs := 0.0
	for _, t := range e.terms {
		vx, ok := t.v.X()
		if !ok {
			return 0, false, nil
		}
		lhs += t.coeff * vx
	}
	rhs := -e.constant
	switch e.sense {
	case Equal:
		return math.Abs(lhs - rhs), true, nil
	case LessOrEqual:
		return math.Max(lhs-rhs, 0), true, nil
	default:
		return math.Max(rhs-lhs, 0), true, nil
	}
}

// String renders the expression for diagnostics: terms ordered by variable
// index, sign-aware, with unit coefficients printed bare. A tagged
// expression renders as a constraint with rhs = -const.
func (e *LinExpr) String() string {
	var b strings.Builder
	for _, i := range e.sortedIndices() {
		t := e.terms[i]
		if t.coeff >= 0 {
			b.WriteString("+ ")
		} else {
			b.WriteString("- ")
		}
		if a := math.Abs(t.coeff); a != 1 {
			fmt.Fprintf(&b, "%v ", a)
		}
		b.WriteString(t.v.Name())
		b.WriteByte(' ')
	}
	switch e.sense {
	case SenseNone:
		switch {
		case e.constant > 0:
			fmt.Fprintf(&b, "+ %v", e.constant)
		case e.constant < 0:
			fmt.Fprintf(&b, "- %v", -e.constant)
		}
	case Equal, LessOrEqual, GreaterOrEqual:
		fmt.Fprintf(&b, "%s %v", e.sense.symbol(), -e.constant)
	default:
		fmt.Fprintf(&b, "<invalid sense %q>", string(e.sense))
	}
	return strings.TrimSpace(b.String())
}

func (e *LinExpr) sortedIndices() []int {
	idxs := make([]int, 0, len(e.terms))
	for i := range e.terms {
		idxs = append(idxs, i)
	}
	sort.Ints(idxs)
	return idxs
}

func (e *LinExpr) addToExpr(dst *LinExpr, coeff float64) {
	dst.AddExpr(e, coeff)
}

func (e *LinExpr) recordErrf(format string, args ...any) {
	err := fmt.Errorf(format, args...)
	log.Errorf("%v", err)
	if e.err == nil {
		e.err = err
	}
}
