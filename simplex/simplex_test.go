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

package simplex_test

import (
	"math"
	"testing"

	"github.com/stretchr/testify/require"

	"github.com/opensolver/gomip/mip"
	"github.com/opensolver/gomip/simplex"
)

const tol = 1e-6

func mustX(t *testing.T, v mip.Var) float64 {
	t.Helper()
	x, ok := v.X()
	require.True(t, ok, "X() of %s unknown", v.Name())
	return x
}

func TestSolveLP(t *testing.T) {
	m := mip.New("lp", mip.Maximize, simplex.New())
	x, err := m.AddContinuousVar("x", 0, math.Inf(1))
	require.NoError(t, err)
	y, err := m.AddContinuousVar("y", 0, math.Inf(1))
	require.NoError(t, err)

	r1e, err := mip.Sum(x, y.Times(2)).Leq(4.0)
	require.NoError(t, err)
	r1, err := m.AddConstr(r1e, "r1")
	require.NoError(t, err)
	r2e, err := x.Leq(2.0)
	require.NoError(t, err)
	r2, err := m.AddConstr(r2e, "r2")
	require.NoError(t, err)
	r3e, err := mip.Sum(x, y).Leq(10.0)
	require.NoError(t, err)
	r3, err := m.AddConstr(r3e, "r3")
	require.NoError(t, err)

	require.NoError(t, m.SetObjective(mip.Sum(x, y)))
	require.Equal(t, mip.StatusOptimal, m.Optimize())

	obj, ok := m.ObjectiveValue()
	require.True(t, ok)
	require.InDelta(t, 3, obj, tol)
	require.InDelta(t, 2, mustX(t, x), tol)
	require.InDelta(t, 1, mustX(t, y), tol)

	for _, tc := range []struct {
		c    mip.Constr
		pi   float64
		slck float64
	}{
		{r1, 0.5, 0},
		{r2, 0.5, 0},
		{r3, 0, 7},
	} {
		pi, ok := tc.c.Pi()
		require.True(t, ok, "Pi of %s unknown", tc.c.Name())
		require.InDelta(t, tc.pi, pi, tol, "Pi of %s", tc.c.Name())
		slack, ok := tc.c.Slack()
		require.True(t, ok, "Slack of %s unknown", tc.c.Name())
		require.InDelta(t, tc.slck, slack, tol, "Slack of %s", tc.c.Name())
	}
	for _, v := range []mip.Var{x, y} {
		rc, ok := v.RC()
		require.True(t, ok, "RC of %s unknown", v.Name())
		require.InDelta(t, 0, rc, tol, "RC of %s", v.Name())
	}
}

func TestSolveLPWithNegativeLowerBound(t *testing.T) {
	m := mip.New("shift", mip.Minimize, simplex.New())
	x, err := m.AddContinuousVar("x", -5, 3)
	require.NoError(t, err)
	require.NoError(t, m.SetObjective(mip.Sum(x)))

	require.Equal(t, mip.StatusOptimal, m.Optimize())
	require.InDelta(t, -5, mustX(t, x), tol)
	obj, ok := m.ObjectiveValue()
	require.True(t, ok)
	require.InDelta(t, -5, obj, tol)
}

func TestSolveLPWithFreeVariable(t *testing.T) {
	m := mip.New("free", mip.Minimize, simplex.New())
	x, err := m.AddContinuousVar("x", math.Inf(-1), math.Inf(1))
	require.NoError(t, err)
	ge, err := x.Geq(3.0)
	require.NoError(t, err)
	_, err = m.AddConstr(ge, "floor")
	require.NoError(t, err)
	require.NoError(t, m.SetObjective(mip.Sum(x)))

	require.Equal(t, mip.StatusOptimal, m.Optimize())
	require.InDelta(t, 3, mustX(t, x), tol)
}

func TestSolveLPWithEquality(t *testing.T) {
	m := mip.New("eq", mip.Minimize, simplex.New())
	x, err := m.AddContinuousVar("x", 0, 10)
	require.NoError(t, err)
	y, err := m.AddContinuousVar("y", 0, 10)
	require.NoError(t, err)
	eq, err := mip.Sum(x, y).Eq(5.0)
	require.NoError(t, err)
	_, err = m.AddConstr(eq, "total")
	require.NoError(t, err)
	require.NoError(t, m.SetObjective(mip.Sum(x, y)))

	require.Equal(t, mip.StatusOptimal, m.Optimize())
	obj, ok := m.ObjectiveValue()
	require.True(t, ok)
	require.InDelta(t, 5, obj, tol)
}

func TestInfeasible(t *testing.T) {
	m := mip.New("infeasible", mip.Minimize, simplex.New())
	x, err := m.AddContinuousVar("x", 0, math.Inf(1))
	require.NoError(t, err)
	row, err := x.Leq(-1.0)
	require.NoError(t, err)
	_, err = m.AddConstr(row, "cap")
	require.NoError(t, err)

	require.Equal(t, mip.StatusInfeasible, m.Optimize())
	_, ok := m.ObjectiveValue()
	require.False(t, ok)
	_, ok = x.X()
	require.False(t, ok)
}

func TestUnbounded(t *testing.T) {
	m := mip.New("unbounded", mip.Maximize, simplex.New())
	x, err := m.AddContinuousVar("x", 0, math.Inf(1))
	require.NoError(t, err)
	require.NoError(t, m.SetObjective(mip.Sum(x)))
	require.Equal(t, mip.StatusUnbounded, m.Optimize())

	floor, err := x.Geq(1.0)
	require.NoError(t, err)
	_, err = m.AddConstr(floor, "floor")
	require.NoError(t, err)
	require.Equal(t, mip.StatusUnbounded, m.Optimize())
}

func TestBranchAndBoundRounding(t *testing.T) {
	m := mip.New("round", mip.Maximize, simplex.New())
	x, err := m.AddIntegerVar("x", 0, 10)
	require.NoError(t, err)
	half, err := x.Times(2).Leq(7.0)
	require.NoError(t, err)
	_, err = m.AddConstr(half, "half")
	require.NoError(t, err)
	require.NoError(t, m.SetObjective(mip.Sum(x)))

	require.Equal(t, mip.StatusOptimal, m.Optimize())
	require.InDelta(t, 3, mustX(t, x), tol)

	// Duals are an LP-only attribute.
	_, ok := x.RC()
	require.False(t, ok)
}

func TestKnapsack(t *testing.T) {
	profits := []float64{10, 13, 18, 31, 7, 15}
	weights := []float64{11, 15, 20, 35, 10, 33}

	m := mip.New("knapsack", mip.Maximize, simplex.New())
	vars := make([]mip.Var, len(profits))
	for i := range profits {
		v, err := m.AddBinaryVar("")
		require.NoError(t, err)
		vars[i] = v
	}

	load, err := mip.Dot(vars, weights)
	require.NoError(t, err)
	capRow, err := load.Leq(47.0)
	require.NoError(t, err)
	_, err = m.AddConstr(capRow, "capacity")
	require.NoError(t, err)
	obj, err := mip.Dot(vars, profits)
	require.NoError(t, err)
	require.NoError(t, m.SetObjective(obj))

	require.Equal(t, mip.StatusOptimal, m.Optimize())
	val, ok := m.ObjectiveValue()
	require.True(t, ok)
	require.InDelta(t, 41, val, tol)

	// The solution is integral and respects the capacity.
	weight := 0.0
	for i, v := range vars {
		x := mustX(t, v)
		require.InDelta(t, math.Round(x), x, tol, "x[%d] not integral", i)
		weight += weights[i] * x
	}
	require.LessOrEqual(t, weight, 47.0+tol)

	// The pool holds every incumbent, best first.
	require.GreaterOrEqual(t, m.NumSolutions(), 1)
	prev := math.Inf(1)
	for i := 0; i < m.NumSolutions(); i++ {
		poolVal, ok := m.PoolObjValue(i)
		require.True(t, ok)
		require.LessOrEqual(t, poolVal, prev+tol)
		prev = poolVal
	}
	best, ok := m.PoolObjValue(0)
	require.True(t, ok)
	require.InDelta(t, val, best, tol)
}

func TestNodeLimit(t *testing.T) {
	s := simplex.New()
	s.SetMaxNodes(1)
	m := mip.New("limited", mip.Maximize, s)
	x, err := m.AddIntegerVar("x", 0, 10)
	require.NoError(t, err)
	y, err := m.AddIntegerVar("y", 0, 10)
	require.NoError(t, err)
	row, err := mip.Sum(x.Times(2), y.Times(2)).Leq(7.0)
	require.NoError(t, err)
	_, err = m.AddConstr(row, "cap")
	require.NoError(t, err)
	require.NoError(t, m.SetObjective(mip.Sum(x, y)))

	require.Equal(t, mip.StatusNoSolutionFound, m.Optimize())
	_, ok := m.ObjectiveValue()
	require.False(t, ok)
}

func TestMutationInvalidatesSolution(t *testing.T) {
	m := mip.New("invalidate", mip.Maximize, simplex.New())
	x, err := m.AddContinuousVar("x", 0, 4)
	require.NoError(t, err)
	require.NoError(t, m.SetObjective(mip.Sum(x)))
	require.Equal(t, mip.StatusOptimal, m.Optimize())
	require.InDelta(t, 4, mustX(t, x), tol)

	x.SetUB(2)
	require.Equal(t, mip.StatusLoaded, m.Status())
	_, ok := x.X()
	require.False(t, ok)

	require.Equal(t, mip.StatusOptimal, m.Optimize())
	require.InDelta(t, 2, mustX(t, x), tol)
}

func TestConflictProbing(t *testing.T) {
	m := mip.New("conflicts", mip.Minimize, simplex.New())
	x1, err := m.AddBinaryVar("x1")
	require.NoError(t, err)
	x2, err := m.AddBinaryVar("x2")
	require.NoError(t, err)
	x3, err := m.AddBinaryVar("x3")
	require.NoError(t, err)

	packRow, err := mip.Sum(x1, x2).Leq(1.0)
	require.NoError(t, err)
	_, err = m.AddConstr(packRow, "pack")
	require.NoError(t, err)
	orderRow, err := x1.Leq(x3)
	require.NoError(t, err)
	_, err = m.AddConstr(orderRow, "order")
	require.NoError(t, err)

	g := m.ConflictGraph()

	got, err := g.Conflicting(x1, x2)
	require.NoError(t, err)
	require.True(t, got, "x1 == 1 and x2 == 1 should conflict")

	x3zero, err := x3.Eq(0.0)
	require.NoError(t, err)
	got, err = g.Conflicting(x1, x3zero)
	require.NoError(t, err)
	require.True(t, got, "x1 == 1 and x3 == 0 should conflict")

	x1zero, err := x1.Eq(0.0)
	require.NoError(t, err)
	got, err = g.Conflicting(x1zero, x2)
	require.NoError(t, err)
	require.False(t, got, "x1 == 0 and x2 == 1 do not conflict")

	atOne, atZero, err := g.ConflictingAssignments(x1)
	require.NoError(t, err)
	require.Equal(t, []mip.Var{x2}, atOne)
	require.Equal(t, []mip.Var{x3}, atZero)
}
