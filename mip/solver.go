package mip

// Solver is the capability a Model delegates to for every piece of
// mutable or solved state: variable and constraint attributes, the
// objective, solution values, duals and the conflict index. All accessors
// are keyed by the stable integer index of the handle they serve.
//
// Accessors returning (float64, bool) report false when the requested
// value is unknown: no solve has been performed, the attribute is
// restricted to linear programming solves, or a pool index is out of
// range. Callers must propagate the unknown instead of substituting zero.
type Solver interface {
	// Attach binds the solver to its owning model. Called once by New;
	// the solver uses the model to mint Var and Constr handles.
	Attach(m *Model)

	// AddVar appends a variable and returns its index.
	AddVar(name string, lb, ub, obj float64, vt VarType) int
	// AddConstr appends a row built from a sense-tagged expression and
	// returns its index.
	AddConstr(expr *LinExpr, name string) int

	VarName(idx int) string
	SetVarName(idx int, name string)
	VarLB(idx int) float64
	SetVarLB(idx int, lb float64)
	VarUB(idx int) float64
	SetVarUB(idx int, ub float64)
	VarObj(idx int) float64
	SetVarObj(idx int, obj float64)
	VarType(idx int) VarType
	SetVarType(idx int, vt VarType)
	VarColumn(idx int) Column
	SetVarColumn(idx int, col Column)
	VarRC(idx int) (float64, bool)
	VarX(idx int) (float64, bool)
	VarXi(idx, sol int) (float64, bool)

	ConstrName(idx int) string
	ConstrRHS(idx int) float64
	SetConstrRHS(idx int, rhs float64)
	ConstrExpr(idx int) *LinExpr
	SetConstrExpr(idx int, expr *LinExpr)
	ConstrSlack(idx int) (float64, bool)
	ConstrPi(idx int) (float64, bool)

	// SetObjective replaces the objective function. The optimization
	// direction is read from the attached model.
	SetObjective(expr *LinExpr)
	Objective() *LinExpr
	ObjectiveValue() (float64, bool)
	PoolObjValue(sol int) (float64, bool)
	NumSolutions() int

	// Optimize solves the stored problem and reports the outcome.
	Optimize() OptimizationStatus
	// Invalidate discards any stored solution after a model mutation.
	Invalidate()

	// Conflicting reports whether two binary assignments can never hold
	// simultaneously.
	Conflicting(a, b Literal) bool
	// ConflictingNodes returns the indices of all variables conflicting
	// with the given assignment, partitioned into those conflicting at
	// one and at zero.
	ConflictingNodes(l Literal) (atOne, atZero []int)
}
