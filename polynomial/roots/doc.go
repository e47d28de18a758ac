// Package roots finds all complex roots of real polynomials.
//
// The primary solver, [MullerNewton], locates one root at a time with Muller's
// method on the deflated polynomial, polishes it with Newton-Raphson on the
// original polynomial and divides it out, until a linear or quadratic remainder
// is left and solved in closed form. Slow convergence is never reported as an
// error: the best candidate is returned together with a relative error
// estimate. Only degenerate input (the zero or a constant polynomial) fails,
// with [ErrDegeneratePolynomial].
//
// [DurandKerner] is a simultaneous-iteration alternative used for
// cross-checking, and [NewtonOptimizer] exposes the polishing step on its own,
// including a multiplicity probe for clustered roots.
//
// Solvers keep all iteration state on the stack of a single Solve call, so a
// solver value may be shared between goroutines.
package roots
