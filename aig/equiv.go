// Copyright (c) 2021 Silvano DAL ZILIO
//
// MIT License

package aig

import (
	"fmt"

	"github.com/dalzilio/symmetrize/errs"
	"github.com/go-air/gini"
	"github.com/go-air/gini/logic"
	"github.com/go-air/gini/z"
)

// Equivalent reports whether output i of a and output j of b compute the same
// function, inputs being matched by position. We build a miter of the two
// cones in a fresh circuit and ask a SAT solver for a distinguishing input.
func Equivalent(a, b *Network, i, j int) (bool, error) {
	if a.NumInputs() != b.NumInputs() {
		return false, fmt.Errorf("miter between %d and %d inputs: %w", a.NumInputs(), b.NumInputs(), errs.ErrDimensionMismatch)
	}
	if i < 0 || i >= a.NumOutputs() || j < 0 || j >= b.NumOutputs() {
		return false, fmt.Errorf("miter of outputs %d and %d: %w", i, j, errs.ErrDimensionMismatch)
	}
	c := logic.NewCCap(a.sys.Len() + b.sys.Len())
	inputs := make([]z.Lit, a.NumInputs())
	for k := range inputs {
		inputs[k] = c.Lit()
	}
	cone := func(n *Network, out int) (z.Lit, error) {
		cp := newCopier(&n.sys.C, c)
		for k, m := range n.inputs {
			cp.memo[m.Var()] = inputs[k]
		}
		return cp.lit(n.outputs[out])
	}
	fa, err := cone(a, i)
	if err != nil {
		return false, err
	}
	fb, err := cone(b, j)
	if err != nil {
		return false, err
	}
	miter := c.Xor(fa, fb)
	switch miter {
	case c.F:
		return true, nil
	case c.T:
		return false, nil
	}
	g := gini.New()
	c.ToCnfFrom(g, miter)
	g.Assume(miter)
	return g.Solve() != 1, nil
}

// SymmetricReference adds to n a sorting network counting its inputs and
// returns a signal that is true exactly when the number of true inputs w
// satisfies comp[w]. It gives an implementation of a symmetric function that
// is independent from the adder based realization.
func (n *Network) SymmetricReference(comp []bool) (z.Lit, error) {
	if len(comp) != len(n.inputs)+1 {
		return z.LitNull, fmt.Errorf("symmetric reference with %d classes for %d inputs: %w", len(comp), len(n.inputs), errs.ErrDimensionMismatch)
	}
	cs := n.sys.CardSort(n.inputs)
	res := n.Const(false)
	for w, v := range comp {
		if v {
			res = n.Or(res, n.And(cs.Geq(w), cs.Leq(w)))
		}
	}
	return res, nil
}
