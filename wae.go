// Copyright (c) 2021 Silvano DAL ZILIO
//
// MIT License

package symmetrize

import (
	"fmt"
	"math"
	"math/big"

	"github.com/dalzilio/symmetrize/bdd"
	"github.com/dalzilio/symmetrize/errs"
)

// WAE returns the weighted average error between the multi-output functions
// described by forests f and g: the sum, over all outputs i, of the fraction
// of the inputs on which f_i and g_i differ, weighted by policy. Both forests
// must share the same BDD.
func WAE(f, g *bdd.Forest, policy WeightPolicy) (float64, error) {
	if err := f.Check(); err != nil {
		return 0, err
	}
	if err := g.Check(); err != nil {
		return 0, err
	}
	if f.BDD != g.BDD {
		return 0, errs.ErrCrossManagerOperation
	}
	if f.Len() != g.Len() {
		return 0, fmt.Errorf("error between %d and %d outputs: %w", f.Len(), g.Len(), errs.ErrDimensionMismatch)
	}
	m := f.Len()
	res := 0.0
	for i := range f.Roots {
		hd, err := f.HammingDistance(f.Roots[i], g.Roots[i])
		if err != nil {
			return 0, err
		}
		res += policy.Factor(m, i) * fraction(hd, f.Varnum())
	}
	return res, nil
}

// fraction returns x / 2^n.
func fraction(x *big.Int, n int) float64 {
	v, _ := new(big.Float).SetInt(x).Float64()
	return math.Ldexp(v, -n)
}
