// Copyright (c) 2021 Silvano DAL ZILIO
//
// MIT License

package bdd

import (
	"fmt"

	"github.com/dalzilio/symmetrize/errs"
)

// Symmetric returns, for each component of comps, the diagram of the symmetric
// function over the first n variables of b that is true exactly on the
// assignments whose Hamming weight w satisfies comp[w]. Each component must
// have n+1 entries.
//
// We build the diagrams of the weight predicates row by row: after i
// variables, row[j] is true iff exactly j-1 of them are set. Column 0 is a
// sentinel, always false.
func Symmetric(b *BDD, n int, comps [][]bool) ([]Node, error) {
	if n < 0 || n > b.Varnum() {
		return nil, fmt.Errorf("symmetric function over %d inputs with %d variables: %w", n, b.Varnum(), errs.ErrDimensionMismatch)
	}
	for k, comp := range comps {
		if len(comp) != n+1 {
			return nil, fmt.Errorf("component %d has %d classes for %d inputs: %w", k, len(comp), n, errs.ErrDimensionMismatch)
		}
	}
	row := make([]Node, n+2)
	for j := range row {
		row[j] = b.False()
	}
	row[1] = b.True()
	for i := 1; i <= n; i++ {
		x := b.Ithvar(i - 1)
		next := make([]Node, n+2)
		next[0] = b.False()
		for j := 1; j < n+2; j++ {
			if j > i+1 {
				next[j] = b.False()
				continue
			}
			next[j] = b.Ite(x, row[j-1], row[j])
		}
		if b.Errored() {
			return nil, b.Err()
		}
		row = next
	}
	res := make([]Node, len(comps))
	for k, comp := range comps {
		acc := b.False()
		for w, v := range comp {
			if v {
				acc = b.Or(acc, row[w+1])
			}
		}
		if b.Errored() {
			return nil, b.Err()
		}
		res[k] = acc
	}
	return res, nil
}
