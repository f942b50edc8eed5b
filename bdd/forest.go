// Copyright (c) 2021 Silvano DAL ZILIO
//
// MIT License

package bdd

import (
	"fmt"

	"github.com/dalzilio/symmetrize/errs"
)

// Forest is a sequence of diagrams, one for each output of a multi-output
// function, sharing the same BDD.
type Forest struct {
	*BDD
	Roots []Node
}

// NewForest returns a forest over b with the given roots.
func NewForest(b *BDD, roots ...Node) *Forest {
	return &Forest{BDD: b, Roots: roots}
}

// Len returns the number of roots in the forest.
func (f *Forest) Len() int {
	if f == nil {
		return 0
	}
	return len(f.Roots)
}

// Count returns the number of distinct nodes, including the terminal, used by
// all the roots of f.
func (f *Forest) Count() int {
	return f.BDD.Count(f.Roots...)
}

// Check returns an error if the BDD of f is in error, or if one of the roots
// is not a valid node.
func (f *Forest) Check() error {
	if f == nil || f.BDD == nil {
		return errs.ErrMissingDiagrams
	}
	for k, r := range f.Roots {
		if err := f.checkptr(r); err != nil {
			return fmt.Errorf("root %d: %w", k, err)
		}
	}
	return nil
}

// Select returns a forest whose i-th root is the one of t if sel[i] is true,
// and the one of e otherwise. Both forests must share the same BDD.
func Select(t, e *Forest, sel []bool) (*Forest, error) {
	if t.BDD != e.BDD {
		return nil, errs.ErrCrossManagerOperation
	}
	if len(t.Roots) != len(sel) || len(e.Roots) != len(sel) {
		return nil, fmt.Errorf("select over %d and %d roots with %d choices: %w", len(t.Roots), len(e.Roots), len(sel), errs.ErrDimensionMismatch)
	}
	res := &Forest{BDD: t.BDD, Roots: make([]Node, len(sel))}
	for k, s := range sel {
		if s {
			res.Roots[k] = t.Roots[k]
		} else {
			res.Roots[k] = e.Roots[k]
		}
	}
	return res, nil
}

// Transfer rebuilds the diagrams of f in dst and returns the resulting forest.
// Variables keep their index, so dst must have at least as many variables as
// the BDD of f; the variable orders may differ.
func (f *Forest) Transfer(dst *BDD) (*Forest, error) {
	if err := f.Check(); err != nil {
		return nil, err
	}
	if dst.Varnum() < f.Varnum() {
		return nil, fmt.Errorf("transfer from %d to %d variables: %w", f.Varnum(), dst.Varnum(), errs.ErrDimensionMismatch)
	}
	res := &Forest{BDD: dst, Roots: make([]Node, len(f.Roots))}
	if dst == f.BDD {
		copy(res.Roots, f.Roots)
		return res, nil
	}
	memo := make(map[int]Node)
	for k, r := range f.Roots {
		res.Roots[k] = f.transfer(dst, *r, memo)
		if dst.Errored() {
			return nil, fmt.Errorf("transfer of root %d: %w", k, dst.Err())
		}
	}
	return res, nil
}

// transfer copies reference r in dst, memoizing results on the regular node.
// The memo keeps the handles alive while the copy is in progress.
func (f *Forest) transfer(dst *BDD, r int, memo map[int]Node) Node {
	if r == refTrue {
		return dst.True()
	}
	if r == refFalse {
		return dst.False()
	}
	id := r >> 1
	res, ok := memo[id]
	if !ok {
		v := int(f.level2var[f.nodes[id].level])
		high := f.transfer(dst, f.nodes[id].high, memo)
		low := f.transfer(dst, f.nodes[id].low, memo)
		res = dst.Ite(dst.Ithvar(v), high, low)
		if res == nil {
			return dst.False()
		}
		memo[id] = res
	}
	if complemented(r) {
		return dst.Not(res)
	}
	return res
}

// Release drops the references held by the forest, so that its nodes can be
// reclaimed. It is safe to call Release several times.
func (f *Forest) Release() {
	if f == nil {
		return
	}
	f.Roots = nil
	f.BDD = nil
}
