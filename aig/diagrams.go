// Copyright (c) 2021 Silvano DAL ZILIO
//
// MIT License

package aig

import (
	"fmt"

	"github.com/dalzilio/symmetrize/bdd"
	"github.com/dalzilio/symmetrize/errs"
	"github.com/go-air/gini/z"
)

// Diagrams returns the forest attached to n, or nil.
func (n *Network) Diagrams() *bdd.Forest {
	return n.diagrams
}

// TakeDiagrams detaches the forest of n and returns it. The caller becomes
// responsible for releasing it.
func (n *Network) TakeDiagrams() *bdd.Forest {
	f := n.diagrams
	n.diagrams = nil
	return f
}

// SetDiagrams attaches forest f to n. The forest must have one root per output
// and at least one variable per input.
func (n *Network) SetDiagrams(f *bdd.Forest) error {
	if n.diagrams != nil {
		return errs.ErrDiagramsAlreadyPresent
	}
	if err := f.Check(); err != nil {
		return err
	}
	if f.Len() != len(n.outputs) {
		return fmt.Errorf("forest with %d roots for %d outputs: %w", f.Len(), len(n.outputs), errs.ErrDimensionMismatch)
	}
	if f.Varnum() < len(n.inputs) {
		return fmt.Errorf("forest with %d variables for %d inputs: %w", f.Varnum(), len(n.inputs), errs.ErrDimensionMismatch)
	}
	n.diagrams = f
	return nil
}

// FreeDiagrams releases the forest attached to n, if any.
func (n *Network) FreeDiagrams() {
	n.diagrams.Release()
	n.diagrams = nil
}

// BuildDiagrams computes the decision diagrams of all the outputs of n in a
// new BDD, with one variable per input, and attaches them to the network.
// When reorder is set, the variable order is improved by sifting once the
// diagrams are built.
func BuildDiagrams(n *Network, reorder bool, opts ...bdd.Option) error {
	if n.diagrams != nil {
		return errs.ErrDiagramsAlreadyPresent
	}
	if n.Sequential() {
		return fmt.Errorf("diagrams of %q: %w", n.Name, errs.ErrInvalidNetworkKind)
	}
	b, err := bdd.New(len(n.inputs), opts...)
	if err != nil {
		return err
	}
	roots, err := n.diagramsFor(b, n.outputs...)
	if err != nil {
		return err
	}
	f := bdd.NewForest(b, roots...)
	if reorder {
		if f, err = bdd.Sift(f); err != nil {
			return err
		}
	}
	n.diagrams = f
	return nil
}

// diagramsFor returns the diagrams, in b, of the given signals. Input i of n
// is variable i of b.
func (n *Network) diagramsFor(b *bdd.BDD, outs ...z.Lit) ([]bdd.Node, error) {
	memo := make(map[z.Var]bdd.Node, n.sys.Len())
	memo[n.sys.T.Var()] = b.True()
	for k, m := range n.inputs {
		memo[m.Var()] = b.Ithvar(k)
	}
	var node func(m z.Lit) (bdd.Node, error)
	node = func(m z.Lit) (bdd.Node, error) {
		v := m.Var()
		res, ok := memo[v]
		if !ok {
			a, c := n.sys.Ins(m)
			if a == z.LitNull {
				return nil, fmt.Errorf("leaf %v is not an input: %w", m, errs.ErrInvalidNetworkKind)
			}
			ra, err := node(a)
			if err != nil {
				return nil, err
			}
			rc, err := node(c)
			if err != nil {
				return nil, err
			}
			res = b.And(ra, rc)
			if res == nil {
				return nil, b.Err()
			}
			memo[v] = res
		}
		if !m.IsPos() {
			return b.Not(res), nil
		}
		return res, nil
	}
	roots := make([]bdd.Node, len(outs))
	for k, m := range outs {
		r, err := node(m)
		if err != nil {
			return nil, fmt.Errorf("diagram of output %d: %w", k, err)
		}
		roots[k] = r
	}
	return roots, nil
}
