// Copyright (c) 2021 Silvano DAL ZILIO
//
// MIT License

package aig

import (
	"fmt"

	"github.com/dalzilio/symmetrize/bdd"
	"github.com/dalzilio/symmetrize/errs"
	"github.com/go-air/gini/logic"
	"github.com/go-air/gini/z"
)

// Network is a multi-output Boolean function represented as an and-inverter
// graph. Signals are gini literals: the complement of a signal is free and
// structural hashing is performed on every And.
//
// A network can carry a forest of decision diagrams, one root per output, over
// one variable per input (input i is variable i).
type Network struct {
	Name     string
	sys      *logic.S
	inputs   []z.Lit
	outputs  []z.Lit
	diagrams *bdd.Forest
}

// New returns a network with the given number of inputs and no outputs.
func New(name string, inputs int) *Network {
	n := &Network{Name: name, sys: logic.NewS()}
	n.AddInputs(inputs)
	return n
}

// AddInputs adds k fresh inputs to the network and returns their signals.
func (n *Network) AddInputs(k int) []z.Lit {
	res := make([]z.Lit, k)
	for i := range res {
		res[i] = n.sys.Lit()
	}
	n.inputs = append(n.inputs, res...)
	return res
}

// Inputs returns the signals of the inputs, in order.
func (n *Network) Inputs() []z.Lit {
	return append([]z.Lit(nil), n.inputs...)
}

// Outputs returns the signals driving the outputs, in order.
func (n *Network) Outputs() []z.Lit {
	return append([]z.Lit(nil), n.outputs...)
}

// NumInputs returns the number of inputs of n.
func (n *Network) NumInputs() int {
	return len(n.inputs)
}

// NumOutputs returns the number of outputs of n.
func (n *Network) NumOutputs() int {
	return len(n.outputs)
}

// AddOutputs appends one output for each signal. Attached diagrams no longer
// describe the outputs and are released.
func (n *Network) AddOutputs(outs ...z.Lit) {
	n.FreeDiagrams()
	n.outputs = append(n.outputs, outs...)
}

// ReplaceOutputs drops the current outputs and uses outs instead. Attached
// diagrams are released.
func (n *Network) ReplaceOutputs(outs []z.Lit) {
	n.FreeDiagrams()
	n.outputs = append([]z.Lit(nil), outs...)
}

// Const returns the constant signal with value v.
func (n *Network) Const(v bool) z.Lit {
	if v {
		return n.sys.T
	}
	return n.sys.F
}

// Not returns the complement of a.
func (n *Network) Not(a z.Lit) z.Lit {
	return a.Not()
}

// And returns a signal for a ∧ b.
func (n *Network) And(a, b z.Lit) z.Lit {
	return n.sys.And(a, b)
}

// Or returns a signal for a ∨ b.
func (n *Network) Or(a, b z.Lit) z.Lit {
	return n.sys.Or(a, b)
}

// Xor returns a signal for a ⊕ b.
func (n *Network) Xor(a, b z.Lit) z.Lit {
	return n.sys.Xor(a, b)
}

// Mux returns a signal equal to t when s holds, and to e otherwise.
func (n *Network) Mux(s, t, e z.Lit) z.Lit {
	return n.sys.Choice(s, t, e)
}

// CountNodesFor returns the number of And nodes in the cone of the given
// signals. Nodes shared between cones are counted once; inputs and the
// constant are not counted.
func (n *Network) CountNodesFor(outs ...z.Lit) int {
	visited := make(map[z.Var]struct{})
	stack := make([]z.Lit, 0, len(outs))
	stack = append(stack, outs...)
	count := 0
	for len(stack) > 0 {
		m := stack[len(stack)-1]
		stack = stack[:len(stack)-1]
		v := m.Var()
		if v <= 1 {
			continue
		}
		if _, ok := visited[v]; ok {
			continue
		}
		visited[v] = struct{}{}
		a, b := n.sys.Ins(m)
		if a == z.LitNull {
			continue
		}
		count++
		stack = append(stack, a, b)
	}
	return count
}

// NodeCount returns the number of And nodes reachable from the outputs.
func (n *Network) NodeCount() int {
	return n.CountNodesFor(n.outputs...)
}

// Sequential reports whether the network has latches. Such networks are read
// from AIGER files but cannot be symmetrized.
func (n *Network) Sequential() bool {
	return len(n.sys.Latches) > 0
}

// Copy returns a copy of n sharing no state with it. Diagrams are not copied.
func (n *Network) Copy() *Network {
	return &Network{
		Name:    n.Name,
		sys:     n.sys.Copy(),
		inputs:  append([]z.Lit(nil), n.inputs...),
		outputs: append([]z.Lit(nil), n.outputs...),
	}
}

// Cleanup rebuilds the network so that it contains only the logic reachable
// from its outputs. Inputs are kept, in the same order, even when unused.
// Signals obtained before the call are invalidated; attached diagrams are
// kept since the function computed by each output does not change.
func (n *Network) Cleanup() error {
	if n.Sequential() {
		return fmt.Errorf("cleanup of %q: %w", n.Name, errs.ErrInvalidNetworkKind)
	}
	sys := logic.NewSCap(n.sys.Len())
	cp := newCopier(&n.sys.C, &sys.C)
	inputs := make([]z.Lit, len(n.inputs))
	for k, m := range n.inputs {
		inputs[k] = sys.Lit()
		cp.memo[m.Var()] = inputs[k]
	}
	outputs := make([]z.Lit, len(n.outputs))
	for k, m := range n.outputs {
		res, err := cp.lit(m)
		if err != nil {
			return fmt.Errorf("cleanup of output %d: %w", k, err)
		}
		outputs[k] = res
	}
	n.sys, n.inputs, n.outputs = sys, inputs, outputs
	return nil
}

// Check verifies the structure of the network: signals must be defined,
// inputs must be distinct leaves, and every And node must only depend on
// nodes created before it.
func (n *Network) Check() error {
	size := z.Var(n.sys.Len())
	seen := make(map[z.Var]struct{}, len(n.inputs))
	for k, m := range n.inputs {
		v := m.Var()
		if v <= 1 || v >= size || !m.IsPos() {
			return fmt.Errorf("input %d (%v) is not a valid leaf: %w", k, m, errs.ErrPostconditionViolated)
		}
		if a, _ := n.sys.Ins(m); a != z.LitNull {
			return fmt.Errorf("input %d (%v) is an And node: %w", k, m, errs.ErrPostconditionViolated)
		}
		if _, ok := seen[v]; ok {
			return fmt.Errorf("input %d (%v) used twice: %w", k, m, errs.ErrPostconditionViolated)
		}
		seen[v] = struct{}{}
	}
	for k, m := range n.outputs {
		if m.Var() == 0 || m.Var() >= size {
			return fmt.Errorf("output %d (%v) is undefined: %w", k, m, errs.ErrPostconditionViolated)
		}
	}
	for i := 2; i < int(size); i++ {
		m := n.sys.At(i)
		a, b := n.sys.Ins(m)
		if a == z.LitNull {
			continue
		}
		if a.Var() == 0 || b.Var() == 0 || a.Var() >= m.Var() || b.Var() >= m.Var() {
			return fmt.Errorf("node %v has fanins %v and %v: %w", m, a, b, errs.ErrPostconditionViolated)
		}
	}
	return nil
}

// Eval returns the value of the outputs for the given values of the inputs.
// Latches, if any, have value false.
func (n *Network) Eval(in []bool) ([]bool, error) {
	if len(in) != len(n.inputs) {
		return nil, fmt.Errorf("evaluation with %d values for %d inputs: %w", len(in), len(n.inputs), errs.ErrDimensionMismatch)
	}
	vs := make([]bool, n.sys.Len())
	for k, m := range n.inputs {
		vs[m.Var()] = in[k]
	}
	n.sys.C.Eval(vs)
	res := make([]bool, len(n.outputs))
	for k, m := range n.outputs {
		res[k] = vs[m.Var()] == m.IsPos()
	}
	return res, nil
}

// copier copies cones from one circuit into another, keeping track of the
// variables already copied.
type copier struct {
	src, dst *logic.C
	memo     map[z.Var]z.Lit
}

func newCopier(src, dst *logic.C) *copier {
	return &copier{
		src:  src,
		dst:  dst,
		memo: map[z.Var]z.Lit{src.T.Var(): dst.T},
	}
}

// lit returns the literal of dst equivalent to m. Leaves of the cone of m must
// have been mapped beforehand.
func (cp *copier) lit(m z.Lit) (z.Lit, error) {
	v := m.Var()
	res, ok := cp.memo[v]
	if !ok {
		a, b := cp.src.Ins(m)
		if a == z.LitNull {
			return z.LitNull, fmt.Errorf("leaf %v is not an input: %w", m, errs.ErrInvalidNetworkKind)
		}
		ra, err := cp.lit(a)
		if err != nil {
			return z.LitNull, err
		}
		rb, err := cp.lit(b)
		if err != nil {
			return z.LitNull, err
		}
		res = cp.dst.And(ra, rb)
		cp.memo[v] = res
	}
	if !m.IsPos() {
		return res.Not(), nil
	}
	return res, nil
}
