// Copyright (c) 2021 Silvano DAL ZILIO
//
// MIT License

package symmetrize

import (
	"fmt"

	"github.com/dalzilio/symmetrize/aig"
	"github.com/dalzilio/symmetrize/errs"
	"github.com/dalzilio/symmetrize/tt"
	"github.com/go-air/gini/z"
)

// Realize adds to net one output for each component of f and returns their
// signals. The inputs of the network are counted once, and each component is
// a multiplexer tree over the bits of this count. The truth table of a
// component, indexed by Hamming weight, is first extended to a power of two
// so as to minimize the number of distinct sub-tables of the tree.
func Realize(net *aig.Network, f *SymmetricFunction) ([]z.Lit, error) {
	if f.N != net.NumInputs() {
		return nil, fmt.Errorf("symmetric function over %d inputs for a network with %d inputs: %w", f.N, net.NumInputs(), errs.ErrDimensionMismatch)
	}
	count := net.PopCount(net.Inputs())
	res := make([]z.Lit, f.M)
	for i, comp := range f.Components {
		table, err := tt.FillMinBeads(comp)
		if err != nil {
			return nil, fmt.Errorf("component %d: %w", i, err)
		}
		width, err := tt.Log2(len(table))
		if err != nil {
			return nil, err
		}
		res[i], err = net.MuxLUT(table, selector(net, count, width))
		if err != nil {
			return nil, fmt.Errorf("component %d: %w", i, err)
		}
	}
	net.AddOutputs(res...)
	return res, nil
}

// selector returns the width least significant bits of count, padded with
// constant false when the count is shorter. The bits above width are always
// false since a component has one entry per possible count.
func selector(net *aig.Network, count aig.Number, width int) aig.Number {
	if len(count) >= width {
		return count[:width]
	}
	res := make(aig.Number, width)
	copy(res, count)
	for k := len(count); k < width; k++ {
		res[k] = net.Const(false)
	}
	return res
}

// NewSymmetricNetwork returns a new network realizing f.
func NewSymmetricNetwork(name string, f *SymmetricFunction) (*aig.Network, error) {
	net := aig.New(name, f.N)
	if _, err := Realize(net, f); err != nil {
		return nil, err
	}
	return net, nil
}
