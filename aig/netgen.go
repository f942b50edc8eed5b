// Copyright (c) 2021 Silvano DAL ZILIO
//
// MIT License

package aig

import (
	"fmt"
	"math/rand"
)

// NewAdder returns a network adding two numbers of the given width. Inputs are
// the bits of the first operand followed by those of the second one, least
// significant first; the sum has bits+1 outputs.
func NewAdder(bits int) *Network {
	n := New(fmt.Sprintf("add%d", bits), 0)
	a := n.AddInputs(bits)
	b := n.AddInputs(bits)
	n.AddOutputs(n.Adder(a, b, n.Const(false))...)
	return n
}

// NewMultiplier returns a network multiplying two numbers of the given width,
// with the same input layout as NewAdder and 2*bits outputs.
func NewMultiplier(bits int) *Network {
	n := New(fmt.Sprintf("multiply%d", bits), 0)
	a := n.AddInputs(bits)
	b := n.AddInputs(bits)
	n.AddOutputs(n.Multiplier(a, b)...)
	return n
}

// NewMAC returns a network computing the sum of products of the given number
// of pairs. Inputs are the two operands of each pair in sequence.
func NewMAC(bits, pairs int) *Network {
	n := New(fmt.Sprintf("mac %d x multiply%d", pairs, bits), 0)
	ps := make([][2]Number, pairs)
	for k := range ps {
		ps[k][0] = n.AddInputs(bits)
		ps[k][1] = n.AddInputs(bits)
	}
	n.AddOutputs(n.MAC(ps)...)
	return n
}

// NewAsymmetric returns a network with in inputs and out outputs, each output
// being a random maximally asymmetric function of all the inputs.
func NewAsymmetric(in, out int, rnd *rand.Rand) *Network {
	n := New(fmt.Sprintf("rand max asymm B^%d -> B^%d", in, out), in)
	for k := 0; k < out; k++ {
		n.AddOutputs(n.RandomMaximallyAsymmetric(n.inputs, rnd))
	}
	return n
}
