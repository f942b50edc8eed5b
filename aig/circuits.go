// Copyright (c) 2021 Silvano DAL ZILIO
//
// MIT License

package aig

import (
	"fmt"
	"math/rand"

	"github.com/dalzilio/symmetrize/errs"
	"github.com/dalzilio/symmetrize/tt"
	"github.com/go-air/gini/z"
)

// Number is an unsigned integer given by its bits, least significant first.
type Number []z.Lit

// Sum is the result of a one bit addition.
type Sum struct {
	Sum, Carry z.Lit
}

// Number returns the two bits of s as a number.
func (s Sum) Number() Number {
	return Number{s.Sum, s.Carry}
}

// HalfAdder returns the sum of bits a and b.
func (n *Network) HalfAdder(a, b z.Lit) Sum {
	return Sum{Sum: n.Xor(a, b), Carry: n.And(a, b)}
}

// FullAdder returns the sum of bits a, b and c.
func (n *Network) FullAdder(a, b, c z.Lit) Sum {
	add1 := n.HalfAdder(a, b)
	add2 := n.HalfAdder(c, add1.Sum)
	return Sum{Sum: add2.Sum, Carry: n.Or(add1.Carry, add2.Carry)}
}

// Adder returns a ripple carry adder for a + b + cin. The result has one bit
// more than the longest operand, or no bit at all if both operands are empty.
func (n *Network) Adder(a, b Number, cin z.Lit) Number {
	if len(a) < len(b) {
		a, b = b, a
	}
	if len(a) == 0 {
		return Number{}
	}
	res := make(Number, 0, len(a)+1)
	for k := range b {
		s := n.FullAdder(a[k], b[k], cin)
		res = append(res, s.Sum)
		cin = s.Carry
	}
	for _, x := range a[len(b):] {
		s := n.HalfAdder(x, cin)
		res = append(res, s.Sum)
		cin = s.Carry
	}
	return append(res, cin)
}

// PopCount returns the number of true signals in, using Swartzlander's
// parallel counter. The count of an empty sequence is the empty number.
func (n *Network) PopCount(in []z.Lit) Number {
	switch len(in) {
	case 0:
		return Number{}
	case 1:
		return Number{in[0]}
	case 2:
		return n.HalfAdder(in[0], in[1]).Number()
	case 3:
		return n.FullAdder(in[0], in[1], in[2]).Number()
	}
	cin := in[len(in)-1]
	rest := in[:len(in)-1]
	half := len(rest) / 2
	return n.Adder(n.PopCount(rest[:half]), n.PopCount(rest[half:]), cin)
}

// MuxLUT returns a signal for the value of table at the position given by
// idx: table[k] is selected when idx, read as a number, is equal to k. The
// table must have 2^len(idx) entries.
func (n *Network) MuxLUT(table []bool, idx Number) (z.Lit, error) {
	if !tt.IsPow2(len(table)) {
		return z.LitNull, fmt.Errorf("table with %d entries: %w", len(table), errs.ErrMalformedTable)
	}
	if l, _ := tt.Log2(len(table)); l != len(idx) {
		return z.LitNull, fmt.Errorf("table with %d entries indexed by %d bits: %w", len(table), len(idx), errs.ErrMalformedTable)
	}
	return n.muxlut(table, idx), nil
}

func (n *Network) muxlut(table []bool, idx Number) z.Lit {
	if len(table) == 1 {
		return n.Const(table[0])
	}
	half := len(table) / 2
	ctrl := idx[len(idx)-1]
	idx = idx[:len(idx)-1]
	return n.Mux(ctrl, n.muxlut(table[half:], idx), n.muxlut(table[:half], idx))
}

// Multiplier returns an array multiplier for as × bs. The product has
// len(as)+len(bs) bits.
func (n *Network) Multiplier(as, bs Number) Number {
	if len(as) < len(bs) {
		as, bs = bs, as
	}
	if len(bs) == 0 {
		return Number{}
	}
	zero := n.Const(false)
	cell := func(s, a, b, c z.Lit) Sum {
		return n.FullAdder(s, n.And(a, b), c)
	}
	res := make(Number, 0, len(as)+len(bs))
	previous := make([]Sum, len(as))
	carry := zero
	for k, a := range as {
		previous[k] = cell(zero, a, bs[0], carry)
		carry = previous[k].Carry
	}
	for _, b := range bs[1:] {
		res = append(res, previous[0].Sum)
		carry = zero
		for k, a := range as {
			s := previous[len(as)-1].Carry
			if k < len(as)-1 {
				s = previous[k+1].Sum
			}
			previous[k] = cell(s, a, b, carry)
			carry = previous[k].Carry
		}
	}
	for _, c := range previous {
		res = append(res, c.Sum)
	}
	return append(res, previous[len(previous)-1].Carry)
}

// MAC returns the sum of the products of each pair of numbers.
func (n *Network) MAC(pairs [][2]Number) Number {
	switch len(pairs) {
	case 0:
		return Number{}
	case 1:
		return n.Multiplier(pairs[0][0], pairs[0][1])
	}
	half := len(pairs) / 2
	return n.Adder(n.MAC(pairs[:half]), n.MAC(pairs[half:]), n.Const(false))
}

// RandomMaximallyAsymmetric returns a random function of the given inputs
// that is as far as possible from every symmetric function: in each weight
// class, the number of true and false minterms differ by at most one.
func (n *Network) RandomMaximallyAsymmetric(inputs []z.Lit, rnd *rand.Rand) z.Lit {
	rm := &rmas{
		net:     n,
		inputs:  inputs,
		binom:   pascal(len(inputs)),
		classes: make([][2]int64, len(inputs)+1),
		rnd:     rnd,
	}
	return rm.build()
}

type rmas struct {
	net     *Network
	inputs  []z.Lit
	binom   []int64
	classes [][2]int64
	current []bool
	rnd     *rand.Rand
}

// build enumerates the assignments in lexicographic order, each variable
// being false first, and decides the value of each minterm.
func (rm *rmas) build() z.Lit {
	if len(rm.current) < len(rm.inputs) {
		rm.current = append(rm.current, false)
		zero := rm.build()
		rm.current[len(rm.current)-1] = true
		one := rm.build()
		rm.current = rm.current[:len(rm.current)-1]
		return rm.net.Or(zero, one)
	}
	hw := 0
	for _, v := range rm.current {
		if v {
			hw++
		}
	}
	values := &rm.classes[hw]
	limit := (rm.binom[hw] + 1) / 2
	one := false
	if values[0] < limit && values[1] < limit {
		one = rm.rnd.Intn(2) == 1
	} else if values[1] < limit {
		one = true
	}
	if !one {
		values[0]++
		return rm.net.Const(false)
	}
	values[1]++
	product := rm.net.Const(true)
	for k, x := range rm.inputs {
		if !rm.current[k] {
			x = x.Not()
		}
		product = rm.net.And(product, x)
	}
	return product
}

// pascal returns the binomial coefficients C(n, k) for 0 ≤ k ≤ n.
func pascal(n int) []int64 {
	row := make([]int64, n+1)
	row[0] = 1
	for i := 1; i <= n; i++ {
		for k := i; k > 0; k-- {
			row[k] += row[k-1]
		}
	}
	return row
}
