// Copyright (c) 2021 Silvano DAL ZILIO
//
// MIT License

package symmetrize

import (
	"math/big"
)

// Synthesize returns the value vector of the symmetric function closest, in
// Hamming distance, to a function with histogram h: the value of each weight
// class is the majority value of the function in this class, ties going to
// false. We also return the Hamming distance between the two functions.
func Synthesize(h Histogram, bin *Binomial) ([]bool, *big.Int) {
	n := len(h) - 1
	if bin == nil || bin.N() < n {
		bin = NewBinomial(n)
	}
	vector := make([]bool, len(h))
	dist := new(big.Int)
	zeros := new(big.Int)
	for w, ones := range h {
		zeros.Sub(bin.C(n, w), ones)
		if ones.Cmp(zeros) > 0 {
			vector[w] = true
			dist.Add(dist, zeros)
		} else {
			dist.Add(dist, ones)
		}
	}
	return vector, dist
}

// SymmetricFunction is a multi-output function whose components are totally
// symmetric. Component i is true on an input with Hamming weight w iff
// Components[i][w] is set. Errors[i] is the Hamming distance between component
// i and the function it approximates.
//
// A SymmetricFunction must not be modified once built.
type SymmetricFunction struct {
	N, M       int
	Components [][]bool
	Errors     []*big.Int
}

// NewSymmetricFunction returns the symmetric function closest to a function
// with the given histograms, one per component.
func NewSymmetricFunction(hs []Histogram, bin *Binomial) *SymmetricFunction {
	f := &SymmetricFunction{
		M:          len(hs),
		Components: make([][]bool, len(hs)),
		Errors:     make([]*big.Int, len(hs)),
	}
	if len(hs) > 0 {
		f.N = len(hs[0]) - 1
	} else if bin != nil {
		f.N = bin.N()
	}
	for i, h := range hs {
		f.Components[i], f.Errors[i] = Synthesize(h, bin)
	}
	return f
}

// Eval returns the value of component i on the given input.
func (f *SymmetricFunction) Eval(i int, in []bool) bool {
	w := 0
	for _, v := range in {
		if v {
			w++
		}
	}
	return f.Components[i][w]
}

// TotalError returns the sum of the Hamming distances of all the components.
func (f *SymmetricFunction) TotalError() *big.Int {
	res := new(big.Int)
	for _, e := range f.Errors {
		res.Add(res, e)
	}
	return res
}
