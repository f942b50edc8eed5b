// Copyright (c) 2021 Silvano DAL ZILIO
//
// MIT License

package symmetrize

import (
	"fmt"
	"math/big"
	"strings"

	"github.com/dalzilio/symmetrize/bdd"
	"github.com/dalzilio/symmetrize/errs"
)

// Histogram gives, for a function over n variables, the number of true
// minterms in each weight class: h[w] is the number of assignments with w
// variables set to true on which the function is true. A histogram has n+1
// entries and h[w] ≤ C(n, w).
type Histogram []*big.Int

func (h Histogram) String() string {
	var sb strings.Builder
	sb.WriteByte('[')
	for k, v := range h {
		if k > 0 {
			sb.WriteByte(' ')
		}
		sb.WriteString(v.String())
	}
	sb.WriteByte(']')
	return sb.String()
}

// Histograms returns the weight-class histogram of every root of forest f.
// Value n must be the number of variables of the BDD. If bin is nil, a table
// of binomial coefficients is built for the call.
//
// Histograms are computed bottom-up, in a single pass over the nodes shared by
// all the roots: the histogram of a node only depends on the variables below
// it and is expanded when the edge leading to it skips levels.
func Histograms(f *bdd.Forest, n int, bin *Binomial) ([]Histogram, error) {
	if err := f.Check(); err != nil {
		return nil, err
	}
	if n != f.Varnum() {
		return nil, fmt.Errorf("histograms over %d inputs for %d variables: %w", n, f.Varnum(), errs.ErrDimensionMismatch)
	}
	if bin == nil || bin.N() < n {
		bin = NewBinomial(n)
	}
	hc := &histcounter{
		b:     f.BDD,
		n:     n,
		bin:   bin,
		cache: make(map[int]Histogram),
	}
	res := make([]Histogram, len(f.Roots))
	for k, r := range f.Roots {
		res[k] = hc.count(r, 0)
	}
	return res, nil
}

type histcounter struct {
	b     *bdd.BDD
	n     int
	bin   *Binomial
	cache map[int]Histogram // keyed by regular node
}

// count returns the histogram of node r over the variables at levels l and
// below.
func (hc *histcounter) count(r bdd.Node, l int) Histogram {
	if hc.b.IsComplement(r) {
		return hc.complement(hc.count(hc.b.Regular(r), l))
	}
	level := hc.b.Level(r)
	if hc.b.IsConstant(r) {
		// the only regular constant is True
		return hc.expand(Histogram{big.NewInt(1)}, level-l)
	}
	h, ok := hc.cache[*r]
	if !ok {
		t := hc.count(hc.b.High(r), level+1)
		e := hc.count(hc.b.Low(r), level+1)
		h = combine(t, e)
		hc.cache[*r] = h
	}
	return hc.expand(h, level-l)
}

// combine returns the histogram of a node from the ones of its branches. A
// minterm of the then branch has one more variable set to true.
func combine(t, e Histogram) Histogram {
	res := make(Histogram, len(e)+1)
	for k := range res {
		res[k] = new(big.Int)
		if k < len(e) {
			res[k].Set(e[k])
		}
		if k > 0 && k-1 < len(t) {
			res[k].Add(res[k], t[k-1])
		}
	}
	return res
}

// expand returns the histogram of h over d more free variables.
func (hc *histcounter) expand(h Histogram, d int) Histogram {
	if d == 0 {
		return h
	}
	res := make(Histogram, len(h)+d)
	for k := range res {
		res[k] = new(big.Int)
	}
	tmp := new(big.Int)
	for i := 0; i <= d; i++ {
		c := hc.bin.C(d, i)
		for j, v := range h {
			res[i+j].Add(res[i+j], tmp.Mul(c, v))
		}
	}
	return res
}

// complement returns the histogram of the negation of a function whose
// histogram is h.
func (hc *histcounter) complement(h Histogram) Histogram {
	n := len(h) - 1
	res := make(Histogram, len(h))
	for w, v := range h {
		res[w] = new(big.Int).Sub(hc.bin.C(n, w), v)
	}
	return res
}
