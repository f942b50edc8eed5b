// Copyright (c) 2021 Silvano DAL ZILIO
//
// MIT License

package symmetrize

import "math/big"

// Binomial is a table of binomial coefficients C(i, k) for 0 ≤ k ≤ i ≤ N. The
// table is read-only once built and can be shared between computations.
type Binomial struct {
	rows [][]*big.Int
}

// NewBinomial returns the table of binomial coefficients up to n, built using
// Pascal's rule.
func NewBinomial(n int) *Binomial {
	if n < 0 {
		n = 0
	}
	rows := make([][]*big.Int, n+1)
	rows[0] = []*big.Int{big.NewInt(1)}
	for i := 1; i <= n; i++ {
		rows[i] = make([]*big.Int, i+1)
		rows[i][0] = big.NewInt(1)
		rows[i][i] = big.NewInt(1)
		for k := 1; k < i; k++ {
			rows[i][k] = new(big.Int).Add(rows[i-1][k-1], rows[i-1][k])
		}
	}
	return &Binomial{rows: rows}
}

// N returns the largest value of n in the table.
func (b *Binomial) N() int {
	return len(b.rows) - 1
}

// C returns the binomial coefficient C(n, k), which is zero when k is not in
// [0..n]. The result must not be modified. Values of n larger than N are
// computed on demand and not stored.
func (b *Binomial) C(n, k int) *big.Int {
	if k < 0 || n < 0 || k > n {
		return new(big.Int)
	}
	if n >= len(b.rows) {
		return new(big.Int).Binomial(int64(n), int64(k))
	}
	return b.rows[n][k]
}
