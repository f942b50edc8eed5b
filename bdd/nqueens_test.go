// Copyright (c) 2021 Silvano DAL ZILIO
//
// MIT License

package bdd

import (
	"math/big"
	"math/rand"
	"testing"
)

// nqueens builds the constraints of the N-Queen chess problem in a new BDD
// created with the given options. It uses NxN variables corresponding to the
// squares in the chess board like:
//
//	0 4  8 12
//	1 5  9 13
//	2 6 10 14
//	3 7 11 15
//
// One solution is then that 2,4,11,13 should be true, meaning a queen should be
// placed there:
//
//	. X . .
//	. . . X
//	X . . .
//	. . X .
func nqueens(N int, options ...Option) (*BDD, Node) {
	opts := append([]Option{Nodesize(N * N * 256), Cachesize(N * N * 64), Cacheratio(30)}, options...)
	bdd, err := New(N*N, opts...)
	if err != nil {
		panic(err)
	}
	queen := bdd.True()
	X := make([][]Node, N)
	for i := range X {
		X[i] = make([]Node, N)
		for j := range X[i] {
			X[i][j] = bdd.Ithvar(i*N + j)
		}
	}
	for i := 0; i < N; i++ {
		queen = bdd.And(queen, bdd.Or(X[i]...))
	}
	// a queen on (i, j) excludes every square on the same column, row or
	// diagonal
	for i := 0; i < N; i++ {
		for j := 0; j < N; j++ {
			for k := 0; k < N; k++ {
				for l := 0; l < N; l++ {
					if (k == i && l == j) || !attacks(i, j, k, l) {
						continue
					}
					queen = bdd.And(queen, bdd.Imp(X[i][j], bdd.Not(X[k][l])))
				}
			}
		}
	}
	return bdd, queen
}

func attacks(i, j, k, l int) bool {
	return i == k || j == l || i-k == j-l || i-k == l-j
}

// solution reports whether board, indexed like the variables of nqueens, is a
// placement of N queens that do not attack each other.
func solution(N int, board []bool) bool {
	var queens [][2]int
	for v, b := range board {
		if b {
			queens = append(queens, [2]int{v / N, v % N})
		}
	}
	if len(queens) != N {
		return false
	}
	for a := range queens {
		for b := a + 1; b < len(queens); b++ {
			if attacks(queens[a][0], queens[a][1], queens[b][0], queens[b][1]) {
				return false
			}
		}
	}
	return true
}

var nqueensTests = []struct {
	N        int
	expected int64
}{
	{4, 2},
	{5, 10},
	{6, 4},
	{8, 92},
}

func TestNQueens(t *testing.T) {
	rnd := rand.New(rand.NewSource(3))
	for _, tt := range nqueensTests {
		reversed := make([]int, tt.N*tt.N)
		for k := range reversed {
			reversed[k] = len(reversed) - 1 - k
		}
		orders := map[string][]Option{
			"natural":  nil,
			"reversed": {Order(reversed)},
		}
		if tt.N <= 6 {
			orders["random"] = []Option{Order(rnd.Perm(tt.N * tt.N))}
		}
		for name, opts := range orders {
			bdd, queen := nqueens(tt.N, opts...)
			if bdd.Errored() {
				t.Fatalf("NQueens(%d) with %s order: %s", tt.N, name, bdd.Error())
			}
			actual := bdd.Satcount(queen)
			if actual.Cmp(big.NewInt(tt.expected)) != 0 {
				t.Errorf("Error in NQueens(%d) with %s order, expected %d, actual %s", tt.N, name, tt.expected, actual)
			}
		}
	}
}

func TestNQueensAllsat(t *testing.T) {
	for _, tt := range nqueensTests[:3] {
		bdd, queen := nqueens(tt.N)
		count := new(big.Int)
		err := bdd.Allsat(queen, func(prof []int) error {
			board := make([]bool, len(prof))
			free := 0
			for v, x := range prof {
				switch x {
				case 1:
					board[v] = true
				case -1:
					free++
				}
			}
			if !solution(tt.N, board) {
				t.Errorf("NQueens(%d): %v is not a solution", tt.N, prof)
			}
			if ok, err := bdd.Eval(queen, board); err != nil || !ok {
				t.Errorf("NQueens(%d): Eval on %v returns %v, %v", tt.N, prof, ok, err)
			}
			count.Add(count, new(big.Int).Lsh(big.NewInt(1), uint(free)))
			return nil
		})
		if err != nil {
			t.Fatal(err)
		}
		if count.Cmp(bdd.Satcount(queen)) != 0 {
			t.Errorf("NQueens(%d): Allsat gives %s solutions, Satcount %s", tt.N, count, bdd.Satcount(queen))
		}
	}
}

func TestNQueensSift(t *testing.T) {
	for _, tt := range nqueensTests[:2] {
		bdd, queen := nqueens(tt.N)
		f := NewForest(bdd, queen)
		g, err := Sift(f)
		if err != nil {
			t.Fatal(err)
		}
		if g.Count() > f.Count() {
			t.Errorf("NQueens(%d): sifting grows the BDD from %d to %d nodes", tt.N, f.Count(), g.Count())
		}
		if actual := g.BDD.Satcount(g.Roots[0]); actual.Cmp(big.NewInt(tt.expected)) != 0 {
			t.Errorf("NQueens(%d) after sifting, expected %d, actual %s", tt.N, tt.expected, actual)
		}
	}
}

func BenchmarkNQueens(b *testing.B) {
	for n := 0; n < b.N; n++ {
		bdd, queen := nqueens(10)
		bdd.Satcount(queen)
	}
}
