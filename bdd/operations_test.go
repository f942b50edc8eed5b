// Copyright (c) 2021 Silvano DAL ZILIO
//
// MIT License

package bdd

import (
	"fmt"
	"math/big"
	"math/rand"
	"testing"
)

//********************************************************************************************

func TestMinus(t *testing.T) {
	var minusTests = []struct {
		p, q, r  int32
		expected int32
	}{
		{3, 2, 3, 2},
		{4, 4, 4, 4},
		{2, 3, 3, 2},
		{3, 2, 2, 2},
		{3, 3, 2, 2},
		{1, 2, 3, 1},
	}
	for _, tt := range minusTests {
		actual := min3(tt.p, tt.q, tt.r)
		if actual != tt.expected {
			t.Errorf("minus3(%d, %d, %d): expected %d, actual %d", tt.p, tt.q, tt.r, tt.expected, actual)
		}
	}
}

//********************************************************************************************

func TestIte_1(t *testing.T) {
	bdd, _ := New(4, Nodesize(5000), Cachesize(50))
	n1 := bdd.And(bdd.Ithvar(0), bdd.Ithvar(2), bdd.Ithvar(3))
	n2 := bdd.And(bdd.Ithvar(0), bdd.Ithvar(3))
	actual := bdd.Equiv(bdd.Ite(n1, n2, bdd.Not(n2)), bdd.Or(bdd.And(n1, n2), bdd.And(bdd.Not(n1), bdd.Not(n2))))
	if !bdd.Equal(actual, bdd.True()) {
		t.Errorf("ite(f,g,h) <=> (f and g) or (-f and h): expected true, actual false")
	}
}

//********************************************************************************************

// TestApply checks every operator against its truth table, on constants and
// on variables.
func TestApply(t *testing.T) {
	bdd, _ := New(2)
	for op := OPand; op <= OPinvimp; op++ {
		for x := 0; x < 2; x++ {
			for y := 0; y < 2; y++ {
				expected := opres[op][x][y] == 1
				actual := bdd.Apply(bdd.From(x == 1), bdd.From(y == 1), op)
				if !bdd.Equal(actual, bdd.From(expected)) {
					t.Errorf("%s(%d, %d) on constants: expected %v", op, x, y, expected)
				}
				n := bdd.Apply(bdd.Ithvar(0), bdd.Ithvar(1), op)
				v, err := bdd.Eval(n, []bool{x == 1, y == 1})
				if err != nil {
					t.Fatal(err)
				}
				if v != expected {
					t.Errorf("%s(x0, x1) with x0=%d, x1=%d: expected %v, actual %v", op, x, y, expected, v)
				}
			}
		}
	}
}

//********************************************************************************************

func TestNot(t *testing.T) {
	bdd, _ := New(3)
	f := bdd.Or(bdd.And(bdd.Ithvar(0), bdd.Ithvar(1)), bdd.Ithvar(2))
	nf := bdd.Not(f)
	if !bdd.Equal(bdd.Not(nf), f) {
		t.Errorf("not(not(f)) != f")
	}
	if bdd.Count(f, nf) != bdd.Count(f) {
		t.Errorf("f and not(f) should share all their nodes")
	}
	if !bdd.Equal(bdd.And(f, nf), bdd.False()) {
		t.Errorf("f and not(f) should be False")
	}
	if !bdd.Equal(bdd.Low(nf), bdd.Not(bdd.Low(f))) {
		t.Errorf("low(not(f)) != not(low(f))")
	}
	if !bdd.Equal(bdd.NIthvar(1), bdd.Not(bdd.Ithvar(1))) {
		t.Errorf("nithvar(1) != not(ithvar(1))")
	}
}

//********************************************************************************************

func TestSatcount(t *testing.T) {
	bdd, _ := New(4)
	var satcountTests = []struct {
		n        Node
		expected int64
	}{
		{bdd.True(), 16},
		{bdd.False(), 0},
		{bdd.Ithvar(2), 8},
		{bdd.NIthvar(0), 8},
		{bdd.And(bdd.Ithvar(0), bdd.Ithvar(3)), 4},
		{bdd.Not(bdd.And(bdd.Ithvar(0), bdd.Ithvar(3))), 12},
		{bdd.Xor(bdd.Ithvar(0), bdd.Ithvar(1), bdd.Ithvar(2), bdd.Ithvar(3)), 8},
		{bdd.Or(bdd.Ithvar(1), bdd.NIthvar(3)), 12},
	}
	for k, tt := range satcountTests {
		actual := bdd.Satcount(tt.n)
		if actual.Cmp(big.NewInt(tt.expected)) != 0 {
			t.Errorf("satcount test %d: expected %d, actual %s", k, tt.expected, actual)
		}
	}
	hd, err := bdd.HammingDistance(bdd.Ithvar(0), bdd.Ithvar(1))
	if err != nil || hd.Cmp(big.NewInt(8)) != 0 {
		t.Errorf("hamming distance between x0 and x1: expected 8, actual %v (%v)", hd, err)
	}
}

//********************************************************************************************

// TestOperations implements the same tests than the bddtest program in the
// Buddy distribution. It uses function Allsat for checking that all assignments
// are detected.

func TestOperations(t *testing.T) {
	bdd, _ := New(4, Nodesize(1000), Cachesize(1000))
	varnum := 4

	test1_check := func(x Node) error {
		allsatBDD := x
		allsatSumBDD := bdd.False()
		// Calculate whole set of asignments and remove all assignments
		// from original set
		err := bdd.Allsat(x, func(varset []int) error {
			x := bdd.True()
			for k, v := range varset {
				switch v {
				case 0:
					x = bdd.And(x, bdd.NIthvar(k))
				case 1:
					x = bdd.And(x, bdd.Ithvar(k))
				}
			}
			// Sum up all assignments
			allsatSumBDD = bdd.Or(allsatSumBDD, x)
			// Remove assignment from initial set
			allsatBDD = bdd.Apply(allsatBDD, x, OPdiff)
			return nil
		})
		if err != nil {
			return err
		}

		// Now the summed set should be equal to the original set and the
		// subtracted set should be empty
		if !bdd.Equal(allsatSumBDD, x) {
			return fmt.Errorf("AllSat sum is not the initial BDD")
		}

		if !bdd.Equal(allsatBDD, bdd.False()) {
			return fmt.Errorf("AllSat is not False")
		}
		return nil
	}
	check := func(x Node) {
		t.Helper()
		if err := test1_check(x); err != nil {
			t.Error(err)
		}
	}

	a := bdd.Ithvar(0)
	b := bdd.Ithvar(1)
	c := bdd.Ithvar(2)
	d := bdd.Ithvar(3)
	na := bdd.NIthvar(0)
	nb := bdd.NIthvar(1)
	nc := bdd.NIthvar(2)
	nd := bdd.NIthvar(3)

	check(bdd.True())

	check(bdd.False())

	// a & b | !a & !b
	check(bdd.Or(bdd.And(a, b), bdd.And(na, nb)))

	// a & b | c & d
	check(bdd.Or(bdd.And(a, b), bdd.And(c, d)))

	// a & !b | a & !d | a & b & !c
	check(bdd.Or(bdd.And(a, nb), bdd.And(a, nd), bdd.And(a, b, nc)))

	for i := 0; i < varnum; i++ {
		check(bdd.Ithvar(i))
		check(bdd.NIthvar(i))
	}

	rnd := rand.New(rand.NewSource(1))
	set := bdd.True()
	for i := 0; i < 50; i++ {
		v := rnd.Intn(varnum)
		s := rnd.Intn(2)
		o := rnd.Intn(2)

		var lit Node
		if s == 0 {
			lit = bdd.Ithvar(v)
		} else {
			lit = bdd.NIthvar(v)
		}
		if o == 0 {
			set = bdd.And(set, lit)
		} else {
			set = bdd.Xor(set, lit)
		}

		check(set)
	}
}

//********************************************************************************************

// TestGC builds enough nodes in a small table to trigger several garbage
// collections and resizes, and checks that live results are not corrupted.
func TestGC(t *testing.T) {
	const varnum = 10
	bdd, _ := New(varnum, Nodesize(varnum+1), Cachesize(10))
	rnd := rand.New(rand.NewSource(7))
	parity := bdd.False()
	for i := 0; i < varnum; i++ {
		parity = bdd.Xor(parity, bdd.Ithvar(i))
	}
	for i := 0; i < 200; i++ {
		f := bdd.True()
		for j := 0; j < 5; j++ {
			f = bdd.And(f, bdd.Or(bdd.Ithvar(rnd.Intn(varnum)), bdd.NIthvar(rnd.Intn(varnum))))
		}
		_ = bdd.Xor(f, parity)
	}
	if bdd.Errored() {
		t.Fatal(bdd.Error())
	}
	if actual := bdd.Satcount(parity); actual.Cmp(big.NewInt(1<<(varnum-1))) != 0 {
		t.Errorf("parity after GC: expected %d, actual %s", 1<<(varnum-1), actual)
	}
	if actual := bdd.Count(parity); actual != varnum+1 {
		t.Errorf("parity with complement edges: expected %d nodes, actual %d", varnum+1, actual)
	}
}
