// Copyright (c) 2021 Silvano DAL ZILIO
//
// MIT License

package bdd_test

import (
	"fmt"
	"log"

	"github.com/dalzilio/symmetrize/bdd"
)

// This example shows the basic usage of the package: create a BDD, compute some
// expressions and output the result.
func Example_basic() {
	// Create a new BDD with 6 variables, 10 000 nodes and a cache size of 3 000
	// (initially).
	b, _ := bdd.New(6, bdd.Nodesize(10000), bdd.Cachesize(3000))
	// n1 == x2 & x3 & x5
	n1 := b.And(b.Ithvar(2), b.Ithvar(3), b.Ithvar(5))
	// n2 == x1 | !x3 | x4
	n2 := b.Or(b.Ithvar(1), b.NIthvar(3), b.Ithvar(4))
	// n3 == n1 & n2
	n3 := b.And(n1, n2)
	// You can print the result or export a BDD in Graphviz's DOT format
	log.Print(b.Stats())
	fmt.Printf("Number of sat. assignments: %s\n", b.Satcount(n2))
	fmt.Printf("Number of sat. assignments: %s\n", b.Satcount(n3))
	// Output:
	// Number of sat. assignments: 56
	// Number of sat. assignments: 6
}

// This example builds the diagram of a symmetric function, true when exactly
// one or three of its four inputs are set, that is the parity function.
func ExampleSymmetric() {
	b, _ := bdd.New(4)
	roots, err := bdd.Symmetric(b, 4, [][]bool{{false, true, false, true, false}})
	if err != nil {
		log.Fatal(err)
	}
	parity := b.Xor(b.Ithvar(0), b.Ithvar(1), b.Ithvar(2), b.Ithvar(3))
	fmt.Println(b.Equal(roots[0], parity))
	fmt.Println(b.Count(roots[0]))
	// Output:
	// true
	// 5
}
