// Copyright (c) 2021 Silvano DAL ZILIO
//
// MIT License

package bdd

import (
	"fmt"
	"sync"
)

// Node is a reference to an element of a BDD. It represents the atomic unit of
// interactions and computations within a BDD. The value of a Node is an edge:
// the index of a node in the table shifted by one, with the lowest bit set when
// the edge is complemented.
type Node *int

// inode returns a Node for known nodes, such as variables, that do not need to
// increase their reference count.
func inode(n int) Node {
	x := n
	return &x
}

var bddone Node = inode(refTrue)

var bddzero Node = inode(refFalse)

// BDD is a table of shared, reduced and ordered decision diagram nodes with
// complement edges. All the nodes created by the methods of a BDD belong to it
// and cannot be mixed with nodes from another BDD (see Transfer).
//
// A BDD is not safe for concurrent use.
type BDD struct {
	varnum    int32   // number of variables
	level2var []int32 // variable at each level
	var2level []int32 // level of each variable
	varset    []int   // reference to the node for each variable
	refstack  []int   // nodes under construction that must survive a GC
	error     error   // sticky error status
	*tables
	applycache *applycache
	itecache   *itecache
	cacheStat
	configs

	mu       sync.Mutex // protects released
	released []int      // ids whose external reference was collected
}

// New returns a new BDD with varnum variables. Options can be used to
// configure the size of the node table and caches, or the variable order (see
// type configs). We return an error if the configuration is not valid.
func New(varnum int, options ...Option) (*BDD, error) {
	b := &BDD{}
	if (varnum < 0) || (int32(varnum) > _MAXVAR) {
		return nil, fmt.Errorf("bad number of variable (%d)", varnum)
	}
	config := makeconfigs(varnum)
	for _, f := range options {
		f(config)
	}
	b.configs = *config
	if err := b.setorder(config.order); err != nil {
		return nil, err
	}
	b.varnum = int32(varnum)
	b.refstack = make([]int, 0, 2*varnum+4)
	b.initref()
	b.tables = maketables(b.nodesize, b)
	b.cacheinit(b.cachesize)
	if err := b.setVarnum(); err != nil {
		return nil, err
	}
	return b, nil
}

func (b *BDD) setorder(order []int32) error {
	n := b.configs.varnum
	b.level2var = make([]int32, n)
	b.var2level = make([]int32, n)
	if order == nil {
		for k := range b.level2var {
			b.level2var[k] = int32(k)
			b.var2level[k] = int32(k)
		}
		return nil
	}
	if len(order) != n {
		return fmt.Errorf("order of length %d for %d variables", len(order), n)
	}
	seen := make([]bool, n)
	for l, v := range order {
		if v < 0 || int(v) >= n || seen[v] {
			return fmt.Errorf("order is not a permutation (variable %d at level %d)", v, l)
		}
		seen[v] = true
		b.level2var[l] = v
		b.var2level[v] = int32(l)
	}
	return nil
}

// Varnum returns the number of defined variables.
func (b *BDD) Varnum() int {
	return int(b.varnum)
}

// Order returns the variable at each level, from the root to the terminal.
func (b *BDD) Order() []int {
	res := make([]int, len(b.level2var))
	for k, v := range b.level2var {
		res[k] = int(v)
	}
	return res
}

// True returns the constant true BDD
func (b *BDD) True() Node {
	return bddone
}

// False returns the constant false BDD
func (b *BDD) False() Node {
	return bddzero
}

// From returns a (constant) Node from a boolean value.
func (b *BDD) From(v bool) Node {
	if v {
		return bddone
	}
	return bddzero
}

// Ithvar returns a BDD representing the i'th variable on success. The
// requested variable must be in the range [0..Varnum).
func (b *BDD) Ithvar(i int) Node {
	if (i < 0) || (int32(i) >= b.varnum) {
		return b.seterror("Unknown variable used (%d) in call to ithvar", i)
	}
	return inode(b.varset[i])
}

// NIthvar returns a bdd representing the negation of the i'th variable on
// success. See *ithvar* for further info.
func (b *BDD) NIthvar(i int) Node {
	if (i < 0) || (int32(i) >= b.varnum) {
		return b.seterror("Unknown variable used (%d) in call to nithvar", i)
	}
	return inode(b.varset[i] ^ 1)
}

// And returns the logical 'and' of a sequence of nodes.
func (b *BDD) And(n ...Node) Node {
	if len(n) == 1 {
		return n[0]
	}
	if len(n) == 0 {
		return bddone
	}
	return b.Apply(n[0], b.And(n[1:]...), OPand)
}

// Or returns the logical 'or' of a sequence of BDDs.
func (b *BDD) Or(n ...Node) Node {
	if len(n) == 1 {
		return n[0]
	}
	if len(n) == 0 {
		return bddzero
	}
	return b.Apply(n[0], b.Or(n[1:]...), OPor)
}

// Xor returns the exclusive or of a sequence of BDDs.
func (b *BDD) Xor(n ...Node) Node {
	if len(n) == 1 {
		return n[0]
	}
	if len(n) == 0 {
		return bddzero
	}
	return b.Apply(n[0], b.Xor(n[1:]...), OPxor)
}

// Imp returns the logical 'implication' between two BDDs.
func (b *BDD) Imp(n1, n2 Node) Node {
	return b.Apply(n1, n2, OPimp)
}

// Equiv returns the logical 'bi-implication' between two BDDs.
func (b *BDD) Equiv(n1, n2 Node) Node {
	return b.Apply(n1, n2, OPbiimp)
}

// Equal tests equivalence between nodes. Since diagrams are canonical, two
// nodes of the same BDD are equivalent when they hold the same reference.
func (b *BDD) Equal(low, high Node) bool {
	if low == high {
		return true
	}
	if low == nil || high == nil {
		return false
	}
	return *low == *high
}
