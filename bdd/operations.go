// Copyright (c) 2021 Silvano DAL ZILIO
//
// MIT License

package bdd

import (
	"fmt"
	"log"
	"math/big"
)

// neg complements reference r, propagating errors.
func neg(r int) int {
	if r < 0 {
		return -1
	}
	return r ^ 1
}

// Not returns the negation of the expression corresponding to node n. With
// complement edges this is done in constant time, without creating nodes.
func (b *BDD) Not(n Node) Node {
	if err := b.checkptr(n); err != nil {
		return b.seterror("wrong operand in call to Not (%s)", err)
	}
	return b.retnode(*n ^ 1)
}

// Apply performs all of the basic bdd operations with two operands, such as
// AND, OR etc. Left and right are the operand and opr is the requested
// operation and must be one of the following:
//
//	Identifier    Description             Truth table
//
//	OPand         logical and             [0,0,0,1]
//	OPxor         logical xor             [0,1,1,0]
//	OPor          logical or              [0,1,1,1]
//	OPnand        logical not-and         [1,1,1,0]
//	OPnor         logical not-or          [1,0,0,0]
//	OPimp         implication             [1,1,0,1]
//	OPbiimp       equivalence             [1,0,0,1]
//	OPdiff        set difference          [0,0,1,0]
//	OPless        less than               [0,1,0,0]
//	OPinvimp      reverse implication     [1,0,1,1]
func (b *BDD) Apply(left Node, right Node, op Operator) Node {
	if err := b.checkptr(left); err != nil {
		return b.seterror("wrong operand in call to Apply %s(left: %s)", op, err)
	}
	if err := b.checkptr(right); err != nil {
		return b.seterror("wrong operand in call to Apply %s(right: %s)", op, err)
	}
	if op < OPand || op > OPinvimp {
		return b.seterror("unauthorized operation (%d) in apply", op)
	}
	b.initref()
	b.pushref(*left)
	b.pushref(*right)
	res := b.apply(*left, *right, op)
	b.popref(2)
	if res < 0 {
		return b.seterror("error in apply %s", op)
	}
	return b.retnode(res)
}

func (b *BDD) apply(l, r int, op Operator) int {
	if l < 2 && r < 2 {
		// the value of a constant is the opposite of its reference
		if opres[op][1-l][1-r] == 1 {
			return refTrue
		}
		return refFalse
	}
	switch op {
	case OPand:
		return b.and(l, r)
	case OPxor:
		return b.xor(l, r)
	case OPor:
		return neg(b.and(l^1, r^1))
	case OPnand:
		return neg(b.and(l, r))
	case OPnor:
		return b.and(l^1, r^1)
	case OPimp:
		return neg(b.and(l, r^1))
	case OPbiimp:
		return neg(b.xor(l, r))
	case OPdiff:
		return b.and(l, r^1)
	case OPless:
		return b.and(l^1, r)
	case OPinvimp:
		return neg(b.and(l^1, r))
	}
	return -1
}

func (b *BDD) and(l, r int) int {
	switch {
	case l < 0 || r < 0:
		if _DEBUG {
			log.Panicf("panic in and(%d,%d)\n", l, r)
		}
		return -1
	case l == r:
		return l
	case l == r^1:
		return refFalse
	case l == refFalse || r == refFalse:
		return refFalse
	case l == refTrue:
		return r
	case r == refTrue:
		return l
	}
	if l > r {
		l, r = r, l
	}
	if res := b.matchapply(l, r, opAnd); res >= 0 {
		return res
	}
	level := b.level(l)
	if lr := b.level(r); lr < level {
		level = lr
	}
	lt, le := b.cofactors(l, level)
	rt, re := b.cofactors(r, level)
	low := b.pushref(b.and(le, re))
	high := b.pushref(b.and(lt, rt))
	res := b.makenode(level, low, high)
	b.popref(2)
	return b.setapply(l, r, opAnd, res)
}

func (b *BDD) xor(l, r int) int {
	switch {
	case l < 0 || r < 0:
		if _DEBUG {
			log.Panicf("panic in xor(%d,%d)\n", l, r)
		}
		return -1
	case l == r:
		return refFalse
	case l == r^1:
		return refTrue
	}
	// xor commutes with complement, so we only cache regular operands
	c := (l & 1) ^ (r & 1)
	l, r = regular(l), regular(r)
	if l > r {
		l, r = r, l
	}
	if l == refTrue {
		return r ^ 1 ^ c
	}
	if res := b.matchapply(l, r, opXor); res >= 0 {
		return res ^ c
	}
	level := b.level(l)
	if lr := b.level(r); lr < level {
		level = lr
	}
	lt, le := b.cofactors(l, level)
	rt, re := b.cofactors(r, level)
	low := b.pushref(b.xor(le, re))
	high := b.pushref(b.xor(lt, rt))
	res := b.makenode(level, low, high)
	b.popref(2)
	if b.setapply(l, r, opXor, res) < 0 {
		return -1
	}
	return res ^ c
}

// Ite, short for if-then-else operator, computes the BDD for the expression [(f
// /\ g) \/ (not f /\ h)] more efficiently than doing the three operations
// separately.
func (b *BDD) Ite(f, g, h Node) Node {
	if err := b.checkptr(f); err != nil {
		return b.seterror("wrong operand in call to Ite (f: %s)", err)
	}
	if err := b.checkptr(g); err != nil {
		return b.seterror("wrong operand in call to Ite (g: %s)", err)
	}
	if err := b.checkptr(h); err != nil {
		return b.seterror("wrong operand in call to Ite (h: %s)", err)
	}
	b.initref()
	b.pushref(*f)
	b.pushref(*g)
	b.pushref(*h)
	res := b.ite(*f, *g, *h)
	b.popref(3)
	if res < 0 {
		return b.seterror("error in ite")
	}
	return b.retnode(res)
}

// min3 returns the smallest value between p, q and r. This is used in function
// ite to compute the smallest level.
func min3(p, q, r int32) int32 {
	if p <= q {
		if p <= r { // p <= q && p <= r
			return p
		}
		return r // r < p <= q
	}
	if q <= r { // q < p && q <= r
		return q
	}
	return r // r < q < p
}

func (b *BDD) ite(f, g, h int) int {
	switch {
	case f < 0 || g < 0 || h < 0:
		if _DEBUG {
			log.Panicf("panic in ite(%d,%d,%d)\n", f, g, h)
		}
		return -1
	case f == refTrue:
		return g
	case f == refFalse:
		return h
	case g == h:
		return g
	case g == refTrue && h == refFalse:
		return f
	case g == refFalse && h == refTrue:
		return f ^ 1
	case g == h^1:
		return b.xor(f, h)
	case g == refTrue:
		return neg(b.and(f^1, h^1))
	case g == refFalse:
		return b.and(f^1, h)
	case h == refFalse:
		return b.and(f, g)
	case h == refTrue:
		return neg(b.and(f, g^1))
	}
	// normal form: f and g are regular
	if complemented(f) {
		f, g, h = f^1, h, g
	}
	c := 0
	if complemented(g) {
		g, h, c = g^1, h^1, 1
	}
	if res := b.matchite(f, g, h); res >= 0 {
		return res ^ c
	}
	level := min3(b.level(f), b.level(g), b.level(h))
	ft, fe := b.cofactors(f, level)
	gt, ge := b.cofactors(g, level)
	ht, he := b.cofactors(h, level)
	low := b.pushref(b.ite(fe, ge, he))
	high := b.pushref(b.ite(ft, gt, ht))
	res := b.makenode(level, low, high)
	b.popref(2)
	if b.setite(f, g, h, res) < 0 {
		return -1
	}
	return res ^ c
}

// Satcount computes the number of satisfying variable assignments for the
// function denoted by n. We return a result using arbitrary-precision
// arithmetic to avoid possible overflows. The result is zero (and we set the
// error flag of b) if there is an error.
func (b *BDD) Satcount(n Node) *big.Int {
	res := big.NewInt(0)
	if err := b.checkptr(n); err != nil {
		b.seterror("wrong operand in call to Satcount (%s)", err)
		return res
	}
	satc := make(map[int]*big.Int)
	res.Lsh(b.satcount(*n, satc), uint(b.level(*n)))
	return res
}

// satcount returns the number of assignments of the variables below the level
// of r (included) that satisfy r. Values are memoized on the regular node.
func (b *BDD) satcount(r int, satc map[int]*big.Int) *big.Int {
	if r == refTrue {
		return big.NewInt(1)
	}
	if r == refFalse {
		return big.NewInt(0)
	}
	id := r >> 1
	res, ok := satc[id]
	if !ok {
		level := b.level(r)
		low := b.nodes[id].low
		high := b.nodes[id].high
		res = new(big.Int).Lsh(b.satcount(low, satc), uint(b.level(low)-level-1))
		res.Add(res, new(big.Int).Lsh(b.satcount(high, satc), uint(b.level(high)-level-1)))
		satc[id] = res
	}
	if complemented(r) {
		all := new(big.Int).Lsh(big.NewInt(1), uint(b.varnum-b.level(r)))
		return all.Sub(all, res)
	}
	return res
}

// HammingDistance returns the number of assignments on which the functions
// denoted by n1 and n2 differ.
func (b *BDD) HammingDistance(n1, n2 Node) (*big.Int, error) {
	x := b.Apply(n1, n2, OPxor)
	if x == nil {
		return nil, b.Err()
	}
	return b.Satcount(x), nil
}

// Count returns the number of distinct nodes, including the terminal, used by
// the diagrams rooted at the given nodes. Shared nodes are counted once.
func (b *BDD) Count(roots ...Node) int {
	visited := map[int]struct{}{0: {}}
	stack := []int{}
	for _, n := range roots {
		if b.checkptr(n) != nil {
			b.seterror("wrong operand in call to Count")
			return 0
		}
		stack = append(stack, *n>>1)
	}
	for len(stack) > 0 {
		id := stack[len(stack)-1]
		stack = stack[:len(stack)-1]
		if _, ok := visited[id]; ok {
			continue
		}
		visited[id] = struct{}{}
		stack = append(stack, b.nodes[id].low>>1, b.nodes[id].high>>1)
	}
	return len(visited)
}

// Eval returns the value of the function denoted by n for the given
// assignment. The assignment is indexed by variable and must be of length
// Varnum.
func (b *BDD) Eval(n Node, assignment []bool) (bool, error) {
	if err := b.checkptr(n); err != nil {
		return false, err
	}
	if len(assignment) != int(b.varnum) {
		return false, fmt.Errorf("assignment of length %d for %d variables", len(assignment), b.varnum)
	}
	r := *n
	for r > 1 {
		if assignment[b.level2var[b.level(r)]] {
			r = b.high(r)
		} else {
			r = b.low(r)
		}
	}
	return r == refTrue, nil
}

// IsConstant reports whether n denotes one of the two constant functions.
func (b *BDD) IsConstant(n Node) bool {
	return *n < 2
}

// IsComplement reports whether n is a complemented edge.
func (b *BDD) IsComplement(n Node) bool {
	return complemented(*n)
}

// Regular returns the non complemented edge to the node referenced by n.
func (b *BDD) Regular(n Node) Node {
	return b.retnode(regular(*n))
}

// Level returns the level of the node referenced by n, that is the position of
// its variable in the current order. Constants have level Varnum.
func (b *BDD) Level(n Node) int {
	return int(b.level(*n))
}

// Var returns the variable tested by the node referenced by n, or -1 for
// constants.
func (b *BDD) Var(n Node) int {
	if *n < 2 {
		return -1
	}
	return int(b.level2var[b.level(*n)])
}

// Low returns the false branch of n. The complement attribute of n is taken
// into account, so that Low(Not(n)) is equal to Not(Low(n)).
func (b *BDD) Low(n Node) Node {
	if err := b.checkptr(n); err != nil {
		return b.seterror("wrong operand in call to Low (%s)", err)
	}
	if *n < 2 {
		return n
	}
	return b.retnode(b.low(*n))
}

// High returns the true branch of n. See Low.
func (b *BDD) High(n Node) Node {
	if err := b.checkptr(n); err != nil {
		return b.seterror("wrong operand in call to High (%s)", err)
	}
	if *n < 2 {
		return n
	}
	return b.retnode(b.high(*n))
}

// Allsat Iterates through all legal variable assignments for n and calls the
// function f on each of them. We pass an int slice of length varnum to f where
// each entry is either  0 if the variable is false, 1 if it is true, and -1 if
// it is a don't care. We stop and return an error if f returns an error at some
// point.
//
// The following is an example of a callback handler that counts the number of
// possible assignments (such that we do not count don't care twice):
//
//	acc := new(int)
//	b.Allsat(n, func(varset []int) error {
//		*acc++
//		return nil
//	})
func (b *BDD) Allsat(n Node, f func([]int) error) error {
	if err := b.checkptr(n); err != nil {
		return fmt.Errorf("wrong node in call to Allsat (%s)", err)
	}
	prof := make([]int, b.varnum)
	for k := range prof {
		prof[k] = -1
	}
	// the function does not create new nodes, so we do not need to take care of
	// possible resizing
	return b.allsat(*n, prof, f)
}

func (b *BDD) allsat(r int, prof []int, f func([]int) error) error {
	if r == refTrue {
		return f(prof)
	}
	if r == refFalse {
		return nil
	}
	level := b.level(r)
	v := b.level2var[level]
	if low := b.low(r); low != refFalse {
		prof[v] = 0
		for l := b.level(low) - 1; l > level; l-- {
			prof[b.level2var[l]] = -1
		}
		if err := b.allsat(low, prof, f); err != nil {
			return err
		}
	}
	if high := b.high(r); high != refFalse {
		prof[v] = 1
		for l := b.level(high) - 1; l > level; l-- {
			prof[b.level2var[l]] = -1
		}
		if err := b.allsat(high, prof, f); err != nil {
			return err
		}
	}
	prof[v] = -1
	return nil
}

// Allnodes applies function f over all the nodes accessible from the nodes in
// the sequence n..., or all the active nodes if n is absent (len(n) == 0). The
// parameters to function f are the id, level, and references of the low and high
// edges of each node. The terminal has always the id 0 and successors are
// references of the form id<<1 | c, where c is set on complemented edges. The
// order in which nodes are visited is not specified. The behavior is very
// similar to the one of Allsat. In particular, we stop the computation and
// return an error if f returns an error at some point.
func (b *BDD) Allnodes(f func(id, level, low, high int) error, n ...Node) error {
	for _, v := range n {
		if err := b.checkptr(v); err != nil {
			return fmt.Errorf("wrong node in call to Allnodes (%s)", err)
		}
	}
	// the function does not create new nodes, so we do not need to take care of
	// possible resizing.
	if len(n) == 0 {
		return b.allnodes(f)
	}
	return b.allnodesfrom(f, n)
}
