// Copyright (c) 2021 Silvano DAL ZILIO
//
// MIT License

package bdd

import "log"

// setVarnum generates the nodes used for Ithvar and NIthvar. We call this
// function only once during initialization, after the variable order is known.
// Variable nodes are never reclaimed.
func (b *BDD) setVarnum() error {
	b.varset = make([]int, b.varnum)
	b.initref()
	for v := int32(0); v < b.varnum; v++ {
		r := b.makenode(b.var2level[v], refFalse, refTrue)
		if r < 0 {
			b.seterror("cannot allocate new variable %d in setVarnum", v)
			return b.error
		}
		b.varset[v] = r
		b.nodes[r>>1].refcou = _MAXREFCOUNT
	}
	if _LOGLEVEL > 0 {
		log.Printf("set varnum to %d\n", b.varnum)
	}
	return nil
}
