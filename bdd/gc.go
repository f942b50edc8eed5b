// Copyright (c) 2021 Silvano DAL ZILIO
//
// MIT License

package bdd

import (
	"log"
)

// gcstat stores status information about garbage collections. We use a stack
// (slice) of objects to record the sequence of GC during a computation.
type gcstat struct {
	setfinalizers    uint64    // Total number of external references to BDD nodes
	calledfinalizers uint64    // Number of external references that were freed
	history          []gcpoint // Snaphot of GC stats at each occurrence
}

type gcpoint struct {
	nodes            int // Total number of allocated nodes in the nodetable
	freenodes        int // Number of free nodes in the nodetable
	setfinalizers    int // Total number of external references to BDD nodes
	calledfinalizers int // Number of external references that were freed
}

// *************************************************************************

// drainreleased decrements the reference count of the nodes whose external
// references were reclaimed by the Go runtime since the last call. Finalizers
// run on their own goroutine, so they only record ids and we update the table
// from the goroutine using the BDD.
func (b *BDD) drainreleased() {
	b.mu.Lock()
	ids := b.released
	b.released = nil
	b.mu.Unlock()
	for _, id := range ids {
		if id < len(b.nodes) && b.nodes[id].low != -1 && b.nodes[id].refcou > 0 && b.nodes[id].refcou < _MAXREFCOUNT {
			b.nodes[id].refcou--
		}
	}
	b.gcstat.calledfinalizers += uint64(len(ids))
}

// gbc is the garbage collector called for reclaiming memory, inside a call to
// makenode, when there are no free positions available. Allocated nodes that
// are not reclaimed do not move.
func (b *BDD) gbc() {
	if _LOGLEVEL > 0 {
		log.Println("starting GC")
	}
	b.drainreleased()

	// we append the current stats to the GC history
	b.gcstat.history = append(b.gcstat.history, gcpoint{
		nodes:            len(b.nodes),
		freenodes:        b.freenum,
		setfinalizers:    int(b.gcstat.setfinalizers),
		calledfinalizers: int(b.gcstat.calledfinalizers),
	})
	b.gcstat.setfinalizers = 0
	b.gcstat.calledfinalizers = 0

	// we mark the nodes in the refstack to avoid collecting them
	for _, r := range b.refstack {
		b.markrec(r >> 1)
	}
	// we also protect nodes with a positive refcount (and therefore also the
	// ones with a MAXREFCOUNT, such has variables)
	for k := range b.nodes {
		if b.nodes[k].low != -1 && b.nodes[k].refcou&^_MARK > 0 {
			b.markrec(k)
		}
	}
	b.freepos = 0
	b.freenum = 0
	// we do a pass through the nodes list to void the unmarked nodes. After
	// finishing this pass, b.freepos points to the first free position in
	// b.nodes, or it is 0 if we found none.
	for n := len(b.nodes) - 1; n > 0; n-- {
		if b.ismarked(n) && (b.nodes[n].low != -1) {
			b.unmarknode(n)
		} else {
			if b.nodes[n].low != -1 {
				b.delnode(b.nodes[n])
			}
			b.nodes[n].low = -1
			b.nodes[n].refcou = 0
			b.nodes[n].high = b.freepos
			b.freepos = n
			b.freenum++
		}
	}
	// cached results may point to reclaimed nodes
	b.cachereset()
	if _LOGLEVEL > 0 {
		log.Printf("end GC; freenum: %d\n", b.freenum)
	}
}

// *************************************************************************
// RECURSIVE MARK / UNMARK

func (b *BDD) markrec(n int) {
	if n < 1 || b.ismarked(n) || (b.nodes[n].low == -1) {
		return
	}
	b.marknode(n)
	b.markrec(b.nodes[n].low >> 1)
	b.markrec(b.nodes[n].high >> 1)
}

func (b *BDD) unmarkall() {
	for k, v := range b.nodes {
		if k < 1 || !b.ismarked(k) || (v.low == -1) {
			continue
		}
		b.unmarknode(k)
	}
}

// *************************************************************************
// private functions to manipulate the refstack; used to prevent nodes that are
// currently being built (e.g. transient nodes built during an apply) to be
// reclaimed during GC.

func (b *BDD) initref() {
	b.refstack = b.refstack[:0]
}

func (b *BDD) pushref(n int) int {
	b.refstack = append(b.refstack, n)
	return n
}

func (b *BDD) popref(a int) {
	b.refstack = b.refstack[:len(b.refstack)-a]
}
