// Copyright (c) 2021 Silvano DAL ZILIO
//
// MIT License

package bdd

import (
	"fmt"
	"log"
	"math"
	"runtime"
	"unsafe"
)

// tables implements the node table using the runtime hashmap as unicity
// table. We hash a triplet (level, low, high) to the index of the node in the
// nodes slice.
type tables struct {
	nodes         []node           // List of all the BDD nodes. The terminal is always kept at index 0
	unique        map[nodekey]int  // Unicity table, used to associate each triplet to a single node
	freenum       int              // Number of free nodes
	freepos       int              // First free node
	produced      int              // Total number of new nodes ever produced
	nodefinalizer func(n *int)     // Finalizer used to decrement the ref count of external references
	gcstat                         // Information about garbage collections
}

type nodekey struct {
	level int32
	low   int
	high  int
}

// node is an entry in the node table. The high (then) edge of a node is never
// complemented, which gives a canonical form to diagrams with complement
// edges.
type node struct {
	level  int32 // Order of the variable in the BDD
	low    int   // Reference to the false branch
	high   int   // Reference to the true branch
	refcou int32 // Count the number of external references
}

func (b *BDD) ismarked(n int) bool {
	return (b.nodes[n].refcou & _MARK) != 0
}

func (b *BDD) marknode(n int) {
	b.nodes[n].refcou |= _MARK
}

func (b *BDD) unmarknode(n int) {
	b.nodes[n].refcou &^= _MARK
}

func maketables(nodesize int, b *BDD) *tables {
	t := &tables{}
	if nodesize < 2 {
		nodesize = 2
	}
	// initializing the list of nodes
	t.nodes = make([]node, nodesize)
	for k := range t.nodes {
		t.nodes[k] = node{
			level:  0,
			low:    -1,
			high:   k + 1,
			refcou: 0,
		}
	}
	t.nodes[nodesize-1].high = 0
	t.unique = make(map[nodekey]int, nodesize)
	// the terminal is not added to the unique table.
	t.nodes[0] = node{
		level:  int32(b.configs.varnum),
		low:    refTrue,
		high:   refTrue,
		refcou: _MAXREFCOUNT,
	}
	t.freepos = 1
	t.freenum = nodesize - 1
	t.gcstat.history = []gcpoint{}
	t.nodefinalizer = func(n *int) {
		b.mu.Lock()
		b.released = append(b.released, *n>>1)
		b.mu.Unlock()
	}
	return t
}

// retnode returns a Node for reference n and increments the reference count of
// its node. The count is decremented when the Node is reclaimed by the Go
// runtime.
func (b *BDD) retnode(n int) Node {
	if n < 0 || (n>>1) >= len(b.nodes) {
		if _DEBUG {
			log.Panicf("b.retnode(%d) not valid\n", n)
		}
		return nil
	}
	if n == refTrue {
		return bddone
	}
	if n == refFalse {
		return bddzero
	}
	x := n
	id := n >> 1
	if b.nodes[id].refcou&^_MARK < _MAXREFCOUNT {
		b.nodes[id].refcou++
		runtime.SetFinalizer(&x, b.nodefinalizer)
		b.gcstat.setfinalizers++
	}
	return &x
}

// makenode returns a reference to the node (level, low, high), creating it if
// needed. We return -1 if there is an error.
func (b *BDD) makenode(level int32, low int, high int) int {
	if low < 0 || high < 0 {
		return -1
	}
	// check whether children are equal, in which case we can skip the node
	if low == high {
		return low
	}
	// the then edge must be regular; otherwise we build the complement
	if complemented(high) {
		res := b.makenode(level, low^1, high^1)
		if res < 0 {
			return res
		}
		return res ^ 1
	}
	b.uniqueAccess++
	// otherwise try to find an existing node using the unique table
	if res, ok := b.unique[nodekey{level, low, high}]; ok {
		b.uniqueHit++
		return res << 1
	}
	b.uniqueMiss++
	// If no existing node, we build one. If there is no available spot
	// (b.freepos == 0), we try garbage collection and, as a last resort,
	// resizing the BDD list.
	if b.freepos == 0 {
		b.pushref(low)
		b.pushref(high)
		b.gbc()
		if (b.freenum*100)/len(b.nodes) <= b.minfreenodes {
			if err := b.noderesize(); err != nil {
				b.popref(2)
				b.seterror("%s (%d nodes)", err, len(b.nodes))
				return -1
			}
		}
		b.popref(2)
		if b.freepos == 0 {
			b.seterror("%s (%d nodes)", errMemory, len(b.nodes))
			return -1
		}
	}
	// We can now build the new node in the first available spot
	b.produced++
	return b.setnode(level, low, high, 0) << 1
}

// When a slot is unused in b.nodes, we have low set to -1 and high set to the
// next free position. The value of b.freepos gives the index of the lowest
// unused slot, except when freenum is 0, in which case it is also 0.

func (b *BDD) setnode(level int32, low int, high int, count int32) int {
	b.freenum--
	res := b.freepos
	b.unique[nodekey{level, low, high}] = res
	b.freepos = b.nodes[res].high
	b.nodes[res] = node{level, low, high, count}
	return res
}

func (b *BDD) delnode(n node) {
	delete(b.unique, nodekey{n.level, n.low, n.high})
}

func (b *BDD) noderesize() error {
	if _LOGLEVEL > 0 {
		log.Printf("start resize: %d\n", len(b.nodes))
	}
	oldsize := len(b.nodes)
	nodesize := len(b.nodes)
	if (oldsize >= b.maxnodesize) && (b.maxnodesize > 0) {
		return errMemory
	}
	if oldsize > (math.MaxInt32 >> 1) {
		nodesize = math.MaxInt32 - 1
	} else {
		nodesize = nodesize << 1
	}
	if b.maxnodeincrease > 0 && nodesize > (oldsize+b.maxnodeincrease) {
		nodesize = oldsize + b.maxnodeincrease
	}
	if (nodesize > b.maxnodesize) && (b.maxnodesize > 0) {
		nodesize = b.maxnodesize
	}
	if nodesize <= oldsize {
		return errMemory
	}

	tmp := b.nodes
	b.nodes = make([]node, nodesize)
	copy(b.nodes, tmp)

	for n := oldsize; n < nodesize; n++ {
		b.nodes[n].refcou = 0
		b.nodes[n].level = 0
		b.nodes[n].low = -1
		b.nodes[n].high = n + 1
	}
	b.nodes[nodesize-1].high = b.freepos
	b.freepos = oldsize
	b.freenum += (nodesize - oldsize)

	b.cacheresize()

	if _LOGLEVEL > 0 {
		log.Printf("end resize: %d\n", len(b.nodes))
	}
	return nil
}

func (b *BDD) level(r int) int32 {
	return b.nodes[r>>1].level
}

// low returns the else edge of reference r, taking the complement bit of r
// into account.
func (b *BDD) low(r int) int {
	return b.nodes[r>>1].low ^ (r & 1)
}

func (b *BDD) high(r int) int {
	return b.nodes[r>>1].high ^ (r & 1)
}

// cofactors returns the then and else cofactors of r with respect to the
// variable at the given level.
func (b *BDD) cofactors(r int, level int32) (int, int) {
	if b.level(r) != level {
		return r, r
	}
	return b.high(r), b.low(r)
}

func (b *BDD) allnodesfrom(f func(id, level, low, high int) error, n []Node) error {
	for _, v := range n {
		b.markrec(*v >> 1)
	}
	defer b.unmarkall()
	if err := f(0, int(b.nodes[0].level), refTrue, refTrue); err != nil {
		return err
	}
	for k := range b.nodes {
		if k > 0 && b.ismarked(k) {
			if err := f(k, int(b.nodes[k].level), b.nodes[k].low, b.nodes[k].high); err != nil {
				return err
			}
		}
	}
	return nil
}

func (b *BDD) allnodes(f func(id, level, low, high int) error) error {
	if err := f(0, int(b.nodes[0].level), refTrue, refTrue); err != nil {
		return err
	}
	for k, v := range b.nodes {
		if k > 0 && v.low != -1 {
			if err := f(k, int(v.level), v.low, v.high); err != nil {
				return err
			}
		}
	}
	return nil
}

// Stats returns information about the BDD
func (b *BDD) Stats() string {
	res := fmt.Sprintf("Varnum:     %d\n", b.varnum)
	res += fmt.Sprintf("Allocated:  %d\n", len(b.nodes))
	res += fmt.Sprintf("Produced:   %d\n", b.produced)
	r := (float64(b.freenum) / float64(len(b.nodes))) * 100
	res += fmt.Sprintf("Free:       %d  (%.3g %%)\n", b.freenum, r)
	res += fmt.Sprintf("Used:       %d  (%.3g %%)\n", len(b.nodes)-b.freenum, (100.0 - r))
	res += fmt.Sprintf("Size:       %s\n", humanSize(len(b.nodes), unsafe.Sizeof(node{})))
	res += "==============\n"
	res += fmt.Sprintf("# of GC:    %d\n", len(b.gcstat.history))
	res += fmt.Sprintf("Ext. refs:  %d\n", b.gcstat.setfinalizers)
	res += "==============\n"
	res += b.cacheStat.String()
	if _DEBUG {
		b.logTable()
	}
	return res
}

func humanSize(b int, unit uintptr) string {
	const K = 1024
	size := uint64(b) * uint64(unit)
	if size < K {
		return fmt.Sprintf("%d B", size)
	}
	div, exp := uint64(K), 0
	for n := size / K; n >= K; n /= K {
		div *= K
		exp++
	}
	return fmt.Sprintf("%.1f %ciB", float64(size)/float64(div), "KMGTPE"[exp])
}
