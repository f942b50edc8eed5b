// Copyright (c) 2021 Silvano DAL ZILIO
//
// MIT License

package bdd

import (
	"bufio"
	"encoding/binary"
	"errors"
	"fmt"
	"io"
	"math"
	"os"
	"sort"

	"github.com/dalzilio/symmetrize/errs"
)

// Forests are stored in a binary, little endian, format:
//
//	int32      number of variables (v)
//	int32 * v  variable at each level
//	uint64     number of entries (k)
//	entry * k  one entry for each regular node
//	uint64     number of roots (m)
//	ref * m    the roots
//
// An entry is a node id, followed by its variable (uint32) and a reference
// for its then and else branches. A reference is an inverted flag (uint8)
// followed by a node id (uint64), with idConstant used for the terminal true.

const idConstant = math.MaxUint64

type fileRef struct {
	Inverted uint8
	ID       uint64
}

type fileEntry struct {
	ID   uint64
	Var  uint32
	Then fileRef
	Else fileRef
}

// Write outputs forest f on w using the binary format described above.
func Write(w io.Writer, f *Forest) error {
	if err := f.Check(); err != nil {
		return err
	}
	bw := bufio.NewWriter(w)
	order := make([]int32, len(f.level2var))
	copy(order, f.level2var)
	if err := binary.Write(bw, binary.LittleEndian, f.varnum); err != nil {
		return err
	}
	if err := binary.Write(bw, binary.LittleEndian, order); err != nil {
		return err
	}
	table := make(map[int]fileEntry)
	roots := make([]fileRef, len(f.Roots))
	for k, r := range f.Roots {
		roots[k] = f.fileref(*r, table)
	}
	entries := make([]fileEntry, 0, len(table))
	for _, e := range table {
		entries = append(entries, e)
	}
	sort.Slice(entries, func(i, j int) bool { return entries[i].ID < entries[j].ID })
	if err := binary.Write(bw, binary.LittleEndian, uint64(len(entries))); err != nil {
		return err
	}
	if err := binary.Write(bw, binary.LittleEndian, entries); err != nil {
		return err
	}
	if err := binary.Write(bw, binary.LittleEndian, uint64(len(roots))); err != nil {
		return err
	}
	if err := binary.Write(bw, binary.LittleEndian, roots); err != nil {
		return err
	}
	return bw.Flush()
}

// fileref returns the reference for r, adding the entries of its node and of
// its successors to table. Ids are allocated in postfix order.
func (b *BDD) fileref(r int, table map[int]fileEntry) fileRef {
	inv := uint8(r & 1)
	if r>>1 == 0 {
		return fileRef{Inverted: inv, ID: idConstant}
	}
	id := r >> 1
	e, ok := table[id]
	if !ok {
		t := b.fileref(b.nodes[id].high, table)
		el := b.fileref(b.nodes[id].low, table)
		e = fileEntry{
			ID:   uint64(len(table)),
			Var:  uint32(b.level2var[b.nodes[id].level]),
			Then: t,
			Else: el,
		}
		table[id] = e
	}
	return fileRef{Inverted: inv, ID: e.ID}
}

// Read returns the forest stored in r. If b is nil, we create a new BDD with
// the number of variables and the variable order found in the file; otherwise
// the diagrams are rebuilt in b, with its own order.
func Read(r io.Reader, b *BDD) (*Forest, error) {
	br := bufio.NewReader(r)
	var varnum int32
	if err := binary.Read(br, binary.LittleEndian, &varnum); err != nil {
		return nil, fmt.Errorf("reading number of variables: %w", err)
	}
	if varnum < 0 || varnum > _MAXVAR {
		return nil, fmt.Errorf("bad number of variables (%d) in diagram file", varnum)
	}
	order := make([]int32, varnum)
	if err := binary.Read(br, binary.LittleEndian, order); err != nil {
		return nil, fmt.Errorf("reading variable order: %w", err)
	}
	var count uint64
	if err := binary.Read(br, binary.LittleEndian, &count); err != nil {
		return nil, fmt.Errorf("reading node table size: %w", err)
	}
	table := make(map[uint64]fileEntry)
	for i := uint64(0); i < count; i++ {
		var e fileEntry
		if err := binary.Read(br, binary.LittleEndian, &e); err != nil {
			return nil, fmt.Errorf("reading entry %d: %w", i, err)
		}
		table[e.ID] = e
	}
	if err := binary.Read(br, binary.LittleEndian, &count); err != nil {
		return nil, fmt.Errorf("reading number of roots: %w", err)
	}
	roots := make([]fileRef, 0, count)
	for i := uint64(0); i < count; i++ {
		var ref fileRef
		if err := binary.Read(br, binary.LittleEndian, &ref); err != nil {
			return nil, fmt.Errorf("reading root %d: %w", i, err)
		}
		roots = append(roots, ref)
	}

	if b == nil {
		perm := make([]int, varnum)
		for k, v := range order {
			perm[k] = int(v)
		}
		var err error
		b, err = New(int(varnum), Order(perm))
		if err != nil {
			return nil, err
		}
	}
	for _, e := range table {
		if int(e.Var) >= b.Varnum() {
			return nil, fmt.Errorf("variable %d in diagram file, BDD has %d: %w", e.Var, b.Varnum(), errs.ErrDimensionMismatch)
		}
	}
	ld := &loader{b: b, table: table, nodes: make(map[uint64]Node), visiting: make(map[uint64]bool)}
	res := &Forest{BDD: b, Roots: make([]Node, len(roots))}
	for k, ref := range roots {
		n, err := ld.node(ref)
		if err != nil {
			return nil, fmt.Errorf("root %d: %w", k, err)
		}
		res.Roots[k] = n
	}
	return res, nil
}

type loader struct {
	b        *BDD
	table    map[uint64]fileEntry
	nodes    map[uint64]Node
	visiting map[uint64]bool
}

var errBadEntry = errors.New("bad entry in diagram file")

func (ld *loader) node(ref fileRef) (Node, error) {
	var res Node
	if ref.ID == idConstant {
		res = ld.b.True()
	} else if n, ok := ld.nodes[ref.ID]; ok {
		res = n
	} else {
		e, ok := ld.table[ref.ID]
		if !ok || ld.visiting[ref.ID] {
			return nil, fmt.Errorf("%w (id %d)", errBadEntry, ref.ID)
		}
		ld.visiting[ref.ID] = true
		t, err := ld.node(e.Then)
		if err != nil {
			return nil, err
		}
		el, err := ld.node(e.Else)
		if err != nil {
			return nil, err
		}
		res = ld.b.Ite(ld.b.Ithvar(int(e.Var)), t, el)
		if res == nil {
			return nil, ld.b.Err()
		}
		ld.nodes[ref.ID] = res
	}
	if ref.Inverted != 0 {
		return ld.b.Not(res), nil
	}
	return res, nil
}

// Store writes forest f in file filename.
func Store(filename string, f *Forest) error {
	out, err := os.Create(filename)
	if err != nil {
		return err
	}
	if err := Write(out, f); err != nil {
		out.Close()
		return err
	}
	return out.Close()
}

// Load reads a forest from file filename. See Read for the meaning of b.
func Load(filename string, b *BDD) (*Forest, error) {
	in, err := os.Open(filename)
	if err != nil {
		return nil, err
	}
	defer in.Close()
	return Read(in, b)
}
