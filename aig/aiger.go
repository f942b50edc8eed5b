// Copyright (c) 2021 Silvano DAL ZILIO
//
// MIT License

package aig

import (
	"bufio"
	"fmt"
	"io"
	"os"
	"path/filepath"
	"strings"

	"github.com/dalzilio/symmetrize/errs"
	"github.com/go-air/gini/logic"
	"github.com/go-air/gini/logic/aiger"
	"github.com/go-air/gini/z"
)

// ReadAiger reads a network in AIGER format from r, using the binary encoding
// when binary is set and the ASCII one otherwise.
func ReadAiger(r io.Reader, binary bool) (*Network, error) {
	var t *aiger.T
	var err error
	if binary {
		t, err = aiger.ReadBinary(r)
	} else {
		t, err = aiger.ReadAscii(r)
	}
	if err != nil {
		return nil, fmt.Errorf("reading AIGER: %w", err)
	}
	n, err := fromAiger(t)
	if err != nil {
		return nil, fmt.Errorf("reading AIGER: %w", err)
	}
	return n, nil
}

// fromAiger copies the circuit built by the gini reader, which maps the AIGER
// literal 0 to T. The constant is exchanged during the copy.
func fromAiger(t *aiger.T) (*Network, error) {
	n := New("", len(t.Inputs))
	cp := newCopier(&t.S.C, &n.sys.C)
	cp.memo[t.S.T.Var()] = n.sys.F
	for k, m := range t.Inputs {
		cp.memo[m.Var()] = n.inputs[k]
	}
	latches := make([]z.Lit, len(t.Latches))
	for k, m := range t.Latches {
		latches[k] = n.sys.Latch(n.sys.F)
		switch t.Init(m) {
		case t.S.T:
			n.sys.SetInit(latches[k], n.sys.T)
		case z.LitNull:
			n.sys.SetInit(latches[k], z.LitNull)
		}
		cp.memo[m.Var()] = latches[k]
	}
	for k, m := range t.Latches {
		next, err := cp.lit(t.Next(m))
		if err != nil {
			return nil, fmt.Errorf("latch %d: %w", k, err)
		}
		n.sys.SetNext(latches[k], next)
	}
	for k, m := range t.Outputs {
		res, err := cp.lit(m)
		if err != nil {
			return nil, fmt.Errorf("output %d: %w", k, err)
		}
		n.outputs = append(n.outputs, res)
	}
	return n, nil
}

// aigerWriter numbers the nodes of a network the way AIGER expects: inputs
// first, then And gates in topological order, each gate after its fanins.
type aigerWriter struct {
	sys  *logic.S
	lits map[z.Var]uint
	ands [][3]uint
	// last AIGER variable used
	last uint
}

func newAigerWriter(n *Network) *aigerWriter {
	aw := &aigerWriter{
		sys:  n.sys,
		lits: make(map[z.Var]uint, n.sys.Len()),
		last: uint(len(n.inputs)),
	}
	if n.sys.T.IsPos() {
		aw.lits[n.sys.T.Var()] = 1
	} else {
		aw.lits[n.sys.T.Var()] = 0
	}
	for k, m := range n.inputs {
		aw.lits[m.Var()] = 2 * uint(k+1)
	}
	return aw
}

// lit returns the AIGER literal of m, numbering the And gates in its cone.
func (aw *aigerWriter) lit(m z.Lit) (uint, error) {
	res, ok := aw.lits[m.Var()]
	if !ok {
		a, b := aw.sys.Ins(m)
		if a == z.LitNull {
			return 0, fmt.Errorf("leaf %v is not an input: %w", m, errs.ErrInvalidNetworkKind)
		}
		la, err := aw.lit(a)
		if err != nil {
			return 0, err
		}
		lb, err := aw.lit(b)
		if err != nil {
			return 0, err
		}
		if la < lb {
			la, lb = lb, la
		}
		aw.last++
		res = 2 * aw.last
		aw.ands = append(aw.ands, [3]uint{res, la, lb})
		aw.lits[m.Var()] = res
	}
	if !m.IsPos() {
		res ^= 1
	}
	return res, nil
}

// write7 writes x using the variable length encoding of binary AIGER files.
func write7(w *bufio.Writer, x uint) {
	for x >= 0x80 {
		w.WriteByte(byte(x&0x7f) | 0x80)
		x >>= 7
	}
	w.WriteByte(byte(x))
}

// WriteAiger writes n on w in AIGER format, using the binary encoding when
// binary is set. Outputs are named po0, po1, ... Networks with latches cannot
// be written.
func (n *Network) WriteAiger(w io.Writer, binary bool) error {
	if n.Sequential() {
		return fmt.Errorf("writing %q: %w", n.Name, errs.ErrInvalidNetworkKind)
	}
	aw := newAigerWriter(n)
	outs := make([]uint, len(n.outputs))
	for k, m := range n.outputs {
		l, err := aw.lit(m)
		if err != nil {
			return fmt.Errorf("output %d: %w", k, err)
		}
		outs[k] = l
	}

	bw := bufio.NewWriter(w)
	format := "aag"
	if binary {
		format = "aig"
	}
	fmt.Fprintf(bw, "%s %d %d 0 %d %d\n", format, aw.last, len(n.inputs), len(outs), len(aw.ands))
	if !binary {
		for k := range n.inputs {
			fmt.Fprintf(bw, "%d\n", 2*(k+1))
		}
	}
	for _, l := range outs {
		fmt.Fprintf(bw, "%d\n", l)
	}
	for _, g := range aw.ands {
		if binary {
			write7(bw, g[0]-g[1])
			write7(bw, g[1]-g[2])
		} else {
			fmt.Fprintf(bw, "%d %d %d\n", g[0], g[1], g[2])
		}
	}
	for k := range outs {
		fmt.Fprintf(bw, "o%d po%d\n", k, k)
	}
	return bw.Flush()
}

// isBinary tells the encoding from the extension of filename: ".aag" is the
// ASCII format, everything else is binary.
func isBinary(filename string) bool {
	return !strings.EqualFold(filepath.Ext(filename), ".aag")
}

// ReadFile reads a network from an AIGER file. The network is named after the
// file.
func ReadFile(filename string) (*Network, error) {
	file, err := os.Open(filename)
	if err != nil {
		return nil, err
	}
	defer file.Close()
	n, err := ReadAiger(bufio.NewReader(file), isBinary(filename))
	if err != nil {
		return nil, fmt.Errorf("%s: %w", filename, err)
	}
	n.Name = strings.TrimSuffix(filepath.Base(filename), filepath.Ext(filename))
	return n, nil
}

// WriteFile writes n in an AIGER file.
func (n *Network) WriteFile(filename string) error {
	file, err := os.Create(filename)
	if err != nil {
		return err
	}
	if err := n.WriteAiger(file, isBinary(filename)); err != nil {
		file.Close()
		return fmt.Errorf("%s: %w", filename, err)
	}
	return file.Close()
}
