// Copyright 2021. Silvano DAL ZILIO.
//
// Licensed under the Apache License, Version 2.0 (the "License"); you may not
// use this file except in compliance with the License. You may obtain a copy of
// the License at
//
//     http://www.apache.org/licenses/LICENSE-2.0
//
// Unless required by applicable law or agreed to in writing, software
// distributed under the License is distributed on an "AS IS" BASIS, WITHOUT
// WARRANTIES OR CONDITIONS OF ANY KIND, either express or implied. See the
// License for the specific language governing permissions and limitations under
// the License.

package bdd

import (
	"bufio"
	"fmt"
	"io"
	"os"
	"sort"
)

// Print returns a one-line description of node n.
func (b *BDD) Print(n Node) string {
	if b.error != nil {
		return fmt.Sprintf("error %s", b.error)
	}
	if n == nil {
		return "Error (nil node)"
	}
	switch {
	case *n == refTrue:
		return "True"
	case *n == refFalse:
		return "False"
	case *n < 0:
		return "Error"
	case (*n >> 1) >= len(b.nodes):
		return fmt.Sprintf("Error (%d not a valid index)", *n>>1)
	}
	id := *n >> 1
	if b.nodes[id].low == -1 {
		return fmt.Sprintf("Error (node %d undefined)", id)
	}
	neg := ""
	if complemented(*n) {
		neg = "~"
	}
	return fmt.Sprintf("%s(%d[x%d] ? %s : %s)", neg, id, b.level2var[b.nodes[id].level], edgename(b.nodes[id].high), edgename(b.nodes[id].low))
}

func edgename(r int) string {
	if complemented(r) {
		return fmt.Sprintf("~%d", r>>1)
	}
	return fmt.Sprintf("%d", r>>1)
}

// ******************************************************************************************************

// PrintDot prints a graph-like description of the BDD with roots n using the
// DOT format.
func (b *BDD) PrintDot(n ...Node) error {
	return b.WriteDot(os.Stdout, n...)
}

// FPrintDot writes the DOT description of the diagrams with roots n in file
// filename. We use the standard output when filename is "-".
func (b *BDD) FPrintDot(filename string, n ...Node) error {
	var out *os.File
	var err error
	if filename == "-" {
		out = os.Stdout
	} else {
		out, err = os.Create(filename)
		if err != nil {
			return err
		}
		defer out.Close()
	}
	return b.WriteDot(out, n...)
}

// WriteDot writes a GraphViz DOT description of the diagrams with roots n on
// w. Else edges are dotted and complemented edges end with a hollow dot. We
// print all the active nodes when n is empty.
func (b *BDD) WriteDot(w io.Writer, n ...Node) error {
	if b.error != nil {
		return b.error
	}
	type dotnode struct{ id, level, low, high int }
	nodes := []dotnode{}
	err := b.Allnodes(func(id, level, low, high int) error {
		if id > 0 {
			nodes = append(nodes, dotnode{id, level, low, high})
		}
		return nil
	}, n...)
	if err != nil {
		return err
	}
	sort.Slice(nodes, func(i, j int) bool { return nodes[i].id < nodes[j].id })
	bw := bufio.NewWriter(w)
	fmt.Fprintln(bw, "digraph G {")
	fmt.Fprintln(bw, "0 [shape=box, label=\"1\", style=filled, height=0.3, width=0.3];")
	for _, v := range nodes {
		fmt.Fprintf(bw, "%d %s\n", v.id, dotlabel(v.id, b.level2var[v.level]))
		fmt.Fprintf(bw, "%d -> %d [style=dotted%s];\n", v.id, v.low>>1, dotarrow(v.low))
		fmt.Fprintf(bw, "%d -> %d [style=filled];\n", v.id, v.high>>1)
	}
	for k, r := range n {
		fmt.Fprintf(bw, "r%d [shape=plaintext, label=\"f%d\"];\n", k, k)
		fmt.Fprintf(bw, "r%d -> %d [style=filled%s];\n", k, *r>>1, dotarrow(*r))
	}
	fmt.Fprintln(bw, "}")
	return bw.Flush()
}

func dotarrow(r int) string {
	if complemented(r) {
		return ", arrowhead=odot"
	}
	return ""
}

func dotlabel(a int, b int32) string {
	return fmt.Sprintf(`[label=<
	<FONT POINT-SIZE="20">%d</FONT>
	<FONT POINT-SIZE="10">[%d]</FONT>
>];`, b, a)
}
