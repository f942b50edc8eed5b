// Copyright (c) 2021 Silvano DAL ZILIO
//
// MIT License

package symmetrize

import "github.com/dalzilio/symmetrize/aig"

// Rewriter is an optimization applied on the network after the symmetric
// outputs are added, and before the selection. A Rewriter may change the
// nodes of the network but must keep its inputs and outputs.
type Rewriter interface {
	Rewrite(net *aig.Network) error
}

// RewriterFunc is an adapter to use ordinary functions as Rewriter.
type RewriterFunc func(net *aig.Network) error

// Rewrite calls f(net).
func (f RewriterFunc) Rewrite(net *aig.Network) error {
	return f(net)
}

// Cleanup is a Rewriter removing the logic that is not reachable from the
// outputs.
var Cleanup Rewriter = RewriterFunc(func(net *aig.Network) error {
	return net.Cleanup()
})
