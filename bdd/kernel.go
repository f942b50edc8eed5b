// Copyright (c) 2021 Silvano DAL ZILIO
//
// MIT License

package bdd

import (
	"errors"
)

// _MINFREENODES is the minimal number of nodes (%) that has to be left after a
// garbage collect unless a resize should be done.
const _MINFREENODES int = 20

// _MAXVAR is the maximal number of levels in the BDD. We use only the first 21
// bits for encoding levels (so also the max number of variables).
const _MAXVAR int32 = 0x1FFFFF

// _MAXREFCOUNT is the maximal value of the reference counter (refcou), also
// used to stick nodes (like constants and variables) in the node list. It is
// egal to 1023 (10 bits).
const _MAXREFCOUNT int32 = 0x3FF

// _MARK is the bit used to mark nodes during a garbage collection or a
// traversal. It is stored in the reference counter, above _MAXREFCOUNT.
const _MARK int32 = 0x200000

// _DEFAULTMAXNODEINC is the default value for the maximal increase in the
// number of nodes during a resize. It is approx. one million nodes (1 048 576).
const _DEFAULTMAXNODEINC int = 1 << 20

// References to nodes are integers of the form id<<1 | c, where id is an index
// in the node table and c is set when the edge is complemented. There is a
// single terminal, with id 0, so that the reference 0 stands for True and the
// reference 1 for False.
const (
	refTrue  = 0
	refFalse = 1
)

var errMemory = errors.New("unable to free memory or resize BDD")

func regular(r int) int { return r &^ 1 }

func complemented(r int) bool { return r&1 == 1 }
