// Copyright (c) 2021 Silvano DAL ZILIO
//
// MIT License

/*
Package bdd defines a concrete type for Binary Decision Diagrams (BDD) with
complement edges, a data structure used to efficiently represent Boolean
functions over a fixed set of variables.

# Basics

Each BDD has a fixed number of variables, Varnum, declared when it is
initialized (using the method New) and each variable is represented by an
(integer) index in the interval [0..Varnum). Variables are tested in a fixed
order; the position of a variable in this order is called its level and can be
set with the Order option. The constants have level Varnum.

Most operations over BDD return a Node; that is a pointer to a reference in the
node table. A reference is an integer of the form id<<1 | c, where id is the
index of a node and c is set when the edge is complemented. There is a single
terminal, with index 0, so that 0 is the reference of True and 1 the reference
of False. Negation is done in constant time and a node and its negation share
the same nodes. To keep diagrams canonical, the then branch of a node is never
complemented.

The data structures and algorithms implemented in this package are an
adaptation of those found in the C-library BuDDy, developed by Jorn
Lind-Nielsen, extended with complement edges in the style of CUDD.

# Forests

A Forest is a sequence of diagrams sharing the same BDD, used to represent a
multi-output function. Forests can be transferred to another BDD (possibly with
a different variable order), stored in a compact binary format (see Write and
Read), and reordered using a simple sifting heuristic (see Sift). Function
Symmetric builds the forest of a symmetric function from the truth value of
each of its weight classes.

# Automatic memory management

Like with MuDDy, a ML interface to BuDDy, we piggyback on the garbage
collection mechanism offered by our host language (in our case Go). We take
care of BDD resizing and memory management directly in the library, but
"external" references to BDD nodes made by user code are automatically managed
by the Go runtime: the reference count of a node is decremented when the
corresponding Node is reclaimed.

To get access to better statistics about caches and garbage collection, as well
as to unlock logging of some operations, you can compile your executable with
the build tag `debug`.
*/
package bdd
