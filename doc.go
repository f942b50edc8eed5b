// Copyright (c) 2021 Silvano DAL ZILIO
//
// MIT License

/*
Package symmetrize implements the componentwise approximate symmetrization of
multi-output Boolean functions.

A function f : B^n → B^m, given as an and-inverter graph (see package aig)
together with the decision diagrams of its outputs (see package bdd), is
approximated by a function whose selected components are totally symmetric,
that is they only depend on the number of inputs set to true.

# Overview

For each component f_i, we compute its weight-class histogram: the number of
true minterms of f_i in each class of inputs with the same Hamming weight (see
Histograms). The closest symmetric function, in Hamming distance, takes the
majority value in each class (see Synthesize). This function is realized in
the network by a shared population counter driving one multiplexer tree per
component, the truth table of each tree being first compressed by filling its
don't cares (see Realize and package tt).

A component is replaced by its symmetric approximation only when it is worth
it. Each replacement has an error, the weighted Hamming distance between f_i
and its approximation, and a profit, for instance the number of nodes saved.
We select the replacements with a knapsack solver bounded by a global error
(see Solver and GreedySolver). Errors are weighted with a WeightPolicy and
profits are computed with a ProfitPolicy.

Function Symmetrize chains all these steps on a network and returns a Report.
*/
package symmetrize
