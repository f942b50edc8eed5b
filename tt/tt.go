// Copyright (c) 2021 Silvano DAL ZILIO
//
// MIT License

// Package tt provides helpers on truth tables. A truth table t of a function f
// is a slice of Boolean values such that t[i] is the value of f for the input
// whose binary encoding is i. Tables that are not fully specified are stored
// without their trailing don't cares.
package tt

import (
	"fmt"
	"strings"

	"github.com/dalzilio/symmetrize/errs"
)

// Log2 returns the ceiling of the binary logarithm of i. We return an error if
// i is not positive.
func Log2(i int) (int, error) {
	if i <= 0 {
		return 0, fmt.Errorf("log2 of %d: %w", i, errs.ErrUndefinedLogarithm)
	}
	i--
	ld := 0
	for ; i > 0; i /= 2 {
		ld++
	}
	return ld, nil
}

// IsPow2 reports whether i is a (positive) power of two.
func IsPow2(i int) bool {
	return i > 0 && (i&(i-1)) == 0
}

// String returns the textual representation of t, using '1' and '0'. When
// fillDC is set, the result is padded with don't cares ('-') up to the next
// power of two.
func String(t []bool, fillDC bool) string {
	size := len(t)
	if fillDC && size > 0 {
		ld, _ := Log2(size)
		size = 1 << ld
	}
	var sb strings.Builder
	sb.Grow(size)
	for _, v := range t {
		if v {
			sb.WriteByte('1')
		} else {
			sb.WriteByte('0')
		}
	}
	for k := len(t); k < size; k++ {
		sb.WriteByte('-')
	}
	return sb.String()
}

// FillMinBeads completes t, which is only specified on its first len(t)
// entries, into a table whose size is a power of two. The missing values are
// chosen so as to reduce the number of beads, that is the number of distinct
// sub-tables of size 2^k starting at a multiple of 2^k. This directly reduces
// the size of a multiplexer tree implementing the table, since identical
// sub-tables lead to shared sub-trees.
//
// The completion is a greedy, deterministic heuristic and the result always
// starts with t. We return an error if t is empty.
func FillMinBeads(t []bool) ([]bool, error) {
	if len(t) == 0 {
		return nil, fmt.Errorf("empty table: %w", errs.ErrMalformedTable)
	}
	order, _ := Log2(len(t))
	res := make([]bool, len(t), 1<<order)
	copy(res, t)
	return appendBeads(t, res, 0, order), nil
}

// appendBeads completes the sub-table of t of size 2^order starting at
// offset, appending the missing values to target. On entry, target is a copy
// of t with possibly some values already appended for the sub-tables on the
// left.
func appendBeads(t, target []bool, offset, order int) []bool {
	size := 1 << order
	tau := t[offset:]
	if len(tau) >= size {
		return target
	}
	if order == 0 {
		return append(target, tau[0])
	}
	half := size / 2

	// only the right half is missing: complete the left half and copy it
	if len(tau) <= half {
		target = appendBeads(t, target, offset, order-1)
		left := make([]bool, half)
		copy(left, target[offset:offset+half])
		return append(target, left...)
	}

	// the left half starts with the (partial) right half
	left, right := tau[:half], tau[half:]
	if hasPrefix(left, right) {
		return append(target, left[len(right):]...)
	}

	// a fully specified, aligned, sub-table of the same size starts with tau
	for begin := 0; len(t)-begin >= size; begin += size {
		st := t[begin : begin+size]
		if hasPrefix(st, tau) {
			return append(target, st[len(tau):]...)
		}
	}

	return appendBeads(t, target, offset+half, order-1)
}

func hasPrefix(s, prefix []bool) bool {
	if len(prefix) > len(s) {
		return false
	}
	for k, v := range prefix {
		if s[k] != v {
			return false
		}
	}
	return true
}

// Beads returns the number of distinct sub-tables of t, for all the sizes 2^k
// up to len(t), that start at a multiple of their size. The size of t
// must be a power of two.
func Beads(t []bool) (int, error) {
	if !IsPow2(len(t)) {
		return 0, fmt.Errorf("table of size %d: %w", len(t), errs.ErrMalformedTable)
	}
	count := 0
	for size := len(t); size >= 1; size /= 2 {
		seen := make(map[string]struct{})
		for begin := 0; begin < len(t); begin += size {
			seen[String(t[begin:begin+size], false)] = struct{}{}
		}
		count += len(seen)
	}
	return count, nil
}
