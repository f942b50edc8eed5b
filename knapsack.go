// Copyright (c) 2021 Silvano DAL ZILIO
//
// MIT License

package symmetrize

import (
	"fmt"
	"math"
	"sort"

	"github.com/dalzilio/symmetrize/errs"
)

// Solver is the interface of 0/1 knapsack solvers used to select the
// components to symmetrize. Solve returns the total weight of the selected
// items, which is at most capacity, and the selection itself.
type Solver interface {
	Solve(weights []float64, profits []int64, capacity float64) (float64, []bool, error)
}

// GreedySolver is an approximate knapsack solver. Items with a negative profit
// are never selected. The others are considered by decreasing profit/weight
// ratio, items of weight zero first, and selected whenever they fit in the
// remaining capacity. Items with the same ratio are considered from the
// highest index to the lowest.
type GreedySolver struct{}

type item struct {
	index  int
	weight float64
	ratio  float64
}

// Solve implements the Solver interface.
func (GreedySolver) Solve(weights []float64, profits []int64, capacity float64) (float64, []bool, error) {
	if len(weights) != len(profits) {
		return 0, nil, fmt.Errorf("%d weights for %d profits: %w", len(weights), len(profits), errs.ErrDimensionMismatch)
	}
	res := make([]bool, len(weights))
	items := make([]item, 0, len(weights))
	for k, w := range weights {
		p := profits[k]
		if p < 0 {
			continue
		}
		ratio := math.Inf(1)
		if w != 0 {
			ratio = float64(p) / w
		}
		items = append(items, item{index: k, weight: w, ratio: ratio})
	}
	sort.SliceStable(items, func(i, j int) bool {
		if items[i].ratio != items[j].ratio {
			return items[i].ratio > items[j].ratio
		}
		return items[i].index > items[j].index
	})
	used := 0.0
	for _, it := range items {
		if used+it.weight > capacity {
			continue
		}
		used += it.weight
		res[it.index] = true
	}
	return used, res, nil
}
