// Copyright (c) 2021 Silvano DAL ZILIO
//
// MIT License

package bdd

// Sift looks for a variable order that reduces the number of nodes of forest
// f. We use a simple version of Rudell's sifting: each variable in turn is
// tried at every level, keeping the others in place, and we keep the position
// giving the smallest forest. Each candidate order is evaluated by transferring
// f into a fresh BDD.
//
// The result is f itself when no better order is found; otherwise it is a new
// forest, over a new BDD, with the same variables.
func Sift(f *Forest) (*Forest, error) {
	if err := f.Check(); err != nil {
		return nil, err
	}
	best := f
	bestcount := f.Count()
	varnum := f.Varnum()
	for v := 0; v < varnum; v++ {
		order := best.Order()
		for pos := 0; pos < varnum; pos++ {
			perm := moveto(order, v, pos)
			if equalorder(perm, order) {
				continue
			}
			dst, err := New(varnum, Order(perm), Nodesize(2*bestcount+varnum+1), Cacheratio(25))
			if err != nil {
				return nil, err
			}
			candidate, err := best.Transfer(dst)
			if err != nil {
				return nil, err
			}
			if c := candidate.Count(); c < bestcount {
				best, bestcount = candidate, c
			}
		}
	}
	return best, nil
}

// moveto returns a copy of order where variable v is placed at level pos, the
// relative order of the other variables being unchanged.
func moveto(order []int, v, pos int) []int {
	res := make([]int, 0, len(order))
	for _, w := range order {
		if w != v {
			res = append(res, w)
		}
	}
	res = append(res, 0)
	copy(res[pos+1:], res[pos:])
	res[pos] = v
	return res
}

func equalorder(a, b []int) bool {
	if len(a) != len(b) {
		return false
	}
	for k := range a {
		if a[k] != b[k] {
			return false
		}
	}
	return true
}
