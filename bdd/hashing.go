// Copyright (c) 2021 Silvano DAL ZILIO
//
// MIT License

package bdd

// Hash functions

func _TRIPLE(a, b, c, len int) int {
	return int(_PAIR64(uint64(c), _PAIR(a, b, len), uint64(len)))
}

// _PAIR is a mapping function that maps (bijectively) a pair of integer (a, b)
// into a unique integer. It is therefore a perfect hash: no collisions
func _PAIR(a, b, len int) uint64 {
	return (((uint64(a+b) * uint64(a+b+1)) / 2) + uint64(a)) % uint64(len)
}

func _PAIR64(a, b, len uint64) uint64 {
	return (((((a + b) % len) * ((a + b + 1) % len)) / 2) + a) % len
}

// ************************************************************

// The hash function for Apply is #(left, right, op).

func (b *BDD) matchapply(left, right int, op opcode) int {
	entry := b.applycache.table[_TRIPLE(left, right, int(op), len(b.applycache.table))]
	if entry.a == left && entry.b == right && entry.c == int(op) {
		b.opHit++
		return entry.res
	}
	b.opMiss++
	return -1
}

func (b *BDD) setapply(left, right int, op opcode, res int) int {
	if res < 0 {
		return -1
	}
	b.applycache.table[_TRIPLE(left, right, int(op), len(b.applycache.table))] = cacheData{
		a:   left,
		b:   right,
		c:   int(op),
		res: res,
	}
	return res
}

// ************************************************************

// The hash function for ITE is #(f,g,h).

func (b *BDD) matchite(f, g, h int) int {
	entry := b.itecache.table[_TRIPLE(f, g, h, len(b.itecache.table))]
	if entry.a == f && entry.b == g && entry.c == h {
		b.opHit++
		return entry.res
	}
	b.opMiss++
	return -1
}

func (b *BDD) setite(f, g, h, res int) int {
	if res < 0 {
		return -1
	}
	b.itecache.table[_TRIPLE(f, g, h, len(b.itecache.table))] = cacheData{
		a:   f,
		b:   g,
		c:   h,
		res: res,
	}
	return res
}
