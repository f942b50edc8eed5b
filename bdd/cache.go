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
	"fmt"
)

// cache is used for caching apply and ite results
type cache struct {
	cacheratio int // value used to resize the caches as a factor of the number of nodes
	table      []cacheData
}

// cacheStat stores status information about cache usage
type cacheStat struct {
	uniqueAccess int // accesses to the unique node table
	uniqueHit    int // entries actually found in the the unique node table
	uniqueMiss   int // entries not found in the the unique node table
	opHit        int // entries found in the operator caches
	opMiss       int // entries not found in the operator caches
}

// cacheData is a unit of information stored in the Apply and ITE cache
type cacheData struct {
	res int
	a   int
	b   int
	c   int
}

type applycache struct {
	cache // Cache for and/xor results, the operation is stored in c
}

type itecache struct {
	cache // Cache for ITE results
}

// ************************************************************

// Basic functions shared by all caches

func (bc *cache) cacheinit(size int) {
	size = primeGte(size)
	bc.table = make([]cacheData, size)
	bc.cachereset()
}

func (bc *cache) cacheresize(size int) {
	if bc.cacheratio > 0 {
		bc.cacheinit((size * bc.cacheratio) / 100)
		return
	}
	bc.cachereset()
}

func (bc *cache) cachereset() {
	for k := range bc.table {
		bc.table[k].a = -1
	}
}

// *************************************************************************
// Setup

func (b *BDD) cacheinit(cachesize int) {
	if cachesize <= 0 {
		cachesize = len(b.nodes)/5 + 1
	}
	cachesize = primeGte(cachesize)
	b.applycache = &applycache{}
	b.applycache.cacheratio = b.configs.cacheratio
	b.applycache.cacheinit(cachesize)
	b.itecache = &itecache{}
	b.itecache.cacheratio = b.configs.cacheratio
	b.itecache.cacheinit(cachesize)
}

func (b *BDD) cachereset() {
	b.applycache.cachereset()
	b.itecache.cachereset()
}

func (b *BDD) cacheresize() {
	b.applycache.cacheresize(len(b.nodes))
	b.itecache.cacheresize(len(b.nodes))
}

// ************************************************************

// String prints information about the cache performance. The information
// contains the number of accesses to the unique node table, the number of
// times a node was (not) found there. Hit and miss count is also given for the
// operator caches.
func (c cacheStat) String() string {
	res := fmt.Sprintf("Unique Access:  %d\n", c.uniqueAccess)
	res += fmt.Sprintf("Unique Hit:     %d\n", c.uniqueHit)
	res += fmt.Sprintf("Unique Miss:    %d\n", c.uniqueMiss)
	res += fmt.Sprintf("Operator Hits:  %d\n", c.opHit)
	res += fmt.Sprintf("Operator Miss:  %d", c.opMiss)
	return res
}
