// Copyright 2014 The Go Authors. All rights reserved.
// Use of this source code is governed by a BSD-style
// license that can be found in the LICENSE file.

// Package activeframe tracks the bookkeeping half of a driven program's
// active-frame prologue: per module, which functions have been given a
// bit in the emitted activeMask and which bit each one owns. Bit
// assignment is purely syntactic, one bit per function on a goal's
// ancestor chain; github.com/bits-and-blooms/bitset is the natural fit
// for "is this bit index already spoken for" and is used directly
// rather than reimplemented with a map[int]bool.
package activeframe

import (
	"github.com/bits-and-blooms/bitset"

	cast "github.com/mikesamuel/comehere/ast"
	"github.com/mikesamuel/comehere/namepool"
)

// Registry maps each function on some goal's ancestor chain to the bit
// index of its active-frame flag, and to the names of the values the
// active-frame prologue declares at function entry.
type Registry struct {
	bits      *bitset.BitSet
	index     map[*cast.FunctionLiteral]int
	localName map[*cast.FunctionLiteral]string // name of `active_N` in that function
	pool      *namepool.Pool
}

// New returns an empty Registry drawing fresh bit indices and local
// variable names from pool.
func New(pool *namepool.Pool) *Registry {
	return &Registry{
		bits:      bitset.New(0),
		index:     map[*cast.FunctionLiteral]int{},
		localName: map[*cast.FunctionLiteral]string{},
		pool:      pool,
	}
}

// Ensure returns the bit index assigned to fn, allocating one (and the
// name of its `active_N` local) the first time fn is asked about. The
// same function asked about from two different goals' ancestor chains
// gets the same bit — a single active-frame prologue, shared guards.
func (r *Registry) Ensure(fn *cast.FunctionLiteral) (bitIndex int, localName string) {
	if i, ok := r.index[fn]; ok {
		return i, r.localName[fn]
	}
	i := r.pool.NextBit()
	r.bits.Set(uint(i))
	name := r.pool.Fresh("active")
	r.index[fn] = i
	r.localName[fn] = name
	return i, name
}

// Has reports whether fn has already been given a bit.
func (r *Registry) Has(fn *cast.FunctionLiteral) bool {
	_, ok := r.index[fn]
	return ok
}

// Count returns the number of functions that have been given a bit so
// far, i.e. the number of bits the emitted activeMask must be able to
// hold.
func (r *Registry) Count() uint {
	return r.bits.Count()
}

// Functions returns every function that has been given a bit, in
// allocation order, for the preamble emitter's use when it needs to
// double check every consumer actually got wired up.
func (r *Registry) Functions() []*cast.FunctionLiteral {
	out := make([]*cast.FunctionLiteral, len(r.index))
	for fn, i := range r.index {
		out[i] = fn
	}
	return out
}
