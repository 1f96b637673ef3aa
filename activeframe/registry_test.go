// Copyright 2014 The Go Authors. All rights reserved.
// Use of this source code is governed by a BSD-style
// license that can be found in the LICENSE file.

package activeframe_test

import (
	"testing"

	"github.com/mikesamuel/comehere/activeframe"
	cast "github.com/mikesamuel/comehere/ast"
	"github.com/mikesamuel/comehere/namepool"
)

func TestEnsureIsIdempotentPerFunction(t *testing.T) {
	reg := activeframe.New(namepool.New(&cast.Program{}))
	fn := &cast.FunctionLiteral{Name: "outer"}

	bit1, name1 := reg.Ensure(fn)
	bit2, name2 := reg.Ensure(fn)

	if bit1 != bit2 || name1 != name2 {
		t.Fatalf("Ensure gave a second bit/name pair for the same function: (%d,%s) then (%d,%s)", bit1, name1, bit2, name2)
	}
	if !reg.Has(fn) {
		t.Fatal("Has reports false for a function that was Ensure'd")
	}
}

func TestEnsureGivesDistinctBits(t *testing.T) {
	reg := activeframe.New(namepool.New(&cast.Program{}))
	a := &cast.FunctionLiteral{Name: "a"}
	b := &cast.FunctionLiteral{Name: "b"}

	bitA, nameA := reg.Ensure(a)
	bitB, nameB := reg.Ensure(b)

	if bitA == bitB {
		t.Fatalf("two distinct functions got the same bit index: %d", bitA)
	}
	if nameA == nameB {
		t.Fatalf("two distinct functions got the same active-frame local name: %s", nameA)
	}
	if reg.Count() != 2 {
		t.Fatalf("Count = %d, want 2", reg.Count())
	}
}

func TestFunctionsInAllocationOrder(t *testing.T) {
	reg := activeframe.New(namepool.New(&cast.Program{}))
	a := &cast.FunctionLiteral{Name: "a"}
	b := &cast.FunctionLiteral{Name: "b"}
	reg.Ensure(a)
	reg.Ensure(b)

	fns := reg.Functions()
	if len(fns) != 2 || fns[0] != a || fns[1] != b {
		t.Fatalf("Functions() = %v, want [a, b] in allocation order", fns)
	}
}

func TestHasFalseForUnknownFunction(t *testing.T) {
	reg := activeframe.New(namepool.New(&cast.Program{}))
	if reg.Has(&cast.FunctionLiteral{Name: "never-asked-about"}) {
		t.Fatal("Has reports true for a function never passed to Ensure")
	}
}
