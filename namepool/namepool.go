// Copyright 2014 The Go Authors. All rights reserved.
// Use of this source code is governed by a BSD-style
// license that can be found in the LICENSE file.

// Package namepool scans a tree once for every identifier already in
// use, then vends fresh names of the form <prefix>_<n> guaranteed not to
// collide with anything the author wrote. The host language carries no
// static type checker, so "in use" here means "spelled that way anywhere
// in the tree" — the conservative, correct-by-construction answer for a
// language without lexical scope information available to the
// transformer.
package namepool

import (
	"fmt"

	cast "github.com/mikesamuel/comehere/ast"
)

// Pool vends fresh identifiers. The zero value is not usable; use New.
type Pool struct {
	used    map[string]bool
	counter map[string]int
}

// New scans root for every Identifier name, every plain-key object and
// class member name, and every function/class declaration name, and
// returns a Pool that will never hand back one of them.
func New(root *cast.Program) *Pool {
	p := &Pool{used: map[string]bool{}, counter: map[string]int{}}
	cast.Inspect(root, func(n cast.Node) bool {
		switch id := n.(type) {
		case *cast.Identifier:
			p.used[id.Name] = true
		case *cast.FunctionLiteral:
			p.used[id.Name] = true
		case *cast.ClassLiteral:
			p.used[id.Name] = true
			for _, el := range id.Body {
				if key, ok := el.Key.(*cast.Identifier); ok {
					p.used[key.Name] = true
				}
			}
		}
		return true
	})
	return p
}

// Fresh returns a name of the form "<prefix>_<n>" not already used
// anywhere in the scanned tree or previously vended by this Pool, and
// marks it used.
func (p *Pool) Fresh(prefix string) string {
	for {
		p.counter[prefix]++
		candidate := fmt.Sprintf("%s_%d", prefix, p.counter[prefix])
		if !p.used[candidate] {
			p.used[candidate] = true
			return candidate
		}
	}
}

// FreshIdentifier is a convenience wrapper returning an *ast.Identifier
// for Fresh(prefix), since nearly every call site immediately wraps the
// string in one.
func (p *Pool) FreshIdentifier(prefix string) *cast.Identifier {
	return &cast.Identifier{Name: p.Fresh(prefix)}
}

// NextBit allocates the next unused non-negative integer, for use as an
// active-frame bit index. It is a plain monotonic counter starting at 0,
// kept apart from the per-prefix counters Fresh uses, so bit indices and
// fresh names do not share one counter; activeframe.Registry is
// the component that actually tracks which bits are taken, using this
// as its allocator.
func (p *Pool) NextBit() int {
	p.counter["$bit"]++
	return p.counter["$bit"] - 1
}
