// Copyright 2014 The Go Authors. All rights reserved.
// Use of this source code is governed by a BSD-style
// license that can be found in the LICENSE file.

// Package transform implements the COMEHERE transformer: a fixed
// sequence of passes (block-normalizer, return-trailing capture,
// extractor, control driver, capture-variable pass, preamble emitter)
// run in order over the tree produced by package hostlang.
package transform

import (
	cast "github.com/mikesamuel/comehere/ast"
	"github.com/mikesamuel/comehere/activeframe"
	"github.com/mikesamuel/comehere/diag"
	"github.com/mikesamuel/comehere/namepool"
)

// Context carries the state every pass needs: the tree being mutated,
// the name pool and active-frame registry later passes draw fresh names
// and bits from, the diagnostic log, and the goals the extractor found.
// It is single-owner and single-threaded throughout a run.
type Context struct {
	Program *cast.Program
	Pool    *namepool.Pool
	Frames  *activeframe.Registry
	Log     *diag.Log
	Support *SupportNames

	Goals []*GoalBlock
}

// NewContext builds a fresh Context over prog. Call sites are expected to
// have already run hostlang.Parse and cast.Attach on prog.
func NewContext(prog *cast.Program, log *diag.Log) *Context {
	pool := namepool.New(prog)
	return &Context{
		Program: prog,
		Pool:    pool,
		Frames:  activeframe.New(pool),
		Log:     log,
		Support: newSupportNames(pool),
	}
}

// reattach re-derives parent links after a mutating pass. Passes call it
// whenever they've inserted or replaced nodes and a later step in the
// same pass needs Parent to be accurate, and every mutating pass calls it
// at the end of its own Run, so the next pass starts from accurate links;
// Transform itself does not call it between passes.
func (c *Context) reattach() {
	cast.Attach(c.Program)
}
