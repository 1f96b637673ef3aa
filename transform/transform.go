// Copyright 2014 The Go Authors. All rights reserved.
// Use of this source code is governed by a BSD-style
// license that can be found in the LICENSE file.

package transform

import (
	"github.com/mikesamuel/comehere/diag"
	"github.com/mikesamuel/comehere/hostlang"
)

// Options configures a single Transform call. Sink, if non-nil, receives
// diagnostics as they are produced.
type Options struct {
	Sink diag.Sink
}

// Result is what a driven module and its bookkeeping look like once the
// whole pipeline has run. Code is the rewritten source; Descriptions
// holds each goal's id-indexed description (nil where the author didn't
// give one), the shape a host program consumes to report which goal it
// reached; Log carries every diagnostic produced along the way.
type Result struct {
	Code         string
	Descriptions []*string
	Log          *diag.Log
}

// Transform runs the fixed pipeline over source and renders the result:
// one call that parses, mutates, and re-serializes, returning a Result
// instead of a set of textual edits because there is exactly one file to
// consider.
//
// A syntax error is returned as an ordinary error. An invariant
// violation discovered by one of the passes (an *diag.InternalError
// panic) is recovered here and also returned as an error; in both cases
// Result is nil. Anything short of that — a malformed goal
// configuration, an initializer nothing could consume, a goal inside an
// unsupported construct — is recorded in Result.Log instead, keeping a
// fatal parse/invariant failure distinct from a diagnosable, per-goal
// defect.
func Transform(source string, opts Options) (result *Result, err error) {
	defer func() {
		if r := recover(); r != nil {
			if ie, ok := r.(*diag.InternalError); ok {
				result, err = nil, ie
				return
			}
			panic(r)
		}
	}()

	prog, parseErr := hostlang.Parse("<input>", source)
	if parseErr != nil {
		return nil, parseErr
	}

	log := diag.NewLog(opts.Sink)
	ctx := NewContext(prog, log)

	for _, pass := range Pipeline() {
		if err := pass.Run(ctx); err != nil {
			return nil, err
		}
	}

	return &Result{
		Code:         hostlang.Generate(ctx.Program),
		Descriptions: descriptions(ctx.Goals),
		Log:          log,
	}, nil
}

// descriptions builds the id-indexed description array returned
// alongside the rewritten module: index 0 is always nil (seek id 0
// means "run normally"), and index i holds goal i's description, or nil
// if the author didn't give one.
func descriptions(goals []*GoalBlock) []*string {
	max := 0
	for _, g := range goals {
		if g.ID > max {
			max = g.ID
		}
	}
	out := make([]*string, max+1)
	for _, g := range goals {
		out[g.ID] = g.Description
	}
	return out
}
