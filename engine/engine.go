// Copyright 2014 The Go Authors. All rights reserved.
// Use of this source code is governed by a BSD-style
// license that can be found in the LICENSE file.

// Package engine is the programmatic entrypoint to the COMEHERE
// transformer. It always runs the same fixed pipeline: there is no menu
// of alternative behaviors to pick from, so its role is narrow —
// exposing transform.Transform to a command-line driver, plus the pass
// list the CLI's -list flag prints.
package engine

import (
	"github.com/mikesamuel/comehere/diag"
	"github.com/mikesamuel/comehere/transform"
)

// Passes returns the fixed pipeline's phases in execution order, for
// display only; nothing outside transform.Transform ever runs them
// directly.
func Passes() []transform.Pass {
	return transform.Pipeline()
}

// Transform runs the COMEHERE transformer over src. It is a thin
// pass-through to transform.Transform, kept as its own function (rather
// than having the CLI import package transform directly) so that a
// future alternate entrypoint — the protocol driver, or an editor
// plugin — has one stable import to depend on regardless of how package
// transform's own API evolves.
func Transform(src string, sink diag.Sink) (*transform.Result, error) {
	return transform.Transform(src, transform.Options{Sink: sink})
}
