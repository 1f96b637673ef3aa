// Copyright 2014 The Go Authors. All rights reserved.
// Use of this source code is governed by a BSD-style
// license that can be found in the LICENSE file.

package transform

// Pass is the interface every phase of the pipeline implements: a Name
// for introspection (the CLI's -list mode) and a Run method that mutates
// the shared Context in place. COMEHERE's passes always run together and
// in the fixed order Pipeline returns them in — Pass exists so that
// order is data (a []Pass literal) rather than a hand-written call
// sequence repeated in three places (Transform, -list, and tests).
type Pass interface {
	Name() string
	Run(ctx *Context) error
}

// Pipeline returns the transformer's phases in their fixed execution
// order. Parsing and name-pool construction already ran by the time a
// Context exists; Transform itself is the orchestrator, not a phase of
// itself.
func Pipeline() []Pass {
	return []Pass{
		&BlockNormalizer{},
		&ReturnCapture{},
		&Extractor{},
		&ControlDriver{},
		&CapturePass{},
		&PreambleEmitter{},
	}
}

// Null is a pass that performs no mutation. It is a fixture integration
// tests can run the pipeline machinery against without needing a real
// goal block, and it is the minimal template for writing a new pass.
type Null struct{}

func (*Null) Name() string          { return "null" }
func (*Null) Run(ctx *Context) error { return nil }
