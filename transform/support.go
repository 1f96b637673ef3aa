// Copyright 2014 The Go Authors. All rights reserved.
// Use of this source code is governed by a BSD-style
// license that can be found in the LICENSE file.

package transform

import (
	"fmt"

	cast "github.com/mikesamuel/comehere/ast"
	"github.com/mikesamuel/comehere/diag"
	"github.com/mikesamuel/comehere/hostlang"
	"github.com/mikesamuel/comehere/namepool"
)

// SupportNames is a registry of module-level helper declarations later
// passes may need (the seek variable, the active-frame bitmask, the two
// "maybe not empty" iterator wrappers, and the `or`/`and` short-circuit
// helpers). Each name is materialized lazily, the first time some pass
// asks for it, so the preamble emitter only declares what a given module
// actually ended up needing. Every name it allocates is drawn from the
// same namepool.Pool every other fresh identifier in this transformer
// uses, so a support name can never collide with one already in scope.
type SupportNames struct {
	pool *namepool.Pool

	seek      string
	seekUsed  bool

	activeMask     string
	activeMaskUsed bool

	valueIter     string
	valueIterUsed bool

	keyIter     string
	keyIterUsed bool

	orHelper     string
	orHelperUsed bool

	andHelper     string
	andHelperUsed bool
}

func newSupportNames(pool *namepool.Pool) *SupportNames {
	return &SupportNames{pool: pool}
}

// SeekName returns the name of the module-level variable a goal-bearing
// run sets to a goal's id before invoking the module; 0 means run
// normally. It is declared `let <seek> = 0;` by the preamble emitter.
func (s *SupportNames) SeekName() string {
	if !s.seekUsed {
		s.seek = s.pool.Fresh("seek")
		s.seekUsed = true
	}
	return s.seek
}

// ActiveMaskName returns the name of the module-level BigInt bitmask in
// which a synthesized call sets its target function's bit just before
// invoking it; the function's prologue reads and clears that bit, so only
// the synthesized invocation, not an ordinary or recursive one, sees it
// set. Declared `let <mask> = 0n;`.
func (s *SupportNames) ActiveMaskName() string {
	if !s.activeMaskUsed {
		s.activeMask = s.pool.Fresh("activeMask")
		s.activeMaskUsed = true
	}
	return s.activeMask
}

// ValueIteratorHelperName returns the name of the generator function the
// control driver wraps a for-of loop's source in, so that a goal inside
// an otherwise-empty iterable can still be reached once.
func (s *SupportNames) ValueIteratorHelperName() string {
	if !s.valueIterUsed {
		s.valueIter = s.pool.Fresh("maybeNotEmptyIterator")
		s.valueIterUsed = true
	}
	return s.valueIter
}

// KeyIteratorHelperName is ValueIteratorHelperName's for-in counterpart.
func (s *SupportNames) KeyIteratorHelperName() string {
	if !s.keyIterUsed {
		s.keyIter = s.pool.Fresh("maybeNotEmptyKeyIterator")
		s.keyIterUsed = true
	}
	return s.keyIter
}

// OrHelperName returns the name of the function the control driver
// replaces a `||` with when a goal sits inside its right operand. It
// always returns the same value plain `left || right()` would; what
// changes under force is that the right operand is always evaluated,
// even when the left one is already truthy, so a goal inside it still
// gets a chance to run.
func (s *SupportNames) OrHelperName() string {
	if !s.orHelperUsed {
		s.orHelper = s.pool.Fresh("or")
		s.orHelperUsed = true
	}
	return s.orHelper
}

// AndHelperName is OrHelperName's `&&` counterpart.
func (s *SupportNames) AndHelperName() string {
	if !s.andHelperUsed {
		s.andHelper = s.pool.Fresh("and")
		s.andHelperUsed = true
	}
	return s.andHelper
}

// PreambleEmitter runs once every other pass has finished, prepending a
// declaration for each support name that ended up being used, in a
// fixed order, so the emitted module is self-contained.
type PreambleEmitter struct{}

func (*PreambleEmitter) Name() string { return "preamble-emitter" }

func (pe *PreambleEmitter) Run(ctx *Context) error {
	s := ctx.Support
	var decls []cast.Stmt

	if s.seekUsed {
		decls = append(decls, letNumber(s.seek, "0"))
	}
	if s.activeMaskUsed {
		decls = append(decls, letNumber(s.activeMask, "0n"))
	}
	if s.valueIterUsed {
		decls = append(decls, parseSupportDecl(ctx, valueIteratorTemplate, s.valueIter))
	}
	if s.keyIterUsed {
		decls = append(decls, parseSupportDecl(ctx, keyIteratorTemplate, s.keyIter))
	}
	if s.orHelperUsed {
		decls = append(decls, parseSupportDecl(ctx, orHelperTemplate, s.orHelper))
	}
	if s.andHelperUsed {
		decls = append(decls, parseSupportDecl(ctx, andHelperTemplate, s.andHelper))
	}

	if len(decls) > 0 {
		ctx.Program.Body = append(decls, ctx.Program.Body...)
		ctx.reattach()
	}
	return nil
}

func letNumber(name, raw string) cast.Stmt {
	return &cast.VariableStatement{
		Kind: cast.VarLet,
		List: []*cast.Binding{{
			Target:      &cast.Identifier{Name: name},
			Initializer: &cast.NumberLiteral{Raw: raw},
		}},
	}
}

// parseSupportDecl parses a fixed helper-function template (named with a
// %s placeholder for the fresh name the caller picked) and returns its
// single top-level declaration, ready to prepend to the module. The
// templates are fixed, internally authored source, so a parse failure
// here is this transformer's own bug, not a malformed input program.
func parseSupportDecl(ctx *Context, template, name string) cast.Stmt {
	src := fmt.Sprintf(template, name)
	prog, err := hostlang.Parse("<support>", src)
	if err != nil {
		panic(&diag.InternalError{Message: fmt.Sprintf("support template %q: %v", name, err)})
	}
	if len(prog.Body) != 1 {
		panic(&diag.InternalError{Message: fmt.Sprintf("support template %q: expected one declaration", name)})
	}
	return prog.Body[0]
}

const valueIteratorTemplate = `
function* %s(iterable, forceOneIteration) {
  const it = iterable[Symbol.iterator]();
  let step = it.next();
  if (step.done && forceOneIteration) {
    yield undefined;
    return;
  }
  while (!step.done) {
    yield step.value;
    step = it.next();
  }
}
`

const keyIteratorTemplate = `
function* %s(obj, forceOneIteration) {
  const keys = Object.keys(obj);
  if (keys.length === 0 && forceOneIteration) {
    yield undefined;
    return;
  }
  for (const k of keys) {
    yield k;
  }
}
`

const orHelperTemplate = `
function %s(force, left, right) {
  if (!force) {
    return left || right();
  }
  const r = right();
  return left || r;
}
`

const andHelperTemplate = `
function %s(force, left, right) {
  if (!force) {
    return left && right();
  }
  const r = right();
  return left && r;
}
`
