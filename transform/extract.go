// Copyright 2014 The Go Authors. All rights reserved.
// Use of this source code is governed by a BSD-style
// license that can be found in the LICENSE file.

package transform

import (
	"strconv"

	cast "github.com/mikesamuel/comehere/ast"
)

// comehereLabel is the reserved label the goal-block surface syntax
// attaches to: `COMEHERE: with (...) { ... }`.
const comehereLabel = "COMEHERE"

// Initializer is one `path = value` entry of a goal block's with-object,
// e.g. `C.foo.a = 1` becomes Initializer{Path: []string{"C", "foo", "a"},
// Value: <the literal 1>}. The control driver consumes these by
// decreasing specificity when it synthesizes the call into a goal's
// enclosing function.
type Initializer struct {
	Path  []string
	Value cast.Expr
}

// GoalBlock is one extracted COMEHERE block: its description and
// initializer list, and the statement the extractor leaves behind for
// the control driver to walk upward from.
type GoalBlock struct {
	ID           int
	Description  *string
	Initializers []Initializer
	Body         *cast.BlockStatement

	// Site is the *IfStatement the extractor replaced the labelled
	// statement with; the control driver walks from here to the module
	// root, rewriting every construct along the way.
	Site cast.Stmt

	// Function is the nearest enclosing function whose active-frame bit
	// guards this goal (immediately-invoked function expressions are
	// skipped, since they have nothing to guard against), or nil for a
	// module-scope goal.
	Function *cast.FunctionLiteral
}

// Extractor finds every COMEHERE block, parses its with-object into a
// description and initializer list, installs the active-frame guard for
// its enclosing function, and replaces the labelled statement with a
// plain `if` guarded on seek equalling the goal's id. The with-object's
// mini-language is parsed by plain recursive descent over the already
// fully-typed cast.Expr tree.
type Extractor struct{}

func (*Extractor) Name() string { return "extractor" }

func (ex *Extractor) Run(ctx *Context) error {
	var labels []*cast.LabelledStatement
	cast.Inspect(ctx.Program, func(n cast.Node) bool {
		if l, ok := n.(*cast.LabelledStatement); ok && l.Label == comehereLabel {
			if _, ok := l.Statement.(*cast.WithStatement); ok {
				labels = append(labels, l)
			}
		}
		return true
	})

	nextID := 1
	for _, l := range labels {
		ws := l.Statement.(*cast.WithStatement)

		id := nextID
		desc, inits := ex.parseConfig(ctx, id, ws.Object)
		nextID++

		body, isBlock := ws.Body.(*cast.BlockStatement)
		if !isBlock {
			// the block normalizer always wraps with-bodies, but stay
			// defensive for a goal block added by a later pass someday.
			body = &cast.BlockStatement{Body: []cast.Stmt{ws.Body}}
		}

		fn := nearestGuardFunction(l)
		test := ex.guardExpr(ctx, fn, id)

		newBody := make([]cast.Stmt, 0, len(body.Body)+1)
		newBody = append(newBody, &cast.ExpressionStatement{Expression: &cast.AssignExpression{
			Operator: "=",
			Left:     &cast.Identifier{Name: ctx.Support.SeekName()},
			Right:    &cast.NumberLiteral{Raw: "0"},
		}})
		newBody = append(newBody, body.Body...)

		ifStmt := &cast.IfStatement{Test: test, Consequent: &cast.BlockStatement{Body: newBody}}

		container, ok := l.Parent().(cast.StmtContainer)
		if !ok {
			ctx.Log.ErrorfFor(id, "goal block has no enclosing statement list to splice into")
			continue
		}
		if !cast.ReplaceIn(container, l, ifStmt) {
			ctx.Log.ErrorfFor(id, "goal block could not be located in its enclosing statement list")
			continue
		}

		ctx.Goals = append(ctx.Goals, &GoalBlock{
			ID:           id,
			Description:  desc,
			Initializers: inits,
			Body:         &cast.BlockStatement{Body: body.Body},
			Site:         ifStmt,
			Function:     fn,
		})
	}

	ctx.reattach()
	return nil
}

// guardExpr builds `seek == id` for a module-scope goal, or
// `active_N && seek == id` for one nested in fn, allocating fn's
// active-frame bit (and the shared seek variable) on first use.
func (ex *Extractor) guardExpr(ctx *Context, fn *cast.FunctionLiteral, id int) cast.Expr {
	seekEq := &cast.BinaryExpression{
		Operator: "==",
		Left:     &cast.Identifier{Name: ctx.Support.SeekName()},
		Right:    &cast.NumberLiteral{Raw: strconv.Itoa(id)},
	}
	if fn == nil {
		return seekEq
	}
	_, localName := ctx.Frames.Ensure(fn)
	return &cast.LogicalExpression{
		Operator: "&&",
		Left:     &cast.Identifier{Name: localName},
		Right:    seekEq,
	}
}

// parseConfig parses a goal block's with-object: a lone `_` means no
// description and no initializers; otherwise a leading string literal is
// the description and every remaining entry must be an `lvalue = expr`
// assignment whose left side is a dotted identifier chain. Any other
// entry is reported and skipped, but does not prevent the goal itself
// from being extracted — a block with one bad entry among several good
// ones still needs its seek gate, so parseConfig always returns whatever
// valid description and initializers it found alongside the
// diagnostics. id is used only to correlate the diagnostic with the goal
// being parsed.
func (ex *Extractor) parseConfig(ctx *Context, id int, object cast.Expr) (desc *string, inits []Initializer) {
	if ident, isIdent := object.(*cast.Identifier); isIdent && ident.Name == "_" {
		return nil, nil
	}

	var items []cast.Expr
	if seq, isSeq := object.(*cast.SequenceExpression); isSeq {
		items = seq.Expressions
	} else {
		items = []cast.Expr{object}
	}

	for i, item := range items {
		if i == 0 {
			if str, isStr := item.(*cast.StringLiteral); isStr {
				v := str.Value
				desc = &v
				continue
			}
		}
		assign, isAssign := item.(*cast.AssignExpression)
		if !isAssign || assign.Operator != "=" {
			ctx.Log.ErrorfFor(id, "malformed goal configuration entry: expected an assignment or a leading description string")
			continue
		}
		path, valid := dottedPath(assign.Left)
		if !valid {
			ctx.Log.ErrorfFor(id, "malformed goal configuration entry: left side of %q is not a dotted identifier chain", assign.Operator)
			continue
		}
		inits = append(inits, Initializer{Path: path, Value: assign.Right})
	}
	return desc, inits
}

// dottedPath resolves `a`, `a.b`, `a.b.c`, ... to its component names,
// root first. Any computed (`a[b]`) or non-identifier segment fails.
func dottedPath(e cast.Expr) ([]string, bool) {
	var parts []string
	for {
		switch n := e.(type) {
		case *cast.Identifier:
			parts = append([]string{n.Name}, parts...)
			return parts, true
		case *cast.MemberExpression:
			if n.Computed {
				return nil, false
			}
			prop, isIdent := n.Property.(*cast.Identifier)
			if !isIdent {
				return nil, false
			}
			parts = append([]string{prop.Name}, parts...)
			e = n.Object
		default:
			return nil, false
		}
	}
}
