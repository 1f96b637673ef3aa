// Copyright 2014 The Go Authors. All rights reserved.
// Use of this source code is governed by a BSD-style
// license that can be found in the LICENSE file.

package transform

import (
	"fmt"
	"strconv"
	"strings"

	cast "github.com/mikesamuel/comehere/ast"
)

// ControlDriver walks, for every goal block the extractor found, from
// its guard statement up to the module root, rewriting every enclosing
// conditional, loop, switch, try/catch and short-circuit operator so
// that setting the shared seek variable to that goal's id reaches it,
// and synthesizing a guarded call across every function boundary in
// between. It is the single largest pass in the pipeline.
type ControlDriver struct{}

func (*ControlDriver) Name() string { return "control-driver" }

func (*ControlDriver) Run(ctx *Context) error {
	d := newDriver(ctx)
	for _, node := range d.nodeOrder {
		d.driveNode(node)
	}
	ctx.reattach()
	return nil
}

// forceEdge records that goalID's ancestor chain passes through a
// construct by way of cameFrom, its child on that path. Two edges on the
// same construct (from two different goals, or from the same goal
// passing through a construct with two live branches) are processed
// together so a single rewrite serves both.
type forceEdge struct {
	goalID   int
	cameFrom cast.Node
}

// driver accumulates, across every goal, which ancestor constructs need
// rewriting and what drives each one, before touching the tree. Building
// this map up front (rather than rewriting incrementally per goal) means
// a construct shared by several goals is rewritten exactly once, with
// all of them ORed together, instead of being wrapped redundantly.
type driver struct {
	ctx       *Context
	forces    map[cast.Node][]forceEdge
	nodeOrder []cast.Node
	prologued map[*cast.FunctionLiteral]bool
	goals     map[int]*GoalBlock
}

func newDriver(ctx *Context) *driver {
	d := &driver{
		ctx:       ctx,
		forces:    map[cast.Node][]forceEdge{},
		prologued: map[*cast.FunctionLiteral]bool{},
		goals:     map[int]*GoalBlock{},
	}
	for _, g := range ctx.Goals {
		d.goals[g.ID] = g
		chain := cast.AncestorChain(g.Site)
		// chain[0] is g.Site itself (already guarded by the extractor);
		// the last element is the Program root, which needs no rewrite.
		for idx := 1; idx < len(chain)-1; idx++ {
			node := chain[idx]
			if _, ok := d.forces[node]; !ok {
				d.nodeOrder = append(d.nodeOrder, node)
			}
			d.forces[node] = append(d.forces[node], forceEdge{goalID: g.ID, cameFrom: chain[idx-1]})
		}
	}
	return d
}

func (d *driver) goalByID(id int) *GoalBlock { return d.goals[id] }

func idsOf(edges []forceEdge) []int {
	ids := make([]int, len(edges))
	for i, e := range edges {
		ids[i] = e.goalID
	}
	return ids
}

// orSeek builds `seek == id1 || seek == id2 || ...` for ids, which is
// never empty when called.
func orSeek(ctx *Context, ids []int) cast.Expr {
	var expr cast.Expr
	for _, id := range ids {
		eq := &cast.BinaryExpression{
			Operator: "==",
			Left:     &cast.Identifier{Name: ctx.Support.SeekName()},
			Right:    &cast.NumberLiteral{Raw: strconv.Itoa(id)},
		}
		if expr == nil {
			expr = eq
		} else {
			expr = &cast.LogicalExpression{Operator: "||", Left: expr, Right: eq}
		}
	}
	return expr
}

func (d *driver) driveNode(node cast.Node) {
	edges := d.forces[node]
	switch n := node.(type) {
	case *cast.BlockStatement, *cast.Program, *cast.LabelledStatement,
		*cast.CaseClause, *cast.CatchClause, *cast.CallExpression:
		// Sequential or pass-through containers: reaching them is
		// unconditional once their own parent is reached, so there is
		// nothing to force here.
	case *cast.IfStatement:
		d.driveIf(n, edges)
	case *cast.SwitchStatement:
		d.driveSwitch(n, edges)
	case *cast.ForStatement:
		d.driveLoopTest(&n.Test, edges)
	case *cast.WhileStatement:
		d.driveLoopTest(&n.Test, edges)
	case *cast.DoWhileStatement:
		d.driveLoopTest(&n.Test, edges)
	case *cast.ForOfStatement:
		n.Source = &cast.CallExpression{
			Callee:    &cast.Identifier{Name: d.ctx.Support.ValueIteratorHelperName()},
			Arguments: []cast.Expr{n.Source, orSeek(d.ctx, idsOf(edges))},
		}
	case *cast.ForInStatement:
		d.driveForIn(n, edges)
	case *cast.TryStatement:
		d.driveTry(n, edges)
	case *cast.FunctionLiteral:
		d.driveFunction(n, edges)
	case *cast.LogicalExpression:
		d.driveLogical(n, edges)
	default:
		d.ctx.Log.Warnf("control driver: no rewrite rule for enclosing construct %T; a goal beneath it may be unreachable when driven", node)
	}
}

func (d *driver) driveLoopTest(testPtr *cast.Expr, edges []forceEdge) {
	if *testPtr == nil {
		return // `for(;;)`: already unconditional
	}
	*testPtr = &cast.LogicalExpression{Operator: "||", Left: *testPtr, Right: orSeek(d.ctx, idsOf(edges))}
}

func (d *driver) driveIf(n *cast.IfStatement, edges []forceEdge) {
	var consIDs, altIDs []int
	for _, e := range edges {
		switch e.cameFrom {
		case n.Consequent:
			consIDs = append(consIDs, e.goalID)
		case n.Alternate:
			altIDs = append(altIDs, e.goalID)
		}
	}
	test := n.Test
	if len(consIDs) > 0 {
		test = &cast.LogicalExpression{Operator: "||", Left: test, Right: orSeek(d.ctx, consIDs)}
	}
	if len(altIDs) > 0 {
		test = &cast.LogicalExpression{
			Operator: "&&",
			Left:     test,
			Right:    &cast.UnaryExpression{Operator: "!", Operand: orSeek(d.ctx, altIDs)},
		}
	}
	n.Test = test
}

// driveSwitch inserts, immediately before each case a goal lies under, a
// sentinel case with an empty body (so it falls through into the
// original case), and rewrites the discriminant so it evaluates to that
// sentinel whenever the goal it guards is being sought. The original
// discriminant expression is snapshotted into a fresh const declared
// just before the switch, so it is still evaluated exactly once,
// unconditionally, even when a sentinel branch wins; the fallback
// alternative of every ternary in the rewritten discriminant reads that
// snapshot rather than re-embedding the original expression.
func (d *driver) driveSwitch(n *cast.SwitchStatement, edges []forceEdge) {
	var order []cast.Node
	grouped := map[cast.Node][]int{}
	for _, e := range edges {
		if _, ok := grouped[e.cameFrom]; !ok {
			order = append(order, e.cameFrom)
		}
		grouped[e.cameFrom] = append(grouped[e.cameFrom], e.goalID)
	}

	container, ok := n.Parent().(cast.StmtContainer)
	if !ok {
		d.ctx.Log.Warnf("control driver: switch has no enclosing statement list; cannot snapshot its discriminant")
		return
	}
	snapName := d.ctx.Pool.Fresh("comehereDiscriminant")
	cast.InsertBeforeIn(container, n, &cast.VariableStatement{
		Kind: cast.VarConst,
		List: []*cast.Binding{{Target: &cast.Identifier{Name: snapName}, Initializer: n.Discriminant}},
	})

	discriminant := cast.Expr(&cast.Identifier{Name: snapName})
	for _, caseNode := range order {
		cc, ok := caseNode.(*cast.CaseClause)
		if !ok {
			continue
		}
		idx := -1
		for i, c := range n.Cases {
			if c == cc {
				idx = i
				break
			}
		}
		if idx < 0 {
			continue
		}
		sentinel := d.ctx.Pool.Fresh("comehereCase")
		sentinelLit := &cast.StringLiteral{Value: sentinel, Raw: fmt.Sprintf("%q", sentinel)}
		n.Cases = append(n.Cases, nil)
		copy(n.Cases[idx+1:], n.Cases[idx:])
		n.Cases[idx] = &cast.CaseClause{Test: sentinelLit}

		discriminant = &cast.ConditionalExpression{
			Test:       orSeek(d.ctx, grouped[cc]),
			Consequent: sentinelLit,
			Alternate:  discriminant,
		}
	}
	n.Discriminant = discriminant
}

// driveForIn turns a `for (k in obj)` loop into a `for (k of ...)` loop
// over a generator that walks obj's keys, forcing at least one iteration
// when a goal inside the body would otherwise never run because obj has
// no own keys.
func (d *driver) driveForIn(n *cast.ForInStatement, edges []forceEdge) {
	container, ok := n.Parent().(cast.StmtContainer)
	if !ok {
		d.ctx.Log.Warnf("control driver: for-in loop has no enclosing statement list; cannot rewrite for key iteration")
		return
	}
	newForOf := &cast.ForOfStatement{
		Into: n.Into,
		Source: &cast.CallExpression{
			Callee:    &cast.Identifier{Name: d.ctx.Support.KeyIteratorHelperName()},
			Arguments: []cast.Expr{n.Source, orSeek(d.ctx, idsOf(edges))},
		},
		Body: n.Body,
	}
	cast.ReplaceIn(container, n, newForOf)
}

// driveTry forces the try body to throw, when the goal it guards lies in
// the catch clause, so that clause runs. A goal in the try body or in a
// finally block needs no rewrite: both run unconditionally once the
// try statement itself is reached.
func (d *driver) driveTry(n *cast.TryStatement, edges []forceEdge) {
	var catchIDs []int
	for _, e := range edges {
		if n.Catch != nil && e.cameFrom == n.Catch {
			catchIDs = append(catchIDs, e.goalID)
		}
	}
	if len(catchIDs) == 0 {
		return
	}
	forceThrow := &cast.IfStatement{
		Test: orSeek(d.ctx, catchIDs),
		Consequent: &cast.BlockStatement{Body: []cast.Stmt{
			&cast.ThrowStatement{Argument: &cast.ObjectLiteral{}},
		}},
	}
	cast.Prepend(n.Body, forceThrow)
}

// driveFunction ensures fn's active-frame bit exists and its prologue is
// installed, then synthesizes one guarded call per goal whose chain
// passes through fn. An immediately-invoked function expression needs
// neither: it already runs unconditionally as part of reaching its own
// call site, which the walk continues past on its own.
func (d *driver) driveFunction(fn *cast.FunctionLiteral, edges []forceEdge) {
	if isIIFE(fn) {
		return
	}
	bitIndex, activeLocal := d.ctx.Frames.Ensure(fn)
	d.injectActivePrologue(fn, bitIndex, activeLocal)
	for _, e := range edges {
		if g := d.goalByID(e.goalID); g != nil {
			d.synthesizeCall(fn, g)
		}
	}
}

// isIIFE reports whether fn is the callee of its own immediate
// invocation, `(function(){...})()` or `(() => {...})()`. Such a
// function runs unconditionally as part of reaching its call site, so it
// needs neither an active-frame bit nor a synthesized call: the walk
// simply continues past its CallExpression, which the generic
// pass-through case handles.
func isIIFE(fn *cast.FunctionLiteral) bool {
	ce, ok := fn.Parent().(*cast.CallExpression)
	return ok && ce.Callee == cast.Expr(fn)
}

// nearestGuardFunction is like cast.EnclosingFunction but skips over
// IIFEs, which are never given an active-frame bit: an active-frame
// guard answers "was this invocation the one synthesized to reach a
// goal", a question that only makes sense for a function with more than
// one possible caller.
func nearestGuardFunction(n cast.Node) *cast.FunctionLiteral {
	for p := n.Parent(); p != nil; p = p.Parent() {
		if fn, ok := p.(*cast.FunctionLiteral); ok && !isIIFE(fn) {
			return fn
		}
	}
	return nil
}

// driveLogical forces the right operand of a `||`/`&&` to evaluate (and
// to win) when a goal beneath it is being sought, replacing the operator
// with a call to the matching synthesized helper. Only the common shape
// of a bare `a || b;` expression statement is handled; anything else is
// diagnosed and left alone, since splicing a replacement into an
// arbitrary expression position has no single general mechanism the way
// a statement-list splice does.
func (d *driver) driveLogical(n *cast.LogicalExpression, edges []forceEdge) {
	var rightIDs []int
	for _, e := range edges {
		if e.cameFrom == n.Right {
			rightIDs = append(rightIDs, e.goalID)
		}
	}
	if len(rightIDs) == 0 {
		return
	}
	var helper string
	switch n.Operator {
	case "||":
		helper = d.ctx.Support.OrHelperName()
	case "&&":
		helper = d.ctx.Support.AndHelperName()
	default:
		d.ctx.Log.Warnf("control driver: cannot force the right operand of %q", n.Operator)
		return
	}
	es, ok := n.Parent().(*cast.ExpressionStatement)
	if !ok || es.Expression != cast.Expr(n) {
		d.ctx.Log.Warnf("control driver: cannot force a short-circuit operand used outside a bare expression statement")
		return
	}
	thunk := &cast.FunctionLiteral{IsArrow: true, Body: &cast.BlockStatement{Body: []cast.Stmt{
		&cast.ReturnStatement{Argument: n.Right},
	}}}
	es.Expression = &cast.CallExpression{
		Callee:    &cast.Identifier{Name: helper},
		Arguments: []cast.Expr{orSeek(d.ctx, rightIDs), n.Left, thunk},
	}
}

// synthesizeCall resolves fn's callable form and argument list for g,
// and inserts `if (seek == g.ID) { ... }` right after fn's own
// declaration. Unconsumed initializers and parameters left without a
// matching one are reported on g's id.
func (d *driver) synthesizeCall(fn *cast.FunctionLiteral, g *GoalBlock) {
	callee, kind, receiverClass, declContainer, declStmt, contextNames, ok := d.resolveCallable(fn)
	if !ok {
		d.ctx.Log.WarnfFor(g.ID, "cannot synthesize a call into this function's declaration form; goal may be unreachable when driven")
		return
	}

	bitIndex, activeLocal := d.ctx.Frames.Ensure(fn)
	d.injectActivePrologue(fn, bitIndex, activeLocal)

	consumed := make([]bool, len(g.Initializers))

	if receiverClass != nil {
		if me, isMember := callee.(*cast.MemberExpression); isMember {
			if ne, isNew := me.Object.(*cast.NewExpression); isNew {
				ne.Arguments = d.resolveConstructorArgs(receiverClass, contextNames[0], g, consumed)
			}
		}
	}

	var assigns []cast.Stmt
	var argIdents []cast.Expr
	for i, p := range fn.Params {
		var value cast.Expr
		if name, isIdent := p.Target.(*cast.Identifier); isIdent {
			value = d.matchInitializer(g, consumed, contextNames, name.Name)
		}
		if value == nil {
			if p.Default == nil {
				d.ctx.Log.WarnfFor(g.ID, "missing argument for parameter %d of synthesized call; passing undefined", i+1)
			}
			value = &cast.Identifier{Name: "undefined"}
		}
		argName := d.ctx.Pool.Fresh("arg")
		assigns = append(assigns, &cast.VariableStatement{
			Kind: cast.VarConst,
			List: []*cast.Binding{{Target: &cast.Identifier{Name: argName}, Initializer: value}},
		})
		argIdents = append(argIdents, &cast.Identifier{Name: argName})
	}
	for j, used := range consumed {
		if !used {
			d.ctx.Log.WarnfFor(g.ID, "initializer %q was never consumed by a matching parameter", joinPath(g.Initializers[j].Path))
		}
	}

	var invoke cast.Expr
	switch kind {
	case callConstruct:
		invoke = &cast.NewExpression{Callee: callee, Arguments: argIdents}
	case callGet:
		// A getter takes no arguments; referencing it bare triggers it.
		invoke = callee
	case callSet:
		var arg cast.Expr = &cast.Identifier{Name: "undefined"}
		if len(argIdents) > 0 {
			arg = argIdents[0]
		}
		invoke = &cast.AssignExpression{Operator: "=", Left: callee, Right: arg}
	default:
		invoke = &cast.CallExpression{Callee: callee, Arguments: argIdents}
	}

	body := append([]cast.Stmt{setActiveBit(d.ctx, bitIndex)}, assigns...)
	body = append(body, &cast.ExpressionStatement{Expression: invoke})

	guard := &cast.IfStatement{
		Test:       &cast.BinaryExpression{Operator: "==", Left: &cast.Identifier{Name: d.ctx.Support.SeekName()}, Right: &cast.NumberLiteral{Raw: strconv.Itoa(g.ID)}},
		Consequent: &cast.BlockStatement{Body: body},
	}

	if declContainer != nil && declStmt != nil {
		cast.InsertAfterIn(declContainer, declStmt, guard)
	}
}

// resolveConstructorArgs resolves a non-static instance method's implicit
// `new ClassName(...)` receiver against g's `<class>.this.<param>`
// initializers, matched by the same decreasing-specificity rule
// synthesizeCall uses for the method's own parameters. A constructor
// parameter with no matching initializer falls back to undefined, same
// as an unresolved method parameter would. consumed is shared with the
// method's own parameter loop so an initializer can't satisfy both.
func (d *driver) resolveConstructorArgs(cl *cast.ClassLiteral, className string, g *GoalBlock, consumed []bool) []cast.Expr {
	ctor := constructorOf(cl)
	if ctor == nil {
		return nil
	}
	args := make([]cast.Expr, len(ctor.Params))
	for i, p := range ctor.Params {
		var value cast.Expr
		if name, isIdent := p.Target.(*cast.Identifier); isIdent {
			value = d.matchInitializer(g, consumed, []string{className, "this"}, name.Name)
		}
		if value == nil {
			value = &cast.Identifier{Name: "undefined"}
		}
		args[i] = value
	}
	return args
}

// constructorOf returns cl's constructor, or nil if it declares none (an
// implicit, zero-argument default constructor).
func constructorOf(cl *cast.ClassLiteral) *cast.FunctionLiteral {
	for _, el := range cl.Body {
		if el.Kind == cast.ElementConstructor && el.Function != nil {
			return el.Function
		}
	}
	return nil
}

func (d *driver) matchInitializer(g *GoalBlock, consumed []bool, contextNames []string, paramName string) cast.Expr {
	for _, candidate := range candidatePaths(contextNames, paramName) {
		for j, init := range g.Initializers {
			if !consumed[j] && pathEqual(init.Path, candidate) {
				consumed[j] = true
				return init.Value
			}
		}
	}
	return nil
}

// candidatePaths returns paramName's lookup candidates by decreasing
// specificity: the full context-qualified path first, then each
// successively shorter suffix, down to the bare parameter name.
func candidatePaths(contextNames []string, paramName string) [][]string {
	var out [][]string
	for i := 0; i <= len(contextNames); i++ {
		path := append(append([]string{}, contextNames[i:]...), paramName)
		out = append(out, path)
	}
	return out
}

func pathEqual(a, b []string) bool {
	if len(a) != len(b) {
		return false
	}
	for i := range a {
		if a[i] != b[i] {
			return false
		}
	}
	return true
}

func joinPath(path []string) string { return strings.Join(path, ".") }

// injectActivePrologue installs, once per function, the two statements
// every active-frame-bearing function needs at its very top: read
// whether the caller set this function's bit (meaning this call is the
// one the control driver synthesized to reach a goal), then immediately
// clear the bit so a recursive or otherwise nested re-entry into the
// same function does not see it set.
func (d *driver) injectActivePrologue(fn *cast.FunctionLiteral, bitIndex int, localName string) {
	if d.prologued[fn] {
		return
	}
	d.prologued[fn] = true

	mask := d.ctx.Support.ActiveMaskName()
	readBit := &cast.VariableStatement{
		Kind: cast.VarConst,
		List: []*cast.Binding{{
			Target: &cast.Identifier{Name: localName},
			Initializer: &cast.BinaryExpression{
				Operator: "!==",
				Left:     &cast.BinaryExpression{Operator: "&", Left: &cast.Identifier{Name: mask}, Right: bigIntBit(bitIndex)},
				Right:    &cast.NumberLiteral{Raw: "0n"},
			},
		}},
	}
	clearBit := &cast.ExpressionStatement{Expression: &cast.AssignExpression{
		Operator: "&=",
		Left:     &cast.Identifier{Name: mask},
		Right:    &cast.UnaryExpression{Operator: "~", Operand: bigIntBit(bitIndex)},
	}}
	fn.Body.Body = append([]cast.Stmt{readBit, clearBit}, fn.Body.Body...)
}

func setActiveBit(ctx *Context, bitIndex int) cast.Stmt {
	return &cast.ExpressionStatement{Expression: &cast.AssignExpression{
		Operator: "|=",
		Left:     &cast.Identifier{Name: ctx.Support.ActiveMaskName()},
		Right:    bigIntBit(bitIndex),
	}}
}

func bigIntBit(bitIndex int) cast.Expr {
	return &cast.BinaryExpression{
		Operator: "<<",
		Left:     &cast.NumberLiteral{Raw: "1n"},
		Right:    &cast.CallExpression{Callee: &cast.Identifier{Name: "BigInt"}, Arguments: []cast.Expr{&cast.NumberLiteral{Raw: strconv.Itoa(bitIndex)}}},
	}
}

// callKind distinguishes the shape synthesizeCall must wrap callee in:
// a plain call, a constructor invocation, or a bare reference/assignment
// for a getter/setter, which have no call syntax of their own.
type callKind int

const (
	callPlain callKind = iota
	callConstruct
	callGet
	callSet
)

// resolveCallable identifies, for the handful of function flavours that
// have a stable name to call by, the expression that invokes fn, how it
// must be invoked, the statement list to splice the synthesized call
// into, the declaration statement to splice it after, and the dotted
// context (class/function name, method name) initializer lookups are
// qualified by. For a non-static instance method it also returns the
// enclosing class, so synthesizeCall can resolve the receiver's own
// constructor arguments against the goal's `<class>.this.*`
// initializers instead of constructing a bare zero-argument receiver.
// Object-literal methods and functions that only exist as an anonymous
// callback argument have no such name and are reported unsupported
// rather than guessed at.
func (d *driver) resolveCallable(fn *cast.FunctionLiteral) (callee cast.Expr, kind callKind, receiverClass *cast.ClassLiteral, declContainer cast.StmtContainer, declStmt cast.Stmt, contextNames []string, ok bool) {
	switch p := fn.Parent().(type) {
	case *cast.FunctionDeclaration:
		if fn.Name == "" {
			return nil, callPlain, nil, nil, nil, nil, false
		}
		container, ok := p.Parent().(cast.StmtContainer)
		if !ok {
			return nil, callPlain, nil, nil, nil, nil, false
		}
		return &cast.Identifier{Name: fn.Name}, callPlain, nil, container, p, []string{fn.Name}, true

	case *cast.VariableStatement:
		for _, b := range p.List {
			if b.Initializer != cast.Expr(fn) {
				continue
			}
			ident, isIdent := b.Target.(*cast.Identifier)
			if !isIdent {
				return nil, callPlain, nil, nil, nil, nil, false
			}
			container, ok := p.Parent().(cast.StmtContainer)
			if !ok {
				return nil, callPlain, nil, nil, nil, nil, false
			}
			return &cast.Identifier{Name: ident.Name}, callPlain, nil, container, p, []string{ident.Name}, true
		}
		return nil, callPlain, nil, nil, nil, nil, false

	case *cast.ClassLiteral:
		var el *cast.ClassElement
		for _, e := range p.Body {
			if e.Function == fn {
				el = e
				break
			}
		}
		if el == nil || el.Computed || el.Private {
			return nil, callPlain, nil, nil, nil, nil, false
		}
		key, isIdent := el.Key.(*cast.Identifier)
		if !isIdent {
			return nil, callPlain, nil, nil, nil, nil, false
		}
		className, container, declStmt, ok := d.resolveClassName(p)
		if !ok {
			return nil, callPlain, nil, nil, nil, nil, false
		}

		if el.Kind == cast.ElementConstructor {
			// A goal inside a constructor uses new ClassName(args) rather
			// than instance construction followed by a method call.
			return &cast.Identifier{Name: className}, callConstruct, nil, container, declStmt, []string{className}, true
		}

		kind := callPlain
		switch el.Kind {
		case cast.ElementGet:
			kind = callGet
		case cast.ElementSet:
			kind = callSet
		}

		var object cast.Expr
		if el.Static {
			object = &cast.Identifier{Name: className}
		} else {
			object = &cast.NewExpression{Callee: &cast.Identifier{Name: className}}
			receiverClass = p
		}
		return &cast.MemberExpression{Object: object, Property: key}, kind, receiverClass, container, declStmt, []string{className, key.Name}, true

	default:
		return nil, callPlain, nil, nil, nil, nil, false
	}
}

func (d *driver) resolveClassName(cl *cast.ClassLiteral) (name string, declContainer cast.StmtContainer, declStmt cast.Stmt, ok bool) {
	switch p := cl.Parent().(type) {
	case *cast.ClassDeclaration:
		if cl.Name == "" {
			return "", nil, nil, false
		}
		container, ok := p.Parent().(cast.StmtContainer)
		if !ok {
			return "", nil, nil, false
		}
		return cl.Name, container, p, true
	case *cast.VariableStatement:
		for _, b := range p.List {
			if b.Initializer != cast.Expr(cl) {
				continue
			}
			ident, isIdent := b.Target.(*cast.Identifier)
			if !isIdent {
				return "", nil, nil, false
			}
			container, ok := p.Parent().(cast.StmtContainer)
			if !ok {
				return "", nil, nil, false
			}
			return ident.Name, container, p, true
		}
	}
	return "", nil, nil, false
}
