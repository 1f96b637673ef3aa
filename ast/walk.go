// Copyright 2014 The Go Authors. All rights reserved.
// Use of this source code is governed by a BSD-style
// license that can be found in the LICENSE file.

package ast

// Children returns the direct child nodes of n, in source order, skipping
// nils. It is the single point that knows the shape of every node type;
// Attach and Inspect are both built on it, the way go/ast.Inspect is
// built on a per-kind switch in the standard library's ast package.
func Children(n Node) []Node {
	var out []Node
	add := func(c Node) {
		if c != nil {
			out = append(out, c)
		}
	}
	addStmts := func(list []Stmt) {
		for _, s := range list {
			add(s)
		}
	}
	addExprs := func(list []Expr) {
		for _, e := range list {
			add(e)
		}
	}
	switch n := n.(type) {
	case *Program:
		addStmts(n.Body)
	case *BlockStatement:
		addStmts(n.Body)
	case *ExpressionStatement:
		add(n.Expression)
	case *EmptyStatement:
	case *VariableStatement:
		for _, b := range n.List {
			add(b.Target)
			add(b.Initializer)
		}
	case *IfStatement:
		add(n.Test)
		add(n.Consequent)
		add(n.Alternate)
	case *ForStatement:
		add(n.Init)
		add(n.Test)
		add(n.Update)
		add(n.Body)
	case *ForInStatement:
		add(n.Into)
		add(n.Source)
		add(n.Body)
	case *ForOfStatement:
		add(n.Into)
		add(n.Source)
		add(n.Body)
	case *WhileStatement:
		add(n.Test)
		add(n.Body)
	case *DoWhileStatement:
		add(n.Body)
		add(n.Test)
	case *BreakStatement:
	case *ContinueStatement:
	case *ReturnStatement:
		add(n.Argument)
	case *ThrowStatement:
		add(n.Argument)
	case *CatchClause:
		add(n.Parameter)
		add(n.Body)
	case *TryStatement:
		add(n.Body)
		add(n.Catch)
		add(n.Finally)
	case *CaseClause:
		add(n.Test)
		addStmts(n.Consequent)
	case *SwitchStatement:
		add(n.Discriminant)
		for _, c := range n.Cases {
			add(c)
		}
	case *LabelledStatement:
		add(n.Statement)
	case *WithStatement:
		add(n.Object)
		add(n.Body)
	case *FunctionDeclaration:
		add(n.Function)
	case *ClassDeclaration:
		add(n.Class)
	case *Identifier, *ThisExpression, *SuperExpression,
		*NullLiteral, *BooleanLiteral, *NumberLiteral, *StringLiteral, *RegExpLiteral:
	case *ArrayLiteral:
		addExprs(n.Elements)
	case *ObjectLiteral:
		for _, p := range n.Properties {
			add(p.Key)
			add(p.Value)
		}
	case *SpreadElement:
		add(n.Argument)
	case *FunctionLiteral:
		for _, p := range n.Params {
			add(p.Target)
			add(p.Default)
		}
		add(n.Body)
		add(n.ExpressionBody)
	case *ClassLiteral:
		add(n.SuperClass)
		for _, el := range n.Body {
			if el.Computed {
				add(el.Key)
			}
			add(el.Function)
			add(el.Value)
		}
	case *SequenceExpression:
		addExprs(n.Expressions)
	case *AssignExpression:
		add(n.Left)
		add(n.Right)
	case *BinaryExpression:
		add(n.Left)
		add(n.Right)
	case *LogicalExpression:
		add(n.Left)
		add(n.Right)
	case *UnaryExpression:
		add(n.Operand)
	case *ConditionalExpression:
		add(n.Test)
		add(n.Consequent)
		add(n.Alternate)
	case *CallExpression:
		add(n.Callee)
		addExprs(n.Arguments)
	case *NewExpression:
		add(n.Callee)
		addExprs(n.Arguments)
	case *MemberExpression:
		add(n.Object)
		if n.Computed {
			add(n.Property)
		}
	}
	return out
}

// Attach sets the Parent pointer of every node reachable from root. Run it
// after any structural mutation before relying on Parent/AncestorChain.
func Attach(root Node) {
	for _, c := range Children(root) {
		c.setParent(root)
		Attach(c)
	}
}

// Inspect visits root and every node reachable from it, in pre-order.
// Recursion into a node's children stops if visit returns false for it.
func Inspect(root Node, visit func(Node) bool) {
	if !visit(root) {
		return
	}
	for _, c := range Children(root) {
		Inspect(c, visit)
	}
}

// EnclosingFunction returns the nearest *FunctionLiteral strictly
// enclosing n, or nil if n is at module scope. Arrow functions are
// transparent to `this`-resolution elsewhere, but they are still
// function scopes for active-frame and name-pool purposes, so this walk
// does not skip them.
func EnclosingFunction(n Node) *FunctionLiteral {
	for p := n.Parent(); p != nil; p = p.Parent() {
		if fn, ok := p.(*FunctionLiteral); ok {
			return fn
		}
	}
	return nil
}

// AncestorChain returns the chain of nodes from n (inclusive) up to and
// including the Program root, in that order: AncestorChain(n)[0] == n,
// and the last element is the *Program.
func AncestorChain(n Node) []Node {
	chain := []Node{n}
	for p := n.Parent(); p != nil; p = p.Parent() {
		chain = append(chain, p)
	}
	return chain
}
