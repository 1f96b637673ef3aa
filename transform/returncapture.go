// Copyright 2014 The Go Authors. All rights reserved.
// Use of this source code is governed by a BSD-style
// license that can be found in the LICENSE file.

package transform

import cast "github.com/mikesamuel/comehere/ast"

// ReturnCapture rewrites a `return E` immediately followed, in the same
// block, by one or more COMEHERE blocks into
//
//	let R;
//	try { return (R = E); } finally { <those COMEHERE blocks> }
//
// so a goal placed after a return can observe the returned value via the
// magic expression `Function.return`, rewritten here to a reference to R.
//
// The surgery pulls an expression out into a freshly named local
// declared just above its use, paired with a try/finally instead of a
// plain replacement so the lifted code still runs after the return
// fires.
type ReturnCapture struct{}

func (*ReturnCapture) Name() string { return "return-capture" }

func (rc *ReturnCapture) Run(ctx *Context) error {
	cast.Inspect(ctx.Program, func(node cast.Node) bool {
		if container, ok := node.(cast.StmtContainer); ok {
			rc.rewriteContainer(ctx, container)
		}
		return true
	})
	ctx.reattach()
	return nil
}

func (rc *ReturnCapture) rewriteContainer(ctx *Context, container cast.StmtContainer) {
	list := container.Stmts()
	for i := 0; i < len(list); i++ {
		ret, ok := list[i].(*cast.ReturnStatement)
		if !ok {
			continue
		}
		j := i + 1
		for j < len(list) && isComehereLabel(list[j]) {
			j++
		}
		if j == i+1 {
			continue // no trailing COMEHERE blocks; nothing to lift
		}
		trailing := list[i+1 : j]

		rName := ctx.Pool.Fresh("R")
		rIdent := func() *cast.Identifier { return &cast.Identifier{Name: rName} }

		for _, t := range trailing {
			replaceFunctionReturn(t, rIdent)
		}

		decl := &cast.VariableStatement{
			Kind: cast.VarLet,
			List: []*cast.Binding{{Target: rIdent()}},
		}
		guarded := &cast.TryStatement{
			Body: &cast.BlockStatement{Body: []cast.Stmt{
				&cast.ReturnStatement{Argument: &cast.AssignExpression{
					Operator: "=",
					Left:     rIdent(),
					Right:    ret.Argument,
				}},
			}},
			Finally: &cast.BlockStatement{Body: append([]cast.Stmt{}, trailing...)},
		}

		newList := make([]cast.Stmt, 0, len(list)-(j-i)+2)
		newList = append(newList, list[:i]...)
		newList = append(newList, decl, guarded)
		newList = append(newList, list[j:]...)
		container.SetStmts(newList)
		list = newList
		i += 1 // skip over the two statements we just inserted
	}
}

// isComehereLabel reports whether s is a `COMEHERE: with (...) {...}`
// goal block, the surface form the extractor consumes.
func isComehereLabel(s cast.Stmt) bool {
	l, ok := s.(*cast.LabelledStatement)
	if !ok || l.Label != comehereLabel {
		return false
	}
	_, ok = l.Statement.(*cast.WithStatement)
	return ok
}

// replaceFunctionReturn rewrites occurrences of the magic expression
// `Function.return` under root to an identifier with the given factory's
// name, leaving everything else untouched. Only an occurrence that is
// directly an expression statement, a call argument, a return value, a
// variable initializer, the right side of an assignment, or an operand of
// a binary operator is rewritten; one in any other position (for example
// the object of a member access or an operand of `||`) is left as is.
func replaceFunctionReturn(root cast.Node, ident func() *cast.Identifier) {
	cast.Inspect(root, func(n cast.Node) bool {
		switch parent := n.(type) {
		case *cast.ExpressionStatement:
			parent.Expression = substituteFunctionReturn(parent.Expression, ident)
		case *cast.CallExpression:
			for i, a := range parent.Arguments {
				parent.Arguments[i] = substituteFunctionReturn(a, ident)
			}
		case *cast.ReturnStatement:
			parent.Argument = substituteFunctionReturn(parent.Argument, ident)
		case *cast.VariableStatement:
			for _, b := range parent.List {
				b.Initializer = substituteFunctionReturn(b.Initializer, ident)
			}
		case *cast.AssignExpression:
			parent.Right = substituteFunctionReturn(parent.Right, ident)
		case *cast.BinaryExpression:
			parent.Left = substituteFunctionReturn(parent.Left, ident)
			parent.Right = substituteFunctionReturn(parent.Right, ident)
		}
		return true
	})
}

func substituteFunctionReturn(e cast.Expr, ident func() *cast.Identifier) cast.Expr {
	if isFunctionReturn(e) {
		return ident()
	}
	return e
}

func isFunctionReturn(e cast.Expr) bool {
	m, ok := e.(*cast.MemberExpression)
	if !ok || m.Computed {
		return false
	}
	obj, ok := m.Object.(*cast.Identifier)
	if !ok || obj.Name != "Function" {
		return false
	}
	prop, ok := m.Property.(*cast.Identifier)
	return ok && prop.Name == "return"
}
