// Copyright 2014 The Go Authors. All rights reserved.
// Use of this source code is governed by a BSD-style
// license that can be found in the LICENSE file.

package transform

import cast "github.com/mikesamuel/comehere/ast"

// BlockNormalizer wraps every conditional arm, loop body, with-statement
// body, and arrow-function expression body that is not already a block in
// one, so that later passes always have an insertion site.
//
// Must run before every other pass, and must be idempotent: run twice,
// the second pass finds nothing left to wrap.
type BlockNormalizer struct{}

func (*BlockNormalizer) Name() string { return "block-normalizer" }

func (n *BlockNormalizer) Run(ctx *Context) error {
	cast.Inspect(ctx.Program, func(node cast.Node) bool {
		switch s := node.(type) {
		case *cast.IfStatement:
			s.Consequent = wrapStmt(s.Consequent)
			if s.Alternate != nil {
				s.Alternate = wrapStmt(s.Alternate)
			}
		case *cast.ForStatement:
			s.Body = wrapStmt(s.Body)
		case *cast.ForInStatement:
			s.Body = wrapStmt(s.Body)
		case *cast.ForOfStatement:
			s.Body = wrapStmt(s.Body)
		case *cast.WhileStatement:
			s.Body = wrapStmt(s.Body)
		case *cast.DoWhileStatement:
			s.Body = wrapStmt(s.Body)
		case *cast.WithStatement:
			s.Body = wrapStmt(s.Body)
		case *cast.FunctionLiteral:
			if s.IsArrow && s.ExpressionBody != nil {
				s.Body = &cast.BlockStatement{Body: []cast.Stmt{
					&cast.ReturnStatement{Argument: s.ExpressionBody},
				}}
				s.ExpressionBody = nil
			}
		}
		return true
	})
	ctx.reattach()
	return nil
}

// wrapStmt returns s unchanged if it is already a *cast.BlockStatement
// (the idempotence case), and a single-statement block containing s
// otherwise. A nil statement (e.g. an absent else-arm) is left nil.
func wrapStmt(s cast.Stmt) cast.Stmt {
	if s == nil {
		return nil
	}
	if _, ok := s.(*cast.BlockStatement); ok {
		return s
	}
	return &cast.BlockStatement{Body: []cast.Stmt{s}}
}
