// Copyright 2014 The Go Authors. All rights reserved.
// Use of this source code is governed by a BSD-style
// license that can be found in the LICENSE file.

// Package ast defines COMEHERE's own mutable syntax tree for the host
// language (a C-family scripting language with block, loop, exception,
// switch, function and class constructs). Every later pass reads and
// mutates this tree, not the parser's own output.
//
// Nodes carry an explicit Parent pointer (set by Attach) so that a pass
// can walk from a node to the module root without re-deriving a path,
// and every statement-holding node implements StmtContainer, so that
// ReplaceIn/InsertBeforeIn/InsertAfterIn can splice in synthesized
// statements without the pass rebuilding the enclosing slice by hand.
package ast

// Node is the root of every tree element. Parent returns the immediately
// enclosing node, or nil at the Program root. Parent is only valid after
// Attach has been run on the tree (or one of its ancestors).
type Node interface {
	astNode()
	Parent() Node
	setParent(Node)
}

// Stmt is a statement-shaped Node.
type Stmt interface {
	Node
	stmtNode()
}

// Expr is an expression-shaped Node.
type Expr interface {
	Node
	exprNode()
}

type base struct {
	parent Node
}

func (b *base) Parent() Node      { return b.parent }
func (b *base) setParent(p Node)  { b.parent = p }
func (*base) astNode()            {}

// Program is the root of a parsed module.
type Program struct {
	base
	Body []Stmt
}

// StmtContainer is implemented by every node with a statement list that
// passes may splice into: BlockStatement, CaseClause, and Program itself.
type StmtContainer interface {
	Node
	Stmts() []Stmt
	SetStmts([]Stmt)
}

func (p *Program) Stmts() []Stmt     { return p.Body }
func (p *Program) SetStmts(s []Stmt) { p.Body = s }

// ReplaceIn replaces old with replacement in container's statement list,
// returning false if old was not found.
func ReplaceIn(container StmtContainer, old, replacement Stmt) bool {
	list := container.Stmts()
	for i, s := range list {
		if s == old {
			list[i] = replacement
			return true
		}
	}
	return false
}

// InsertAfterIn inserts stmt immediately after old in container's
// statement list, returning false if old was not found.
func InsertAfterIn(container StmtContainer, old, stmt Stmt) bool {
	list := container.Stmts()
	for i, s := range list {
		if s == old {
			list = append(list, nil)
			copy(list[i+2:], list[i+1:])
			list[i+1] = stmt
			container.SetStmts(list)
			return true
		}
	}
	return false
}

// InsertBeforeIn inserts stmt immediately before old in container's
// statement list, returning false if old was not found.
func InsertBeforeIn(container StmtContainer, old, stmt Stmt) bool {
	list := container.Stmts()
	for i, s := range list {
		if s == old {
			list = append(list, nil)
			copy(list[i+1:], list[i:])
			list[i] = stmt
			container.SetStmts(list)
			return true
		}
	}
	return false
}

// Append adds stmt to the end of container's statement list.
func Append(container StmtContainer, stmt Stmt) {
	container.SetStmts(append(container.Stmts(), stmt))
}

// Prepend adds stmt to the front of container's statement list.
func Prepend(container StmtContainer, stmt Stmt) {
	container.SetStmts(append([]Stmt{stmt}, container.Stmts()...))
}
