// Copyright 2014 The Go Authors. All rights reserved.
// Use of this source code is governed by a BSD-style
// license that can be found in the LICENSE file.

package ast_test

import (
	"testing"

	cast "github.com/mikesamuel/comehere/ast"
)

func sampleProgram() (*cast.Program, *cast.Identifier, *cast.FunctionLiteral) {
	id := &cast.Identifier{Name: "x"}
	fn := &cast.FunctionLiteral{
		Name: "outer",
		Body: &cast.BlockStatement{Body: []cast.Stmt{
			&cast.ExpressionStatement{Expression: id},
		}},
	}
	prog := &cast.Program{Body: []cast.Stmt{&cast.FunctionDeclaration{Function: fn}}}
	cast.Attach(prog)
	return prog, id, fn
}

func TestAttachSetsParentChain(t *testing.T) {
	prog, id, fn := sampleProgram()
	if id.Parent() == nil {
		t.Fatal("Attach left Identifier.Parent nil")
	}
	chain := cast.AncestorChain(id)
	if chain[0] != cast.Node(id) {
		t.Fatalf("AncestorChain[0] = %v, want the identifier itself", chain[0])
	}
	if chain[len(chain)-1] != cast.Node(prog) {
		t.Fatalf("AncestorChain's last element = %v, want the Program root", chain[len(chain)-1])
	}
	foundFn := false
	for _, n := range chain {
		if n == cast.Node(fn) {
			foundFn = true
		}
	}
	if !foundFn {
		t.Fatal("AncestorChain does not pass through the enclosing function")
	}
}

func TestEnclosingFunction(t *testing.T) {
	_, id, fn := sampleProgram()
	if got := cast.EnclosingFunction(id); got != fn {
		t.Fatalf("EnclosingFunction(id) = %v, want %v", got, fn)
	}
	if got := cast.EnclosingFunction(fn); got != nil {
		t.Fatalf("EnclosingFunction(fn) = %v, want nil at module scope", got)
	}
}

func TestInspectVisitsEveryNode(t *testing.T) {
	prog, id, fn := sampleProgram()
	var names []string
	cast.Inspect(prog, func(n cast.Node) bool {
		switch v := n.(type) {
		case *cast.Identifier:
			names = append(names, v.Name)
		}
		return true
	})
	if len(names) != 1 || names[0] != id.Name {
		t.Fatalf("Inspect found identifiers %v, want [%s]", names, id.Name)
	}
	_ = fn
}

func TestInspectStopsRecursionWhenVisitReturnsFalse(t *testing.T) {
	prog, _, fn := sampleProgram()
	visited := map[cast.Node]bool{}
	cast.Inspect(prog, func(n cast.Node) bool {
		visited[n] = true
		_, isFunc := n.(*cast.FunctionLiteral)
		return !isFunc
	})
	if !visited[cast.Node(fn)] {
		t.Fatal("Inspect never visited the function literal itself")
	}
	if visited[cast.Node(fn.Body)] {
		t.Fatal("Inspect descended into a node whose visit callback returned false")
	}
}

func TestChildrenSkipsNils(t *testing.T) {
	ifStmt := &cast.IfStatement{
		Test:       &cast.Identifier{Name: "cond"},
		Consequent: &cast.BlockStatement{},
		Alternate:  nil,
	}
	children := cast.Children(ifStmt)
	if len(children) != 2 {
		t.Fatalf("Children(ifStmt) = %v, want 2 non-nil children", children)
	}
}

func TestInsertAfterInPreservesOrder(t *testing.T) {
	a := &cast.ExpressionStatement{Expression: &cast.Identifier{Name: "a"}}
	b := &cast.ExpressionStatement{Expression: &cast.Identifier{Name: "b"}}
	c := &cast.ExpressionStatement{Expression: &cast.Identifier{Name: "c"}}
	block := &cast.BlockStatement{Body: []cast.Stmt{a, c}}

	if !cast.InsertAfterIn(block, a, b) {
		t.Fatal("InsertAfterIn reported old not found")
	}
	if len(block.Body) != 3 || block.Body[0] != cast.Stmt(a) || block.Body[1] != cast.Stmt(b) || block.Body[2] != cast.Stmt(c) {
		t.Fatalf("block.Body = %v, want [a, b, c]", block.Body)
	}
}

func TestInsertBeforeInPreservesOrder(t *testing.T) {
	a := &cast.ExpressionStatement{Expression: &cast.Identifier{Name: "a"}}
	b := &cast.ExpressionStatement{Expression: &cast.Identifier{Name: "b"}}
	c := &cast.ExpressionStatement{Expression: &cast.Identifier{Name: "c"}}
	block := &cast.BlockStatement{Body: []cast.Stmt{a, c}}

	if !cast.InsertBeforeIn(block, c, b) {
		t.Fatal("InsertBeforeIn reported old not found")
	}
	if len(block.Body) != 3 || block.Body[0] != cast.Stmt(a) || block.Body[1] != cast.Stmt(b) || block.Body[2] != cast.Stmt(c) {
		t.Fatalf("block.Body = %v, want [a, b, c]", block.Body)
	}
}

func TestReplaceInReturnsFalseWhenNotFound(t *testing.T) {
	a := &cast.ExpressionStatement{Expression: &cast.Identifier{Name: "a"}}
	other := &cast.ExpressionStatement{Expression: &cast.Identifier{Name: "other"}}
	block := &cast.BlockStatement{Body: []cast.Stmt{a}}
	if cast.ReplaceIn(block, other, a) {
		t.Fatal("ReplaceIn reported success for a statement not in the list")
	}
}

func TestAppendAndPrepend(t *testing.T) {
	prog := &cast.Program{}
	first := &cast.ExpressionStatement{Expression: &cast.Identifier{Name: "first"}}
	second := &cast.ExpressionStatement{Expression: &cast.Identifier{Name: "second"}}
	cast.Append(prog, second)
	cast.Prepend(prog, first)
	if len(prog.Body) != 2 || prog.Body[0] != cast.Stmt(first) || prog.Body[1] != cast.Stmt(second) {
		t.Fatalf("prog.Body = %v, want [first, second]", prog.Body)
	}
}
