// Copyright 2014 The Go Authors. All rights reserved.
// Use of this source code is governed by a BSD-style
// license that can be found in the LICENSE file.

// Package hostlang hands source text to github.com/dop251/goja's parser
// and walks the resulting tree exactly once to build COMEHERE's own
// mutable ast.Program, which is what every later pass actually reads and
// mutates. Nothing downstream of Parse imports goja.
//
// Output is produced by Generate, a small recursive printer over
// COMEHERE's own ast package; no third-party library prints this shape
// of tree, so that half of the adapter is hand-rolled.
package hostlang

import (
	"fmt"

	gojaast "github.com/dop251/goja/ast"
	"github.com/dop251/goja/parser"
	"github.com/dop251/goja/token"

	cast "github.com/mikesamuel/comehere/ast"
)

// ParseError wraps a syntax error from the underlying parser with the
// source name, for display to the caller.
type ParseError struct {
	Source string
	Err    error
}

func (e *ParseError) Error() string {
	return fmt.Sprintf("%s: %s", e.Source, e.Err)
}

func (e *ParseError) Unwrap() error { return e.Err }

// Parse parses src (named filename for diagnostics only) and returns
// COMEHERE's own mutable tree with parent links already attached.
func Parse(filename, src string) (*cast.Program, error) {
	prog, err := parser.ParseFile(nil, filename, src, 0)
	if err != nil {
		return nil, &ParseError{Source: filename, Err: err}
	}
	c := &converter{}
	out := &cast.Program{Body: c.stmts(prog.Body)}
	cast.Attach(out)
	return out, nil
}

// converter walks a goja/ast tree exactly once, building the equivalent
// COMEHERE node for each one it understands. It intentionally has no
// state beyond the call stack: the two trees are isomorphic modulo a
// handful of unsupported ECMAScript forms (eval, dynamic-class-body
// workarounds, destructuring beyond what a dotted capture-variable or
// goal initializer needs).
type converter struct{}

func (c *converter) stmts(in []gojaast.Statement) []cast.Stmt {
	out := make([]cast.Stmt, 0, len(in))
	for _, s := range in {
		if cs := c.stmt(s); cs != nil {
			out = append(out, cs)
		}
	}
	return out
}

func (c *converter) block(in *gojaast.BlockStatement) *cast.BlockStatement {
	if in == nil {
		return nil
	}
	return &cast.BlockStatement{Body: c.stmts(in.List)}
}

func (c *converter) stmt(in gojaast.Statement) cast.Stmt {
	switch n := in.(type) {
	case nil:
		return nil
	case *gojaast.BlockStatement:
		return c.block(n)
	case *gojaast.ExpressionStatement:
		return &cast.ExpressionStatement{Expression: c.expr(n.Expression)}
	case *gojaast.EmptyStatement:
		return &cast.EmptyStatement{}
	case *gojaast.VariableStatement:
		return &cast.VariableStatement{Kind: cast.VarVar, List: c.bindings(n.List)}
	case *gojaast.LexicalDeclaration:
		kind := cast.VarLet
		if n.Token == token.CONST {
			kind = cast.VarConst
		}
		return &cast.VariableStatement{Kind: kind, List: c.bindings(n.List)}
	case *gojaast.IfStatement:
		return &cast.IfStatement{
			Test:       c.expr(n.Test),
			Consequent: c.stmt(n.Consequent),
			Alternate:  c.stmt(n.Alternate),
		}
	case *gojaast.ForStatement:
		return &cast.ForStatement{
			Init:   c.forInit(n.Initializer),
			Test:   c.expr(n.Test),
			Update: c.expr(n.Update),
			Body:   c.stmt(n.Body),
		}
	case *gojaast.ForInStatement:
		return &cast.ForInStatement{Into: c.forInto(n.Into), Source: c.expr(n.Source), Body: c.stmt(n.Body)}
	case *gojaast.ForOfStatement:
		return &cast.ForOfStatement{Into: c.forInto(n.Into), Source: c.expr(n.Source), Body: c.stmt(n.Body)}
	case *gojaast.WhileStatement:
		return &cast.WhileStatement{Test: c.expr(n.Test), Body: c.stmt(n.Body)}
	case *gojaast.DoWhileStatement:
		return &cast.DoWhileStatement{Test: c.expr(n.Test), Body: c.stmt(n.Body)}
	case *gojaast.BranchStatement:
		label := ""
		if n.Label != nil {
			label = string(n.Label.Name)
		}
		if n.Token == token.BREAK {
			return &cast.BreakStatement{Label: label}
		}
		return &cast.ContinueStatement{Label: label}
	case *gojaast.ReturnStatement:
		return &cast.ReturnStatement{Argument: c.expr(n.Argument)}
	case *gojaast.ThrowStatement:
		return &cast.ThrowStatement{Argument: c.expr(n.Argument)}
	case *gojaast.TryStatement:
		ts := &cast.TryStatement{Body: c.block(n.Body), Finally: c.block(n.Finally)}
		if n.Catch != nil {
			ts.Catch = &cast.CatchClause{
				Parameter: c.bindingTarget(n.Catch.Parameter),
				Body:      c.block(n.Catch.Body),
			}
		}
		return ts
	case *gojaast.SwitchStatement:
		cases := make([]*cast.CaseClause, 0, len(n.Body))
		for _, cc := range n.Body {
			cases = append(cases, &cast.CaseClause{
				Test:       c.expr(cc.Test),
				Consequent: c.stmts(cc.Consequent),
			})
		}
		return &cast.SwitchStatement{Discriminant: c.expr(n.Discriminant), Cases: cases}
	case *gojaast.LabelledStatement:
		label := ""
		if n.Label != nil {
			label = string(n.Label.Name)
		}
		return &cast.LabelledStatement{Label: label, Statement: c.stmt(n.Statement)}
	case *gojaast.WithStatement:
		return &cast.WithStatement{Object: c.expr(n.Object), Body: c.stmt(n.Body)}
	case *gojaast.FunctionDeclaration:
		return &cast.FunctionDeclaration{Function: c.function(n.Function)}
	case *gojaast.ClassDeclaration:
		return &cast.ClassDeclaration{Class: c.class(n.Class)}
	default:
		// Unsupported construct (e.g. a destructuring form beyond what
		// goal initializers or capture variables need); dropped
		// silently, with no diagnostic.
		return nil
	}
}

// forInit converts a for-loop's own initializer clause: either a bare
// expression, a var declaration list, or a let/const declaration.
func (c *converter) forInit(in gojaast.ForLoopInitializer) cast.Stmt {
	switch n := in.(type) {
	case nil:
		return nil
	case *gojaast.ForLoopInitializerExpression:
		return &cast.ExpressionStatement{Expression: c.expr(n.Expression)}
	case *gojaast.ForLoopInitializerVarDeclList:
		return &cast.VariableStatement{Kind: cast.VarVar, List: c.bindings(n.List)}
	case *gojaast.ForLoopInitializerLexicalDecl:
		kind := cast.VarLet
		if n.LexicalDeclaration.Token == token.CONST {
			kind = cast.VarConst
		}
		return &cast.VariableStatement{Kind: kind, List: c.bindings(n.LexicalDeclaration.List)}
	default:
		return nil
	}
}

// forInto converts a for-in/for-of loop's binding target clause: either a
// bare assignment target expression or a var/let/const declaration of one
// name.
func (c *converter) forInto(in gojaast.ForInto) cast.Stmt {
	switch n := in.(type) {
	case nil:
		return nil
	case *gojaast.ForIntoExpression:
		return &cast.ExpressionStatement{Expression: c.expr(n.Expression)}
	case *gojaast.ForIntoVar:
		return &cast.VariableStatement{Kind: cast.VarVar, List: c.bindings([]*gojaast.Binding{n.Binding})}
	case *gojaast.ForIntoDeclaration:
		kind := cast.VarLet
		if n.IsConst {
			kind = cast.VarConst
		}
		return &cast.VariableStatement{Kind: kind, List: []*cast.Binding{{Target: c.bindingTarget(n.Target)}}}
	default:
		return nil
	}
}

func (c *converter) bindings(in []*gojaast.Binding) []*cast.Binding {
	out := make([]*cast.Binding, 0, len(in))
	for _, b := range in {
		out = append(out, &cast.Binding{
			Target:      c.bindingTarget(b.Target),
			Initializer: c.expr(b.Initializer),
		})
	}
	return out
}

func (c *converter) bindingTarget(in gojaast.BindingTarget) cast.Expr {
	if id, ok := in.(*gojaast.Identifier); ok {
		return &cast.Identifier{Name: string(id.Name)}
	}
	return nil
}

func (c *converter) function(in *gojaast.FunctionLiteral) *cast.FunctionLiteral {
	if in == nil {
		return nil
	}
	name := ""
	if in.Name != nil {
		name = string(in.Name.Name)
	}
	return &cast.FunctionLiteral{
		Name:        name,
		Params:      c.params(in.ParameterList),
		Body:        c.block(in.Body),
		IsGenerator: in.Generator,
		IsAsync:     in.Async,
	}
}

func (c *converter) params(in *gojaast.ParameterList) []*cast.Parameter {
	if in == nil {
		return nil
	}
	out := make([]*cast.Parameter, 0, len(in.List))
	for _, p := range in.List {
		out = append(out, &cast.Parameter{Target: c.bindingTarget(p.Target), Default: c.expr(p.Initializer)})
	}
	if in.Rest != nil {
		out = append(out, &cast.Parameter{Target: c.bindingTarget(in.Rest), Rest: true})
	}
	return out
}

func (c *converter) class(in *gojaast.ClassLiteral) *cast.ClassLiteral {
	if in == nil {
		return nil
	}
	name := ""
	if in.Name != nil {
		name = string(in.Name.Name)
	}
	cl := &cast.ClassLiteral{Name: name, SuperClass: c.expr(in.SuperClass)}
	for _, el := range in.Body {
		cl.Body = append(cl.Body, c.classElement(el))
	}
	return cl
}

func (c *converter) classElement(in gojaast.ClassElement) *cast.ClassElement {
	switch n := in.(type) {
	case *gojaast.MethodDefinition:
		kind := cast.ElementMethod
		switch n.Kind {
		case gojaast.PropertyKindGet:
			kind = cast.ElementGet
		case gojaast.PropertyKindSet:
			kind = cast.ElementSet
		}
		if n.Kind == gojaast.PropertyKindMethod && n.Static == false && keyName(n.Key) == "constructor" {
			kind = cast.ElementConstructor
		}
		return &cast.ClassElement{
			Key:      c.key(n.Key),
			Computed: n.Computed,
			Static:   n.Static,
			Kind:     kind,
			Function: c.function(n.Body),
		}
	case *gojaast.FieldDefinition:
		return &cast.ClassElement{
			Key:      c.key(n.Key),
			Computed: n.Computed,
			Static:   n.Static,
			Kind:     cast.ElementField,
			Value:    c.expr(n.Initializer),
		}
	default:
		return &cast.ClassElement{Kind: cast.ElementField}
	}
}

func (c *converter) key(in gojaast.Expression) cast.Expr { return c.expr(in) }

func keyName(in gojaast.Expression) string {
	if id, ok := in.(*gojaast.Identifier); ok {
		return string(id.Name)
	}
	return ""
}

func (c *converter) expr(in gojaast.Expression) cast.Expr {
	switch n := in.(type) {
	case nil:
		return nil
	case *gojaast.Identifier:
		return &cast.Identifier{Name: string(n.Name)}
	case *gojaast.ThisExpression:
		return &cast.ThisExpression{}
	case *gojaast.SuperExpression:
		return &cast.SuperExpression{}
	case *gojaast.NullLiteral:
		return &cast.NullLiteral{}
	case *gojaast.BooleanLiteral:
		return &cast.BooleanLiteral{Value: n.Value}
	case *gojaast.NumberLiteral:
		return &cast.NumberLiteral{Raw: n.Literal}
	case *gojaast.StringLiteral:
		return &cast.StringLiteral{Value: string(n.Value), Raw: n.Literal}
	case *gojaast.RegExpLiteral:
		return &cast.RegExpLiteral{Pattern: n.Pattern, Flags: n.Flags}
	case *gojaast.ArrayLiteral:
		out := &cast.ArrayLiteral{}
		for _, e := range n.Value {
			out.Elements = append(out.Elements, c.expr(e))
		}
		return out
	case *gojaast.ObjectLiteral:
		out := &cast.ObjectLiteral{}
		for _, p := range n.Value {
			out.Properties = append(out.Properties, c.property(p))
		}
		return out
	case *gojaast.FunctionLiteral:
		fn := c.function(n)
		fn.IsArrow = false
		return fn
	case *gojaast.ArrowFunctionLiteral:
		fn := &cast.FunctionLiteral{
			Params:      c.params(n.ParameterList),
			IsArrow:     true,
			IsAsync:     n.Async,
		}
		if body, ok := n.Body.(*gojaast.BlockStatement); ok {
			fn.Body = c.block(body)
		} else if e, ok := n.Body.(gojaast.Expression); ok {
			fn.ExpressionBody = c.expr(e)
		}
		return fn
	case *gojaast.ClassLiteral:
		return c.class(n)
	case *gojaast.SequenceExpression:
		out := &cast.SequenceExpression{}
		for _, e := range n.Sequence {
			out.Expressions = append(out.Expressions, c.expr(e))
		}
		return out
	case *gojaast.AssignExpression:
		return &cast.AssignExpression{Operator: n.Operator.String(), Left: c.expr(n.Left), Right: c.expr(n.Right)}
	case *gojaast.BinaryExpression:
		if isLogical(n.Operator) {
			return &cast.LogicalExpression{Operator: n.Operator.String(), Left: c.expr(n.Left), Right: c.expr(n.Right)}
		}
		return &cast.BinaryExpression{Operator: n.Operator.String(), Left: c.expr(n.Left), Right: c.expr(n.Right)}
	case *gojaast.UnaryExpression:
		return &cast.UnaryExpression{Operator: n.Operator.String(), Operand: c.expr(n.Operand), Postfix: n.Postfix}
	case *gojaast.ConditionalExpression:
		return &cast.ConditionalExpression{Test: c.expr(n.Test), Consequent: c.expr(n.Consequent), Alternate: c.expr(n.Alternate)}
	case *gojaast.CallExpression:
		out := &cast.CallExpression{Callee: c.expr(n.Callee)}
		for _, a := range n.ArgumentList {
			out.Arguments = append(out.Arguments, c.expr(a))
		}
		return out
	case *gojaast.NewExpression:
		out := &cast.NewExpression{Callee: c.expr(n.Callee)}
		for _, a := range n.ArgumentList {
			out.Arguments = append(out.Arguments, c.expr(a))
		}
		return out
	case *gojaast.DotExpression:
		return &cast.MemberExpression{Object: c.expr(n.Left), Property: &cast.Identifier{Name: string(n.Identifier.Name)}}
	case *gojaast.BracketExpression:
		return &cast.MemberExpression{Object: c.expr(n.Left), Property: c.expr(n.Member), Computed: true}
	case *gojaast.SpreadExpression:
		return &cast.SpreadElement{Argument: c.expr(n.Expression)}
	default:
		return nil
	}
}

func (c *converter) property(in gojaast.Property) *cast.Property {
	switch p := in.(type) {
	case *gojaast.PropertyKeyed:
		kind := cast.PropertyInit
		switch p.Kind {
		case gojaast.PropertyKindGet:
			kind = cast.PropertyGet
		case gojaast.PropertyKindSet:
			kind = cast.PropertySet
		case gojaast.PropertyKindMethod:
			kind = cast.PropertyMethod
		}
		return &cast.Property{Key: c.expr(p.Key), Computed: p.Computed, Kind: kind, Value: c.expr(p.Value)}
	default:
		return &cast.Property{}
	}
}

func isLogical(t token.Token) bool {
	return t == token.LOGICAL_AND || t == token.LOGICAL_OR || t == token.COALESCE
}
