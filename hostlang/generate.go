// Copyright 2014 The Go Authors. All rights reserved.
// Use of this source code is governed by a BSD-style
// license that can be found in the LICENSE file.

package hostlang

import (
	"fmt"
	"strings"

	cast "github.com/mikesamuel/comehere/ast"
)

// Generate renders prog as host-language source text. There is no
// third-party printer for this tree shape, so output formatting
// (indentation, semicolon placement) is hand-rolled, not configurable —
// callers that want re-formatted output are expected to pipe it through
// the host toolchain's own formatter.
func Generate(prog *cast.Program) string {
	p := &printer{}
	for _, s := range prog.Body {
		p.stmt(s)
	}
	return p.buf.String()
}

// GenerateExpr renders a single expression the same way Generate renders
// a whole program, with no trailing statement punctuation. It exists so
// a caller can recover an expression's surface text after the tree has
// already been parsed, e.g. to echo back what a captured assignment's
// right-hand side looked like in the original source.
func GenerateExpr(e cast.Expr) string {
	p := &printer{}
	return p.expr(e)
}

type printer struct {
	buf    strings.Builder
	indent int
}

func (p *printer) line(format string, args ...interface{}) {
	p.buf.WriteString(strings.Repeat("  ", p.indent))
	fmt.Fprintf(&p.buf, format, args...)
	p.buf.WriteByte('\n')
}

func (p *printer) raw(s string) { p.buf.WriteString(s) }

func (p *printer) stmt(s cast.Stmt) {
	switch n := s.(type) {
	case nil:
		return
	case *cast.BlockStatement:
		p.line("{")
		p.indent++
		for _, c := range n.Body {
			p.stmt(c)
		}
		p.indent--
		p.line("}")
	case *cast.ExpressionStatement:
		p.line("%s;", p.expr(n.Expression))
	case *cast.EmptyStatement:
		p.line(";")
	case *cast.VariableStatement:
		parts := make([]string, 0, len(n.List))
		for _, b := range n.List {
			if b.Initializer != nil {
				parts = append(parts, fmt.Sprintf("%s = %s", p.expr(b.Target), p.expr(b.Initializer)))
			} else {
				parts = append(parts, p.expr(b.Target))
			}
		}
		p.line("%s %s;", n.Kind, strings.Join(parts, ", "))
	case *cast.IfStatement:
		p.line("if (%s)", p.expr(n.Test))
		p.stmt(n.Consequent)
		if n.Alternate != nil {
			p.line("else")
			p.stmt(n.Alternate)
		}
	case *cast.ForStatement:
		p.line("for (%s; %s; %s)", p.forInit(n.Init), p.exprOrEmpty(n.Test), p.exprOrEmpty(n.Update))
		p.stmt(n.Body)
	case *cast.ForInStatement:
		p.line("for (%s in %s)", p.forInit(n.Into), p.expr(n.Source))
		p.stmt(n.Body)
	case *cast.ForOfStatement:
		p.line("for (%s of %s)", p.forInit(n.Into), p.expr(n.Source))
		p.stmt(n.Body)
	case *cast.WhileStatement:
		p.line("while (%s)", p.expr(n.Test))
		p.stmt(n.Body)
	case *cast.DoWhileStatement:
		p.line("do")
		p.stmt(n.Body)
		p.line("while (%s);", p.expr(n.Test))
	case *cast.BreakStatement:
		if n.Label != "" {
			p.line("break %s;", n.Label)
		} else {
			p.line("break;")
		}
	case *cast.ContinueStatement:
		if n.Label != "" {
			p.line("continue %s;", n.Label)
		} else {
			p.line("continue;")
		}
	case *cast.ReturnStatement:
		if n.Argument != nil {
			p.line("return %s;", p.expr(n.Argument))
		} else {
			p.line("return;")
		}
	case *cast.ThrowStatement:
		p.line("throw %s;", p.expr(n.Argument))
	case *cast.TryStatement:
		p.line("try")
		p.stmt(n.Body)
		if n.Catch != nil {
			if n.Catch.Parameter != nil {
				p.line("catch (%s)", p.expr(n.Catch.Parameter))
			} else {
				p.line("catch")
			}
			p.stmt(n.Catch.Body)
		}
		if n.Finally != nil {
			p.line("finally")
			p.stmt(n.Finally)
		}
	case *cast.SwitchStatement:
		p.line("switch (%s) {", p.expr(n.Discriminant))
		p.indent++
		for _, c := range n.Cases {
			if c.Test != nil {
				p.line("case %s:", p.expr(c.Test))
			} else {
				p.line("default:")
			}
			p.indent++
			for _, cs := range c.Consequent {
				p.stmt(cs)
			}
			p.indent--
		}
		p.indent--
		p.line("}")
	case *cast.LabelledStatement:
		p.line("%s:", n.Label)
		p.stmt(n.Statement)
	case *cast.WithStatement:
		p.line("with (%s)", p.expr(n.Object))
		p.stmt(n.Body)
	case *cast.FunctionDeclaration:
		p.functionHeader(n.Function, true)
	case *cast.ClassDeclaration:
		p.classBody(n.Class)
	default:
		p.line("/* unsupported statement %T */", n)
	}
}

func (p *printer) forInit(s cast.Stmt) string {
	switch n := s.(type) {
	case nil:
		return ""
	case *cast.VariableStatement:
		parts := make([]string, 0, len(n.List))
		for _, b := range n.List {
			if b.Initializer != nil {
				parts = append(parts, fmt.Sprintf("%s = %s", p.expr(b.Target), p.expr(b.Initializer)))
			} else {
				parts = append(parts, p.expr(b.Target))
			}
		}
		return fmt.Sprintf("%s %s", n.Kind, strings.Join(parts, ", "))
	case *cast.ExpressionStatement:
		return p.expr(n.Expression)
	default:
		return ""
	}
}

func (p *printer) exprOrEmpty(e cast.Expr) string {
	if e == nil {
		return ""
	}
	return p.expr(e)
}

func (p *printer) functionHeader(fn *cast.FunctionLiteral, topLevel bool) {
	star := ""
	if fn.IsGenerator {
		star = "*"
	}
	async := ""
	if fn.IsAsync {
		async = "async "
	}
	p.line("%sfunction%s %s(%s) {", async, star, fn.Name, p.params(fn.Params))
	p.indent++
	if fn.Body != nil {
		for _, s := range fn.Body.Body {
			p.stmt(s)
		}
	}
	p.indent--
	p.line("}")
}

func (p *printer) params(params []*cast.Parameter) string {
	parts := make([]string, 0, len(params))
	for _, prm := range params {
		s := p.expr(prm.Target)
		if prm.Rest {
			s = "..." + s
		} else if prm.Default != nil {
			s = fmt.Sprintf("%s = %s", s, p.expr(prm.Default))
		}
		parts = append(parts, s)
	}
	return strings.Join(parts, ", ")
}

func (p *printer) classBody(cl *cast.ClassLiteral) {
	heritage := ""
	if cl.SuperClass != nil {
		heritage = " extends " + p.expr(cl.SuperClass)
	}
	p.line("class %s%s {", cl.Name, heritage)
	p.indent++
	for _, el := range cl.Body {
		p.classElement(el)
	}
	p.indent--
	p.line("}")
}

func (p *printer) classElement(el *cast.ClassElement) {
	static := ""
	if el.Static {
		static = "static "
	}
	key := p.expr(el.Key)
	if el.Computed {
		key = "[" + key + "]"
	}
	switch el.Kind {
	case cast.ElementField:
		if el.Value != nil {
			p.line("%s%s = %s;", static, key, p.expr(el.Value))
		} else {
			p.line("%s%s;", static, key)
		}
	case cast.ElementGet:
		p.methodLine(static+"get "+key, el.Function)
	case cast.ElementSet:
		p.methodLine(static+"set "+key, el.Function)
	default:
		star := ""
		if el.Function != nil && el.Function.IsGenerator {
			star = "*"
		}
		p.methodLine(static+star+key, el.Function)
	}
}

func (p *printer) methodLine(head string, fn *cast.FunctionLiteral) {
	p.line("%s(%s) {", head, p.params(fn.Params))
	p.indent++
	if fn.Body != nil {
		for _, s := range fn.Body.Body {
			p.stmt(s)
		}
	}
	p.indent--
	p.line("}")
}

func (p *printer) expr(e cast.Expr) string {
	switch n := e.(type) {
	case nil:
		return ""
	case *cast.Identifier:
		return n.Name
	case *cast.ThisExpression:
		return "this"
	case *cast.SuperExpression:
		return "super"
	case *cast.NullLiteral:
		return "null"
	case *cast.BooleanLiteral:
		if n.Value {
			return "true"
		}
		return "false"
	case *cast.NumberLiteral:
		return n.Raw
	case *cast.StringLiteral:
		return n.Raw
	case *cast.RegExpLiteral:
		return "/" + n.Pattern + "/" + n.Flags
	case *cast.ArrayLiteral:
		parts := make([]string, 0, len(n.Elements))
		for _, el := range n.Elements {
			parts = append(parts, p.exprOrEmpty(el))
		}
		return "[" + strings.Join(parts, ", ") + "]"
	case *cast.ObjectLiteral:
		parts := make([]string, 0, len(n.Properties))
		for _, prop := range n.Properties {
			parts = append(parts, p.propertyString(prop))
		}
		return "{" + strings.Join(parts, ", ") + "}"
	case *cast.SpreadElement:
		return "..." + p.expr(n.Argument)
	case *cast.FunctionLiteral:
		return p.functionExprString(n)
	case *cast.ClassLiteral:
		return p.classExprString(n)
	case *cast.SequenceExpression:
		parts := make([]string, 0, len(n.Expressions))
		for _, e := range n.Expressions {
			parts = append(parts, p.expr(e))
		}
		return strings.Join(parts, ", ")
	case *cast.AssignExpression:
		return fmt.Sprintf("(%s %s %s)", p.expr(n.Left), n.Operator, p.expr(n.Right))
	case *cast.BinaryExpression:
		return fmt.Sprintf("(%s %s %s)", p.expr(n.Left), n.Operator, p.expr(n.Right))
	case *cast.LogicalExpression:
		return fmt.Sprintf("(%s %s %s)", p.expr(n.Left), n.Operator, p.expr(n.Right))
	case *cast.UnaryExpression:
		if n.Postfix {
			return fmt.Sprintf("(%s%s)", p.expr(n.Operand), n.Operator)
		}
		return fmt.Sprintf("(%s%s)", n.Operator, p.expr(n.Operand))
	case *cast.ConditionalExpression:
		return fmt.Sprintf("(%s ? %s : %s)", p.expr(n.Test), p.expr(n.Consequent), p.expr(n.Alternate))
	case *cast.CallExpression:
		return fmt.Sprintf("%s(%s)", p.expr(n.Callee), p.exprList(n.Arguments))
	case *cast.NewExpression:
		return fmt.Sprintf("new %s(%s)", p.expr(n.Callee), p.exprList(n.Arguments))
	case *cast.MemberExpression:
		if n.Computed {
			return fmt.Sprintf("%s[%s]", p.expr(n.Object), p.expr(n.Property))
		}
		return fmt.Sprintf("%s.%s", p.expr(n.Object), p.expr(n.Property))
	default:
		return fmt.Sprintf("/* unsupported expr %T */", n)
	}
}

func (p *printer) exprList(list []cast.Expr) string {
	parts := make([]string, 0, len(list))
	for _, e := range list {
		parts = append(parts, p.expr(e))
	}
	return strings.Join(parts, ", ")
}

func (p *printer) propertyString(prop *cast.Property) string {
	key := p.expr(prop.Key)
	if prop.Computed {
		key = "[" + key + "]"
	}
	switch prop.Kind {
	case cast.PropertyGet:
		return fmt.Sprintf("get %s() %s", key, p.functionBodyString(prop.Value.(*cast.FunctionLiteral)))
	case cast.PropertySet:
		fn := prop.Value.(*cast.FunctionLiteral)
		return fmt.Sprintf("set %s(%s) %s", key, p.params(fn.Params), p.functionBodyString(fn))
	case cast.PropertyMethod:
		fn := prop.Value.(*cast.FunctionLiteral)
		return fmt.Sprintf("%s(%s) %s", key, p.params(fn.Params), p.functionBodyString(fn))
	default:
		return fmt.Sprintf("%s: %s", key, p.expr(prop.Value))
	}
}

func (p *printer) functionBodyString(fn *cast.FunctionLiteral) string {
	inner := &printer{indent: 0}
	if fn.Body != nil {
		for _, s := range fn.Body.Body {
			inner.stmt(s)
		}
	}
	return "{\n" + inner.buf.String() + "}"
}

func (p *printer) functionExprString(fn *cast.FunctionLiteral) string {
	if fn.IsArrow {
		body := ""
		if fn.ExpressionBody != nil {
			body = p.expr(fn.ExpressionBody)
		} else {
			body = p.functionBodyString(fn)
		}
		async := ""
		if fn.IsAsync {
			async = "async "
		}
		return fmt.Sprintf("%s(%s) => %s", async, p.params(fn.Params), body)
	}
	star := ""
	if fn.IsGenerator {
		star = "*"
	}
	return fmt.Sprintf("function%s %s(%s) %s", star, fn.Name, p.params(fn.Params), p.functionBodyString(fn))
}

func (p *printer) classExprString(cl *cast.ClassLiteral) string {
	inner := &printer{}
	inner.classBody(cl)
	return strings.TrimRight(inner.buf.String(), "\n")
}
