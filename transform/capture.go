// Copyright 2014 The Go Authors. All rights reserved.
// Use of this source code is governed by a BSD-style
// license that can be found in the LICENSE file.

package transform

import (
	"fmt"
	"sort"
	"strconv"
	"strings"

	cast "github.com/mikesamuel/comehere/ast"
	"github.com/mikesamuel/comehere/hostlang"
)

// capturePrefix marks a two-sigil capture variable: `$$count` captures
// the value last assigned to it, visible after a driven run completes,
// without the author having to declare it. A single `$` is left alone,
// since the host language's own ecosystem conventionally uses it as an
// ordinary identifier prefix.
const capturePrefix = "$$"

func isCaptureName(name string) bool {
	return strings.HasPrefix(name, capturePrefix) && len(name) > len(capturePrefix)
}

func captureBaseName(name string) string { return name[len(capturePrefix):] }

// CapturePass rewrites every `$$name` reference so that it's backed by
// a module- or function-scoped two-element array, `[text, value]`,
// declared once at the narrowest scope that dominates every use of that
// name. A plain read becomes `name[1]`; a plain assignment becomes a
// sequence that also stores the assignment's right-hand side surface
// text into `name[0]`, so a caller logging the array afterward can print
// `"expr = value"` without having to re-derive expr from anything.
type CapturePass struct{}

func (*CapturePass) Name() string { return "capture-variable-pass" }

func (*CapturePass) Run(ctx *Context) error {
	occurrences := map[string][]*cast.Identifier{}
	cast.Inspect(ctx.Program, func(n cast.Node) bool {
		if id, ok := n.(*cast.Identifier); ok && isCaptureName(id.Name) {
			occurrences[id.Name] = append(occurrences[id.Name], id)
		}
		return true
	})
	if len(occurrences) == 0 {
		return nil
	}

	names := make([]string, 0, len(occurrences))
	for name := range occurrences {
		names = append(names, name)
	}
	sort.Strings(names)

	boxNames := map[string]string{}
	scopes := map[string]cast.Node{}
	for _, name := range names {
		boxNames[name] = ctx.Pool.Fresh("capture_" + captureBaseName(name))
		scopes[name] = commonScope(ctx.Program, occurrences[name])
	}

	rewriter := &captureRewriter{boxNames: boxNames}
	for _, s := range ctx.Program.Body {
		rewriter.stmt(s)
	}

	for _, name := range names {
		declareBox(scopes[name], boxNames[name])
	}

	ctx.reattach()
	return nil
}

// commonScope returns the narrowest function (or the module, if no
// single function contains them all) that encloses every identifier in
// ids, by intersecting each occurrence's root-to-leaf function chain.
func commonScope(prog *cast.Program, ids []*cast.Identifier) cast.Node {
	var common []cast.Node
	for i, id := range ids {
		chain := scopeChain(prog, id)
		if i == 0 {
			common = chain
			continue
		}
		common = commonPrefix(common, chain)
	}
	if len(common) == 0 {
		return prog
	}
	return common[len(common)-1]
}

func scopeChain(prog *cast.Program, n cast.Node) []cast.Node {
	var fns []*cast.FunctionLiteral
	for p := n.Parent(); p != nil; p = p.Parent() {
		if fn, ok := p.(*cast.FunctionLiteral); ok {
			fns = append(fns, fn)
		}
	}
	chain := make([]cast.Node, 0, len(fns)+1)
	chain = append(chain, cast.Node(prog))
	for i := len(fns) - 1; i >= 0; i-- {
		chain = append(chain, fns[i])
	}
	return chain
}

func commonPrefix(a, b []cast.Node) []cast.Node {
	n := len(a)
	if len(b) < n {
		n = len(b)
	}
	i := 0
	for i < n && a[i] == b[i] {
		i++
	}
	return a[:i]
}

func declareBox(scope cast.Node, boxName string) {
	decl := &cast.VariableStatement{
		Kind: cast.VarConst,
		List: []*cast.Binding{{
			Target: &cast.Identifier{Name: boxName},
			Initializer: &cast.ArrayLiteral{Elements: []cast.Expr{
				&cast.Identifier{Name: "undefined"},
				&cast.Identifier{Name: "undefined"},
			}},
		}},
	}
	switch s := scope.(type) {
	case *cast.Program:
		s.Body = append([]cast.Stmt{decl}, s.Body...)
	case *cast.FunctionLiteral:
		s.Body.Body = append([]cast.Stmt{decl}, s.Body.Body...)
	}
}

func indexExpr(boxName string, idx int) cast.Expr {
	return &cast.MemberExpression{
		Object:   &cast.Identifier{Name: boxName},
		Property: &cast.NumberLiteral{Raw: strconv.Itoa(idx)},
		Computed: true,
	}
}

// captureRewriter walks the whole tree replacing `$$name` reads with
// `box[1]` and `$$name = expr` writes with `(box[0] = "expr's source
// text", box[1] = expr)`. It duplicates the shape of ast.Children rather
// than reusing it, because unlike a read-only traversal it needs to
// tell apart a value position (rewrite it) from a name position (leave
// it alone) at exactly the same set of nodes ast.Children treats
// identically.
type captureRewriter struct {
	boxNames map[string]string
}

func (r *captureRewriter) isCapture(name string) (string, bool) {
	boxName, ok := r.boxNames[name]
	return boxName, ok
}

func (r *captureRewriter) stmt(s cast.Stmt) {
	switch st := s.(type) {
	case *cast.BlockStatement:
		for _, c := range st.Body {
			r.stmt(c)
		}
	case *cast.ExpressionStatement:
		st.Expression = r.expr(st.Expression)
	case *cast.VariableStatement:
		for _, b := range st.List {
			if b.Initializer != nil {
				b.Initializer = r.expr(b.Initializer)
			}
		}
	case *cast.IfStatement:
		st.Test = r.expr(st.Test)
		r.stmt(st.Consequent)
		if st.Alternate != nil {
			r.stmt(st.Alternate)
		}
	case *cast.ForStatement:
		if st.Init != nil {
			r.stmt(st.Init)
		}
		if st.Test != nil {
			st.Test = r.expr(st.Test)
		}
		if st.Update != nil {
			st.Update = r.expr(st.Update)
		}
		r.stmt(st.Body)
	case *cast.ForInStatement:
		st.Source = r.expr(st.Source)
		r.stmt(st.Body)
	case *cast.ForOfStatement:
		st.Source = r.expr(st.Source)
		r.stmt(st.Body)
	case *cast.WhileStatement:
		st.Test = r.expr(st.Test)
		r.stmt(st.Body)
	case *cast.DoWhileStatement:
		r.stmt(st.Body)
		st.Test = r.expr(st.Test)
	case *cast.ReturnStatement:
		if st.Argument != nil {
			st.Argument = r.expr(st.Argument)
		}
	case *cast.ThrowStatement:
		st.Argument = r.expr(st.Argument)
	case *cast.TryStatement:
		r.stmt(st.Body)
		if st.Catch != nil {
			r.stmt(st.Catch.Body)
		}
		if st.Finally != nil {
			r.stmt(st.Finally)
		}
	case *cast.SwitchStatement:
		st.Discriminant = r.expr(st.Discriminant)
		for _, c := range st.Cases {
			if c.Test != nil {
				c.Test = r.expr(c.Test)
			}
			for _, cs := range c.Consequent {
				r.stmt(cs)
			}
		}
	case *cast.LabelledStatement:
		r.stmt(st.Statement)
	case *cast.WithStatement:
		st.Object = r.expr(st.Object)
		r.stmt(st.Body)
	case *cast.FunctionDeclaration:
		r.function(st.Function)
	case *cast.ClassDeclaration:
		r.class(st.Class)
	}
}

func (r *captureRewriter) function(fn *cast.FunctionLiteral) {
	for _, p := range fn.Params {
		if p.Default != nil {
			p.Default = r.expr(p.Default)
		}
	}
	if fn.Body != nil {
		r.stmt(fn.Body)
	}
}

func (r *captureRewriter) class(cl *cast.ClassLiteral) {
	if cl.SuperClass != nil {
		cl.SuperClass = r.expr(cl.SuperClass)
	}
	for _, el := range cl.Body {
		if el.Computed {
			el.Key = r.expr(el.Key)
		}
		if el.Function != nil {
			r.function(el.Function)
		}
		if el.Value != nil {
			el.Value = r.expr(el.Value)
		}
	}
}

func (r *captureRewriter) expr(e cast.Expr) cast.Expr {
	if e == nil {
		return nil
	}
	switch x := e.(type) {
	case *cast.Identifier:
		if boxName, ok := r.isCapture(x.Name); ok {
			return indexExpr(boxName, 1)
		}
		return x
	case *cast.ThisExpression, *cast.SuperExpression,
		*cast.NullLiteral, *cast.BooleanLiteral, *cast.NumberLiteral, *cast.StringLiteral, *cast.RegExpLiteral:
		return x
	case *cast.ArrayLiteral:
		for i, el := range x.Elements {
			if el != nil {
				x.Elements[i] = r.expr(el)
			}
		}
		return x
	case *cast.ObjectLiteral:
		for _, p := range x.Properties {
			if p.Computed {
				p.Key = r.expr(p.Key)
			}
			if p.Value != nil {
				p.Value = r.expr(p.Value)
			}
		}
		return x
	case *cast.SpreadElement:
		x.Argument = r.expr(x.Argument)
		return x
	case *cast.FunctionLiteral:
		r.function(x)
		return x
	case *cast.ClassLiteral:
		r.class(x)
		return x
	case *cast.SequenceExpression:
		for i, el := range x.Expressions {
			x.Expressions[i] = r.expr(el)
		}
		return x
	case *cast.AssignExpression:
		if id, isIdent := x.Left.(*cast.Identifier); isIdent && x.Operator == "=" {
			if boxName, ok := r.isCapture(id.Name); ok {
				text := hostlang.GenerateExpr(x.Right)
				x.Right = r.expr(x.Right)
				return &cast.SequenceExpression{Expressions: []cast.Expr{
					&cast.AssignExpression{Operator: "=", Left: indexExpr(boxName, 0), Right: &cast.StringLiteral{Value: text, Raw: fmt.Sprintf("%q", text)}},
					&cast.AssignExpression{Operator: "=", Left: indexExpr(boxName, 1), Right: x.Right},
				}}
			}
		}
		x.Right = r.expr(x.Right)
		x.Left = r.expr(x.Left)
		return x
	case *cast.BinaryExpression:
		x.Left, x.Right = r.expr(x.Left), r.expr(x.Right)
		return x
	case *cast.LogicalExpression:
		x.Left, x.Right = r.expr(x.Left), r.expr(x.Right)
		return x
	case *cast.UnaryExpression:
		x.Operand = r.expr(x.Operand)
		return x
	case *cast.ConditionalExpression:
		x.Test, x.Consequent, x.Alternate = r.expr(x.Test), r.expr(x.Consequent), r.expr(x.Alternate)
		return x
	case *cast.CallExpression:
		x.Callee = r.expr(x.Callee)
		for i, a := range x.Arguments {
			x.Arguments[i] = r.expr(a)
		}
		return x
	case *cast.NewExpression:
		x.Callee = r.expr(x.Callee)
		for i, a := range x.Arguments {
			x.Arguments[i] = r.expr(a)
		}
		return x
	case *cast.MemberExpression:
		x.Object = r.expr(x.Object)
		if x.Computed {
			x.Property = r.expr(x.Property)
		}
		return x
	}
	return e
}
