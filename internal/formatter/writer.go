// Package formatter provides the printer, the fixer interface and the rewrite
// pipeline.
package formatter

import (
	"fmt"
	"strings"

	"github.com/donaldgifford/stylefix/internal/parser"
)

// Write serializes a syntax tree back into Java source.
//
// Every token is preceded by the Space recorded for it, so a tree returned
// by parser.Parse prints to exactly its source text. Fixers that build new
// nodes choose their spaces explicitly.
func Write(n parser.Node) string {
	var b strings.Builder
	writeNode(&b, n)
	return b.String()
}

func writeNode(b *strings.Builder, n parser.Node) {
	if n == nil {
		return
	}
	b.WriteString(string(parser.Prefix(n)))

	switch x := n.(type) {
	case *parser.CompilationUnit:
		if x.Package != nil {
			writeNode(b, x.Package)
		}
		for _, imp := range x.Imports {
			writeNode(b, imp)
		}
		for _, t := range x.Types {
			writeNode(b, t)
		}
		b.WriteString(string(x.EOF))

	case *parser.PackageDecl:
		b.WriteString("package")
		writeNode(b, x.Name)
		writeToken(b, x.Semi, ";")

	case *parser.Import:
		b.WriteString("import")
		if x.Static {
			writeToken(b, x.StaticPre, "static")
		}
		writeNode(b, x.Name)
		writeToken(b, x.Semi, ";")

	case *parser.Modifier:
		b.WriteString(x.Keyword)

	case *parser.Annotation:
		b.WriteByte('@')
		writeNode(b, x.Name)
		if x.Args != nil {
			writeNode(b, x.Args)
		}

	case *parser.Args:
		writeList(b, "(", x.Elems, ",", ")")

	case *parser.TypeArgs:
		writeList(b, "<", x.Elems, ",", ">")

	case *parser.TypeParams:
		writeList(b, "<", x.Elems, ",", ">")

	case *parser.TypeParam:
		writeNode(b, x.Name)
		if len(x.Bounds) > 0 {
			writeToken(b, x.ExtendsPre, "extends")
			writeElems(b, x.Bounds, "&")
		}

	case *parser.ClassDecl:
		writeNodes(b, x.Leading)
		writeToken(b, x.KindPre, x.Kind)
		writeNode(b, x.Name)
		if x.TypeParams != nil {
			writeNode(b, x.TypeParams)
		}
		writeClause(b, x.Extends)
		writeClause(b, x.Implements)
		writeNode(b, x.Body)

	case *parser.EnumValueSet:
		writeElems(b, x.Values, ",")

	case *parser.EnumValue:
		writeNodes(b, x.Leading)
		writeNode(b, x.Name)
		if x.Args != nil {
			writeNode(b, x.Args)
		}
		if x.Body != nil {
			writeNode(b, x.Body)
		}

	case *parser.MethodDecl:
		writeNodes(b, x.Leading)
		if x.TypeParams != nil {
			writeNode(b, x.TypeParams)
		}
		writeNode(b, x.ReturnType)
		writeNode(b, x.Name)
		writeNode(b, x.Params)
		writeClause(b, x.Throws)
		if x.Body != nil {
			writeNode(b, x.Body)
		}

	case *parser.VarDecls:
		writeNodes(b, x.Leading)
		writeNode(b, x.Type)
		if x.Varargs {
			writeToken(b, x.VarargsPre, "...")
		}
		writeElems(b, x.Vars, ",")

	case *parser.NamedVar:
		writeNode(b, x.Name)
		writeDims(b, x.Dims)
		if x.Init != nil {
			writeToken(b, x.EqPre, "=")
			writeNode(b, x.Init)
		}

	case *parser.Block:
		if x.Static {
			b.WriteString("static")
			b.WriteString(string(x.StaticAfter))
		}
		b.WriteByte('{')
		writeStmts(b, x.Stmts)
		writeToken(b, x.End, "}")

	case *parser.ControlParens:
		writeList(b, "(", []parser.Elem{x.Tree}, "", ")")

	case *parser.If:
		b.WriteString("if")
		writeNode(b, x.Cond)
		writeStmt(b, x.Then)
		if x.Else != nil {
			writeNode(b, x.Else)
		}

	case *parser.Else:
		b.WriteString("else")
		writeStmt(b, x.Body)

	case *parser.WhileLoop:
		b.WriteString("while")
		writeNode(b, x.Cond)
		writeStmt(b, x.Body)

	case *parser.DoWhile:
		b.WriteString("do")
		writeStmt(b, x.Body)
		writeToken(b, x.WhilePre, "while")
		writeNode(b, x.Cond)

	case *parser.ForLoop:
		b.WriteString("for")
		writeNode(b, x.Control)
		writeStmt(b, x.Body)

	case *parser.ForControl:
		b.WriteByte('(')
		writeElems(b, x.Init, ",")
		b.WriteByte(';')
		writeElems(b, []parser.Elem{x.Cond}, "")
		b.WriteByte(';')
		writeElems(b, x.Update, ",")
		b.WriteByte(')')

	case *parser.ForEachLoop:
		b.WriteString("for")
		writeNode(b, x.Control)
		writeStmt(b, x.Body)

	case *parser.ForEachControl:
		b.WriteByte('(')
		writeElems(b, []parser.Elem{x.Var}, "")
		b.WriteByte(':')
		writeElems(b, []parser.Elem{x.Iter}, "")
		b.WriteByte(')')

	case *parser.Switch:
		b.WriteString("switch")
		writeNode(b, x.Selector)
		writeNode(b, x.Body)

	case *parser.Case:
		if x.Default {
			b.WriteString("default")
		} else {
			b.WriteString("case")
			writeElems(b, x.Labels, ",")
		}
		writeToken(b, x.ColonPre, ":")
		writeStmts(b, x.Stmts)

	case *parser.Try:
		b.WriteString("try")
		if x.Resources != nil {
			writeNode(b, x.Resources)
		}
		writeNode(b, x.Body)
		for _, c := range x.Catches {
			writeNode(b, c)
		}
		if x.Finally != nil {
			writeNode(b, x.Finally)
		}

	case *parser.Resources:
		writeList(b, "(", x.Elems, ";", ")")

	case *parser.Catch:
		b.WriteString("catch")
		writeNode(b, x.Param)
		writeNode(b, x.Body)

	case *parser.Finally:
		b.WriteString("finally")
		writeNode(b, x.Body)

	case *parser.Synchronized:
		b.WriteString("synchronized")
		writeNode(b, x.Lock)
		writeNode(b, x.Body)

	case *parser.Return:
		b.WriteString("return")
		writeNode(b, x.Expr)

	case *parser.Throw:
		b.WriteString("throw")
		writeNode(b, x.Expr)

	case *parser.Break:
		b.WriteString("break")
		if x.Label != "" {
			writeToken(b, x.LabelPre, x.Label)
		}

	case *parser.Continue:
		b.WriteString("continue")
		if x.Label != "" {
			writeToken(b, x.LabelPre, x.Label)
		}

	case *parser.Labeled:
		b.WriteString(x.Label)
		writeToken(b, x.ColonPre, ":")
		writeNode(b, x.Stmt)

	case *parser.Empty:

	case *parser.Ident:
		b.WriteString(x.Name)

	case *parser.Literal:
		b.WriteString(x.Text)

	case *parser.FieldAccess:
		writeNode(b, x.Target)
		writeToken(b, x.DotPre, ".")
		writeNode(b, x.Name)

	case *parser.MethodInvocation:
		if x.Target != nil {
			writeNode(b, x.Target)
			writeToken(b, x.DotPre, ".")
		}
		if x.TypeArgs != nil {
			writeNode(b, x.TypeArgs)
		}
		writeNode(b, x.Name)
		writeNode(b, x.Args)

	case *parser.NewClass:
		b.WriteString("new")
		writeNode(b, x.Clazz)
		writeNode(b, x.Args)
		if x.Body != nil {
			writeNode(b, x.Body)
		}

	case *parser.NewArray:
		b.WriteString("new")
		writeNode(b, x.Type)
		for _, d := range x.Dims {
			writeToken(b, d.Pre, "[")
			writeNode(b, d.Size)
			writeToken(b, d.After, "]")
		}
		if x.Init != nil {
			writeNode(b, x.Init)
		}

	case *parser.ArrayInit:
		writeList(b, "{", x.Elems, ",", "}")

	case *parser.ArrayAccess:
		writeNode(b, x.Indexed)
		writeToken(b, x.IndexPre, "")
		writeList(b, "[", []parser.Elem{x.Index}, "", "]")

	case *parser.Unary:
		if x.Postfix {
			writeNode(b, x.Expr)
			writeToken(b, x.OpPre, x.Op)
		} else {
			b.WriteString(x.Op)
			writeNode(b, x.Expr)
		}

	case *parser.Binary:
		writeNode(b, x.Left)
		writeToken(b, x.OpPre, x.Op)
		writeNode(b, x.Right)

	case *parser.Assignment:
		writeNode(b, x.Var)
		writeToken(b, x.OpPre, x.Op)
		writeNode(b, x.Value)

	case *parser.Ternary:
		writeNode(b, x.Cond)
		writeToken(b, x.QPre, "?")
		writeNode(b, x.Then)
		writeToken(b, x.ElsePre, ":")
		writeNode(b, x.Else)

	case *parser.InstanceOf:
		writeNode(b, x.Expr)
		writeToken(b, x.OpPre, "instanceof")
		writeNode(b, x.Type)

	case *parser.TypeCast:
		writeList(b, "(", []parser.Elem{x.Type}, "", ")")
		writeNode(b, x.Expr)

	case *parser.Parens:
		writeList(b, "(", []parser.Elem{x.Tree}, "", ")")

	case *parser.LambdaParams:
		if x.Parenthesized {
			writeList(b, "(", x.Elems, ",", ")")
		} else {
			writeElems(b, x.Elems, ",")
		}

	case *parser.Lambda:
		writeNode(b, x.Params)
		writeToken(b, x.ArrowPre, "->")
		writeNode(b, x.Body)

	case *parser.MemberRef:
		writeNode(b, x.Target)
		writeToken(b, x.ColonPre, "::")
		writeNode(b, x.Name)

	case *parser.ParamType:
		writeNode(b, x.Clazz)
		writeNode(b, x.Args)

	case *parser.ArrayType:
		writeNode(b, x.Elem)
		writeDims(b, []parser.Dim{x.Dim})

	case *parser.Wildcard:
		b.WriteByte('?')
		if x.Bound != "" {
			writeToken(b, x.BoundPre, x.Bound)
			writeNode(b, x.Type)
		}

	case *parser.MultiCatch:
		writeElems(b, x.Alts, "|")

	default:
		panic(fmt.Sprintf("formatter: cannot write %T", n))
	}
}

func writeToken(b *strings.Builder, pre parser.Space, tok string) {
	b.WriteString(string(pre))
	b.WriteString(tok)
}

func writeNodes(b *strings.Builder, ns []parser.Node) {
	for _, n := range ns {
		writeNode(b, n)
	}
}

// writeElems writes elements separated by sep; each element's After space
// precedes the separator or the closing token that follows it.
func writeElems(b *strings.Builder, es []parser.Elem, sep string) {
	for i, e := range es {
		if i > 0 {
			b.WriteString(sep)
		}
		writeNode(b, e.Node)
		b.WriteString(string(e.After))
	}
}

func writeList(b *strings.Builder, open string, es []parser.Elem, sep, closing string) {
	b.WriteString(open)
	writeElems(b, es, sep)
	b.WriteString(closing)
}

// writeStmt writes a statement in statement position, adding its semicolon.
func writeStmt(b *strings.Builder, e parser.Elem) {
	writeNode(b, e.Node)
	b.WriteString(string(e.After))
	if parser.NeedsSemicolon(e.Node) {
		b.WriteByte(';')
	}
}

func writeStmts(b *strings.Builder, es []parser.Elem) {
	for _, e := range es {
		writeStmt(b, e)
	}
}

func writeDims(b *strings.Builder, ds []parser.Dim) {
	for _, d := range ds {
		writeToken(b, d.Pre, "[")
		writeToken(b, d.Inner, "]")
	}
}

func writeClause(b *strings.Builder, c *parser.Clause) {
	if c == nil {
		return
	}
	writeToken(b, c.Pre, c.Keyword)
	writeElems(b, c.Types, ",")
}
