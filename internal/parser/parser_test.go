package parser

import (
	"errors"
	"fmt"
	"testing"
)

func mustParse(t *testing.T, src string) *CompilationUnit {
	t.Helper()
	cu, err := Parse(src)
	if err != nil {
		t.Fatalf("Parse(%q): %v", src, err)
	}
	return cu
}

func mustExpr(t *testing.T, src string) Node {
	t.Helper()
	n, err := ParseExpression(src)
	if err != nil {
		t.Fatalf("ParseExpression(%q): %v", src, err)
	}
	return n
}

func TestParseEmpty(t *testing.T) {
	cu := mustParse(t, "")
	if cu.Package != nil || len(cu.Imports) != 0 || len(cu.Types) != 0 {
		t.Errorf("expected an empty compilation unit, got %+v", cu)
	}
}

func TestParseCommentOnly(t *testing.T) {
	cu := mustParse(t, "// nothing here\n")
	if len(cu.Types) != 0 {
		t.Fatalf("expected no types, got %d", len(cu.Types))
	}
	if cu.EOF != "// nothing here\n" {
		t.Errorf("EOF space: got %q", cu.EOF)
	}
}

func TestParseCompilationUnit(t *testing.T) {
	cu := mustParse(t, `package a.b;

import java.util.List;
import static java.lang.Math.max;

public class A<T> extends B implements C, D {
}
`)

	if cu.Package == nil {
		t.Fatal("missing package declaration")
	}
	if fa, ok := cu.Package.Name.(*FieldAccess); !ok || fa.Name.Name != "b" {
		t.Errorf("package name: got %#v", cu.Package.Name)
	}

	if len(cu.Imports) != 2 {
		t.Fatalf("imports: got %d, want 2", len(cu.Imports))
	}
	if cu.Imports[0].Static || !cu.Imports[1].Static {
		t.Errorf("static flags: got %v, %v", cu.Imports[0].Static, cu.Imports[1].Static)
	}

	if len(cu.Types) != 1 {
		t.Fatalf("types: got %d, want 1", len(cu.Types))
	}
	cd, ok := cu.Types[0].(*ClassDecl)
	if !ok {
		t.Fatalf("type: got %T", cu.Types[0])
	}
	if cd.Kind != "class" || cd.Name.Name != "A" {
		t.Errorf("class: got %s %s", cd.Kind, cd.Name.Name)
	}
	if cd.Prefix != "\n\n" {
		t.Errorf("class prefix: got %q, want the blank line before the modifiers", cd.Prefix)
	}
	if len(cd.Leading) != 1 {
		t.Fatalf("leading: got %d, want 1", len(cd.Leading))
	}
	if m, ok := cd.Leading[0].(*Modifier); !ok || m.Keyword != "public" || m.Prefix != "" {
		t.Errorf("modifier: got %#v", cd.Leading[0])
	}
	if cd.TypeParams == nil || len(cd.TypeParams.Elems) != 1 {
		t.Errorf("type parameters: got %#v", cd.TypeParams)
	}
	if cd.Extends == nil || len(cd.Extends.Types) != 1 {
		t.Errorf("extends: got %#v", cd.Extends)
	}
	if cd.Implements == nil || len(cd.Implements.Types) != 2 {
		t.Errorf("implements: got %#v", cd.Implements)
	}
}

func TestParseMembers(t *testing.T) {
	cu := mustParse(t, `class A {
    private int n = 1, m;
    static { n = 2; }
    { m = 3; }
    A(int n) { this.n = n; }
    <T> T id(T t) { return t; }
    abstract void f() throws Exception;
    enum E { X, Y; }
}
`)
	body := cu.Types[0].(*ClassDecl).Body
	if len(body.Stmts) != 7 {
		t.Fatalf("members: got %d, want 7", len(body.Stmts))
	}

	if v := body.Stmts[0].Node.(*VarDecls); len(v.Vars) != 2 || v.Vars[0].Node.(*NamedVar).Init == nil {
		t.Errorf("field declaration: got %#v", v)
	}
	if b := body.Stmts[1].Node.(*Block); !b.Static || b.StaticAfter != " " {
		t.Errorf("static initializer: got %#v", b)
	}
	if b := body.Stmts[2].Node.(*Block); b.Static {
		t.Error("instance initializer marked static")
	}
	if m := body.Stmts[3].Node.(*MethodDecl); m.ReturnType != nil || m.Name.Name != "A" {
		t.Errorf("constructor: got %#v", m)
	}
	if m := body.Stmts[4].Node.(*MethodDecl); m.TypeParams == nil || m.Prefix != "\n    " {
		t.Errorf("generic method: got %#v", m)
	}
	if m := body.Stmts[5].Node.(*MethodDecl); m.Body != nil || m.Throws == nil {
		t.Errorf("abstract method: got %#v", m)
	}
	if e := body.Stmts[6].Node.(*ClassDecl); e.Kind != "enum" {
		t.Errorf("nested enum: got %q", e.Kind)
	}
}

func TestParseSyntaxError(t *testing.T) {
	tests := []struct {
		name string
		src  string
	}{
		{"unclosed class", "class A {\n"},
		{"missing semicolon", "class A {\n    int m\n}\n"},
		{"statement at top level", "return 1;\n"},
		{"unterminated string", "class A {\n    String s = \"abc;\n}\n"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			_, err := Parse(tt.src)
			var serr *SyntaxError
			if !errors.As(err, &serr) {
				t.Fatalf("expected a *SyntaxError, got %v", err)
			}
			if serr.Line < 1 || serr.Col < 1 {
				t.Errorf("position: got %d:%d", serr.Line, serr.Col)
			}
		})
	}
}

func TestSyntaxErrorPosition(t *testing.T) {
	_, err := Parse("class A {\n  /* oops\n}\n")
	var serr *SyntaxError
	if !errors.As(err, &serr) {
		t.Fatalf("expected a *SyntaxError, got %v", err)
	}
	if serr.Line != 2 || serr.Col != 3 {
		t.Errorf("position: got %d:%d, want 2:3", serr.Line, serr.Col)
	}
	if got, want := serr.Error(), "2:3: unterminated comment"; got != want {
		t.Errorf("Error(): got %q, want %q", got, want)
	}
}

func TestParseExpression(t *testing.T) {
	tests := []struct {
		src  string
		want string
	}{
		{"a + b * c", "*parser.Binary"},
		{"(String) o", "*parser.TypeCast"},
		{"(a + b)", "*parser.Parens"},
		{"x -> x", "*parser.Lambda"},
		{"(a, b) -> { return a; }", "*parser.Lambda"},
		{"String::valueOf", "*parser.MemberRef"},
		{"a.b().c", "*parser.FieldAccess"},
		{"Collections.<String>emptyList()", "*parser.MethodInvocation"},
		{"new int[] {1, 2}", "*parser.NewArray"},
		{"new java.util.ArrayList<>()", "*parser.NewClass"},
		{"a ? b : c", "*parser.Ternary"},
		{"o instanceof String", "*parser.InstanceOf"},
		{"i++", "*parser.Unary"},
		{"a[0]", "*parser.ArrayAccess"},
		{"x = y += 1", "*parser.Assignment"},
		{"a >> 2", "*parser.Binary"},
		{"null", "*parser.Literal"},
	}

	for _, tt := range tests {
		t.Run(tt.src, func(t *testing.T) {
			if got := typeName(mustExpr(t, tt.src)); got != tt.want {
				t.Errorf("ParseExpression(%q): got %s, want %s", tt.src, got, tt.want)
			}
		})
	}
}

func TestParsePrecedence(t *testing.T) {
	b, ok := mustExpr(t, "a + b * c").(*Binary)
	if !ok || b.Op != "+" {
		t.Fatalf("root: got %#v", b)
	}
	if r, ok := b.Right.(*Binary); !ok || r.Op != "*" {
		t.Errorf("right operand: got %#v", b.Right)
	}

	shift, ok := mustExpr(t, "a >> 2").(*Binary)
	if !ok || shift.Op != ">>" {
		t.Errorf("shift: got %#v", shift)
	}
}

func TestParseNestedTypeArguments(t *testing.T) {
	n, err := ParseStatement("java.util.Map<String, java.util.List<Integer>> m;")
	if err != nil {
		t.Fatal(err)
	}
	v, ok := n.(*VarDecls)
	if !ok {
		t.Fatalf("got %T", n)
	}
	pt, ok := v.Type.(*ParamType)
	if !ok || len(pt.Args.Elems) != 2 {
		t.Fatalf("type: got %#v", v.Type)
	}
	if _, ok := pt.Args.Elems[1].Node.(*ParamType); !ok {
		t.Errorf("second argument: got %T", pt.Args.Elems[1].Node)
	}
}

func TestParseStatement(t *testing.T) {
	tests := []struct {
		src  string
		want string
	}{
		{"if (a) b(); else c();", "*parser.If"},
		{"while (true) {}", "*parser.WhileLoop"},
		{"do x++; while (x < 3);", "*parser.DoWhile"},
		{"for (int i = 0; i < 3; i++) {}", "*parser.ForLoop"},
		{"for (;;) {}", "*parser.ForLoop"},
		{"for (String s : l) {}", "*parser.ForEachLoop"},
		{"switch (x) { case 1: break; default: }", "*parser.Switch"},
		{"try (var r = open()) {} catch (IOException | RuntimeException e) {} finally {}", "*parser.Try"},
		{"synchronized (this) {}", "*parser.Synchronized"},
		{"outer: for (;;) { continue outer; }", "*parser.Labeled"},
		{"throw new IllegalStateException();", "*parser.Throw"},
		{"return;", "*parser.Return"},
		{"final int[] a = {1, 2,};", "*parser.VarDecls"},
		{";", "*parser.Empty"},
		{"f(x);", "*parser.MethodInvocation"},
	}

	for _, tt := range tests {
		t.Run(tt.src, func(t *testing.T) {
			n, err := ParseStatement(tt.src)
			if err != nil {
				t.Fatalf("ParseStatement(%q): %v", tt.src, err)
			}
			if got := typeName(n); got != tt.want {
				t.Errorf("ParseStatement(%q): got %s, want %s", tt.src, got, tt.want)
			}
		})
	}
}

func TestNeedsSemicolon(t *testing.T) {
	tests := []struct {
		src  string
		want bool
	}{
		{"int a;", true},
		{"return 1;", true},
		{"do {} while (a);", true},
		{"a = 1;", true},
		{"l: a++;", true},
		{"l: while (a) {}", false},
		{"if (a) {}", false},
		{"{}", false},
		{"try {} finally {}", false},
	}

	for _, tt := range tests {
		t.Run(tt.src, func(t *testing.T) {
			n, err := ParseStatement(tt.src)
			if err != nil {
				t.Fatal(err)
			}
			if got := NeedsSemicolon(n); got != tt.want {
				t.Errorf("NeedsSemicolon(%q) = %v, want %v", tt.src, got, tt.want)
			}
		})
	}
}

func TestSpace(t *testing.T) {
	tests := []struct {
		name    string
		space   Space
		newline bool
		comment bool
		indent  string
	}{
		{"empty", "", false, false, ""},
		{"blank", "  ", false, false, ""},
		{"indented line", "\n    ", true, false, "    "},
		{"line comment", " // x\n\t", true, true, "\t"},
		{"block comment", " /* x */ ", false, true, ""},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if got := tt.space.HasNewline(); got != tt.newline {
				t.Errorf("HasNewline: got %v", got)
			}
			if got := tt.space.HasComment(); got != tt.comment {
				t.Errorf("HasComment: got %v", got)
			}
			if got := tt.space.Indent(); got != tt.indent {
				t.Errorf("Indent: got %q, want %q", got, tt.indent)
			}
		})
	}
}

func typeName(n Node) string {
	return fmt.Sprintf("%T", n)
}
