package formatter

import (
	"testing"

	"github.com/donaldgifford/stylefix/internal/parser"
)

func TestWriteRoundTrip(t *testing.T) {
	tests := []struct {
		name  string
		input string
	}{
		{
			name:  "empty",
			input: "",
		},
		{
			name:  "comment only",
			input: "// nothing\n",
		},
		{
			name:  "package and imports",
			input: "package a.b ;\n\nimport java.util.* ;\nimport static java.lang.Math.max;\n\nclass A {}\n",
		},
		{
			name:  "no trailing newline",
			input: "class A {}",
		},
		{
			name:  "crlf line endings",
			input: "class A {\r\n    int x;\r\n}\r\n",
		},
		{
			name:  "tab indentation",
			input: "class A {\n\tvoid f() {\n\t\treturn;\n\t}\n}\n",
		},
		{
			name: "comments everywhere",
			input: `/** Doc. */
public /* mod */ final class A /* name */ extends B // trailing
{
    // field
    private int x /* before semi */ ;

    /**
     * Method.
     */
    @Override
    public String toString( /* none */ ) {
        return "A" /* lit */ + x; // end
    }
}
`,
		},
		{
			name: "generics",
			input: `class A < T extends Comparable < T > > implements java.util.function.Supplier<java.util.List<T>> {
    java.util.Map<String, java.util.List<Integer>> m = new java.util.HashMap< >();
    public <U> U id(U u) { return Collections.<U>singletonList(u).get(0); }
    public java.util.List<? extends Number> get() { return null; }
}
`,
		},
		{
			name: "statements",
			input: `class A {
    void f(int... xs) throws Exception {
        if (a) b(); else if (c) { d(); } else e();
        while (true) ;
        do { x++; } while (x < 3) ;
        for (int i = 0, j = 1; i < j; i++, j--) {}
        for ( ; ; ) break;
        for (final String s : list) continue;
        switch (x) { case 1: case 2: { y(); break; } default: }
        try (InputStream in = open(); OutputStream out = create() ;) {
        } catch (IOException | RuntimeException e) {
            throw e;
        } finally {
        }
        synchronized (this) { notify(); }
        label: { break label; }
        int[] a = { 1, 2, }, b[] = new int[3][];
        Object o = (String) x, p = ( java.util.List<String> ) y;
        Runnable r = () -> { }, q = (int z) -> z * 2;
        java.util.function.Function<String, Integer> len = String :: length;
        x = y >> 2 >>> 1;
        boolean z = o instanceof String ? !flag : -x < ~y;
        ;
    }
}
`,
		},
		{
			name: "enums and nested types",
			input: `enum E implements I {
    A(1) {
        @Override void f() {}
    },
    B(2),
    ;

    private final int n;

    E(int n) { this.n = n; }

    static class Inner { static { init(); } { local(); } }

    interface J { default void g() {} }
}
`,
		},
		{
			name: "annotations",
			input: `@SuppressWarnings({"unchecked", "rawtypes"})
@Deprecated
class A {
    @SuppressFBWarnings(
        value = "X",
        justification = "y"
    )
    void f(@Nullable final String s) {}
}
`,
		},
		{
			name:  "text block",
			input: "class A {\n    String s = \"\"\"\n        hello\n        \"\"\";\n    char c = '\\n';\n}\n",
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			cu, err := parser.Parse(tt.input)
			if err != nil {
				t.Fatalf("parse: %v", err)
			}
			if got := Write(cu); got != tt.input {
				t.Errorf("round trip mismatch:\n--- want\n%s\n--- got\n%s", tt.input, got)
			}
		})
	}
}

func TestWriteStatementAndExpression(t *testing.T) {
	tests := []struct {
		name  string
		parse func(string) (parser.Node, error)
		input string
		want  string
	}{
		{"statement", parser.ParseStatement, "if (a) {\n    b();\n}", ""},
		// The terminating semicolon belongs to the enclosing statement list.
		{"declaration", parser.ParseStatement, "final int a = 1, b;", "final int a = 1, b"},
		{"expression", parser.ParseExpression, "a.b(c, d).e[f] + (g ? h : i)", ""},
		{"lambda", parser.ParseExpression, "(x, y) -> x + y", ""},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			n, err := tt.parse(tt.input)
			if err != nil {
				t.Fatalf("parse: %v", err)
			}
			want := tt.want
			if want == "" {
				want = tt.input
			}
			if got := Write(n); got != want {
				t.Errorf("got %q, want %q", got, want)
			}
		})
	}
}

func TestWriteEditedTree(t *testing.T) {
	cu, err := parser.Parse("class A {\n    int x ;\n}\n")
	if err != nil {
		t.Fatal(err)
	}
	out := parser.Rewrite(cu, func(_ *parser.Cursor, n parser.Node) parser.Node {
		if id, ok := n.(*parser.Ident); ok && id.Name == "x" {
			c := parser.Clone(id)
			c.Name = "count"
			return c
		}
		return n
	})

	if got, want := Write(out), "class A {\n    int count ;\n}\n"; got != want {
		t.Errorf("got %q, want %q", got, want)
	}
	if got, want := Write(cu), "class A {\n    int x ;\n}\n"; got != want {
		t.Errorf("input changed: got %q", got)
	}
}
