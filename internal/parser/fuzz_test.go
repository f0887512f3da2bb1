package parser

import "testing"

func FuzzParse(f *testing.F) {
	// Seed with representative Java constructs.
	seeds := []string{
		"",
		"// comment\n",
		"package a;\nimport java.util.*;\nclass A {}\n",
		"class A { int a, b[] = {1, 2,}; }\n",
		"class A { void f() { if (a) b(); else { c(); } } }\n",
		"class A { void f() { for (;;) {} for (int i : xs) ; } }\n",
		"class A { void f() { try (var r = open()) {} catch (A | B e) {} finally {} } }\n",
		"class A { void f() { switch (x) { case 1: { break; } default: } } }\n",
		"class A<T extends Comparable<T>> { <U> U g(java.util.Map<String, java.util.List<U>> m) { return null; } }\n",
		"class A { Runnable r = () -> {}; java.util.function.Function<String, Integer> f = String::length; }\n",
		"enum E { X(1) { }, Y; E() {} E(int i) {} }\n",
		"interface I { default void f() {} }\n",
		"@interface X {}\n",
		"class A { String s = \"\"\"\n  text\n  \"\"\"; char c = '\\''; }\n",
		"class A { /* unterminated\n",
		"class A { int x = (int) -y >> 2 >>> 3; }\n",
	}

	for _, s := range seeds {
		f.Add(s)
	}

	f.Fuzz(func(t *testing.T, input string) {
		// The parser should never panic on any input, and a parsed tree
		// should survive cloning unchanged.
		cu, err := Parse(input)
		if err != nil {
			return
		}
		if !Equal(cu, Clone(cu)) {
			t.Errorf("clone differs from the parsed tree for %q", input)
		}
	})
}
