package structural

import (
	"testing"

	"github.com/donaldgifford/stylefix/internal/config"
	"github.com/donaldgifford/stylefix/internal/testutil"
)

func TestHideUtilityClassConstructor(t *testing.T) {
	f, _ := NewHideUtilityClassConstructor(config.Module{})

	tests := []struct {
		name   string
		before string
		after  string
	}{
		{
			name: "public constructor made private",
			before: `
				public class A {
				    public A() {
				    }

				    public static void utility() {
				    }
				}
			`,
			after: `
				public class A {
				    private A() {
				    }

				    public static void utility() {
				    }
				}
			`,
		},
		{
			name: "implicit constructor declared",
			before: `
				public final class Strings {
				    static final String EMPTY = "";

				    /** Reports emptiness. */
				    static boolean isEmpty(String s) {
				        return s == null || s.isEmpty();
				    }
				}
			`,
			after: `
				public final class Strings {
				    static final String EMPTY = "";

				    private Strings() {
				    }

				    /** Reports emptiness. */
				    static boolean isEmpty(String s) {
				        return s == null || s.isEmpty();
				    }
				}
			`,
		},
		{
			name: "one-line constructor",
			before: `
				class Util {
				    public Util() {}
				    static int twice(int n) { return n * 2; }
				}
			`,
			after: `
				class Util {
				    private Util() {}
				    static int twice(int n) { return n * 2; }
				}
			`,
		},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			testutil.AssertFix(t, f, tt.before, tt.after)
		})
	}
}

func TestHideUtilityClassConstructorUnchanged(t *testing.T) {
	f, _ := NewHideUtilityClassConstructor(config.Module{})

	tests := []struct {
		name string
		src  string
	}{
		{
			name: "instance field",
			src: `
				class A {
				    int n;
				    static void f() {}
				}
			`,
		},
		{
			name: "instance method",
			src: `
				class A {
				    static int n;
				    void f() {}
				}
			`,
		},
		{
			name: "subclass",
			src: `
				class A extends B {
				    static void f() {}
				}
			`,
		},
		{
			name: "package private constructor",
			src: `
				class A {
				    A() {}
				    static void f() {}
				}
			`,
		},
		{
			name: "protected constructor",
			src: `
				class A {
				    protected A() {}
				    static void f() {}
				}
			`,
		},
		{
			name: "interface",
			src: `
				interface A {
				    static void f() {}
				}
			`,
		},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			testutil.AssertUnchanged(t, f, tt.src)
		})
	}
}
