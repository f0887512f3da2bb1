package structural

import (
	"testing"

	"github.com/donaldgifford/stylefix/internal/config"
	"github.com/donaldgifford/stylefix/internal/testutil"
)

func TestFinalLocalVariable(t *testing.T) {
	f, _ := NewFinalLocalVariable(config.Module{})

	testutil.AssertFix(t, f, `
		class A {
		    int n;

		    int f(int p) {
		        int a = 0;
		        int b = 1, c = 2;
		        int d;
		        int e = 3;
		        int g = 4;
		        @SuppressWarnings("unused") String s = "s";
		        d = a + b;
		        e++;
		        g *= c;
		        switch (p) {
		            case 1:
		                String t = s + d;
		                return t.length();
		        }
		        return d + e + g;
		    }
		}
	`, `
		class A {
		    int n;

		    int f(int p) {
		        final int a = 0;
		        final int b = 1, c = 2;
		        int d;
		        int e = 3;
		        int g = 4;
		        final @SuppressWarnings("unused") String s = "s";
		        d = a + b;
		        e++;
		        g *= c;
		        switch (p) {
		            case 1:
		                final String t = s + d;
		                return t.length();
		        }
		        return d + e + g;
		    }
		}
	`)
}

func TestFinalLocalVariableUnchanged(t *testing.T) {
	f, _ := NewFinalLocalVariable(config.Module{})
	testutil.AssertUnchanged(t, f, `
		class A {
		    int n = 1;
		    static int m;

		    void f(int p) {
		        final int a = 0;
		        for (int i = 0; i < 10; i++) {
		            m += i;
		        }
		        for (String s : new String[0]) {
		            System.out.println(s);
		        }
		        int x = 1;
		        x--;
		    }
		}
	`)
}
