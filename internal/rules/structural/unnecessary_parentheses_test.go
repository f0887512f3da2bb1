package structural

import (
	"testing"

	"github.com/donaldgifford/stylefix/internal/config"
	"github.com/donaldgifford/stylefix/internal/testutil"
)

func TestUnnecessaryParentheses(t *testing.T) {
	f, _ := NewUnnecessaryParentheses(config.Module{})

	tests := []struct {
		name   string
		before string
		after  string
	}{
		{
			name: "simple unwrapping",
			before: `
				import java.util.*;
				public class A {
				    int square(int a, int b) {
				        int square = (a * b);

				        int sumOfSquares = 0;
				        for(int i = (0); i < 10; i++) {
				          sumOfSquares += (square(i * i, i));
				        }
				        double num = (10.0);

				        List<String> list = Arrays.asList("a1", "b1", "c1");
				        list.stream()
				          .filter((s) -> s.startsWith("c"))
				          .forEach(System.out::println);

				        return (square);
				    }
				}
			`,
			after: `
				import java.util.*;
				public class A {
				    int square(int a, int b) {
				        int square = a * b;

				        int sumOfSquares = 0;
				        for(int i = 0; i < 10; i++) {
				          sumOfSquares += square(i * i, i);
				        }
				        double num = 10.0;

				        List<String> list = Arrays.asList("a1", "b1", "c1");
				        list.stream()
				          .filter(s -> s.startsWith("c"))
				          .forEach(System.out::println);

				        return square;
				    }
				}
			`,
		},
		{
			name: "tighter operand and keyword spacing",
			before: `
				class A {
				    int f(int a, int b, int c) {
				        if ((a > b)) {
				            return(a + (b * c));
				        }
				        return ((a));
				    }
				}
			`,
			after: `
				class A {
				    int f(int a, int b, int c) {
				        if (a > b) {
				            return a + b * c;
				        }
				        return a;
				    }
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

func TestUnnecessaryParenthesesKeepsRequired(t *testing.T) {
	f, _ := NewUnnecessaryParentheses(config.Module{})
	testutil.AssertUnchanged(t, f, `
		class A {
		    int f(int a, int b, int c, boolean p, boolean q) {
		        int x = a * (b + c);
		        int y = (a + b) * c;
		        int z = a - (b - c);
		        int w = a + (-b);
		        boolean r = p && (q || p);
		        java.util.function.BiFunction<Integer, Integer, Integer> add = (m, n) -> m + n;
		        Object o = (Runnable) () -> {};
		        return (a > b ? a : b) + x + y + z + w;
		    }
		}
	`)
}
