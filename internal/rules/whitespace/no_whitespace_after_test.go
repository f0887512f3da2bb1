package whitespace

import (
	"testing"

	"github.com/stretchr/testify/require"

	"github.com/donaldgifford/stylefix/internal/config"
	"github.com/donaldgifford/stylefix/internal/testutil"
)

func noWhitespaceAfter(t *testing.T, props map[string]string) *NoWhitespaceAfter {
	t.Helper()
	f, err := NewNoWhitespaceAfter(config.Module{Props: props})
	require.NoError(t, err)
	return f
}

func TestNoWhitespaceAfter(t *testing.T) {
	f := noWhitespaceAfter(t, map[string]string{
		"tokens": "ARRAY_INIT,AT,INC,DEC,UNARY_MINUS,UNARY_PLUS,BNOT,LNOT,DOT,TYPECAST," +
			"ARRAY_DECLARATOR,INDEX_OP,LITERAL_SYNCHRONIZED,METHOD_REF",
	})
	testutil.AssertFix(t, f, `
		public class A {
		    int m;

		    {
		        int [] [] a;
		        int [] n = { 1, 2};
		        int [] p = {1, 2 };
		        m = n [0];
		        ++ m;
		        -- m;
		        long o = - m;
		        o = + m;
		        o = ~ m;
		        boolean b;
		        b = ! b;
		        m = (int) o;
		        new A().
		            m = 2;
		        a().
		            a();
		        var f = Function:: identity;
		        synchronized (this) {
		            m = - -m;
		        }
		    }

		    @ Override
		    public boolean equals(Object o) {}

		    int [] [] foo() { return null; }

		    A a() { return this; }
		}
	`, `
		public class A {
		    int m;

		    {
		        int[][] a;
		        int[] n = {1, 2};
		        int[] p = {1, 2};
		        m = n[0];
		        ++m;
		        --m;
		        long o = -m;
		        o = +m;
		        o = ~m;
		        boolean b;
		        b = !b;
		        m = (int)o;
		        new A().
		            m = 2;
		        a().
		            a();
		        var f = Function::identity;
		        synchronized(this) {
		            m = - -m;
		        }
		    }

		    @Override
		    public boolean equals(Object o) {}

		    int[][] foo() { return null; }

		    A a() { return this; }
		}
	`)
}

func TestNoWhitespaceAfterDisallowLineBreaks(t *testing.T) {
	f := noWhitespaceAfter(t, map[string]string{"tokens": "DOT", "allowLineBreaks": "false"})
	testutil.AssertFix(t, f, `
		public class A {
		    int m;

		    {
		        new A().
		            m = 2;
		        a().
		            a();
		    }
		}
	`, `
		public class A {
		    int m;

		    {
		        new A().m = 2;
		        a().a();
		    }
		}
	`)
}

func TestNoWhitespaceAfterUnchanged(t *testing.T) {
	tests := []struct {
		name string
		src  string
	}{
		{
			name: "annotation array values",
			src: `
				@SuppressWarnings(value = {
				    "all",
				    "unchecked"
				})
				public class A {
				}
			`,
		},
		{
			name: "multi-line array initializer",
			src: `
				public class A {
				    int[] ns = {
				        0,
				        1
				    };
				}
			`,
		},
		{
			name: "cast not selected by default",
			src: `
				public class A {
				    int f(long o) {
				        return (int) o;
				    }
				}
			`,
		},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			testutil.AssertUnchanged(t, noWhitespaceAfter(t, nil), tt.src)
		})
	}
}
