package structural

import (
	"testing"

	"github.com/stretchr/testify/require"

	"github.com/donaldgifford/stylefix/internal/config"
	"github.com/donaldgifford/stylefix/internal/testutil"
)

func TestEqualsAvoidsNull(t *testing.T) {
	f, err := NewEqualsAvoidsNull(config.Module{})
	require.NoError(t, err)

	tests := []struct {
		name   string
		before string
		after  string
	}{
		{
			name: "invert conditional",
			before: `
				public class A {
				    {
				        String s = null;
				        if(s.equals("test")) {}
				        if(s.equalsIgnoreCase("test")) {}
				    }
				}
			`,
			after: `
				public class A {
				    {
				        String s = null;
				        if("test".equals(s)) {}
				        if("test".equalsIgnoreCase(s)) {}
				    }
				}
			`,
		},
		{
			name: "remove null check and parentheses",
			before: `
				public class A {
				    {
				        String s = null;
				        if((s != null && s.equals("test"))) {}
				        if(s != null && s.equals("test")) {}
				        if(null != s && s.equals("test")) {}
				    }
				}
			`,
			after: `
				public class A {
				    {
				        String s = null;
				        if("test".equals(s)) {}
				        if("test".equals(s)) {}
				        if("test".equals(s)) {}
				    }
				}
			`,
		},
		{
			name: "null check inside a longer chain",
			before: `
				class A {
				    boolean f(boolean ready, String s) {
				        return ready && s != null && s.equals("x");
				    }
				}
			`,
			after: `
				class A {
				    boolean f(boolean ready, String s) {
				        return ready && "x".equals(s);
				    }
				}
			`,
		},
		{
			name: "qualified receiver",
			before: `
				class A {
				    String name;
				    boolean f() {
				        return this.name.equals("x");
				    }
				}
			`,
			after: `
				class A {
				    String name;
				    boolean f() {
				        return "x".equals(this.name);
				    }
				}
			`,
		},
		{
			name: "null check kept for a receiver with side effects",
			before: `
				class A {
				    boolean f(java.util.Iterator<String> it) {
				        return it.next() != null && it.next().equals("x");
				    }
				}
			`,
			after: `
				class A {
				    boolean f(java.util.Iterator<String> it) {
				        return it.next() != null && "x".equals(it.next());
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

func TestEqualsAvoidsNullUnchanged(t *testing.T) {
	tests := []struct {
		name  string
		props map[string]string
		src   string
	}{
		{
			name: "literal already first",
			src: `
				class A {
				    boolean f(String s) {
				        return "x".equals(s);
				    }
				}
			`,
		},
		{
			name: "argument is not a literal",
			src: `
				class A {
				    boolean f(String s, String t) {
				        return s != null && s.equals(t);
				    }
				}
			`,
		},
		{
			name: "null check on another variable",
			src: `
				class A {
				    boolean f(String s, String t) {
				        return t != null && "x".equals(s);
				    }
				}
			`,
		},
		{
			name:  "ignore case ignored",
			props: map[string]string{"ignoreEqualsIgnoreCase": "true"},
			src: `
				class A {
				    boolean f(String s) {
				        return s.equalsIgnoreCase("x");
				    }
				}
			`,
		},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			f, err := NewEqualsAvoidsNull(config.Module{Props: tt.props})
			require.NoError(t, err)
			testutil.AssertUnchanged(t, f, tt.src)
		})
	}
}

func TestEqualsAvoidsNullScenario(t *testing.T) {
	f, _ := NewEqualsAvoidsNull(config.Module{})
	testutil.AssertFix(t, f, `
		class A {
		    boolean f(String s) {
		        return (s != null && s.equals("test"));
		    }
		}
	`, `
		class A {
		    boolean f(String s) {
		        return "test".equals(s);
		    }
		}
	`)
}
