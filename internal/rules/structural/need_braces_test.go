package structural

import (
	"testing"

	"github.com/stretchr/testify/require"

	"github.com/donaldgifford/stylefix/internal/config"
	"github.com/donaldgifford/stylefix/internal/testutil"
)

func needBraces(t *testing.T, props map[string]string) *NeedBraces {
	t.Helper()
	f, err := NewNeedBraces(config.Module{Props: props})
	require.NoError(t, err)
	return f
}

func TestNeedBraces(t *testing.T) {
	tests := []struct {
		name   string
		props  map[string]string
		before string
		after  string
	}{
		{
			name: "add braces",
			before: `
				public class A {
				    int n;
				    void foo() {
				        while (true);
				        if (n == 1) return;
				        else return;
				        while (true) return;
				        do this.notify(); while (true);
				        for (int i = 0; ; ) this.notify();
				    }
				}
			`,
			after: `
				public class A {
				    int n;
				    void foo() {
				        while (true) {
				        }
				        if (n == 1) {
				            return;
				        }
				        else {
				            return;
				        }
				        while (true) {
				            return;
				        }
				        do {
				            this.notify();
				        } while (true);
				        for (int i = 0; ; ) {
				            this.notify();
				        }
				    }
				}
			`,
		},
		{
			name: "body on its own line",
			before: `
				class A {
				    void f(java.util.List<String> xs) {
				        for (String x : xs)
				            System.out.println(x);
				    }
				}
			`,
			after: `
				class A {
				    void f(java.util.List<String> xs) {
				        for (String x : xs) {
				            System.out.println(x);
				        }
				    }
				}
			`,
		},
		{
			name: "nested ifs",
			before: `
				class A {
				    boolean f(int n) {
				        if (n > 0)
				            if (n > 1) return true;
				        return false;
				    }
				}
			`,
			after: `
				class A {
				    boolean f(int n) {
				        if (n > 0) {
				            if (n > 1) {
				                return true;
				            }
				        }
				        return false;
				    }
				}
			`,
		},
		{
			name: "brace else after block",
			before: `
				class A {
				    int f(int n) {
				        if (n > 0) {
				            n++;
				        } else n--;
				        return n;
				    }
				}
			`,
			after: `
				class A {
				    int f(int n) {
				        if (n > 0) {
				            n++;
				        } else {
				            n--;
				        }
				        return n;
				    }
				}
			`,
		},
		{
			name:  "case labels when selected",
			props: map[string]string{"tokens": "LITERAL_CASE,LITERAL_DEFAULT"},
			before: `
				class A {
				    void f(int n) {
				        switch (n) {
				            case 1: n++; break;
				            default:
				                n = 0;
				                break;
				        }
				    }
				}
			`,
			after: `
				class A {
				    void f(int n) {
				        switch (n) {
				            case 1: { n++; break; }
				            default: {
				                n = 0;
				                break;
				            }
				        }
				    }
				}
			`,
		},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			testutil.AssertFix(t, needBraces(t, tt.props), tt.before, tt.after)
		})
	}
}

func TestNeedBracesScenario(t *testing.T) {
	testutil.AssertFix(t, needBraces(t, nil), `
		class A {
		    boolean f(int n) {
		        if (n == 1) return true;
		        return false;
		    }
		}
	`, `
		class A {
		    boolean f(int n) {
		        if (n == 1) {
		            return true;
		        }
		        return false;
		    }
		}
	`)
}

func TestNeedBracesUnchanged(t *testing.T) {
	tests := []struct {
		name  string
		props map[string]string
		src   string
	}{
		{
			name:  "allow empty loop body",
			props: map[string]string{"allowEmptyLoopBody": "true"},
			src: `
				public class A {
				    {
				        while (true);
				        for(int i = 0; i < 10; i++);
				    }
				}
			`,
		},
		{
			name:  "allow single line statement",
			props: map[string]string{"allowSingleLineStatement": "true"},
			src: `
				public class A {
				    int n;
				    void foo() {
				        if (n == 1) return;
				        while (true) return;
				        do this.notify(); while (true);
				        for (int i = 0; ; ) this.notify();
				    }
				}
			`,
		},
		{
			name: "allow single line statement in switch",
			props: map[string]string{
				"allowSingleLineStatement": "true",
				"tokens":                   "LITERAL_CASE,LITERAL_DEFAULT",
			},
			src: `
				public class A {
				    int counter;
				    {
				        int n = 1;
				        switch (n) {
				          case 1: counter++; break;
				          case 6: counter += 10; break;
				          default: counter = 100; break;
				        }
				    }
				}
			`,
		},
		{
			name:  "case declaring a local used by a later case",
			props: map[string]string{"tokens": "LITERAL_CASE,LITERAL_DEFAULT"},
			src: `
				class A {
				    int f(int x) {
				        switch (x) {
				            case 1: int y = 1; break;
				            case 2: y = 2; return y;
				        }
				        return 0;
				    }
				}
			`,
		},
		{
			name: "case labels not selected by default",
			src: `
				class A {
				    void f(int n) {
				        switch (n) {
				            case 1: n++; break;
				        }
				    }
				}
			`,
		},
		{
			name: "else if is not split",
			src: `
				public class A {
				    int n;
				    {
				        if (n == 1) {
				        }
				        else if (n == 2) {
				        }
				        else {
				        }
				    }
				}
			`,
		},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			testutil.AssertUnchanged(t, needBraces(t, tt.props), tt.src)
		})
	}
}
