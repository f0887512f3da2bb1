package whitespace

import (
	"testing"

	"github.com/stretchr/testify/require"

	"github.com/donaldgifford/stylefix/internal/config"
	"github.com/donaldgifford/stylefix/internal/testutil"
)

func rightCurly(t *testing.T, props map[string]string) *RightCurly {
	t.Helper()
	f, err := NewRightCurly(config.Module{Props: props})
	require.NoError(t, err)
	return f
}

func TestRightCurly(t *testing.T) {
	tests := []struct {
		name   string
		props  map[string]string
		before string
		after  string
	}{
		{
			name: "alone",
			props: map[string]string{
				"option": "alone",
				"tokens": "LITERAL_TRY,LITERAL_CATCH,LITERAL_FINALLY,LITERAL_IF,LITERAL_ELSE,METHOD_DEF",
			},
			before: `
				class A {
				    {
				        if(1 == 2) {} else if(2 == 3) {} else {}

				        try {} catch(Throwable t) {} finally {}

				        { int n = 1; }
				    }

				    public int foo() { return 1; }
				}
			`,
			after: `
				class A {
				    {
				        if(1 == 2) {
				        }
				        else if(2 == 3) {
				        }
				        else {
				        }

				        try {
				        }
				        catch(Throwable t) {
				        }
				        finally {
				        }

				        {
				            int n = 1;
				        }
				    }

				    public int foo() {
				        return 1;
				    }
				}
			`,
		},
		{
			name:  "alone or single line",
			props: map[string]string{"option": "alone_or_singleline"},
			before: `
				class A {
				    {
				        if(1 == 2) {} else if(2 == 3) {} else {}

				        try {} catch(Throwable t) {} finally {}

				        {
				            int n = 1; }
				    }

				    public int foo() { return 1; }
				}
			`,
			after: `
				class A {
				    {
				        if(1 == 2) {}
				        else if(2 == 3) {}
				        else {}

				        try {}
				        catch(Throwable t) {}
				        finally {}

				        {
				            int n = 1;
				        }
				    }

				    public int foo() { return 1; }
				}
			`,
		},
		{
			name:  "same",
			props: map[string]string{"option": "same"},
			before: `
				class A {
				    {
				        if(1 == 2) {} else if(2 == 3) {}
				        else {}

				        try {} catch(java.io.IOException e) {}
				        catch(Throwable t) {}
				        finally {}

				        {
				            int n = 1; }
				    }

				    public int foo() { return 1; }
				}
			`,
			after: `
				class A {
				    {
				        if(1 == 2) {} else if(2 == 3) {} else {}

				        try {} catch(java.io.IOException e) {} catch(Throwable t) {} finally {}

				        {
				            int n = 1;
				        }
				    }

				    public int foo() { return 1; }
				}
			`,
		},
		{
			name:  "alone with nested single line blocks",
			props: map[string]string{"option": "alone"},
			before: `
				class A {
				    void f(boolean b) {
				        { if (b) { f(b); } }
				    }
				}
			`,
			after: `
				class A {
				    void f(boolean b) {
				        {
				            if (b) {
				                f(b);
				            }
				        }
				    }
				}
			`,
		},
		{
			name:  "do while",
			props: map[string]string{"tokens": "LITERAL_DO"},
			before: `
				class A {
				    void f(int n) {
				        do {
				            n--; }
				        while (n > 0);
				    }
				}
			`,
			after: `
				class A {
				    void f(int n) {
				        do {
				            n--;
				        } while (n > 0);
				    }
				}
			`,
		},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			testutil.AssertFix(t, rightCurly(t, tt.props), tt.before, tt.after)
		})
	}
}

func TestRightCurlyUnchanged(t *testing.T) {
	tests := []struct {
		name  string
		props map[string]string
		src   string
	}{
		{
			name: "comment before else",
			src: `
				class A {
				    void f(boolean b) {
				        if (b) {
				            f(b);
				        }
				        // otherwise
				        else {
				            f(!b);
				        }
				    }
				}
			`,
		},
		{
			name: "if without braces",
			src: `
				class A {
				    void f(boolean b) {
				        if (b) f(b);
				        else f(!b);
				    }
				}
			`,
		},
		{
			name:  "loops not selected",
			props: map[string]string{"option": "alone"},
			src: `
				class A {
				    void f(int n) {
				        while (n > 0) { n--; }
				    }
				}
			`,
		},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			testutil.AssertUnchanged(t, rightCurly(t, tt.props), tt.src)
		})
	}
}
