package whitespace

import (
	"testing"

	"github.com/stretchr/testify/require"

	"github.com/donaldgifford/stylefix/internal/config"
	"github.com/donaldgifford/stylefix/internal/testutil"
)

func TestMethodParamPad(t *testing.T) {
	unpadded := `
		public class A extends B {
		    A() {
		        super();
		    }

		    void foo(int n) {
		        A a = new A();
		        foo(0);
		    }
		}

		class B {}

		enum E {
		    E1()
		}
	`
	padded := `
		public class A extends B {
		    A () {
		        super ();
		    }

		    void foo (int n) {
		        A a = new A ();
		        foo (0);
		    }
		}

		class B {}

		enum E {
		    E1 ()
		}
	`

	tests := []struct {
		name   string
		props  map[string]string
		before string
		after  string
	}{
		{name: "nospace", before: padded, after: unpadded},
		{name: "space", props: map[string]string{"option": "space"}, before: unpadded, after: padded},
		{
			name:  "selected tokens only",
			props: map[string]string{"tokens": "METHOD_CALL"},
			before: `
				class A {
				    void foo (int n) {
				        foo (0);
				    }
				}
			`,
			after: `
				class A {
				    void foo (int n) {
				        foo(0);
				    }
				}
			`,
		},
		{
			name: "line break collapsed",
			before: `
				class A {
				    void foo
				        (int n) {}
				}
			`,
			after: `
				class A {
				    void foo(int n) {}
				}
			`,
		},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			f, err := NewMethodParamPad(config.Module{Props: tt.props})
			require.NoError(t, err)
			testutil.AssertFix(t, f, tt.before, tt.after)
		})
	}
}

func TestMethodParamPadAllowLineBreaks(t *testing.T) {
	f, err := NewMethodParamPad(config.Module{Props: map[string]string{"allowLineBreaks": "true"}})
	require.NoError(t, err)
	testutil.AssertUnchanged(t, f, `
		public class A extends B {
		    void foo
		        (int n) {}
		}
	`)
}

func TestMethodParamPadKeepsComments(t *testing.T) {
	f, err := NewMethodParamPad(config.Module{})
	require.NoError(t, err)
	testutil.AssertUnchanged(t, f, `
		class A {
		    void foo /* none */ (int n) {}
		}
	`)
}

func TestNewMethodParamPadRejectsUnsupportedToken(t *testing.T) {
	_, err := NewMethodParamPad(config.Module{Props: map[string]string{"tokens": "LITERAL_IF"}})
	var cerr *config.Error
	require.ErrorAs(t, err, &cerr)
	require.Equal(t, "tokens", cerr.Property)
}
