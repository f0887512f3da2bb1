package structural

import (
	"testing"

	"github.com/stretchr/testify/require"

	"github.com/donaldgifford/stylefix/internal/config"
	"github.com/donaldgifford/stylefix/internal/testutil"
)

func hiddenField(t *testing.T, props map[string]string) *HiddenField {
	t.Helper()
	f, err := NewHiddenField(config.Module{Props: props})
	require.NoError(t, err)
	return f
}

func TestHiddenFieldRenamesAcrossSupertypes(t *testing.T) {
	b := `
		public class B {
		    protected int n2;
		    int n3;
		    private int n4;
		}
	`
	testutil.AssertFix(t, hiddenField(t, nil), `
		public class A extends B {
		    int n;
		    int n1;

		    class C {
		        public void foo(int n) {
		            int n1 = 2;
		        }
		    }

		    static class D {
		        public void foo(int n) {
		        }
		    }
		}
	`, `
		public class A extends B {
		    int n;
		    int n1;

		    class C {
		        public void foo(int n4) {
		            int n5 = 2;
		        }
		    }

		    static class D {
		        public void foo(int n) {
		        }
		    }
		}
	`, b)
}

func TestHiddenField(t *testing.T) {
	tests := []struct {
		name   string
		props  map[string]string
		before string
		after  string
	}{
		{
			name: "references follow the rename",
			before: `
				class A {
				    int count;

				    int twice(int count) {
				        int total = count + count;
				        return total + this.count;
				    }
				}
			`,
			after: `
				class A {
				    int count;

				    int twice(int count1) {
				        int total = count1 + count1;
				        return total + this.count;
				    }
				}
			`,
		},
		{
			name: "lambda parameter",
			before: `
				class A {
				    String s;

				    void f(java.util.List<String> l) {
				        l.forEach(s -> System.out.println(s));
				    }
				}
			`,
			after: `
				class A {
				    String s;

				    void f(java.util.List<String> l) {
				        l.forEach(s1 -> System.out.println(s1));
				    }
				}
			`,
		},
		{
			name:  "setter returning its class still renamed",
			props: map[string]string{"ignoreSetter": "true"},
			before: `
				public class A {
				    int n;

				    public void setN(int n) {
				    }

				    public A setN(int n) {
				        return this;
				    }
				}
			`,
			after: `
				public class A {
				    int n;

				    public void setN(int n) {
				    }

				    public A setN(int n1) {
				        return this;
				    }
				}
			`,
		},
		{
			name: "static field hidden in static method",
			before: `
				class A {
				    static int max;

				    static int clamp(int v) {
				        int max = 10;
				        return v > max ? max : v;
				    }
				}
			`,
			after: `
				class A {
				    static int max;

				    static int clamp(int v) {
				        int max1 = 10;
				        return v > max1 ? max1 : v;
				    }
				}
			`,
		},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			testutil.AssertFix(t, hiddenField(t, tt.props), tt.before, tt.after)
		})
	}
}

func TestHiddenFieldUnchanged(t *testing.T) {
	tests := []struct {
		name  string
		props map[string]string
		src   string
	}{
		{
			name:  "ignore format",
			props: map[string]string{"ignoreFormat": `\w+`},
			src: `
				public class A {
				    int n;

				    public void foo(int n) {
				    }
				}
			`,
		},
		{
			name:  "ignore constructor parameter",
			props: map[string]string{"ignoreConstructorParameter": "true"},
			src: `
				public class A {
				    int n;

				    A(int n) {
				    }
				}
			`,
		},
		{
			name:  "ignore setter that returns its class",
			props: map[string]string{"ignoreSetter": "true", "setterCanReturnItsClass": "true"},
			src: `
				public class A {
				    int n;

				    public A setN(int n) {
				        return this;
				    }
				}
			`,
		},
		{
			name:  "ignore abstract methods",
			props: map[string]string{"ignoreAbstractMethods": "true"},
			src: `
				public abstract class A {
				    int n;

				    public abstract void foo(int n);
				}
			`,
		},
		{
			name: "instance field invisible from static method",
			src: `
				class A {
				    int n;

				    static void foo(int n) {
				    }
				}
			`,
		},
		{
			name: "supertype outside the resolution unit",
			src: `
				class A extends java.util.ArrayList<String> {
				    int n;

				    void foo(int n) {
				    }
				}
			`,
		},
		{
			name:  "lambda token not selected",
			props: map[string]string{"tokens": "VARIABLE_DEF, PARAMETER_DEF"},
			src: `
				class A {
				    String s;

				    void f(java.util.List<String> l) {
				        l.forEach(s -> System.out.println(s));
				    }
				}
			`,
		},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			testutil.AssertUnchanged(t, hiddenField(t, tt.props), tt.src)
		})
	}
}

func TestNewHiddenFieldRejectsBadPattern(t *testing.T) {
	_, err := NewHiddenField(config.Module{Props: map[string]string{"ignoreFormat": "("}})
	var cerr *config.Error
	require.ErrorAs(t, err, &cerr)
	require.Equal(t, "ignoreFormat", cerr.Property)
}
