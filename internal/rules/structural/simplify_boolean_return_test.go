package structural

import (
	"testing"

	"github.com/donaldgifford/stylefix/internal/config"
	"github.com/donaldgifford/stylefix/internal/testutil"
)

func TestSimplifyBooleanReturn(t *testing.T) {
	f, _ := NewSimplifyBooleanReturn(config.Module{})

	tests := []struct {
		name   string
		before string
		after  string
	}{
		{
			name: "if without else and if with else",
			before: `
				public class A {
				    boolean ifNoElse() {
				        if (isOddMillis()) {
				            return true;
				        }
				        return false;
				    }

				    static boolean isOddMillis() {
				        boolean even = System.currentTimeMillis() % 2 == 0;
				        if (even == true) {
				            return false;
				        }
				        else {
				            return true;
				        }
				    }
				}
			`,
			after: `
				public class A {
				    boolean ifNoElse() {
				        return isOddMillis();
				    }

				    static boolean isOddMillis() {
				        boolean even = System.currentTimeMillis() % 2 == 0;
				        return !(even == true);
				    }
				}
			`,
		},
		{
			name: "only the last if",
			before: `
				public class A {
				    public boolean absurdEquals(Object o) {
				        if(this == o) {
				            return true;
				        }
				        if(this == o) {
				            return true;
				        }
				        return false;
				    }
				}
			`,
			after: `
				public class A {
				    public boolean absurdEquals(Object o) {
				        if(this == o) {
				            return true;
				        }
				        return this == o;
				    }
				}
			`,
		},
		{
			name: "unbraced and negated",
			before: `
				class A {
				    boolean f(boolean done) {
				        if (!done) return false;
				        return true;
				    }
				}
			`,
			after: `
				class A {
				    boolean f(boolean done) {
				        return done;
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

func TestSimplifyBooleanReturnUnchanged(t *testing.T) {
	f, _ := NewSimplifyBooleanReturn(config.Module{})

	tests := []struct {
		name string
		src  string
	}{
		{
			name: "nested ifs without blocks",
			src: `
				public class A {
				    public boolean absurdEquals(Object o) {
				        if(this == o)
				            if(this == null)
				                return true;
				        return false;
				    }
				}
			`,
		},
		{
			name: "else if present",
			src: `
				public class A {
				    public boolean foo(int n) {
				        if (n == 1) {
				            return false;
				        }
				        else if (n == 2) {
				            return true;
				        }
				        else {
				            return false;
				        }
				    }
				}
			`,
		},
		{
			name: "both branches return the same value",
			src: `
				class A {
				    boolean f(int n) {
				        if (n == 1) {
				            return true;
				        }
				        return true;
				    }
				}
			`,
		},
		{
			name: "comment on the trailing return",
			src: `
				class A {
				    boolean f(int n) {
				        if (n == 1) {
				            return true;
				        }
				        // fall back
				        return false;
				    }
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

func TestSimplifyBooleanReturnScenario(t *testing.T) {
	f, _ := NewSimplifyBooleanReturn(config.Module{})
	testutil.AssertFix(t, f, `
		class A {
		    boolean isOdd() { return true; }
		    boolean f() {
		        if (isOdd()) { return true; } return false;
		    }
		}
	`, `
		class A {
		    boolean isOdd() { return true; }
		    boolean f() {
		        return isOdd();
		    }
		}
	`)
}
