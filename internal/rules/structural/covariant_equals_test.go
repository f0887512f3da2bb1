package structural

import (
	"testing"

	"github.com/donaldgifford/stylefix/internal/config"
	"github.com/donaldgifford/stylefix/internal/testutil"
)

func TestCovariantEquals(t *testing.T) {
	f, _ := NewCovariantEquals(config.Module{})

	tests := []struct {
		name   string
		before string
		after  string
	}{
		{
			name: "replace with non-covariant equals",
			before: `
				class Test {
				    int n;

				    public boolean equals(Test t) {
				        return n == t.n;
				    }
				}
			`,
			after: `
				class Test {
				    int n;

				    @Override
				    public boolean equals(Object o) {
				        if (this == o) return true;
				        if (o == null || getClass() != o.getClass()) return false;
				        Test t = (Test) o;
				        return n == t.n;
				    }
				}
			`,
		},
		{
			name: "package private with a parameter named o",
			before: `
				class Point {
				    int x;

				    boolean equals(Point o) { return x == o.x; }
				}
			`,
			after: `
				class Point {
				    int x;

				    @Override
				    public boolean equals(Object o1) {
				        if (this == o1) return true;
				        if (o1 == null || getClass() != o1.getClass()) return false;
				        Point o = (Point) o1;
				        return x == o.x;
				    }
				}
			`,
		},
		{
			name: "existing annotation kept",
			before: `
				class Test {
				    @SuppressWarnings("unused")
				    public final boolean equals(Test other) {
				        return true;
				    }
				}
			`,
			after: `
				class Test {
				    @Override
				    @SuppressWarnings("unused")
				    public final boolean equals(Object o) {
				        if (this == o) return true;
				        if (o == null || getClass() != o.getClass()) return false;
				        Test other = (Test) o;
				        return true;
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

func TestCovariantEqualsUnchanged(t *testing.T) {
	f, _ := NewCovariantEquals(config.Module{})

	tests := []struct {
		name string
		src  string
	}{
		{
			name: "already overrides",
			src: `
				class Test {
				    @Override
				    public boolean equals(Object o) {
				        return this == o;
				    }
				}
			`,
		},
		{
			name: "parameter of another type",
			src: `
				class Test {
				    public boolean equals(String s) {
				        return false;
				    }
				}
			`,
		},
		{
			name: "object equals declared next to it",
			src: `
				class Test {
				    public boolean equals(Test t) {
				        return true;
				    }
				    public boolean equals(Object o) {
				        return o instanceof Test && equals((Test) o);
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
