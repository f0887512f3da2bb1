package structural

import (
	"testing"

	"github.com/stretchr/testify/require"

	"github.com/donaldgifford/stylefix/internal/config"
	"github.com/donaldgifford/stylefix/internal/testutil"
)

func staticVariableName(t *testing.T, props map[string]string) *StaticVariableName {
	t.Helper()
	f, err := NewStaticVariableName(config.Module{Props: props})
	require.NoError(t, err)
	return f
}

func TestStaticVariableName(t *testing.T) {
	tests := []struct {
		name   string
		props  map[string]string
		before string
		after  string
	}{
		{
			name: "field and reference",
			before: `
				import java.util.*;
				public class A {
				   static List<String> MY_LIST;

				   static {
				       MY_LIST = new ArrayList<>();
				   }
				}
			`,
			after: `
				import java.util.*;
				public class A {
				   static List<String> myList;

				   static {
				       myList = new ArrayList<>();
				   }
				}
			`,
		},
		{
			name: "only matching visibility",
			props: map[string]string{
				"applyToPublic":  "false",
				"applyToPackage": "false",
				"applyToPrivate": "false",
			},
			before: `
				import java.util.List;
				public class A {
				   static List MY_LIST;
				   private static List MY_PRIVATE_LIST;
				   public static List MY_PUBLIC_LIST;
				   protected static List MY_PROTECTED_LIST;
				}
			`,
			after: `
				import java.util.List;
				public class A {
				   static List MY_LIST;
				   private static List MY_PRIVATE_LIST;
				   public static List MY_PUBLIC_LIST;
				   protected static List myProtectedList;
				}
			`,
		},
		{
			name: "qualified references",
			before: `
				class Counter {
				    private static int Total_Count;

				    static void bump() {
				        Counter.Total_Count++;
				    }
				}
			`,
			after: `
				class Counter {
				    private static int totalCount;

				    static void bump() {
				        Counter.totalCount++;
				    }
				}
			`,
		},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			testutil.AssertFix(t, staticVariableName(t, tt.props), tt.before, tt.after)
		})
	}
}

func TestStaticVariableNameUnchanged(t *testing.T) {
	tests := []struct {
		name string
		src  string
		deps []string
	}{
		{
			name: "instance field",
			src: `
				import java.util.List;
				public class A {
				   List MY_LIST;
				}
			`,
		},
		{
			name: "constant",
			src: `
				class A {
				    static final int MAX_SIZE = 10;
				}
			`,
		},
		{
			name: "new name already in use",
			src: `
				class A {
				    static int MY_COUNT;
				    int myCount;
				}
			`,
		},
		{
			name: "referenced from another file",
			src: `
				class A {
				    static int MY_COUNT;
				}
			`,
			deps: []string{`
				class B {
				    int f() { return A.MY_COUNT; }
				}
			`},
		},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			testutil.AssertUnchanged(t, staticVariableName(t, nil), tt.src, tt.deps...)
		})
	}
}
