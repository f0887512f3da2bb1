package whitespace

import (
	"testing"

	"github.com/stretchr/testify/require"

	"github.com/donaldgifford/stylefix/internal/config"
	"github.com/donaldgifford/stylefix/internal/testutil"
)

const (
	paddedCast = `
		public class A {
		    {
		        long m = 0L;
		        int n = ( int ) m;
		    }
		}
	`
	unpaddedCast = `
		public class A {
		    {
		        long m = 0L;
		        int n = (int) m;
		    }
		}
	`
)

func TestTypecastParenPad(t *testing.T) {
	tests := []struct {
		name   string
		option string
		before string
		after  string
	}{
		{name: "unpad", before: paddedCast, after: unpaddedCast},
		{name: "pad", option: "space", before: unpaddedCast, after: paddedCast},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			props := map[string]string{}
			if tt.option != "" {
				props["option"] = tt.option
			}
			f, err := NewTypecastParenPad(config.Module{Props: props})
			require.NoError(t, err)
			testutil.AssertFix(t, f, tt.before, tt.after)
		})
	}
}

func TestTypecastParenPadUnchanged(t *testing.T) {
	f, err := NewTypecastParenPad(config.Module{})
	require.NoError(t, err)
	testutil.AssertUnchanged(t, f, `
		public class A {
		    int f(long m) {
		        int n = (int) m;
		        return (
		            int) m + (/* narrowing */int) n;
		    }
		}
	`)
}

func TestNewTypecastParenPadRejectsBadOption(t *testing.T) {
	_, err := NewTypecastParenPad(config.Module{Props: map[string]string{"option": "wide"}})
	var cerr *config.Error
	require.ErrorAs(t, err, &cerr)
	require.Equal(t, "option", cerr.Property)
}
