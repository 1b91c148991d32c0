package columns

import (
	"strings"
	"testing"
)

func TestNthChildChain(t *testing.T) {
	tests := []struct {
		n    int
		want string
	}{
		{n: 0, want: "X:first-child"},
		{n: 1, want: "X:first-child"},
		{n: 2, want: "X:first-child + X"},
		{n: 4, want: "X:first-child + X + X + X"},
	}

	for _, tt := range tests {
		if got := NthChildChain(tt.n, "X"); got != tt.want {
			t.Errorf("NthChildChain(%d) = %q, want %q", tt.n, got, tt.want)
		}
	}
}

func TestNthChildChain_Counts(t *testing.T) {
	for n := 1; n <= 25; n++ {
		chain := NthChildChain(n, "X")
		if got := strings.Count(chain, "X"); got != n {
			t.Errorf("NthChildChain(%d) has %d elements, want %d", n, got, n)
		}
		if got := strings.Count(chain, "+"); got != n-1 {
			t.Errorf("NthChildChain(%d) has %d combinators, want %d", n, got, n-1)
		}
	}
}
