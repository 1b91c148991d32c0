package columns

import (
	"fmt"
	"strings"
	"testing"
)

func TestColumnSelectors_StructuralOnly(t *testing.T) {
	for total := 1; total <= 6; total++ {
		for current := 1; current <= total; current++ {
			sel := ColumnSelectors(total, current, DefaultOptions())
			if sel.IsEmpty() {
				t.Fatalf("ColumnSelectors(%d, %d) is empty", total, current)
			}
			want := fmt.Sprintf("%dn+%d", total, current)
			if !strings.Contains(sel.String(), want) {
				t.Errorf("ColumnSelectors(%d, %d) = %q, want it to contain %q", total, current, sel, want)
			}
		}
	}
}

func TestColumnSelectors_Order(t *testing.T) {
	opts := DefaultOptions()
	opts.AttributeSelector = true
	opts.SiblingChainFallback = true
	opts.SiblingChainMaxDepth = 2

	got := ColumnSelectors(3, 2, opts).Alternatives
	want := []string{
		`[data-column~="3-2"]`,
		`.column:nth-of-type(3n+2)`,
		`.column:first-child + .column`,
		`.column:first-child + .column + .column + .column + .column`,
	}
	if len(got) != len(want) {
		t.Fatalf("ColumnSelectors() = %q, want %q", got, want)
	}
	for i := range want {
		if got[i] != want[i] {
			t.Errorf("alternative %d = %q, want %q", i, got[i], want[i])
		}
	}
}

func TestColumnSelectors_CustomMarkers(t *testing.T) {
	opts := DefaultOptions().with([]Option{
		WithAttributeSelector(true),
		WithAttributeName("data-col"),
		WithClassName("cell"),
	})

	got := ColumnSelectors(2, 1, opts).String()
	want := `[data-col~="2-1"], .cell:nth-of-type(2n+1)`
	if got != want {
		t.Errorf("ColumnSelectors() = %q, want %q", got, want)
	}
}

func TestColumnSelectors_ChainDepth(t *testing.T) {
	opts := DefaultOptions()
	opts.StructuralSelector = false
	opts.SiblingChainFallback = true

	for _, depth := range []int{0, 1, 5, 20} {
		opts.SiblingChainMaxDepth = depth
		if got := len(ColumnSelectors(4, 3, opts).Alternatives); got != depth {
			t.Errorf("depth %d produced %d alternatives", depth, got)
		}
	}
}

func TestColumnSelectors_NoScheme(t *testing.T) {
	opts := DefaultOptions()
	opts.StructuralSelector = false

	if sel := ColumnSelectors(3, 1, opts); !sel.IsEmpty() {
		t.Errorf("ColumnSelectors() without schemes = %q, want empty", sel)
	}
}
