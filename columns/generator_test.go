package columns

import (
	"errors"
	"strings"
	"testing"

	"go.uber.org/zap"
	"go.uber.org/zap/zaptest"

	"colcss/css"
)

func TestGenerator_BaseOnce(t *testing.T) {
	g := New(zaptest.NewLogger(t))

	first, err := g.Columns(".row", Percentage(50), Percentage(50))
	if err != nil {
		t.Fatalf("Columns() error = %v", err)
	}
	if len(first) != 3 {
		t.Fatalf("first Columns() = %d rules, want base + 2", len(first))
	}
	if got := first[0].Selector.String(); got != ".column" {
		t.Errorf("base selector = %q, want .column", got)
	}
	if v, _ := first[0].GetProperty("box-sizing"); v.Raw != "border-box" {
		t.Errorf("base box-sizing = %q", v.Raw)
	}

	second, err := g.Columns(".row", Percentage(50), Percentage(50))
	if err != nil {
		t.Fatalf("Columns() error = %v", err)
	}
	if len(second) != 2 {
		t.Errorf("second Columns() = %d rules, want 2", len(second))
	}
	if _, ok := g.Base(); ok {
		t.Error("Base() returned rule after emission")
	}
}

func TestGenerator_BaseWithAttribute(t *testing.T) {
	g := New(zap.NewNop(), WithAttributeSelector(true))
	base, ok := g.Base()
	if !ok {
		t.Fatal("Base() not emitted")
	}
	if got := base.Selector.String(); got != ".column, [data-column]" {
		t.Errorf("base selector = %q", got)
	}
}

func TestGenerator_Rules(t *testing.T) {
	g := New(zap.NewNop(), WithGutter(px(30)))
	g.Base()

	rules, err := g.Columns(".row", Percentage(100), px(320))
	if err != nil {
		t.Fatalf("Columns() error = %v", err)
	}
	if len(rules) != 2 {
		t.Fatalf("Columns() = %d rules, want 2", len(rules))
	}

	want := []map[string]string{
		{"clear": "left", "width": "calc(100% - 320px)", "padding-left": "0", "padding-right": "15px"},
		{"clear": "right", "width": "320px", "padding-left": "15px", "padding-right": "0"},
	}
	for i, props := range want {
		if got := rules[i].Selector.String(); !strings.HasPrefix(got, ".row > .column:nth-of-type(2n+") {
			t.Errorf("rule %d selector = %q", i, got)
		}
		for name, raw := range props {
			if v, _ := rules[i].GetProperty(name); v.Raw != raw {
				t.Errorf("rule %d %s = %q, want %q", i, name, v.Raw, raw)
			}
		}
	}
}

func TestGenerator_OneShotAcrossEmissions(t *testing.T) {
	g := New(zap.NewNop(), WithGutter(px(10)))
	g.Resolver().SetOptionsOnce(WithGutter(px(20)))

	paddingRight := func() string {
		rules, err := g.Columns("", px(100), px(100))
		if err != nil {
			t.Fatalf("Columns() error = %v", err)
		}
		v, _ := rules[len(rules)-2].GetProperty("padding-right")
		return v.Raw
	}

	if got := paddingRight(); got != "10px" {
		t.Errorf("one-shot emission padding-right = %q, want 10px", got)
	}
	if got := paddingRight(); got != "5px" {
		t.Errorf("following emission padding-right = %q, want 5px", got)
	}
}

func TestGenerator_Legacy(t *testing.T) {
	g := New(zap.NewNop(), WithWidthCalculation(false))
	g.Base()

	rules, err := g.Columns(".row", Percentage(100), px(320))
	if err != nil {
		t.Fatalf("Columns() error = %v", err)
	}
	if len(rules) != 3 {
		t.Fatalf("Columns() = %d rules, want container + 2", len(rules))
	}
	if got := rules[0].Selector.String(); got != ".row" {
		t.Errorf("container selector = %q", got)
	}
	if v, _ := rules[0].GetProperty("overflow"); v.Raw != "hidden" {
		t.Errorf("container overflow = %q, want hidden", v.Raw)
	}
	if v, _ := rules[1].GetProperty("margin-left"); v.Raw != "-320px" {
		t.Errorf("margin-left = %q, want -320px", v.Raw)
	}
}

func TestGenerator_EmptySelectorSkipped(t *testing.T) {
	g := New(zap.NewNop(), WithStructuralSelector(false))
	g.Base()

	rules, err := g.Columns(".row", Percentage(50), Percentage(50))
	if err != nil {
		t.Fatalf("Columns() error = %v", err)
	}
	if len(rules) != 0 {
		t.Errorf("Columns() = %d rules, want none", len(rules))
	}
}

func TestGenerator_Errors(t *testing.T) {
	tests := []struct {
		name   string
		opts   []Option
		widths []Width
		want   error
	}{
		{"no columns", nil, nil, ErrNoColumns},
		{"negative gutter", []Option{WithGutter(px(-1))}, []Width{px(1)}, ErrBadGutter},
		{"percentage gutter", []Option{WithGutter(Percentage(2))}, []Width{px(1)}, ErrBadGutter},
		{"negative width", nil, []Width{px(-1)}, ErrBadWidth},
		{"mixed units", []Option{WithWidthCalculation(false)}, []Width{Percentage(100), px(1), FixedLength(1, "em")}, ErrMixedUnits},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			g := New(zap.NewNop(), tt.opts...)
			if _, err := g.Columns(".row", tt.widths...); !errors.Is(err, tt.want) {
				t.Errorf("Columns() error = %v, want %v", err, tt.want)
			}
			if g.BaseEmitted() {
				t.Error("failed emission produced base rule")
			}
		})
	}
}

func TestGenerator_FailureKeepsOneShot(t *testing.T) {
	g := New(zap.NewNop())
	g.Resolver().SetOptionsOnce(WithGutter(px(8)))

	if _, err := g.Columns(".row"); err == nil {
		t.Fatal("Columns() without widths succeeded")
	}
	if got := g.Resolver().Current().Gutter; got != px(8) {
		t.Errorf("gutter after failure = %v, want 8px", got)
	}
}

func TestGenerator_Emit(t *testing.T) {
	g := New(zap.NewNop())
	var sheet css.Stylesheet

	if err := g.Emit(&sheet, ".row", Percentage(50), Percentage(50)); err != nil {
		t.Fatalf("Emit() error = %v", err)
	}
	if got := sheet.CountRules(); got != 3 {
		t.Errorf("CountRules() = %d, want 3", got)
	}
	if len(sheet.RulesBySelector(".column")) != 1 {
		t.Error("base rule missing from stylesheet")
	}
}

func TestGenerator_ContainerList(t *testing.T) {
	g := New(zaptest.NewLogger(t), WithWidthCalculation(false))
	g.Base()

	rules, err := g.Columns(".a, .b", Percentage(100), px(320))
	if err != nil {
		t.Fatalf("Columns() error = %v", err)
	}
	if len(rules) != 3 {
		t.Fatalf("Columns() = %d rules, want container + 2", len(rules))
	}
	if got := rules[0].Selector.Alternatives; len(got) != 2 || got[0] != ".a" || got[1] != ".b" {
		t.Errorf("container alternatives = %q, want [.a .b]", got)
	}
	for _, r := range rules[1:] {
		for _, a := range r.Selector.Alternatives {
			if !strings.HasPrefix(a, ".a > ") && !strings.HasPrefix(a, ".b > ") {
				t.Errorf("alternative %q is not scoped to a container member", a)
			}
		}
		if len(r.Selector.Alternatives) != 2 {
			t.Errorf("column alternatives = %q, want one per container member", r.Selector.Alternatives)
		}
	}
	if got := rules[1].Selector.Alternatives[0]; got != ".a > .column:nth-of-type(2n+1)" {
		t.Errorf("first alternative = %q", got)
	}
}

func TestGenerator_BaseKeepsFirstMarkers(t *testing.T) {
	g := New(zap.NewNop())
	if _, err := g.Columns(".row", Percentage(50), Percentage(50)); err != nil {
		t.Fatalf("Columns() error = %v", err)
	}

	g.Resolver().SetOptions(WithAttributeSelector(true), WithClassName("cell"))
	rules, err := g.Columns(".row", Percentage(50), Percentage(50))
	if err != nil {
		t.Fatalf("Columns() error = %v", err)
	}
	if len(rules) != 2 {
		t.Fatalf("Columns() = %d rules, want 2 without base", len(rules))
	}
	if got := rules[0].Selector.Alternatives[0]; got != `.row > [data-column~="2-1"]` {
		t.Errorf("first alternative = %q", got)
	}
}
