package layout

import (
	"context"
	"errors"
	"strings"
	"testing"

	"go.uber.org/multierr"
	"go.uber.org/zap"
	"go.uber.org/zap/zaptest"

	"colcss/columns"
)

const sample = `
// two column page
options { gutter: 30px; use-attribute-selector: true }
comment "generated"
columns ".row" 100% 320px

/* one-shot chains for old engines */
options once { siblingChain: yes, sibling_chain_depth: 2 }
columns ".legacy" 50% 50%

# back to configured defaults
reset
media "(min-width: 600px)" {
	columns ".row" 25% 25% 50%
}
`

func TestParse(t *testing.T) {
	file, err := ParseString("sample.layout", sample)
	if err != nil {
		t.Fatalf("ParseString() error = %v", err)
	}
	if len(file.Statements) != 7 {
		t.Fatalf("ParseString() = %d statements, want 7", len(file.Statements))
	}

	opts := file.Statements[0].Options
	if opts == nil || opts.Once || len(opts.Settings) != 2 {
		t.Fatalf("statement 0 = %+v, want persistent options with two settings", opts)
	}
	if got := opts.Settings[0].Value.String(); got != "30px" {
		t.Errorf("gutter value = %q, want 30px", got)
	}

	if c := file.Statements[1].Comment; c == nil || c.Text != "generated" {
		t.Errorf("statement 1 = %+v, want comment", file.Statements[1])
	}

	cols := file.Statements[2].Columns
	if cols == nil || cols.Container != ".row" || strings.Join(cols.Widths, " ") != "100% 320px" {
		t.Errorf("statement 2 = %+v", cols)
	}

	if once := file.Statements[3].Options; once == nil || !once.Once {
		t.Errorf("statement 3 = %+v, want one-shot options", once)
	}
	if file.Statements[5].Reset == nil {
		t.Errorf("statement 5 = %+v, want reset", file.Statements[5])
	}

	media := file.Statements[6].Media
	if media == nil || media.Query != "(min-width: 600px)" || len(media.Statements) != 1 {
		t.Fatalf("statement 6 = %+v", media)
	}
}

func TestParse_Errors(t *testing.T) {
	for _, src := range []string{
		`columns ".row"`,
		`options { gutter 30px }`,
		`media { columns 50% 50% }`,
		`frobnicate`,
	} {
		if _, err := ParseString("bad.layout", src); err == nil {
			t.Errorf("ParseString(%q) succeeded", src)
		}
	}
}

func TestNormalizeKey(t *testing.T) {
	for _, k := range []string{"useStructuralSelector", "use-structural-selector", "structural_selector", "STRUCTURALSELECTOR"} {
		if got := NormalizeKey(k); got != "structuralselector" {
			t.Errorf("NormalizeKey(%q) = %q", k, got)
		}
	}
}

func TestOptions_Errors(t *testing.T) {
	file, err := ParseString("opts.layout", `options { colour: red; gutter: wide; sibling-chain-depth: 2.5; calc: maybe }`)
	if err != nil {
		t.Fatalf("ParseString() error = %v", err)
	}

	_, err = Options(file.Statements[0].Options.Settings)
	if got := len(multierr.Errors(err)); got != 4 {
		t.Fatalf("Options() returned %d errors, want 4: %v", got, err)
	}
	if !errors.Is(err, ErrUnknownKey) || !errors.Is(err, ErrBadValue) {
		t.Errorf("Options() error = %v, want unknown key and bad value", err)
	}
	if !strings.Contains(err.Error(), "opts.layout:1:") {
		t.Errorf("Options() error = %v, want source position", err)
	}
}

func TestRun(t *testing.T) {
	file, err := ParseString("sample.layout", sample)
	if err != nil {
		t.Fatalf("ParseString() error = %v", err)
	}

	gen := columns.New(zap.NewNop())
	sheet, err := NewRunner(zaptest.NewLogger(t), gen).Run(context.Background(), file)
	if err != nil {
		t.Fatalf("Run() error = %v", err)
	}

	// comment, base, two .row rules, two .legacy rules, media block
	if got := len(sheet.Items); got != 7 {
		t.Fatalf("Run() produced %d items, want 7:\n%s", got, sheet)
	}
	if got := sheet.CountRules(); got != 8 {
		t.Errorf("CountRules() = %d, want 8", got)
	}

	base := sheet.Rules()[0]
	if got := base.Selector.String(); got != ".column, [data-column]" {
		t.Errorf("base selector = %q", got)
	}

	row := sheet.Rules()[1]
	if got := row.Selector.Alternatives[0]; got != `.row > [data-column~="2-1"]` {
		t.Errorf("first .row alternative = %q", got)
	}
	if v, _ := row.GetProperty("width"); v.Raw != "calc(100% - 320px)" {
		t.Errorf(".row width = %q", v.Raw)
	}

	legacy := sheet.Rules()[3]
	// attribute + structural + two chains
	if got := len(legacy.Selector.Alternatives); got != 4 {
		t.Errorf(".legacy alternatives = %q, want 4", legacy.Selector.Alternatives)
	}
	if v, _ := legacy.GetProperty("padding-right"); v.Raw != "15px" {
		t.Errorf(".legacy padding-right = %q, want 15px", v.Raw)
	}

	blocks := sheet.MediaBlocks()
	if len(blocks) != 1 || len(blocks[0].Rules) != 3 {
		t.Fatalf("MediaBlocks() = %+v", blocks)
	}
	// reset dropped the gutter and the attribute scheme
	if got := blocks[0].Rules[0].Selector.String(); got != ".row > .column:nth-of-type(3n+1)" {
		t.Errorf("media rule selector = %q", got)
	}
	if _, ok := blocks[0].Rules[0].GetProperty("padding-left"); ok {
		t.Error("media rule kept gutter after reset")
	}
}

func TestRun_CollectsErrors(t *testing.T) {
	file, err := ParseString("errors.layout", `
columns ".a" 50% 12parsecs
options { nope: true }
columns ".b" 50% 50%
media "print" { media "screen" { columns 100% } }
`)
	if err != nil {
		t.Fatalf("ParseString() error = %v", err)
	}

	sheet, err := NewRunner(zap.NewNop(), columns.New(zap.NewNop())).Run(context.Background(), file)
	if got := len(multierr.Errors(err)); got != 3 {
		t.Fatalf("Run() returned %d errors, want 3: %v", got, err)
	}
	if !errors.Is(err, columns.ErrBadWidth) || !errors.Is(err, ErrUnknownKey) || !errors.Is(err, ErrNestedMedia) {
		t.Errorf("Run() error = %v", err)
	}
	if len(sheet.RulesBySelector(".b > .column:nth-of-type(2n+1)")) != 1 {
		t.Errorf("statements after a failure were not executed:\n%s", sheet)
	}
}

func TestRun_Cancelled(t *testing.T) {
	file, err := ParseString("c.layout", `columns 100%`)
	if err != nil {
		t.Fatalf("ParseString() error = %v", err)
	}
	ctx, cancel := context.WithCancel(context.Background())
	cancel()

	sheet, err := NewRunner(nil, columns.New(nil)).Run(ctx, file)
	if !errors.Is(err, context.Canceled) {
		t.Errorf("Run() error = %v, want context.Canceled", err)
	}
	if sheet.CountRules() != 0 {
		t.Errorf("cancelled Run() produced rules")
	}
}

func TestLayouts(t *testing.T) {
	file, err := ParseString("list.layout", `
columns ".row10" 100%
columns ".row2" 50% 50%
media "print" { columns ".row2" 100% }
columns ".row2" 30% 70%
`)
	if err != nil {
		t.Fatalf("ParseString() error = %v", err)
	}

	if got := strings.Join(Containers(file), " "); got != ".row2 .row10" {
		t.Errorf("Containers() = %q", got)
	}

	list := Layouts(file)
	if len(list) != 4 {
		t.Fatalf("Layouts() = %d entries, want 4", len(list))
	}
	want := []string{".row2  50% 50%", ".row2  30% 70%", ".row2 print 100%", ".row10  100%"}
	for i, l := range list {
		if got := l.Container + " " + l.Media + " " + strings.Join(l.Widths, " "); got != want[i] {
			t.Errorf("Layouts()[%d] = %q, want %q", i, got, want[i])
		}
	}
}

func TestDump(t *testing.T) {
	file, err := ParseString("dump.layout", "options once { Gutter: 10px }\nmedia \"print\" {\n  columns \".row\" 50% 50%\n}\n")
	if err != nil {
		t.Fatalf("ParseString() error = %v", err)
	}

	want := "file dump.layout\n" +
		"  options once @1:1\n" +
		"    gutter = 10px\n" +
		"  media @2:1\n" +
		"    query: \"print\"\n" +
		"    columns @3:3\n" +
		"      container: \".row\"\n" +
		"      widths: 50% 50%\n"
	if got := Dump(file); got != want {
		t.Errorf("Dump() = %q, want %q", got, want)
	}
}

func TestOptions_ChainDepthBound(t *testing.T) {
	file, err := ParseString("depth.layout", `options { sibling-chain-depth: 100000 } options { sibling-chain-depth: 500 }`)
	if err != nil {
		t.Fatalf("ParseString() error = %v", err)
	}

	if _, err := Options(file.Statements[0].Options.Settings); !errors.Is(err, ErrBadValue) {
		t.Errorf("Options(depth 100000) error = %v, want ErrBadValue", err)
	}
	if _, err := Options(file.Statements[1].Options.Settings); err != nil {
		t.Errorf("Options(depth 500) error = %v", err)
	}
}
