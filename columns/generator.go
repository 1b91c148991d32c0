package columns

import (
	"errors"
	"fmt"

	"go.uber.org/zap"

	"colcss/css"
)

var (
	ErrNoColumns   = errors.New("no columns requested")
	ErrColumnRange = errors.New("column out of range")
	ErrBadGutter   = errors.New("gutter must be a non-negative length")
)

// Generator turns column specifications into style rules. It owns the option
// resolver and remembers whether the shared base rule was already produced.
//
// Generator is not safe for concurrent use.
type Generator struct {
	log      *zap.Logger
	resolver *Resolver
	baseDone bool
}

// New creates generator seeding persistent defaults with opts.
func New(log *zap.Logger, opts ...Option) *Generator {
	if log == nil {
		log = zap.NewNop()
	}
	return &Generator{
		log:      log.Named("generator"),
		resolver: NewResolver(opts...),
	}
}

// Resolver gives access to the option resolver.
func (g *Generator) Resolver() *Resolver {
	return g.resolver
}

// BaseEmitted reports whether the base rule has been produced.
func (g *Generator) BaseEmitted() bool {
	return g.baseDone
}

// Base returns the marker rule (float, position, box sizing) the first time
// it is called and false afterwards. The marker selector is taken from the
// options pending at that moment: class or attribute names changed later,
// or an attribute scheme turned on later, are not added to it.
func (g *Generator) Base() (css.Rule, bool) {
	if g.baseDone {
		return css.Rule{}, false
	}
	g.baseDone = true

	opts := g.resolver.Current()
	alts := []string{opts.ClassMarker()}
	if opts.AttributeSelector {
		alts = append(alts, opts.AttributeMarker())
	}
	rule := css.NewRule(css.NewSelector(alts...))
	rule.Set("float", css.Keyword("left"))
	rule.Set("position", css.Keyword("relative"))
	rule.Set("box-sizing", css.Keyword("border-box"))

	g.log.Debug("Base rule emitted", zap.Stringer("selector", rule.Selector))
	return rule, true
}

// Columns produces the rules laying out direct children of container as
// len(widths) columns using the pending options. The first call also
// returns the base rule in front of the others. On success the resolver is
// advanced; on error nothing changes.
func (g *Generator) Columns(container string, widths ...Width) ([]css.Rule, error) {
	opts := g.resolver.Current()
	if err := check(widths, opts.Gutter); err != nil {
		return nil, err
	}

	total := len(widths)
	boxes := make([]Box, 0, total)
	legacy := false
	for i := range widths {
		box, err := ColumnBox(i, total, widths, opts.Gutter, opts.WidthCalculation)
		if err != nil {
			return nil, fmt.Errorf("column %d of %d: %w", i+1, total, err)
		}
		legacy = legacy || !box.MarginLeft.IsZero()
		boxes = append(boxes, box)
	}

	var rules []css.Rule
	if base, ok := g.Base(); ok {
		rules = append(rules, base)
	}

	if legacy {
		if scope := css.NewSelector(css.SplitList(container)...); scope.IsEmpty() {
			g.log.Warn("Legacy widths need a container to hold overflow, none given")
		} else {
			rule := css.NewRule(scope)
			rule.Set("overflow", css.Keyword("hidden"))
			rules = append(rules, rule)
		}
	}

	for i, box := range boxes {
		sel := ColumnSelectors(total, i+1, opts).Within(container)
		if sel.IsEmpty() {
			g.log.Warn("No selector scheme enabled, column skipped",
				zap.Int("column", i+1), zap.Int("total", total))
			continue
		}
		rule := css.NewRule(sel)
		box.Apply(&rule)
		rules = append(rules, rule)

		g.log.Debug("Column rule emitted",
			zap.String("column", Token(total, i+1)),
			zap.Stringer("edge", box.Edge),
			zap.Int("alternatives", len(sel.Alternatives)))
	}

	g.resolver.Advance()
	return rules, nil
}

// Emit runs Columns and appends the result to sheet.
func (g *Generator) Emit(sheet *css.Stylesheet, container string, widths ...Width) error {
	rules, err := g.Columns(container, widths...)
	if err != nil {
		return err
	}
	sheet.AddRule(rules...)
	return nil
}

func check(widths []Width, gutter Width) error {
	if len(widths) == 0 {
		return ErrNoColumns
	}
	if gutter.Value < 0 || (gutter.IsPercentage() && !gutter.IsZero()) {
		return fmt.Errorf("%w: %s", ErrBadGutter, gutter)
	}
	for i, w := range widths {
		if w.Value < 0 {
			return fmt.Errorf("%w: column %d has negative width %s", ErrBadWidth, i+1, w)
		}
	}
	return nil
}
