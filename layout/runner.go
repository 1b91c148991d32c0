package layout

import (
	"context"
	"errors"
	"fmt"
	"sort"

	"github.com/maruel/natural"
	"go.uber.org/multierr"
	"go.uber.org/zap"

	"colcss/columns"
	"colcss/css"
)

var ErrNestedMedia = errors.New("media blocks cannot be nested")

// Runner executes layout statements in order against one generator.
type Runner struct {
	log *zap.Logger
	gen *columns.Generator
}

// NewRunner creates runner. Statements of every file run against gen, so
// options and the base rule carry over between files.
func NewRunner(log *zap.Logger, gen *columns.Generator) *Runner {
	if log == nil {
		log = zap.NewNop()
	}
	return &Runner{log: log.Named("layout"), gen: gen}
}

// Run executes file and returns the produced stylesheet. A failing statement
// does not stop execution, all errors are returned together with whatever
// was produced. Cancelling ctx stops before the next statement.
func (r *Runner) Run(ctx context.Context, file *File) (*css.Stylesheet, error) {
	sheet := &css.Stylesheet{}
	var errs error
	for _, stmt := range file.Statements {
		if err := ctx.Err(); err != nil {
			return sheet, multierr.Append(errs, err)
		}
		errs = multierr.Append(errs, r.exec(ctx, stmt, sheet, nil))
	}
	r.log.Debug("Layout executed",
		zap.Int("statements", len(file.Statements)),
		zap.Int("rules", sheet.CountRules()),
		zap.Int("errors", len(multierr.Errors(errs))))
	return sheet, errs
}

// exec runs one statement. Inside a media block rules are collected into
// media instead of the sheet.
func (r *Runner) exec(ctx context.Context, stmt *Statement, sheet *css.Stylesheet, media *[]css.Rule) error {
	switch {
	case stmt.Options != nil:
		opts, err := Options(stmt.Options.Settings)
		if err != nil {
			return err
		}
		if stmt.Options.Once {
			r.gen.Resolver().SetOptionsOnce(opts...)
		} else {
			r.gen.Resolver().SetOptions(opts...)
		}
		return nil

	case stmt.Reset != nil:
		opts, err := Options(stmt.Reset.Settings)
		if err != nil {
			return err
		}
		r.gen.Resolver().Reset(opts...)
		return nil

	case stmt.Columns != nil:
		return r.columns(stmt.Columns, sheet, media)

	case stmt.Media != nil:
		if media != nil {
			return fmt.Errorf("%s: %w", stmt.Media.Pos, ErrNestedMedia)
		}
		// base rule belongs to the top level, not to the first media block
		if base, ok := r.gen.Base(); ok {
			sheet.AddRule(base)
		}
		var rules []css.Rule
		var errs error
		for _, s := range stmt.Media.Statements {
			if err := ctx.Err(); err != nil {
				return multierr.Append(errs, err)
			}
			errs = multierr.Append(errs, r.exec(ctx, s, sheet, &rules))
		}
		sheet.AddMedia(string(stmt.Media.Query), rules)
		return errs

	case stmt.Comment != nil:
		if media != nil {
			r.log.Warn("Comment inside media block dropped", zap.Stringer("pos", stmt.Comment.Pos))
			return nil
		}
		sheet.AddComment(string(stmt.Comment.Text))
		return nil
	}
	return nil
}

func (r *Runner) columns(stmt *ColumnsStmt, sheet *css.Stylesheet, media *[]css.Rule) error {
	widths, err := columns.ParseWidths(stmt.Widths...)
	if err != nil {
		return fmt.Errorf("%s: %w", stmt.Pos, err)
	}
	rules, err := r.gen.Columns(string(stmt.Container), widths...)
	if err != nil {
		return fmt.Errorf("%s: %w", stmt.Pos, err)
	}
	if media != nil {
		*media = append(*media, rules...)
	} else {
		sheet.AddRule(rules...)
	}
	return nil
}

// Layout describes one columns statement.
type Layout struct {
	Container string
	Media     string
	Widths    []string
}

// Layouts lists columns statements of file ordered naturally by container,
// then by media query.
func Layouts(file *File) []Layout {
	var list []Layout
	file.Walk(func(stmt *Statement, query string) {
		if stmt.Columns == nil {
			return
		}
		list = append(list, Layout{
			Container: string(stmt.Columns.Container),
			Media:     query,
			Widths:    stmt.Columns.Widths,
		})
	})
	sort.SliceStable(list, func(i, j int) bool {
		if list[i].Container != list[j].Container {
			return natural.Less(list[i].Container, list[j].Container)
		}
		return natural.Less(list[i].Media, list[j].Media)
	})
	return list
}

// Containers returns distinct container selectors of file in natural order.
func Containers(file *File) []string {
	seen := make(map[string]struct{})
	var out []string
	file.Walk(func(stmt *Statement, _ string) {
		if stmt.Columns == nil {
			return
		}
		c := string(stmt.Columns.Container)
		if _, ok := seen[c]; ok {
			return
		}
		seen[c] = struct{}{}
		out = append(out, c)
	})
	sort.Sort(natural.StringSlice(out))
	return out
}
