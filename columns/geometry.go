package columns

import (
	"errors"
	"fmt"
	"math"
	"strings"

	"colcss/css"
)

//go:generate go run github.com/abice/go-enum@v0.9.2 --marshal

// Edge is the position of a column in its row. It is derived from the column
// index and never stored.
// ENUM(leading, interior, trailing, single)
type Edge int

// ErrMixedUnits is returned when geometry needs arithmetic on lengths of
// different units and calc() is not available.
var ErrMixedUnits = errors.New("lengths in different units cannot be combined without calc()")

// EdgeOf returns the edge of 0-based column index in a row of total columns.
func EdgeOf(index, total int) Edge {
	switch {
	case total <= 1:
		return EdgeSingle
	case index <= 0:
		return EdgeLeading
	case index >= total-1:
		return EdgeTrailing
	default:
		return EdgeInterior
	}
}

// Clear returns the value of the clear property for the edge, empty when
// nothing has to be cleared.
func (e Edge) Clear() string {
	switch e {
	case EdgeLeading:
		return "left"
	case EdgeTrailing:
		return "right"
	case EdgeSingle:
		return "both"
	default:
		return ""
	}
}

// Box is the sizing of one column.
type Box struct {
	Edge         Edge
	Width        css.Value
	MarginLeft   Width // negative offset, legacy strategy only
	PaddingLeft  Width
	PaddingRight Width
	Padded       bool // paddings are emitted even when zero
}

// Apply writes the box declarations into r.
func (b Box) Apply(r *css.Rule) {
	if clear := b.Edge.Clear(); clear != "" {
		r.Set("clear", css.Keyword(clear))
	}
	r.Set("width", b.Width)
	if !b.MarginLeft.IsZero() {
		r.Set("margin-left", b.MarginLeft.CSS())
	}
	if b.Padded || !b.PaddingLeft.IsZero() {
		r.Set("padding-left", b.PaddingLeft.CSS())
	}
	if b.Padded {
		r.Set("padding-right", b.PaddingRight.CSS())
	}
}

// GutterPadding distributes gutter over a row of total columns. With
// interval = gutter*(total-1)/total, column i gets
//
//	left  = |i*interval - i*gutter|
//	right = (i+1)*interval - i*gutter
//
// and every column's left+right equals interval, so a row spends exactly
// (total-1)*gutter on gutters.
func GutterPadding(index, total int, gutter Width) (left, right Width) {
	left, right = Width{Unit: gutter.Unit}, Width{Unit: gutter.Unit}
	if total < 1 || gutter.Value <= 0 {
		return left, right
	}
	g := gutter.Value
	interval := g * float64(total-1) / float64(total)
	i := float64(index)
	left.Value = round(math.Abs(i*interval - i*g))
	right.Value = round((i+1)*interval - i*g)
	return left, right
}

// ColumnBox computes the sizing of 0-based column index.
//
// Fixed columns keep their literal width. A percentage column P shares the
// room taken by fixed columns: fluid = fixed*P/100. With calc it becomes
// width: calc(P% - fluid), without calc the column keeps P% and is pulled
// back by margin-left: -fluid while its left padding grows by fluid (the
// container then needs overflow: hidden).
func ColumnBox(index, total int, widths []Width, gutter Width, calc bool) (Box, error) {
	if index < 0 || index >= len(widths) {
		return Box{}, fmt.Errorf("%w: column index %d with %d widths", ErrColumnRange, index, len(widths))
	}
	w := widths[index]

	box := Box{Edge: EdgeOf(index, total), Width: w.CSS()}
	if gutter.Value > 0 {
		box.PaddingLeft, box.PaddingRight = GutterPadding(index, total, gutter)
		box.Padded = true
	}
	if !w.IsPercentage() {
		return box, nil
	}

	fluid := SumFixed(widths).Scale(w.Value / 100)
	if fluid.IsZero() {
		return box, nil
	}

	if calc {
		box.Width = css.Expression(calcWidth(w, fluid))
		return box, nil
	}

	offset, ok := fluid.Single()
	if !ok {
		return Box{}, fmt.Errorf("%w: fixed widths %s", ErrMixedUnits, fluid)
	}
	if !box.PaddingLeft.IsZero() && box.PaddingLeft.Unit != offset.Unit {
		return Box{}, fmt.Errorf("%w: gutter %s and fixed widths %s", ErrMixedUnits, gutter, fluid)
	}
	box.MarginLeft = offset.Neg()
	box.PaddingLeft = Width{Value: round(box.PaddingLeft.Value + offset.Value), Unit: offset.Unit}
	return box, nil
}

func calcWidth(w Width, fluid FixedSum) string {
	var sb strings.Builder
	sb.WriteString("calc(")
	sb.WriteString(w.String())
	for _, f := range fluid {
		if f.IsZero() {
			continue
		}
		sb.WriteString(" - ")
		sb.WriteString(f.String())
	}
	sb.WriteString(")")
	return sb.String()
}

// round drops floating point noise below 1e-9.
func round(v float64) float64 {
	r := math.Round(v*1e9) / 1e9
	if r == 0 {
		return 0
	}
	return r
}
