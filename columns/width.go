package columns

import (
	"errors"
	"fmt"
	"strconv"
	"strings"
	"unicode"

	"colcss/css"
)

// ErrBadWidth is returned when a width cannot be parsed.
var ErrBadWidth = errors.New("bad width")

// knownUnits lists length units accepted for fixed widths and gutters.
var knownUnits = map[string]struct{}{
	"px": {}, "em": {}, "rem": {}, "ex": {}, "ch": {},
	"vw": {}, "vh": {}, "vmin": {}, "vmax": {},
	"pt": {}, "pc": {}, "cm": {}, "mm": {}, "in": {},
}

// Width is a column or gutter dimension. Unit is "%" for percentages, a CSS
// length unit for fixed lengths, and empty only for unit-less zero.
type Width struct {
	Value float64
	Unit  string
}

// Percentage returns a percentage width.
func Percentage(v float64) Width {
	return Width{Value: v, Unit: "%"}
}

// FixedLength returns a fixed width in the given length unit.
func FixedLength(v float64, unit string) Width {
	return Width{Value: v, Unit: strings.ToLower(unit)}
}

// IsPercentage reports whether w is relative to the row width.
func (w Width) IsPercentage() bool { return w.Unit == "%" }

// IsZero reports whether w has no extent.
func (w Width) IsZero() bool { return w.Value == 0 }

// Scale multiplies the value keeping the unit.
func (w Width) Scale(f float64) Width {
	return Width{Value: w.Value * f, Unit: w.Unit}
}

// Neg returns -w.
func (w Width) Neg() Width { return w.Scale(-1) }

// CSS returns the width as a css property value.
func (w Width) CSS() css.Value {
	return css.Dimension(w.Value, w.Unit)
}

func (w Width) String() string {
	return w.CSS().Raw
}

// ParseWidth parses strings like "320px", "33.3%", "1.5em" or "0".
func ParseWidth(s string) (Width, error) {
	v := strings.ToLower(strings.TrimSpace(s))
	if v == "" {
		return Width{}, fmt.Errorf("%w: empty value", ErrBadWidth)
	}

	numEnd := 0
	for i, r := range v {
		if unicode.IsDigit(r) || r == '.' || ((r == '-' || r == '+') && i == 0) {
			numEnd = i + 1
			continue
		}
		break
	}
	num, err := strconv.ParseFloat(v[:numEnd], 64)
	if err != nil {
		return Width{}, fmt.Errorf("%w: %q is not a number", ErrBadWidth, s)
	}

	unit := v[numEnd:]
	switch {
	case unit == "%":
	case unit == "":
		if num != 0 {
			return Width{}, fmt.Errorf("%w: %q has no unit", ErrBadWidth, s)
		}
	default:
		if _, ok := knownUnits[unit]; !ok {
			return Width{}, fmt.Errorf("%w: unknown unit %q in %q", ErrBadWidth, unit, s)
		}
	}
	return Width{Value: num, Unit: unit}, nil
}

// MustParseWidth is ParseWidth for constant inputs. It panics on error.
func MustParseWidth(s string) Width {
	w, err := ParseWidth(s)
	if err != nil {
		panic(err)
	}
	return w
}

// ParseWidths parses a column specification.
func ParseWidths(specs ...string) ([]Width, error) {
	widths := make([]Width, 0, len(specs))
	for _, s := range specs {
		w, err := ParseWidth(s)
		if err != nil {
			return nil, err
		}
		widths = append(widths, w)
	}
	return widths, nil
}

// FixedSum accumulates fixed widths. Lengths in different units cannot be
// added so every unit keeps its own term, in order of first appearance.
type FixedSum []Width

// SumFixed scans widths once and totals the fixed (non percentage) ones.
func SumFixed(widths []Width) FixedSum {
	var sum FixedSum
	for _, w := range widths {
		if w.IsPercentage() || w.IsZero() {
			continue
		}
		sum = sum.add(w)
	}
	return sum
}

func (s FixedSum) add(w Width) FixedSum {
	for i := range s {
		if s[i].Unit == w.Unit {
			s[i].Value += w.Value
			return s
		}
	}
	return append(s, w)
}

// IsZero reports whether there are no fixed widths.
func (s FixedSum) IsZero() bool {
	for _, w := range s {
		if !w.IsZero() {
			return false
		}
	}
	return true
}

// Scale multiplies every term by f.
func (s FixedSum) Scale(f float64) FixedSum {
	out := make(FixedSum, 0, len(s))
	for _, w := range s {
		out = append(out, w.Scale(f))
	}
	return out
}

// Single returns the sum as one width when it has at most one unit.
func (s FixedSum) Single() (Width, bool) {
	switch len(s) {
	case 0:
		return Width{}, true
	case 1:
		return s[0], true
	default:
		return Width{}, false
	}
}

// String renders terms joined with " + ".
func (s FixedSum) String() string {
	if len(s) == 0 {
		return "0"
	}
	parts := make([]string, 0, len(s))
	for _, w := range s {
		parts = append(parts, w.String())
	}
	return strings.Join(parts, " + ")
}
