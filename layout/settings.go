package layout

import (
	"errors"
	"fmt"
	"strconv"
	"strings"

	"go.uber.org/multierr"
	"golang.org/x/text/cases"

	"colcss/columns"
)

var (
	ErrUnknownKey = errors.New("unknown option")
	ErrBadValue   = errors.New("bad option value")
)

type settingKind int

const (
	kindBool settingKind = iota
	kindInt
	kindString
	kindWidth
)

type settingDef struct {
	kind     settingKind
	asBool   func(bool) columns.Option
	asInt    func(int) columns.Option
	maxInt   int // inclusive upper bound for kindInt, values below 0 are rejected too
	asString func(string) columns.Option
	asWidth  func(columns.Width) columns.Option
}

// settings is keyed by normalized option names, see NormalizeKey.
var settings = map[string]settingDef{
	"structuralselector":   {kind: kindBool, asBool: columns.WithStructuralSelector},
	"attributeselector":    {kind: kindBool, asBool: columns.WithAttributeSelector},
	"siblingchainfallback": {kind: kindBool, asBool: columns.WithSiblingChainFallback},
	"siblingchain":         {kind: kindBool, asBool: columns.WithSiblingChainFallback},
	"siblingchainmaxdepth": {kind: kindInt, asInt: columns.WithSiblingChainMaxDepth, maxInt: columns.MaxChainDepth},
	"siblingchaindepth":    {kind: kindInt, asInt: columns.WithSiblingChainMaxDepth, maxInt: columns.MaxChainDepth},
	"attributename":        {kind: kindString, asString: columns.WithAttributeName},
	"classname":            {kind: kindString, asString: columns.WithClassName},
	"gutter":               {kind: kindWidth, asWidth: columns.WithGutter},
	"widthcalculation":     {kind: kindBool, asBool: columns.WithWidthCalculation},
	"calc":                 {kind: kindBool, asBool: columns.WithWidthCalculation},
	"oneshot":              {kind: kindBool, asBool: columns.WithOneShot},
}

// NormalizeKey folds case and drops separators and a leading "use", so
// "useStructuralSelector", "use-structural-selector" and
// "structural_selector" are the same key.
func NormalizeKey(key string) string {
	k := fold(strings.TrimSpace(key))
	k = strings.NewReplacer("-", "", "_", "").Replace(k)
	return strings.TrimPrefix(k, "use")
}

func fold(s string) string {
	return cases.Fold().String(s)
}

// Options converts settings into generator options. All bad settings are
// reported together.
func Options(list []*Setting) ([]columns.Option, error) {
	opts := make([]columns.Option, 0, len(list))
	var errs error
	for _, s := range list {
		opt, err := s.Option()
		if err != nil {
			errs = multierr.Append(errs, err)
			continue
		}
		opts = append(opts, opt)
	}
	if errs != nil {
		return nil, errs
	}
	return opts, nil
}

// Option converts a single setting.
func (s *Setting) Option() (columns.Option, error) {
	def, ok := settings[NormalizeKey(s.Key)]
	if !ok {
		return nil, fmt.Errorf("%s: %w %q", s.Pos, ErrUnknownKey, s.Key)
	}

	switch def.kind {
	case kindBool:
		v, err := s.Value.Bool()
		if err != nil {
			return nil, fmt.Errorf("%s: %s: %w", s.Pos, s.Key, err)
		}
		return def.asBool(v), nil
	case kindInt:
		v, err := s.Value.Int()
		if err != nil {
			return nil, fmt.Errorf("%s: %s: %w", s.Pos, s.Key, err)
		}
		if v < 0 || v > def.maxInt {
			return nil, fmt.Errorf("%s: %s: %w: %d is outside [0, %d]", s.Pos, s.Key, ErrBadValue, v, def.maxInt)
		}
		return def.asInt(v), nil
	case kindString:
		v, err := s.Value.Text()
		if err != nil {
			return nil, fmt.Errorf("%s: %s: %w", s.Pos, s.Key, err)
		}
		return def.asString(v), nil
	default:
		v, err := s.Value.Width()
		if err != nil {
			return nil, fmt.Errorf("%s: %s: %w", s.Pos, s.Key, err)
		}
		return def.asWidth(v), nil
	}
}

// Bool accepts true/false, yes/no and on/off in any case.
func (v *Value) Bool() (bool, error) {
	if v.Ident == nil {
		return false, fmt.Errorf("%w: %s is not a boolean", ErrBadValue, v)
	}
	switch fold(*v.Ident) {
	case "true", "yes", "on":
		return true, nil
	case "false", "no", "off":
		return false, nil
	}
	return false, fmt.Errorf("%w: %s is not a boolean", ErrBadValue, v)
}

// Int accepts unit-less integers.
func (v *Value) Int() (int, error) {
	if v.Dimension == nil {
		return 0, fmt.Errorf("%w: %s is not a number", ErrBadValue, v)
	}
	n, err := strconv.Atoi(*v.Dimension)
	if err != nil {
		return 0, fmt.Errorf("%w: %s is not an integer", ErrBadValue, v)
	}
	return n, nil
}

// Text accepts quoted strings and bare identifiers.
func (v *Value) Text() (string, error) {
	switch {
	case v.Quoted != nil:
		return string(*v.Quoted), nil
	case v.Ident != nil:
		return *v.Ident, nil
	}
	return "", fmt.Errorf("%w: %s is not a name", ErrBadValue, v)
}

// Width accepts lengths such as 30px or 0.
func (v *Value) Width() (columns.Width, error) {
	if v.Dimension == nil {
		return columns.Width{}, fmt.Errorf("%w: %s is not a length", ErrBadValue, v)
	}
	w, err := columns.ParseWidth(*v.Dimension)
	if err != nil {
		return columns.Width{}, fmt.Errorf("%w: %w", ErrBadValue, err)
	}
	return w, nil
}
