package columns

// Built-in marker identifiers and limits.
const (
	DefaultClassName     = "column"
	DefaultAttributeName = "data-column"
	DefaultChainDepth    = 20
	MaxChainDepth        = 500
)

// OptionSet governs how selectors and geometry are produced.
type OptionSet struct {
	StructuralSelector   bool   // emit :nth-of-type() alternatives
	AttributeSelector    bool   // emit [data-column~="N-K"] alternatives
	SiblingChainFallback bool   // emit :first-child + X chains
	SiblingChainMaxDepth int    // number of chain alternatives per column
	AttributeName        string // marker attribute
	ClassName            string // marker class
	Gutter               Width  // spacing between adjacent columns
	WidthCalculation     bool   // target supports calc()
	OneShot              bool   // applies to the next emission only
}

// DefaultOptions returns the built-in option set.
func DefaultOptions() OptionSet {
	return OptionSet{
		StructuralSelector:   true,
		SiblingChainMaxDepth: DefaultChainDepth,
		AttributeName:        DefaultAttributeName,
		ClassName:            DefaultClassName,
		WidthCalculation:     true,
	}
}

// Schemes returns the number of active addressing schemes.
func (o OptionSet) Schemes() int {
	n := 0
	for _, on := range []bool{o.AttributeSelector, o.StructuralSelector, o.SiblingChainFallback} {
		if on {
			n++
		}
	}
	return n
}

// ClassMarker returns the class selector of the column marker.
func (o OptionSet) ClassMarker() string {
	return "." + o.ClassName
}

// AttributeMarker returns the presence selector of the marker attribute.
func (o OptionSet) AttributeMarker() string {
	return "[" + o.AttributeName + "]"
}

// Option changes one field of an OptionSet. Fields no option touches keep
// their previous values.
type Option func(*OptionSet)

func (o OptionSet) with(opts []Option) OptionSet {
	for _, apply := range opts {
		if apply != nil {
			apply(&o)
		}
	}
	return o
}

// WithStructuralSelector turns :nth-of-type() alternatives on or off.
func WithStructuralSelector(on bool) Option {
	return func(o *OptionSet) { o.StructuralSelector = on }
}

// WithAttributeSelector turns [data-column~="N-K"] alternatives on or off.
func WithAttributeSelector(on bool) Option {
	return func(o *OptionSet) { o.AttributeSelector = on }
}

// WithSiblingChainFallback turns :first-child + X chain alternatives on or off.
func WithSiblingChainFallback(on bool) Option {
	return func(o *OptionSet) { o.SiblingChainFallback = on }
}

// WithSiblingChainMaxDepth bounds the number of chain alternatives. Values
// are clamped to [0, MaxChainDepth].
func WithSiblingChainMaxDepth(depth int) Option {
	return func(o *OptionSet) { o.SiblingChainMaxDepth = min(max(depth, 0), MaxChainDepth) }
}

// WithAttributeName overrides the marker attribute. Empty names are ignored.
func WithAttributeName(name string) Option {
	return func(o *OptionSet) {
		if name != "" {
			o.AttributeName = name
		}
	}
}

// WithClassName overrides the marker class. Empty names are ignored.
func WithClassName(name string) Option {
	return func(o *OptionSet) {
		if name != "" {
			o.ClassName = name
		}
	}
}

// WithGutter sets spacing between adjacent columns.
func WithGutter(gutter Width) Option {
	return func(o *OptionSet) { o.Gutter = gutter }
}

// WithWidthCalculation selects calc() widths, off selects negative margins.
func WithWidthCalculation(on bool) Option {
	return func(o *OptionSet) { o.WidthCalculation = on }
}

// WithOneShot marks options as applying to the next emission only.
func WithOneShot(on bool) Option {
	return func(o *OptionSet) { o.OneShot = on }
}
