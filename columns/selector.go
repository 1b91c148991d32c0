package columns

import (
	"fmt"

	"colcss/css"
)

// Token returns the attribute token naming column current of total.
func Token(total, current int) string {
	return fmt.Sprintf("%d-%d", total, current)
}

// ColumnSelectors returns the alternatives matching column current (1-based)
// of a total-column row, in fixed order: attribute, structural, sibling
// chains. With no scheme active the selector is empty, which means no element
// is selected.
//
// current must be in [1, total]; other values produce selectors that match
// nothing useful but are still deterministic.
func ColumnSelectors(total, current int, opts OptionSet) css.Selector {
	var alts []string
	if opts.AttributeSelector {
		alts = append(alts, attributeAlternative(total, current, opts))
	}
	if opts.StructuralSelector {
		alts = append(alts, structuralAlternative(total, current, opts))
	}
	if opts.SiblingChainFallback {
		alts = append(alts, chainAlternatives(total, current, opts)...)
	}
	return css.NewSelector(alts...)
}

func attributeAlternative(total, current int, opts OptionSet) string {
	return "[" + opts.AttributeName + "~=" + css.Quote(Token(total, current)) + "]"
}

func structuralAlternative(total, current int, opts OptionSet) string {
	return fmt.Sprintf("%s:nth-of-type(%dn+%d)", opts.ClassMarker(), total, current)
}

// chainAlternatives emits one chain per offset current, current+total, ...
// until SiblingChainMaxDepth chains exist. Elements past the last offset
// keep the generic marker styling.
func chainAlternatives(total, current int, opts OptionSet) []string {
	alts := make([]string, 0, opts.SiblingChainMaxDepth)
	for k := 0; k < opts.SiblingChainMaxDepth; k++ {
		alts = append(alts, NthChildChain(current+k*total, opts.ClassMarker()))
	}
	return alts
}
