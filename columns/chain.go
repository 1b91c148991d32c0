package columns

import "strings"

// NthChildChain selects the n-th sibling matching element using only
// :first-child and adjacent sibling combinators. n <= 1 selects the first
// child. Output size grows linearly with n.
func NthChildChain(n int, element string) string {
	var sb strings.Builder
	sb.Grow(len(element)*max(n, 1) + 12 + 3*max(n-1, 0))
	sb.WriteString(element)
	sb.WriteString(":first-child")
	for i := 1; i < n; i++ {
		sb.WriteString(" + ")
		sb.WriteString(element)
	}
	return sb.String()
}
