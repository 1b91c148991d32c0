package css

import (
	"fmt"
	"io"
	"sort"
	"strconv"
	"strings"
)

// Quote returns s as a CSS double quoted string.
// Backslashes and double quotes are escaped per CSS syntax: \" and \\.
func Quote(s string) string {
	// Fast path: nothing to escape.
	if !strings.ContainsAny(s, `"\`) {
		return `"` + s + `"`
	}
	var b strings.Builder
	b.Grow(len(s) + 4)
	b.WriteByte('"')
	for _, r := range s {
		switch r {
		case '\\':
			b.WriteString(`\\`)
		case '"':
			b.WriteString(`\"`)
		default:
			b.WriteRune(r)
		}
	}
	b.WriteByte('"')
	return b.String()
}

// FormatNumber renders v with at most four fractional digits and without
// trailing zeros, so 20 is "20" and 2/3 is "0.6667".
func FormatNumber(v float64) string {
	s := strconv.FormatFloat(v, 'f', 4, 64)
	s = strings.TrimRight(s, "0")
	s = strings.TrimSuffix(s, ".")
	if s == "-0" || s == "" {
		return "0"
	}
	return s
}

// Value represents a CSS property value.
type Value struct {
	Raw     string  // CSS value text (e.g., "1.2em", "left", "calc(100% - 320px)")
	Value   float64 // Numeric value if applicable
	Unit    string  // Unit if applicable: "em", "px", "%", "pt", etc.
	Keyword string  // Keyword if applicable: "left", "hidden", etc.
}

// Keyword returns a keyword value.
func Keyword(k string) Value {
	return Value{Raw: k, Keyword: k}
}

// Dimension returns a numeric value with unit. Zero is always written as "0".
func Dimension(v float64, unit string) Value {
	raw := FormatNumber(v)
	if raw != "0" {
		raw += unit
	}
	return Value{Raw: raw, Value: v, Unit: unit}
}

// Expression returns a value which is an unparsed expression, e.g. calc().
func Expression(expr string) Value {
	return Value{Raw: expr, Keyword: expr}
}

// IsNumeric returns true if the value has a numeric component.
func (v Value) IsNumeric() bool {
	return v.Unit != "" || (v.Keyword == "" && v.Raw != "")
}

// Selector is a selector list: alternatives joined by the union operator
// only when written out.
type Selector struct {
	Alternatives []string
}

// NewSelector builds a selector from alternatives, dropping empty ones.
func NewSelector(alternatives ...string) Selector {
	s := Selector{}
	for _, a := range alternatives {
		if a = strings.TrimSpace(a); a != "" {
			s.Alternatives = append(s.Alternatives, a)
		}
	}
	return s
}

// IsEmpty reports whether the selector matches nothing.
func (s Selector) IsEmpty() bool {
	return len(s.Alternatives) == 0
}

// SplitList splits a selector list on top level commas. Commas nested in
// brackets, parentheses or strings do not split. Parts are space normalized,
// empty parts dropped.
func SplitList(text string) []string {
	var (
		parts  []string
		depth  int
		quote  rune
		escape bool
		start  int
	)
	add := func(part string) {
		if part = normalizeSpace(part); part != "" {
			parts = append(parts, part)
		}
	}
	for i, r := range text {
		switch {
		case escape:
			escape = false
		case r == '\\':
			escape = true
		case quote != 0:
			if r == quote {
				quote = 0
			}
		case r == '"' || r == '\'':
			quote = r
		case r == '[' || r == '(':
			depth++
		case r == ']' || r == ')':
			depth--
		case r == ',' && depth == 0:
			add(text[start:i])
			start = i + 1
		}
	}
	add(text[start:])
	return parts
}

// Within scopes every alternative to direct children of container. A
// container list scopes to each of its members. An empty container leaves
// the selector unchanged.
func (s Selector) Within(container string) Selector {
	containers := SplitList(container)
	if len(containers) == 0 || s.IsEmpty() {
		return s
	}
	out := Selector{Alternatives: make([]string, 0, len(containers)*len(s.Alternatives))}
	for _, c := range containers {
		for _, a := range s.Alternatives {
			out.Alternatives = append(out.Alternatives, c+" > "+a)
		}
	}
	return out
}

// Union appends alternatives of other to s.
func (s Selector) Union(other Selector) Selector {
	out := Selector{Alternatives: make([]string, 0, len(s.Alternatives)+len(other.Alternatives))}
	out.Alternatives = append(out.Alternatives, s.Alternatives...)
	out.Alternatives = append(out.Alternatives, other.Alternatives...)
	return out
}

// String joins alternatives with ", ".
func (s Selector) String() string {
	return strings.Join(s.Alternatives, ", ")
}

// Rule represents a single CSS rule (selector + properties).
type Rule struct {
	Selector   Selector         // Selector list
	Properties map[string]Value // Property name -> value
	SourceLine int              // Line number in source for error reporting
}

// NewRule creates a rule with an empty property map.
func NewRule(sel Selector) Rule {
	return Rule{Selector: sel, Properties: make(map[string]Value)}
}

// Set stores a property value, replacing the previous one.
func (r *Rule) Set(name string, v Value) {
	if r.Properties == nil {
		r.Properties = make(map[string]Value)
	}
	r.Properties[name] = v
}

// GetProperty returns the value for a property, or empty Value if not found.
func (r Rule) GetProperty(name string) (Value, bool) {
	v, ok := r.Properties[name]
	return v, ok
}

// StylesheetItem is a single top-level item in a stylesheet.
// Exactly one of Rule, MediaBlock, or Comment is non-nil.
type StylesheetItem struct {
	Rule       *Rule       // A plain rule (selector + properties)
	MediaBlock *MediaBlock // A @media block containing nested rules
	Comment    *string     // A comment, written as /* ... */
}

// MediaBlock represents a @media block with its query and nested rules.
type MediaBlock struct {
	Query string
	Rules []Rule
}

// Stylesheet represents a generated or parsed CSS stylesheet.
type Stylesheet struct {
	Items    []StylesheetItem // All top-level items in source order
	Warnings []string         // Warnings for unsupported features
}

// AddRule appends plain rules to the stylesheet.
func (s *Stylesheet) AddRule(rules ...Rule) {
	for i := range rules {
		s.Items = append(s.Items, StylesheetItem{Rule: &rules[i]})
	}
}

// AddMedia appends a @media block. Blocks without rules are ignored.
func (s *Stylesheet) AddMedia(query string, rules []Rule) {
	if len(rules) == 0 {
		return
	}
	s.Items = append(s.Items, StylesheetItem{MediaBlock: &MediaBlock{Query: query, Rules: rules}})
}

// AddComment appends a comment.
func (s *Stylesheet) AddComment(text string) {
	s.Items = append(s.Items, StylesheetItem{Comment: &text})
}

// Rules returns all top-level rules in source order. Rules nested in @media
// blocks are not included.
func (s *Stylesheet) Rules() []Rule {
	var rules []Rule
	for _, item := range s.Items {
		if item.Rule != nil {
			rules = append(rules, *item.Rule)
		}
	}
	return rules
}

// MediaBlocks returns all @media blocks in source order.
func (s *Stylesheet) MediaBlocks() []MediaBlock {
	var blocks []MediaBlock
	for _, item := range s.Items {
		if item.MediaBlock != nil {
			blocks = append(blocks, *item.MediaBlock)
		}
	}
	return blocks
}

// CountRules returns the number of rules including those in @media blocks.
func (s *Stylesheet) CountRules() int {
	n := 0
	for _, item := range s.Items {
		switch {
		case item.Rule != nil:
			n++
		case item.MediaBlock != nil:
			n += len(item.MediaBlock.Rules)
		}
	}
	return n
}

// RulesBySelector returns all top-level rules having the given selector
// among their alternatives.
func (s *Stylesheet) RulesBySelector(selector string) []Rule {
	var matches []Rule
	for _, item := range s.Items {
		if item.Rule == nil {
			continue
		}
		for _, a := range item.Rule.Selector.Alternatives {
			if a == selector {
				matches = append(matches, *item.Rule)
				break
			}
		}
	}
	return matches
}

// WriteTo writes the stylesheet to w in source order, implementing io.WriterTo.
// Property order within a rule is sorted alphabetically for deterministic output.
func (s *Stylesheet) WriteTo(w io.Writer) (int64, error) {
	var total int64
	for i, item := range s.Items {
		var n int
		var err error

		switch {
		case item.Comment != nil:
			n, err = fmt.Fprintf(w, "/* %s */\n", strings.ReplaceAll(*item.Comment, "*/", "* /"))
		case item.MediaBlock != nil:
			n, err = writeMediaBlock(w, item.MediaBlock)
		case item.Rule != nil:
			n, err = writeRule(w, item.Rule, "")
		}

		total += int64(n)
		if err != nil {
			return total, err
		}

		// Add blank line between items (except after last)
		if i < len(s.Items)-1 {
			n, err = fmt.Fprint(w, "\n")
			total += int64(n)
			if err != nil {
				return total, err
			}
		}
	}
	return total, nil
}

// String returns the CSS text of the stylesheet.
func (s *Stylesheet) String() string {
	var sb strings.Builder
	s.WriteTo(&sb) //nolint:errcheck
	return sb.String()
}

// writeRule writes a single CSS rule to w, every line prefixed with indent.
func writeRule(w io.Writer, rule *Rule, indent string) (int, error) {
	var total int
	sel := strings.Join(rule.Selector.Alternatives, ",\n"+indent)
	n, err := fmt.Fprintf(w, "%s%s {\n", indent, sel)
	total += n
	if err != nil {
		return total, err
	}
	n, err = writeProperties(w, rule.Properties, indent+"  ")
	total += n
	if err != nil {
		return total, err
	}
	n, err = fmt.Fprintf(w, "%s}\n", indent)
	total += n
	return total, err
}

// writeProperties writes property declarations sorted alphabetically.
func writeProperties(w io.Writer, props map[string]Value, indent string) (int, error) {
	names := make([]string, 0, len(props))
	for name := range props {
		names = append(names, name)
	}
	sort.Strings(names)

	var total int
	for _, name := range names {
		n, err := fmt.Fprintf(w, "%s%s: %s;\n", indent, name, props[name].Raw)
		total += n
		if err != nil {
			return total, err
		}
	}
	return total, nil
}

// writeMediaBlock writes an @media block to w.
func writeMediaBlock(w io.Writer, mb *MediaBlock) (int, error) {
	var total int
	n, err := fmt.Fprintf(w, "@media %s {\n", mb.Query)
	total += n
	if err != nil {
		return total, err
	}

	for i := range mb.Rules {
		n, err = writeRule(w, &mb.Rules[i], "  ")
		total += n
		if err != nil {
			return total, err
		}

		// Blank line between rules in a media block (except after last)
		if i < len(mb.Rules)-1 {
			n, err = fmt.Fprint(w, "\n")
			total += n
			if err != nil {
				return total, err
			}
		}
	}

	n, err = fmt.Fprint(w, "}\n")
	total += n
	return total, err
}
