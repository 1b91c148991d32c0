// Package preview applies generated stylesheets to HTML documents and reports
// which column every element ends up in.
package preview

import (
	"fmt"
	"io"
	"regexp"
	"slices"
	"strconv"
	"strings"
	"text/tabwriter"

	"github.com/PuerkitoBio/goquery"
	"github.com/andybalholm/cascadia"
	"go.uber.org/zap"
	"golang.org/x/net/html"

	"colcss/css"
)

var (
	structuralToken = regexp.MustCompile(`:nth-of-type\((\d+)n\+(\d+)\)`)
	attributeToken  = regexp.MustCompile(`~="(\d+-\d+)"`)
)

// Element is an element matched by at least one rule.
type Element struct {
	Path         string            // tag, id and classes of the element and its ancestors
	Column       string            // N-K token when the winning selector names one
	Selector     string            // winning alternative of the last applied rule
	Declarations map[string]string // cascaded property values
}

// Report lists matched elements in document order.
type Report struct {
	Elements []Element
}

// Load reads an HTML document.
func Load(r io.Reader) (*goquery.Document, error) {
	doc, err := goquery.NewDocumentFromReader(r)
	if err != nil {
		return nil, fmt.Errorf("unable to parse html: %w", err)
	}
	return doc, nil
}

type compiled struct {
	order int
	rule  *css.Rule
	sels  []cascadia.Sel
}

// Explainer matches stylesheet rules against documents.
type Explainer struct {
	log   *zap.Logger
	rules []compiled
}

// NewExplainer compiles every alternative of top level rules and of rules in
// media blocks whose query is listed in media.
func NewExplainer(log *zap.Logger, sheet *css.Stylesheet, media ...string) (*Explainer, error) {
	if log == nil {
		log = zap.NewNop()
	}
	e := &Explainer{log: log.Named("preview")}

	add := func(rule *css.Rule) error {
		c := compiled{order: len(e.rules), rule: rule}
		for _, alt := range rule.Selector.Alternatives {
			sel, err := cascadia.Parse(alt)
			if err != nil {
				return fmt.Errorf("unable to compile selector %q: %w", alt, err)
			}
			c.sels = append(c.sels, sel)
		}
		e.rules = append(e.rules, c)
		return nil
	}

	for _, item := range sheet.Items {
		switch {
		case item.Rule != nil:
			if err := add(item.Rule); err != nil {
				return nil, err
			}
		case item.MediaBlock != nil:
			if !slices.Contains(media, item.MediaBlock.Query) {
				e.log.Debug("Media block skipped", zap.String("query", item.MediaBlock.Query))
				continue
			}
			for i := range item.MediaBlock.Rules {
				if err := add(&item.MediaBlock.Rules[i]); err != nil {
					return nil, err
				}
			}
		}
	}
	return e, nil
}

// Explain is a shortcut for NewExplainer followed by Explain.
func Explain(doc *goquery.Document, sheet *css.Stylesheet, media ...string) (Report, error) {
	e, err := NewExplainer(nil, sheet, media...)
	if err != nil {
		return Report{}, err
	}
	return e.Explain(doc), nil
}

type hit struct {
	spec  cascadia.Specificity
	order int
	alt   string
	rule  *css.Rule
}

// Explain cascades compiled rules over every element of doc. Among matching
// rules the higher specificity wins, equal specificity goes to the later
// rule.
func (e *Explainer) Explain(doc *goquery.Document) Report {
	var report Report
	doc.Find("*").Each(func(_ int, s *goquery.Selection) {
		node := s.Get(0)

		var hits []hit
		for _, c := range e.rules {
			best, found := hit{}, false
			for i, sel := range c.sels {
				if !sel.Match(node) {
					continue
				}
				if spec := sel.Specificity(); !found || best.spec.Less(spec) {
					best = hit{spec: spec, order: c.order, alt: c.rule.Selector.Alternatives[i], rule: c.rule}
					found = true
				}
			}
			if found {
				hits = append(hits, best)
			}
		}
		if len(hits) == 0 {
			return
		}

		slices.SortStableFunc(hits, func(a, b hit) int {
			switch {
			case a.spec.Less(b.spec):
				return -1
			case b.spec.Less(a.spec):
				return 1
			default:
				return a.order - b.order
			}
		})

		el := Element{Path: path(node), Declarations: make(map[string]string)}
		for _, h := range hits {
			for name, v := range h.rule.Properties {
				el.Declarations[name] = v.Raw
			}
			el.Selector = h.alt
			if token := columnToken(h.alt); token != "" {
				el.Column = token
			}
		}
		report.Elements = append(report.Elements, el)
	})
	e.log.Debug("Document explained", zap.Int("elements", len(report.Elements)))
	return report
}

// Columns returns the column token of every element matched with one, in
// document order.
func (r Report) Columns() []string {
	var out []string
	for _, el := range r.Elements {
		if el.Column != "" {
			out = append(out, el.Column)
		}
	}
	return out
}

// WriteTo prints the report as an aligned table.
func (r Report) WriteTo(w io.Writer) (int64, error) {
	cw := &countingWriter{w: w}
	tw := tabwriter.NewWriter(cw, 0, 4, 2, ' ', 0)
	fmt.Fprintln(tw, "ELEMENT\tCOLUMN\tWIDTH\tCLEAR\tSELECTOR")
	for _, el := range r.Elements {
		fmt.Fprintf(tw, "%s\t%s\t%s\t%s\t%s\n",
			el.Path, orDash(el.Column), orDash(el.Declarations["width"]), orDash(el.Declarations["clear"]), el.Selector)
	}
	err := tw.Flush()
	return cw.n, err
}

type countingWriter struct {
	w io.Writer
	n int64
}

func (c *countingWriter) Write(p []byte) (int, error) {
	n, err := c.w.Write(p)
	c.n += int64(n)
	return n, err
}

func orDash(s string) string {
	if s == "" {
		return "-"
	}
	return s
}

// columnToken extracts N-K from attribute and structural alternatives.
// Sibling chains carry no column count and yield "".
func columnToken(alt string) string {
	if m := attributeToken.FindStringSubmatch(alt); m != nil {
		return m[1]
	}
	if m := structuralToken.FindStringSubmatch(alt); m != nil {
		return m[1] + "-" + m[2]
	}
	return ""
}

func path(n *html.Node) string {
	var parts []string
	for ; n != nil && n.Type == html.ElementNode; n = n.Parent {
		parts = append(parts, label(n))
	}
	slices.Reverse(parts)
	return strings.Join(parts, " > ")
}

func label(n *html.Node) string {
	var sb strings.Builder
	sb.WriteString(n.Data)
	for _, a := range n.Attr {
		switch a.Key {
		case "id":
			sb.WriteString("#" + a.Val)
		case "class":
			for _, c := range strings.Fields(a.Val) {
				sb.WriteString("." + c)
			}
		}
	}
	if idx := index(n); idx > 0 {
		sb.WriteString(":" + strconv.Itoa(idx))
	}
	return sb.String()
}

// index returns the 1-based position of n among element siblings, 0 when it
// is an only child.
func index(n *html.Node) int {
	if n.Parent == nil {
		return 0
	}
	pos, count := 0, 0
	for c := n.Parent.FirstChild; c != nil; c = c.NextSibling {
		if c.Type != html.ElementNode {
			continue
		}
		count++
		if c == n {
			pos = count
		}
	}
	if count == 1 {
		return 0
	}
	return pos
}
