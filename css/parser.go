package css

import (
	"bytes"
	"errors"
	"io"
	"strconv"
	"strings"
	"unicode"

	parse "github.com/tdewolff/parse/v2"
	"github.com/tdewolff/parse/v2/css"
	"go.uber.org/zap"
)

// Parser parses CSS stylesheets into structured rules. It understands the
// subset of CSS the generator emits: plain rulesets with selector lists,
// @media blocks and comments.
type Parser struct {
	log *zap.Logger
}

// NewParser creates a new CSS parser.
func NewParser(log *zap.Logger) *Parser {
	if log == nil {
		log = zap.NewNop()
	}
	return &Parser{log: log.Named("css-parser")}
}

// Parse parses CSS text into a Stylesheet.
// The optional source parameter identifies what's being parsed (for debug logging).
func (p *Parser) Parse(data []byte, source ...string) *Stylesheet {
	sheet := &Stylesheet{
		Items:    make([]StylesheetItem, 0),
		Warnings: make([]string, 0),
	}

	if len(source) > 0 && source[0] != "" {
		p.log.Debug("Parsing CSS", zap.String("source", source[0]), zap.Int("bytes", len(data)))
	}

	parser := css.NewParser(parse.NewInput(bytes.NewReader(data)), false)

	for {
		gt, _, data := parser.Next()

		switch gt {
		case css.ErrorGrammar:
			// End of input or error
			if err := parser.Err(); err != nil && !errors.Is(err, io.EOF) {
				sheet.Warnings = append(sheet.Warnings, "parse error: "+err.Error())
				p.log.Debug("CSS parse error", zap.Error(err))
			}
			return sheet

		case css.BeginAtRuleGrammar:
			atRule := string(data)
			if strings.EqualFold(atRule, "@media") {
				query := joinTokens(parser.Values())
				rules := p.parseMediaBlockRules(parser, sheet)
				p.log.Debug("Parsed @media block", zap.String("query", query), zap.Int("rules", len(rules)))
				sheet.Items = append(sheet.Items, StylesheetItem{
					MediaBlock: &MediaBlock{Query: query, Rules: rules},
				})
				continue
			}
			sheet.Warnings = append(sheet.Warnings, "unsupported at-rule: "+atRule)
			p.skipAtRuleBlock(parser)
			p.log.Debug("Skipping @-rule", zap.String("rule", atRule))

		case css.AtRuleGrammar:
			sheet.Warnings = append(sheet.Warnings, "unsupported at-rule: "+string(data))
			p.log.Debug("Skipping @-rule", zap.String("rule", string(data)))

		case css.CommentGrammar:
			text := strings.TrimSuffix(strings.TrimPrefix(string(data), "/*"), "*/")
			sheet.AddComment(strings.TrimSpace(text))

		case css.BeginRulesetGrammar:
			rule := NewRule(p.parseSelectors(data, parser.Values()))
			rule.Properties = p.parseDeclarations(parser)
			sheet.Items = append(sheet.Items, StylesheetItem{Rule: &rule})
		}
	}
}

// parseSelectors builds a selector list from token data.
func (p *Parser) parseSelectors(data []byte, values []css.Token) Selector {
	var sb strings.Builder
	sb.Write(data)
	for _, v := range values {
		sb.Write(v.Data)
	}

	return NewSelector(SplitList(sb.String())...)
}

// parseDeclarations parses property declarations until EndRulesetGrammar.
func (p *Parser) parseDeclarations(parser *css.Parser) map[string]Value {
	props := make(map[string]Value)

	for {
		gt, _, data := parser.Next()

		switch gt {
		case css.ErrorGrammar, css.EndRulesetGrammar:
			return props

		case css.DeclarationGrammar:
			propName := strings.ToLower(string(data))
			values := parser.Values()
			if len(values) > 0 {
				props[propName] = p.parsePropertyValue(values)
			}

		case css.CustomPropertyGrammar:
			// CSS custom properties (--var) are not produced by the generator
			continue
		}
	}
}

// parsePropertyValue converts CSS tokens to a Value.
func (p *Parser) parsePropertyValue(tokens []css.Token) Value {
	if len(tokens) == 0 {
		return Value{}
	}

	val := Value{Raw: joinTokens(tokens)}

	// Multi-token values (calc() and friends) are kept as expressions
	significant := 0
	for _, t := range tokens {
		if t.TokenType != css.WhitespaceToken {
			significant++
		}
	}
	if significant != 1 {
		val.Keyword = val.Raw
		return val
	}

	t := tokens[0]
	switch t.TokenType {
	case css.DimensionToken:
		val.Value, val.Unit = parseDimension(string(t.Data))
	case css.PercentageToken:
		val.Value, _ = strconv.ParseFloat(strings.TrimSuffix(string(t.Data), "%"), 64)
		val.Unit = "%"
	case css.NumberToken:
		val.Value, _ = strconv.ParseFloat(string(t.Data), 64)
	case css.IdentToken:
		val.Keyword = strings.ToLower(string(t.Data))
	default:
		val.Keyword = val.Raw
	}
	return val
}

// parseDimension extracts numeric value and unit from dimension token.
func parseDimension(s string) (float64, string) {
	numEnd := 0
	for i, r := range s {
		if unicode.IsDigit(r) || r == '.' || r == '-' || r == '+' {
			numEnd = i + 1
		} else {
			break
		}
	}

	if numEnd == 0 {
		return 0, ""
	}

	num, _ := strconv.ParseFloat(s[:numEnd], 64)
	unit := strings.ToLower(s[numEnd:])
	return num, unit
}

// skipAtRuleBlock skips tokens until the matching end of an @-rule block.
func (p *Parser) skipAtRuleBlock(parser *css.Parser) {
	depth := 1
	for depth > 0 {
		gt, _, _ := parser.Next()
		switch gt {
		case css.ErrorGrammar:
			return
		case css.BeginAtRuleGrammar, css.BeginRulesetGrammar:
			depth++
		case css.EndAtRuleGrammar, css.EndRulesetGrammar:
			depth--
		}
	}
}

// parseMediaBlockRules parses rules inside an @media block and returns them.
func (p *Parser) parseMediaBlockRules(parser *css.Parser, sheet *Stylesheet) []Rule {
	var rules []Rule

	for {
		gt, _, data := parser.Next()

		switch gt {
		case css.ErrorGrammar, css.EndAtRuleGrammar:
			return rules

		case css.BeginAtRuleGrammar:
			sheet.Warnings = append(sheet.Warnings, "nested at-rule ignored: "+string(data))
			p.skipAtRuleBlock(parser)

		case css.BeginRulesetGrammar:
			rule := NewRule(p.parseSelectors(data, parser.Values()))
			rule.Properties = p.parseDeclarations(parser)
			rules = append(rules, rule)
		}
	}
}

// joinTokens rebuilds source text from tokens collapsing whitespace runs.
func joinTokens(tokens []css.Token) string {
	var rawParts []string
	for _, t := range tokens {
		if t.TokenType != css.WhitespaceToken {
			rawParts = append(rawParts, string(t.Data))
		} else if len(rawParts) > 0 {
			rawParts = append(rawParts, " ")
		}
	}
	return strings.TrimSpace(strings.Join(rawParts, ""))
}

func normalizeSpace(s string) string {
	return strings.Join(strings.Fields(s), " ")
}
