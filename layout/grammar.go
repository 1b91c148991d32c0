// Package layout implements a small language describing column layouts and
// runs it against a columns.Generator.
package layout

import (
	"fmt"
	"io"
	"strconv"

	"github.com/alecthomas/participle/v2"
	"github.com/alecthomas/participle/v2/lexer"
)

var (
	layoutLexer = lexer.MustSimple([]lexer.SimpleRule{
		{Name: "Whitespace", Pattern: `[ \t\r\n]+`},
		{Name: "BlockComment", Pattern: `/\*[^*]*\*+(?:[^/*][^*]*\*+)*/`},
		{Name: "LineComment", Pattern: `//[^\n]*`},
		{Name: "HashComment", Pattern: `#[^\n]*`},
		{Name: "Dimension", Pattern: `[-+]?(?:\d+\.\d+|\.\d+|\d+)(?:%|[A-Za-z]+)?`},
		{Name: "String", Pattern: `"(?:\\.|[^"])*"`},
		{Name: "Ident", Pattern: `[A-Za-z_][A-Za-z0-9_-]*`},
		{Name: "Punct", Pattern: `[{};:,]`},
	})

	fileParser = participle.MustBuild[File](
		participle.Lexer(layoutLexer),
		participle.Elide("Whitespace", "LineComment", "BlockComment", "HashComment"),
	)
)

// File is the root of a layout description.
type File struct {
	Pos        lexer.Position `parser:""`
	Statements []*Statement   `parser:"( @@ ';'* )*"`
}

// Statement is one instruction executed in order.
type Statement struct {
	Options *OptionsStmt `parser:"  @@"`
	Reset   *ResetStmt   `parser:"| @@"`
	Columns *ColumnsStmt `parser:"| @@"`
	Media   *MediaStmt   `parser:"| @@"`
	Comment *CommentStmt `parser:"| @@"`
}

// OptionsStmt changes generator options, persistently or for the next
// columns statement only.
type OptionsStmt struct {
	Pos      lexer.Position `parser:""`
	Once     bool           `parser:"'options' @'once'?"`
	Settings []*Setting     `parser:"'{' ( @@ ( ';' | ',' )* )* '}'"`
}

// ResetStmt restores configured defaults, optionally overriding some.
type ResetStmt struct {
	Pos      lexer.Position `parser:""`
	Settings []*Setting     `parser:"'reset' ( '{' ( @@ ( ';' | ',' )* )* '}' )?"`
}

// ColumnsStmt emits one row layout. Container may be omitted.
type ColumnsStmt struct {
	Pos       lexer.Position `parser:""`
	Container StringLiteral  `parser:"'columns' @String?"`
	Widths    []string       `parser:"@Dimension+"`
}

// MediaStmt wraps statements into a @media block.
type MediaStmt struct {
	Pos        lexer.Position `parser:""`
	Query      StringLiteral  `parser:"'media' @String"`
	Statements []*Statement   `parser:"'{' ( @@ ';'* )* '}'"`
}

// CommentStmt copies text into the output as a CSS comment.
type CommentStmt struct {
	Pos  lexer.Position `parser:""`
	Text StringLiteral  `parser:"'comment' @String"`
}

// Setting is a single key: value pair.
type Setting struct {
	Pos   lexer.Position `parser:""`
	Key   string         `parser:"@Ident ':'"`
	Value *Value         `parser:"@@"`
}

// Value of a setting.
type Value struct {
	Dimension *string        `parser:"  @Dimension"`
	Quoted    *StringLiteral `parser:"| @String"`
	Ident     *string        `parser:"| @Ident"`
}

func (v *Value) String() string {
	switch {
	case v == nil:
		return ""
	case v.Dimension != nil:
		return *v.Dimension
	case v.Quoted != nil:
		return strconv.Quote(string(*v.Quoted))
	case v.Ident != nil:
		return *v.Ident
	default:
		return ""
	}
}

// StringLiteral unquotes Go-style strings on capture.
type StringLiteral string

// Capture implements participle.Capture.
func (s *StringLiteral) Capture(values []string) error {
	if len(values) == 0 {
		return fmt.Errorf("string literal capture requires value")
	}
	val, err := strconv.Unquote(values[0])
	if err != nil {
		return err
	}
	*s = StringLiteral(val)
	return nil
}

// Parse reads a layout description. name is used in error positions.
func Parse(name string, r io.Reader) (*File, error) {
	return fileParser.Parse(name, r)
}

// ParseString parses a layout description held in memory.
func ParseString(name, input string) (*File, error) {
	return fileParser.ParseString(name, input)
}

// ParseBytes parses a layout description held in memory.
func ParseBytes(name string, data []byte) (*File, error) {
	return fileParser.ParseBytes(name, data)
}

// Walk calls fn for every statement, descending into media blocks. query is
// the enclosing media query, empty at top level.
func (f *File) Walk(fn func(stmt *Statement, query string)) {
	walk(f.Statements, "", fn)
}

func walk(stmts []*Statement, query string, fn func(*Statement, string)) {
	for _, s := range stmts {
		fn(s, query)
		if s.Media != nil {
			walk(s.Media.Statements, string(s.Media.Query), fn)
		}
	}
}
