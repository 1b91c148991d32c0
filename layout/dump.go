package layout

import (
	"strings"

	"colcss/utils/debug"
)

// Dump renders parsed file as an indented statement tree.
func Dump(file *File) string {
	tw := debug.NewTreeWriter()
	tw.Line("file %s", file.Pos.Filename)
	tw.Push()
	dumpStatements(tw, file.Statements)
	return tw.String()
}

func dumpStatements(tw *debug.TreeWriter, stmts []*Statement) {
	for _, s := range stmts {
		switch {
		case s.Options != nil:
			kind := "options"
			if s.Options.Once {
				kind = "options once"
			}
			tw.Line("%s @%d:%d", kind, s.Options.Pos.Line, s.Options.Pos.Column)
			dumpSettings(tw, s.Options.Settings)
		case s.Reset != nil:
			tw.Line("reset @%d:%d", s.Reset.Pos.Line, s.Reset.Pos.Column)
			dumpSettings(tw, s.Reset.Settings)
		case s.Columns != nil:
			tw.Line("columns @%d:%d", s.Columns.Pos.Line, s.Columns.Pos.Column)
			tw.Push()
			tw.Field("container", string(s.Columns.Container))
			tw.Line("widths: %s", strings.Join(s.Columns.Widths, " "))
			tw.Pop()
		case s.Media != nil:
			tw.Line("media @%d:%d", s.Media.Pos.Line, s.Media.Pos.Column)
			tw.Push()
			tw.Field("query", string(s.Media.Query))
			dumpStatements(tw, s.Media.Statements)
			tw.Pop()
		case s.Comment != nil:
			tw.Line("comment @%d:%d", s.Comment.Pos.Line, s.Comment.Pos.Column)
			tw.Push()
			tw.Field("text", string(s.Comment.Text))
			tw.Pop()
		}
	}
}

func dumpSettings(tw *debug.TreeWriter, settings []*Setting) {
	tw.Push()
	for _, s := range settings {
		tw.Line("%s = %s", NormalizeKey(s.Key), s.Value)
	}
	tw.Pop()
}
