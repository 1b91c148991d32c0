// Package debug has helpers producing human readable dumps for debug reports.
package debug

import (
	"fmt"
	"strconv"
	"strings"
)

// TreeWriter accumulates an indented tree, two spaces per level.
type TreeWriter struct {
	sb    strings.Builder
	depth int
}

func NewTreeWriter() *TreeWriter {
	return &TreeWriter{}
}

func (tw *TreeWriter) String() string {
	return tw.sb.String()
}

// Push makes following lines children of the last one.
func (tw *TreeWriter) Push() {
	tw.depth++
}

// Pop returns to the parent level, never above the root.
func (tw *TreeWriter) Pop() {
	if tw.depth > 0 {
		tw.depth--
	}
}

func (tw *TreeWriter) Line(format string, args ...any) {
	tw.indent()
	fmt.Fprintf(&tw.sb, format, args...)
	tw.sb.WriteByte('\n')
}

// Field writes "label: value" with value quoted, empty values are left bare.
func (tw *TreeWriter) Field(label, value string) {
	tw.indent()
	tw.sb.WriteString(label)
	tw.sb.WriteString(":")
	if value != "" {
		tw.sb.WriteByte(' ')
		tw.sb.WriteString(strconv.Quote(value))
	}
	tw.sb.WriteByte('\n')
}

func (tw *TreeWriter) indent() {
	for range tw.depth {
		tw.sb.WriteString("  ")
	}
}
