package litedoc

import (
	"strings"

	"github.com/yaklabco/golitedoc/pkg/ldast"
)

// cursor walks a source buffer line by line. It is the only mutable parse
// state shared between the block-level parsing functions; all lookahead is
// a single line.
type cursor struct {
	src   string
	lines ldast.Lines
	pos   int
}

func newCursor(src string) *cursor {
	lines := ldast.BuildLines(src)

	// BuildLines appends an empty line after a trailing newline so that
	// offset-to-position mapping covers the whole buffer. The parser wants
	// one line per terminator, so drop it.
	if n := len(lines); n > 1 && lines[n-1].Start == len(src) {
		lines = lines[:n-1]
	}

	return &cursor{src: src, lines: lines}
}

// eof reports whether all lines have been consumed.
func (c *cursor) eof() bool {
	return c.pos >= len(c.lines)
}

// peek returns the current line without consuming it.
func (c *cursor) peek() (ldast.LineInfo, bool) {
	if c.eof() {
		return ldast.LineInfo{}, false
	}
	return c.lines[c.pos], true
}

// next consumes and returns the current line.
func (c *cursor) next() (ldast.LineInfo, bool) {
	line, ok := c.peek()
	if ok {
		c.pos++
	}
	return line, ok
}

// text returns the content of a line, excluding the terminator.
func (c *cursor) text(line ldast.LineInfo) string {
	return c.src[line.Start:line.NewlineStart]
}

// trimmed returns the line content with surrounding whitespace removed.
func (c *cursor) trimmed(line ldast.LineInfo) string {
	return strings.TrimSpace(c.text(line))
}

// contentSpan is the byte range of the line content, terminator excluded.
func (c *cursor) contentSpan(line ldast.LineInfo) ldast.Span {
	return ldast.NewSpan(line.Start, line.NewlineStart)
}

// skipBlank consumes consecutive blank lines.
func (c *cursor) skipBlank() {
	for {
		line, ok := c.peek()
		if !ok || !isBlank(c.text(line)) {
			return
		}
		c.pos++
	}
}

func isBlank(text string) bool {
	return strings.TrimSpace(text) == ""
}
