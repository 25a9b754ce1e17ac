package goldmark

import (
	"bytes"

	"github.com/yaklabco/golitedoc/pkg/ldast"
	"github.com/yuin/goldmark/ast"
)

// Span conventions follow the native engine: a block covers its construct
// from the first marker byte to the last content byte, excluding the final
// line terminator; inline nodes cover their delimiters.

// rawLinesSpan covers a block node's recorded line segments, with the final
// terminator trimmed. ok is false when the node records no lines.
func (m *mapper) rawLinesSpan(n ast.Node) (ldast.Span, bool) {
	lines := n.Lines()
	if lines.Len() == 0 {
		return ldast.Span{}, false
	}

	start := lines.At(0).Start
	stop := lines.At(lines.Len() - 1).Stop
	return ldast.NewSpan(start, m.trimBreak(start, stop)), true
}

// lineStartAt returns the offset of the first byte of the line containing
// pos.
func (m *mapper) lineStartAt(pos int) int {
	if pos < 0 {
		return 0
	}
	if pos > len(m.content) {
		pos = len(m.content)
	}
	for pos > 0 && m.content[pos-1] != '\n' {
		pos--
	}
	return pos
}

// lineContentEnd returns the offset just past the last content byte of the
// line containing pos, excluding the terminator.
func (m *mapper) lineContentEnd(pos int) int {
	end := pos
	for end < len(m.content) && m.content[end] != '\n' {
		end++
	}
	if end > pos && m.content[end-1] == '\r' {
		end--
	}
	return end
}

// nextLineStart returns the offset of the line following the terminator at
// pos, or len(content) at end of input.
func (m *mapper) nextLineStart(pos int) int {
	if pos < len(m.content) && m.content[pos] == '\r' {
		pos++
	}
	if pos < len(m.content) && m.content[pos] == '\n' {
		pos++
	}
	return pos
}

// trimBreak walks end back over the terminator bytes of a segment that
// includes its line break.
func (m *mapper) trimBreak(start, end int) int {
	if end > len(m.content) {
		end = len(m.content)
	}
	for end > start && (m.content[end-1] == '\n' || m.content[end-1] == '\r') {
		end--
	}
	return end
}

// nextLineSpan returns the content span of the first non-blank line after
// the scan offset. It serves constructs goldmark records no position for,
// which always sit on the next construct line.
func (m *mapper) nextLineSpan() ldast.Span {
	pos := m.scan
	if pos > m.lineStartAt(pos) {
		pos = m.nextLineStart(m.lineContentEnd(pos))
	}

	for pos < len(m.content) {
		end := m.lineContentEnd(pos)
		if len(bytes.TrimSpace(m.content[pos:end])) > 0 {
			return ldast.NewSpan(pos, end)
		}
		pos = m.nextLineStart(end)
	}

	return ldast.NewSpan(pos, pos)
}

// breakSpanAfter covers a line break starting at pos: trailing spaces or a
// break backslash, then the terminator itself.
func (m *mapper) breakSpanAfter(pos int) ldast.Span {
	end := pos
	for end < len(m.content) {
		switch m.content[end] {
		case ' ', '\t', '\\', '\r':
			end++
			continue
		}
		break
	}
	if end < len(m.content) && m.content[end] == '\n' {
		end++
	}
	return ldast.NewSpan(pos, end)
}

// findFrom locates the needle at or after the scan offset. A miss yields a
// zero-width span at the scan offset, which keeps sibling ordering intact.
func (m *mapper) findFrom(needle []byte) ldast.Span {
	if len(needle) == 0 || m.scan >= len(m.content) {
		return ldast.NewSpan(m.scan, m.scan)
	}
	idx := bytes.Index(m.content[m.scan:], needle)
	if idx < 0 {
		return ldast.NewSpan(m.scan, m.scan)
	}
	start := m.scan + idx
	return ldast.NewSpan(start, start+len(needle))
}

// widenRun extends a span over up to max delimiter bytes on each side.
func (m *mapper) widenRun(span ldast.Span, max int, delims ...byte) ldast.Span {
	isDelim := func(b byte) bool {
		for _, d := range delims {
			if b == d {
				return true
			}
		}
		return false
	}

	start := span.Start
	for k := 0; k < max && start > 0 && isDelim(m.content[start-1]); k++ {
		start--
	}
	end := span.End
	for k := 0; k < max && end < len(m.content) && isDelim(m.content[end]); k++ {
		end++
	}
	return ldast.NewSpan(start, end)
}

// widenCodeSpan extends a code span's content cover over its backtick runs,
// stepping over the single space CommonMark strips from padded spans.
func (m *mapper) widenCodeSpan(span ldast.Span) ldast.Span {
	start := span.Start
	if start > 1 && m.content[start-1] == ' ' && m.content[start-2] == '`' {
		start--
	}
	for start > 0 && m.content[start-1] == '`' {
		start--
	}

	end := span.End
	if end+1 < len(m.content) && m.content[end] == ' ' && m.content[end+1] == '`' {
		end++
	}
	for end < len(m.content) && m.content[end] == '`' {
		end++
	}
	return ldast.NewSpan(start, end)
}

// widenLinkSpan extends a label cover over the bracket syntax around it:
// the opening "[" (plus "!" for images) and the "](...)"/"][...]" tail.
func (m *mapper) widenLinkSpan(span ldast.Span, image bool) ldast.Span {
	start := span.Start
	if start > 0 && m.content[start-1] == '[' {
		start--
		if image && start > 0 && m.content[start-1] == '!' {
			start--
		}
	}

	end := span.End
	if end < len(m.content) && m.content[end] == ']' {
		end++
		if end < len(m.content) {
			switch m.content[end] {
			case '(':
				if close := m.matchParen(end); close > 0 {
					end = close
				}
			case '[':
				if idx := bytes.IndexByte(m.content[end:], ']'); idx >= 0 {
					end += idx + 1
				}
			}
		}
	}

	return ldast.NewSpan(start, end)
}

// matchParen returns the offset just past the parenthesis matching the one
// at open, or 0 when the input ends first.
func (m *mapper) matchParen(open int) int {
	depth := 0
	for i := open; i < len(m.content); i++ {
		switch m.content[i] {
		case '(':
			depth++
		case ')':
			depth--
			if depth == 0 {
				return i + 1
			}
		}
	}
	return 0
}

// fencedSpan covers a fenced code block from the opening fence line through
// the closing fence line. goldmark records only the interior lines, so both
// fences are recovered from the surrounding source.
func (m *mapper) fencedSpan(cb *ast.FencedCodeBlock) ldast.Span {
	lines := cb.Lines()

	var openStart int
	switch {
	case lines.Len() > 0:
		openStart = m.lineStartAt(lines.At(0).Start - 1)
	case cb.Info != nil:
		openStart = m.lineStartAt(cb.Info.Segment.Start)
	default:
		openStart = m.nextLineSpan().Start
	}

	end := m.lineContentEnd(openStart)
	if lines.Len() > 0 {
		end = m.trimBreak(openStart, lines.At(lines.Len()-1).Stop)
	}

	if closeEnd, ok := m.closingFenceEnd(m.nextLineStart(end), m.fenceCharAt(openStart)); ok {
		end = closeEnd
	}

	return ldast.NewSpan(openStart, end)
}

// fenceCharAt returns the fence character of the fence line starting at
// pos, defaulting to a backtick.
func (m *mapper) fenceCharAt(pos int) byte {
	for i := pos; i < len(m.content); i++ {
		switch m.content[i] {
		case ' ', '\t':
			continue
		case '`', '~':
			return m.content[i]
		default:
			return '`'
		}
	}
	return '`'
}

// closingFenceEnd reports whether the line at pos is a closing fence and,
// if so, returns its content end.
func (m *mapper) closingFenceEnd(pos int, fenceChar byte) (int, bool) {
	if pos >= len(m.content) {
		return 0, false
	}

	i := pos
	for spaces := 0; i < len(m.content) && m.content[i] == ' ' && spaces < 3; spaces++ {
		i++
	}

	run := 0
	for i < len(m.content) && m.content[i] == fenceChar {
		i++
		run++
	}
	if run < 3 {
		return 0, false
	}

	end := m.lineContentEnd(pos)
	if len(bytes.TrimSpace(m.content[i:end])) > 0 {
		return 0, false
	}
	return end, true
}

// extendSetextUnderline pulls a setext heading's underline into its span.
// ATX headings, which begin with '#', are returned unchanged.
func (m *mapper) extendSetextUnderline(span ldast.Span) ldast.Span {
	i := span.Start
	for i < len(m.content) && (m.content[i] == ' ' || m.content[i] == '\t') {
		i++
	}
	if i < len(m.content) && m.content[i] == '#' {
		return span
	}

	next := m.nextLineStart(span.End)
	end := m.lineContentEnd(next)
	line := bytes.TrimSpace(m.content[next:end])
	if len(line) == 0 {
		return span
	}
	marker := line[0]
	if marker != '=' && marker != '-' {
		return span
	}
	for _, b := range line {
		if b != marker {
			return span
		}
	}
	return ldast.NewSpan(span.Start, end)
}
