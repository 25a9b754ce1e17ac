package ldast

import "sort"

// LineInfo records the byte extent of a single source line.
type LineInfo struct {
	// Start is the offset of the first byte of the line.
	Start int
	// NewlineStart is the offset where the line terminator begins; for the
	// final line without a terminator it equals End.
	NewlineStart int
	// End is the offset just past the line terminator.
	End int
}

// Lines is a line index over a source buffer, used to map byte offsets to
// line/column positions when rendering diagnostics.
type Lines []LineInfo

// BuildLines indexes every line of src. It handles both LF (\n) and CRLF
// (\r\n) line endings; the final line is included even without a trailing
// newline.
func BuildLines(src string) Lines {
	if len(src) == 0 {
		return Lines{}
	}

	var lines Lines
	lineStart := 0

	for idx := 0; idx < len(src); idx++ {
		if src[idx] == '\n' {
			newlineStart := idx
			if idx > 0 && src[idx-1] == '\r' {
				newlineStart = idx - 1
			}

			lines = append(lines, LineInfo{
				Start:        lineStart,
				NewlineStart: newlineStart,
				End:          idx + 1,
			})
			lineStart = idx + 1
		}
	}

	if lineStart <= len(src) {
		lines = append(lines, LineInfo{
			Start:        lineStart,
			NewlineStart: len(src),
			End:          len(src),
		})
	}

	return lines
}

// At returns the zero-based index of the line containing the byte offset.
// Offsets at or past the end of the buffer map to the last line; negative
// offsets return -1.
func (ls Lines) At(offset int) int {
	if offset < 0 || len(ls) == 0 {
		return -1
	}

	if offset >= ls[len(ls)-1].End {
		return len(ls) - 1
	}

	idx := sort.Search(len(ls), func(i int) bool {
		return ls[i].End > offset
	})
	if idx >= len(ls) {
		idx = len(ls) - 1
	}
	return idx
}

// Position maps a byte offset to a 1-based line/column position. Columns
// count bytes, not runes. Out-of-range offsets yield the zero Position.
func (ls Lines) Position(offset int) Position {
	idx := ls.At(offset)
	if idx < 0 {
		return Position{}
	}
	return Position{
		Line:   idx + 1,
		Column: offset - ls[idx].Start + 1,
	}
}

// Content returns the text of the 1-based line number, excluding the line
// terminator. Out-of-range line numbers yield the empty string.
func (ls Lines) Content(src string, line int) string {
	if line < 1 || line > len(ls) {
		return ""
	}
	info := ls[line-1]
	if info.Start > len(src) || info.NewlineStart > len(src) {
		return ""
	}
	return src[info.Start:info.NewlineStart]
}

// Position is a 1-based line and column location derived from a byte offset.
type Position struct {
	Line   int `json:"line"`
	Column int `json:"column"`
}
