package ldast

import "fmt"

// Span identifies a byte range in the source buffer. Start and End are
// offsets into the original input; End is exclusive. Every node owns exactly
// one span covering the text it was derived from, and sibling spans within
// one sequence are non-decreasing and non-overlapping.
type Span struct {
	Start int `json:"start"`
	End   int `json:"end"`
}

// NewSpan creates a span from start and end byte offsets.
func NewSpan(start, end int) Span {
	return Span{Start: start, End: end}
}

// Len returns the number of bytes the span covers.
func (s Span) Len() int {
	return s.End - s.Start
}

// IsEmpty reports whether the span covers no bytes.
func (s Span) IsEmpty() bool {
	return s.End <= s.Start
}

// Contains reports whether the byte offset falls inside the span.
func (s Span) Contains(offset int) bool {
	return offset >= s.Start && offset < s.End
}

// Cover returns the smallest span covering both s and other.
func (s Span) Cover(other Span) Span {
	out := s
	if other.Start < out.Start {
		out.Start = other.Start
	}
	if other.End > out.End {
		out.End = other.End
	}
	return out
}

// Text returns the source text the span covers. Spans outside the buffer
// bounds yield the empty string.
func (s Span) Text(source string) string {
	if s.Start < 0 || s.End > len(source) || s.IsEmpty() {
		return ""
	}
	return source[s.Start:s.End]
}

// String formats the span as "start..end".
func (s Span) String() string {
	return fmt.Sprintf("%d..%d", s.Start, s.End)
}
