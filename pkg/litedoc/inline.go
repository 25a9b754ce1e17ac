package litedoc

import (
	"strings"

	"github.com/yaklabco/golitedoc/pkg/ldast"
)

// inlineOptions gates which inline constructs the scanner recognizes.
// Disabled constructs degrade to literal text.
type inlineOptions struct {
	wikiLinks     bool
	footnoteRefs  bool
	strikethrough bool
}

func (p policy) inlineOptions() inlineOptions {
	return inlineOptions{
		wikiLinks:     p.wikiLinks,
		footnoteRefs:  p.footnoteRefs,
		strikethrough: p.strikethrough,
	}
}

// parseInlines scans src[start:end] left to right and returns the inline
// nodes with absolute byte spans. The scan is total: malformed delimiter
// sequences never fail, they fall back to literal text.
func parseInlines(src string, start, end int, opts inlineOptions) []ldast.Inline {
	if start >= end {
		return nil
	}
	s := &inlineScanner{
		src:       src,
		start:     start,
		end:       end,
		pos:       start,
		textStart: start,
		opts:      opts,
	}
	return s.run()
}

// inlineScanner walks one leaf text span. Positions are absolute offsets
// into src, constrained to [start, end).
type inlineScanner struct {
	src   string
	start int
	end   int
	pos   int
	opts  inlineOptions

	nodes     []ldast.Inline
	textStart int
}

func (s *inlineScanner) run() []ldast.Inline {
	for s.pos < s.end {
		next := s.findSpecial()
		if next >= s.end {
			break
		}
		s.pos = next

		var parsed bool
		switch s.src[s.pos] {
		case '\\':
			parsed = s.scanEscape()
		case '`':
			parsed = s.scanCodeSpan()
		case '[':
			parsed = s.scanBracket()
		case '*':
			parsed = s.scanAsterisk()
		case '~':
			parsed = s.scanStrikethrough()
		case '<':
			parsed = s.scanAngleAutolink()
		case 'h', 'm':
			parsed = s.scanBareAutolink()
		case '\n':
			parsed = s.scanBreak()
		}

		if !parsed {
			s.pos++
		}
	}

	s.flushUpTo(s.end)
	return s.nodes
}

// findSpecial returns the offset of the next byte that may open an inline
// construct, or end when none remains.
func (s *inlineScanner) findSpecial() int {
	for i := s.pos; i < s.end; i++ {
		switch s.src[i] {
		case '\\', '`', '[', '*', '~', '<', 'h', 'm', '\n':
			return i
		}
	}
	return s.end
}

// flush emits accumulated literal text up to the current position.
func (s *inlineScanner) flush() {
	s.flushUpTo(s.pos)
}

func (s *inlineScanner) flushUpTo(end int) {
	if s.textStart < end {
		s.nodes = append(s.nodes, &ldast.Text{
			Content: s.src[s.textStart:end],
			Span:    ldast.NewSpan(s.textStart, end),
		})
	}
	if end > s.textStart {
		s.textStart = end
	}
}

// scanEscape consumes a backslash and the byte after it. Both stay in the
// literal text; the escaped byte never opens a construct.
func (s *inlineScanner) scanEscape() bool {
	if s.pos+1 >= s.end {
		return false
	}
	s.pos += 2
	return true
}

// scanCodeSpan matches a backtick run against a closing run of the same
// length. The interior is never inline-parsed.
func (s *inlineScanner) scanCodeSpan() bool {
	open := s.pos
	contentStart := open
	for contentStart < s.end && s.src[contentStart] == '`' {
		contentStart++
	}
	runLen := contentStart - open

	for i := contentStart; i < s.end; {
		if s.src[i] != '`' {
			i++
			continue
		}
		j := i
		for j < s.end && s.src[j] == '`' {
			j++
		}
		if j-i == runLen {
			s.flush()
			s.nodes = append(s.nodes, &ldast.CodeSpan{
				Content: s.src[contentStart:i],
				Span:    ldast.NewSpan(open, j),
			})
			s.pos = j
			s.textStart = j
			return true
		}
		i = j
	}

	// No closing run of the same length; the opener run stays literal.
	s.pos = contentStart
	return true
}

func (s *inlineScanner) scanBracket() bool {
	if s.pos+1 >= s.end {
		return false
	}
	switch s.src[s.pos+1] {
	case '[':
		if s.opts.wikiLinks {
			return s.scanWikiLink()
		}
	case '^':
		if s.opts.footnoteRefs {
			return s.scanFootnoteRef()
		}
	}
	return false
}

// scanWikiLink parses [[label|destination]]; without a pipe the whole
// content serves as both. The label is a single literal text node.
func (s *inlineScanner) scanWikiLink() bool {
	open := s.pos
	contentStart := open + 2

	idx := strings.Index(s.src[contentStart:s.end], "]]")
	if idx < 0 {
		return false
	}
	closeAt := contentStart + idx
	content := s.src[contentStart:closeAt]

	label := content
	dest := content
	if pipe := strings.IndexByte(content, '|'); pipe >= 0 {
		label = content[:pipe]
		dest = content[pipe+1:]
	}

	s.flush()
	s.nodes = append(s.nodes, &ldast.Link{
		Label: []ldast.Inline{&ldast.Text{
			Content: label,
			Span:    ldast.NewSpan(contentStart, contentStart+len(label)),
		}},
		Destination: dest,
		Span:        ldast.NewSpan(open, closeAt+2),
	})
	s.pos = closeAt + 2
	s.textStart = s.pos
	return true
}

// scanFootnoteRef parses [^label]. Dangling references are legal; the
// definition may appear later or not at all.
func (s *inlineScanner) scanFootnoteRef() bool {
	open := s.pos
	labelStart := open + 2

	idx := strings.IndexByte(s.src[labelStart:s.end], ']')
	if idx < 0 {
		return false
	}
	closeAt := labelStart + idx

	s.flush()
	s.nodes = append(s.nodes, &ldast.FootnoteRef{
		Label: s.src[labelStart:closeAt],
		Span:  ldast.NewSpan(open, closeAt+1),
	})
	s.pos = closeAt + 1
	s.textStart = s.pos
	return true
}

func (s *inlineScanner) scanAsterisk() bool {
	if s.pos+1 < s.end && s.src[s.pos+1] == '*' {
		return s.scanStrong()
	}
	return s.scanEmphasis()
}

// scanStrong parses **text**. The opener must not be followed by a space
// and the closer must not be preceded by one. The interior is re-scanned
// so nested emphasis works.
func (s *inlineScanner) scanStrong() bool {
	open := s.pos
	contentStart := open + 2

	if contentStart >= s.end || s.src[contentStart] == ' ' {
		return false
	}

	for i := contentStart; ; {
		idx := strings.IndexByte(s.src[i:s.end], '*')
		if idx < 0 {
			return false
		}
		at := i + idx
		if at+1 < s.end && s.src[at+1] == '*' && at > contentStart && s.src[at-1] != ' ' {
			s.flush()
			s.nodes = append(s.nodes, &ldast.Strong{
				Children: parseInlines(s.src, contentStart, at, s.opts),
				Span:     ldast.NewSpan(open, at+2),
			})
			s.pos = at + 2
			s.textStart = s.pos
			return true
		}
		i = at + 1
	}
}

// scanEmphasis parses *text*, skipping ** pairs while searching for the
// closer so strong runs inside stay intact.
func (s *inlineScanner) scanEmphasis() bool {
	open := s.pos
	contentStart := open + 1

	if contentStart >= s.end || s.src[contentStart] == ' ' {
		return false
	}

	for i := contentStart; ; {
		idx := strings.IndexByte(s.src[i:s.end], '*')
		if idx < 0 {
			return false
		}
		at := i + idx
		if at+1 < s.end && s.src[at+1] == '*' {
			i = at + 2
			continue
		}
		if at > contentStart && s.src[at-1] != ' ' {
			s.flush()
			s.nodes = append(s.nodes, &ldast.Emphasis{
				Children: parseInlines(s.src, contentStart, at, s.opts),
				Span:     ldast.NewSpan(open, at+1),
			})
			s.pos = at + 1
			s.textStart = s.pos
			return true
		}
		i = at + 1
	}
}

// scanStrikethrough parses ~~text~~ with the same flank rules as strong.
func (s *inlineScanner) scanStrikethrough() bool {
	if !s.opts.strikethrough {
		return false
	}
	if s.pos+1 >= s.end || s.src[s.pos+1] != '~' {
		return false
	}

	open := s.pos
	contentStart := open + 2

	if contentStart >= s.end || s.src[contentStart] == ' ' {
		return false
	}

	for i := contentStart; ; {
		idx := strings.IndexByte(s.src[i:s.end], '~')
		if idx < 0 {
			return false
		}
		at := i + idx
		if at+1 < s.end && s.src[at+1] == '~' && at > contentStart && s.src[at-1] != ' ' {
			s.flush()
			s.nodes = append(s.nodes, &ldast.Strikethrough{
				Children: parseInlines(s.src, contentStart, at, s.opts),
				Span:     ldast.NewSpan(open, at+2),
			})
			s.pos = at + 2
			s.textStart = s.pos
			return true
		}
		i = at + 1
	}
}

// scanAngleAutolink parses <uri>. The interior must look like a URI: a
// scheme separator or mailto prefix, and no whitespace.
func (s *inlineScanner) scanAngleAutolink() bool {
	open := s.pos

	idx := strings.IndexByte(s.src[open+1:s.end], '>')
	if idx < 0 {
		return false
	}
	closeAt := open + 1 + idx
	uri := s.src[open+1 : closeAt]

	if !strings.Contains(uri, "://") && !strings.HasPrefix(uri, "mailto:") {
		return false
	}
	if strings.ContainsAny(uri, " \n") {
		return false
	}

	s.flush()
	s.nodes = append(s.nodes, &ldast.AutoLink{
		Destination: uri,
		Span:        ldast.NewSpan(open, closeAt+1),
	})
	s.pos = closeAt + 1
	s.textStart = s.pos
	return true
}

// scanBareAutolink recognizes http://, https:// and mailto: URIs without
// angle brackets, trimming trailing sentence punctuation.
func (s *inlineScanner) scanBareAutolink() bool {
	open := s.pos
	if open > s.start && isWordByte(s.src[open-1]) {
		return false
	}

	rest := s.src[open:s.end]
	var schemeLen int
	switch {
	case strings.HasPrefix(rest, "https://"):
		schemeLen = len("https://")
	case strings.HasPrefix(rest, "http://"):
		schemeLen = len("http://")
	case strings.HasPrefix(rest, "mailto:"):
		schemeLen = len("mailto:")
	default:
		return false
	}

	body := open + schemeLen
	end := body
	for end < s.end && !isURIBoundary(s.src[end]) {
		end++
	}
	for end > body && isTrailingPunct(s.src[end-1]) {
		end--
	}
	if end == body {
		return false
	}

	s.flush()
	s.nodes = append(s.nodes, &ldast.AutoLink{
		Destination: s.src[open:end],
		Span:        ldast.NewSpan(open, end),
	})
	s.pos = end
	s.textStart = s.pos
	return true
}

// scanBreak turns a newline into a break node: hard when the line ends
// with two or more spaces, soft otherwise. The trailing spaces and any
// carriage return fold into the break span rather than the text.
func (s *inlineScanner) scanBreak() bool {
	nl := s.pos

	textEnd := nl
	if textEnd > s.start && s.src[textEnd-1] == '\r' {
		textEnd--
	}
	spaces := 0
	for textEnd-spaces > s.start && s.src[textEnd-spaces-1] == ' ' {
		spaces++
	}
	breakStart := textEnd - spaces

	s.flushUpTo(breakStart)
	span := ldast.NewSpan(breakStart, nl+1)
	if spaces >= 2 {
		s.nodes = append(s.nodes, &ldast.HardBreak{Span: span})
	} else {
		s.nodes = append(s.nodes, &ldast.SoftBreak{Span: span})
	}
	s.pos = nl + 1
	s.textStart = s.pos
	return true
}

func isWordByte(b byte) bool {
	return b >= 'a' && b <= 'z' || b >= 'A' && b <= 'Z' || b >= '0' && b <= '9'
}

func isURIBoundary(b byte) bool {
	switch b {
	case ' ', '\t', '\r', '\n', '<', '>', '"', '`':
		return true
	}
	return false
}

func isTrailingPunct(b byte) bool {
	switch b {
	case '.', ',', ';', ':', '!', '?', ')':
		return true
	}
	return false
}
