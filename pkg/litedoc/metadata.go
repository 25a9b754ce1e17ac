package litedoc

import (
	"strconv"
	"strings"

	"github.com/yaklabco/golitedoc/pkg/ldast"
)

// Front-matter delimiters. The opener is matched exactly after trimming.
const (
	metadataOpen  = "--- meta ---"
	metadataClose = "---"
)

// parseMetadata extracts the optional front-matter section. It returns nil
// when the current line does not open one.
func (r *run) parseMetadata() *ldast.Metadata {
	open, ok := r.cur.peek()
	if !ok || r.cur.trimmed(open) != metadataOpen {
		return nil
	}
	r.cur.next()

	meta := &ldast.Metadata{}
	endSpan := r.cur.contentSpan(open)
	closed := false

	for {
		line, ok := r.cur.peek()
		if !ok {
			break
		}
		text := r.cur.text(line)
		trimmed := strings.TrimSpace(text)

		if trimmed == metadataClose {
			endSpan = r.cur.contentSpan(line)
			r.cur.next()
			closed = true
			break
		}

		if trimmed != "" {
			if colon := strings.IndexByte(text, ':'); colon >= 0 {
				key := strings.TrimSpace(text[:colon])
				value, valueSpan := splitValue(text, colon, line.Start)

				parsed, perr := parseValue(value, valueSpan)
				if perr != nil {
					r.record(*perr)
				}
				meta.Entries = append(meta.Entries, ldast.Entry{
					Key:   key,
					Value: parsed,
					Span:  r.cur.contentSpan(line),
				})
			} else {
				r.record(errMalformedMetadata("entry is missing ':'", r.cur.contentSpan(line)))
			}
		}

		endSpan = r.cur.contentSpan(line)
		r.cur.next()
	}

	if !closed {
		r.record(errMalformedMetadata("front matter is missing its closing ---", r.cur.contentSpan(open)))
	}

	meta.Span = ldast.NewSpan(open.Start, endSpan.End)
	return meta
}

// splitValue trims the text after the colon and returns it with its
// absolute byte range.
func splitValue(lineText string, colon, lineStart int) (string, ldast.Span) {
	rest := lineText[colon+1:]
	value := strings.TrimSpace(rest)
	leading := strings.Index(rest, value)
	if value == "" {
		leading = len(rest)
	}
	start := lineStart + colon + 1 + leading
	return value, ldast.NewSpan(start, start+len(value))
}

// parseValue interprets a front-matter value using a small fixed grammar:
// booleans, bracketed lists, integers, floats, quoted strings, and raw
// strings as the fallback. A second return reports an unterminated quote
// or bracket; the raw text is kept as the value in that case.
func parseValue(raw string, span ldast.Span) (ldast.Value, *ParseError) {
	switch raw {
	case "true":
		return ldast.BoolValue(true), nil
	case "false":
		return ldast.BoolValue(false), nil
	}

	if strings.HasPrefix(raw, "[") {
		if !strings.HasSuffix(raw, "]") {
			perr := errMalformedMetadata("unterminated list value", span)
			return ldast.StringValue(raw), &perr
		}
		return parseListValue(raw[1:len(raw)-1], span)
	}

	if n, err := strconv.ParseInt(raw, 10, 64); err == nil {
		return ldast.IntValue(n), nil
	}

	if strings.Contains(raw, ".") {
		if f, err := strconv.ParseFloat(raw, 64); err == nil {
			return ldast.FloatValue(f), nil
		}
	}

	if len(raw) > 0 && (raw[0] == '"' || raw[0] == '\'') {
		if len(raw) >= 2 && raw[len(raw)-1] == raw[0] {
			return ldast.StringValue(raw[1 : len(raw)-1]), nil
		}
		perr := errMalformedMetadata("unterminated quoted value", span)
		return ldast.StringValue(raw), &perr
	}

	return ldast.StringValue(raw), nil
}

// parseListValue splits a bracketed list on commas outside quotes and
// interprets each element recursively. Empty elements are dropped. The
// first element-level problem is reported; later ones are subsumed by it.
func parseListValue(inner string, span ldast.Span) (ldast.Value, *ParseError) {
	var (
		items    ldast.ListValue
		firstErr *ParseError
		start    int
		inQuotes bool
	)

	emit := func(segment string) {
		item := strings.TrimSpace(segment)
		if item == "" {
			return
		}
		value, perr := parseValue(item, span)
		if perr != nil && firstErr == nil {
			firstErr = perr
		}
		items = append(items, value)
	}

	for i := 0; i < len(inner); i++ {
		switch inner[i] {
		case '"', '\'':
			inQuotes = !inQuotes
		case ',':
			if !inQuotes {
				emit(inner[start:i])
				start = i + 1
			}
		}
	}
	emit(inner[start:])

	return items, firstErr
}
