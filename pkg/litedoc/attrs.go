package litedoc

import (
	"strings"

	"github.com/yaklabco/golitedoc/pkg/ldast"
)

// directiveAttr is one key=value pair from a directive open line. Span
// covers the value bytes in the source, quotes excluded.
type directiveAttr struct {
	key   string
	value string
	span  ldast.Span
}

// directiveAttrs scans the rest of a "::name" open line for key=value
// pairs. Values containing spaces must be double-quoted; the quotes are
// stripped. An unterminated quote ends the scan.
func (r *run) directiveAttrs(open ldast.LineInfo, name string) []directiveAttr {
	text := r.cur.text(open)
	marker := strings.Index(text, "::"+name)
	if marker < 0 {
		return nil
	}
	pos := marker + len("::"+name)

	var attrs []directiveAttr
	for pos < len(text) {
		for pos < len(text) && (text[pos] == ' ' || text[pos] == '\t') {
			pos++
		}
		eq := strings.IndexByte(text[pos:], '=')
		if eq < 0 {
			break
		}
		key := strings.TrimSpace(text[pos : pos+eq])
		pos += eq + 1

		var value string
		var valueStart int
		if pos < len(text) && text[pos] == '"' {
			closing := strings.IndexByte(text[pos+1:], '"')
			if closing < 0 {
				break
			}
			valueStart = pos + 1
			value = text[valueStart : valueStart+closing]
			pos = valueStart + closing + 1
		} else {
			valueStart = pos
			if space := strings.IndexByte(text[pos:], ' '); space >= 0 {
				value = text[pos : pos+space]
				pos += space
			} else {
				value = text[pos:]
				pos = len(text)
			}
		}

		if key != "" {
			attrs = append(attrs, directiveAttr{
				key:   key,
				value: value,
				span:  ldast.NewSpan(open.Start+valueStart, open.Start+valueStart+len(value)),
			})
		}
	}
	return attrs
}
