package litedoc

import (
	"fmt"
	"strconv"
	"strings"

	"github.com/yaklabco/golitedoc/pkg/ldast"
)

// maxHeadingLevel is the deepest heading the format allows. Deeper marker
// runs are clamped here after recording a diagnostic.
const maxHeadingLevel = 6

// run holds the state of a single parse call: the cursor, the active
// policy, the collected diagnostics, and the container nesting depth.
// A run is created per call and discarded afterwards.
type run struct {
	src      string
	cur      *cursor
	policy   policy
	opts     inlineOptions
	modules  []ldast.Module
	errs     ParseErrors
	depth    int
	maxDepth int
}

func newRun(src string, profile ldast.Profile, maxDepth int) *run {
	r := &run{
		src:      src,
		cur:      newCursor(src),
		policy:   policyFor(profile),
		maxDepth: maxDepth,
	}
	r.opts = r.policy.inlineOptions()
	return r
}

// record stores a diagnostic and returns the recovery strategy for its
// kind, so call sites act on the same table the controller documents.
func (r *run) record(err ParseError) recoveryAction {
	r.errs = append(r.errs, err)
	return recoveryTable[err.Kind]
}

func (r *run) hasModule(m ldast.Module) bool {
	for _, have := range r.modules {
		if have == m {
			return true
		}
	}
	return false
}

// parseDocument drives the whole pipeline: leading directives, front
// matter, then the block loop.
func (r *run) parseDocument() *ldast.Document {
	r.cur.skipBlank()

	if profile, ok := r.parseProfileDirective(); ok {
		r.policy = policyFor(profile)
		r.opts = r.policy.inlineOptions()
	}
	r.modules = r.parseModulesDirective()

	r.cur.skipBlank()
	metadata := r.parseMetadata()
	r.cur.skipBlank()
	blocks := r.parseBlocks()

	return &ldast.Document{
		Blocks:   blocks,
		Metadata: metadata,
		Profile:  r.policy.profile,
		Modules:  r.modules,
		Span:     ldast.NewSpan(0, len(r.src)),
	}
}

// parseProfileDirective handles a leading "@profile name" line. A line
// with an unknown profile name is left in place and parses as content.
func (r *run) parseProfileDirective() (ldast.Profile, bool) {
	line, ok := r.cur.peek()
	if !ok {
		return ldast.ProfileLitedoc, false
	}
	trimmed := r.cur.trimmed(line)
	if !strings.HasPrefix(trimmed, "@profile") {
		return ldast.ProfileLitedoc, false
	}

	profile, valid := ldast.ParseProfile(strings.TrimSpace(strings.TrimPrefix(trimmed, "@profile")))
	if !valid {
		return ldast.ProfileLitedoc, false
	}
	r.cur.next()
	r.cur.skipBlank()
	return profile, true
}

// parseModulesDirective handles a leading "@modules a,b,c" line. Unknown
// module names are dropped.
func (r *run) parseModulesDirective() []ldast.Module {
	line, ok := r.cur.peek()
	if !ok {
		return nil
	}
	trimmed := r.cur.trimmed(line)
	if !strings.HasPrefix(trimmed, "@modules") {
		return nil
	}

	var modules []ldast.Module
	for _, part := range strings.Split(strings.TrimPrefix(trimmed, "@modules"), ",") {
		if m, ok := ldast.ParseModule(strings.TrimSpace(part)); ok {
			modules = append(modules, m)
		}
	}
	r.cur.next()
	r.cur.skipBlank()
	return modules
}

func (r *run) parseBlocks() []ldast.Block {
	var blocks []ldast.Block
	for {
		r.cur.skipBlank()
		if r.cur.eof() {
			return blocks
		}
		blocks = append(blocks, r.parseBlock())
	}
}

// parseBlock classifies the current line and hands off to the matching
// block parser. Every path consumes at least one line.
func (r *run) parseBlock() ldast.Block {
	line, _ := r.cur.peek()
	trimmed := r.cur.trimmed(line)

	switch {
	case strings.HasPrefix(trimmed, "#"):
		return r.parseHeading()
	case strings.HasPrefix(trimmed, "```"):
		return r.parseCodeBlock()
	case isThematicBreak(trimmed):
		r.cur.next()
		return &ldast.ThematicBreak{Span: r.cur.contentSpan(line)}
	case strings.HasPrefix(trimmed, "::") && len(trimmed) > 2:
		return r.parseDirective()
	case listMarkerWidth(trimmed) > 0:
		return r.parseBareList()
	default:
		return r.parseParagraph()
	}
}

// isThematicBreak reports whether the line is three or more of the same
// break character and nothing else.
func isThematicBreak(trimmed string) bool {
	if len(trimmed) < 3 {
		return false
	}
	c := trimmed[0]
	if c != '-' && c != '*' && c != '_' {
		return false
	}
	for i := 1; i < len(trimmed); i++ {
		if trimmed[i] != c {
			return false
		}
	}
	return true
}

// listMarkerWidth returns the byte width of a leading list marker
// including its trailing space, or zero when the line has none.
func listMarkerWidth(trimmed string) int {
	if len(trimmed) >= 2 && trimmed[1] == ' ' &&
		(trimmed[0] == '-' || trimmed[0] == '*' || trimmed[0] == '+') {
		return 2
	}
	digits := 0
	for digits < len(trimmed) && trimmed[digits] >= '0' && trimmed[digits] <= '9' {
		digits++
	}
	if digits > 0 && digits+1 < len(trimmed) && trimmed[digits] == '.' && trimmed[digits+1] == ' ' {
		return digits + 2
	}
	return 0
}

// parseHeading handles ATX headings. The marker run must start the raw
// line and be followed by a space (or end the line); anything else reads
// as a paragraph. Runs past the maximum level clamp with a diagnostic.
func (r *run) parseHeading() ldast.Block {
	line, _ := r.cur.next()
	text := r.cur.text(line)

	level := 0
	for level < len(text) && text[level] == '#' {
		level++
	}
	if level == 0 {
		return r.paragraphOfLine(line)
	}

	rest := text[level:]
	if rest != "" && !strings.HasPrefix(rest, " ") {
		return r.paragraphOfLine(line)
	}

	if level > maxHeadingLevel {
		if act := r.record(errInvalidHeadingLevel(level, r.cur.contentSpan(line))); act == recoverClampLevel {
			level = maxHeadingLevel
		}
	}

	content := strings.TrimLeft(rest, " \t")
	contentStart := line.Start + len(text) - len(content)

	return &ldast.Heading{
		Level:   level,
		Content: parseInlines(r.src, contentStart, line.NewlineStart, r.opts),
		Span:    r.cur.contentSpan(line),
	}
}

// paragraphOfLine wraps a single already-consumed line as a paragraph.
func (r *run) paragraphOfLine(line ldast.LineInfo) ldast.Block {
	return &ldast.Paragraph{
		Content: parseInlines(r.src, line.Start, line.NewlineStart, r.opts),
		Span:    r.cur.contentSpan(line),
	}
}

// parseCodeBlock handles a fenced code block. Content is the verbatim
// source between the fences, never inline-parsed.
func (r *run) parseCodeBlock() ldast.Block {
	open, _ := r.cur.next()
	lang := strings.TrimSpace(strings.TrimPrefix(r.cur.trimmed(open), "```"))

	contentStart := open.End
	contentEnd := contentStart
	end := open.NewlineStart
	closed := false

	for {
		line, ok := r.cur.peek()
		if !ok {
			break
		}
		if r.cur.trimmed(line) == "```" {
			end = line.NewlineStart
			r.cur.next()
			closed = true
			break
		}
		contentEnd = line.NewlineStart
		end = line.NewlineStart
		r.cur.next()
	}

	if !closed {
		r.record(errUnterminated("code block", r.cur.contentSpan(open)))
	}

	var content string
	if contentStart < contentEnd {
		content = r.src[contentStart:contentEnd]
	}

	return &ldast.CodeBlock{
		Lang:    lang,
		Content: content,
		Span:    ldast.NewSpan(open.Start, end),
	}
}

// parseDirective reads the ::name open line and dispatches to the block
// parser for that directive. Unrecognized names keep their body as a
// RawBlock; whether a diagnostic accompanies that depends on the profile.
func (r *run) parseDirective() ldast.Block {
	open, _ := r.cur.peek()
	trimmed := r.cur.trimmed(open)

	name := ""
	if fields := strings.Fields(strings.TrimPrefix(trimmed, "::")); len(fields) > 0 {
		name = fields[0]
	}

	if !r.policy.recognizes(name) {
		if r.policy.reportUnknownDirective {
			r.record(errUnknownDirective(name, r.cur.contentSpan(open)))
		}
		return r.parseRawDirective()
	}

	switch name {
	case directiveList:
		return r.parseListDirective()
	case directiveCallout:
		return r.parseCallout()
	case directiveQuote:
		return r.parseQuote()
	case directiveFigure:
		return r.parseFigure()
	case directiveTable:
		return r.parseTable()
	case directiveFootnotes:
		return r.parseFootnotes()
	case directiveMath:
		return r.parseMathBlock()
	default:
		return r.parseHTMLBlock()
	}
}

// rawBody consumes lines up to the closing fence and returns the verbatim
// text after the already-consumed open line.
func (r *run) rawBody(open ldast.LineInfo) (string, int, bool) {
	contentStart := open.End
	contentEnd := contentStart
	end := open.NewlineStart
	closed := false

	for {
		line, ok := r.cur.peek()
		if !ok {
			break
		}
		if r.cur.trimmed(line) == "::" {
			end = line.NewlineStart
			r.cur.next()
			closed = true
			break
		}
		contentEnd = line.NewlineStart
		end = line.NewlineStart
		r.cur.next()
	}

	var content string
	if contentStart < contentEnd {
		content = r.src[contentStart:contentEnd]
	}
	return content, end, closed
}

func (r *run) parseRawDirective() ldast.Block {
	open, _ := r.cur.next()
	content, end, closed := r.rawBody(open)
	if !closed {
		r.record(errUnterminated("directive", r.cur.contentSpan(open)))
	}
	return &ldast.RawBlock{
		Content: content,
		Span:    ldast.NewSpan(open.Start, end),
	}
}

// containerBody block-parses a directive body until the matching close,
// returning the end offset of the body. Nesting depth is enforced here;
// past the limit the body is consumed raw instead of recursing.
func (r *run) containerBody(open ldast.LineInfo) ([]ldast.Block, int, bool) {
	if r.depth >= r.maxDepth {
		r.record(errDepthExceeded(r.maxDepth, r.cur.contentSpan(open)))
		content, end, closed := r.rawBody(open)
		raw := &ldast.RawBlock{
			Content: content,
			Span:    ldast.NewSpan(open.End, open.End+len(content)),
		}
		return []ldast.Block{raw}, end, closed
	}

	r.depth++
	defer func() { r.depth-- }()

	var blocks []ldast.Block
	end := open.NewlineStart
	for {
		r.cur.skipBlank()
		line, ok := r.cur.peek()
		if !ok {
			return blocks, end, false
		}
		if r.cur.trimmed(line) == "::" {
			r.cur.next()
			return blocks, line.NewlineStart, true
		}
		block := r.parseBlock()
		blocks = append(blocks, block)
		end = block.Bounds().End
	}
}

func (r *run) parseCallout() ldast.Block {
	open, _ := r.cur.next()

	kind := "note"
	title := ""
	for _, attr := range r.directiveAttrs(open, directiveCallout) {
		switch attr.key {
		case "type":
			kind = attr.value
		case "title":
			title = attr.value
		}
	}

	blocks, end, closed := r.containerBody(open)
	if !closed {
		r.record(errUnterminated("::callout", r.cur.contentSpan(open)))
	}

	return &ldast.Callout{
		Kind:   kind,
		Title:  title,
		Blocks: blocks,
		Span:   ldast.NewSpan(open.Start, end),
	}
}

func (r *run) parseQuote() ldast.Block {
	open, _ := r.cur.next()

	blocks, end, closed := r.containerBody(open)
	if !closed {
		r.record(errUnterminated("::quote", r.cur.contentSpan(open)))
	}

	return &ldast.Quote{
		Blocks: blocks,
		Span:   ldast.NewSpan(open.Start, end),
	}
}

func (r *run) parseFigure() ldast.Block {
	open, _ := r.cur.next()

	var src, alt string
	var caption []ldast.Inline
	for _, attr := range r.directiveAttrs(open, directiveFigure) {
		switch attr.key {
		case "src":
			src = attr.value
		case "alt":
			alt = attr.value
		case "caption":
			caption = parseInlines(r.src, attr.span.Start, attr.span.End, r.opts)
		}
	}

	blocks, end, closed := r.containerBody(open)
	if !closed {
		r.record(errUnterminated("::figure", r.cur.contentSpan(open)))
	}

	return &ldast.Figure{
		Src:     src,
		Alt:     alt,
		Caption: caption,
		Blocks:  blocks,
		Span:    ldast.NewSpan(open.Start, end),
	}
}

// parseTable reads rows until the closing fence. The first row is the
// header unless a separator row precedes it; the header fixes the column
// count and mismatched rows are padded or truncated with a diagnostic.
func (r *run) parseTable() ldast.Block {
	open, _ := r.cur.next()
	openSpan := r.cur.contentSpan(open)

	var rows []ldast.TableRow
	end := open.NewlineStart
	columns := -1
	foundSeparator := false
	closed := false

scan:
	for {
		line, ok := r.cur.peek()
		if !ok {
			break
		}
		trimmed := r.cur.trimmed(line)

		switch {
		case trimmed == "::":
			end = line.NewlineStart
			r.cur.next()
			closed = true
			break scan

		case isTableSeparator(trimmed):
			foundSeparator = true
			end = line.NewlineStart
			r.cur.next()

		case strings.HasPrefix(trimmed, "|"):
			cells := r.tableRowCells(line)
			if columns < 0 {
				columns = len(cells)
			} else if len(cells) != columns {
				cells = r.normalizeRow(cells, columns, line)
			}
			rows = append(rows, ldast.TableRow{
				Cells:  cells,
				Header: !foundSeparator && len(rows) == 0,
				Span:   r.cur.contentSpan(line),
			})
			end = line.NewlineStart
			r.cur.next()

		default:
			// Close at the stray line; it parses as a following block.
			break scan
		}
	}

	if !closed {
		r.record(errUnterminated("::table", openSpan))
	}
	if !foundSeparator && len(rows) > 0 {
		r.record(errMalformedTable("missing separator row", openSpan))
		for i := range rows {
			rows[i].Header = false
		}
	}

	return &ldast.Table{
		Rows: rows,
		Span: ldast.NewSpan(open.Start, end),
	}
}

// isTableSeparator matches rows whose cells contain only dashes and
// colons, like | --- | :--- |.
func isTableSeparator(trimmed string) bool {
	if !strings.HasPrefix(trimmed, "|") {
		return false
	}
	segments := strings.Split(trimmed, "|")
	seen := false
	for i, segment := range segments {
		cell := strings.TrimSpace(segment)
		if cell == "" {
			continue
		}
		if i == 0 {
			return false
		}
		if strings.Trim(cell, "-:") != "" || !strings.Contains(cell, "-") {
			return false
		}
		seen = true
	}
	return seen
}

// tableRowCells splits a row line on pipes. The text before the leading
// pipe and after the trailing pipe is dropped; interior cells are kept
// even when empty.
func (r *run) tableRowCells(line ldast.LineInfo) []ldast.TableCell {
	text := r.cur.text(line)
	segments := strings.Split(text, "|")

	var cells []ldast.TableCell
	offset := line.Start
	for i, segment := range segments {
		segmentStart := offset
		offset += len(segment) + 1

		if i == 0 {
			continue
		}
		if i == len(segments)-1 && strings.TrimSpace(segment) == "" {
			continue
		}

		content := strings.TrimSpace(segment)
		contentStart := segmentStart + strings.Index(segment, content)
		cells = append(cells, ldast.TableCell{
			Content: parseInlines(r.src, contentStart, contentStart+len(content), r.opts),
			Span:    ldast.NewSpan(segmentStart, segmentStart+len(segment)),
		})
	}
	return cells
}

// normalizeRow pads or truncates a mismatched row to the header width.
func (r *run) normalizeRow(cells []ldast.TableCell, columns int, line ldast.LineInfo) []ldast.TableCell {
	detail := fmt.Sprintf("row has %d cells, expected %d", len(cells), columns)
	act := r.record(errMalformedTable(detail, r.cur.contentSpan(line)))
	if act != recoverNormalizeRow {
		return cells
	}

	if len(cells) > columns {
		return cells[:columns]
	}
	for len(cells) < columns {
		cells = append(cells, ldast.TableCell{
			Span: ldast.NewSpan(line.NewlineStart, line.NewlineStart),
		})
	}
	return cells
}

// parseFootnotes collects [^label]: definition lines. Other lines inside
// the directive are skipped.
func (r *run) parseFootnotes() ldast.Block {
	open, _ := r.cur.next()

	var defs []ldast.FootnoteDef
	end := open.NewlineStart
	closed := false

	for {
		line, ok := r.cur.peek()
		if !ok {
			break
		}
		text := r.cur.text(line)
		trimmed := strings.TrimSpace(text)

		if trimmed == "::" {
			end = line.NewlineStart
			r.cur.next()
			closed = true
			break
		}

		if strings.HasPrefix(trimmed, "[^") {
			if bracket := strings.Index(trimmed, "]:"); bracket >= 0 {
				defs = append(defs, r.footnoteDef(line, text, trimmed, bracket))
			}
		}

		end = line.NewlineStart
		r.cur.next()
	}

	if !closed {
		r.record(errUnterminated("::footnotes", r.cur.contentSpan(open)))
	}

	return &ldast.Footnotes{
		Defs: defs,
		Span: ldast.NewSpan(open.Start, end),
	}
}

func (r *run) footnoteDef(line ldast.LineInfo, text, trimmed string, bracket int) ldast.FootnoteDef {
	label := trimmed[2:bracket]

	rest := trimmed[bracket+2:]
	content := strings.TrimSpace(rest)

	trimmedStart := line.Start + strings.Index(text, trimmed)
	contentStart := trimmedStart + bracket + 2 + strings.Index(rest, content)
	contentSpan := ldast.NewSpan(contentStart, contentStart+len(content))

	return ldast.FootnoteDef{
		Label: label,
		Blocks: []ldast.Block{&ldast.Paragraph{
			Content: parseInlines(r.src, contentSpan.Start, contentSpan.End, r.opts),
			Span:    contentSpan,
		}},
		Span: r.cur.contentSpan(line),
	}
}

// parseMathBlock captures raw math content. The open line marks display
// mode with a "display" or "block" token.
func (r *run) parseMathBlock() ldast.Block {
	open, _ := r.cur.next()
	trimmed := r.cur.trimmed(open)
	display := strings.Contains(trimmed, "display") || strings.Contains(trimmed, "block")

	content, end, closed := r.rawBody(open)
	if !closed {
		r.record(errUnterminated("::math", r.cur.contentSpan(open)))
	}

	return &ldast.MathBlock{
		Display: display,
		Content: content,
		Span:    ldast.NewSpan(open.Start, end),
	}
}

// parseHTMLBlock captures raw HTML. Without the html module the directive
// body stays a RawBlock.
func (r *run) parseHTMLBlock() ldast.Block {
	if !r.hasModule(ldast.ModuleHTML) {
		return r.parseRawDirective()
	}

	open, _ := r.cur.next()
	content, end, closed := r.rawBody(open)
	if !closed {
		r.record(errUnterminated("::html", r.cur.contentSpan(open)))
	}

	return &ldast.HTMLBlock{
		Content: content,
		Span:    ldast.NewSpan(open.Start, end),
	}
}

// parseListDirective reads ::list items. Each "- " line starts an item;
// "| " lines continue the current item; blank lines are tolerated. A
// structural line closes the list at the point of failure, and any other
// line closes it and parses afterwards as plain text.
func (r *run) parseListDirective() ldast.Block {
	open, _ := r.cur.next()
	openSpan := r.cur.contentSpan(open)

	kind := ldast.ListUnordered
	var start *int64
	attrs := strings.TrimSpace(strings.TrimPrefix(r.cur.trimmed(open), "::"+directiveList))
	for _, part := range strings.Fields(attrs) {
		switch {
		case part == "ordered":
			kind = ldast.ListOrdered
		case part == "unordered":
			kind = ldast.ListUnordered
		case strings.HasPrefix(part, "start="):
			if n, err := strconv.ParseInt(strings.TrimPrefix(part, "start="), 10, 64); err == nil {
				start = &n
			}
		}
	}

	var items []ldast.ListItem
	itemStart, itemEnd := 0, 0
	hasItem := false
	end := open.NewlineStart
	closed := false
	erred := false

	finalize := func() {
		if !hasItem {
			return
		}
		items = append(items, r.listItem(itemStart, itemEnd))
		hasItem = false
	}

scan:
	for {
		line, ok := r.cur.peek()
		if !ok {
			break
		}
		text := r.cur.text(line)
		trimmed := strings.TrimSpace(text)

		switch {
		case trimmed == "::":
			r.cur.next()
			finalize()
			end = line.NewlineStart
			closed = true
			break scan

		case strings.HasPrefix(trimmed, "- "):
			r.cur.next()
			finalize()
			itemStart = line.Start + strings.Index(text, "- ") + 2
			itemEnd = line.NewlineStart
			hasItem = true
			end = line.NewlineStart

		case strings.HasPrefix(trimmed, "| "):
			r.cur.next()
			itemEnd = line.NewlineStart
			end = line.NewlineStart

		case trimmed == "":
			r.cur.next()
			end = line.NewlineStart

		case isStructuralLine(trimmed):
			r.record(errUnterminated("::"+directiveList, openSpan))
			finalize()
			erred = true
			break scan

		default:
			r.record(errInvalidListMarker(r.cur.contentSpan(line)))
			finalize()
			erred = true
			break scan
		}
	}

	if !closed && !erred {
		finalize()
		r.record(errUnterminated("::"+directiveList, openSpan))
	}

	return &ldast.List{
		Kind:  kind,
		Start: start,
		Items: items,
		Span:  ldast.NewSpan(open.Start, end),
	}
}

func (r *run) listItem(start, end int) ldast.ListItem {
	span := ldast.NewSpan(start, end)
	return ldast.ListItem{
		Blocks: []ldast.Block{&ldast.Paragraph{
			Content: parseInlines(r.src, start, end, r.opts),
			Span:    span,
		}},
		Span: span,
	}
}

// isStructuralLine reports lines that can never continue a list and
// instead force it closed.
func isStructuralLine(trimmed string) bool {
	return strings.HasPrefix(trimmed, "::") ||
		strings.HasPrefix(trimmed, "```") ||
		strings.HasPrefix(trimmed, "#") ||
		strings.HasPrefix(trimmed, "@profile") ||
		strings.HasPrefix(trimmed, "@modules") ||
		trimmed == "---" ||
		strings.HasPrefix(trimmed, metadataOpen)
}

// parseBareList reads consecutive marker lines outside a ::list
// directive. The first marker fixes the kind; a kind switch ends the list
// so the next one starts fresh. Indented lines continue the current item.
func (r *run) parseBareList() ldast.Block {
	first, _ := r.cur.peek()
	firstTrimmed := r.cur.trimmed(first)
	ordered := firstTrimmed[0] >= '0' && firstTrimmed[0] <= '9'

	kind := ldast.ListUnordered
	var start *int64
	if ordered {
		kind = ldast.ListOrdered
		digits := firstTrimmed[:strings.IndexByte(firstTrimmed, '.')]
		if n, err := strconv.ParseInt(digits, 10, 64); err == nil {
			start = &n
		}
	}

	var items []ldast.ListItem
	itemStart, itemEnd := 0, 0
	hasItem := false
	end := first.NewlineStart

	finalize := func() {
		if !hasItem {
			return
		}
		items = append(items, r.listItem(itemStart, itemEnd))
		hasItem = false
	}

	for {
		line, ok := r.cur.peek()
		if !ok {
			break
		}
		text := r.cur.text(line)
		trimmed := strings.TrimSpace(text)
		if trimmed == "" {
			break
		}

		if width := listMarkerWidth(trimmed); width > 0 {
			lineOrdered := trimmed[0] >= '0' && trimmed[0] <= '9'
			if lineOrdered != ordered {
				break
			}
			r.cur.next()
			finalize()
			indent := len(text) - len(strings.TrimLeft(text, " \t"))
			itemStart = line.Start + indent + width
			itemEnd = line.NewlineStart
			hasItem = true
			end = line.NewlineStart
			continue
		}

		indent := len(text) - len(strings.TrimLeft(text, " \t"))
		if hasItem && indent >= 2 {
			r.cur.next()
			itemEnd = line.NewlineStart
			end = line.NewlineStart
			continue
		}
		break
	}
	finalize()

	return &ldast.List{
		Kind:  kind,
		Start: start,
		Items: items,
		Span:  ldast.NewSpan(first.Start, end),
	}
}

// parseParagraph accumulates lines until a blank line or a line that
// opens another block form. The first line always belongs to the
// paragraph, so stray marker-like lines cannot wedge the parser.
func (r *run) parseParagraph() ldast.Block {
	first, _ := r.cur.next()
	startOffset := first.Start
	endOffset := first.NewlineStart

	for {
		line, ok := r.cur.peek()
		if !ok {
			break
		}
		trimmed := r.cur.trimmed(line)
		if paragraphStopper(trimmed) {
			break
		}
		r.cur.next()
		endOffset = line.NewlineStart
	}

	return &ldast.Paragraph{
		Content: parseInlines(r.src, startOffset, endOffset, r.opts),
		Span:    ldast.NewSpan(startOffset, endOffset),
	}
}

func paragraphStopper(trimmed string) bool {
	if trimmed == "" {
		return true
	}
	switch trimmed[0] {
	case '#', ':':
		return true
	case '`':
		if strings.HasPrefix(trimmed, "```") {
			return true
		}
	}
	if isThematicBreak(trimmed) {
		return true
	}
	return listMarkerWidth(trimmed) > 0
}
