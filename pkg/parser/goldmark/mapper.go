package goldmark

import (
	"strings"

	"github.com/yaklabco/golitedoc/pkg/ldast"
	"github.com/yuin/goldmark/ast"
	east "github.com/yuin/goldmark/extension/ast"
)

// mapper converts a goldmark AST into ldast nodes. goldmark records line
// segments for most blocks and text segments for most inlines but never the
// construct delimiters, so the mapper recovers full spans by extending
// segment ranges over the surrounding source bytes. A forward scan offset
// locates the few constructs goldmark keeps no position for at all.
type mapper struct {
	content []byte
	scan    int
}

func newMapper(content []byte) *mapper {
	return &mapper{content: content}
}

// advance moves the scan offset forward, never backward.
func (m *mapper) advance(end int) {
	if end > m.scan {
		m.scan = end
	}
}

// mapBlocks maps the block children of a goldmark container node.
func (m *mapper) mapBlocks(gmParent ast.Node) []ldast.Block {
	var blocks []ldast.Block
	for child := gmParent.FirstChild(); child != nil; child = child.NextSibling() {
		if b := m.mapBlock(child); b != nil {
			blocks = append(blocks, b)
			m.advance(b.Bounds().End)
		}
	}
	return blocks
}

func (m *mapper) mapBlock(gmNode ast.Node) ldast.Block {
	switch gmn := gmNode.(type) {
	case *ast.Heading:
		return m.mapHeading(gmn)

	case *ast.Paragraph:
		return m.mapParagraph(gmNode)

	case *ast.TextBlock:
		// Tight list items hold their text in a TextBlock.
		return m.mapParagraph(gmNode)

	case *ast.List:
		return m.mapList(gmn)

	case *ast.Blockquote:
		return m.mapQuote(gmn)

	case *ast.FencedCodeBlock:
		return m.mapFencedCode(gmn)

	case *ast.CodeBlock:
		return m.mapIndentedCode(gmn)

	case *ast.ThematicBreak:
		return &ldast.ThematicBreak{Span: m.nextLineSpan()}

	case *ast.HTMLBlock:
		return m.mapHTMLBlock(gmn)

	case *east.Table:
		return m.mapTable(gmn)

	default:
		return m.mapRawBlock(gmNode)
	}
}

func (m *mapper) mapHeading(h *ast.Heading) ldast.Block {
	span, ok := m.rawLinesSpan(h)
	if ok {
		m.advance(span.Start)
		span = ldast.NewSpan(m.lineStartAt(span.Start), span.End)
	} else {
		// A bare marker line such as "#" has no text segment.
		span = m.nextLineSpan()
	}

	content := m.mapInlines(h)
	span = m.extendSetextUnderline(span)

	return &ldast.Heading{Level: h.Level, Content: content, Span: span}
}

// mapParagraph handles both Paragraph and TextBlock nodes.
func (m *mapper) mapParagraph(gmNode ast.Node) ldast.Block {
	span, ok := m.rawLinesSpan(gmNode)
	if ok {
		m.advance(span.Start)
	}

	content := m.mapInlines(gmNode)
	if !ok {
		cover, cok := coverInlines(content)
		if !cok {
			return nil
		}
		span = cover
	}

	return &ldast.Paragraph{Content: content, Span: span}
}

func (m *mapper) mapList(list *ast.List) ldast.Block {
	kind := ldast.ListUnordered
	var start *int64
	if list.IsOrdered() {
		kind = ldast.ListOrdered
		n := int64(list.Start)
		start = &n
	}

	var items []ldast.ListItem
	for child := list.FirstChild(); child != nil; child = child.NextSibling() {
		items = append(items, m.mapListItem(child))
	}

	span := ldast.NewSpan(m.scan, m.scan)
	if len(items) > 0 {
		span = items[0].Span
		for _, item := range items[1:] {
			span = span.Cover(item.Span)
		}
	}

	return &ldast.List{Kind: kind, Start: start, Items: items, Span: span}
}

func (m *mapper) mapListItem(gmItem ast.Node) ldast.ListItem {
	blocks := m.mapBlocks(gmItem)

	span, ok := coverBlocks(blocks)
	if ok {
		// The cover starts at the first child's content; the item also
		// owns the marker before it.
		span = ldast.NewSpan(m.lineStartAt(span.Start), span.End)
	} else {
		span = m.nextLineSpan()
		m.advance(span.End)
	}

	return ldast.ListItem{Blocks: blocks, Span: span}
}

func (m *mapper) mapQuote(bq *ast.Blockquote) ldast.Block {
	blocks := m.mapBlocks(bq)

	span, ok := coverBlocks(blocks)
	if ok {
		span = ldast.NewSpan(m.lineStartAt(span.Start), span.End)
	} else {
		span = m.nextLineSpan()
	}

	return &ldast.Quote{Blocks: blocks, Span: span}
}

func (m *mapper) mapFencedCode(cb *ast.FencedCodeBlock) ldast.Block {
	lang := ""
	if l := cb.Language(m.content); l != nil {
		lang = string(l)
	}

	return &ldast.CodeBlock{
		Lang:    lang,
		Content: m.joinLines(cb),
		Span:    m.fencedSpan(cb),
	}
}

func (m *mapper) mapIndentedCode(cb *ast.CodeBlock) ldast.Block {
	span, ok := m.rawLinesSpan(cb)
	if ok {
		span = ldast.NewSpan(m.lineStartAt(span.Start), span.End)
	} else {
		span = ldast.NewSpan(m.scan, m.scan)
	}

	return &ldast.CodeBlock{Content: m.joinLines(cb), Span: span}
}

func (m *mapper) mapHTMLBlock(hb *ast.HTMLBlock) ldast.Block {
	span, ok := m.rawLinesSpan(hb)
	if ok {
		span = ldast.NewSpan(m.lineStartAt(span.Start), span.End)
	} else {
		span = m.nextLineSpan()
	}

	var sb strings.Builder
	lines := hb.Lines()
	for i := range lines.Len() {
		seg := lines.At(i)
		sb.Write(seg.Value(m.content))
	}
	if hb.HasClosure() {
		sb.Write(hb.ClosureLine.Value(m.content))
		span = ldast.NewSpan(span.Start, m.trimBreak(span.Start, hb.ClosureLine.Stop))
	}

	content := strings.TrimSuffix(sb.String(), "\n")
	content = strings.TrimSuffix(content, "\r")

	return &ldast.HTMLBlock{Content: content, Span: span}
}

func (m *mapper) mapTable(t *east.Table) ldast.Block {
	var rows []ldast.TableRow
	for child := t.FirstChild(); child != nil; child = child.NextSibling() {
		switch row := child.(type) {
		case *east.TableHeader:
			rows = append(rows, m.mapTableRow(row, true))
		case *east.TableRow:
			rows = append(rows, m.mapTableRow(row, false))
		}
	}

	span := ldast.NewSpan(m.scan, m.scan)
	if len(rows) > 0 {
		span = rows[0].Span
		for _, row := range rows[1:] {
			span = span.Cover(row.Span)
		}
	}

	return &ldast.Table{Rows: rows, Span: span}
}

func (m *mapper) mapTableRow(gmRow ast.Node, header bool) ldast.TableRow {
	var cells []ldast.TableCell
	for child := gmRow.FirstChild(); child != nil; child = child.NextSibling() {
		cells = append(cells, m.mapTableCell(child))
	}

	span := ldast.NewSpan(m.scan, m.scan)
	if len(cells) > 0 {
		span = cells[0].Span
		for _, cell := range cells[1:] {
			span = span.Cover(cell.Span)
		}
		// The row also owns the pipes around the outermost cells.
		span = ldast.NewSpan(m.lineStartAt(span.Start), m.lineContentEnd(span.End))
	}

	return ldast.TableRow{Cells: cells, Header: header, Span: span}
}

func (m *mapper) mapTableCell(gmCell ast.Node) ldast.TableCell {
	raw, rawOK := m.rawLinesSpan(gmCell)
	if rawOK {
		m.advance(raw.Start)
	}

	content := m.mapInlines(gmCell)

	span, ok := coverInlines(content)
	if !ok {
		if rawOK {
			span = raw
		} else {
			span = ldast.NewSpan(m.scan, m.scan)
		}
	}

	return ldast.TableCell{Content: content, Span: span}
}

// mapRawBlock passes an unrecognized block through verbatim.
func (m *mapper) mapRawBlock(gmNode ast.Node) ldast.Block {
	span, ok := m.rawLinesSpan(gmNode)
	if ok {
		span = ldast.NewSpan(m.lineStartAt(span.Start), span.End)
	} else {
		span = m.nextLineSpan()
	}

	return &ldast.RawBlock{
		Content: string(m.content[span.Start:span.End]),
		Span:    span,
	}
}

// mapInlines maps the inline children of a goldmark leaf block or inline
// container.
func (m *mapper) mapInlines(gmParent ast.Node) []ldast.Inline {
	var out []ldast.Inline
	for child := gmParent.FirstChild(); child != nil; child = child.NextSibling() {
		out = m.appendInline(out, child)
	}
	return out
}

func (m *mapper) appendInline(out []ldast.Inline, gmNode ast.Node) []ldast.Inline {
	var mapped []ldast.Inline

	switch gmn := gmNode.(type) {
	case *ast.Text:
		mapped = m.mapText(gmn)

	case *ast.String:
		mapped = append(mapped, m.mapString(gmn))

	case *ast.CodeSpan:
		mapped = append(mapped, m.mapCodeSpan(gmn))

	case *ast.Emphasis:
		mapped = append(mapped, m.mapEmphasis(gmn))

	case *ast.Link:
		mapped = append(mapped, m.mapLink(gmn))

	case *ast.Image:
		mapped = append(mapped, m.mapImage(gmn))

	case *ast.AutoLink:
		mapped = append(mapped, m.mapAutoLink(gmn))

	case *ast.RawHTML:
		if n := m.mapRawHTML(gmn); n != nil {
			mapped = append(mapped, n)
		}

	case *east.Strikethrough:
		mapped = append(mapped, m.mapStrikethrough(gmn))

	case *east.TaskCheckBox:
		mapped = append(mapped, m.mapTaskCheckBox(gmn))

	default:
		// Unknown inline containers contribute their children directly.
		for child := gmNode.FirstChild(); child != nil; child = child.NextSibling() {
			out = m.appendInline(out, child)
		}
		return out
	}

	for _, n := range mapped {
		out = append(out, n)
		m.advance(n.Bounds().End)
	}
	return out
}

// mapText yields the text run plus the break node goldmark folds into a
// line-break flag on the preceding text.
func (m *mapper) mapText(t *ast.Text) []ldast.Inline {
	var out []ldast.Inline

	seg := t.Segment
	end := m.trimBreak(seg.Start, seg.Stop)
	if end > seg.Start {
		out = append(out, &ldast.Text{
			Content: string(m.content[seg.Start:end]),
			Span:    ldast.NewSpan(seg.Start, end),
		})
	}

	switch {
	case t.HardLineBreak():
		out = append(out, &ldast.HardBreak{Span: m.breakSpanAfter(end)})
	case t.SoftLineBreak():
		out = append(out, &ldast.SoftBreak{Span: m.breakSpanAfter(end)})
	}

	return out
}

func (m *mapper) mapString(s *ast.String) ldast.Inline {
	span := m.findFrom(s.Value)
	return &ldast.Text{Content: string(s.Value), Span: span}
}

func (m *mapper) mapCodeSpan(cs *ast.CodeSpan) ldast.Inline {
	var text []byte
	start, stop := -1, -1

	for child := cs.FirstChild(); child != nil; child = child.NextSibling() {
		t, ok := child.(*ast.Text)
		if !ok {
			continue
		}
		text = append(text, t.Value(m.content)...)
		seg := t.Segment
		if start < 0 || seg.Start < start {
			start = seg.Start
		}
		if seg.Stop > stop {
			stop = seg.Stop
		}
	}

	if start < 0 {
		return &ldast.CodeSpan{Span: ldast.NewSpan(m.scan, m.scan)}
	}

	return &ldast.CodeSpan{
		Content: string(text),
		Span:    m.widenCodeSpan(ldast.NewSpan(start, stop)),
	}
}

func (m *mapper) mapEmphasis(em *ast.Emphasis) ldast.Inline {
	children := m.mapInlines(em)

	span, ok := coverInlines(children)
	if ok {
		span = m.widenRun(span, em.Level, '*', '_')
	} else {
		span = ldast.NewSpan(m.scan, m.scan)
	}

	if em.Level >= 2 {
		return &ldast.Strong{Children: children, Span: span}
	}
	return &ldast.Emphasis{Children: children, Span: span}
}

func (m *mapper) mapStrikethrough(st *east.Strikethrough) ldast.Inline {
	children := m.mapInlines(st)

	span, ok := coverInlines(children)
	if ok {
		span = m.widenRun(span, 2, '~')
	} else {
		span = ldast.NewSpan(m.scan, m.scan)
	}

	return &ldast.Strikethrough{Children: children, Span: span}
}

func (m *mapper) mapLink(l *ast.Link) ldast.Inline {
	label := m.mapInlines(l)

	span, ok := coverInlines(label)
	if ok {
		span = m.widenLinkSpan(span, false)
	} else {
		span = ldast.NewSpan(m.scan, m.scan)
	}

	return &ldast.Link{
		Label:       label,
		Destination: string(l.Destination),
		Span:        span,
	}
}

// mapImage lowers an inline image to a link node; the tree keeps the
// destination and alt text, which is all downstream consumers read.
func (m *mapper) mapImage(img *ast.Image) ldast.Inline {
	label := m.mapInlines(img)

	span, ok := coverInlines(label)
	if ok {
		span = m.widenLinkSpan(span, true)
	} else {
		span = ldast.NewSpan(m.scan, m.scan)
	}

	return &ldast.Link{
		Label:       label,
		Destination: string(img.Destination),
		Span:        span,
	}
}

func (m *mapper) mapAutoLink(al *ast.AutoLink) ldast.Inline {
	span := m.findFrom(al.Label(m.content))

	// Angle-bracketed form owns its brackets.
	if span.Start > 0 && m.content[span.Start-1] == '<' &&
		span.End < len(m.content) && m.content[span.End] == '>' {
		span = ldast.NewSpan(span.Start-1, span.End+1)
	}

	return &ldast.AutoLink{
		Destination: string(al.URL(m.content)),
		Span:        span,
	}
}

// mapRawHTML passes inline HTML through as literal text.
func (m *mapper) mapRawHTML(rh *ast.RawHTML) ldast.Inline {
	segs := rh.Segments
	if segs == nil || segs.Len() == 0 {
		return nil
	}

	start, stop := -1, -1
	var sb strings.Builder
	for i := range segs.Len() {
		seg := segs.At(i)
		sb.Write(seg.Value(m.content))
		if start < 0 || seg.Start < start {
			start = seg.Start
		}
		if seg.Stop > stop {
			stop = seg.Stop
		}
	}

	return &ldast.Text{Content: sb.String(), Span: ldast.NewSpan(start, stop)}
}

func (m *mapper) mapTaskCheckBox(cb *east.TaskCheckBox) ldast.Inline {
	needles := [][]byte{[]byte("[ ]")}
	if cb.IsChecked {
		needles = [][]byte{[]byte("[x]"), []byte("[X]")}
	}

	best := ldast.NewSpan(m.scan, m.scan)
	found := false
	for _, needle := range needles {
		span := m.findFrom(needle)
		if span.Len() > 0 && (!found || span.Start < best.Start) {
			best = span
			found = true
		}
	}

	return &ldast.Text{
		Content: string(m.content[best.Start:best.End]),
		Span:    best,
	}
}

// joinLines concatenates a block's line segments, dropping the final line
// terminator so content matches what sits between the delimiting lines.
func (m *mapper) joinLines(n ast.Node) string {
	lines := n.Lines()
	var sb strings.Builder
	for i := range lines.Len() {
		seg := lines.At(i)
		sb.Write(seg.Value(m.content))
	}

	s := strings.TrimSuffix(sb.String(), "\n")
	return strings.TrimSuffix(s, "\r")
}

func coverBlocks(blocks []ldast.Block) (ldast.Span, bool) {
	if len(blocks) == 0 {
		return ldast.Span{}, false
	}
	span := blocks[0].Bounds()
	for _, b := range blocks[1:] {
		span = span.Cover(b.Bounds())
	}
	return span, true
}

func coverInlines(inlines []ldast.Inline) (ldast.Span, bool) {
	if len(inlines) == 0 {
		return ldast.Span{}, false
	}
	span := inlines[0].Bounds()
	for _, n := range inlines[1:] {
		span = span.Cover(n.Bounds())
	}
	return span, true
}
