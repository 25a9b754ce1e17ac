package ldast

// Block is a structural document unit carrying a source span. The set of
// implementations is closed; adding a variant requires extending every
// exhaustive switch in this package and its consumers.
type Block interface {
	// Bounds returns the source span the block was derived from.
	Bounds() Span

	blockNode()
}

// ListKind distinguishes ordered from unordered lists.
type ListKind string

// List kinds.
const (
	ListOrdered   ListKind = "ordered"
	ListUnordered ListKind = "unordered"
)

// Heading is an ATX heading with level 1 through 6.
type Heading struct {
	Level   int
	Content []Inline
	Span    Span
}

// Paragraph is a run of contiguous plain-text lines.
type Paragraph struct {
	Content []Inline
	Span    Span
}

// List is an ordered or unordered sequence of items. Start, when non-nil,
// is the explicit ordering start supplied by a list directive.
type List struct {
	Kind  ListKind
	Start *int64
	Items []ListItem
	Span  Span
}

// ListItem is a single list entry. Its body is a block sequence so items can
// hold paragraphs, nested lists, and other blocks.
type ListItem struct {
	Blocks []Block
	Span   Span
}

// CodeBlock is a fenced code block. Content is kept verbatim and never
// inline-parsed; Lang is the optional tag from the opening fence.
type CodeBlock struct {
	Lang    string
	Content string
	Span    Span
}

// Callout is an attention block such as a note or warning. Kind is the
// free-form type tag (default "note"); Title is optional.
type Callout struct {
	Kind   string
	Title  string
	Blocks []Block
	Span   Span
}

// Quote is a block quotation holding nested blocks.
type Quote struct {
	Blocks []Block
	Span   Span
}

// Figure is a figure with an optional source path, alt text, and caption.
// Its body may hold nested blocks.
type Figure struct {
	Src     string
	Alt     string
	Caption []Inline
	Blocks  []Block
	Span    Span
}

// Table is a grid of rows. The first row is the header when a separator row
// followed it in the source.
type Table struct {
	Rows []TableRow
	Span Span
}

// TableRow is one row of cells.
type TableRow struct {
	Cells  []TableCell
	Header bool
	Span   Span
}

// TableCell holds the inline content of one cell.
type TableCell struct {
	Content []Inline
	Span    Span
}

// Footnotes is a footnote-definition block.
type Footnotes struct {
	Defs []FootnoteDef
	Span Span
}

// FootnoteDef is a single footnote definition referenced by label.
type FootnoteDef struct {
	Label  string
	Blocks []Block
	Span   Span
}

// MathBlock is a math block. Content is kept verbatim; Display marks
// display-style rendering requested on the directive line.
type MathBlock struct {
	Display bool
	Content string
	Span    Span
}

// ThematicBreak is a horizontal rule.
type ThematicBreak struct {
	Span Span
}

// HTMLBlock is raw HTML passed through unparsed.
type HTMLBlock struct {
	Content string
	Span    Span
}

// RawBlock is unrecognized or tolerated content passed through unparsed.
type RawBlock struct {
	Content string
	Span    Span
}

func (b *Heading) Bounds() Span       { return b.Span }
func (b *Paragraph) Bounds() Span     { return b.Span }
func (b *List) Bounds() Span          { return b.Span }
func (b *CodeBlock) Bounds() Span     { return b.Span }
func (b *Callout) Bounds() Span       { return b.Span }
func (b *Quote) Bounds() Span         { return b.Span }
func (b *Figure) Bounds() Span        { return b.Span }
func (b *Table) Bounds() Span         { return b.Span }
func (b *Footnotes) Bounds() Span     { return b.Span }
func (b *MathBlock) Bounds() Span     { return b.Span }
func (b *ThematicBreak) Bounds() Span { return b.Span }
func (b *HTMLBlock) Bounds() Span     { return b.Span }
func (b *RawBlock) Bounds() Span      { return b.Span }

func (*Heading) blockNode()       {}
func (*Paragraph) blockNode()     {}
func (*List) blockNode()          {}
func (*CodeBlock) blockNode()     {}
func (*Callout) blockNode()       {}
func (*Quote) blockNode()         {}
func (*Figure) blockNode()        {}
func (*Table) blockNode()         {}
func (*Footnotes) blockNode()     {}
func (*MathBlock) blockNode()     {}
func (*ThematicBreak) blockNode() {}
func (*HTMLBlock) blockNode()     {}
func (*RawBlock) blockNode()      {}
