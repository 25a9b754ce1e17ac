package ldast

// BlockKind names a block variant for reporting and statistics.
type BlockKind string

// Block variant names.
const (
	KindHeading       BlockKind = "heading"
	KindParagraph     BlockKind = "paragraph"
	KindList          BlockKind = "list"
	KindCodeBlock     BlockKind = "code_block"
	KindCallout       BlockKind = "callout"
	KindQuote         BlockKind = "quote"
	KindFigure        BlockKind = "figure"
	KindTable         BlockKind = "table"
	KindFootnotes     BlockKind = "footnotes"
	KindMathBlock     BlockKind = "math_block"
	KindThematicBreak BlockKind = "thematic_break"
	KindHTMLBlock     BlockKind = "html_block"
	KindRawBlock      BlockKind = "raw_block"
)

// InlineKind names an inline variant for reporting and statistics.
type InlineKind string

// Inline variant names.
const (
	KindText          InlineKind = "text"
	KindEmphasis      InlineKind = "emphasis"
	KindStrong        InlineKind = "strong"
	KindStrikethrough InlineKind = "strikethrough"
	KindCodeSpan      InlineKind = "code_span"
	KindLink          InlineKind = "link"
	KindAutoLink      InlineKind = "autolink"
	KindFootnoteRef   InlineKind = "footnote_ref"
	KindHardBreak     InlineKind = "hard_break"
	KindSoftBreak     InlineKind = "soft_break"
)

// BlockKindOf returns the variant name of a block. The switch is exhaustive
// over the closed Block set.
func BlockKindOf(b Block) BlockKind {
	switch b.(type) {
	case *Heading:
		return KindHeading
	case *Paragraph:
		return KindParagraph
	case *List:
		return KindList
	case *CodeBlock:
		return KindCodeBlock
	case *Callout:
		return KindCallout
	case *Quote:
		return KindQuote
	case *Figure:
		return KindFigure
	case *Table:
		return KindTable
	case *Footnotes:
		return KindFootnotes
	case *MathBlock:
		return KindMathBlock
	case *ThematicBreak:
		return KindThematicBreak
	case *HTMLBlock:
		return KindHTMLBlock
	case *RawBlock:
		return KindRawBlock
	default:
		return ""
	}
}

// InlineKindOf returns the variant name of an inline node. The switch is
// exhaustive over the closed Inline set.
func InlineKindOf(in Inline) InlineKind {
	switch in.(type) {
	case *Text:
		return KindText
	case *Emphasis:
		return KindEmphasis
	case *Strong:
		return KindStrong
	case *Strikethrough:
		return KindStrikethrough
	case *CodeSpan:
		return KindCodeSpan
	case *Link:
		return KindLink
	case *AutoLink:
		return KindAutoLink
	case *FootnoteRef:
		return KindFootnoteRef
	case *HardBreak:
		return KindHardBreak
	case *SoftBreak:
		return KindSoftBreak
	default:
		return ""
	}
}
