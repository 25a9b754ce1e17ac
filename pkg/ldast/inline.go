package ldast

// Inline is a unit of parsed text within a leaf block, carrying a source
// span. Container variants own ordered child sequences, so inline structure
// is a tree rather than a flat stream. The set of implementations is closed.
type Inline interface {
	// Bounds returns the source span the node was derived from.
	Bounds() Span

	inlineNode()
}

// Text is a literal text run. Escape backslashes are preserved verbatim.
type Text struct {
	Content string
	Span    Span
}

// Emphasis is *emphasized* content.
type Emphasis struct {
	Children []Inline
	Span     Span
}

// Strong is **strong** content.
type Strong struct {
	Children []Inline
	Span     Span
}

// Strikethrough is ~~struck~~ content.
type Strikethrough struct {
	Children []Inline
	Span     Span
}

// CodeSpan is `code` content, never inline-parsed.
type CodeSpan struct {
	Content string
	Span    Span
}

// Link is a wiki-style [[label|destination]] link. Label holds the display
// children; Destination is the raw target.
type Link struct {
	Label       []Inline
	Destination string
	Span        Span
}

// AutoLink is a bare or angle-bracketed URI recognized as an atomic link.
type AutoLink struct {
	Destination string
	Span        Span
}

// FootnoteRef is a [^label] reference. References resolve lazily; a
// reference without a matching definition is not a parse error.
type FootnoteRef struct {
	Label string
	Span  Span
}

// HardBreak is a forced line break from two or more trailing spaces.
type HardBreak struct {
	Span Span
}

// SoftBreak is a plain newline inside a paragraph's text.
type SoftBreak struct {
	Span Span
}

func (n *Text) Bounds() Span          { return n.Span }
func (n *Emphasis) Bounds() Span      { return n.Span }
func (n *Strong) Bounds() Span        { return n.Span }
func (n *Strikethrough) Bounds() Span { return n.Span }
func (n *CodeSpan) Bounds() Span      { return n.Span }
func (n *Link) Bounds() Span          { return n.Span }
func (n *AutoLink) Bounds() Span      { return n.Span }
func (n *FootnoteRef) Bounds() Span   { return n.Span }
func (n *HardBreak) Bounds() Span     { return n.Span }
func (n *SoftBreak) Bounds() Span     { return n.Span }

func (*Text) inlineNode()          {}
func (*Emphasis) inlineNode()      {}
func (*Strong) inlineNode()        {}
func (*Strikethrough) inlineNode() {}
func (*CodeSpan) inlineNode()      {}
func (*Link) inlineNode()          {}
func (*AutoLink) inlineNode()      {}
func (*FootnoteRef) inlineNode()   {}
func (*HardBreak) inlineNode()     {}
func (*SoftBreak) inlineNode()     {}
