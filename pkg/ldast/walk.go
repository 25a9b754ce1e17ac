package ldast

// Node is the common view of every tree node: both Block and Inline satisfy
// it. Walk callbacks receive nodes through this interface and type-switch on
// the concrete variant.
type Node interface {
	Bounds() Span
}

// WalkFunc is the function signature for Walk callbacks.
// Return a non-nil error to stop the walk.
type WalkFunc func(n Node) error

// Walk performs a pre-order traversal of the document: each block is visited
// before its nested blocks, and leaf blocks are followed by their inline
// content. If the callback returns a non-nil error, the walk stops
// immediately and returns that error.
func Walk(doc *Document, fn WalkFunc) error {
	if doc == nil {
		return nil
	}
	return WalkBlocks(doc.Blocks, fn)
}

// WalkBlocks walks a block sequence in document order.
func WalkBlocks(blocks []Block, fn WalkFunc) error {
	for _, b := range blocks {
		if err := walkBlock(b, fn); err != nil {
			return err
		}
	}
	return nil
}

// WalkInlines walks an inline sequence in document order, descending into
// container variants.
func WalkInlines(inlines []Inline, fn WalkFunc) error {
	for _, in := range inlines {
		if err := walkInline(in, fn); err != nil {
			return err
		}
	}
	return nil
}

func walkBlock(b Block, fn WalkFunc) error {
	if err := fn(b); err != nil {
		return err
	}

	switch v := b.(type) {
	case *Heading:
		return WalkInlines(v.Content, fn)
	case *Paragraph:
		return WalkInlines(v.Content, fn)
	case *List:
		for _, item := range v.Items {
			if err := WalkBlocks(item.Blocks, fn); err != nil {
				return err
			}
		}
	case *Callout:
		return WalkBlocks(v.Blocks, fn)
	case *Quote:
		return WalkBlocks(v.Blocks, fn)
	case *Figure:
		if err := WalkBlocks(v.Blocks, fn); err != nil {
			return err
		}
		return WalkInlines(v.Caption, fn)
	case *Table:
		for _, row := range v.Rows {
			for _, cell := range row.Cells {
				if err := WalkInlines(cell.Content, fn); err != nil {
					return err
				}
			}
		}
	case *Footnotes:
		for _, def := range v.Defs {
			if err := WalkBlocks(def.Blocks, fn); err != nil {
				return err
			}
		}
	case *CodeBlock, *MathBlock, *ThematicBreak, *HTMLBlock, *RawBlock:
		// Leaf blocks with no parsed children.
	}
	return nil
}

func walkInline(in Inline, fn WalkFunc) error {
	if err := fn(in); err != nil {
		return err
	}

	switch v := in.(type) {
	case *Emphasis:
		return WalkInlines(v.Children, fn)
	case *Strong:
		return WalkInlines(v.Children, fn)
	case *Strikethrough:
		return WalkInlines(v.Children, fn)
	case *Link:
		return WalkInlines(v.Label, fn)
	case *Text, *CodeSpan, *AutoLink, *FootnoteRef, *HardBreak, *SoftBreak:
		// Atomic inline nodes.
	}
	return nil
}

// FindAll returns all nodes matching the predicate in document order.
func FindAll(doc *Document, predicate func(n Node) bool) []Node {
	var result []Node

	//nolint:errcheck,revive // Walk only returns nil errors in this usage
	Walk(doc, func(n Node) error {
		if predicate(n) {
			result = append(result, n)
		}
		return nil
	})

	return result
}

// FindFirst returns the first node matching the predicate, or nil.
func FindFirst(doc *Document, predicate func(n Node) bool) Node {
	var found Node

	//nolint:errcheck,revive // errStopWalk is expected and intentionally ignored
	Walk(doc, func(n Node) error {
		if predicate(n) {
			found = n
			return errStopWalk
		}
		return nil
	})

	return found
}

// errStopWalk is a sentinel error used to stop walking early.
var errStopWalk = &stopWalkError{}

type stopWalkError struct{}

func (e *stopWalkError) Error() string {
	return "stop walk"
}
