// Package ldast defines the LiteDoc document tree: a closed set of block and
// inline node variants, byte-offset spans, and helpers for walking the tree
// and mapping offsets to source positions.
//
// Trees are produced by the native engine in pkg/litedoc and by the
// CommonMark front end in pkg/parser/goldmark. Nodes are immutable after
// construction; spans are plain integer offsets into the original buffer and
// keep no reference to it.
package ldast

// Document is the root of a parsed tree: the ordered top-level blocks, the
// optional front-matter metadata, the profile the document was parsed under,
// and the feature modules enabled by an @modules directive.
type Document struct {
	Blocks   []Block
	Metadata *Metadata
	Profile  Profile
	Modules  []Module
	Span     Span
}

// HasModule reports whether the document enables the given feature module.
func (d *Document) HasModule(m Module) bool {
	for _, have := range d.Modules {
		if have == m {
			return true
		}
	}
	return false
}
