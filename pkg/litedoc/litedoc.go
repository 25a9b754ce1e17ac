// Package litedoc parses LiteDoc documents into the typed tree defined
// in pkg/ldast.
//
// Parsing is deterministic and total: every node in the resulting tree
// carries the byte span of the source it came from, and the same input
// always yields the same tree. Parse stops at the first problem;
// ParseWithRecovery keeps going and returns the tree it could build
// alongside every diagnostic it collected.
package litedoc

import "github.com/yaklabco/golitedoc/pkg/ldast"

// DefaultMaxDepth bounds container nesting when no override is given.
const DefaultMaxDepth = 64

// Parser parses LiteDoc source under a fixed profile. A Parser holds no
// state between calls and is safe for concurrent use.
type Parser struct {
	profile  ldast.Profile
	maxDepth int
}

// Option configures a Parser.
type Option func(*Parser)

// WithMaxDepth overrides the container nesting limit. Values below one
// are ignored.
func WithMaxDepth(depth int) Option {
	return func(p *Parser) {
		if depth > 0 {
			p.maxDepth = depth
		}
	}
}

// NewParser returns a Parser for the given profile.
func NewParser(profile ldast.Profile, opts ...Option) *Parser {
	p := &Parser{profile: profile, maxDepth: DefaultMaxDepth}
	for _, opt := range opts {
		opt(p)
	}
	return p
}

// Parse parses src and returns the document, or the first diagnostic
// when the source is not clean.
func (p *Parser) Parse(src string) (*ldast.Document, error) {
	res := p.ParseWithRecovery(src)
	if !res.OK {
		return nil, res.Errors.First()
	}
	return res.Document, nil
}

// ParseWithRecovery parses src to completion. The returned document is
// never nil; diagnostics for everything the parser recovered from
// accompany it, and OK reports whether there were none.
func (p *Parser) ParseWithRecovery(src string) ParseResult {
	r := newRun(src, p.profile, p.maxDepth)
	doc := r.parseDocument()
	return ParseResult{Document: doc, Errors: r.errs, OK: len(r.errs) == 0}
}

// Parse parses src under the Litedoc profile.
func Parse(src string) (*ldast.Document, error) {
	return NewParser(ldast.ProfileLitedoc).Parse(src)
}

// ParseProfile parses src under the given profile.
func ParseProfile(src string, profile ldast.Profile) (*ldast.Document, error) {
	return NewParser(profile).Parse(src)
}

// ParseWithRecovery parses src under the Litedoc profile, collecting
// diagnostics instead of stopping at the first one.
func ParseWithRecovery(src string) ParseResult {
	return NewParser(ldast.ProfileLitedoc).ParseWithRecovery(src)
}

// ParseWithRecoveryProfile parses src under the given profile,
// collecting diagnostics instead of stopping at the first one.
func ParseWithRecoveryProfile(src string, profile ldast.Profile) ParseResult {
	return NewParser(profile).ParseWithRecovery(src)
}
