// Package goldmark provides a CommonMark front end that parses Markdown
// with the goldmark library and maps the result onto the ldast document
// tree, so downstream consumers see the same node shapes regardless of
// which engine produced them.
package goldmark

import (
	"context"
	"fmt"

	"github.com/yaklabco/golitedoc/pkg/ldast"
	"github.com/yuin/goldmark"
	"github.com/yuin/goldmark/extension"
	gmparser "github.com/yuin/goldmark/parser"
	"github.com/yuin/goldmark/text"
)

// Parser converts Markdown bytes into an ldast.Document. It is safe for
// concurrent use; each Parse call builds its own mapper state.
type Parser struct {
	profile ldast.Profile
	md      goldmark.Markdown
}

// Option configures a Parser.
type Option func(*Parser)

// WithProfile selects the Markdown profile. ProfileMd enables the GFM
// extensions (tables, strikethrough, task lists, autolinks); ProfileMdStrict
// parses pure CommonMark. Other profiles fall back to ProfileMd.
func WithProfile(p ldast.Profile) Option {
	return func(gp *Parser) {
		gp.profile = p
	}
}

// New creates a Parser. The default profile is ProfileMd.
func New(opts ...Option) *Parser {
	p := &Parser{profile: ldast.ProfileMd}
	for _, opt := range opts {
		opt(p)
	}
	if p.profile != ldast.ProfileMd && p.profile != ldast.ProfileMdStrict {
		p.profile = ldast.ProfileMd
	}
	p.md = newGoldmarkInstance(p.profile)
	return p
}

// Profile returns the configured profile.
func (p *Parser) Profile() ldast.Profile {
	return p.profile
}

// Parse converts raw Markdown bytes into an ldast.Document. The path is
// used only for error messages. Front matter and document directives are
// LiteDoc constructs and are not recognized here; the returned document
// carries no metadata or modules.
func (p *Parser) Parse(ctx context.Context, path string, content []byte) (*ldast.Document, error) {
	if err := ctx.Err(); err != nil {
		return nil, fmt.Errorf("parse %s: %w", path, err)
	}

	src := make([]byte, len(content))
	copy(src, content)

	reader := text.NewReader(src)
	gmDoc := p.md.Parser().Parse(reader, gmparser.WithContext(gmparser.NewContext()))

	if err := ctx.Err(); err != nil {
		return nil, fmt.Errorf("parse %s: %w", path, err)
	}

	m := newMapper(src)
	blocks := m.mapBlocks(gmDoc)

	return &ldast.Document{
		Blocks:  blocks,
		Profile: p.profile,
		Span:    ldast.NewSpan(0, len(src)),
	}, nil
}

//nolint:ireturn // goldmark.Markdown is an external interface type
func newGoldmarkInstance(profile ldast.Profile) goldmark.Markdown {
	var opts []goldmark.Option
	if profile == ldast.ProfileMd {
		opts = append(opts, goldmark.WithExtensions(extension.GFM))
	}
	return goldmark.New(opts...)
}
