package goldmark

import (
	"context"
	"testing"

	"github.com/yaklabco/golitedoc/pkg/ldast"
)

// FuzzParse fuzzes the GFM front end with random input.
func FuzzParse(f *testing.F) {
	seeds := []string{
		"",
		"Hello, world!",
		"# Heading",
		"- list\n- items",
		"1. ordered item",
		"> blockquote",
		"```\ncode\n```",
		"```go\nfunc main() {}\n```",
		"*emphasis* and **strong**",
		"`code`",
		"[link](url) and ![image](src)",
		"---",
		"***",
		"\\*escaped\\*",
		"<div>html</div>",
		"Title\n=====",
		"line1\nline2",
		"line1\r\nline2",
		"- [x] task 1\n- [ ] task 2",
		"| a | b |\n|---|---|\n| 1 | 2 |",
		"~~strikethrough~~",
		"https://example.com",
		"# Heading\n\nParagraph with *emphasis* and **strong**.\n\n- item 1\n- item 2\n",
	}

	for _, seed := range seeds {
		f.Add([]byte(seed))
	}

	f.Fuzz(func(t *testing.T, data []byte) {
		p := New()

		// Parse must never panic; errors only come from cancellation.
		doc, err := p.Parse(context.Background(), "fuzz.md", data)
		if err != nil {
			t.Fatalf("Parse() error = %v", err)
		}
		if doc == nil {
			t.Fatal("expected non-nil document")
		}

		size := len(data)
		walkErr := ldast.Walk(doc, func(n ldast.Node) error {
			sp := n.Bounds()
			if sp.Start < 0 || sp.End < sp.Start || sp.End > size {
				t.Errorf("node %T has span %v outside 0..%d", n, sp, size)
			}
			return nil
		})
		if walkErr != nil {
			t.Fatalf("Walk() error = %v", walkErr)
		}

		for i := 1; i < len(doc.Blocks); i++ {
			prev, next := doc.Blocks[i-1].Bounds(), doc.Blocks[i].Bounds()
			if prev.End > next.Start {
				t.Errorf("sibling blocks overlap: %v then %v", prev, next)
			}
		}
	})
}

// FuzzParseStrict fuzzes the CommonMark-only profile.
func FuzzParseStrict(f *testing.F) {
	seeds := []string{
		"",
		"# Title\n\nParagraph.\n\n- item\n\n> quote\n",
		"| not | a | table |",
		"~~no strikethrough~~",
	}

	for _, seed := range seeds {
		f.Add([]byte(seed))
	}

	f.Fuzz(func(t *testing.T, data []byte) {
		p := New(WithProfile(ldast.ProfileMdStrict))

		doc, err := p.Parse(context.Background(), "fuzz.md", data)
		if err != nil {
			t.Fatalf("Parse() error = %v", err)
		}
		if doc.Profile != ldast.ProfileMdStrict {
			t.Errorf("Profile = %v, want ProfileMdStrict", doc.Profile)
		}
	})
}
