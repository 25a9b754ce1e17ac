package litedoc_test

import (
	"strings"
	"testing"

	"github.com/yaklabco/golitedoc/pkg/ldast"
	"github.com/yaklabco/golitedoc/pkg/litedoc"
)

// benchDoc exercises the common block and inline paths in one document.
const benchDoc = `--- meta ---
title: Release notes
tags: [parser, performance]
---

# Release notes

This release *improves* the **hot path** and drops two allocations per
inline run. See [[Changelog|docs/changelog]] for the full list[^1].

::callout type=note title="Upgrading"
Pin the minor version until downstream tooling catches up.
::

::list
- Faster span tracking
- Fewer ` + "`[]byte`" + ` copies
- Stricter fence handling
::

` + "```go" + `
res := litedoc.ParseWithRecovery(src)
for _, e := range res.Errors {
	fmt.Println(e)
}
` + "```" + `

Visit <https://go.dev/doc> for toolchain notes.
`

func BenchmarkParse(b *testing.B) {
	b.SetBytes(int64(len(benchDoc)))
	b.ResetTimer()
	for range b.N {
		doc, err := litedoc.Parse(benchDoc)
		if err != nil || doc == nil {
			b.Fatal(err)
		}
	}
}

func BenchmarkParseWithRecovery(b *testing.B) {
	// Unclosed directive and a stray fence force the recovery path.
	src := benchDoc + "\n::quote\nnever closed\n\n```\ndangling\n"
	b.SetBytes(int64(len(src)))
	b.ResetTimer()
	for range b.N {
		res := litedoc.ParseWithRecovery(src)
		if res.Document == nil || res.OK {
			b.Fatal("expected recovered diagnostics")
		}
	}
}

func BenchmarkParseInlineHeavy(b *testing.B) {
	line := "mix *em* **strong** ~~gone~~ `code` [[Link|to/page]] <https://go.dev> and[^n] text. "
	src := "# Inline\n\n" + strings.Repeat(line, 50) + "\n"
	b.SetBytes(int64(len(src)))
	b.ResetTimer()
	for range b.N {
		if _, err := litedoc.Parse(src); err != nil {
			b.Fatal(err)
		}
	}
}

func BenchmarkParseLargeList(b *testing.B) {
	var sb strings.Builder
	sb.WriteString("::list\n")
	for range 200 {
		sb.WriteString("- an item with *some* inline work\n")
	}
	sb.WriteString("::\n")
	src := sb.String()
	b.SetBytes(int64(len(src)))
	b.ResetTimer()
	for range b.N {
		if _, err := litedoc.Parse(src); err != nil {
			b.Fatal(err)
		}
	}
}

func BenchmarkParseMdProfile(b *testing.B) {
	src := "# Title\n\nPlain paragraph with *emphasis*.\n\n```sh\nls -la\n```\n"
	b.SetBytes(int64(len(src)))
	b.ResetTimer()
	for range b.N {
		if _, err := litedoc.ParseProfile(src, ldast.ProfileMd); err != nil {
			b.Fatal(err)
		}
	}
}
