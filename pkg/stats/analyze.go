// Package stats computes document statistics over parsed trees: block and
// inline counts, word counts, and code block languages, per file and in
// aggregate.
package stats

import (
	"cmp"
	"path/filepath"
	"slices"
	"strings"
	"time"

	"github.com/yaklabco/golitedoc/pkg/langdetect"
	"github.com/yaklabco/golitedoc/pkg/ldast"
	"github.com/yaklabco/golitedoc/pkg/runner"
)

// ReportVersion is the current report format version.
const ReportVersion = "1.0.0"

// makeRelativePath converts an absolute path to a relative path from workDir.
// If workDir is empty or conversion fails, returns the original path.
func makeRelativePath(absPath, workDir string) string {
	if workDir == "" {
		return absPath
	}
	relPath, err := filepath.Rel(workDir, absPath)
	if err != nil {
		return absPath
	}
	return relPath
}

// Analyze transforms a runner.Result into a Report.
// It performs a single pass over each document tree to compute all views.
func Analyze(result *runner.Result, opts Options) *Report {
	report := &Report{
		Version:   ReportVersion,
		Timestamp: time.Now(),
	}
	if opts.IncludeKinds {
		report.Totals.BlockKinds = make(map[string]int)
	}
	if opts.IncludeLanguages {
		report.Totals.Languages = make(map[string]int)
	}

	if result == nil {
		return report
	}

	for _, file := range result.Files {
		report.Totals.Files++
		if file.Error != nil {
			report.Totals.Errored++
			continue
		}
		if file.Document == nil {
			continue
		}
		report.Totals.Parsed++

		fs := collectFile(file, opts)
		report.Totals.Blocks += fs.Blocks
		report.Totals.Inlines += fs.Inlines
		report.Totals.Words += fs.Words
		report.Totals.Diagnostics += fs.Diagnostics
		mergeCounts(report.Totals.BlockKinds, fs.BlockKinds)
		mergeCounts(report.Totals.Languages, fs.Languages)

		report.ByFile = append(report.ByFile, fs)
	}

	sortFileStats(report.ByFile, opts.SortBy, opts.SortDesc)

	return report
}

// collectFile computes statistics for one parsed document.
func collectFile(outcome runner.FileOutcome, opts Options) FileStats {
	fs := FileStats{
		Path:        makeRelativePath(outcome.Path, opts.WorkingDir),
		Profile:     outcome.Profile.String(),
		Diagnostics: len(outcome.Diagnostics),
	}
	if opts.IncludeKinds {
		fs.BlockKinds = make(map[string]int)
		fs.InlineKinds = make(map[string]int)
	}
	if opts.IncludeLanguages {
		fs.Languages = make(map[string]int)
	}

	//nolint:errcheck // the callback never fails
	ldast.Walk(outcome.Document, func(n ldast.Node) error {
		switch v := n.(type) {
		case ldast.Block:
			fs.Blocks++
			if fs.BlockKinds != nil {
				fs.BlockKinds[string(ldast.BlockKindOf(v))]++
			}
			switch b := v.(type) {
			case *ldast.Heading:
				fs.Headings++
			case *ldast.CodeBlock:
				fs.CodeBlocks++
				if fs.Languages != nil {
					fs.Languages[langdetect.DetectFence(b.Lang, []byte(b.Content))]++
				}
			}
		case ldast.Inline:
			fs.Inlines++
			if fs.InlineKinds != nil {
				fs.InlineKinds[string(ldast.InlineKindOf(v))]++
			}
			switch in := v.(type) {
			case *ldast.Text:
				fs.Words += len(strings.Fields(in.Content))
			case *ldast.Link, *ldast.AutoLink:
				fs.Links++
			}
		}
		return nil
	})

	return fs
}

// mergeCounts adds src counts into dst. A nil dst is left alone.
func mergeCounts(dst, src map[string]int) {
	if dst == nil {
		return
	}
	for k, n := range src {
		dst[k] += n
	}
}

func sortFileStats(files []FileStats, sortBy SortField, desc bool) {
	slices.SortFunc(files, func(left, right FileStats) int {
		switch sortBy {
		case SortByWords:
			result := cmp.Compare(left.Words, right.Words)
			if desc {
				result = -result
			}
			if result == 0 {
				result = cmp.Compare(left.Path, right.Path)
			}
			return result
		case SortByBlocks:
			result := cmp.Compare(left.Blocks, right.Blocks)
			if desc {
				result = -result
			}
			if result == 0 {
				result = cmp.Compare(left.Path, right.Path)
			}
			return result
		default: // SortByAlpha
			// Alphabetical sorting is always ascending (A-Z)
			return cmp.Compare(left.Path, right.Path)
		}
	})
}
