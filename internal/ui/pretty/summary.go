package pretty

import (
	"fmt"
	"sort"
	"strconv"
	"strings"

	"github.com/yaklabco/golitedoc/pkg/runner"
)

const (
	summaryDividerWidth = 40
	wordFile            = "file"
	wordFiles           = "files"
)

// FormatSummaryOneLine formats run statistics as a single line.
// Example: "5 parse errors in 2 files, 1 file unreadable".
func (s *Styles) FormatSummaryOneLine(stats runner.Stats) string {
	if stats.DiagnosticsTotal == 0 && stats.FilesErrored == 0 {
		fileWord := wordFiles
		if stats.FilesParsed == 1 {
			fileWord = wordFile
		}
		return s.Success.Render("No parse errors found") +
			s.Dim.Render(fmt.Sprintf(" (%d %s parsed)", stats.FilesParsed, fileWord)) + "\n"
	}

	var parts []string

	if stats.DiagnosticsTotal > 0 {
		errorWord := "errors"
		if stats.DiagnosticsTotal == 1 {
			errorWord = "error"
		}
		fileWord := wordFiles
		if stats.FilesWithDiagnostics == 1 {
			fileWord = wordFile
		}
		parts = append(parts, fmt.Sprintf("%s in %d %s",
			s.Error.Render(fmt.Sprintf("%d parse %s", stats.DiagnosticsTotal, errorWord)),
			stats.FilesWithDiagnostics,
			fileWord,
		))
	}

	if stats.FilesErrored > 0 {
		fileWord := wordFiles
		if stats.FilesErrored == 1 {
			fileWord = wordFile
		}
		parts = append(parts, s.Failure.Render(fmt.Sprintf("%d %s unreadable", stats.FilesErrored, fileWord)))
	}

	return strings.Join(parts, ", ") + "\n"
}

// FormatSummary formats run statistics as a summary block.
func (s *Styles) FormatSummary(stats runner.Stats) string {
	var builder strings.Builder

	builder.WriteString("\n")
	builder.WriteString(s.SummaryTitle.Render("Summary"))
	builder.WriteString("\n")
	builder.WriteString(strings.Repeat("-", summaryDividerWidth))
	builder.WriteString("\n")

	// Files
	builder.WriteString("  Files parsed:      " +
		s.SummaryValue.Render(strconv.Itoa(stats.FilesParsed)) + "\n")

	if stats.FilesWithDiagnostics > 0 {
		builder.WriteString("  Files with errors: " +
			s.Failure.Render(strconv.Itoa(stats.FilesWithDiagnostics)) + "\n")
	}

	if stats.FilesErrored > 0 {
		builder.WriteString("  Files unreadable:  " +
			s.Failure.Render(strconv.Itoa(stats.FilesErrored)) + "\n")
	}

	builder.WriteString("\n")

	// Diagnostics by kind
	builder.WriteString("  Parse errors:      " +
		s.SummaryValue.Render(strconv.Itoa(stats.DiagnosticsTotal)) + "\n")

	for _, kind := range sortedKinds(stats.DiagnosticsByKind) {
		builder.WriteString(fmt.Sprintf("    %-24s %s\n",
			kind+":",
			s.Error.Render(strconv.Itoa(stats.DiagnosticsByKind[kind])),
		))
	}

	builder.WriteString("\n")

	// Overall status
	switch {
	case stats.DiagnosticsTotal > 0 || stats.FilesErrored > 0:
		builder.WriteString(s.Failure.Render("Validation failed"))
	default:
		builder.WriteString(s.Success.Render("All documents valid"))
	}
	builder.WriteString("\n")

	return builder.String()
}

// sortedKinds returns the map keys in lexical order for stable output.
func sortedKinds(byKind map[string]int) []string {
	kinds := make([]string, 0, len(byKind))
	for kind := range byKind {
		kinds = append(kinds, kind)
	}
	sort.Strings(kinds)
	return kinds
}
