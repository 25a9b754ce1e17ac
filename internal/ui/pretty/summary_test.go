package pretty_test

import (
	"testing"

	"github.com/stretchr/testify/assert"

	"github.com/yaklabco/golitedoc/internal/ui/pretty"
	"github.com/yaklabco/golitedoc/pkg/runner"
)

func TestFormatSummary_Basic(t *testing.T) {
	styles := pretty.NewStyles(false)

	stats := runner.Stats{
		FilesDiscovered:      10,
		FilesParsed:          10,
		FilesWithDiagnostics: 3,
		DiagnosticsTotal:     15,
		DiagnosticsByKind: map[string]int{
			"unterminated-container": 9,
			"unknown-directive":      6,
		},
	}

	result := styles.FormatSummary(stats)

	assert.Contains(t, result, "Summary")
	assert.Contains(t, result, "Files parsed:")
	assert.Contains(t, result, "10")
	assert.Contains(t, result, "Files with errors:")
	assert.Contains(t, result, "3")
	assert.Contains(t, result, "Parse errors:")
	assert.Contains(t, result, "15")
	assert.Contains(t, result, "unterminated-container:")
	assert.Contains(t, result, "unknown-directive:")
	assert.Contains(t, result, "Validation failed")
}

func TestFormatSummary_NoErrors(t *testing.T) {
	styles := pretty.NewStyles(false)

	stats := runner.Stats{
		FilesDiscovered:   5,
		FilesParsed:       5,
		DiagnosticsByKind: map[string]int{},
	}

	result := styles.FormatSummary(stats)

	assert.Contains(t, result, "All documents valid")
	assert.NotContains(t, result, "Files with errors:")
}

func TestFormatSummary_UnreadableFiles(t *testing.T) {
	styles := pretty.NewStyles(false)

	stats := runner.Stats{
		FilesDiscovered:   5,
		FilesParsed:       4,
		FilesErrored:      1,
		DiagnosticsByKind: map[string]int{},
	}

	result := styles.FormatSummary(stats)

	assert.Contains(t, result, "Files unreadable:")
	assert.Contains(t, result, "Validation failed")
}

func TestFormatSummaryOneLine_NoErrors(t *testing.T) {
	styles := pretty.NewStyles(false)

	stats := runner.Stats{
		FilesDiscovered:   5,
		FilesParsed:       5,
		DiagnosticsByKind: map[string]int{},
	}

	result := styles.FormatSummaryOneLine(stats)

	assert.Contains(t, result, "No parse errors found")
	assert.Contains(t, result, "5 files parsed")
}

func TestFormatSummaryOneLine_SingleFileParsed(t *testing.T) {
	styles := pretty.NewStyles(false)

	stats := runner.Stats{
		FilesDiscovered: 1,
		FilesParsed:     1,
	}

	result := styles.FormatSummaryOneLine(stats)

	assert.Contains(t, result, "1 file parsed")
}

func TestFormatSummaryOneLine_WithErrors(t *testing.T) {
	styles := pretty.NewStyles(false)

	stats := runner.Stats{
		FilesDiscovered:      10,
		FilesParsed:          10,
		FilesWithDiagnostics: 3,
		DiagnosticsTotal:     12,
		DiagnosticsByKind:    map[string]int{"malformed-table": 12},
	}

	result := styles.FormatSummaryOneLine(stats)

	assert.Contains(t, result, "12 parse errors")
	assert.Contains(t, result, "in 3 files")
}

func TestFormatSummaryOneLine_SingleError(t *testing.T) {
	styles := pretty.NewStyles(false)

	stats := runner.Stats{
		FilesDiscovered:      1,
		FilesParsed:          1,
		FilesWithDiagnostics: 1,
		DiagnosticsTotal:     1,
		DiagnosticsByKind:    map[string]int{"unknown-directive": 1},
	}

	result := styles.FormatSummaryOneLine(stats)

	assert.Contains(t, result, "1 parse error")
	assert.Contains(t, result, "in 1 file")
}

func TestFormatSummaryOneLine_UnreadableFiles(t *testing.T) {
	styles := pretty.NewStyles(false)

	stats := runner.Stats{
		FilesDiscovered: 3,
		FilesParsed:     2,
		FilesErrored:    1,
	}

	result := styles.FormatSummaryOneLine(stats)

	assert.Contains(t, result, "1 file unreadable")
	assert.NotContains(t, result, "No parse errors found")
}
