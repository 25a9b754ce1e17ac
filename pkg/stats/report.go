package stats

import "time"

// Report contains pre-computed document statistics.
// Computed once by Analyze(), used by all renderers.
type Report struct {
	// ByFile holds per-document statistics, one entry per parsed file.
	ByFile []FileStats `json:"byFile,omitempty"`

	// Totals contains aggregate statistics.
	Totals Totals `json:"totals"`

	// Version is the report format version.
	Version string `json:"version"`

	// Timestamp is when the analysis was performed.
	Timestamp time.Time `json:"timestamp"`
}

// FileStats contains aggregated data for a single document.
type FileStats struct {
	Path        string         `json:"path"`
	Profile     string         `json:"profile"`
	Blocks      int            `json:"blocks"`
	Inlines     int            `json:"inlines"`
	Words       int            `json:"words"`
	Headings    int            `json:"headings"`
	CodeBlocks  int            `json:"codeBlocks"`
	Links       int            `json:"links"`
	Diagnostics int            `json:"diagnostics"`
	BlockKinds  map[string]int `json:"blockKinds,omitempty"`
	InlineKinds map[string]int `json:"inlineKinds,omitempty"`
	Languages   map[string]int `json:"languages,omitempty"`
}

// Totals contains aggregate statistics for the report.
type Totals struct {
	Files       int            `json:"files"`
	Parsed      int            `json:"parsed"`
	Errored     int            `json:"errored"`
	Blocks      int            `json:"blocks"`
	Inlines     int            `json:"inlines"`
	Words       int            `json:"words"`
	Diagnostics int            `json:"diagnostics"`
	BlockKinds  map[string]int `json:"blockKinds,omitempty"`
	Languages   map[string]int `json:"languages,omitempty"`
}

// HasDiagnostics returns true if any document carried parse diagnostics.
func (t Totals) HasDiagnostics() bool {
	return t.Diagnostics > 0
}

// HasErrors returns true if any file failed to parse at all.
func (t Totals) HasErrors() bool {
	return t.Errored > 0
}
