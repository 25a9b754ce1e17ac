package stats

// SortField specifies how to sort per-file statistics.
type SortField string

const (
	// SortByAlpha sorts alphabetically by path.
	SortByAlpha SortField = "alpha"
	// SortByWords sorts by word count.
	SortByWords SortField = "words"
	// SortByBlocks sorts by block count.
	SortByBlocks SortField = "blocks"
)

// IsValid returns true if the sort field is valid.
func (s SortField) IsValid() bool {
	switch s {
	case SortByAlpha, SortByWords, SortByBlocks:
		return true
	default:
		return false
	}
}

// Options configures the Analyze function.
type Options struct {
	// IncludeKinds includes the per-variant breakdown maps.
	IncludeKinds bool

	// IncludeLanguages includes code block language counts. Untagged
	// fences get a content-based guess.
	IncludeLanguages bool

	// SortBy specifies how to sort ByFile.
	SortBy SortField

	// SortDesc sorts in descending order (highest first). Alphabetical
	// sorting ignores it.
	SortDesc bool

	// WorkingDir is the directory to make paths relative to.
	// If empty, paths are kept as-is (typically absolute).
	WorkingDir string
}

// DefaultOptions returns Options with sensible defaults.
func DefaultOptions() Options {
	return Options{
		IncludeKinds:     true,
		IncludeLanguages: true,
		SortBy:           SortByAlpha,
	}
}
