// Package config defines core configuration types for golitedoc.
// These types are pure data structures with no dependency on the loader
// or the engine packages.
package config

// Engine selects the parsing front end.
type Engine string

const (
	// EngineLitedoc is the native LiteDoc parser.
	EngineLitedoc Engine = "litedoc"
	// EngineGoldmark is the goldmark-backed CommonMark/GFM front end.
	EngineGoldmark Engine = "goldmark"
)

// OutputFormat specifies how results are rendered.
type OutputFormat string

const (
	FormatText    OutputFormat = "text"
	FormatJSON    OutputFormat = "json"
	FormatSummary OutputFormat = "summary"
)

// ColorMode controls styled terminal output.
type ColorMode string

const (
	ColorAuto   ColorMode = "auto"
	ColorAlways ColorMode = "always"
	ColorNever  ColorMode = "never"
)

// Profile names accepted in configuration. Empty means infer from the
// file extension (.md/.markdown parse as md, everything else as litedoc).
const (
	ProfileLitedoc  = "litedoc"
	ProfileMd       = "md"
	ProfileMdStrict = "md-strict"
)

// Config is the root configuration structure for golitedoc.
type Config struct {
	// Profile forces a parse profile ("litedoc", "md", "md-strict").
	// Empty infers the profile from each file's extension.
	Profile string `mapstructure:"profile" yaml:"profile"`

	// MaxDepth caps container nesting. 0 uses the engine default.
	MaxDepth int `mapstructure:"max_depth" yaml:"max_depth"`

	// Engine selects the parsing front end ("litedoc" or "goldmark").
	Engine Engine `mapstructure:"engine" yaml:"engine"`

	// Format specifies the output format.
	Format OutputFormat `mapstructure:"format" yaml:"format"`

	// Color controls styled output ("auto", "always", "never").
	Color ColorMode `mapstructure:"color" yaml:"color"`

	// Ignore contains glob patterns for files to skip.
	Ignore []string `mapstructure:"ignore" yaml:"ignore"`

	// CLI-level options (not persisted to config files).

	// Jobs specifies the number of parallel workers. 0 means one per CPU.
	Jobs int `mapstructure:"-" yaml:"-"`

	// Verbose enables debug logging.
	Verbose bool `mapstructure:"-" yaml:"-"`
}

// NewConfig returns a Config with sensible defaults.
func NewConfig() *Config {
	return &Config{
		Profile:  "",
		MaxDepth: 0, // engine default
		Engine:   EngineLitedoc,
		Format:   FormatText,
		Color:    ColorAuto,
		Ignore:   nil,
		Jobs:     0, // one worker per CPU
	}
}
