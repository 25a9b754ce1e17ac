package ldast

// Profile selects a dialect configuration. A profile decides which block and
// inline constructs are recognized and whether malformed constructs are hard
// errors or recoverable conditions. The zero value is ProfileLitedoc.
type Profile uint8

const (
	// ProfileLitedoc enables the full directive syntax: container
	// directives, callouts, figures, footnotes, math blocks, and
	// wiki-style links.
	ProfileLitedoc Profile = iota

	// ProfileMd restricts parsing to a standard core (headings,
	// paragraphs, lists, code fences, quotes, thematic breaks, basic
	// inline emphasis and links) and passes unknown extended syntax
	// through as raw blocks without diagnostics.
	ProfileMd

	// ProfileMdStrict recognizes the same constructs as ProfileMd but
	// treats every malformed or unrecognized construct as a hard error.
	ProfileMdStrict
)

// String returns the wire spelling of the profile.
func (p Profile) String() string {
	switch p {
	case ProfileLitedoc:
		return "litedoc"
	case ProfileMd:
		return "md"
	case ProfileMdStrict:
		return "md-strict"
	default:
		return "unknown"
	}
}

// ParseProfile maps a wire spelling ("litedoc", "md", "md-strict") to a
// Profile. The second result is false for unknown spellings.
func ParseProfile(s string) (Profile, bool) {
	switch s {
	case "litedoc":
		return ProfileLitedoc, true
	case "md":
		return ProfileMd, true
	case "md-strict":
		return ProfileMdStrict, true
	default:
		return ProfileLitedoc, false
	}
}

// Module names a feature module that an @modules directive can enable.
type Module string

// Feature modules recognized by the @modules directive.
const (
	ModuleTables        Module = "tables"
	ModuleFootnotes     Module = "footnotes"
	ModuleMath          Module = "math"
	ModuleTasks         Module = "tasks"
	ModuleStrikethrough Module = "strikethrough"
	ModuleAutolink      Module = "autolink"
	ModuleHTML          Module = "html"
)

// ParseModule maps a wire spelling to a Module. The second result is false
// for unknown spellings.
func ParseModule(s string) (Module, bool) {
	switch Module(s) {
	case ModuleTables, ModuleFootnotes, ModuleMath, ModuleTasks,
		ModuleStrikethrough, ModuleAutolink, ModuleHTML:
		return Module(s), true
	default:
		return "", false
	}
}
