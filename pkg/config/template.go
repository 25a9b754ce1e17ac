package config

// StarterTemplate returns the commented configuration template written by
// `golitedoc init`. Every key is shown with its default so a new project
// only has to uncomment what it wants to change.
func StarterTemplate() []byte {
	return []byte(`# golitedoc configuration
# See: https://github.com/yaklabco/golitedoc

# Parse profile: litedoc, md, or md-strict.
# Empty infers from the file extension (.md/.markdown parse as md).
# profile: litedoc

# Parsing front end: litedoc or goldmark.
# goldmark parses md files as full CommonMark/GFM.
# engine: litedoc

# Maximum container nesting depth (0 = engine default).
# max_depth: 0

# Output format: text, json, or summary.
# format: text

# Styled output: auto, always, or never.
# color: auto

# File patterns to skip (glob patterns).
# ignore:
#   - "vendor/**"
#   - "node_modules/**"
`)
}

// DefaultTemplateHeader returns the default header for generated configs.
func DefaultTemplateHeader() string {
	return `# golitedoc configuration
# See: https://github.com/yaklabco/golitedoc`
}
