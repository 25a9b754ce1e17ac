package litedoc

import "github.com/yaklabco/golitedoc/pkg/ldast"

// Directive names recognized by the Litedoc profile.
const (
	directiveList      = "list"
	directiveCallout   = "callout"
	directiveQuote     = "quote"
	directiveFigure    = "figure"
	directiveTable     = "table"
	directiveFootnotes = "footnotes"
	directiveMath      = "math"
	directiveHTML      = "html"
)

// policy is the static answer table for one profile: which constructs are
// recognized, which diagnostics are recorded, and which inline syntax is
// active. Lookups are pure; a policy never changes after construction.
type policy struct {
	profile ldast.Profile

	// directives is the set of directive names the profile interprets.
	// Anything else is handled per reportUnknownDirective.
	directives map[string]bool

	// reportUnknownDirective controls whether an unrecognized directive
	// records a diagnostic. The body is kept as a RawBlock either way.
	reportUnknownDirective bool

	// Inline construct gates.
	wikiLinks     bool
	footnoteRefs  bool
	strikethrough bool
}

var litedocDirectives = map[string]bool{
	directiveList:      true,
	directiveCallout:   true,
	directiveQuote:     true,
	directiveFigure:    true,
	directiveTable:     true,
	directiveFootnotes: true,
	directiveMath:      true,
	directiveHTML:      true,
}

var mdDirectives = map[string]bool{
	directiveList:  true,
	directiveQuote: true,
}

// policyFor returns the policy table for a profile.
func policyFor(profile ldast.Profile) policy {
	switch profile {
	case ldast.ProfileMd:
		return policy{
			profile:                ldast.ProfileMd,
			directives:             mdDirectives,
			reportUnknownDirective: false,
			wikiLinks:              false,
			footnoteRefs:           false,
			strikethrough:          true,
		}
	case ldast.ProfileMdStrict:
		return policy{
			profile:                ldast.ProfileMdStrict,
			directives:             mdDirectives,
			reportUnknownDirective: true,
			wikiLinks:              false,
			footnoteRefs:           false,
			strikethrough:          false,
		}
	default:
		return policy{
			profile:                ldast.ProfileLitedoc,
			directives:             litedocDirectives,
			reportUnknownDirective: true,
			wikiLinks:              true,
			footnoteRefs:           true,
			strikethrough:          true,
		}
	}
}

// recognizes reports whether the profile interprets the named directive.
func (p policy) recognizes(name string) bool {
	return p.directives[name]
}

// recoveryAction names the deterministic strategy applied after a
// diagnostic is recorded.
type recoveryAction uint8

const (
	// recoverClose finalizes the open container at the point of failure,
	// keeping the children parsed so far.
	recoverClose recoveryAction = iota

	// recoverRawBlock keeps the construct's body uninterpreted.
	recoverRawBlock

	// recoverNormalizeRow pads or truncates a table row to the header
	// column count.
	recoverNormalizeRow

	// recoverRawValue keeps the unparsed metadata text as a string value.
	recoverRawValue

	// recoverClampLevel caps a heading at the maximum level.
	recoverClampLevel

	// recoverParagraphText leaves the offending line for the surrounding
	// context to consume as plain text.
	recoverParagraphText
)

// recoveryTable maps each error kind to its recovery strategy. The
// strategies themselves do not vary by profile; profiles differ in which
// diagnostics they record and in strict-mode fatality.
var recoveryTable = map[ParseErrorKind]recoveryAction{
	KindUnterminatedContainer: recoverClose,
	KindUnknownDirective:      recoverRawBlock,
	KindMalformedTable:        recoverNormalizeRow,
	KindMalformedMetadata:     recoverRawValue,
	KindInvalidHeadingLevel:   recoverClampLevel,
	KindInvalidListMarker:     recoverParagraphText,
	KindDepthExceeded:         recoverRawBlock,
}
