package litedoc

import (
	"fmt"
	"strings"

	"github.com/yaklabco/golitedoc/pkg/ldast"
)

// ParseErrorKind identifies a class of parse error.
type ParseErrorKind string

// Parse error kinds.
const (
	// KindUnterminatedContainer reports a directive or fence that reached
	// end of input without its closing marker.
	KindUnterminatedContainer ParseErrorKind = "unterminated-container"

	// KindUnknownDirective reports a ::name the active profile does not
	// recognize.
	KindUnknownDirective ParseErrorKind = "unknown-directive"

	// KindMalformedTable reports a table row whose cell count disagrees
	// with the header row.
	KindMalformedTable ParseErrorKind = "malformed-table"

	// KindMalformedMetadata reports a front-matter entry that could not be
	// interpreted, or a front-matter block without its closing marker.
	KindMalformedMetadata ParseErrorKind = "malformed-metadata"

	// KindInvalidHeadingLevel reports a heading deeper than level six.
	KindInvalidHeadingLevel ParseErrorKind = "invalid-heading-level"

	// KindInvalidListMarker reports a line inside a list directive that is
	// neither an item, a continuation, nor a closing fence.
	KindInvalidListMarker ParseErrorKind = "invalid-list-marker"

	// KindDepthExceeded reports container nesting beyond the configured
	// maximum depth.
	KindDepthExceeded ParseErrorKind = "depth-exceeded"
)

// ParseError describes a single problem found while parsing a document.
type ParseError struct {
	// Kind classifies the error.
	Kind ParseErrorKind

	// Span is the byte range of the offending source text.
	Span ldast.Span

	// Message is the human-readable description of the problem.
	Message string
}

// Error implements the error interface.
func (e *ParseError) Error() string {
	return fmt.Sprintf("%s at bytes %s", e.Message, e.Span)
}

// Position resolves the error span against a line index.
func (e *ParseError) Position(lines ldast.Lines) ldast.Position {
	return lines.Position(e.Span.Start)
}

func errUnterminated(what string, span ldast.Span) ParseError {
	return ParseError{
		Kind:    KindUnterminatedContainer,
		Span:    span,
		Message: fmt.Sprintf("unterminated %s", what),
	}
}

func errUnknownDirective(name string, span ldast.Span) ParseError {
	return ParseError{
		Kind:    KindUnknownDirective,
		Span:    span,
		Message: fmt.Sprintf("unknown directive %q", name),
	}
}

func errMalformedTable(detail string, span ldast.Span) ParseError {
	return ParseError{
		Kind:    KindMalformedTable,
		Span:    span,
		Message: fmt.Sprintf("malformed table: %s", detail),
	}
}

func errMalformedMetadata(detail string, span ldast.Span) ParseError {
	return ParseError{
		Kind:    KindMalformedMetadata,
		Span:    span,
		Message: fmt.Sprintf("malformed metadata: %s", detail),
	}
}

func errInvalidHeadingLevel(level int, span ldast.Span) ParseError {
	return ParseError{
		Kind:    KindInvalidHeadingLevel,
		Span:    span,
		Message: fmt.Sprintf("heading level %d exceeds maximum of 6", level),
	}
}

func errInvalidListMarker(span ldast.Span) ParseError {
	return ParseError{
		Kind:    KindInvalidListMarker,
		Span:    span,
		Message: "invalid list item",
	}
}

func errDepthExceeded(limit int, span ldast.Span) ParseError {
	return ParseError{
		Kind:    KindDepthExceeded,
		Span:    span,
		Message: fmt.Sprintf("container nesting exceeds maximum depth of %d", limit),
	}
}

// ParseErrors is an ordered collection of parse errors. The order matches
// the order in which problems were encountered in the source.
type ParseErrors []ParseError

// Error implements the error interface by joining all messages.
func (errs ParseErrors) Error() string {
	if len(errs) == 0 {
		return "no parse errors"
	}
	parts := make([]string, len(errs))
	for i := range errs {
		parts[i] = errs[i].Error()
	}
	return strings.Join(parts, "; ")
}

// First returns the earliest recorded error, or nil when the collection is
// empty.
func (errs ParseErrors) First() *ParseError {
	if len(errs) == 0 {
		return nil
	}
	return &errs[0]
}

// ByKind returns the subset of errors with the given kind.
func (errs ParseErrors) ByKind(kind ParseErrorKind) ParseErrors {
	var out ParseErrors
	for i := range errs {
		if errs[i].Kind == kind {
			out = append(out, errs[i])
		}
	}
	return out
}

// ParseResult is the outcome of a recovering parse: the document that was
// produced, every error encountered along the way, and whether the input
// was clean.
type ParseResult struct {
	// Document is the parsed tree. It is always non-nil, even when errors
	// were recorded; recovery substitutes well-formed placeholder nodes
	// for broken constructs.
	Document *ldast.Document

	// Errors holds every problem found, in source order.
	Errors ParseErrors

	// OK reports whether the parse completed without recording any errors.
	OK bool
}
