package pretty

import (
	"fmt"
	"strings"
)

// Diagnostic is one parse error prepared for rendering: the file it came
// from, its resolved line/column, and the error's kind and message.
type Diagnostic struct {
	Path    string
	Line    int
	Column  int
	Kind    string
	Message string
}

// FormatDiagnostic formats a single diagnostic for terminal output.
func (s *Styles) FormatDiagnostic(diag Diagnostic, showContext bool, sourceLine string) string {
	var builder strings.Builder

	// Location: path:line:col
	location := fmt.Sprintf("%s:%d:%d",
		s.FilePath.Render(diag.Path),
		diag.Line,
		diag.Column,
	)

	// Main line: location  severity  message  (kind)
	builder.WriteString(fmt.Sprintf("  %s  %s  %s  %s\n",
		location,
		s.Error.Render("error"),
		s.Message.Render(diag.Message),
		s.ErrorKind.Render("("+diag.Kind+")"),
	))

	// Source context
	if showContext && sourceLine != "" {
		builder.WriteString(s.FormatSourceContext(sourceLine, diag.Column))
	}

	return builder.String()
}

// FormatWarning formats a recovered parse error as a one-line warning, used
// when a command reports problems without failing.
func (s *Styles) FormatWarning(diag Diagnostic) string {
	return fmt.Sprintf("%s: %s:%d:%d: %s\n",
		s.Warning.Render("warning"),
		diag.Path,
		diag.Line,
		diag.Column,
		diag.Message,
	)
}

// FormatSourceContext formats the source line with a caret marker.
func (s *Styles) FormatSourceContext(line string, column int) string {
	var builder strings.Builder

	// Indent to align with diagnostic output
	const indent = "        "

	// Source line
	builder.WriteString(indent + s.SourceLine.Render(line) + "\n")

	// Caret marker
	if column > 0 {
		padding := indent + strings.Repeat(" ", column-1)
		builder.WriteString(padding + s.Caret.Render("^") + "\n")
	}

	return builder.String()
}

// FormatFileHeader formats a file header for grouped output.
func (s *Styles) FormatFileHeader(path string, errorCount int) string {
	header := s.FilePath.Render(path)
	if errorCount > 0 {
		word := "errors"
		if errorCount == 1 {
			word = "error"
		}
		header += s.Dim.Render(fmt.Sprintf(" (%d %s)", errorCount, word))
	}
	return header
}
