// Package langdetect identifies the programming language of code block
// content. Fenced blocks without a language tag get a content-based guess
// via go-enry; tagged blocks get their tag normalized to a canonical form.
package langdetect

import (
	"bytes"
	"strings"

	"github.com/go-enry/go-enry/v2"
)

// Canonical tags for common detected languages.
const (
	langGo         = "go"
	langPython     = "python"
	langJavaScript = "javascript"
	langJSON       = "json"
	langYAML       = "yaml"
	langHTML       = "html"
	langSQL        = "sql"
	langRust       = "rust"
	langDockerfile = "dockerfile"
	langText       = "text"
	langBash       = "bash"
)

// classifierCandidates bounds the enry classifier to languages that show
// up in documentation code blocks.
//
//nolint:gochecknoglobals // static candidate list
var classifierCandidates = []string{
	"Go", "Python", "Shell", "JavaScript", "TypeScript",
	"Ruby", "Rust", "Java", "C", "C++", "SQL", "JSON",
	"YAML", "HTML", "CSS", "Markdown", "Dockerfile",
}

// DetectFence resolves the language of a fenced code block. A non-empty
// fence tag wins (normalized); untagged content is detected.
func DetectFence(tag string, content []byte) string {
	if tag != "" {
		return NormalizeTag(tag)
	}
	return Detect(content)
}

// Detect returns the detected language for code content.
// Returns "text" if detection fails or confidence is low.
func Detect(content []byte) string {
	if len(content) == 0 {
		return langText
	}

	// Shebang first. It is the most reliable signal.
	if lang, safe := enry.GetLanguageByShebang(content); safe {
		return NormalizeTag(lang)
	}

	if lang := detectByPattern(content); lang != "" {
		return lang
	}

	// Classifier last; only trust a confident answer.
	if lang, safe := enry.GetLanguageByClassifier(content, classifierCandidates); safe && lang != "" {
		return NormalizeTag(lang)
	}

	return langText
}

// probe is one language-specific pattern check. It returns "" when the
// content does not match.
type probe func(content, trimmed []byte) string

// detectByPattern runs high-signal pattern checks in order of specificity
// before falling back to the statistical classifier.
func detectByPattern(content []byte) string {
	trimmed := bytes.TrimSpace(content)

	probes := []probe{
		probeGo,
		probePython,
		probeHTML,
		probeJSON,
		probeDockerfile,
		probeSQL,
		probeRust,
		probeJavaScript,
		probeYAML,
	}
	for _, p := range probes {
		if lang := p(content, trimmed); lang != "" {
			return lang
		}
	}
	return ""
}

func probeGo(_, trimmed []byte) string {
	if bytes.HasPrefix(trimmed, []byte("package ")) {
		return langGo
	}
	return ""
}

func probePython(content, _ []byte) string {
	text := string(content)
	if strings.Contains(text, "def ") && strings.Contains(text, "):") {
		return langPython
	}
	// Python imports, as opposed to Go's grouped "import (".
	if strings.Contains(text, "import ") && !strings.Contains(text, "import (") {
		if strings.Contains(text, "from ") || strings.HasPrefix(strings.TrimSpace(text), "import ") {
			return langPython
		}
	}
	if strings.Contains(text, "__name__") || strings.Contains(text, "__main__") {
		return langPython
	}
	return ""
}

func probeHTML(_, trimmed []byte) string {
	lower := bytes.ToLower(trimmed)
	if bytes.Contains(lower, []byte("<!doctype html")) ||
		bytes.Contains(lower, []byte("<html")) ||
		bytes.Contains(lower, []byte("<head>")) ||
		bytes.Contains(lower, []byte("<body>")) {
		return langHTML
	}
	return ""
}

func probeJSON(_, trimmed []byte) string {
	if (bytes.HasPrefix(trimmed, []byte("{")) || bytes.HasPrefix(trimmed, []byte("["))) &&
		bytes.Contains(trimmed, []byte(`"`)) {
		return langJSON
	}
	return ""
}

func probeDockerfile(content, trimmed []byte) string {
	if bytes.HasPrefix(trimmed, []byte("FROM ")) ||
		(bytes.Contains(content, []byte("\nFROM ")) && bytes.Contains(content, []byte("\nRUN "))) ||
		(bytes.Contains(content, []byte("WORKDIR ")) && bytes.Contains(content, []byte("COPY "))) {
		return langDockerfile
	}
	return ""
}

func probeSQL(content, _ []byte) string {
	upper := strings.TrimSpace(strings.ToUpper(string(content)))
	if strings.HasPrefix(upper, "SELECT ") ||
		strings.HasPrefix(upper, "INSERT ") ||
		strings.HasPrefix(upper, "UPDATE ") ||
		strings.HasPrefix(upper, "DELETE ") ||
		strings.HasPrefix(upper, "CREATE ") {
		return langSQL
	}
	return ""
}

func probeRust(content, _ []byte) string {
	text := string(content)
	if strings.Contains(text, "fn main()") ||
		strings.Contains(text, "println!") ||
		strings.Contains(text, "let mut ") {
		return langRust
	}
	return ""
}

func probeJavaScript(content, _ []byte) string {
	text := string(content)
	if strings.Contains(text, "=>") ||
		strings.Contains(text, "const ") ||
		strings.Contains(text, "let ") ||
		strings.Contains(text, "console.log") {
		return langJavaScript
	}
	return ""
}

// probeYAML counts key: value pairs and root list items; two or more
// count as YAML.
func probeYAML(content, _ []byte) string {
	lines := bytes.Split(content, []byte("\n"))
	keys := 0

	for _, line := range lines {
		line = bytes.TrimSpace(line)
		if len(line) == 0 || bytes.HasPrefix(line, []byte("#")) {
			continue
		}
		// key: value, excluding lines that look like code.
		if bytes.Contains(line, []byte(": ")) {
			if !bytes.Contains(line, []byte("(")) &&
				!bytes.Contains(line, []byte("{")) &&
				!bytes.HasPrefix(line, []byte(`"`)) {
				keys++
			}
		}
		if bytes.HasPrefix(line, []byte("- ")) {
			keys++
		}
	}

	if keys >= 2 {
		return langYAML
	}
	return ""
}

// tagAliases maps fence-tag spellings and enry names to canonical tags.
//
//nolint:gochecknoglobals // static alias table
var tagAliases = map[string]string{
	"shell":  langBash,
	"sh":     langBash,
	"zsh":    langBash,
	"golang": langGo,
	"py":     langPython,
	"js":     langJavaScript,
	"yml":    langYAML,
}

// NormalizeTag canonicalizes a fence tag or enry language name: lowercase,
// with common alias spellings folded together.
func NormalizeTag(tag string) string {
	lower := strings.ToLower(strings.TrimSpace(tag))
	if canonical, ok := tagAliases[lower]; ok {
		return canonical
	}
	return lower
}
