package configloader

import (
	"fmt"
	"path/filepath"
	"strings"

	"github.com/yaklabco/golitedoc/pkg/config"
)

// ValidationError represents a configuration validation error.
type ValidationError struct {
	// Field is the path to the invalid field (e.g., "engine").
	Field string

	// Value is the invalid value.
	Value any

	// Message describes the validation error.
	Message string

	// FilePath is the config file containing the error (if known).
	FilePath string
}

// Error implements the error interface.
func (e *ValidationError) Error() string {
	var parts []string

	if e.FilePath != "" {
		parts = append(parts, e.FilePath)
	}
	if e.Field != "" {
		parts = append(parts, e.Field)
	}
	parts = append(parts, e.Message)

	return strings.Join(parts, ": ")
}

// ValidationResult contains all validation findings.
type ValidationResult struct {
	// Errors are validation failures that prevent loading.
	Errors []ValidationError

	// Warnings are non-fatal issues.
	Warnings []ValidationError
}

// Valid returns true if there are no errors.
func (r *ValidationResult) Valid() bool {
	return len(r.Errors) == 0
}

// HasWarnings returns true if there are any warnings.
func (r *ValidationResult) HasWarnings() bool {
	return len(r.Warnings) > 0
}

// AllMessages returns all error and warning messages combined.
func (r *ValidationResult) AllMessages() []string {
	messages := make([]string, 0, len(r.Errors)+len(r.Warnings))
	for _, e := range r.Errors {
		messages = append(messages, "error: "+e.Error())
	}
	for _, w := range r.Warnings {
		messages = append(messages, "warning: "+w.Error())
	}
	return messages
}

// knownProfiles lists valid profile values.
//
//nolint:gochecknoglobals // Read-only lookup table.
var knownProfiles = map[string]bool{
	config.ProfileLitedoc:  true,
	config.ProfileMd:       true,
	config.ProfileMdStrict: true,
}

// knownEngines lists valid engine values.
//
//nolint:gochecknoglobals // Read-only lookup table.
var knownEngines = map[config.Engine]bool{
	config.EngineLitedoc:  true,
	config.EngineGoldmark: true,
}

// knownFormats lists valid output format values.
//
//nolint:gochecknoglobals // Read-only lookup table.
var knownFormats = map[config.OutputFormat]bool{
	config.FormatText:    true,
	config.FormatJSON:    true,
	config.FormatSummary: true,
}

// knownColorModes lists valid color mode values.
//
//nolint:gochecknoglobals // Read-only lookup table.
var knownColorModes = map[config.ColorMode]bool{
	config.ColorAuto:   true,
	config.ColorAlways: true,
	config.ColorNever:  true,
}

// Validate checks a configuration for errors and warnings.
func Validate(cfg *config.Config) *ValidationResult {
	if cfg == nil {
		return &ValidationResult{}
	}

	result := &ValidationResult{}

	if cfg.Profile != "" && !knownProfiles[cfg.Profile] {
		result.Errors = append(result.Errors, ValidationError{
			Field:   "profile",
			Value:   cfg.Profile,
			Message: fmt.Sprintf("invalid profile %q; must be one of: litedoc, md, md-strict", cfg.Profile),
		})
	}

	if cfg.Engine != "" && !knownEngines[cfg.Engine] {
		result.Errors = append(result.Errors, ValidationError{
			Field:   "engine",
			Value:   cfg.Engine,
			Message: fmt.Sprintf("invalid engine %q; must be one of: litedoc, goldmark", cfg.Engine),
		})
	}

	if cfg.Format != "" && !knownFormats[cfg.Format] {
		result.Errors = append(result.Errors, ValidationError{
			Field:   "format",
			Value:   cfg.Format,
			Message: fmt.Sprintf("invalid format %q; must be one of: text, json, summary", cfg.Format),
		})
	}

	if cfg.Color != "" && !knownColorModes[cfg.Color] {
		result.Errors = append(result.Errors, ValidationError{
			Field:   "color",
			Value:   cfg.Color,
			Message: fmt.Sprintf("invalid color mode %q; must be one of: auto, always, never", cfg.Color),
		})
	}

	if cfg.MaxDepth < 0 {
		result.Errors = append(result.Errors, ValidationError{
			Field:   "max_depth",
			Value:   cfg.MaxDepth,
			Message: "max_depth must be >= 0 (0 means engine default)",
		})
	}

	if cfg.Jobs < 0 {
		result.Errors = append(result.Errors, ValidationError{
			Field:   "jobs",
			Value:   cfg.Jobs,
			Message: "jobs must be >= 0 (0 means one per CPU)",
		})
	}

	validateIgnorePatterns(cfg, result)

	return result
}

// validateIgnorePatterns checks that ignore patterns are valid globs.
func validateIgnorePatterns(cfg *config.Config, result *ValidationResult) {
	for i, pattern := range cfg.Ignore {
		// filepath.Match returns an error only for malformed patterns.
		_, err := filepath.Match(pattern, "")
		if err != nil {
			result.Errors = append(result.Errors, ValidationError{
				Field:   fmt.Sprintf("ignore[%d]", i),
				Value:   pattern,
				Message: fmt.Sprintf("invalid glob pattern: %v", err),
			})
		}
	}
}

// ValidateWithFile validates configuration and includes file path in errors.
func ValidateWithFile(cfg *config.Config, filePath string) *ValidationResult {
	result := Validate(cfg)

	for i := range result.Errors {
		result.Errors[i].FilePath = filePath
	}
	for i := range result.Warnings {
		result.Warnings[i].FilePath = filePath
	}

	return result
}

// IsValidProfile returns true if the profile string is valid.
func IsValidProfile(p string) bool {
	return knownProfiles[p]
}

// IsValidEngine returns true if the engine is valid.
func IsValidEngine(e config.Engine) bool {
	return knownEngines[e]
}

// IsValidFormat returns true if the format is valid.
func IsValidFormat(f config.OutputFormat) bool {
	return knownFormats[f]
}
