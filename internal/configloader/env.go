package configloader

import (
	"fmt"
	"os"
	"strconv"
	"strings"

	"github.com/yaklabco/golitedoc/pkg/config"
)

// envVarPrefix is the prefix for all golitedoc environment variables.
const envVarPrefix = "GOLITEDOC_"

// envFieldType represents the type of a configuration field.
type envFieldType int

const (
	envTypeString envFieldType = iota
	envTypeBool
	envTypeInt
	envTypeSlice
)

// envMapping defines environment variable to config field mappings.
type envMapping struct {
	field string
	typ   envFieldType
}

// envMappings maps environment variable names (without prefix) to config fields.
//
//nolint:gochecknoglobals // Read-only lookup table.
var envMappings = map[string]envMapping{
	"PROFILE":   {field: "profile", typ: envTypeString},
	"ENGINE":    {field: "engine", typ: envTypeString},
	"MAX_DEPTH": {field: "max_depth", typ: envTypeInt},
	"FORMAT":    {field: "format", typ: envTypeString},
	"COLOR":     {field: "color", typ: envTypeString},
	"JOBS":      {field: "jobs", typ: envTypeInt},
	"VERBOSE":   {field: "verbose", typ: envTypeBool},
	"IGNORE":    {field: "ignore", typ: envTypeSlice},
}

// LoadFromEnv applies environment variable overrides to the configuration.
// Environment variables are prefixed with GOLITEDOC_ (e.g., GOLITEDOC_PROFILE).
func LoadFromEnv(cfg *config.Config) error {
	if cfg == nil {
		return nil
	}

	for envSuffix, mapping := range envMappings {
		envVar := envVarPrefix + envSuffix
		value := os.Getenv(envVar)
		if value == "" {
			continue
		}

		if err := applyEnvValue(cfg, mapping, value, envVar); err != nil {
			return err
		}
	}

	return nil
}

// applyEnvValue applies a single environment variable value to the config.
func applyEnvValue(cfg *config.Config, mapping envMapping, value, envVar string) error {
	switch mapping.typ {
	case envTypeString:
		return setStringField(cfg, mapping.field, value)
	case envTypeBool:
		b, err := strconv.ParseBool(value)
		if err != nil {
			return fmt.Errorf("invalid boolean for %s: %q (expected true/false/1/0)", envVar, value)
		}
		return setBoolField(cfg, mapping.field, b)
	case envTypeInt:
		i, err := strconv.Atoi(value)
		if err != nil {
			return fmt.Errorf("invalid integer for %s: %q", envVar, value)
		}
		return setIntField(cfg, mapping.field, i)
	case envTypeSlice:
		return setSliceField(cfg, mapping.field, parseSliceValue(value))
	default:
		return fmt.Errorf("unknown field type for %s", envVar)
	}
}

// parseSliceValue parses a comma-separated string into a slice.
// Each element is trimmed of whitespace.
func parseSliceValue(value string) []string {
	if value == "" {
		return nil
	}

	parts := strings.Split(value, ",")
	result := make([]string, 0, len(parts))
	for _, part := range parts {
		trimmed := strings.TrimSpace(part)
		if trimmed != "" {
			result = append(result, trimmed)
		}
	}
	return result
}

// setStringField sets a string field on the config by field path.
func setStringField(cfg *config.Config, field, value string) error {
	switch field {
	case "profile":
		cfg.Profile = value
	case "engine":
		cfg.Engine = config.Engine(value)
	case "format":
		cfg.Format = config.OutputFormat(value)
	case "color":
		cfg.Color = config.ColorMode(value)
	default:
		return fmt.Errorf("unknown string field: %s", field)
	}
	return nil
}

// setBoolField sets a boolean field on the config by field path.
func setBoolField(cfg *config.Config, field string, value bool) error {
	switch field {
	case "verbose":
		cfg.Verbose = value
	default:
		return fmt.Errorf("unknown boolean field: %s", field)
	}
	return nil
}

// setIntField sets an integer field on the config by field path.
func setIntField(cfg *config.Config, field string, value int) error {
	switch field {
	case "max_depth":
		cfg.MaxDepth = value
	case "jobs":
		cfg.Jobs = value
	default:
		return fmt.Errorf("unknown integer field: %s", field)
	}
	return nil
}

// setSliceField sets a slice field on the config by field path.
func setSliceField(cfg *config.Config, field string, value []string) error {
	switch field {
	case "ignore":
		cfg.Ignore = value
	default:
		return fmt.Errorf("unknown slice field: %s", field)
	}
	return nil
}

// GetEnvVarName returns the full environment variable name for a config field.
func GetEnvVarName(field string) string {
	for suffix, mapping := range envMappings {
		if mapping.field == field {
			return envVarPrefix + suffix
		}
	}
	return ""
}

// ListEnvVars returns all supported environment variables with their descriptions.
func ListEnvVars() map[string]string {
	return map[string]string{
		"GOLITEDOC_PROFILE":   "Parse profile: litedoc, md, or md-strict",
		"GOLITEDOC_ENGINE":    "Parsing front end: litedoc or goldmark",
		"GOLITEDOC_MAX_DEPTH": "Maximum container nesting depth (0 = engine default)",
		"GOLITEDOC_FORMAT":    "Output format: text, json, or summary",
		"GOLITEDOC_COLOR":     "Styled output: auto, always, or never",
		"GOLITEDOC_JOBS":      "Number of parallel workers (0 = one per CPU)",
		"GOLITEDOC_VERBOSE":   "Debug logging: true or false",
		"GOLITEDOC_IGNORE":    "Comma-separated list of ignore patterns",
	}
}
