package configloader

import "github.com/yaklabco/golitedoc/pkg/config"

// merge combines two configurations, with override taking precedence over base.
// The merge follows these rules:
//   - Scalar values: override overwrites base if override is non-zero
//   - Slices: override replaces base entirely if override is non-nil
//   - Nil/unset values in override do not override values in base
func merge(base, override *config.Config) *config.Config {
	if base == nil {
		return override
	}
	if override == nil {
		return base
	}

	result := *base

	if override.Profile != "" {
		result.Profile = override.Profile
	}
	if override.Engine != "" {
		result.Engine = override.Engine
	}
	if override.MaxDepth != 0 {
		result.MaxDepth = override.MaxDepth
	}
	if override.Format != "" {
		result.Format = override.Format
	}
	if override.Color != "" {
		result.Color = override.Color
	}
	if override.Jobs != 0 {
		result.Jobs = override.Jobs
	}

	// Verbose is a bool; a false override cannot unset a true base. CLI
	// --verbose can enable it, config files cannot disable it back.
	if override.Verbose {
		result.Verbose = override.Verbose
	}

	if override.Ignore != nil {
		result.Ignore = override.Ignore
	}

	return &result
}

// MergeAll merges multiple configurations in order, with later configs
// taking precedence.
func MergeAll(configs ...*config.Config) *config.Config {
	if len(configs) == 0 {
		return nil
	}

	result := configs[0]
	for i := 1; i < len(configs); i++ {
		result = merge(result, configs[i])
	}
	return result
}
