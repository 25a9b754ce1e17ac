package configloader

import (
	"context"
	"os"
	"path/filepath"
	"testing"

	"github.com/yaklabco/golitedoc/pkg/config"
)

func TestLoadDefaults(t *testing.T) {
	t.Parallel()

	tmpDir := t.TempDir()

	ctx := context.Background()
	opts := LoadOptions{
		WorkingDir:         tmpDir,
		IgnoreSystemConfig: true,
		IgnoreUserConfig:   true,
		IgnoreEnv:          true,
	}

	result, err := Load(ctx, opts)
	if err != nil {
		t.Fatalf("Load() error = %v", err)
	}

	if result.Config == nil {
		t.Fatal("Load() returned nil config")
	}

	if result.Config.Engine != config.EngineLitedoc {
		t.Errorf("expected engine %q, got %q", config.EngineLitedoc, result.Config.Engine)
	}
	if result.Config.Format != config.FormatText {
		t.Errorf("expected format %q, got %q", config.FormatText, result.Config.Format)
	}
	if len(result.LoadedFrom) != 0 {
		t.Errorf("expected no loaded files, got %v", result.LoadedFrom)
	}
}

func TestLoadProjectConfig(t *testing.T) {
	t.Parallel()

	tmpDir := t.TempDir()

	configContent := `
profile: md
max_depth: 16
ignore:
  - "vendor/**"
`
	configPath := filepath.Join(tmpDir, ".golitedoc.yml")
	if err := os.WriteFile(configPath, []byte(configContent), 0o644); err != nil {
		t.Fatalf("write config: %v", err)
	}

	ctx := context.Background()
	opts := LoadOptions{
		WorkingDir:         tmpDir,
		IgnoreSystemConfig: true,
		IgnoreUserConfig:   true,
		IgnoreEnv:          true,
	}

	result, err := Load(ctx, opts)
	if err != nil {
		t.Fatalf("Load() error = %v", err)
	}

	if result.Config.Profile != config.ProfileMd {
		t.Errorf("expected profile %q, got %q", config.ProfileMd, result.Config.Profile)
	}
	if result.Config.MaxDepth != 16 {
		t.Errorf("expected max_depth 16, got %d", result.Config.MaxDepth)
	}
	if len(result.Config.Ignore) != 1 || result.Config.Ignore[0] != "vendor/**" {
		t.Errorf("unexpected ignore patterns: %v", result.Config.Ignore)
	}

	if len(result.LoadedFrom) != 1 {
		t.Errorf("expected 1 loaded file, got %d", len(result.LoadedFrom))
	}
}

func TestLoadExplicitConfig(t *testing.T) {
	t.Parallel()

	tmpDir := t.TempDir()

	configContent := `
engine: goldmark
format: json
`
	customPath := filepath.Join(tmpDir, "custom-config.yml")
	if err := os.WriteFile(customPath, []byte(configContent), 0o644); err != nil {
		t.Fatalf("write config: %v", err)
	}

	ctx := context.Background()
	opts := LoadOptions{
		WorkingDir:         tmpDir,
		ExplicitPath:       customPath,
		IgnoreSystemConfig: true,
		IgnoreUserConfig:   true,
		IgnoreEnv:          true,
	}

	result, err := Load(ctx, opts)
	if err != nil {
		t.Fatalf("Load() error = %v", err)
	}

	if result.Config.Engine != config.EngineGoldmark {
		t.Errorf("expected engine %q, got %q", config.EngineGoldmark, result.Config.Engine)
	}
	if result.Config.Format != config.FormatJSON {
		t.Errorf("expected format %q, got %q", config.FormatJSON, result.Config.Format)
	}
}

func TestLoadExplicitOverridesProject(t *testing.T) {
	t.Parallel()

	tmpDir := t.TempDir()

	projectPath := filepath.Join(tmpDir, ".golitedoc.yml")
	if err := os.WriteFile(projectPath, []byte("profile: md\nformat: json\n"), 0o644); err != nil {
		t.Fatalf("write project config: %v", err)
	}

	explicitPath := filepath.Join(tmpDir, "special.yml")
	if err := os.WriteFile(explicitPath, []byte("profile: md-strict\n"), 0o644); err != nil {
		t.Fatalf("write explicit config: %v", err)
	}

	ctx := context.Background()
	result, err := Load(ctx, LoadOptions{
		WorkingDir:         tmpDir,
		ExplicitPath:       explicitPath,
		IgnoreSystemConfig: true,
		IgnoreUserConfig:   true,
		IgnoreEnv:          true,
	})
	if err != nil {
		t.Fatalf("Load() error = %v", err)
	}

	if result.Config.Profile != config.ProfileMdStrict {
		t.Errorf("expected explicit profile to win, got %q", result.Config.Profile)
	}
	// The project value survives where the explicit file is silent.
	if result.Config.Format != config.FormatJSON {
		t.Errorf("expected project format to survive, got %q", result.Config.Format)
	}
	if len(result.LoadedFrom) != 2 {
		t.Errorf("expected 2 loaded files, got %v", result.LoadedFrom)
	}
}

func TestLoadCLIOverrides(t *testing.T) {
	t.Parallel()

	tmpDir := t.TempDir()

	configContent := `
profile: litedoc
engine: litedoc
`
	configPath := filepath.Join(tmpDir, ".golitedoc.yml")
	if err := os.WriteFile(configPath, []byte(configContent), 0o644); err != nil {
		t.Fatalf("write config: %v", err)
	}

	ctx := context.Background()
	cliCfg := &config.Config{
		Profile: config.ProfileMdStrict,
		Jobs:    8,
		Verbose: true,
	}
	opts := LoadOptions{
		WorkingDir:         tmpDir,
		IgnoreSystemConfig: true,
		IgnoreUserConfig:   true,
		IgnoreEnv:          true,
		CLIConfig:          cliCfg,
	}

	result, err := Load(ctx, opts)
	if err != nil {
		t.Fatalf("Load() error = %v", err)
	}

	if result.Config.Profile != config.ProfileMdStrict {
		t.Errorf("expected profile %q (CLI override), got %q", config.ProfileMdStrict, result.Config.Profile)
	}
	if result.Config.Jobs != 8 {
		t.Errorf("expected jobs 8 (CLI override), got %d", result.Config.Jobs)
	}
	if !result.Config.Verbose {
		t.Error("expected verbose true (CLI override)")
	}
	// The file value survives where the CLI is silent.
	if result.Config.Engine != config.EngineLitedoc {
		t.Errorf("expected engine %q, got %q", config.EngineLitedoc, result.Config.Engine)
	}
}

func TestLoadEnvOverridesFile(t *testing.T) {
	// Not parallel: t.Setenv modifies process state.

	tmpDir := t.TempDir()

	configPath := filepath.Join(tmpDir, ".golitedoc.yml")
	if err := os.WriteFile(configPath, []byte("profile: litedoc\n"), 0o644); err != nil {
		t.Fatalf("write config: %v", err)
	}

	t.Setenv("GOLITEDOC_PROFILE", "md")
	t.Setenv("GOLITEDOC_JOBS", "3")

	result, err := Load(context.Background(), LoadOptions{
		WorkingDir:         tmpDir,
		IgnoreSystemConfig: true,
		IgnoreUserConfig:   true,
	})
	if err != nil {
		t.Fatalf("Load() error = %v", err)
	}

	if result.Config.Profile != config.ProfileMd {
		t.Errorf("expected env profile %q to win, got %q", config.ProfileMd, result.Config.Profile)
	}
	if result.Config.Jobs != 3 {
		t.Errorf("expected env jobs 3, got %d", result.Config.Jobs)
	}
}

func TestLoadInvalidConfig(t *testing.T) {
	t.Parallel()

	tmpDir := t.TempDir()

	configContent := `
profile: invalid-profile
`
	configPath := filepath.Join(tmpDir, ".golitedoc.yml")
	if err := os.WriteFile(configPath, []byte(configContent), 0o644); err != nil {
		t.Fatalf("write config: %v", err)
	}

	ctx := context.Background()
	opts := LoadOptions{
		WorkingDir:         tmpDir,
		IgnoreSystemConfig: true,
		IgnoreUserConfig:   true,
		IgnoreEnv:          true,
	}

	_, err := Load(ctx, opts)
	if err == nil {
		t.Fatal("expected validation error for invalid profile")
	}
}

func TestLoadContextCancellation(t *testing.T) {
	t.Parallel()

	ctx, cancel := context.WithCancel(context.Background())
	cancel()

	opts := LoadOptions{
		WorkingDir:         t.TempDir(),
		IgnoreSystemConfig: true,
		IgnoreUserConfig:   true,
		IgnoreEnv:          true,
	}

	_, err := Load(ctx, opts)
	if err == nil {
		t.Fatal("expected context cancellation error")
	}
}

func TestFindProjectConfigSearchesUpward(t *testing.T) {
	t.Parallel()

	root := t.TempDir()
	nested := filepath.Join(root, "docs", "guides")
	if err := os.MkdirAll(nested, 0o755); err != nil {
		t.Fatalf("mkdir: %v", err)
	}

	configPath := filepath.Join(root, ".golitedoc.yml")
	if err := os.WriteFile(configPath, []byte("profile: md\n"), 0o644); err != nil {
		t.Fatalf("write config: %v", err)
	}

	found, err := FindProjectConfig(context.Background(), nested)
	if err != nil {
		t.Fatalf("FindProjectConfig() error = %v", err)
	}
	if found != configPath {
		t.Errorf("FindProjectConfig() = %q, want %q", found, configPath)
	}
}

func TestFindProjectConfigStopsAtVCSRoot(t *testing.T) {
	t.Parallel()

	root := t.TempDir()
	repo := filepath.Join(root, "repo")
	nested := filepath.Join(repo, "sub")
	if err := os.MkdirAll(filepath.Join(repo, ".git"), 0o755); err != nil {
		t.Fatalf("mkdir .git: %v", err)
	}
	if err := os.MkdirAll(nested, 0o755); err != nil {
		t.Fatalf("mkdir: %v", err)
	}

	// Config above the VCS root must not be found.
	if err := os.WriteFile(filepath.Join(root, ".golitedoc.yml"), []byte("profile: md\n"), 0o644); err != nil {
		t.Fatalf("write config: %v", err)
	}

	found, err := FindProjectConfig(context.Background(), nested)
	if err != nil {
		t.Fatalf("FindProjectConfig() error = %v", err)
	}
	if found != "" {
		t.Errorf("FindProjectConfig() = %q, want none (stopped at VCS root)", found)
	}
}

func TestValidateRejectsBadValues(t *testing.T) {
	t.Parallel()

	tests := []struct {
		name string
		cfg  config.Config
	}{
		{"bad profile", config.Config{Profile: "huge"}},
		{"bad engine", config.Config{Engine: "pandoc"}},
		{"bad format", config.Config{Format: "xml"}},
		{"bad color", config.Config{Color: "sometimes"}},
		{"negative max_depth", config.Config{MaxDepth: -1}},
		{"negative jobs", config.Config{Jobs: -2}},
		{"bad ignore glob", config.Config{Ignore: []string{"[unclosed"}}},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			t.Parallel()

			result := Validate(&tt.cfg)
			if result.Valid() {
				t.Error("Validate() accepted an invalid config")
			}
		})
	}
}

func TestValidateAcceptsDefaults(t *testing.T) {
	t.Parallel()

	result := Validate(config.NewConfig())
	if !result.Valid() {
		t.Errorf("Validate() rejected defaults: %v", result.AllMessages())
	}
}

func TestMergeAllPrecedence(t *testing.T) {
	t.Parallel()

	base := config.NewConfig()
	mid := &config.Config{Profile: config.ProfileMd, MaxDepth: 8}
	top := &config.Config{Profile: config.ProfileMdStrict}

	merged := MergeAll(base, mid, top)

	if merged.Profile != config.ProfileMdStrict {
		t.Errorf("expected later config to win, got %q", merged.Profile)
	}
	if merged.MaxDepth != 8 {
		t.Errorf("expected mid max_depth to survive, got %d", merged.MaxDepth)
	}
	if merged.Engine != config.EngineLitedoc {
		t.Errorf("expected base engine to survive, got %q", merged.Engine)
	}
}
