package runner_test

import (
	"context"
	"errors"
	"os"
	"path/filepath"
	"testing"

	"github.com/yaklabco/golitedoc/pkg/config"
	"github.com/yaklabco/golitedoc/pkg/ldast"
	"github.com/yaklabco/golitedoc/pkg/runner"
)

func writeFiles(t *testing.T, dir string, files map[string]string) {
	t.Helper()
	for name, content := range files {
		path := filepath.Join(dir, name)
		if err := os.MkdirAll(filepath.Dir(path), 0755); err != nil {
			t.Fatalf("setup mkdir: %v", err)
		}
		if err := os.WriteFile(path, []byte(content), 0644); err != nil {
			t.Fatalf("setup write: %v", err)
		}
	}
}

func TestRunner_Run_NoFiles(t *testing.T) {
	t.Parallel()

	dir := t.TempDir()

	ctx := context.Background()
	opts := runner.Options{
		Paths:      []string{"."},
		WorkingDir: dir,
		Config:     config.NewConfig(),
	}

	result, err := runner.New().Run(ctx, opts)
	if err != nil {
		t.Fatalf("Run() error = %v", err)
	}

	if result.Stats.FilesDiscovered != 0 {
		t.Errorf("FilesDiscovered = %d, want 0", result.Stats.FilesDiscovered)
	}

	if len(result.Files) != 0 {
		t.Errorf("len(Files) = %d, want 0", len(result.Files))
	}
}

func TestRunner_Run_SingleFile(t *testing.T) {
	t.Parallel()

	dir := t.TempDir()
	writeFiles(t, dir, map[string]string{"test.ld": "# Test\n\nBody text.\n"})

	ctx := context.Background()
	opts := runner.Options{
		Paths:      []string{"."},
		WorkingDir: dir,
		Config:     config.NewConfig(),
	}

	result, err := runner.New().Run(ctx, opts)
	if err != nil {
		t.Fatalf("Run() error = %v", err)
	}

	if result.Stats.FilesDiscovered != 1 {
		t.Errorf("FilesDiscovered = %d, want 1", result.Stats.FilesDiscovered)
	}

	if result.Stats.FilesParsed != 1 {
		t.Errorf("FilesParsed = %d, want 1", result.Stats.FilesParsed)
	}

	if len(result.Files) != 1 {
		t.Fatalf("len(Files) = %d, want 1", len(result.Files))
	}

	outcome := result.Files[0]
	if outcome.Document == nil {
		t.Fatal("Document is nil")
	}
	if outcome.Profile != ldast.ProfileLitedoc {
		t.Errorf("Profile = %v, want litedoc", outcome.Profile)
	}
	if outcome.Engine != config.EngineLitedoc {
		t.Errorf("Engine = %v, want litedoc", outcome.Engine)
	}
	if len(outcome.Document.Blocks) != 2 {
		t.Errorf("blocks = %d, want 2", len(outcome.Document.Blocks))
	}
	if string(outcome.Content) != "# Test\n\nBody text.\n" {
		t.Errorf("Content = %q", outcome.Content)
	}
}

func TestRunner_Run_MultipleFiles(t *testing.T) {
	t.Parallel()

	dir := t.TempDir()
	files := []string{"a.ld", "b.ld", "c.md", "d.litedoc", "e.markdown"}
	for _, f := range files {
		writeFiles(t, dir, map[string]string{f: "# " + f + "\n"})
	}

	ctx := context.Background()
	opts := runner.Options{
		Paths:      []string{"."},
		WorkingDir: dir,
		Config:     config.NewConfig(),
	}

	result, err := runner.New().Run(ctx, opts)
	if err != nil {
		t.Fatalf("Run() error = %v", err)
	}

	if result.Stats.FilesDiscovered != len(files) {
		t.Errorf("FilesDiscovered = %d, want %d", result.Stats.FilesDiscovered, len(files))
	}

	if result.Stats.FilesParsed != len(files) {
		t.Errorf("FilesParsed = %d, want %d", result.Stats.FilesParsed, len(files))
	}
}

func TestRunner_Run_WithDiagnostics(t *testing.T) {
	t.Parallel()

	dir := t.TempDir()
	writeFiles(t, dir, map[string]string{
		"clean.ld":  "# Fine\n",
		"broken.ld": "####### Seven\n",
	})

	ctx := context.Background()
	opts := runner.Options{
		Paths:      []string{"."},
		WorkingDir: dir,
		Config:     config.NewConfig(),
	}

	result, err := runner.New().Run(ctx, opts)
	if err != nil {
		t.Fatalf("Run() error = %v", err)
	}

	if result.Stats.DiagnosticsTotal != 1 {
		t.Errorf("DiagnosticsTotal = %d, want 1", result.Stats.DiagnosticsTotal)
	}

	if result.Stats.FilesWithDiagnostics != 1 {
		t.Errorf("FilesWithDiagnostics = %d, want 1", result.Stats.FilesWithDiagnostics)
	}

	if result.Stats.DiagnosticsByKind["invalid-heading-level"] != 1 {
		t.Errorf("invalid-heading-level count = %d, want 1",
			result.Stats.DiagnosticsByKind["invalid-heading-level"])
	}

	if !result.HasDiagnostics() {
		t.Error("HasDiagnostics() should be true")
	}

	// The broken file still yields a document.
	for _, outcome := range result.Files {
		if outcome.Document == nil {
			t.Errorf("Document is nil for %s", outcome.Path)
		}
	}
}

func TestRunner_Run_ProfileInference(t *testing.T) {
	t.Parallel()

	dir := t.TempDir()
	writeFiles(t, dir, map[string]string{
		"native.ld": "# Native\n",
		"plain.md":  "# Plain\n",
	})

	ctx := context.Background()
	opts := runner.Options{
		Paths:      []string{"."},
		WorkingDir: dir,
		Config:     config.NewConfig(),
	}

	result, err := runner.New().Run(ctx, opts)
	if err != nil {
		t.Fatalf("Run() error = %v", err)
	}

	profiles := make(map[string]ldast.Profile, len(result.Files))
	for _, outcome := range result.Files {
		profiles[filepath.Base(outcome.Path)] = outcome.Profile
	}

	if profiles["native.ld"] != ldast.ProfileLitedoc {
		t.Errorf("native.ld profile = %v, want litedoc", profiles["native.ld"])
	}
	if profiles["plain.md"] != ldast.ProfileMd {
		t.Errorf("plain.md profile = %v, want md", profiles["plain.md"])
	}
}

func TestRunner_Run_ForcedProfile(t *testing.T) {
	t.Parallel()

	dir := t.TempDir()
	writeFiles(t, dir, map[string]string{
		"a.ld": "# A\n",
		"b.md": "# B\n",
	})

	cfg := config.NewConfig()
	cfg.Profile = config.ProfileMdStrict

	ctx := context.Background()
	opts := runner.Options{
		Paths:      []string{"."},
		WorkingDir: dir,
		Config:     cfg,
	}

	result, err := runner.New().Run(ctx, opts)
	if err != nil {
		t.Fatalf("Run() error = %v", err)
	}

	for _, outcome := range result.Files {
		if outcome.Profile != ldast.ProfileMdStrict {
			t.Errorf("%s profile = %v, want md-strict", outcome.Path, outcome.Profile)
		}
	}
}

func TestRunner_Run_GoldmarkEngine(t *testing.T) {
	t.Parallel()

	dir := t.TempDir()
	writeFiles(t, dir, map[string]string{
		"doc.md":    "# Title\n\nSome **bold** text.\n",
		"native.ld": "# Title\n",
	})

	cfg := config.NewConfig()
	cfg.Engine = config.EngineGoldmark

	ctx := context.Background()
	opts := runner.Options{
		Paths:      []string{"."},
		WorkingDir: dir,
		Config:     cfg,
	}

	result, err := runner.New().Run(ctx, opts)
	if err != nil {
		t.Fatalf("Run() error = %v", err)
	}

	engines := make(map[string]config.Engine, len(result.Files))
	for _, outcome := range result.Files {
		if outcome.Document == nil {
			t.Fatalf("Document is nil for %s", outcome.Path)
		}
		engines[filepath.Base(outcome.Path)] = outcome.Engine
	}

	if engines["doc.md"] != config.EngineGoldmark {
		t.Errorf("doc.md engine = %v, want goldmark", engines["doc.md"])
	}

	// Litedoc documents always use the native parser.
	if engines["native.ld"] != config.EngineLitedoc {
		t.Errorf("native.ld engine = %v, want litedoc", engines["native.ld"])
	}
}

func TestRunner_Run_SerialVsParallelConsistency(t *testing.T) {
	t.Parallel()

	dir := t.TempDir()

	fileCount := 20
	for idx := range fileCount {
		name := string(rune('a'+idx%26)) + string(rune('0'+idx/26)) + ".ld"
		writeFiles(t, dir, map[string]string{name: "# " + name + "\n\n####### deep\n"})
	}

	cfg := config.NewConfig()

	// Run with 1 job (serial).
	ctx := context.Background()
	optsSerial := runner.Options{
		Paths:      []string{"."},
		WorkingDir: dir,
		Config:     cfg,
		Jobs:       1,
	}

	resultSerial, err := runner.New().Run(ctx, optsSerial)
	if err != nil {
		t.Fatalf("Run(serial) error = %v", err)
	}

	// Run with multiple jobs (parallel).
	optsParallel := runner.Options{
		Paths:      []string{"."},
		WorkingDir: dir,
		Config:     cfg,
		Jobs:       4,
	}

	resultParallel, err := runner.New().Run(ctx, optsParallel)
	if err != nil {
		t.Fatalf("Run(parallel) error = %v", err)
	}

	// Results should be identical.
	if resultSerial.Stats.FilesDiscovered != resultParallel.Stats.FilesDiscovered {
		t.Errorf("FilesDiscovered mismatch: serial=%d, parallel=%d",
			resultSerial.Stats.FilesDiscovered, resultParallel.Stats.FilesDiscovered)
	}

	if resultSerial.Stats.DiagnosticsTotal != resultParallel.Stats.DiagnosticsTotal {
		t.Errorf("DiagnosticsTotal mismatch: serial=%d, parallel=%d",
			resultSerial.Stats.DiagnosticsTotal, resultParallel.Stats.DiagnosticsTotal)
	}

	// File order should be deterministic.
	if len(resultSerial.Files) != len(resultParallel.Files) {
		t.Fatalf("File count mismatch: serial=%d, parallel=%d",
			len(resultSerial.Files), len(resultParallel.Files))
	}

	for i := range resultSerial.Files {
		if resultSerial.Files[i].Path != resultParallel.Files[i].Path {
			t.Errorf("File[%d] path mismatch: serial=%s, parallel=%s",
				i, resultSerial.Files[i].Path, resultParallel.Files[i].Path)
		}
	}
}

func TestRunner_Run_ContextCancellation(t *testing.T) {
	t.Parallel()

	dir := t.TempDir()

	for idx := range 10 {
		name := string(rune('a'+idx)) + ".ld"
		writeFiles(t, dir, map[string]string{name: "content"})
	}

	ctx, cancel := context.WithCancel(context.Background())
	cancel() // Cancel immediately.

	opts := runner.Options{
		Paths:      []string{"."},
		WorkingDir: dir,
		Config:     config.NewConfig(),
	}

	_, err := runner.New().Run(ctx, opts)
	// Should get a cancellation error from discovery or processing.
	if err == nil {
		t.Log("no error returned, cancellation may not have been caught")
	} else if !errors.Is(err, context.Canceled) {
		t.Logf("expected context.Canceled, got: %v", err)
	}
}

func TestRunner_Run_ConcurrentProcessing(t *testing.T) {
	t.Parallel()

	dir := t.TempDir()

	fileCount := 50
	for idx := range fileCount {
		name := "file" + string(rune('a'+idx%26)) + string(rune('0'+idx/26)) + ".ld"
		writeFiles(t, dir, map[string]string{name: "# Test\n"})
	}

	ctx := context.Background()
	opts := runner.Options{
		Paths:      []string{"."},
		WorkingDir: dir,
		Config:     config.NewConfig(),
		Jobs:       8,
	}

	result, err := runner.New().Run(ctx, opts)
	if err != nil {
		t.Fatalf("Run() error = %v", err)
	}

	if result.Stats.FilesParsed != fileCount {
		t.Errorf("FilesParsed = %d, want %d", result.Stats.FilesParsed, fileCount)
	}
}

func TestRunner_Run_NilConfig(t *testing.T) {
	t.Parallel()

	dir := t.TempDir()
	writeFiles(t, dir, map[string]string{"doc.ld": "# Title\n"})

	ctx := context.Background()
	opts := runner.Options{
		Paths:      []string{"."},
		WorkingDir: dir,
	}

	result, err := runner.New().Run(ctx, opts)
	if err != nil {
		t.Fatalf("Run() error = %v", err)
	}

	if result.Stats.FilesParsed != 1 {
		t.Errorf("FilesParsed = %d, want 1", result.Stats.FilesParsed)
	}
}

func TestInferProfile(t *testing.T) {
	t.Parallel()

	tests := []struct {
		path string
		want ldast.Profile
	}{
		{"doc.md", ldast.ProfileMd},
		{"doc.markdown", ldast.ProfileMd},
		{"DOC.MD", ldast.ProfileMd},
		{"doc.ld", ldast.ProfileLitedoc},
		{"doc.litedoc", ldast.ProfileLitedoc},
		{"doc.txt", ldast.ProfileLitedoc},
		{"noext", ldast.ProfileLitedoc},
	}

	for _, tt := range tests {
		t.Run(tt.path, func(t *testing.T) {
			t.Parallel()

			got := runner.InferProfile(tt.path)
			if got != tt.want {
				t.Errorf("InferProfile(%q) = %v, want %v", tt.path, got, tt.want)
			}
		})
	}
}

func TestResult_HasDiagnostics(t *testing.T) {
	t.Parallel()

	tests := []struct {
		name   string
		result *runner.Result
		want   bool
	}{
		{
			name:   "nil result",
			result: nil,
			want:   false,
		},
		{
			name: "no diagnostics",
			result: &runner.Result{
				Stats: runner.Stats{DiagnosticsTotal: 0},
			},
			want: false,
		},
		{
			name: "with diagnostics",
			result: &runner.Result{
				Stats: runner.Stats{DiagnosticsTotal: 3},
			},
			want: true,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			t.Parallel()

			got := tt.result.HasDiagnostics()
			if got != tt.want {
				t.Errorf("HasDiagnostics() = %v, want %v", got, tt.want)
			}
		})
	}
}

func TestResult_HasErrors(t *testing.T) {
	t.Parallel()

	tests := []struct {
		name   string
		result *runner.Result
		want   bool
	}{
		{
			name:   "nil result",
			result: nil,
			want:   false,
		},
		{
			name: "clean run",
			result: &runner.Result{
				Stats: runner.Stats{FilesParsed: 4},
			},
			want: false,
		},
		{
			name: "errored file",
			result: &runner.Result{
				Stats: runner.Stats{FilesErrored: 1},
			},
			want: true,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			t.Parallel()

			got := tt.result.HasErrors()
			if got != tt.want {
				t.Errorf("HasErrors() = %v, want %v", got, tt.want)
			}
		})
	}
}
