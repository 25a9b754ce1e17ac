package reporter_test

import (
	"bytes"
	"context"
	"encoding/json"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/yaklabco/golitedoc/pkg/config"
	"github.com/yaklabco/golitedoc/pkg/ldast"
	"github.com/yaklabco/golitedoc/pkg/reporter"
	"github.com/yaklabco/golitedoc/pkg/runner"
)

// createDocumentResult builds a parse result with a document exercising
// most block variants.
func createDocumentResult() *runner.Result {
	start := int64(3)

	doc := &ldast.Document{
		Profile: ldast.ProfileLitedoc,
		Modules: []ldast.Module{ldast.ModuleTables},
		Metadata: &ldast.Metadata{
			Entries: []ldast.Entry{
				{Key: "title", Value: ldast.StringValue("Guide")},
				{Key: "version", Value: ldast.IntValue(2)},
				{Key: "tags", Value: ldast.ListValue{ldast.StringValue("a"), ldast.StringValue("b")}},
			},
			Span: ldast.NewSpan(0, 35),
		},
		Blocks: []ldast.Block{
			&ldast.Heading{
				Level:   2,
				Content: []ldast.Inline{&ldast.Text{Content: "Setup", Span: ldast.NewSpan(40, 45)}},
				Span:    ldast.NewSpan(37, 45),
			},
			&ldast.CodeBlock{Lang: "go", Content: "package main\n", Span: ldast.NewSpan(47, 80)},
			&ldast.List{
				Kind:  ldast.ListOrdered,
				Start: &start,
				Items: []ldast.ListItem{
					{
						Blocks: []ldast.Block{
							&ldast.Paragraph{
								Content: []ldast.Inline{&ldast.Text{Content: "step", Span: ldast.NewSpan(90, 94)}},
								Span:    ldast.NewSpan(90, 94),
							},
						},
						Span: ldast.NewSpan(88, 94),
					},
				},
				Span: ldast.NewSpan(82, 96),
			},
			&ldast.MathBlock{Display: true, Content: "x^2", Span: ldast.NewSpan(98, 110)},
		},
		Span: ldast.NewSpan(0, 110),
	}

	return &runner.Result{
		Files: []runner.FileOutcome{
			{
				Path:     "docs/full.ld",
				Content:  []byte("irrelevant"),
				Profile:  ldast.ProfileLitedoc,
				Engine:   config.EngineLitedoc,
				Document: doc,
			},
		},
		Stats: runner.Stats{FilesDiscovered: 1, FilesParsed: 1},
	}
}

func TestTreeReporter_Basic(t *testing.T) {
	t.Parallel()

	var buf, errBuf bytes.Buffer
	r := reporter.NewTreeReporter(reporter.Options{
		Writer:      &buf,
		ErrorWriter: &errBuf,
		Color:       "never",
	})

	count, err := r.Report(context.Background(), createTestResult())

	require.NoError(t, err)
	assert.Equal(t, 1, count)

	output := buf.String()
	assert.Contains(t, output, "docs/guide.ld")
	assert.Contains(t, output, "Profile: litedoc")
	assert.Contains(t, output, "Blocks: 1")
	assert.Contains(t, output, "[1] Heading (level 1)")

	// Recovered diagnostics go to the error writer, not stdout
	assert.NotContains(t, output, "warning")
	assert.Contains(t, errBuf.String(), "warning: docs/guide.ld:3:1: unknown directive ::bogus")
}

func TestTreeReporter_Verbose(t *testing.T) {
	t.Parallel()

	var buf bytes.Buffer
	r := reporter.NewTreeReporter(reporter.Options{
		Writer:  &buf,
		Color:   "never",
		Verbose: true,
	})

	_, err := r.Report(context.Background(), createTestResult())

	require.NoError(t, err)
	assert.Contains(t, buf.String(), "Content: Title")
	assert.Contains(t, buf.String(), "0..7")
}

func TestTreeReporter_FileError(t *testing.T) {
	t.Parallel()

	result := &runner.Result{
		Files: []runner.FileOutcome{
			{Path: "missing.ld", Error: assert.AnError},
		},
		Stats: runner.Stats{FilesDiscovered: 1, FilesErrored: 1},
	}

	var buf, errBuf bytes.Buffer
	r := reporter.NewTreeReporter(reporter.Options{
		Writer:      &buf,
		ErrorWriter: &errBuf,
		Color:       "never",
	})

	count, err := r.Report(context.Background(), result)

	require.NoError(t, err)
	assert.Zero(t, count)
	assert.Contains(t, errBuf.String(), "missing.ld: error:")
	assert.NotContains(t, buf.String(), "missing.ld")
}

func TestTreeReporter_Empty(t *testing.T) {
	t.Parallel()

	var buf bytes.Buffer
	r := reporter.NewTreeReporter(reporter.Options{Writer: &buf, Color: "never"})

	count, err := r.Report(context.Background(), &runner.Result{})

	require.NoError(t, err)
	assert.Zero(t, count)
	assert.Contains(t, buf.String(), "No files to parse.")
}

func TestTreeReporter_MultipleFiles(t *testing.T) {
	t.Parallel()

	one := createCleanResult()
	two := createDocumentResult()
	result := &runner.Result{
		Files: []runner.FileOutcome{one.Files[0], two.Files[0]},
		Stats: runner.Stats{FilesDiscovered: 2, FilesParsed: 2},
	}

	var buf bytes.Buffer
	r := reporter.NewTreeReporter(reporter.Options{Writer: &buf, Color: "never"})

	_, err := r.Report(context.Background(), result)

	require.NoError(t, err)

	output := buf.String()
	assert.Contains(t, output, "docs/clean.ld")
	assert.Contains(t, output, "docs/full.ld")

	// A blank line separates the two documents
	assert.Contains(t, output, "\n\ndocs/full.ld")
}

func TestDocumentJSONReporter_Schema(t *testing.T) {
	t.Parallel()

	var buf bytes.Buffer
	r := reporter.NewDocumentJSONReporter(reporter.Options{Writer: &buf})

	count, err := r.Report(context.Background(), createDocumentResult())

	require.NoError(t, err)
	assert.Zero(t, count)

	var output reporter.DocumentOutput
	require.NoError(t, json.Unmarshal(buf.Bytes(), &output))

	assert.Equal(t, "1.0.0", output.Version)
	require.Len(t, output.Documents, 1)

	doc := output.Documents[0]
	assert.Equal(t, "docs/full.ld", doc.Path)
	assert.Equal(t, "litedoc", doc.Profile)
	assert.Equal(t, "litedoc", doc.Engine)
	assert.Equal(t, []string{"tables"}, doc.Modules)
	assert.Equal(t, 0, doc.Span.Start)
	assert.Equal(t, 110, doc.Span.End)

	require.Len(t, doc.Metadata, 3)
	assert.Equal(t, "title", doc.Metadata[0].Key)
	assert.Equal(t, "Guide", doc.Metadata[0].Value)
	assert.Equal(t, "version", doc.Metadata[1].Key)
	assert.EqualValues(t, 2, doc.Metadata[1].Value)
	assert.Equal(t, []any{"a", "b"}, doc.Metadata[2].Value)

	require.Len(t, doc.Blocks, 4)

	heading := doc.Blocks[0]
	assert.Equal(t, "heading", heading.Type)
	assert.Equal(t, 2, heading.Level)
	assert.Equal(t, 37, heading.Span.Start)
	assert.Equal(t, 45, heading.Span.End)
	require.Len(t, heading.Content, 1)
	assert.Equal(t, "text", heading.Content[0].Type)
	assert.Equal(t, "Setup", heading.Content[0].Content)

	code := doc.Blocks[1]
	assert.Equal(t, "code_block", code.Type)
	assert.Equal(t, "go", code.Lang)
	assert.Equal(t, "package main\n", code.Literal)

	list := doc.Blocks[2]
	assert.Equal(t, "list", list.Type)
	assert.Equal(t, "ordered", list.Kind)
	require.NotNil(t, list.Start)
	assert.Equal(t, int64(3), *list.Start)
	require.Len(t, list.Items, 1)
	require.Len(t, list.Items[0].Blocks, 1)
	assert.Equal(t, "paragraph", list.Items[0].Blocks[0].Type)

	math := doc.Blocks[3]
	assert.Equal(t, "math_block", math.Type)
	require.NotNil(t, math.Display)
	assert.True(t, *math.Display)
	assert.Equal(t, "x^2", math.Literal)
}

func TestDocumentJSONReporter_WarningsToErrorWriter(t *testing.T) {
	t.Parallel()

	var buf, errBuf bytes.Buffer
	r := reporter.NewDocumentJSONReporter(reporter.Options{
		Writer:      &buf,
		ErrorWriter: &errBuf,
	})

	count, err := r.Report(context.Background(), createTestResult())

	require.NoError(t, err)
	assert.Equal(t, 1, count)

	// stdout stays valid JSON
	assert.True(t, json.Valid(buf.Bytes()))
	assert.Contains(t, errBuf.String(), "warning: docs/guide.ld:3:1: unknown directive ::bogus")
}

func TestDocumentJSONReporter_ErroredFileSkipped(t *testing.T) {
	t.Parallel()

	result := &runner.Result{
		Files: []runner.FileOutcome{
			{Path: "missing.ld", Error: assert.AnError},
		},
		Stats: runner.Stats{FilesDiscovered: 1, FilesErrored: 1},
	}

	var buf, errBuf bytes.Buffer
	r := reporter.NewDocumentJSONReporter(reporter.Options{
		Writer:      &buf,
		ErrorWriter: &errBuf,
	})

	_, err := r.Report(context.Background(), result)

	require.NoError(t, err)
	assert.Contains(t, errBuf.String(), "missing.ld: error:")

	var output reporter.DocumentOutput
	require.NoError(t, json.Unmarshal(buf.Bytes(), &output))
	assert.Empty(t, output.Documents)
}

func TestDocumentJSONReporter_Compact(t *testing.T) {
	t.Parallel()

	var buf bytes.Buffer
	r := reporter.NewDocumentJSONReporter(reporter.Options{Writer: &buf, Compact: true})

	_, err := r.Report(context.Background(), createDocumentResult())

	require.NoError(t, err)

	trimmed := strings.TrimRight(buf.String(), "\n")
	assert.NotContains(t, trimmed, "\n")
	assert.True(t, json.Valid([]byte(trimmed)))
}
