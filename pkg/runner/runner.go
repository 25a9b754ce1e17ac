package runner

import (
	"context"
	"fmt"
	"path/filepath"
	"runtime"
	"strings"
	"sync"

	"github.com/yaklabco/golitedoc/internal/logging"
	"github.com/yaklabco/golitedoc/pkg/config"
	"github.com/yaklabco/golitedoc/pkg/fsutil"
	"github.com/yaklabco/golitedoc/pkg/ldast"
	"github.com/yaklabco/golitedoc/pkg/litedoc"
	goldmarkparser "github.com/yaklabco/golitedoc/pkg/parser/goldmark"
)

// Runner orchestrates multi-file parsing. It owns one front end per
// parseable profile; all of them are stateless and shared across workers.
type Runner struct {
	md       *goldmarkparser.Parser
	mdStrict *goldmarkparser.Parser
}

// New creates a new Runner.
func New() *Runner {
	return &Runner{
		md:       goldmarkparser.New(goldmarkparser.WithProfile(ldast.ProfileMd)),
		mdStrict: goldmarkparser.New(goldmarkparser.WithProfile(ldast.ProfileMdStrict)),
	}
}

// Run discovers files under opts.Paths and parses them concurrently.
// It returns a deterministic collection of FileOutcome values and aggregate stats.
//
// The runner:
//   - Discovers files matching the options criteria
//   - Parses files concurrently using a worker pool
//   - Aggregates results into a single Result with statistics
//   - Respects context cancellation
func (r *Runner) Run(ctx context.Context, opts Options) (*Result, error) {
	logger := logging.FromContext(ctx)

	// Discover files.
	files, err := Discover(ctx, opts)
	if err != nil {
		return nil, err
	}

	result := &Result{
		Files: make([]FileOutcome, 0, len(files)),
		Stats: newStats(),
	}
	result.Stats.FilesDiscovered = len(files)

	if len(files) == 0 {
		return result, nil
	}

	// Determine job count.
	jobs := opts.Jobs
	if jobs <= 0 {
		jobs = runtime.NumCPU()
	}
	// Don't use more workers than files.
	if jobs > len(files) {
		jobs = len(files)
	}

	logger.Debug("parsing files",
		logging.FieldFilesDiscovered, len(files),
		logging.FieldJobs, jobs,
	)

	// Create channels.
	workCh := make(chan string)
	outCh := make(chan FileOutcome)

	var wg sync.WaitGroup

	// Start workers.
	for range jobs {
		wg.Add(1)
		go func() {
			defer wg.Done()
			r.worker(ctx, workCh, outCh, opts)
		}()
	}

	// Feed work in a separate goroutine.
	go func() {
		defer close(workCh)
		for _, path := range files {
			select {
			case <-ctx.Done():
				return
			case workCh <- path:
			}
		}
	}()

	// Close outCh when all workers are done.
	go func() {
		wg.Wait()
		close(outCh)
	}()

	// Collect results.
	// Use a map to maintain order since workers may complete out of order.
	outcomes := make(map[string]FileOutcome, len(files))

	for outcome := range outCh {
		outcomes[outcome.Path] = outcome
	}

	// Build result in deterministic order.
	for _, path := range files {
		if outcome, ok := outcomes[path]; ok {
			result.accumulate(outcome)
		}
	}

	// Check for context error.
	if ctx.Err() != nil {
		return result, fmt.Errorf("run cancelled: %w", ctx.Err())
	}

	return result, nil
}

// worker parses files from workCh and sends outcomes to outCh.
func (r *Runner) worker(
	ctx context.Context,
	workCh <-chan string,
	outCh chan<- FileOutcome,
	opts Options,
) {
	for path := range workCh {
		select {
		case <-ctx.Done():
			return
		default:
		}

		outcome := r.parseFile(ctx, path, opts.Config)

		select {
		case <-ctx.Done():
			return
		case outCh <- outcome:
		}
	}
}

// parseFile reads and parses a single file under the profile and engine
// the configuration selects for it.
func (r *Runner) parseFile(ctx context.Context, path string, cfg *config.Config) FileOutcome {
	outcome := FileOutcome{Path: path}

	content, err := fsutil.ReadFile(ctx, path)
	if err != nil {
		outcome.Error = err
		return outcome
	}
	outcome.Content = content

	profile := profileFor(path, cfg)
	outcome.Profile = profile
	outcome.Engine = engineFor(profile, cfg)

	if outcome.Engine == config.EngineGoldmark {
		doc, err := r.goldmarkFor(profile).Parse(ctx, path, content)
		if err != nil {
			outcome.Error = err
			return outcome
		}
		outcome.Document = doc
		return outcome
	}

	var popts []litedoc.Option
	if cfg != nil && cfg.MaxDepth > 0 {
		popts = append(popts, litedoc.WithMaxDepth(cfg.MaxDepth))
	}
	res := litedoc.NewParser(profile, popts...).ParseWithRecovery(string(content))
	outcome.Document = res.Document
	outcome.Diagnostics = res.Errors

	logging.FromContext(ctx).Debug("parsed file",
		logging.FieldPath, path,
		logging.FieldProfile, profile.String(),
		logging.FieldErrorsTotal, len(res.Errors),
	)

	return outcome
}

// goldmarkFor returns the shared goldmark front end for the profile.
func (r *Runner) goldmarkFor(profile ldast.Profile) *goldmarkparser.Parser {
	if profile == ldast.ProfileMdStrict {
		return r.mdStrict
	}
	return r.md
}

// InferProfile returns the parse profile implied by a file's extension:
// Markdown extensions parse as md, everything else as litedoc.
func InferProfile(path string) ldast.Profile {
	switch strings.ToLower(filepath.Ext(path)) {
	case ".md", ".markdown":
		return ldast.ProfileMd
	default:
		return ldast.ProfileLitedoc
	}
}

// profileFor resolves the profile for a file: the configured profile when
// one is forced, otherwise the profile inferred from the extension.
func profileFor(path string, cfg *config.Config) ldast.Profile {
	if cfg != nil && cfg.Profile != "" {
		if p, ok := ldast.ParseProfile(cfg.Profile); ok {
			return p
		}
	}
	return InferProfile(path)
}

// engineFor selects the front end. The goldmark engine only applies to
// Markdown profiles; litedoc documents always use the native parser.
func engineFor(profile ldast.Profile, cfg *config.Config) config.Engine {
	if cfg != nil && cfg.Engine == config.EngineGoldmark && profile != ldast.ProfileLitedoc {
		return config.EngineGoldmark
	}
	return config.EngineLitedoc
}
