package reporter

import (
	"context"

	"github.com/yaklabco/golitedoc/pkg/stats"
)

// Renderer formats a stats.Report for output.
// Renderers are stateless and only handle presentation logic.
type Renderer interface {
	// Render writes the formatted report to the configured output.
	Render(ctx context.Context, report *stats.Report) error
}
