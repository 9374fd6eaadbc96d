// Package batch runs the resolver concurrently over many URLs with a
// bounded worker pool and aggregates the outcomes into a report.
package batch

import (
	"context"
	"log/slog"
	"time"

	"golang.org/x/sync/errgroup"

	"github.com/use-agent/orgname/models"
	"github.com/use-agent/orgname/resolver"
)

// Coordinator fans URLs out over independent resolver pipelines. At most
// Concurrency URLs are in flight at once; excess URLs queue until a slot
// frees. One URL's failure never aborts the batch.
type Coordinator struct {
	resolver    *resolver.Resolver
	concurrency int

	// OnOutcome, if set, is called once per settled URL. Used by the API
	// layer for progress tracking; must be safe for concurrent calls.
	OnOutcome func(models.ExtractionOutcome)

	// URLTimeout, if positive, bounds each URL's resolution with its own
	// context deadline. An expired deadline settles as unreachable.
	URLTimeout time.Duration
}

// New creates a Coordinator. concurrency values below 1 fall back to 1.
func New(r *resolver.Resolver, concurrency int) *Coordinator {
	if concurrency < 1 {
		concurrency = 1
	}
	return &Coordinator{resolver: r, concurrency: concurrency}
}

// Run processes all URLs and returns the aggregated report. Outcomes keep
// input order regardless of completion order. Cancelling ctx settles all
// remaining URLs as errors rather than hanging; Run always terminates
// because every fetch is bounded by timeout and retry caps.
func (c *Coordinator) Run(ctx context.Context, urls []string) *models.BatchReport {
	start := time.Now()
	outcomes := make([]models.ExtractionOutcome, len(urls))

	g, gctx := errgroup.WithContext(ctx)
	g.SetLimit(c.concurrency)

	for i, url := range urls {
		g.Go(func() error {
			uctx := gctx
			if c.URLTimeout > 0 {
				var cancel context.CancelFunc
				uctx, cancel = context.WithTimeout(gctx, c.URLTimeout)
				defer cancel()
			}
			outcomes[i] = c.resolver.Resolve(uctx, url)
			if c.OnOutcome != nil {
				c.OnOutcome(outcomes[i])
			}
			// Resolver never propagates failure; the group exists only
			// for its concurrency limit and context plumbing.
			return nil
		})
	}
	_ = g.Wait()

	report := models.NewBatchReport(outcomes)
	slog.Info("batch finished",
		"total", report.Total,
		"extracted", report.Counts[models.StatusExtracted],
		"not_found", report.Counts[models.StatusNotFound],
		"unreachable", report.Counts[models.StatusUnreachable],
		"errors", report.Counts[models.StatusError],
		"duration", time.Since(start).Round(time.Millisecond),
	)
	return report
}
