// Package resolver orchestrates the per-URL pipeline: fetch, run the
// evidence extractors in priority order, score every candidate, and settle
// on a single outcome. A resolver invocation moves through
// pending → fetching → extracting → scoring → resolved; only the resolved
// outcome is exposed and it is never mutated afterwards.
package resolver

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	nurl "net/url"
	"strings"

	"github.com/use-agent/orgname/config"
	"github.com/use-agent/orgname/extractor"
	"github.com/use-agent/orgname/fetcher"
	"github.com/use-agent/orgname/models"
	"github.com/use-agent/orgname/scorer"
)

// Resolver runs the extraction pipeline for single URLs. It is stateless
// between invocations and safe for concurrent use.
type Resolver struct {
	fetcher    *fetcher.Fetcher
	extractors []extractor.Extractor
	scorer     *scorer.Scorer
	threshold  float64
}

// New creates a Resolver wired with the full extractor pipeline.
func New(cfg *config.Config) *Resolver {
	return &Resolver{
		fetcher:    fetcher.New(cfg.Fetch),
		extractors: extractor.Pipeline(cfg.Extract),
		scorer:     scorer.New(cfg.Extract),
		threshold:  cfg.Extract.AcceptanceThreshold,
	}
}

// NewWithDeps creates a Resolver with injected dependencies, for tests and
// callers that share a fetcher.
func NewWithDeps(f *fetcher.Fetcher, exts []extractor.Extractor, sc *scorer.Scorer, threshold float64) *Resolver {
	return &Resolver{fetcher: f, extractors: exts, scorer: sc, threshold: threshold}
}

// Resolve runs the full pipeline for one URL and always returns exactly one
// outcome: failures of any kind are contained here and classified, never
// propagated.
func (r *Resolver) Resolve(ctx context.Context, rawURL string) models.ExtractionOutcome {
	url := NormalizeURL(rawURL)
	outcome := models.ExtractionOutcome{URL: url, Status: models.StatusError}

	if _, err := nurl.ParseRequestURI(url); err != nil {
		outcome.Error = &models.ErrorDetail{
			Code:    models.ErrCodeInvalidInput,
			Message: fmt.Sprintf("invalid URL: %v", err),
		}
		return outcome
	}

	res := r.fetcher.Fetch(ctx, url)

	// An expired deadline is a timeout and settles as unreachable below;
	// only explicit cancellation short-circuits here.
	if errors.Is(ctx.Err(), context.Canceled) {
		outcome.Error = &models.ErrorDetail{Code: models.ErrCodeCancelled, Message: "cancelled"}
		return outcome
	}

	if res.Status != fetcher.StatusOK {
		return settleFetchFailure(outcome, res)
	}
	outcome.FinalURL = res.FinalURL

	candidates, err := r.extractAndScore(url, res)
	if err != nil {
		slog.Warn("extraction fault", "url", url, "error", err)
		outcome.Error = &models.ErrorDetail{Code: models.ErrCodeInternal, Message: err.Error()}
		return outcome
	}

	models.SortCandidates(candidates)
	candidates = dedupe(candidates)
	outcome.Candidates = candidates

	if len(candidates) == 0 {
		// Should not occur: the domain fallback guarantees one candidate
		// for any parseable URL.
		outcome.Error = &models.ErrorDetail{Code: models.ErrCodeNoEvidence, Message: "no candidates produced"}
		return outcome
	}

	if top := candidates[0]; top.Confidence >= r.threshold {
		outcome.Status = models.StatusExtracted
		outcome.Selected = &top
	} else {
		outcome.Status = models.StatusNotFound
	}
	return outcome
}

// extractAndScore runs every extractor over the fetched page and scores the
// candidates. A panic inside an extractor or the scorer is recovered and
// reported as an internal fault so one bad page never aborts a batch.
func (r *Resolver) extractAndScore(url string, res *fetcher.Result) (candidates []models.Candidate, err error) {
	defer func() {
		if rec := recover(); rec != nil {
			candidates = nil
			err = fmt.Errorf("internal fault: %v", rec)
		}
	}()

	doc, err := extractor.NewDocument(url, res.FinalURL, res.HTML)
	if err != nil {
		return nil, err
	}

	for _, ext := range r.extractors {
		for _, c := range ext.Extract(doc) {
			c.Confidence = r.scorer.Score(c.Text, c.Source, c.RawContext)
			candidates = append(candidates, c)
		}
	}
	return candidates, nil
}

// settleFetchFailure maps a transport outcome onto the resolved status:
// dns/timeout/connection failures mean unreachable, definitive HTTP errors
// mean error. No candidates are attempted either way.
func settleFetchFailure(outcome models.ExtractionOutcome, res *fetcher.Result) models.ExtractionOutcome {
	var fail *models.ExtractError
	switch res.Status {
	case fetcher.StatusDNSFailure:
		outcome.Status = models.StatusUnreachable
		fail = models.NewExtractError(models.ErrCodeDNS, errText(res), res.Err)
	case fetcher.StatusTimeout:
		outcome.Status = models.StatusUnreachable
		fail = models.NewExtractError(models.ErrCodeTimeout, errText(res), res.Err)
	case fetcher.StatusConnectionError:
		outcome.Status = models.StatusUnreachable
		fail = models.NewExtractError(models.ErrCodeConnection, errText(res), res.Err)
	case fetcher.StatusHTTPError:
		outcome.Status = models.StatusError
		fail = models.NewExtractError(models.ErrCodeHTTPStatus, fmt.Sprintf("HTTP %d", res.HTTPStatus), res.Err)
	default:
		outcome.Status = models.StatusError
		fail = models.NewExtractError(models.ErrCodeInternal, errText(res), res.Err)
	}
	slog.Debug("fetch failed", "url", outcome.URL, "attempts", res.Attempts, "error", fail)
	outcome.Error = fail.ToDetail()
	return outcome
}

func errText(res *fetcher.Result) string {
	if res.Err != nil {
		return res.Err.Error()
	}
	return string(res.Status)
}

// dedupe drops repeated candidate texts, keeping the first (highest-ranked)
// occurrence. Input must already be sorted.
func dedupe(cs []models.Candidate) []models.Candidate {
	seen := make(map[string]bool, len(cs))
	out := cs[:0]
	for _, c := range cs {
		key := strings.ToLower(strings.TrimSpace(c.Text))
		if key == "" || seen[key] {
			continue
		}
		seen[key] = true
		out = append(out, c)
	}
	return out
}

// NormalizeURL trims whitespace, prefixes bare domains with https://, and
// strips URL fragments.
func NormalizeURL(raw string) string {
	raw = strings.TrimSpace(raw)
	if raw == "" {
		return raw
	}
	if !strings.HasPrefix(raw, "http://") && !strings.HasPrefix(raw, "https://") {
		raw = "https://" + raw
	}
	if i := strings.IndexByte(raw, '#'); i >= 0 {
		raw = raw[:i]
	}
	return raw
}
