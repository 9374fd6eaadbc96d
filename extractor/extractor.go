// Package extractor implements the four evidence-gathering strategies that
// propose company-name candidates from a fetched page: schema.org structured
// markup, identity meta tags, legal-suffix pattern matches in visible text,
// and a domain-name fallback.
//
// The strategy set is closed and order-sensitive: extractors run in the
// fixed priority order returned by Pipeline, and that order breaks
// confidence ties downstream.
package extractor

import (
	"github.com/use-agent/orgname/config"
	"github.com/use-agent/orgname/models"
)

// Extractor is one evidence strategy. Implementations are stateless and
// independently testable against a document fragment; none touch the
// network.
type Extractor interface {
	// Source identifies the candidates this extractor produces.
	Source() models.Source

	// Extract scans the document and returns zero or more raw candidates.
	// Confidence is left at zero; the scorer assigns it.
	Extract(d *Document) []models.Candidate
}

// Pipeline returns the full extractor set in priority order:
// schema_org > meta_tag > pattern_match > domain_fallback.
func Pipeline(cfg config.ExtractConfig) []Extractor {
	return []Extractor{
		SchemaOrg{},
		MetaTag{},
		NewPattern(cfg.LegalSuffixes),
		DomainFallback{},
	}
}
