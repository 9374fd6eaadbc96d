package models

import "sort"

// Source identifies the extraction strategy that produced a Candidate.
type Source string

const (
	SourceSchemaOrg      Source = "schema_org"
	SourceMetaTag        Source = "meta_tag"
	SourcePatternMatch   Source = "pattern_match"
	SourceDomainFallback Source = "domain_fallback"
)

// Priority returns the tie-break rank of a source. Lower is stronger.
// Equal-confidence candidates are ordered schema_org > meta_tag >
// pattern_match > domain_fallback.
func (s Source) Priority() int {
	switch s {
	case SourceSchemaOrg:
		return 0
	case SourceMetaTag:
		return 1
	case SourcePatternMatch:
		return 2
	case SourceDomainFallback:
		return 3
	default:
		return 4
	}
}

// Candidate is a single raw text string proposed as a possible company name.
// Candidates are never mutated after creation.
type Candidate struct {
	// Text is the raw extracted string.
	Text string `json:"text"`

	// Source identifies the extractor that produced this candidate.
	Source Source `json:"source"`

	// Confidence is the scored confidence in [0, 1].
	Confidence float64 `json:"confidence"`

	// RawContext is the surrounding snippet the text was found in,
	// retained for diagnostics and manual review.
	RawContext string `json:"raw_context,omitempty"`
}

// SortCandidates orders candidates by confidence descending, breaking ties
// by extractor priority. The sort is stable so candidates from the same
// extractor keep their document order.
func SortCandidates(cs []Candidate) {
	sort.SliceStable(cs, func(i, j int) bool {
		if cs[i].Confidence != cs[j].Confidence {
			return cs[i].Confidence > cs[j].Confidence
		}
		return cs[i].Source.Priority() < cs[j].Source.Priority()
	})
}
