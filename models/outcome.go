package models

// Status classifies the overall result of resolving one URL.
type Status string

const (
	// StatusExtracted means a candidate cleared the acceptance threshold.
	StatusExtracted Status = "extracted"

	// StatusUnreachable means the page could not be fetched for a
	// transport-level reason (DNS, timeout, connection failure).
	StatusUnreachable Status = "unreachable"

	// StatusNotFound means the page was reachable but no candidate
	// cleared the acceptance threshold.
	StatusNotFound Status = "not_found"

	// StatusError means a definitive HTTP error, a cancellation, or an
	// unexpected internal fault occurred.
	StatusError Status = "error"
)

// ExtractionOutcome is the terminal result for one URL. It owns its
// candidates and is never mutated after the resolver settles it.
type ExtractionOutcome struct {
	// URL is the normalized input URL.
	URL string `json:"url"`

	// Selected is the winning candidate, nil unless Status is "extracted".
	Selected *Candidate `json:"selected_candidate,omitempty"`

	// Status classifies the overall outcome.
	Status Status `json:"status"`

	// Candidates lists every candidate produced for the URL, ordered by
	// confidence descending (ties broken by extractor priority).
	Candidates []Candidate `json:"all_candidates,omitempty"`

	// FinalURL is the post-redirect URL when the page was fetched.
	FinalURL string `json:"final_url,omitempty"`

	// Error carries diagnostic detail for unreachable/error outcomes.
	Error *ErrorDetail `json:"error,omitempty"`
}
