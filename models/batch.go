package models

// BatchReport aggregates the outcomes of one batch run. It is created once
// per run and read-only after completion.
type BatchReport struct {
	// Total is the number of URLs processed.
	Total int `json:"total"`

	// Counts holds per-status outcome counts.
	Counts map[Status]int `json:"counts"`

	// Outcomes lists one ExtractionOutcome per input URL, in input order
	// regardless of completion order.
	Outcomes []ExtractionOutcome `json:"outcomes"`
}

// NewBatchReport builds a report from outcomes already in input order.
func NewBatchReport(outcomes []ExtractionOutcome) *BatchReport {
	counts := make(map[Status]int, 4)
	for _, o := range outcomes {
		counts[o.Status]++
	}
	return &BatchReport{
		Total:    len(outcomes),
		Counts:   counts,
		Outcomes: outcomes,
	}
}

// BatchJob tracks an in-progress batch extraction submitted via the API.
type BatchJob struct {
	ID        string
	Status    string // "processing", "completed"
	Total     int
	Completed int
	Report    *BatchReport
	CreatedAt int64 // unix timestamp
}
