package models

// ExtractRequest is the payload for POST /api/v1/extract.
type ExtractRequest struct {
	// URL is the company website to extract a name from. Required.
	// Bare domains are accepted and normalized to https://.
	URL string `json:"url" binding:"required"`

	// Timeout bounds the whole extraction for this URL, in seconds,
	// applied as a context deadline. An expired deadline resolves as
	// unreachable. Default: 15. Max: 120.
	Timeout int `json:"timeout,omitempty" binding:"omitempty,min=1,max=120"`

	// MaxCacheAge enables the outcome cache when > 0: a cached outcome
	// younger than this many milliseconds is returned without refetching.
	MaxCacheAge int `json:"max_cache_age,omitempty" binding:"omitempty,min=0"`
}

// Defaults applies default values to unset fields.
func (r *ExtractRequest) Defaults() {
	if r.Timeout == 0 {
		r.Timeout = 15
	}
}

// BatchExtractRequest is the payload for POST /api/v1/batch/extract.
type BatchExtractRequest struct {
	// URLs is the list of company websites to process. Required.
	URLs []string `json:"urls" binding:"required,min=1,max=500"`

	// Timeout bounds each URL's extraction, in seconds, applied as a
	// per-URL context deadline. Default: 15. Max: 120.
	Timeout int `json:"timeout,omitempty" binding:"omitempty,min=1,max=120"`

	// WebhookURL, if set, receives a signed "batch.completed" event with
	// the full report when the job finishes.
	WebhookURL string `json:"webhook_url,omitempty" binding:"omitempty,url"`

	// WebhookSecret is the HMAC-SHA256 signing key for webhook payloads.
	WebhookSecret string `json:"webhook_secret,omitempty"`
}

// Defaults applies default values to unset fields.
func (r *BatchExtractRequest) Defaults() {
	if r.Timeout == 0 {
		r.Timeout = 15
	}
}
