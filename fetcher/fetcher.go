package fetcher

import (
	"context"
	"errors"
	"fmt"
	"io"
	"log/slog"
	"net"
	"net/http"
	"time"

	tls "github.com/refraction-networking/utls"

	"github.com/use-agent/orgname/config"
)

const userAgent = "Mozilla/5.0 (Windows NT 10.0; Win64; x64) AppleWebKit/537.36 (KHTML, like Gecko) Chrome/131.0.0.0 Safari/537.36"

// Status is the transport-level outcome of a fetch.
type Status string

const (
	StatusOK              Status = "ok"
	StatusTimeout         Status = "timeout"
	StatusDNSFailure      Status = "dns_failure"
	StatusHTTPError       Status = "http_error"
	StatusConnectionError Status = "connection_error"
)

// Result is the immutable outcome of fetching one URL. It is owned solely
// by the resolver invocation that requested it.
type Result struct {
	// URL is the requested URL.
	URL string

	// Status is the transport-level outcome.
	Status Status

	// HTTPStatus is the response status code when Status is "http_error".
	HTTPStatus int

	// HTML is the response body; present only when Status is "ok".
	HTML string

	// FinalURL is the URL after following all redirects.
	FinalURL string

	// Attempts is the number of attempts made, including the first.
	Attempts int

	// Err is the last transport error for non-ok, non-http_error results.
	Err error
}

// chromeH1Spec is a Chrome-like TLS ClientHello with ALPN forced to http/1.1
// only. Computed once at init time and reused for every connection.
var chromeH1Spec tls.ClientHelloSpec

func init() {
	spec, err := tls.UTLSIdToSpec(tls.HelloChrome_Auto)
	if err != nil {
		return
	}
	// Replace h2 with http/1.1 only in the ALPN extension so the server
	// never negotiates HTTP/2 (which Go's http.Transport cannot handle
	// over a utls connection).
	for i, ext := range spec.Extensions {
		if alpn, ok := ext.(*tls.ALPNExtension); ok {
			alpn.AlpnProtocols = []string{"http/1.1"}
			spec.Extensions[i] = alpn
			break
		}
	}
	chromeH1Spec = spec
}

// Fetcher retrieves page HTML with bounded retries and per-attempt timeouts.
// HTTPS connections present a Chrome-like TLS fingerprint so anti-bot
// front-ends treat requests like a regular browser.
//
// The fetcher keeps no cache; callers may add one at the boundary.
type Fetcher struct {
	client   *http.Client
	policy   RetryPolicy
	timeout  time.Duration
	maxBody  int64
	sleep    func(context.Context, time.Duration) error
}

// New creates a Fetcher from the fetch configuration.
func New(cfg config.FetchConfig) *Fetcher {
	transport := &http.Transport{
		DialTLSContext: func(ctx context.Context, network, addr string) (net.Conn, error) {
			dialer := &net.Dialer{Timeout: 10 * time.Second}
			conn, err := dialer.DialContext(ctx, network, addr)
			if err != nil {
				return nil, err
			}
			host, _, _ := net.SplitHostPort(addr)
			tlsConn := tls.UClient(conn, &tls.Config{ServerName: host}, tls.HelloCustom)
			if err := tlsConn.ApplyPreset(&chromeH1Spec); err != nil {
				conn.Close()
				return nil, fmt.Errorf("fetcher: apply tls spec: %w", err)
			}
			if err := tlsConn.HandshakeContext(ctx); err != nil {
				conn.Close()
				return nil, err
			}
			return tlsConn, nil
		},
		ForceAttemptHTTP2: false,
	}

	maxRedirects := cfg.MaxRedirects
	if maxRedirects <= 0 {
		maxRedirects = 10
	}

	return &Fetcher{
		client: &http.Client{
			Transport: transport,
			CheckRedirect: func(req *http.Request, via []*http.Request) error {
				if len(via) >= maxRedirects {
					return fmt.Errorf("stopped after %d redirects", maxRedirects)
				}
				return nil
			},
		},
		policy: RetryPolicy{
			MaxRetries: cfg.MaxRetries,
			BaseDelay:  cfg.BackoffBase,
			MaxDelay:   cfg.BackoffMax,
		},
		timeout: cfg.Timeout,
		maxBody: cfg.MaxBodyBytes,
		sleep:   sleepCtx,
	}
}

// Fetch retrieves the URL. Transient failures (timeouts, connection resets)
// are retried per the policy with exponential backoff. DNS failures and
// definitive HTTP status codes are reported immediately without retry.
//
// Total wall clock is bounded by timeout * attempts plus backoff delays.
func (f *Fetcher) Fetch(ctx context.Context, targetURL string) *Result {
	res := &Result{URL: targetURL}

	for attempt := 0; attempt < f.policy.Attempts(); attempt++ {
		if attempt > 0 {
			if err := f.sleep(ctx, f.policy.Delay(attempt)); err != nil {
				// Keep the last attempt's classification so an expired
				// deadline still reads as a timeout.
				if res.Status == "" {
					res.Status = StatusConnectionError
				}
				if res.Err == nil {
					res.Err = err
				}
				return res
			}
			slog.Debug("fetch retry", "url", targetURL, "attempt", attempt+1)
		}
		res.Attempts = attempt + 1

		status, done := f.attempt(ctx, targetURL, res)
		res.Status = status
		if done {
			return res
		}
	}
	return res
}

// attempt performs one GET. The second return value is true when the result
// is definitive (success, DNS failure, or an HTTP error status) and the
// retry loop should stop.
func (f *Fetcher) attempt(ctx context.Context, targetURL string, res *Result) (Status, bool) {
	attemptCtx := ctx
	if f.timeout > 0 {
		var cancel context.CancelFunc
		attemptCtx, cancel = context.WithTimeout(ctx, f.timeout)
		defer cancel()
	}

	req, err := http.NewRequestWithContext(attemptCtx, http.MethodGet, targetURL, nil)
	if err != nil {
		res.Err = fmt.Errorf("fetcher: build request: %w", err)
		return StatusConnectionError, true
	}

	// Browser-like headers; German-preferring Accept-Language because the
	// engine is tuned for German company sites.
	req.Header.Set("User-Agent", userAgent)
	req.Header.Set("Accept", "text/html,application/xhtml+xml,application/xml;q=0.9,*/*;q=0.8")
	req.Header.Set("Accept-Language", "de-DE,de;q=0.9,en-US;q=0.8,en;q=0.7")
	req.Header.Set("Accept-Encoding", "identity")

	resp, err := f.client.Do(req)
	if err != nil {
		res.Err = err
		status := classify(err)
		// DNS failures are non-transient: report without retry.
		return status, status == StatusDNSFailure
	}
	defer resp.Body.Close()

	if resp.StatusCode >= 400 {
		res.HTTPStatus = resp.StatusCode
		res.Err = fmt.Errorf("fetcher: HTTP %d for %s", resp.StatusCode, targetURL)
		return StatusHTTPError, true
	}

	maxBody := f.maxBody
	if maxBody <= 0 {
		maxBody = 10 << 20
	}
	body, err := io.ReadAll(io.LimitReader(resp.Body, maxBody))
	if err != nil {
		res.Err = fmt.Errorf("fetcher: read body: %w", err)
		return classify(err), false
	}

	res.HTML = string(body)
	res.FinalURL = resp.Request.URL.String()
	res.Err = nil
	return StatusOK, true
}

// classify maps a transport error onto the fetch status taxonomy.
func classify(err error) Status {
	var dnsErr *net.DNSError
	if errors.As(err, &dnsErr) {
		return StatusDNSFailure
	}
	if errors.Is(err, context.DeadlineExceeded) {
		return StatusTimeout
	}
	var netErr net.Error
	if errors.As(err, &netErr) && netErr.Timeout() {
		return StatusTimeout
	}
	return StatusConnectionError
}

// sleepCtx waits for d or until the context is cancelled.
func sleepCtx(ctx context.Context, d time.Duration) error {
	if d <= 0 {
		return ctx.Err()
	}
	t := time.NewTimer(d)
	defer t.Stop()
	select {
	case <-ctx.Done():
		return ctx.Err()
	case <-t.C:
		return nil
	}
}
