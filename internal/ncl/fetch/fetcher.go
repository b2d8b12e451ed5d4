package fetch

import (
	"context"
	"fmt"
	"time"

	"github.com/go-resty/resty/v2"
)

// Browser-like headers; the booking site serves a challenge page to
// default Go user agents.
var browserHeaders = map[string]string{
	"User-Agent": "Mozilla/5.0 (X11; Linux x86_64) " +
		"AppleWebKit/537.36 (KHTML, like Gecko) " +
		"Chrome/126.0.0.0 Safari/537.36",
	"Accept":                    "text/html,application/xhtml+xml,application/xml;q=0.9,image/webp,*/*;q=0.8",
	"Accept-Language":           "en-US,en;q=0.5",
	"Connection":                "keep-alive",
	"Upgrade-Insecure-Requests": "1",
}

// retryStatuses are the transient outcomes worth another attempt.
var retryStatuses = map[int]bool{
	429: true,
	500: true,
	502: true,
	503: true,
	504: true,
}

// Error is a terminal fetch failure: the page could not be retrieved
// even after all retries were spent.
type Error struct {
	URL string
	Err error
}

func (e *Error) Error() string { return fmt.Sprintf("fetch %s: %v", e.URL, e.Err) }
func (e *Error) Unwrap() error { return e.Err }

type Fetcher struct {
	client *resty.Client
}

// New builds a fetcher with browser-like headers and bounded retry with
// exponential backoff on transient statuses and connection failures.
func New(timeout time.Duration, retries int) *Fetcher {
	client := resty.New().
		SetTimeout(timeout).
		SetHeaders(browserHeaders).
		SetRetryCount(retries).
		SetRetryWaitTime(1 * time.Second).
		SetRetryMaxWaitTime(30 * time.Second).
		AddRetryCondition(func(r *resty.Response, err error) bool {
			if err != nil {
				return true
			}
			return retryStatuses[r.StatusCode()]
		})

	return &Fetcher{client: client}
}

// Fetch retrieves the raw page body. Every call is a fresh request;
// nothing is cached between cycles.
func (f *Fetcher) Fetch(ctx context.Context, url string) (string, error) {
	resp, err := f.client.R().SetContext(ctx).Get(url)
	if err != nil {
		return "", &Error{URL: url, Err: err}
	}
	if !resp.IsSuccess() {
		return "", &Error{URL: url, Err: fmt.Errorf("unexpected status %s", resp.Status())}
	}
	return resp.String(), nil
}
