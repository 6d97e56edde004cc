// Package provider holds the HTTP plumbing shared by the upstream clients.
package provider

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"net/http"
	"strings"
	"time"

	"github.com/okian/aeris/internal/domain/model"
	"github.com/okian/aeris/pkg/metrics"
)

// Connection pool settings.
const (
	maxIdleConns        = 10
	maxConnsPerHost     = 5
	idleConnTimeout     = 90 * time.Second
	tlsHandshakeTimeout = 10 * time.Second

	// maxErrorBody caps how much of a failed response is kept for the error.
	maxErrorBody = 512
)

// Doer is the subset of *http.Client the provider clients use.
type Doer interface {
	Do(req *http.Request) (*http.Response, error)
}

// NewHTTPClient returns a client with a pooled transport. A zero timeout
// leaves requests bounded only by the caller's context.
func NewHTTPClient(timeout time.Duration) *http.Client {
	return &http.Client{
		Timeout: timeout,
		Transport: &http.Transport{
			Proxy:               http.ProxyFromEnvironment,
			MaxIdleConns:        maxIdleConns,
			MaxConnsPerHost:     maxConnsPerHost,
			IdleConnTimeout:     idleConnTimeout,
			TLSHandshakeTimeout: tlsHandshakeTimeout,
		},
	}
}

// StatusError reports a non-2xx upstream response.
type StatusError struct {
	StatusCode int
	Body       string
}

func (e *StatusError) Error() string {
	if e.Body == "" {
		return fmt.Sprintf("unexpected status: %d", e.StatusCode)
	}
	return fmt.Sprintf("unexpected status: %d: %s", e.StatusCode, e.Body)
}

// GetJSON issues a GET to rawURL and decodes a 2xx body into out.
func GetJSON(ctx context.Context, c Doer, rawURL string, header http.Header, out any) error {
	req, err := http.NewRequestWithContext(ctx, http.MethodGet, rawURL, http.NoBody)
	if err != nil {
		return fmt.Errorf("creating request: %w", err)
	}
	for k, vals := range header {
		for _, v := range vals {
			req.Header.Add(k, v)
		}
	}
	if req.Header.Get("Accept") == "" {
		req.Header.Set("Accept", "application/json")
	}

	resp, err := c.Do(req)
	if err != nil {
		return fmt.Errorf("executing request: %w", err)
	}
	defer resp.Body.Close()

	if resp.StatusCode < 200 || resp.StatusCode > 299 {
		body, _ := io.ReadAll(io.LimitReader(resp.Body, maxErrorBody))
		return &StatusError{StatusCode: resp.StatusCode, Body: strings.TrimSpace(string(body))}
	}

	if err := json.NewDecoder(resp.Body).Decode(out); err != nil {
		return fmt.Errorf("decoding response: %w", err)
	}
	return nil
}

// Outcome maps an error onto a metrics outcome label.
func Outcome(err error) string {
	switch {
	case err == nil:
		return metrics.OutcomeOK
	case errors.Is(err, model.ErrNotFound):
		return metrics.OutcomeNotFound
	case errors.Is(err, model.ErrConfiguration):
		return metrics.OutcomeConfig
	case errors.Is(err, model.ErrInvalidQuery):
		return metrics.OutcomeInvalid
	default:
		return metrics.OutcomeUnavailable
	}
}

// Observe records one provider call that started at start.
func Observe(name string, start time.Time, err error) {
	metrics.RecordUpstream(name, Outcome(err), float64(time.Since(start).Microseconds())/1000)
}

// Redact hides secrets that providers expect in the query string, so a
// transport error can be surfaced without leaking the key.
func Redact(err error, secret string) error {
	if err == nil || secret == "" || !strings.Contains(err.Error(), secret) {
		return err
	}
	return &redactedError{msg: strings.ReplaceAll(err.Error(), secret, "REDACTED"), err: err}
}

type redactedError struct {
	msg string
	err error
}

func (e *redactedError) Error() string { return e.msg }
func (e *redactedError) Unwrap() error { return e.err }
