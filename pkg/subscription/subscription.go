// Package subscription checks whether the invoking repository holds a valid
// subscription for this action.
package subscription

import (
	"context"
	"fmt"
	"net/http"
	"time"
)

const (
	DefaultURLTemplate = "https://agent.api.stepsecurity.io/v1/github/%s/actions/subscription"
	DefaultTimeout     = 3 * time.Second
)

// Status is the outcome of a subscription check.
type Status int

const (
	// StatusUnknown means the service could not give an answer. Callers
	// continue as if the check passed.
	StatusUnknown Status = iota
	StatusValid
	// StatusRejected is an explicit 403 from the service.
	StatusRejected
)

func (s Status) String() string {
	switch s {
	case StatusValid:
		return "valid"
	case StatusRejected:
		return "rejected"
	default:
		return "unknown"
	}
}

type Checker struct {
	httpClient  *http.Client
	urlTemplate string
}

type Option func(*Checker)

// WithURLTemplate replaces the endpoint. The template takes the repository
// identifier as its only verb.
func WithURLTemplate(tmpl string) Option {
	return func(c *Checker) {
		if tmpl != "" {
			c.urlTemplate = tmpl
		}
	}
}

func WithTimeout(d time.Duration) Option {
	return func(c *Checker) {
		c.httpClient.Timeout = d
	}
}

func NewChecker(opts ...Option) *Checker {
	c := &Checker{
		httpClient:  &http.Client{Timeout: DefaultTimeout},
		urlTemplate: DefaultURLTemplate,
	}
	for _, opt := range opts {
		opt(c)
	}
	return c
}

// Check issues a single GET for repository (owner/repo). The returned error is
// only set with StatusUnknown and describes why no answer was obtained.
func (c *Checker) Check(ctx context.Context, repository string) (Status, error) {
	url := fmt.Sprintf(c.urlTemplate, repository)
	req, err := http.NewRequestWithContext(ctx, http.MethodGet, url, nil)
	if err != nil {
		return StatusUnknown, fmt.Errorf("build subscription request: %w", err)
	}

	resp, err := c.httpClient.Do(req)
	if err != nil {
		return StatusUnknown, fmt.Errorf("subscription request: %w", err)
	}
	defer resp.Body.Close()

	switch {
	case resp.StatusCode == http.StatusForbidden:
		return StatusRejected, nil
	case resp.StatusCode >= 200 && resp.StatusCode < 300:
		return StatusValid, nil
	default:
		return StatusUnknown, fmt.Errorf("subscription service returned %d", resp.StatusCode)
	}
}
