package httperr

// Upstream HTTP error type and classification.
// Transient errors (HTTP 429, 500, 502, 503, 504 and transport failures)
// count against an upstream's circuit breaker; everything else does not.
// Nothing here retries: a failed request is final for its unit of work.

import (
	"context"
	"errors"
	"fmt"
	"strconv"
	"strings"
	"time"
)

type HTTPError struct {
	StatusCode int
	Body       []byte
	Message    string // reason decoded from a JSON error body, if any
	RetryAfter time.Duration
}

func (e *HTTPError) Error() string {
	if e == nil {
		return "http error: <nil>"
	}
	if e.Message != "" {
		return fmt.Sprintf("http error (%d): %s", e.StatusCode, e.Message)
	}
	if len(e.Body) == 0 {
		return fmt.Sprintf("http error (%d)", e.StatusCode)
	}
	body := e.Body
	if len(body) > 256 {
		body = body[:256]
	}
	return fmt.Sprintf("http error (%d): %s", e.StatusCode, string(body))
}

// IsTransient reports whether err points at an unhealthy upstream rather than a bad request.
func IsTransient(err error) bool {
	if err == nil {
		return false
	}
	if errors.Is(err, context.Canceled) {
		return false
	}
	var he *HTTPError
	if errors.As(err, &he) {
		switch he.StatusCode {
		case 429, 500, 502, 503, 504:
			return true
		default:
			return false
		}
	}
	return true
}

// ParseRetryAfter accepts both delta-seconds and HTTP-date forms.
func ParseRetryAfter(v string) time.Duration {
	v = strings.TrimSpace(v)
	if v == "" {
		return 0
	}
	if secs, err := strconv.Atoi(v); err == nil && secs > 0 {
		return time.Duration(secs) * time.Second
	}
	layouts := []string{time.RFC1123, time.RFC1123Z, time.RFC850, time.ANSIC}
	for _, layout := range layouts {
		if t, err := time.Parse(layout, v); err == nil {
			d := time.Until(t)
			if d < 0 {
				return 0
			}
			return d
		}
	}
	return 0
}
