package apiclient

// Shared transport for the public data APIs.
// Every GET goes through a per-upstream rate limiter and circuit breaker
// and is logged with a request id. Requests are never retried.

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"net/http"
	"net/url"
	"time"

	"memecoin-radar/internal/infra/httperr"
	"memecoin-radar/internal/infra/log"

	"github.com/go-resty/resty/v2"
	"github.com/sony/gobreaker"
	"go.uber.org/zap"
	"golang.org/x/time/rate"
)

// Options configures one upstream.
type Options struct {
	Name    string
	BaseURL string
	Timeout time.Duration
	Headers map[string]string

	RateLimit float64 // requests per second, 0 disables limiting
	RateBurst int

	// Breaker opens after this many consecutive transient failures. 0 means 5.
	MaxConsecutiveFailures uint32
	// How long the breaker stays open before letting a trial request through. 0 means 30s.
	OpenTimeout time.Duration

	HTTPClient *http.Client // optional, tests pass httptest clients
}

type Client struct {
	name           string
	http           *resty.Client
	rateLimiter    *rate.Limiter
	circuitBreaker *gobreaker.CircuitBreaker
}

func New(opts Options) *Client {
	var rc *resty.Client
	if opts.HTTPClient != nil {
		rc = resty.NewWithClient(opts.HTTPClient)
	} else {
		rc = resty.New()
	}
	rc.SetBaseURL(opts.BaseURL).
		SetRetryCount(0).
		SetHeader("Accept", "application/json").
		SetHeader("User-Agent", "memecoin-radar/1.0").
		SetHeaders(opts.Headers).
		SetLogger(restyLogger{})
	if opts.Timeout > 0 {
		rc.SetTimeout(opts.Timeout)
	}

	var limiter *rate.Limiter
	if opts.RateLimit > 0 {
		burst := opts.RateBurst
		if burst <= 0 {
			burst = 1
		}
		limiter = rate.NewLimiter(rate.Limit(opts.RateLimit), burst)
	}

	maxFailures := opts.MaxConsecutiveFailures
	if maxFailures == 0 {
		maxFailures = 5
	}
	openTimeout := opts.OpenTimeout
	if openTimeout <= 0 {
		openTimeout = 30 * time.Second
	}

	breaker := gobreaker.NewCircuitBreaker(gobreaker.Settings{
		Name:        opts.Name,
		MaxRequests: 1,
		Interval:    60 * time.Second,
		Timeout:     openTimeout,
		ReadyToTrip: func(counts gobreaker.Counts) bool {
			return counts.ConsecutiveFailures >= maxFailures
		},
		// A 404 for one token says nothing about the upstream's health.
		IsSuccessful: func(err error) bool {
			var decodeErr *DecodeError
			return err == nil || errors.As(err, &decodeErr) || !httperr.IsTransient(err)
		},
		OnStateChange: func(name string, from, to gobreaker.State) {
			log.LogWarn("Upstream circuit breaker changed state",
				zap.String("upstream", name),
				zap.String("from", from.String()),
				zap.String("to", to.String()))
		},
	})

	return &Client{
		name:           opts.Name,
		http:           rc,
		rateLimiter:    limiter,
		circuitBreaker: breaker,
	}
}

func (c *Client) Name() string {
	return c.name
}

// GetJSON performs GET baseURL+endpoint?query and lets resty decode the 2xx body into out.
// Bodies are decoded as JSON whatever Content-Type the upstream declares.
func (c *Client) GetJSON(ctx context.Context, endpoint string, query url.Values, out interface{}) error {
	_, err := c.get(ctx, endpoint, query, out)
	return err
}

// Get performs GET baseURL+endpoint?query and returns the raw body of a 2xx answer.
func (c *Client) Get(ctx context.Context, endpoint string, query url.Values) ([]byte, error) {
	resp, err := c.get(ctx, endpoint, query, nil)
	if err != nil {
		return nil, err
	}
	return resp.Body(), nil
}

func (c *Client) get(ctx context.Context, endpoint string, query url.Values, out interface{}) (*resty.Response, error) {
	requestID := log.GenerateRequestID()

	if ctx.Err() != nil {
		return nil, fmt.Errorf("context cancelled: %w", ctx.Err())
	}

	if c.rateLimiter != nil {
		if err := c.rateLimiter.Wait(ctx); err != nil {
			return nil, fmt.Errorf("%s rate limiter wait failed: %w", c.name, err)
		}
	}

	result, err := c.circuitBreaker.Execute(func() (interface{}, error) {
		return c.doGet(ctx, requestID, endpoint, query, out)
	})
	if err != nil {
		if errors.Is(err, gobreaker.ErrOpenState) || errors.Is(err, gobreaker.ErrTooManyRequests) {
			log.LogWarn("Circuit breaker rejected request",
				zap.String("request_id", requestID),
				zap.String("upstream", c.name),
				zap.String("endpoint", endpoint))
		}
		return nil, fmt.Errorf("%s GET %s: %w", c.name, endpoint, err)
	}

	return result.(*resty.Response), nil
}

// upstreamError is the JSON error body Birdeye and Solscan send with non-2xx answers.
type upstreamError struct {
	Message string `json:"message"`
}

func (c *Client) doGet(ctx context.Context, requestID, endpoint string, query url.Values, out interface{}) (*resty.Response, error) {
	startTime := time.Now()

	req := c.http.R().
		SetContext(ctx).
		ForceContentType("application/json").
		SetError(&upstreamError{})
	if out != nil {
		req.SetResult(out)
	}
	if len(query) > 0 {
		req.SetQueryParamsFromValues(query)
	}

	log.LogRequest(requestID, http.MethodGet, endpoint, zap.String("upstream", c.name))

	resp, err := req.Get(endpoint)
	duration := time.Since(startTime).Milliseconds()
	if err != nil {
		if resp != nil && isDecodeError(err) {
			log.LogResponse(requestID, resp.StatusCode(), duration, zap.String("endpoint", endpoint), zap.Error(err))
			return nil, &DecodeError{Upstream: c.name, Err: err}
		}
		log.LogResponse(requestID, 0, duration, zap.String("endpoint", endpoint), zap.Error(err))
		return nil, fmt.Errorf("failed to perform request: %w", err)
	}

	log.LogResponse(requestID, resp.StatusCode(), duration, zap.String("endpoint", endpoint))

	if !resp.IsSuccess() {
		he := &httperr.HTTPError{
			StatusCode: resp.StatusCode(),
			Body:       resp.Body(),
			RetryAfter: httperr.ParseRetryAfter(resp.Header().Get("Retry-After")),
		}
		if upstream, ok := resp.Error().(*upstreamError); ok && upstream != nil {
			he.Message = upstream.Message
		}
		if he.RetryAfter > 0 {
			log.LogWarn("Upstream asked to back off",
				zap.String("upstream", c.name),
				zap.Duration("retry_after", he.RetryAfter))
		}
		return nil, he
	}

	return resp, nil
}

// DecodeError is a 2xx answer whose body did not match the expected shape.
// It does not count against the circuit breaker.
type DecodeError struct {
	Upstream string
	Err      error
}

func (e *DecodeError) Error() string {
	return fmt.Sprintf("failed to decode %s response: %v", e.Upstream, e.Err)
}

func (e *DecodeError) Unwrap() error {
	return e.Err
}

func isDecodeError(err error) bool {
	var syntaxErr *json.SyntaxError
	var typeErr *json.UnmarshalTypeError
	return errors.As(err, &syntaxErr) || errors.As(err, &typeErr)
}

// restyLogger sends resty's own messages, such as an undecodable error body, to the file log.
type restyLogger struct{}

func (restyLogger) Errorf(format string, v ...interface{}) { log.LogError(fmt.Sprintf(format, v...)) }
func (restyLogger) Warnf(format string, v ...interface{})  { log.LogWarn(fmt.Sprintf(format, v...)) }
func (restyLogger) Debugf(format string, v ...interface{}) { log.LogDebug(fmt.Sprintf(format, v...)) }
