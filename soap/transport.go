package soap

import (
	"bytes"
	"context"
	"errors"
	"fmt"
	"io"
	"net/http"
	"time"

	"github.com/buildkite/roko"
	"github.com/google/uuid"
	"github.com/rs/zerolog"
)

const (
	// DefaultEndpoint is the public SDSS CasJobs service endpoint.
	DefaultEndpoint = "http://cas.sdss.org/CasJobs/services/jobs.asmx"

	// Namespace is the service's operation namespace.
	Namespace = "http://Services.Cas.jhu.edu"
)

// HTTPError is a non-success HTTP status from the service endpoint.
type HTTPError struct {
	StatusCode int
	Body       string
}

func (e *HTTPError) Error() string {
	return fmt.Sprintf("unexpected status %d: %s", e.StatusCode, e.Body)
}

// Transport performs one atomic request/response exchange per operation.
// It owns all network blocking and the retry policy; callers never retry.
type Transport struct {
	endpoint   string
	httpClient *http.Client
	logger     zerolog.Logger
	newRetrier func() *roko.Retrier
}

type Option func(*Transport)

// WithHTTPClient replaces the default HTTP client.
func WithHTTPClient(c *http.Client) Option {
	return func(t *Transport) { t.httpClient = c }
}

// WithLogger attaches a logger; per-call details are logged at debug level.
func WithLogger(l zerolog.Logger) Option {
	return func(t *Transport) { t.logger = l }
}

// WithRetry retries failed exchanges up to maxAttempts with a constant
// interval. Only network errors and 5xx statuses are retried; faults and
// undecodable responses are not.
func WithRetry(maxAttempts int, interval time.Duration) Option {
	return func(t *Transport) {
		t.newRetrier = func() *roko.Retrier {
			return roko.NewRetrier(
				roko.WithMaxAttempts(maxAttempts),
				roko.WithStrategy(roko.Constant(interval)),
			)
		}
	}
}

func New(endpoint string, opts ...Option) *Transport {
	if endpoint == "" {
		endpoint = DefaultEndpoint
	}
	t := &Transport{
		endpoint: endpoint,
		httpClient: &http.Client{
			Timeout: 30 * time.Second,
		},
		logger: zerolog.Nop(),
	}
	for _, opt := range opts {
		opt(t)
	}
	return t
}

// Endpoint returns the service URL this transport talks to.
func (t *Transport) Endpoint() string {
	return t.endpoint
}

// Call invokes one service operation and returns its <action>Response
// element as a loosely typed tree.
func (t *Transport) Call(ctx context.Context, action string, params []Param) (*Node, error) {
	payload, err := buildEnvelope(action, params)
	if err != nil {
		return nil, err
	}

	if t.newRetrier == nil {
		return t.call(ctx, action, payload)
	}

	var result *Node
	err = t.newRetrier().DoWithContext(ctx, func(r *roko.Retrier) error {
		n, err := t.call(ctx, action, payload)
		if err != nil {
			if !retryable(err) {
				r.Break()
			}
			return err
		}
		result = n
		return nil
	})
	if err != nil {
		return nil, err
	}
	return result, nil
}

func (t *Transport) call(ctx context.Context, action string, payload []byte) (*Node, error) {
	req, err := http.NewRequestWithContext(ctx, http.MethodPost, t.endpoint, bytes.NewReader(payload))
	if err != nil {
		return nil, fmt.Errorf("creating request: %w", err)
	}

	requestID := uuid.New().String()
	req.Header.Set("Content-Type", "text/xml; charset=utf-8")
	req.Header.Set("SOAPAction", fmt.Sprintf("%q", Namespace+"/"+action))
	req.Header.Set("X-Request-Id", requestID)

	start := time.Now()
	resp, err := t.httpClient.Do(req)
	if err != nil {
		return nil, fmt.Errorf("calling %s: %w", action, err)
	}
	defer resp.Body.Close()

	body, err := io.ReadAll(resp.Body)
	if err != nil {
		return nil, fmt.Errorf("reading %s response: %w", action, err)
	}

	t.logger.Debug().
		Str("action", action).
		Str("request_id", requestID).
		Int("status", resp.StatusCode).
		Dur("duration", time.Since(start)).
		Msg("soap call")

	if resp.StatusCode != http.StatusOK {
		// .NET returns SOAP faults with a 500 status; surface the fault
		// when the body carries one.
		if _, ferr := parseEnvelope(body, action); ferr != nil {
			var fault *Fault
			if errors.As(ferr, &fault) {
				return nil, fault
			}
		}
		return nil, &HTTPError{StatusCode: resp.StatusCode, Body: truncate(string(body), 512)}
	}

	return parseEnvelope(body, action)
}

func retryable(err error) bool {
	var fault *Fault
	if errors.As(err, &fault) {
		return false
	}
	var decode *DecodeError
	if errors.As(err, &decode) {
		return false
	}
	var httpErr *HTTPError
	if errors.As(err, &httpErr) {
		return httpErr.StatusCode >= 500
	}
	return true
}

func truncate(s string, n int) string {
	if len(s) <= n {
		return s
	}
	return s[:n] + "..."
}
