// Package endpoint talks to the remote text-processing service.
//
// Each call is a single authenticated GET carrying one piece of text. The
// service answers 200 with {"message": "..."} on success; any other status is
// classified into an apierr sentinel and returned to the caller.
package endpoint

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"net"
	"net/http"
	"strings"
	"time"
	"unicode/utf8"

	"github.com/go-resty/resty/v2"
	"github.com/google/uuid"

	"github.com/alnah/go-aidich/internal/apierr"
)

// Endpoint defaults.
const (
	DefaultBaseURL = "https://aidich.pro/protected"

	// Query parameter names understood by the service.
	paramMessage = "message"
	paramBeta    = "activate_beta"

	// headerRequestID correlates a request with server-side logs.
	headerRequestID = "X-Request-ID"

	// maxErrorMessage caps how much of an error body is kept.
	maxErrorMessage = 200
)

// Sentinel errors for client construction and response decoding.
var (
	// ErrMissingCredentials indicates username or password was empty.
	ErrMissingCredentials = errors.New("username and password are required")

	// ErrMalformedResponse indicates a 200 response without a string "message" field.
	ErrMalformedResponse = errors.New("malformed response")
)

// Logger receives resty's internal diagnostics.
// *log.Logger from charmbracelet/log satisfies it.
type Logger interface {
	Errorf(format string, v ...any)
	Warnf(format string, v ...any)
	Debugf(format string, v ...any)
}

// Client sends text to the endpoint with HTTP Basic authentication.
// It never retries; a failed call is reported once.
type Client struct {
	baseURL   string
	beta      bool
	timeout   time.Duration
	userAgent string
	logger    Logger
	http      *resty.Client
}

// Option configures a Client.
type Option func(*Client)

// WithBaseURL sets the endpoint URL (for testing or self-hosted services).
func WithBaseURL(url string) Option {
	return func(c *Client) {
		if url != "" {
			c.baseURL = strings.TrimSuffix(url, "/")
		}
	}
}

// WithBeta sends activate_beta=true with every request.
func WithBeta(on bool) Option {
	return func(c *Client) {
		c.beta = on
	}
}

// WithTimeout bounds each request. Zero leaves the transport default.
func WithTimeout(d time.Duration) Option {
	return func(c *Client) {
		if d > 0 {
			c.timeout = d
		}
	}
}

// WithUserAgent sets the User-Agent header.
func WithUserAgent(ua string) Option {
	return func(c *Client) {
		c.userAgent = ua
	}
}

// WithLogger routes resty diagnostics to l.
func WithLogger(l Logger) Option {
	return func(c *Client) {
		c.logger = l
	}
}

// New creates a Client for the given credentials.
// Returns ErrMissingCredentials if either is empty.
func New(username, password string, opts ...Option) (*Client, error) {
	if username == "" || password == "" {
		return nil, ErrMissingCredentials
	}

	c := &Client{baseURL: DefaultBaseURL}
	for _, opt := range opts {
		opt(c)
	}

	c.http = resty.New().
		SetBasicAuth(username, password).
		SetHeader("Accept", "application/json").
		SetRetryCount(0)
	if c.timeout > 0 {
		c.http.SetTimeout(c.timeout)
	}
	if c.userAgent != "" {
		c.http.SetHeader("User-Agent", c.userAgent)
	}
	if c.logger != nil {
		c.http.SetLogger(c.logger)
	}
	return c, nil
}

// BaseURL returns the endpoint URL requests are sent to.
func (c *Client) BaseURL() string {
	return c.baseURL
}

// Beta reports whether activate_beta is sent.
func (c *Client) Beta() bool {
	return c.beta
}

// Process sends text and returns the service's "message" field.
// Non-200 responses return a *StatusError wrapped with an apierr sentinel.
func (c *Client) Process(ctx context.Context, text string) (string, error) {
	req := c.http.R().
		SetContext(ctx).
		SetHeader(headerRequestID, uuid.NewString()).
		SetQueryParam(paramMessage, text)
	if c.beta {
		req.SetQueryParam(paramBeta, "true")
	}

	resp, err := req.Get(c.baseURL)
	if err != nil {
		return "", classifyTransportError(err)
	}

	if resp.StatusCode() != http.StatusOK {
		return "", classifyStatusError(parseStatusError(resp.StatusCode(), resp.Body()))
	}

	return decodeMessage(resp.Body())
}

// messageResponse is the success body.
type messageResponse struct {
	Message *string `json:"message"`
}

// decodeMessage extracts the "message" string from a success body.
func decodeMessage(body []byte) (string, error) {
	var r messageResponse
	if err := json.Unmarshal(body, &r); err != nil {
		return "", fmt.Errorf("%w: %v", ErrMalformedResponse, err)
	}
	if r.Message == nil {
		return "", fmt.Errorf("%w: missing %q field", ErrMalformedResponse, paramMessage)
	}
	return *r.Message, nil
}

// StatusError is a non-200 response from the endpoint.
type StatusError struct {
	StatusCode int
	Message    string
}

func (e *StatusError) Error() string {
	if e.Message != "" {
		return fmt.Sprintf("status %d: %s", e.StatusCode, e.Message)
	}
	return fmt.Sprintf("status %d", e.StatusCode)
}

// errorResponse covers FastAPI's {"detail": ...} error body.
// detail is a string for HTTPException and a list for validation errors.
type errorResponse struct {
	Detail json.RawMessage `json:"detail"`
}

// parseStatusError builds a StatusError from a non-200 response body.
func parseStatusError(statusCode int, body []byte) *StatusError {
	msg := strings.TrimSpace(string(body))

	var errResp errorResponse
	if err := json.Unmarshal(body, &errResp); err == nil && len(errResp.Detail) > 0 {
		var detail string
		if err := json.Unmarshal(errResp.Detail, &detail); err == nil {
			msg = detail
		} else {
			msg = string(errResp.Detail)
		}
	}

	return &StatusError{StatusCode: statusCode, Message: truncate(msg, maxErrorMessage)}
}

// truncate cuts s to at most limit bytes without splitting a UTF-8 sequence.
func truncate(s string, limit int) string {
	if len(s) <= limit {
		return s
	}
	cut := limit
	for cut > 0 && !utf8.RuneStart(s[cut]) {
		cut--
	}
	return s[:cut] + "..."
}

// classifyStatusError wraps a StatusError with the matching apierr sentinel.
// The StatusError stays reachable through errors.As.
func classifyStatusError(e *StatusError) error {
	var sentinel error
	switch code := e.StatusCode; {
	case code == http.StatusUnauthorized, code == http.StatusForbidden:
		sentinel = apierr.ErrAuthFailed
	case code == http.StatusPaymentRequired:
		sentinel = apierr.ErrQuotaExceeded
	case code == http.StatusTooManyRequests:
		sentinel = apierr.ErrRateLimit
	case code == http.StatusRequestTimeout, code == http.StatusGatewayTimeout:
		sentinel = apierr.ErrTimeout
	case code >= 500:
		sentinel = apierr.ErrServer
	default:
		sentinel = apierr.ErrBadRequest
	}
	return fmt.Errorf("%w: %w", e, sentinel)
}

// classifyTransportError maps request failures that produced no response.
func classifyTransportError(err error) error {
	if errors.Is(err, context.Canceled) {
		return err
	}
	if errors.Is(err, context.DeadlineExceeded) {
		return fmt.Errorf("request timed out: %w", apierr.ErrTimeout)
	}
	var netErr net.Error
	if errors.As(err, &netErr) && netErr.Timeout() {
		return fmt.Errorf("request timed out: %w", apierr.ErrTimeout)
	}
	return fmt.Errorf("request failed: %w", err)
}
