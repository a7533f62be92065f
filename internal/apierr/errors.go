// Package apierr provides shared error sentinels for the remote endpoint.
// HTTP status codes are classified into these sentinels at the client
// boundary using fmt.Errorf("%s: %w", msg, sentinel), and callers check them
// with errors.Is(err, apierr.ErrAuthFailed) etc.
package apierr

import "errors"

// Sentinel errors for endpoint failures.
var (
	// ErrRateLimit indicates the endpoint rejected the request for rate limiting.
	ErrRateLimit = errors.New("rate limit exceeded")

	// ErrQuotaExceeded indicates the account has no remaining quota.
	ErrQuotaExceeded = errors.New("quota exceeded")

	// ErrTimeout indicates a request timed out.
	ErrTimeout = errors.New("request timeout")

	// ErrAuthFailed indicates the endpoint rejected the credentials.
	ErrAuthFailed = errors.New("authentication failed")

	// ErrBadRequest indicates a client error (4xx) that is not otherwise classified.
	ErrBadRequest = errors.New("bad request")

	// ErrServer indicates the endpoint failed with a 5xx status.
	ErrServer = errors.New("server error")
)
