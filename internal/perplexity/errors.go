package perplexity

import (
	"errors"
	"fmt"
)

// ErrMissingAPIKey is returned by NewClient when no key is passed and
// PERPLEXITY_API_KEY is not set. No request is attempted without a key.
var ErrMissingAPIKey = errors.New("perplexity API key not provided or found in environment (PERPLEXITY_API_KEY)")

// InitError reports that the client handle could not be constructed,
// for example because the base URL is malformed.
type InitError struct {
	Err error
}

func (e *InitError) Error() string {
	return fmt.Sprintf("initialize perplexity client: %v", e.Err)
}

func (e *InitError) Unwrap() error { return e.Err }

// APIError is a provider-level failure: the remote service answered the
// request with a non-success status (bad key, rate limit, unknown model).
type APIError struct {
	StatusCode int
	Body       string
}

func (e *APIError) Error() string {
	return fmt.Sprintf("API error %d: %s", e.StatusCode, e.Body)
}
