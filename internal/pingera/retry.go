package pingera

import (
	"context"
	"errors"
	"net/http"
	"time"

	"github.com/failsafe-go/failsafe-go/failsafehttp"
	"github.com/failsafe-go/failsafe-go/retrypolicy"
)

// retryableStatus lists the statuses worth another attempt.
func retryableStatus(code int) bool {
	switch code {
	case http.StatusTooManyRequests,
		http.StatusInternalServerError,
		http.StatusBadGateway,
		http.StatusServiceUnavailable,
		http.StatusGatewayTimeout:
		return true
	}
	return false
}

// newRetryPolicy retries transport errors and retryable statuses with
// exponential backoff. After the last attempt the final response or error
// is returned unchanged so it can be classified by the caller.
func newRetryPolicy(maxRetries int, delay, maxDelay time.Duration) retrypolicy.RetryPolicy[*http.Response] {
	return retrypolicy.NewBuilder[*http.Response]().
		HandleIf(func(resp *http.Response, err error) bool {
			if err != nil {
				return !errors.Is(err, context.Canceled)
			}
			return resp != nil && retryableStatus(resp.StatusCode)
		}).
		WithBackoff(delay, maxDelay).
		WithMaxRetries(maxRetries).
		ReturnLastFailure().
		Build()
}

// newRetryTransport wraps inner so idempotent requests are retried.
func newRetryTransport(inner http.RoundTripper, maxRetries int, delay, maxDelay time.Duration) http.RoundTripper {
	return failsafehttp.NewRoundTripper(inner, newRetryPolicy(maxRetries, delay, maxDelay))
}
