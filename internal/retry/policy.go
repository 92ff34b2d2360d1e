package retry

import (
	"context"
	"fmt"
	"math"
	"net/http"
	"slices"
	"time"

	"github.com/hashicorp/go-retryablehttp"
)

// Policy decides which failed requests are retried.
type Policy struct {
	Enabled    bool
	Retries    int
	DoNotRetry []int
}

// Exempt reports whether the status code is never retried.
func (p Policy) Exempt(status int) bool {
	return slices.Contains(p.DoNotRetry, status)
}

// CheckRetry implements retryablehttp.CheckRetry. Transport errors follow the
// retryablehttp default policy; responses are retried when the status is an
// error status not listed in DoNotRetry.
func (p Policy) CheckRetry(ctx context.Context, resp *http.Response, err error) (bool, error) {
	if ctx.Err() != nil {
		return false, ctx.Err()
	}
	if !p.Enabled {
		return false, nil
	}
	if err != nil {
		return retryablehttp.DefaultRetryPolicy(ctx, resp, err)
	}
	if resp == nil {
		return false, nil
	}
	if resp.StatusCode < http.StatusBadRequest || p.Exempt(resp.StatusCode) {
		return false, nil
	}
	return true, nil
}

// Backoff implements retryablehttp.Backoff. A Retry-After header on 429 and 503
// responses wins; otherwise the wait is (attempt+1)^2 * min, capped at max.
func (p Policy) Backoff(min, max time.Duration, attemptNum int, resp *http.Response) time.Duration {
	if resp != nil && resp.Header.Get("Retry-After") != "" &&
		(resp.StatusCode == http.StatusTooManyRequests || resp.StatusCode == http.StatusServiceUnavailable) {
		return retryablehttp.DefaultBackoff(min, max, attemptNum, resp)
	}

	wait := time.Duration(math.Pow(float64(attemptNum+1), 2)) * min
	if wait <= 0 || wait > max {
		return max
	}
	return wait
}

// String describes the policy for debug output.
func (p Policy) String() string {
	if !p.Enabled {
		return "disabled"
	}
	return fmt.Sprintf("retries=%d do-not-retry=%v", p.Retries, p.DoNotRetry)
}
