// Package retry turns the string retry inputs into the policy and request
// options consumed by the API client's retry transport.
package retry

import (
	"fmt"
	"log/slog"
	"slices"
	"strconv"
	"strings"
	"time"
)

const (
	DefaultRetryWaitMin = 1 * time.Second
	DefaultRetryWaitMax = 30 * time.Second
)

// DefaultDoNotRetry mirrors the status codes octokit's retry plugin never retries.
var DefaultDoNotRetry = []int{400, 401, 403, 404, 422, 451}

// Options pairs the retry policy with the low-level request options.
type Options struct {
	Policy  Policy
	Request RequestOptions
}

// RequestOptions are the transport-level settings applied to every request.
type RequestOptions struct {
	// Retries is the number of retry attempts after the first request.
	Retries int
	// Timeout bounds a single HTTP attempt. Zero means no limit.
	Timeout time.Duration
	// RetryWaitMin is the backoff base; RetryWaitMax caps a single wait.
	RetryWaitMin time.Duration
	RetryWaitMax time.Duration
}

// ParseCount parses the retries input. An empty string means zero.
func ParseCount(s string) (int, error) {
	s = strings.TrimSpace(s)
	if s == "" {
		return 0, nil
	}
	n, err := strconv.Atoi(s)
	if err != nil {
		return 0, fmt.Errorf("%w: %q is not an integer", ErrInvalidRetries, s)
	}
	if n < 0 {
		return 0, fmt.Errorf("%w: %d is negative", ErrInvalidRetries, n)
	}
	return n, nil
}

// ParseStatusCodes parses a comma and/or whitespace separated list of HTTP
// status codes. Order is preserved and duplicates are kept.
func ParseStatusCodes(s string) ([]int, error) {
	fields := strings.FieldsFunc(s, func(r rune) bool {
		return r == ',' || r == ' ' || r == '\t' || r == '\n' || r == '\r'
	})

	codes := make([]int, 0, len(fields))
	for _, f := range fields {
		code, err := strconv.Atoi(f)
		if err != nil {
			return nil, fmt.Errorf("%w: %q is not a number", ErrInvalidStatusCode, f)
		}
		if code < 100 || code > 599 {
			return nil, fmt.Errorf("%w: %d is out of range", ErrInvalidStatusCode, code)
		}
		codes = append(codes, code)
	}
	return codes, nil
}

// Build parses both retry inputs and returns the combined options.
func Build(retries, exemptStatusCodes string) (Options, error) {
	count, err := ParseCount(retries)
	if err != nil {
		return Options{}, err
	}
	codes, err := ParseStatusCodes(exemptStatusCodes)
	if err != nil {
		return Options{}, err
	}
	return NewOptions(count, codes), nil
}

// NewOptions builds options from already parsed values. An empty exempt list
// selects DefaultDoNotRetry.
func NewOptions(retries int, exemptStatusCodes []int) Options {
	doNotRetry := slices.Clone(exemptStatusCodes)
	if len(doNotRetry) == 0 {
		doNotRetry = slices.Clone(DefaultDoNotRetry)
	}

	return Options{
		Policy: Policy{
			Enabled:    retries > 0,
			Retries:    retries,
			DoNotRetry: doNotRetry,
		},
		Request: RequestOptions{
			Retries:      retries,
			RetryWaitMin: DefaultRetryWaitMin,
			RetryWaitMax: DefaultRetryWaitMax,
		},
	}
}

// LogValue implements slog.LogValuer.
func (o Options) LogValue() slog.Value {
	return slog.GroupValue(
		slog.Bool("enabled", o.Policy.Enabled),
		slog.Int("retries", o.Request.Retries),
		slog.Any("do_not_retry", o.Policy.DoNotRetry),
	)
}
