package provider

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"net/http"
	"strconv"
	"strings"
	"sync"
	"time"

	"github.com/cenkalti/backoff/v4"
	"github.com/go-playground/validator/v10"
)

const (
	maxBodyBytes = 5 << 20
	userAgent    = "JobboardAggregator/1.0"
)

var ErrResponseTooLarge = errors.New("response too large")

type StatusError struct {
	Code int
}

func (e *StatusError) Error() string { return fmt.Sprintf("status %d", e.Code) }

// RetryPolicy controls how often a transient upstream failure is retried.
type RetryPolicy struct {
	InitialInterval time.Duration
	MaxInterval     time.Duration
	MaxRetries      uint64
}

var DefaultRetryPolicy = RetryPolicy{
	InitialInterval: 300 * time.Millisecond,
	MaxInterval:     2 * time.Second,
	MaxRetries:      2,
}

func (rp RetryPolicy) backOff(ctx context.Context) backoff.BackOff {
	expo := backoff.NewExponentialBackOff()
	if rp.InitialInterval > 0 {
		expo.InitialInterval = rp.InitialInterval
	}
	if rp.MaxInterval > 0 {
		expo.MaxInterval = rp.MaxInterval
	}
	expo.MaxElapsedTime = 0
	return backoff.WithContext(backoff.WithMaxRetries(expo, rp.MaxRetries), ctx)
}

// getJSON fetches url and decodes the body into out. 4xx answers are not retried.
func getJSON(ctx context.Context, client *http.Client, rp RetryPolicy, url string, headers map[string]string, out any) error {
	if client == nil {
		client = http.DefaultClient
	}

	var body []byte
	op := func() error {
		req, err := http.NewRequestWithContext(ctx, http.MethodGet, url, nil)
		if err != nil {
			return backoff.Permanent(err)
		}
		req.Header.Set("User-Agent", userAgent)
		req.Header.Set("Accept", "application/json")
		for k, v := range headers {
			req.Header.Set(k, v)
		}

		resp, err := client.Do(req)
		if err != nil {
			if ctx.Err() != nil {
				return backoff.Permanent(ctx.Err())
			}
			return err
		}
		defer resp.Body.Close()

		if resp.StatusCode < 200 || resp.StatusCode >= 300 {
			_, _ = io.Copy(io.Discard, io.LimitReader(resp.Body, 64<<10))
			serr := &StatusError{Code: resp.StatusCode}
			if resp.StatusCode >= 400 && resp.StatusCode < 500 && resp.StatusCode != http.StatusTooManyRequests {
				return backoff.Permanent(serr)
			}
			return serr
		}

		b, err := readAllLimit(resp.Body, maxBodyBytes)
		if err != nil {
			return backoff.Permanent(err)
		}
		body = b
		return nil
	}

	if err := backoff.Retry(op, rp.backOff(ctx)); err != nil {
		return err
	}

	if err := json.Unmarshal(body, out); err != nil {
		return fmt.Errorf("decode: %w", err)
	}
	return nil
}

func readAllLimit(r io.Reader, max int64) ([]byte, error) {
	lr := &io.LimitedReader{R: r, N: max + 1}
	b, err := io.ReadAll(lr)
	if err != nil {
		return nil, err
	}
	if int64(len(b)) > max {
		return nil, ErrResponseTooLarge
	}
	return b, nil
}

var (
	vldOnce sync.Once
	vld     *validator.Validate
)

func getValidator() *validator.Validate {
	vldOnce.Do(func() { vld = validator.New() })
	return vld
}

// validItem reports whether a raw provider record carries the fields the
// transform relies on.
func validItem(v any) bool {
	return getValidator().Struct(v) == nil
}

var timeLayouts = []string{
	time.RFC3339,
	"2006-01-02T15:04:05",
	"2006-01-02 15:04:05",
	"2006-01-02",
}

func parseTime(raw string) time.Time {
	raw = strings.TrimSpace(raw)
	if raw == "" {
		return time.Time{}
	}
	for _, layout := range timeLayouts {
		if t, err := time.Parse(layout, raw); err == nil {
			return t.UTC()
		}
	}
	return time.Time{}
}

// digitsOnly parses the digits of s, or nil when there are none.
func digitsOnly(s string) *int {
	var b strings.Builder
	for _, r := range s {
		if r >= '0' && r <= '9' {
			b.WriteRune(r)
		}
	}
	if b.Len() == 0 {
		return nil
	}
	n, err := strconv.Atoi(b.String())
	if err != nil {
		return nil
	}
	return &n
}

func floatToIntPtr(f *float64) *int {
	if f == nil {
		return nil
	}
	n := int(*f + 0.5)
	return &n
}

func nonEmpty(in []string) []string {
	out := make([]string, 0, len(in))
	for _, s := range in {
		s = strings.TrimSpace(s)
		if s != "" {
			out = append(out, s)
		}
	}
	return out
}
