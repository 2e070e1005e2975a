// Copyright 2026 The preq Authors. All rights reserved.
// Use of this source code is governed by an MIT-style
// license that can be found in the LICENSE file.

// Package throttle rate-limits an HTTP transport with a token bucket.
//
// A batch dispatches up to its full concurrency limit the moment it
// starts, which can be an unwelcome burst for the remote service. Wrap
// the transport of the http.Client used as the batch client's HTTPDoer
// to pace sends without shrinking the pool:
//
//	rt, err := throttle.NewRoundTripper(10, 2, http.DefaultTransport)
//	...
//	client := &preq.Client{HTTPDoer: &http.Client{Transport: rt}}
//
// Waiting for a token counts against the send's timeout, since the
// wait honors the request context.
package throttle

import (
	"errors"
	"fmt"
	"net/http"

	"golang.org/x/time/rate"
)

var (
	// ErrMustBePositive is returned by NewRoundTripper when rps or
	// burst is not a positive integer.
	ErrMustBePositive = errors.New("must be greater than zero")
	// ErrWaitingFailed wraps the limiter error when a request context
	// ends while waiting for a token.
	ErrWaitingFailed = errors.New("throttle: waiting for token failed")
)

// throttle is an http.RoundTripper, using the time/rate token bucket
// limiter to restrict outbound calls.
type throttle struct {
	limiter *rate.Limiter
	next    http.RoundTripper
}

// NewRoundTripper returns an http.RoundTripper that throttles outbound
// requests to rps requests per second with the given burst size,
// delegating transport mechanics to next. A nil next means
// http.DefaultTransport.
func NewRoundTripper(rps, burst int, next http.RoundTripper) (http.RoundTripper, error) {
	if rps <= 0 || burst <= 0 {
		return nil, fmt.Errorf("throttle: rps[%d] and burst[%d] %w", rps, burst, ErrMustBePositive)
	}
	if next == nil {
		next = http.DefaultTransport
	}

	return &throttle{
		limiter: rate.NewLimiter(rate.Limit(rps), burst),
		next:    next,
	}, nil
}

func (t *throttle) RoundTrip(r *http.Request) (*http.Response, error) {
	if err := t.limiter.Wait(r.Context()); err != nil {
		return nil, fmt.Errorf("%w: %w", ErrWaitingFailed, err)
	}

	return t.next.RoundTrip(r)
}
