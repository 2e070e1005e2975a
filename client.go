// Copyright 2026 The preq Authors. All rights reserved.
// Use of this source code is governed by an MIT-style
// license that can be found in the LICENSE file.

package preq

import (
	"context"
	"io"
	"net/http"
	"net/url"
	"strings"
	"time"

	"github.com/rs/zerolog"

	"github.com/gopreq/preq/request"
	"github.com/gopreq/preq/timeout"
)

// An HTTPDoer implements a Do method in the same manner as the Go
// standard library http.Client from the net/http package.
type HTTPDoer interface {
	// Do sends an HTTP request and returns an HTTP response following
	// policy (such as redirects, cookies, auth) configured on the
	// HTTPDoer.
	//
	// The Do method must follow the contract documented on the Go
	// standard library http.Client from the net/http package.
	Do(r *http.Request) (*http.Response, error)
}

var emptyHandlers = HandlerGroup{}

// A Client executes batches of independent HTTP requests over a
// bounded pool of concurrent worker slots. Its zero value is a valid
// configuration.
//
// The zero value client uses http.DefaultClient (from net/http) as the
// HTTPDoer, timeout.DefaultPolicy as the timeout policy, an empty
// handler group (no event handlers/plug-ins), and no logger.
//
// Client's HTTPDoer typically has an internal state (cached TCP
// connections) so Client instances should be reused instead of created
// as needed. Client is safe for concurrent use by multiple goroutines,
// including running multiple batches at once.
//
// A Client is higher-level than an HTTPDoer. The HTTPDoer is
// responsible for all details of sending one HTTP request and
// receiving the response (connections, redirects, TLS, encoding),
// while Client builds on top of the HTTPDoer's feature set:
//
// • Client runs many requests concurrently, bounded by a batch
// concurrency limit, and surfaces their outcomes either in completion
// order (Stream, StreamIndexed) or re-assembled into submission order
// (Collect);
//
// • Client isolates failures: an error sending one request is captured
// in that request's Result and never aborts, cancels, or otherwise
// affects sibling requests in the batch;
//
// • Client reads and buffers the entire HTTP response body into a
// []byte (returned as the Result.Body field);
//
// • Client sets individual send timeouts from the plan's own Timeout
// field or, failing that, a customizable timeout policy; and
//
// • Client invokes user-provided handler functions at designated
// plug-in points within the dispatch loop, allowing new features to be
// mixed in from outside libraries.
type Client struct {
	// HTTPDoer specifies the mechanics of sending HTTP requests and
	// receiving responses.
	//
	// If HTTPDoer is nil, http.DefaultClient from the standard
	// net/http package is used.
	HTTPDoer HTTPDoer
	// TimeoutPolicy specifies how to set timeouts on sends whose plans
	// carry no explicit Timeout.
	//
	// If TimeoutPolicy is nil, timeout.DefaultPolicy is used.
	TimeoutPolicy timeout.Policy
	// Handlers allows custom handler chains to be invoked when
	// designated events occur during a batch execution.
	//
	// If Handlers is nil, no custom handlers will be run.
	Handlers *HandlerGroup
	// Logger, if non-nil, receives structured debug logging of
	// dispatch and completion, and warnings for failed sends.
	//
	// If Logger is nil, the client is silent.
	Logger *zerolog.Logger
}

// Do executes a single plan and returns its Result, honoring the
// plan's Timeout (or the client's timeout policy) and the low-level
// policy set on the underlying HTTPDoer.
//
// An error is returned if the send failed: a failure to speak HTTP
// (for example a network connectivity problem), a timeout, or an error
// reading the response body. A non-2XX status code does not result in
// an error.
//
// The returned Result is never nil, but will contain a nil Response
// and nil Body if a transport error occurred. If the HTTP exchange
// succeeded and the error occurred while reading the body, Response is
// non-nil but Body is nil. If an error was returned, the Err field of
// the Result always references the same error, and any returned error
// is of type *url.Error.
//
// Do is the single-request primitive underlying the batch operations;
// use Collect or Stream to run many plans concurrently.
func (c *Client) Do(p *request.Plan) (*request.Result, error) {
	r := &request.Result{
		Plan:  p,
		Index: -1,
	}
	c.send(r)
	return r, r.Err
}

// CloseIdleConnections invokes the same method on the client's
// underlying HTTPDoer.
//
// If the HTTPDoer has no CloseIdleConnections method, this method does
// nothing.
//
// If the HTTPDoer does have a CloseIdleConnections method, then the
// effect of this method depends entirely on its implementation in the
// HTTPDoer. For example, the http.Client type forwards the call to its
// Transport, but only if the Transport itself has a
// CloseIdleConnections method (otherwise it does nothing).
func (c *Client) CloseIdleConnections() {
	doer := c.doer()
	if ic, ok := doer.(IdleCloser); ok {
		ic.CloseIdleConnections()
	}
}

// send executes one plan from start to finish, recording the outcome
// on r. It never returns an error and never panics on transport
// trouble: every failure is captured in r.Err. This is the slot
// boundary the batch dispatcher relies on for failure isolation.
func (c *Client) send(r *request.Result) {
	doer := c.doer()
	handlers := c.handlers()
	p := r.Plan

	d := p.Timeout
	if d <= 0 {
		d = c.timeoutPolicy().Timeout(p)
	}

	r.Start = time.Now()
	ctx, cancel := context.WithTimeout(p.Context(), d)
	defer cancel()
	r.Request = p.ToRequest(ctx)
	handlers.run(BeforeSend, r)
	resp, err := doer.Do(r.Request)
	if err != nil {
		r.Err = urlErrorWrap(p, err)
	} else {
		r.Response = resp
		readBody(p, r, handlers)
	}
	r.End = time.Now()
	handlers.run(AfterSend, r)

	if c.Logger != nil {
		if r.Err != nil {
			c.Logger.Warn().
				Err(r.Err).
				Str("method", p.Method).
				Stringer("url", p.URL).
				Dur("duration", r.Duration()).
				Msg("request failed")
		} else {
			c.Logger.Debug().
				Str("method", p.Method).
				Stringer("url", p.URL).
				Int("status", r.StatusCode()).
				Dur("duration", r.Duration()).
				Msg("request complete")
		}
	}
}

func readBody(p *request.Plan, r *request.Result, handlers *HandlerGroup) {
	defer func() {
		_ = r.Response.Body.Close()
	}()
	handlers.run(BeforeReadBody, r)
	var err error
	r.Body, err = io.ReadAll(r.Response.Body)
	if err != nil {
		r.Err = urlErrorWrap(p, err)
	}
}

func (c *Client) doer() HTTPDoer {
	if c.HTTPDoer == nil {
		return http.DefaultClient
	}

	return c.HTTPDoer
}

func (c *Client) timeoutPolicy() timeout.Policy {
	if c.TimeoutPolicy == nil {
		return timeout.DefaultPolicy
	}

	return c.TimeoutPolicy
}

func (c *Client) handlers() *HandlerGroup {
	if c.Handlers == nil {
		return &emptyHandlers
	}

	return c.Handlers
}

func urlErrorWrap(p *request.Plan, err error) error {
	if _, ok := err.(*url.Error); ok {
		return err
	}

	return &url.Error{
		Op:  urlErrorOp(p.Method),
		URL: p.URL.String(),
		Err: err,
	}
}

// urlErrorOp is lifted verbatim from net/http/client.go
func urlErrorOp(method string) string {
	if method == "" {
		return "Get"
	}
	return method[:1] + strings.ToLower(method[1:])
}
