// Copyright 2026 The preq Authors. All rights reserved.
// Use of this source code is governed by an MIT-style
// license that can be found in the LICENSE file.

package preq

import (
	"iter"
	"net/url"

	"github.com/gopreq/preq/request"
)

// DefaultClient is the client used by the package-level Do, Collect,
// Stream, and StreamIndexed functions. It is a zero-value Client:
// http.DefaultClient transport, default timeout policy, no handlers,
// no logging.
var DefaultClient = &Client{}

// Get returns a plan to issue a GET to the specified URL. Nothing is
// sent until the plan is handed to a batch operation or Do.
//
// To set custom headers, a per-request timeout, or a context, use the
// fields and methods of the returned plan, or use request.NewPlan
// directly.
func Get(url string) (*request.Plan, error) {
	return request.NewPlan("GET", url, nil)
}

// Head returns a plan to issue a HEAD to the specified URL. Nothing is
// sent until the plan is handed to a batch operation or Do.
func Head(url string) (*request.Plan, error) {
	return request.NewPlan("HEAD", url, nil)
}

// Options returns a plan to issue an OPTIONS to the specified URL.
// Nothing is sent until the plan is handed to a batch operation or Do.
func Options(url string) (*request.Plan, error) {
	return request.NewPlan("OPTIONS", url, nil)
}

// Delete returns a plan to issue a DELETE to the specified URL.
// Nothing is sent until the plan is handed to a batch operation or Do.
func Delete(url string) (*request.Plan, error) {
	return request.NewPlan("DELETE", url, nil)
}

// Post returns a plan to issue a POST to the specified URL. Nothing is
// sent until the plan is handed to a batch operation or Do.
//
// The body parameter may be nil for an empty body, or may be any of
// the types supported by request.NewPlan and request.BodyBytes,
// namely: string; []byte; io.Reader; and io.ReadCloser.
func Post(url, contentType string, body interface{}) (*request.Plan, error) {
	return planWithBody("POST", url, contentType, body)
}

// Put returns a plan to issue a PUT to the specified URL. The body
// parameter follows the same rules as for Post.
func Put(url, contentType string, body interface{}) (*request.Plan, error) {
	return planWithBody("PUT", url, contentType, body)
}

// Patch returns a plan to issue a PATCH to the specified URL. The body
// parameter follows the same rules as for Post.
func Patch(url, contentType string, body interface{}) (*request.Plan, error) {
	return planWithBody("PATCH", url, contentType, body)
}

// PostForm returns a plan to issue a POST to the specified URL, with
// data's keys and values URL-encoded as the request body.
//
// The Content-Type header is set to application/x-www-form-urlencoded.
// To set other headers, use request.NewPlan.
func PostForm(url string, data url.Values) (*request.Plan, error) {
	return Post(url, "application/x-www-form-urlencoded", data.Encode())
}

// NewRequest returns a plan for an arbitrary HTTP method. It is the
// generalization of the method-specific builders: Get(u) is equivalent
// to NewRequest("GET", u, nil).
func NewRequest(method, url string, body interface{}) (*request.Plan, error) {
	return request.NewPlan(method, url, body)
}

func planWithBody(method, url, contentType string, body interface{}) (*request.Plan, error) {
	p, err := request.NewPlan(method, url, body)
	if err != nil {
		return nil, err
	}
	p.Header.Set("Content-Type", contentType)
	return p, nil
}

// Do executes a single plan using DefaultClient.
func Do(p *request.Plan) (*request.Result, error) {
	return DefaultClient.Do(p)
}

// Collect executes a batch of plans using DefaultClient and returns
// their Results in submission order. See Client.Collect.
func Collect(plans []*request.Plan, opts ...BatchOption) []*request.Result {
	return DefaultClient.Collect(plans, opts...)
}

// Stream executes a batch of plans using DefaultClient and returns a
// lazy sequence of Results in completion order. See Client.Stream.
func Stream(plans iter.Seq[*request.Plan], opts ...BatchOption) iter.Seq[*request.Result] {
	return DefaultClient.Stream(plans, opts...)
}

// StreamIndexed executes a batch of plans using DefaultClient and
// returns a lazy sequence of (submission index, Result) pairs in
// completion order. See Client.StreamIndexed.
func StreamIndexed(plans iter.Seq[*request.Plan], opts ...BatchOption) iter.Seq2[int, *request.Result] {
	return DefaultClient.StreamIndexed(plans, opts...)
}
