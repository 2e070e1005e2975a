// Copyright 2026 The preq Authors. All rights reserved.
// Use of this source code is governed by an MIT-style
// license that can be found in the LICENSE file.

package request

import (
	"context"
	"net/http"
	"time"

	"github.com/gopreq/preq/transient"
)

// A Result represents the outcome of executing a single Plan.
//
// When a Plan is executed, alone via Do or as a member of a batch, a
// Result is created for it. The Result is updated as the send
// progresses and is ultimately surfaced to the caller: returned from
// Do, yielded by Stream and StreamIndexed, or written into its
// submission-order slot by Collect. Exactly one Result is produced per
// submitted Plan, whether the send succeeded or failed.
//
// Event handlers may set values on a Result using its SetValue method
// and read them back using the Value method. However, they should
// treat the structure's exported field values as immutable and leave
// them unmodified. Limited exceptions to this rule include making
// reasonable changes to the http.Request before it is sent (for
// example, to support an OAuth or AWS signing use case).
type Result struct {
	// Plan specifies the plan that was (or is being) executed. It is
	// never nil.
	Plan *Plan

	// Index is the zero-based position the plan occupied in its batch,
	// assigned in the order plans were pulled from the input sequence.
	// It has no bearing on execution or completion order and is used
	// only to relate a Result back to its submission slot.
	//
	// For a Plan executed alone via Do, Index is -1.
	Index int

	// Start is the time the send started. It is assigned a non-zero
	// value when the plan is dispatched to a worker slot, and this
	// value remains constant thereafter.
	Start time.Time

	// End is the end time of the send. It contains the zero value
	// until the send finishes, when it is set to the current time.
	End time.Time

	// Request specifies the HTTP request that was sent, or is being
	// sent. It is nil if the plan was never dispatched, for example
	// because the batch context was cancelled before its turn came.
	Request *http.Request

	// Response specifies the HTTP response received. It is nil if the
	// send ended in a transport error or never happened.
	//
	// Any HTTP response, including a 4XX or 5XX status, counts as a
	// successful execution. Only a failure to obtain a response (or to
	// read its body) marks the Result failed.
	Response *http.Response

	// Err indicates the error, if any, which caused the execution to
	// fail: a connection problem, a timeout, a body read error, or the
	// batch context expiring before dispatch. It is nil on success.
	//
	// Whenever Err is non-nil, it has the type *url.Error.
	//
	// Err is the failure marker for the whole batch machinery: a
	// Result with a non-nil Err occupies the failed plan's slot in
	// place of a response, and the batch's error handler (if any) has
	// already been invoked with it by the time the Result is surfaced.
	Err error

	// Body is the complete response body. It is nil if the send ended
	// in an error.
	//
	// Note that it is possible that both Body and Err are non-nil, if
	// a read of the body was partially successful. The Body field
	// should be treated as invalid unless Err is nil.
	Body []byte

	// data contains arbitrary user data. The preq library will not
	// touch this field; event handlers interact with it via the Value
	// and SetValue methods.
	data context.Context
}

// StatusCode returns the status code of the HTTP response. If there is
// no HTTP response, because the send failed or has not finished, 0 is
// returned.
func (r *Result) StatusCode() int {
	if r.Response == nil {
		return 0
	}

	return r.Response.StatusCode
}

// Header returns the HTTP response headers. If there is no HTTP
// response, because the send failed or has not finished, the nil
// header is returned.
//
// Note that a nil return value is always safe for read-only operations,
// since http.Header is a map type. There should never be a reason to
// write to the returned value, since it represents the response headers.
func (r *Result) Header() http.Header {
	if r.Response == nil {
		var nilHeader http.Header
		return nilHeader
	}

	return r.Response.Header
}

// Duration returns the duration of the send.
//
// If the send has not yet started, the duration is zero. If the send
// has ended, the duration returned is equal to End minus Start.
// Otherwise, it is equal to the current time minus Start. The return
// value is thus monotonically increasing over the life of the send,
// and becomes static when the send has ended.
func (r *Result) Duration() time.Duration {
	if !r.Started() {
		return time.Duration(0)
	} else if !r.Ended() {
		return time.Since(r.Start)
	}

	return r.End.Sub(r.Start)
}

// Started indicates whether the send has started.
//
// If the return value is false, the plan has not been dispatched yet.
// If the return value is true, then Start is a non-zero time,
// indicating the dispatch time.
func (r *Result) Started() bool {
	return r.Start != (time.Time{})
}

// Ended indicates whether the send has ended.
//
// If the return value is false, the send is still in flight. If the
// return value is true, then the send is over, End is a non-zero time,
// and there will be no further changes to the Result.
func (r *Result) Ended() bool {
	return r.End != (time.Time{})
}

// Timeout indicates whether Err currently contains a non-nil value
// which indicates a timeout, whether from the plan's own Timeout field,
// the client's timeout policy, or a deadline on the plan context.
func (r *Result) Timeout() bool {
	cat := transient.Categorize(r.Err)
	return cat == transient.Timeout
}

// SetValue allows event handlers to store arbitrary data in the
// Result.
//
// The key must follow the same rules as the key parameter in
// context.WithValue, namely it:
//
// • may not be nil;
//
// • must be comparable;
//
// • should not be of type string or any other built-in type to avoid
// collisions between different event handlers putting data into the
// same Result.
func (r *Result) SetValue(key, value interface{}) {
	ctx := r.data
	if ctx == nil {
		ctx = context.Background()
	}

	r.data = context.WithValue(ctx, key, value)
}

// Value returns the data value associated with this Result for key, or
// nil if there is no value associated with key.
func (r *Result) Value(key interface{}) interface{} {
	ctx := r.data
	if ctx == nil {
		return nil
	}

	return ctx.Value(key)
}
