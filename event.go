// Copyright 2026 The preq Authors. All rights reserved.
// Use of this source code is governed by an MIT-style
// license that can be found in the LICENSE file.

package preq

// An Event identifies the event type when installing or running a
// Handler. Install event handlers in a Client to extend it with custom
// functionality.
type Event int

const (
	// BeforeBatchStart identifies the event that occurs before the
	// first plan of a batch is dispatched.
	//
	// When Client fires BeforeBatchStart, the Result argument passed
	// to the handler is nil. The event fires on the goroutine that
	// consumes the batch.
	BeforeBatchStart Event = iota
	// BeforeSend identifies the event that occurs before each
	// individual HTTP request is sent.
	//
	// When Client fires BeforeSend, the Result's request field is set
	// to the HTTP request that WILL BE sent after all BeforeSend
	// handlers have finished.
	//
	// BeforeSend handlers may modify the Result's request, or some of
	// its fields, thus changing the HTTP request that will be sent.
	// However, BeforeSend handlers should clone request fields which
	// have reference types (URL and Header) before changing them to
	// avoid side effects, as these fields initially reference the
	// same-named fields in the plan.
	//
	// BeforeSend fires on a worker goroutine. Handlers for it must be
	// safe for concurrent use, since up to one send per pool slot is
	// in flight at any instant.
	BeforeSend
	// BeforeReadBody identifies the event that occurs after a send has
	// resulted in an HTTP response (as opposed to an error) but before
	// the response body is read and buffered.
	//
	// When Client fires BeforeReadBody, the Result's response field is
	// set to the HTTP response whose body WILL BE read after all
	// BeforeReadBody handlers have finished (however, handlers may
	// modify this field).
	//
	// Note that BeforeReadBody never fires if the send ended in error,
	// but always fires if an HTTP response is received, regardless of
	// HTTP response status code, and regardless of whether there is a
	// non-empty body in the response.
	//
	// BeforeReadBody fires on a worker goroutine. Handlers for it must
	// be safe for concurrent use.
	BeforeReadBody
	// AfterSend identifies the event that occurs after a send is
	// concluded, regardless of whether it concluded successfully or
	// not.
	//
	// When Client fires AfterSend, either the Result's response field
	// or its error field OR BOTH may be set to non-nil values, but it
	// will never be the case that both are nil. The response will only
	// be non-nil when the error is also non-nil if there was an error
	// reading the response body.
	//
	// AfterSend fires on a worker goroutine, before the Result is
	// surfaced to the batch consumer. Handlers for it must be safe for
	// concurrent use.
	AfterSend
	// AfterBatchEnd identifies the event that occurs after a batch is
	// finished: every dispatched plan has produced a Result, or the
	// consumer stopped iterating early.
	//
	// When Client fires AfterBatchEnd, the Result argument passed to
	// the handler is nil. The event fires on the goroutine that
	// consumes the batch.
	AfterBatchEnd
	// eventSentinel provides the total number of events typed as an
	// Event.
	eventSentinel

	// numEvents provides the total number of events typed as an int.
	numEvents = int(eventSentinel)
)

var eventNames = []string{
	"BeforeBatchStart",
	"BeforeSend",
	"BeforeReadBody",
	"AfterSend",
	"AfterBatchEnd",
}

// Events returns a slice containing all events which can occur during
// a batch execution by Client, in the order in which they would occur.
func Events() []Event {
	return []Event{
		BeforeBatchStart,
		BeforeSend,
		BeforeReadBody,
		AfterSend,
		AfterBatchEnd,
	}
}

// Name returns the name of the event.
func (evt Event) Name() string {
	return eventNames[int(evt)]
}

// String returns the name of the event.
func (evt Event) String() string {
	return evt.Name()
}
