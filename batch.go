// Copyright 2026 The preq Authors. All rights reserved.
// Use of this source code is governed by an MIT-style
// license that can be found in the LICENSE file.

package preq

import (
	"iter"
	"slices"
	"sync"

	"github.com/gopreq/preq/request"
)

// An ErrorHandler is notified of each failed send within a batch.
//
// The handler is invoked synchronously on the goroutine consuming the
// batch, exactly once per failed plan, immediately before the failed
// plan's Result is surfaced. It is a reporting hook: it cannot change
// the Result, suppress the slot, or affect the batch outcome.
//
// Install an ErrorHandler on a batch with the WithErrorHandler option.
// Without one, failures are still captured in each Result's Err field;
// they are simply not reported anywhere else.
type ErrorHandler interface {
	HandleError(p *request.Plan, err error)
}

// The ErrorHandlerFunc type is an adapter to allow the use of ordinary
// functions as error handlers. If f is a function with appropriate
// signature, then ErrorHandlerFunc(f) is an ErrorHandler.
type ErrorHandlerFunc func(*request.Plan, error)

// HandleError calls f(p, err).
func (f ErrorHandlerFunc) HandleError(p *request.Plan, err error) {
	f(p, err)
}

// Stream executes the given plans concurrently and returns a lazy
// sequence of their Results in completion order.
//
// Plans are pulled from the input sequence one at a time, assigned
// submission indexes in pull order, and dispatched as worker slots
// free up; the input need not be materialized before dispatch begins.
// Use the Size option to bound the number of sends in flight at once.
// Without it, every plan is dispatched immediately.
//
// Completion order is not submission order: a fast request submitted
// late may surface before a slow request submitted early. Use
// StreamIndexed to recover submission positions, or Collect to get
// results re-assembled into submission order.
//
// A failed send never stops the stream and never affects sibling
// plans: its Result carries the error and the stream moves on. The
// stream itself never fails.
//
// Breaking out of the returned sequence early releases the pool: no
// further plans are dispatched, and sends already in flight run to
// completion in the background with their Results discarded. This
// teardown runs on every exit path out of the range loop.
//
// The returned sequence does no work until ranged over, and each range
// over it executes the batch anew. Range over it once.
func (c *Client) Stream(plans iter.Seq[*request.Plan], opts ...BatchOption) iter.Seq[*request.Result] {
	cfg := newBatchConfig(opts)
	return func(yield func(*request.Result) bool) {
		c.runBatch(cfg, plans, func(_ int, r *request.Result) bool {
			return yield(r)
		})
	}
}

// StreamIndexed behaves exactly like Stream but yields each Result
// paired with its submission index: the zero-based position the plan
// occupied in the input sequence. Results still arrive in completion
// order; across a full batch of N plans the yielded indexes are a
// permutation of 0..N-1.
//
// StreamIndexed is the primitive Collect is built on.
func (c *Client) StreamIndexed(plans iter.Seq[*request.Plan], opts ...BatchOption) iter.Seq2[int, *request.Result] {
	cfg := newBatchConfig(opts)
	return func(yield func(int, *request.Result) bool) {
		c.runBatch(cfg, plans, yield)
	}
}

// Collect executes the given plans concurrently and blocks until every
// plan has produced a Result, returning the Results in submission
// order: the returned slice has the same length as plans, and element
// i is the outcome of plans[i].
//
// Collect consumes StreamIndexed internally, writing each Result into
// its submission-order slot as it completes. A failed send leaves a
// Result with a non-nil Err in its slot; it never shrinks the output
// or aborts the batch. Every element of the returned slice is non-nil.
func (c *Client) Collect(plans []*request.Plan, opts ...BatchOption) []*request.Result {
	cfg := newBatchConfig(opts)
	results := make([]*request.Result, len(plans))
	c.runBatch(cfg, slices.Values(plans), func(i int, r *request.Result) bool {
		results[i] = r
		return true
	})
	return results
}

// runBatch is the bounded-pool dispatch core shared by Stream,
// StreamIndexed, and Collect.
//
// A feeder goroutine pulls plans from the input sequence, tagging each
// with the next submission index. When the batch has a concurrency
// limit, the feeder blocks on a semaphore until a slot frees up, so at
// most cfg.size sends are in flight at any instant and a slow plan
// holds up admission, not its siblings. Each admitted plan runs in its
// own worker goroutine; Client.send captures any failure in the
// Result, so nothing a single plan does can reach past its slot.
//
// Completed Results funnel through an unbuffered channel to the
// consuming goroutine, which owns all interaction with the caller:
// invoking the error handler and yielding. A closer goroutine closes
// the channel once the feeder is done and all workers have finished,
// which is what terminates a fully-consumed batch.
//
// The deferred close of the stop channel is the teardown guarantee:
// whether the consumer exhausts the batch, breaks early, or panics,
// the feeder stops admitting work and in-flight workers fall through
// to discard their Results instead of blocking on a channel nobody
// reads.
func (c *Client) runBatch(cfg batchConfig, plans iter.Seq[*request.Plan], yield func(int, *request.Result) bool) {
	handlers := c.handlers()
	handlers.run(BeforeBatchStart, nil)
	defer handlers.run(AfterBatchEnd, nil)

	if c.Logger != nil {
		c.Logger.Debug().Int("size", cfg.size).Msg("batch start")
	}

	results := make(chan *request.Result)
	stop := make(chan struct{})
	defer close(stop)

	var wg sync.WaitGroup
	var sem chan struct{}
	if cfg.size > 0 {
		sem = make(chan struct{}, cfg.size)
	}

	fed := make(chan struct{})
	go func() {
		defer close(fed)
		i := 0
		for p := range plans {
			r := &request.Result{Plan: p, Index: i}
			i++
			switch admit(cfg, r, sem, results, stop) {
			case abandoned:
				continue
			case quit:
				return
			}
			wg.Add(1)
			go func() {
				defer wg.Done()
				if sem != nil {
					defer func() { <-sem }()
				}
				c.send(r)
				select {
				case results <- r:
				case <-stop:
				}
			}()
		}
	}()

	go func() {
		<-fed
		wg.Wait()
		close(results)
	}()

	n, failed := 0, 0
	for r := range results {
		if r.Err != nil {
			failed++
			if cfg.errorHandler != nil {
				cfg.errorHandler.HandleError(r.Plan, r.Err)
			}
		}
		n++
		if !yield(r.Index, r) {
			return
		}
	}

	if c.Logger != nil {
		c.Logger.Debug().Int("results", n).Int("failed", failed).Msg("batch complete")
	}
}

// An admission is the feeder's verdict on one pulled plan.
type admission int

const (
	// dispatch: a slot is held and the plan should be sent.
	dispatch admission = iota
	// abandoned: the batch context expired; a failed Result was
	// delivered without sending, and feeding continues so later plans
	// get their Results too.
	abandoned
	// quit: the consumer has gone away and the feeder should stop.
	quit
)

// admit blocks until a pool slot is free for r's plan, or fails r
// without dispatching it when the batch context has expired. The
// abandoned outcome still delivers a Result, keeping the
// one-Result-per-plan invariant intact for Collect.
func admit(cfg batchConfig, r *request.Result, sem chan struct{}, results chan<- *request.Result, stop <-chan struct{}) admission {
	select {
	case <-stop:
		return quit
	default:
	}

	if cfg.ctx.Err() != nil {
		return abandon(cfg, r, results, stop)
	}

	if sem == nil {
		return dispatch
	}

	select {
	case sem <- struct{}{}:
		return dispatch
	case <-cfg.ctx.Done():
		return abandon(cfg, r, results, stop)
	case <-stop:
		return quit
	}
}

func abandon(cfg batchConfig, r *request.Result, results chan<- *request.Result, stop <-chan struct{}) admission {
	r.Err = urlErrorWrap(r.Plan, cfg.ctx.Err())
	select {
	case results <- r:
		return abandoned
	case <-stop:
		return quit
	}
}
