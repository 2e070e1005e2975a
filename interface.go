// Copyright 2026 The preq Authors. All rights reserved.
// Use of this source code is governed by an MIT-style
// license that can be found in the LICENSE file.

package preq

import (
	"iter"

	"github.com/gopreq/preq/request"
)

// Doer is the interface that wraps the basic Do method.
//
// Do executes a single plan and returns its Result (and error, if
// any). Client implements the Doer interface, and any other Doer
// implementation must behave substantially the same as Client.Do.
type Doer interface {
	Do(p *request.Plan) (*request.Result, error)
}

// Collector is the interface that wraps the basic Collect method.
//
// Collect executes a batch of plans concurrently and returns their
// Results re-assembled into submission order. Client implements the
// Collector interface, and any other Collector implementation must
// behave substantially the same as Client.Collect: same-length output,
// element i reflecting plans[i], failed slots carrying their error
// rather than aborting the batch.
type Collector interface {
	Collect(plans []*request.Plan, opts ...BatchOption) []*request.Result
}

// Streamer is the interface that groups the lazy batch methods Stream
// and StreamIndexed.
//
// Both execute a batch of plans concurrently and yield Results lazily
// in completion order; StreamIndexed additionally pairs each Result
// with its submission index. Client implements the Streamer interface,
// and any other Streamer implementation must behave substantially the
// same as Client, including releasing pool resources when the consumer
// stops ranging early.
type Streamer interface {
	Stream(plans iter.Seq[*request.Plan], opts ...BatchOption) iter.Seq[*request.Result]
	StreamIndexed(plans iter.Seq[*request.Plan], opts ...BatchOption) iter.Seq2[int, *request.Result]
}

// IdleCloser is the interface that wraps the basic CloseIdleConnections
// method.
//
// If the underlying implementation supports it, CloseIdleConnections
// closes any connections which were previously used but are now
// sitting idle in a "keep-alive" state. It does not interrupt any
// connections currently in use.
//
// If the underlying implementation does not support this ability,
// CloseIdleConnections does nothing.
type IdleCloser interface {
	CloseIdleConnections()
}

// Executor is the interface that groups the basic Do, Collect, Stream,
// StreamIndexed, and CloseIdleConnections methods. Client implements
// Executor.
type Executor interface {
	Doer
	Collector
	Streamer
	IdleCloser
}
