// Copyright 2026 The preq Authors. All rights reserved.
// Use of this source code is governed by an MIT-style
// license that can be found in the LICENSE file.

/*
Package request contains the core types Plan (describes one pending
HTTP request) and Result (describes the outcome of executing a Plan).
These two types are fundamental to running batches of concurrent HTTP
requests.

The first core type is Plan, which represents an HTTP request that has
been described but not yet sent.

For those familiar with the Go standard HTTP library, net/http, a Plan
looks like a stripped-down http.Request structure with all server-side
fields removed, and the body fields replaced with a simple []byte,
because Plan requires a pre-buffered request body. Plan fields are
named and typed consistently with http.Request wherever possible. A
Plan additionally carries an optional per-request Timeout, honored at
send time.

Create a plan without sending anything:

	p, err := request.NewPlan("GET", "https://example.com", nil)
	...

and hand it to a batch operation, together with any number of sibling
plans, to have it executed. A plan may be assigned a context to allow
its individual execution to be cancelled:

	p, err := request.NewPlanWithContext(ctx, "POST", "https://example.com/upload", body)
	...

A plan's context and timeout govern that plan alone. They never affect
sibling plans submitted to the same batch.

The second core type is Result, which represents the outcome of
executing one Plan: the buffered HTTP response on success, or the error
which caused the send to fail. Result is the element type yielded by
the batch streaming operations and the slot type of the ordered
collector, and is the input type for event handlers. You will typically
not allocate Result instances yourself, but will instead work with the
ones handed out by the batch execution logic.
*/
package request
