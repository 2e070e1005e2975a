// Copyright 2026 The preq Authors. All rights reserved.
// Use of this source code is governed by an MIT-style
// license that can be found in the LICENSE file.

package timeout

import (
	"time"

	"github.com/gopreq/preq/request"
)

// A Policy defines a timeout policy which may be plugged into the
// batch HTTP client (preq.Client) to direct how to set the send
// timeout for plans which do not carry their own Timeout value.
//
// The policy is consulted once per plan, immediately before dispatch.
// A plan whose Timeout field is positive bypasses the policy entirely.
//
// Implementations of Policy must be safe for concurrent use by multiple
// goroutines, since plans belonging to the same batch are dispatched
// concurrently.
type Policy interface {
	// Timeout returns the timeout to set on the send of plan p.
	Timeout(p *request.Plan) time.Duration
}

// DefaultPolicy is the default timeout policy. It sets a fixed timeout
// of 5 seconds on each send.
var DefaultPolicy Policy = Fixed(5 * time.Second)

// Infinite is a built-in timeout policy which never times out.
var Infinite Policy = Fixed(1<<63 - 1)

// Fixed constructs a timeout policy that uses the same value to set
// every send timeout. The return value is a timeout policy that
// always returns the value d.
//
// Use Fixed to create the typical timeout behavior supported by most
// HTTP client software.
func Fixed(d time.Duration) Policy {
	return policy(d)
}

type policy time.Duration

func (p policy) Timeout(_ *request.Plan) time.Duration {
	return time.Duration(p)
}
