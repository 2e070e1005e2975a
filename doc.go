// Copyright 2026 The preq Authors. All rights reserved.
// Use of this source code is governed by an MIT-style
// license that can be found in the LICENSE file.

/*
Package preq executes batches of independent HTTP requests
concurrently over a bounded worker pool, with per-request failure
isolation: one failing request never aborts, cancels, or delays its
siblings beyond releasing its pool slot.

Describe the requests first. Builders return inert plans; nothing is
sent yet:

	urls := []string{
		"https://www.heroku.com",
		"https://httpbin.org",
		"https://example.com",
	}
	plans := make([]*request.Plan, len(urls))
	for i, u := range urls {
		plans[i], _ = preq.Get(u)
	}

Then send them all at once. Collect blocks until every plan has an
outcome and returns the Results in submission order:

	results := preq.Collect(plans, preq.Size(2))
	for i, r := range results {
		if r.Err != nil {
			log.Printf("%s failed: %v", urls[i], r.Err)
			continue
		}
		log.Printf("%s: %d", urls[i], r.StatusCode())
	}

At most two sends are in flight at any instant because of
preq.Size(2); omitting the option dispatches everything immediately.
A failed send occupies its slot in the output as a Result with a
non-nil Err. The batch itself never fails and is always exactly as
long as its input.

When results should be handled as soon as they arrive, use Stream,
which yields lazily in completion order, or StreamIndexed, which pairs
each Result with the plan's original position:

	for i, r := range preq.StreamIndexed(slices.Values(plans), preq.Size(2)) {
		fmt.Println(i, r.StatusCode())
	}

Breaking out of the loop early is safe: the pool stops admitting plans
and in-flight sends finish in the background with their results
discarded.

To be told about failures as they surface, install an error handler on
the batch. It runs once per failed plan, on the consuming goroutine,
and cannot alter the outcome:

	handler := preq.ErrorHandlerFunc(func(p *request.Plan, err error) {
		log.Printf("%s %s: %v", p.Method, p.URL, err)
	})
	results := preq.Collect(plans, preq.Size(4), preq.WithErrorHandler(handler))

For control over how individual requests are sent, configure a Client.
The zero value is usable; fields customize the HTTP transport, the
timeout applied to plans that don't carry their own, structured
logging, and event handler plug-ins:

	client := &preq.Client{
		HTTPDoer:      &http.Client{Transport: tr},
		TimeoutPolicy: timeout.Fixed(10 * time.Second),
		Logger:        &logger,
	}
	results := client.Collect(plans)

Per-request timeouts come from the plan itself (Plan.Timeout) and
expire that plan alone; a whole-batch ceiling comes from the
WithContext batch option, which stops dispatching once the context is
done while still producing a Result for every submitted plan.

Package preq provides basic interfaces for each capability of the
batch client (Doer, Collector, Streamer, and IdleCloser) and a
combined interface that composes them (Executor).

Subpackages: package request defines the Plan and Result types;
package timeout defines fallback timeout policies; package transient
categorizes transport errors; package metrics exports Prometheus
instrumentation as an event handler; package throttle rate-limits an
HTTP transport.
*/
package preq
