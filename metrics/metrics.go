// Copyright 2026 The preq Authors. All rights reserved.
// Use of this source code is governed by an MIT-style
// license that can be found in the LICENSE file.

// Package metrics exports Prometheus instrumentation for batch HTTP
// execution as a preq event handler.
//
// Install the handler on a client to observe its batches:
//
//	handlers := &preq.HandlerGroup{}
//	handlers.PushBack(preq.BeforeSend, metrics.NewHandler(prometheus.DefaultRegisterer))
//	...
//
// or, more conveniently, use Instrument, which wires one handler into
// every event it observes:
//
//	client := &preq.Client{Handlers: metrics.Instrument(nil, prometheus.DefaultRegisterer)}
//
// Exported metrics:
//
//   - preq_in_flight_requests (Gauge): sends currently in flight
//     across all batches run by the instrumented client
//   - preq_requests_total{outcome} (Counter): finished sends by
//     outcome ("success" or "failure")
//   - preq_request_duration_seconds (Histogram): send duration,
//     including response body buffering
//   - preq_batches_total (Counter): batch operations started
package metrics

import (
	"github.com/prometheus/client_golang/prometheus"

	"github.com/gopreq/preq"
	"github.com/gopreq/preq/request"
)

const (
	outcomeSuccess = "success"
	outcomeFailure = "failure"
)

// A Handler records Prometheus metrics for the batch events it
// receives. It is safe for concurrent use, as required of handlers for
// the send-level events.
type Handler struct {
	inFlight prometheus.Gauge
	requests *prometheus.CounterVec
	duration prometheus.Histogram
	batches  prometheus.Counter
}

// NewHandler creates a Handler and registers its collectors with reg.
// A nil reg means prometheus.DefaultRegisterer.
//
// NewHandler panics if registration fails, for example if another
// Handler was already registered with the same registerer; create one
// Handler per registerer and share it between clients instead.
func NewHandler(reg prometheus.Registerer) *Handler {
	if reg == nil {
		reg = prometheus.DefaultRegisterer
	}
	h := &Handler{
		inFlight: prometheus.NewGauge(prometheus.GaugeOpts{
			Name: "preq_in_flight_requests",
			Help: "Number of HTTP sends currently in flight.",
		}),
		requests: prometheus.NewCounterVec(prometheus.CounterOpts{
			Name: "preq_requests_total",
			Help: "Finished HTTP sends by outcome.",
		}, []string{"outcome"}),
		duration: prometheus.NewHistogram(prometheus.HistogramOpts{
			Name:    "preq_request_duration_seconds",
			Help:    "HTTP send duration including response body buffering.",
			Buckets: prometheus.DefBuckets,
		}),
		batches: prometheus.NewCounter(prometheus.CounterOpts{
			Name: "preq_batches_total",
			Help: "Batch operations started.",
		}),
	}
	reg.MustRegister(h.inFlight, h.requests, h.duration, h.batches)
	return h
}

// Handle implements preq.Handler.
func (h *Handler) Handle(evt preq.Event, r *request.Result) {
	switch evt {
	case preq.BeforeBatchStart:
		h.batches.Inc()
	case preq.BeforeSend:
		h.inFlight.Inc()
	case preq.AfterSend:
		h.inFlight.Dec()
		outcome := outcomeSuccess
		if r.Err != nil {
			outcome = outcomeFailure
		}
		h.requests.WithLabelValues(outcome).Inc()
		h.duration.Observe(r.Duration().Seconds())
	}
}

// Instrument returns g with a new metrics Handler (registered with
// reg) pushed onto every event chain it observes. A nil g starts an
// empty group, so the common case is a one-liner:
//
//	client := &preq.Client{Handlers: metrics.Instrument(nil, reg)}
func Instrument(g *preq.HandlerGroup, reg prometheus.Registerer) *preq.HandlerGroup {
	if g == nil {
		g = &preq.HandlerGroup{}
	}
	h := NewHandler(reg)
	g.PushBack(preq.BeforeBatchStart, h)
	g.PushBack(preq.BeforeSend, h)
	g.PushBack(preq.AfterSend, h)
	return g
}
