// Copyright 2026 The preq Authors. All rights reserved.
// Use of this source code is governed by an MIT-style
// license that can be found in the LICENSE file.

package preq

import "context"

// A BatchOption configures a single batch operation (Collect, Stream,
// or StreamIndexed). Options apply to one call only; the Client itself
// is not modified.
type BatchOption func(*batchConfig)

type batchConfig struct {
	size         int // 0 means no limit: dispatch every plan at once
	ctx          context.Context
	errorHandler ErrorHandler
}

func newBatchConfig(opts []BatchOption) batchConfig {
	cfg := batchConfig{
		ctx: context.Background(),
	}
	for _, opt := range opts {
		opt(&cfg)
	}
	return cfg
}

// Size bounds the number of sends in flight at once within the batch.
// Plans beyond the limit wait, in submission order, for a slot to free
// up.
//
// n must be positive; Size panics otherwise. Omitting the option means
// no limit: every plan in the batch is dispatched immediately.
func Size(n int) BatchOption {
	if n < 1 {
		panic("preq: batch size must be positive")
	}
	return func(cfg *batchConfig) {
		cfg.size = n
	}
}

// WithErrorHandler installs h as the batch's error handler. See
// ErrorHandler for the invocation contract.
//
// h must not be nil; WithErrorHandler panics otherwise.
func WithErrorHandler(h ErrorHandler) BatchOption {
	if h == nil {
		panic("preq: nil error handler")
	}
	return func(cfg *batchConfig) {
		cfg.errorHandler = h
	}
}

// WithContext attaches a context to the whole batch, bounding how long
// the batch keeps dispatching new plans. Once ctx is done, plans not
// yet dispatched are failed in place with the context's error, without
// being sent, while sends already in flight are left to finish under
// their own plan contexts and timeouts. Every submitted plan still
// produces a Result.
//
// Use a deadline context to put a ceiling on total batch time without
// cancelling individual requests mid-flight.
//
// ctx must not be nil; WithContext panics otherwise.
func WithContext(ctx context.Context) BatchOption {
	if ctx == nil {
		panic("preq: nil context")
	}
	return func(cfg *batchConfig) {
		cfg.ctx = ctx
	}
}
