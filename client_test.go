// Copyright 2026 The preq Authors. All rights reserved.
// Use of this source code is governed by an MIT-style
// license that can be found in the LICENSE file.

package preq

import (
	"bytes"
	"context"
	"crypto/tls"
	"crypto/x509"
	"net/http"
	"net/url"
	"slices"
	"strings"
	"testing"
	"time"

	"github.com/rs/zerolog"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"
	"github.com/stretchr/testify/require"
	"golang.org/x/net/http2"

	"github.com/gopreq/preq/request"
	"github.com/gopreq/preq/timeout"
)

func TestClient_Do(t *testing.T) {
	t.Run("success", func(t *testing.T) {
		for _, server := range servers {
			t.Run(serverName(server), func(t *testing.T) {
				cl := &Client{HTTPDoer: server.Client()}
				p := (&serverInstruction{
					StatusCode: 200,
					Body:       []bodyChunk{{Data: []byte("pong")}},
				}).toPlan(context.Background(), "POST", server)
				r, err := cl.Do(p)
				require.NotNil(t, r)
				assert.NoError(t, err)
				assert.NoError(t, r.Err)
				assert.Same(t, p, r.Plan)
				assert.Equal(t, -1, r.Index)
				assert.Equal(t, 200, r.StatusCode())
				assert.Equal(t, []byte("pong"), r.Body)
				assert.True(t, r.Started())
				assert.True(t, r.Ended())
				assert.NotNil(t, r.Request)
				assert.NotNil(t, r.Response)
			})
		}
	})
	t.Run("transport error", func(t *testing.T) {
		cl := &Client{}
		p, err := request.NewPlan("GET", "http://"+unusedAddr(t), nil)
		require.NoError(t, err)
		r, err := cl.Do(p)
		require.NotNil(t, r)
		require.Error(t, err)
		assert.Same(t, err, r.Err)
		var urlErr *url.Error
		require.ErrorAs(t, err, &urlErr)
		assert.Nil(t, r.Response)
		assert.Nil(t, r.Body)
	})
	t.Run("plan timeout", func(t *testing.T) {
		cl := &Client{
			HTTPDoer:      httpServer.Client(),
			TimeoutPolicy: timeout.Fixed(5 * time.Second),
		}
		p := (&serverInstruction{
			StatusCode:  200,
			HeaderPause: 2 * time.Second,
		}).toPlan(context.Background(), "POST", httpServer)
		p.Timeout = 30 * time.Millisecond
		start := time.Now()
		r, err := cl.Do(p)
		require.NotNil(t, r)
		require.Error(t, err)
		assert.True(t, r.Timeout())
		assert.Less(t, time.Since(start), time.Second, "plan timeout should win over the policy")
	})
	t.Run("policy timeout", func(t *testing.T) {
		cl := &Client{
			HTTPDoer:      httpServer.Client(),
			TimeoutPolicy: timeout.Fixed(30 * time.Millisecond),
		}
		p := (&serverInstruction{
			StatusCode:  200,
			HeaderPause: 2 * time.Second,
		}).toPlan(context.Background(), "POST", httpServer)
		r, err := cl.Do(p)
		require.NotNil(t, r)
		require.Error(t, err)
		assert.True(t, r.Timeout())
	})
	t.Run("body read error", func(t *testing.T) {
		// Headers arrive immediately but the body stalls past the
		// timeout, so the failure happens while buffering: the Result
		// keeps the response but has no body.
		cl := &Client{HTTPDoer: httpServer.Client()}
		p := (&serverInstruction{
			StatusCode: 200,
			Body: []bodyChunk{
				{Pause: 2 * time.Second, Data: []byte("too late")},
			},
		}).toPlan(context.Background(), "POST", httpServer)
		p.Timeout = 100 * time.Millisecond
		r, err := cl.Do(p)
		require.NotNil(t, r)
		require.Error(t, err)
		assert.Same(t, err, r.Err)
		var urlErr *url.Error
		assert.ErrorAs(t, err, &urlErr)
		assert.NotNil(t, r.Response)
		assert.Nil(t, r.Body)
		assert.True(t, r.Timeout())
	})
	t.Run("plan context cancel", func(t *testing.T) {
		ctx, cancel := context.WithCancel(context.Background())
		cl := &Client{HTTPDoer: httpServer.Client()}
		p := (&serverInstruction{
			StatusCode:  200,
			HeaderPause: 2 * time.Second,
		}).toPlan(ctx, "POST", httpServer)
		go func() {
			time.Sleep(30 * time.Millisecond)
			cancel()
		}()
		r, err := cl.Do(p)
		require.NotNil(t, r)
		require.Error(t, err)
		assert.ErrorIs(t, err, context.Canceled)
	})
}

func TestClient_HTTP2(t *testing.T) {
	// Drive the HTTP/2 test server through an explicit http2.Transport
	// rather than the server's own pre-configured client.
	pool := x509.NewCertPool()
	pool.AddCert(http2Server.Certificate())
	cl := &Client{
		HTTPDoer: &http.Client{
			Transport: &http2.Transport{
				TLSClientConfig: &tls.Config{RootCAs: pool},
			},
		},
	}
	plans := make([]*request.Plan, 3)
	for j := range plans {
		plans[j] = (&serverInstruction{
			StatusCode: 200,
			Body:       []bodyChunk{{Data: []byte("h2")}},
		}).toPlan(context.Background(), "POST", http2Server)
	}
	results := cl.Collect(plans, Size(2))
	require.Len(t, results, 3)
	for j, r := range results {
		require.NoError(t, r.Err, "slot %d", j)
		require.NotNil(t, r.Response, "slot %d", j)
		assert.Equal(t, "HTTP/2.0", r.Response.Proto, "slot %d", j)
		assert.Equal(t, []byte("h2"), r.Body, "slot %d", j)
	}
}

func TestClient_Logger(t *testing.T) {
	var buf bytes.Buffer
	logger := zerolog.New(&buf)
	cl := &Client{
		HTTPDoer: httpServer.Client(),
		Logger:   &logger,
	}
	good := (&serverInstruction{StatusCode: 200}).toPlan(context.Background(), "POST", httpServer)
	bad, err := request.NewPlan("GET", "http://"+unusedAddr(t), nil)
	require.NoError(t, err)
	results := cl.Collect([]*request.Plan{good, bad})
	require.Len(t, results, 2)
	out := buf.String()
	assert.Contains(t, out, "batch start")
	assert.Contains(t, out, "request complete")
	assert.Contains(t, out, "request failed")
	assert.Contains(t, out, "batch complete")
	for _, line := range strings.Split(strings.TrimSpace(out), "\n") {
		assert.True(t, strings.HasPrefix(line, "{"), "structured output expected: %s", line)
	}
}

func TestClient_CloseIdleConnections(t *testing.T) {
	t.Run("forwards when supported", func(t *testing.T) {
		m := &mockDoerWithIdle{}
		m.Test(t)
		m.On("CloseIdleConnections").Once()
		cl := &Client{HTTPDoer: m}
		cl.CloseIdleConnections()
		m.AssertExpectations(t)
	})
	t.Run("no-op when not supported", func(t *testing.T) {
		cl := &Client{HTTPDoer: &bareDoer{}}
		assert.NotPanics(t, func() {
			cl.CloseIdleConnections()
		})
	})
	t.Run("nil doer uses default client", func(t *testing.T) {
		cl := &Client{}
		assert.NotPanics(t, func() {
			cl.CloseIdleConnections()
		})
	})
}

func TestClient_Interfaces(t *testing.T) {
	cl := &Client{HTTPDoer: httpServer.Client()}
	var _ Doer = cl
	var _ Collector = cl
	var _ Streamer = cl
	var _ IdleCloser = cl
	var ex Executor = cl
	p := (&serverInstruction{StatusCode: 200}).toPlan(context.Background(), "POST", httpServer)
	n := 0
	for r := range ex.Stream(slices.Values([]*request.Plan{p})) {
		assert.NoError(t, r.Err)
		n++
	}
	assert.Equal(t, 1, n)
}

type mockDoerWithIdle struct {
	mock.Mock
}

func (m *mockDoerWithIdle) Do(r *http.Request) (*http.Response, error) {
	args := m.Called(r)
	resp, _ := args.Get(0).(*http.Response)
	return resp, args.Error(1)
}

func (m *mockDoerWithIdle) CloseIdleConnections() {
	m.Called()
}

type bareDoer struct{}

func (d *bareDoer) Do(_ *http.Request) (*http.Response, error) {
	return nil, nil
}
