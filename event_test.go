// Copyright 2026 The preq Authors. All rights reserved.
// Use of this source code is governed by an MIT-style
// license that can be found in the LICENSE file.

package preq

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestEvents(t *testing.T) {
	assert.Len(t, eventNames, numEvents)
	assert.Len(t, Events(), numEvents)
	events := Events()
	assert.Equal(t, BeforeBatchStart, events[BeforeBatchStart])
	assert.Equal(t, BeforeSend, events[BeforeSend])
	assert.Equal(t, BeforeReadBody, events[BeforeReadBody])
	assert.Equal(t, AfterSend, events[AfterSend])
	assert.Equal(t, AfterBatchEnd, events[AfterBatchEnd])
}

func TestEvent_Name(t *testing.T) {
	assert.Equal(t, "BeforeBatchStart", BeforeBatchStart.Name())
	assert.Equal(t, "BeforeSend", BeforeSend.Name())
	assert.Equal(t, "BeforeReadBody", BeforeReadBody.Name())
	assert.Equal(t, "AfterSend", AfterSend.Name())
	assert.Equal(t, "AfterBatchEnd", AfterBatchEnd.Name())
}
