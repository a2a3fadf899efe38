// Copyright 2025 The packetd Authors
// Licensed under the Apache License, Version 2.0 (the "License");
// you may not use this file except in compliance with the License.
// You may obtain a copy of the License at
//
// http://www.apache.org/licenses/LICENSE-2.0
//
// Unless required by applicable law or agreed to in writing, software
// distributed under the License is distributed on an "AS IS" BASIS,
// WITHOUT WARRANTIES OR CONDITIONS OF ANY KIND, either express or implied.
// See the License for the specific language governing permissions and
// limitations under the License.

package amqp

import (
	"errors"
	"testing"

	"github.com/stretchr/testify/assert"
)

// TestDeferredFiresOnce: a deferred fires at most once, whichever
// terminal state comes first.
func TestDeferredFiresOnce(t *testing.T) {
	d := NewDeferred()
	n := 0
	d.OnSuccess(func() { n++ })
	d.Resolve()
	d.Resolve()
	d.Fail(errors.New("too late"))
	assert.Equal(t, 1, n)
}

// TestDeferredCallbackOrder checks the firing order: generic success,
// chained successor, then finalize.
func TestDeferredCallbackOrder(t *testing.T) {
	var order []string

	next := NewDeferred().OnSuccess(func() { order = append(order, "next") })
	d := NewDeferred()
	d.OnSuccess(func() { order = append(order, "success") })
	d.Chain(next)
	d.OnFinalize(func() { order = append(order, "finalize") })

	d.Resolve()
	assert.Equal(t, []string{"success", "next", "finalize"}, order)
}

func TestQueueDeferredTypeSpecificCallbackFiresBeforeGeneric(t *testing.T) {
	var order []string
	d := NewQueueDeferred()
	d.OnQueue(func(QueueResult) { order = append(order, "queue") })
	d.OnSuccess(func() { order = append(order, "success") })
	d.resolveQueue(QueueResult{Name: "q"})
	assert.Equal(t, []string{"queue", "success"}, order)
}

func TestDeferredErrorOrder(t *testing.T) {
	var order []string
	d := NewDeferred()
	d.OnError(func(error) { order = append(order, "error") })
	d.OnFinalize(func() { order = append(order, "finalize") })
	d.Fail(errors.New("boom"))
	assert.Equal(t, []string{"error", "finalize"}, order)
}

func TestConfirmDeferredNackIsFailure(t *testing.T) {
	cf := NewConfirmDeferred(1)
	var nacked bool
	cf.OnNack(func() { nacked = true })
	var errd error
	cf.OnError(func(err error) { errd = err })

	cf.resolveNack()

	assert.True(t, nacked)
	assert.Error(t, errd)
	assert.True(t, cf.Fired())
}
