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

// deferred.go implements the user-facing promise-like handles returned by
// every Channel operation: one generic Deferred carrying
// success/error/finalize callbacks plus a successor pointer, and a typed
// wrapper struct per result shape (queue-declare, consume, get, cancel,
// delete, publisher-confirm) that installs its own type-specific callback
// ahead of the generic one.
package amqp

import "github.com/goamqp/amqp/internal/rescue"

// Deferred is a single-assignment outcome: it fires at most once, either
// via Resolve (success) or Fail (error). On success the generic success
// callback runs, then the chained successor (if any), then the finalize
// callback; on failure the error callback runs, then finalize.
type Deferred struct {
	onSuccess  func()
	onError    func(err error)
	onFinalize func()
	next       *Deferred

	fired bool
}

// NewDeferred returns a fresh, unfired Deferred.
func NewDeferred() *Deferred { return &Deferred{} }

// OnSuccess installs the generic success callback. Returns the receiver for
// fluent chaining.
func (d *Deferred) OnSuccess(fn func()) *Deferred {
	d.onSuccess = fn
	return d
}

// OnError installs the error callback.
func (d *Deferred) OnError(fn func(error)) *Deferred {
	d.onError = fn
	return d
}

// OnFinalize installs the callback that runs once after either terminal
// resolution.
func (d *Deferred) OnFinalize(fn func()) *Deferred {
	d.onFinalize = fn
	return d
}

// Chain installs next as the successor fired immediately after this
// Deferred's success callback, before finalize.
func (d *Deferred) Chain(next *Deferred) *Deferred {
	d.next = next
	return d
}

// Resolve fires the Deferred as successful. Safe to call at most once; a
// second call is a no-op, matching "a deferred fires at most once."
func (d *Deferred) Resolve() {
	if d.fired {
		return
	}
	d.fired = true
	if d.onSuccess != nil {
		rescue.Call(d.onSuccess)
	}
	if d.next != nil {
		d.next.Resolve()
	}
	if d.onFinalize != nil {
		rescue.Call(d.onFinalize)
	}
}

// Fail fires the Deferred as failed with err.
func (d *Deferred) Fail(err error) {
	if d.fired {
		return
	}
	d.fired = true
	if d.onError != nil {
		rescue.Call(func() { d.onError(err) })
	}
	if d.onFinalize != nil {
		rescue.Call(d.onFinalize)
	}
}

// Fired reports whether Resolve or Fail has already run.
func (d *Deferred) Fired() bool { return d.fired }

// QueueResult carries the three values a successful queue.declare returns.
type QueueResult struct {
	Name          string
	MessageCount  uint32
	ConsumerCount uint32
}

// QueueDeferred wraps Deferred with a queue-declare-shaped success payload.
type QueueDeferred struct {
	*Deferred
	onQueue func(QueueResult)
}

func NewQueueDeferred() *QueueDeferred {
	return &QueueDeferred{Deferred: NewDeferred()}
}

// OnQueue installs the type-specific callback, fired before the generic
// success callback.
func (d *QueueDeferred) OnQueue(fn func(QueueResult)) *QueueDeferred {
	d.onQueue = fn
	return d
}

func (d *QueueDeferred) resolveQueue(r QueueResult) {
	if d.onQueue != nil {
		rescue.Call(func() { d.onQueue(r) })
	}
	d.Resolve()
}

// ConsumeDeferred wraps Deferred for basic.consume: the one-shot result is
// the consumer tag, while OnDelivery installs the long-lived per-message
// callback invoked for every subsequent basic.deliver on that tag.
type ConsumeDeferred struct {
	*Deferred
	onConsumeOk func(tag string)
	onDelivery  func(Delivery)
}

func NewConsumeDeferred() *ConsumeDeferred {
	return &ConsumeDeferred{Deferred: NewDeferred()}
}

func (d *ConsumeDeferred) OnConsumeOk(fn func(tag string)) *ConsumeDeferred {
	d.onConsumeOk = fn
	return d
}

// OnDelivery installs the per-message callback. Unlike the one-shot
// success/error callbacks, this one fires repeatedly for the consumer's
// lifetime.
func (d *ConsumeDeferred) OnDelivery(fn func(Delivery)) *ConsumeDeferred {
	d.onDelivery = fn
	return d
}

func (d *ConsumeDeferred) resolveConsumeOk(tag string) {
	if d.onConsumeOk != nil {
		rescue.Call(func() { d.onConsumeOk(tag) })
	}
	d.Resolve()
}

func (d *ConsumeDeferred) deliver(m Delivery) {
	if d.onDelivery != nil {
		rescue.Call(func() { d.onDelivery(m) })
	}
}

// GetResult carries the outcome of basic.get: either a message (Ok true) or
// an empty-queue signal (Ok false).
type GetResult struct {
	Ok      bool
	Message Delivery
}

// GetDeferred wraps Deferred for basic.get.
type GetDeferred struct {
	*Deferred
	onGet func(GetResult)
}

func NewGetDeferred() *GetDeferred { return &GetDeferred{Deferred: NewDeferred()} }

func (d *GetDeferred) OnGet(fn func(GetResult)) *GetDeferred {
	d.onGet = fn
	return d
}

func (d *GetDeferred) resolveGet(r GetResult) {
	if d.onGet != nil {
		rescue.Call(func() { d.onGet(r) })
	}
	d.Resolve()
}

// CancelDeferred wraps Deferred for basic.cancel, carrying the canceled
// consumer tag.
type CancelDeferred struct {
	*Deferred
	onCancel func(tag string)
}

func NewCancelDeferred() *CancelDeferred { return &CancelDeferred{Deferred: NewDeferred()} }

func (d *CancelDeferred) OnCancel(fn func(tag string)) *CancelDeferred {
	d.onCancel = fn
	return d
}

func (d *CancelDeferred) resolveCancel(tag string) {
	if d.onCancel != nil {
		rescue.Call(func() { d.onCancel(tag) })
	}
	d.Resolve()
}

// DeleteDeferred wraps Deferred for queue.purge/queue.delete, carrying
// the number of messages the broker removed from the queue.
type DeleteDeferred struct {
	*Deferred
	onDelete func(messageCount uint32)
}

func NewDeleteDeferred() *DeleteDeferred { return &DeleteDeferred{Deferred: NewDeferred()} }

func (d *DeleteDeferred) OnDelete(fn func(messageCount uint32)) *DeleteDeferred {
	d.onDelete = fn
	return d
}

func (d *DeleteDeferred) resolveDelete(n uint32) {
	if d.onDelete != nil {
		rescue.Call(func() { d.onDelete(n) })
	}
	d.Resolve()
}

// ConfirmDeferred wraps Deferred for one outstanding publish under
// publisher confirms: it resolves with ack or fails with nack once the
// broker settles the publish's sequence number.
type ConfirmDeferred struct {
	*Deferred
	seq    uint64
	onAck  func()
	onNack func()
}

func NewConfirmDeferred(seq uint64) *ConfirmDeferred {
	return &ConfirmDeferred{Deferred: NewDeferred(), seq: seq}
}

func (d *ConfirmDeferred) OnAck(fn func()) *ConfirmDeferred {
	d.onAck = fn
	return d
}

func (d *ConfirmDeferred) OnNack(fn func()) *ConfirmDeferred {
	d.onNack = fn
	return d
}

func (d *ConfirmDeferred) resolveAck() {
	if d.onAck != nil {
		rescue.Call(d.onAck)
	}
	d.Resolve()
}

func (d *ConfirmDeferred) resolveNack() {
	if d.onNack != nil {
		rescue.Call(d.onNack)
	}
	d.Fail(newErrf(ErrBroker, "message nacked by broker"))
}
