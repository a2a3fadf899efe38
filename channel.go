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

// channel.go implements the channel engine: synchronous request
// pipelining with expected-reply matching, content reassembly, the
// consumer registry, and publisher-confirm tracking.
package amqp

import (
	"context"
	"sort"

	"github.com/google/uuid"

	"github.com/goamqp/amqp/field"
	"github.com/goamqp/amqp/internal/metrics"
	"github.com/goamqp/amqp/internal/tracing"
	"github.com/goamqp/amqp/wire"
)

type chanState uint8

const (
	chanOpening chanState = iota
	chanOpen
	chanClosing
	chanClosed
)

// syncOp is one queued synchronous request: the encode-and-send thunk plus
// the reply this channel must see next. getReplyWildcard marks basic.get,
// whose reply is one of two method ids rather than a single one.
type syncOp struct {
	send                      func() error
	expectClass, expectMethod uint16
	getReplyWildcard          bool
	onReply                   func(m wire.Method)
	onFail                    func(err error)
}

// Channel is one independently addressed session multiplexed over an AMQP
// connection. One Channel instance backs one allocated channel id for its
// entire lifetime; closing it releases the id back to the owning
// Connection.
type Channel struct {
	conn  *Connection
	id    uint16
	state chanState

	queue    []*syncOp
	inFlight *syncOp

	consumers  map[string]*ConsumeDeferred
	pendingGet *GetDeferred

	confirmMode    bool
	txMode         bool
	nextPublishSeq uint64
	confirms       map[uint64]*ConfirmDeferred

	closeOk *Deferred

	partial *partialMessage

	flowActive bool

	OnClose             func(err error)
	OnReturn            func(d Delivery, replyCode uint16, replyText string)
	OnFlow              func(active bool)
	OnConsumerCancelled func(tag string)
}

func newChannel(conn *Connection, id uint16) *Channel {
	return &Channel{
		conn:           conn,
		id:             id,
		state:          chanOpening,
		consumers:      make(map[string]*ConsumeDeferred),
		confirms:       make(map[uint64]*ConfirmDeferred),
		flowActive:     true,
		nextPublishSeq: 1,
	}
}

// ID returns the allocated AMQP channel number.
func (ch *Channel) ID() uint16 { return ch.id }

// IsOpen reports whether channel.open-ok has been received and the channel
// has not since closed.
func (ch *Channel) IsOpen() bool { return ch.state == chanOpen }

func (ch *Channel) enqueueSync(op *syncOp) error {
	if ch.state == chanClosed || ch.state == chanClosing {
		if op.onFail != nil {
			rescueCall(func() { op.onFail(ErrChannelClosed) })
		}
		return ErrChannelClosed
	}
	ch.queue = append(ch.queue, op)
	return ch.pump()
}

func (ch *Channel) pump() error {
	if ch.inFlight != nil || len(ch.queue) == 0 {
		return nil
	}
	op := ch.queue[0]
	ch.queue = ch.queue[1:]
	ch.inFlight = op
	if err := op.send(); err != nil {
		ch.inFlight = nil
		if op.onFail != nil {
			rescueCall(func() { op.onFail(err) })
		}
		return err
	}
	return nil
}

func (ch *Channel) handleFrame(f wire.Frame) error {
	if ch.state == chanClosing && f.Type != wire.FrameMethod {
		// Content frames already in flight when channel.close went out are
		// discarded until close-ok arrives.
		return nil
	}
	switch f.Type {
	case wire.FrameMethod:
		m, err := wire.DecodeMethodFrame(f.Payload)
		if err != nil {
			return ch.protocolError("undecodable method on channel %d: %v", ch.id, err)
		}
		return ch.handleMethod(m)
	case wire.FrameHeader:
		return ch.handleHeader(f.Payload)
	case wire.FrameBody:
		return ch.handleBody(f.Payload)
	default:
		return ch.protocolError("unexpected frame type %d on channel %d", f.Type, ch.id)
	}
}

func (ch *Channel) handleMethod(m wire.Method) error {
	if ch.state == chanClosing {
		switch mm := m.(type) {
		case wire.ChannelCloseOk:
			ch.finishClose(nil)
		case wire.ChannelClose:
			// Both ends closed simultaneously; each replies close-ok.
			_ = ch.conn.sendMethod(ch.id, wire.ChannelCloseOk{})
			ch.finishClose(brokerErr(mm.ReplyCode, mm.ReplyText))
		}
		return nil
	}
	if ch.partial != nil {
		return ch.protocolError("channel %d: method frame arrived mid content assembly", ch.id)
	}
	switch mm := m.(type) {
	case wire.ChannelClose:
		return ch.onBrokerClose(mm)
	case wire.ChannelFlow:
		ch.flowActive = mm.Active
		if ch.OnFlow != nil {
			rescueCall(func() { ch.OnFlow(mm.Active) })
		}
		return ch.conn.sendMethod(ch.id, wire.ChannelFlowOk{Active: mm.Active})
	case wire.BasicDeliver:
		ch.partial = &partialMessage{
			kind:        contentDeliver,
			consumerTag: mm.ConsumerTag,
			deliveryTag: mm.DeliveryTag,
			redelivered: mm.Redelivered,
			exchange:    mm.Exchange,
			routingKey:  mm.RoutingKey,
		}
		return nil
	case wire.BasicReturn:
		ch.partial = &partialMessage{
			kind:            contentReturn,
			returnReplyCode: mm.ReplyCode,
			returnReplyText: mm.ReplyText,
			exchange:        mm.Exchange,
			routingKey:      mm.RoutingKey,
		}
		return nil
	case wire.BasicGetOk:
		return ch.onGetOk(mm)
	case wire.BasicGetEmpty:
		return ch.onGetEmpty()
	case wire.BasicAck:
		ch.resolveConfirms(mm.DeliveryTag, mm.Multiple, true)
		return nil
	case wire.BasicNack:
		ch.resolveConfirms(mm.DeliveryTag, mm.Multiple, false)
		return nil
	case wire.BasicCancel:
		return ch.onBrokerCancel(mm.ConsumerTag, mm.NoWait)
	default:
		return ch.matchSync(m)
	}
}

func (ch *Channel) matchSync(m wire.Method) error {
	op := ch.inFlight
	if op == nil || op.getReplyWildcard || m.ClassID() != op.expectClass || m.MethodID() != op.expectMethod {
		return ch.protocolError("channel %d: unexpected reply class %d method %d", ch.id, m.ClassID(), m.MethodID())
	}
	ch.inFlight = nil
	if op.onReply != nil {
		op.onReply(m)
	}
	return ch.pump()
}

func (ch *Channel) isPendingGet() bool {
	return ch.inFlight != nil && ch.inFlight.getReplyWildcard
}

func (ch *Channel) onGetOk(mm wire.BasicGetOk) error {
	if !ch.isPendingGet() {
		return ch.protocolError("channel %d: unsolicited basic.get-ok", ch.id)
	}
	ch.partial = &partialMessage{
		kind:        contentGetOk,
		deliveryTag: mm.DeliveryTag,
		redelivered: mm.Redelivered,
		exchange:    mm.Exchange,
		routingKey:  mm.RoutingKey,
	}
	ch.inFlight = nil
	return ch.pump()
}

func (ch *Channel) onGetEmpty() error {
	if !ch.isPendingGet() {
		return ch.protocolError("channel %d: unsolicited basic.get-empty", ch.id)
	}
	ch.inFlight = nil
	if g := ch.pendingGet; g != nil {
		ch.pendingGet = nil
		g.resolveGet(GetResult{Ok: false})
	}
	return ch.pump()
}

func (ch *Channel) onBrokerCancel(tag string, noWait bool) error {
	if _, ok := ch.consumers[tag]; ok {
		delete(ch.consumers, tag)
		metrics.ConsumersActive.Dec()
	}
	if ch.OnConsumerCancelled != nil {
		rescueCall(func() { ch.OnConsumerCancelled(tag) })
	}
	if noWait {
		return nil
	}
	return ch.conn.sendMethod(ch.id, wire.BasicCancelOk{ConsumerTag: tag})
}

func (ch *Channel) onBrokerClose(mm wire.ChannelClose) error {
	err := brokerErr(mm.ReplyCode, mm.ReplyText)
	_ = ch.conn.sendMethod(ch.id, wire.ChannelCloseOk{})
	ch.closeLocal(err)
	return nil
}

// closeLocal tears the channel down (broker-initiated close or a local
// protocol fault) without sending channel.close: the caller already has,
// or the connection as a whole is already failing.
func (ch *Channel) closeLocal(err error) {
	if ch.state == chanClosed {
		return
	}
	ch.state = chanClosed
	ch.failPending(err)
	ch.conn.releaseChannel(ch.id)
	if ch.OnClose != nil {
		rescueCall(func() { ch.OnClose(err) })
	}
}

func (ch *Channel) failPending(err error) int {
	n := 0
	if ch.inFlight != nil {
		n++
		if ch.inFlight.onFail != nil {
			rescueCall(func() { ch.inFlight.onFail(err) })
		}
		ch.inFlight = nil
	}
	for _, op := range ch.queue {
		n++
		if op.onFail != nil {
			rescueCall(func() { op.onFail(err) })
		}
	}
	ch.queue = nil
	if ch.pendingGet != nil {
		n++
		ch.pendingGet.Fail(err)
		ch.pendingGet = nil
	}
	for seq, cf := range ch.confirms {
		n++
		cf.Fail(err)
		delete(ch.confirms, seq)
	}
	if ch.closeOk != nil {
		n++
		ch.closeOk.Fail(err)
		ch.closeOk = nil
	}
	if len(ch.consumers) > 0 {
		metrics.ConsumersActive.Sub(float64(len(ch.consumers)))
		ch.consumers = make(map[string]*ConsumeDeferred)
	}
	return n
}

// fault is called by the owning Connection when it tears down: unlike
// closeLocal it does not release the channel id (the connection is
// discarding the whole map). It fires OnClose once with err.
func (ch *Channel) fault(err error) error {
	if ch.state == chanClosed {
		return nil
	}
	ch.state = chanClosed
	n := ch.failPending(err)
	if ch.OnClose != nil {
		rescueCall(func() { ch.OnClose(err) })
	}
	if n > 0 {
		return newErrf(ErrClosed, "channel %d: %d pending operations aborted", ch.id, n)
	}
	return nil
}

func (ch *Channel) protocolError(format string, args ...any) error {
	err := newErrf(ErrProtocol, format, args...)
	ch.conn.fail(err)
	return err
}

func (ch *Channel) handleHeader(payload []byte) error {
	if ch.partial == nil {
		return ch.protocolError("channel %d: content header without a preceding method", ch.id)
	}
	bodySize, props, err := wire.DecodeContentHeader(payload)
	if err != nil {
		return ch.protocolError("channel %d: %v", ch.id, err)
	}
	ch.partial.bodySize = bodySize
	ch.partial.props = props
	if ch.partial.complete() {
		return ch.completeContent()
	}
	return nil
}

func (ch *Channel) handleBody(payload []byte) error {
	if ch.partial == nil {
		return ch.protocolError("channel %d: body frame without a preceding header", ch.id)
	}
	ch.partial.body = append(ch.partial.body, payload...)
	if uint64(len(ch.partial.body)) > ch.partial.bodySize {
		return ch.protocolError("channel %d: body frame overruns declared content length", ch.id)
	}
	if ch.partial.complete() {
		return ch.completeContent()
	}
	return nil
}

func (ch *Channel) completeContent() error {
	p := ch.partial
	ch.partial = nil

	switch p.kind {
	case contentDeliver:
		if cd, ok := ch.consumers[p.consumerTag]; ok {
			cd.deliver(Delivery{
				Message:     Message{Envelope: p.envelope(), Body: p.body},
				ConsumerTag: p.consumerTag,
				DeliveryTag: p.deliveryTag,
				Redelivered: p.redelivered,
				Exchange:    p.exchange,
				RoutingKey:  p.routingKey,
			})
		}
	case contentReturn:
		ch.conn.log.Debugf("channel %d: message returned code=%d text=%q exchange=%q key=%q envelope=%s",
			ch.id, p.returnReplyCode, p.returnReplyText, p.exchange, p.routingKey, p.envelope().DebugJSON())
		if ch.OnReturn != nil {
			d := Delivery{
				Message:    Message{Envelope: p.envelope(), Body: p.body},
				Exchange:   p.exchange,
				RoutingKey: p.routingKey,
			}
			rescueCall(func() { ch.OnReturn(d, p.returnReplyCode, p.returnReplyText) })
		}
	case contentGetOk:
		if g := ch.pendingGet; g != nil {
			ch.pendingGet = nil
			g.resolveGet(GetResult{
				Ok: true,
				Message: Delivery{
					Message:     Message{Envelope: p.envelope(), Body: p.body},
					DeliveryTag: p.deliveryTag,
					Redelivered: p.redelivered,
					Exchange:    p.exchange,
					RoutingKey:  p.routingKey,
				},
			})
		}
	}
	return nil
}

func (ch *Channel) resolveConfirms(tag uint64, multiple, ack bool) {
	resolve := func(cf *ConfirmDeferred) {
		if ack {
			cf.resolveAck()
			metrics.ConfirmsAcked.Inc()
		} else {
			cf.resolveNack()
			metrics.ConfirmsNacked.Inc()
		}
	}
	if !multiple {
		if cf, ok := ch.confirms[tag]; ok {
			delete(ch.confirms, tag)
			resolve(cf)
		}
		return
	}
	// Multiple-flag acks settle every outstanding sequence <= tag, and the
	// callbacks must fire in sequence order.
	seqs := make([]uint64, 0, len(ch.confirms))
	for seq := range ch.confirms {
		if seq <= tag {
			seqs = append(seqs, seq)
		}
	}
	sort.Slice(seqs, func(i, j int) bool { return seqs[i] < seqs[j] })
	for _, seq := range seqs {
		cf := ch.confirms[seq]
		delete(ch.confirms, seq)
		resolve(cf)
	}
}

// ExchangeDeclare declares an exchange. Flags: Passive, Durable,
// AutoDelete, Internal, NoWait. With NoWait, the declaration is fired and
// the Deferred resolves immediately without waiting for the broker's
// acknowledgement, per the no-wait semantics of the protocol.
func (ch *Channel) ExchangeDeclare(ctx context.Context, name, kind string, flags Flags, args field.Table) *Deferred {
	_, end := tracing.Start(ctx, "exchange.declare")
	d := NewDeferred()
	m := wire.ExchangeDeclare{
		Exchange: name, Type: kind,
		Passive: flags.Has(Passive), Durable: flags.Has(Durable), AutoDelete: flags.Has(AutoDelete),
		Internal: flags.Has(Internal), NoWait: flags.Has(NoWait), Arguments: args,
	}
	ch.runSync(d, flags.Has(NoWait), func() error { return ch.conn.sendMethod(ch.id, m) }, wire.ClassExchange, wire.MethodExchangeDeclareOk, func(wire.Method) { end(nil) })
	return d
}

// ExchangeDelete deletes an exchange. Flags: IfUnused, NoWait.
func (ch *Channel) ExchangeDelete(ctx context.Context, name string, flags Flags) *Deferred {
	_, end := tracing.Start(ctx, "exchange.delete")
	d := NewDeferred()
	m := wire.ExchangeDelete{Exchange: name, IfUnused: flags.Has(IfUnused), NoWait: flags.Has(NoWait)}
	ch.runSync(d, flags.Has(NoWait), func() error { return ch.conn.sendMethod(ch.id, m) }, wire.ClassExchange, wire.MethodExchangeDeleteOk, func(wire.Method) { end(nil) })
	return d
}

// ExchangeBind binds source to destination via routingKey. Flags: NoWait.
func (ch *Channel) ExchangeBind(ctx context.Context, destination, source, routingKey string, flags Flags, args field.Table) *Deferred {
	_, end := tracing.Start(ctx, "exchange.bind")
	d := NewDeferred()
	m := wire.ExchangeBind{Destination: destination, Source: source, RoutingKey: routingKey, NoWait: flags.Has(NoWait), Arguments: args}
	ch.runSync(d, flags.Has(NoWait), func() error { return ch.conn.sendMethod(ch.id, m) }, wire.ClassExchange, wire.MethodExchangeBindOk, func(wire.Method) { end(nil) })
	return d
}

// ExchangeUnbind removes a previously created exchange-to-exchange binding.
// Flags: NoWait.
func (ch *Channel) ExchangeUnbind(ctx context.Context, destination, source, routingKey string, flags Flags, args field.Table) *Deferred {
	_, end := tracing.Start(ctx, "exchange.unbind")
	d := NewDeferred()
	m := wire.ExchangeUnbind{Destination: destination, Source: source, RoutingKey: routingKey, NoWait: flags.Has(NoWait), Arguments: args}
	ch.runSync(d, flags.Has(NoWait), func() error { return ch.conn.sendMethod(ch.id, m) }, wire.ClassExchange, wire.MethodExchangeUnbindOk, func(wire.Method) { end(nil) })
	return d
}

// QueueDeclare declares a queue. Flags: Passive, Durable, Exclusive,
// AutoDelete, NoWait. The resulting QueueResult's Name echoes the
// broker-assigned name for anonymous (empty-name) declarations.
func (ch *Channel) QueueDeclare(ctx context.Context, name string, flags Flags, args field.Table) *QueueDeferred {
	_, end := tracing.Start(ctx, "queue.declare")
	d := NewQueueDeferred()
	m := wire.QueueDeclare{
		Queue:   name,
		Passive: flags.Has(Passive), Durable: flags.Has(Durable), Exclusive: flags.Has(Exclusive),
		AutoDelete: flags.Has(AutoDelete), NoWait: flags.Has(NoWait), Arguments: args,
	}
	send := func() error { return ch.conn.sendMethod(ch.id, m) }
	if flags.Has(NoWait) {
		if err := send(); err != nil {
			d.Fail(err)
			return d
		}
		end(nil)
		d.resolveQueue(QueueResult{Name: name})
		return d
	}
	ch.enqueueSync(&syncOp{
		send:         send,
		expectClass:  wire.ClassQueue,
		expectMethod: wire.MethodQueueDeclareOk,
		onReply: func(m wire.Method) {
			ok := m.(wire.QueueDeclareOk)
			end(nil)
			d.resolveQueue(QueueResult{Name: ok.Queue, MessageCount: ok.MessageCount, ConsumerCount: ok.ConsumerCount})
		},
		onFail: func(err error) { end(err); d.Fail(err) },
	})
	return d
}

// QueueBind binds queue to exchange via routingKey. Flags: NoWait.
func (ch *Channel) QueueBind(ctx context.Context, queue, exchange, routingKey string, flags Flags, args field.Table) *Deferred {
	_, end := tracing.Start(ctx, "queue.bind")
	d := NewDeferred()
	m := wire.QueueBind{Queue: queue, Exchange: exchange, RoutingKey: routingKey, NoWait: flags.Has(NoWait), Arguments: args}
	ch.runSync(d, flags.Has(NoWait), func() error { return ch.conn.sendMethod(ch.id, m) }, wire.ClassQueue, wire.MethodQueueBindOk, func(wire.Method) { end(nil) })
	return d
}

// QueueUnbind removes a queue-to-exchange binding. queue.unbind has no
// no-wait flag in the protocol; it always waits for queue.unbind-ok.
func (ch *Channel) QueueUnbind(ctx context.Context, queue, exchange, routingKey string, args field.Table) *Deferred {
	_, end := tracing.Start(ctx, "queue.unbind")
	d := NewDeferred()
	m := wire.QueueUnbind{Queue: queue, Exchange: exchange, RoutingKey: routingKey, Arguments: args}
	ch.runSync(d, false, func() error { return ch.conn.sendMethod(ch.id, m) }, wire.ClassQueue, wire.MethodQueueUnbindOk, func(wire.Method) { end(nil) })
	return d
}

// QueuePurge discards all ready messages on queue and reports how many
// were removed. Flags: NoWait.
func (ch *Channel) QueuePurge(ctx context.Context, queue string, flags Flags) *DeleteDeferred {
	_, end := tracing.Start(ctx, "queue.purge")
	d := NewDeleteDeferred()
	m := wire.QueuePurge{Queue: queue, NoWait: flags.Has(NoWait)}
	send := func() error { return ch.conn.sendMethod(ch.id, m) }
	if flags.Has(NoWait) {
		if err := send(); err != nil {
			d.Fail(err)
			return d
		}
		end(nil)
		d.resolveDelete(0)
		return d
	}
	ch.enqueueSync(&syncOp{
		send:         send,
		expectClass:  wire.ClassQueue,
		expectMethod: wire.MethodQueuePurgeOk,
		onReply: func(m wire.Method) {
			end(nil)
			d.resolveDelete(m.(wire.QueuePurgeOk).MessageCount)
		},
		onFail: func(err error) { end(err); d.Fail(err) },
	})
	return d
}

// QueueDelete deletes queue and reports how many messages it held. Flags:
// IfUnused, IfEmpty, NoWait.
func (ch *Channel) QueueDelete(ctx context.Context, queue string, flags Flags) *DeleteDeferred {
	_, end := tracing.Start(ctx, "queue.delete")
	d := NewDeleteDeferred()
	m := wire.QueueDelete{Queue: queue, IfUnused: flags.Has(IfUnused), IfEmpty: flags.Has(IfEmpty), NoWait: flags.Has(NoWait)}
	send := func() error { return ch.conn.sendMethod(ch.id, m) }
	if flags.Has(NoWait) {
		if err := send(); err != nil {
			d.Fail(err)
			return d
		}
		end(nil)
		d.resolveDelete(0)
		return d
	}
	ch.enqueueSync(&syncOp{
		send:         send,
		expectClass:  wire.ClassQueue,
		expectMethod: wire.MethodQueueDeleteOk,
		onReply: func(m wire.Method) {
			end(nil)
			d.resolveDelete(m.(wire.QueueDeleteOk).MessageCount)
		},
		onFail: func(err error) { end(err); d.Fail(err) },
	})
	return d
}

// Qos sets the channel's prefetch limits. Flags: Global.
func (ch *Channel) Qos(ctx context.Context, prefetchSize uint32, prefetchCount uint16, flags Flags) *Deferred {
	_, end := tracing.Start(ctx, "basic.qos")
	d := NewDeferred()
	m := wire.BasicQos{PrefetchSize: prefetchSize, PrefetchCount: prefetchCount, Global: flags.Has(Global)}
	ch.runSync(d, false, func() error { return ch.conn.sendMethod(ch.id, m) }, wire.ClassBasic, wire.MethodBasicQosOk, func(wire.Method) { end(nil) })
	return d
}

// Consume registers a consumer on queue. Flags: NoLocal, NoAck, Exclusive,
// NoWait. An empty consumerTag is assigned a fresh UUID, matching the
// fallback the broker itself would otherwise apply.
func (ch *Channel) Consume(ctx context.Context, queue, consumerTag string, flags Flags, args field.Table) *ConsumeDeferred {
	_, end := tracing.Start(ctx, "basic.consume")
	if consumerTag == "" {
		consumerTag = uuid.NewString()
	}
	d := NewConsumeDeferred()
	m := wire.BasicConsume{
		Queue: queue, ConsumerTag: consumerTag,
		NoLocal: flags.Has(NoLocal), NoAck: flags.Has(NoAck), Exclusive: flags.Has(Exclusive),
		NoWait: flags.Has(NoWait), Arguments: args,
	}
	send := func() error { return ch.conn.sendMethod(ch.id, m) }
	register := func(tag string) {
		ch.consumers[tag] = d
		metrics.ConsumersActive.Inc()
	}
	if flags.Has(NoWait) {
		if err := send(); err != nil {
			d.Fail(err)
			return d
		}
		register(consumerTag)
		end(nil)
		d.resolveConsumeOk(consumerTag)
		return d
	}
	ch.enqueueSync(&syncOp{
		send:         send,
		expectClass:  wire.ClassBasic,
		expectMethod: wire.MethodBasicConsumeOk,
		onReply: func(m wire.Method) {
			tag := m.(wire.BasicConsumeOk).ConsumerTag
			register(tag)
			end(nil)
			d.resolveConsumeOk(tag)
		},
		onFail: func(err error) { end(err); d.Fail(err) },
	})
	return d
}

// Cancel unregisters a consumer. Flags: NoWait.
func (ch *Channel) Cancel(ctx context.Context, consumerTag string, flags Flags) *CancelDeferred {
	_, end := tracing.Start(ctx, "basic.cancel")
	d := NewCancelDeferred()
	m := wire.BasicCancel{ConsumerTag: consumerTag, NoWait: flags.Has(NoWait)}
	send := func() error { return ch.conn.sendMethod(ch.id, m) }
	unregister := func(tag string) {
		if _, ok := ch.consumers[tag]; ok {
			delete(ch.consumers, tag)
			metrics.ConsumersActive.Dec()
		}
	}
	if flags.Has(NoWait) {
		if err := send(); err != nil {
			d.Fail(err)
			return d
		}
		unregister(consumerTag)
		end(nil)
		d.resolveCancel(consumerTag)
		return d
	}
	ch.enqueueSync(&syncOp{
		send:         send,
		expectClass:  wire.ClassBasic,
		expectMethod: wire.MethodBasicCancelOk,
		onReply: func(m wire.Method) {
			tag := m.(wire.BasicCancelOk).ConsumerTag
			unregister(tag)
			end(nil)
			d.resolveCancel(tag)
		},
		onFail: func(err error) { end(err); d.Fail(err) },
	})
	return d
}

// Get issues a one-shot basic.get, bypassing the consumer mechanism
// entirely. Flags: NoAck.
func (ch *Channel) Get(ctx context.Context, queue string, flags Flags) *GetDeferred {
	_, end := tracing.Start(ctx, "basic.get")
	d := NewGetDeferred()
	m := wire.BasicGet{Queue: queue, NoAck: flags.Has(NoAck)}
	ch.enqueueSync(&syncOp{
		send:             func() error { ch.pendingGet = d; return ch.conn.sendMethod(ch.id, m) },
		expectClass:      wire.ClassBasic,
		getReplyWildcard: true,
		onFail:           func(err error) { end(err); ch.pendingGet = nil; d.Fail(err) },
	})
	d.OnFinalize(func() { end(nil) })
	return d
}

// Publish sends a message. Flags: Mandatory, Immediate. Under publisher
// confirms it returns a non-nil ConfirmDeferred that resolves once the
// broker acks or nacks this publish; outside confirm mode it returns nil.
func (ch *Channel) Publish(ctx context.Context, exchange, routingKey string, flags Flags, envelope Envelope, body []byte) (*ConfirmDeferred, error) {
	_, end := tracing.Start(ctx, "basic.publish")
	if ch.state != chanOpen {
		end(ErrChannelClosed)
		return nil, ErrChannelClosed
	}
	if err := ch.conn.sendMethod(ch.id, wire.BasicPublish{Exchange: exchange, RoutingKey: routingKey, Mandatory: flags.Has(Mandatory), Immediate: flags.Has(Immediate)}); err != nil {
		end(err)
		return nil, err
	}
	if err := ch.sendContent(envelope.toWire(), body); err != nil {
		end(err)
		return nil, err
	}

	if !ch.confirmMode {
		end(nil)
		return nil, nil
	}
	seq := ch.nextPublishSeq
	ch.nextPublishSeq++
	cf := NewConfirmDeferred(seq)
	cf.OnFinalize(func() { end(nil) })
	ch.confirms[seq] = cf
	return cf, nil
}

func (ch *Channel) sendContent(props wire.Properties, body []byte) error {
	bodySize := uint64(len(body))
	if err := ch.conn.sendMethod0Header(ch.id, bodySize, props); err != nil {
		return err
	}
	if len(body) == 0 {
		return nil
	}

	chunk := int(ch.conn.frameMax)
	const headerOverhead = wire.HeaderSize + 1
	if chunk > headerOverhead {
		chunk -= headerOverhead
	} else {
		chunk = len(body)
	}

	for offset := 0; offset < len(body); offset += chunk {
		end := offset + chunk
		if end > len(body) {
			end = len(body)
		}
		if err := ch.conn.send(wire.Frame{Type: wire.FrameBody, Channel: ch.id, Payload: body[offset:end]}); err != nil {
			return err
		}
	}
	return nil
}

// Ack acknowledges one or more deliveries. Flags: Multiple. Asynchronous:
// no reply is expected from the broker.
func (ch *Channel) Ack(deliveryTag uint64, flags Flags) error {
	return ch.conn.sendMethod(ch.id, wire.BasicAck{DeliveryTag: deliveryTag, Multiple: flags.Has(Multiple)})
}

// Nack negatively acknowledges one or more deliveries. Flags: Multiple,
// Requeue.
func (ch *Channel) Nack(deliveryTag uint64, flags Flags) error {
	return ch.conn.sendMethod(ch.id, wire.BasicNack{DeliveryTag: deliveryTag, Multiple: flags.Has(Multiple), Requeue: flags.Has(Requeue)})
}

// Reject rejects a single delivery (the pre-confirms, single-message
// ancestor of Nack). Flags: Requeue.
func (ch *Channel) Reject(deliveryTag uint64, flags Flags) error {
	return ch.conn.sendMethod(ch.id, wire.BasicReject{DeliveryTag: deliveryTag, Requeue: flags.Has(Requeue)})
}

// RecoverAsync asks the broker to redeliver unacknowledged messages
// without waiting for a reply. Flags: Requeue.
func (ch *Channel) RecoverAsync(flags Flags) error {
	return ch.conn.sendMethod(ch.id, wire.BasicRecoverAsync{Requeue: flags.Has(Requeue)})
}

// Recover asks the broker to redeliver unacknowledged messages and waits
// for basic.recover-ok. Flags: Requeue.
func (ch *Channel) Recover(ctx context.Context, flags Flags) *Deferred {
	_, end := tracing.Start(ctx, "basic.recover")
	d := NewDeferred()
	m := wire.BasicRecover{Requeue: flags.Has(Requeue)}
	ch.runSync(d, false, func() error { return ch.conn.sendMethod(ch.id, m) }, wire.ClassBasic, wire.MethodBasicRecoverOk, func(wire.Method) { end(nil) })
	return d
}

// Confirm switches the channel into publisher-confirms mode.
func (ch *Channel) Confirm(ctx context.Context) *Deferred {
	_, end := tracing.Start(ctx, "confirm.select")
	d := NewDeferred()
	if ch.txMode {
		err := newErrf(ErrProtocol, "channel %d: confirm.select is mutually exclusive with tx mode", ch.id)
		end(err)
		d.Fail(err)
		return d
	}
	m := wire.ConfirmSelect{}
	ch.runSync(d, false, func() error { return ch.conn.sendMethod(ch.id, m) }, wire.ClassConfirm, wire.MethodConfirmSelectOk, func(wire.Method) {
		ch.confirmMode = true
		end(nil)
	})
	return d
}

// TxSelect switches the channel into transactional mode.
func (ch *Channel) TxSelect(ctx context.Context) *Deferred {
	_, end := tracing.Start(ctx, "tx.select")
	d := NewDeferred()
	if ch.confirmMode {
		err := newErrf(ErrProtocol, "channel %d: tx.select is mutually exclusive with confirm mode", ch.id)
		end(err)
		d.Fail(err)
		return d
	}
	ch.runSync(d, false, func() error { return ch.conn.sendMethod(ch.id, wire.TxSelect{}) }, wire.ClassTx, wire.MethodTxSelectOk, func(wire.Method) {
		ch.txMode = true
		end(nil)
	})
	return d
}

// TxCommit commits the current transaction.
func (ch *Channel) TxCommit(ctx context.Context) *Deferred {
	_, end := tracing.Start(ctx, "tx.commit")
	d := NewDeferred()
	ch.runSync(d, false, func() error { return ch.conn.sendMethod(ch.id, wire.TxCommit{}) }, wire.ClassTx, wire.MethodTxCommitOk, func(wire.Method) { end(nil) })
	return d
}

// TxRollback rolls back the current transaction.
func (ch *Channel) TxRollback(ctx context.Context) *Deferred {
	_, end := tracing.Start(ctx, "tx.rollback")
	d := NewDeferred()
	ch.runSync(d, false, func() error { return ch.conn.sendMethod(ch.id, wire.TxRollback{}) }, wire.ClassTx, wire.MethodTxRollbackOk, func(wire.Method) { end(nil) })
	return d
}

// Close closes the channel gracefully: every pending deferred fails with a
// closed-channel error, channel.close goes out immediately, and the
// returned Deferred resolves once channel.close-ok arrives. Inbound frames
// that were already in flight when the close went out are discarded.
func (ch *Channel) Close(ctx context.Context) *Deferred {
	_, end := tracing.Start(ctx, "channel.close")
	d := NewDeferred()
	if ch.state == chanClosed || ch.state == chanClosing {
		end(nil)
		d.Resolve()
		return d
	}
	ch.failPending(ErrChannelClosed)
	ch.partial = nil
	ch.state = chanClosing
	ch.closeOk = d
	if err := ch.conn.sendMethod(ch.id, wire.ChannelClose{ReplyCode: 200}); err != nil {
		ch.closeOk = nil
		ch.state = chanClosed
		ch.conn.releaseChannel(ch.id)
		end(err)
		d.Fail(err)
		return d
	}
	end(nil)
	return d
}

func (ch *Channel) finishClose(err error) {
	ch.state = chanClosed
	ch.conn.releaseChannel(ch.id)
	d := ch.closeOk
	ch.closeOk = nil
	if d != nil {
		if err != nil {
			d.Fail(err)
		} else {
			d.Resolve()
		}
	}
	if ch.OnClose != nil {
		rescueCall(func() { ch.OnClose(err) })
	}
}

// runSync is the common shape shared by every synchronous operation that
// doesn't need its reply's payload beyond "it arrived": enqueue send,
// resolve d on the matching reply, fail d if the channel dies first. When
// noWait is true the Deferred resolves immediately after a successful
// send instead of waiting for a reply the broker will never emit.
func (ch *Channel) runSync(d *Deferred, noWait bool, send func() error, expectClass, expectMethod uint16, onOk func(wire.Method)) {
	if noWait {
		if err := send(); err != nil {
			d.Fail(err)
			return
		}
		onOk(nil)
		d.Resolve()
		return
	}
	ch.enqueueSync(&syncOp{
		send:         send,
		expectClass:  expectClass,
		expectMethod: expectMethod,
		onReply: func(m wire.Method) {
			onOk(m)
			d.Resolve()
		},
		onFail: func(err error) { d.Fail(err) },
	})
}
