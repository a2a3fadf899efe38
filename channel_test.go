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
	"bytes"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/goamqp/amqp/wire"
)

// openConnAndChannel drives a fresh Connection through handshake and one
// open channel, returning both plus the recordingPort so tests can inspect
// everything the channel emits from there on.
func openConnAndChannel(t *testing.T) (*Connection, *Channel, *recordingPort) {
	t.Helper()
	port := &recordingPort{}
	c, err := NewConnection(NewConfig(testURI()), port.write)
	require.NoError(t, err)
	require.NoError(t, feedMethod(t, c, 0, startMethod(wire.ConnectionStart{Mechanisms: "PLAIN"})))
	require.NoError(t, feedMethod(t, c, 0, wire.ConnectionTune{}))
	require.NoError(t, feedMethod(t, c, 0, wire.ConnectionOpenOk{}))

	ch, _ := c.OpenChannel(ctx)
	require.NoError(t, feedMethod(t, c, ch.ID(), wire.ChannelOpenOk{}))
	return c, ch, port
}

func feedHeader(t *testing.T, c *Connection, channel uint16, bodySize uint64, p wire.Properties) {
	t.Helper()
	var buf bytes.Buffer
	require.NoError(t, wire.EncodeContentHeader(&buf, bodySize, p))
	require.NoError(t, c.Feed(frameBytes(t, wire.Frame{Type: wire.FrameHeader, Channel: channel, Payload: buf.Bytes()})))
}

func feedBody(t *testing.T, c *Connection, channel uint16, payload []byte) error {
	t.Helper()
	return c.Feed(frameBytes(t, wire.Frame{Type: wire.FrameBody, Channel: channel, Payload: payload}))
}

func frameBytes(t *testing.T, f wire.Frame) []byte {
	t.Helper()
	var buf bytes.Buffer
	f.Encode(&buf)
	return buf.Bytes()
}

// TestExclusiveQueueDeclare: an anonymous exclusive declare sends an
// empty queue name with the exclusive bit set, and the queue callback
// echoes the broker-assigned name and counts.
func TestExclusiveQueueDeclare(t *testing.T) {
	c, ch, port := openConnAndChannel(t)

	var got QueueResult
	d := ch.QueueDeclare(ctx, "", Exclusive, nil)
	d.OnQueue(func(r QueueResult) { got = r })

	m := port.methodAt(t, len(port.frames)-1).(wire.QueueDeclare)
	assert.True(t, m.Exclusive)
	assert.Equal(t, "", m.Queue)

	require.NoError(t, feedMethod(t, c, ch.ID(), wire.QueueDeclareOk{Queue: "amq.gen-xxx", MessageCount: 0, ConsumerCount: 0}))

	assert.Equal(t, "amq.gen-xxx", got.Name)
	assert.Zero(t, got.MessageCount)
	assert.Zero(t, got.ConsumerCount)
}

// TestPublishConfirmMultipleAck: a multiple-flag ack settles every
// outstanding publish up to its tag, firing the confirms in sequence
// order.
func TestPublishConfirmMultipleAck(t *testing.T) {
	c, ch, _ := openConnAndChannel(t)

	confirmDone := ch.Confirm(ctx)
	require.NoError(t, feedMethod(t, c, ch.ID(), wire.ConfirmSelectOk{}))

	var order []uint64
	confirms := make([]*ConfirmDeferred, 0, 3)
	for i := 0; i < 3; i++ {
		cf, err := ch.Publish(ctx, "", "q", 0, Envelope{}, []byte{byte(i)})
		require.NoError(t, err)
		require.NotNil(t, cf)
		seq := uint64(i + 1)
		cf.OnAck(func() { order = append(order, seq) })
		confirms = append(confirms, cf)
	}

	require.NoError(t, feedMethod(t, c, ch.ID(), wire.BasicAck{DeliveryTag: 3, Multiple: true}))

	assert.Equal(t, []uint64{1, 2, 3}, order)
	for _, cf := range confirms {
		assert.True(t, cf.Fired())
	}
	assert.True(t, confirmDone.Fired())
}

// TestConsumeMultiFrameDelivery: a body split across several frames is
// delivered exactly once, reassembled in order.
func TestConsumeMultiFrameDelivery(t *testing.T) {
	c, ch, _ := openConnAndChannel(t)

	var delivered *Delivery
	count := 0
	cd := ch.Consume(ctx, "q", "ct", 0, nil)
	cd.OnDelivery(func(d Delivery) { delivered = &d; count++ })
	require.NoError(t, feedMethod(t, c, ch.ID(), wire.BasicConsumeOk{ConsumerTag: "ct"}))

	require.NoError(t, feedMethod(t, c, ch.ID(), wire.BasicDeliver{
		ConsumerTag: "ct", DeliveryTag: 7, Redelivered: false, Exchange: "", RoutingKey: "q",
	}))
	feedHeader(t, c, ch.ID(), 5000, wire.Properties{})

	body1 := make([]byte, 4000)
	body2 := make([]byte, 1000)
	for i := range body1 {
		body1[i] = 'a'
	}
	for i := range body2 {
		body2[i] = 'b'
	}
	require.NoError(t, feedBody(t, c, ch.ID(), body1))
	assert.Equal(t, 0, count, "callback must not fire until the full body has arrived")
	require.NoError(t, feedBody(t, c, ch.ID(), body2))

	require.Equal(t, 1, count)
	require.NotNil(t, delivered)
	assert.Len(t, delivered.Body, 5000)
	assert.Equal(t, append(body1, body2...), delivered.Body)
	assert.Equal(t, uint64(7), delivered.DeliveryTag)
	assert.Equal(t, "ct", delivered.ConsumerTag)
}

func TestBodyOverrunIsProtocolError(t *testing.T) {
	c, ch, _ := openConnAndChannel(t)
	cd := ch.Consume(ctx, "q", "ct", 0, nil)
	_ = cd
	require.NoError(t, feedMethod(t, c, ch.ID(), wire.BasicConsumeOk{ConsumerTag: "ct"}))
	require.NoError(t, feedMethod(t, c, ch.ID(), wire.BasicDeliver{ConsumerTag: "ct", DeliveryTag: 1, RoutingKey: "q"}))
	feedHeader(t, c, ch.ID(), 2, wire.Properties{})

	err := feedBody(t, c, ch.ID(), []byte{1, 2, 3})
	require.Error(t, err)
	var amqpErr *Error
	require.ErrorAs(t, err, &amqpErr)
	assert.Equal(t, ErrProtocol, amqpErr.Kind)
}

// TestMethodMidContentAssemblyIsProtocolError: arrival of any method
// frame while content is being assembled is a protocol violation.
func TestMethodMidContentAssemblyIsProtocolError(t *testing.T) {
	c, ch, _ := openConnAndChannel(t)
	cd := ch.Consume(ctx, "q", "ct", 0, nil)
	_ = cd
	require.NoError(t, feedMethod(t, c, ch.ID(), wire.BasicConsumeOk{ConsumerTag: "ct"}))
	require.NoError(t, feedMethod(t, c, ch.ID(), wire.BasicDeliver{ConsumerTag: "ct", DeliveryTag: 1, RoutingKey: "q"}))

	err := feedMethod(t, c, ch.ID(), wire.BasicCancel{ConsumerTag: "ct"})
	require.Error(t, err)
	var amqpErr *Error
	require.ErrorAs(t, err, &amqpErr)
	assert.Equal(t, ErrProtocol, amqpErr.Kind)
}

// TestChannelError: a broker channel.close fails the pending operation
// with the reply text, and later operations on the dead channel fail
// synchronously.
func TestChannelError(t *testing.T) {
	c, ch, _ := openConnAndChannel(t)

	var failErr error
	d := ch.QueueDeclare(ctx, "q", 0, nil)
	d.OnError(func(err error) { failErr = err })

	require.NoError(t, feedMethod(t, c, ch.ID(), wire.ChannelClose{
		ReplyCode: 406, ReplyText: "PRECONDITION_FAILED", ClassID_: 50, MethodID_: 10,
	}))

	require.Error(t, failErr)
	var amqpErr *Error
	require.ErrorAs(t, failErr, &amqpErr)
	assert.Equal(t, "PRECONDITION_FAILED", amqpErr.ReplyText)
	assert.False(t, ch.IsOpen())

	d2 := ch.QueueDeclare(ctx, "q2", 0, nil)
	assert.True(t, d2.Fired(), "operations on a closed channel must fail synchronously")
}

func TestConfirmAndTxAreMutuallyExclusive(t *testing.T) {
	_, ch, _ := openConnAndChannel(t)
	ch.confirmMode = true

	d := ch.TxSelect(ctx)
	assert.True(t, d.Fired())
	assert.False(t, ch.txMode, "tx.select must not take effect once confirm mode is active")
}

func TestChannelGracefulClose(t *testing.T) {
	c, ch, port := openConnAndChannel(t)

	var declareErr error
	ch.QueueDeclare(ctx, "q", 0, nil).
		OnError(func(err error) { declareErr = err })

	d := ch.Close(ctx)
	require.Error(t, declareErr, "pending operations must fail when the channel closes locally")

	last := port.methodAt(t, len(port.frames)-1)
	assert.Equal(t, uint16(wire.ClassChannel), last.ClassID())
	assert.Equal(t, uint16(wire.MethodChannelClose), last.MethodID())

	// A delivery the broker had already queued is discarded, not an error.
	require.NoError(t, feedMethod(t, c, ch.ID(), wire.BasicDeliver{ConsumerTag: "ct", DeliveryTag: 1}))

	require.NoError(t, feedMethod(t, c, ch.ID(), wire.ChannelCloseOk{}))
	assert.True(t, d.Fired())
	assert.False(t, ch.IsOpen())

	// The id goes back to the pool once the channel reaches closed.
	ch2, _ := c.OpenChannel(ctx)
	require.NotNil(t, ch2)
	assert.Equal(t, ch.ID(), ch2.ID())
}

func TestPublishOutsideConfirmModeReturnsNoDeferred(t *testing.T) {
	_, ch, port := openConnAndChannel(t)

	before := len(port.frames)
	cf, err := ch.Publish(ctx, "", "q", 0, Envelope{ContentType: "text/plain"}, []byte("hi"))
	require.NoError(t, err)
	assert.Nil(t, cf)

	// basic.publish, content header, one body frame.
	require.Equal(t, before+3, len(port.frames))
	assert.Equal(t, wire.FrameMethod, port.frames[before].Type)
	assert.Equal(t, wire.FrameHeader, port.frames[before+1].Type)
	assert.Equal(t, wire.FrameBody, port.frames[before+2].Type)
	assert.Equal(t, []byte("hi"), port.frames[before+2].Payload)
}

func TestSyncOperationsCompleteInSubmissionOrder(t *testing.T) {
	c, ch, port := openConnAndChannel(t)

	var order []string
	d1 := ch.QueueDeclare(ctx, "a", 0, nil)
	d1.OnSuccess(func() { order = append(order, "a") })
	d2 := ch.QueueDeclare(ctx, "b", 0, nil)
	d2.OnSuccess(func() { order = append(order, "b") })

	// Only the first request has been sent; the second is queued.
	first := port.methodAt(t, len(port.frames)-1).(wire.QueueDeclare)
	assert.Equal(t, "a", first.Queue)

	require.NoError(t, feedMethod(t, c, ch.ID(), wire.QueueDeclareOk{Queue: "a"}))
	second := port.methodAt(t, len(port.frames)-1).(wire.QueueDeclare)
	assert.Equal(t, "b", second.Queue)

	require.NoError(t, feedMethod(t, c, ch.ID(), wire.QueueDeclareOk{Queue: "b"}))
	assert.Equal(t, []string{"a", "b"}, order)
}
