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

package wire

import (
	"testing"

	"github.com/goamqp/amqp/field"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func roundTripMethod(t *testing.T, m Method) Method {
	t.Helper()
	payload, err := EncodeMethodFrame(m)
	require.NoError(t, err)
	got, err := DecodeMethodFrame(payload)
	require.NoError(t, err)
	return got
}

func TestMethodRoundTripConnectionStartOk(t *testing.T) {
	var props field.Table
	props.Set("product", field.LongString("goamqp"))

	want := ConnectionStartOk{
		ClientProperties: props,
		Mechanism:        MechanismPlain,
		Response:         PlainResponse("guest", "guest"),
		Locale:           "en_US",
	}
	got, ok := roundTripMethod(t, want).(ConnectionStartOk)
	require.True(t, ok)
	assert.Equal(t, want.Mechanism, got.Mechanism)
	assert.Equal(t, want.Response, got.Response)
	assert.Equal(t, want.Locale, got.Locale)
}

func TestMethodRoundTripQueueDeclare(t *testing.T) {
	want := QueueDeclare{
		Queue:      "orders",
		Durable:    true,
		Exclusive:  true,
		AutoDelete: false,
		NoWait:     false,
	}
	got, ok := roundTripMethod(t, want).(QueueDeclare)
	require.True(t, ok)
	assert.Equal(t, want.Queue, got.Queue)
	assert.True(t, got.Durable)
	assert.True(t, got.Exclusive)
	assert.False(t, got.AutoDelete)
}

func TestMethodRoundTripBasicPublish(t *testing.T) {
	want := BasicPublish{Exchange: "orders.topic", RoutingKey: "order.created", Mandatory: true}
	got, ok := roundTripMethod(t, want).(BasicPublish)
	require.True(t, ok)
	assert.Equal(t, want, got)
}

func TestMethodRoundTripBasicDeliver(t *testing.T) {
	want := BasicDeliver{
		ConsumerTag: "ctag-1",
		DeliveryTag: 42,
		Redelivered: true,
		Exchange:    "orders.topic",
		RoutingKey:  "order.created",
	}
	got, ok := roundTripMethod(t, want).(BasicDeliver)
	require.True(t, ok)
	assert.Equal(t, want, got)
}

func TestMethodRoundTripBasicNack(t *testing.T) {
	want := BasicNack{DeliveryTag: 7, Multiple: true, Requeue: false}
	got, ok := roundTripMethod(t, want).(BasicNack)
	require.True(t, ok)
	assert.Equal(t, want, got)
}

func TestMethodRoundTripChannelClose(t *testing.T) {
	want := ChannelClose{ReplyCode: 406, ReplyText: "PRECONDITION_FAILED", ClassID_: ClassQueue, MethodID_: MethodQueueDeclare}
	got, ok := roundTripMethod(t, want).(ChannelClose)
	require.True(t, ok)
	assert.Equal(t, want, got)
}

func TestDecodeMethodFrameUnknown(t *testing.T) {
	var buf []byte
	buf = append(buf, 0, 200, 0, 1) // bogus class, arbitrary method
	_, err := DecodeMethodFrame(buf)
	assert.ErrorIs(t, err, ErrUnknownMethod)
}
