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
	"bytes"
	"testing"
	"time"

	"github.com/goamqp/amqp/field"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestContentHeaderRoundTripFullProperties(t *testing.T) {
	var hdrs field.Table
	hdrs.Set("x-origin", field.ShortString("billing"))

	want := Properties{
		ContentType:     "application/json",
		ContentEncoding: "utf-8",
		Headers:         hdrs,
		HasHeaders:      true,
		DeliveryMode:    2,
		HasDeliveryMode: true,
		Priority:        5,
		HasPriority:     true,
		CorrelationID:   "corr-1",
		ReplyTo:         "replies",
		Expiration:      "60000",
		MessageID:       "msg-1",
		Timestamp:       time.Unix(1700000000, 0).UTC(),
		HasTimestamp:    true,
		Type:            "order.created",
		UserID:          "guest",
		AppID:           "billing-svc",
	}

	var buf bytes.Buffer
	require.NoError(t, EncodeContentHeader(&buf, 1024, want))

	size, got, err := DecodeContentHeader(buf.Bytes())
	require.NoError(t, err)
	assert.Equal(t, uint64(1024), size)
	assert.Equal(t, want.ContentType, got.ContentType)
	assert.Equal(t, want.ContentEncoding, got.ContentEncoding)
	assert.Equal(t, want.DeliveryMode, got.DeliveryMode)
	assert.Equal(t, want.Priority, got.Priority)
	assert.Equal(t, want.CorrelationID, got.CorrelationID)
	assert.Equal(t, want.ReplyTo, got.ReplyTo)
	assert.Equal(t, want.Expiration, got.Expiration)
	assert.Equal(t, want.MessageID, got.MessageID)
	assert.Equal(t, want.Timestamp.Unix(), got.Timestamp.Unix())
	assert.Equal(t, want.Type, got.Type)
	assert.Equal(t, want.UserID, got.UserID)
	assert.Equal(t, want.AppID, got.AppID)
	v, ok := got.Headers.Get("x-origin")
	require.True(t, ok)
	s, _ := v.String()
	assert.Equal(t, "billing", s)
}

func TestContentHeaderRoundTripEmptyProperties(t *testing.T) {
	var buf bytes.Buffer
	require.NoError(t, EncodeContentHeader(&buf, 0, Properties{}))

	size, got, err := DecodeContentHeader(buf.Bytes())
	require.NoError(t, err)
	assert.Equal(t, uint64(0), size)
	assert.Equal(t, "", got.ContentType)
	assert.False(t, got.HasHeaders)
	assert.False(t, got.HasDeliveryMode)
}

func TestContentHeaderRejectsForeignClass(t *testing.T) {
	var buf bytes.Buffer
	putUint16(&buf, 99)
	putUint16(&buf, 0)
	putUint64(&buf, 0)
	putUint16(&buf, 0)

	_, _, err := DecodeContentHeader(buf.Bytes())
	assert.Error(t, err)
}
