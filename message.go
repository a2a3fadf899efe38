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
	"time"

	"github.com/goccy/go-json"

	"github.com/goamqp/amqp/field"
	"github.com/goamqp/amqp/wire"
)

// Envelope is the basic-properties of a message, independent of its body.
// Publish takes one by value; deliveries carry one alongside their body.
type Envelope struct {
	ContentType     string
	ContentEncoding string
	Headers         field.Table
	DeliveryMode    uint8
	Persistent      bool
	Priority        uint8
	CorrelationID   string
	ReplyTo         string
	Expiration      string
	MessageID       string
	Timestamp       time.Time
	Type            string
	UserID          string
	AppID           string
}

func (e Envelope) toWire() wire.Properties {
	p := wire.Properties{
		ContentType:     e.ContentType,
		ContentEncoding: e.ContentEncoding,
		CorrelationID:   e.CorrelationID,
		ReplyTo:         e.ReplyTo,
		Expiration:      e.Expiration,
		MessageID:       e.MessageID,
		Type:            e.Type,
		UserID:          e.UserID,
		AppID:           e.AppID,
	}
	if e.Headers != nil {
		p.Headers = e.Headers
		p.HasHeaders = true
	}
	mode := e.DeliveryMode
	if mode == 0 && e.Persistent {
		mode = 2
	}
	if mode != 0 {
		p.DeliveryMode = mode
		p.HasDeliveryMode = true
	}
	if e.Priority != 0 {
		p.Priority = e.Priority
		p.HasPriority = true
	}
	if !e.Timestamp.IsZero() {
		p.Timestamp = e.Timestamp
		p.HasTimestamp = true
	}
	return p
}

func envelopeFromWire(p wire.Properties) Envelope {
	return Envelope{
		ContentType:     p.ContentType,
		ContentEncoding: p.ContentEncoding,
		Headers:         p.Headers,
		DeliveryMode:    p.DeliveryMode,
		Persistent:      p.DeliveryMode == 2,
		Priority:        p.Priority,
		CorrelationID:   p.CorrelationID,
		ReplyTo:         p.ReplyTo,
		Expiration:      p.Expiration,
		MessageID:       p.MessageID,
		Timestamp:       p.Timestamp,
		Type:            p.Type,
		UserID:          p.UserID,
		AppID:           p.AppID,
	}
}

// DebugJSON renders the envelope's present fields as a compact JSON object
// for debug-level log fields. Header values are unwrapped to their natural
// Go representation via Value.Any.
func (e Envelope) DebugJSON() string {
	m := make(map[string]any, 8)
	if e.ContentType != "" {
		m["contentType"] = e.ContentType
	}
	if e.ContentEncoding != "" {
		m["contentEncoding"] = e.ContentEncoding
	}
	if e.DeliveryMode != 0 {
		m["deliveryMode"] = e.DeliveryMode
	}
	if e.Priority != 0 {
		m["priority"] = e.Priority
	}
	if e.CorrelationID != "" {
		m["correlationId"] = e.CorrelationID
	}
	if e.ReplyTo != "" {
		m["replyTo"] = e.ReplyTo
	}
	if e.Expiration != "" {
		m["expiration"] = e.Expiration
	}
	if e.MessageID != "" {
		m["messageId"] = e.MessageID
	}
	if !e.Timestamp.IsZero() {
		m["timestamp"] = e.Timestamp.Unix()
	}
	if e.Type != "" {
		m["type"] = e.Type
	}
	if e.UserID != "" {
		m["userId"] = e.UserID
	}
	if e.AppID != "" {
		m["appId"] = e.AppID
	}
	if len(e.Headers) > 0 {
		hm := make(map[string]any, len(e.Headers))
		for _, p := range e.Headers {
			hm[p.Key] = p.Value.Any()
		}
		m["headers"] = hm
	}
	b, err := json.Marshal(m)
	if err != nil {
		return "{}"
	}
	return string(b)
}

// Message is an envelope plus its body bytes, possibly reassembled from
// several content-body frames.
type Message struct {
	Envelope Envelope
	Body     []byte
}

// Delivery is a Message plus the routing metadata the broker attaches when
// it hands the message to a consumer (basic.deliver) or a getter
// (basic.get-ok).
type Delivery struct {
	Message
	ConsumerTag string
	DeliveryTag uint64
	Redelivered bool
	Exchange    string
	RoutingKey  string
}

// partialMessage accumulates a basic.deliver/basic.return/basic.get-ok's
// content-header and body frames until the body lengths sum to the size
// the header declared.
type partialMessage struct {
	kind contentKind

	consumerTag string
	deliveryTag uint64
	redelivered bool
	exchange    string
	routingKey  string

	returnReplyCode uint16
	returnReplyText string

	bodySize uint64
	body     []byte
	props    wire.Properties
}

type contentKind uint8

const (
	contentNone contentKind = iota
	contentDeliver
	contentReturn
	contentGetOk
)

func (p *partialMessage) complete() bool {
	return p.kind != contentNone && uint64(len(p.body)) >= p.bodySize
}

func (p *partialMessage) envelope() Envelope {
	return envelopeFromWire(p.props)
}
