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
	"time"

	"github.com/goamqp/amqp/field"
)

// BasicClassID is the class-id carried by every content-header frame in
// this client: AMQP 0-9-1 defines per-class properties, but basic.* is the
// only class with a content body, so it's the only one this codec needs.
const BasicClassID = 60

// property-flag bits, MSB first as they appear on the wire (bit 15 down to
// bit 2; bits 1-0 are reserved and always zero).
const (
	flagContentType     = 1 << 15
	flagContentEncoding = 1 << 14
	flagHeaders         = 1 << 13
	flagDeliveryMode    = 1 << 12
	flagPriority        = 1 << 11
	flagCorrelationID   = 1 << 10
	flagReplyTo         = 1 << 9
	flagExpiration      = 1 << 8
	flagMessageID       = 1 << 7
	flagTimestamp       = 1 << 6
	flagType            = 1 << 5
	flagUserID          = 1 << 4
	flagAppID           = 1 << 3
	flagClusterID       = 1 << 2
)

// Properties is the basic-class content-header property set. A nil/zero
// field means "not present"; String fields use empty-string-means-absent
// except where that collides with a legitimate empty value, handled via the
// Has* flags below for the few properties worth distinguishing.
type Properties struct {
	ContentType     string
	ContentEncoding string
	Headers         field.Table
	HasHeaders      bool
	DeliveryMode    uint8
	HasDeliveryMode bool
	Priority        uint8
	HasPriority     bool
	CorrelationID   string
	ReplyTo         string
	Expiration      string
	MessageID       string
	Timestamp       time.Time
	HasTimestamp    bool
	Type            string
	UserID          string
	AppID           string
	ClusterID       string
}

func (p Properties) flags() uint16 {
	var f uint16
	if p.ContentType != "" {
		f |= flagContentType
	}
	if p.ContentEncoding != "" {
		f |= flagContentEncoding
	}
	if p.HasHeaders {
		f |= flagHeaders
	}
	if p.HasDeliveryMode {
		f |= flagDeliveryMode
	}
	if p.HasPriority {
		f |= flagPriority
	}
	if p.CorrelationID != "" {
		f |= flagCorrelationID
	}
	if p.ReplyTo != "" {
		f |= flagReplyTo
	}
	if p.Expiration != "" {
		f |= flagExpiration
	}
	if p.MessageID != "" {
		f |= flagMessageID
	}
	if p.HasTimestamp {
		f |= flagTimestamp
	}
	if p.Type != "" {
		f |= flagType
	}
	if p.UserID != "" {
		f |= flagUserID
	}
	if p.AppID != "" {
		f |= flagAppID
	}
	if p.ClusterID != "" {
		f |= flagClusterID
	}
	return f
}

// EncodeContentHeader writes a full content-header frame payload: class-id,
// weight (always 0, a reserved field AMQP 0-9-1 never used),
// body size, the property-flags word(s), and the present properties
// themselves in declaration order.
//
//	┌──────────┬────────┬───────────┬─────────────┬────────────┐
//	│ class-id │ weight │ body-size │ prop-flags  │ properties │
//	│ 2 bytes  │ 2 bytes│ 8 bytes   │ 2 bytes×N   │ variable   │
//	└──────────┴────────┴───────────┴─────────────┴────────────┘
func EncodeContentHeader(buf *bytes.Buffer, bodySize uint64, p Properties) error {
	putUint16(buf, BasicClassID)
	putUint16(buf, 0)
	putUint64(buf, bodySize)
	flags := p.flags()
	putUint16(buf, flags)
	// This client never emits more than 15 basic properties, so the flags
	// continuation bit (bit 0) is always 0 and a single flags word suffices.

	if flags&flagContentType != 0 {
		if err := putShortString(buf, p.ContentType); err != nil {
			return err
		}
	}
	if flags&flagContentEncoding != 0 {
		if err := putShortString(buf, p.ContentEncoding); err != nil {
			return err
		}
	}
	if flags&flagHeaders != 0 {
		if err := EncodeTable(buf, p.Headers); err != nil {
			return err
		}
	}
	if flags&flagDeliveryMode != 0 {
		putUint8(buf, p.DeliveryMode)
	}
	if flags&flagPriority != 0 {
		putUint8(buf, p.Priority)
	}
	if flags&flagCorrelationID != 0 {
		if err := putShortString(buf, p.CorrelationID); err != nil {
			return err
		}
	}
	if flags&flagReplyTo != 0 {
		if err := putShortString(buf, p.ReplyTo); err != nil {
			return err
		}
	}
	if flags&flagExpiration != 0 {
		if err := putShortString(buf, p.Expiration); err != nil {
			return err
		}
	}
	if flags&flagMessageID != 0 {
		if err := putShortString(buf, p.MessageID); err != nil {
			return err
		}
	}
	if flags&flagTimestamp != 0 {
		putUint64(buf, uint64(p.Timestamp.Unix()))
	}
	if flags&flagType != 0 {
		if err := putShortString(buf, p.Type); err != nil {
			return err
		}
	}
	if flags&flagUserID != 0 {
		if err := putShortString(buf, p.UserID); err != nil {
			return err
		}
	}
	if flags&flagAppID != 0 {
		if err := putShortString(buf, p.AppID); err != nil {
			return err
		}
	}
	if flags&flagClusterID != 0 {
		if err := putShortString(buf, p.ClusterID); err != nil {
			return err
		}
	}
	return nil
}

// DecodeContentHeader parses a content-header frame payload, returning the
// declared body size and the decoded properties.
func DecodeContentHeader(b []byte) (bodySize uint64, p Properties, err error) {
	classID, rest, err := getUint16(b)
	if err != nil {
		return 0, p, err
	}
	if classID != BasicClassID {
		return 0, p, newError("unsupported content-header class-id %d", classID)
	}
	_, rest, err = getUint16(rest) // weight, always 0
	if err != nil {
		return 0, p, err
	}
	bodySize, rest, err = getUint64(rest)
	if err != nil {
		return 0, p, err
	}
	flags, rest, err := getUint16(rest)
	if err != nil {
		return 0, p, err
	}
	for flags&1 != 0 {
		// continuation word present; this client never emits one but must
		// tolerate receiving it from a broker that uses reserved bits.
		var cont uint16
		cont, rest, err = getUint16(rest)
		if err != nil {
			return 0, p, err
		}
		_ = cont
		break
	}

	if flags&flagContentType != 0 {
		p.ContentType, rest, err = getShortString(rest)
		if err != nil {
			return 0, p, err
		}
	}
	if flags&flagContentEncoding != 0 {
		p.ContentEncoding, rest, err = getShortString(rest)
		if err != nil {
			return 0, p, err
		}
	}
	if flags&flagHeaders != 0 {
		p.Headers, rest, err = DecodeTable(rest)
		if err != nil {
			return 0, p, err
		}
		p.HasHeaders = true
	}
	if flags&flagDeliveryMode != 0 {
		p.DeliveryMode, rest, err = getUint8(rest)
		if err != nil {
			return 0, p, err
		}
		p.HasDeliveryMode = true
	}
	if flags&flagPriority != 0 {
		p.Priority, rest, err = getUint8(rest)
		if err != nil {
			return 0, p, err
		}
		p.HasPriority = true
	}
	if flags&flagCorrelationID != 0 {
		p.CorrelationID, rest, err = getShortString(rest)
		if err != nil {
			return 0, p, err
		}
	}
	if flags&flagReplyTo != 0 {
		p.ReplyTo, rest, err = getShortString(rest)
		if err != nil {
			return 0, p, err
		}
	}
	if flags&flagExpiration != 0 {
		p.Expiration, rest, err = getShortString(rest)
		if err != nil {
			return 0, p, err
		}
	}
	if flags&flagMessageID != 0 {
		p.MessageID, rest, err = getShortString(rest)
		if err != nil {
			return 0, p, err
		}
	}
	if flags&flagTimestamp != 0 {
		var ts uint64
		ts, rest, err = getUint64(rest)
		if err != nil {
			return 0, p, err
		}
		p.Timestamp = time.Unix(int64(ts), 0).UTC()
		p.HasTimestamp = true
	}
	if flags&flagType != 0 {
		p.Type, rest, err = getShortString(rest)
		if err != nil {
			return 0, p, err
		}
	}
	if flags&flagUserID != 0 {
		p.UserID, rest, err = getShortString(rest)
		if err != nil {
			return 0, p, err
		}
	}
	if flags&flagAppID != 0 {
		p.AppID, rest, err = getShortString(rest)
		if err != nil {
			return 0, p, err
		}
	}
	if flags&flagClusterID != 0 {
		p.ClusterID, _, err = getShortString(rest)
		if err != nil {
			return 0, p, err
		}
	}
	return bodySize, p, nil
}
