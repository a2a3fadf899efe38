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

import "bytes"

// FrameType identifies the shape of a Frame's payload.
type FrameType uint8

const (
	FrameMethod    FrameType = 0x01
	FrameHeader    FrameType = 0x02
	FrameBody      FrameType = 0x03
	FrameHeartbeat FrameType = 0x08
)

// FrameEnd is the fixed trailing byte of every frame.
const FrameEnd byte = 0xCE

// Header layout: 1-byte type + 2-byte channel + 4-byte payload length.
const HeaderSize = 7

// ProtocolHeader is the 8-byte greeting sent before any frame, identifying
// AMQP 0-9-1.
var ProtocolHeader = []byte{'A', 'M', 'Q', 'P', 0x00, 0x00, 0x09, 0x01}

func ValidateFrameType(t byte) bool {
	switch FrameType(t) {
	case FrameMethod, FrameHeader, FrameBody, FrameHeartbeat:
		return true
	default:
		return false
	}
}

// Frame is the wire unit: type, target channel (0 for connection-scoped
// frames), and an already-decoded-to-the-frame-boundary payload. The
// payload's internal structure (method args, content-header fields, raw
// body bytes) depends on Type and is interpreted by the method/properties
// codecs, not by Frame itself.
type Frame struct {
	Type    FrameType
	Channel uint16
	Payload []byte
}

// Encode appends the wire representation of f to buf:
//
//	┌────────┬───────────┬──────────────┬─────────────┬───────┐
//	│ Type   │ Channel   │ Payload Size │ Payload     │ 0xCE  │
//	│ 1 byte │ 2 bytes   │ 4 bytes      │ N bytes     │       │
//	└────────┴───────────┴──────────────┴─────────────┴───────┘
func (f Frame) Encode(buf *bytes.Buffer) {
	putUint8(buf, uint8(f.Type))
	putUint16(buf, f.Channel)
	putUint32(buf, uint32(len(f.Payload)))
	buf.Write(f.Payload)
	buf.WriteByte(FrameEnd)
}

// EncodedLen returns the number of bytes Encode will append, without
// actually encoding — used by the connection's send path to size its
// output buffer.
func (f Frame) EncodedLen() int {
	return HeaderSize + len(f.Payload) + 1
}

// Heartbeat is the canonical zero-payload heartbeat frame.
var Heartbeat = Frame{Type: FrameHeartbeat, Channel: 0}

// DecodeFrame decodes exactly one complete frame from b, which must contain
// at least one full frame (HeaderSize+payloadLen+1 bytes); callers that
// don't know the length up front should use internal/assembler instead,
// which peels frames out of a growing receive buffer. maxFrame of 0 means
// unlimited (used before frame_max is negotiated).
func DecodeFrame(b []byte, maxFrame uint32) (Frame, int, error) {
	if len(b) < HeaderSize {
		return Frame{}, 0, ErrShortBuffer
	}
	if !ValidateFrameType(b[0]) {
		return Frame{}, 0, newError("invalid frame type %#x", b[0])
	}
	typ := FrameType(b[0])
	channel, rest, err := getUint16(b[1:])
	if err != nil {
		return Frame{}, 0, err
	}
	size, rest, err := getUint32(rest)
	if err != nil {
		return Frame{}, 0, err
	}
	if maxFrame > 0 && size > maxFrame {
		return Frame{}, 0, ErrFrameTooLarge
	}
	total := HeaderSize + int(size) + 1
	if len(b) < total {
		return Frame{}, 0, ErrShortBuffer
	}
	if rest[size] != FrameEnd {
		return Frame{}, 0, ErrBadEndMarker
	}
	payload := rest[:size]
	return Frame{Type: typ, Channel: channel, Payload: payload}, total, nil
}
