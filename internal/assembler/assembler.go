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

// Package assembler turns a byte stream read off one TCP connection into
// a sequence of complete AMQP frames. It only finds frame boundaries;
// routing each completed frame by its channel id is the caller's job, so
// the whole package is one accumulate-then-peel loop over a single
// buffer.
package assembler

import (
	"github.com/valyala/bytebufferpool"

	"github.com/goamqp/amqp/wire"
)

// Assembler owns a growable receive buffer and peels complete frames out of
// it as bytes arrive. It is not safe for concurrent use; callers in this
// module only ever touch it from the single-threaded dispatch loop.
type Assembler struct {
	buf      *bytebufferpool.ByteBuffer
	maxFrame uint32
}

// New returns an Assembler with no frame-size ceiling; call SetMaxFrame
// once connection.tune negotiates the real limit.
func New() *Assembler {
	return &Assembler{buf: bytebufferpool.Get()}
}

// SetMaxFrame records the negotiated frame_max so oversized frames are
// rejected instead of accepted into an unbounded buffer.
func (a *Assembler) SetMaxFrame(n uint32) { a.maxFrame = n }

// Feed appends newly read bytes to the receive buffer.
func (a *Assembler) Feed(b []byte) {
	a.buf.Write(b)
}

// Peel returns the next complete frame in the buffer, if one is present.
// The returned Frame's Payload aliases a fresh slice (not the internal
// buffer), so it remains valid across subsequent Feed/Peel calls. ok is
// false when the buffer holds fewer bytes than one complete frame; callers
// should Feed more data and retry. An error means the stream is corrupt and
// the connection must be torn down.
func (a *Assembler) Peel() (frame wire.Frame, ok bool, err error) {
	b := a.buf.B
	if len(b) < wire.HeaderSize {
		return wire.Frame{}, false, nil
	}

	f, n, err := wire.DecodeFrame(b, a.maxFrame)
	if err != nil {
		if err == wire.ErrShortBuffer {
			return wire.Frame{}, false, nil
		}
		return wire.Frame{}, false, err
	}

	if len(f.Payload) > 0 {
		payload := make([]byte, len(f.Payload))
		copy(payload, f.Payload)
		f.Payload = payload
	} else {
		f.Payload = nil
	}

	a.consume(n)
	return f, true, nil
}

// consume drops the first n bytes of the receive buffer, compacting the
// remainder to the front so the buffer doesn't grow unbounded across a long
// session.
func (a *Assembler) consume(n int) {
	rest := a.buf.B[n:]
	a.buf.B = a.buf.B[:0]
	a.buf.Write(rest)
}

// Pending reports how many unconsumed bytes are buffered, for diagnostics.
func (a *Assembler) Pending() int { return len(a.buf.B) }

// Close returns the receive buffer to the pool. The Assembler must not be
// used afterward.
func (a *Assembler) Close() {
	bytebufferpool.Put(a.buf)
	a.buf = nil
}
