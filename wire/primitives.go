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

// primitives.go holds the big-endian read/write helpers everything else
// in this package builds on. Every multi-byte integer on the AMQP wire is
// big-endian.
package wire

import (
	"bytes"
	"encoding/binary"
	"math"
)

func putUint8(buf *bytes.Buffer, v uint8)   { buf.WriteByte(v) }
func putUint16(buf *bytes.Buffer, v uint16) { var b [2]byte; binary.BigEndian.PutUint16(b[:], v); buf.Write(b[:]) }
func putUint32(buf *bytes.Buffer, v uint32) { var b [4]byte; binary.BigEndian.PutUint32(b[:], v); buf.Write(b[:]) }
func putUint64(buf *bytes.Buffer, v uint64) { var b [8]byte; binary.BigEndian.PutUint64(b[:], v); buf.Write(b[:]) }
func putFloat32(buf *bytes.Buffer, v float32) { putUint32(buf, math.Float32bits(v)) }
func putFloat64(buf *bytes.Buffer, v float64) { putUint64(buf, math.Float64bits(v)) }

func getUint8(b []byte) (uint8, []byte, error) {
	if len(b) < 1 {
		return 0, nil, ErrShortBuffer
	}
	return b[0], b[1:], nil
}

func getUint16(b []byte) (uint16, []byte, error) {
	if len(b) < 2 {
		return 0, nil, ErrShortBuffer
	}
	return binary.BigEndian.Uint16(b[:2]), b[2:], nil
}

func getUint32(b []byte) (uint32, []byte, error) {
	if len(b) < 4 {
		return 0, nil, ErrShortBuffer
	}
	return binary.BigEndian.Uint32(b[:4]), b[4:], nil
}

func getUint64(b []byte) (uint64, []byte, error) {
	if len(b) < 8 {
		return 0, nil, ErrShortBuffer
	}
	return binary.BigEndian.Uint64(b[:8]), b[8:], nil
}

func getFloat32(b []byte) (float32, []byte, error) {
	u, rest, err := getUint32(b)
	if err != nil {
		return 0, nil, err
	}
	return math.Float32frombits(u), rest, nil
}

func getFloat64(b []byte) (float64, []byte, error) {
	u, rest, err := getUint64(b)
	if err != nil {
		return 0, nil, err
	}
	return math.Float64frombits(u), rest, nil
}

// putShortString writes a 1-byte length prefix followed by s. AMQP bounds
// short strings at 255 bytes; longer values belong in a long string field.
func putShortString(buf *bytes.Buffer, s string) error {
	if len(s) > math.MaxUint8 {
		return ErrStringTooLong
	}
	putUint8(buf, uint8(len(s)))
	buf.WriteString(s)
	return nil
}

func getShortString(b []byte) (string, []byte, error) {
	n, rest, err := getUint8(b)
	if err != nil {
		return "", nil, err
	}
	if len(rest) < int(n) {
		return "", nil, ErrShortBuffer
	}
	return string(rest[:n]), rest[n:], nil
}

// putLongString writes a 4-byte length prefix followed by arbitrary bytes
// (the payload need not be valid UTF-8 — content bodies and binary header
// fields both travel as long strings).
func putLongString(buf *bytes.Buffer, s string) {
	putUint32(buf, uint32(len(s)))
	buf.WriteString(s)
}

func getLongString(b []byte) (string, []byte, error) {
	n, rest, err := getUint32(b)
	if err != nil {
		return "", nil, err
	}
	if uint64(len(rest)) < uint64(n) {
		return "", nil, ErrShortBuffer
	}
	return string(rest[:n]), rest[n:], nil
}

// bitPacker packs consecutive boolean method arguments LSB-first into
// shared bytes, as AMQP 0-9-1 requires for runs of bit fields. Call Flush
// after the last bit in a run, before encoding any non-boolean argument.
type bitPacker struct {
	buf  *bytes.Buffer
	cur  byte
	nbit uint
}

func newBitPacker(buf *bytes.Buffer) *bitPacker { return &bitPacker{buf: buf} }

func (p *bitPacker) Put(v bool) {
	if v {
		p.cur |= 1 << p.nbit
	}
	p.nbit++
	if p.nbit == 8 {
		p.Flush()
	}
}

func (p *bitPacker) Flush() {
	if p.nbit == 0 {
		return
	}
	p.buf.WriteByte(p.cur)
	p.cur = 0
	p.nbit = 0
}

// bitUnpacker mirrors bitPacker for decoding.
type bitUnpacker struct {
	b    []byte
	cur  byte
	nbit uint
}

func newBitUnpacker(b []byte) *bitUnpacker { return &bitUnpacker{b: b} }

func (u *bitUnpacker) Get() (bool, error) {
	if u.nbit == 0 {
		if len(u.b) < 1 {
			return false, ErrShortBuffer
		}
		u.cur = u.b[0]
		u.b = u.b[1:]
		u.nbit = 8
	}
	v := u.cur&1 != 0
	u.cur >>= 1
	u.nbit--
	return v, nil
}

// Rest returns the unconsumed tail, realigned to a byte boundary (any
// partially-consumed byte from an incomplete run of booleans is discarded,
// matching how the AMQP spec requires booleans be declared in runs that are
// always fully consumed together).
func (u *bitUnpacker) Rest() []byte { return u.b }
