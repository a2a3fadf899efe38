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

	"github.com/goamqp/amqp/field"
)

// EncodeTable writes a field table body: a 4-byte byte-length prefix
// followed by a flat run of (short-string key, tagged value) pairs. The
// body is built in a scratch buffer first, since the prefix needs its
// length, and then written after the prefix.
func EncodeTable(buf *bytes.Buffer, t field.Table) error {
	var body bytes.Buffer
	for _, p := range t {
		if err := putShortString(&body, p.Key); err != nil {
			return err
		}
		if err := EncodeValue(&body, p.Value); err != nil {
			return err
		}
	}
	putUint32(buf, uint32(body.Len()))
	buf.Write(body.Bytes())
	return nil
}

// DecodeTable consumes a field table body from b.
func DecodeTable(b []byte) (field.Table, []byte, error) {
	size, rest, err := getUint32(b)
	if err != nil {
		return nil, nil, err
	}
	if uint64(len(rest)) < uint64(size) {
		return nil, nil, ErrShortBuffer
	}
	body, tail := rest[:size], rest[size:]

	var t field.Table
	for len(body) > 0 {
		key, r, err := getShortString(body)
		if err != nil {
			return nil, nil, err
		}
		val, r, err := DecodeValue(r)
		if err != nil {
			return nil, nil, err
		}
		t.Append(key, val)
		body = r
	}
	return t, tail, nil
}
