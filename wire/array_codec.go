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

// EncodeArray writes a field array body: a 4-byte byte-length prefix
// followed by a flat run of tagged values (no keys).
func EncodeArray(buf *bytes.Buffer, a field.Array) error {
	var body bytes.Buffer
	for _, v := range a {
		if err := EncodeValue(&body, v); err != nil {
			return err
		}
	}
	putUint32(buf, uint32(body.Len()))
	buf.Write(body.Bytes())
	return nil
}

// DecodeArray consumes a field array body from b.
func DecodeArray(b []byte) (field.Array, []byte, error) {
	size, rest, err := getUint32(b)
	if err != nil {
		return nil, nil, err
	}
	if uint64(len(rest)) < uint64(size) {
		return nil, nil, ErrShortBuffer
	}
	body, tail := rest[:size], rest[size:]

	var a field.Array
	for len(body) > 0 {
		val, r, err := DecodeValue(body)
		if err != nil {
			return nil, nil, err
		}
		a = append(a, val)
		body = r
	}
	return a, tail, nil
}
