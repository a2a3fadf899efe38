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

// EncodeValue appends a single tagged field-table value: one type-tag byte
// followed by the type's own encoding. Table and Array recurse back through
// this function for nested values.
func EncodeValue(buf *bytes.Buffer, v field.Value) error {
	putUint8(buf, uint8(v.Kind))
	switch v.Kind {
	case field.KindBool:
		b, _ := v.Bool()
		var u uint8
		if b {
			u = 1
		}
		putUint8(buf, u)
	case field.KindI8:
		n, _ := v.Int64()
		putUint8(buf, uint8(int8(n)))
	case field.KindU8:
		n, _ := v.Uint64()
		putUint8(buf, uint8(n))
	case field.KindI16, field.KindU16:
		n, _ := v.Int64()
		putUint16(buf, uint16(n))
	case field.KindI32, field.KindU32:
		n, _ := v.Int64()
		putUint32(buf, uint32(n))
	case field.KindI64, field.KindU64:
		n, _ := v.Int64()
		putUint64(buf, uint64(n))
	case field.KindFloat:
		f, _ := v.Float64()
		putFloat32(buf, float32(f))
	case field.KindDouble:
		f, _ := v.Float64()
		putFloat64(buf, f)
	case field.KindDecimal:
		d, _ := v.Decimal()
		putUint8(buf, d.Scale)
		putUint32(buf, uint32(d.Value))
	case field.KindShortStr:
		s, _ := v.String()
		return putShortString(buf, s)
	case field.KindLongStr:
		s, _ := v.String()
		putLongString(buf, s)
	case field.KindTimestamp:
		ts, _ := v.Timestamp()
		putUint64(buf, uint64(ts.Unix()))
	case field.KindTable:
		tbl, _ := v.Table()
		return EncodeTable(buf, tbl)
	case field.KindArray:
		arr, _ := v.Array()
		return EncodeArray(buf, arr)
	case field.KindVoid:
		// no payload
	default:
		return ErrUnknownFieldTag
	}
	return nil
}

// DecodeValue consumes one tagged value from b and returns it along with
// the unconsumed remainder.
func DecodeValue(b []byte) (field.Value, []byte, error) {
	tag, rest, err := getUint8(b)
	if err != nil {
		return field.Value{}, nil, err
	}
	switch field.Kind(tag) {
	case field.KindBool:
		n, rest, err := getUint8(rest)
		if err != nil {
			return field.Value{}, nil, err
		}
		return field.Bool(n != 0), rest, nil
	case field.KindI8:
		n, rest, err := getUint8(rest)
		if err != nil {
			return field.Value{}, nil, err
		}
		return field.I8(int8(n)), rest, nil
	case field.KindU8:
		n, rest, err := getUint8(rest)
		if err != nil {
			return field.Value{}, nil, err
		}
		return field.U8(n), rest, nil
	case field.KindI16:
		n, rest, err := getUint16(rest)
		if err != nil {
			return field.Value{}, nil, err
		}
		return field.I16(int16(n)), rest, nil
	case field.KindU16:
		n, rest, err := getUint16(rest)
		if err != nil {
			return field.Value{}, nil, err
		}
		return field.U16(n), rest, nil
	case field.KindI32:
		n, rest, err := getUint32(rest)
		if err != nil {
			return field.Value{}, nil, err
		}
		return field.I32(int32(n)), rest, nil
	case field.KindU32:
		n, rest, err := getUint32(rest)
		if err != nil {
			return field.Value{}, nil, err
		}
		return field.U32(n), rest, nil
	case field.KindI64:
		n, rest, err := getUint64(rest)
		if err != nil {
			return field.Value{}, nil, err
		}
		return field.I64(int64(n)), rest, nil
	case field.KindU64:
		n, rest, err := getUint64(rest)
		if err != nil {
			return field.Value{}, nil, err
		}
		return field.U64(n), rest, nil
	case field.KindFloat:
		f, rest, err := getFloat32(rest)
		if err != nil {
			return field.Value{}, nil, err
		}
		return field.Float(f), rest, nil
	case field.KindDouble:
		f, rest, err := getFloat64(rest)
		if err != nil {
			return field.Value{}, nil, err
		}
		return field.Double(f), rest, nil
	case field.KindDecimal:
		scale, rest, err := getUint8(rest)
		if err != nil {
			return field.Value{}, nil, err
		}
		raw, rest, err := getUint32(rest)
		if err != nil {
			return field.Value{}, nil, err
		}
		return field.DecimalValue(field.Decimal{Scale: scale, Value: int32(raw)}), rest, nil
	case field.KindShortStr:
		s, rest, err := getShortString(rest)
		if err != nil {
			return field.Value{}, nil, err
		}
		return field.ShortString(s), rest, nil
	case field.KindLongStr:
		s, rest, err := getLongString(rest)
		if err != nil {
			return field.Value{}, nil, err
		}
		return field.LongString(s), rest, nil
	case field.KindTimestamp:
		n, rest, err := getUint64(rest)
		if err != nil {
			return field.Value{}, nil, err
		}
		return field.Timestamp(time.Unix(int64(n), 0).UTC()), rest, nil
	case field.KindTable:
		tbl, rest, err := DecodeTable(rest)
		if err != nil {
			return field.Value{}, nil, err
		}
		return field.TableValue(tbl), rest, nil
	case field.KindArray:
		arr, rest, err := DecodeArray(rest)
		if err != nil {
			return field.Value{}, nil, err
		}
		return field.ArrayValue(arr), rest, nil
	case field.KindVoid:
		return field.Void(), rest, nil
	default:
		return field.Value{}, nil, ErrUnknownFieldTag
	}
}
