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

func roundTripValue(t *testing.T, v field.Value) field.Value {
	t.Helper()
	var buf bytes.Buffer
	require.NoError(t, EncodeValue(&buf, v))
	got, rest, err := DecodeValue(buf.Bytes())
	require.NoError(t, err)
	assert.Empty(t, rest)
	return got
}

func TestValueRoundTripScalars(t *testing.T) {
	cases := []field.Value{
		field.Bool(true),
		field.Bool(false),
		field.I8(-12),
		field.U8(250),
		field.I16(-1000),
		field.U16(60000),
		field.I32(-70000),
		field.U32(4000000000),
		field.I64(-1 << 40),
		field.U64(1 << 63),
		field.Float(3.25),
		field.Double(2.71828),
		field.ShortString("rk"),
		field.LongString("a rather longer routing key value"),
		field.Void(),
	}
	for _, c := range cases {
		got := roundTripValue(t, c)
		assert.Equal(t, c.Kind, got.Kind)
		assert.Equal(t, c.Any(), got.Any())
	}
}

func TestValueRoundTripTimestamp(t *testing.T) {
	ts := field.Timestamp(time.Unix(1700000000, 0).UTC())
	got := roundTripValue(t, ts)
	gotTs, ok := got.Timestamp()
	require.True(t, ok)
	assert.Equal(t, int64(1700000000), gotTs.Unix())
}

func TestValueRoundTripDecimal(t *testing.T) {
	d := field.DecimalValue(field.Decimal{Scale: 2, Value: 12345})
	got := roundTripValue(t, d)
	gotDec, ok := got.Decimal()
	require.True(t, ok)
	assert.Equal(t, field.Decimal{Scale: 2, Value: 12345}, gotDec)
}

func TestValueRoundTripNestedTableAndArray(t *testing.T) {
	var inner field.Table
	inner.Set("x-retry", field.I32(3))

	var tbl field.Table
	tbl.Set("headers", field.TableValue(inner))
	tbl.Set("tags", field.ArrayValue(field.Array{field.ShortString("a"), field.ShortString("b")}))

	got := roundTripValue(t, field.TableValue(tbl))
	gotTbl, ok := got.Table()
	require.True(t, ok)

	hv, ok := gotTbl.Get("headers")
	require.True(t, ok)
	hTbl, ok := hv.Table()
	require.True(t, ok)
	rv, ok := hTbl.Get("x-retry")
	require.True(t, ok)
	n, _ := rv.Int64()
	assert.Equal(t, int64(3), n)

	tv, ok := gotTbl.Get("tags")
	require.True(t, ok)
	arr, ok := tv.Array()
	require.True(t, ok)
	require.Len(t, arr, 2)
	s0, _ := arr[0].String()
	assert.Equal(t, "a", s0)
}

func TestDecodeValueUnknownTag(t *testing.T) {
	_, _, err := DecodeValue([]byte{'?', 0})
	assert.ErrorIs(t, err, ErrUnknownFieldTag)
}
