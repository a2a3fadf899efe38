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

package assembler

import (
	"bytes"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/goamqp/amqp/wire"
)

func encode(t *testing.T, f wire.Frame) []byte {
	t.Helper()
	var buf bytes.Buffer
	f.Encode(&buf)
	return buf.Bytes()
}

func TestPeelReturnsFalseOnEmptyBuffer(t *testing.T) {
	a := New()
	defer a.Close()

	_, ok, err := a.Peel()
	require.NoError(t, err)
	assert.False(t, ok)
}

func TestPeelSingleFrame(t *testing.T) {
	a := New()
	defer a.Close()

	want := wire.Frame{Type: wire.FrameMethod, Channel: 1, Payload: []byte{1, 2, 3}}
	a.Feed(encode(t, want))

	got, ok, err := a.Peel()
	require.NoError(t, err)
	require.True(t, ok)
	assert.Equal(t, want, got)

	_, ok, err = a.Peel()
	require.NoError(t, err)
	assert.False(t, ok)
}

func TestPeelMultipleFramesFedTogether(t *testing.T) {
	a := New()
	defer a.Close()

	f1 := wire.Frame{Type: wire.FrameMethod, Channel: 1, Payload: []byte{1}}
	f2 := wire.Frame{Type: wire.FrameBody, Channel: 1, Payload: []byte{2, 2}}
	a.Feed(encode(t, f1))
	a.Feed(encode(t, f2))

	got1, ok, err := a.Peel()
	require.NoError(t, err)
	require.True(t, ok)
	assert.Equal(t, f1, got1)

	got2, ok, err := a.Peel()
	require.NoError(t, err)
	require.True(t, ok)
	assert.Equal(t, f2, got2)
}

func TestPeelWaitsForSplitFrame(t *testing.T) {
	a := New()
	defer a.Close()

	f := wire.Frame{Type: wire.FrameHeartbeat, Channel: 0, Payload: nil}
	full := encode(t, f)

	a.Feed(full[:4])
	_, ok, err := a.Peel()
	require.NoError(t, err)
	assert.False(t, ok)

	a.Feed(full[4:])
	got, ok, err := a.Peel()
	require.NoError(t, err)
	require.True(t, ok)
	assert.Equal(t, f, got)
}

func TestPeelRejectsOversizedFrame(t *testing.T) {
	a := New()
	a.SetMaxFrame(4)
	defer a.Close()

	f := wire.Frame{Type: wire.FrameBody, Channel: 1, Payload: []byte{1, 2, 3, 4, 5, 6}}
	a.Feed(encode(t, f))

	_, _, err := a.Peel()
	assert.ErrorIs(t, err, wire.ErrFrameTooLarge)
}
