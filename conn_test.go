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
	"bytes"
	"context"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/goamqp/amqp/wire"
)

var ctx = context.Background()

// recordingPort keeps the raw protocol header apart, captures every frame
// written through it, and decodes method frames back into wire.Method
// values so tests can assert on outbound traffic frame by frame.
type recordingPort struct {
	header []byte
	frames []wire.Frame
	fail   error
}

func (p *recordingPort) write(b []byte) error {
	if p.fail != nil {
		return p.fail
	}
	if bytes.Equal(b, wire.ProtocolHeader) {
		p.header = append([]byte(nil), b...)
		return nil
	}
	f, _, err := wire.DecodeFrame(b, 0)
	if err != nil {
		return err
	}
	p.frames = append(p.frames, f)
	return nil
}

func (p *recordingPort) methodAt(t *testing.T, i int) wire.Method {
	t.Helper()
	require.Greater(t, len(p.frames), i)
	require.Equal(t, wire.FrameMethod, p.frames[i].Type)
	m, err := wire.DecodeMethodFrame(p.frames[i].Payload)
	require.NoError(t, err)
	return m
}

func testURI() URI {
	return URI{Host: "localhost", Port: 5672, User: "guest", Password: "guest", VHost: "/"}
}

// startMethod builds a connection.start with the version fields onStart
// requires, letting callers override just the fields they care about.
func startMethod(m wire.ConnectionStart) wire.ConnectionStart {
	m.VersionMajor, m.VersionMinor = 0, 9
	return m
}

func feedMethod(t *testing.T, c *Connection, channel uint16, m wire.Method) error {
	t.Helper()
	payload, err := wire.EncodeMethodFrame(m)
	require.NoError(t, err)
	var buf bytes.Buffer
	wire.Frame{Type: wire.FrameMethod, Channel: channel, Payload: payload}.Encode(&buf)
	return c.Feed(buf.Bytes())
}

// TestHandshake: outbound must contain, in order, the protocol header
// (checked via NewConnection's first write), start-ok with
// PLAIN/"\x00guest\x00guest", tune-ok, and open with vhost "/".
func TestHandshake(t *testing.T) {
	port := &recordingPort{}
	cfg := NewConfig(testURI())

	c, err := NewConnection(cfg, port.write)
	require.NoError(t, err)
	assert.Equal(t, wire.ProtocolHeader, port.header)

	require.NoError(t, feedMethod(t, c, 0, startMethod(wire.ConnectionStart{
		Mechanisms: "PLAIN", Locales: "en_US",
	})))

	startOk := port.methodAt(t, 0).(wire.ConnectionStartOk)
	assert.Equal(t, "PLAIN", startOk.Mechanism)
	assert.Equal(t, "\x00guest\x00guest", startOk.Response)

	require.NoError(t, feedMethod(t, c, 0, wire.ConnectionTune{ChannelMax: 2047, FrameMax: 131072, Heartbeat: 60}))

	tuneOk := port.methodAt(t, 1).(wire.ConnectionTuneOk)
	assert.Equal(t, uint16(2047), tuneOk.ChannelMax)

	open := port.methodAt(t, 2).(wire.ConnectionOpen)
	assert.Equal(t, "/", open.VirtualHost)

	require.NoError(t, feedMethod(t, c, 0, wire.ConnectionOpenOk{}))
	assert.True(t, c.IsOpen())
}

// TestHandshakeRejectsUnsupportedVersion: the client must validate the
// broker's protocol version before starting SASL negotiation.
func TestHandshakeRejectsUnsupportedVersion(t *testing.T) {
	port := &recordingPort{}
	c, err := NewConnection(NewConfig(testURI()), port.write)
	require.NoError(t, err)

	feedMethod(t, c, 0, wire.ConnectionStart{VersionMajor: 0, VersionMinor: 8, Mechanisms: "PLAIN"})

	require.NotNil(t, c.closeErr)
	assert.Equal(t, ErrProtocol, c.closeErr.Kind)
}

func TestHandshakeSecureChallengeIsAuthError(t *testing.T) {
	port := &recordingPort{}
	cfg := NewConfig(testURI())
	c, err := NewConnection(cfg, port.write)
	require.NoError(t, err)

	require.NoError(t, feedMethod(t, c, 0, startMethod(wire.ConnectionStart{Mechanisms: "PLAIN"})))
	feedMethod(t, c, 0, wire.ConnectionSecure{Challenge: "give me more"})

	require.NotNil(t, c.closeErr)
	assert.Equal(t, ErrAuth, c.closeErr.Kind)
}

// TestBrokerCloseDuringHandshakeIsAuthError: a 403/530 connection.close
// arriving before the handshake completes is an authentication error,
// not a generic broker error.
func TestBrokerCloseDuringHandshakeIsAuthError(t *testing.T) {
	port := &recordingPort{}
	c, err := NewConnection(NewConfig(testURI()), port.write)
	require.NoError(t, err)

	feedMethod(t, c, 0, wire.ConnectionClose{ReplyCode: 530, ReplyText: "NOT_ALLOWED"})

	require.NotNil(t, c.closeErr)
	assert.Equal(t, ErrAuth, c.closeErr.Kind)
	assert.Equal(t, uint16(530), c.closeErr.ReplyCode)
}

// TestHeartbeatTimeout: twice the negotiated interval with no inbound
// bytes faults the connection.
func TestHeartbeatTimeout(t *testing.T) {
	port := &recordingPort{}
	var gotErr error
	cfg := NewConfig(testURI(), WithOnError(func(err error) { gotErr = err }))
	c, err := NewConnection(cfg, port.write)
	require.NoError(t, err)

	require.NoError(t, feedMethod(t, c, 0, startMethod(wire.ConnectionStart{Mechanisms: "PLAIN"})))
	require.NoError(t, feedMethod(t, c, 0, wire.ConnectionTune{Heartbeat: 5}))
	require.NoError(t, feedMethod(t, c, 0, wire.ConnectionOpenOk{}))
	require.True(t, c.IsOpen())

	base := time.Now()
	c.lastRecv = base
	c.Tick(base.Add(10 * time.Second))

	require.Error(t, gotErr)
	var amqpErr *Error
	require.ErrorAs(t, gotErr, &amqpErr)
	assert.Equal(t, ErrTransport, amqpErr.Kind)
}

func TestHeartbeatEmittedAtHalfInterval(t *testing.T) {
	port := &recordingPort{}
	cfg := NewConfig(testURI())
	c, err := NewConnection(cfg, port.write)
	require.NoError(t, err)
	require.NoError(t, feedMethod(t, c, 0, startMethod(wire.ConnectionStart{Mechanisms: "PLAIN"})))
	require.NoError(t, feedMethod(t, c, 0, wire.ConnectionTune{Heartbeat: 10}))
	require.NoError(t, feedMethod(t, c, 0, wire.ConnectionOpenOk{}))

	before := len(port.frames)
	base := time.Now()
	c.lastSent = base
	c.lastRecv = base
	c.Tick(base.Add(6 * time.Second))

	require.Greater(t, len(port.frames), before)
	last := port.frames[len(port.frames)-1]
	assert.Equal(t, wire.FrameHeartbeat, last.Type)
}

func TestGracefulClose(t *testing.T) {
	port := &recordingPort{}
	var closed bool
	cfg := NewConfig(testURI(), WithOnClosed(func() { closed = true }))
	c, err := NewConnection(cfg, port.write)
	require.NoError(t, err)
	require.NoError(t, feedMethod(t, c, 0, startMethod(wire.ConnectionStart{Mechanisms: "PLAIN"})))
	require.NoError(t, feedMethod(t, c, 0, wire.ConnectionTune{}))
	require.NoError(t, feedMethod(t, c, 0, wire.ConnectionOpenOk{}))

	ch, chOpenDeferred := c.OpenChannel(ctx)
	require.NotNil(t, ch)
	require.NoError(t, feedMethod(t, c, ch.ID(), wire.ChannelOpenOk{}))
	assert.True(t, chOpenDeferred.Fired())

	var declareFailed bool
	qd := ch.QueueDeclare(ctx, "q", 0, nil)
	qd.OnError(func(error) { declareFailed = true })

	before := len(port.frames)
	closeDeferred := c.Close()
	assert.True(t, declareFailed, "pending deferreds must fail before close completes")

	// No further outbound frames besides connection.close itself.
	assert.Equal(t, before+1, len(port.frames))
	last := port.methodAt(t, len(port.frames)-1)
	assert.Equal(t, uint16(wire.ClassConnection), last.ClassID())
	assert.Equal(t, uint16(wire.MethodConnectionClose), last.MethodID())

	require.NoError(t, feedMethod(t, c, 0, wire.ConnectionCloseOk{}))
	assert.True(t, closeDeferred.Fired())
	assert.True(t, closed)
}

func TestCloseDiscardsInFlightChannelFrames(t *testing.T) {
	port := &recordingPort{}
	c, err := NewConnection(NewConfig(testURI()), port.write)
	require.NoError(t, err)
	require.NoError(t, feedMethod(t, c, 0, startMethod(wire.ConnectionStart{Mechanisms: "PLAIN"})))
	require.NoError(t, feedMethod(t, c, 0, wire.ConnectionTune{}))
	require.NoError(t, feedMethod(t, c, 0, wire.ConnectionOpenOk{}))

	ch, _ := c.OpenChannel(ctx)
	require.NoError(t, feedMethod(t, c, ch.ID(), wire.ChannelOpenOk{}))

	d := c.Close()

	// A delivery the broker sent before it processed our close must not
	// fault the closing connection.
	require.NoError(t, feedMethod(t, c, ch.ID(), wire.BasicDeliver{ConsumerTag: "ct", DeliveryTag: 1}))

	require.NoError(t, feedMethod(t, c, 0, wire.ConnectionCloseOk{}))
	assert.True(t, d.Fired())
}

func TestUnknownChannelFaultsConnection(t *testing.T) {
	port := &recordingPort{}
	c, err := NewConnection(NewConfig(testURI()), port.write)
	require.NoError(t, err)
	require.NoError(t, feedMethod(t, c, 0, startMethod(wire.ConnectionStart{Mechanisms: "PLAIN"})))
	require.NoError(t, feedMethod(t, c, 0, wire.ConnectionTune{}))
	require.NoError(t, feedMethod(t, c, 0, wire.ConnectionOpenOk{}))

	feedMethod(t, c, 7, wire.ChannelOpenOk{})
	require.NotNil(t, c.closeErr)
	assert.Equal(t, ErrBroker, c.closeErr.Kind)
	assert.EqualValues(t, 504, c.closeErr.ReplyCode)
}
