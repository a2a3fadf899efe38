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

// conn.go implements the connection engine: handshake, per-channel frame
// routing, heartbeat pacing, blocked-connection state, and graceful
// shutdown.
package amqp

import (
	"bytes"
	"context"
	"strings"
	"time"

	"github.com/hashicorp/go-multierror"

	"github.com/goamqp/amqp/internal/assembler"
	"github.com/goamqp/amqp/internal/liveness"
	"github.com/goamqp/amqp/internal/metrics"
	"github.com/goamqp/amqp/internal/rescue"
	"github.com/goamqp/amqp/internal/tracing"
	"github.com/goamqp/amqp/logger"
	"github.com/goamqp/amqp/wire"
)

// rescueCall runs fn guarded against panics, for application callbacks
// invoked from inside frame dispatch.
func rescueCall(fn func()) { rescue.Call(fn) }

type connState uint8

const (
	stateAwaitingStart connState = iota
	stateAwaitingTune
	stateAwaitingOpenOk
	stateOpen
	stateClosing
	stateClosed
	stateFailed
)

// Port is the outbound byte sink a Connection writes through. The engine
// never opens a socket itself, it only hands fully-formed frame bytes to
// this callback and expects them either fully accepted or treated as
// fatal; nothing is buffered internally. See the transport package for a
// ready-made net.Conn/tls.Conn implementation.
type Port func(b []byte) error

// Connection is one AMQP 0-9-1 connection to a broker. It is not safe for
// concurrent use: exactly one goroutine may call into a Connection at a
// time, and all callbacks fire synchronously on that goroutine.
type Connection struct {
	cfg   Config
	write Port
	log   logger.Logger

	asm   *assembler.Assembler
	token liveness.Token

	state    connState
	closeErr *Error

	channelMax uint16
	frameMax   uint32
	heartbeat  uint16
	blocked    bool

	lastSent time.Time
	lastRecv time.Time

	channels map[uint16]*Channel
	nextID   uint16

	closeOk *Deferred
}

// NewConnection constructs a Connection and immediately emits the 8-byte
// AMQP protocol header via write, after which the broker is expected to
// answer with connection.start.
func NewConnection(cfg Config, write Port) (*Connection, error) {
	log := cfg.Logger
	if (logger.Logger{}) == log {
		log = logger.Std()
	}
	c := &Connection{
		cfg:      cfg,
		write:    write,
		log:      log,
		asm:      assembler.New(),
		state:    stateAwaitingStart,
		channels: make(map[uint16]*Channel),
		nextID:   1,
		lastSent: zeroTime(),
		lastRecv: zeroTime(),
	}
	if err := c.writeRaw(wire.ProtocolHeader); err != nil {
		return nil, newErr(ErrTransport, err)
	}
	return c, nil
}

func zeroTime() time.Time { return time.Time{} }

// IsOpen reports whether the handshake has completed and the connection
// has not started closing.
func (c *Connection) IsOpen() bool { return c.state == stateOpen }

// Blocked reports the current connection.blocked/unblocked state.
func (c *Connection) Blocked() bool { return c.blocked }

// Feed hands newly read bytes to the connection, which peels and processes
// every complete frame currently available. It updates the last-received
// timer used for heartbeat-timeout detection.
func (c *Connection) Feed(b []byte) error {
	if c.state == stateClosed || c.state == stateFailed {
		return ErrConnectionClosed
	}
	c.asm.Feed(b)
	metrics.BytesReceived.Add(float64(len(b)))
	if len(b) > 0 {
		c.lastRecv = now()
	}

	for {
		f, ok, err := c.asm.Peel()
		if err != nil {
			c.fail(newErr(ErrDecode, err))
			return c.closeErr
		}
		if !ok {
			return nil
		}
		metrics.FramesReceived.WithLabelValues(frameTypeName(f.Type)).Inc()

		watch := c.token.Watch()
		if err := c.dispatch(f); err != nil {
			return err
		}
		if !watch.Alive() {
			// A callback destroyed this connection mid-dispatch; abort
			// rather than touch torn-down state.
			return nil
		}
	}
}

func frameTypeName(t wire.FrameType) string {
	switch t {
	case wire.FrameMethod:
		return "method"
	case wire.FrameHeader:
		return "header"
	case wire.FrameBody:
		return "body"
	case wire.FrameHeartbeat:
		return "heartbeat"
	default:
		return "unknown"
	}
}

func (c *Connection) dispatch(f wire.Frame) error {
	if f.Type == wire.FrameHeartbeat {
		if c.cfg.OnHeartbeat != nil {
			rescueCall(c.cfg.OnHeartbeat)
		}
		return nil
	}

	if f.Channel == 0 {
		return c.handleConnectionFrame(f)
	}
	if c.state == stateClosing {
		// Channel work was dropped when connection.close went out; frames
		// the broker had already queued for those channels are discarded
		// until close-ok arrives.
		return nil
	}

	ch, ok := c.channels[f.Channel]
	if !ok {
		c.fail(brokerErr(504, "channel error: unknown channel"))
		return c.closeErr
	}
	return ch.handleFrame(f)
}

func (c *Connection) handleConnectionFrame(f wire.Frame) error {
	if f.Type != wire.FrameMethod {
		c.fail(newErrf(ErrProtocol, "unexpected frame type %d on channel 0", f.Type))
		return c.closeErr
	}
	m, err := wire.DecodeMethodFrame(f.Payload)
	if err != nil {
		c.fail(newErr(ErrDecode, err))
		return c.closeErr
	}

	switch mm := m.(type) {
	case wire.ConnectionStart:
		return c.onStart(mm)
	case wire.ConnectionSecure:
		return c.onSecure(mm)
	case wire.ConnectionTune:
		return c.onTune(mm)
	case wire.ConnectionOpenOk:
		return c.onOpenOk()
	case wire.ConnectionClose:
		return c.onBrokerClose(mm)
	case wire.ConnectionCloseOk:
		return c.onCloseOk()
	case wire.ConnectionBlocked:
		c.blocked = true
		if c.cfg.OnBlocked != nil {
			rescueCall(func() { c.cfg.OnBlocked(mm.Reason) })
		}
		return nil
	case wire.ConnectionUnblocked:
		c.blocked = false
		if c.cfg.OnUnblocked != nil {
			rescueCall(c.cfg.OnUnblocked)
		}
		return nil
	default:
		c.fail(newErrf(ErrProtocol, "unexpected method on channel 0: class %d method %d", m.ClassID(), m.MethodID()))
		return c.closeErr
	}
}

func (c *Connection) onStart(m wire.ConnectionStart) error {
	if c.state != stateAwaitingStart {
		c.fail(newErrf(ErrProtocol, "unexpected connection.start in state %d", c.state))
		return c.closeErr
	}
	if m.VersionMajor != 0 || m.VersionMinor != 9 {
		c.fail(newErrf(ErrProtocol, "unsupported AMQP version %d-%d", m.VersionMajor, m.VersionMinor))
		return c.closeErr
	}

	clientProps := c.cfg.clientProperties()
	if c.cfg.OnProperties != nil {
		rescueCall(func() { c.cfg.OnProperties(m.ServerProperties, &clientProps) })
	}

	mechanism := c.cfg.mechanismOrDefault()
	offered := false
	for _, name := range strings.Fields(m.Mechanisms) {
		if name == mechanism {
			offered = true
		}
	}
	if !offered {
		c.fail(newErrf(ErrAuth, "broker does not offer SASL mechanism %s", mechanism))
		return c.closeErr
	}
	var response string
	switch mechanism {
	case "EXTERNAL":
		response = wire.ExternalResponse()
	default:
		mechanism = wire.MechanismPlain
		response = wire.PlainResponse(c.cfg.URI.User, c.cfg.URI.Password)
	}

	c.state = stateAwaitingTune
	return c.sendMethod(0, wire.ConnectionStartOk{
		ClientProperties: clientProps,
		Mechanism:        mechanism,
		Response:         response,
		Locale:           "en_US",
	})
}

func (c *Connection) onSecure(m wire.ConnectionSecure) error {
	// PLAIN has no challenge/response round-trip; a broker that sends a
	// non-trivial challenge wants a mechanism this client doesn't speak.
	if m.Challenge != "" {
		c.fail(newErrf(ErrAuth, "unsupported connection.secure challenge"))
		return c.closeErr
	}
	return c.sendMethod(0, wire.ConnectionSecureOk{Response: wire.PlainResponse(c.cfg.URI.User, c.cfg.URI.Password)})
}

func (c *Connection) onTune(m wire.ConnectionTune) error {
	if c.state != stateAwaitingTune {
		c.fail(newErrf(ErrProtocol, "unexpected connection.tune in state %d", c.state))
		return c.closeErr
	}
	channelMax, frameMax, heartbeat := c.cfg.negotiate(m.ChannelMax, m.FrameMax, m.Heartbeat)
	c.channelMax = channelMax
	c.frameMax = frameMax
	c.heartbeat = heartbeat
	c.asm.SetMaxFrame(frameMax)

	if err := c.sendMethod(0, wire.ConnectionTuneOk{ChannelMax: channelMax, FrameMax: frameMax, Heartbeat: heartbeat}); err != nil {
		return err
	}
	c.state = stateAwaitingOpenOk
	return c.sendMethod(0, wire.ConnectionOpen{VirtualHost: c.cfg.URI.VHost})
}

func (c *Connection) onOpenOk() error {
	if c.state != stateAwaitingOpenOk {
		c.fail(newErrf(ErrProtocol, "unexpected connection.open-ok in state %d", c.state))
		return c.closeErr
	}
	c.state = stateOpen
	if c.cfg.OnConnected != nil {
		rescueCall(c.cfg.OnConnected)
	}
	if c.cfg.OnReady != nil {
		rescueCall(c.cfg.OnReady)
	}
	return nil
}

func (c *Connection) onBrokerClose(m wire.ConnectionClose) error {
	err := brokerErr(m.ReplyCode, m.ReplyText)
	if c.duringHandshake() && (m.ReplyCode == 403 || m.ReplyCode == 530) {
		err = newErrf(ErrAuth, "%s", m.ReplyText)
		err.ReplyCode = m.ReplyCode
		err.ReplyText = m.ReplyText
	}
	_ = c.sendMethod(0, wire.ConnectionCloseOk{})
	c.finish(err)
	return nil
}

// duringHandshake reports whether the connection has not yet completed the
// AMQP handshake. A 403/530 connection.close in this window is an
// authentication failure, not a generic broker error.
func (c *Connection) duringHandshake() bool {
	switch c.state {
	case stateAwaitingStart, stateAwaitingTune, stateAwaitingOpenOk:
		return true
	default:
		return false
	}
}

func (c *Connection) onCloseOk() error {
	if c.state != stateClosing {
		return nil
	}
	c.finish(c.closeErr)
	return nil
}

// Close initiates a graceful close: sends connection.close and waits for
// connection.close-ok (delivered to the returned Deferred's success
// callback) before the connection transitions to closed. No further
// outbound frames besides connection.close itself are emitted, and every
// channel's pending deferreds fail before OnClosed fires.
func (c *Connection) Close() *Deferred {
	d := NewDeferred()
	if c.state == stateClosed || c.state == stateFailed || c.state == stateClosing {
		d.Resolve()
		return d
	}
	c.state = stateClosing
	c.closeOk = d
	c.failChannels(ErrConnectionClosed)
	_ = c.sendMethod(0, wire.ConnectionClose{ReplyCode: 200})
	return d
}

// fail faults the whole connection with err: every channel's pending
// deferreds fail, OnError/OnClosed fire, and the connection becomes
// unusable. Decode and protocol errors always land here; there is no
// recovering a connection whose framing is suspect.
func (c *Connection) fail(err *Error) {
	if c.state == stateFailed || c.state == stateClosed {
		return
	}
	c.state = stateFailed
	c.finish(err)
}

func (c *Connection) finish(err *Error) {
	prevState := c.state
	c.closeErr = err
	if prevState != stateFailed {
		c.state = stateClosed
	}
	c.failChannels(err)
	c.token.Invalidate()

	if err != nil && err != ErrConnectionClosed && c.cfg.OnError != nil {
		rescueCall(func() { c.cfg.OnError(err) })
	}
	if c.closeOk != nil {
		c.closeOk.Resolve()
	}
	if c.cfg.OnClosed != nil {
		rescueCall(c.cfg.OnClosed)
	}
	c.asm.Close()
}

func (c *Connection) failChannels(err error) {
	var agg error
	for id, ch := range c.channels {
		if ferr := ch.fault(err); ferr != nil {
			agg = multierror.Append(agg, ferr)
		}
		delete(c.channels, id)
	}
	if agg != nil {
		c.log.Warnf("errors while failing channels on teardown: %v", agg)
	}
}

// Tick drives heartbeat timing; the engine owns no timer of its own, so
// the application calls it periodically. Emits a heartbeat if interval/2
// seconds have elapsed since the last outbound bytes, and faults the
// connection if 2x interval seconds have elapsed since the last inbound
// bytes.
func (c *Connection) Tick(t time.Time) {
	if c.heartbeat == 0 || c.state != stateOpen {
		return
	}
	interval := time.Duration(c.heartbeat) * time.Second

	if !c.lastRecv.IsZero() && t.Sub(c.lastRecv) >= 2*interval {
		metrics.HeartbeatsMissed.Inc()
		c.fail(newErrf(ErrTransport, "heartbeat timeout: no data received for %s", 2*interval))
		return
	}
	if c.lastSent.IsZero() || t.Sub(c.lastSent) >= interval/2 {
		if err := c.send(wire.Heartbeat); err == nil {
			metrics.HeartbeatsSent.Inc()
		}
	}
}

func now() time.Time { return time.Now() }

func (c *Connection) send(f wire.Frame) error {
	var buf bytes.Buffer
	buf.Grow(f.EncodedLen())
	f.Encode(&buf)
	if err := c.writeRaw(buf.Bytes()); err != nil {
		return newErr(ErrTransport, err)
	}
	metrics.FramesSent.WithLabelValues(frameTypeName(f.Type)).Inc()
	return nil
}

func (c *Connection) writeRaw(b []byte) error {
	if err := c.write(b); err != nil {
		return err
	}
	c.lastSent = now()
	metrics.BytesSent.Add(float64(len(b)))
	return nil
}

func (c *Connection) sendMethod(channel uint16, m wire.Method) error {
	payload, err := wire.EncodeMethodFrame(m)
	if err != nil {
		return newErr(ErrDecode, err)
	}
	return c.send(wire.Frame{Type: wire.FrameMethod, Channel: channel, Payload: payload})
}

func (c *Connection) sendMethod0Header(channel uint16, bodySize uint64, p wire.Properties) error {
	var buf bytes.Buffer
	if err := wire.EncodeContentHeader(&buf, bodySize, p); err != nil {
		return newErr(ErrDecode, err)
	}
	return c.send(wire.Frame{Type: wire.FrameHeader, Channel: channel, Payload: buf.Bytes()})
}

// OpenChannel allocates the lowest free channel id and opens it. The
// returned Deferred resolves once channel.open-ok arrives.
func (c *Connection) OpenChannel(ctx context.Context) (*Channel, *Deferred) {
	d := NewDeferred()
	if c.state != stateOpen {
		d.Fail(ErrConnectionClosed)
		return nil, d
	}

	id, ok := c.allocateChannelID()
	if !ok {
		d.Fail(ErrNoChannelsAvailable)
		return nil, d
	}

	ch := newChannel(c, id)
	c.channels[id] = ch
	_, end := tracing.Start(ctx, "channel.open")

	ch.enqueueSync(&syncOp{
		send:         func() error { return c.sendMethod(id, wire.ChannelOpen{}) },
		expectClass:  wire.ClassChannel,
		expectMethod: wire.MethodChannelOpenOk,
		onReply: func(wire.Method) {
			ch.state = chanOpen
			metrics.ChannelsOpen.Inc()
			end(nil)
			d.Resolve()
		},
		onFail: func(err error) {
			end(err)
			d.Fail(err)
		},
	})
	return ch, d
}

func (c *Connection) allocateChannelID() (uint16, bool) {
	max := c.channelMax
	if max == 0 {
		max = DefaultChannelMax
	}
	for i := uint16(1); i <= max; i++ {
		if _, used := c.channels[i]; !used {
			return i, true
		}
	}
	return 0, false
}

func (c *Connection) releaseChannel(id uint16) {
	delete(c.channels, id)
	metrics.ChannelsOpen.Dec()
}
