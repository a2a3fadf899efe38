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

// methods.go is the method catalog: one Go struct per AMQP method
// argument set, keyed in a decode table by (class-id, method-id).
package wire

import (
	"bytes"

	"github.com/goamqp/amqp/field"
)

// Class IDs.
const (
	ClassConnection = 10
	ClassChannel    = 20
	ClassExchange   = 40
	ClassQueue      = 50
	ClassBasic      = 60
	ClassTx         = 90
	ClassConfirm    = 85
)

// Method is implemented by every decoded method argument set. ClassID and
// MethodID identify the entry in the catalog; Encode serializes the
// arguments (not including the class/method header, which Frame callers
// write separately via EncodeMethodFrame).
type Method interface {
	ClassID() uint16
	MethodID() uint16
	Encode(buf *bytes.Buffer) error
}

type methodKey struct{ class, method uint16 }

type decodeFunc func([]byte) (Method, error)

var decoders = map[methodKey]decodeFunc{}

func register(class, method uint16, fn decodeFunc) {
	decoders[methodKey{class, method}] = fn
}

// EncodeMethodFrame builds a complete method frame payload: the 2-byte
// class-id, 2-byte method-id, then the method's own argument encoding.
func EncodeMethodFrame(m Method) ([]byte, error) {
	var buf bytes.Buffer
	putUint16(&buf, m.ClassID())
	putUint16(&buf, m.MethodID())
	if err := m.Encode(&buf); err != nil {
		return nil, err
	}
	return buf.Bytes(), nil
}

// DecodeMethodFrame parses a method frame payload into its class/method
// header and decodes the typed argument struct from the catalog.
func DecodeMethodFrame(payload []byte) (Method, error) {
	class, rest, err := getUint16(payload)
	if err != nil {
		return nil, err
	}
	method, rest, err := getUint16(rest)
	if err != nil {
		return nil, err
	}
	fn, ok := decoders[methodKey{class, method}]
	if !ok {
		return nil, ErrUnknownMethod
	}
	return fn(rest)
}

// ---- connection ----

const (
	MethodConnectionStart    = 10
	MethodConnectionStartOk  = 11
	MethodConnectionSecure   = 20
	MethodConnectionSecureOk = 21
	MethodConnectionTune     = 30
	MethodConnectionTuneOk   = 31
	MethodConnectionOpen     = 40
	MethodConnectionOpenOk   = 41
	MethodConnectionClose    = 50
	MethodConnectionCloseOk  = 51
	MethodConnectionBlocked  = 60
	MethodConnectionUnblocked = 61
)

type ConnectionStart struct {
	VersionMajor, VersionMinor uint8
	ServerProperties           field.Table
	Mechanisms                 string
	Locales                    string
}

func (ConnectionStart) ClassID() uint16  { return ClassConnection }
func (ConnectionStart) MethodID() uint16 { return MethodConnectionStart }
func (m ConnectionStart) Encode(buf *bytes.Buffer) error {
	putUint8(buf, m.VersionMajor)
	putUint8(buf, m.VersionMinor)
	if err := EncodeTable(buf, m.ServerProperties); err != nil {
		return err
	}
	putLongString(buf, m.Mechanisms)
	putLongString(buf, m.Locales)
	return nil
}

func decodeConnectionStart(b []byte) (Method, error) {
	var m ConnectionStart
	var err error
	m.VersionMajor, b, err = getUint8(b)
	if err != nil {
		return nil, err
	}
	m.VersionMinor, b, err = getUint8(b)
	if err != nil {
		return nil, err
	}
	m.ServerProperties, b, err = DecodeTable(b)
	if err != nil {
		return nil, err
	}
	m.Mechanisms, b, err = getLongString(b)
	if err != nil {
		return nil, err
	}
	m.Locales, _, err = getLongString(b)
	return m, err
}

type ConnectionStartOk struct {
	ClientProperties field.Table
	Mechanism        string
	Response         string
	Locale           string
}

func (ConnectionStartOk) ClassID() uint16  { return ClassConnection }
func (ConnectionStartOk) MethodID() uint16 { return MethodConnectionStartOk }
func (m ConnectionStartOk) Encode(buf *bytes.Buffer) error {
	if err := EncodeTable(buf, m.ClientProperties); err != nil {
		return err
	}
	if err := putShortString(buf, m.Mechanism); err != nil {
		return err
	}
	putLongString(buf, m.Response)
	return putShortString(buf, m.Locale)
}

func decodeConnectionStartOk(b []byte) (Method, error) {
	var m ConnectionStartOk
	var err error
	m.ClientProperties, b, err = DecodeTable(b)
	if err != nil {
		return nil, err
	}
	m.Mechanism, b, err = getShortString(b)
	if err != nil {
		return nil, err
	}
	m.Response, b, err = getLongString(b)
	if err != nil {
		return nil, err
	}
	m.Locale, _, err = getShortString(b)
	return m, err
}

type ConnectionSecure struct{ Challenge string }

func (ConnectionSecure) ClassID() uint16  { return ClassConnection }
func (ConnectionSecure) MethodID() uint16 { return MethodConnectionSecure }
func (m ConnectionSecure) Encode(buf *bytes.Buffer) error {
	putLongString(buf, m.Challenge)
	return nil
}

func decodeConnectionSecure(b []byte) (Method, error) {
	s, _, err := getLongString(b)
	return ConnectionSecure{Challenge: s}, err
}

type ConnectionSecureOk struct{ Response string }

func (ConnectionSecureOk) ClassID() uint16  { return ClassConnection }
func (ConnectionSecureOk) MethodID() uint16 { return MethodConnectionSecureOk }
func (m ConnectionSecureOk) Encode(buf *bytes.Buffer) error {
	putLongString(buf, m.Response)
	return nil
}

func decodeConnectionSecureOk(b []byte) (Method, error) {
	s, _, err := getLongString(b)
	return ConnectionSecureOk{Response: s}, err
}

type ConnectionTune struct {
	ChannelMax uint16
	FrameMax   uint32
	Heartbeat  uint16
}

func (ConnectionTune) ClassID() uint16  { return ClassConnection }
func (ConnectionTune) MethodID() uint16 { return MethodConnectionTune }
func (m ConnectionTune) Encode(buf *bytes.Buffer) error {
	putUint16(buf, m.ChannelMax)
	putUint32(buf, m.FrameMax)
	putUint16(buf, m.Heartbeat)
	return nil
}

func decodeConnectionTune(b []byte) (Method, error) {
	var m ConnectionTune
	var err error
	m.ChannelMax, b, err = getUint16(b)
	if err != nil {
		return nil, err
	}
	m.FrameMax, b, err = getUint32(b)
	if err != nil {
		return nil, err
	}
	m.Heartbeat, _, err = getUint16(b)
	return m, err
}

type ConnectionTuneOk ConnectionTune

func (ConnectionTuneOk) ClassID() uint16  { return ClassConnection }
func (ConnectionTuneOk) MethodID() uint16 { return MethodConnectionTuneOk }
func (m ConnectionTuneOk) Encode(buf *bytes.Buffer) error {
	return ConnectionTune(m).Encode(buf)
}

func decodeConnectionTuneOk(b []byte) (Method, error) {
	m, err := decodeConnectionTune(b)
	if err != nil {
		return nil, err
	}
	return ConnectionTuneOk(m.(ConnectionTune)), nil
}

type ConnectionOpen struct {
	VirtualHost string
}

func (ConnectionOpen) ClassID() uint16  { return ClassConnection }
func (ConnectionOpen) MethodID() uint16 { return MethodConnectionOpen }
func (m ConnectionOpen) Encode(buf *bytes.Buffer) error {
	if err := putShortString(buf, m.VirtualHost); err != nil {
		return err
	}
	// reserved-1 (capabilities, shortstr) and reserved-2 (insist, bit)
	putUint8(buf, 0)
	putUint8(buf, 0)
	return nil
}

func decodeConnectionOpen(b []byte) (Method, error) {
	vhost, _, err := getShortString(b)
	return ConnectionOpen{VirtualHost: vhost}, err
}

type ConnectionOpenOk struct{}

func (ConnectionOpenOk) ClassID() uint16                     { return ClassConnection }
func (ConnectionOpenOk) MethodID() uint16                    { return MethodConnectionOpenOk }
func (ConnectionOpenOk) Encode(buf *bytes.Buffer) error { putUint8(buf, 0); return nil }

func decodeConnectionOpenOk(b []byte) (Method, error) { return ConnectionOpenOk{}, nil }

type ConnectionClose struct {
	ReplyCode uint16
	ReplyText string
	ClassID_  uint16
	MethodID_ uint16
}

func (ConnectionClose) ClassID() uint16  { return ClassConnection }
func (ConnectionClose) MethodID() uint16 { return MethodConnectionClose }
func (m ConnectionClose) Encode(buf *bytes.Buffer) error {
	putUint16(buf, m.ReplyCode)
	if err := putShortString(buf, m.ReplyText); err != nil {
		return err
	}
	putUint16(buf, m.ClassID_)
	putUint16(buf, m.MethodID_)
	return nil
}

func decodeConnectionClose(b []byte) (Method, error) {
	var m ConnectionClose
	var err error
	m.ReplyCode, b, err = getUint16(b)
	if err != nil {
		return nil, err
	}
	m.ReplyText, b, err = getShortString(b)
	if err != nil {
		return nil, err
	}
	m.ClassID_, b, err = getUint16(b)
	if err != nil {
		return nil, err
	}
	m.MethodID_, _, err = getUint16(b)
	return m, err
}

type ConnectionCloseOk struct{}

func (ConnectionCloseOk) ClassID() uint16                  { return ClassConnection }
func (ConnectionCloseOk) MethodID() uint16                 { return MethodConnectionCloseOk }
func (ConnectionCloseOk) Encode(buf *bytes.Buffer) error { return nil }

func decodeConnectionCloseOk(b []byte) (Method, error) { return ConnectionCloseOk{}, nil }

type ConnectionBlocked struct{ Reason string }

func (ConnectionBlocked) ClassID() uint16  { return ClassConnection }
func (ConnectionBlocked) MethodID() uint16 { return MethodConnectionBlocked }
func (m ConnectionBlocked) Encode(buf *bytes.Buffer) error {
	return putShortString(buf, m.Reason)
}

func decodeConnectionBlocked(b []byte) (Method, error) {
	s, _, err := getShortString(b)
	return ConnectionBlocked{Reason: s}, err
}

type ConnectionUnblocked struct{}

func (ConnectionUnblocked) ClassID() uint16                  { return ClassConnection }
func (ConnectionUnblocked) MethodID() uint16                 { return MethodConnectionUnblocked }
func (ConnectionUnblocked) Encode(buf *bytes.Buffer) error { return nil }

func decodeConnectionUnblocked(b []byte) (Method, error) { return ConnectionUnblocked{}, nil }

// ---- channel ----

const (
	MethodChannelOpen    = 10
	MethodChannelOpenOk  = 11
	MethodChannelFlow    = 20
	MethodChannelFlowOk  = 21
	MethodChannelClose   = 40
	MethodChannelCloseOk = 41
)

type ChannelOpen struct{}

func (ChannelOpen) ClassID() uint16                     { return ClassChannel }
func (ChannelOpen) MethodID() uint16                    { return MethodChannelOpen }
func (ChannelOpen) Encode(buf *bytes.Buffer) error { putUint8(buf, 0); return nil }

func decodeChannelOpen(b []byte) (Method, error) { return ChannelOpen{}, nil }

type ChannelOpenOk struct{}

func (ChannelOpenOk) ClassID() uint16  { return ClassChannel }
func (ChannelOpenOk) MethodID() uint16 { return MethodChannelOpenOk }
func (ChannelOpenOk) Encode(buf *bytes.Buffer) error {
	putLongString(buf, "")
	return nil
}

func decodeChannelOpenOk(b []byte) (Method, error) { return ChannelOpenOk{}, nil }

type ChannelFlow struct{ Active bool }

func (ChannelFlow) ClassID() uint16  { return ClassChannel }
func (ChannelFlow) MethodID() uint16 { return MethodChannelFlow }
func (m ChannelFlow) Encode(buf *bytes.Buffer) error {
	p := newBitPacker(buf)
	p.Put(m.Active)
	p.Flush()
	return nil
}

func decodeChannelFlow(b []byte) (Method, error) {
	u := newBitUnpacker(b)
	active, err := u.Get()
	return ChannelFlow{Active: active}, err
}

type ChannelFlowOk struct{ Active bool }

func (ChannelFlowOk) ClassID() uint16  { return ClassChannel }
func (ChannelFlowOk) MethodID() uint16 { return MethodChannelFlowOk }
func (m ChannelFlowOk) Encode(buf *bytes.Buffer) error {
	p := newBitPacker(buf)
	p.Put(m.Active)
	p.Flush()
	return nil
}

func decodeChannelFlowOk(b []byte) (Method, error) {
	u := newBitUnpacker(b)
	active, err := u.Get()
	return ChannelFlowOk{Active: active}, err
}

type ChannelClose struct {
	ReplyCode uint16
	ReplyText string
	ClassID_  uint16
	MethodID_ uint16
}

func (ChannelClose) ClassID() uint16  { return ClassChannel }
func (ChannelClose) MethodID() uint16 { return MethodChannelClose }
func (m ChannelClose) Encode(buf *bytes.Buffer) error {
	putUint16(buf, m.ReplyCode)
	if err := putShortString(buf, m.ReplyText); err != nil {
		return err
	}
	putUint16(buf, m.ClassID_)
	putUint16(buf, m.MethodID_)
	return nil
}

func decodeChannelClose(b []byte) (Method, error) {
	var m ChannelClose
	var err error
	m.ReplyCode, b, err = getUint16(b)
	if err != nil {
		return nil, err
	}
	m.ReplyText, b, err = getShortString(b)
	if err != nil {
		return nil, err
	}
	m.ClassID_, b, err = getUint16(b)
	if err != nil {
		return nil, err
	}
	m.MethodID_, _, err = getUint16(b)
	return m, err
}

type ChannelCloseOk struct{}

func (ChannelCloseOk) ClassID() uint16                  { return ClassChannel }
func (ChannelCloseOk) MethodID() uint16                 { return MethodChannelCloseOk }
func (ChannelCloseOk) Encode(buf *bytes.Buffer) error { return nil }

func decodeChannelCloseOk(b []byte) (Method, error) { return ChannelCloseOk{}, nil }

// ---- exchange ----

const (
	MethodExchangeDeclare   = 10
	MethodExchangeDeclareOk = 11
	MethodExchangeDelete    = 20
	MethodExchangeDeleteOk  = 21
	MethodExchangeBind      = 30
	MethodExchangeBindOk    = 31
	MethodExchangeUnbind    = 40
	MethodExchangeUnbindOk  = 51
)

type ExchangeDeclare struct {
	Exchange   string
	Type       string
	Passive    bool
	Durable    bool
	AutoDelete bool
	Internal   bool
	NoWait     bool
	Arguments  field.Table
}

func (ExchangeDeclare) ClassID() uint16  { return ClassExchange }
func (ExchangeDeclare) MethodID() uint16 { return MethodExchangeDeclare }
func (m ExchangeDeclare) Encode(buf *bytes.Buffer) error {
	putUint16(buf, 0) // reserved-1 (ticket)
	if err := putShortString(buf, m.Exchange); err != nil {
		return err
	}
	if err := putShortString(buf, m.Type); err != nil {
		return err
	}
	p := newBitPacker(buf)
	p.Put(m.Passive)
	p.Put(m.Durable)
	p.Put(m.AutoDelete)
	p.Put(m.Internal)
	p.Put(m.NoWait)
	p.Flush()
	return EncodeTable(buf, m.Arguments)
}

func decodeExchangeDeclare(b []byte) (Method, error) {
	var m ExchangeDeclare
	var err error
	_, b, err = getUint16(b)
	if err != nil {
		return nil, err
	}
	m.Exchange, b, err = getShortString(b)
	if err != nil {
		return nil, err
	}
	m.Type, b, err = getShortString(b)
	if err != nil {
		return nil, err
	}
	u := newBitUnpacker(b)
	if m.Passive, err = u.Get(); err != nil {
		return nil, err
	}
	if m.Durable, err = u.Get(); err != nil {
		return nil, err
	}
	if m.AutoDelete, err = u.Get(); err != nil {
		return nil, err
	}
	if m.Internal, err = u.Get(); err != nil {
		return nil, err
	}
	if m.NoWait, err = u.Get(); err != nil {
		return nil, err
	}
	m.Arguments, _, err = DecodeTable(u.Rest())
	return m, err
}

type ExchangeDeclareOk struct{}

func (ExchangeDeclareOk) ClassID() uint16                  { return ClassExchange }
func (ExchangeDeclareOk) MethodID() uint16                 { return MethodExchangeDeclareOk }
func (ExchangeDeclareOk) Encode(buf *bytes.Buffer) error { return nil }

func decodeExchangeDeclareOk(b []byte) (Method, error) { return ExchangeDeclareOk{}, nil }

type ExchangeDelete struct {
	Exchange string
	IfUnused bool
	NoWait   bool
}

func (ExchangeDelete) ClassID() uint16  { return ClassExchange }
func (ExchangeDelete) MethodID() uint16 { return MethodExchangeDelete }
func (m ExchangeDelete) Encode(buf *bytes.Buffer) error {
	putUint16(buf, 0)
	if err := putShortString(buf, m.Exchange); err != nil {
		return err
	}
	p := newBitPacker(buf)
	p.Put(m.IfUnused)
	p.Put(m.NoWait)
	p.Flush()
	return nil
}

func decodeExchangeDelete(b []byte) (Method, error) {
	var m ExchangeDelete
	var err error
	_, b, err = getUint16(b)
	if err != nil {
		return nil, err
	}
	m.Exchange, b, err = getShortString(b)
	if err != nil {
		return nil, err
	}
	u := newBitUnpacker(b)
	if m.IfUnused, err = u.Get(); err != nil {
		return nil, err
	}
	m.NoWait, err = u.Get()
	return m, err
}

type ExchangeDeleteOk struct{}

func (ExchangeDeleteOk) ClassID() uint16                  { return ClassExchange }
func (ExchangeDeleteOk) MethodID() uint16                 { return MethodExchangeDeleteOk }
func (ExchangeDeleteOk) Encode(buf *bytes.Buffer) error { return nil }

func decodeExchangeDeleteOk(b []byte) (Method, error) { return ExchangeDeleteOk{}, nil }

type ExchangeBind struct {
	Destination string
	Source      string
	RoutingKey  string
	NoWait      bool
	Arguments   field.Table
}

func (ExchangeBind) ClassID() uint16  { return ClassExchange }
func (ExchangeBind) MethodID() uint16 { return MethodExchangeBind }
func (m ExchangeBind) Encode(buf *bytes.Buffer) error {
	putUint16(buf, 0)
	if err := putShortString(buf, m.Destination); err != nil {
		return err
	}
	if err := putShortString(buf, m.Source); err != nil {
		return err
	}
	if err := putShortString(buf, m.RoutingKey); err != nil {
		return err
	}
	p := newBitPacker(buf)
	p.Put(m.NoWait)
	p.Flush()
	return EncodeTable(buf, m.Arguments)
}

func decodeExchangeBind(b []byte) (Method, error) {
	var m ExchangeBind
	var err error
	_, b, err = getUint16(b)
	if err != nil {
		return nil, err
	}
	m.Destination, b, err = getShortString(b)
	if err != nil {
		return nil, err
	}
	m.Source, b, err = getShortString(b)
	if err != nil {
		return nil, err
	}
	m.RoutingKey, b, err = getShortString(b)
	if err != nil {
		return nil, err
	}
	u := newBitUnpacker(b)
	if m.NoWait, err = u.Get(); err != nil {
		return nil, err
	}
	m.Arguments, _, err = DecodeTable(u.Rest())
	return m, err
}

type ExchangeBindOk struct{}

func (ExchangeBindOk) ClassID() uint16                  { return ClassExchange }
func (ExchangeBindOk) MethodID() uint16                 { return MethodExchangeBindOk }
func (ExchangeBindOk) Encode(buf *bytes.Buffer) error { return nil }

func decodeExchangeBindOk(b []byte) (Method, error) { return ExchangeBindOk{}, nil }

type ExchangeUnbind struct {
	Destination string
	Source      string
	RoutingKey  string
	NoWait      bool
	Arguments   field.Table
}

func (ExchangeUnbind) ClassID() uint16  { return ClassExchange }
func (ExchangeUnbind) MethodID() uint16 { return MethodExchangeUnbind }
func (m ExchangeUnbind) Encode(buf *bytes.Buffer) error {
	return ExchangeBind(m).Encode(buf)
}

func decodeExchangeUnbind(b []byte) (Method, error) {
	m, err := decodeExchangeBind(b)
	if err != nil {
		return nil, err
	}
	return ExchangeUnbind(m.(ExchangeBind)), nil
}

type ExchangeUnbindOk struct{}

func (ExchangeUnbindOk) ClassID() uint16                  { return ClassExchange }
func (ExchangeUnbindOk) MethodID() uint16                 { return MethodExchangeUnbindOk }
func (ExchangeUnbindOk) Encode(buf *bytes.Buffer) error { return nil }

func decodeExchangeUnbindOk(b []byte) (Method, error) { return ExchangeUnbindOk{}, nil }

// ---- queue ----

const (
	MethodQueueDeclare   = 10
	MethodQueueDeclareOk = 11
	MethodQueueBind      = 20
	MethodQueueBindOk    = 21
	MethodQueuePurge     = 30
	MethodQueuePurgeOk   = 31
	MethodQueueDelete    = 40
	MethodQueueDeleteOk  = 41
	MethodQueueUnbind    = 50
	MethodQueueUnbindOk  = 51
)

type QueueDeclare struct {
	Queue      string
	Passive    bool
	Durable    bool
	Exclusive  bool
	AutoDelete bool
	NoWait     bool
	Arguments  field.Table
}

func (QueueDeclare) ClassID() uint16  { return ClassQueue }
func (QueueDeclare) MethodID() uint16 { return MethodQueueDeclare }
func (m QueueDeclare) Encode(buf *bytes.Buffer) error {
	putUint16(buf, 0)
	if err := putShortString(buf, m.Queue); err != nil {
		return err
	}
	p := newBitPacker(buf)
	p.Put(m.Passive)
	p.Put(m.Durable)
	p.Put(m.Exclusive)
	p.Put(m.AutoDelete)
	p.Put(m.NoWait)
	p.Flush()
	return EncodeTable(buf, m.Arguments)
}

func decodeQueueDeclare(b []byte) (Method, error) {
	var m QueueDeclare
	var err error
	_, b, err = getUint16(b)
	if err != nil {
		return nil, err
	}
	m.Queue, b, err = getShortString(b)
	if err != nil {
		return nil, err
	}
	u := newBitUnpacker(b)
	if m.Passive, err = u.Get(); err != nil {
		return nil, err
	}
	if m.Durable, err = u.Get(); err != nil {
		return nil, err
	}
	if m.Exclusive, err = u.Get(); err != nil {
		return nil, err
	}
	if m.AutoDelete, err = u.Get(); err != nil {
		return nil, err
	}
	if m.NoWait, err = u.Get(); err != nil {
		return nil, err
	}
	m.Arguments, _, err = DecodeTable(u.Rest())
	return m, err
}

type QueueDeclareOk struct {
	Queue         string
	MessageCount  uint32
	ConsumerCount uint32
}

func (QueueDeclareOk) ClassID() uint16  { return ClassQueue }
func (QueueDeclareOk) MethodID() uint16 { return MethodQueueDeclareOk }
func (m QueueDeclareOk) Encode(buf *bytes.Buffer) error {
	if err := putShortString(buf, m.Queue); err != nil {
		return err
	}
	putUint32(buf, m.MessageCount)
	putUint32(buf, m.ConsumerCount)
	return nil
}

func decodeQueueDeclareOk(b []byte) (Method, error) {
	var m QueueDeclareOk
	var err error
	m.Queue, b, err = getShortString(b)
	if err != nil {
		return nil, err
	}
	m.MessageCount, b, err = getUint32(b)
	if err != nil {
		return nil, err
	}
	m.ConsumerCount, _, err = getUint32(b)
	return m, err
}

type QueueBind struct {
	Queue      string
	Exchange   string
	RoutingKey string
	NoWait     bool
	Arguments  field.Table
}

func (QueueBind) ClassID() uint16  { return ClassQueue }
func (QueueBind) MethodID() uint16 { return MethodQueueBind }
func (m QueueBind) Encode(buf *bytes.Buffer) error {
	putUint16(buf, 0)
	if err := putShortString(buf, m.Queue); err != nil {
		return err
	}
	if err := putShortString(buf, m.Exchange); err != nil {
		return err
	}
	if err := putShortString(buf, m.RoutingKey); err != nil {
		return err
	}
	p := newBitPacker(buf)
	p.Put(m.NoWait)
	p.Flush()
	return EncodeTable(buf, m.Arguments)
}

func decodeQueueBind(b []byte) (Method, error) {
	var m QueueBind
	var err error
	_, b, err = getUint16(b)
	if err != nil {
		return nil, err
	}
	m.Queue, b, err = getShortString(b)
	if err != nil {
		return nil, err
	}
	m.Exchange, b, err = getShortString(b)
	if err != nil {
		return nil, err
	}
	m.RoutingKey, b, err = getShortString(b)
	if err != nil {
		return nil, err
	}
	u := newBitUnpacker(b)
	if m.NoWait, err = u.Get(); err != nil {
		return nil, err
	}
	m.Arguments, _, err = DecodeTable(u.Rest())
	return m, err
}

type QueueBindOk struct{}

func (QueueBindOk) ClassID() uint16                  { return ClassQueue }
func (QueueBindOk) MethodID() uint16                 { return MethodQueueBindOk }
func (QueueBindOk) Encode(buf *bytes.Buffer) error { return nil }

func decodeQueueBindOk(b []byte) (Method, error) { return QueueBindOk{}, nil }

type QueueUnbind struct {
	Queue      string
	Exchange   string
	RoutingKey string
	Arguments  field.Table
}

func (QueueUnbind) ClassID() uint16  { return ClassQueue }
func (QueueUnbind) MethodID() uint16 { return MethodQueueUnbind }
func (m QueueUnbind) Encode(buf *bytes.Buffer) error {
	putUint16(buf, 0)
	if err := putShortString(buf, m.Queue); err != nil {
		return err
	}
	if err := putShortString(buf, m.Exchange); err != nil {
		return err
	}
	if err := putShortString(buf, m.RoutingKey); err != nil {
		return err
	}
	return EncodeTable(buf, m.Arguments)
}

func decodeQueueUnbind(b []byte) (Method, error) {
	var m QueueUnbind
	var err error
	_, b, err = getUint16(b)
	if err != nil {
		return nil, err
	}
	m.Queue, b, err = getShortString(b)
	if err != nil {
		return nil, err
	}
	m.Exchange, b, err = getShortString(b)
	if err != nil {
		return nil, err
	}
	m.RoutingKey, b, err = getShortString(b)
	if err != nil {
		return nil, err
	}
	m.Arguments, _, err = DecodeTable(b)
	return m, err
}

type QueueUnbindOk struct{}

func (QueueUnbindOk) ClassID() uint16                  { return ClassQueue }
func (QueueUnbindOk) MethodID() uint16                 { return MethodQueueUnbindOk }
func (QueueUnbindOk) Encode(buf *bytes.Buffer) error { return nil }

func decodeQueueUnbindOk(b []byte) (Method, error) { return QueueUnbindOk{}, nil }

type QueuePurge struct {
	Queue  string
	NoWait bool
}

func (QueuePurge) ClassID() uint16  { return ClassQueue }
func (QueuePurge) MethodID() uint16 { return MethodQueuePurge }
func (m QueuePurge) Encode(buf *bytes.Buffer) error {
	putUint16(buf, 0)
	if err := putShortString(buf, m.Queue); err != nil {
		return err
	}
	p := newBitPacker(buf)
	p.Put(m.NoWait)
	p.Flush()
	return nil
}

func decodeQueuePurge(b []byte) (Method, error) {
	var m QueuePurge
	var err error
	_, b, err = getUint16(b)
	if err != nil {
		return nil, err
	}
	m.Queue, b, err = getShortString(b)
	if err != nil {
		return nil, err
	}
	u := newBitUnpacker(b)
	m.NoWait, err = u.Get()
	return m, err
}

type QueuePurgeOk struct{ MessageCount uint32 }

func (QueuePurgeOk) ClassID() uint16  { return ClassQueue }
func (QueuePurgeOk) MethodID() uint16 { return MethodQueuePurgeOk }
func (m QueuePurgeOk) Encode(buf *bytes.Buffer) error {
	putUint32(buf, m.MessageCount)
	return nil
}

func decodeQueuePurgeOk(b []byte) (Method, error) {
	n, _, err := getUint32(b)
	return QueuePurgeOk{MessageCount: n}, err
}

type QueueDelete struct {
	Queue    string
	IfUnused bool
	IfEmpty  bool
	NoWait   bool
}

func (QueueDelete) ClassID() uint16  { return ClassQueue }
func (QueueDelete) MethodID() uint16 { return MethodQueueDelete }
func (m QueueDelete) Encode(buf *bytes.Buffer) error {
	putUint16(buf, 0)
	if err := putShortString(buf, m.Queue); err != nil {
		return err
	}
	p := newBitPacker(buf)
	p.Put(m.IfUnused)
	p.Put(m.IfEmpty)
	p.Put(m.NoWait)
	p.Flush()
	return nil
}

func decodeQueueDelete(b []byte) (Method, error) {
	var m QueueDelete
	var err error
	_, b, err = getUint16(b)
	if err != nil {
		return nil, err
	}
	m.Queue, b, err = getShortString(b)
	if err != nil {
		return nil, err
	}
	u := newBitUnpacker(b)
	if m.IfUnused, err = u.Get(); err != nil {
		return nil, err
	}
	if m.IfEmpty, err = u.Get(); err != nil {
		return nil, err
	}
	m.NoWait, err = u.Get()
	return m, err
}

type QueueDeleteOk struct{ MessageCount uint32 }

func (QueueDeleteOk) ClassID() uint16  { return ClassQueue }
func (QueueDeleteOk) MethodID() uint16 { return MethodQueueDeleteOk }
func (m QueueDeleteOk) Encode(buf *bytes.Buffer) error {
	putUint32(buf, m.MessageCount)
	return nil
}

func decodeQueueDeleteOk(b []byte) (Method, error) {
	n, _, err := getUint32(b)
	return QueueDeleteOk{MessageCount: n}, err
}

// ---- basic ----

const (
	MethodBasicQos         = 10
	MethodBasicQosOk       = 11
	MethodBasicConsume     = 20
	MethodBasicConsumeOk   = 21
	MethodBasicCancel      = 30
	MethodBasicCancelOk    = 31
	MethodBasicPublish     = 40
	MethodBasicReturn      = 50
	MethodBasicDeliver     = 60
	MethodBasicGet         = 70
	MethodBasicGetOk       = 71
	MethodBasicGetEmpty    = 72
	MethodBasicAck         = 80
	MethodBasicReject      = 90
	MethodBasicRecoverAsync = 100
	MethodBasicRecover     = 110
	MethodBasicRecoverOk   = 111
	MethodBasicNack        = 120
)

type BasicQos struct {
	PrefetchSize  uint32
	PrefetchCount uint16
	Global        bool
}

func (BasicQos) ClassID() uint16  { return ClassBasic }
func (BasicQos) MethodID() uint16 { return MethodBasicQos }
func (m BasicQos) Encode(buf *bytes.Buffer) error {
	putUint32(buf, m.PrefetchSize)
	putUint16(buf, m.PrefetchCount)
	p := newBitPacker(buf)
	p.Put(m.Global)
	p.Flush()
	return nil
}

func decodeBasicQos(b []byte) (Method, error) {
	var m BasicQos
	var err error
	m.PrefetchSize, b, err = getUint32(b)
	if err != nil {
		return nil, err
	}
	m.PrefetchCount, b, err = getUint16(b)
	if err != nil {
		return nil, err
	}
	u := newBitUnpacker(b)
	m.Global, err = u.Get()
	return m, err
}

type BasicQosOk struct{}

func (BasicQosOk) ClassID() uint16                  { return ClassBasic }
func (BasicQosOk) MethodID() uint16                 { return MethodBasicQosOk }
func (BasicQosOk) Encode(buf *bytes.Buffer) error { return nil }

func decodeBasicQosOk(b []byte) (Method, error) { return BasicQosOk{}, nil }

type BasicConsume struct {
	Queue       string
	ConsumerTag string
	NoLocal     bool
	NoAck       bool
	Exclusive   bool
	NoWait      bool
	Arguments   field.Table
}

func (BasicConsume) ClassID() uint16  { return ClassBasic }
func (BasicConsume) MethodID() uint16 { return MethodBasicConsume }
func (m BasicConsume) Encode(buf *bytes.Buffer) error {
	putUint16(buf, 0)
	if err := putShortString(buf, m.Queue); err != nil {
		return err
	}
	if err := putShortString(buf, m.ConsumerTag); err != nil {
		return err
	}
	p := newBitPacker(buf)
	p.Put(m.NoLocal)
	p.Put(m.NoAck)
	p.Put(m.Exclusive)
	p.Put(m.NoWait)
	p.Flush()
	return EncodeTable(buf, m.Arguments)
}

func decodeBasicConsume(b []byte) (Method, error) {
	var m BasicConsume
	var err error
	_, b, err = getUint16(b)
	if err != nil {
		return nil, err
	}
	m.Queue, b, err = getShortString(b)
	if err != nil {
		return nil, err
	}
	m.ConsumerTag, b, err = getShortString(b)
	if err != nil {
		return nil, err
	}
	u := newBitUnpacker(b)
	if m.NoLocal, err = u.Get(); err != nil {
		return nil, err
	}
	if m.NoAck, err = u.Get(); err != nil {
		return nil, err
	}
	if m.Exclusive, err = u.Get(); err != nil {
		return nil, err
	}
	if m.NoWait, err = u.Get(); err != nil {
		return nil, err
	}
	m.Arguments, _, err = DecodeTable(u.Rest())
	return m, err
}

type BasicConsumeOk struct{ ConsumerTag string }

func (BasicConsumeOk) ClassID() uint16  { return ClassBasic }
func (BasicConsumeOk) MethodID() uint16 { return MethodBasicConsumeOk }
func (m BasicConsumeOk) Encode(buf *bytes.Buffer) error {
	return putShortString(buf, m.ConsumerTag)
}

func decodeBasicConsumeOk(b []byte) (Method, error) {
	s, _, err := getShortString(b)
	return BasicConsumeOk{ConsumerTag: s}, err
}

type BasicCancel struct {
	ConsumerTag string
	NoWait      bool
}

func (BasicCancel) ClassID() uint16  { return ClassBasic }
func (BasicCancel) MethodID() uint16 { return MethodBasicCancel }
func (m BasicCancel) Encode(buf *bytes.Buffer) error {
	if err := putShortString(buf, m.ConsumerTag); err != nil {
		return err
	}
	p := newBitPacker(buf)
	p.Put(m.NoWait)
	p.Flush()
	return nil
}

func decodeBasicCancel(b []byte) (Method, error) {
	var m BasicCancel
	var err error
	m.ConsumerTag, b, err = getShortString(b)
	if err != nil {
		return nil, err
	}
	u := newBitUnpacker(b)
	m.NoWait, err = u.Get()
	return m, err
}

type BasicCancelOk struct{ ConsumerTag string }

func (BasicCancelOk) ClassID() uint16  { return ClassBasic }
func (BasicCancelOk) MethodID() uint16 { return MethodBasicCancelOk }
func (m BasicCancelOk) Encode(buf *bytes.Buffer) error {
	return putShortString(buf, m.ConsumerTag)
}

func decodeBasicCancelOk(b []byte) (Method, error) {
	s, _, err := getShortString(b)
	return BasicCancelOk{ConsumerTag: s}, err
}

type BasicPublish struct {
	Exchange   string
	RoutingKey string
	Mandatory  bool
	Immediate  bool
}

func (BasicPublish) ClassID() uint16  { return ClassBasic }
func (BasicPublish) MethodID() uint16 { return MethodBasicPublish }
func (m BasicPublish) Encode(buf *bytes.Buffer) error {
	putUint16(buf, 0)
	if err := putShortString(buf, m.Exchange); err != nil {
		return err
	}
	if err := putShortString(buf, m.RoutingKey); err != nil {
		return err
	}
	p := newBitPacker(buf)
	p.Put(m.Mandatory)
	p.Put(m.Immediate)
	p.Flush()
	return nil
}

func decodeBasicPublish(b []byte) (Method, error) {
	var m BasicPublish
	var err error
	_, b, err = getUint16(b)
	if err != nil {
		return nil, err
	}
	m.Exchange, b, err = getShortString(b)
	if err != nil {
		return nil, err
	}
	m.RoutingKey, b, err = getShortString(b)
	if err != nil {
		return nil, err
	}
	u := newBitUnpacker(b)
	if m.Mandatory, err = u.Get(); err != nil {
		return nil, err
	}
	m.Immediate, err = u.Get()
	return m, err
}

type BasicReturn struct {
	ReplyCode  uint16
	ReplyText  string
	Exchange   string
	RoutingKey string
}

func (BasicReturn) ClassID() uint16  { return ClassBasic }
func (BasicReturn) MethodID() uint16 { return MethodBasicReturn }
func (m BasicReturn) Encode(buf *bytes.Buffer) error {
	putUint16(buf, m.ReplyCode)
	if err := putShortString(buf, m.ReplyText); err != nil {
		return err
	}
	if err := putShortString(buf, m.Exchange); err != nil {
		return err
	}
	return putShortString(buf, m.RoutingKey)
}

func decodeBasicReturn(b []byte) (Method, error) {
	var m BasicReturn
	var err error
	m.ReplyCode, b, err = getUint16(b)
	if err != nil {
		return nil, err
	}
	m.ReplyText, b, err = getShortString(b)
	if err != nil {
		return nil, err
	}
	m.Exchange, b, err = getShortString(b)
	if err != nil {
		return nil, err
	}
	m.RoutingKey, _, err = getShortString(b)
	return m, err
}

type BasicDeliver struct {
	ConsumerTag string
	DeliveryTag uint64
	Redelivered bool
	Exchange    string
	RoutingKey  string
}

func (BasicDeliver) ClassID() uint16  { return ClassBasic }
func (BasicDeliver) MethodID() uint16 { return MethodBasicDeliver }
func (m BasicDeliver) Encode(buf *bytes.Buffer) error {
	if err := putShortString(buf, m.ConsumerTag); err != nil {
		return err
	}
	putUint64(buf, m.DeliveryTag)
	p := newBitPacker(buf)
	p.Put(m.Redelivered)
	p.Flush()
	if err := putShortString(buf, m.Exchange); err != nil {
		return err
	}
	return putShortString(buf, m.RoutingKey)
}

func decodeBasicDeliver(b []byte) (Method, error) {
	var m BasicDeliver
	var err error
	m.ConsumerTag, b, err = getShortString(b)
	if err != nil {
		return nil, err
	}
	m.DeliveryTag, b, err = getUint64(b)
	if err != nil {
		return nil, err
	}
	u := newBitUnpacker(b)
	if m.Redelivered, err = u.Get(); err != nil {
		return nil, err
	}
	rest := u.Rest()
	m.Exchange, rest, err = getShortString(rest)
	if err != nil {
		return nil, err
	}
	m.RoutingKey, _, err = getShortString(rest)
	return m, err
}

type BasicGet struct {
	Queue  string
	NoAck  bool
}

func (BasicGet) ClassID() uint16  { return ClassBasic }
func (BasicGet) MethodID() uint16 { return MethodBasicGet }
func (m BasicGet) Encode(buf *bytes.Buffer) error {
	putUint16(buf, 0)
	if err := putShortString(buf, m.Queue); err != nil {
		return err
	}
	p := newBitPacker(buf)
	p.Put(m.NoAck)
	p.Flush()
	return nil
}

func decodeBasicGet(b []byte) (Method, error) {
	var m BasicGet
	var err error
	_, b, err = getUint16(b)
	if err != nil {
		return nil, err
	}
	m.Queue, b, err = getShortString(b)
	if err != nil {
		return nil, err
	}
	u := newBitUnpacker(b)
	m.NoAck, err = u.Get()
	return m, err
}

type BasicGetOk struct {
	DeliveryTag  uint64
	Redelivered  bool
	Exchange     string
	RoutingKey   string
	MessageCount uint32
}

func (BasicGetOk) ClassID() uint16  { return ClassBasic }
func (BasicGetOk) MethodID() uint16 { return MethodBasicGetOk }
func (m BasicGetOk) Encode(buf *bytes.Buffer) error {
	putUint64(buf, m.DeliveryTag)
	p := newBitPacker(buf)
	p.Put(m.Redelivered)
	p.Flush()
	if err := putShortString(buf, m.Exchange); err != nil {
		return err
	}
	if err := putShortString(buf, m.RoutingKey); err != nil {
		return err
	}
	putUint32(buf, m.MessageCount)
	return nil
}

func decodeBasicGetOk(b []byte) (Method, error) {
	var m BasicGetOk
	var err error
	m.DeliveryTag, b, err = getUint64(b)
	if err != nil {
		return nil, err
	}
	u := newBitUnpacker(b)
	if m.Redelivered, err = u.Get(); err != nil {
		return nil, err
	}
	rest := u.Rest()
	m.Exchange, rest, err = getShortString(rest)
	if err != nil {
		return nil, err
	}
	m.RoutingKey, rest, err = getShortString(rest)
	if err != nil {
		return nil, err
	}
	m.MessageCount, _, err = getUint32(rest)
	return m, err
}

type BasicGetEmpty struct{}

func (BasicGetEmpty) ClassID() uint16  { return ClassBasic }
func (BasicGetEmpty) MethodID() uint16 { return MethodBasicGetEmpty }
func (BasicGetEmpty) Encode(buf *bytes.Buffer) error {
	return putShortString(buf, "")
}

func decodeBasicGetEmpty(b []byte) (Method, error) { return BasicGetEmpty{}, nil }

type BasicAck struct {
	DeliveryTag uint64
	Multiple    bool
}

func (BasicAck) ClassID() uint16  { return ClassBasic }
func (BasicAck) MethodID() uint16 { return MethodBasicAck }
func (m BasicAck) Encode(buf *bytes.Buffer) error {
	putUint64(buf, m.DeliveryTag)
	p := newBitPacker(buf)
	p.Put(m.Multiple)
	p.Flush()
	return nil
}

func decodeBasicAck(b []byte) (Method, error) {
	var m BasicAck
	var err error
	m.DeliveryTag, b, err = getUint64(b)
	if err != nil {
		return nil, err
	}
	u := newBitUnpacker(b)
	m.Multiple, err = u.Get()
	return m, err
}

type BasicReject struct {
	DeliveryTag uint64
	Requeue     bool
}

func (BasicReject) ClassID() uint16  { return ClassBasic }
func (BasicReject) MethodID() uint16 { return MethodBasicReject }
func (m BasicReject) Encode(buf *bytes.Buffer) error {
	putUint64(buf, m.DeliveryTag)
	p := newBitPacker(buf)
	p.Put(m.Requeue)
	p.Flush()
	return nil
}

func decodeBasicReject(b []byte) (Method, error) {
	var m BasicReject
	var err error
	m.DeliveryTag, b, err = getUint64(b)
	if err != nil {
		return nil, err
	}
	u := newBitUnpacker(b)
	m.Requeue, err = u.Get()
	return m, err
}

type BasicRecoverAsync struct{ Requeue bool }

func (BasicRecoverAsync) ClassID() uint16  { return ClassBasic }
func (BasicRecoverAsync) MethodID() uint16 { return MethodBasicRecoverAsync }
func (m BasicRecoverAsync) Encode(buf *bytes.Buffer) error {
	p := newBitPacker(buf)
	p.Put(m.Requeue)
	p.Flush()
	return nil
}

func decodeBasicRecoverAsync(b []byte) (Method, error) {
	u := newBitUnpacker(b)
	requeue, err := u.Get()
	return BasicRecoverAsync{Requeue: requeue}, err
}

type BasicRecover struct{ Requeue bool }

func (BasicRecover) ClassID() uint16  { return ClassBasic }
func (BasicRecover) MethodID() uint16 { return MethodBasicRecover }
func (m BasicRecover) Encode(buf *bytes.Buffer) error {
	p := newBitPacker(buf)
	p.Put(m.Requeue)
	p.Flush()
	return nil
}

func decodeBasicRecover(b []byte) (Method, error) {
	u := newBitUnpacker(b)
	requeue, err := u.Get()
	return BasicRecover{Requeue: requeue}, err
}

type BasicRecoverOk struct{}

func (BasicRecoverOk) ClassID() uint16                  { return ClassBasic }
func (BasicRecoverOk) MethodID() uint16                 { return MethodBasicRecoverOk }
func (BasicRecoverOk) Encode(buf *bytes.Buffer) error { return nil }

func decodeBasicRecoverOk(b []byte) (Method, error) { return BasicRecoverOk{}, nil }

type BasicNack struct {
	DeliveryTag uint64
	Multiple    bool
	Requeue     bool
}

func (BasicNack) ClassID() uint16  { return ClassBasic }
func (BasicNack) MethodID() uint16 { return MethodBasicNack }
func (m BasicNack) Encode(buf *bytes.Buffer) error {
	putUint64(buf, m.DeliveryTag)
	p := newBitPacker(buf)
	p.Put(m.Multiple)
	p.Put(m.Requeue)
	p.Flush()
	return nil
}

func decodeBasicNack(b []byte) (Method, error) {
	var m BasicNack
	var err error
	m.DeliveryTag, b, err = getUint64(b)
	if err != nil {
		return nil, err
	}
	u := newBitUnpacker(b)
	if m.Multiple, err = u.Get(); err != nil {
		return nil, err
	}
	m.Requeue, err = u.Get()
	return m, err
}

// ---- tx ----

const (
	MethodTxSelect     = 10
	MethodTxSelectOk   = 11
	MethodTxCommit     = 20
	MethodTxCommitOk   = 21
	MethodTxRollback   = 30
	MethodTxRollbackOk = 31
)

type TxSelect struct{}

func (TxSelect) ClassID() uint16                  { return ClassTx }
func (TxSelect) MethodID() uint16                 { return MethodTxSelect }
func (TxSelect) Encode(buf *bytes.Buffer) error { return nil }

func decodeTxSelect(b []byte) (Method, error) { return TxSelect{}, nil }

type TxSelectOk struct{}

func (TxSelectOk) ClassID() uint16                  { return ClassTx }
func (TxSelectOk) MethodID() uint16                 { return MethodTxSelectOk }
func (TxSelectOk) Encode(buf *bytes.Buffer) error { return nil }

func decodeTxSelectOk(b []byte) (Method, error) { return TxSelectOk{}, nil }

type TxCommit struct{}

func (TxCommit) ClassID() uint16                  { return ClassTx }
func (TxCommit) MethodID() uint16                 { return MethodTxCommit }
func (TxCommit) Encode(buf *bytes.Buffer) error { return nil }

func decodeTxCommit(b []byte) (Method, error) { return TxCommit{}, nil }

type TxCommitOk struct{}

func (TxCommitOk) ClassID() uint16                  { return ClassTx }
func (TxCommitOk) MethodID() uint16                 { return MethodTxCommitOk }
func (TxCommitOk) Encode(buf *bytes.Buffer) error { return nil }

func decodeTxCommitOk(b []byte) (Method, error) { return TxCommitOk{}, nil }

type TxRollback struct{}

func (TxRollback) ClassID() uint16                  { return ClassTx }
func (TxRollback) MethodID() uint16                 { return MethodTxRollback }
func (TxRollback) Encode(buf *bytes.Buffer) error { return nil }

func decodeTxRollback(b []byte) (Method, error) { return TxRollback{}, nil }

type TxRollbackOk struct{}

func (TxRollbackOk) ClassID() uint16                  { return ClassTx }
func (TxRollbackOk) MethodID() uint16                 { return MethodTxRollbackOk }
func (TxRollbackOk) Encode(buf *bytes.Buffer) error { return nil }

func decodeTxRollbackOk(b []byte) (Method, error) { return TxRollbackOk{}, nil }

// ---- confirm ----

const (
	MethodConfirmSelect   = 10
	MethodConfirmSelectOk = 11
)

type ConfirmSelect struct{ NoWait bool }

func (ConfirmSelect) ClassID() uint16  { return ClassConfirm }
func (ConfirmSelect) MethodID() uint16 { return MethodConfirmSelect }
func (m ConfirmSelect) Encode(buf *bytes.Buffer) error {
	p := newBitPacker(buf)
	p.Put(m.NoWait)
	p.Flush()
	return nil
}

func decodeConfirmSelect(b []byte) (Method, error) {
	u := newBitUnpacker(b)
	noWait, err := u.Get()
	return ConfirmSelect{NoWait: noWait}, err
}

type ConfirmSelectOk struct{}

func (ConfirmSelectOk) ClassID() uint16                  { return ClassConfirm }
func (ConfirmSelectOk) MethodID() uint16                 { return MethodConfirmSelectOk }
func (ConfirmSelectOk) Encode(buf *bytes.Buffer) error { return nil }

func decodeConfirmSelectOk(b []byte) (Method, error) { return ConfirmSelectOk{}, nil }

func init() {
	register(ClassConnection, MethodConnectionStart, decodeConnectionStart)
	register(ClassConnection, MethodConnectionStartOk, decodeConnectionStartOk)
	register(ClassConnection, MethodConnectionSecure, decodeConnectionSecure)
	register(ClassConnection, MethodConnectionSecureOk, decodeConnectionSecureOk)
	register(ClassConnection, MethodConnectionTune, decodeConnectionTune)
	register(ClassConnection, MethodConnectionTuneOk, decodeConnectionTuneOk)
	register(ClassConnection, MethodConnectionOpen, decodeConnectionOpen)
	register(ClassConnection, MethodConnectionOpenOk, decodeConnectionOpenOk)
	register(ClassConnection, MethodConnectionClose, decodeConnectionClose)
	register(ClassConnection, MethodConnectionCloseOk, decodeConnectionCloseOk)
	register(ClassConnection, MethodConnectionBlocked, decodeConnectionBlocked)
	register(ClassConnection, MethodConnectionUnblocked, decodeConnectionUnblocked)

	register(ClassChannel, MethodChannelOpen, decodeChannelOpen)
	register(ClassChannel, MethodChannelOpenOk, decodeChannelOpenOk)
	register(ClassChannel, MethodChannelFlow, decodeChannelFlow)
	register(ClassChannel, MethodChannelFlowOk, decodeChannelFlowOk)
	register(ClassChannel, MethodChannelClose, decodeChannelClose)
	register(ClassChannel, MethodChannelCloseOk, decodeChannelCloseOk)

	register(ClassExchange, MethodExchangeDeclare, decodeExchangeDeclare)
	register(ClassExchange, MethodExchangeDeclareOk, decodeExchangeDeclareOk)
	register(ClassExchange, MethodExchangeDelete, decodeExchangeDelete)
	register(ClassExchange, MethodExchangeDeleteOk, decodeExchangeDeleteOk)
	register(ClassExchange, MethodExchangeBind, decodeExchangeBind)
	register(ClassExchange, MethodExchangeBindOk, decodeExchangeBindOk)
	register(ClassExchange, MethodExchangeUnbind, decodeExchangeUnbind)
	register(ClassExchange, MethodExchangeUnbindOk, decodeExchangeUnbindOk)

	register(ClassQueue, MethodQueueDeclare, decodeQueueDeclare)
	register(ClassQueue, MethodQueueDeclareOk, decodeQueueDeclareOk)
	register(ClassQueue, MethodQueueBind, decodeQueueBind)
	register(ClassQueue, MethodQueueBindOk, decodeQueueBindOk)
	register(ClassQueue, MethodQueueUnbind, decodeQueueUnbind)
	register(ClassQueue, MethodQueueUnbindOk, decodeQueueUnbindOk)
	register(ClassQueue, MethodQueuePurge, decodeQueuePurge)
	register(ClassQueue, MethodQueuePurgeOk, decodeQueuePurgeOk)
	register(ClassQueue, MethodQueueDelete, decodeQueueDelete)
	register(ClassQueue, MethodQueueDeleteOk, decodeQueueDeleteOk)

	register(ClassBasic, MethodBasicQos, decodeBasicQos)
	register(ClassBasic, MethodBasicQosOk, decodeBasicQosOk)
	register(ClassBasic, MethodBasicConsume, decodeBasicConsume)
	register(ClassBasic, MethodBasicConsumeOk, decodeBasicConsumeOk)
	register(ClassBasic, MethodBasicCancel, decodeBasicCancel)
	register(ClassBasic, MethodBasicCancelOk, decodeBasicCancelOk)
	register(ClassBasic, MethodBasicPublish, decodeBasicPublish)
	register(ClassBasic, MethodBasicReturn, decodeBasicReturn)
	register(ClassBasic, MethodBasicDeliver, decodeBasicDeliver)
	register(ClassBasic, MethodBasicGet, decodeBasicGet)
	register(ClassBasic, MethodBasicGetOk, decodeBasicGetOk)
	register(ClassBasic, MethodBasicGetEmpty, decodeBasicGetEmpty)
	register(ClassBasic, MethodBasicAck, decodeBasicAck)
	register(ClassBasic, MethodBasicReject, decodeBasicReject)
	register(ClassBasic, MethodBasicRecoverAsync, decodeBasicRecoverAsync)
	register(ClassBasic, MethodBasicRecover, decodeBasicRecover)
	register(ClassBasic, MethodBasicRecoverOk, decodeBasicRecoverOk)
	register(ClassBasic, MethodBasicNack, decodeBasicNack)

	register(ClassTx, MethodTxSelect, decodeTxSelect)
	register(ClassTx, MethodTxSelectOk, decodeTxSelectOk)
	register(ClassTx, MethodTxCommit, decodeTxCommit)
	register(ClassTx, MethodTxCommitOk, decodeTxCommitOk)
	register(ClassTx, MethodTxRollback, decodeTxRollback)
	register(ClassTx, MethodTxRollbackOk, decodeTxRollbackOk)

	register(ClassConfirm, MethodConfirmSelect, decodeConfirmSelect)
	register(ClassConfirm, MethodConfirmSelectOk, decodeConfirmSelectOk)
}
