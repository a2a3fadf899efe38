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
	"fmt"

	"github.com/pkg/errors"
)

// ErrorKind classifies why a Connection, Channel, or Deferred failed, per
// the error taxonomy a caller needs to decide whether retrying makes sense.
type ErrorKind uint8

const (
	// ErrDecode covers malformed bytes: unknown field tag, bad end
	// marker, oversized frame. Fatal to the connection when the bytes came
	// from the broker; a method this client fails to encode is reported
	// with this kind too, and that faults nothing.
	ErrDecode ErrorKind = iota

	// ErrProtocol covers a method arriving somewhere the state machine
	// didn't expect it: wrong reply to an outstanding request, a
	// body-frame overrun, a method in the middle of content assembly.
	// These fault the connection. Local misuse caught before anything is
	// sent (confirm and tx on one channel, no free channel id) is
	// reported with this kind as well and faults nothing.
	ErrProtocol

	// ErrBroker covers a reply code the broker itself sent back via
	// connection.close or channel.close (404, 403, 406, 505, ...), and
	// the 504 this client raises for a frame on an unknown channel.
	ErrBroker

	// ErrAuth covers a handshake failure: the broker closed with 403/530
	// during SASL negotiation, offered no mechanism this client is
	// configured to use, or sent a connection.secure challenge this
	// client can't answer.
	ErrAuth

	// ErrTransport covers failures surfaced by the I/O port collaborator
	// (dial failure, write error, unexpected EOF).
	ErrTransport

	// ErrClosed is returned for any operation attempted on a connection
	// or channel that has already finished closing.
	ErrClosed
)

func (k ErrorKind) String() string {
	switch k {
	case ErrDecode:
		return "decode"
	case ErrProtocol:
		return "protocol"
	case ErrBroker:
		return "broker"
	case ErrAuth:
		return "auth"
	case ErrTransport:
		return "transport"
	case ErrClosed:
		return "closed"
	default:
		return "unknown"
	}
}

// Error is the concrete error type every failure path in this module
// returns or hands to a Deferred's error callback. ReplyCode/ReplyText are
// populated for ErrBroker, and for an ErrAuth caused by a broker close
// during the handshake, carrying the values from connection.close or
// channel.close.
type Error struct {
	Kind      ErrorKind
	ReplyCode uint16
	ReplyText string
	cause     error
}

func (e *Error) Error() string {
	if e.ReplyCode != 0 {
		return fmt.Sprintf("amqp: %s: %d %s", e.Kind, e.ReplyCode, e.ReplyText)
	}
	if e.cause != nil {
		return fmt.Sprintf("amqp: %s: %v", e.Kind, e.cause)
	}
	return fmt.Sprintf("amqp: %s", e.Kind)
}

func (e *Error) Unwrap() error { return e.cause }

func newErr(kind ErrorKind, cause error) *Error {
	return &Error{Kind: kind, cause: cause}
}

func newErrf(kind ErrorKind, format string, args ...any) *Error {
	return &Error{Kind: kind, cause: errors.Errorf(format, args...)}
}

func brokerErr(code uint16, text string) *Error {
	return &Error{Kind: ErrBroker, ReplyCode: code, ReplyText: text}
}

var (
	// ErrConnectionClosed is returned by any Connection/Channel operation
	// called after the connection has finished closing.
	ErrConnectionClosed = &Error{Kind: ErrClosed, cause: errors.New("connection closed")}

	// ErrChannelClosed is returned by any Channel operation called after
	// the channel has finished closing.
	ErrChannelClosed = &Error{Kind: ErrClosed, cause: errors.New("channel closed")}

	// ErrNoChannelsAvailable is returned by OpenChannel when every id in
	// [1, channel_max] is in use.
	ErrNoChannelsAvailable = &Error{Kind: ErrProtocol, cause: errors.New("no channel ids available")}
)
