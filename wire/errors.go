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

import "github.com/pkg/errors"

func newError(format string, args ...any) error {
	format = "wire: " + format
	return errors.Errorf(format, args...)
}

var (
	// ErrBadEndMarker is returned when a frame's trailing byte isn't 0xCE.
	ErrBadEndMarker = newError("frame end marker is not 0xCE")

	// ErrFrameTooLarge is returned when a frame's declared payload length
	// exceeds the negotiated maximum.
	ErrFrameTooLarge = newError("frame payload exceeds negotiated max-frame-size")

	// ErrShortBuffer is returned when a decoder runs out of bytes before a
	// value is fully decoded.
	ErrShortBuffer = newError("buffer too short to decode value")

	// ErrUnknownFieldTag is returned when a field-table value's type tag
	// byte doesn't match any known AMQP field type.
	ErrUnknownFieldTag = newError("unknown field table type tag")

	// ErrUnknownMethod is returned when a method frame's (class, method)
	// pair isn't in the catalog.
	ErrUnknownMethod = newError("unknown class/method pair")

	// ErrStringTooLong is returned when encoding a short string longer than
	// 255 bytes.
	ErrStringTooLong = newError("short string exceeds 255 bytes")

	// ErrBadProtocolHeader is returned when the peer's opening 8 bytes
	// aren't a recognized AMQP protocol header.
	ErrBadProtocolHeader = newError("unrecognized protocol header")
)
