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

// Flags is the bitmask of per-operation modifiers accepted by the Channel
// methods. Each operation reads only the bits that apply to it (QueueDeclare
// looks at Passive|Durable|Exclusive|AutoDelete|NoWait, Publish at
// Mandatory|Immediate, and so on); irrelevant bits are ignored, so a caller
// can keep one combined constant per usage pattern.
type Flags uint32

const (
	// Durable survives a broker restart (exchanges, queues).
	Durable Flags = 1 << iota

	// AutoDelete removes the entity once its last user goes away.
	AutoDelete

	// Passive checks for existence without creating.
	Passive

	// Exclusive restricts a queue or consumer to this connection.
	Exclusive

	// Internal marks an exchange unusable for direct publishing; it can
	// only receive messages via exchange-to-exchange bindings.
	Internal

	// NoWait asks the broker not to send the operation's -ok reply; the
	// operation's deferred resolves as soon as the request is written.
	NoWait

	// IfUnused guards deletes against entities that still have consumers
	// or bindings.
	IfUnused

	// IfEmpty guards queue deletes against queues that still hold
	// messages.
	IfEmpty

	// Global applies a qos setting to the whole connection rather than
	// the issuing channel.
	Global

	// NoLocal asks the broker not to deliver messages published on this
	// same connection back to this consumer.
	NoLocal

	// NoAck delivers messages pre-acknowledged (no ack required or
	// possible).
	NoAck

	// Mandatory returns the message (basic.return) if it cannot be routed
	// to any queue.
	Mandatory

	// Immediate returns the message if it cannot be delivered to a
	// consumer immediately. RabbitMQ no longer implements it; accepted
	// for protocol completeness.
	Immediate

	// Multiple extends an ack/nack to every delivery tag up to and
	// including the given one.
	Multiple

	// Requeue asks the broker to re-queue a rejected or recovered
	// message instead of discarding it.
	Requeue
)

// Has reports whether every bit of x is set in f.
func (f Flags) Has(x Flags) bool { return f&x == x }
