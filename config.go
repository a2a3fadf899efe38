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
	"github.com/goamqp/amqp/field"
	"github.com/goamqp/amqp/logger"
)

// clientProduct/clientVersion/clientPlatform populate the client-properties
// table sent in connection.start-ok.
const (
	clientProduct  = "goamqp"
	clientVersion  = "0.1.0"
	clientPlatform = "Go"
)

// Config collects everything a Connection needs beyond the bare I/O port:
// credentials, negotiation preferences, and the application callback
// hooks. The zero value is usable; Option functions customize it the way
// the rest of this ecosystem configures long-lived objects.
type Config struct {
	URI URI

	// Mechanism forces SASL EXTERNAL instead of the PLAIN default; set
	// automatically when WithExternalAuth is used.
	mechanism string

	ChannelMax uint16
	FrameMax   uint32
	Heartbeat  uint16

	Logger logger.Logger

	OnConnected   func()
	OnReady       func()
	OnError       func(err error)
	OnClosed      func()
	OnHeartbeat   func()
	OnNegotiate   func(channelMax uint16, frameMax uint32, heartbeat uint16) (uint16, uint32, uint16)
	OnBlocked     func(reason string)
	OnUnblocked   func()
	OnProperties  func(server field.Table, client *field.Table)
}

// DefaultChannelMax and DefaultFrameMax match RabbitMQ's own defaults. They
// and DefaultHeartbeat are the values NewConfig proposes during tuning; a
// Config whose ChannelMax or FrameMax is zero accepts the broker's value.
const (
	DefaultChannelMax = 2047
	DefaultFrameMax   = 131072
	DefaultHeartbeat  = 60
)

// Option customizes a Config built by NewConfig.
type Option func(*Config)

// NewConfig builds a Config for uri with opts applied over the defaults.
func NewConfig(uri URI, opts ...Option) Config {
	cfg := Config{
		URI:        uri,
		mechanism:  "",
		ChannelMax: DefaultChannelMax,
		FrameMax:   DefaultFrameMax,
		Heartbeat:  DefaultHeartbeat,
		Logger:     logger.Std(),
	}
	for _, opt := range opts {
		opt(&cfg)
	}
	return cfg
}

// WithExternalAuth selects the SASL EXTERNAL mechanism (TLS client
// certificate identity) instead of PLAIN. EXTERNAL is only ever chosen
// when the caller opts in explicitly.
func WithExternalAuth() Option {
	return func(c *Config) { c.mechanism = "EXTERNAL" }
}

// WithChannelMax overrides the channel-id ceiling offered during tuning.
func WithChannelMax(n uint16) Option { return func(c *Config) { c.ChannelMax = n } }

// WithFrameMax overrides the max frame size offered during tuning.
func WithFrameMax(n uint32) Option { return func(c *Config) { c.FrameMax = n } }

// WithHeartbeat overrides the heartbeat interval, in seconds, offered
// during tuning. 0 disables heartbeats.
func WithHeartbeat(seconds uint16) Option { return func(c *Config) { c.Heartbeat = seconds } }

// WithLogger overrides the package-default logger for this connection.
func WithLogger(l logger.Logger) Option { return func(c *Config) { c.Logger = l } }

func WithOnConnected(fn func()) Option  { return func(c *Config) { c.OnConnected = fn } }
func WithOnReady(fn func()) Option      { return func(c *Config) { c.OnReady = fn } }
func WithOnError(fn func(error)) Option { return func(c *Config) { c.OnError = fn } }
func WithOnClosed(fn func()) Option     { return func(c *Config) { c.OnClosed = fn } }
func WithOnHeartbeat(fn func()) Option  { return func(c *Config) { c.OnHeartbeat = fn } }
func WithOnBlocked(fn func(string)) Option {
	return func(c *Config) { c.OnBlocked = fn }
}
func WithOnUnblocked(fn func()) Option { return func(c *Config) { c.OnUnblocked = fn } }
func WithOnNegotiate(fn func(uint16, uint32, uint16) (uint16, uint32, uint16)) Option {
	return func(c *Config) { c.OnNegotiate = fn }
}
func WithOnProperties(fn func(field.Table, *field.Table)) Option {
	return func(c *Config) { c.OnProperties = fn }
}

func (c Config) mechanismOrDefault() string {
	if c.mechanism != "" {
		return c.mechanism
	}
	return "PLAIN"
}

// clientProperties builds the table sent in connection.start-ok:
// product/version/platform, and the capabilities this client actually
// implements.
func (c Config) clientProperties() field.Table {
	var caps field.Table
	caps.Set("publisher_confirms", field.Bool(true))
	caps.Set("basic.nack", field.Bool(true))
	caps.Set("consumer_cancel_notify", field.Bool(true))
	caps.Set("exchange_exchange_bindings", field.Bool(true))
	caps.Set("connection.blocked", field.Bool(true))
	caps.Set("authentication_failure_close", field.Bool(true))

	var props field.Table
	props.Set("product", field.LongString(clientProduct))
	props.Set("version", field.LongString(clientVersion))
	props.Set("platform", field.LongString(clientPlatform))
	props.Set("capabilities", field.TableValue(caps))
	return props
}

func (c Config) negotiate(channelMax uint16, frameMax uint32, heartbeat uint16) (uint16, uint32, uint16) {
	if c.OnNegotiate != nil {
		return c.OnNegotiate(channelMax, frameMax, heartbeat)
	}
	if c.ChannelMax != 0 && (channelMax == 0 || c.ChannelMax < channelMax) {
		channelMax = c.ChannelMax
	}
	if c.FrameMax != 0 && (frameMax == 0 || c.FrameMax < frameMax) {
		frameMax = c.FrameMax
	}
	if c.Heartbeat == 0 || heartbeat == 0 || c.Heartbeat < heartbeat {
		heartbeat = c.Heartbeat
	}
	return channelMax, frameMax, heartbeat
}
