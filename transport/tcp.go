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

// Package transport is the reference I/O collaborator for the amqp
// engine, which never touches a socket itself: it dials the actual TCP or
// TLS connection, runs a read loop that feeds bytes into an
// *amqp.Connection, and wires the Connection's outbound Port callback
// back to the socket.
package transport

import (
	"crypto/tls"
	"net"
	"time"

	"github.com/goamqp/amqp"
	"github.com/goamqp/amqp/logger"
)

// DefaultReadWriteTimeout bounds every individual socket read/write so a
// dead peer can't wedge the read loop forever.
const DefaultReadWriteTimeout = 30 * time.Second

// DefaultDialTimeout bounds the initial TCP/TLS handshake.
const DefaultDialTimeout = 10 * time.Second

// TCP wraps a net.Conn (plain or *tls.Conn) and drives an *amqp.Connection
// from it: Run blocks reading from the socket and calling Feed until the
// socket errors or ctx/Close ends it, and the Connection's outbound writes
// go straight to the socket with a write deadline applied per call.
type TCP struct {
	conn    net.Conn
	timeout time.Duration
	log     logger.Logger
}

// Dial opens a TCP connection to uri.Addr(), wrapping it in TLS when
// uri.TLS is set, and returns a *TCP ready to back an *amqp.Connection via
// NewConnection(cfg, t.Write).
func Dial(uri amqp.URI, tlsConfig *tls.Config) (*TCP, error) {
	d := net.Dialer{Timeout: DefaultDialTimeout}
	var (
		conn net.Conn
		err  error
	)
	if uri.TLS {
		cfg := tlsConfig
		if cfg == nil {
			cfg = &tls.Config{ServerName: uri.Host}
		}
		conn, err = tls.DialWithDialer(&d, "tcp", uri.Addr(), cfg)
	} else {
		conn, err = d.Dial("tcp", uri.Addr())
	}
	if err != nil {
		return nil, err
	}
	return &TCP{conn: conn, timeout: DefaultReadWriteTimeout, log: logger.Std()}, nil
}

// WithTimeout overrides the default per-call read/write deadline.
func (t *TCP) WithTimeout(d time.Duration) *TCP {
	t.timeout = d
	return t
}

// Write implements amqp.Port: it is handed to NewConnection as the outbound
// byte sink. Every call gets its own write deadline so a stalled peer
// fails the write rather than blocking the caller's single driver
// goroutine forever — the engine treats a write as all-or-fatal and
// buffers nothing itself.
func (t *TCP) Write(b []byte) error {
	if t.timeout > 0 {
		_ = t.conn.SetWriteDeadline(time.Now().Add(t.timeout))
	}
	_, err := t.conn.Write(b)
	return err
}

// Run reads from the socket in a loop, feeding every chunk to conn.Feed,
// until the socket returns an error (including a deadline with no activity,
// which Feed's caller interprets as a transport fault) or the connection
// itself reports closed. It is meant to run on its own goroutine; the
// engine it drives is not thread-safe, so nothing else may call into conn
// concurrently with Run.
func (t *TCP) Run(conn *amqp.Connection) error {
	buf := make([]byte, 64*1024)
	for {
		if t.timeout > 0 {
			_ = t.conn.SetReadDeadline(time.Now().Add(t.timeout))
		}
		n, err := t.conn.Read(buf)
		if n > 0 {
			if ferr := conn.Feed(buf[:n]); ferr != nil {
				return ferr
			}
		}
		if err != nil {
			return err
		}
	}
}

// Close closes the underlying socket.
func (t *TCP) Close() error { return t.conn.Close() }

// LocalAddr and RemoteAddr expose the underlying socket's endpoints, useful
// for log fields.
func (t *TCP) LocalAddr() net.Addr  { return t.conn.LocalAddr() }
func (t *TCP) RemoteAddr() net.Addr { return t.conn.RemoteAddr() }
