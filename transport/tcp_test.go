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

package transport

import (
	"bytes"
	"net"
	"sync"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/goamqp/amqp"
	"github.com/goamqp/amqp/wire"
)

func TestTCPWriteSendsBytesOverSocket(t *testing.T) {
	client, server := net.Pipe()
	defer client.Close()
	defer server.Close()

	tp := &TCP{conn: client, timeout: time.Second}

	done := make(chan []byte, 1)
	go func() {
		buf := make([]byte, len(wire.ProtocolHeader))
		n, _ := server.Read(buf)
		done <- buf[:n]
	}()

	require.NoError(t, tp.Write(wire.ProtocolHeader))
	select {
	case got := <-done:
		assert.Equal(t, wire.ProtocolHeader, got)
	case <-time.After(2 * time.Second):
		t.Fatal("timed out waiting for write to reach the peer")
	}
}

func TestTCPRunFeedsBytesIntoConnection(t *testing.T) {
	client, server := net.Pipe()
	defer client.Close()
	defer server.Close()

	var mu sync.Mutex
	var written [][]byte
	writeCount := func() int {
		mu.Lock()
		defer mu.Unlock()
		return len(written)
	}

	cfg := amqp.NewConfig(amqp.URI{Host: "localhost", Port: 5672, User: "guest", Password: "guest", VHost: "/"})
	conn, err := amqp.NewConnection(cfg, func(b []byte) error {
		mu.Lock()
		written = append(written, append([]byte(nil), b...))
		mu.Unlock()
		return nil
	})
	require.NoError(t, err)

	tp := &TCP{conn: client, timeout: time.Second}
	runErr := make(chan error, 1)
	go func() { runErr <- tp.Run(conn) }()

	startOk, err := wire.EncodeMethodFrame(wire.ConnectionStart{VersionMajor: 0, VersionMinor: 9, Mechanisms: "PLAIN"})
	require.NoError(t, err)
	f := wire.Frame{Type: wire.FrameMethod, Channel: 0, Payload: startOk}
	var buf bytes.Buffer
	f.Encode(&buf)

	_, werr := server.Write(buf.Bytes())
	require.NoError(t, werr)

	// written[0] is the protocol header NewConnection emits synchronously;
	// a second entry only appears once Run has fed the socket's
	// connection.start back in and the engine replied with start-ok.
	require.Eventually(t, func() bool { return writeCount() > 1 }, 2*time.Second, 10*time.Millisecond)

	client.Close()
	server.Close()
	<-runErr
}
