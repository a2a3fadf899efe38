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

// Package metrics exposes the prometheus counters/gauges the connection
// and channel engines update as they run, scoped to what a single AMQP
// connection observes about itself.
package metrics

import (
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promauto"
)

const namespace = "amqp"

var (
	FramesSent = promauto.NewCounterVec(
		prometheus.CounterOpts{
			Namespace: namespace,
			Name:      "frames_sent_total",
			Help:      "Frames written to the connection, by frame type",
		},
		[]string{"type"},
	)

	FramesReceived = promauto.NewCounterVec(
		prometheus.CounterOpts{
			Namespace: namespace,
			Name:      "frames_received_total",
			Help:      "Frames read from the connection, by frame type",
		},
		[]string{"type"},
	)

	BytesSent = promauto.NewCounter(
		prometheus.CounterOpts{
			Namespace: namespace,
			Name:      "bytes_sent_total",
			Help:      "Raw bytes written to the connection",
		},
	)

	BytesReceived = promauto.NewCounter(
		prometheus.CounterOpts{
			Namespace: namespace,
			Name:      "bytes_received_total",
			Help:      "Raw bytes read from the connection",
		},
	)

	HeartbeatsSent = promauto.NewCounter(
		prometheus.CounterOpts{
			Namespace: namespace,
			Name:      "heartbeats_sent_total",
			Help:      "Heartbeat frames emitted",
		},
	)

	HeartbeatsMissed = promauto.NewCounter(
		prometheus.CounterOpts{
			Namespace: namespace,
			Name:      "heartbeats_missed_total",
			Help:      "Heartbeat deadlines that elapsed with no frame from the broker",
		},
	)

	ConfirmsAcked = promauto.NewCounter(
		prometheus.CounterOpts{
			Namespace: namespace,
			Name:      "confirms_acked_total",
			Help:      "Published messages acked by the broker under publisher confirms",
		},
	)

	ConfirmsNacked = promauto.NewCounter(
		prometheus.CounterOpts{
			Namespace: namespace,
			Name:      "confirms_nacked_total",
			Help:      "Published messages nacked by the broker under publisher confirms",
		},
	)

	ChannelsOpen = promauto.NewGauge(
		prometheus.GaugeOpts{
			Namespace: namespace,
			Name:      "channels_open",
			Help:      "Channels currently open on this connection",
		},
	)

	ConsumersActive = promauto.NewGauge(
		prometheus.GaugeOpts{
			Namespace: namespace,
			Name:      "consumers_active",
			Help:      "Consumers currently registered across all channels",
		},
	)
)
