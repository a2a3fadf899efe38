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

// Package rescue isolates the single-threaded dispatch loop from panics
// raised by application-supplied callbacks. A callback is arbitrary user
// code; letting it panic through the frame-dispatch stack would leave a
// Connection or Channel mid-mutation.
package rescue

import (
	"runtime"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promauto"

	"github.com/goamqp/amqp/logger"
)

var panicTotal = promauto.NewCounter(
	prometheus.CounterOpts{
		Namespace: "amqp",
		Name:      "callback_panic_total",
		Help:      "number of panics recovered from user-supplied callbacks",
	},
)

var PanicHandlers = []func(any){
	incPanicCounter,
	logPanic,
}

func incPanicCounter(_ any) {
	panicTotal.Inc()
}

func logPanic(r any) {
	const size = 64 << 10
	stacktrace := make([]byte, size)
	stacktrace = stacktrace[:runtime.Stack(stacktrace, false)]
	if _, ok := r.(string); ok {
		logger.Errorf("recovered panic in callback: %s\n%s", r, stacktrace)
	} else {
		logger.Errorf("recovered panic in callback: %#v (%v)\n%s", r, r, stacktrace)
	}
}

// HandleCrash recovers a panic, if any, and runs PanicHandlers against it.
// Call via defer around any invocation of application-supplied code.
func HandleCrash() {
	if r := recover(); r != nil {
		for _, fn := range PanicHandlers {
			fn(r)
		}
	}
}

// Call runs fn, recovering and logging any panic it raises so the caller's
// dispatch loop can continue processing the next frame.
func Call(fn func()) {
	defer HandleCrash()
	fn()
}
