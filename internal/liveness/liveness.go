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

// Package liveness guards against the single-threaded dispatch loop
// continuing to touch a Connection that a user callback destroyed while it
// was running: the guarded object carries one generation counter, and the
// dispatcher snapshots it before dispatching each frame and re-checks it
// after.
package liveness

import "sync/atomic"

// Token is held by the guarded object (in this module, the Connection
// engine; channels carry no token of their own).
// Call Invalidate when the object is torn down; any Check taken out before
// that point reports false afterward.
type Token struct {
	generation atomic.Int64
}

// Check is a cheap snapshot a caller takes before invoking a user callback,
// then re-validates afterward to decide whether it's still safe to keep
// using the guarded object.
type Check struct {
	token *Token
	seen  int64
}

// Watch takes a liveness snapshot of t.
func (t *Token) Watch() Check {
	return Check{token: t, seen: t.generation.Load()}
}

// Alive reports whether the guarded object has not been invalidated since
// Watch was called.
func (c Check) Alive() bool {
	return c.token.generation.Load() == c.seen
}

// Invalidate marks the guarded object as destroyed. Every Check taken
// before this call reports Alive() == false afterward.
func (t *Token) Invalidate() {
	t.generation.Add(1)
}
