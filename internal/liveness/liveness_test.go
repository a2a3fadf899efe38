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

package liveness

import "testing"

func TestCheckAliveUntilInvalidated(t *testing.T) {
	var tok Token
	c := tok.Watch()
	if !c.Alive() {
		t.Fatal("expected Alive before Invalidate")
	}

	tok.Invalidate()
	if c.Alive() {
		t.Fatal("expected !Alive after Invalidate")
	}
}

func TestWatchAfterInvalidateTracksCurrentGeneration(t *testing.T) {
	var tok Token
	tok.Invalidate()
	c := tok.Watch()
	if !c.Alive() {
		t.Fatal("a fresh Watch taken after Invalidate should report alive relative to the current generation")
	}

	tok.Invalidate()
	if c.Alive() {
		t.Fatal("expected !Alive after a second Invalidate")
	}
}
