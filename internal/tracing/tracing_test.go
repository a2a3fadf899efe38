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

package tracing

import (
	"context"
	"errors"
	"testing"
)

func TestStartEndDoesNotPanicWithoutProvider(t *testing.T) {
	ctx, end := Start(context.Background(), "queue.declare")
	if ctx == nil {
		t.Fatal("expected non-nil context")
	}
	end(nil)
}

func TestStartEndRecordsErrorWithoutPanicking(t *testing.T) {
	_, end := Start(context.Background(), "basic.publish")
	end(errors.New("boom"))
}
