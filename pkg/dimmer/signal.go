// Copyright 2026 Ewout Prangsma
//
// Licensed under the Apache License, Version 2.0 (the "License");
// you may not use this file except in compliance with the License.
// You may obtain a copy of the License at
//
//     http://www.apache.org/licenses/LICENSE-2.0
//
// Unless required by applicable law or agreed to in writing, software
// distributed under the License is distributed on an "AS IS" BASIS,
// WITHOUT WARRANTIES OR CONDITIONS OF ANY KIND, either express or implied.
// See the License for the specific language governing permissions and
// limitations under the License.
//
// Author Ewout Prangsma
//

package dimmer

import (
	"context"
)

// Signal is a single slot notification.
// Raising a signal never blocks. When the signal is raised multiple times
// before someone waits for it, the waiter is woken up only once.
type Signal struct {
	c chan struct{}
}

// NewSignal creates a signal that is not raised.
func NewSignal() *Signal {
	return &Signal{
		c: make(chan struct{}, 1),
	}
}

// Raise the signal.
func (s *Signal) Raise() {
	select {
	case s.c <- struct{}{}:
		signalsRaisedTotal.Inc()
	default:
		// Already pending
		signalsCoalescedTotal.Inc()
	}
}

// Pending returns true when the signal has been raised and not yet observed.
func (s *Signal) Pending() bool {
	return len(s.c) > 0
}

// Wait until the signal is raised (or was raised since the last wait) or
// the given context is canceled.
// The signal is cleared by a successful wait.
func (s *Signal) Wait(ctx context.Context) error {
	select {
	case <-s.c:
		return nil
	case <-ctx.Done():
		return ctx.Err()
	}
}
