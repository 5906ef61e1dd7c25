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
	"strconv"
	"sync"

	"github.com/rs/zerolog"

	"github.com/binkynet/dcclicht/pkg/model"
)

// Bank holds the brightness levels of all channels.
// All methods are safe for concurrent use.
// Every change of a level raises the update signal of the bank.
type Bank struct {
	log    zerolog.Logger
	mutex  sync.Mutex
	levels [model.ChannelCount]model.Level
	update *Signal
}

// NewBank creates a bank with all channels at level 0.
func NewBank(log zerolog.Logger) *Bank {
	b := &Bank{
		log:    log.With().Str("component", "dimmer-bank").Logger(),
		update: NewSignal(),
	}
	for idx := range b.levels {
		levelGauge.WithLabelValues(channelLabel(idx)).Set(0)
	}
	return b
}

// Get the level of the channel at given index (0...).
// Returns 0 for an index out of range.
func (b *Bank) Get(idx int) model.Level {
	if !b.checkIndex(idx, "get") {
		return 0
	}
	b.mutex.Lock()
	defer b.mutex.Unlock()
	return b.levels[idx]
}

// Set the level of the channel at given index (0...).
// The level is not clamped.
func (b *Bank) Set(idx int, level model.Level) {
	if !b.checkIndex(idx, "set") {
		return
	}
	b.mutex.Lock()
	b.levels[idx] = level
	levelGauge.WithLabelValues(channelLabel(idx)).Set(float64(level))
	b.mutex.Unlock()

	b.update.Raise()
}

// Increment the level of the channel at given index (0...) by 1.
// A channel at model.MaxLevel is left as is.
func (b *Bank) Increment(idx int) {
	if !b.checkIndex(idx, "increment") {
		return
	}
	b.modify(idx, func(level model.Level) (model.Level, bool) {
		if level < model.MaxLevel {
			return level + 1, true
		}
		return level, false
	})
}

// Decrement the level of the channel at given index (0...) by 1.
// A channel at level 0 is left as is.
func (b *Bank) Decrement(idx int) {
	if !b.checkIndex(idx, "decrement") {
		return
	}
	b.modify(idx, func(level model.Level) (model.Level, bool) {
		if level > 0 {
			return level - 1, true
		}
		return level, false
	})
}

// Levels returns the levels of all channels.
func (b *Bank) Levels() [model.ChannelCount]model.Level {
	b.mutex.Lock()
	defer b.mutex.Unlock()
	return b.levels
}

// Wait until at least one level has changed since the last call to Wait,
// or the given context is canceled.
func (b *Bank) Wait(ctx context.Context) error {
	return b.update.Wait(ctx)
}

// modify the level at given index with a read-modify-write cycle.
// The update signal is raised when the modifier reports a change.
func (b *Bank) modify(idx int, modifier func(model.Level) (model.Level, bool)) {
	b.mutex.Lock()
	newLevel, changed := modifier(b.levels[idx])
	if changed {
		b.levels[idx] = newLevel
		// Gauge follows the stored level
		levelGauge.WithLabelValues(channelLabel(idx)).Set(float64(newLevel))
	}
	b.mutex.Unlock()

	if changed {
		b.update.Raise()
	}
}

// checkIndex returns true if the given index is valid.
// Logs a warning otherwise.
func (b *Bank) checkIndex(idx int, operation string) bool {
	if idx >= 0 && idx < model.ChannelCount {
		return true
	}
	indexOutOfRangeTotal.WithLabelValues(operation).Inc()
	b.log.Warn().
		Int("index", idx).
		Str("operation", operation).
		Msg("Channel index out of range; ignoring")
	return false
}

func channelLabel(idx int) string {
	return strconv.Itoa(idx + 1)
}
