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

package output

import (
	"context"
	"strconv"

	"github.com/pkg/errors"
	"github.com/rs/zerolog"

	"github.com/binkynet/dcclicht/pkg/dimmer"
	"github.com/binkynet/dcclicht/pkg/model"
	"github.com/binkynet/dcclicht/pkg/service/devices"
)

var (
	maskAny = errors.WithStack
)

// Service drives the channel groups from the levels in the dimmer bank.
type Service interface {
	// Run applies all levels, then waits for the next bank change
	// and applies them again, until the given context is canceled.
	// A failure to write to the hardware ends the loop with an error.
	Run(ctx context.Context) error
}

type Dependencies struct {
	Logger zerolog.Logger
	Bank   *dimmer.Bank
	Groups devices.Groups
}

type service struct {
	Dependencies
}

// NewService creates a new output service.
func NewService(deps Dependencies) Service {
	deps.Logger = deps.Logger.With().Str("component", "output").Logger()
	return &service{
		Dependencies: deps,
	}
}

// Run the output loop until the given context is canceled.
func (s *service) Run(ctx context.Context) error {
	log := s.Logger
	if err := s.Groups.Configure(ctx); err != nil {
		return errors.Wrap(err, "Failed to configure channel groups")
	}
	defer func() {
		// ctx is canceled by now
		if err := s.Groups.Close(context.Background()); err != nil {
			log.Warn().Err(err).Msg("Failed to close channel groups")
		}
	}()
	log.Info().Msg("Channel groups configured")

	for {
		if err := s.apply(ctx); err != nil {
			if ctx.Err() != nil {
				// Shutdown during a pass
				return nil
			}
			return err
		}
		if err := s.Bank.Wait(ctx); err != nil {
			// Context canceled
			return nil
		}
	}
}

// apply writes the duty of all channels to the channel groups.
func (s *service) apply(ctx context.Context) error {
	levels := s.Bank.Levels()
	s.Logger.Info().
		Ints("levels", levelsToInts(levels)).
		Msg("PWM duty change")
	passesTotal.Inc()

	for idx, level := range levels {
		groupIndex, channel := Route(idx)
		g := s.Groups[groupIndex]
		duty := dimmer.Duty(level)
		if err := g.SetDuty(ctx, channel, duty); err != nil {
			writeErrorsTotal.WithLabelValues(g.Name()).Inc()
			return errors.Wrapf(err, "Failed to set duty of channel %d on %s channel %d", idx+1, g.Name(), channel)
		}
		dutyGauge.WithLabelValues(strconv.Itoa(idx + 1)).Set(float64(duty.Numerator) / float64(duty.Denominator))
	}
	return nil
}

// Route returns the group index (0 based) and the channel within that
// group (1 based) of the dimmer channel with given index (0 based).
// Channels 7..4 go to the second group channels 1..4,
// channels 3..0 go to the first group channels 1..4.
func Route(idx int) (int, int) {
	half := model.GroupChannelCount
	if idx >= half {
		return 1, model.ChannelCount - idx
	}
	return 0, half - idx
}

func levelsToInts(levels [model.ChannelCount]model.Level) []int {
	result := make([]int, len(levels))
	for i, l := range levels {
		result[i] = int(l)
	}
	return result
}
