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

package devices

import (
	"context"
	"fmt"

	aerr "github.com/ewoutp/go-aggregate-error"
	"github.com/rs/zerolog"

	"github.com/binkynet/dcclicht/pkg/config"
	"github.com/binkynet/dcclicht/pkg/model"
	"github.com/binkynet/dcclicht/pkg/service/bridge"
)

// Groups holds the channel groups, indexed by timer (group 1 at index 0).
type Groups [model.GroupCount]ChannelGroup

// NewGroups creates the channel groups described in the given configuration.
func NewGroups(cfg config.PWMConfig, bAPI bridge.API, log zerolog.Logger) (Groups, error) {
	var result Groups
	if len(cfg.Groups) != model.GroupCount {
		return result, model.InvalidArgument("Expected %d groups, got %d", model.GroupCount, len(cfg.Groups))
	}
	var bus bridge.I2CBus
	if cfg.Driver == config.PWMDriverPCA9685 {
		var err error
		if bus, err = bAPI.I2CBus(); err != nil {
			return result, fmt.Errorf("failed to open I2C bus: %w", err)
		}
	}
	for i, gc := range cfg.Groups {
		name := fmt.Sprintf("timer-%d", i+1)
		switch cfg.Driver {
		case config.PWMDriverPCA9685:
			address, err := model.ParseAddress(gc.Address)
			if err != nil {
				return result, err
			}
			g, err := newPCA9685Group(name, bus, uint8(address), gc.FirstOutput, cfg.FrequencyHz)
			if err != nil {
				return result, err
			}
			result[i] = g
			log.Debug().
				Str("group", name).
				Str("address", gc.Address).
				Int("first_output", gc.FirstOutput).
				Msg("Created pca9685 channel group")
		case config.PWMDriverVirtual:
			result[i] = NewVirtualGroup(name)
			log.Debug().Str("group", name).Msg("Created virtual channel group")
		default:
			return result, model.InvalidArgument("Unsupported PWM driver '%s'", cfg.Driver)
		}
	}
	return result, nil
}

// Configure all groups.
func (gs Groups) Configure(ctx context.Context) error {
	for _, g := range gs {
		if err := g.Configure(ctx); err != nil {
			return fmt.Errorf("failed to configure %s: %w", g.Name(), err)
		}
	}
	return nil
}

// Close all groups, collecting all errors.
func (gs Groups) Close(ctx context.Context) error {
	var ae aerr.AggregateError
	for _, g := range gs {
		if g == nil {
			continue
		}
		if err := g.Close(ctx); err != nil {
			ae.Add(fmt.Errorf("failed to close %s: %w", g.Name(), err))
		}
	}
	return ae.AsError()
}
