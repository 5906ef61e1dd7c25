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

package service

import (
	"context"
	"sync"
	"time"

	"github.com/pkg/errors"
	"github.com/rs/zerolog"
	"golang.org/x/sync/errgroup"

	"github.com/binkynet/dcclicht/pkg/dimmer"
	"github.com/binkynet/dcclicht/pkg/model"
	"github.com/binkynet/dcclicht/pkg/service/bridge"
	"github.com/binkynet/dcclicht/pkg/service/button"
	"github.com/binkynet/dcclicht/pkg/service/console"
	"github.com/binkynet/dcclicht/pkg/service/devices"
	"github.com/binkynet/dcclicht/pkg/service/link"
	"github.com/binkynet/dcclicht/pkg/service/output"
)

const (
	statusBlinkInterval = time.Millisecond * 250
)

// Service runs the dimmer.
type Service interface {
	// Run the dimmer until the given context is canceled
	// or a hardware/transport fault occurs.
	Run(ctx context.Context) error
	// Status returns a snapshot of the current state.
	Status() Status
	// DimmerBank returns the shared dimmer bank.
	DimmerBank() *dimmer.Bank
}

// Status of the dimmer.
type Status struct {
	ProgramVersion string
	HostID         string
	StartedAt      time.Time
	Levels         [model.ChannelCount]model.Level
	// Most recent button event (Kind is empty when none occurred yet)
	LastButtonEvent button.Event
	ButtonEvents    int
}

type Config struct {
	ProgramVersion string
	HostID         string
	Button         button.Config
}

type Dependencies struct {
	Logger zerolog.Logger
	Bridge bridge.API
	Bank   *dimmer.Bank
	Groups devices.Groups
	Link   link.Link
}

type service struct {
	Config
	Dependencies

	output  output.Service
	console *console.Dispatcher
	button  button.Service

	mutex        sync.Mutex
	startedAt    time.Time
	lastEvent    button.Event
	buttonEvents int
}

// NewService creates a Service instance and returns it.
func NewService(conf Config, deps Dependencies) (Service, error) {
	if deps.Bank == nil {
		return nil, model.InvalidArgument("Bank is required")
	}
	if deps.Link == nil {
		return nil, model.InvalidArgument("Link is required")
	}
	deps.Logger = deps.Logger.With().Str("host-id", conf.HostID).Logger()
	s := &service{
		Config:       conf,
		Dependencies: deps,
		startedAt:    time.Now(),
		output: output.NewService(output.Dependencies{
			Logger: deps.Logger,
			Bank:   deps.Bank,
			Groups: deps.Groups,
		}),
		console: console.NewDispatcher(deps.Logger, deps.Bank, deps.Link, conf.ProgramVersion),
		button: button.NewService(conf.Button, button.Dependencies{
			Logger: deps.Logger,
			Bridge: deps.Bridge,
		}),
	}
	startedAtGauge.Set(float64(s.startedAt.Unix()))
	return s, nil
}

// DimmerBank returns the shared dimmer bank.
func (s *service) DimmerBank() *dimmer.Bank {
	return s.Bank
}

// Status returns a snapshot of the current state.
func (s *service) Status() Status {
	s.mutex.Lock()
	defer s.mutex.Unlock()
	return Status{
		ProgramVersion:  s.ProgramVersion,
		HostID:          s.HostID,
		StartedAt:       s.startedAt,
		Levels:          s.Bank.Levels(),
		LastButtonEvent: s.lastEvent,
		ButtonEvents:    s.buttonEvents,
	}
}

// Run the output loop, the menu on the link and the button watcher
// until the given context is canceled or one of them fails.
func (s *service) Run(ctx context.Context) error {
	log := s.Logger
	defer s.Link.Close()

	if err := s.Bridge.BlinkStatusLED(statusBlinkInterval); err != nil {
		log.Warn().Err(err).Msg("Failed to blink status LED")
	}
	defer s.Bridge.SetStatusLED(false)

	unsubscribe := s.button.Subscribe(s.buttonEvent)
	defer unsubscribe()

	log.Info().
		Str("version", s.ProgramVersion).
		Str("link", s.Link.Name()).
		Msg("Starting dimmer")
	g, ctx := errgroup.WithContext(ctx)
	g.Go(func() error {
		if err := s.output.Run(ctx); err != nil {
			return errors.Wrap(err, "Output failed")
		}
		return nil
	})
	g.Go(func() error {
		if err := s.console.Run(ctx, s.Link); err != nil {
			return errors.Wrap(err, "Console failed")
		}
		return nil
	})
	g.Go(func() error {
		if err := s.button.Run(ctx); err != nil {
			return errors.Wrap(err, "Button watcher failed")
		}
		return nil
	})
	if err := g.Wait(); err != nil {
		return err
	}
	log.Info().Msg("Dimmer stopped")
	return nil
}

func (s *service) buttonEvent(e button.Event) {
	s.mutex.Lock()
	defer s.mutex.Unlock()
	s.lastEvent = e
	s.buttonEvents++
}
