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

package button

import (
	"context"
	"time"

	"github.com/mattn/go-pubsub"
	"github.com/pkg/errors"
	"github.com/rs/zerolog"

	"github.com/binkynet/dcclicht/pkg/service/bridge"
	"github.com/binkynet/dcclicht/pkg/service/util"
)

// EventKind identifies a button event.
type EventKind string

const (
	// Pressed is reported on the falling edge of the input line
	Pressed EventKind = "pressed"
	// Released is reported on the rising edge of the input line
	Released EventKind = "released"
)

// Event is published for every detected edge.
type Event struct {
	Kind EventKind
	Pin  int
	Time time.Time
}

// Service watches a single input line for button presses.
type Service interface {
	// Run the watcher until the given context is canceled.
	Run(ctx context.Context) error
	// Subscribe registers a callback that is invoked for every event.
	// Call the returned function to unsubscribe.
	Subscribe(cb func(Event)) context.CancelFunc
}

type Config struct {
	// GPIO pin of the button. 0 disables the watcher.
	Pin int
	// Interval between reads of the input line
	PollInterval time.Duration
}

type Dependencies struct {
	Logger zerolog.Logger
	Bridge bridge.API
}

type service struct {
	Config
	Dependencies
	events *pubsub.PubSub
}

// NewService creates a new button watcher.
func NewService(conf Config, deps Dependencies) Service {
	deps.Logger = deps.Logger.With().
		Str("component", "button").
		Int("pin", conf.Pin).
		Logger()
	return &service{
		Config:       conf,
		Dependencies: deps,
		events:       pubsub.New(),
	}
}

// Subscribe registers a callback that is invoked for every event.
func (s *service) Subscribe(cb func(Event)) context.CancelFunc {
	wcb := func(e Event) {
		cb(e)
	}
	s.events.Sub(wcb)
	return func() {
		s.events.Leave(wcb)
	}
}

// Run the watcher until the given context is canceled.
func (s *service) Run(ctx context.Context) error {
	log := s.Logger
	if s.Pin == 0 {
		log.Info().Msg("No button configured")
		<-ctx.Done()
		return nil
	}
	// The button pulls the line low when pressed
	pin, err := s.Bridge.Input(s.Pin, true)
	if err != nil {
		return errors.Wrap(err, "Failed to configure button input")
	}

	w := &edgeWatcher{}
	return util.UntilCanceled(ctx, log, "Reading button", s.PollInterval, func() error {
		active, err := pin.Read()
		if err != nil {
			readErrorsTotal.Inc()
			return err
		}
		if kind, changed := w.update(active); changed {
			s.report(kind)
		}
		return nil
	})
}

func (s *service) report(kind EventKind) {
	switch kind {
	case Pressed:
		s.Logger.Info().Msg("Pressed!")
	case Released:
		s.Logger.Info().Msg("Released!")
	}
	eventsTotal.WithLabelValues(string(kind)).Inc()
	s.events.Pub(Event{
		Kind: kind,
		Pin:  s.Pin,
		Time: time.Now(),
	})
}

// edgeWatcher turns a sequence of line samples into press and
// release events. A release is only reported after its press.
// A button held at startup is ignored until the line is released.
type edgeWatcher struct {
	armed   bool
	pressed bool
}

// update processes the next sample and returns the event it causes, if any.
func (w *edgeWatcher) update(active bool) (EventKind, bool) {
	if !w.armed {
		// Wait silently for the line to be released
		w.armed = !active
		return "", false
	}
	switch {
	case !w.pressed && active:
		w.pressed = true
		return Pressed, true
	case w.pressed && !active:
		w.pressed = false
		return Released, true
	}
	return "", false
}
