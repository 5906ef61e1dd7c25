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

package console

import (
	"context"
	"io"

	"github.com/pkg/errors"
	"github.com/rs/zerolog"

	"github.com/binkynet/dcclicht/pkg/dimmer"
	"github.com/binkynet/dcclicht/pkg/model"
	"github.com/binkynet/dcclicht/pkg/service/menu"
)

const (
	// Maximum number of bytes read from the link at once
	chunkSize = 32
)

// Dispatcher maps bytes received from a link onto dimmer bank
// operations and keeps the menu on the link up to date.
// A Dispatcher is not safe for concurrent use.
type Dispatcher struct {
	log  zerolog.Logger
	bank *dimmer.Bank
	menu *menu.Menu
	sel  int
}

// NewDispatcher creates a dispatcher that renders its menu to the given writer.
func NewDispatcher(log zerolog.Logger, bank *dimmer.Bank, w io.Writer, version string) *Dispatcher {
	return &Dispatcher{
		log:  log.With().Str("component", "console").Logger(),
		bank: bank,
		menu: menu.New(w, bank, version),
	}
}

// Selection returns the currently selected channel (1..8), or 0 when
// no channel is selected.
func (d *Dispatcher) Selection() int {
	return d.sel
}

// Start initializes the terminal and renders the full menu.
func (d *Dispatcher) Start() error {
	if err := d.menu.Init(); err != nil {
		return err
	}
	return d.menu.RenderFull(d.sel)
}

// Run starts the menu and then processes everything read from the
// given reader until the context is canceled or the reader is exhausted.
func (d *Dispatcher) Run(ctx context.Context, r io.Reader) error {
	if err := d.Start(); err != nil {
		return err
	}
	d.log.Info().Msg("Menu started")

	chunks := make(chan []byte)
	readErrors := make(chan error, 1)
	go func() {
		for {
			buf := make([]byte, chunkSize)
			n, err := r.Read(buf)
			if n > 0 {
				select {
				case chunks <- buf[:n]:
				case <-ctx.Done():
					return
				}
			}
			if err != nil {
				readErrors <- err
				return
			}
		}
	}()

	for {
		select {
		case chunk := <-chunks:
			if err := d.Process(chunk); err != nil {
				return err
			}
		case err := <-readErrors:
			if errors.Is(err, io.EOF) {
				d.log.Info().Msg("Link closed")
				return nil
			}
			return errors.Wrap(err, "Failed to read from link")
		case <-ctx.Done():
			// Context canceled
			return nil
		}
	}
}

// Process handles every byte in the given data as a separate command.
func (d *Dispatcher) Process(data []byte) error {
	for _, b := range data {
		if err := d.dispatch(b); err != nil {
			return err
		}
	}
	return nil
}

func (d *Dispatcher) dispatch(b byte) error {
	log := d.log.With().Int("selection", d.sel).Logger()
	switch {
	case b == '+' || b == 'd':
		commandsTotal.WithLabelValues("increment").Inc()
		if d.sel > 0 {
			d.bank.Increment(d.sel - 1)
			log.Debug().Msg("Increment")
			return d.menu.RenderLine(d.sel, d.sel)
		}
	case b == '-' || b == 'a':
		commandsTotal.WithLabelValues("decrement").Inc()
		if d.sel > 0 {
			d.bank.Decrement(d.sel - 1)
			log.Debug().Msg("Decrement")
			return d.menu.RenderLine(d.sel, d.sel)
		}
	case b >= '0' && b <= '0'+model.ChannelCount:
		commandsTotal.WithLabelValues("select").Inc()
		return d.moveSelection(int(b - '0'))
	case b == 'r':
		commandsTotal.WithLabelValues("refresh").Inc()
		log.Debug().Msg("Refresh")
		return d.menu.RenderFull(d.sel)
	case b == 's':
		commandsTotal.WithLabelValues("next").Inc()
		if d.sel < model.ChannelCount {
			return d.moveSelection(d.sel + 1)
		}
	case b == 'w':
		commandsTotal.WithLabelValues("previous").Inc()
		if d.sel > 0 {
			return d.moveSelection(d.sel - 1)
		}
	default:
		invalidCommandsTotal.Inc()
		log.Info().Uint8("byte", b).Msg("Invalid command")
	}
	return nil
}

// moveSelection removes the highlight from the current line,
// selects the given channel and highlights its line.
func (d *Dispatcher) moveSelection(sel int) error {
	if err := d.menu.RenderLine(d.sel, 0); err != nil {
		return err
	}
	d.log.Debug().Int("from", d.sel).Int("to", sel).Msg("Select")
	d.sel = sel
	return d.menu.RenderLine(d.sel, d.sel)
}
