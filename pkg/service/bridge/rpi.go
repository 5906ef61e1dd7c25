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

package bridge

import (
	"sync"
	"time"

	"github.com/ecc1/gpio"
	"github.com/pkg/errors"
)

const (
	statusLedPin = 23
	rpiI2CBus    = "/dev/i2c-1"
)

// statusLed drives the status LED, either steady or blinking.
type statusLed struct {
	mutex     sync.Mutex
	pin       gpio.OutputPin
	stopBlink chan struct{}
}

// stop ends a running blink goroutine. Requires the mutex.
func (l *statusLed) stop() {
	if l.stopBlink != nil {
		close(l.stopBlink)
		l.stopBlink = nil
	}
}

func (l *statusLed) Set(on bool) error {
	l.mutex.Lock()
	defer l.mutex.Unlock()

	l.stop()
	return l.pin.Write(on)
}

func (l *statusLed) Blink(interval time.Duration) error {
	l.mutex.Lock()
	defer l.mutex.Unlock()

	l.stop()
	stopBlink := make(chan struct{})
	l.stopBlink = stopBlink
	go func() {
		ticker := time.NewTicker(interval)
		defer ticker.Stop()
		on := true
		for {
			l.mutex.Lock()
			select {
			case <-stopBlink:
				l.mutex.Unlock()
				return
			default:
				l.pin.Write(on)
			}
			l.mutex.Unlock()
			on = !on
			select {
			case <-ticker.C:
			case <-stopBlink:
				return
			}
		}
	}()
	return nil
}

type piBridge struct {
	mutex     sync.Mutex
	statusLed statusLed
	bus       I2CBus
}

// NewRaspberryPiBridge implements the bridge for Raspberry PI's
func NewRaspberryPiBridge() (API, error) {
	activeLow := true
	initialValue := false
	led, err := gpio.Output(statusLedPin, activeLow, initialValue)
	if err != nil {
		return nil, errors.Wrap(err, "Output[statusLed] failed")
	}
	return &piBridge{
		statusLed: statusLed{pin: led},
	}, nil
}

// Input initializes a GPIO input pin with the given pin number.
func (p *piBridge) Input(pinNumber int, activeLow bool) (InputPin, error) {
	pin, err := gpio.Input(pinNumber, activeLow)
	if err != nil {
		return nil, errors.Wrapf(err, "Input[%d] failed", pinNumber)
	}
	return pin, nil
}

// Turn status led on/off
func (p *piBridge) SetStatusLED(on bool) error {
	if err := p.statusLed.Set(on); err != nil {
		return errors.Wrap(err, "Failed to set status LED")
	}
	return nil
}

// Blink status led with given duration between on/off
func (p *piBridge) BlinkStatusLED(delay time.Duration) error {
	if err := p.statusLed.Blink(delay); err != nil {
		return errors.Wrap(err, "Failed to blink status LED")
	}
	return nil
}

// Open the I2C bus
func (p *piBridge) I2CBus() (I2CBus, error) {
	p.mutex.Lock()
	defer p.mutex.Unlock()

	if p.bus == nil {
		bus, err := NewI2CBus(rpiI2CBus)
		if err != nil {
			return nil, errors.Wrap(err, "NewI2CBus failed")
		}
		p.bus = bus
	}
	return p.bus, nil
}

func (p *piBridge) Close() error {
	p.mutex.Lock()
	defer p.mutex.Unlock()

	p.statusLed.Set(false)
	if p.bus != nil {
		bus := p.bus
		p.bus = nil
		if err := bus.Close(); err != nil {
			return errors.Wrap(err, "Close failed")
		}
	}
	return nil
}
