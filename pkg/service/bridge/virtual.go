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
	"context"
	"sync"
	"sync/atomic"
	"time"
)

// VirtualBridge is a bridge without hardware.
// Its I2C bus stores register values in memory and its input pins
// keep the level they were given with VirtualInputPin.Set.
type VirtualBridge struct {
	mutex  sync.Mutex
	bus    *memoryI2CBus
	inputs map[int]*VirtualInputPin
}

var _ API = &VirtualBridge{}

// NewVirtualBridge implements the bridge for a worker without hardware.
func NewVirtualBridge() *VirtualBridge {
	return &VirtualBridge{
		bus:    &memoryI2CBus{devices: make(map[uint8]*memoryI2CDevice)},
		inputs: make(map[int]*VirtualInputPin),
	}
}

// Input initializes a GPIO input pin with the given pin number.
func (p *VirtualBridge) Input(pinNumber int, activeLow bool) (InputPin, error) {
	pin := p.InputPin(pinNumber)
	pin.activeLow = activeLow
	return pin, nil
}

// InputPin returns the virtual pin with given number.
// A new pin is pulled up (level high).
func (p *VirtualBridge) InputPin(pinNumber int) *VirtualInputPin {
	p.mutex.Lock()
	defer p.mutex.Unlock()

	pin, found := p.inputs[pinNumber]
	if !found {
		pin = &VirtualInputPin{}
		pin.Set(true)
		p.inputs[pinNumber] = pin
	}
	return pin
}

// Registers returns the register values of the virtual I2C device with given address.
func (p *VirtualBridge) Registers(address uint8) [256]uint8 {
	return p.bus.device(address).snapshot()
}

// Turn status led on/off
func (p *VirtualBridge) SetStatusLED(on bool) error {
	return nil
}

// Blink status led with given duration between on/off
func (p *VirtualBridge) BlinkStatusLED(delay time.Duration) error {
	return nil
}

// Open the I2C bus
func (p *VirtualBridge) I2CBus() (I2CBus, error) {
	return p.bus, nil
}

func (p *VirtualBridge) Close() error {
	return nil
}

// VirtualInputPin is an input pin whose level is set in software.
type VirtualInputPin struct {
	level     atomic.Bool
	activeLow bool
}

// Set the electrical level of the pin.
func (p *VirtualInputPin) Set(level bool) {
	p.level.Store(level)
}

// Read the logical value of the pin.
func (p *VirtualInputPin) Read() (bool, error) {
	return p.level.Load() != p.activeLow, nil
}

type memoryI2CBus struct {
	mutex   sync.Mutex
	devices map[uint8]*memoryI2CDevice
}

// Execute an operation on the device with given address.
func (b *memoryI2CBus) Execute(ctx context.Context, address uint8, op func(ctx context.Context, dev I2CDevice) error) error {
	return op(ctx, b.device(address))
}

func (b *memoryI2CBus) device(address uint8) *memoryI2CDevice {
	b.mutex.Lock()
	defer b.mutex.Unlock()

	d, found := b.devices[address]
	if !found {
		d = &memoryI2CDevice{}
		b.devices[address] = d
	}
	return d
}

// Close the bus
func (b *memoryI2CBus) Close() error {
	return nil
}

type memoryI2CDevice struct {
	mutex     sync.Mutex
	registers [256]uint8
}

// Read a byte from given register
func (d *memoryI2CDevice) ReadByteReg(reg uint8) (uint8, error) {
	d.mutex.Lock()
	defer d.mutex.Unlock()
	return d.registers[reg], nil
}

// Write a byte to given register
func (d *memoryI2CDevice) WriteByteReg(reg uint8, val uint8) error {
	d.mutex.Lock()
	defer d.mutex.Unlock()
	d.registers[reg] = val
	return nil
}

func (d *memoryI2CDevice) snapshot() [256]uint8 {
	d.mutex.Lock()
	defer d.mutex.Unlock()
	return d.registers
}
