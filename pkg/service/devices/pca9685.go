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
	"math"
	"sync"

	"github.com/binkynet/dcclicht/pkg/model"
	"github.com/binkynet/dcclicht/pkg/service/bridge"
)

type pca9685Group struct {
	mutex       sync.Mutex
	name        string
	bus         bridge.I2CBus
	address     uint8
	firstOutput int
	frequencyHz float64
}

const (
	pca9685MODE1Reg      = 0x00
	pca9685MODE2Reg      = 0x01
	pca9685LEDBaseReg    = 0x06
	pca9685PRESCALEReg   = 0xFE
	pca9685OnLowRegOfs   = 0
	pca9685OnHighRegOfs  = 1
	pca9685OffLowRegOfs  = 2
	pca9685OffHighRegOfs = 3
	pca9685RegIncrement  = 4

	pca9685OutputCount = 16
	pca9685Counts      = 4096
	pca9685Oscillator  = 25000000.0
	pca9685FullBit     = 0b00010000

	pca9685Mode1Sleep   = 0x11 // SLEEP=1, ALLCALL=1
	pca9685Mode1Awake   = 0x01 // SLEEP=0, ALLCALL=1
	pca9685Mode2TotemOD = 0x04 // OUTDRV=1
)

// newPCA9685Group creates a channel group that uses 4 consecutive outputs
// of a pca9685 device, starting at firstOutput (1...).
func newPCA9685Group(name string, bus bridge.I2CBus, address uint8, firstOutput int, frequencyHz float64) (ChannelGroup, error) {
	if firstOutput < 1 || firstOutput+model.GroupChannelCount-1 > pca9685OutputCount {
		return nil, model.InvalidArgument("First output must be in 1..%d range, got %d", pca9685OutputCount-model.GroupChannelCount+1, firstOutput)
	}
	return &pca9685Group{
		name:        name,
		bus:         bus,
		address:     address,
		firstOutput: firstOutput,
		frequencyHz: frequencyHz,
	}, nil
}

// Name of the group
func (d *pca9685Group) Name() string {
	return d.name
}

// ChannelCount returns the number of channels in the group
func (d *pca9685Group) ChannelCount() int {
	return model.GroupChannelCount
}

// Configure sets the PWM frequency, wakes the device and turns all
// channels of the group off.
func (d *pca9685Group) Configure(ctx context.Context) error {
	d.mutex.Lock()
	defer d.mutex.Unlock()

	prescale := uint8(math.Round(pca9685Oscillator/(pca9685Counts*d.frequencyHz)) - 1)
	return d.bus.Execute(ctx, d.address, func(ctx context.Context, dev bridge.I2CDevice) error {
		// The prescaler can only be written while sleeping
		if err := dev.WriteByteReg(pca9685MODE1Reg, pca9685Mode1Sleep); err != nil {
			return err
		}
		if err := dev.WriteByteReg(pca9685PRESCALEReg, prescale); err != nil {
			return err
		}
		if err := dev.WriteByteReg(pca9685MODE1Reg, pca9685Mode1Awake); err != nil {
			return err
		}
		if err := dev.WriteByteReg(pca9685MODE2Reg, pca9685Mode2TotemOD); err != nil {
			return err
		}
		for channel := 1; channel <= model.GroupChannelCount; channel++ {
			if err := d.writeDuty(dev, channel, model.DutyFraction{}); err != nil {
				return err
			}
		}
		return nil
	})
}

// Close turns all channels of the group off.
// The device itself is left running since it may serve another group.
func (d *pca9685Group) Close(ctx context.Context) error {
	d.mutex.Lock()
	defer d.mutex.Unlock()

	return d.bus.Execute(ctx, d.address, func(ctx context.Context, dev bridge.I2CDevice) error {
		for channel := 1; channel <= model.GroupChannelCount; channel++ {
			if err := d.writeDuty(dev, channel, model.DutyFraction{}); err != nil {
				return err
			}
		}
		return nil
	})
}

// SetDuty sets the duty cycle of the channel at given index (1...)
func (d *pca9685Group) SetDuty(ctx context.Context, channel int, duty model.DutyFraction) error {
	if _, err := d.regBase(channel); err != nil {
		return err
	}
	d.mutex.Lock()
	defer d.mutex.Unlock()

	return d.bus.Execute(ctx, d.address, func(ctx context.Context, dev bridge.I2CDevice) error {
		return d.writeDuty(dev, channel, duty)
	})
}

// Duty returns the duty cycle of the channel at given index (1...)
// as a fraction of 4096.
func (d *pca9685Group) Duty(ctx context.Context, channel int) (model.DutyFraction, error) {
	regBase, err := d.regBase(channel)
	if err != nil {
		return model.DutyFraction{}, err
	}
	d.mutex.Lock()
	defer d.mutex.Unlock()

	result := model.DutyFraction{Denominator: pca9685Counts}
	if err := d.bus.Execute(ctx, d.address, func(ctx context.Context, dev bridge.I2CDevice) error {
		onHigh, err := dev.ReadByteReg(uint8(regBase + pca9685OnHighRegOfs))
		if err != nil {
			return err
		}
		offLow, err := dev.ReadByteReg(uint8(regBase + pca9685OffLowRegOfs))
		if err != nil {
			return err
		}
		offHigh, err := dev.ReadByteReg(uint8(regBase + pca9685OffHighRegOfs))
		if err != nil {
			return err
		}
		switch {
		case offHigh&pca9685FullBit != 0:
			result.Numerator = 0
		case onHigh&pca9685FullBit != 0:
			result.Numerator = pca9685Counts
		default:
			result.Numerator = uint32(offLow) | (uint32(offHigh&0x0F) << 8)
		}
		return nil
	}); err != nil {
		return model.DutyFraction{}, err
	}
	return result, nil
}

// writeDuty programs the on/off registers of a single channel.
// The pulse always starts at count 0.
func (d *pca9685Group) writeDuty(dev bridge.I2CDevice, channel int, duty model.DutyFraction) error {
	regBase, err := d.regBase(channel)
	if err != nil {
		return err
	}
	var onHigh, offLow, offHigh uint8
	off := duty.Scale(pca9685Counts)
	switch {
	case off == 0:
		offHigh = pca9685FullBit
	case off >= pca9685Counts:
		onHigh = pca9685FullBit
	default:
		offLow = uint8(off & 0xFF)
		offHigh = uint8((off >> 8) & 0x0F)
	}
	regs := []struct {
		ofs int
		val uint8
	}{
		{pca9685OnLowRegOfs, 0},
		{pca9685OnHighRegOfs, onHigh},
		{pca9685OffLowRegOfs, offLow},
		{pca9685OffHighRegOfs, offHigh},
	}
	for _, r := range regs {
		if err := dev.WriteByteReg(uint8(regBase+r.ofs), r.val); err != nil {
			return fmt.Errorf("failed to write duty of %s channel %d: %w", d.name, channel, err)
		}
	}
	return nil
}

// regBase returns the first register for the given channel.
func (d *pca9685Group) regBase(channel int) (int, error) {
	if channel < 1 || channel > model.GroupChannelCount {
		return 0, model.InvalidArgument("Channel must be in 1..%d range, got %d", model.GroupChannelCount, channel)
	}
	output := d.firstOutput + channel - 1
	return pca9685LEDBaseReg + ((output - 1) * pca9685RegIncrement), nil
}
