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
	"sync"

	"github.com/binkynet/dcclicht/pkg/model"
)

// VirtualGroup is a channel group without hardware.
// It remembers the last duty cycle of every channel.
type VirtualGroup struct {
	mutex      sync.Mutex
	name       string
	configured bool
	duties     [model.GroupChannelCount]model.DutyFraction
	writes     int
	err        error
}

var _ ChannelGroup = &VirtualGroup{}

// NewVirtualGroup creates a virtual channel group with all channels off.
func NewVirtualGroup(name string) *VirtualGroup {
	return &VirtualGroup{name: name}
}

// Name of the group
func (g *VirtualGroup) Name() string {
	return g.name
}

// ChannelCount returns the number of channels in the group
func (g *VirtualGroup) ChannelCount() int {
	return model.GroupChannelCount
}

// Configure marks the group as configured.
func (g *VirtualGroup) Configure(ctx context.Context) error {
	g.mutex.Lock()
	defer g.mutex.Unlock()
	if g.err != nil {
		return g.err
	}
	g.configured = true
	return nil
}

// Close turns all channels off.
func (g *VirtualGroup) Close(ctx context.Context) error {
	g.mutex.Lock()
	defer g.mutex.Unlock()
	g.configured = false
	for i := range g.duties {
		g.duties[i] = model.DutyFraction{}
	}
	return nil
}

// SetDuty sets the duty cycle of the channel at given index (1...)
func (g *VirtualGroup) SetDuty(ctx context.Context, channel int, duty model.DutyFraction) error {
	g.mutex.Lock()
	defer g.mutex.Unlock()
	if channel < 1 || channel > model.GroupChannelCount {
		return model.InvalidArgument("Channel must be in 1..%d range, got %d", model.GroupChannelCount, channel)
	}
	if g.err != nil {
		return g.err
	}
	g.duties[channel-1] = duty
	g.writes++
	return nil
}

// Duty returns the duty cycle of the channel at given index (1...)
func (g *VirtualGroup) Duty(ctx context.Context, channel int) (model.DutyFraction, error) {
	g.mutex.Lock()
	defer g.mutex.Unlock()
	if channel < 1 || channel > model.GroupChannelCount {
		return model.DutyFraction{}, model.InvalidArgument("Channel must be in 1..%d range, got %d", model.GroupChannelCount, channel)
	}
	return g.duties[channel-1], nil
}

// Duties returns the duty cycles of all channels.
func (g *VirtualGroup) Duties() [model.GroupChannelCount]model.DutyFraction {
	g.mutex.Lock()
	defer g.mutex.Unlock()
	return g.duties
}

// Writes returns the number of successful SetDuty calls.
func (g *VirtualGroup) Writes() int {
	g.mutex.Lock()
	defer g.mutex.Unlock()
	return g.writes
}

// IsConfigured returns true between Configure and Close.
func (g *VirtualGroup) IsConfigured() bool {
	g.mutex.Lock()
	defer g.mutex.Unlock()
	return g.configured
}

// SetError makes all following Configure and SetDuty calls fail with given error.
// Pass nil to recover.
func (g *VirtualGroup) SetError(err error) {
	g.mutex.Lock()
	defer g.mutex.Unlock()
	g.err = err
}
