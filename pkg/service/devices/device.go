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

	"github.com/binkynet/dcclicht/pkg/model"
)

// Device contains the API that is supported by all types of devices.
type Device interface {
	// Configure is called once to put the device in the desired state.
	Configure(ctx context.Context) error
	// Close brings the device back to a safe state.
	Close(ctx context.Context) error
}

// ChannelGroup is a set of PWM channels that share a single timer.
type ChannelGroup interface {
	Device
	// Name of the group, used in logs and metrics
	Name() string
	// ChannelCount returns the number of channels in the group
	ChannelCount() int
	// SetDuty sets the duty cycle of the channel at given index (1...)
	SetDuty(ctx context.Context, channel int, duty model.DutyFraction) error
	// Duty returns the duty cycle of the channel at given index (1...)
	// as it is programmed in the hardware.
	Duty(ctx context.Context, channel int) (model.DutyFraction, error)
}
