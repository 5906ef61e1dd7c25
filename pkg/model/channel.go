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

package model

const (
	// ChannelCount is the number of dimmer channels.
	ChannelCount = 8
	// GroupCount is the number of PWM channel groups.
	GroupCount = 2
	// GroupChannelCount is the number of PWM channels in a single group.
	GroupChannelCount = ChannelCount / GroupCount
	// MaxLevel is the highest brightness level of a channel.
	MaxLevel = 15
	// DutyDenominator is the denominator of all duty fractions.
	DutyDenominator = 256
)

// Level is the brightness of a single channel [0..MaxLevel].
type Level uint8

// DutyFraction is the PWM on-time of a channel expressed as
// Numerator/Denominator.
type DutyFraction struct {
	Numerator   uint32 `json:"numerator"`
	Denominator uint32 `json:"denominator"`
}

// IsOff returns true when the fraction results in an output that is always off.
func (df DutyFraction) IsOff() bool {
	return df.Numerator == 0 || df.Denominator == 0
}

// Scale converts the fraction into a count out of the given maximum.
func (df DutyFraction) Scale(max uint32) uint32 {
	if df.IsOff() {
		return 0
	}
	if df.Numerator >= df.Denominator {
		return max
	}
	return uint32((uint64(df.Numerator) * uint64(max)) / uint64(df.Denominator))
}
