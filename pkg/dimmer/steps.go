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

package dimmer

import (
	"github.com/binkynet/dcclicht/pkg/model"
)

// dutySteps maps a brightness level onto a duty numerator (out of
// model.DutyDenominator). Steps grow roughly by a factor sqrt(2) so that
// every level looks like an equal step to the human eye.
var dutySteps = [model.MaxLevel + 1]uint32{
	0, 2, 3, 4, 6, 8, 11, 16, 23, 32, 45, 64, 90, 128, 181, 255,
}

// DutySteps returns a copy of the level to duty numerator table.
func DutySteps() []uint32 {
	result := make([]uint32, len(dutySteps))
	copy(result, dutySteps[:])
	return result
}

// Duty returns the duty fraction for the given level.
// Levels above model.MaxLevel are treated as model.MaxLevel.
func Duty(level model.Level) model.DutyFraction {
	if level > model.MaxLevel {
		level = model.MaxLevel
	}
	return model.DutyFraction{
		Numerator:   dutySteps[level],
		Denominator: model.DutyDenominator,
	}
}
