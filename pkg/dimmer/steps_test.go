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
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/binkynet/dcclicht/pkg/model"
)

func TestDutyStepsShape(t *testing.T) {
	steps := DutySteps()
	require.Len(t, steps, model.MaxLevel+1)
	for i := 1; i < len(steps); i++ {
		assert.GreaterOrEqual(t, steps[i], steps[i-1], "step %d", i)
	}
	for _, s := range steps {
		assert.Less(t, s, uint32(model.DutyDenominator))
	}
}

func TestDutyStepsIsCopy(t *testing.T) {
	steps := DutySteps()
	steps[0] = 99
	assert.Equal(t, uint32(0), Duty(0).Numerator)
}

func TestDuty(t *testing.T) {
	assert.Equal(t, model.DutyFraction{Numerator: 0, Denominator: 256}, Duty(0))
	assert.True(t, Duty(0).IsOff())
	assert.Equal(t, model.DutyFraction{Numerator: 255, Denominator: 256}, Duty(model.MaxLevel))
	assert.Equal(t, uint32(32), Duty(9).Numerator)
	assert.Equal(t, Duty(model.MaxLevel), Duty(200), "levels above max use the max step")
}
