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

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestParseAddress(t *testing.T) {
	addr, err := ParseAddress("0x40")
	require.NoError(t, err)
	assert.Equal(t, 0x40, addr)

	addr, err = ParseAddress(" 65 ")
	require.NoError(t, err)
	assert.Equal(t, 65, addr)

	_, err = ParseAddress("0xZZ")
	assert.True(t, IsInvalidArgument(err))
	_, err = ParseAddress("")
	assert.True(t, IsInvalidArgument(err))
}

func TestDutyFractionScale(t *testing.T) {
	assert.Equal(t, uint32(4080), DutyFraction{Numerator: 255, Denominator: 256}.Scale(4096))
	assert.Equal(t, uint32(2048), DutyFraction{Numerator: 128, Denominator: 256}.Scale(4096))
	assert.Equal(t, uint32(4096), DutyFraction{Numerator: 256, Denominator: 256}.Scale(4096))
	assert.Equal(t, uint32(0), DutyFraction{Numerator: 0, Denominator: 256}.Scale(4096))
	assert.Equal(t, uint32(0), DutyFraction{Numerator: 3, Denominator: 0}.Scale(4096))
	assert.True(t, DutyFraction{}.IsOff())
}
