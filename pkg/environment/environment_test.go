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

package environment

import (
	"testing"

	"github.com/rs/zerolog"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestBridgeTypeForMachine(t *testing.T) {
	assert.Equal(t, BridgeTypeRaspberryPi, bridgeTypeForMachine("armv7l"))
	assert.Equal(t, BridgeTypeRaspberryPi, bridgeTypeForMachine("aarch64"))
	assert.Equal(t, BridgeTypeVirtual, bridgeTypeForMachine("x86_64"))
}

func TestHostID(t *testing.T) {
	id, err := HostID(zerolog.Nop())
	require.NoError(t, err)
	assert.Len(t, id, hostIDLength)

	again, err := HostID(zerolog.Nop())
	require.NoError(t, err)
	assert.Equal(t, id, again)
}

func TestShortHash(t *testing.T) {
	assert.Equal(t, "aaf4c61ddc", shortHash("hello"))
}
