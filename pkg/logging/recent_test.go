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

package logging

import (
	"fmt"
	"testing"

	"github.com/rs/zerolog"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestRecentLines(t *testing.T) {
	r := NewRecentLines(3, zerolog.InfoLevel)
	log := zerolog.New(r).Level(zerolog.DebugLevel)

	log.Debug().Msg("hidden")
	log.Info().Str("component", "output").Msg("PWM duty change")
	lines := r.Lines()
	require.Len(t, lines, 1)
	assert.Contains(t, lines[0], "PWM duty change")
	assert.Contains(t, lines[0], "component=output")
	assert.NotContains(t, lines[0], "hidden")

	for i := 0; i < 5; i++ {
		log.Warn().Msg(fmt.Sprintf("line %d", i))
	}
	lines = r.Lines()
	require.Len(t, lines, 3)
	assert.Contains(t, lines[0], "line 2")
	assert.Contains(t, lines[2], "line 4")
}

func TestRecentLinesMultiWriter(t *testing.T) {
	a := NewRecentLines(10, zerolog.DebugLevel)
	b := NewRecentLines(10, zerolog.WarnLevel)
	log := zerolog.New(zerolog.MultiLevelWriter(a, b))
	log.Info().Msg("info")
	log.Error().Msg("error")
	assert.Len(t, a.Lines(), 2)
	assert.Len(t, b.Lines(), 1)
}
