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

package menu

import (
	"bytes"
	"context"
	"errors"
	"fmt"
	"strings"
	"testing"

	"github.com/rs/zerolog"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/binkynet/dcclicht/pkg/dimmer"
)

func TestInit(t *testing.T) {
	var buf bytes.Buffer
	bank := dimmer.NewBank(zerolog.Nop())
	bank.Set(2, 9)
	bank.Set(7, 15)
	// Drain pending signal
	require.NoError(t, bank.Wait(context.Background()))

	m := New(&buf, bank, "1.0.0")
	require.NoError(t, m.Init())
	assert.Equal(t, []byte{27, 99, 7, 7, 7}, buf.Bytes())
	for idx := 0; idx < 8; idx++ {
		assert.Equal(t, 0, int(bank.Get(idx)), "channel %d", idx)
	}
	// Reset must wake the output loop
	assert.NoError(t, bank.Wait(context.Background()))
}

func TestRenderLine(t *testing.T) {
	var buf bytes.Buffer
	bank := dimmer.NewBank(zerolog.Nop())
	bank.Set(4, 12)
	m := New(&buf, bank, "dev")

	require.NoError(t, m.RenderLine(5, 0))
	assert.Equal(t, "\x1b[9;10HLicht 5:  12\n\x1b[H", buf.String())

	buf.Reset()
	require.NoError(t, m.RenderLine(5, 5))
	assert.Equal(t, "\x1b[9;10HLicht 5: \x1b[7m 12\x1b[0m\n\x1b[H", buf.String())

	buf.Reset()
	require.NoError(t, m.RenderLine(1, 5))
	assert.Equal(t, "\x1b[5;10HLicht 1:   0\n\x1b[H", buf.String())
}

func TestRenderLineOutOfRange(t *testing.T) {
	var buf bytes.Buffer
	m := New(&buf, dimmer.NewBank(zerolog.Nop()), "dev")
	require.NoError(t, m.RenderLine(0, 0))
	require.NoError(t, m.RenderLine(9, 9))
	require.NoError(t, m.RenderLine(-1, 0))
	assert.Equal(t, 0, buf.Len())
}

func TestRenderFull(t *testing.T) {
	var buf bytes.Buffer
	bank := dimmer.NewBank(zerolog.Nop())
	m := New(&buf, bank, "0.3.1")
	require.NoError(t, m.RenderFull(0))

	var expected strings.Builder
	expected.WriteString("\x1b[2J\x1b[1;20HDCC Licht - 0.3.1\n")
	for idx := 1; idx <= 8; idx++ {
		fmt.Fprintf(&expected, "\x1b[%d;10HLicht %d:   0\n\x1b[H", idx+4, idx)
	}
	expected.WriteString("\x1b[H")
	assert.Equal(t, expected.String(), buf.String())
	assert.NotContains(t, buf.String(), "\x1b[7m")
}

func TestRenderFullHighlightsSelection(t *testing.T) {
	var buf bytes.Buffer
	m := New(&buf, dimmer.NewBank(zerolog.Nop()), "dev")
	require.NoError(t, m.RenderFull(3))
	assert.Equal(t, 1, strings.Count(buf.String(), "\x1b[7m"))
	assert.Contains(t, buf.String(), "Licht 3: \x1b[7m  0\x1b[0m\n")
}

type failingWriter struct{}

func (failingWriter) Write(p []byte) (int, error) {
	return 0, errors.New("link down")
}

func TestWriteFailure(t *testing.T) {
	m := New(failingWriter{}, dimmer.NewBank(zerolog.Nop()), "dev")
	assert.Error(t, m.Init())
	assert.Error(t, m.RenderFull(0))
	assert.Error(t, m.RenderLine(1, 1))
}
