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

package console

import (
	"bytes"
	"context"
	"fmt"
	"io"
	"testing"
	"time"

	"github.com/rs/zerolog"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/binkynet/dcclicht/pkg/dimmer"
	"github.com/binkynet/dcclicht/pkg/model"
)

func newTestDispatcher() (*bytes.Buffer, *dimmer.Bank, *Dispatcher) {
	var buf bytes.Buffer
	bank := dimmer.NewBank(zerolog.Nop())
	return &buf, bank, NewDispatcher(zerolog.Nop(), bank, &buf, "test")
}

func line(idx int, level int, selected bool) string {
	if selected {
		return fmt.Sprintf("\x1b[%d;10HLicht %d: \x1b[7m%3d\x1b[0m\n\x1b[H", idx+4, idx, level)
	}
	return fmt.Sprintf("\x1b[%d;10HLicht %d: %3d\n\x1b[H", idx+4, idx, level)
}

func TestStartRendersResetMenu(t *testing.T) {
	buf, bank, d := newTestDispatcher()
	bank.Set(3, 7)
	require.NoError(t, d.Start())

	out := buf.String()
	assert.True(t, bytes.HasPrefix(buf.Bytes(), []byte{27, 99, 7, 7, 7}))
	for idx := 1; idx <= model.ChannelCount; idx++ {
		assert.Contains(t, out, line(idx, 0, false))
	}
	assert.NotContains(t, out, "\x1b[7m")
	assert.Equal(t, 0, d.Selection())
	assert.Equal(t, model.Level(0), bank.Get(3))
}

func TestSelectAndAdjust(t *testing.T) {
	buf, bank, d := newTestDispatcher()

	require.NoError(t, d.Process([]byte("5")))
	assert.Equal(t, 5, d.Selection())
	assert.Equal(t, line(5, 0, true), buf.String())

	buf.Reset()
	require.NoError(t, d.Process([]byte("+")))
	assert.Equal(t, model.Level(1), bank.Get(4))
	assert.Equal(t, line(5, 1, true), buf.String())

	buf.Reset()
	require.NoError(t, d.Process([]byte("+")))
	assert.Equal(t, model.Level(2), bank.Get(4))
	assert.Equal(t, line(5, 2, true), buf.String())

	buf.Reset()
	require.NoError(t, d.Process([]byte("-")))
	assert.Equal(t, model.Level(1), bank.Get(4))
	assert.Equal(t, line(5, 1, true), buf.String())
}

func TestAlternativeAdjustKeys(t *testing.T) {
	_, bank, d := newTestDispatcher()
	require.NoError(t, d.Process([]byte("8dddda")))
	assert.Equal(t, model.Level(3), bank.Get(7))
}

func TestAdjustSaturates(t *testing.T) {
	_, bank, d := newTestDispatcher()
	require.NoError(t, d.Process([]byte("1")))
	require.NoError(t, d.Process(bytes.Repeat([]byte("+"), 20)))
	assert.Equal(t, model.Level(model.MaxLevel), bank.Get(0))
	require.NoError(t, d.Process(bytes.Repeat([]byte("-"), 20)))
	assert.Equal(t, model.Level(0), bank.Get(0))
}

func TestChangeSelection(t *testing.T) {
	buf, _, d := newTestDispatcher()
	require.NoError(t, d.Process([]byte("2")))
	buf.Reset()
	require.NoError(t, d.Process([]byte("7")))
	assert.Equal(t, line(2, 0, false)+line(7, 0, true), buf.String())

	buf.Reset()
	require.NoError(t, d.Process([]byte("0")))
	assert.Equal(t, 0, d.Selection())
	assert.Equal(t, line(7, 0, false), buf.String())
}

func TestNextCapsAtLastChannel(t *testing.T) {
	buf, _, d := newTestDispatcher()
	require.NoError(t, d.Process([]byte("ssssssss")))
	assert.Equal(t, 8, d.Selection())

	buf.Reset()
	require.NoError(t, d.Process([]byte("s")))
	assert.Equal(t, 8, d.Selection())
	assert.Equal(t, 0, buf.Len())
}

func TestPreviousAtNoSelection(t *testing.T) {
	buf, bank, d := newTestDispatcher()
	require.NoError(t, d.Process([]byte("w")))
	assert.Equal(t, 0, d.Selection())
	assert.Equal(t, 0, buf.Len())
	assert.Equal(t, [model.ChannelCount]model.Level{}, bank.Levels())

	require.NoError(t, d.Process([]byte("3ww")))
	assert.Equal(t, 1, d.Selection())
}

func TestAdjustWithoutSelection(t *testing.T) {
	buf, bank, d := newTestDispatcher()
	require.NoError(t, d.Process([]byte("+-da")))
	assert.Equal(t, 0, buf.Len())
	assert.Equal(t, [model.ChannelCount]model.Level{}, bank.Levels())
}

func TestInvalidCommand(t *testing.T) {
	buf, bank, d := newTestDispatcher()
	require.NoError(t, d.Process([]byte("4")))
	buf.Reset()

	require.NoError(t, d.Process([]byte{200, '9', 'x', '\r'}))
	assert.Equal(t, 4, d.Selection())
	assert.Equal(t, 0, buf.Len())
	assert.Equal(t, [model.ChannelCount]model.Level{}, bank.Levels())
}

func TestRefresh(t *testing.T) {
	buf, _, d := newTestDispatcher()
	require.NoError(t, d.Process([]byte("6")))
	buf.Reset()
	require.NoError(t, d.Process([]byte("r")))
	assert.True(t, bytes.HasPrefix(buf.Bytes(), []byte("\x1b[2J\x1b[1;20HDCC Licht - test\n")))
	assert.Contains(t, buf.String(), line(6, 0, true))
}

func TestRunEndsOnEOF(t *testing.T) {
	var out bytes.Buffer
	bank := dimmer.NewBank(zerolog.Nop())
	d := NewDispatcher(zerolog.Nop(), bank, &out, "test")

	err := d.Run(context.Background(), bytes.NewReader([]byte("3+++s+")))
	require.NoError(t, err)
	assert.Equal(t, model.Level(3), bank.Get(2))
	assert.Equal(t, model.Level(1), bank.Get(3))
	assert.Equal(t, 4, d.Selection())
}

func TestRunKeepsSelectionAcrossChunks(t *testing.T) {
	r, w := io.Pipe()
	var out bytes.Buffer
	bank := dimmer.NewBank(zerolog.Nop())
	d := NewDispatcher(zerolog.Nop(), bank, &out, "test")

	done := make(chan error, 1)
	go func() { done <- d.Run(context.Background(), r) }()

	_, err := w.Write([]byte("2"))
	require.NoError(t, err)
	_, err = w.Write([]byte("++"))
	require.NoError(t, err)
	require.NoError(t, w.Close())

	select {
	case err := <-done:
		require.NoError(t, err)
	case <-time.After(time.Second * 2):
		t.Fatal("Run did not end on EOF")
	}
	assert.Equal(t, model.Level(2), bank.Get(1))
}

func TestRunEndsOnCancel(t *testing.T) {
	r, w := io.Pipe()
	defer w.Close()
	var out bytes.Buffer
	d := NewDispatcher(zerolog.Nop(), dimmer.NewBank(zerolog.Nop()), &out, "test")

	ctx, cancel := context.WithCancel(context.Background())
	done := make(chan error, 1)
	go func() { done <- d.Run(ctx, r) }()
	cancel()

	select {
	case err := <-done:
		assert.NoError(t, err)
	case <-time.After(time.Second * 2):
		t.Fatal("Run did not end on cancel")
	}
}
