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

package button

import (
	"context"
	"testing"
	"time"

	"github.com/rs/zerolog"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/binkynet/dcclicht/pkg/service/bridge"
)

func TestEdgeWatcher(t *testing.T) {
	var w edgeWatcher
	samples := []struct {
		active bool
		kind   EventKind
	}{
		{false, ""},
		{false, ""},
		{true, Pressed},
		{true, ""},
		{false, Released},
		{false, ""},
		{true, Pressed},
		{false, Released},
	}
	for i, s := range samples {
		kind, changed := w.update(s.active)
		assert.Equal(t, s.kind != "", changed, "sample %d", i)
		assert.Equal(t, s.kind, kind, "sample %d", i)
	}
}

func TestEdgeWatcherHeldAtStart(t *testing.T) {
	var w edgeWatcher
	samples := []struct {
		active bool
		kind   EventKind
	}{
		{true, ""},
		{true, ""},
		// Release of a press that happened before startup
		{false, ""},
		{false, ""},
		{true, Pressed},
		{false, Released},
	}
	for i, s := range samples {
		kind, changed := w.update(s.active)
		assert.Equal(t, s.kind != "", changed, "sample %d", i)
		assert.Equal(t, s.kind, kind, "sample %d", i)
	}
}

func TestServiceIgnoresButtonHeldAtStart(t *testing.T) {
	br := bridge.NewVirtualBridge()
	// Hold the button before the watcher starts
	br.InputPin(17).Set(false)
	svc := NewService(Config{Pin: 17, PollInterval: time.Millisecond}, Dependencies{
		Logger: zerolog.Nop(),
		Bridge: br,
	})
	events := make(chan Event, 4)
	unsubscribe := svc.Subscribe(func(e Event) { events <- e })
	defer unsubscribe()

	ctx, cancel := context.WithCancel(context.Background())
	defer cancel()
	done := make(chan error, 1)
	go func() { done <- svc.Run(ctx) }()

	time.Sleep(time.Millisecond * 20)
	br.InputPin(17).Set(true)
	time.Sleep(time.Millisecond * 20)
	select {
	case e := <-events:
		t.Fatalf("Unexpected %s event for button held at start", e.Kind)
	default:
	}

	br.InputPin(17).Set(false)
	select {
	case e := <-events:
		assert.Equal(t, Pressed, e.Kind)
	case <-time.After(time.Second * 2):
		t.Fatal("No press reported")
	}

	cancel()
	select {
	case err := <-done:
		require.NoError(t, err)
	case <-time.After(time.Second * 2):
		t.Fatal("Run did not end on cancel")
	}
}

func TestServiceReportsPressAndRelease(t *testing.T) {
	br := bridge.NewVirtualBridge()
	svc := NewService(Config{Pin: 17, PollInterval: time.Millisecond}, Dependencies{
		Logger: zerolog.Nop(),
		Bridge: br,
	})
	events := make(chan Event, 4)
	unsubscribe := svc.Subscribe(func(e Event) { events <- e })
	defer unsubscribe()

	ctx, cancel := context.WithCancel(context.Background())
	defer cancel()
	done := make(chan error, 1)
	go func() { done <- svc.Run(ctx) }()

	// Let the watcher see the released line first
	time.Sleep(time.Millisecond * 20)
	br.InputPin(17).Set(false)

	select {
	case e := <-events:
		assert.Equal(t, Pressed, e.Kind)
		assert.Equal(t, 17, e.Pin)
	case <-time.After(time.Second * 2):
		t.Fatal("No press reported")
	}

	br.InputPin(17).Set(true)
	select {
	case e := <-events:
		assert.Equal(t, Released, e.Kind)
	case <-time.After(time.Second * 2):
		t.Fatal("No release reported")
	}

	cancel()
	select {
	case err := <-done:
		require.NoError(t, err)
	case <-time.After(time.Second * 2):
		t.Fatal("Run did not end on cancel")
	}
}

func TestServiceDisabled(t *testing.T) {
	svc := NewService(Config{}, Dependencies{
		Logger: zerolog.Nop(),
		Bridge: bridge.NewVirtualBridge(),
	})
	ctx, cancel := context.WithCancel(context.Background())
	cancel()
	assert.NoError(t, svc.Run(ctx))
}
