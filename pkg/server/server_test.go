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

package server

import (
	"context"
	"encoding/json"
	"fmt"
	"io"
	"net"
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"github.com/rs/zerolog"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/binkynet/dcclicht/pkg/model"
	"github.com/binkynet/dcclicht/pkg/service"
)

type testService struct {
	status service.Status
}

func (s testService) Status() service.Status {
	return s.status
}

func newTestServer(t *testing.T) *Server {
	var levels [model.ChannelCount]model.Level
	levels[0] = 15
	levels[5] = 9
	s, err := New(Config{}, zerolog.Nop(), nil, testService{service.Status{
		ProgramVersion: "1.0.0",
		HostID:         "abc",
		StartedAt:      time.Now().Add(-time.Minute * 5),
		Levels:         levels,
	}})
	require.NoError(t, err)
	return s
}

func get(t *testing.T, s *Server, path string) *httptest.ResponseRecorder {
	req := httptest.NewRequest(http.MethodGet, path, nil)
	rec := httptest.NewRecorder()
	s.newRouter().ServeHTTP(rec, req)
	return rec
}

func TestHealth(t *testing.T) {
	rec := get(t, newTestServer(t), "/health")
	assert.Equal(t, http.StatusOK, rec.Code)
	assert.Equal(t, "OK", rec.Body.String())
}

func TestDimmers(t *testing.T) {
	rec := get(t, newTestServer(t), "/api/v1/dimmers")
	require.Equal(t, http.StatusOK, rec.Code)

	var resp DimmersResponse
	require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &resp))
	assert.Equal(t, "abc", resp.HostID)
	assert.Equal(t, "1.0.0", resp.Version)
	assert.Equal(t, "5 minutes", resp.Uptime)
	require.Len(t, resp.Channels, model.ChannelCount)
	assert.Equal(t, ChannelStatus{Channel: 1, Level: 15, Numerator: 255, Denominator: 256, Duty: 255.0 / 256}, resp.Channels[0])
	assert.Equal(t, ChannelStatus{Channel: 6, Level: 9, Numerator: 32, Denominator: 256, Duty: 0.125}, resp.Channels[5])
	assert.Equal(t, 0, resp.Channels[7].Level)
}

func TestMetrics(t *testing.T) {
	rec := get(t, newTestServer(t), "/metrics")
	assert.Equal(t, http.StatusOK, rec.Code)
	assert.Contains(t, rec.Body.String(), "go_goroutines")
}

func freePort(t *testing.T) int {
	l, err := net.Listen("tcp", "127.0.0.1:0")
	require.NoError(t, err)
	defer l.Close()
	return l.Addr().(*net.TCPAddr).Port
}

func TestRun(t *testing.T) {
	s := newTestServer(t)
	s.Host = "127.0.0.1"
	s.HTTPPort = freePort(t)

	ctx, cancel := context.WithCancel(context.Background())
	done := make(chan error, 1)
	go func() { done <- s.Run(ctx) }()

	url := fmt.Sprintf("http://127.0.0.1:%d/health", s.HTTPPort)
	require.Eventually(t, func() bool {
		resp, err := http.Get(url)
		if err != nil {
			return false
		}
		defer resp.Body.Close()
		body, _ := io.ReadAll(resp.Body)
		return resp.StatusCode == http.StatusOK && string(body) == "OK"
	}, time.Second*2, time.Millisecond*10)

	cancel()
	select {
	case err := <-done:
		assert.NoError(t, err)
	case <-time.After(time.Second * 2):
		t.Fatal("Run did not end on cancel")
	}
}
