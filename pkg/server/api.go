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
	"net/http"
	"strings"
	"time"

	"github.com/dustin/go-humanize"
	"github.com/labstack/echo/v4"
	"github.com/pkg/errors"

	"github.com/binkynet/dcclicht/pkg/dimmer"
)

var (
	maskAny = errors.WithStack
)

// DimmersResponse is returned by GET /api/v1/dimmers.
type DimmersResponse struct {
	HostID    string          `json:"host_id"`
	Version   string          `json:"version"`
	StartedAt time.Time       `json:"started_at"`
	Uptime    string          `json:"uptime"`
	Channels  []ChannelStatus `json:"channels"`
}

// ChannelStatus is the state of a single channel.
type ChannelStatus struct {
	// 1 based channel number
	Channel     int     `json:"channel"`
	Level       int     `json:"level"`
	Numerator   uint32  `json:"numerator"`
	Denominator uint32  `json:"denominator"`
	Duty        float64 `json:"duty"`
}

func (s *Server) healthHandler(c echo.Context) error {
	return c.String(http.StatusOK, "OK")
}

func (s *Server) dimmersHandler(c echo.Context) error {
	st := s.service.Status()
	resp := DimmersResponse{
		HostID:    st.HostID,
		Version:   st.ProgramVersion,
		StartedAt: st.StartedAt,
		Uptime:    strings.TrimSpace(humanize.RelTime(st.StartedAt, time.Now(), "", "")),
		Channels:  make([]ChannelStatus, 0, len(st.Levels)),
	}
	for idx, level := range st.Levels {
		duty := dimmer.Duty(level)
		resp.Channels = append(resp.Channels, ChannelStatus{
			Channel:     idx + 1,
			Level:       int(level),
			Numerator:   duty.Numerator,
			Denominator: duty.Denominator,
			Duty:        float64(duty.Numerator) / float64(duty.Denominator),
		})
	}
	return c.JSON(http.StatusOK, resp)
}
