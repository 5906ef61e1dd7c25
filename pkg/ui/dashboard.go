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

package ui

import (
	"fmt"
	"strings"
	"time"

	"github.com/charmbracelet/bubbles/help"
	"github.com/charmbracelet/bubbles/key"
	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/lipgloss"
	"github.com/charmbracelet/ssh"
	"github.com/charmbracelet/wish/bubbletea"
	"github.com/dustin/go-humanize"

	"github.com/binkynet/dcclicht/pkg/dimmer"
	"github.com/binkynet/dcclicht/pkg/model"
	"github.com/binkynet/dcclicht/pkg/service"
	"github.com/binkynet/dcclicht/pkg/service/menu"
)

const (
	refreshInterval = time.Millisecond * 250
	maxLogLines     = 8
)

// Source provides the state shown on the dashboard.
type Source interface {
	Status() service.Status
	DimmerBank() *dimmer.Bank
}

// LogSource provides recent log lines.
type LogSource interface {
	Lines() []string
}

// UI creates a dashboard for every SSH session.
type UI struct {
	source Source
	logs   LogSource
}

// New creates a new UI.
func New(source Source, logs LogSource) *UI {
	return &UI{
		source: source,
		logs:   logs,
	}
}

// Handler creates the dashboard model for the given session.
func (u *UI) Handler(s ssh.Session) (tea.Model, []tea.ProgramOption) {
	pty, _, _ := s.Pty()
	d := newDashboard(u.source, u.logs, bubbletea.MakeRenderer(s))
	d.width = pty.Window.Width
	d.height = pty.Window.Height
	return d, []tea.ProgramOption{tea.WithAltScreen()}
}

type styles struct {
	title    lipgloss.Style
	selected lipgloss.Style
	bar      lipgloss.Style
	dim      lipgloss.Style
}

func newStyles(r *lipgloss.Renderer) styles {
	return styles{
		title:    r.NewStyle().Bold(true).Foreground(lipgloss.Color("212")),
		selected: r.NewStyle().Reverse(true),
		bar:      r.NewStyle().Foreground(lipgloss.Color("220")),
		dim:      r.NewStyle().Faint(true),
	}
}

// Dashboard shows all channels and lets the user adjust them.
type Dashboard struct {
	source Source
	logs   LogSource
	keys   keyMap
	help   help.Model
	styles styles

	// Index (0 based) of the channel under the cursor
	cursor int
	status service.Status
	width  int
	height int
}

var _ tea.Model = Dashboard{}

type tickMsg time.Time

func newDashboard(source Source, logs LogSource, r *lipgloss.Renderer) Dashboard {
	return Dashboard{
		source: source,
		logs:   logs,
		keys:   newKeyMap(),
		help:   help.New(),
		styles: newStyles(r),
		status: source.Status(),
	}
}

// Init starts the refresh ticker.
func (d Dashboard) Init() tea.Cmd {
	return doTick()
}

// Update handles key presses, window resizes and refresh ticks.
func (d Dashboard) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	switch msg := msg.(type) {
	case tickMsg:
		d.status = d.source.Status()
		return d, doTick()
	case tea.WindowSizeMsg:
		d.width = msg.Width
		d.height = msg.Height
		d.help.Width = msg.Width
	case tea.KeyMsg:
		bank := d.source.DimmerBank()
		switch {
		case key.Matches(msg, d.keys.Quit):
			return d, tea.Quit
		case key.Matches(msg, d.keys.Up):
			if d.cursor > 0 {
				d.cursor--
			}
		case key.Matches(msg, d.keys.Down):
			if d.cursor < model.ChannelCount-1 {
				d.cursor++
			}
		case key.Matches(msg, d.keys.Increase):
			bank.Increment(d.cursor)
		case key.Matches(msg, d.keys.Decrease):
			bank.Decrement(d.cursor)
		case key.Matches(msg, d.keys.Refresh):
		default:
			return d, nil
		}
		d.status = d.source.Status()
	}
	return d, nil
}

// View renders the dashboard.
func (d Dashboard) View() string {
	var sb strings.Builder
	st := d.status
	uptime := strings.TrimSpace(humanize.RelTime(st.StartedAt, time.Now(), "", ""))
	sb.WriteString(d.styles.title.Render(fmt.Sprintf("%s %s", menu.Title, st.ProgramVersion)))
	sb.WriteString(d.styles.dim.Render(fmt.Sprintf("  host %s, up %s", st.HostID, uptime)))
	sb.WriteString("\n\n")

	for idx, level := range st.Levels {
		duty := dimmer.Duty(level)
		row := fmt.Sprintf("Licht %d: %3d %5.1f%% ", idx+1, level,
			100*float64(duty.Numerator)/float64(duty.Denominator))
		if idx == d.cursor {
			row = d.styles.selected.Render(row)
		}
		sb.WriteString(row)
		sb.WriteString(d.styles.bar.Render(levelBar(level)))
		sb.WriteString("\n")
	}
	sb.WriteString("\n")

	if e := st.LastButtonEvent; e.Kind != "" {
		sb.WriteString(fmt.Sprintf("Button: %s %s (%d events)\n", e.Kind, humanize.Time(e.Time), st.ButtonEvents))
	} else {
		sb.WriteString("Button: no events\n")
	}
	sb.WriteString("\n")

	if d.logs != nil {
		lines := d.logs.Lines()
		if len(lines) > maxLogLines {
			lines = lines[len(lines)-maxLogLines:]
		}
		for _, l := range lines {
			sb.WriteString(d.styles.dim.Render(l))
			sb.WriteString("\n")
		}
		sb.WriteString("\n")
	}
	sb.WriteString(d.help.View(d.keys))
	return sb.String()
}

// levelBar renders the given level as a bar of model.MaxLevel cells.
func levelBar(level model.Level) string {
	if level > model.MaxLevel {
		level = model.MaxLevel
	}
	return strings.Repeat("█", int(level)) + strings.Repeat("░", int(model.MaxLevel-level))
}

func doTick() tea.Cmd {
	return tea.Tick(refreshInterval, func(t time.Time) tea.Msg {
		return tickMsg(t)
	})
}
