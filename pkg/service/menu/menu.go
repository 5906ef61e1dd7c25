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
	"fmt"
	"io"

	"github.com/pkg/errors"

	"github.com/binkynet/dcclicht/pkg/dimmer"
	"github.com/binkynet/dcclicht/pkg/model"
)

const (
	// Title shown on the first line of the menu
	Title = "DCC Licht"

	escape      = "\x1b"
	bell        = "\x07"
	resetScreen = escape + "c"
	clearScreen = escape + "[2J"
	home        = escape + "[H"
	reverse     = escape + "[7m"
	normal      = escape + "[0m"

	titleColumn = 20
	lineColumn  = 10
	// Row of the line for channel 1 is 1 + lineRowOffset
	lineRowOffset = 4
)

// Menu renders the dimmer menu on a VT100 compatible terminal.
type Menu struct {
	w       io.Writer
	bank    *dimmer.Bank
	version string
}

// New creates a menu that writes to the given writer.
func New(w io.Writer, bank *dimmer.Bank, version string) *Menu {
	return &Menu{
		w:       w,
		bank:    bank,
		version: version,
	}
}

// Init resets the terminal, sounds the bell 3 times and
// resets all channels to level 0.
func (m *Menu) Init() error {
	if err := m.write(resetScreen + bell + bell + bell); err != nil {
		return err
	}
	for idx := 0; idx < model.ChannelCount; idx++ {
		m.bank.Set(idx, 0)
	}
	return nil
}

// RenderFull clears the screen and renders the title and the lines
// of all channels, highlighting the selected one.
func (m *Menu) RenderFull(sel int) error {
	var buf bytes.Buffer
	buf.WriteString(clearScreen)
	fmt.Fprintf(&buf, "%s[1;%dH", escape, titleColumn)
	fmt.Fprintf(&buf, "%s - %s\n", Title, m.version)
	for idx := 1; idx <= model.ChannelCount; idx++ {
		m.renderLine(&buf, idx, sel)
	}
	buf.WriteString(home)
	return m.write(buf.String())
}

// RenderLine renders the line of the channel with given 1 based index.
// The level is highlighted when idx equals sel.
// Indexes outside 1..8 are ignored.
func (m *Menu) RenderLine(idx, sel int) error {
	if idx < 1 || idx > model.ChannelCount {
		return nil
	}
	var buf bytes.Buffer
	m.renderLine(&buf, idx, sel)
	return m.write(buf.String())
}

func (m *Menu) renderLine(buf *bytes.Buffer, idx, sel int) {
	level := m.bank.Get(idx - 1)
	fmt.Fprintf(buf, "%s[%d;%dHLicht %d: ", escape, idx+lineRowOffset, lineColumn, idx)
	if idx == sel {
		fmt.Fprintf(buf, "%s%3d%s\n", reverse, level, normal)
	} else {
		fmt.Fprintf(buf, "%3d\n", level)
	}
	buf.WriteString(home)
}

func (m *Menu) write(s string) error {
	if _, err := io.WriteString(m.w, s); err != nil {
		return errors.Wrap(err, "Failed to write to link")
	}
	return nil
}
