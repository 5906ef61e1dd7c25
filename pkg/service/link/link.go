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

package link

import (
	"io"
	"os"
	"sync/atomic"
	"time"

	"github.com/goburrow/serial"
	"github.com/pkg/errors"
	"github.com/rs/zerolog"

	"github.com/binkynet/dcclicht/pkg/config"
)

// Link is the byte stream the menu is served on.
type Link interface {
	io.ReadWriteCloser
	// Name of the link, used for logging.
	Name() string
}

// Open the link described by the given configuration.
// An empty device (or "-") results in a link on stdin/stdout.
func Open(cfg config.SerialConfig, log zerolog.Logger) (Link, error) {
	if cfg.IsStdio() {
		log.Info().Msg("Using stdin/stdout as link")
		return newCountingLink(&stdioLink{}), nil
	}
	port, err := serial.Open(serialConfig(cfg))
	if err != nil {
		return nil, errors.Wrapf(err, "Failed to open serial device '%s'", cfg.Device)
	}
	log.Info().
		Str("device", cfg.Device).
		Int("baudrate", cfg.BaudRate).
		Msg("Opened serial link")
	return newCountingLink(newSerialLink(cfg.Device, port)), nil
}

// serialConfig converts the given configuration into a serial port configuration.
func serialConfig(cfg config.SerialConfig) *serial.Config {
	return &serial.Config{
		Address:  cfg.Device,
		BaudRate: cfg.BaudRate,
		DataBits: cfg.DataBits,
		StopBits: cfg.StopBits,
		Parity:   cfg.Parity,
		Timeout:  time.Duration(cfg.ReadTimeoutMs) * time.Millisecond,
	}
}

// serialLink is a link on a serial port that is read with a timeout.
// Timeouts are retried until the link is closed.
type serialLink struct {
	name   string
	port   io.ReadWriteCloser
	closed atomic.Bool
}

func newSerialLink(name string, port io.ReadWriteCloser) *serialLink {
	return &serialLink{
		name: name,
		port: port,
	}
}

func (l *serialLink) Name() string {
	return l.name
}

func (l *serialLink) Read(p []byte) (int, error) {
	for {
		if l.closed.Load() {
			return 0, io.EOF
		}
		n, err := l.port.Read(p)
		if err == serial.ErrTimeout {
			// Nothing received yet
			continue
		}
		if err != nil && l.closed.Load() {
			return n, io.EOF
		}
		return n, err
	}
}

func (l *serialLink) Write(p []byte) (int, error) {
	return l.port.Write(p)
}

func (l *serialLink) Close() error {
	if !l.closed.CompareAndSwap(false, true) {
		return nil
	}
	return l.port.Close()
}

// stdioLink is a link on stdin/stdout of the process.
type stdioLink struct{}

func (stdioLink) Name() string {
	return "stdio"
}

func (stdioLink) Read(p []byte) (int, error) {
	return os.Stdin.Read(p)
}

func (stdioLink) Write(p []byte) (int, error) {
	return os.Stdout.Write(p)
}

func (stdioLink) Close() error {
	return nil
}

// countingLink updates the link metrics.
type countingLink struct {
	Link
}

func newCountingLink(l Link) Link {
	return countingLink{Link: l}
}

func (l countingLink) Read(p []byte) (int, error) {
	n, err := l.Link.Read(p)
	bytesReadTotal.WithLabelValues(l.Name()).Add(float64(n))
	return n, err
}

func (l countingLink) Write(p []byte) (int, error) {
	n, err := l.Link.Write(p)
	bytesWrittenTotal.WithLabelValues(l.Name()).Add(float64(n))
	if err != nil {
		writeErrorsTotal.WithLabelValues(l.Name()).Inc()
	}
	return n, err
}
