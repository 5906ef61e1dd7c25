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

package config

import (
	"github.com/pkg/errors"

	"github.com/binkynet/dcclicht/pkg/model"
)

const (
	pca9685OutputCount = 16
	maxI2CAddress      = 0x7F
)

// Validate the given (normalized) configuration.
func Validate(cfg *Config) error {
	if err := validateSerial(cfg.Serial); err != nil {
		return err
	}
	if err := validatePWM(cfg.PWM); err != nil {
		return err
	}
	if cfg.Button.Pin < 0 {
		return errors.Wrapf(model.ValidationError, "button.pin must be >= 0, got %d", cfg.Button.Pin)
	}
	if cfg.Button.PollIntervalMs < 1 {
		return errors.Wrapf(model.ValidationError, "button.poll_interval_ms must be >= 1, got %d", cfg.Button.PollIntervalMs)
	}
	if err := validatePort("server.http_port", cfg.Server.HTTPPort); err != nil {
		return err
	}
	if err := validatePort("server.ssh_port", cfg.Server.SSHPort); err != nil {
		return err
	}
	if cfg.Server.HTTPPort != 0 && cfg.Server.HTTPPort == cfg.Server.SSHPort {
		return errors.Wrapf(model.ValidationError, "server.http_port and server.ssh_port must differ, both are %d", cfg.Server.HTTPPort)
	}
	return nil
}

func validateSerial(s SerialConfig) error {
	if s.BaudRate <= 0 {
		return errors.Wrapf(model.ValidationError, "serial.baud_rate must be > 0, got %d", s.BaudRate)
	}
	if s.DataBits < 5 || s.DataBits > 8 {
		return errors.Wrapf(model.ValidationError, "serial.data_bits must be in 5..8, got %d", s.DataBits)
	}
	if s.StopBits != 1 && s.StopBits != 2 {
		return errors.Wrapf(model.ValidationError, "serial.stop_bits must be 1 or 2, got %d", s.StopBits)
	}
	switch s.Parity {
	case "N", "E", "O":
		// Ok
	default:
		return errors.Wrapf(model.ValidationError, "serial.parity must be N, E or O, got '%s'", s.Parity)
	}
	if s.ReadTimeoutMs < 0 {
		return errors.Wrapf(model.ValidationError, "serial.read_timeout_ms must be >= 0, got %d", s.ReadTimeoutMs)
	}
	return nil
}

func validatePWM(p PWMConfig) error {
	switch p.Driver {
	case PWMDriverPCA9685, PWMDriverVirtual:
		// Ok
	default:
		return errors.Wrapf(model.ValidationError, "pwm.driver must be '%s' or '%s', got '%s'", PWMDriverPCA9685, PWMDriverVirtual, p.Driver)
	}
	if p.FrequencyHz < 24 || p.FrequencyHz > 1526 {
		return errors.Wrapf(model.ValidationError, "pwm.frequency_hz must be in 24..1526, got %v", p.FrequencyHz)
	}
	if len(p.Groups) != model.GroupCount {
		return errors.Wrapf(model.ValidationError, "pwm.groups must contain %d groups, got %d", model.GroupCount, len(p.Groups))
	}
	type output struct {
		address int
		index   int
	}
	used := make(map[output]int)
	for i, g := range p.Groups {
		address, err := model.ParseAddress(g.Address)
		if err != nil {
			return errors.Wrapf(model.ValidationError, "pwm.groups[%d].address: %s", i, err)
		}
		if address < 1 || address > maxI2CAddress {
			return errors.Wrapf(model.ValidationError, "pwm.groups[%d].address must be in 1..0x7F, got 0x%x", i, address)
		}
		last := g.FirstOutput + model.GroupChannelCount - 1
		if g.FirstOutput < 1 || last > pca9685OutputCount {
			return errors.Wrapf(model.ValidationError, "pwm.groups[%d].first_output must be in 1..%d, got %d", i, pca9685OutputCount-model.GroupChannelCount+1, g.FirstOutput)
		}
		for idx := g.FirstOutput; idx <= last; idx++ {
			key := output{address, idx}
			if other, found := used[key]; found {
				return errors.Wrapf(model.ValidationError, "pwm.groups[%d] and pwm.groups[%d] share output %d of device 0x%x", other, i, idx, address)
			}
			used[key] = i
		}
	}
	return nil
}

func validatePort(name string, port int) error {
	if port < 0 || port > 65535 {
		return errors.Wrapf(model.ValidationError, "%s must be in 0..65535, got %d", name, port)
	}
	return nil
}
