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

// Config of the dimmer worker, typically loaded from a YAML file.
type Config struct {
	Serial SerialConfig `yaml:"serial"`
	PWM    PWMConfig    `yaml:"pwm"`
	Button ButtonConfig `yaml:"button"`
	Server ServerConfig `yaml:"server"`
}

// ---- SERIAL ----

// SerialConfig describes the link the command terminal is connected to.
type SerialConfig struct {
	// Device path of the serial port. Empty or "-" uses stdin/stdout.
	Device        string `yaml:"device"`
	BaudRate      int    `yaml:"baud_rate"`
	DataBits      int    `yaml:"data_bits"`
	StopBits      int    `yaml:"stop_bits"`
	Parity        string `yaml:"parity"` // N, E or O
	ReadTimeoutMs int    `yaml:"read_timeout_ms"`
}

// IsStdio returns true when the link uses stdin/stdout.
func (c SerialConfig) IsStdio() bool {
	return c.Device == "" || c.Device == "-"
}

// ---- PWM ----

const (
	PWMDriverPCA9685 = "pca9685"
	PWMDriverVirtual = "virtual"
)

// PWMConfig describes the hardware that generates the duty cycles.
type PWMConfig struct {
	Driver      string        `yaml:"driver"`
	FrequencyHz float64       `yaml:"frequency_hz"`
	Groups      []GroupConfig `yaml:"groups"` // exactly 2
}

// GroupConfig describes a group of 4 PWM channels.
type GroupConfig struct {
	// I2C address of the PCA9685 device (decimal or 0x..)
	Address string `yaml:"address"`
	// Device output (1...) used for the first channel of the group
	FirstOutput int `yaml:"first_output"`
}

// ---- BUTTON ----

// ButtonConfig describes the (optional) push button.
type ButtonConfig struct {
	// GPIO pin number, 0 disables the button.
	Pin            int `yaml:"pin"`
	PollIntervalMs int `yaml:"poll_interval_ms"`
}

// ---- SERVER ----

// ServerConfig describes the HTTP & SSH listeners.
type ServerConfig struct {
	Host           string `yaml:"host"`
	HTTPPort       int    `yaml:"http_port"` // 0 disables HTTP
	SSHPort        int    `yaml:"ssh_port"`  // 0 disables SSH
	SSHHostKeyPath string `yaml:"ssh_host_key_path"`
}
