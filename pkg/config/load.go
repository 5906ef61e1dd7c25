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
	"os"

	"github.com/pkg/errors"
	"gopkg.in/yaml.v3"
)

const (
	defaultBaudRate       = 115200
	defaultDataBits       = 8
	defaultStopBits       = 1
	defaultParity         = "N"
	defaultReadTimeoutMs  = 500
	defaultFrequencyHz    = 1000
	defaultPCA9685Address = "0x40"
	defaultPollIntervalMs = 10
	defaultHost           = "0.0.0.0"
	defaultHTTPPort       = 7130
	defaultSSHPort        = 7131
	defaultSSHHostKeyPath = ".ssh/id_ed25519"
)

// Default returns a normalized configuration for a worker without config file.
func Default() *Config {
	cfg := &Config{}
	cfg.Server.HTTPPort = defaultHTTPPort
	cfg.Server.SSHPort = defaultSSHPort
	Normalize(cfg)
	return cfg
}

// Load reads the YAML file at given path and returns the normalized configuration.
// Ports that are not mentioned in the file get their default value.
func Load(path string) (*Config, error) {
	content, err := os.ReadFile(path)
	if err != nil {
		return nil, errors.Wrapf(err, "Failed to read config file '%s'", path)
	}
	cfg, err := Parse(content)
	if err != nil {
		return nil, errors.Wrapf(err, "Failed to parse config file '%s'", path)
	}
	return cfg, nil
}

// Parse decodes YAML content into a normalized configuration.
func Parse(content []byte) (*Config, error) {
	cfg := &Config{}
	cfg.Server.HTTPPort = defaultHTTPPort
	cfg.Server.SSHPort = defaultSSHPort
	if err := yaml.Unmarshal(content, cfg); err != nil {
		return nil, maskAny(err)
	}
	Normalize(cfg)
	return cfg, nil
}

// Normalize fills in defaults for all unset fields.
func Normalize(cfg *Config) {
	s := &cfg.Serial
	if s.BaudRate == 0 {
		s.BaudRate = defaultBaudRate
	}
	if s.DataBits == 0 {
		s.DataBits = defaultDataBits
	}
	if s.StopBits == 0 {
		s.StopBits = defaultStopBits
	}
	if s.Parity == "" {
		s.Parity = defaultParity
	}
	if s.ReadTimeoutMs == 0 {
		s.ReadTimeoutMs = defaultReadTimeoutMs
	}

	p := &cfg.PWM
	if p.Driver == "" {
		p.Driver = PWMDriverPCA9685
	}
	if p.FrequencyHz == 0 {
		p.FrequencyHz = defaultFrequencyHz
	}
	if len(p.Groups) == 0 {
		p.Groups = []GroupConfig{
			{Address: defaultPCA9685Address, FirstOutput: 1},
			{Address: defaultPCA9685Address, FirstOutput: 5},
		}
	}
	for i := range p.Groups {
		if p.Groups[i].Address == "" {
			p.Groups[i].Address = defaultPCA9685Address
		}
	}

	if cfg.Button.PollIntervalMs == 0 {
		cfg.Button.PollIntervalMs = defaultPollIntervalMs
	}

	if cfg.Server.Host == "" {
		cfg.Server.Host = defaultHost
	}
	if cfg.Server.SSHHostKeyPath == "" {
		cfg.Server.SSHHostKeyPath = defaultSSHHostKeyPath
	}
}

var maskAny = errors.WithStack
