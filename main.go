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

package main

import (
	"context"
	"fmt"
	"os"
	"time"

	"github.com/pkg/errors"
	terminate "github.com/pulcy/go-terminate"
	"github.com/rs/zerolog"
	"github.com/spf13/pflag"
	"golang.org/x/sync/errgroup"

	"github.com/binkynet/dcclicht/pkg/config"
	"github.com/binkynet/dcclicht/pkg/dimmer"
	"github.com/binkynet/dcclicht/pkg/environment"
	"github.com/binkynet/dcclicht/pkg/logging"
	"github.com/binkynet/dcclicht/pkg/server"
	"github.com/binkynet/dcclicht/pkg/service"
	"github.com/binkynet/dcclicht/pkg/service/bridge"
	"github.com/binkynet/dcclicht/pkg/service/button"
	"github.com/binkynet/dcclicht/pkg/service/devices"
	"github.com/binkynet/dcclicht/pkg/service/link"
	"github.com/binkynet/dcclicht/pkg/ui"
)

const (
	projectName    = "DCC Licht"
	recentLogLines = 64
	bridgeTypeAuto = "auto"
)

var (
	projectVersion = "dev"
	projectBuild   = "dev"
	maskAny        = errors.WithStack
)

func main() {
	var levelFlag string
	var bridgeType string
	var configPath string
	var serialDevice string
	var baudRate int
	var serverHost string
	var httpPort int
	var sshPort int

	pflag.StringVarP(&levelFlag, "level", "l", "info", "Set log level")
	pflag.StringVarP(&bridgeType, "bridge", "b", bridgeTypeAuto, "Type of bridge to use (rpi|virtual|auto)")
	pflag.StringVarP(&configPath, "config", "c", "", "Path of the YAML configuration file")
	pflag.StringVar(&serialDevice, "serial", "", "Serial device of the menu link (- for stdin/stdout)")
	pflag.IntVar(&baudRate, "baud", 0, "Baud rate of the serial device")
	pflag.StringVar(&serverHost, "host", "", "Host address the HTTP & SSH server will listen on")
	pflag.IntVar(&httpPort, "http-port", 0, "Port the HTTP server will listen on (0 disables)")
	pflag.IntVar(&sshPort, "ssh-port", 0, "Port the SSH server will listen on (0 disables)")
	pflag.Parse()

	// Load configuration
	cfg := config.Default()
	if configPath != "" {
		var err error
		cfg, err = config.Load(configPath)
		if err != nil {
			Exitf("Failed to load configuration: %v\n", err)
		}
	}
	flags := pflag.CommandLine
	if flags.Changed("serial") {
		cfg.Serial.Device = serialDevice
	}
	if flags.Changed("baud") {
		cfg.Serial.BaudRate = baudRate
	}
	if flags.Changed("host") {
		cfg.Server.Host = serverHost
	}
	if flags.Changed("http-port") {
		cfg.Server.HTTPPort = httpPort
	}
	if flags.Changed("ssh-port") {
		cfg.Server.SSHPort = sshPort
	}
	if err := config.Validate(cfg); err != nil {
		Exitf("Invalid configuration: %v\n", err)
	}

	// Prepare logger
	level, err := zerolog.ParseLevel(levelFlag)
	if err != nil {
		Exitf("Invalid log level '%s': %v\n", levelFlag, err)
	}
	recent := logging.NewRecentLines(recentLogLines, zerolog.InfoLevel)
	logger := zerolog.New(zerolog.MultiLevelWriter(
		zerolog.ConsoleWriter{Out: os.Stderr},
		recent,
	)).With().Timestamp().Logger().Level(level)

	hostID, err := environment.HostID(logger)
	if err != nil {
		Exitf("Failed to create host ID: %v\n", err)
	}

	// Prepare hardware
	if bridgeType == bridgeTypeAuto {
		bridgeType = environment.AutoDetectBridgeType(logger)
		logger.Info().Str("bridge", bridgeType).Msg("Detected bridge type")
	}
	var br bridge.API
	switch bridgeType {
	case environment.BridgeTypeRaspberryPi:
		br, err = bridge.NewRaspberryPiBridge()
		if err != nil {
			Exitf("Failed to initialize Raspberry Pi Bridge: %v\n", err)
		}
	case environment.BridgeTypeVirtual:
		br = bridge.NewVirtualBridge()
	default:
		Exitf("Unknown bridge type '%s' (rpi|virtual|auto)\n", bridgeType)
	}
	defer br.Close()

	groups, err := devices.NewGroups(cfg.PWM, br, logger)
	if err != nil {
		Exitf("Failed to initialize channel groups: %v\n", err)
	}
	lnk, err := link.Open(cfg.Serial, logger)
	if err != nil {
		Exitf("Failed to open link: %v\n", err)
	}

	bank := dimmer.NewBank(logger)
	svc, err := service.NewService(service.Config{
		ProgramVersion: projectVersion,
		HostID:         hostID,
		Button: button.Config{
			Pin:          cfg.Button.Pin,
			PollInterval: time.Duration(cfg.Button.PollIntervalMs) * time.Millisecond,
		},
	}, service.Dependencies{
		Logger: logger,
		Bridge: br,
		Bank:   bank,
		Groups: groups,
		Link:   lnk,
	})
	if err != nil {
		Exitf("Failed to initialize Service: %v\n", err)
	}

	srv, err := server.New(server.Config{
		Host:           cfg.Server.Host,
		HTTPPort:       cfg.Server.HTTPPort,
		SSHPort:        cfg.Server.SSHPort,
		SSHHostKeyPath: cfg.Server.SSHHostKeyPath,
	}, logger, ui.New(svc, recent), svc)
	if err != nil {
		Exitf("Failed to initialize Server: %v\n", err)
	}

	// Prepare to shutdown in a controlled manor
	ctx, cancel := context.WithCancel(context.Background())
	t := terminate.NewTerminator(func(template string, args ...interface{}) {
		logger.Info().Msgf(template, args...)
	}, cancel)
	go t.ListenSignals()

	logger.Info().
		Str("version", projectVersion).
		Str("build", projectBuild).
		Msgf("Starting %s", projectName)
	g, ctx := errgroup.WithContext(ctx)
	g.Go(func() error { return svc.Run(ctx) })
	g.Go(func() error { return srv.Run(ctx) })
	if err := g.Wait(); err != nil {
		Exitf("Service run failed: %+v\n", maskAny(err))
	}
}

// Print the given error message and exit with code 1
func Exitf(message string, args ...interface{}) {
	fmt.Fprintf(os.Stderr, message, args...)
	os.Exit(1)
}
