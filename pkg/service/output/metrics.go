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

package output

import (
	"github.com/binkynet/dcclicht/pkg/metrics"
)

const (
	subSystem = "output"
)

var (
	// Number of times all channels have been applied
	passesTotal = metrics.MustRegisterCounter(subSystem,
		"passes_total",
		"Total number of times all channels have been written to the channel groups")
	// Current duty (0..1) per channel
	dutyGauge = metrics.MustRegisterGaugeVec(subSystem,
		"duty",
		"Duty cycle last written per channel (0..1)",
		"channel")
	// Failed duty writes
	writeErrorsTotal = metrics.MustRegisterCounterVec(subSystem,
		"write_errors_total",
		"Total number of failed duty writes per channel group",
		"group")
)
