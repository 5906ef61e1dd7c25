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

package dimmer

import (
	"github.com/binkynet/dcclicht/pkg/metrics"
)

const (
	subSystem = "dimmer"
)

var (
	// Current level per channel
	levelGauge = metrics.MustRegisterGaugeVec(subSystem,
		"level",
		"Current brightness level per channel",
		"channel")
	// Total number of rejected channel indexes
	indexOutOfRangeTotal = metrics.MustRegisterCounterVec(subSystem,
		"index_out_of_range_total",
		"Total number of accesses with an index out of range",
		"operation")
	// Total number of raised update signals
	signalsRaisedTotal = metrics.MustRegisterCounter(subSystem,
		"signals_raised_total",
		"Total number of update signals raised")
	// Total number of update signals merged into a pending one
	signalsCoalescedTotal = metrics.MustRegisterCounter(subSystem,
		"signals_coalesced_total",
		"Total number of update signals merged into an already pending signal")
)
