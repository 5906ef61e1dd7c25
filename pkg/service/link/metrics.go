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
	"github.com/binkynet/dcclicht/pkg/metrics"
)

const (
	subSystem = "link"
)

var (
	bytesReadTotal = metrics.MustRegisterCounterVec(subSystem,
		"bytes_read_total",
		"Total number of bytes read from the link",
		"link")
	bytesWrittenTotal = metrics.MustRegisterCounterVec(subSystem,
		"bytes_written_total",
		"Total number of bytes written to the link",
		"link")
	writeErrorsTotal = metrics.MustRegisterCounterVec(subSystem,
		"write_errors_total",
		"Total number of failed writes to the link",
		"link")
)
