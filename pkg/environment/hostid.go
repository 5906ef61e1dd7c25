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

package environment

import (
	"crypto/sha1"
	"fmt"
	"os"

	"github.com/denisbrodbeck/machineid"
	"github.com/pkg/errors"
	"github.com/rs/zerolog"
)

const (
	hostIDLength = 10
	hostIDAppID  = "dcclicht"
)

// HostID returns a short identifier of this machine.
// The machine ID of the OS is hashed with the application ID,
// when that is not available the hostname is used.
func HostID(log zerolog.Logger) (string, error) {
	id, err := machineid.ProtectedID(hostIDAppID)
	if err == nil {
		return id[:hostIDLength], nil
	}
	log.Debug().Err(err).Msg("No machine ID found, using hostname")
	hostname, err := os.Hostname()
	if err != nil {
		return "", errors.Wrap(err, "Failed to get hostname")
	}
	return shortHash(hostname), nil
}

func shortHash(s string) string {
	return fmt.Sprintf("%x", sha1.Sum([]byte(s)))[:hostIDLength]
}
