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

package model

import (
	"fmt"

	"github.com/pkg/errors"
)

var (
	// InvalidArgumentError is the cause of all errors returned for
	// configuration values that cannot be used.
	InvalidArgumentError = errors.New("invalid argument")
	// ValidationError is the cause of a failed configuration validation.
	ValidationError = errors.New("validation failed")
)

// InvalidArgument creates a new error with InvalidArgumentError as cause.
func InvalidArgument(msg string, args ...interface{}) error {
	return errors.Wrap(InvalidArgumentError, fmt.Sprintf(msg, args...))
}

// IsInvalidArgument returns true if the cause of the given error
// is InvalidArgumentError.
func IsInvalidArgument(err error) bool {
	return errors.Cause(err) == InvalidArgumentError
}

// IsValidation returns true if the cause of the given error
// is ValidationError.
func IsValidation(err error) bool {
	return errors.Cause(err) == ValidationError
}
