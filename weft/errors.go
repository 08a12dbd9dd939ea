// Copyright 2025 The Weft Authors
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

package weft

import (
	"errors"
	"fmt"
)

// ErrAppRunning is returned by Start when the App already has a driver
// goroutine in flight.
var ErrAppRunning = errors.New("weft: app is already running")

// ErrAppClosed is returned by Start (the listener was already taken and
// closed once) and by Close whenever the App is not running (already
// closed, or never started). CloseUnchecked returns no error; on an App
// that is not running it does nothing.
var ErrAppClosed = errors.New("weft: app is closed")

// ConfigError reports a malformed configuration value, carrying the
// offending field and value as structured data instead of an opaque
// string, mirroring the teacher's ConfigError shape.
type ConfigError struct {
	Field   string
	Value   string
	Message string
}

func (e *ConfigError) Error() string {
	return fmt.Sprintf("weft: config field %q (value %q): %s", e.Field, e.Value, e.Message)
}

// ValidationError reports a Config value that parsed fine but fails a
// semantic constraint (e.g. a zero scale factor).
type ValidationError struct {
	Field   string
	Message string
}

func (e *ValidationError) Error() string {
	return fmt.Sprintf("weft: validation failed for %q: %s", e.Field, e.Message)
}
