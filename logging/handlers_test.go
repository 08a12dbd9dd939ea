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

package logging_test

import (
	"bytes"
	"testing"

	"github.com/stretchr/testify/assert"

	"github.com/weftserve/weft/logging"
)

func TestConsoleHandlerWritesLevelAndMessage(t *testing.T) {
	var buf bytes.Buffer
	logger := logging.MustNew(logging.WithConsoleHandler(), logging.WithOutput(&buf))

	logger.Warn("pool scaled up", "workers", 8)

	out := buf.String()
	assert.Contains(t, out, "WARN")
	assert.Contains(t, out, "pool scaled up")
	assert.Contains(t, out, "workers=8")
}

func TestConsoleHandlerRespectsLevel(t *testing.T) {
	var buf bytes.Buffer
	logger := logging.MustNew(logging.WithConsoleHandler(), logging.WithOutput(&buf), logging.WithLevel(logging.LevelWarn))

	logger.Info("ignored")
	assert.Empty(t, buf.String())

	logger.Error("surfaced")
	assert.Contains(t, buf.String(), "surfaced")
}

func TestInvalidHandlerTypeFails(t *testing.T) {
	_, err := logging.New(logging.WithHandlerType("bogus"))
	assert.ErrorIs(t, err, logging.ErrInvalidHandler)
}
