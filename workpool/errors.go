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

package workpool

import "errors"

// Errors returned by Worker and Manager operations.
var (
	// ErrAlreadyRunning is returned by Worker.Start when the worker's loop
	// is already running.
	ErrAlreadyRunning = errors.New("workpool: worker already running")
	// ErrAlreadyClosed is returned by Worker.Close when the worker was
	// already closed.
	ErrAlreadyClosed = errors.New("workpool: worker already closed")
	// ErrNoTaskRunning is returned by Worker.Close when the worker was
	// never started.
	ErrNoTaskRunning = errors.New("workpool: no task running")
	// ErrTaskJoinFailure names a worker goroutine that failed to join.
	// Worker.Close does not return it: Close waits for the driver
	// goroutine with no deadline, and a panic in that goroutine is not
	// recovered.
	ErrTaskJoinFailure = errors.New("workpool: worker task failed to join")
)
