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

// Package workpool implements a dynamically-sized pool of workers that
// drain a shared [workqueue.WaitQueue] of tasks and deliver results on a
// bounded channel.
package workpool

import (
	"context"
	"sync"

	"github.com/weftserve/weft/workqueue"
)

// Task is a unit of work a Worker executes. It receives the context the
// worker was started with and returns a result of type R.
type Task[R any] func(ctx context.Context) R

// Worker pulls Tasks from a shared queue, runs them, and forwards their
// results on sender. A Worker may be started once; restart after Close is
// forbidden.
type Worker[R any] struct {
	queue  *workqueue.WaitQueue[Task[R]]
	sender chan<- R

	mu      sync.Mutex
	started bool
	closed  bool
	cancel  context.CancelFunc
	done    chan struct{}

	onSendFailure func(err error)
}

// NewWorker creates a Worker that drains queue and forwards results to
// sender. onSendFailure, if non-nil, is invoked (once) when the worker's
// context is cancelled while a result send is still blocked (no receiver
// took it); the worker then exits its loop (Open Question 4: "continue
// serving" semantics — the failure is local to this worker, not propagated
// to the pool). sender is never closed by this package.
func NewWorker[R any](queue *workqueue.WaitQueue[Task[R]], sender chan<- R, onSendFailure func(err error)) *Worker[R] {
	return &Worker[R]{queue: queue, sender: sender, onSendFailure: onSendFailure}
}

// Start spawns the worker's driver goroutine against the given base
// context. Start fails with ErrAlreadyRunning if the worker is already
// running.
func (w *Worker[R]) Start(ctx context.Context) error {
	w.mu.Lock()
	defer w.mu.Unlock()
	if w.started {
		return ErrAlreadyRunning
	}

	runCtx, cancel := context.WithCancel(ctx)
	w.cancel = cancel
	w.started = true
	w.done = make(chan struct{})

	go w.run(runCtx)
	return nil
}

// run is the worker's driver loop: dequeue, execute, forward, repeat, until
// the queue closes, the worker's context is cancelled, or a send fails.
func (w *Worker[R]) run(ctx context.Context) {
	defer close(w.done)
	for {
		task, ok := w.queue.Dequeue(ctx)
		if !ok {
			return
		}

		result := task(ctx)

		select {
		case w.sender <- result:
		case <-ctx.Done():
			if w.onSendFailure != nil {
				w.onSendFailure(ctx.Err())
			}
			return
		}
	}
}

// Close stops the worker: it cancels the worker's context (waking any
// blocked Dequeue) and waits for the driver goroutine to exit. Close fails
// with ErrNoTaskRunning if Start was never called, or ErrAlreadyClosed if
// Close already succeeded once.
func (w *Worker[R]) Close() error {
	w.mu.Lock()
	if !w.started {
		w.mu.Unlock()
		return ErrNoTaskRunning
	}
	if w.closed {
		w.mu.Unlock()
		return ErrAlreadyClosed
	}
	w.closed = true
	cancel := w.cancel
	done := w.done
	w.mu.Unlock()

	cancel()
	<-done
	return nil
}
