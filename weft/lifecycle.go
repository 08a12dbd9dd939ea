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
	"context"
	"sync"

	"github.com/weftserve/weft/httpproto"
)

// Hooks holds the lifecycle callbacks an App runs around start/shutdown
// and route registration, adapted from the teacher's app/lifecycle.go.
type Hooks struct {
	mu         sync.Mutex
	onStart    []func(context.Context) error
	onReady    []func()
	onShutdown []func(context.Context)
	onStop     []func()
	onRoute    []func(path string, method httpproto.Method)
}

// OnStart registers a hook run sequentially, in registration order,
// before Start marks the App Running. The first error aborts Start.
func (a *App) OnStart(fn func(context.Context) error) {
	a.hooks.mu.Lock()
	defer a.hooks.mu.Unlock()
	a.hooks.onStart = append(a.hooks.onStart, fn)
}

// OnReady registers a hook run concurrently, best-effort, once the accept
// loop goroutine has been launched. A panicking hook is recovered and does
// not affect its siblings or the App.
func (a *App) OnReady(fn func()) {
	a.hooks.mu.Lock()
	defer a.hooks.mu.Unlock()
	a.hooks.onReady = append(a.hooks.onReady, fn)
}

// OnShutdown registers a hook run in LIFO order (most recently registered
// first) when Close begins, before in-flight connections are drained.
func (a *App) OnShutdown(fn func(context.Context)) {
	a.hooks.mu.Lock()
	defer a.hooks.mu.Unlock()
	a.hooks.onShutdown = append(a.hooks.onShutdown, fn)
}

// OnStop registers a hook run in LIFO order after the worker pool has
// finished draining in-flight connections.
func (a *App) OnStop(fn func()) {
	a.hooks.mu.Lock()
	defer a.hooks.mu.Unlock()
	a.hooks.onStop = append(a.hooks.onStop, fn)
}

// OnRoute registers a hook invoked once per successful AddRoute /
// AddOrChangeRoute / AddOrPanic call, in registration order.
func (a *App) OnRoute(fn func(path string, method httpproto.Method)) {
	a.hooks.mu.Lock()
	defer a.hooks.mu.Unlock()
	a.hooks.onRoute = append(a.hooks.onRoute, fn)
}

func (h *Hooks) executeStartHooks(ctx context.Context) error {
	h.mu.Lock()
	hooks := append([]func(context.Context) error{}, h.onStart...)
	h.mu.Unlock()

	for _, fn := range hooks {
		if err := fn(ctx); err != nil {
			return err
		}
	}
	return nil
}

func (h *Hooks) executeReadyHooks() {
	h.mu.Lock()
	hooks := append([]func(){}, h.onReady...)
	h.mu.Unlock()

	var wg sync.WaitGroup
	wg.Add(len(hooks))
	for _, fn := range hooks {
		fn := fn
		go func() {
			defer wg.Done()
			defer func() { _ = recover() }()
			fn()
		}()
	}
	wg.Wait()
}

func (h *Hooks) executeShutdownHooks(ctx context.Context) {
	h.mu.Lock()
	hooks := append([]func(context.Context){}, h.onShutdown...)
	h.mu.Unlock()

	for i := len(hooks) - 1; i >= 0; i-- {
		hooks[i](ctx)
	}
}

func (h *Hooks) executeStopHooks() {
	h.mu.Lock()
	hooks := append([]func(){}, h.onStop...)
	h.mu.Unlock()

	for i := len(hooks) - 1; i >= 0; i-- {
		hooks[i]()
	}
}

func (h *Hooks) fireRoute(path string, method httpproto.Method) {
	h.mu.Lock()
	hooks := append([]func(string, httpproto.Method){}, h.onRoute...)
	h.mu.Unlock()

	for _, fn := range hooks {
		fn(path, method)
	}
}
