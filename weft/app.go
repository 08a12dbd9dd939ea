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

// Package weft is the root of the application-server library: App binds
// a listener, holds the route tree and global middleware, and runs the
// accept loop that dispatches every connection through the pipeline
// described in the governing specification (parse, route, bind variables,
// run middleware, invoke the endpoint, emit the chunked response).
package weft

import (
	"bufio"
	"context"
	"fmt"
	"net"
	"sync"
	"time"

	"go.opentelemetry.io/otel/trace"

	"github.com/weftserve/weft/httpproto"
	"github.com/weftserve/weft/internal/routing"
	"github.com/weftserve/weft/logging"
	"github.com/weftserve/weft/middleware"
	"github.com/weftserve/weft/middleware/recovery"
	"github.com/weftserve/weft/workpool"
)

// State is AppState from the governing specification: used both as the
// success value Start/Close return and as half of the error they can
// return (ErrAppRunning/ErrAppClosed), matching the "meaning comes from
// the Result side" contract.
type State int

const (
	// StateConstructed is the initial state: bound, not yet started.
	StateConstructed State = iota
	// StateRunning means the accept loop is live.
	StateRunning
	// StateClosed means the listener was taken and Close/CloseUnchecked
	// has run; the App cannot be restarted.
	StateClosed
)

func (s State) String() string {
	switch s {
	case StateConstructed:
		return "Constructed"
	case StateRunning:
		return "Running"
	case StateClosed:
		return "Closed"
	default:
		return "Unknown"
	}
}

// App owns a bound listener, the route tree, the global middleware list,
// and the WorkManager draining accepted connections.
type App struct {
	listener net.Listener
	tree     *routing.Tree
	logger   *logging.Logger

	serviceName    string
	initialWorkers int
	scaleFactor    int
	errorCallback  func(string)
	metrics        *Metrics
	tracer         trace.Tracer
	recoveryOpts   []recovery.Option

	hooks Hooks

	mu        sync.RWMutex
	globalMW  []middleware.Func
	state     State
	shutdown  chan struct{}
	done      chan struct{}
	drainStop chan struct{}
	manager   *workpool.Manager[struct{}]
}

// Bind creates a TCP listener at address and an App ready to register
// routes on and Start. Bind failure surfaces as a wrapped net error.
func Bind(address string, opts ...Option) (*App, error) {
	ln, err := net.Listen("tcp", address)
	if err != nil {
		return nil, fmt.Errorf("weft: bind %s: %w", address, err)
	}
	return newApp(ln, opts...), nil
}

func newApp(ln net.Listener, opts ...Option) *App {
	cfg := defaultConfig()
	for _, opt := range opts {
		opt(cfg)
	}

	logger := cfg.logger
	if logger == nil {
		logger = logging.MustNew(
			logging.WithTextHandler(),
			logging.WithServiceName(cfg.serviceName),
			logging.WithServiceVersion(cfg.serviceVersion),
			logging.WithEnvironment(cfg.environment),
		)
	}

	a := &App{
		listener:       ln,
		tree:           routing.New(),
		logger:         logger,
		serviceName:    cfg.serviceName,
		initialWorkers: cfg.initialWorkers,
		scaleFactor:    cfg.scaleFactor,
		errorCallback:  cfg.errorCallback,
		metrics:        cfg.metrics,
		tracer:         cfg.tracer,
		recoveryOpts:   cfg.recoveryOpts,
		state:          StateConstructed,
		drainStop:      make(chan struct{}),
	}
	a.manager = workpool.NewManager[struct{}](context.Background(), cfg.initialWorkers, func(err error) {
		logger.Warn("worker result delivery failed, worker exiting", "error", err)
	})
	go a.drainResults()
	return a
}

// drainResults keeps the bounded result channel empty for the App's
// lifetime; Open Question 4 treats a full/closed channel as programmer
// error, not backpressure the core must semantically react to.
func (a *App) drainResults() {
	for {
		select {
		case <-a.manager.Receiver:
		case <-a.drainStop:
			return
		}
	}
}

// AddRoute registers path for method strictly: ErrExist if the pair is
// already taken.
func (a *App) AddRoute(path string, method httpproto.Method, mw []middleware.Func, resolve routing.ResolutionFunc) error {
	ep := &routing.Endpoint{Middleware: mw, Resolve: resolve}
	if err := a.tree.Add(path, method, ep); err != nil {
		return err
	}
	a.hooks.fireRoute(path, method)
	return nil
}

// AddOrChangeRoute registers path for method, overwriting any existing
// endpoint.
func (a *App) AddOrChangeRoute(path string, method httpproto.Method, mw []middleware.Func, resolve routing.ResolutionFunc) error {
	ep := &routing.Endpoint{Middleware: mw, Resolve: resolve}
	if err := a.tree.AddOrChange(path, method, ep); err != nil {
		return err
	}
	a.hooks.fireRoute(path, method)
	return nil
}

// AddOrPanic registers path for method, panicking on any registration
// error. Intended only during startup route wiring.
func (a *App) AddOrPanic(path string, method httpproto.Method, mw []middleware.Func, resolve routing.ResolutionFunc) {
	if err := a.AddRoute(path, method, mw, resolve); err != nil {
		panic(err)
	}
}

// SetMissingRoute installs the fallback endpoint queried (always under
// GET) when no registered route matches a request.
func (a *App) SetMissingRoute(mw []middleware.Func, resolve routing.ResolutionFunc) {
	a.tree.AddMissingRoute(&routing.Endpoint{Middleware: mw, Resolve: resolve})
}

// Addr returns the bound listener's address.
func (a *App) Addr() string {
	return a.listener.Addr().String()
}

// WorkerCount reports the worker pool's current size.
func (a *App) WorkerCount() int {
	return a.manager.WorkerCount()
}

// UseMiddleware appends fn to the global middleware list, run ahead of
// every endpoint's own middleware.
func (a *App) UseMiddleware(fn middleware.Func) {
	a.mu.Lock()
	defer a.mu.Unlock()
	a.globalMW = append(a.globalMW, fn)
}

// SetErrorCallback installs the error sink. Per the governing
// specification this should be set before Start.
func (a *App) SetErrorCallback(fn func(string)) {
	a.mu.Lock()
	defer a.mu.Unlock()
	a.errorCallback = fn
}

// State reports the App's current lifecycle state.
func (a *App) State() State {
	a.mu.RLock()
	defer a.mu.RUnlock()
	return a.state
}

// Start spawns the accept loop. It fails with ErrAppRunning if already
// running, or ErrAppClosed if the listener was already taken once.
func (a *App) Start() (State, error) {
	a.mu.Lock()
	switch a.state {
	case StateRunning:
		a.mu.Unlock()
		return StateRunning, ErrAppRunning
	case StateClosed:
		a.mu.Unlock()
		return StateClosed, ErrAppClosed
	}

	if err := a.hooks.executeStartHooks(context.Background()); err != nil {
		a.mu.Unlock()
		return StateConstructed, fmt.Errorf("weft: start hook failed: %w", err)
	}

	a.shutdown = make(chan struct{})
	a.done = make(chan struct{})
	a.state = StateRunning
	a.mu.Unlock()

	a.printBanner()
	go a.acceptLoop()
	go a.hooks.executeReadyHooks()

	return StateRunning, nil
}

func (a *App) acceptLoop() {
	defer close(a.done)
	for {
		conn, err := a.listener.Accept()
		if err != nil {
			select {
			case <-a.shutdown:
				return
			default:
			}
			a.reportError(fmt.Sprintf("accept: %v", err))
			continue
		}

		a.dispatch(conn)
	}
}

// dispatch submits conn's service future to the work manager under the
// backpressure protocol from §4.7. A Blocked return means the task already
// sits in the backlog, so the pool is scaled (the task is not resubmitted)
// and a new worker drains it; no accepted connection is ever dropped.
func (a *App) dispatch(conn net.Conn) {
	task := workpool.Task[struct{}](func(ctx context.Context) struct{} {
		a.serveConnection(ctx, conn)
		return struct{}{}
	})

	if a.manager.QueueWork(task) == workpool.Blocked {
		a.manager.ScaleWorkers(a.scaleFactor)
		a.metrics.incScaleUp()
	}
	a.metrics.setWorkerCount(a.manager.WorkerCount())
}

// serveConnection runs the whole per-connection pipeline: parse, route,
// bind variables, middleware chain, endpoint, emit. A panic anywhere in
// the middleware-chain-plus-endpoint span is recovered by recovery.Guard
// rather than taking the worker down.
func (a *App) serveConnection(ctx context.Context, conn net.Conn) {
	defer conn.Close()
	start := time.Now()

	reader := bufio.NewReader(conn)
	req, err := httpproto.ParseRequest(reader, conn.RemoteAddr().String())
	if err != nil {
		a.reportError(fmt.Sprintf("parse request: %v", err))
		return
	}

	ctx, span := a.startRequestSpan(ctx, req)
	defer span.End()

	res, err := a.resolveWithRecovery(ctx, req)
	if err != nil {
		a.reportError(fmt.Sprintf("route %s: %v", req.Route.Path, err))
		return
	}

	final := httpproto.WithHeaders(req.ResponseHeaders, res)
	status := firstStatus(final)
	recordRouteOutcome(span, status)

	if err := httpproto.Emit(ctx, conn, final); err != nil {
		a.reportError(fmt.Sprintf("emit response: %v", err))
	}

	a.metrics.observeRequest(req.Method.String(), status, time.Since(start))
	a.logger.LogRequest(req, "status", status)
}

func (a *App) resolveWithRecovery(ctx context.Context, req *httpproto.Request) (httpproto.Resolution, error) {
	var resolveErr error
	res := recovery.Guard(func() httpproto.Resolution {
		r, err := a.resolve(ctx, req)
		resolveErr = err
		if err != nil {
			return nil
		}
		return r
	}, a.recoveryOpts...)

	if resolveErr != nil {
		return nil, resolveErr
	}
	return res, nil
}

// resolve implements steps 3-7 of the connection pipeline: route lookup
// with missing-route fallback, variable binding, the global-then-endpoint
// middleware chain, and the endpoint invocation.
func (a *App) resolve(ctx context.Context, req *httpproto.Request) (httpproto.Resolution, error) {
	ep, vars, found := a.lookupEndpoint(req.Route.Path, req.Method)
	if !found {
		fallback, hasFallback := a.tree.MissingRoute()
		if !hasFallback {
			return nil, fmt.Errorf("%w: %s", routing.ErrNoRouteExist, req.Route.Path)
		}
		ep = fallback
		vars = map[string]string{}
	}

	for k, v := range vars {
		req.Variables[k] = v
	}

	a.mu.RLock()
	global := append([]middleware.Func{}, a.globalMW...)
	a.mu.RUnlock()

	chain := make([]middleware.Func, 0, len(global)+len(ep.Middleware))
	chain = append(chain, global...)
	chain = append(chain, ep.Middleware...)

	decision := middleware.Run(ctx, req, chain)
	if decision.Outcome != middleware.Next {
		return middleware.Resolve(decision), nil
	}
	return ep.Resolve(ctx, req), nil
}

func (a *App) lookupEndpoint(path string, method httpproto.Method) (*routing.Endpoint, map[string]string, bool) {
	match, ok := a.tree.Lookup(path)
	if !ok {
		return nil, nil, false
	}
	ep, ok := match.Node.Endpoints[method]
	if !ok {
		return nil, nil, false
	}
	return ep, match.Variables, true
}

func (a *App) reportError(msg string) {
	a.logger.Error(msg)
	a.mu.RLock()
	cb := a.errorCallback
	a.mu.RUnlock()
	if cb != nil {
		cb(msg)
	}
}

// Close stops accepting new connections, runs shutdown/stop hooks, and
// drains the worker pool. ctx bounds only the wait for the accept loop to
// exit: if ctx is done first, Close returns ctx.Err() without draining the
// pool or running stop hooks; the drain itself has no deadline.
func (a *App) Close(ctx context.Context) (State, error) {
	a.mu.Lock()
	if a.state != StateRunning {
		state := a.state
		a.mu.Unlock()
		return state, ErrAppClosed
	}
	a.state = StateClosed
	close(a.shutdown)
	ln := a.listener
	a.mu.Unlock()

	a.hooks.executeShutdownHooks(ctx)
	_ = ln.Close()

	select {
	case <-a.done:
	case <-ctx.Done():
		return StateClosed, ctx.Err()
	}

	a.manager.CloseAndFinishWork()
	close(a.drainStop)
	a.hooks.executeStopHooks()

	return StateClosed, nil
}

// CloseUnchecked signals shutdown without waiting for in-flight
// connections to drain, mirroring what dropping App does in the original:
// the shutdown signal is sent, but the caller does not await completion.
func (a *App) CloseUnchecked() {
	a.mu.Lock()
	if a.state != StateRunning {
		a.mu.Unlock()
		return
	}
	a.state = StateClosed
	close(a.shutdown)
	ln := a.listener
	a.mu.Unlock()

	_ = ln.Close()
	go func() {
		<-a.done
		a.manager.CloseAndFinishWork()
		close(a.drainStop)
		a.hooks.executeStopHooks()
	}()
}

func firstStatus(res httpproto.Resolution) string {
	for _, h := range res.Headers() {
		if h.Name == httpproto.StatusHeader {
			return h.Value
		}
	}
	return "200 OK"
}
