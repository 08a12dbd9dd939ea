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

package workpool_test

import (
	"context"
	"errors"
	"sync"
	"sync/atomic"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/weftserve/weft/workpool"
	"github.com/weftserve/weft/workqueue"
)

func TestManagerRunsEveryTaskExactlyOnce(t *testing.T) {
	mgr := workpool.NewManager[int](context.Background(), 4, nil)
	defer mgr.CloseAndFinishWork()

	const n = 200
	for i := range n {
		i := i
		mgr.QueueWork(func(ctx context.Context) int { return i })
	}

	seen := make(map[int]bool)
	for range n {
		select {
		case v := <-mgr.Receiver:
			require.False(t, seen[v], "result %d delivered more than once", v)
			seen[v] = true
		case <-time.After(5 * time.Second):
			t.Fatalf("timed out waiting for results, got %d/%d", len(seen), n)
		}
	}
	assert.Len(t, seen, n)
}

func TestCloseAndFinishWorkAwaitsInFlightWork(t *testing.T) {
	mgr := workpool.NewManager[int](context.Background(), 2, nil)

	var started, finished atomic.Int32
	release := make(chan struct{})
	mgr.QueueWork(func(ctx context.Context) int {
		started.Add(1)
		<-release
		finished.Add(1)
		return 1
	})

	// give the worker time to pick up the task
	time.Sleep(20 * time.Millisecond)
	require.EqualValues(t, 1, started.Load())

	done := make(chan struct{})
	go func() {
		mgr.CloseAndFinishWork()
		close(done)
	}()

	// CloseAndFinishWork must not return before the in-flight task does.
	select {
	case <-done:
		t.Fatal("CloseAndFinishWork returned before in-flight work finished")
	case <-time.After(50 * time.Millisecond):
	}

	close(release)
	<-done
	assert.EqualValues(t, 1, finished.Load())
}

func TestQueueWorkReportsFreeOnlyWhenAWorkerWasWaiting(t *testing.T) {
	mgr := workpool.NewManager[int](context.Background(), 1, nil)
	defer mgr.CloseAndFinishWork()

	// give the freshly started worker time to arm its Dequeue.
	time.Sleep(20 * time.Millisecond)

	block := make(chan struct{})
	state := mgr.QueueWork(func(ctx context.Context) int {
		<-block
		return 0
	})
	assert.Equal(t, workpool.Free, state, "single idle worker should pick up the first task immediately")

	// the worker is now busy; a second task must join the backlog.
	state2 := mgr.QueueWork(func(ctx context.Context) int { return 0 })
	assert.Equal(t, workpool.Blocked, state2)

	close(block)
	<-mgr.Receiver
	<-mgr.Receiver
}

func TestScaleWorkersGrowsMultiplicatively(t *testing.T) {
	mgr := workpool.NewManager[int](context.Background(), 2, nil)
	defer mgr.CloseAndFinishWork()

	require.Equal(t, 2, mgr.WorkerCount())
	mgr.ScaleWorkers(3)
	assert.Equal(t, 6, mgr.WorkerCount())
}

func TestWorkerStartTwiceFails(t *testing.T) {
	w := workpool.NewWorker(workqueue.New[workpool.Task[int]](), make(chan int, 1), nil)
	require.NoError(t, w.Start(context.Background()))
	assert.ErrorIs(t, w.Start(context.Background()), workpool.ErrAlreadyRunning)
	require.NoError(t, w.Close())

	// the documented error values are distinct sentinels.
	assert.True(t, errors.Is(workpool.ErrAlreadyRunning, workpool.ErrAlreadyRunning))
	assert.NotEqual(t, workpool.ErrAlreadyRunning, workpool.ErrAlreadyClosed)
}

func TestManyConcurrentProducersNoLostWork(t *testing.T) {
	mgr := workpool.NewManager[int](context.Background(), 8, nil)
	defer mgr.CloseAndFinishWork()

	const n = 500
	var wg sync.WaitGroup
	for i := range n {
		wg.Add(1)
		go func(i int) {
			defer wg.Done()
			mgr.QueueWork(func(ctx context.Context) int { return i })
		}(i)
	}
	wg.Wait()

	count := 0
	for count < n {
		select {
		case <-mgr.Receiver:
			count++
		case <-time.After(5 * time.Second):
			t.Fatalf("only received %d/%d results", count, n)
		}
	}
}
