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

package workqueue_test

import (
	"context"
	"sync"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/weftserve/weft/workqueue"
)

func TestEnqueueDequeueFIFO(t *testing.T) {
	q := workqueue.New[int]()
	q.Enqueue(1)
	q.Enqueue(2)
	q.Enqueue(3)

	ctx := context.Background()
	for _, want := range []int{1, 2, 3} {
		got, ok := q.Dequeue(ctx)
		require.True(t, ok)
		assert.Equal(t, want, got)
	}
}

func TestDequeueBlocksUntilEnqueue(t *testing.T) {
	q := workqueue.New[string]()
	ctx := context.Background()

	done := make(chan string, 1)
	go func() {
		v, ok := q.Dequeue(ctx)
		require.True(t, ok)
		done <- v
	}()

	// give the consumer time to arm its wait before producing.
	time.Sleep(20 * time.Millisecond)
	q.Enqueue("hello")

	select {
	case v := <-done:
		assert.Equal(t, "hello", v)
	case <-time.After(time.Second):
		t.Fatal("dequeue never woke up")
	}
}

func TestDequeueRespectsContextCancellation(t *testing.T) {
	q := workqueue.New[int]()
	ctx, cancel := context.WithCancel(context.Background())

	done := make(chan bool, 1)
	go func() {
		_, ok := q.Dequeue(ctx)
		done <- ok
	}()

	time.Sleep(20 * time.Millisecond)
	cancel()

	select {
	case ok := <-done:
		assert.False(t, ok)
	case <-time.After(time.Second):
		t.Fatal("dequeue never observed cancellation")
	}
}

func TestCloseWakesAllBlockedConsumers(t *testing.T) {
	q := workqueue.New[int]()
	ctx := context.Background()

	const n = 8
	var wg sync.WaitGroup
	results := make([]bool, n)
	for i := range n {
		wg.Add(1)
		go func(i int) {
			defer wg.Done()
			_, ok := q.Dequeue(ctx)
			results[i] = ok
		}(i)
	}

	time.Sleep(20 * time.Millisecond)
	q.Close()

	wg.Wait()
	for _, ok := range results {
		assert.False(t, ok)
	}
}

func TestEnqueueAfterCloseIsNoop(t *testing.T) {
	q := workqueue.New[int]()
	q.Close()
	q.Enqueue(42)
	assert.Equal(t, 0, q.Len())
}

func TestNoMissedWakeupUnderConcurrentProducers(t *testing.T) {
	q := workqueue.New[int]()
	ctx := context.Background()

	const total = 500
	var wg sync.WaitGroup
	for i := range total {
		wg.Add(1)
		go func(i int) {
			defer wg.Done()
			q.Enqueue(i)
		}(i)
	}

	got := make([]int, 0, total)
	var mu sync.Mutex
	var consumers sync.WaitGroup
	for range 16 {
		consumers.Add(1)
		go func() {
			defer consumers.Done()
			for {
				dctx, cancel := context.WithTimeout(ctx, 200*time.Millisecond)
				v, ok := q.Dequeue(dctx)
				cancel()
				if !ok {
					return
				}
				mu.Lock()
				got = append(got, v)
				mu.Unlock()
			}
		}()
	}

	wg.Wait()
	consumers.Wait()
	assert.Len(t, got, total)
}
