package parallel

import (
	"context"
	"errors"
	"runtime"
	"sync"
	"sync/atomic"
	"testing"
	"time"
)

func TestPool_Create(t *testing.T) {
	tests := []struct {
		name    string
		workers int
		want    int
	}{
		{"explicit", 4, 4},
		{"zero uses GOMAXPROCS", 0, runtime.GOMAXPROCS(0)},
		{"negative uses GOMAXPROCS", -5, runtime.GOMAXPROCS(0)},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			pool := NewPool(tt.workers)
			defer pool.Close()

			if pool.Workers() != tt.want {
				t.Errorf("Workers() = %d, want %d", pool.Workers(), tt.want)
			}
			if !pool.IsRunning() {
				t.Error("pool should be running after creation")
			}
		})
	}
}

func counting(n int, counter *atomic.Int64) []Task {
	tasks := make([]Task, n)
	for i := range tasks {
		tasks[i] = func(context.Context) { counter.Add(1) }
	}
	return tasks
}

func TestPool_Run(t *testing.T) {
	tests := []struct {
		name    string
		workers int
		tasks   int
	}{
		{"single worker", 1, 50},
		{"four workers", 4, 100},
		{"many workers", 32, 100},
		{"many small tasks", 4, 10000},
		{"single task", 4, 1},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			pool := NewPool(tt.workers)
			defer pool.Close()

			var counter atomic.Int64
			if err := pool.Run(context.Background(), counting(tt.tasks, &counter)); err != nil {
				t.Fatalf("Run() = %v", err)
			}
			if counter.Load() != int64(tt.tasks) {
				t.Errorf("counter = %d, want %d", counter.Load(), tt.tasks)
			}
		})
	}
}

func TestPool_RunEmpty(t *testing.T) {
	pool := NewPool(4)
	defer pool.Close()

	if err := pool.Run(context.Background(), nil); err != nil {
		t.Errorf("Run(nil) = %v", err)
	}
}

func TestPool_RunCanceled(t *testing.T) {
	pool := NewPool(2)
	defer pool.Close()

	ctx, cancel := context.WithCancel(context.Background())
	cancel()

	var counter atomic.Int64
	err := pool.Run(ctx, counting(100, &counter))
	if !errors.Is(err, context.Canceled) {
		t.Errorf("Run() = %v, want context.Canceled", err)
	}
	if counter.Load() != 0 {
		t.Errorf("%d tasks ran after cancellation", counter.Load())
	}
}

func TestPool_RunCancelMidway(t *testing.T) {
	pool := NewPool(1)
	defer pool.Close()

	ctx, cancel := context.WithCancel(context.Background())
	defer cancel()

	var counter atomic.Int64
	tasks := make([]Task, 20)
	for i := range tasks {
		tasks[i] = func(context.Context) {
			if counter.Add(1) == 3 {
				cancel()
			}
		}
	}

	if err := pool.Run(ctx, tasks); !errors.Is(err, context.Canceled) {
		t.Errorf("Run() = %v, want context.Canceled", err)
	}
	if n := counter.Load(); n < 3 || n == 20 {
		t.Errorf("ran %d tasks, want cancellation to stop the rest", n)
	}
}

func TestPool_Map(t *testing.T) {
	pool := NewPool(4)
	defer pool.Close()

	items := []int{1, 2, 3, 4, 5, 6, 7, 8, 9, 10}
	out, err := Map(context.Background(), pool, items, func(_ context.Context, v int) int {
		return v * v
	})
	if err != nil {
		t.Fatalf("Map() = %v", err)
	}
	for i, v := range items {
		if out[i] != v*v {
			t.Errorf("out[%d] = %d, want %d", i, out[i], v*v)
		}
	}
}

func TestPool_Close(t *testing.T) {
	pool := NewPool(4)
	pool.Close()
	pool.Close()

	if pool.IsRunning() {
		t.Error("pool should not be running after Close")
	}

	var executed atomic.Bool
	err := pool.Run(context.Background(), []Task{
		func(context.Context) { executed.Store(true) },
	})
	if err != nil {
		t.Errorf("Run on closed pool = %v", err)
	}

	time.Sleep(20 * time.Millisecond)
	if executed.Load() {
		t.Error("work was executed on closed pool")
	}
}

func TestPool_Concurrent(t *testing.T) {
	pool := NewPool(4)
	defer pool.Close()

	var counter atomic.Int64
	const callers, perCaller = 10, 50

	var wg sync.WaitGroup
	wg.Add(callers)
	for range callers {
		go func() {
			defer wg.Done()
			_ = pool.Run(context.Background(), counting(perCaller, &counter))
		}()
	}
	wg.Wait()

	if counter.Load() != callers*perCaller {
		t.Errorf("counter = %d, want %d", counter.Load(), callers*perCaller)
	}
}

func TestPool_WorkStealing(t *testing.T) {
	pool := NewPool(4)
	defer pool.Close()

	var slow, fast atomic.Int64
	tasks := make([]Task, 100)
	for i := range tasks {
		if i%10 == 0 {
			tasks[i] = func(context.Context) {
				time.Sleep(5 * time.Millisecond)
				slow.Add(1)
			}
		} else {
			tasks[i] = func(context.Context) { fast.Add(1) }
		}
	}

	start := time.Now()
	if err := pool.Run(context.Background(), tasks); err != nil {
		t.Fatalf("Run() = %v", err)
	}

	if slow.Load() != 10 || fast.Load() != 90 {
		t.Errorf("slow = %d, fast = %d, want 10 and 90", slow.Load(), fast.Load())
	}
	t.Logf("elapsed: %v", time.Since(start))
}

func TestPool_NoGoroutineLeak(t *testing.T) {
	runtime.GC()
	time.Sleep(50 * time.Millisecond)
	baseline := runtime.NumGoroutine()

	for range 5 {
		pool := NewPool(4)
		var counter atomic.Int64
		_ = pool.Run(context.Background(), counting(100, &counter))
		pool.Close()
	}

	runtime.GC()
	time.Sleep(100 * time.Millisecond)

	if final := runtime.NumGoroutine(); final > baseline+2 {
		t.Errorf("goroutine count: baseline=%d, final=%d (leak detected)", baseline, final)
	}
}

func BenchmarkPool_Run(b *testing.B) {
	pool := NewPool(0)
	defer pool.Close()

	var counter atomic.Int64
	tasks := counting(1000, &counter)

	b.ReportAllocs()
	for b.Loop() {
		_ = pool.Run(context.Background(), tasks)
	}
}
