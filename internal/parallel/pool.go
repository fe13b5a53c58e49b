package parallel

import (
	"context"
	"runtime"
	"sync"
	"sync/atomic"
)

// Task is one unit of work. It receives the context passed to Run.
type Task func(ctx context.Context)

// Pool runs tasks on a fixed set of goroutines.
//
// Each worker owns a queue; an idle worker steals from the other queues
// so a few slow files do not stall the rest of a directory load.
//
// Pool is safe for concurrent use.
type Pool struct {
	workers int
	queues  []chan func()
	done    chan struct{}
	wg      sync.WaitGroup
	running atomic.Bool
}

// NewPool starts a pool with the given number of workers.
// If workers is 0 or negative, GOMAXPROCS is used.
func NewPool(workers int) *Pool {
	if workers <= 0 {
		workers = runtime.GOMAXPROCS(0)
	}

	queueSize := max(workers*4, 8)

	p := &Pool{
		workers: workers,
		queues:  make([]chan func(), workers),
		done:    make(chan struct{}),
	}
	for i := range workers {
		p.queues[i] = make(chan func(), queueSize)
	}

	p.running.Store(true)

	p.wg.Add(workers)
	for i := range workers {
		go p.worker(i)
	}

	return p
}

func (p *Pool) worker(id int) {
	defer p.wg.Done()

	own := p.queues[id]
	for {
		select {
		case <-p.done:
			p.drain(own)
			return
		case fn := <-own:
			fn()
		default:
			if fn := p.steal(id); fn != nil {
				fn()
				continue
			}
			select {
			case <-p.done:
				p.drain(own)
				return
			case fn := <-own:
				fn()
			}
		}
	}
}

// drain runs whatever is left in queue.
func (p *Pool) drain(queue chan func()) {
	for {
		select {
		case fn := <-queue:
			fn()
		default:
			return
		}
	}
}

// steal takes one item from another worker's queue, or returns nil.
func (p *Pool) steal(id int) func() {
	for i := range p.workers {
		if i == id {
			continue
		}
		select {
		case fn := <-p.queues[i]:
			return fn
		default:
		}
	}
	return nil
}

// Run executes tasks across the workers and waits for all of them.
//
// Tasks that have not started when ctx is done are skipped; running
// tasks see the cancellation through their ctx argument. Run returns
// ctx.Err() in that case. On a closed pool Run does nothing and
// returns nil.
func (p *Pool) Run(ctx context.Context, tasks []Task) error {
	if len(tasks) == 0 || !p.running.Load() {
		return nil
	}

	var pending sync.WaitGroup
	pending.Add(len(tasks))

	for i, task := range tasks {
		fn := func() {
			defer pending.Done()
			if ctx.Err() != nil {
				return
			}
			task(ctx)
		}

		select {
		case p.queues[i%p.workers] <- fn:
		case <-p.done:
			pending.Done()
		case <-ctx.Done():
			pending.Done()
		}
	}

	pending.Wait()
	return ctx.Err()
}

// Map applies fn to every item on the pool and returns the results in
// input order. Items skipped because of cancellation keep the zero value.
func Map[In, Out any](ctx context.Context, p *Pool, items []In, fn func(ctx context.Context, item In) Out) ([]Out, error) {
	out := make([]Out, len(items))
	tasks := make([]Task, len(items))
	for i, item := range items {
		tasks[i] = func(ctx context.Context) {
			out[i] = fn(ctx, item)
		}
	}
	err := p.Run(ctx, tasks)
	return out, err
}

// Close stops accepting work, finishes queued work and stops the
// workers. Close is safe to call multiple times but must not race a
// Run in progress.
func (p *Pool) Close() {
	if !p.running.CompareAndSwap(true, false) {
		return
	}
	close(p.done)
	p.wg.Wait()
}

// Workers returns the number of workers in the pool.
func (p *Pool) Workers() int {
	return p.workers
}

// IsRunning reports whether the pool still accepts work.
func (p *Pool) IsRunning() bool {
	return p.running.Load()
}
