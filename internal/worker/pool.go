package worker

import (
	"fmt"
	"sync"
	"time"

	"github.com/rs/zerolog"
)

// Task is one unit of background work. The returned error is published on
// the pool's result channel instead of being dropped.
type Task func() error

// Result is the observable outcome of a background task.
type Result struct {
	Name     string
	Err      error
	Duration time.Duration
}

// Pool runs detached work with a fixed number of workers. Unlike a bare
// `go func()`, every task's outcome lands on Results, so failures are
// visible even when no caller is waiting.
type Pool struct {
	tasks   chan job
	results chan Result
	wg      sync.WaitGroup
	logger  zerolog.Logger

	closeOnce sync.Once
}

type job struct {
	name string
	fn   Task
}

func NewPool(workers int, logger zerolog.Logger) *Pool {
	if workers <= 0 {
		workers = 4
	}
	p := &Pool{
		tasks:   make(chan job, workers*10),
		results: make(chan Result, workers*10),
		logger:  logger,
	}
	for i := 0; i < workers; i++ {
		p.wg.Add(1)
		go p.worker(i)
	}
	return p
}

// Submit enqueues a task. It blocks briefly when the queue is full and
// reports a drop instead of blocking the caller indefinitely.
func (p *Pool) Submit(name string, fn Task) {
	select {
	case p.tasks <- job{name: name, fn: fn}:
	default:
		p.logger.Warn().Str("task", name).Msg("task queue full")
		select {
		case p.tasks <- job{name: name, fn: fn}:
		case <-time.After(time.Second):
			p.logger.Error().Str("task", name).Msg("dropped task: queue full")
			p.publish(Result{Name: name, Err: fmt.Errorf("dropped: queue full")})
		}
	}
}

// Results exposes task outcomes. Observe drains it and logs each one.
func (p *Pool) Results() <-chan Result {
	return p.results
}

// Observe logs every result until the pool stops. Run it in its own
// goroutine at startup.
func (p *Pool) Observe() {
	for res := range p.results {
		if res.Err != nil {
			p.logger.Error().Str("task", res.Name).Dur("duration", res.Duration).Err(res.Err).Msg("background task failed")
		} else {
			p.logger.Info().Str("task", res.Name).Dur("duration", res.Duration).Msg("background task done")
		}
	}
}

// Stop waits for queued tasks to finish and closes the result channel.
func (p *Pool) Stop() {
	p.closeOnce.Do(func() {
		close(p.tasks)
		p.wg.Wait()
		close(p.results)
	})
}

func (p *Pool) worker(id int) {
	defer p.wg.Done()
	for j := range p.tasks {
		start := time.Now()
		err := runRecovered(j.fn)
		p.publish(Result{Name: j.name, Err: err, Duration: time.Since(start)})
	}
}

func (p *Pool) publish(res Result) {
	select {
	case p.results <- res:
	default:
		// Nobody draining results; log instead of blocking a worker.
		if res.Err != nil {
			p.logger.Error().Str("task", res.Name).Err(res.Err).Msg("background task failed (results channel full)")
		}
	}
}

func runRecovered(fn Task) (err error) {
	defer func() {
		if r := recover(); r != nil {
			err = fmt.Errorf("panic: %v", r)
		}
	}()
	return fn()
}
