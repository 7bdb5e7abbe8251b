package batch

import (
	"errors"
	"fmt"
	"sync"

	"github.com/WSU-HELPLAB/CHEMPROV-sub000/pkg/logging"
)

// ErrTooManyWorkers is returned when the worker count exceeds MaxWorkers.
var ErrTooManyWorkers = errors.New("worker count exceeds maximum")

// MaxWorkers caps a pool; problem files are small and CPU bound.
const MaxWorkers = 256

// Pool runs submitted jobs on a fixed set of goroutines
type Pool struct {
	workers int
	jobs    chan func()
	wg      sync.WaitGroup
	once    sync.Once
	mu      sync.RWMutex // Protects jobs from concurrent close during send
	closed  bool         // Protected by mu
	logger  logging.Logger
}

// NewPool starts a pool with the given number of workers. Zero or negative
// means one worker.
func NewPool(workers int, logger logging.Logger) (*Pool, error) {
	if workers <= 0 {
		workers = 1
	}
	if workers > MaxWorkers {
		return nil, fmt.Errorf("%w: %d exceeds %d", ErrTooManyWorkers, workers, MaxWorkers)
	}
	if logger == nil {
		logger = logging.NewNopLogger()
	}

	p := &Pool{
		workers: workers,
		jobs:    make(chan func(), workers*2),
		logger:  logger.With(logging.Component("batch")),
	}
	for i := 0; i < p.workers; i++ {
		p.wg.Add(1)
		go p.worker()
	}
	return p, nil
}

func (p *Pool) worker() {
	defer p.wg.Done()

	for job := range p.jobs {
		func() {
			defer func() {
				if r := recover(); r != nil {
					p.logger.Error("job panicked", logging.Any("panic", r))
				}
			}()
			job()
		}()
	}
}

// Submit queues a job. It returns false once the pool is closed.
func (p *Pool) Submit(job func()) bool {
	p.mu.RLock()
	defer p.mu.RUnlock()

	if p.closed {
		return false
	}
	p.jobs <- job
	return true
}

// Close stops accepting jobs and waits for the queued ones to finish
func (p *Pool) Close() {
	p.once.Do(func() {
		p.mu.Lock()
		p.closed = true
		close(p.jobs)
		p.mu.Unlock()
	})
	p.wg.Wait()
}
