package batch

import (
	"bytes"
	"errors"
	"strings"
	"sync"
	"sync/atomic"
	"testing"
	"time"

	"github.com/WSU-HELPLAB/CHEMPROV-sub000/pkg/logging"
)

func newPool(t *testing.T, workers int) *Pool {
	t.Helper()
	p, err := NewPool(workers, nil)
	if err != nil {
		t.Fatalf("NewPool(%d): %v", workers, err)
	}
	return p
}

// TestPoolRunsEveryJob submits from many goroutines and counts executions
func TestPoolRunsEveryJob(t *testing.T) {
	pool := newPool(t, 8)

	const jobs = 100
	var counter int64
	var wg sync.WaitGroup
	for i := 0; i < jobs; i++ {
		wg.Add(1)
		go func() {
			defer wg.Done()
			pool.Submit(func() { atomic.AddInt64(&counter, 1) })
		}()
	}
	wg.Wait()
	pool.Close()

	if counter != jobs {
		t.Errorf("Expected counter %d, got %d", jobs, counter)
	}
}

// TestPoolWorkerBounds rejects oversized pools and clamps empty ones
func TestPoolWorkerBounds(t *testing.T) {
	if _, err := NewPool(MaxWorkers+1, nil); !errors.Is(err, ErrTooManyWorkers) {
		t.Errorf("Expected ErrTooManyWorkers, got %v", err)
	}
	p := newPool(t, 0)
	defer p.Close()
	if p.workers != 1 {
		t.Errorf("Expected 1 worker, got %d", p.workers)
	}
}

// TestPoolSubmitAfterClose tests that submissions after close return false
func TestPoolSubmitAfterClose(t *testing.T) {
	pool := newPool(t, 4)
	if !pool.Submit(func() { time.Sleep(time.Millisecond) }) {
		t.Error("Submission before close should succeed")
	}
	pool.Close()

	if pool.Submit(func() { t.Error("This job should never run") }) {
		t.Error("Submission after close should return false")
	}
	// Closing again is a no-op
	pool.Close()
}

// TestPoolCloseRace closes the pool while submitters are still running
func TestPoolCloseRace(t *testing.T) {
	for iteration := 0; iteration < 50; iteration++ {
		pool := newPool(t, 4)

		var wg sync.WaitGroup
		for i := 0; i < 10; i++ {
			wg.Add(1)
			go func() {
				defer wg.Done()
				for j := 0; j < 10; j++ {
					pool.Submit(func() { time.Sleep(100 * time.Microsecond) })
				}
			}()
		}

		time.Sleep(time.Millisecond)
		pool.Close()
		wg.Wait()
	}
}

// TestPoolRecoversPanics keeps workers alive and logs the panic
func TestPoolRecoversPanics(t *testing.T) {
	var buf bytes.Buffer
	pool, err := NewPool(2, logging.NewJSONLogger(&buf, logging.ErrorLevel))
	if err != nil {
		t.Fatal(err)
	}

	var counter int64
	for i := 0; i < 5; i++ {
		pool.Submit(func() { panic("boom") })
	}
	for i := 0; i < 5; i++ {
		pool.Submit(func() { atomic.AddInt64(&counter, 1) })
	}
	pool.Close()

	if counter != 5 {
		t.Errorf("Expected 5 jobs after panics, got %d", counter)
	}
	if got := strings.Count(buf.String(), "job panicked"); got != 5 {
		t.Errorf("Expected 5 panic log lines, got %d:\n%s", got, buf.String())
	}
}
