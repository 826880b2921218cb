package ism

import (
	"errors"
	"fmt"
	"sync"
	"sync/atomic"
)

// Errors returned by the propagation engine.
var (
	ErrUnknownSignal          = errors.New("ism: unknown signal variant")
	ErrNoFDParameters         = errors.New("ism: at least one FD parameter is required")
	ErrUnsupportedConvolution = errors.New("ism: convolution-based scatter broadening is not implemented")
)

// Progress observes per-channel progress of an engine operation. done runs
// from 1 to total. Callbacks arrive from the goroutine doing the work, so a
// Progress used with WithWorkers must be safe for concurrent use.
type Progress func(stage string, done, total int)

// Engine applies interstellar-medium transformations to signals. The zero
// value is usable; New exists to attach options.
type Engine struct {
	progress Progress
	workers  int
}

// Option configures an Engine.
type Option func(*Engine)

// WithProgress installs a progress observer. The observer is best-effort
// reporting only and has no effect on results.
func WithProgress(p Progress) Option {
	return func(e *Engine) {
		e.progress = p
	}
}

// WithWorkers spreads per-channel work across n goroutines. Channels write
// disjoint rows, so results are identical to sequential execution.
func WithWorkers(n int) Option {
	return func(e *Engine) {
		if n > 0 {
			e.workers = n
		}
	}
}

// New returns an Engine with the given options applied.
func New(opts ...Option) *Engine {
	e := &Engine{}
	for _, opt := range opts {
		if opt != nil {
			opt(e)
		}
	}
	return e
}

// progressStep returns the reporting cadence for n channels, roughly every
// 5% with a floor of one channel.
func progressStep(n int) int {
	step := n / 20
	if step < 1 {
		step = 1
	}
	return step
}

// eachChannel runs fn for every channel index in [0, n), sequentially or
// across the configured workers. The first error stops the reporting and is
// returned; rows already processed stay mutated.
func (e *Engine) eachChannel(stage string, n int, fn func(i int) error) error {
	if n == 0 {
		return nil
	}

	if e.workers <= 1 {
		step := progressStep(n)
		for i := 0; i < n; i++ {
			if err := fn(i); err != nil {
				return fmt.Errorf("ism: channel %d: %w", i, err)
			}
			if e.progress != nil && (i+1)%step == 0 {
				e.progress(stage, i+1, n)
			}
		}
		return nil
	}

	workers := min(e.workers, n)
	chunk := (n + workers - 1) / workers
	step := int64(progressStep(n))

	var (
		wg        sync.WaitGroup
		mu        sync.Mutex
		firstErr  error
		completed atomic.Int64
	)
	for w := 0; w < workers; w++ {
		lo := w * chunk
		hi := min(lo+chunk, n)
		if lo >= hi {
			break
		}
		wg.Add(1)
		go func(lo, hi int) {
			defer wg.Done()
			for i := lo; i < hi; i++ {
				if err := fn(i); err != nil {
					mu.Lock()
					if firstErr == nil {
						firstErr = fmt.Errorf("ism: channel %d: %w", i, err)
					}
					mu.Unlock()
					return
				}
				if e.progress != nil {
					if done := completed.Add(1); done%step == 0 {
						e.progress(stage, int(done), n)
					}
				}
			}
		}(lo, hi)
	}
	wg.Wait()
	return firstErr
}
