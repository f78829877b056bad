// Package query runs the single characters fetch of a mounted view and
// publishes its lifecycle (Pending, then Failed or Succeeded) to subscribers.
package query

import (
	"context"
	"errors"
	"fmt"
	"sync"

	"charview/internal/characters"
	"charview/internal/graphql"
)

// FetchFunc performs the one network request of a runner.
type FetchFunc func(ctx context.Context) ([]characters.Character, error)

// ForClient binds the characters query for fields to an explicitly
// constructed client.
func ForClient(c *graphql.Client, fields characters.FieldSet) FetchFunc {
	return func(ctx context.Context) ([]characters.Character, error) {
		return characters.Fetch(ctx, c, fields)
	}
}

// subscriberBuffer holds every value a subscriber can ever receive
// (Pending plus one terminal state), so publishing never blocks.
const subscriberBuffer = 2

// Runner owns the single Result slot of one mounted view.
//
// Transitions are monotonic: Pending -> Failed or Pending -> Succeeded.
// A fresh Runner is required to fetch again.
type Runner struct {
	fetch FetchFunc

	mu      sync.Mutex
	current Result
	subs    []chan Result
	started bool
	closed  bool
	cancel  context.CancelFunc
	done    chan struct{}
}

func NewRunner(fetch FetchFunc) *Runner {
	return &Runner{
		fetch:   fetch,
		current: pendingResult(),
		done:    make(chan struct{}),
	}
}

// Start issues the fetch asynchronously. Only the first call has an effect.
func (r *Runner) Start(ctx context.Context) error {
	if ctx == nil {
		return fmt.Errorf("Start: nil context")
	}
	if r == nil || r.fetch == nil {
		return fmt.Errorf("Start: nil runner (use NewRunner)")
	}

	r.mu.Lock()
	if r.started || r.closed {
		r.mu.Unlock()
		return nil
	}
	r.started = true
	ctx, r.cancel = context.WithCancel(ctx)
	r.mu.Unlock()

	go func() {
		defer close(r.done)
		chars, err := r.fetch(ctx)
		switch {
		case err == nil:
			r.settle(succeededResult(chars))
		case errors.Is(err, context.Canceled):
			// The view went away; nobody is left to show the outcome.
			r.discard()
		default:
			r.settle(failedResult(err.Error()))
		}
	}()
	return nil
}

// Subscribe returns a channel that first receives the current state and then
// every later transition. It is closed after the terminal state, or without
// one if the runner is closed first.
func (r *Runner) Subscribe() <-chan Result {
	ch := make(chan Result, subscriberBuffer)

	r.mu.Lock()
	defer r.mu.Unlock()

	if r.closed {
		close(ch)
		return ch
	}
	ch <- r.current
	if r.current.Terminal() {
		close(ch)
		return ch
	}
	r.subs = append(r.subs, ch)
	return ch
}

func (r *Runner) Current() Result {
	r.mu.Lock()
	defer r.mu.Unlock()
	return r.current
}

// Done is closed once the fetch goroutine has finished. It never closes for
// a runner that was not started.
func (r *Runner) Done() <-chan struct{} {
	return r.done
}

// Close unmounts the runner: the in-flight fetch is cancelled and its outcome
// is discarded. Subscribers see their channels closed.
func (r *Runner) Close() {
	r.mu.Lock()
	if r.closed {
		r.mu.Unlock()
		return
	}
	r.closed = true
	started := r.started
	cancel := r.cancel
	r.closeSubsLocked()
	r.mu.Unlock()

	if cancel != nil {
		cancel()
	}
	if started {
		<-r.done
	}
}

func (r *Runner) settle(res Result) {
	r.mu.Lock()
	defer r.mu.Unlock()

	if r.closed || r.current.Terminal() {
		return
	}
	r.current = res
	for _, ch := range r.subs {
		ch <- res
	}
	r.closeSubsLocked()
	r.cancel()
}

func (r *Runner) discard() {
	r.mu.Lock()
	defer r.mu.Unlock()
	r.closed = true
	r.closeSubsLocked()
	r.cancel()
}

func (r *Runner) closeSubsLocked() {
	for _, ch := range r.subs {
		close(ch)
	}
	r.subs = nil
}
