// Package view composes the static heading with the query runner's state and
// redraws the output sinks on every state transition.
package view

import (
	"context"
	"errors"
	"fmt"
	"time"

	"charview/internal/characters"
	"charview/internal/query"
	"charview/internal/render"

	"go.uber.org/zap"
	"golang.org/x/sync/errgroup"
)

// ErrUnmounted is returned by Mount when the view is torn down before the
// fetch settles.
var ErrUnmounted = errors.New("view unmounted before the query settled")

type View struct {
	runner  *query.Runner
	fields  characters.FieldSet
	sink    render.Sink
	logger  *zap.Logger
	timeout time.Duration
}

type Option func(*View)

// WithFetchTimeout bounds the fetch. An expired fetch is shown as a failure.
func WithFetchTimeout(d time.Duration) Option {
	return func(v *View) {
		v.timeout = d
	}
}

func WithLogger(logger *zap.Logger) Option {
	return func(v *View) {
		if logger != nil {
			v.logger = logger
		}
	}
}

func New(runner *query.Runner, fields characters.FieldSet, sink render.Sink, opts ...Option) *View {
	v := &View{
		runner: runner,
		fields: fields,
		sink:   sink,
		logger: zap.NewNop(),
	}
	for _, apply := range opts {
		if apply != nil {
			apply(v)
		}
	}
	return v
}

// Mount starts the fetch, redraws the sink synchronously on every state the
// runner publishes, and returns the terminal frame. Cancelling ctx unmounts
// the view: the runner is closed and ErrUnmounted (wrapping ctx's error) is
// returned.
func (v *View) Mount(ctx context.Context) (render.Frame, error) {
	if ctx == nil {
		return render.Frame{}, fmt.Errorf("Mount: nil context")
	}
	if v == nil || v.runner == nil || v.sink == nil {
		return render.Frame{}, fmt.Errorf("Mount: view is not initialized (use New)")
	}

	fetchCtx := ctx
	if v.timeout > 0 {
		var cancel context.CancelFunc
		fetchCtx, cancel = context.WithTimeout(ctx, v.timeout)
		defer cancel()
	}

	sub := v.runner.Subscribe()
	if err := v.runner.Start(fetchCtx); err != nil {
		return render.Frame{}, err
	}

	g, gctx := errgroup.WithContext(ctx)
	var final render.Frame

	g.Go(func() error {
		for res := range sub {
			frame := render.NewFrame(res, v.fields)
			if err := v.sink.Write(frame); err != nil {
				return fmt.Errorf("redraw %s frame: %w", res.State, err)
			}
			v.logger.Debug("view redrawn",
				zap.Stringer("state", res.State),
				zap.Int("records", len(frame.Records)))
			if res.Terminal() {
				final = frame
				return nil
			}
		}
		if err := ctx.Err(); err != nil {
			return fmt.Errorf("%w: %w", ErrUnmounted, err)
		}
		return ErrUnmounted
	})

	g.Go(func() error {
		select {
		case <-gctx.Done():
			v.runner.Close()
		case <-v.runner.Done():
		}
		return nil
	})

	if err := g.Wait(); err != nil {
		return render.Frame{}, err
	}
	return final, nil
}

// Unmount discards any in-flight fetch.
func (v *View) Unmount() {
	if v == nil || v.runner == nil {
		return
	}
	v.runner.Close()
}
