// Package worker runs periodic background maintenance, currently
// expired session token cleanup.
package worker

import (
	"context"
	"time"

	"github.com/m-mizutani/goerr/v2"
	"github.com/saathi-app/saathi/pkg/domain/interfaces"
	"github.com/saathi-app/saathi/pkg/utils/async"
	"github.com/saathi-app/saathi/pkg/utils/logging"
)

const defaultInterval = time.Hour

// TokenCleaner deletes expired session tokens on a fixed interval.
type TokenCleaner struct {
	repo     interfaces.Repository
	interval time.Duration
	cancel   context.CancelFunc
	done     chan struct{}
}

type Option func(*TokenCleaner)

// WithInterval overrides the sweep interval.
func WithInterval(d time.Duration) Option {
	return func(w *TokenCleaner) {
		if d > 0 {
			w.interval = d
		}
	}
}

func NewTokenCleaner(repo interfaces.Repository, opts ...Option) *TokenCleaner {
	w := &TokenCleaner{
		repo:     repo,
		interval: defaultInterval,
	}
	for _, opt := range opts {
		opt(w)
	}
	return w
}

// Start launches the sweep loop. It returns immediately; the loop
// stops when Stop is called or the parent context is canceled.
func (w *TokenCleaner) Start(ctx context.Context) {
	ctx, w.cancel = context.WithCancel(ctx)
	w.done = make(chan struct{})

	go func() {
		defer close(w.done)

		ticker := time.NewTicker(w.interval)
		defer ticker.Stop()

		for {
			select {
			case <-ctx.Done():
				return
			case <-ticker.C:
				async.Dispatch(ctx, w.sweep)
			}
		}
	}()
}

// Stop cancels the loop and waits for it to exit.
func (w *TokenCleaner) Stop() {
	if w.cancel == nil {
		return
	}
	w.cancel()
	<-w.done
}

func (w *TokenCleaner) sweep(ctx context.Context) error {
	removed, err := w.repo.DeleteExpiredTokens(ctx, time.Now())
	if err != nil {
		return goerr.Wrap(err, "failed to delete expired tokens")
	}
	if removed > 0 {
		logging.From(ctx).Info("deleted expired tokens", "count", removed)
	}
	return nil
}
