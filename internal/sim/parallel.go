package sim

import (
	"context"
	"sync"

	"github.com/san-kum/flycam/internal/session"
)

// SessionFactory builds a fresh session for one replay.
type SessionFactory func() (*session.Session, error)

// Batch replays several scripts concurrently, each on its own session.
type Batch struct {
	factory   SessionFactory
	observers func(idx int) []Observer
}

func NewBatch(factory SessionFactory) *Batch {
	return &Batch{factory: factory}
}

// WithObservers sets a per-run observer constructor.
func (b *Batch) WithObservers(fn func(idx int) []Observer) *Batch {
	b.observers = fn
	return b
}

// Run returns results in script order. The first failure is returned after
// all runs finish.
func (b *Batch) Run(ctx context.Context, scripts []*Script) ([]*Result, error) {
	results := make([]*Result, len(scripts))
	errs := make([]error, len(scripts))

	var wg sync.WaitGroup
	for i := range scripts {
		wg.Add(1)
		go func(idx int) {
			defer wg.Done()

			sess, err := b.factory()
			if err != nil {
				errs[idx] = err
				return
			}
			defer sess.Close()

			s := New(sess)
			if b.observers != nil {
				for _, o := range b.observers(idx) {
					s.AddObserver(o)
				}
			}
			results[idx], errs[idx] = s.Run(ctx, scripts[idx])
		}(i)
	}

	wg.Wait()

	for _, err := range errs {
		if err != nil {
			return nil, err
		}
	}

	return results, nil
}
