package utils

import (
	"context"
	"sync"
)

// Future is the pending outcome of a call started with Start. Its failure is
// handed to whoever awaits it; nothing is swallowed.
type Future[T any] struct {
	done chan struct{}
	val  T
	err  error
}

// Start runs fn on its own goroutine and returns without waiting.
func Start[T any](ctx context.Context, fn func(context.Context) (T, error)) *Future[T] {
	f := &Future[T]{done: make(chan struct{})}
	go func() {
		defer close(f.done)
		f.val, f.err = fn(ctx)
	}()
	return f
}

// Await blocks until the call completes or ctx is done.
func (f *Future[T]) Await(ctx context.Context) (T, error) {
	select {
	case <-f.done:
		return f.val, f.err
	case <-ctx.Done():
		var zero T
		return zero, ctx.Err()
	}
}

// Isolated is a group of concurrent calls whose failures stay local to the
// key that produced them.
type Isolated[K comparable, V any] struct {
	keys    []K
	results []V
	wg      sync.WaitGroup
}

// StartIsolated starts fn for every item, each on its own goroutine, and
// returns without waiting. A failed call is passed to onErr and leaves the
// zero value of V under its key.
func StartIsolated[I any, K comparable, V any](
	ctx context.Context,
	items []I,
	key func(I) K,
	fn func(context.Context, I) (V, error),
	onErr func(I, error),
) *Isolated[K, V] {
	g := &Isolated[K, V]{
		keys:    make([]K, len(items)),
		results: make([]V, len(items)),
	}

	for i, item := range items {
		i, item := i, item
		g.keys[i] = key(item)
		g.wg.Add(1)
		go func() {
			defer g.wg.Done()
			v, err := fn(ctx, item)
			if err != nil {
				if onErr != nil {
					onErr(item, err)
				}
				return
			}
			g.results[i] = v
		}()
	}
	return g
}

// Wait blocks until every call has settled and returns the outcomes by key.
// The map is never nil.
func (g *Isolated[K, V]) Wait() map[K]V {
	g.wg.Wait()
	out := make(map[K]V, len(g.keys))
	for i, k := range g.keys {
		out[k] = g.results[i]
	}
	return out
}
