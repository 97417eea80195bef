package progress

import (
	"context"
	"sync"

	"go.uber.org/zap"
)

// Registry hands out one store per user, loading the user's snapshots from
// the remote store on first access.
type Registry struct {
	remote Remote
	logger *zap.Logger

	mu     sync.Mutex
	stores map[int]*entry
}

type entry struct {
	store *Store
	load  sync.Once
}

func NewRegistry(remote Remote, logger *zap.Logger) *Registry {
	return &Registry{
		remote: remote,
		logger: logger,
		stores: make(map[int]*entry),
	}
}

// ForUser returns the user's store. The first caller loads it; concurrent
// first requests block until that load settles.
func (g *Registry) ForUser(ctx context.Context, userID int) *Store {
	g.mu.Lock()
	e, ok := g.stores[userID]
	if !ok {
		e = &entry{store: NewStore(userID, g.remote, g.logger)}
		g.stores[userID] = e
	}
	g.mu.Unlock()

	e.load.Do(func() { e.store.Load(ctx) })
	return e.store
}

// Wait drains in-flight writes across all stores.
func (g *Registry) Wait() {
	g.mu.Lock()
	stores := make([]*Store, 0, len(g.stores))
	for _, e := range g.stores {
		stores = append(stores, e.store)
	}
	g.mu.Unlock()

	for _, s := range stores {
		s.Wait()
	}
}
