package engine

import (
	"context"
	"sync"
	"sync/atomic"

	"github.com/vybdev/modelcat/config"
)

var (
	shared atomic.Pointer[Engine]

	sharedMu sync.Mutex
	// pending is the engine whose first load has not succeeded yet. It is
	// reused by later calls so metrics are registered only once.
	pending *Engine
)

// Shared returns the process-wide Engine, building and loading it from cfg
// on the first call. cfg and opts are ignored once the engine is Ready. A
// failed load is returned to the caller and retried by the next call.
func Shared(ctx context.Context, cfg *config.Config, opts ...Option) (*Engine, error) {
	if e := shared.Load(); e != nil {
		return e, nil
	}

	sharedMu.Lock()
	defer sharedMu.Unlock()
	if e := shared.Load(); e != nil {
		return e, nil
	}

	if pending == nil {
		e, err := FromConfig(cfg, opts...)
		if err != nil {
			return nil, err
		}
		pending = e
	}
	if err := pending.Load(ctx); err != nil {
		return nil, err
	}
	shared.Store(pending)
	pending = nil
	return shared.Load(), nil
}
