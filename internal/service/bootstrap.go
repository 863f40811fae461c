package service

import (
	"context"
	"sync"

	"github.com/bobbyohyeah/skyebot-support/internal/domain"
	"go.uber.org/zap"
)

// PrepareFunc produces the engine and context references once at
// startup.
type PrepareFunc func(ctx context.Context) (Engine, []domain.ContextRef, error)

// Bootstrap guards one-shot initialization for the webhook server.
// Requests arriving before Init completes are told to retry; an Init
// failure is terminal and never retried.
type Bootstrap struct {
	prepare PrepareFunc
	logger  *zap.Logger

	mu          sync.Mutex
	started     bool
	initialized bool
	engine      Engine
	refs        []domain.ContextRef
	err         error
}

// NewBootstrap creates a bootstrap around the prepare function.
func NewBootstrap(prepare PrepareFunc, logger *zap.Logger) *Bootstrap {
	return &Bootstrap{prepare: prepare, logger: logger}
}

// Init runs the prepare function. Subsequent calls are no-ops whether
// the first attempt succeeded or failed.
func (b *Bootstrap) Init(ctx context.Context) {
	b.mu.Lock()
	if b.started {
		b.mu.Unlock()
		return
	}
	b.started = true
	b.mu.Unlock()

	engine, refs, err := b.prepare(ctx)

	b.mu.Lock()
	defer b.mu.Unlock()
	b.initialized = true
	b.engine = engine
	b.refs = refs
	b.err = err
	if err != nil {
		b.logger.Error("initialization failed", zap.Error(err))
		return
	}
	b.logger.Info("initialization complete", zap.Int("documents", len(refs)))
}

// Initialized reports whether Init has finished, successfully or not.
func (b *Bootstrap) Initialized() bool {
	b.mu.Lock()
	defer b.mu.Unlock()
	return b.initialized
}

// Resources returns the prepared engine and references, or the terminal
// initialization error.
func (b *Bootstrap) Resources() (Engine, []domain.ContextRef, error) {
	b.mu.Lock()
	defer b.mu.Unlock()
	if b.err != nil {
		return nil, nil, b.err
	}
	return b.engine, b.refs, nil
}
