package service

import (
	"context"

	"github.com/bobbyohyeah/skyebot-support/internal/cache"
	"github.com/bobbyohyeah/skyebot-support/internal/domain"
	"go.uber.org/zap"
)

// Preparer runs the startup sequence: decide cache freshness, fetch or
// reuse documents, upload them to the engine concurrently.
type Preparer struct {
	source   DocumentSource
	engine   Engine
	cacheDir string
	logger   *zap.Logger
}

// NewPreparer creates a preparer over the given source and engine.
func NewPreparer(source DocumentSource, engine Engine, cacheDir string, logger *zap.Logger) *Preparer {
	return &Preparer{source: source, engine: engine, cacheDir: cacheDir, logger: logger}
}

type uploadResult struct {
	ref domain.ContextRef
	err error
}

// Prepare makes the declared documents available to the engine and
// returns their content references. Individual document failures are
// skipped; only an empty outcome at each stage is fatal.
func (p *Preparer) Prepare(ctx context.Context, decls []domain.Declaration, force bool) ([]domain.ContextRef, error) {
	if len(decls) == 0 {
		return nil, domain.ErrNoConfiguredDocuments
	}

	refresh := cache.NeedsRefresh(p.cacheDir, force)
	if force {
		if err := cache.Reset(p.cacheDir); err != nil {
			return nil, err
		}
	} else if err := cache.Ensure(p.cacheDir); err != nil {
		return nil, err
	}

	var docs []domain.ContextDocument
	if refresh {
		p.logger.Info("refreshing document cache", zap.Int("declared", len(decls)), zap.Bool("forced", force))
		docs = p.source.FetchAll(ctx, decls)
	} else {
		p.logger.Info("document cache is fresh, skipping fetch")
		docs = p.source.Cached(decls)
	}
	if len(docs) == 0 {
		return nil, domain.ErrNoDocumentsFetched
	}

	results := make(chan uploadResult, len(docs))
	for _, doc := range docs {
		go func(doc domain.ContextDocument) {
			ref, err := p.engine.Upload(ctx, doc)
			results <- uploadResult{ref: ref, err: err}
		}(doc)
	}

	refs := make([]domain.ContextRef, 0, len(docs))
	for range docs {
		res := <-results
		if res.err != nil {
			p.logger.Warn("upload failed, continuing without document", zap.Error(res.err))
			continue
		}
		refs = append(refs, res.ref)
	}
	if len(refs) == 0 {
		return nil, domain.ErrNoUploadsSucceeded
	}

	p.logger.Info("context ready",
		zap.Int("declared", len(decls)),
		zap.Int("fetched", len(docs)),
		zap.Int("uploaded", len(refs)),
	)
	return refs, nil
}
