// Package service contains the conversation pipeline: preparing the
// document context, assembling prompts and driving generation.
package service

import (
	"context"

	"github.com/bobbyohyeah/skyebot-support/internal/domain"
)

// Engine is the hosted completion capability the services consume.
type Engine interface {
	// Upload pushes one cached document and returns its content reference.
	Upload(ctx context.Context, doc domain.ContextDocument) (domain.ContextRef, error)
	// StreamGenerate starts a streamed generation over the transcript.
	StreamGenerate(ctx context.Context, model string, turns []domain.Turn) (<-chan domain.Fragment, error)
	// Generate performs a non-streaming generation.
	Generate(ctx context.Context, model string, turns []domain.Turn) (domain.Reply, error)
}

// DocumentSource supplies context documents, either freshly fetched or
// from the local cache.
type DocumentSource interface {
	FetchAll(ctx context.Context, decls []domain.Declaration) []domain.ContextDocument
	Cached(decls []domain.Declaration) []domain.ContextDocument
}
