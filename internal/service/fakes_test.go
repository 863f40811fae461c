package service

import (
	"context"
	"errors"
	"sync"

	"github.com/bobbyohyeah/skyebot-support/internal/domain"
)

// fakeSource serves canned documents and records which path was taken.
type fakeSource struct {
	docs        []domain.ContextDocument
	fetchCalls  int
	cachedCalls int
}

func (f *fakeSource) FetchAll(_ context.Context, _ []domain.Declaration) []domain.ContextDocument {
	f.fetchCalls++
	return f.docs
}

func (f *fakeSource) Cached(_ []domain.Declaration) []domain.ContextDocument {
	f.cachedCalls++
	return f.docs
}

// fakeEngine implements Engine with scripted behavior.
type fakeEngine struct {
	mu          sync.Mutex
	uploaded    []string
	failUploads map[string]bool

	fragments []domain.Fragment
	streamErr error

	reply    domain.Reply
	replyErr error
}

func (f *fakeEngine) Upload(_ context.Context, doc domain.ContextDocument) (domain.ContextRef, error) {
	f.mu.Lock()
	defer f.mu.Unlock()
	if f.failUploads[doc.Name] {
		return domain.ContextRef{}, errors.New("upload rejected")
	}
	f.uploaded = append(f.uploaded, doc.Name)
	return domain.ContextRef{Name: doc.Name, URI: "files/" + doc.Name, MIMEType: doc.MIMEType}, nil
}

func (f *fakeEngine) StreamGenerate(_ context.Context, _ string, _ []domain.Turn) (<-chan domain.Fragment, error) {
	if f.streamErr != nil {
		return nil, f.streamErr
	}
	out := make(chan domain.Fragment, len(f.fragments))
	for _, frag := range f.fragments {
		out <- frag
	}
	close(out)
	return out, nil
}

func (f *fakeEngine) Generate(_ context.Context, _ string, _ []domain.Turn) (domain.Reply, error) {
	return f.reply, f.replyErr
}

func (f *fakeEngine) uploadedNames() []string {
	f.mu.Lock()
	defer f.mu.Unlock()
	return append([]string(nil), f.uploaded...)
}
