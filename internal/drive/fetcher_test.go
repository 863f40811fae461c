package drive

import (
	"context"
	"errors"
	"io"
	"os"
	"path/filepath"
	"strings"
	"testing"

	"github.com/bobbyohyeah/skyebot-support/internal/domain"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap"
)

type fakeStore struct {
	meta    map[string]Metadata
	content map[string]string
	// exportMIMEs records the export MIME requested per file id.
	exportMIMEs map[string]string
	contentErr  error
}

func (f *fakeStore) Metadata(_ context.Context, id string) (Metadata, error) {
	m, ok := f.meta[id]
	if !ok {
		return Metadata{}, domain.ErrNotFound
	}
	return m, nil
}

func (f *fakeStore) Content(_ context.Context, id, exportMIME string) (io.ReadCloser, error) {
	if f.contentErr != nil {
		return nil, f.contentErr
	}
	if f.exportMIMEs == nil {
		f.exportMIMEs = make(map[string]string)
	}
	f.exportMIMEs[id] = exportMIME
	return io.NopCloser(strings.NewReader(f.content[id])), nil
}

func TestFetchGoogleDocExportsAsText(t *testing.T) {
	store := &fakeStore{
		meta:    map[string]Metadata{"id-1": {Name: "Drones", MIMEType: mimeGoogleDoc}},
		content: map[string]string{"id-1": "doc body"},
	}
	dir := t.TempDir()
	f := NewFetcher(store, dir, zap.NewNop())

	doc, err := f.Fetch(context.Background(), domain.Declaration{Name: "Supported Drones", SourceID: "id-1"})
	require.NoError(t, err)

	assert.Equal(t, mimePlainText, doc.MIMEType)
	assert.Equal(t, filepath.Join(dir, "Supported_Drones.txt"), doc.Path)
	assert.Equal(t, mimePlainText, store.exportMIMEs["id-1"])

	body, err := os.ReadFile(doc.Path)
	require.NoError(t, err)
	assert.Equal(t, "doc body", string(body))
}

func TestFetchSheetExportsAsCSV(t *testing.T) {
	store := &fakeStore{
		meta:    map[string]Metadata{"id-2": {Name: "Pricing", MIMEType: mimeGoogleSheet}},
		content: map[string]string{"id-2": "a,b\n1,2\n"},
	}
	dir := t.TempDir()
	f := NewFetcher(store, dir, zap.NewNop())

	doc, err := f.Fetch(context.Background(), domain.Declaration{Name: "Pricing Faq", SourceID: "id-2"})
	require.NoError(t, err)

	assert.Equal(t, mimeCSV, doc.MIMEType)
	assert.True(t, strings.HasSuffix(doc.Path, "Pricing_Faq.csv"))
	assert.Equal(t, mimeCSV, store.exportMIMEs["id-2"])
}

func TestFetchPlainTextDownloadsDirectly(t *testing.T) {
	store := &fakeStore{
		meta:    map[string]Metadata{"id-3": {Name: "notes.txt", MIMEType: mimePlainText}},
		content: map[string]string{"id-3": "notes"},
	}
	f := NewFetcher(store, t.TempDir(), zap.NewNop())

	_, err := f.Fetch(context.Background(), domain.Declaration{Name: "Notes", SourceID: "id-3"})
	require.NoError(t, err)
	assert.Equal(t, "", store.exportMIMEs["id-3"], "plain text must be a direct download, not an export")
}

func TestFetchUnsupportedType(t *testing.T) {
	store := &fakeStore{
		meta: map[string]Metadata{"id-4": {Name: "photo.png", MIMEType: "image/png"}},
	}
	f := NewFetcher(store, t.TempDir(), zap.NewNop())

	_, err := f.Fetch(context.Background(), domain.Declaration{Name: "Photo", SourceID: "id-4"})
	assert.ErrorIs(t, err, domain.ErrUnsupportedType)
}

func TestFetchAllSkipsFailures(t *testing.T) {
	store := &fakeStore{
		meta: map[string]Metadata{
			"good": {Name: "Good", MIMEType: mimeGoogleDoc},
		},
		content: map[string]string{"good": "ok"},
	}
	f := NewFetcher(store, t.TempDir(), zap.NewNop())

	docs := f.FetchAll(context.Background(), []domain.Declaration{
		{Name: "Good Doc", SourceID: "good"},
		{Name: "Gone Doc", SourceID: "missing"},
	})

	require.Len(t, docs, 1)
	assert.Equal(t, "Good Doc", docs[0].Name)
}

func TestFetchContentFailureWrapsTransport(t *testing.T) {
	store := &fakeStore{
		meta:       map[string]Metadata{"id": {Name: "Doc", MIMEType: mimeGoogleDoc}},
		contentErr: errors.New("connection reset"),
	}
	f := NewFetcher(store, t.TempDir(), zap.NewNop())

	_, err := f.Fetch(context.Background(), domain.Declaration{Name: "Doc", SourceID: "id"})
	require.Error(t, err)
}

func TestCachedMapsFilesToDeclarations(t *testing.T) {
	dir := t.TempDir()
	require.NoError(t, os.WriteFile(filepath.Join(dir, "Supported_Drones.txt"), []byte("x"), 0o644))
	require.NoError(t, os.WriteFile(filepath.Join(dir, "Pricing_Faq.csv"), []byte("y"), 0o644))
	require.NoError(t, os.WriteFile(filepath.Join(dir, "Unrelated.txt"), []byte("z"), 0o644))

	f := NewFetcher(&fakeStore{}, dir, zap.NewNop())
	docs := f.Cached([]domain.Declaration{
		{Name: "Supported Drones", SourceID: "id-1"},
		{Name: "Pricing Faq", SourceID: "id-2"},
		{Name: "Never Fetched", SourceID: "id-3"},
	})

	require.Len(t, docs, 2)
	byName := make(map[string]domain.ContextDocument)
	for _, d := range docs {
		byName[d.Name] = d
	}
	assert.Equal(t, mimePlainText, byName["Supported Drones"].MIMEType)
	assert.Equal(t, mimeCSV, byName["Pricing Faq"].MIMEType)
	assert.NotContains(t, byName, "Never Fetched")
}

func TestCachedMissingDirectory(t *testing.T) {
	f := NewFetcher(&fakeStore{}, filepath.Join(t.TempDir(), "missing"), zap.NewNop())
	docs := f.Cached([]domain.Declaration{{Name: "Doc", SourceID: "id"}})
	assert.Empty(t, docs)
}

func TestCacheFileName(t *testing.T) {
	assert.Equal(t, "Supported_Drones", cacheFileName("Supported Drones"))
	assert.Equal(t, "Faq", cacheFileName("Faq"))
}
