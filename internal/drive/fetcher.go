package drive

import (
	"context"
	"fmt"
	"io"
	"os"
	"path/filepath"
	"strings"

	"github.com/bobbyohyeah/skyebot-support/internal/domain"
	"go.uber.org/zap"
)

// Source content types with a supported conversion.
const (
	mimeGoogleDoc   = "application/vnd.google-apps.document"
	mimeGoogleSheet = "application/vnd.google-apps.spreadsheet"
	mimePlainText   = "text/plain"
	mimeCSV         = "text/csv"
)

// downloadChunkSize bounds each read while streaming a document body.
const downloadChunkSize = 256 * 1024

// Fetcher downloads configured documents into the cache directory,
// converting each to a text representation the engine can ingest.
type Fetcher struct {
	store    Store
	cacheDir string
	logger   *zap.Logger
}

// NewFetcher creates a fetcher writing into cacheDir.
func NewFetcher(store Store, cacheDir string, logger *zap.Logger) *Fetcher {
	return &Fetcher{store: store, cacheDir: cacheDir, logger: logger}
}

// Fetch retrieves one declared document. Conversion rules: Google Doc is
// exported as plain text, a Sheet as CSV, a plain-text file downloaded
// as-is. Any other content type yields ErrUnsupportedType.
func (f *Fetcher) Fetch(ctx context.Context, decl domain.Declaration) (domain.ContextDocument, error) {
	meta, err := f.store.Metadata(ctx, decl.SourceID)
	if err != nil {
		return domain.ContextDocument{}, err
	}

	var exportMIME, localMIME, ext string
	switch meta.MIMEType {
	case mimeGoogleDoc:
		exportMIME, localMIME, ext = mimePlainText, mimePlainText, ".txt"
	case mimePlainText:
		exportMIME, localMIME, ext = "", mimePlainText, ".txt"
	case mimeGoogleSheet:
		exportMIME, localMIME, ext = mimeCSV, mimeCSV, ".csv"
	default:
		return domain.ContextDocument{}, fmt.Errorf("file %q has type %s: %w", meta.Name, meta.MIMEType, domain.ErrUnsupportedType)
	}

	f.logger.Info("fetching document",
		zap.String("name", decl.Name),
		zap.String("source_name", meta.Name),
		zap.String("mime_type", meta.MIMEType),
	)

	body, err := f.store.Content(ctx, decl.SourceID, exportMIME)
	if err != nil {
		return domain.ContextDocument{}, err
	}
	defer body.Close()

	path := filepath.Join(f.cacheDir, cacheFileName(decl.Name)+ext)
	written, err := f.writeChunked(decl.Name, path, body)
	if err != nil {
		return domain.ContextDocument{}, fmt.Errorf("download %q: %v: %w", decl.Name, err, domain.ErrTransport)
	}

	f.logger.Info("document cached",
		zap.String("name", decl.Name),
		zap.String("path", path),
		zap.Int64("bytes", written),
	)

	return domain.ContextDocument{
		Name:     decl.Name,
		SourceID: decl.SourceID,
		Path:     path,
		MIMEType: localMIME,
	}, nil
}

// writeChunked copies the body to path in bounded chunks, reporting
// progress as it goes.
func (f *Fetcher) writeChunked(name, path string, body io.Reader) (int64, error) {
	out, err := os.Create(path)
	if err != nil {
		return 0, err
	}
	defer out.Close()

	buf := make([]byte, downloadChunkSize)
	var total int64
	for {
		n, rerr := body.Read(buf)
		if n > 0 {
			if _, werr := out.Write(buf[:n]); werr != nil {
				return total, werr
			}
			total += int64(n)
			f.logger.Debug("download progress", zap.String("name", name), zap.Int64("bytes", total))
		}
		if rerr == io.EOF {
			return total, nil
		}
		if rerr != nil {
			return total, rerr
		}
	}
}

// FetchAll retrieves every declared document, skipping the ones that
// fail; the pipeline proceeds with whatever succeeded.
func (f *Fetcher) FetchAll(ctx context.Context, decls []domain.Declaration) []domain.ContextDocument {
	docs := make([]domain.ContextDocument, 0, len(decls))
	for _, decl := range decls {
		doc, err := f.Fetch(ctx, decl)
		if err != nil {
			f.logger.Warn("skipping document", zap.String("name", decl.Name), zap.Error(err))
			continue
		}
		docs = append(docs, doc)
	}
	return docs
}

// Cached maps existing cache files back to their declarations, used
// when the cache is fresh and no download is needed.
func (f *Fetcher) Cached(decls []domain.Declaration) []domain.ContextDocument {
	byFile := make(map[string]domain.Declaration, len(decls))
	for _, decl := range decls {
		byFile[cacheFileName(decl.Name)] = decl
	}

	entries, err := os.ReadDir(f.cacheDir)
	if err != nil {
		f.logger.Warn("cannot list cache directory", zap.String("dir", f.cacheDir), zap.Error(err))
		return nil
	}

	var docs []domain.ContextDocument
	for _, entry := range entries {
		if entry.IsDir() {
			continue
		}
		ext := filepath.Ext(entry.Name())
		base := strings.TrimSuffix(entry.Name(), ext)
		decl, ok := byFile[base]
		if !ok {
			continue
		}
		var mime string
		switch ext {
		case ".txt":
			mime = mimePlainText
		case ".csv":
			mime = mimeCSV
		default:
			continue
		}
		docs = append(docs, domain.ContextDocument{
			Name:     decl.Name,
			SourceID: decl.SourceID,
			Path:     filepath.Join(f.cacheDir, entry.Name()),
			MIMEType: mime,
		})
		f.logger.Info("using cached document", zap.String("name", decl.Name), zap.String("file", entry.Name()))
	}
	return docs
}

// cacheFileName converts a logical name to its cache file base name:
// "Supported Drones" -> "Supported_Drones".
func cacheFileName(name string) string {
	return strings.ReplaceAll(name, " ", "_")
}
